package availability

import "cmp"

// Overlaps reports whether [candidateStart, candidateEnd) and
// [existingStart, existingEnd) share an instant. Touching intervals do not
// overlap.
func Overlaps[T cmp.Ordered](candidateStart, candidateEnd, existingStart, existingEnd T) bool {
	return candidateStart < existingEnd && candidateEnd > existingStart
}

// FindConflict returns the first active window in existing that shares the
// candidate's discriminator and overlaps its time range. The candidate itself
// (same ID) is skipped.
func FindConflict(candidate Window, existing []Window) (Window, bool) {
	for _, w := range existing {
		if !w.Active || w.ID == candidate.ID {
			continue
		}
		if !SameDiscriminator(candidate.When, w.When) {
			continue
		}
		if Overlaps(candidate.Start, candidate.End, w.Start, w.End) {
			return w, true
		}
	}
	return Window{}, false
}
