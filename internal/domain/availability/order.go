package availability

import (
	"cmp"
	"slices"
	"time"
)

// Sort orders windows recurring first, then by weekday or date, then by
// start time.
func Sort(windows []Window) {
	slices.SortStableFunc(windows, compare)
}

func compare(a, b Window) int {
	ar, br := a.When.Recurring(), b.When.Recurring()
	if ar != br {
		if ar {
			return -1
		}
		return 1
	}

	if ar {
		if c := cmp.Compare(a.When.(Weekly).Day, b.When.(Weekly).Day); c != 0 {
			return c
		}
	} else {
		if c := a.When.(OnDate).Date.Compare(b.When.(OnDate).Date); c != 0 {
			return c
		}
	}

	return cmp.Compare(a.Start, b.Start)
}

// Month is a calendar month used to filter the public view.
type Month struct {
	Year  int
	Month time.Month
}

func ParseMonth(s string) (Month, bool) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, false
	}
	return Month{Year: t.Year(), Month: t.Month()}, true
}

func (m Month) First() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

func (m Month) Last() time.Time {
	return m.First().AddDate(0, 1, -1)
}

// VisibleIn reports whether w belongs in a month-filtered public listing.
// Recurring windows always do, dated windows only inside [first, last].
func (w Window) VisibleIn(m Month) bool {
	o, ok := w.When.(OnDate)
	if !ok {
		return true
	}
	return !o.Date.Before(m.First()) && !o.Date.After(m.Last())
}
