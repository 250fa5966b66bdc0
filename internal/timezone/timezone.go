package timezone

import (
	"time"
	_ "time/tzdata"
)

const DefaultTimezone = "UTC"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location loads tz, falling back to DefaultTimezone.
func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.UTC
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// Days returns local midnight of every calendar day in loc touched by
// [start, end].
func Days(start, end time.Time, loc *time.Location) []time.Time {
	if end.Before(start) {
		return nil
	}

	s, e := start.In(loc), end.In(loc)
	day := time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, loc)
	last := time.Date(e.Year(), e.Month(), e.Day(), 0, 0, 0, 0, loc)

	var out []time.Time
	for !day.After(last) {
		out = append(out, day)
		day = day.AddDate(0, 0, 1)
	}
	return out
}
