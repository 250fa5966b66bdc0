package repository

import (
	"testing"
	"time"
)

func TestSpecificDateBounds_CoverNeighbouringLocalDays(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*60*60)

	start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 12, 23, 59, 0, 0, time.UTC)

	from, to := specificDateBounds(start, end)

	// 2026-03-09 22:00 local is 2026-03-10 01:00 UTC, inside the range.
	localDay := time.Date(2026, 3, 9, 0, 0, 0, 0, saoPaulo)
	if time.Time(from).After(localDay) {
		t.Fatalf("lower bound %s excludes local day %s", time.Time(from), localDay)
	}

	// A window on 2026-03-13 in a zone ahead of UTC can start before end.
	nextDay := time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC)
	if time.Time(to).Before(nextDay) {
		t.Fatalf("upper bound %s excludes %s", time.Time(to), nextDay)
	}

	if got := time.Time(from).Format(time.DateOnly); got != "2026-03-09" {
		t.Errorf("from = %s", got)
	}
	if got := time.Time(to).Format(time.DateOnly); got != "2026-03-13" {
		t.Errorf("to = %s", got)
	}
}
