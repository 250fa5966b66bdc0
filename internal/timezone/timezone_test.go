package timezone

import (
	"testing"
	"time"
)

func TestLocation(t *testing.T) {
	if got := Location("Europe/Lisbon").String(); got != "Europe/Lisbon" {
		t.Errorf("expected Europe/Lisbon, got %s", got)
	}
	if got := Location("Mars/Olympus"); got != time.UTC {
		t.Errorf("invalid zone should fall back to UTC, got %s", got)
	}
	if IsValid("") {
		t.Error("empty zone must be invalid")
	}
}

func TestDays(t *testing.T) {
	start := time.Date(2026, 3, 9, 22, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 11, 1, 0, 0, 0, time.UTC)

	days := Days(start, end, time.UTC)
	if len(days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(days))
	}
	if !days[0].Equal(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("first day %s", days[0])
	}

	if Days(end, start, time.UTC) != nil {
		t.Error("reversed range should yield nothing")
	}

	// 22:00 UTC on the 9th is already the 10th in Tokyo.
	tokyo := Location("Asia/Tokyo")
	days = Days(start, end, tokyo)
	if days[0].Day() != 10 {
		t.Errorf("expected first Tokyo day to be the 10th, got %d", days[0].Day())
	}
}
