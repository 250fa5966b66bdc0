package dto

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/tutor-scheduler/internal/domain/availability"
)

func TestFromWindow_SetsExactlyOneDiscriminator(t *testing.T) {
	weekly := FromWindow(availability.Window{
		ID:    uuid.New(),
		When:  availability.Weekly{Day: time.Monday},
		Start: "14:00",
		End:   "15:00",
	})
	if !weekly.IsRecurring || weekly.DayOfWeek == nil || *weekly.DayOfWeek != 1 || weekly.SpecificDate != nil {
		t.Fatalf("weekly window mapped as %+v", weekly)
	}

	dated := FromWindow(availability.Window{
		ID:    uuid.New(),
		When:  availability.NewOnDate(time.Date(2026, time.March, 12, 15, 0, 0, 0, time.UTC)),
		Start: "09:00",
		End:   "10:00",
	})
	if dated.IsRecurring || dated.DayOfWeek != nil || dated.SpecificDate == nil || *dated.SpecificDate != "2026-03-12" {
		t.Fatalf("dated window mapped as %+v", dated)
	}
}

func TestFromWindows_EmptyIsNotNil(t *testing.T) {
	if out := FromWindows(nil); out == nil {
		t.Fatal("expected an empty slice so the JSON body is [] not null")
	}
}
