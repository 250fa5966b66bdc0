package availability

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name       string
		aStart     TimeOfDay
		aEnd       TimeOfDay
		bStart     TimeOfDay
		bEnd       TimeOfDay
		wantResult bool
	}{
		{name: "touching is not overlapping", aStart: "09:00", aEnd: "10:00", bStart: "10:00", bEnd: "11:00", wantResult: false},
		{name: "partial overlap", aStart: "09:00", aEnd: "10:30", bStart: "10:00", bEnd: "11:00", wantResult: true},
		{name: "containment", aStart: "08:00", aEnd: "12:00", bStart: "09:00", bEnd: "10:00", wantResult: true},
		{name: "identical", aStart: "14:00", aEnd: "15:00", bStart: "14:00", bEnd: "15:00", wantResult: true},
		{name: "disjoint", aStart: "07:00", aEnd: "08:00", bStart: "20:00", bEnd: "21:00", wantResult: false},
		{name: "one minute overlap", aStart: "09:00", aEnd: "10:01", bStart: "10:00", bEnd: "11:00", wantResult: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd)
			if got != tt.wantResult {
				t.Errorf("Overlaps(A,B) = %v, want %v", got, tt.wantResult)
			}
			if sym := Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd); sym != got {
				t.Errorf("Overlaps is not symmetric: A,B=%v B,A=%v", got, sym)
			}
		})
	}
}

func TestOverlaps_SymmetryExhaustive(t *testing.T) {
	points := []TimeOfDay{"08:00", "09:00", "09:30", "10:00", "11:00"}

	for _, as := range points {
		for _, ae := range points {
			if ae <= as {
				continue
			}
			for _, bs := range points {
				for _, be := range points {
					if be <= bs {
						continue
					}
					if Overlaps(as, ae, bs, be) != Overlaps(bs, be, as, ae) {
						t.Fatalf("asymmetric for [%s,%s) [%s,%s)", as, ae, bs, be)
					}
				}
			}
		}
	}
}

func TestOverlaps_Instants(t *testing.T) {
	base := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	hour := func(n int) int64 { return base.Add(time.Duration(n) * time.Hour).Unix() }

	if Overlaps(hour(0), hour(1), hour(1), hour(2)) {
		t.Error("adjacent instants must not overlap")
	}
	if !Overlaps(hour(0), hour(2), hour(1), hour(3)) {
		t.Error("expected overlap")
	}
}

func TestFindConflict(t *testing.T) {
	instructor := uuid.New()
	monday := Window{ID: uuid.New(), InstructorID: instructor, When: Weekly{Day: time.Monday}, Start: "14:00", End: "15:00", Active: true}
	dated := Window{ID: uuid.New(), InstructorID: instructor, When: NewOnDate(time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)), Start: "09:00", End: "12:00", Active: true}
	inactive := Window{ID: uuid.New(), InstructorID: instructor, When: Weekly{Day: time.Wednesday}, Start: "09:00", End: "17:00", Active: false}
	existing := []Window{monday, dated, inactive}

	tests := []struct {
		name      string
		candidate Window
		wantID    uuid.UUID
		wantFound bool
	}{
		{
			name:      "same weekday overlapping",
			candidate: Window{When: Weekly{Day: time.Monday}, Start: "14:30", End: "15:30", Active: true},
			wantID:    monday.ID,
			wantFound: true,
		},
		{
			name:      "same weekday touching",
			candidate: Window{When: Weekly{Day: time.Monday}, Start: "15:00", End: "16:00", Active: true},
			wantFound: false,
		},
		{
			name:      "different weekday identical times",
			candidate: Window{When: Weekly{Day: time.Tuesday}, Start: "14:00", End: "15:00", Active: true},
			wantFound: false,
		},
		{
			name:      "inactive window is ignored",
			candidate: Window{When: Weekly{Day: time.Wednesday}, Start: "10:00", End: "11:00", Active: true},
			wantFound: false,
		},
		{
			name:      "same date overlapping",
			candidate: Window{When: NewOnDate(time.Date(2026, 10, 20, 15, 0, 0, 0, time.UTC)), Start: "11:00", End: "13:00", Active: true},
			wantID:    dated.ID,
			wantFound: true,
		},
		{
			name:      "dated never conflicts with recurring on the same weekday",
			candidate: Window{When: NewOnDate(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)), Start: "14:00", End: "15:00", Active: true},
			wantFound: false,
		},
		{
			name:      "window does not conflict with itself",
			candidate: monday,
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := FindConflict(tt.candidate, existing)
			if found != tt.wantFound {
				t.Fatalf("expected found=%v, got %v (%+v)", tt.wantFound, found, got)
			}
			if found && got.ID != tt.wantID {
				t.Errorf("expected conflict with %s, got %s", tt.wantID, got.ID)
			}
		})
	}
}
