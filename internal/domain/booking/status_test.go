package booking

import "testing"

func TestIsForward(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusScheduled, StatusCompleted, true},
		{StatusScheduled, StatusCancelled, true},
		{StatusScheduled, StatusNoShow, true},
		{StatusScheduled, StatusScheduled, true},
		{StatusCancelled, StatusScheduled, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusNoShow, StatusCompleted, false},
	}

	for _, tt := range tests {
		if got := IsForward(tt.from, tt.to); got != tt.want {
			t.Errorf("IsForward(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestStatus_Valid(t *testing.T) {
	for _, s := range []Status{StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if Status("scheduled").Valid() {
		t.Error("status values are case sensitive")
	}
	if InitialStatus() != StatusScheduled {
		t.Error("bookings start SCHEDULED")
	}
}

func TestType_Valid(t *testing.T) {
	if !TypeOneOnOne.Valid() || !TypeGroup.Valid() {
		t.Error("known types must be valid")
	}
	if Type("PAIR").Valid() {
		t.Error("unknown type must be invalid")
	}
}
