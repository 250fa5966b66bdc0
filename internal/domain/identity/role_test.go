package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
		ok   bool
	}{
		{"STUDENT", RoleStudent, true},
		{" parent ", RoleParent, true},
		{"Instructor", RoleInstructor, true},
		{"admin", RoleAdmin, true},
		{"owner", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseRole(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseRole(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCaller_CanActFor(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	if !(Caller{UserID: owner, Role: RoleInstructor}).CanActFor(owner) {
		t.Error("owner must be able to act on own resource")
	}
	if (Caller{UserID: other, Role: RoleInstructor}).CanActFor(owner) {
		t.Error("another instructor must not act on the resource")
	}
	if !(Caller{UserID: other, Role: RoleAdmin}).CanActFor(owner) {
		t.Error("admin must be able to act on behalf of the owner")
	}
}

func TestCaller_RequiresEntitlement(t *testing.T) {
	for role, want := range map[Role]bool{
		RoleStudent:    true,
		RoleParent:     true,
		RoleInstructor: false,
		RoleAdmin:      false,
	} {
		if got := (Caller{Role: role}).RequiresEntitlement(); got != want {
			t.Errorf("%s: expected %v, got %v", role, want, got)
		}
	}
}
