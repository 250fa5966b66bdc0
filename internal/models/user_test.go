package models

import "testing"

func TestUser_IsGuardedBy(t *testing.T) {
	guardian := func(s string) *string { return &s }

	parent := &User{Email: "pat@example.com"}

	tests := []struct {
		name    string
		student User
		parent  *User
		want    bool
	}{
		{"exact", User{GuardianEmail: guardian("pat@example.com")}, parent, true},
		{"case and padding", User{GuardianEmail: guardian(" Pat@Example.COM ")}, parent, true},
		{"other guardian", User{GuardianEmail: guardian("someone@example.com")}, parent, false},
		{"no guardian", User{}, parent, false},
		{"no parent", User{GuardianEmail: guardian("pat@example.com")}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.student.IsGuardedBy(tt.parent); got != tt.want {
				t.Fatalf("IsGuardedBy = %v, want %v", got, tt.want)
			}
		})
	}
}
