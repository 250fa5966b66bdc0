package identity

import (
	"strings"

	"github.com/google/uuid"
)

type Role string

const (
	RoleStudent    Role = "STUDENT"
	RoleParent     Role = "PARENT"
	RoleInstructor Role = "INSTRUCTOR"
	RoleAdmin      Role = "ADMIN"
)

func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	switch r {
	case RoleStudent, RoleParent, RoleInstructor, RoleAdmin:
		return r, true
	}
	return "", false
}

// Caller is the authenticated identity performing an operation.
type Caller struct {
	UserID uuid.UUID
	Role   Role
}

func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// RequiresEntitlement reports whether bookings made by this caller must be
// backed by an active subscription.
func (c Caller) RequiresEntitlement() bool {
	return c.Role == RoleStudent || c.Role == RoleParent
}

// CanActFor reports whether the caller may mutate a resource owned by ownerID.
func (c Caller) CanActFor(ownerID uuid.UUID) bool {
	return c.IsAdmin() || c.UserID == ownerID
}
