package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name          string  `gorm:"size:100;not null" json:"name"`
	Email         string  `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash  string  `gorm:"size:255;not null" json:"-"`
	Role          string  `gorm:"size:20;not null" json:"role"`
	GuardianEmail *string `gorm:"size:100" json:"guardian_email,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsGuardedBy reports whether parent is the declared guardian of u.
func (u *User) IsGuardedBy(parent *User) bool {
	if u.GuardianEmail == nil || parent == nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(*u.GuardianEmail), strings.TrimSpace(parent.Email))
}
