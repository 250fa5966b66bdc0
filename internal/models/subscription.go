package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	SubscriptionActive   = "ACTIVE"
	SubscriptionTrialing = "TRIALING"
	SubscriptionPastDue  = "PAST_DUE"
	SubscriptionCanceled = "CANCELED"
	SubscriptionInactive = "INACTIVE"
)

type Subscription struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User   User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Status           string     `gorm:"size:20;not null" json:"status"`
	CurrentPeriodEnd *time.Time `json:"current_period_end"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidSubscriptionStatus reports whether s is a known subscription state.
func ValidSubscriptionStatus(s string) bool {
	switch s {
	case SubscriptionActive, SubscriptionTrialing, SubscriptionPastDue, SubscriptionCanceled, SubscriptionInactive:
		return true
	}
	return false
}
