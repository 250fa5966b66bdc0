package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func assignID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func (u *User) BeforeCreate(*gorm.DB) error {
	assignID(&u.ID)
	return nil
}

func (s *Subscription) BeforeCreate(*gorm.DB) error {
	assignID(&s.ID)
	return nil
}

func (w *AvailabilityWindow) BeforeCreate(*gorm.DB) error {
	assignID(&w.ID)
	return nil
}

func (b *Booking) BeforeCreate(*gorm.DB) error {
	assignID(&b.ID)
	return nil
}

func (r *SessionRequest) BeforeCreate(*gorm.DB) error {
	assignID(&r.ID)
	return nil
}

func (a *AuditLog) BeforeCreate(*gorm.DB) error {
	assignID(&a.ID)
	return nil
}
