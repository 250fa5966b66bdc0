package models

import (
	"time"

	"github.com/google/uuid"
)

// SessionRequest is a student's ask for a session that has no committed
// time yet.
type SessionRequest struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	StudentID uuid.UUID `gorm:"type:uuid;not null;index" json:"student_id"`
	Student   User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"student"`

	InstructorID uuid.UUID `gorm:"type:uuid;not null;index" json:"instructor_id"`
	Instructor   User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"instructor"`

	Message string `gorm:"type:text" json:"message"`
	Status  string `gorm:"size:20;not null;default:'PENDING'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
