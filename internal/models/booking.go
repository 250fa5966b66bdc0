package models

import (
	"time"

	"github.com/google/uuid"
)

type Booking struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	StudentID uuid.UUID `gorm:"type:uuid;not null;index" json:"student_id"`
	Student   User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"student"`

	InstructorID uuid.UUID `gorm:"type:uuid;not null;index" json:"instructor_id"`
	Instructor   User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"instructor"`

	CourseID *uuid.UUID `gorm:"type:uuid" json:"course_id"`

	StartsAt time.Time `gorm:"not null" json:"starts_at"`
	EndsAt   time.Time `gorm:"not null" json:"ends_at"`

	Type   string `gorm:"size:20;not null" json:"type"`
	Status string `gorm:"size:20;not null;default:'SCHEDULED'" json:"status"`
	Notes  string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
