package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AvailabilityWindow is the row shape of a window. Exactly one of
// DayOfWeek and SpecificDate is set; the table enforces it.
type AvailabilityWindow struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	InstructorID uuid.UUID `gorm:"type:uuid;not null;index" json:"instructor_id"`
	Instructor   User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	DayOfWeek    *int16          `json:"day_of_week"`
	SpecificDate *datatypes.Date `json:"specific_date"`

	StartTime string `gorm:"type:char(5);not null" json:"start_time"`
	EndTime   string `gorm:"type:char(5);not null" json:"end_time"`
	IsActive  bool   `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
