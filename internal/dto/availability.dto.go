package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/tutor-scheduler/internal/domain/availability"
)

type WindowDTO struct {
	ID           uuid.UUID `json:"id"`
	InstructorID uuid.UUID `json:"instructor_id"`
	IsRecurring  bool      `json:"is_recurring"`
	DayOfWeek    *int      `json:"day_of_week"`
	SpecificDate *string   `json:"specific_date"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type WindowListDTO struct {
	InstructorID uuid.UUID   `json:"instructor_id"`
	View         string      `json:"view"`
	Windows      []WindowDTO `json:"windows"`
}

func FromWindow(w availability.Window) WindowDTO {
	out := WindowDTO{
		ID:           w.ID,
		InstructorID: w.InstructorID,
		IsRecurring:  w.When.Recurring(),
		StartTime:    string(w.Start),
		EndTime:      string(w.End),
		IsActive:     w.Active,
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    w.UpdatedAt,
	}

	switch o := w.When.(type) {
	case availability.Weekly:
		day := int(o.Day)
		out.DayOfWeek = &day
	case availability.OnDate:
		date := o.String()
		out.SpecificDate = &date
	}
	return out
}

func FromWindows(ws []availability.Window) []WindowDTO {
	out := make([]WindowDTO, 0, len(ws))
	for _, w := range ws {
		out = append(out, FromWindow(w))
	}
	return out
}
