package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/tutor-scheduler/internal/models"
)

type UserRefDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type BookingDTO struct {
	ID         uuid.UUID  `json:"id"`
	Student    UserRefDTO `json:"student"`
	Instructor UserRefDTO `json:"instructor"`
	CourseID   *uuid.UUID `json:"course_id"`
	StartsAt   time.Time  `json:"starts_at"`
	EndsAt     time.Time  `json:"ends_at"`
	Type       string     `json:"type"`
	Status     string     `json:"status"`
	Notes      string     `json:"notes"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func FromBooking(b models.Booking) BookingDTO {
	return BookingDTO{
		ID:         b.ID,
		Student:    UserRefDTO{ID: b.StudentID, Name: b.Student.Name},
		Instructor: UserRefDTO{ID: b.InstructorID, Name: b.Instructor.Name},
		CourseID:   b.CourseID,
		StartsAt:   b.StartsAt,
		EndsAt:     b.EndsAt,
		Type:       b.Type,
		Status:     b.Status,
		Notes:      b.Notes,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

func FromBookings(bs []models.Booking) []BookingDTO {
	out := make([]BookingDTO, 0, len(bs))
	for _, b := range bs {
		out = append(out, FromBooking(b))
	}
	return out
}

type SessionRequestDTO struct {
	ID         uuid.UUID  `json:"id"`
	Student    UserRefDTO `json:"student"`
	Instructor UserRefDTO `json:"instructor"`
	Message    string     `json:"message"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
}

func FromSessionRequest(r models.SessionRequest) SessionRequestDTO {
	return SessionRequestDTO{
		ID:         r.ID,
		Student:    UserRefDTO{ID: r.StudentID, Name: r.Student.Name},
		Instructor: UserRefDTO{ID: r.InstructorID, Name: r.Instructor.Name},
		Message:    r.Message,
		Status:     r.Status,
		CreatedAt:  r.CreatedAt,
	}
}

func FromSessionRequests(rs []models.SessionRequest) []SessionRequestDTO {
	out := make([]SessionRequestDTO, 0, len(rs))
	for _, r := range rs {
		out = append(out, FromSessionRequest(r))
	}
	return out
}
