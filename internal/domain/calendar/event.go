package calendar

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/tutor-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/tutor-scheduler/internal/models"
)

type EventType string

const (
	EventSession      EventType = "session"
	EventAvailability EventType = "availability"
	EventRequest      EventType = "request"
)

// Color tags per event type, consumed by the admin calendar UI.
const (
	ColorSession      = "#2563eb"
	ColorAvailability = "#16a34a"
	ColorRequest      = "#f59e0b"
)

// RequestPlaceholder is the duration shown for requests that have no
// committed time yet.
const RequestPlaceholder = time.Hour

// Event is a read-only projection. It is never persisted.
type Event struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Type           EventType `json:"type"`
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	InstructorID   uuid.UUID `json:"instructor_id"`
	InstructorName string    `json:"instructor_name"`
	AttendeeCount  int       `json:"attendee_count,omitempty"`
	Color          string    `json:"color"`
}

// WindowRow is an active availability window with its instructor's name.
type WindowRow struct {
	Window         availability.Window
	InstructorName string
}

// Source is the read side the aggregator pulls from. Implementations never
// write.
type Source interface {
	// ListSessions returns non-cancelled bookings intersecting [start, end]
	// with Instructor preloaded.
	ListSessions(ctx context.Context, start, end time.Time) ([]models.Booking, error)

	// ListActiveWindows returns active recurring windows and active dated
	// windows whose date falls inside [start, end].
	ListActiveWindows(ctx context.Context, start, end time.Time) ([]WindowRow, error)

	// ListPendingRequests returns pending requests created inside
	// [start, end] with Student and Instructor preloaded.
	ListPendingRequests(ctx context.Context, start, end time.Time) ([]models.SessionRequest, error)
}
