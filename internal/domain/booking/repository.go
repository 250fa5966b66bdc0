package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/tutor-scheduler/internal/models"
)

// ListFilter narrows a booking listing. Nil fields are not applied.
// ParticipantID matches either side of the booking.
type ListFilter struct {
	StudentID     *uuid.UUID
	InstructorID  *uuid.UUID
	ParticipantID *uuid.UUID
	Status        *Status
	From          *time.Time
	To            *time.Time
}

type Repository interface {
	// -------- Users --------
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)

	// -------- Bookings --------
	Create(ctx context.Context, b *models.Booking) error
	Get(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	Update(ctx context.Context, b *models.Booking) error
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns bookings ordered by starts_at ascending.
	List(ctx context.Context, f ListFilter) ([]models.Booking, error)
}
