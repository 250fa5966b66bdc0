package booking

import (
	"context"
	"errors"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/tutor-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/tutor-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/tutor-scheduler/internal/httperr"
	"github.com/BruksfildServices01/tutor-scheduler/internal/models"
)

func errBookingNotFound() error {
	return httperr.NotFound("booking_not_found", "Booking not found.")
}

func errNoAccess() error {
	return httperr.Forbidden("not_booking_participant", "Only the booking's student, its instructor or an admin may change it.")
}

func storeErr(code string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return errBookingNotFound()
	}
	return httperr.FromStore(code, err)
}

// canAccess reports whether caller may update or delete b.
func canAccess(caller identity.Caller, b *models.Booking) bool {
	return caller.IsAdmin() || caller.UserID == b.StudentID || caller.UserID == b.InstructorID
}

// userWithRole loads id and checks its role. Missing users and role
// mismatches are both reported as not found.
func userWithRole(
	ctx context.Context,
	repo domain.Repository,
	id uuid.UUID,
	role identity.Role,
	code string,
	message string,
) (*models.User, error) {

	u, err := repo.GetUser(ctx, id)
	if errors.Is(err, identity.ErrUserNotFound) || (err == nil && u.Role != string(role)) {
		return nil, httperr.NotFound(code, message)
	}
	if err != nil {
		return nil, httperr.Internal("user_lookup_failed", err)
	}
	return u, nil
}
