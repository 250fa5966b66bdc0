package booking

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/tutor-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/tutor-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/tutor-scheduler/internal/domain/identity"
)

type DeleteBooking struct {
	repo  domain.Repository
	audit audit.Emitter
}

func NewDeleteBooking(repo domain.Repository, audit audit.Emitter) *DeleteBooking {
	return &DeleteBooking{repo: repo, audit: audit}
}

// Execute hard deletes the booking. Cancelling is an Update to CANCELLED.
func (uc *DeleteBooking) Execute(ctx context.Context, caller identity.Caller, bookingID uuid.UUID) error {
	b, err := uc.repo.Get(ctx, bookingID)
	if err != nil {
		return storeErr("booking_delete_failed", err)
	}

	if !canAccess(caller, b) {
		return errNoAccess()
	}

	if err := uc.repo.Delete(ctx, b.ID); err != nil {
		return storeErr("booking_delete_failed", err)
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:      &caller.UserID,
		Action:       "booking.deleted",
		ResourceType: "booking",
		ResourceID:   &b.ID,
		Summary: fmt.Sprintf("Deleted %s booking between %s and %s",
			b.Status, b.Student.Name, b.Instructor.Name),
	})

	return nil
}
