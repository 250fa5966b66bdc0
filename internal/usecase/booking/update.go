package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/tutor-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/tutor-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/tutor-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/tutor-scheduler/internal/httperr"
	"github.com/BruksfildServices01/tutor-scheduler/internal/models"
)

type UpdateInput struct {
	Caller    identity.Caller
	BookingID uuid.UUID

	Status   *string
	StartsAt *time.Time
	EndsAt   *time.Time
	Notes    *string
}

type UpdateBooking struct {
	repo  domain.Repository
	audit audit.Emitter
	log   *zap.Logger
}

func NewUpdateBooking(repo domain.Repository, audit audit.Emitter, log *zap.Logger) *UpdateBooking {
	return &UpdateBooking{repo: repo, audit: audit, log: log}
}

// Execute applies the patch. Any participant may set any status; moves
// that leave a terminal state are accepted and logged.
func (uc *UpdateBooking) Execute(ctx context.Context, in UpdateInput) (*models.Booking, error) {
	b, err := uc.repo.Get(ctx, in.BookingID)
	if err != nil {
		return nil, storeErr("booking_update_failed", err)
	}

	if !canAccess(in.Caller, b) {
		return nil, errNoAccess()
	}

	from := domain.Status(b.Status)
	to := from

	if in.Status != nil {
		to = domain.Status(*in.Status)
		if !to.Valid() {
			return nil, httperr.Validation("invalid_status", "status must be SCHEDULED, COMPLETED, CANCELLED or NO_SHOW.")
		}
	}

	starts, ends := b.StartsAt, b.EndsAt
	if in.StartsAt != nil {
		starts = in.StartsAt.UTC()
	}
	if in.EndsAt != nil {
		ends = in.EndsAt.UTC()
	}
	if !starts.Before(ends) {
		return nil, httperr.Validation("invalid_time_range", "starts_at must be before ends_at.")
	}

	if !domain.IsForward(from, to) {
		uc.log.Warn("booking status moved against the lifecycle",
			zap.String("booking_id", b.ID.String()),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
			zap.String("caller_id", in.Caller.UserID.String()),
		)
	}

	b.Status = string(to)
	b.StartsAt, b.EndsAt = starts, ends
	if in.Notes != nil {
		b.Notes = *in.Notes
	}

	if err := uc.repo.Update(ctx, b); err != nil {
		return nil, storeErr("booking_update_failed", err)
	}

	summary := fmt.Sprintf("Booking %s updated", b.ID)
	if from != to {
		summary = fmt.Sprintf("Booking %s moved %s -> %s", b.ID, from, to)
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:      &in.Caller.UserID,
		Action:       "booking.updated",
		ResourceType: "booking",
		ResourceID:   &b.ID,
		Summary:      summary,
		Metadata: map[string]any{
			"from_status": string(from),
			"to_status":   string(to),
			"caller_role": string(in.Caller.Role),
		},
	})

	return b, nil
}
