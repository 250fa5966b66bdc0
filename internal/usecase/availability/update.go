package availability

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/tutor-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/tutor-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/tutor-scheduler/internal/domain/identity"
)

type UpdateInput struct {
	Caller   identity.Caller
	WindowID uuid.UUID

	IsActive  *bool
	StartTime *string
	EndTime   *string
}

type UpdateWindow struct {
	repo  domain.Repository
	audit audit.Emitter
}

func NewUpdateWindow(repo domain.Repository, audit audit.Emitter) *UpdateWindow {
	return &UpdateWindow{repo: repo, audit: audit}
}

// Execute applies the patch after the ownership check. Time range edits
// are not re-checked for overlaps here; the store's exclusion constraint
// is the only guard and surfaces as a conflict.
func (uc *UpdateWindow) Execute(ctx context.Context, in UpdateInput) (*domain.Window, error) {
	w, err := uc.repo.Get(ctx, in.WindowID)
	if err != nil {
		return nil, storeErr("availability_update_failed", err)
	}

	if !in.Caller.CanActFor(w.InstructorID) {
		return nil, errNotOwner()
	}

	start, end := string(w.Start), string(w.End)
	if in.StartTime != nil {
		start = *in.StartTime
	}
	if in.EndTime != nil {
		end = *in.EndTime
	}

	w.Start, w.End, err = validateRange(start, end)
	if err != nil {
		return nil, err
	}
	if in.IsActive != nil {
		w.Active = *in.IsActive
	}

	if err := uc.repo.Update(ctx, w); err != nil {
		return nil, storeErr("availability_update_failed", err)
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:      &in.Caller.UserID,
		Action:       "availability.updated",
		ResourceType: "availability_window",
		ResourceID:   &w.ID,
		Summary:      fmt.Sprintf("Updated availability %s %s-%s (active=%t)", describe(w.When), w.Start, w.End, w.Active),
	})

	return w, nil
}
