package availability

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/tutor-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/tutor-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/tutor-scheduler/internal/domain/identity"
)

type DeleteWindow struct {
	repo  domain.Repository
	audit audit.Emitter
}

func NewDeleteWindow(repo domain.Repository, audit audit.Emitter) *DeleteWindow {
	return &DeleteWindow{repo: repo, audit: audit}
}

func (uc *DeleteWindow) Execute(ctx context.Context, caller identity.Caller, windowID uuid.UUID) error {
	w, err := uc.repo.Get(ctx, windowID)
	if err != nil {
		return storeErr("availability_delete_failed", err)
	}

	if !caller.CanActFor(w.InstructorID) {
		return errNotOwner()
	}

	if err := uc.repo.Delete(ctx, w.ID); err != nil {
		return storeErr("availability_delete_failed", err)
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:      &caller.UserID,
		Action:       "availability.deleted",
		ResourceType: "availability_window",
		ResourceID:   &w.ID,
		Summary:      fmt.Sprintf("Deleted availability %s %s-%s", describe(w.When), w.Start, w.End),
	})

	return nil
}
