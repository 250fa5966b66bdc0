package availability

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/tutor-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/tutor-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/tutor-scheduler/internal/httperr"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type ListInput struct {
	// Caller is nil for anonymous viewers.
	Caller *identity.Caller

	// InstructorID may be Nil when the caller is an instructor reading
	// their own windows.
	InstructorID uuid.UUID

	// Month narrows dated windows in the public view.
	Month *domain.Month
}

type ListOutput struct {
	InstructorID uuid.UUID
	Private      bool
	Windows      []domain.Window
}

// ======================================================
// USE CASE
// ======================================================

type ListWindows struct {
	repo domain.Repository
}

func NewListWindows(repo domain.Repository) *ListWindows {
	return &ListWindows{repo: repo}
}

func (uc *ListWindows) Execute(ctx context.Context, in ListInput) (*ListOutput, error) {
	instructorID := in.InstructorID
	if instructorID == uuid.Nil {
		if in.Caller == nil || in.Caller.Role != identity.RoleInstructor {
			return nil, httperr.Validation("instructor_required", "Query parameter instructor is required.")
		}
		instructorID = in.Caller.UserID
	}

	exists, err := uc.repo.InstructorExists(ctx, instructorID)
	if err != nil {
		return nil, httperr.Internal("availability_list_failed", err)
	}
	if !exists {
		return nil, errInstructorNotFound()
	}

	private := in.Caller != nil && in.Caller.CanActFor(instructorID)

	windows, err := uc.repo.ListByInstructor(ctx, instructorID, !private)
	if err != nil {
		return nil, httperr.Internal("availability_list_failed", err)
	}

	if !private && in.Month != nil {
		visible := windows[:0]
		for _, w := range windows {
			if w.VisibleIn(*in.Month) {
				visible = append(visible, w)
			}
		}
		windows = visible
	}

	domain.Sort(windows)

	return &ListOutput{
		InstructorID: instructorID,
		Private:      private,
		Windows:      windows,
	}, nil
}
