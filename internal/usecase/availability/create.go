package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/tutor-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/tutor-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/tutor-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/tutor-scheduler/internal/httperr"
)

// ======================================================
// INPUT
// ======================================================

type CreateInput struct {
	Caller identity.Caller

	// InstructorID lets an admin act for an instructor. Instructors leave
	// it Nil or set their own id.
	InstructorID uuid.UUID

	IsRecurring  bool
	DayOfWeek    *int
	SpecificDate string

	StartTime string
	EndTime   string
	IsActive  *bool
}

// ======================================================
// USE CASE
// ======================================================

type CreateWindow struct {
	repo  domain.Repository
	audit audit.Emitter
}

func NewCreateWindow(repo domain.Repository, audit audit.Emitter) *CreateWindow {
	return &CreateWindow{repo: repo, audit: audit}
}

func (uc *CreateWindow) Execute(ctx context.Context, in CreateInput) (*domain.Window, error) {

	// --------------------------------------------------
	// Owner
	// --------------------------------------------------
	instructorID := in.InstructorID
	if instructorID == uuid.Nil {
		if in.Caller.IsAdmin() {
			return nil, httperr.Validation("instructor_required", "instructor_id is required when acting as admin.")
		}
		instructorID = in.Caller.UserID
	}
	if !in.Caller.CanActFor(instructorID) {
		return nil, errNotOwner()
	}

	// --------------------------------------------------
	// Fields
	// --------------------------------------------------
	if in.StartTime == "" || in.EndTime == "" {
		return nil, httperr.Validation("missing_fields", "start_time and end_time are required.")
	}

	when, err := occurrenceOf(in)
	if err != nil {
		return nil, err
	}

	start, end, err := validateRange(in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	exists, err := uc.repo.InstructorExists(ctx, instructorID)
	if err != nil {
		return nil, httperr.Internal("availability_create_failed", err)
	}
	if !exists {
		return nil, errInstructorNotFound()
	}

	w := &domain.Window{
		InstructorID: instructorID,
		When:         when,
		Start:        start,
		End:          end,
		Active:       active,
	}

	// --------------------------------------------------
	// Overlap check + insert, serialised per instructor
	// --------------------------------------------------
	err = uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		if err := tx.LockInstructor(ctx, instructorID); err != nil {
			return err
		}

		existing, err := tx.ListActiveMatching(ctx, instructorID, when)
		if err != nil {
			return err
		}

		if clash, found := domain.FindConflict(*w, existing); found {
			return httperr.Conflict(
				"time_conflict",
				fmt.Sprintf("Overlaps the existing window %s-%s.", clash.Start, clash.End),
			)
		}

		return tx.Create(ctx, w)
	})
	if err != nil {
		return nil, storeErr("availability_create_failed", err)
	}

	// --------------------------------------------------
	// Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		ActorID:      &in.Caller.UserID,
		Action:       "availability.created",
		ResourceType: "availability_window",
		ResourceID:   &w.ID,
		Summary:      fmt.Sprintf("Created availability %s %s-%s", describe(w.When), w.Start, w.End),
		Metadata: map[string]any{
			"instructor_id": instructorID.String(),
			"is_active":     w.Active,
		},
	})

	return w, nil
}

func occurrenceOf(in CreateInput) (domain.Occurrence, error) {
	if in.IsRecurring {
		if in.SpecificDate != "" {
			return nil, httperr.Validation("ambiguous_occurrence", "Recurring windows take day_of_week, not specific_date.")
		}
		if in.DayOfWeek == nil {
			return nil, httperr.Validation("missing_fields", "day_of_week is required for recurring windows.")
		}
		if *in.DayOfWeek < 0 || *in.DayOfWeek > 6 {
			return nil, httperr.Validation("invalid_day_of_week", "day_of_week must be between 0 (Sunday) and 6 (Saturday).")
		}
		return domain.Weekly{Day: time.Weekday(*in.DayOfWeek)}, nil
	}

	if in.DayOfWeek != nil {
		return nil, httperr.Validation("ambiguous_occurrence", "One-off windows take specific_date, not day_of_week.")
	}
	if in.SpecificDate == "" {
		return nil, httperr.Validation("missing_fields", "specific_date is required for one-off windows.")
	}
	date, err := time.Parse(time.DateOnly, in.SpecificDate)
	if err != nil {
		return nil, httperr.Validation("invalid_date", "specific_date must be YYYY-MM-DD.")
	}
	return domain.NewOnDate(date), nil
}

func describe(o domain.Occurrence) string {
	switch v := o.(type) {
	case domain.Weekly:
		return v.Day.String()
	case domain.OnDate:
		return v.String()
	}
	return "?"
}
