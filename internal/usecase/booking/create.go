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
	"github.com/BruksfildServices01/tutor-scheduler/internal/entitlement"
	"github.com/BruksfildServices01/tutor-scheduler/internal/httperr"
	"github.com/BruksfildServices01/tutor-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateInput struct {
	Caller identity.Caller

	// StudentID is implied for students and required for everyone else.
	StudentID    uuid.UUID
	InstructorID uuid.UUID
	CourseID     *uuid.UUID

	StartsAt time.Time
	EndsAt   time.Time
	Type     string
	Notes    string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo        domain.Repository
	entitlement entitlement.Checker
	audit       audit.Emitter
	log         *zap.Logger
}

func NewCreateBooking(
	repo domain.Repository,
	entitlement entitlement.Checker,
	audit audit.Emitter,
	log *zap.Logger,
) *CreateBooking {
	return &CreateBooking{
		repo:        repo,
		entitlement: entitlement,
		audit:       audit,
		log:         log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute creates a SCHEDULED booking. The instructor's existing bookings
// are not checked for conflicts.
func (uc *CreateBooking) Execute(ctx context.Context, in CreateInput) (*models.Booking, error) {

	// --------------------------------------------------
	// Fields
	// --------------------------------------------------
	if in.InstructorID == uuid.Nil {
		return nil, httperr.Validation("missing_fields", "instructor_id is required.")
	}
	if in.StartsAt.IsZero() || in.EndsAt.IsZero() {
		return nil, httperr.Validation("missing_fields", "starts_at and ends_at are required.")
	}
	if !in.StartsAt.Before(in.EndsAt) {
		return nil, httperr.Validation("invalid_time_range", "starts_at must be before ends_at.")
	}

	kind := domain.TypeOneOnOne
	if in.Type != "" {
		kind = domain.Type(in.Type)
	}
	if !kind.Valid() {
		return nil, httperr.Validation("invalid_type", "type must be ONE_ON_ONE or GROUP.")
	}

	// --------------------------------------------------
	// Participants
	// --------------------------------------------------
	student, err := uc.resolveStudent(ctx, in)
	if err != nil {
		return nil, err
	}

	if in.Caller.Role == identity.RoleInstructor && in.InstructorID != in.Caller.UserID {
		return nil, httperr.Forbidden("not_own_booking", "Instructors can only book sessions for themselves.")
	}

	instructor, err := userWithRole(ctx, uc.repo, in.InstructorID, identity.RoleInstructor,
		"instructor_not_found", "Instructor not found.")
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Entitlement
	// --------------------------------------------------
	if in.Caller.RequiresEntitlement() {
		billingID, err := billingIdentity(ctx, uc.repo, in.Caller, student)
		if err != nil {
			return nil, httperr.Internal("entitlement_check_failed", err)
		}

		ok, err := uc.entitlement.IsEntitled(ctx, billingID)
		if err != nil {
			return nil, httperr.Internal("entitlement_check_failed", err)
		}
		if !ok {
			uc.log.Info("booking rejected without entitlement",
				zap.String("caller_id", in.Caller.UserID.String()),
				zap.String("billing_id", billingID.String()),
			)
			return nil, httperr.EntitlementRequired()
		}
	}

	// --------------------------------------------------
	// Persist
	// --------------------------------------------------
	b := &models.Booking{
		StudentID:    student.ID,
		InstructorID: instructor.ID,
		CourseID:     in.CourseID,
		StartsAt:     in.StartsAt.UTC(),
		EndsAt:       in.EndsAt.UTC(),
		Type:         string(kind),
		Status:       string(domain.InitialStatus()),
		Notes:        in.Notes,
	}

	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, storeErr("booking_create_failed", err)
	}

	b.Student = *student
	b.Instructor = *instructor

	// --------------------------------------------------
	// Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		ActorID:      &in.Caller.UserID,
		Action:       "booking.created",
		ResourceType: "booking",
		ResourceID:   &b.ID,
		Summary: fmt.Sprintf("%s booked %s with %s at %s",
			student.Name, kind, instructor.Name, b.StartsAt.Format(time.RFC3339)),
		Metadata: map[string]any{
			"student_id":    student.ID.String(),
			"instructor_id": instructor.ID.String(),
			"caller_role":   string(in.Caller.Role),
		},
	})

	return b, nil
}

func (uc *CreateBooking) resolveStudent(ctx context.Context, in CreateInput) (*models.User, error) {
	studentID := in.StudentID

	if in.Caller.Role == identity.RoleStudent {
		if studentID != uuid.Nil && studentID != in.Caller.UserID {
			return nil, httperr.Forbidden("not_own_booking", "Students can only book sessions for themselves.")
		}
		studentID = in.Caller.UserID
	}

	if studentID == uuid.Nil {
		return nil, httperr.Validation("missing_fields", "student_id is required.")
	}

	student, err := userWithRole(ctx, uc.repo, studentID, identity.RoleStudent,
		"student_not_found", "Student not found.")
	if err != nil {
		return nil, err
	}

	if in.Caller.Role == identity.RoleParent {
		parent, err := uc.repo.GetUser(ctx, in.Caller.UserID)
		if err != nil {
			return nil, storeErr("booking_create_failed", err)
		}
		if !student.IsGuardedBy(parent) {
			return nil, httperr.Forbidden("not_guardian", "You can only book sessions for students you are the guardian of.")
		}
	}

	return student, nil
}
