package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/tutor-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/tutor-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/tutor-scheduler/internal/httperr"
	"github.com/BruksfildServices01/tutor-scheduler/internal/models"
)

type ListInput struct {
	Caller identity.Caller

	// UserID is honoured for admins (either side of the booking) and for
	// parents (one of their students).
	UserID *uuid.UUID
	Status string
	From   *time.Time
	To     *time.Time
}

type ListBookings struct {
	repo domain.Repository
}

func NewListBookings(repo domain.Repository) *ListBookings {
	return &ListBookings{repo: repo}
}

func (uc *ListBookings) Execute(ctx context.Context, in ListInput) ([]models.Booking, error) {
	var f domain.ListFilter

	if in.Status != "" {
		s := domain.Status(in.Status)
		if !s.Valid() {
			return nil, httperr.Validation("invalid_status", "status must be SCHEDULED, COMPLETED, CANCELLED or NO_SHOW.")
		}
		f.Status = &s
	}
	if in.From != nil && in.To != nil && in.To.Before(*in.From) {
		return nil, httperr.Validation("invalid_time_range", "to must not be before from.")
	}
	f.From, f.To = in.From, in.To

	self := in.Caller.UserID
	foreign := in.UserID != nil && *in.UserID != self

	switch in.Caller.Role {
	case identity.RoleAdmin:
		f.ParticipantID = in.UserID

	case identity.RoleStudent:
		if foreign {
			return nil, httperr.Forbidden("not_own_bookings", "Students can only list their own bookings.")
		}
		f.StudentID = &self

	case identity.RoleInstructor:
		if foreign {
			return nil, httperr.Forbidden("not_own_bookings", "Instructors can only list their own bookings.")
		}
		f.InstructorID = &self

	case identity.RoleParent:
		if in.UserID == nil {
			return nil, httperr.Validation("user_id_required", "userId of one of your students is required.")
		}
		if err := uc.checkGuardian(ctx, self, *in.UserID); err != nil {
			return nil, err
		}
		f.StudentID = in.UserID

	default:
		return nil, httperr.Forbidden("unknown_role", "Role not allowed.")
	}

	out, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, httperr.Internal("booking_list_failed", err)
	}
	if out == nil {
		out = []models.Booking{}
	}
	return out, nil
}

func (uc *ListBookings) checkGuardian(ctx context.Context, parentID, studentID uuid.UUID) error {
	parent, err := uc.repo.GetUser(ctx, parentID)
	if err != nil {
		return httperr.Internal("booking_list_failed", err)
	}

	student, err := userWithRole(ctx, uc.repo, studentID, identity.RoleStudent,
		"student_not_found", "Student not found.")
	if err != nil {
		return err
	}

	if !student.IsGuardedBy(parent) {
		return httperr.Forbidden("not_guardian", "You can only list bookings of students you are the guardian of.")
	}
	return nil
}
