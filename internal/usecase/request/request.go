package request

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/tutor-scheduler/internal/audit"
	"github.com/BruksfildServices01/tutor-scheduler/internal/domain/identity"
	domain "github.com/BruksfildServices01/tutor-scheduler/internal/domain/request"
	"github.com/BruksfildServices01/tutor-scheduler/internal/httperr"
	"github.com/BruksfildServices01/tutor-scheduler/internal/models"
)

func storeErr(code string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.NotFound("request_not_found", "Session request not found.")
	}
	return httperr.FromStore(code, err)
}

func loadRole(ctx context.Context, repo domain.Repository, id uuid.UUID, role identity.Role, code, message string) (*models.User, error) {
	u, err := repo.GetUser(ctx, id)
	if errors.Is(err, identity.ErrUserNotFound) || (err == nil && u.Role != string(role)) {
		return nil, httperr.NotFound(code, message)
	}
	if err != nil {
		return nil, httperr.Internal("user_lookup_failed", err)
	}
	return u, nil
}

// ======================================================
// CREATE
// ======================================================

type CreateInput struct {
	Caller       identity.Caller
	StudentID    uuid.UUID
	InstructorID uuid.UUID
	Message      string
}

type CreateRequest struct {
	repo  domain.Repository
	audit audit.Emitter
}

func NewCreateRequest(repo domain.Repository, audit audit.Emitter) *CreateRequest {
	return &CreateRequest{repo: repo, audit: audit}
}

func (uc *CreateRequest) Execute(ctx context.Context, in CreateInput) (*models.SessionRequest, error) {
	if in.InstructorID == uuid.Nil {
		return nil, httperr.Validation("missing_fields", "instructor_id is required.")
	}

	studentID := in.StudentID
	switch in.Caller.Role {
	case identity.RoleStudent:
		if studentID != uuid.Nil && studentID != in.Caller.UserID {
			return nil, httperr.Forbidden("not_own_request", "Students can only request sessions for themselves.")
		}
		studentID = in.Caller.UserID
	case identity.RoleParent:
		if studentID == uuid.Nil {
			return nil, httperr.Validation("missing_fields", "student_id is required.")
		}
	default:
		return nil, httperr.Forbidden("role_not_allowed", "Only students and parents can request sessions.")
	}

	student, err := loadRole(ctx, uc.repo, studentID, identity.RoleStudent, "student_not_found", "Student not found.")
	if err != nil {
		return nil, err
	}

	if in.Caller.Role == identity.RoleParent {
		parent, err := uc.repo.GetUser(ctx, in.Caller.UserID)
		if err != nil {
			return nil, httperr.Internal("user_lookup_failed", err)
		}
		if !student.IsGuardedBy(parent) {
			return nil, httperr.Forbidden("not_guardian", "You can only request sessions for students you are the guardian of.")
		}
	}

	instructor, err := loadRole(ctx, uc.repo, in.InstructorID, identity.RoleInstructor, "instructor_not_found", "Instructor not found.")
	if err != nil {
		return nil, err
	}

	sr := &models.SessionRequest{
		StudentID:    student.ID,
		InstructorID: instructor.ID,
		Message:      strings.TrimSpace(in.Message),
		Status:       string(domain.StatusPending),
	}
	if err := uc.repo.Create(ctx, sr); err != nil {
		return nil, storeErr("request_create_failed", err)
	}
	sr.Student, sr.Instructor = *student, *instructor

	uc.audit.Dispatch(audit.Event{
		ActorID:      &in.Caller.UserID,
		Action:       "request.created",
		ResourceType: "session_request",
		ResourceID:   &sr.ID,
		Summary:      fmt.Sprintf("%s asked %s for a session", student.Name, instructor.Name),
	})

	return sr, nil
}

// ======================================================
// LIST PENDING
// ======================================================

type ListPending struct {
	repo domain.Repository
}

func NewListPending(repo domain.Repository) *ListPending {
	return &ListPending{repo: repo}
}

func (uc *ListPending) Execute(ctx context.Context, caller identity.Caller) ([]models.SessionRequest, error) {
	var instructorID *uuid.UUID

	switch caller.Role {
	case identity.RoleAdmin:
	case identity.RoleInstructor:
		instructorID = &caller.UserID
	default:
		return nil, httperr.Forbidden("role_not_allowed", "Only instructors and admins can list pending requests.")
	}

	out, err := uc.repo.ListPending(ctx, instructorID)
	if err != nil {
		return nil, httperr.Internal("request_list_failed", err)
	}
	if out == nil {
		out = []models.SessionRequest{}
	}
	return out, nil
}

// ======================================================
// RESOLVE
// ======================================================

type ResolveInput struct {
	Caller    identity.Caller
	RequestID uuid.UUID
	Status    string
}

type ResolveRequest struct {
	repo  domain.Repository
	audit audit.Emitter
}

func NewResolveRequest(repo domain.Repository, audit audit.Emitter) *ResolveRequest {
	return &ResolveRequest{repo: repo, audit: audit}
}

func (uc *ResolveRequest) Execute(ctx context.Context, in ResolveInput) (*models.SessionRequest, error) {
	next := domain.Status(in.Status)
	if next != domain.StatusAccepted && next != domain.StatusDeclined {
		return nil, httperr.Validation("invalid_status", "status must be ACCEPTED or DECLINED.")
	}

	sr, err := uc.repo.Get(ctx, in.RequestID)
	if err != nil {
		return nil, storeErr("request_update_failed", err)
	}

	if !in.Caller.IsAdmin() && in.Caller.UserID != sr.InstructorID {
		return nil, httperr.Forbidden("not_addressed_instructor", "Only the addressed instructor or an admin can answer this request.")
	}

	current := domain.Status(sr.Status)
	if !domain.CanResolve(current, next) {
		return nil, httperr.Conflict("request_already_resolved", fmt.Sprintf("Request is already %s.", current))
	}

	sr.Status = string(next)
	if err := uc.repo.Update(ctx, sr); err != nil {
		return nil, storeErr("request_update_failed", err)
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:      &in.Caller.UserID,
		Action:       "request." + strings.ToLower(string(next)),
		ResourceType: "session_request",
		ResourceID:   &sr.ID,
		Summary:      fmt.Sprintf("Request from %s %s", sr.Student.Name, strings.ToLower(string(next))),
	})

	return sr, nil
}
