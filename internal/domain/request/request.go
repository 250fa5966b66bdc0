package request

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/tutor-scheduler/internal/models"
)

var ErrNotFound = errors.New("request: not found")

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusAccepted Status = "ACCEPTED"
	StatusDeclined Status = "DECLINED"
)

// CanResolve reports whether a request in current may move to next.
// Only pending requests are resolved, and only to a final answer.
func CanResolve(current, next Status) bool {
	return current == StatusPending && (next == StatusAccepted || next == StatusDeclined)
}

type Repository interface {
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)

	Create(ctx context.Context, r *models.SessionRequest) error
	Get(ctx context.Context, id uuid.UUID) (*models.SessionRequest, error)
	Update(ctx context.Context, r *models.SessionRequest) error

	// ListPending returns pending requests, oldest first. A nil
	// instructorID lists every instructor.
	ListPending(ctx context.Context, instructorID *uuid.UUID) ([]models.SessionRequest, error)
}
