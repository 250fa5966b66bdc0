package testfixtures

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/tutor-scheduler/internal/domain/request"
	"github.com/BruksfildServices01/tutor-scheduler/internal/models"
)

// RequestRepo is an in-memory request.Repository.
type RequestRepo struct {
	Users *Users

	mu       sync.Mutex
	requests map[uuid.UUID]models.SessionRequest
}

func NewRequestRepo(users *Users) *RequestRepo {
	return &RequestRepo{
		Users:    users,
		requests: make(map[uuid.UUID]models.SessionRequest),
	}
}

func (r *RequestRepo) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.Users.Get(ctx, id)
}

func (r *RequestRepo) Create(ctx context.Context, sr *models.SessionRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sr.ID == uuid.Nil {
		sr.ID = uuid.New()
	}
	if sr.CreatedAt.IsZero() {
		sr.CreatedAt = ReferenceTime()
	}
	sr.UpdatedAt = sr.CreatedAt
	r.requests[sr.ID] = *sr
	return nil
}

func (r *RequestRepo) Get(ctx context.Context, id uuid.UUID) (*models.SessionRequest, error) {
	r.mu.Lock()
	sr, ok := r.requests[id]
	r.mu.Unlock()

	if !ok {
		return nil, request.ErrNotFound
	}
	sr.Student = r.Users.lookup(sr.StudentID)
	sr.Instructor = r.Users.lookup(sr.InstructorID)
	return &sr, nil
}

func (r *RequestRepo) Update(ctx context.Context, sr *models.SessionRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.requests[sr.ID]; !ok {
		return request.ErrNotFound
	}
	r.requests[sr.ID] = *sr
	return nil
}

func (r *RequestRepo) ListPending(ctx context.Context, instructorID *uuid.UUID) ([]models.SessionRequest, error) {
	r.mu.Lock()
	var out []models.SessionRequest
	for _, sr := range r.requests {
		if sr.Status != string(request.StatusPending) {
			continue
		}
		if instructorID != nil && sr.InstructorID != *instructorID {
			continue
		}
		out = append(out, sr)
	}
	r.mu.Unlock()

	slices.SortFunc(out, func(a, b models.SessionRequest) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	for i := range out {
		out[i].Student = r.Users.lookup(out[i].StudentID)
		out[i].Instructor = r.Users.lookup(out[i].InstructorID)
	}
	return out, nil
}

var _ request.Repository = (*RequestRepo)(nil)
