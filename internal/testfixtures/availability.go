package testfixtures

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/tutor-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/tutor-scheduler/internal/domain/identity"
)

// AvailabilityRepo is an in-memory availability.Repository. Set the Err
// fields to make the matching call fail.
type AvailabilityRepo struct {
	Users *Users

	ListErr   error
	CreateErr error
	UpdateErr error

	mu      sync.Mutex
	windows map[uuid.UUID]availability.Window
	order   []uuid.UUID
	Locks   []uuid.UUID
}

func NewAvailabilityRepo(users *Users) *AvailabilityRepo {
	return &AvailabilityRepo{
		Users:   users,
		windows: make(map[uuid.UUID]availability.Window),
	}
}

// Seed stores w as is and returns it with an id assigned.
func (r *AvailabilityRepo) Seed(w availability.Window) availability.Window {
	_ = r.Create(context.Background(), &w)
	return w
}

func (r *AvailabilityRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.windows)
}

func (r *AvailabilityRepo) WithinTx(ctx context.Context, fn func(tx availability.Repository) error) error {
	return fn(r)
}

func (r *AvailabilityRepo) LockInstructor(ctx context.Context, instructorID uuid.UUID) error {
	r.mu.Lock()
	r.Locks = append(r.Locks, instructorID)
	r.mu.Unlock()
	return nil
}

func (r *AvailabilityRepo) InstructorExists(ctx context.Context, instructorID uuid.UUID) (bool, error) {
	u := r.Users.lookup(instructorID)
	return u.ID != uuid.Nil && u.Role == string(identity.RoleInstructor), nil
}

func (r *AvailabilityRepo) ListByInstructor(ctx context.Context, instructorID uuid.UUID, activeOnly bool) ([]availability.Window, error) {
	if r.ListErr != nil {
		return nil, r.ListErr
	}

	return r.filter(func(w availability.Window) bool {
		return w.InstructorID == instructorID && (!activeOnly || w.Active)
	}), nil
}

func (r *AvailabilityRepo) ListActiveMatching(ctx context.Context, instructorID uuid.UUID, when availability.Occurrence) ([]availability.Window, error) {
	if r.ListErr != nil {
		return nil, r.ListErr
	}

	return r.filter(func(w availability.Window) bool {
		return w.InstructorID == instructorID && w.Active && availability.SameDiscriminator(w.When, when)
	}), nil
}

// All returns every stored window in insertion order.
func (r *AvailabilityRepo) All() []availability.Window {
	return r.filter(func(availability.Window) bool { return true })
}

func (r *AvailabilityRepo) filter(keep func(availability.Window) bool) []availability.Window {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []availability.Window
	for _, id := range r.order {
		if w, ok := r.windows[id]; ok && keep(w) {
			out = append(out, w)
		}
	}
	return out
}

func (r *AvailabilityRepo) Get(ctx context.Context, id uuid.UUID) (*availability.Window, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.windows[id]
	if !ok {
		return nil, availability.ErrNotFound
	}
	return &w, nil
}

func (r *AvailabilityRepo) Create(ctx context.Context, w *availability.Window) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = ReferenceTime()
		w.UpdatedAt = w.CreatedAt
	}
	r.windows[w.ID] = *w
	r.order = append(r.order, w.ID)
	return nil
}

func (r *AvailabilityRepo) Update(ctx context.Context, w *availability.Window) error {
	if r.UpdateErr != nil {
		return r.UpdateErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.windows[w.ID]; !ok {
		return availability.ErrNotFound
	}
	w.UpdatedAt = time.Now()
	r.windows[w.ID] = *w
	return nil
}

func (r *AvailabilityRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.windows[id]; !ok {
		return availability.ErrNotFound
	}
	delete(r.windows, id)
	return nil
}

var _ availability.Repository = (*AvailabilityRepo)(nil)
