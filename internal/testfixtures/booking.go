package testfixtures

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/tutor-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/tutor-scheduler/internal/models"
)

// BookingRepo is an in-memory booking.Repository.
type BookingRepo struct {
	Users *Users

	CreateErr error

	mu       sync.Mutex
	bookings map[uuid.UUID]models.Booking
}

func NewBookingRepo(users *Users) *BookingRepo {
	return &BookingRepo{
		Users:    users,
		bookings: make(map[uuid.UUID]models.Booking),
	}
}

func (r *BookingRepo) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.Users.Get(ctx, id)
}

func (r *BookingRepo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.Users.FindByEmail(ctx, email)
}

func (r *BookingRepo) Create(ctx context.Context, b *models.Booking) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	b.CreatedAt = ReferenceTime()
	b.UpdatedAt = b.CreatedAt
	r.bookings[b.ID] = *b
	return nil
}

func (r *BookingRepo) Get(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	r.mu.Lock()
	b, ok := r.bookings[id]
	r.mu.Unlock()

	if !ok {
		return nil, booking.ErrNotFound
	}
	r.hydrate(&b)
	return &b, nil
}

func (r *BookingRepo) Update(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[b.ID]; !ok {
		return booking.ErrNotFound
	}
	r.bookings[b.ID] = *b
	return nil
}

func (r *BookingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[id]; !ok {
		return booking.ErrNotFound
	}
	delete(r.bookings, id)
	return nil
}

func (r *BookingRepo) List(ctx context.Context, f booking.ListFilter) ([]models.Booking, error) {
	r.mu.Lock()
	var out []models.Booking
	for _, b := range r.bookings {
		if matches(b, f) {
			out = append(out, b)
		}
	}
	r.mu.Unlock()

	slices.SortFunc(out, func(a, b models.Booking) int {
		if c := a.StartsAt.Compare(b.StartsAt); c != 0 {
			return c
		}
		return slices.Compare(a.ID[:], b.ID[:])
	})
	for i := range out {
		r.hydrate(&out[i])
	}
	return out, nil
}

func (r *BookingRepo) hydrate(b *models.Booking) {
	b.Student = r.Users.lookup(b.StudentID)
	b.Instructor = r.Users.lookup(b.InstructorID)
}

func matches(b models.Booking, f booking.ListFilter) bool {
	if f.StudentID != nil && b.StudentID != *f.StudentID {
		return false
	}
	if f.InstructorID != nil && b.InstructorID != *f.InstructorID {
		return false
	}
	if f.ParticipantID != nil && b.StudentID != *f.ParticipantID && b.InstructorID != *f.ParticipantID {
		return false
	}
	if f.Status != nil && b.Status != string(*f.Status) {
		return false
	}
	if f.From != nil && !b.EndsAt.After(*f.From) {
		return false
	}
	if f.To != nil && !b.StartsAt.Before(*f.To) {
		return false
	}
	return true
}

var _ booking.Repository = (*BookingRepo)(nil)
