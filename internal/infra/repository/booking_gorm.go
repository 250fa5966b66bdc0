package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/tutor-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/tutor-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/tutor-scheduler/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (r *BookingGormRepository) GetUser(
	ctx context.Context,
	id uuid.UUID,
) (*models.User, error) {
	return getUser(ctx, r.db, id)
}

func (r *BookingGormRepository) FindUserByEmail(
	ctx context.Context,
	email string,
) (*models.User, error) {
	return findUserByEmail(ctx, r.db, email)
}

// --------------------------------------------------
// Bookings
// --------------------------------------------------

func (r *BookingGormRepository) Create(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Omit("Student", "Instructor").Create(b).Error
}

func (r *BookingGormRepository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Instructor").
		First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, booking.ErrNotFound
		}
		return nil, err
	}

	return &b, nil
}

func (r *BookingGormRepository) Update(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Omit("Student", "Instructor").Save(b).Error
}

func (r *BookingGormRepository) Delete(
	ctx context.Context,
	id uuid.UUID,
) error {

	res := r.db.WithContext(ctx).Delete(&models.Booking{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return booking.ErrNotFound
	}
	return nil
}

func (r *BookingGormRepository) List(
	ctx context.Context,
	f booking.ListFilter,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Instructor")

	if f.StudentID != nil {
		q = q.Where("student_id = ?", *f.StudentID)
	}
	if f.InstructorID != nil {
		q = q.Where("instructor_id = ?", *f.InstructorID)
	}
	if f.ParticipantID != nil {
		q = q.Where("(student_id = ? OR instructor_id = ?)", *f.ParticipantID, *f.ParticipantID)
	}
	if f.Status != nil {
		q = q.Where("status = ?", string(*f.Status))
	}
	if f.From != nil {
		q = q.Where("ends_at > ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("starts_at < ?", *f.To)
	}

	var out []models.Booking
	if err := q.Order("starts_at ASC").Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}

	return out, nil
}

// --------------------------------------------------
// Shared user lookups
// --------------------------------------------------

func getUser(ctx context.Context, db *gorm.DB, id uuid.UUID) (*models.User, error) {
	var u models.User
	if err := db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, identity.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func findUserByEmail(ctx context.Context, db *gorm.DB, email string) (*models.User, error) {
	var u models.User
	if err := db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, identity.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Compile-time check
var _ booking.Repository = (*BookingGormRepository)(nil)
