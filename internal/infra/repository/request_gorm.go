package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/tutor-scheduler/internal/domain/request"
	"github.com/BruksfildServices01/tutor-scheduler/internal/models"
)

type RequestGormRepository struct {
	db *gorm.DB
}

func NewRequestGormRepository(db *gorm.DB) *RequestGormRepository {
	return &RequestGormRepository{db: db}
}

func (r *RequestGormRepository) GetUser(
	ctx context.Context,
	id uuid.UUID,
) (*models.User, error) {
	return getUser(ctx, r.db, id)
}

func (r *RequestGormRepository) Create(
	ctx context.Context,
	sr *models.SessionRequest,
) error {
	return r.db.WithContext(ctx).Omit("Student", "Instructor").Create(sr).Error
}

func (r *RequestGormRepository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*models.SessionRequest, error) {

	var sr models.SessionRequest
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Instructor").
		First(&sr, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, request.ErrNotFound
		}
		return nil, err
	}

	return &sr, nil
}

func (r *RequestGormRepository) Update(
	ctx context.Context,
	sr *models.SessionRequest,
) error {
	return r.db.WithContext(ctx).Omit("Student", "Instructor").Save(sr).Error
}

func (r *RequestGormRepository) ListPending(
	ctx context.Context,
	instructorID *uuid.UUID,
) ([]models.SessionRequest, error) {

	q := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Instructor").
		Where("status = ?", string(request.StatusPending))
	if instructorID != nil {
		q = q.Where("instructor_id = ?", *instructorID)
	}

	var out []models.SessionRequest
	if err := q.Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}

	return out, nil
}

// Compile-time check
var _ request.Repository = (*RequestGormRepository)(nil)
