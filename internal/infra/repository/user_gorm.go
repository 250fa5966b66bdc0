package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/tutor-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/tutor-scheduler/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) Create(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserGormRepository) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return getUser(ctx, r.db, id)
}

func (r *UserGormRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return findUserByEmail(ctx, r.db, email)
}

// Compile-time check
var _ identity.UserRepository = (*UserGormRepository)(nil)
