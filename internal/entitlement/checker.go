package entitlement

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/tutor-scheduler/internal/models"
)

// Checker answers whether a billing identity may create bookings.
type Checker interface {
	IsEntitled(ctx context.Context, billingID uuid.UUID) (bool, error)
}

var ErrInvalidStatus = errors.New("entitlement: invalid subscription status")

// EntitledStatuses are the subscription states that grant booking rights.
var EntitledStatuses = []string{models.SubscriptionActive, models.SubscriptionTrialing}

// GormChecker reads subscription status straight from the database.
type GormChecker struct {
	db *gorm.DB
}

func NewGormChecker(db *gorm.DB) *GormChecker {
	return &GormChecker{db: db}
}

func (c *GormChecker) IsEntitled(ctx context.Context, billingID uuid.UUID) (bool, error) {
	var count int64
	if err := c.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("user_id = ? AND status IN ?", billingID, EntitledStatuses).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SetStatus upserts the subscription of userID.
func (c *GormChecker) SetStatus(
	ctx context.Context,
	userID uuid.UUID,
	status string,
	periodEnd *time.Time,
) (*models.Subscription, error) {

	if !models.ValidSubscriptionStatus(status) {
		return nil, ErrInvalidStatus
	}

	sub := models.Subscription{
		UserID:           userID,
		Status:           status,
		CurrentPeriodEnd: periodEnd,
	}

	if err := c.db.WithContext(ctx).
		Omit("User").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "current_period_end", "updated_at"}),
		}).
		Create(&sub).Error; err != nil {
		return nil, err
	}

	if err := c.db.WithContext(ctx).First(&sub, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}
