package audit

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/tutor-scheduler/internal/models"
)

// Store writes audit events to the audit_logs table and serves the admin
// listing.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Record(ctx context.Context, ev Event) error {
	var meta datatypes.JSON
	if len(ev.Metadata) > 0 {
		b, err := json.Marshal(ev.Metadata)
		if err != nil {
			return err
		}
		meta = b
	}

	row := models.AuditLog{
		ActorID:      ev.ActorID,
		Action:       ev.Action,
		ResourceType: ev.ResourceType,
		ResourceID:   ev.ResourceID,
		Summary:      ev.Summary,
		Metadata:     meta,
		CreatedAt:    ev.OccurredAt,
	}

	return s.db.WithContext(ctx).Create(&row).Error
}

type ListFilter struct {
	Action       string
	ResourceType string
	From         *time.Time
	To           *time.Time
	Page         int
	Limit        int
}

// List returns one page of audit logs, newest first, plus the total count.
func (s *Store) List(ctx context.Context, f ListFilter) ([]models.AuditLog, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.AuditLog{})

	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.ResourceType != "" {
		q = q.Where("resource_type = ?", f.ResourceType)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
