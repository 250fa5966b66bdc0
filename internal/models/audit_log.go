package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AuditLog struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ActorID      *uuid.UUID `gorm:"type:uuid" json:"actor_id"`
	Action       string     `gorm:"size:50;not null" json:"action"`
	ResourceType string     `gorm:"size:50" json:"resource_type"`
	ResourceID   *uuid.UUID `gorm:"type:uuid" json:"resource_id"`
	Summary      string     `gorm:"type:text" json:"summary"`

	Metadata datatypes.JSON `gorm:"type:jsonb" json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
}
