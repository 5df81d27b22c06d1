package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditInfo is embedded by every entity owned by this service.
type AuditInfo struct {
	ID        string    `json:"id" gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (v *AuditInfo) BeforeCreate(tx *gorm.DB) error {
	if len(v.ID) == 0 {
		v.ID = uuid.NewString()
	}
	return nil
}
