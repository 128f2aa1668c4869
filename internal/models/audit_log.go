package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditLog is append-only; nothing updates or deletes rows.
type AuditLog struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	UserID *string `gorm:"type:uuid;index" json:"userId"`
	User   *User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user,omitempty"`

	Action  string `gorm:"size:50;not null" json:"action"`
	Module  string `gorm:"size:30;index" json:"module"`
	Details string `gorm:"type:text" json:"details"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

func (l *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
