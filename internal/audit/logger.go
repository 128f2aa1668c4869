package audit

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/room-scheduler/internal/models"
)

// Sink persists audit events.
type Sink interface {
	Log(ctx context.Context, ev Event) error
}

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	var details string
	if ev.Details != nil {
		if b, err := json.Marshal(ev.Details); err == nil {
			details = string(b)
		}
	}

	row := models.AuditLog{
		UserID:  ev.UserID,
		Action:  string(ev.Action),
		Module:  string(ev.Action.Module()),
		Details: details,
	}

	return l.db.WithContext(ctx).Create(&row).Error
}
