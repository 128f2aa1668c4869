package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/room-scheduler/internal/dto"
	"github.com/BruksfildServices01/room-scheduler/internal/models"
)

type LogFilter struct {
	dto.ListQuery

	// UserID restricts the listing to one actor; empty lists everyone.
	UserID string
	Module string
}

type AuditLogGormRepository struct {
	db *gorm.DB
}

func NewAuditLogGormRepository(db *gorm.DB) *AuditLogGormRepository {
	return &AuditLogGormRepository{db: db}
}

func (r *AuditLogGormRepository) List(ctx context.Context, f LogFilter) ([]models.AuditLog, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.AuditLog{})

	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Module != "" {
		q = q.Where("module = ?", strings.ToUpper(f.Module))
	}
	if f.Date != nil {
		q = q.Where("created_at >= ? AND created_at < ?", *f.Date, f.Date.AddDate(0, 0, 1))
	}
	if term := strings.TrimSpace(f.Query); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(action) LIKE ? OR LOWER(module) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	direction := "DESC"
	if f.Order == dto.OrderAsc {
		direction = "ASC"
	}

	var logs []models.AuditLog
	if err := q.
		Preload("User").
		Order("created_at " + direction).
		Limit(f.Limit).
		Offset(f.Offset()).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
