package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/room-scheduler/internal/models"
)

type RoomGormRepository struct {
	db *gorm.DB
}

func NewRoomGormRepository(db *gorm.DB) *RoomGormRepository {
	return &RoomGormRepository{db: db}
}

func (r *RoomGormRepository) ListActive(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

// CreateMany inserts all rooms or none.
func (r *RoomGormRepository) CreateMany(ctx context.Context, rooms []models.Room) error {
	if len(rooms) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&rooms).Error
	})
}
