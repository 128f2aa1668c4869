package handlers

import (
	"context"

	"github.com/BruksfildServices01/room-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/room-scheduler/internal/models"
)

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context, f repository.UserFilter) ([]models.User, int64, error)
}

type RoomStore interface {
	ListActive(ctx context.Context) ([]models.Room, error)
	CreateMany(ctx context.Context, rooms []models.Room) error
}

type LogStore interface {
	List(ctx context.Context, f repository.LogFilter) ([]models.AuditLog, int64, error)
}

var (
	_ UserStore = (*repository.UserGormRepository)(nil)
	_ RoomStore = (*repository.RoomGormRepository)(nil)
	_ LogStore  = (*repository.AuditLogGormRepository)(nil)
)
