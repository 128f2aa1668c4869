package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/room-scheduler/internal/dto"
	"github.com/BruksfildServices01/room-scheduler/internal/models"
)

type ListFilter struct {
	dto.ListQuery

	// OwnerID restricts the listing to one user; empty lists everyone.
	OwnerID string
	Status  Status
	RoomID  string
}

type Repository interface {
	// -------- Room / User --------
	GetRoom(ctx context.Context, id string) (*models.Room, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	ListAdmins(ctx context.Context) ([]models.User, error)

	// -------- Appointment (create / conflict) --------

	// CreateAppointment inserts ap after checking, under a row lock, that
	// no active appointment overlaps it in the same room.
	CreateAppointment(ctx context.Context, ap *models.Appointment) error

	// -------- Appointment (state change) --------
	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)
	UpdateAppointment(ctx context.Context, ap *models.Appointment) error

	// -------- Availability / listing --------
	ListActiveForRoom(ctx context.Context, roomID string, start, end time.Time) ([]models.Appointment, error)
	ListAppointments(ctx context.Context, f ListFilter) ([]models.Appointment, int64, error)
}
