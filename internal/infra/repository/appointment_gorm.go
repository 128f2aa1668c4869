package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/room-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/room-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/room-scheduler/internal/dto"
	"github.com/BruksfildServices01/room-scheduler/internal/httperr"
	"github.com/BruksfildServices01/room-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Room / User
// --------------------------------------------------

func (r *AppointmentGormRepository) GetRoom(
	ctx context.Context,
	id string,
) (*models.Room, error) {

	var room models.Room
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *AppointmentGormRepository) GetUser(
	ctx context.Context,
	id string,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *AppointmentGormRepository) ListAdmins(
	ctx context.Context,
) ([]models.User, error) {

	var admins []models.User
	if err := r.db.WithContext(ctx).
		Where("role = ? AND is_active = ?", string(identity.RoleAdmin), true).
		Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// serializes bookings of the same room
		var room models.Room
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", ap.RoomID).
			First(&room).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.
			Model(&models.Appointment{}).
			Where(
				"room_id = ? AND status <> ? AND start_time < ? AND end_time > ?",
				ap.RoomID,
				string(domain.StatusCancelled),
				ap.EndTime,
				ap.StartTime,
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return httperr.ErrBusiness("time_conflict")
		}

		return tx.Create(ap).Error
	})
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Room").
		Where("id = ?", id).
		First(&ap).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", ap.ID).
		Updates(map[string]interface{}{
			"status":       ap.Status,
			"confirmed_at": ap.ConfirmedAt,
			"cancelled_at": ap.CancelledAt,
			"cancelled_by": ap.CancelledBy,
		}).Error
}

// --------------------------------------------------
// Availability / listing
// --------------------------------------------------

func (r *AppointmentGormRepository) ListActiveForRoom(
	ctx context.Context,
	roomID string,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "start_time", "end_time").
		Where(
			"room_id = ? AND status <> ? AND start_time < ? AND end_time > ?",
			roomID, string(domain.StatusCancelled), end, start,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Appointment, int64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Joins("JOIN users ON users.id = appointments.user_id")

	if f.OwnerID != "" {
		q = q.Where("appointments.user_id = ?", f.OwnerID)
	}
	if f.Status != "" {
		q = q.Where("appointments.status = ?", string(f.Status))
	}
	if f.RoomID != "" {
		q = q.Where("appointments.room_id = ?", f.RoomID)
	}
	if f.Date != nil {
		q = q.Where(
			"appointments.start_time >= ? AND appointments.start_time < ?",
			*f.Date, f.Date.AddDate(0, 0, 1),
		)
	}
	if term := strings.TrimSpace(f.Query); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where(
			"LOWER(users.name) LIKE ? OR LOWER(users.last_name) LIKE ? OR LOWER(users.email) LIKE ?",
			like, like, like,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	direction := "DESC"
	if f.Order == dto.OrderAsc {
		direction = "ASC"
	}

	var apps []models.Appointment
	if err := q.
		Preload("User").
		Preload("Room").
		Order("appointments.start_time " + direction).
		Limit(f.Limit).
		Offset(f.Offset()).
		Find(&apps).Error; err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
