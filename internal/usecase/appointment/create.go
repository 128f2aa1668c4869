package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/room-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/room-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/room-scheduler/internal/domain/room"
	"github.com/BruksfildServices01/room-scheduler/internal/httperr"
	"github.com/BruksfildServices01/room-scheduler/internal/models"
	"github.com/BruksfildServices01/room-scheduler/internal/notify"
	"github.com/BruksfildServices01/room-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	UserID string
	RoomID string
	Date   string
	Time   string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	mailer *notify.Mailer
	now    func() time.Time
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	mailer *notify.Mailer,
) *CreateAppointment {
	return &CreateAppointment{
		repo:   repo,
		audit:  audit,
		mailer: mailer,
		now:    timezone.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Sala
	// --------------------------------------------------
	r, err := uc.repo.GetRoom(ctx, in.RoomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("room_not_found")
		}
		return nil, err
	}
	if !r.IsActive {
		return nil, httperr.ErrBusiness("room_not_found")
	}

	hours, err := room.HoursOf(r)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Data / hora
	// --------------------------------------------------
	start, err := timezone.ParseDateTime(in.Date, in.Time)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}
	end := start.Add(hours.Slot)

	if !start.After(uc.now()) {
		return nil, httperr.ErrBusiness("slot_in_past")
	}

	if !hours.Contains(start, end) {
		return nil, httperr.ErrBusiness("outside_room_hours")
	}

	// --------------------------------------------------
	// Usuário
	// --------------------------------------------------
	user, err := uc.repo.GetUser(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Criação (conflito verificado sob lock)
	// --------------------------------------------------
	ap := &models.Appointment{
		UserID:    user.ID,
		RoomID:    r.ID,
		StartTime: start,
		EndTime:   end,
		Status:    string(domain.InitialStatus()),
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		if httperr.IsBusiness(err, "time_conflict") {
			uc.audit.Record(user.ID, audit.ActionAppointmentConflict, details{
				"roomId":    r.ID,
				"startTime": start,
			})
		}
		return nil, err
	}
	ap.User = *user
	ap.Room = *r

	// --------------------------------------------------
	// Auditoria / notificação
	// --------------------------------------------------
	uc.audit.Record(user.ID, audit.ActionAppointmentCreated, details{
		"appointmentId": ap.ID,
		"roomId":        r.ID,
		"room":          r.Name,
		"startTime":     start,
	})

	uc.notifyAdmins(ctx, ap)

	return ap, nil
}

func (uc *CreateAppointment) notifyAdmins(ctx context.Context, ap *models.Appointment) {
	if uc.mailer == nil {
		return
	}

	admins, err := uc.repo.ListAdmins(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list admins for notification")
		return
	}

	b := bookingOf(ap)
	for _, admin := range admins {
		uc.mailer.Enqueue(notify.NewScheduleForAdmin(admin.Email, b))
	}
}

// details is an audit payload.
type details = map[string]any

func bookingOf(ap *models.Appointment) notify.Booking {
	return notify.Booking{
		Name:  ap.User.FullName(),
		Email: ap.User.Email,
		Room:  ap.Room.Name,
		Start: ap.StartTime,
	}
}
