package appointment

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/room-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/room-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/room-scheduler/internal/httperr"
	"github.com/BruksfildServices01/room-scheduler/internal/models"
	"github.com/BruksfildServices01/room-scheduler/internal/notify"
	"github.com/BruksfildServices01/room-scheduler/internal/timezone"
)

type ChangeStatus struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	mailer *notify.Mailer
	now    func() time.Time
}

func NewChangeStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
	mailer *notify.Mailer,
) *ChangeStatus {
	return &ChangeStatus{
		repo:   repo,
		audit:  audit,
		mailer: mailer,
		now:    timezone.Now,
	}
}

func (uc *ChangeStatus) Execute(
	ctx context.Context,
	appointmentID string,
	to domain.Status,
	actor domain.Actor,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, err
	}

	// users only see their own appointments
	if !actor.Admin && ap.UserID != actor.UserID {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := domain.Transition(ap, to, actor, uc.now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	action := audit.ActionAppointmentConfirmed
	if to == domain.StatusCancelled {
		action = audit.ActionAppointmentCancelled
	}
	uc.audit.Record(actor.UserID, action, details{
		"appointmentId": ap.ID,
		"ownerId":       ap.UserID,
		"status":        ap.Status,
	})

	uc.notifyOwner(ap, to, actor)

	return ap, nil
}

// notifyOwner mails the owner on confirmation, and on cancellation only
// when someone else cancelled.
func (uc *ChangeStatus) notifyOwner(ap *models.Appointment, to domain.Status, actor domain.Actor) {
	if uc.mailer == nil || ap.User.Email == "" {
		return
	}

	b := bookingOf(ap)
	switch {
	case to == domain.StatusConfirmed:
		uc.mailer.Enqueue(notify.SchedulingConfirmation(b))
	case to == domain.StatusCancelled && actor.Admin && actor.UserID != ap.UserID:
		uc.mailer.Enqueue(notify.SchedulingCancellation(b))
	}
}
