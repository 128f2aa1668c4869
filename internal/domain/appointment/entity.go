package appointment

import (
	"time"

	"github.com/BruksfildServices01/room-scheduler/internal/httperr"
	"github.com/BruksfildServices01/room-scheduler/internal/models"
)

// Actor is whoever requests a state change.
type Actor struct {
	UserID string
	Admin  bool
}

// ===============================
// Domain Actions
// ===============================

func Confirm(ap *models.Appointment, actor Actor, now time.Time) error {
	if err := CanConfirm(Status(ap.Status), actor); err != nil {
		return err
	}

	ap.Status = string(StatusConfirmed)
	ap.ConfirmedAt = &now
	return nil
}

func Cancel(ap *models.Appointment, actor Actor, now time.Time) error {
	if err := CanCancel(Status(ap.Status), ap.UserID, actor); err != nil {
		return err
	}

	by := actor.UserID
	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	ap.CancelledBy = &by
	return nil
}

// Transition applies the requested target status.
func Transition(ap *models.Appointment, to Status, actor Actor, now time.Time) error {
	switch to {
	case StatusConfirmed:
		return Confirm(ap, actor, now)
	case StatusCancelled:
		return Cancel(ap, actor, now)
	}
	return httperr.ErrBusiness("invalid_state")
}
