package appointment

import (
	"strings"

	"github.com/BruksfildServices01/room-scheduler/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
)

func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToUpper(strings.TrimSpace(raw)))
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return s, nil
	}
	return "", httperr.ErrBusiness("invalid_status")
}

func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Em análise"
	case StatusConfirmed:
		return "Agendado"
	case StatusCancelled:
		return "Cancelado"
	}
	return string(s)
}

// Terminal reports whether no transition leaves s. Unknown values count
// as terminal.
func (s Status) Terminal() bool {
	return s != StatusPending && s != StatusConfirmed
}

// ===============================
// Validations
// ===============================

// CanConfirm: only an administrator moves a pending appointment forward.
func CanConfirm(current Status, actor Actor) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	if !actor.Admin {
		return httperr.ErrBusiness("forbidden_transition")
	}
	return nil
}

// CanCancel: the owner or an administrator, from any non-terminal state.
func CanCancel(current Status, ownerID string, actor Actor) error {
	if current.Terminal() {
		return httperr.ErrBusiness("invalid_state")
	}
	if !actor.Admin && actor.UserID != ownerID {
		return httperr.ErrBusiness("forbidden_transition")
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
