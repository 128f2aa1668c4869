package appointment

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/room-scheduler/internal/httperr"
	"github.com/BruksfildServices01/room-scheduler/internal/models"
)

var (
	owner = Actor{UserID: "owner"}
	other = Actor{UserID: "someone-else"}
	admin = Actor{UserID: "admin", Admin: true}
)

func newAppointment(status Status) *models.Appointment {
	return &models.Appointment{ID: "ap-1", UserID: "owner", Status: string(status)}
}

func TestConfirmOnlyByAdmin(t *testing.T) {
	now := time.Now()

	for _, actor := range []Actor{owner, other} {
		ap := newAppointment(StatusPending)
		if err := Confirm(ap, actor, now); !httperr.IsBusiness(err, "forbidden_transition") {
			t.Errorf("actor %+v: expected forbidden_transition, got %v", actor, err)
		}
		if ap.Status != string(StatusPending) {
			t.Errorf("status changed on rejected confirm: %s", ap.Status)
		}
	}

	ap := newAppointment(StatusPending)
	if err := Confirm(ap, admin, now); err != nil {
		t.Fatalf("admin confirm: %v", err)
	}
	if ap.Status != string(StatusConfirmed) || ap.ConfirmedAt == nil {
		t.Errorf("unexpected appointment after confirm %+v", ap)
	}
}

func TestConfirmRequiresPending(t *testing.T) {
	for _, s := range []Status{StatusConfirmed, StatusCancelled} {
		if err := Confirm(newAppointment(s), admin, time.Now()); !httperr.IsBusiness(err, "invalid_state") {
			t.Errorf("%s: expected invalid_state, got %v", s, err)
		}
	}
}

func TestCancelByOwnerOrAdmin(t *testing.T) {
	for _, from := range []Status{StatusPending, StatusConfirmed} {
		for _, actor := range []Actor{owner, admin} {
			ap := newAppointment(from)
			if err := Cancel(ap, actor, time.Now()); err != nil {
				t.Fatalf("%s by %+v: %v", from, actor, err)
			}
			if ap.Status != string(StatusCancelled) || ap.CancelledAt == nil || *ap.CancelledBy != actor.UserID {
				t.Errorf("unexpected appointment after cancel %+v", ap)
			}
		}

		if err := Cancel(newAppointment(from), other, time.Now()); !httperr.IsBusiness(err, "forbidden_transition") {
			t.Errorf("%s by stranger: expected forbidden_transition, got %v", from, err)
		}
	}
}

func TestCancelledIsTerminal(t *testing.T) {
	for _, to := range []Status{StatusConfirmed, StatusCancelled, StatusPending} {
		err := Transition(newAppointment(StatusCancelled), to, admin, time.Now())
		if !httperr.IsBusiness(err, "invalid_state") {
			t.Errorf("-> %s: expected invalid_state, got %v", to, err)
		}
	}
	if !StatusCancelled.Terminal() || StatusPending.Terminal() || StatusConfirmed.Terminal() {
		t.Error("Terminal mismatch")
	}
	if err := CanCancel(Status("ARCHIVED"), "owner", admin); !httperr.IsBusiness(err, "invalid_state") {
		t.Errorf("unknown status: expected invalid_state, got %v", err)
	}
}

func TestParseStatus(t *testing.T) {
	if s, err := ParseStatus("confirmed"); err != nil || s != StatusConfirmed {
		t.Errorf("unexpected %s %v", s, err)
	}
	if _, err := ParseStatus("COMPLETED"); !httperr.IsBusiness(err, "invalid_status") {
		t.Errorf("expected invalid_status, got %v", err)
	}
	if StatusPending.Label() != "Em análise" {
		t.Errorf("unexpected label %s", StatusPending.Label())
	}
}
