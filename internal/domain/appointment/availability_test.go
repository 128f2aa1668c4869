package appointment

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/room-scheduler/internal/models"
)

func TestSlots(t *testing.T) {
	loc := time.UTC
	date := time.Date(2030, 5, 6, 0, 0, 0, 0, loc)
	room := &models.Room{StartTime: "08:00", EndTime: "10:00", SlotDuration: 30}

	at := func(h, m int) time.Time { return time.Date(2030, 5, 6, h, m, 0, 0, loc) }
	busy := []models.Appointment{
		{StartTime: at(8, 30), EndTime: at(9, 0)},
	}

	past := time.Date(2030, 5, 1, 12, 0, 0, 0, loc)
	got := Slots(room, date, busy, past)

	want := []string{"08:00", "09:00", "09:30"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %+v", want, got)
	}
	for i, w := range want {
		if got[i].Start != w {
			t.Errorf("slot %d: expected %s, got %s", i, w, got[i].Start)
		}
	}
	if got[2].End != "10:00" {
		t.Errorf("last slot should end at closing, got %s", got[2].End)
	}
}

func TestSlotsSkipStartedOnSameDay(t *testing.T) {
	loc := time.UTC
	date := time.Date(2030, 5, 6, 0, 0, 0, 0, loc)
	room := &models.Room{StartTime: "08:00", EndTime: "10:00", SlotDuration: 60}

	now := time.Date(2030, 5, 6, 8, 10, 0, 0, loc)
	got := Slots(room, date, nil, now)

	if len(got) != 1 || got[0].Start != "09:00" {
		t.Fatalf("expected only 09:00, got %+v", got)
	}
}

func TestSlotsOverlappingLongerBooking(t *testing.T) {
	loc := time.UTC
	date := time.Date(2030, 5, 6, 0, 0, 0, 0, loc)
	room := &models.Room{StartTime: "08:00", EndTime: "10:00", SlotDuration: 15}
	at := func(h, m int) time.Time { return time.Date(2030, 5, 6, h, m, 0, 0, loc) }

	busy := []models.Appointment{
		{StartTime: at(8, 0), EndTime: at(9, 0)},
		{StartTime: at(9, 15), EndTime: at(9, 30)},
	}

	got := Slots(room, date, busy, at(0, 0))
	want := []string{"09:00", "09:30", "09:45"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %+v", want, got)
	}
	for i, w := range want {
		if got[i].Start != w {
			t.Errorf("slot %d: expected %s, got %s", i, w, got[i].Start)
		}
	}
}

func TestSlotsInvalidRoom(t *testing.T) {
	got := Slots(&models.Room{StartTime: "x", EndTime: "y", SlotDuration: 30}, time.Now(), nil, time.Now())
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}
