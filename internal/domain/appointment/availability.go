package appointment

import (
	"time"

	"github.com/BruksfildServices01/room-scheduler/internal/domain/room"
	"github.com/BruksfildServices01/room-scheduler/internal/models"
)

type AvailabilityInput struct {
	RoomID string
	Date   time.Time
}

type TimeSlot struct {
	Start string `json:"startTime"`
	End   string `json:"endTime"`
}

// Slots steps through the room's operating hours on date and returns the
// slots not overlapped by any of busy. On the current day, slots that
// already started are skipped.
func Slots(r *models.Room, date time.Time, busy []models.Appointment, now time.Time) []TimeSlot {
	hours, err := room.HoursOf(r)
	if err != nil {
		return []TimeSlot{}
	}

	dayStart := hours.StartOn(date)
	dayEnd := hours.EndOn(date)
	slotDuration := hours.Slot

	slots := []TimeSlot{}
	apIdx := 0

	for cur := dayStart; !cur.Add(slotDuration).After(dayEnd); cur = cur.Add(slotDuration) {
		slotStart := cur
		slotEnd := cur.Add(slotDuration)

		if !slotStart.After(now) {
			continue
		}

		for apIdx < len(busy) && !busy[apIdx].EndTime.After(slotStart) {
			apIdx++
		}

		conflict := false
		for i := apIdx; i < len(busy) && busy[i].StartTime.Before(slotEnd); i++ {
			if slotStart.Before(busy[i].EndTime) && slotEnd.After(busy[i].StartTime) {
				conflict = true
				break
			}
		}

		if !conflict {
			slots = append(slots, TimeSlot{
				Start: slotStart.Format("15:04"),
				End:   slotEnd.Format("15:04"),
			})
		}
	}

	return slots
}
