package room

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/BruksfildServices01/room-scheduler/internal/httperr"
	"github.com/BruksfildServices01/room-scheduler/internal/models"
)

// AllowedSlotDurations are the block sizes offered by the settings form.
var AllowedSlotDurations = []int{15, 30, 60}

var timeRangePattern = regexp.MustCompile(`^(\d{2}:\d{2})\s-\s(\d{2}:\d{2})$`)

// Hours is a room's daily operating window.
type Hours struct {
	Start time.Duration
	End   time.Duration
	Slot  time.Duration
}

func (h Hours) StartOn(date time.Time) time.Time {
	return midnight(date).Add(h.Start)
}

func (h Hours) EndOn(date time.Time) time.Time {
	return midnight(date).Add(h.End)
}

// Contains reports whether [start,end) sits inside the window and on a slot
// boundary.
func (h Hours) Contains(start, end time.Time) bool {
	open := h.StartOn(start)
	if start.Before(open) || end.After(h.EndOn(start)) {
		return false
	}
	return start.Sub(open)%h.Slot == 0 && end.Sub(start) == h.Slot
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func parseClock(hm string) (time.Duration, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(hm))
	if err != nil {
		return 0, httperr.ErrBusiness("invalid_time")
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

func HoursOf(r *models.Room) (Hours, error) {
	return Validate(r.StartTime, r.EndTime, r.SlotDuration)
}

// Validate checks the settings a room is created with.
func Validate(startTime, endTime string, slotDuration int) (Hours, error) {
	start, err := parseClock(startTime)
	if err != nil {
		return Hours{}, err
	}
	end, err := parseClock(endTime)
	if err != nil {
		return Hours{}, err
	}
	if end <= start {
		return Hours{}, httperr.ErrBusiness("invalid_time_range")
	}

	allowed := false
	for _, d := range AllowedSlotDurations {
		if d == slotDuration {
			allowed = true
			break
		}
	}
	if !allowed {
		return Hours{}, httperr.ErrBusiness("invalid_slot_duration")
	}

	slot := time.Duration(slotDuration) * time.Minute
	if end-start < slot {
		return Hours{}, httperr.ErrBusiness("invalid_time_range")
	}

	return Hours{Start: start, End: end, Slot: slot}, nil
}

// ParseTimeRange splits the form value "08:00 - 18:00".
func ParseTimeRange(raw string) (start, end string, err error) {
	m := timeRangePattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return "", "", httperr.ErrBusiness("invalid_time_range")
	}
	return m[1], m[2], nil
}

// ParseInterval reads the leading minutes of "30 minutos".
func ParseInterval(raw string) (int, error) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return 0, httperr.ErrBusiness("invalid_slot_duration")
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, httperr.ErrBusiness("invalid_slot_duration")
	}
	return n, nil
}
