package timezone

import (
	"sync/atomic"
	"time"
)

const DefaultTimezone = "America/Sao_Paulo"

const (
	DateLayout     = "2006-01-02"
	ClockLayout    = "15:04"
	DisplayLayout  = "02/01/2006"
	DateTimeLayout = DateLayout + " " + ClockLayout
)

var current atomic.Pointer[time.Location]

func init() {
	current.Store(Location(DefaultTimezone))
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

// SetDefault changes the zone used by Now and the parse helpers.
func SetDefault(tz string) {
	current.Store(Location(tz))
}

func Current() *time.Location {
	return current.Load()
}

func Now() time.Time {
	return time.Now().In(Current())
}

func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, Current())
}

func ParseDateTime(date, clock string) (time.Time, error) {
	return time.ParseInLocation(DateTimeLayout, date+" "+clock, Current())
}

func StartOfDay(t time.Time) time.Time {
	t = t.In(Current())
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, Current())
}

func SameDay(a, b time.Time) bool {
	a, b = a.In(Current()), b.In(Current())
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func FormatDate(t time.Time) string {
	return t.In(Current()).Format(DisplayLayout)
}

func FormatClock(t time.Time) string {
	return t.In(Current()).Format(ClockLayout)
}
