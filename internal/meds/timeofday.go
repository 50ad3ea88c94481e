package meds

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var timeOfDayRegex = regexp.MustCompile(`^(\d{2}):(\d{2})$`)

// TimeOfDay is a wall-clock time, interpreted in the location of the instant it is applied to.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay accepts strictly HH:MM with hour 00-23 and minute 00-59.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	m := timeOfDayRegex.FindStringSubmatch(s)
	if m == nil {
		return TimeOfDay{}, fmt.Errorf("time of day %q: %w", s, ErrInvalidTimeOfDay)
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("time of day %q out of range: %w", s, ErrInvalidTimeOfDay)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// On returns the instant at t on the calendar day of day, in day's location.
// offsetDays shifts the calendar day, normalizing month and year overflow.
func (t TimeOfDay) On(day time.Time, offsetDays int) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d+offsetDays, t.Hour, t.Minute, 0, 0, day.Location())
}
