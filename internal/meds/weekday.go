package meds

import (
	"fmt"
	"strings"
	"time"
)

var weekdayAliases = map[string]time.Weekday{
	"sun":       time.Sunday,
	"sunday":    time.Sunday,
	"mon":       time.Monday,
	"monday":    time.Monday,
	"tue":       time.Tuesday,
	"tues":      time.Tuesday,
	"tuesday":   time.Tuesday,
	"wed":       time.Wednesday,
	"wednesday": time.Wednesday,
	"thu":       time.Thursday,
	"thur":      time.Thursday,
	"thurs":     time.Thursday,
	"thursday":  time.Thursday,
	"fri":       time.Friday,
	"friday":    time.Friday,
	"sat":       time.Saturday,
	"saturday":  time.Saturday,
}

var weekdayShortNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// WeekdaySet is a set of weekdays, bit i set for time.Weekday(i).
type WeekdaySet uint8

func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s |= 1 << uint(d)
	}
	return s
}

// ParseWeekdays parses a comma separated list of weekday names.
// Names are case-insensitive and may be abbreviated (see weekdayAliases),
// blank entries are skipped and duplicates collapse. Any unknown name fails the whole list.
func ParseWeekdays(s string) (WeekdaySet, error) {
	var set WeekdaySet
	for _, token := range strings.Split(s, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		day, ok := weekdayAliases[strings.ToLower(token)]
		if !ok {
			return 0, fmt.Errorf("weekday %q: %w", token, ErrUnknownWeekday)
		}
		set |= 1 << uint(day)
	}
	if set.Empty() {
		return 0, ErrNoWeekdays
	}
	return set, nil
}

func (s WeekdaySet) Contains(day time.Weekday) bool {
	return s&(1<<uint(day)) != 0
}

func (s WeekdaySet) Empty() bool {
	return s&0x7f == 0
}

// Days returns the members in week order, Sunday first.
func (s WeekdaySet) Days() []time.Weekday {
	var days []time.Weekday
	for d := time.Sunday; d <= time.Saturday; d++ {
		if s.Contains(d) {
			days = append(days, d)
		}
	}
	return days
}

// String renders the canonical storage form, e.g. "Mon,Thu".
func (s WeekdaySet) String() string {
	days := s.Days()
	names := make([]string, 0, len(days))
	for _, d := range days {
		names = append(names, weekdayShortNames[d])
	}
	return strings.Join(names, ",")
}
