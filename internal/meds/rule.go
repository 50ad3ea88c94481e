package meds

import (
	"errors"
	"time"
)

type FreqType string

const (
	FreqInterval FreqType = "interval"
	FreqDaily    FreqType = "daily"
	FreqWeekly   FreqType = "weekly"
)

// FreqTypes lists every recurrence kind a Rule can have.
var FreqTypes = []FreqType{FreqInterval, FreqDaily, FreqWeekly}

const (
	MinIntervalHours = 1
	MaxIntervalHours = 48
)

var (
	ErrInvalidTimeOfDay     = errors.New("time of day must be HH:MM")
	ErrUnknownWeekday       = errors.New("unknown weekday")
	ErrNoWeekdays           = errors.New("at least one weekday is required")
	ErrIntervalOutOfRange   = errors.New("interval must be a number between 1 and 48 hours")
	ErrUnknownFreqType      = errors.New("invalid frequency type")
	ErrMissingRecurrenceArg = errors.New("missing recurrence field")
)

// Rule describes when doses of a medication are due.
// Implemented only by IntervalRule, DailyRule and WeeklyRule.
type Rule interface {
	FreqType() FreqType
	rule()
}

// IntervalRule is a dose every Hours hours, counted from the moment of reading.
type IntervalRule struct {
	Hours int
}

// DailyRule is one dose per day at a fixed time.
type DailyRule struct {
	At TimeOfDay
}

// WeeklyRule is one dose at a fixed time on each of the given weekdays.
type WeeklyRule struct {
	At   TimeOfDay
	Days WeekdaySet
}

func (IntervalRule) FreqType() FreqType { return FreqInterval }
func (DailyRule) FreqType() FreqType    { return FreqDaily }
func (WeeklyRule) FreqType() FreqType   { return FreqWeekly }

func (IntervalRule) rule() {}
func (DailyRule) rule()    {}
func (WeeklyRule) rule()   {}

func (r IntervalRule) Every() time.Duration {
	return time.Duration(r.Hours) * time.Hour
}

// NewIntervalRule validates the interval bounds.
func NewIntervalRule(hours int) (IntervalRule, error) {
	if hours < MinIntervalHours || hours > MaxIntervalHours {
		return IntervalRule{}, ErrIntervalOutOfRange
	}
	return IntervalRule{Hours: hours}, nil
}

func NewDailyRule(at string) (DailyRule, error) {
	tod, err := ParseTimeOfDay(at)
	if err != nil {
		return DailyRule{}, err
	}
	return DailyRule{At: tod}, nil
}

func NewWeeklyRule(at, days string) (WeeklyRule, error) {
	tod, err := ParseTimeOfDay(at)
	if err != nil {
		return WeeklyRule{}, err
	}
	set, err := ParseWeekdays(days)
	if err != nil {
		return WeeklyRule{}, err
	}
	return WeeklyRule{At: tod, Days: set}, nil
}
