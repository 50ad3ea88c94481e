package meds

import (
	"fmt"
	"time"
)

// Medication is a stored row of the medications table.
type Medication struct {
	ID            int       `json:"id"`
	UserID        int       `json:"-"`
	Name          string    `json:"name"`
	Dosage        *string   `json:"dosage"`
	IntervalHours *int      `json:"interval_hours"`
	FreqType      string    `json:"freq_type"`
	TimeOfDay     *string   `json:"time_of_day"`
	DaysOfWeek    *string   `json:"days_of_week"`
	Notes         *string   `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
}

// RuleFromRow decodes the recurrence columns of a stored medication.
func RuleFromRow(m Medication) (Rule, error) {
	switch FreqType(m.FreqType) {
	case FreqInterval:
		if m.IntervalHours == nil {
			return nil, fmt.Errorf("interval_hours: %w", ErrMissingRecurrenceArg)
		}
		return NewIntervalRule(*m.IntervalHours)
	case FreqDaily:
		if m.TimeOfDay == nil {
			return nil, fmt.Errorf("time_of_day: %w", ErrMissingRecurrenceArg)
		}
		return NewDailyRule(*m.TimeOfDay)
	case FreqWeekly:
		if m.TimeOfDay == nil {
			return nil, fmt.Errorf("time_of_day: %w", ErrMissingRecurrenceArg)
		}
		if m.DaysOfWeek == nil {
			return nil, fmt.Errorf("days_of_week: %w", ErrMissingRecurrenceArg)
		}
		return NewWeeklyRule(*m.TimeOfDay, *m.DaysOfWeek)
	default:
		return nil, fmt.Errorf("freq type %q: %w", m.FreqType, ErrUnknownFreqType)
	}
}

// ApplyRule sets the recurrence columns from rule, clearing the ones it does not use.
func (m *Medication) ApplyRule(rule Rule) {
	m.IntervalHours, m.TimeOfDay, m.DaysOfWeek = nil, nil, nil
	m.FreqType = string(rule.FreqType())
	switch r := rule.(type) {
	case IntervalRule:
		hours := r.Hours
		m.IntervalHours = &hours
	case DailyRule:
		at := r.At.String()
		m.TimeOfDay = &at
	case WeeklyRule:
		at, days := r.At.String(), r.Days.String()
		m.TimeOfDay, m.DaysOfWeek = &at, &days
	}
}

// ScheduledMedication is a medication together with its projection at read time.
type ScheduledMedication struct {
	Medication
	Projection
	// BeyondHorizon marks interval rules whose first dose lies past the projection horizon.
	BeyondHorizon bool `json:"beyond_horizon"`
	// Invalid marks stored rows whose recurrence could not be decoded.
	Invalid bool `json:"invalid,omitempty"`
}
