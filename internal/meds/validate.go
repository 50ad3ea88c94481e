package meds

import (
	"errors"
	"strconv"
	"strings"

	"github.com/2beens/healthtrack/pkg"
)

const (
	defaultTimeOfDay  = "08:00"
	defaultDaysOfWeek = "Mon,Thu"
)

var ErrNameRequired = errors.New("medication name is required")

// ValidationError carries a message safe to show to the user.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// MedicationInput is the raw, user supplied form of a new medication.
type MedicationInput struct {
	Name          string         `json:"name"`
	Dosage        string         `json:"dosage"`
	FreqType      string         `json:"freq_type"`
	IntervalHours pkg.FlexString `json:"interval_hours"`
	TimeOfDay     string         `json:"time_of_day"`
	DaysOfWeek    string         `json:"days_of_week"`
	Notes         string         `json:"notes"`
}

// Validate sanitizes the input and builds the medication row it describes.
// Missing frequency type, time of day and weekdays fall back to interval, 08:00 and Mon,Thu.
func (in MedicationInput) Validate() (*Medication, Rule, error) {
	name := pkg.SanitizeText(in.Name, 100)
	dosage := pkg.SanitizeText(in.Dosage, 100)
	notes := pkg.SanitizeText(in.Notes, 500)
	freqType := strings.ToLower(pkg.SanitizeText(in.FreqType, 10))
	timeOfDay := pkg.SanitizeText(in.TimeOfDay, 5)
	daysOfWeek := pkg.SanitizeText(in.DaysOfWeek, 50)

	if freqType == "" {
		freqType = string(FreqInterval)
	}
	if timeOfDay == "" {
		timeOfDay = defaultTimeOfDay
	}
	if daysOfWeek == "" {
		daysOfWeek = defaultDaysOfWeek
	}

	if name == "" {
		return nil, nil, &ValidationError{Err: ErrNameRequired}
	}

	var rule Rule
	var err error
	switch FreqType(freqType) {
	case FreqInterval:
		hours, convErr := strconv.Atoi(strings.TrimSpace(string(in.IntervalHours)))
		if convErr != nil {
			return nil, nil, &ValidationError{Err: ErrIntervalOutOfRange}
		}
		rule, err = NewIntervalRule(hours)
	case FreqDaily:
		rule, err = NewDailyRule(timeOfDay)
	case FreqWeekly:
		rule, err = NewWeeklyRule(timeOfDay, daysOfWeek)
	default:
		err = ErrUnknownFreqType
	}
	if err != nil {
		return nil, nil, &ValidationError{Err: err}
	}

	m := &Medication{
		Name:   name,
		Dosage: optional(dosage),
		Notes:  optional(notes),
	}
	m.ApplyRule(rule)
	return m, rule, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
