package period

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultCycleLength = 28
	MinCycleLength     = 20
	MaxCycleLength     = 60
	// WindowDays is how long a predicted period lasts.
	WindowDays   = 5
	HistoryLimit = 12

	DateLayout = "2006-01-02"
)

var (
	ErrBadDate  = errors.New("invalid start date")
	ErrBadCycle = errors.New("invalid cycle length")
)

type Log struct {
	ID          int
	UserID      int
	StartDate   time.Time
	CycleLength *int
	CreatedAt   time.Time
}

func (l Log) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID          int       `json:"id"`
		StartDate   string    `json:"start_date"`
		CycleLength int       `json:"cycle_length"`
		CreatedAt   time.Time `json:"created_at"`
	}{
		ID:          l.ID,
		StartDate:   l.StartDate.Format(DateLayout),
		CycleLength: l.Cycle(),
		CreatedAt:   l.CreatedAt,
	})
}

// Cycle is the logged cycle length, or the default one.
func (l Log) Cycle() int {
	if l.CycleLength == nil || *l.CycleLength <= 0 {
		return DefaultCycleLength
	}
	return *l.CycleLength
}

// Window is a predicted period, End is WindowDays after Start and not part of it.
type Window struct {
	Start time.Time
	End   time.Time
	Cycle int
}

func (w Window) Contains(day time.Time) bool {
	day = dateOf(day)
	return !day.Before(w.Start) && day.Before(w.End)
}

func (w Window) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Start string `json:"start"`
		End   string `json:"end"`
		Cycle int    `json:"cycle"`
	}{
		Start: w.Start.Format(DateLayout),
		End:   w.End.Format(DateLayout),
		Cycle: w.Cycle,
	})
}

// NextWindow predicts the period following latest.
func NextWindow(latest Log) Window {
	cycle := latest.Cycle()
	start := dateOf(latest.StartDate).AddDate(0, 0, cycle)
	return Window{
		Start: start,
		End:   start.AddDate(0, 0, WindowDays),
		Cycle: cycle,
	}
}

// ParseInput validates a submitted start date and cycle length.
// An empty cycle length means the default one.
func ParseInput(startDate, cycleLength string) (time.Time, int, error) {
	startDate = strings.TrimSpace(startDate)
	start, err := time.Parse(DateLayout, startDate)
	if err != nil || len(startDate) != len(DateLayout) {
		return time.Time{}, 0, ErrBadDate
	}

	cycleLength = strings.TrimSpace(cycleLength)
	if cycleLength == "" {
		return start, DefaultCycleLength, nil
	}
	cycle, err := strconv.Atoi(cycleLength)
	if err != nil || cycle < MinCycleLength || cycle > MaxCycleLength {
		return time.Time{}, 0, ErrBadCycle
	}
	return start, cycle, nil
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
