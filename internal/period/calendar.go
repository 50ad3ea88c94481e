package period

import (
	"time"
)

type Day struct {
	Date      string `json:"date"`
	Day       int    `json:"day"`
	Weekday   string `json:"weekday"`
	Logged    bool   `json:"logged"`
	Predicted bool   `json:"predicted"`
}

type Calendar struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Days  []Day `json:"days"`
}

// BuildCalendar lays out a month, 1-based. A day is logged when it falls into
// the first WindowDays days of a logged period, and predicted when next contains it.
func BuildCalendar(year int, month time.Month, logs []Log, next *Window) Calendar {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	var days []Day
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		day := Day{
			Date:    d.Format(DateLayout),
			Day:     d.Day(),
			Weekday: d.Weekday().String()[:3],
		}
		for _, l := range logs {
			start := dateOf(l.StartDate)
			if !d.Before(start) && d.Before(start.AddDate(0, 0, WindowDays)) {
				day.Logged = true
				break
			}
		}
		if next != nil && next.Contains(d) {
			day.Predicted = true
		}
		days = append(days, day)
	}

	return Calendar{
		Year:  first.Year(),
		Month: int(first.Month()),
		Days:  days,
	}
}

// CalendarMonth resolves the requested month, falling back to the month of now
// for a missing or out of range value.
func CalendarMonth(year, month int, yearOK, monthOK bool, now time.Time) (int, time.Month) {
	calYear, calMonth := now.Year(), now.Month()
	if yearOK && year > 0 && year < 10000 {
		calYear = year
	}
	if monthOK && month >= 1 && month <= 12 {
		calMonth = time.Month(month)
	}
	return calYear, calMonth
}
