package meds

import (
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	// Horizon bounds interval projections, inclusive.
	Horizon = 24 * time.Hour

	weeklyScanDays = 14
	maxWeeklyDoses = 4
)

// Projection is the forecast of upcoming doses, ascending.
type Projection struct {
	Upcoming []time.Time `json:"schedule"`
	NextDue  *time.Time  `json:"next_due"`
}

// Project computes the upcoming doses for rule as seen at now.
// The result depends only on its arguments. Unknown or nil rules project to nothing.
func Project(rule Rule, now time.Time) Projection {
	var upcoming []time.Time
	switch r := rule.(type) {
	case IntervalRule:
		upcoming = projectInterval(r, now)
	case DailyRule:
		upcoming = projectDaily(r, now)
	case WeeklyRule:
		upcoming = projectWeekly(r, now)
	case nil:
	default:
		log.Warnf("meds: no projection for rule %T", rule)
	}

	p := Projection{Upcoming: upcoming}
	if p.Upcoming == nil {
		p.Upcoming = []time.Time{}
	}
	if len(p.Upcoming) > 0 {
		next := p.Upcoming[0]
		p.NextDue = &next
	}
	return p
}

func projectInterval(r IntervalRule, now time.Time) []time.Time {
	every := r.Every()
	if every <= 0 {
		return nil
	}
	var doses []time.Time
	for elapsed := every; elapsed <= Horizon; elapsed += every {
		doses = append(doses, now.Add(elapsed))
	}
	return doses
}

func projectDaily(r DailyRule, now time.Time) []time.Time {
	var doses []time.Time
	if today := r.At.On(now, 0); today.After(now) {
		doses = append(doses, today)
	}
	return append(doses, r.At.On(now, 1))
}

func projectWeekly(r WeeklyRule, now time.Time) []time.Time {
	var doses []time.Time
	for i := 0; i < weeklyScanDays && len(doses) < maxWeeklyDoses; i++ {
		candidate := r.At.On(now, i)
		if !r.Days.Contains(candidate.Weekday()) {
			continue
		}
		if candidate.After(now) {
			doses = append(doses, candidate)
		}
	}
	return doses
}

// BeyondHorizon reports whether the rule can never produce a dose inside the projection horizon.
func BeyondHorizon(rule Rule) bool {
	r, ok := rule.(IntervalRule)
	return ok && r.Every() > Horizon
}
