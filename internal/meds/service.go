package meds

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// ScheduleAll projects every medication at now. A row whose recurrence cannot be decoded
// is kept, marked invalid and gets an empty projection.
func ScheduleAll(medications []Medication, now time.Time) []ScheduledMedication {
	scheduled := make([]ScheduledMedication, 0, len(medications))
	for _, m := range medications {
		rule, err := RuleFromRow(m)
		if err != nil {
			log.Warnf("medication %d has an invalid recurrence: %s", m.ID, err)
			scheduled = append(scheduled, ScheduledMedication{
				Medication: m,
				Projection: Project(nil, now),
				Invalid:    true,
			})
			continue
		}

		scheduled = append(scheduled, ScheduledMedication{
			Medication:    m,
			Projection:    Project(rule, now),
			BeyondHorizon: BeyondHorizon(rule),
		})
	}
	return scheduled
}
