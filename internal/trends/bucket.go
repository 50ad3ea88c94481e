package trends

import (
	"time"
)

// Weeks is the length of a trend series.
const Weeks = 8

type WeekBucket struct {
	Year  int `json:"year"`
	Week  int `json:"week"`
	Count int `json:"count"`
}

// WeekCount is an aggregated row as emitted by storage.
type WeekCount struct {
	Key   string
	Count int
}

// ObservationsFromRows builds the lookup Bucket works on.
// Repeated keys add up, negative counts are ignored.
func ObservationsFromRows(rows []WeekCount) map[string]int {
	observations := make(map[string]int, len(rows))
	for _, row := range rows {
		if row.Count <= 0 {
			continue
		}
		observations[row.Key] += row.Count
	}
	return observations
}

// Bucket returns the counts of the 8 ISO weeks ending with the week of now,
// oldest first. Weeks without an observation count zero.
func Bucket(observations map[string]int, now time.Time) []WeekBucket {
	buckets := make([]WeekBucket, Weeks)
	for i := 0; i < Weeks; i++ {
		year, week := now.AddDate(0, 0, -7*i).ISOWeek()
		buckets[Weeks-1-i] = WeekBucket{
			Year:  year,
			Week:  week,
			Count: max(0, observations[WeekKey(year, week)]),
		}
	}
	return buckets
}

// CurrentWeekCount is the count of the ISO week of now.
func CurrentWeekCount(observations map[string]int, now time.Time) int {
	return max(0, observations[KeyOf(now)])
}
