package trends

import (
	"fmt"
	"time"
)

// WeekKey is the lookup key of an ISO week, "YYYYWW". It matches
// PostgreSQL's to_char(ts, 'IYYYIW').
func WeekKey(isoYear, isoWeek int) string {
	return fmt.Sprintf("%04d%02d", isoYear, isoWeek)
}

// KeyOf is the WeekKey of the ISO week t falls into, in t's location.
// Late December days may belong to week 1 of the next ISO year and early
// January days to week 52 or 53 of the previous one.
func KeyOf(t time.Time) string {
	return WeekKey(t.ISOWeek())
}
