package engine

import (
	"fmt"
	"time"
)

// WeeklyGenerationLimit caps AI plan generations per ISO week.
const WeeklyGenerationLimit = 5

// Quota describes the remaining plan-generation allowance for the current
// ISO week.
type Quota struct {
	WeekKey string
	Used    int
	Limit   int
	ResetAt time.Time
}

func (q Quota) Remaining() int {
	r := q.Limit - q.Used
	if r < 0 {
		return 0
	}
	return r
}

// ISOWeekKey renders t's ISO week as "YYYY-Www", e.g. "2026-W35".
func ISOWeekKey(t time.Time) string {
	year, week := t.UTC().ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// NextWeekStart returns the start of the next ISO week: the first Monday
// 00:00 UTC strictly after t's date.
func NextWeekStart(t time.Time) time.Time {
	u := t.UTC()
	date := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	sinceMonday := (int(date.Weekday()) + 6) % 7
	return date.AddDate(0, 0, 7-sinceMonday)
}
