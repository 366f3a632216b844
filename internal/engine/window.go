package engine

import (
	"math"
	"time"
)

const (
	// ChallengeDays is the fixed length of every challenge.
	ChallengeDays = 30

	// DayWindow is the length of a single day's window.
	DayWindow = 24 * time.Hour
)

// DueAt returns the instant a day's window closes: startAt + dayNumber days.
// Day 1 closes a full day after the start, not at the start instant itself.
func DueAt(startAt time.Time, dayNumber int) time.Time {
	return startAt.Add(time.Duration(dayNumber) * DayWindow)
}

// CurrentDayIndex maps wall-clock time to a zero-based day index, clamped to
// [0, 29] no matter how far now drifts before the start or past day 30.
func CurrentDayIndex(startAt, now time.Time) int {
	elapsed := int(math.Floor(float64(now.Sub(startAt)) / float64(DayWindow)))
	day := elapsed + 1
	if day < 1 {
		day = 1
	}
	if day > ChallengeDays {
		day = ChallengeDays
	}
	return day - 1
}

// IsPastDue reports whether the day's window has closed.
func IsPastDue(d Day, now time.Time) bool {
	return now.After(d.DueAt)
}

// ResolveStatus derives a day's status from its tasks and the clock.
func ResolveStatus(d Day, now time.Time) DayStatus {
	if d.AllDone() {
		return StatusCompleted
	}
	if now.After(d.DueAt) {
		return StatusMissed
	}
	return StatusPending
}

// EnsureDueAt backfills missing due times from the challenge start. Records
// written before due times were stored per day rely on this on read.
func EnsureDueAt(c *Challenge) {
	for i := range c.Days {
		if c.Days[i].DueAt.IsZero() {
			c.Days[i].DueAt = DueAt(c.StartAt, c.Days[i].DayNumber)
		}
	}
}
