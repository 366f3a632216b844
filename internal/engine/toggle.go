package engine

import "time"

// ToggleTask applies a single completion change to the task with the given id
// on the day at dayIndex (zero-based), as of when.
//
// Days strictly before the current day index are immutable to user edits: the
// attempt is silently rejected and the challenge is left untouched. Editing
// today or any later day is allowed, including pre-completing future days.
//
// Returns whether the challenge was mutated; the owning day's status is
// recomputed on every accepted toggle.
func ToggleTask(c *Challenge, dayIndex int, taskID string, completed bool, when time.Time) bool {
	if dayIndex < 0 || dayIndex >= len(c.Days) {
		return false
	}
	if dayIndex < CurrentDayIndex(c.StartAt, when) {
		return false
	}

	day := &c.Days[dayIndex]
	found := false
	for i := range day.Tasks {
		if day.Tasks[i].ID != taskID {
			continue
		}
		day.Tasks[i].Completed = completed
		if completed {
			at := when
			day.Tasks[i].CompletedAt = &at
		} else {
			day.Tasks[i].CompletedAt = nil
		}
		found = true
		break
	}
	if !found {
		return false
	}

	day.Status = ResolveStatus(*day, when)
	return true
}
