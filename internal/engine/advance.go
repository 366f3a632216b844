package engine

import "time"

// Advance runs one resolution pass over the challenge: every day whose window
// has closed and that is not already completed hands its incomplete tasks to
// the following day and settles on completed or missed.
//
// Days are processed in ascending order, so tasks carried into day n+1 are
// part of day n+1's own resolution when it is independently overdue in the
// same pass. The last day absorbs its own overflow instead of spilling past
// day 30; nothing caps how much it can accumulate. Days still inside their
// window are left untouched. Running the pass again with the same now makes
// no further changes.
//
// Advance mutates c and reports whether anything changed; persisting the
// result is the caller's job.
func Advance(c *Challenge, now time.Time) bool {
	changed := false
	last := len(c.Days) - 1
	for i := range c.Days {
		day := &c.Days[i]
		if !now.After(day.DueAt) || day.Status == StatusCompleted {
			continue
		}

		kept := make([]Task, 0, len(day.Tasks))
		var moved []Task
		for _, t := range day.Tasks {
			if t.Completed {
				kept = append(kept, t)
			} else {
				moved = append(moved, t)
			}
		}

		if len(moved) > 0 {
			target := i + 1
			if target > last {
				target = last
			}
			for j := range moved {
				moved[j].Carryover = true
				moved[j].FromDay = day.DayNumber
			}
			day.Tasks = kept
			c.Days[target].Tasks = append(c.Days[target].Tasks, moved...)
			changed = true
		}

		status := StatusMissed
		if day.AllDone() {
			status = StatusCompleted
		}
		if day.Status != status {
			day.Status = status
			changed = true
		}
	}
	return changed
}
