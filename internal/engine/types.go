package engine

import "time"

// DayStatus is derived state: it is recomputed from task completion and the
// day's due time on every mutation, never hand-set by callers.
type DayStatus string

const (
	StatusPending   DayStatus = "pending"
	StatusCompleted DayStatus = "completed"
	StatusMissed    DayStatus = "missed"
)

func (s DayStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusMissed:
		return true
	default:
		return false
	}
}

// Task is a single checkable item within a day. Percent is the task's weight
// toward the day (0..100). Carryover/FromDay are provenance markers set when
// a task is moved out of a missed day.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Details     string     `json:"details,omitempty"`
	Percent     int        `json:"percent"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Carryover   bool       `json:"carryover,omitempty"`
	FromDay     int        `json:"fromDay,omitempty"`
}

// Day is one of the 30 windows of a challenge. DayNumber is 1..30 and
// immutable once created; DueAt marks the end of the day's window.
type Day struct {
	DayNumber  int       `json:"dayNumber"`
	DueAt      time.Time `json:"dueAt"`
	Tasks      []Task    `json:"tasks"`
	Status     DayStatus `json:"status"`
	XPReward   int       `json:"xpReward,omitempty"`
	EstMinutes int       `json:"estMinutes,omitempty"`
}

// Challenge is the top-level 30-day record.
type Challenge struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Prompt    string    `json:"prompt"`
	StartAt   time.Time `json:"startAt"`
	Timezone  string    `json:"timezone"`
	Days      []Day     `json:"days"`
	XP        int       `json:"xp"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (t Task) clone() Task {
	out := t
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		out.CompletedAt = &at
	}
	return out
}

func (d Day) clone() Day {
	out := d
	out.Tasks = make([]Task, len(d.Tasks))
	for i := range d.Tasks {
		out.Tasks[i] = d.Tasks[i].clone()
	}
	return out
}

// Clone returns a deep copy. Stores hand copies out so callers can mutate
// freely without touching the persisted record.
func (c *Challenge) Clone() *Challenge {
	if c == nil {
		return nil
	}
	out := *c
	out.Days = make([]Day, len(c.Days))
	for i := range c.Days {
		out.Days[i] = c.Days[i].clone()
	}
	return &out
}

// AllDone reports whether the day counts as done: at least one task, all of
// them completed. An emptied-out day is never "done".
func (d Day) AllDone() bool {
	if len(d.Tasks) == 0 {
		return false
	}
	for _, t := range d.Tasks {
		if !t.Completed {
			return false
		}
	}
	return true
}

// CompletedWeight is the sum of weights of the day's completed tasks.
func (d Day) CompletedWeight() int {
	sum := 0
	for _, t := range d.Tasks {
		if t.Completed {
			sum += t.Percent
		}
	}
	return sum
}

// CompletedDays counts days whose every task is done.
func (c *Challenge) CompletedDays() int {
	n := 0
	for _, d := range c.Days {
		if d.AllDone() {
			n++
		}
	}
	return n
}

// EarnedXP totals each day's reward scaled by the completed task weight.
func (c *Challenge) EarnedXP() int {
	total := 0
	for _, d := range c.Days {
		total += d.XPReward * d.CompletedWeight() / 100
	}
	return total
}
