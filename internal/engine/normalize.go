package engine

import (
	"time"

	"github.com/google/uuid"
)

// Raw plan shapes as produced by an external generator. Everything about them
// is untrusted: days may be missing, duplicated, out of order, over-stuffed
// with tasks, or carry weights that do not add up.
type RawTask struct {
	Title     string `json:"title"`
	Details   string `json:"details,omitempty"`
	Percent   *int   `json:"percent,omitempty"`
	Completed bool   `json:"completed,omitempty"`
}

type RawDay struct {
	DayNumber  int       `json:"dayNumber"`
	Tasks      []RawTask `json:"tasks"`
	XPReward   *int      `json:"xpReward,omitempty"`
	EstMinutes *int      `json:"estMinutes,omitempty"`
}

type RawPlan struct {
	Title string   `json:"title"`
	Days  []RawDay `json:"days"`
}

const (
	// MaxTasksPerDay bounds a day's task list (display and scoring constraint).
	MaxTasksPerDay = 5

	// Defaults applied when a generated day omits reward/effort hints.
	DefaultXPReward   = 120
	DefaultEstMinutes = 25

	// RestTaskTitle fills days the generator left out entirely.
	RestTaskTitle = "Rest / Reflection"
)

func newID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}

// NormalizePlan forces an arbitrary external plan into the canonical shape:
// exactly 30 days numbered 1..30, at most 5 tasks each, fresh task ids, no
// inherited completion state, and per-day weights summing to exactly 100.
func NormalizePlan(plan *RawPlan, startAt time.Time) ([]Day, error) {
	if plan == nil || plan.Days == nil {
		return nil, PlanShapeError{Reason: "missing days array"}
	}

	days := make([]Day, ChallengeDays)
	for i := 0; i < ChallengeDays; i++ {
		n := i + 1
		raw := findRawDay(plan.Days, n)
		if raw == nil {
			raw = &RawDay{DayNumber: n, Tasks: []RawTask{{Title: RestTaskTitle}}}
		}

		src := raw.Tasks
		if len(src) > MaxTasksPerDay {
			src = src[:MaxTasksPerDay]
		}

		tasks := make([]Task, 0, len(src))
		sum := 0
		for _, rt := range src {
			pct := 0
			if rt.Percent != nil {
				pct = *rt.Percent
			}
			sum += pct
			// Fresh id, completed always false: external state is distrusted.
			tasks = append(tasks, Task{
				ID:      newID("t"),
				Title:   rt.Title,
				Details: rt.Details,
				Percent: pct,
			})
		}
		if len(tasks) > 0 && sum != 100 {
			rebalanceWeights(tasks)
		}

		day := Day{
			DayNumber:  n,
			DueAt:      DueAt(startAt, n),
			Tasks:      tasks,
			Status:     StatusPending,
			XPReward:   DefaultXPReward,
			EstMinutes: DefaultEstMinutes,
		}
		if raw.XPReward != nil {
			day.XPReward = *raw.XPReward
		}
		if raw.EstMinutes != nil {
			day.EstMinutes = *raw.EstMinutes
		}
		days[i] = day
	}
	return days, nil
}

// rebalanceWeights discards input weights and distributes evenly: the first
// n-1 tasks get floor(100/n) and the last absorbs the remainder, so the sum
// is exactly 100 even when 100/n is not integral.
func rebalanceWeights(tasks []Task) {
	n := len(tasks)
	even := 100 / n
	for i := range tasks {
		if i == n-1 {
			tasks[i].Percent = 100 - even*(n-1)
		} else {
			tasks[i].Percent = even
		}
	}
}

func findRawDay(days []RawDay, dayNumber int) *RawDay {
	for i := range days {
		if days[i].DayNumber == dayNumber {
			return &days[i]
		}
	}
	return nil
}
