package engine

import (
	"fmt"
	"strings"
	"time"
)

// Defaults for locally synthesized challenges (the fitness template and
// normalized plans use DefaultXPReward/DefaultEstMinutes instead).
const (
	localXPReward   = 100
	localEstMinutes = 30
)

func emptyDays(startAt time.Time, xpReward, estMinutes int) []Day {
	days := make([]Day, ChallengeDays)
	for i := range days {
		n := i + 1
		days[i] = Day{
			DayNumber:  n,
			DueAt:      DueAt(startAt, n),
			Tasks:      []Task{},
			Status:     StatusPending,
			XPReward:   xpReward,
			EstMinutes: estMinutes,
		}
	}
	return days
}

// NewLocalChallenge synthesizes a challenge from a free-text goal without any
// network call. Day 1 gets the goal plus two starter tasks; the remaining
// days start empty and pending.
func NewLocalChallenge(goal string, now time.Time, tz string) *Challenge {
	input := strings.TrimSpace(goal)
	title := input
	if title == "" {
		title = "My 30 Day Challenge"
	}
	firstTask := input
	if firstTask == "" {
		firstTask = "My goal for Day 1"
	}

	days := emptyDays(now, localXPReward, localEstMinutes)
	days[0].Tasks = []Task{
		{ID: newID("t"), Title: firstTask, Percent: 40},
		{ID: newID("t"), Title: "Do one small step", Percent: 40},
		{ID: newID("t"), Title: "Reflect for 5 minutes", Percent: 20},
	}

	return &Challenge{
		ID:        newID("ch"),
		Title:     title,
		Prompt:    goal,
		StartAt:   now,
		Timezone:  tz,
		Days:      days,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewFitnessChallenge builds the fixed 30-day fitness template with a mild
// progressive-overload curve across days.
func NewFitnessChallenge(now time.Time, tz string) *Challenge {
	days := make([]Day, ChallengeDays)
	for i := range days {
		n := i + 1
		pushUps := 10 + int(float64(i)*0.8)
		squats := 15 + i
		plankSec := 30 + i*3
		walkMin := 15 + i/2
		days[i] = Day{
			DayNumber: n,
			DueAt:     DueAt(now, n),
			Tasks: []Task{
				{ID: newID("t"), Title: fmt.Sprintf("%d push-ups", pushUps), Percent: 25},
				{ID: newID("t"), Title: fmt.Sprintf("%d squats", squats), Percent: 25},
				{ID: newID("t"), Title: fmt.Sprintf("Plank %ds", plankSec), Percent: 20},
				{ID: newID("t"), Title: fmt.Sprintf("Walk %d min", walkMin), Percent: 20},
				{ID: newID("t"), Title: "Full-body stretch 5 min", Percent: 10},
			},
			Status:     StatusPending,
			XPReward:   DefaultXPReward,
			EstMinutes: DefaultEstMinutes,
		}
	}

	return &Challenge{
		ID:        newID("chfit"),
		Title:     "Daily Fitness (30 Days)",
		Prompt:    "Default daily fitness plan: push-ups, squats, plank, walk, stretch.",
		StartAt:   now,
		Timezone:  tz,
		Days:      days,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewChallengeFromPlan normalizes an externally generated plan into a fresh
// challenge. A plan whose shape cannot be normalized yields an error and no
// challenge.
func NewChallengeFromPlan(title, prompt string, plan *RawPlan, now time.Time, tz string) (*Challenge, error) {
	days, err := NormalizePlan(plan, now)
	if err != nil {
		return nil, err
	}
	if title == "" {
		title = "AI Challenge"
	}
	return &Challenge{
		ID:        newID("ch"),
		Title:     title,
		Prompt:    prompt,
		StartAt:   now,
		Timezone:  tz,
		Days:      days,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
