package engine

import (
	"testing"
	"time"
)

var start = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestDueAtIsEndOfWindow(t *testing.T) {
	for n := 1; n <= ChallengeDays; n++ {
		want := start.Add(time.Duration(n) * 24 * time.Hour)
		if got := DueAt(start, n); !got.Equal(want) {
			t.Fatalf("DueAt(start, %d)=%v, want %v", n, got, want)
		}
	}
	// Day 1 closes a full day after start, not at the start instant.
	if DueAt(start, 1).Equal(start) {
		t.Fatalf("day 1 due must not be the start instant")
	}
}

func TestCurrentDayIndexScenarios(t *testing.T) {
	cases := []struct {
		now  time.Time
		want int
	}{
		{start.Add(12 * time.Hour), 0},
		{start.Add(24*time.Hour + time.Second), 1},
		{start, 0},
		{start.Add(-100 * 24 * time.Hour), 0},
		{start.Add(29 * 24 * time.Hour), 29},
		{start.Add(1000 * 24 * time.Hour), 29},
	}
	for _, c := range cases {
		if got := CurrentDayIndex(start, c.now); got != c.want {
			t.Fatalf("CurrentDayIndex(start, %v)=%d, want %d", c.now, got, c.want)
		}
	}
}

func TestCurrentDayIndexAlwaysInRange(t *testing.T) {
	for off := -1000; off <= 1000; off += 7 {
		now := start.Add(time.Duration(off) * 6 * time.Hour)
		got := CurrentDayIndex(start, now)
		if got < 0 || got > 29 {
			t.Fatalf("index %d out of [0,29] for offset %d", got, off)
		}
	}
}

func TestIsPastDue(t *testing.T) {
	d := Day{DayNumber: 1, DueAt: DueAt(start, 1)}
	if IsPastDue(d, d.DueAt) {
		t.Fatalf("due instant itself is not past due")
	}
	if !IsPastDue(d, d.DueAt.Add(time.Millisecond)) {
		t.Fatalf("1ms past due must be past due")
	}
}

func TestResolveStatus(t *testing.T) {
	due := DueAt(start, 1)
	day := Day{DayNumber: 1, DueAt: due, Tasks: []Task{{ID: "a"}, {ID: "b"}}}

	if got := ResolveStatus(day, start.Add(time.Hour)); got != StatusPending {
		t.Fatalf("open day with incomplete tasks=%s, want pending", got)
	}
	if got := ResolveStatus(day, due.Add(time.Second)); got != StatusMissed {
		t.Fatalf("overdue day with incomplete tasks=%s, want missed", got)
	}

	day.Tasks[0].Completed = true
	day.Tasks[1].Completed = true
	if got := ResolveStatus(day, start.Add(time.Hour)); got != StatusCompleted {
		t.Fatalf("all-done day=%s, want completed", got)
	}

	// Zero completed tasks never counts as success, even after the window.
	empty := Day{DayNumber: 2, DueAt: due}
	if got := ResolveStatus(empty, due.Add(time.Second)); got != StatusMissed {
		t.Fatalf("empty overdue day=%s, want missed", got)
	}
}

func TestEnsureDueAtBackfill(t *testing.T) {
	ch := NewLocalChallenge("goal", start, "UTC")
	kept := ch.Days[4].DueAt
	ch.Days[2].DueAt = time.Time{}
	ch.Days[29].DueAt = time.Time{}

	EnsureDueAt(ch)

	if !ch.Days[2].DueAt.Equal(DueAt(start, 3)) {
		t.Fatalf("day 3 dueAt=%v, want %v", ch.Days[2].DueAt, DueAt(start, 3))
	}
	if !ch.Days[29].DueAt.Equal(DueAt(start, 30)) {
		t.Fatalf("day 30 dueAt=%v, want %v", ch.Days[29].DueAt, DueAt(start, 30))
	}
	if !ch.Days[4].DueAt.Equal(kept) {
		t.Fatalf("populated dueAt must be left alone")
	}
}
