package engine

import (
	"reflect"
	"testing"
	"time"
)

func challengeWithTasks(t *testing.T, dayTasks map[int][]Task) *Challenge {
	t.Helper()
	ch := NewLocalChallenge("test", start, "UTC")
	for i := range ch.Days {
		ch.Days[i].Tasks = []Task{}
	}
	for n, tasks := range dayTasks {
		ch.Days[n-1].Tasks = tasks
	}
	return ch
}

func TestAdvanceCarriesIncompleteTasksForward(t *testing.T) {
	ch := challengeWithTasks(t, map[int][]Task{
		1: {
			{ID: "t1", Title: "a", Percent: 50},
			{ID: "t2", Title: "b", Percent: 50},
		},
	})
	now := DueAt(start, 1).Add(time.Millisecond)

	if !Advance(ch, now) {
		t.Fatalf("expected a mutation")
	}

	day1 := ch.Days[0]
	if day1.Status != StatusMissed || len(day1.Tasks) != 0 {
		t.Fatalf("day 1 status=%s tasks=%d, want missed with 0 tasks", day1.Status, len(day1.Tasks))
	}
	day2 := ch.Days[1]
	if len(day2.Tasks) != 2 {
		t.Fatalf("day 2 tasks=%d, want 2", len(day2.Tasks))
	}
	for _, task := range day2.Tasks {
		if !task.Carryover || task.FromDay != 1 {
			t.Fatalf("carried task %+v, want carryover=true fromDay=1", task)
		}
	}
	if day2.Status != StatusPending {
		t.Fatalf("day 2 status=%s, want pending (window still open)", day2.Status)
	}
}

func TestAdvanceKeepsCompletedTasksOnOrigin(t *testing.T) {
	ch := challengeWithTasks(t, map[int][]Task{
		1: {
			{ID: "t1", Title: "done", Percent: 50, Completed: true},
			{ID: "t2", Title: "open", Percent: 50},
		},
	})
	now := DueAt(start, 1).Add(time.Second)

	Advance(ch, now)

	if len(ch.Days[0].Tasks) != 1 || ch.Days[0].Tasks[0].ID != "t1" {
		t.Fatalf("day 1 should keep only its completed task, got %+v", ch.Days[0].Tasks)
	}
	if ch.Days[0].Status != StatusMissed {
		t.Fatalf("day 1 status=%s, want missed (not everything was done)", ch.Days[0].Status)
	}
	if len(ch.Days[1].Tasks) != 1 || ch.Days[1].Tasks[0].ID != "t2" {
		t.Fatalf("day 2 should hold the carried task, got %+v", ch.Days[1].Tasks)
	}
}

func TestAdvanceFullyDoneDayCompletes(t *testing.T) {
	ch := challengeWithTasks(t, map[int][]Task{
		1: {{ID: "t1", Title: "a", Percent: 100, Completed: true}},
	})
	now := DueAt(start, 1).Add(time.Second)

	Advance(ch, now)

	if ch.Days[0].Status != StatusCompleted {
		t.Fatalf("day 1 status=%s, want completed", ch.Days[0].Status)
	}
	if len(ch.Days[1].Tasks) != 0 {
		t.Fatalf("nothing should carry from a completed day")
	}
}

func TestAdvanceCascadesThroughOverdueDays(t *testing.T) {
	ch := challengeWithTasks(t, map[int][]Task{
		1: {{ID: "t1", Title: "a", Percent: 100}},
	})
	// Days 1..3 are all overdue: the task ripples day by day in one pass.
	now := DueAt(start, 3).Add(time.Second)

	Advance(ch, now)

	for n := 1; n <= 3; n++ {
		if ch.Days[n-1].Status != StatusMissed {
			t.Fatalf("day %d status=%s, want missed", n, ch.Days[n-1].Status)
		}
	}
	if len(ch.Days[3].Tasks) != 1 {
		t.Fatalf("day 4 tasks=%d, want 1", len(ch.Days[3].Tasks))
	}
	carried := ch.Days[3].Tasks[0]
	if carried.ID != "t1" || !carried.Carryover || carried.FromDay != 3 {
		t.Fatalf("carried=%+v, want t1 from day 3", carried)
	}
	if ch.Days[3].Status != StatusPending {
		t.Fatalf("day 4 status=%s, want pending", ch.Days[3].Status)
	}
}

func TestAdvanceIdempotent(t *testing.T) {
	ch := challengeWithTasks(t, map[int][]Task{
		1: {{ID: "t1", Title: "a", Percent: 60}, {ID: "t2", Title: "b", Percent: 40, Completed: true}},
		5: {{ID: "t3", Title: "c", Percent: 100}},
	})
	now := DueAt(start, 6).Add(time.Minute)

	Advance(ch, now)
	snapshot := ch.Clone()

	if Advance(ch, now) {
		t.Fatalf("second pass with the same now must not mutate")
	}
	if !reflect.DeepEqual(ch.Days, snapshot.Days) {
		t.Fatalf("days changed on second pass")
	}
}

func TestAdvanceConservesTasks(t *testing.T) {
	ch := challengeWithTasks(t, map[int][]Task{
		2: {
			{ID: "t1", Title: "a", Percent: 25},
			{ID: "t2", Title: "b", Percent: 25, Completed: true},
			{ID: "t3", Title: "c", Percent: 25},
			{ID: "t4", Title: "d", Percent: 25},
		},
	})
	now := DueAt(start, 2).Add(time.Second)

	Advance(ch, now)

	seen := map[string]int{}
	total := 0
	for _, d := range ch.Days {
		for _, task := range d.Tasks {
			seen[task.ID]++
			total++
		}
	}
	if total != 4 {
		t.Fatalf("task count=%d, want 4 (no duplication or loss)", total)
	}
	for id, n := range seen {
		if n != 1 {
			t.Fatalf("task %s appears %d times", id, n)
		}
	}
	if len(ch.Days[2].Tasks) != 3 {
		t.Fatalf("day 3 tasks=%d, want the 3 incomplete ones", len(ch.Days[2].Tasks))
	}
}

func TestAdvanceLastDayAbsorbsOverflow(t *testing.T) {
	ch := challengeWithTasks(t, map[int][]Task{
		30: {
			{ID: "t1", Title: "a", Percent: 50},
			{ID: "t2", Title: "b", Percent: 50, Completed: true},
		},
	})
	now := DueAt(start, 30).Add(time.Hour)

	Advance(ch, now)

	// Day 30 overflows into itself rather than past the challenge.
	day30 := ch.Days[29]
	if len(day30.Tasks) != 2 {
		t.Fatalf("day 30 tasks=%d, want 2", len(day30.Tasks))
	}
	if day30.Status != StatusMissed {
		t.Fatalf("day 30 status=%s, want missed", day30.Status)
	}
	var open *Task
	for i := range day30.Tasks {
		if day30.Tasks[i].ID == "t1" {
			open = &day30.Tasks[i]
		}
	}
	if open == nil || !open.Carryover || open.FromDay != 30 {
		t.Fatalf("open task=%+v, want carryover from day 30", open)
	}
}

func TestAdvanceLastDayAccumulatesUnbounded(t *testing.T) {
	// Incomplete tasks from many missed days all end up parked on day 30;
	// nothing caps the pile.
	tasks := map[int][]Task{}
	for n := 25; n <= 30; n++ {
		tasks[n] = []Task{{ID: "t" + string(rune('a'+n-25)), Title: "x", Percent: 100}}
	}
	ch := challengeWithTasks(t, tasks)
	now := DueAt(start, 30).Add(time.Hour)

	Advance(ch, now)

	if len(ch.Days[29].Tasks) != 6 {
		t.Fatalf("day 30 tasks=%d, want all 6 carried tasks", len(ch.Days[29].Tasks))
	}
	for n := 25; n <= 29; n++ {
		if len(ch.Days[n-1].Tasks) != 0 {
			t.Fatalf("day %d should be emptied", n)
		}
	}
}

func TestAdvanceLeavesOpenDaysAlone(t *testing.T) {
	ch := challengeWithTasks(t, map[int][]Task{
		10: {{ID: "t1", Title: "future", Percent: 100}},
	})
	now := start.Add(12 * time.Hour)

	if Advance(ch, now) {
		t.Fatalf("nothing is overdue; no mutation expected")
	}
	if ch.Days[9].Status != StatusPending {
		t.Fatalf("day 10 status=%s, want pending", ch.Days[9].Status)
	}
}
