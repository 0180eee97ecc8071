package deadline

import (
	"testing"
	"time"

	"kanban/internal/models"
)

var now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func taskDue(deadline time.Time) models.Task {
	return models.Task{Status: models.StatusTodo, Deadline: &deadline}
}

func TestClassifyNoDeadline(t *testing.T) {
	if got := Classify(models.Task{Status: models.StatusTodo}, now); got != ClassNone {
		t.Fatalf("expected none, got %q", got)
	}
}

func TestClassifyDayBoundaries(t *testing.T) {
	cases := []struct {
		name     string
		deadline time.Time
		want     Class
	}{
		{"exactly now", now, ClassToday},
		{"later today", now.Add(24*time.Hour - time.Millisecond), ClassToday},
		{"one day out", now.Add(24 * time.Hour), ClassApproaching},
		{"two days out", now.Add(48 * time.Hour), ClassApproaching},
		{"just past two days", now.Add(48*time.Hour + time.Millisecond), ClassNone},
		{"three days out", now.Add(72 * time.Hour), ClassNone},
		{"a few hours past", now.Add(-12 * time.Hour), ClassToday},
		{"more than a day past", now.Add(-25 * time.Hour), ClassOverdue},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(taskDue(tc.deadline), now); got != tc.want {
				t.Fatalf("deadline %s: expected %q, got %q", tc.deadline, tc.want, got)
			}
		})
	}
}

func TestClassifyDone(t *testing.T) {
	deadline := now.Add(24 * time.Hour)

	task := taskDue(deadline)
	task.Status = models.StatusDone
	if got := Classify(task, now); got != ClassCompleted {
		t.Fatalf("done without completedAt: expected completed, got %q", got)
	}

	onTime := deadline
	task.CompletedAt = &onTime
	if got := Classify(task, now); got != ClassEarly {
		t.Fatalf("completed at deadline: expected early, got %q", got)
	}

	late := deadline.Add(time.Second)
	task.CompletedAt = &late
	if got := Classify(task, now); got != ClassCompleted {
		t.Fatalf("completed after deadline: expected completed, got %q", got)
	}
}

func TestClassifyIsPure(t *testing.T) {
	task := taskDue(now.Add(30 * time.Hour))
	first := Classify(task, now)
	second := Classify(task, now)
	if first != second {
		t.Fatalf("classification not stable: %q vs %q", first, second)
	}
}
