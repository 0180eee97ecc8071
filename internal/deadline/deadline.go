// Package deadline classifies tasks by urgency relative to a point in time.
package deadline

import (
	"math"
	"time"

	"kanban/internal/models"
)

// Class describes how urgent a task's deadline is.
type Class string

const (
	// ClassCompleted means the task is done, finished after its deadline
	// or without a recorded completion time.
	ClassCompleted Class = "completed"
	// ClassEarly means the task was completed on or before its deadline.
	ClassEarly Class = "early"
	// ClassToday means the deadline falls on the current day.
	ClassToday Class = "today"
	// ClassApproaching means the deadline is one or two days away.
	ClassApproaching Class = "approaching"
	// ClassOverdue means the deadline has passed without completion.
	ClassOverdue Class = "overdue"
	// ClassNone means no deadline is set or it is comfortably far away.
	ClassNone Class = "none"
)

// Classify maps a task to its urgency class at the given instant. It is
// pure: same task and now always yield the same class. Callers must
// re-evaluate on every query; the class is never stored on the task.
func Classify(task models.Task, now time.Time) Class {
	if task.Deadline == nil {
		return ClassNone
	}
	deadline := *task.Deadline

	if task.Status == models.StatusDone {
		if task.CompletedAt != nil && !task.CompletedAt.After(deadline) {
			return ClassEarly
		}
		return ClassCompleted
	}

	// Day distance rounds up, so a deadline later today counts as day
	// zero and one a few hours past counts as day zero as well.
	diffDays := int(math.Ceil(deadline.Sub(now).Hours() / 24))
	switch {
	case diffDays < 0:
		return ClassOverdue
	case diffDays == 0:
		return ClassToday
	case diffDays <= 2:
		return ClassApproaching
	}
	return ClassNone
}

// Label returns the badge text shown for a class.
func Label(c Class) string {
	switch c {
	case ClassCompleted:
		return "Completed"
	case ClassEarly:
		return "Completed early"
	case ClassToday:
		return "Due today"
	case ClassApproaching:
		return "Deadline approaching"
	case ClassOverdue:
		return "Overdue"
	default:
		return ""
	}
}

// Color returns the accent color used when rendering a class.
func Color(c Class) string {
	switch c {
	case ClassCompleted:
		return "#059669"
	case ClassEarly:
		return "#0ea5e9"
	case ClassToday:
		return "#d97706"
	case ClassApproaching:
		return "#eab308"
	case ClassOverdue:
		return "#dc2626"
	default:
		return ""
	}
}
