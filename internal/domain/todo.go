package domain

import "time"

type ToDo struct {
	ID              string
	Title           string
	DueDate         time.Time
	DueTime         string // "HH:MM", optional
	Frequency       ToDoFrequency
	IsComplete      bool
	LastCompletedAt *time.Time
	OwnerID         string
	CreatedAt       time.Time
}

// MarkComplete applies a completion at the given instant. A Once to-do
// terminates normally. A recurring to-do stays incomplete: the
// completion is stamped and the due date rolls forward one unit using
// UTC calendar arithmetic.
func (td *ToDo) MarkComplete(now time.Time) {
	ts := now
	if td.Frequency == ToDoOnce || td.Frequency == "" {
		td.IsComplete = true
		td.LastCompletedAt = &ts
		return
	}
	td.LastCompletedAt = &ts
	td.DueDate = advanceDue(td.DueDate.UTC(), td.Frequency)
}

func advanceDue(due time.Time, freq ToDoFrequency) time.Time {
	switch freq {
	case ToDoDaily:
		return due.AddDate(0, 0, 1)
	case ToDoWeekly:
		return due.AddDate(0, 0, 7)
	case ToDoMonthly:
		return due.AddDate(0, 1, 0)
	default:
		return due
	}
}
