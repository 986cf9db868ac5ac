package domain

import "time"

type Task struct {
	ID                  string
	Title               string
	Description         string
	Type                TaskType
	ProjectID           string
	Status              TaskStatus
	Priority            string
	Severity            string
	Deadline            *time.Time
	AssigneeID          string
	StatusReason        string
	Difficulty          string
	TimeSpent           float64
	TimeSaved           float64
	CompletionReference string
	CompletedAt         *time.Time
	LastUpdated         *time.Time
}

// CompletionDetails carries the fields recorded when a task is closed out.
type CompletionDetails struct {
	TimeSpent           float64
	TimeSaved           float64
	CompletionReference string
}

// Complete transitions the task into Completed, recording the closing
// details and clearing any lingering status reason. Completion is a
// forward-only transition; completing an already-completed task just
// refreshes the details.
func (t *Task) Complete(details CompletionDetails, now time.Time) {
	ts := now
	t.Status = TaskCompleted
	t.TimeSpent = details.TimeSpent
	t.TimeSaved = details.TimeSaved
	t.CompletionReference = details.CompletionReference
	t.StatusReason = ""
	t.CompletedAt = &ts
	t.LastUpdated = &ts
}

// IsOverdue reports whether the task has a deadline in the past and is
// not yet completed.
func (t *Task) IsOverdue(now time.Time) bool {
	return t.Deadline != nil && t.Deadline.Before(now) && t.Status != TaskCompleted
}
