package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/projectpulse/pulse/internal/domain"
)

var idCounter atomic.Int64

// NextID returns a process-unique numeric-looking id.
func NextID() string {
	return fmt.Sprintf("9%03d", idCounter.Add(1))
}

// Project options

type ProjectOption func(*domain.Project)

func WithStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) { p.Status = s }
}

func WithParent(parentID string, weight int) ProjectOption {
	return func(p *domain.Project) {
		p.ParentID = parentID
		p.Weight = weight
	}
}

func WithLead(leadID string) ProjectOption {
	return func(p *domain.Project) { p.LeadID = leadID }
}

func WithAllocatedHours(h float64) ProjectOption {
	return func(p *domain.Project) { p.AllocatedHours = h }
}

func WithTimerRunning(since time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.Status = domain.ProjectStarted
		p.TimerStartTime = &since
	}
}

func WithFrequency(freq domain.Frequency, detail string) ProjectOption {
	return func(p *domain.Project) {
		p.Frequency = freq
		p.FrequencyDetail = detail
	}
}

func WithUsage(userID string, date time.Time, savedHours float64) ProjectOption {
	return func(p *domain.Project) {
		p.LastUsedBy = append(p.LastUsedBy, domain.UsageLog{
			UserID: userID, Date: date, SavedHours: savedHours,
		})
	}
}

func NewProject(id, name string, opts ...ProjectOption) domain.Project {
	p := domain.Project{
		ID:     id,
		Name:   name,
		Status: domain.ProjectNotStarted,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// Task options

type TaskOption func(*domain.Task)

func WithTaskStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) { t.Status = s }
}

func WithTaskType(tt domain.TaskType) TaskOption {
	return func(t *domain.Task) { t.Type = tt }
}

func WithAssignee(id string) TaskOption {
	return func(t *domain.Task) { t.AssigneeID = id }
}

func WithDeadline(d time.Time) TaskOption {
	return func(t *domain.Task) { t.Deadline = &d }
}

func NewTask(id, projectID, title string, opts ...TaskOption) domain.Task {
	t := domain.Task{
		ID:        id,
		ProjectID: projectID,
		Title:     title,
		Type:      domain.TaskTypeTask,
		Status:    domain.TaskNotStarted,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// To-do options

type ToDoOption func(*domain.ToDo)

func WithToDoFrequency(f domain.ToDoFrequency) ToDoOption {
	return func(td *domain.ToDo) { td.Frequency = f }
}

func WithDueTime(hhmm string) ToDoOption {
	return func(td *domain.ToDo) { td.DueTime = hhmm }
}

func NewToDo(id, ownerID, title string, due time.Time, opts ...ToDoOption) domain.ToDo {
	td := domain.ToDo{
		ID:        id,
		OwnerID:   ownerID,
		Title:     title,
		DueDate:   due,
		Frequency: domain.ToDoOnce,
	}
	for _, opt := range opts {
		opt(&td)
	}
	return td
}

func NewMember(id, name string, role domain.Role) domain.Member {
	return domain.Member{ID: id, Name: name, Role: role}
}
