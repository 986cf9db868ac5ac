package service

import (
	"context"
	"time"

	"github.com/projectpulse/pulse/internal/domain"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (*domain.Member, error)
	Logout(ctx context.Context) error
	CurrentUser() (*domain.Member, bool)
	RestoreSession() (*domain.Member, bool)
}

type SyncService interface {
	// Hydrate loads every backend collection into the store.
	Hydrate(ctx context.Context) error
}

// CreateProjectRequest collects the fields of the add-project form.
type CreateProjectRequest struct {
	ActorID            string
	Name               string
	Description        string
	LeadID             string
	TeamID             string
	ParentID           string
	Weight             int
	AllocatedHours     float64
	ExpectedSavedHours *float64
	Frequency          domain.Frequency
	FrequencyDetail    string
	Users              []domain.Beneficiary
	ToolsUsed          []string
}

// ProjectUpdate is a partial update. Nil fields are left untouched.
type ProjectUpdate struct {
	ID                 string
	ActorID            string
	Name               *string
	Description        *string
	Status             *domain.ProjectStatus
	LeadID             *string
	AllocatedHours     *float64
	AdditionalHours    *float64
	ExpectedSavedHours *float64

	// EndUserFeedback is mandatory when Status moves to
	// CompletedNotSatisfied; ManagerComment when it moves to
	// CompletedBlocked. Both are blocking preconditions.
	EndUserFeedback *string
	ManagerComment  *string
}

type ProjectService interface {
	Create(ctx context.Context, req CreateProjectRequest) (*domain.Project, error)
	Update(ctx context.Context, upd ProjectUpdate) (*domain.Project, error)
	Delete(ctx context.Context, id, actorID string) error

	StartTimer(ctx context.Context, id, actorID string) (*domain.Project, error)
	HoldTimer(ctx context.Context, id, actorID string) (*domain.Project, error)
	EndTimer(ctx context.Context, id, actorID string) (*domain.Project, error)

	// LogUsage appends a saved-hours entry for a periodic project.
	LogUsage(ctx context.Context, projectID, userID string, savedHours float64) (*domain.Project, error)
	// DueForUsage lists completed periodic projects due for a new log.
	DueForUsage(now time.Time) []domain.Project
}

// CreateTaskRequest covers generic tasks and issues.
type CreateTaskRequest struct {
	ActorID     string
	ProjectID   string
	Title       string
	Description string
	Type        domain.TaskType
	Priority    string
	Severity    string
	Deadline    *time.Time
	AssigneeID  string
}

// CreateRiskRequest creates a "risk", surfaced to users as Blocked.
// The title derives from the selected reason, never free-form (unless
// the reason is Other, which carries its own text).
type CreateRiskRequest struct {
	ActorID      string
	ProjectID    string
	Reason       string
	CustomReason string
	Description  string
	Severity     string
	Deadline     *time.Time
	AssigneeID   string
}

// TaskUpdate is a partial update. Nil fields are left untouched.
type TaskUpdate struct {
	ID           string
	ActorID      string
	Title        *string
	Description  *string
	Status       *domain.TaskStatus
	Priority     *string
	Severity     *string
	Deadline     *time.Time
	AssigneeID   *string
	StatusReason *string
	Difficulty   *string
}

type CompleteTaskRequest struct {
	ID                  string
	ActorID             string
	TimeSpent           float64
	TimeSaved           float64
	CompletionReference string
}

type TaskService interface {
	Create(ctx context.Context, req CreateTaskRequest) (*domain.Task, error)
	CreateRisk(ctx context.Context, req CreateRiskRequest) (*domain.Task, error)
	Update(ctx context.Context, upd TaskUpdate) (*domain.Task, error)
	Complete(ctx context.Context, req CompleteTaskRequest) (*domain.Task, error)
	Delete(ctx context.Context, id, actorID string) error
}

type CreateToDoRequest struct {
	OwnerID   string
	Title     string
	DueDate   time.Time
	DueTime   string
	Frequency domain.ToDoFrequency
}

type ToDoService interface {
	Create(ctx context.Context, req CreateToDoRequest) (*domain.ToDo, error)
	Complete(ctx context.Context, id string) (*domain.ToDo, error)
	Delete(ctx context.Context, id string) error
}

type CreateLeaveRequest struct {
	MemberID  string
	StartDate time.Time
	EndDate   time.Time
	Reason    string
}

type LeaveService interface {
	Create(ctx context.Context, req CreateLeaveRequest) (*domain.Leave, error)
	Delete(ctx context.Context, id string) error
}
