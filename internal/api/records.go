package api

// Wire records mirror the backend's JSON shapes. Identifier-like fields
// are typed `any` because the server may emit them as numbers or
// strings; the normalize package coerces them. Field names follow the
// server's snake_case aliases where they differ from client names.

type ProjectRecord struct {
	ID                 any             `json:"id"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	Status             string          `json:"status"`
	OwnerID            any             `json:"owner_id"`
	TeamID             any             `json:"team_id"`
	ParentID           any             `json:"parentId,omitempty"`
	Weight             any             `json:"weight,omitempty"`
	AllocatedHours     any             `json:"allocatedHours"`
	UsedHours          any             `json:"usedHours"`
	AdditionalHours    any             `json:"additionalHours"`
	SavedHours         any             `json:"savedHours,omitempty"`
	ExpectedSavedHours any             `json:"expectedSavedHours,omitempty"`
	Frequency          string          `json:"frequency,omitempty"`
	FrequencyDetail    string          `json:"frequencyDetail,omitempty"`
	TimerStartTime     string          `json:"timerStartTime,omitempty"`
	CompletedAt        string          `json:"completedAt,omitempty"`
	Users              []BeneficiaryRecord `json:"users"`
	ToolsUsed          []any           `json:"toolsUsed"`
	LastUsedBy         []UsageRecord   `json:"lastUsedBy"`
	EndUserFeedback    string          `json:"endUserFeedback,omitempty"`
	LatestComments     string          `json:"latestComments,omitempty"`
}

type BeneficiaryRecord struct {
	Kind string `json:"kind"`
	ID   any    `json:"id"`
}

type UsageRecord struct {
	UserID     any    `json:"userId"`
	Date       string `json:"date"`
	SavedHours any    `json:"savedHours"`
}

type TaskRecord struct {
	ID                  any    `json:"id"`
	Title               string `json:"title"`
	Description         string `json:"description"`
	Type                string `json:"type"`
	ProjectID           any    `json:"project_id"`
	Status              string `json:"status"`
	Priority            string `json:"priority"`
	Severity            string `json:"severity"`
	Deadline            string `json:"deadline,omitempty"`
	AssigneeID          any    `json:"assignee_id,omitempty"`
	StatusReason        string `json:"statusReason,omitempty"`
	Difficulty          string `json:"difficulty,omitempty"`
	TimeSpent           any    `json:"timeSpent,omitempty"`
	TimeSaved           any    `json:"timeSaved,omitempty"`
	CompletionReference string `json:"completionReference,omitempty"`
	CompletedAt         string `json:"completedAt,omitempty"`
	LastUpdated         string `json:"lastUpdated,omitempty"`
}

type ToDoRecord struct {
	ID              any    `json:"id"`
	Title           string `json:"title"`
	DueDate         string `json:"dueDate"`
	DueTime         string `json:"dueTime,omitempty"`
	Frequency       string `json:"frequency"`
	IsComplete      bool   `json:"isComplete"`
	LastCompletedAt string `json:"lastCompletedAt,omitempty"`
	OwnerID         any    `json:"owner_id"`
	CreatedAt       string `json:"createdAt"`
}

type MemberRecord struct {
	ID              any    `json:"id"`
	Name            string `json:"name"`
	Role            string `json:"role"`
	TeamID          any    `json:"team_id"`
	SubTeamLeaderID any    `json:"sub_team_leader_id,omitempty"`
	OfficeLocation  string `json:"officeLocation,omitempty"`
	AvatarURL       string `json:"avatarUrl,omitempty"`
}

type TeamRecord struct {
	ID          any    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ToolRecord struct {
	ID     any    `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

type LeaveRecord struct {
	ID        any    `json:"id"`
	MemberID  any    `json:"member_id"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Reason    string `json:"reason"`
}

type AuditRecord struct {
	ID         any    `json:"id"`
	UserID     any    `json:"user_id"`
	Action     string `json:"action"`
	EntityType string `json:"entityType"`
	EntityID   any    `json:"entityId"`
	Timestamp  string `json:"timestamp"`
	Details    string `json:"details,omitempty"`
}

type SettingRecord struct {
	ID    any    `json:"id"`
	Name  string `json:"name,omitempty"`
	Key   string `json:"key,omitempty"`
	Value string `json:"value,omitempty"`
	Level any    `json:"level,omitempty"`
}

// DeleteProjectResponse enumerates every project id removed by a
// cascading delete, the requested project included.
type DeleteProjectResponse struct {
	DeletedProjectIDs []any `json:"deletedProjectIds"`
}

// PerformanceRecord is the aggregate returned by the member
// performance endpoint. Opaque to the client core.
type PerformanceRecord struct {
	UserID  any            `json:"user_id"`
	Metrics map[string]any `json:"metrics"`
}
