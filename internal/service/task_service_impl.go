package service

import (
	"context"
	"fmt"
	"time"

	"github.com/projectpulse/pulse/internal/api"
	"github.com/projectpulse/pulse/internal/domain"
	"github.com/projectpulse/pulse/internal/normalize"
	"github.com/projectpulse/pulse/internal/store"
)

// RiskReasons are the predefined blocked reasons a risk title derives
// from. "Other" carries free text supplied by the user.
var RiskReasons = []string{
	"Waiting on dependency",
	"Resource unavailable",
	"Requirement unclear",
	"Access pending",
	"Vendor delay",
	"Other",
}

type taskService struct {
	store      *store.Store
	client     *api.Client
	dispatcher *Dispatcher
	clock      func() time.Time
	observer   UseCaseObserver
}

func NewTaskService(st *store.Store, client *api.Client, dispatcher *Dispatcher, clock func() time.Time, observers ...UseCaseObserver) TaskService {
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return &taskService{
		store:      st,
		client:     client,
		dispatcher: dispatcher,
		clock:      clock,
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *taskService) Create(ctx context.Context, req CreateTaskRequest) (*domain.Task, error) {
	start := s.clock()

	if req.Title == "" {
		return nil, invalid("title", "task title is required")
	}
	project, ok := s.store.Project(req.ProjectID)
	if !ok {
		return nil, fmt.Errorf("project %s: %w", req.ProjectID, ErrNotFound)
	}

	body := map[string]any{
		"title":       req.Title,
		"description": req.Description,
		"type":        string(req.Type),
		"projectId":   req.ProjectID,
		"status":      string(domain.TaskNotStarted),
		"priority":    req.Priority,
		"severity":    req.Severity,
	}
	if req.AssigneeID != "" {
		body["assigneeId"] = req.AssigneeID
	}
	if req.Deadline != nil {
		body["deadline"] = req.Deadline.UTC().Format(time.RFC3339)
	}

	rec, err := s.client.CreateTask(ctx, body)
	defer func() { observe(ctx, s.observer, "task_create", start, err, map[string]any{"project_id": req.ProjectID}) }()
	if err != nil {
		return nil, err
	}

	task := normalize.Task(*rec)
	s.store.PutTask(task)

	effects := []Effect{
		AuditEffect{UserID: req.ActorID, Action: "create", EntityType: "task", EntityID: task.ID, Details: task.Title},
	}
	if task.AssigneeID != "" && task.AssigneeID != req.ActorID {
		effects = append(effects, NotifyEffect{
			RecipientID: task.AssigneeID,
			Message:     fmt.Sprintf("You were assigned %q on %s", task.Title, project.Name),
			Link:        "/projects/" + project.ID,
		})
	}
	s.dispatcher.Dispatch(ctx, effects)
	return &task, nil
}

func (s *taskService) CreateRisk(ctx context.Context, req CreateRiskRequest) (*domain.Task, error) {
	start := s.clock()

	title, err := riskTitle(req.Reason, req.CustomReason)
	if err != nil {
		return nil, err
	}
	project, ok := s.store.Project(req.ProjectID)
	if !ok {
		return nil, fmt.Errorf("project %s: %w", req.ProjectID, ErrNotFound)
	}

	body := map[string]any{
		"title":       title,
		"description": req.Description,
		"type":        string(domain.TaskTypeRisk),
		"projectId":   req.ProjectID,
		"status":      string(domain.TaskBlocked),
		"severity":    req.Severity,
	}
	if req.AssigneeID != "" {
		body["assigneeId"] = req.AssigneeID
	}
	if req.Deadline != nil {
		body["deadline"] = req.Deadline.UTC().Format(time.RFC3339)
	}

	rec, err := s.client.CreateTask(ctx, body)
	defer func() { observe(ctx, s.observer, "risk_create", start, err, map[string]any{"project_id": req.ProjectID}) }()
	if err != nil {
		return nil, err
	}

	task := normalize.Task(*rec)
	s.store.PutTask(task)

	effects := []Effect{
		AuditEffect{UserID: req.ActorID, Action: "create", EntityType: "risk", EntityID: task.ID, Details: title},
	}
	if task.AssigneeID != "" && task.AssigneeID != req.ActorID {
		effects = append(effects, NotifyEffect{
			RecipientID: task.AssigneeID,
			Message:     fmt.Sprintf("Blocked item %q was assigned to you on %s", title, project.Name),
			Link:        "/projects/" + project.ID,
		})
	}
	if project.LeadID != "" && project.LeadID != task.AssigneeID && project.LeadID != req.ActorID {
		effects = append(effects, NotifyEffect{
			RecipientID: project.LeadID,
			Message:     fmt.Sprintf("Project %s is blocked: %s", project.Name, title),
			Link:        "/projects/" + project.ID,
		})
	}
	s.dispatcher.Dispatch(ctx, effects)
	return &task, nil
}

func riskTitle(reason, custom string) (string, error) {
	if reason == "" {
		return "", invalid("reason", "a blocked reason is required")
	}
	for _, known := range RiskReasons {
		if reason != known {
			continue
		}
		if reason == "Other" {
			if custom == "" {
				return "", invalid("customReason", "a description is required for reason Other")
			}
			return custom, nil
		}
		return reason, nil
	}
	return "", invalid("reason", fmt.Sprintf("unknown blocked reason %q", reason))
}

func (s *taskService) Update(ctx context.Context, upd TaskUpdate) (*domain.Task, error) {
	start := s.clock()

	current, ok := s.store.Task(upd.ID)
	if !ok {
		return nil, fmt.Errorf("task %s: %w", upd.ID, ErrNotFound)
	}

	patch := map[string]any{}
	if upd.Title != nil {
		patch["title"] = *upd.Title
	}
	if upd.Description != nil {
		patch["description"] = *upd.Description
	}
	if upd.Status != nil {
		patch["status"] = string(*upd.Status)
	}
	if upd.Priority != nil {
		patch["priority"] = *upd.Priority
	}
	if upd.Severity != nil {
		patch["severity"] = *upd.Severity
	}
	if upd.Deadline != nil {
		patch["deadline"] = upd.Deadline.UTC().Format(time.RFC3339)
	}
	if upd.AssigneeID != nil {
		patch["assigneeId"] = *upd.AssigneeID
	}
	if upd.StatusReason != nil {
		patch["statusReason"] = *upd.StatusReason
	}
	if upd.Difficulty != nil {
		patch["difficulty"] = *upd.Difficulty
	}
	patch["lastUpdated"] = s.clock().Format(time.RFC3339)

	rec, err := s.client.UpdateTask(ctx, upd.ID, patch)
	defer func() { observe(ctx, s.observer, "task_update", start, err, map[string]any{"task_id": upd.ID}) }()
	if err != nil {
		return nil, err
	}

	task := normalize.Task(*rec)
	s.store.PutTask(task)

	effects := []Effect{
		AuditEffect{UserID: upd.ActorID, Action: "update", EntityType: "task", EntityID: task.ID},
	}
	// A reassignment to a new, non-empty assignee notifies them.
	if upd.AssigneeID != nil && *upd.AssigneeID != "" && *upd.AssigneeID != current.AssigneeID {
		effects = append(effects, NotifyEffect{
			RecipientID: *upd.AssigneeID,
			Message:     fmt.Sprintf("You were assigned %q", task.Title),
			Link:        "/projects/" + task.ProjectID,
		})
	}
	s.dispatcher.Dispatch(ctx, effects)
	return &task, nil
}

func (s *taskService) Complete(ctx context.Context, req CompleteTaskRequest) (*domain.Task, error) {
	start := s.clock()

	current, ok := s.store.Task(req.ID)
	if !ok {
		return nil, fmt.Errorf("task %s: %w", req.ID, ErrNotFound)
	}
	wasCompleted := current.Status == domain.TaskCompleted

	now := s.clock()
	patch := map[string]any{
		"status":              string(domain.TaskCompleted),
		"timeSpent":           req.TimeSpent,
		"timeSaved":           req.TimeSaved,
		"completionReference": req.CompletionReference,
		"statusReason":        "",
		"completedAt":         now.Format(time.RFC3339),
		"lastUpdated":         now.Format(time.RFC3339),
	}

	rec, err := s.client.UpdateTask(ctx, req.ID, patch)
	defer func() { observe(ctx, s.observer, "task_complete", start, err, map[string]any{"task_id": req.ID}) }()
	if err != nil {
		return nil, err
	}

	task := normalize.Task(*rec)
	s.store.PutTask(task)

	effects := []Effect{
		AuditEffect{UserID: req.ActorID, Action: "complete", EntityType: "task", EntityID: task.ID, Details: task.Title},
	}
	// Closing out an issue tells the project lead the blocker cleared.
	if task.Type == domain.TaskTypeIssue && !wasCompleted {
		if project, ok := s.store.Project(task.ProjectID); ok && project.LeadID != "" {
			effects = append(effects, NotifyEffect{
				RecipientID: project.LeadID,
				Message:     fmt.Sprintf("Issue %q on %s was resolved", task.Title, project.Name),
				Link:        "/projects/" + project.ID,
			})
		}
	}
	s.dispatcher.Dispatch(ctx, effects)
	return &task, nil
}

func (s *taskService) Delete(ctx context.Context, id, actorID string) error {
	start := s.clock()

	err := s.client.DeleteTask(ctx, id)
	defer func() { observe(ctx, s.observer, "task_delete", start, err, map[string]any{"task_id": id}) }()
	if err != nil {
		return err
	}
	s.store.RemoveTask(id)

	s.dispatcher.Dispatch(ctx, []Effect{
		AuditEffect{UserID: actorID, Action: "delete", EntityType: "task", EntityID: id},
	})
	return nil
}
