package service

import (
	"context"
	"fmt"
	"time"

	"github.com/projectpulse/pulse/internal/api"
	"github.com/projectpulse/pulse/internal/derive"
	"github.com/projectpulse/pulse/internal/domain"
	"github.com/projectpulse/pulse/internal/normalize"
	"github.com/projectpulse/pulse/internal/store"
)

type projectService struct {
	store      *store.Store
	client     *api.Client
	dispatcher *Dispatcher
	clock      func() time.Time
	weekStart  derive.WeekStartFunc
	observer   UseCaseObserver
}

func NewProjectService(st *store.Store, client *api.Client, dispatcher *Dispatcher, clock func() time.Time, observers ...UseCaseObserver) ProjectService {
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return &projectService{
		store:      st,
		client:     client,
		dispatcher: dispatcher,
		clock:      clock,
		weekStart:  derive.SundayWeekStart,
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *projectService) Create(ctx context.Context, req CreateProjectRequest) (*domain.Project, error) {
	start := s.clock()

	if req.Name == "" {
		return nil, invalid("name", "project name is required")
	}
	if req.ParentID != "" {
		if _, ok := s.store.Project(req.ParentID); !ok {
			return nil, invalid("parentId", fmt.Sprintf("parent project %s does not exist", req.ParentID))
		}
		if req.Weight < 1 || req.Weight > 100 {
			return nil, invalid("weight", "weight must be between 1 and 100 when a parent is set")
		}
	}

	body := map[string]any{
		"name":           req.Name,
		"description":    req.Description,
		"status":         string(domain.ProjectNotStarted),
		"leadId":         req.LeadID,
		"teamId":         req.TeamID,
		"allocatedHours": req.AllocatedHours,
	}
	if req.ExpectedSavedHours != nil {
		body["expectedSavedHours"] = *req.ExpectedSavedHours
	}
	var users []map[string]any
	for _, b := range req.Users {
		users = append(users, map[string]any{"kind": string(b.Kind), "id": b.ID})
	}
	if users != nil {
		body["users"] = users
	}
	if req.ToolsUsed != nil {
		body["toolsUsed"] = req.ToolsUsed
	}

	rec, err := s.client.CreateProject(ctx, body)
	defer func() { observe(ctx, s.observer, "project_create", start, err, nil) }()
	if err != nil {
		return nil, err
	}

	p := normalize.Project(*rec)
	// Client-only fields never round-trip through the server.
	p.ParentID = req.ParentID
	p.Weight = req.Weight
	p.Frequency = req.Frequency
	p.FrequencyDetail = req.FrequencyDetail
	s.store.PutProject(p)

	s.dispatcher.Dispatch(ctx, []Effect{
		AuditEffect{UserID: req.ActorID, Action: "create", EntityType: "project", EntityID: p.ID, Details: p.Name},
	})
	return &p, nil
}

func (s *projectService) Update(ctx context.Context, upd ProjectUpdate) (*domain.Project, error) {
	start := s.clock()

	current, ok := s.store.Project(upd.ID)
	if !ok {
		return nil, fmt.Errorf("project %s: %w", upd.ID, ErrNotFound)
	}

	patch := map[string]any{}
	if upd.Name != nil {
		patch["name"] = *upd.Name
	}
	if upd.Description != nil {
		patch["description"] = *upd.Description
	}
	if upd.LeadID != nil {
		patch["leadId"] = *upd.LeadID
	}
	if upd.AllocatedHours != nil {
		patch["allocatedHours"] = *upd.AllocatedHours
	}
	if upd.AdditionalHours != nil {
		patch["additionalHours"] = *upd.AdditionalHours
	}
	if upd.ExpectedSavedHours != nil {
		patch["expectedSavedHours"] = *upd.ExpectedSavedHours
	}
	if upd.Status != nil {
		switch *upd.Status {
		case domain.ProjectCompletedNotSatisfied:
			if upd.EndUserFeedback == nil || *upd.EndUserFeedback == "" {
				return nil, invalid("endUserFeedback", "end-user feedback is required to mark a project not satisfied")
			}
			patch["endUserFeedback"] = *upd.EndUserFeedback
			patch["endUserRating"] = 1
		case domain.ProjectCompletedBlocked:
			if upd.ManagerComment == nil || *upd.ManagerComment == "" {
				return nil, invalid("latestComments", "a manager comment is required to mark a project blocked")
			}
			patch["latestComments"] = *upd.ManagerComment
		}
		patch["status"] = string(*upd.Status)
		if upd.Status.IsCompleted() && !current.Status.IsCompleted() {
			patch["completedAt"] = s.clock().Format(time.RFC3339)
		}
	}

	rec, err := s.client.UpdateProject(ctx, upd.ID, patch)
	defer func() { observe(ctx, s.observer, "project_update", start, err, map[string]any{"project_id": upd.ID}) }()
	if err != nil {
		return nil, err
	}

	updated := normalize.Project(*rec)
	carryClientOnly(current, &updated)

	parent, parentChanged, err := s.rollupParent(ctx, updated)
	if err != nil {
		return nil, err
	}

	// Child and parent commit together before the next derived-view
	// recomputation can observe either.
	s.store.PutProject(updated)
	if parentChanged {
		s.store.PutProject(*parent)
	}

	s.dispatcher.Dispatch(ctx, []Effect{
		AuditEffect{UserID: upd.ActorID, Action: "update", EntityType: "project", EntityID: updated.ID, Details: string(updated.Status)},
	})
	return &updated, nil
}

// rollupParent recomputes the parent's status from the full child set,
// substituting the freshly updated child. The parent update request is
// issued only when the computed status differs, and only after the
// child's remote call has resolved.
func (s *projectService) rollupParent(ctx context.Context, child domain.Project) (*domain.Project, bool, error) {
	if child.ParentID == "" {
		return nil, false, nil
	}
	parent, ok := s.store.Project(child.ParentID)
	if !ok {
		return nil, false, nil
	}

	children := s.store.ChildProjects(child.ParentID)
	for i := range children {
		if children[i].ID == child.ID {
			children[i] = child
		}
	}
	computed := derive.RollupStatus(children)
	if computed == parent.Status {
		return nil, false, nil
	}

	patch := map[string]any{"status": string(computed)}
	if computed.IsCompleted() && !parent.Status.IsCompleted() {
		patch["completedAt"] = s.clock().Format(time.RFC3339)
	}
	rec, err := s.client.UpdateProject(ctx, parent.ID, patch)
	if err != nil {
		return nil, false, fmt.Errorf("rolling up parent %s: %w", parent.ID, err)
	}
	updated := normalize.Project(*rec)
	carryClientOnly(parent, &updated)
	return &updated, true, nil
}

// carryClientOnly preserves fields the Remote Access Layer strips from
// outgoing updates and the server therefore never echoes back.
func carryClientOnly(prev domain.Project, next *domain.Project) {
	if next.ParentID == "" {
		next.ParentID = prev.ParentID
		next.Weight = prev.Weight
	}
	if next.Frequency == "" {
		next.Frequency = prev.Frequency
		next.FrequencyDetail = prev.FrequencyDetail
	}
}

// Timer transitions. Each applies an optimistic local commit, then the
// remote update; on remote failure the pre-transition snapshot is
// restored and the error surfaces to the caller. No automatic retry.

func (s *projectService) StartTimer(ctx context.Context, id, actorID string) (*domain.Project, error) {
	return s.timerTransition(ctx, "timer_start", id, actorID, func(p *domain.Project, now time.Time) error {
		p.StartTimer(now)
		return nil
	})
}

func (s *projectService) HoldTimer(ctx context.Context, id, actorID string) (*domain.Project, error) {
	return s.timerTransition(ctx, "timer_hold", id, actorID, func(p *domain.Project, now time.Time) error {
		_, err := p.HoldTimer(now)
		return err
	})
}

func (s *projectService) EndTimer(ctx context.Context, id, actorID string) (*domain.Project, error) {
	return s.timerTransition(ctx, "timer_end", id, actorID, func(p *domain.Project, now time.Time) error {
		_, err := p.EndTimer(now)
		return err
	})
}

func (s *projectService) timerTransition(ctx context.Context, name, id, actorID string, apply func(*domain.Project, time.Time) error) (*domain.Project, error) {
	start := s.clock()

	snapshot, ok := s.store.Project(id)
	if !ok {
		return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}

	optimistic := snapshot
	if err := apply(&optimistic, s.clock()); err != nil {
		return nil, err
	}
	s.store.PutProject(optimistic)

	patch := map[string]any{
		"status":    string(optimistic.Status),
		"usedHours": optimistic.UsedHours,
	}
	if optimistic.TimerStartTime != nil {
		patch["timerStartTime"] = optimistic.TimerStartTime.UTC().Format(time.RFC3339)
	} else {
		patch["timerStartTime"] = nil
	}
	if optimistic.CompletedAt != nil && snapshot.CompletedAt == nil {
		patch["completedAt"] = optimistic.CompletedAt.UTC().Format(time.RFC3339)
	}

	rec, err := s.client.UpdateProject(ctx, id, patch)
	defer func() { observe(ctx, s.observer, name, start, err, map[string]any{"project_id": id}) }()
	if err != nil {
		s.store.PutProject(snapshot)
		return nil, err
	}

	updated := normalize.Project(*rec)
	carryClientOnly(snapshot, &updated)

	parent, parentChanged, err := s.rollupParent(ctx, updated)
	if err != nil {
		// The child update already landed remotely; keep it.
		s.store.PutProject(updated)
		return &updated, err
	}
	s.store.PutProject(updated)
	if parentChanged {
		s.store.PutProject(*parent)
	}

	s.dispatcher.Dispatch(ctx, []Effect{
		AuditEffect{UserID: actorID, Action: name, EntityType: "project", EntityID: id},
	})
	return &updated, nil
}

func (s *projectService) Delete(ctx context.Context, id, actorID string) error {
	start := s.clock()

	resp, err := s.client.DeleteProject(ctx, id)
	defer func() { observe(ctx, s.observer, "project_delete", start, err, map[string]any{"project_id": id}) }()
	if err != nil {
		return err
	}

	// The server enumerates the cascaded descendants; removal of each
	// project takes its tasks with it.
	for _, raw := range resp.DeletedProjectIDs {
		deletedID := normalize.ID(raw)
		s.store.RemoveProject(deletedID)
		for _, t := range s.store.TasksForProject(deletedID) {
			s.store.RemoveTask(t.ID)
		}
	}
	s.store.RemoveProject(id)
	for _, t := range s.store.TasksForProject(id) {
		s.store.RemoveTask(t.ID)
	}

	s.dispatcher.Dispatch(ctx, []Effect{
		AuditEffect{UserID: actorID, Action: "delete", EntityType: "project", EntityID: id},
	})
	return nil
}

func (s *projectService) LogUsage(ctx context.Context, projectID, userID string, savedHours float64) (*domain.Project, error) {
	start := s.clock()

	current, ok := s.store.Project(projectID)
	if !ok {
		return nil, fmt.Errorf("project %s: %w", projectID, ErrNotFound)
	}

	entry := domain.UsageLog{UserID: userID, Date: s.clock(), SavedHours: savedHours}
	log := append(append([]domain.UsageLog{}, current.LastUsedBy...), entry)

	wireLog := make([]map[string]any, len(log))
	for i, u := range log {
		wireLog[i] = map[string]any{
			"userId":     u.UserID,
			"date":       u.Date.UTC().Format("2006-01-02"),
			"savedHours": u.SavedHours,
		}
	}
	total := savedHours
	if current.SavedHours != nil {
		total += *current.SavedHours
	}
	patch := map[string]any{
		"lastUsedBy": wireLog,
		"savedHours": total,
	}

	rec, err := s.client.UpdateProject(ctx, projectID, patch)
	defer func() { observe(ctx, s.observer, "project_log_usage", start, err, map[string]any{"project_id": projectID}) }()
	if err != nil {
		return nil, err
	}

	updated := normalize.Project(*rec)
	carryClientOnly(current, &updated)
	s.store.PutProject(updated)

	s.dispatcher.Dispatch(ctx, []Effect{
		AuditEffect{UserID: userID, Action: "log_usage", EntityType: "project", EntityID: projectID},
	})
	return &updated, nil
}

func (s *projectService) DueForUsage(now time.Time) []domain.Project {
	var due []domain.Project
	for _, p := range s.store.Projects() {
		if !p.Status.IsCompleted() {
			continue
		}
		if derive.RecurrenceDue(p, now, s.weekStart) {
			due = append(due, p)
		}
	}
	return due
}
