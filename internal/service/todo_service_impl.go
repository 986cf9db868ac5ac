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

type todoService struct {
	store    *store.Store
	client   *api.Client
	clock    func() time.Time
	observer UseCaseObserver
}

func NewToDoService(st *store.Store, client *api.Client, clock func() time.Time, observers ...UseCaseObserver) ToDoService {
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return &todoService{
		store:    st,
		client:   client,
		clock:    clock,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *todoService) Create(ctx context.Context, req CreateToDoRequest) (*domain.ToDo, error) {
	start := s.clock()

	if req.Title == "" {
		return nil, invalid("title", "a title is required")
	}
	if req.DueDate.IsZero() {
		return nil, invalid("dueDate", "a due date is required")
	}
	freq := req.Frequency
	if freq == "" {
		freq = domain.ToDoOnce
	}

	body := map[string]any{
		"title":     req.Title,
		"dueDate":   req.DueDate.UTC().Format("2006-01-02"),
		"dueTime":   req.DueTime,
		"frequency": string(freq),
		"ownerId":   req.OwnerID,
		"createdAt": s.clock().Format(time.RFC3339),
	}

	rec, err := s.client.CreateToDo(ctx, body)
	defer func() { observe(ctx, s.observer, "todo_create", start, err, nil) }()
	if err != nil {
		return nil, err
	}

	td := normalize.ToDo(*rec)
	s.store.PutToDo(td)
	return &td, nil
}

// Complete marks a to-do done. Recurring to-dos reschedule instead of
// terminating: the due date advances one unit and the item stays
// incomplete. Request-then-commit; no optimistic update.
func (s *todoService) Complete(ctx context.Context, id string) (*domain.ToDo, error) {
	start := s.clock()

	current, ok := s.store.ToDo(id)
	if !ok {
		return nil, fmt.Errorf("to-do %s: %w", id, ErrNotFound)
	}

	next := current
	next.MarkComplete(s.clock())

	patch := map[string]any{
		"isComplete":      next.IsComplete,
		"dueDate":         next.DueDate.UTC().Format("2006-01-02"),
		"lastCompletedAt": next.LastCompletedAt.UTC().Format(time.RFC3339),
	}

	rec, err := s.client.UpdateToDo(ctx, id, patch)
	defer func() { observe(ctx, s.observer, "todo_complete", start, err, map[string]any{"todo_id": id}) }()
	if err != nil {
		return nil, err
	}

	td := normalize.ToDo(*rec)
	s.store.PutToDo(td)
	return &td, nil
}

func (s *todoService) Delete(ctx context.Context, id string) error {
	start := s.clock()

	err := s.client.DeleteToDo(ctx, id)
	defer func() { observe(ctx, s.observer, "todo_delete", start, err, map[string]any{"todo_id": id}) }()
	if err != nil {
		return err
	}
	s.store.RemoveToDo(id)
	return nil
}
