package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/projectpulse/pulse/internal/api"
	"github.com/projectpulse/pulse/internal/domain"
	"github.com/projectpulse/pulse/internal/normalize"
	"github.com/projectpulse/pulse/internal/store"
)

type syncService struct {
	store    *store.Store
	client   *api.Client
	clock    func() time.Time
	observer UseCaseObserver
}

func NewSyncService(st *store.Store, client *api.Client, clock func() time.Time, observers ...UseCaseObserver) SyncService {
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return &syncService{
		store:    st,
		client:   client,
		clock:    clock,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Hydrate loads every backend collection into the store. Collections
// load sequentially; the first failure aborts the hydration.
func (s *syncService) Hydrate(ctx context.Context) (err error) {
	start := s.clock()
	defer func() { observe(ctx, s.observer, "hydrate", start, err, nil) }()

	projectRecs, err := s.client.ListProjects(ctx)
	if err != nil {
		return fmt.Errorf("loading projects: %w", err)
	}
	projects := make([]domain.Project, len(projectRecs))
	for i, rec := range projectRecs {
		projects[i] = normalize.Project(rec)
	}
	s.store.ReplaceProjects(projects)

	taskRecs, err := s.client.ListTasks(ctx)
	if err != nil {
		return fmt.Errorf("loading tasks: %w", err)
	}
	tasks := make([]domain.Task, len(taskRecs))
	for i, rec := range taskRecs {
		tasks[i] = normalize.Task(rec)
	}
	s.store.ReplaceTasks(tasks)

	memberRecs, err := s.client.ListMembers(ctx)
	if err != nil {
		return fmt.Errorf("loading members: %w", err)
	}
	members := make([]domain.Member, len(memberRecs))
	for i, rec := range memberRecs {
		members[i] = normalize.Member(rec)
	}
	s.store.ReplaceMembers(members)

	todoRecs, err := s.client.ListToDos(ctx)
	if err != nil {
		return fmt.Errorf("loading to-dos: %w", err)
	}
	todos := make([]domain.ToDo, len(todoRecs))
	for i, rec := range todoRecs {
		todos[i] = normalize.ToDo(rec)
	}
	s.store.ReplaceToDos(todos)

	teamRecs, err := s.client.ListTeams(ctx)
	if err != nil {
		return fmt.Errorf("loading teams: %w", err)
	}
	teams := make([]domain.Team, len(teamRecs))
	for i, rec := range teamRecs {
		teams[i] = normalize.Team(rec)
	}
	s.store.ReplaceTeams(teams)

	toolRecs, err := s.client.ListTools(ctx)
	if err != nil {
		return fmt.Errorf("loading tools: %w", err)
	}
	tools := make([]domain.Tool, len(toolRecs))
	for i, rec := range toolRecs {
		tools[i] = normalize.Tool(rec)
	}
	s.store.ReplaceTools(tools)

	leaveRecs, err := s.client.ListLeaves(ctx)
	if err != nil {
		return fmt.Errorf("loading leaves: %w", err)
	}
	leaves := make([]domain.Leave, len(leaveRecs))
	for i, rec := range leaveRecs {
		leaves[i] = normalize.Leave(rec)
	}
	s.store.ReplaceLeaves(leaves)

	auditRecs, err := s.client.ListAuditLogs(ctx)
	if err != nil {
		return fmt.Errorf("loading audit log: %w", err)
	}
	entries := make([]domain.AuditEntry, len(auditRecs))
	for i, rec := range auditRecs {
		entries[i] = normalize.Audit(rec)
	}
	sortAuditNewestFirst(entries)
	s.store.ReplaceAuditLog(entries)

	if err := s.loadSettings(ctx); err != nil {
		return err
	}
	return nil
}

func (s *syncService) loadSettings(ctx context.Context) error {
	cfgRecs, err := s.client.ListSystemConfiguration(ctx)
	if err != nil {
		return fmt.Errorf("loading system configuration: %w", err)
	}
	phaseRecs, err := s.client.ListProjectPhases(ctx)
	if err != nil {
		return fmt.Errorf("loading project phases: %w", err)
	}
	deptRecs, err := s.client.ListDepartments(ctx)
	if err != nil {
		return fmt.Errorf("loading departments: %w", err)
	}
	riskRecs, err := s.client.ListRiskLevels(ctx)
	if err != nil {
		return fmt.Errorf("loading risk levels: %w", err)
	}

	cfg := make([]domain.SystemConfig, len(cfgRecs))
	for i, rec := range cfgRecs {
		cfg[i] = normalize.SystemConfig(rec)
	}
	phases := make([]domain.ProjectPhase, len(phaseRecs))
	for i, rec := range phaseRecs {
		phases[i] = normalize.ProjectPhase(rec)
	}
	depts := make([]domain.Department, len(deptRecs))
	for i, rec := range deptRecs {
		depts[i] = normalize.Department(rec)
	}
	risks := make([]domain.RiskLevelSetting, len(riskRecs))
	for i, rec := range riskRecs {
		risks[i] = normalize.RiskLevelSetting(rec)
	}
	s.store.SetSettings(cfg, phases, depts, risks)
	return nil
}

func sortAuditNewestFirst(entries []domain.AuditEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
}
