package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/projectpulse/pulse/internal/domain"
	"github.com/projectpulse/pulse/internal/normalize"
	"github.com/projectpulse/pulse/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHydrate_LoadsAllCollections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.backend.Seed("projects", toWireMap(t, normalize.ProjectRecord(testutil.NewProject("p1", "Automation"))))
	f.backend.Seed("projects", toWireMap(t, normalize.ProjectRecord(testutil.NewProject("p2", "Dashboards"))))
	f.backend.Seed("tasks", toWireMap(t, normalize.TaskRecord(testutil.NewTask("t1", "p1", "Wire the export"))))
	f.backend.Seed("users", toWireMap(t, normalize.MemberRecord(testutil.NewMember("u1", "Dana", domain.RoleTeamLeader))))
	f.backend.Seed("todos", toWireMap(t, normalize.ToDoRecord(testutil.NewToDo("td1", "u1", "Standup notes", testNow))))
	f.backend.Seed("teams", map[string]any{"id": 7, "name": "Platform"})
	f.backend.Seed("tools", map[string]any{"id": "tool1", "name": "Power Automate", "status": "active"})
	f.backend.Seed("leaves", map[string]any{
		"id": "l1", "member_id": "u1",
		"startDate": "2024-03-25", "endDate": "2024-03-26", "reason": "PTO",
	})
	f.backend.Seed("audit-logs", toWireMap(t, normalize.AuditRecord(domain.AuditEntry{
		ID: "a1", UserID: "u1", Action: "older", Timestamp: testNow.Add(-time.Hour),
	})))
	f.backend.Seed("audit-logs", toWireMap(t, normalize.AuditRecord(domain.AuditEntry{
		ID: "a2", UserID: "u1", Action: "newer", Timestamp: testNow,
	})))
	f.backend.Seed("system-configuration", map[string]any{"id": 1, "key": "fiscal_year_start", "value": "04-01"})
	f.backend.Seed("project-phases", map[string]any{"id": 1, "name": "Discovery"})
	f.backend.Seed("departments", map[string]any{"id": 1, "name": "Operations"})
	f.backend.Seed("risk-levels", map[string]any{"id": 1, "name": "High", "level": 3})

	require.NoError(t, f.sync.Hydrate(ctx))

	assert.Len(t, f.store.Projects(), 2)
	assert.Len(t, f.store.Tasks(), 1)
	assert.Len(t, f.store.Members(), 1)
	assert.Len(t, f.store.ToDos(), 1)

	teams := f.store.Teams()
	require.Len(t, teams, 1)
	assert.Equal(t, "7", teams[0].ID, "numeric ids come back as strings")

	assert.Len(t, f.store.Tools(), 1)

	leaves := f.store.Leaves()
	require.Len(t, leaves, 1)
	assert.Equal(t, "u1", leaves[0].MemberID)

	log := f.store.AuditLog()
	require.Len(t, log, 2)
	assert.Equal(t, "newer", log[0].Action, "audit feed is newest-first")

	assert.Len(t, f.store.SystemConfig(), 1)
	assert.Len(t, f.store.ProjectPhases(), 1)
	assert.Len(t, f.store.Departments(), 1)
	risks := f.store.RiskLevels()
	require.Len(t, risks, 1)
	assert.Equal(t, 3, risks[0].Level)
}

func TestHydrate_ReplacesStaleState(t *testing.T) {
	f := newFixture(t)
	f.store.PutProject(testutil.NewProject("stale", "Gone upstream"))
	f.backend.Seed("projects", toWireMap(t, normalize.ProjectRecord(testutil.NewProject("p1", "Automation"))))

	require.NoError(t, f.sync.Hydrate(context.Background()))

	_, ok := f.store.Project("stale")
	assert.False(t, ok)
	_, ok = f.store.Project("p1")
	assert.True(t, ok)
}

func TestHydrate_FirstFailureAborts(t *testing.T) {
	f := newFixture(t)
	f.backend.FailOn(http.MethodGet, "/api/tasks", http.StatusBadGateway, "upstream down")
	f.store.PutProject(testutil.NewProject("stale", "Old"))
	f.backend.Seed("projects", toWireMap(t, normalize.ProjectRecord(testutil.NewProject("p1", "Automation"))))

	err := f.sync.Hydrate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading tasks")

	// Collections loaded before the failure were already replaced.
	_, ok := f.store.Project("p1")
	assert.True(t, ok)
}
