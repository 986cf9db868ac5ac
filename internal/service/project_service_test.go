package service

import (
	"context"
	"testing"
	"time"

	"github.com/projectpulse/pulse/internal/domain"
	"github.com/projectpulse/pulse/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectCreate_ClientOnlyFieldsSurviveLocally(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedProject(t, testutil.NewProject("par", "Programme"))

	p, err := f.projects.Create(ctx, CreateProjectRequest{
		ActorID:         "u1",
		Name:            "Invoice automation",
		ParentID:        "par",
		Weight:          40,
		Frequency:       domain.FreqWeekly,
		FrequencyDetail: "",
		AllocatedHours:  120,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectNotStarted, p.Status)
	assert.Equal(t, "par", p.ParentID)
	assert.Equal(t, 40, p.Weight)
	assert.Equal(t, domain.FreqWeekly, p.Frequency)

	stored, ok := f.store.Project(p.ID)
	require.True(t, ok)
	assert.Equal(t, "par", stored.ParentID)
}

func TestProjectCreate_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedProject(t, testutil.NewProject("par", "Programme"))

	tests := []struct {
		name string
		req  CreateProjectRequest
	}{
		{name: "missing name", req: CreateProjectRequest{ActorID: "u1"}},
		{name: "unknown parent", req: CreateProjectRequest{ActorID: "u1", Name: "X", ParentID: "nope", Weight: 10}},
		{name: "weight too low", req: CreateProjectRequest{ActorID: "u1", Name: "X", ParentID: "par", Weight: 0}},
		{name: "weight too high", req: CreateProjectRequest{ActorID: "u1", Name: "X", ParentID: "par", Weight: 101}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.projects.Create(ctx, tt.req)
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestProjectUpdate_ClientOnlyFieldsCarryThroughServerResponse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedProject(t, testutil.NewProject("par", "Programme"))

	child := testutil.NewProject("c1", "Child",
		testutil.WithParent("par", 30),
		testutil.WithFrequency(domain.FreqMonthly, ""))
	// The server never stores client-only fields; its record omits them.
	wire := toWireMap(t, struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}{ID: "c1", Name: "Child"})
	wire["status"] = string(domain.ProjectNotStarted)
	f.backend.Seed("projects", wire)
	f.store.PutProject(child)

	updated, err := f.projects.Update(ctx, ProjectUpdate{
		ID:      "c1",
		ActorID: "u1",
		Name:    strPtr("Child renamed"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Child renamed", updated.Name)
	assert.Equal(t, "par", updated.ParentID)
	assert.Equal(t, 30, updated.Weight)
	assert.Equal(t, domain.FreqMonthly, updated.Frequency)
}

func TestProjectDelete_CascadeRemovesDescendantsAndTasks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seedProject(t, testutil.NewProject("p1", "Root"))
	f.seedProject(t, testutil.NewProject("c1", "Child", testutil.WithParent("p1", 50)))
	f.seedProject(t, testutil.NewProject("g1", "Grandchild", testutil.WithParent("c1", 50)))
	f.seedProject(t, testutil.NewProject("other", "Unrelated"))
	f.seedTask(t, testutil.NewTask("t1", "p1", "Root task"))
	f.seedTask(t, testutil.NewTask("t2", "g1", "Deep task"))
	f.seedTask(t, testutil.NewTask("t3", "other", "Unrelated task"))
	f.backend.Cascades["p1"] = []string{"c1", "g1"}

	require.NoError(t, f.projects.Delete(ctx, "p1", "u1"))

	for _, id := range []string{"p1", "c1", "g1"} {
		_, ok := f.store.Project(id)
		assert.False(t, ok, "project %s should be gone", id)
	}
	_, ok := f.store.Project("other")
	assert.True(t, ok)

	_, ok = f.store.Task("t1")
	assert.False(t, ok)
	_, ok = f.store.Task("t2")
	assert.False(t, ok)
	_, ok = f.store.Task("t3")
	assert.True(t, ok)
}

func TestLogUsage_AccumulatesSavedHours(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	prior := 10.0
	p := testutil.NewProject("p1", "Report bot",
		testutil.WithStatus(domain.ProjectCompleted),
		testutil.WithUsage("u1", testNow.AddDate(0, 0, -7), 10))
	p.SavedHours = &prior
	f.seedProject(t, p)

	updated, err := f.projects.LogUsage(ctx, "p1", "u2", 2.5)
	require.NoError(t, err)
	require.NotNil(t, updated.SavedHours)
	assert.Equal(t, 12.5, *updated.SavedHours)
	require.Len(t, updated.LastUsedBy, 2)
	assert.Equal(t, "u2", updated.LastUsedBy[1].UserID)
	assert.Equal(t, 2.5, updated.LastUsedBy[1].SavedHours)
}

func TestDueForUsage_OnlyCompletedPeriodicProjects(t *testing.T) {
	f := newFixture(t)
	lastWeek := testNow.AddDate(0, 0, -8)

	// Weekly, completed, last used over a week ago: due.
	f.seedProject(t, testutil.NewProject("due1", "Weekly bot",
		testutil.WithStatus(domain.ProjectCompleted),
		testutil.WithFrequency(domain.FreqWeekly, ""),
		testutil.WithUsage("u1", lastWeek, 1)))

	// Same shape but still in progress: excluded regardless of schedule.
	f.seedProject(t, testutil.NewProject("wip", "Weekly wip",
		testutil.WithStatus(domain.ProjectStarted),
		testutil.WithFrequency(domain.FreqWeekly, ""),
		testutil.WithUsage("u1", lastWeek, 1)))

	// Completed but used this week already: not due.
	f.seedProject(t, testutil.NewProject("fresh", "Fresh bot",
		testutil.WithStatus(domain.ProjectCompleted),
		testutil.WithFrequency(domain.FreqWeekly, ""),
		testutil.WithUsage("u1", testNow.AddDate(0, 0, -1), 1)))

	due := f.projects.DueForUsage(testNow)
	require.Len(t, due, 1)
	assert.Equal(t, "due1", due[0].ID)
}

func TestProjectUpdate_CompletedAtStampedOnTransition(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedProject(t, testutil.NewProject("p1", "Automation", testutil.WithStatus(domain.ProjectStarted)))

	updated, err := f.projects.Update(ctx, ProjectUpdate{
		ID:      "p1",
		ActorID: "u1",
		Status:  statusPtr(domain.ProjectCompleted),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.CompletedAt)
	assert.Equal(t, testNow, updated.CompletedAt.UTC())

	// A second completed-to-completed update does not restamp.
	f.clock.Advance(48 * time.Hour)
	again, err := f.projects.Update(ctx, ProjectUpdate{
		ID:      "p1",
		ActorID: "u1",
		Status:  statusPtr(domain.ProjectCompleted),
	})
	require.NoError(t, err)
	require.NotNil(t, again.CompletedAt)
	assert.Equal(t, testNow, again.CompletedAt.UTC())
}
