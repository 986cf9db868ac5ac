package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/projectpulse/pulse/internal/api"
	"github.com/projectpulse/pulse/internal/domain"
	"github.com/projectpulse/pulse/internal/normalize"
	"github.com/projectpulse/pulse/internal/store"
	"github.com/projectpulse/pulse/internal/testutil"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 21, 10, 0, 0, 0, time.UTC)

// fakeClock is a settable clock shared across a test scenario.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fixture struct {
	store      *store.Store
	backend    *testutil.FakeBackend
	client     *api.Client
	clock      *fakeClock
	dispatcher *Dispatcher

	projects ProjectService
	tasks    TaskService
	todos    ToDoService
	leaves   LeaveService
	sync     SyncService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	fb := testutil.NewFakeBackend()
	t.Cleanup(fb.Close)

	st := store.New()
	clk := &fakeClock{now: testNow}
	client := api.New(fb.URL(), 5*time.Second, api.NoopObserver{})
	dispatcher := NewDispatcher(st, client, clk.Now)

	return &fixture{
		store:      st,
		backend:    fb,
		client:     client,
		clock:      clk,
		dispatcher: dispatcher,
		projects:   NewProjectService(st, client, dispatcher, clk.Now),
		tasks:      NewTaskService(st, client, dispatcher, clk.Now),
		todos:      NewToDoService(st, client, clk.Now),
		leaves:     NewLeaveService(st, client, clk.Now),
		sync:       NewSyncService(st, client, clk.Now),
	}
}

// toWireMap converts a wire record struct into the raw map shape the
// fake backend stores.
func toWireMap(t *testing.T, rec any) map[string]any {
	t.Helper()
	data, err := json.Marshal(rec)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

// seedProject places a project in both the fake backend and the store.
func (f *fixture) seedProject(t *testing.T, p domain.Project) {
	t.Helper()
	f.backend.Seed("projects", toWireMap(t, normalize.ProjectRecord(p)))
	f.store.PutProject(p)
}

func (f *fixture) seedTask(t *testing.T, task domain.Task) {
	t.Helper()
	f.backend.Seed("tasks", toWireMap(t, normalize.TaskRecord(task)))
	f.store.PutTask(task)
}

func (f *fixture) seedToDo(t *testing.T, td domain.ToDo) {
	t.Helper()
	f.backend.Seed("todos", toWireMap(t, normalize.ToDoRecord(td)))
	f.store.PutToDo(td)
}

func strPtr(s string) *string { return &s }

func statusPtr(s domain.ProjectStatus) *domain.ProjectStatus { return &s }
