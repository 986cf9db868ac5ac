package api_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/projectpulse/pulse/internal/api"
	"github.com/projectpulse/pulse/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	events []api.CallEvent
}

func (o *recordingObserver) OnCall(e api.CallEvent) {
	o.events = append(o.events, e)
}

func newClient(t *testing.T) (*api.Client, *testutil.FakeBackend, *recordingObserver) {
	t.Helper()
	fb := testutil.NewFakeBackend()
	t.Cleanup(fb.Close)
	obs := &recordingObserver{}
	return api.New(fb.URL(), 5*time.Second, obs), fb, obs
}

func TestListProjects(t *testing.T) {
	client, fb, _ := newClient(t)
	fb.Seed("projects", map[string]any{"id": 1, "name": "Alpha", "status": "Started"})
	fb.Seed("projects", map[string]any{"id": "p2", "name": "Beta", "status": "Not Started"})

	recs, err := client.ListProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "Alpha", recs[0].Name)
	assert.Equal(t, "Beta", recs[1].Name)
}

func TestUpdateProject_TranslatesAliasesAndStripsClientOnlyFields(t *testing.T) {
	client, fb, _ := newClient(t)
	fb.Seed("projects", map[string]any{"id": "p1", "name": "Alpha"})

	_, err := client.UpdateProject(context.Background(), "p1", map[string]any{
		"leadId":          "u9",
		"teamId":          "t2",
		"name":            "Alpha v2",
		"parentId":        "root",
		"weight":          40,
		"frequency":       "Weekly",
		"frequencyDetail": "1,15",
	})
	require.NoError(t, err)

	rec, ok := fb.Record("projects", "p1")
	require.True(t, ok)
	assert.Equal(t, "u9", rec["owner_id"])
	assert.Equal(t, "t2", rec["team_id"])
	assert.Equal(t, "Alpha v2", rec["name"])
	for _, key := range []string{"leadId", "parentId", "weight", "frequency", "frequencyDetail"} {
		assert.NotContains(t, rec, key)
	}
}

func TestDeleteProject_ReturnsCascadedIDs(t *testing.T) {
	client, fb, _ := newClient(t)
	fb.Seed("projects", map[string]any{"id": "p1", "name": "Alpha"})
	fb.Cascades["p1"] = []string{"c1", "c2"}

	resp, err := client.DeleteProject(context.Background(), "p1")
	require.NoError(t, err)
	assert.Len(t, resp.DeletedProjectIDs, 3)
}

func TestLogin(t *testing.T) {
	client, fb, _ := newClient(t)
	fb.SeedUser("priya", "hunter2", map[string]any{"id": 42, "name": "Priya", "role": "Team Leader"})

	t.Run("success", func(t *testing.T) {
		rec, err := client.Login(context.Background(), "priya", "hunter2")
		require.NoError(t, err)
		assert.Equal(t, "Priya", rec.Name)
	})

	t.Run("bad credentials", func(t *testing.T) {
		_, err := client.Login(context.Background(), "priya", "wrong")
		require.Error(t, err)
		var statusErr *api.StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, 401, statusErr.Status)
		assert.Contains(t, statusErr.Snippet, "invalid username or password")
	})
}

func TestMemberPerformance(t *testing.T) {
	client, fb, _ := newClient(t)
	fb.Performance["7"] = map[string]any{
		"user_id": 7,
		"metrics": map[string]any{"completedTasks": 12},
	}

	rec, err := client.MemberPerformance(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, float64(12), rec.Metrics["completedTasks"])

	_, err = client.MemberPerformance(context.Background(), "404")
	var statusErr *api.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 404, statusErr.Status)
}

func TestStatusError_SnippetTruncatedTo200Bytes(t *testing.T) {
	client, fb, _ := newClient(t)
	fb.FailOn("GET", "/api/projects", 500, strings.Repeat("x", 500))

	_, err := client.ListProjects(context.Background())
	var statusErr *api.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Len(t, statusErr.Snippet, 200)
}

func TestBadJSONBodyIsBadResponse(t *testing.T) {
	client, fb, _ := newClient(t)
	fb.FailOn("GET", "/api/tasks", 200, "<html>gateway</html>")

	_, err := client.ListTasks(context.Background())
	require.ErrorIs(t, err, api.ErrBadResponse)
}

func TestObserverSeesEveryCall(t *testing.T) {
	client, fb, obs := newClient(t)
	fb.Seed("projects", map[string]any{"id": "p1", "name": "Alpha"})
	fb.FailOn("GET", "/api/tasks", 503, "down")

	_, _ = client.ListProjects(context.Background())
	_, _ = client.ListTasks(context.Background())

	require.Len(t, obs.events, 2)
	assert.Equal(t, 200, obs.events[0].Status)
	assert.NoError(t, obs.events[0].Err)
	assert.Equal(t, 503, obs.events[1].Status)
	assert.Error(t, obs.events[1].Err)
}
