package service

import (
	"context"
	"testing"

	"github.com/projectpulse/pulse/internal/domain"
	"github.com/projectpulse/pulse/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func notificationsFor(f *fixture, recipientID string) []domain.Notification {
	var out []domain.Notification
	for _, n := range f.store.Notifications() {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	return out
}

func TestTaskCreate_NotifiesAssigneeUnlessSelf(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedProject(t, testutil.NewProject("p1", "Automation", testutil.WithLead("lead1")))

	_, err := f.tasks.Create(ctx, CreateTaskRequest{
		ActorID:    "actor1",
		ProjectID:  "p1",
		Title:      "Wire the export",
		Type:       domain.TaskTypeTask,
		AssigneeID: "dev1",
	})
	require.NoError(t, err)
	require.Len(t, notificationsFor(f, "dev1"), 1)

	// Self-assignment stays quiet.
	_, err = f.tasks.Create(ctx, CreateTaskRequest{
		ActorID:    "actor1",
		ProjectID:  "p1",
		Title:      "Review the export",
		Type:       domain.TaskTypeTask,
		AssigneeID: "actor1",
	})
	require.NoError(t, err)
	assert.Empty(t, notificationsFor(f, "actor1"))
}

func TestTaskCreate_UnknownProject(t *testing.T) {
	f := newFixture(t)
	_, err := f.tasks.Create(context.Background(), CreateTaskRequest{
		ActorID:   "actor1",
		ProjectID: "missing",
		Title:     "Orphan",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateRisk_TitleFromReason(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedProject(t, testutil.NewProject("p1", "Automation", testutil.WithLead("lead1")))

	tests := []struct {
		name      string
		reason    string
		custom    string
		wantTitle string
		wantErr   bool
	}{
		{name: "predefined reason", reason: "Vendor delay", wantTitle: "Vendor delay"},
		{name: "other with text", reason: "Other", custom: "licence audit pending", wantTitle: "licence audit pending"},
		{name: "other without text", reason: "Other", wantErr: true},
		{name: "unknown reason", reason: "Bad weather", wantErr: true},
		{name: "empty reason", reason: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := f.tasks.CreateRisk(ctx, CreateRiskRequest{
				ActorID:      "actor1",
				ProjectID:    "p1",
				Reason:       tt.reason,
				CustomReason: tt.custom,
			})
			if tt.wantErr {
				var verr *ValidationError
				assert.ErrorAs(t, err, &verr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, task.Title)
			assert.Equal(t, domain.TaskBlocked, task.Status)
			assert.Equal(t, domain.TaskTypeRisk, task.Type)
		})
	}
}

func TestCreateRisk_NotifiesAssigneeAndLead(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedProject(t, testutil.NewProject("p1", "Automation", testutil.WithLead("lead1")))

	_, err := f.tasks.CreateRisk(ctx, CreateRiskRequest{
		ActorID:    "actor1",
		ProjectID:  "p1",
		Reason:     "Access pending",
		AssigneeID: "dev1",
	})
	require.NoError(t, err)

	assert.Len(t, notificationsFor(f, "dev1"), 1)
	assert.Len(t, notificationsFor(f, "lead1"), 1)
	assert.Empty(t, notificationsFor(f, "actor1"))
}

func TestCreateRisk_LeadIsAssignee_SingleNotification(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedProject(t, testutil.NewProject("p1", "Automation", testutil.WithLead("lead1")))

	_, err := f.tasks.CreateRisk(ctx, CreateRiskRequest{
		ActorID:    "actor1",
		ProjectID:  "p1",
		Reason:     "Vendor delay",
		AssigneeID: "lead1",
	})
	require.NoError(t, err)
	assert.Len(t, notificationsFor(f, "lead1"), 1)
}

func TestTaskUpdate_ReassignmentNotifiesNewAssignee(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedProject(t, testutil.NewProject("p1", "Automation"))
	f.seedTask(t, testutil.NewTask("t1", "p1", "Wire the export", testutil.WithAssignee("dev1")))

	_, err := f.tasks.Update(ctx, TaskUpdate{
		ID:         "t1",
		ActorID:    "actor1",
		AssigneeID: strPtr("dev2"),
	})
	require.NoError(t, err)
	assert.Len(t, notificationsFor(f, "dev2"), 1)

	// Clearing the assignee notifies nobody.
	_, err = f.tasks.Update(ctx, TaskUpdate{
		ID:         "t1",
		ActorID:    "actor1",
		AssigneeID: strPtr(""),
	})
	require.NoError(t, err)
	assert.Empty(t, notificationsFor(f, ""))
}

func TestTaskComplete_IssueResolutionNotifiesLead(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedProject(t, testutil.NewProject("p1", "Automation", testutil.WithLead("lead1")))
	f.seedTask(t, testutil.NewTask("t1", "p1", "Export crashes",
		testutil.WithTaskType(domain.TaskTypeIssue), testutil.WithTaskStatus(domain.TaskStarted)))

	task, err := f.tasks.Complete(ctx, CompleteTaskRequest{
		ID:        "t1",
		ActorID:   "dev1",
		TimeSpent: 3,
		TimeSaved: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TaskCompleted, task.Status)
	assert.Empty(t, task.StatusReason)
	require.NotNil(t, task.CompletedAt)
	assert.Len(t, notificationsFor(f, "lead1"), 1)

	// Completing an already-completed issue does not re-notify.
	_, err = f.tasks.Complete(ctx, CompleteTaskRequest{ID: "t1", ActorID: "dev1"})
	require.NoError(t, err)
	assert.Len(t, notificationsFor(f, "lead1"), 1)
}

func TestTaskComplete_PlainTaskStaysQuiet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedProject(t, testutil.NewProject("p1", "Automation", testutil.WithLead("lead1")))
	f.seedTask(t, testutil.NewTask("t1", "p1", "Routine chore"))

	_, err := f.tasks.Complete(ctx, CompleteTaskRequest{ID: "t1", ActorID: "dev1"})
	require.NoError(t, err)
	assert.Empty(t, notificationsFor(f, "lead1"))
}

func TestTaskDelete_RemovesFromStore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedProject(t, testutil.NewProject("p1", "Automation"))
	f.seedTask(t, testutil.NewTask("t1", "p1", "Wire the export"))

	require.NoError(t, f.tasks.Delete(ctx, "t1", "actor1"))
	_, ok := f.store.Task("t1")
	assert.False(t, ok)
}
