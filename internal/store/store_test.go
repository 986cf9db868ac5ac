package store

import (
	"testing"
	"time"

	"github.com/projectpulse/pulse/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutProject_PreservesInsertionOrder(t *testing.T) {
	s := New()
	s.PutProject(domain.Project{ID: "b", Name: "Second"})
	s.PutProject(domain.Project{ID: "a", Name: "First"})
	s.PutProject(domain.Project{ID: "b", Name: "Second updated"})

	projects := s.Projects()
	require.Len(t, projects, 2)
	assert.Equal(t, "b", projects[0].ID)
	assert.Equal(t, "Second updated", projects[0].Name, "update in place keeps position")
	assert.Equal(t, "a", projects[1].ID)
}

func TestProjectIndex_TracksMutations(t *testing.T) {
	s := New()
	s.PutProject(domain.Project{ID: "p1"})

	_, ok := s.Project("p1")
	assert.True(t, ok)

	s.RemoveProject("p1")
	_, ok = s.Project("p1")
	assert.False(t, ok, "index must observe removal")

	s.PutProject(domain.Project{ID: "p1", Name: "again"})
	p, ok := s.Project("p1")
	require.True(t, ok)
	assert.Equal(t, "again", p.Name)
}

func TestDescendantProjects(t *testing.T) {
	s := New()
	s.PutProject(domain.Project{ID: "root"})
	s.PutProject(domain.Project{ID: "c1", ParentID: "root"})
	s.PutProject(domain.Project{ID: "c2", ParentID: "root"})
	s.PutProject(domain.Project{ID: "g1", ParentID: "c1"})
	s.PutProject(domain.Project{ID: "other"})

	descendants := s.DescendantProjects("root")
	ids := make([]string, len(descendants))
	for i, d := range descendants {
		ids[i] = d.ID
	}
	assert.Equal(t, []string{"c1", "g1", "c2"}, ids)
}

func TestTasksForProject(t *testing.T) {
	s := New()
	s.PutTask(domain.Task{ID: "t1", ProjectID: "p1"})
	s.PutTask(domain.Task{ID: "t2", ProjectID: "p2"})
	s.PutTask(domain.Task{ID: "t3", ProjectID: "p1"})

	tasks := s.TasksForProject("p1")
	require.Len(t, tasks, 2)
	assert.Equal(t, "t1", tasks[0].ID)
	assert.Equal(t, "t3", tasks[1].ID)
}

func TestNotifications_NewestFirst(t *testing.T) {
	s := New()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.AddNotification(domain.Notification{ID: "n1", CreatedAt: base})
	s.AddNotification(domain.Notification{ID: "n2", CreatedAt: base.Add(time.Minute)})

	feed := s.Notifications()
	require.Len(t, feed, 2)
	assert.Equal(t, "n2", feed[0].ID)

	s.MarkNotificationRead("n1")
	feed = s.Notifications()
	assert.True(t, feed[1].IsRead)
	assert.Equal(t, "n2", feed[0].ID, "marking read keeps ordering")
}

func TestAuditLog_NewestFirst(t *testing.T) {
	s := New()
	s.AddAuditEntry(domain.AuditEntry{ID: "a1"})
	s.AddAuditEntry(domain.AuditEntry{ID: "a2"})

	log := s.AuditLog()
	require.Len(t, log, 2)
	assert.Equal(t, "a2", log[0].ID)
	assert.Equal(t, "a1", log[1].ID)
}

func TestReplaceProjects_ResetsCollection(t *testing.T) {
	s := New()
	s.PutProject(domain.Project{ID: "old"})
	s.ReplaceProjects([]domain.Project{{ID: "new1"}, {ID: "new2"}})

	_, ok := s.Project("old")
	assert.False(t, ok)
	assert.Len(t, s.Projects(), 2)
}
