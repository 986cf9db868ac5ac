package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/projectpulse/pulse/internal/domain"
	"github.com/projectpulse/pulse/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimer_FullSessionAccumulatesActiveIntervalsOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedProject(t, testutil.NewProject("p1", "Automation"))

	_, err := f.projects.StartTimer(ctx, "p1", "u1")
	require.NoError(t, err)

	p, ok := f.store.Project("p1")
	require.True(t, ok)
	assert.Equal(t, domain.ProjectStarted, p.Status)
	require.NotNil(t, p.TimerStartTime)

	// Hold after 2h of work.
	f.clock.Advance(2 * time.Hour)
	_, err = f.projects.HoldTimer(ctx, "p1", "u1")
	require.NoError(t, err)

	p, _ = f.store.Project("p1")
	assert.InDelta(t, 2.0, p.UsedHours, 1e-9)
	assert.Nil(t, p.TimerStartTime)
	assert.Equal(t, domain.ProjectStarted, p.Status)

	// A long break, then resume and end after 3h more.
	f.clock.Advance(26 * time.Hour)
	_, err = f.projects.StartTimer(ctx, "p1", "u1")
	require.NoError(t, err)
	f.clock.Advance(3 * time.Hour)
	_, err = f.projects.EndTimer(ctx, "p1", "u1")
	require.NoError(t, err)

	p, _ = f.store.Project("p1")
	assert.InDelta(t, 5.0, p.UsedHours, 1e-9, "break time is excluded")
	assert.Equal(t, domain.ProjectCompleted, p.Status)
	assert.Nil(t, p.TimerStartTime)
	require.NotNil(t, p.CompletedAt)

	// The backend saw the same accumulation.
	rec, ok := f.backend.Record("projects", "p1")
	require.True(t, ok)
	assert.InDelta(t, 5.0, rec["usedHours"].(float64), 1e-9)
}

func TestTimer_RollbackOnRemoteFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	started := testNow.Add(-90 * time.Minute)
	f.seedProject(t, testutil.NewProject("p1", "Automation",
		testutil.WithTimerRunning(started),
		testutil.WithAllocatedHours(40)))

	snapshot, ok := f.store.Project("p1")
	require.True(t, ok)

	f.backend.FailOn(http.MethodPut, "/api/projects/p1", http.StatusInternalServerError, "boom")

	_, err := f.projects.HoldTimer(ctx, "p1", "u1")
	require.Error(t, err)

	restored, ok := f.store.Project("p1")
	require.True(t, ok)
	assert.Equal(t, snapshot, restored, "observable state must match the pre-transition snapshot exactly")
}

func TestTimer_NoRetryAfterFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedProject(t, testutil.NewProject("p1", "Automation"))

	f.backend.FailOn(http.MethodPut, "/api/projects/p1", http.StatusBadGateway, "down")
	_, err := f.projects.StartTimer(ctx, "p1", "u1")
	require.Error(t, err)

	// A new user action after the outage clears succeeds normally.
	f.backend.ClearFailure(http.MethodPut, "/api/projects/p1")
	_, err = f.projects.StartTimer(ctx, "p1", "u1")
	require.NoError(t, err)
}

func TestTimer_UnknownProject(t *testing.T) {
	f := newFixture(t)
	_, err := f.projects.StartTimer(context.Background(), "missing", "u1")
	assert.ErrorIs(t, err, ErrNotFound)
}
