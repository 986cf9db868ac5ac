package service

import (
	"testing"
	"time"

	"github.com/projectpulse/pulse/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReminderScan_FiresWithinLeadWindow(t *testing.T) {
	f := newFixture(t)
	scanner := NewReminderScanner(f.store, 0, 30*time.Minute, f.clock.Now)

	// Due at 10:15, lead 30m: 10:00 is inside the window.
	f.seedToDo(t, testutil.NewToDo("soon", "u1", "Submit timesheet",
		time.Date(2024, 3, 21, 0, 0, 0, 0, time.UTC), testutil.WithDueTime("10:15")))
	// Due at 16:00: well outside.
	f.seedToDo(t, testutil.NewToDo("later", "u1", "Team retro prep",
		time.Date(2024, 3, 21, 0, 0, 0, 0, time.UTC), testutil.WithDueTime("16:00")))

	fired := scanner.Scan(testNow)
	require.Len(t, fired, 1)
	assert.Equal(t, "/todos/soon", fired[0].Link)
	assert.Equal(t, "u1", fired[0].RecipientID)
	require.Len(t, f.store.Notifications(), 1)
}

func TestReminderScan_FiresOncePerSession(t *testing.T) {
	f := newFixture(t)
	scanner := NewReminderScanner(f.store, 0, 30*time.Minute, f.clock.Now)
	f.seedToDo(t, testutil.NewToDo("td1", "u1", "Submit timesheet",
		time.Date(2024, 3, 21, 0, 0, 0, 0, time.UTC), testutil.WithDueTime("10:15")))

	require.Len(t, scanner.Scan(testNow), 1)
	assert.Empty(t, scanner.Scan(testNow.Add(time.Minute)))
	assert.Empty(t, scanner.Scan(testNow.Add(time.Hour)))
	assert.Len(t, f.store.Notifications(), 1)

	// A fresh scanner (new session) fires again.
	again := NewReminderScanner(f.store, 0, 30*time.Minute, f.clock.Now)
	assert.Len(t, again.Scan(testNow), 1)
}

func TestReminderScan_SkipsCompleted(t *testing.T) {
	f := newFixture(t)
	scanner := NewReminderScanner(f.store, 0, 30*time.Minute, f.clock.Now)

	done := testutil.NewToDo("done", "u1", "Already handled",
		time.Date(2024, 3, 21, 0, 0, 0, 0, time.UTC), testutil.WithDueTime("10:15"))
	done.IsComplete = true
	f.seedToDo(t, done)

	assert.Empty(t, scanner.Scan(testNow))
}

func TestReminderScan_NoDueTimeMeansEndOfDay(t *testing.T) {
	f := newFixture(t)
	scanner := NewReminderScanner(f.store, 0, 30*time.Minute, f.clock.Now)
	f.seedToDo(t, testutil.NewToDo("td1", "u1", "Close out the sprint",
		time.Date(2024, 3, 21, 0, 0, 0, 0, time.UTC)))

	// Mid-morning is hours before the end-of-day instant.
	assert.Empty(t, scanner.Scan(testNow))
	// 23:35 is within the 30 minute lead of 23:59:59.
	assert.Len(t, scanner.Scan(time.Date(2024, 3, 21, 23, 35, 0, 0, time.UTC)), 1)
}

func TestReminderScanner_DefaultInterval(t *testing.T) {
	f := newFixture(t)
	scanner := NewReminderScanner(f.store, 0, 0, f.clock.Now)
	assert.Equal(t, 30*time.Second, scanner.Interval())
}
