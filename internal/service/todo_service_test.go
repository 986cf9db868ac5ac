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

func TestToDoCreate_DefaultsToOnce(t *testing.T) {
	f := newFixture(t)

	td, err := f.todos.Create(context.Background(), CreateToDoRequest{
		OwnerID: "u1",
		Title:   "Send the weekly report",
		DueDate: time.Date(2024, 3, 22, 0, 0, 0, 0, time.UTC),
		DueTime: "14:00",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ToDoOnce, td.Frequency)
	assert.False(t, td.IsComplete)

	stored, ok := f.store.ToDo(td.ID)
	require.True(t, ok)
	assert.Equal(t, *td, stored)
}

func TestToDoCreate_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.todos.Create(ctx, CreateToDoRequest{OwnerID: "u1", DueDate: testNow})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = f.todos.Create(ctx, CreateToDoRequest{OwnerID: "u1", Title: "No date"})
	assert.ErrorAs(t, err, &verr)
}

func TestToDoComplete_OnceTerminates(t *testing.T) {
	f := newFixture(t)
	f.seedToDo(t, testutil.NewToDo("td1", "u1", "File expenses",
		time.Date(2024, 3, 22, 0, 0, 0, 0, time.UTC)))

	td, err := f.todos.Complete(context.Background(), "td1")
	require.NoError(t, err)
	assert.True(t, td.IsComplete)
	require.NotNil(t, td.LastCompletedAt)
	assert.Equal(t, testNow, td.LastCompletedAt.UTC())
}

func TestToDoComplete_RecurringRollsForward(t *testing.T) {
	due := time.Date(2024, 3, 22, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		freq    domain.ToDoFrequency
		wantDue time.Time
	}{
		{name: "daily", freq: domain.ToDoDaily, wantDue: due.AddDate(0, 0, 1)},
		{name: "weekly", freq: domain.ToDoWeekly, wantDue: due.AddDate(0, 0, 7)},
		{name: "monthly", freq: domain.ToDoMonthly, wantDue: due.AddDate(0, 1, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.seedToDo(t, testutil.NewToDo("td1", "u1", "Standup notes", due,
				testutil.WithToDoFrequency(tt.freq)))

			td, err := f.todos.Complete(context.Background(), "td1")
			require.NoError(t, err)
			assert.False(t, td.IsComplete, "recurring to-dos never terminate on completion")
			assert.Equal(t, tt.wantDue, td.DueDate.UTC())
			require.NotNil(t, td.LastCompletedAt)

			// The reschedule is persisted, not just local.
			rec, ok := f.backend.Record("todos", "td1")
			require.True(t, ok)
			assert.Equal(t, tt.wantDue.Format("2006-01-02"), rec["dueDate"])
			assert.Equal(t, false, rec["isComplete"])
		})
	}
}

func TestToDoComplete_UnknownID(t *testing.T) {
	f := newFixture(t)
	_, err := f.todos.Complete(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToDoDelete(t *testing.T) {
	f := newFixture(t)
	f.seedToDo(t, testutil.NewToDo("td1", "u1", "File expenses", testNow))

	require.NoError(t, f.todos.Delete(context.Background(), "td1"))
	_, ok := f.store.ToDo("td1")
	assert.False(t, ok)
}
