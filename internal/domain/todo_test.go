package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkComplete_OnceIsTerminal(t *testing.T) {
	due := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	td := &ToDo{Frequency: ToDoOnce, DueDate: due}

	td.MarkComplete(testNow)

	assert.True(t, td.IsComplete)
	assert.Equal(t, due, td.DueDate, "terminal completion does not reschedule")
	require.NotNil(t, td.LastCompletedAt)
	assert.Equal(t, testNow, *td.LastCompletedAt)
}

func TestMarkComplete_RecurringRollsForward(t *testing.T) {
	due := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		freq ToDoFrequency
		next time.Time
	}{
		{ToDoDaily, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		{ToDoWeekly, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)},
		{ToDoMonthly, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(string(tc.freq), func(t *testing.T) {
			td := &ToDo{Frequency: tc.freq, DueDate: due}
			td.MarkComplete(testNow)

			assert.False(t, td.IsComplete, "recurring to-do stays incomplete")
			assert.Equal(t, tc.next, td.DueDate)
			require.NotNil(t, td.LastCompletedAt)
			assert.Equal(t, testNow, *td.LastCompletedAt)
		})
	}
}

func TestMarkComplete_RepeatedRecurringCompletions(t *testing.T) {
	td := &ToDo{Frequency: ToDoWeekly, DueDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	td.MarkComplete(testNow)
	td.MarkComplete(testNow.Add(time.Hour))

	assert.False(t, td.IsComplete)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), td.DueDate)
}
