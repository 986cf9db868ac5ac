package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/projectpulse/pulse/internal/domain"
	"github.com/projectpulse/pulse/internal/store"
)

// ReminderScanner periodically checks for to-dos coming due and
// appends a notification for each. The scan is read-only over the
// store apart from the notification append. Fired reminders are
// suppressed per session, keyed by to-do id; the suppression set is
// not persisted and resets on restart.
type ReminderScanner struct {
	store    *store.Store
	interval time.Duration
	lead     time.Duration
	clock    func() time.Time

	fired map[string]bool
}

const (
	defaultReminderInterval = 30 * time.Second
	defaultReminderLead     = 30 * time.Minute
)

func NewReminderScanner(st *store.Store, interval, lead time.Duration, clock func() time.Time) *ReminderScanner {
	if interval <= 0 {
		interval = defaultReminderInterval
	}
	if lead <= 0 {
		lead = defaultReminderLead
	}
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return &ReminderScanner{
		store:    st,
		interval: interval,
		lead:     lead,
		clock:    clock,
		fired:    make(map[string]bool),
	}
}

// Interval returns the configured scan period.
func (r *ReminderScanner) Interval() time.Duration {
	return r.interval
}

// Scan fires due-soon reminders and returns the notifications it
// appended. A reminder fires at most once per to-do per session.
func (r *ReminderScanner) Scan(now time.Time) []domain.Notification {
	var fired []domain.Notification
	for _, td := range r.store.ToDos() {
		if td.IsComplete || r.fired[td.ID] {
			continue
		}
		due := dueInstant(td)
		if now.Before(due.Add(-r.lead)) {
			continue
		}
		n := domain.Notification{
			ID:          uuid.New().String(),
			RecipientID: td.OwnerID,
			Message:     fmt.Sprintf("To-do %q is due soon", td.Title),
			Link:        "/todos/" + td.ID,
			CreatedAt:   now,
		}
		r.store.AddNotification(n)
		r.fired[td.ID] = true
		fired = append(fired, n)
	}
	return fired
}

// Run scans on the configured interval until the context is done.
func (r *ReminderScanner) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Scan(r.clock())
		}
	}
}

// dueInstant combines the due date with the optional HH:MM due time.
// A to-do with no due time is treated as due at end of day.
func dueInstant(td domain.ToDo) time.Time {
	day := td.DueDate.UTC().Truncate(24 * time.Hour)
	if t, err := time.Parse("15:04", td.DueTime); err == nil {
		return day.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
	}
	return day.Add(24*time.Hour - time.Second)
}
