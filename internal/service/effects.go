package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/projectpulse/pulse/internal/api"
	"github.com/projectpulse/pulse/internal/domain"
	"github.com/projectpulse/pulse/internal/store"
)

// Effect is a post-commit side effect produced by a mutation handler.
// Handlers stay free of direct side-effect calls: they return effects
// and the dispatcher runs them after the primary commit.
type Effect interface {
	isEffect()
}

// NotifyEffect appends an in-memory notification for a recipient.
type NotifyEffect struct {
	RecipientID string
	Message     string
	Link        string
}

func (NotifyEffect) isEffect() {}

// AuditEffect records an audit entry locally and ships it to the
// backend best-effort.
type AuditEffect struct {
	UserID     string
	Action     string
	EntityType string
	EntityID   string
	Details    string
}

func (AuditEffect) isEffect() {}

// Dispatcher executes effects. Audit writes are fire-and-forget
// relative to the mutation they annotate: a failed remote write is
// observed and dropped, never propagated.
type Dispatcher struct {
	store    *store.Store
	client   *api.Client
	clock    func() time.Time
	observer UseCaseObserver
}

func NewDispatcher(st *store.Store, client *api.Client, clock func() time.Time, observers ...UseCaseObserver) *Dispatcher {
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return &Dispatcher{
		store:    st,
		client:   client,
		clock:    clock,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, effects []Effect) {
	for _, e := range effects {
		switch eff := e.(type) {
		case NotifyEffect:
			d.notify(eff)
		case AuditEffect:
			d.audit(ctx, eff)
		}
	}
}

func (d *Dispatcher) notify(eff NotifyEffect) {
	if eff.RecipientID == "" {
		return
	}
	d.store.AddNotification(domain.Notification{
		ID:          uuid.New().String(),
		RecipientID: eff.RecipientID,
		Message:     eff.Message,
		Link:        eff.Link,
		CreatedAt:   d.clock(),
	})
}

func (d *Dispatcher) audit(ctx context.Context, eff AuditEffect) {
	entry := domain.AuditEntry{
		ID:         uuid.New().String(),
		UserID:     eff.UserID,
		Action:     eff.Action,
		EntityType: eff.EntityType,
		EntityID:   eff.EntityID,
		Timestamp:  d.clock(),
		Details:    eff.Details,
	}
	d.store.AddAuditEntry(entry)

	if d.client == nil {
		return
	}
	start := d.clock()
	_, err := d.client.CreateAuditLog(ctx, map[string]any{
		"userId":     entry.UserID,
		"action":     entry.Action,
		"entityType": entry.EntityType,
		"entityId":   entry.EntityID,
		"timestamp":  entry.Timestamp.Format(time.RFC3339),
		"details":    entry.Details,
	})
	if err != nil {
		// Best-effort: the primary mutation already committed.
		observe(ctx, d.observer, "audit_write", start, err, map[string]any{
			"entity_type": entry.EntityType,
			"entity_id":   entry.EntityID,
		})
	}
}
