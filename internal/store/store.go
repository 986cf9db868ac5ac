// Package store holds the authoritative in-memory entity collections
// rendered by the UI. All mutation flows through the service layer;
// nothing else caches entity data beyond one render cycle.
package store

import (
	"sync"

	"github.com/projectpulse/pulse/internal/domain"
)

// collection is an insertion-ordered set of entities with a lazily
// rebuilt id index. The index is a memoized derivation of the slice,
// never mutated independently.
type collection[T any] struct {
	order []entry[T]
	index map[string]int
	dirty bool
}

type entry[T any] struct {
	id   string
	item T
}

func (c *collection[T]) rebuild() {
	if !c.dirty && c.index != nil {
		return
	}
	c.index = make(map[string]int, len(c.order))
	for i, e := range c.order {
		c.index[e.id] = i
	}
	c.dirty = false
}

func (c *collection[T]) get(id string) (T, bool) {
	c.rebuild()
	if i, ok := c.index[id]; ok {
		return c.order[i].item, true
	}
	var zero T
	return zero, false
}

func (c *collection[T]) put(id string, item T) {
	c.rebuild()
	if i, ok := c.index[id]; ok {
		c.order[i].item = item
		return
	}
	c.order = append(c.order, entry[T]{id: id, item: item})
	c.dirty = true
}

// prepend inserts at the front, for reverse-chronological feeds.
func (c *collection[T]) prepend(id string, item T) {
	c.order = append([]entry[T]{{id: id, item: item}}, c.order...)
	c.dirty = true
}

func (c *collection[T]) remove(id string) bool {
	c.rebuild()
	i, ok := c.index[id]
	if !ok {
		return false
	}
	c.order = append(c.order[:i], c.order[i+1:]...)
	c.dirty = true
	return true
}

func (c *collection[T]) replace(ids []string, items []T) {
	c.order = c.order[:0]
	for i := range items {
		c.order = append(c.order, entry[T]{id: ids[i], item: items[i]})
	}
	c.dirty = true
}

func (c *collection[T]) all() []T {
	out := make([]T, len(c.order))
	for i, e := range c.order {
		out[i] = e.item
	}
	return out
}

// Store is the single source of truth for domain state. A read-write
// mutex covers the boundary where the dashboard goroutine reads while
// a command finishes committing; mutations themselves are serial.
type Store struct {
	mu sync.RWMutex

	projects      collection[domain.Project]
	tasks         collection[domain.Task]
	todos         collection[domain.ToDo]
	members       collection[domain.Member]
	teams         collection[domain.Team]
	tools         collection[domain.Tool]
	leaves        collection[domain.Leave]
	notifications collection[domain.Notification]
	audit         collection[domain.AuditEntry]

	systemConfig  []domain.SystemConfig
	projectPhases []domain.ProjectPhase
	departments   []domain.Department
	riskLevels    []domain.RiskLevelSetting
}

func New() *Store {
	return &Store{}
}
