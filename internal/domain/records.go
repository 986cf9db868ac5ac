package domain

import "time"

// Notification is created transiently in memory; it is never persisted
// to the backend.
type Notification struct {
	ID          string
	RecipientID string
	Message     string
	Link        string
	IsRead      bool
	CreatedAt   time.Time
}

// AuditEntry is one append-only audit record, kept newest-first.
type AuditEntry struct {
	ID         string
	UserID     string
	Action     string
	EntityType string
	EntityID   string
	Timestamp  time.Time
	Details    string
}

// Settings aggregates. Plain configuration records with no derived
// behavior.

type SystemConfig struct {
	ID    string
	Key   string
	Value string
}

type ProjectPhase struct {
	ID   string
	Name string
}

type Department struct {
	ID   string
	Name string
}

type RiskLevelSetting struct {
	ID    string
	Name  string
	Level int
}
