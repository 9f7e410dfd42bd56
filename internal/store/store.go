// ABOUTME: Journal interface and data types for the manager event journal
// ABOUTME: Defines AuditEntry, AuditFilter and the Journal interface for database operations

package store

import (
	"context"
	"time"
)

// AuditEntry records one manager event.
type AuditEntry struct {
	ID          string // UUID v4
	Seq         int64  // insertion order, assigned by the store
	Kind        string // agent.EventKind value
	AgentID     string
	InterfaceID string
	ChainID     string
	Command     string
	Status      string
	Previous    string // displaced agent or previous status
	Error       string // empty on success
	Duration    time.Duration
	Timestamp   time.Time
	Detail      map[string]any // additional context
}

// AuditFilter specifies filtering options for listing audit entries.
type AuditFilter struct {
	Since       *time.Time // entries at or after this time
	Kind        *string    // filter by event kind
	AgentID     *string    // filter by agent
	InterfaceID *string    // filter by interface
	Limit       int        // max results (default 100, max 1000)
}

// Journal is the storage surface the audit observer and console use.
type Journal interface {
	AppendAuditLog(ctx context.Context, e *AuditEntry) error
	ListAuditLog(ctx context.Context, f AuditFilter) ([]AuditEntry, error)
	CountAuditLog(ctx context.Context) (int, error)
	Close() error
}

var _ Journal = (*SQLiteStore)(nil)
