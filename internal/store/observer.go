// ABOUTME: Adapts manager events into journal entries.
// ABOUTME: Write failures are logged and never surface to the manager.

package store

import (
	"context"
	"log/slog"

	"github.com/2389/chainmgr/internal/agent"
)

// AuditObserver writes every manager event to a Journal.
type AuditObserver struct {
	journal Journal
	logger  *slog.Logger
}

// NewAuditObserver creates an observer that appends to j.
func NewAuditObserver(j Journal, logger *slog.Logger) *AuditObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditObserver{
		journal: j,
		logger:  logger.With("component", "audit"),
	}
}

// Observe implements agent.Observer.
func (o *AuditObserver) Observe(ctx context.Context, ev agent.Event) {
	entry := EntryFromEvent(ev)
	if err := o.journal.AppendAuditLog(ctx, &entry); err != nil {
		o.logger.Warn("failed to record event",
			"kind", ev.Kind,
			"error", err,
		)
	}
}

// EntryFromEvent converts a manager event to an unsaved journal entry.
func EntryFromEvent(ev agent.Event) AuditEntry {
	e := AuditEntry{
		Kind:        string(ev.Kind),
		AgentID:     ev.AgentID,
		InterfaceID: ev.InterfaceID,
		ChainID:     ev.ChainID,
		Command:     ev.Command,
		Status:      string(ev.Status),
		Previous:    ev.Previous,
		Duration:    ev.Duration,
		Timestamp:   ev.Time,
	}
	if ev.Err != nil {
		e.Error = ev.Err.Error()
	}
	return e
}

var _ agent.Observer = (*AuditObserver)(nil)
