// ABOUTME: Manager event types and the Observer hook used by audit and metrics.
// ABOUTME: Observers run after the manager lock is released, in registration order.

package agent

import (
	"context"
	"time"
)

// EventKind identifies what changed in the manager.
type EventKind string

const (
	EventAgentRegistered   EventKind = "agent_registered"
	EventChainCreated      EventKind = "chain_created"
	EventInterfaceAdded    EventKind = "interface_added"
	EventAgentAttached     EventKind = "agent_attached"
	EventAgentDetached     EventKind = "agent_detached"
	EventStatusChanged     EventKind = "status_changed"
	EventCommandRegistered EventKind = "command_registered"
	EventCommandExecuted   EventKind = "command_executed"
	EventCommandFailed     EventKind = "command_failed"
)

// Event describes one manager mutation or command execution.
type Event struct {
	Kind        EventKind
	AgentID     string
	InterfaceID string
	ChainID     string
	Command     string
	Status      Status
	// Previous holds the displaced agent id for attachments and the old
	// status for status changes.
	Previous string
	Err      error
	Duration time.Duration
	Time     time.Time
}

// Observer receives manager events.
type Observer interface {
	Observe(ctx context.Context, ev Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, ev Event)

// Observe calls f.
func (f ObserverFunc) Observe(ctx context.Context, ev Event) {
	f(ctx, ev)
}
