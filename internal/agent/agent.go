// ABOUTME: A named worker with a free-form status and its own metadata map.
// ABOUTME: Status and metadata are guarded so holders may mutate while the manager reads.

package agent

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/2389/chainmgr/internal/fault"
)

// ErrMetadataKeyNotFound indicates the agent has no metadata under the key.
var ErrMetadataKeyNotFound = fault.New("metadata key not found", fault.ErrNotFound)

// Status is an agent's lifecycle label. Any string is legal; the two
// canonical values drive activation and statistics.
type Status string

const (
	StatusIdle   Status = "idle"
	StatusActive Status = "active"
)

// Descriptor is the read surface shared by Agent and anything that embeds it.
type Descriptor interface {
	ID() string
	Name() string
	Status() Status
	MetadataCopy() map[string]any
}

// Agent is a worker entity. ID and Name never change after construction.
type Agent struct {
	id   string
	name string

	mu       sync.RWMutex
	status   Status
	metadata map[string]any
}

// Option configures an Agent at construction.
type Option func(*Agent)

// WithStatus sets the initial status instead of idle.
func WithStatus(s Status) Option {
	return func(a *Agent) {
		a.status = s
	}
}

// WithMetadata seeds the metadata map. The map is copied.
func WithMetadata(md map[string]any) Option {
	return func(a *Agent) {
		maps.Copy(a.metadata, md)
	}
}

// New creates an idle agent with empty metadata.
func New(id, name string, opts ...Option) *Agent {
	a := &Agent{
		id:       id,
		name:     name,
		status:   StatusIdle,
		metadata: make(map[string]any),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ID returns the agent id.
func (a *Agent) ID() string { return a.id }

// Name returns the display name.
func (a *Agent) Name() string { return a.name }

// Status returns the current status.
func (a *Agent) Status() Status {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.status
}

// IsActive reports whether the status is active.
func (a *Agent) IsActive() bool {
	return a.Status() == StatusActive
}

// Activate sets the status to active. Calling it again has no further effect.
func (a *Agent) Activate() {
	a.SetStatus(StatusActive)
}

// Deactivate sets the status to idle.
func (a *Agent) Deactivate() {
	a.SetStatus(StatusIdle)
}

// SetStatus assigns an arbitrary status.
func (a *Agent) SetStatus(s Status) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.status = s
}

// Meta returns the metadata value stored under key.
func (a *Agent) Meta(key string) (any, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	v, ok := a.metadata[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q on agent %s", ErrMetadataKeyNotFound, key, a.id)
	}
	return v, nil
}

// SetMeta stores value under key, replacing any previous value.
func (a *Agent) SetMeta(key string, value any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.metadata[key] = value
}

// DeleteMeta removes key. Missing keys are ignored.
func (a *Agent) DeleteMeta(key string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.metadata, key)
}

// MetaKeys returns the metadata keys in sorted order.
func (a *Agent) MetaKeys() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return slices.Sorted(maps.Keys(a.metadata))
}

// MetadataCopy returns a shallow copy of the metadata map.
func (a *Agent) MetadataCopy() map[string]any {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return maps.Clone(a.metadata)
}

// String renders "Name (id)".
func (a *Agent) String() string {
	return fmt.Sprintf("%s (%s)", a.name, a.id)
}
