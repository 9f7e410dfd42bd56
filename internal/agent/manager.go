// ABOUTME: Manages registered agents and interface chains, and owns attachments.
// ABOUTME: Single entry point for mutations; routes commands to interfaces.

package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/2389/chainmgr/internal/chain"
	"github.com/2389/chainmgr/internal/fault"
)

const tracerName = "github.com/2389/chainmgr/internal/agent"

// ErrNilAgent indicates a nil agent was passed to RegisterAgent.
var ErrNilAgent = errors.New("agent is nil")

// ErrDuplicateAgentID indicates an agent with the same ID is already registered.
var ErrDuplicateAgentID = fault.New("duplicate agent id", fault.ErrDuplicateID)

// ErrAgentNotFound indicates the specified agent was not found.
var ErrAgentNotFound = fault.New("agent not found", fault.ErrNotFound)

// ErrChainNotFound indicates no chain with the id exists.
var ErrChainNotFound = fault.New("chain not found", fault.ErrNotFound)

// ErrInterfaceBound indicates an interface passed to AddInterface already
// carries an agent. Attachments are made through AttachAgentToInterface.
var ErrInterfaceBound = errors.New("interface already has an agent bound")

// ErrNotAttached indicates the agent is not attached to any interface.
var ErrNotAttached = fault.New("agent not attached", fault.ErrNotFound)

// ToggleMode selects how ToggleAllAgents decides new statuses.
type ToggleMode string

const (
	// ToggleFlip flips each agent on its own: active goes idle, anything
	// else goes active.
	ToggleFlip ToggleMode = "flip"
	// ToggleMajority moves every agent to idle when more than half are
	// active, and to active otherwise.
	ToggleMajority ToggleMode = "majority"
)

// ParseToggleMode converts a config string to a ToggleMode. Empty means flip.
func ParseToggleMode(s string) (ToggleMode, error) {
	switch ToggleMode(s) {
	case "", ToggleFlip:
		return ToggleFlip, nil
	case ToggleMajority:
		return ToggleMajority, nil
	default:
		return "", fmt.Errorf("unknown toggle mode %q (want flip or majority)", s)
	}
}

// Manager coordinates all registered agents and the interface chains they
// are attached to.
type Manager struct {
	mu          sync.RWMutex
	agents      map[string]*Agent
	agentOrder  []string
	chains      map[string]*chain.Chain
	chainOrder  []string
	attachments map[string]*chain.Interface // agent id -> interface

	logger     *slog.Logger
	observers  []Observer
	toggleMode ToggleMode
	tracer     trace.Tracer
	newID      func() string
	now        func() time.Time
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithObserver adds an observer notified of every manager event.
func WithObserver(o Observer) ManagerOption {
	return func(m *Manager) {
		if o != nil {
			m.observers = append(m.observers, o)
		}
	}
}

// WithToggleMode sets the ToggleAllAgents policy.
func WithToggleMode(mode ToggleMode) ManagerOption {
	return func(m *Manager) {
		m.toggleMode = mode
	}
}

// WithTracer sets the tracer used for command execution spans.
func WithTracer(t trace.Tracer) ManagerOption {
	return func(m *Manager) {
		if t != nil {
			m.tracer = t
		}
	}
}

// WithIDGenerator replaces the UUID chain id generator.
func WithIDGenerator(fn func() string) ManagerOption {
	return func(m *Manager) {
		if fn != nil {
			m.newID = fn
		}
	}
}

// NewManager creates a new Manager instance.
func NewManager(logger *slog.Logger, opts ...ManagerOption) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Manager{
		agents:      make(map[string]*Agent),
		chains:      make(map[string]*chain.Chain),
		attachments: make(map[string]*chain.Interface),
		logger:      logger.With("component", "manager"),
		toggleMode:  ToggleFlip,
		tracer:      otel.Tracer(tracerName),
		newID:       uuid.NewString,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RegisterAgent adds an agent to the registry.
// Returns ErrDuplicateAgentID if an agent with the same ID exists; the
// registry is left unchanged.
func (m *Manager) RegisterAgent(a *Agent) error {
	if a == nil {
		return ErrNilAgent
	}

	m.mu.Lock()
	if _, exists := m.agents[a.ID()]; exists {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrDuplicateAgentID, a.ID())
	}
	m.agents[a.ID()] = a
	m.agentOrder = append(m.agentOrder, a.ID())
	total := len(m.agents)
	m.mu.Unlock()

	m.logger.Info("=== AGENT REGISTERED ===",
		"agent_id", a.ID(),
		"name", a.Name(),
		"status", a.Status(),
		"total_agents", total,
	)
	m.emit(context.Background(), Event{Kind: EventAgentRegistered, AgentID: a.ID(), Status: a.Status()})
	return nil
}

// GetAgent retrieves a specific agent by ID.
func (m *Manager) GetAgent(id string) (*Agent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.agents[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAgentNotFound, id)
	}
	return a, nil
}

// ListAgents returns all agents in registration order.
func (m *Manager) ListAgents() []*Agent {
	m.mu.RLock()
	defer m.mu.RUnlock()

	agents := make([]*Agent, 0, len(m.agentOrder))
	for _, id := range m.agentOrder {
		agents = append(agents, m.agents[id])
	}
	return agents
}

// CreateInterfaceChain allocates an empty chain with a fresh id and stores it.
// The first chain created becomes the active chain.
func (m *Manager) CreateInterfaceChain() *chain.Chain {
	m.mu.Lock()
	id := m.newID()
	for m.chains[id] != nil {
		id = m.newID()
	}
	c := chain.New(id, len(m.chainOrder)+1)
	m.chains[id] = c
	m.chainOrder = append(m.chainOrder, id)
	total := len(m.chains)
	m.mu.Unlock()

	m.logger.Info("=== INTERFACE CHAIN CREATED ===",
		"chain_id", id,
		"index", c.Index(),
		"total_chains", total,
	)
	m.emit(context.Background(), Event{Kind: EventChainCreated, ChainID: id})
	return c
}

// GetChain retrieves a chain by id.
func (m *Manager) GetChain(id string) (*chain.Chain, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.chains[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrChainNotFound, id)
	}
	return c, nil
}

// ListChains returns all chains in creation order.
func (m *Manager) ListChains() []*chain.Chain {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listChainsLocked()
}

func (m *Manager) listChainsLocked() []*chain.Chain {
	chains := make([]*chain.Chain, 0, len(m.chainOrder))
	for _, id := range m.chainOrder {
		chains = append(chains, m.chains[id])
	}
	return chains
}

// ActiveChain returns the first chain created, if any.
func (m *Manager) ActiveChain() (*chain.Chain, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.chainOrder) == 0 {
		return nil, false
	}
	return m.chains[m.chainOrder[0]], true
}

// AddInterface appends iface to the chain with chainID. The interface must
// be unattached and must not belong to another chain.
func (m *Manager) AddInterface(chainID string, iface *chain.Interface) error {
	if iface == nil {
		return chain.ErrNilInterface
	}
	if agentID, bound := iface.AttachedAgent(); bound {
		return fmt.Errorf("%w: %s holds %s", ErrInterfaceBound, iface.ID(), agentID)
	}

	m.mu.Lock()
	c, ok := m.chains[chainID]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrChainNotFound, chainID)
	}
	err := c.AddInterface(iface)
	m.mu.Unlock()
	if err != nil {
		return err
	}

	m.logger.Debug("interface added",
		"chain_id", chainID,
		"interface_id", iface.ID(),
		"name", iface.Name(),
	)
	m.emit(context.Background(), Event{Kind: EventInterfaceAdded, ChainID: chainID, InterfaceID: iface.ID()})
	return nil
}

// findInterfaceLocked scans chains in creation order and returns the first
// interface with id. Caller must hold m.mu.
func (m *Manager) findInterfaceLocked(id string) (*chain.Interface, *chain.Chain, bool) {
	for _, cid := range m.chainOrder {
		c := m.chains[cid]
		if iface, err := c.GetInterface(id); err == nil {
			return iface, c, true
		}
	}
	return nil, nil, false
}

// AttachAgentToInterface records agentID as the agent attached to the
// interface with interfaceID, replacing any agent already there. The
// interface is the first one with that id in chain creation order. An
// agent attached elsewhere is moved. Status is never changed, including
// the status of a displaced agent. Reports true when the attachment was
// recorded.
func (m *Manager) AttachAgentToInterface(agentID, interfaceID string) (bool, error) {
	m.mu.Lock()
	a, ok := m.agents[agentID]
	if !ok {
		m.mu.Unlock()
		return false, fmt.Errorf("%w: %s", ErrAgentNotFound, agentID)
	}
	iface, c, ok := m.findInterfaceLocked(interfaceID)
	if !ok {
		m.mu.Unlock()
		return false, fmt.Errorf("%w: %s in any chain", chain.ErrInterfaceNotFound, interfaceID)
	}

	var moved string
	if prev, ok := m.attachments[agentID]; ok && prev != iface {
		prev.Unbind()
		moved = prev.ID()
	}
	displaced := iface.Bind(agentID)
	if displaced != "" && displaced != agentID {
		delete(m.attachments, displaced)
	}
	m.attachments[agentID] = iface
	m.mu.Unlock()

	m.logger.Info("=== AGENT ATTACHED ===",
		"agent_id", agentID,
		"name", a.Name(),
		"interface_id", interfaceID,
		"chain_index", c.Index(),
		"displaced", displaced,
		"moved_from", moved,
	)
	m.emit(context.Background(), Event{
		Kind:        EventAgentAttached,
		AgentID:     agentID,
		InterfaceID: interfaceID,
		ChainID:     c.ID(),
		Previous:    displaced,
	})
	return true, nil
}

// DetachAgent clears the agent's attachment.
// Returns ErrNotAttached if the agent has no interface.
func (m *Manager) DetachAgent(agentID string) error {
	m.mu.Lock()
	if _, ok := m.agents[agentID]; !ok {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrAgentNotFound, agentID)
	}
	iface, ok := m.attachments[agentID]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotAttached, agentID)
	}
	iface.Unbind()
	delete(m.attachments, agentID)
	m.mu.Unlock()

	m.logger.Info("=== AGENT DETACHED ===",
		"agent_id", agentID,
		"interface_id", iface.ID(),
	)
	m.emit(context.Background(), Event{Kind: EventAgentDetached, AgentID: agentID, InterfaceID: iface.ID()})
	return nil
}

// InterfaceOf returns the interface the agent is attached to.
func (m *Manager) InterfaceOf(agentID string) (*chain.Interface, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	iface, ok := m.attachments[agentID]
	return iface, ok
}

// ActivateAgent sets the agent's status to active.
func (m *Manager) ActivateAgent(id string) error {
	return m.SetAgentStatus(id, StatusActive)
}

// DeactivateAgent sets the agent's status to idle.
func (m *Manager) DeactivateAgent(id string) error {
	return m.SetAgentStatus(id, StatusIdle)
}

// SetAgentStatus assigns an arbitrary status to the agent.
func (m *Manager) SetAgentStatus(id string, s Status) error {
	a, err := m.GetAgent(id)
	if err != nil {
		return err
	}
	m.setStatus(a, s)
	return nil
}

func (m *Manager) setStatus(a *Agent, s Status) {
	prev := a.Status()
	a.SetStatus(s)
	if prev == s {
		return
	}

	m.logger.Debug("agent status changed",
		"agent_id", a.ID(),
		"from", prev,
		"to", s,
	)
	m.emit(context.Background(), Event{
		Kind:     EventStatusChanged,
		AgentID:  a.ID(),
		Status:   s,
		Previous: string(prev),
	})
}

// ToggleAllAgents changes every agent's status according to the toggle mode.
func (m *Manager) ToggleAllAgents() {
	agents := m.ListAgents()
	if len(agents) == 0 {
		return
	}

	switch m.toggleMode {
	case ToggleMajority:
		active := 0
		for _, a := range agents {
			if a.IsActive() {
				active++
			}
		}
		target := StatusActive
		if active > len(agents)/2 {
			target = StatusIdle
		}
		for _, a := range agents {
			m.setStatus(a, target)
		}
	default:
		for _, a := range agents {
			if a.IsActive() {
				m.setStatus(a, StatusIdle)
			} else {
				m.setStatus(a, StatusActive)
			}
		}
	}

	m.logger.Info("=== AGENTS TOGGLED ===",
		"mode", m.toggleMode,
		"total_agents", len(agents),
	)
}

// resolveInterface returns the first interface with id across all chains.
func (m *Manager) resolveInterface(id string) (*chain.Interface, *chain.Chain, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	iface, c, ok := m.findInterfaceLocked(id)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s in any chain", chain.ErrInterfaceNotFound, id)
	}
	return iface, c, nil
}

// RegisterCommand stores handler under name on the interface with interfaceID.
func (m *Manager) RegisterCommand(interfaceID, name string, handler chain.Handler) error {
	iface, c, err := m.resolveInterface(interfaceID)
	if err != nil {
		return err
	}
	iface.RegisterCommand(name, handler)

	m.logger.Debug("command registered",
		"interface_id", interfaceID,
		"command", name,
	)
	m.emit(context.Background(), Event{
		Kind:        EventCommandRegistered,
		InterfaceID: interfaceID,
		ChainID:     c.ID(),
		Command:     name,
	})
	return nil
}

// ExecuteCommand runs the named command on the interface with interfaceID
// and returns the handler's result and error unchanged.
func (m *Manager) ExecuteCommand(ctx context.Context, interfaceID, name string, args ...any) (any, error) {
	iface, c, err := m.resolveInterface(interfaceID)
	if err != nil {
		return nil, err
	}
	agentID, _ := iface.AttachedAgent()

	ctx, span := m.tracer.Start(ctx, "agent.execute_command",
		trace.WithAttributes(
			attribute.String("chain.id", c.ID()),
			attribute.String("interface.id", interfaceID),
			attribute.String("command.name", name),
			attribute.String("agent.id", agentID),
			attribute.Int("command.args", len(args)),
		),
	)
	defer span.End()

	start := m.now()
	result, err := iface.ExecuteCommand(ctx, name, args...)
	elapsed := m.now().Sub(start)

	ev := Event{
		Kind:        EventCommandExecuted,
		AgentID:     agentID,
		InterfaceID: interfaceID,
		ChainID:     c.ID(),
		Command:     name,
		Duration:    elapsed,
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		ev.Kind = EventCommandFailed
		ev.Err = err
		m.logger.Warn("command failed",
			"interface_id", interfaceID,
			"command", name,
			"error", err,
		)
	} else {
		span.SetStatus(codes.Ok, "")
		m.logger.Debug("command executed",
			"interface_id", interfaceID,
			"command", name,
			"duration", elapsed,
		)
	}
	m.emit(ctx, ev)
	return result, err
}

// emit notifies observers. Never called with m.mu held.
func (m *Manager) emit(ctx context.Context, ev Event) {
	if len(m.observers) == 0 {
		return
	}
	if ev.Time.IsZero() {
		ev.Time = m.now()
	}
	for _, o := range m.observers {
		o.Observe(ctx, ev)
	}
}
