// ABOUTME: A single control point in a chain: one agent slot plus named commands.
// ABOUTME: Commands run outside the lock and their results are returned unchanged.

package chain

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/2389/chainmgr/internal/fault"
)

// ErrCommandNotFound indicates no handler is registered under the command name.
var ErrCommandNotFound = fault.New("command not found", fault.ErrNotFound)

// ErrInvalidArguments indicates a handler adapter received arguments it cannot use.
var ErrInvalidArguments = errors.New("invalid command arguments")

// Handler executes a named command against arbitrary input.
type Handler func(ctx context.Context, args ...any) (any, error)

// Unary adapts a single-input function. It fails with ErrInvalidArguments
// unless exactly one argument is supplied.
func Unary(fn func(any) (any, error)) Handler {
	return func(_ context.Context, args ...any) (any, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: want 1 argument, got %d", ErrInvalidArguments, len(args))
		}
		return fn(args[0])
	}
}

// StringFunc adapts a string transform. The single argument must be a string.
func StringFunc(fn func(string) string) Handler {
	return Unary(func(v any) (any, error) {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: want string, got %T", ErrInvalidArguments, v)
		}
		return fn(s), nil
	})
}

// Interface is a named control point holding at most one attached agent id
// and a set of command handlers. The interface does not own the agent.
type Interface struct {
	id   string
	name string

	mu       sync.RWMutex
	chainID  string // owning chain, set once by Chain.AddInterface
	agentID  string
	commands map[string]Handler
}

// NewInterface creates an interface with no agent and no commands.
func NewInterface(id, name string) *Interface {
	return &Interface{
		id:       id,
		name:     name,
		commands: make(map[string]Handler),
	}
}

// ID returns the interface id.
func (i *Interface) ID() string { return i.id }

// Name returns the display label.
func (i *Interface) Name() string { return i.name }

// ChainID returns the id of the chain holding the interface, if any.
func (i *Interface) ChainID() (string, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.chainID, i.chainID != ""
}

// claim records chainID as the owner. It fails if another chain owns the
// interface already.
func (i *Interface) claim(chainID string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.chainID != "" {
		return false
	}
	i.chainID = chainID
	return true
}

// AttachedAgent returns the id of the attached agent, if any.
func (i *Interface) AttachedAgent() (string, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.agentID, i.agentID != ""
}

// Bind records agentID as the attached agent and returns the id it replaced.
// Reserved for agent.Manager, which keeps the authoritative attachment view
// and ignores binds it did not make.
func (i *Interface) Bind(agentID string) (previous string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	previous, i.agentID = i.agentID, agentID
	return previous
}

// Unbind clears the attachment and returns the id that was attached.
// Reserved for agent.Manager.
func (i *Interface) Unbind() (previous string) {
	return i.Bind("")
}

// RegisterCommand stores handler under name, replacing any existing handler.
// A nil handler is ignored.
func (i *Interface) RegisterCommand(name string, handler Handler) {
	if handler == nil {
		return
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	i.commands[name] = handler
}

// HasCommand reports whether a handler is registered under name.
func (i *Interface) HasCommand(name string) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	_, ok := i.commands[name]
	return ok
}

// Commands returns the registered command names in sorted order.
func (i *Interface) Commands() []string {
	i.mu.RLock()
	defer i.mu.RUnlock()

	names := make([]string, 0, len(i.commands))
	for name := range i.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ExecuteCommand runs the handler registered under name with args.
// Returns ErrCommandNotFound if name is not registered. The handler's
// result and error are returned as-is.
func (i *Interface) ExecuteCommand(ctx context.Context, name string, args ...any) (any, error) {
	i.mu.RLock()
	handler, ok := i.commands[name]
	i.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q on interface %s", ErrCommandNotFound, name, i.id)
	}
	return handler(ctx, args...)
}
