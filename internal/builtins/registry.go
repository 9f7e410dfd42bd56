// ABOUTME: Registry of named built-in command handlers grouped into packs.
// ABOUTME: Installs handlers onto interfaces by name; names are unique across packs.

package builtins

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/2389/chainmgr/internal/chain"
	"github.com/2389/chainmgr/internal/fault"
)

// ErrUnknownCommand indicates no built-in command has the name.
var ErrUnknownCommand = fault.New("unknown builtin command", fault.ErrNotFound)

// ErrCommandCollision indicates a command name already exists in another pack.
var ErrCommandCollision = fault.New("builtin command collision", fault.ErrDuplicateID)

// ErrNilInterface indicates Install was given a nil interface.
var ErrNilInterface = errors.New("interface is nil")

// Command is a named handler with a one-line description.
type Command struct {
	Name        string
	Description string
	Handler     chain.Handler
}

// Pack is a collection of commands with a pack ID.
type Pack struct {
	ID       string
	Commands []*Command
}

type entry struct {
	cmd    *Command
	packID string
}

// Registry resolves command names to handlers.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]*entry
	packs    []string
	logger   *slog.Logger
}

// NewRegistry creates an empty Registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		commands: make(map[string]*entry),
		logger:   logger.With("component", "builtins"),
	}
}

// RegisterPack adds every command in pack.
// Returns ErrCommandCollision if any name is already registered; nothing
// from the pack is added in that case.
func (r *Registry) RegisterPack(pack *Pack) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, cmd := range pack.Commands {
		if existing, ok := r.commands[cmd.Name]; ok {
			return fmt.Errorf("%w: %q already registered by pack %q",
				ErrCommandCollision, cmd.Name, existing.packID)
		}
	}

	for _, cmd := range pack.Commands {
		r.commands[cmd.Name] = &entry{cmd: cmd, packID: pack.ID}
	}
	r.packs = append(r.packs, pack.ID)

	r.logger.Debug("builtin pack registered",
		"pack_id", pack.ID,
		"command_count", len(pack.Commands),
	)
	return nil
}

// Lookup returns the command registered under name.
func (r *Registry) Lookup(name string) (*Command, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.commands[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	return e.cmd, nil
}

// Has reports whether name is a registered command.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.commands[name]
	return ok
}

// Names returns all command names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Packs returns registered pack IDs in registration order.
func (r *Registry) Packs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.packs...)
}

// Install registers the named commands on iface. Every name is resolved
// before any handler is installed, so an unknown name leaves iface unchanged.
func (r *Registry) Install(iface *chain.Interface, names ...string) error {
	if iface == nil {
		return ErrNilInterface
	}

	cmds := make([]*Command, 0, len(names))
	for _, name := range names {
		cmd, err := r.Lookup(name)
		if err != nil {
			return err
		}
		cmds = append(cmds, cmd)
	}
	for _, cmd := range cmds {
		iface.RegisterCommand(cmd.Name, cmd.Handler)
	}
	return nil
}
