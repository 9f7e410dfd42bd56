// ABOUTME: Ordered pipeline of interfaces with an id index kept in sync.
// ABOUTME: Insertion order is traversal order and defines the pipeline.

package chain

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"sync"

	"github.com/2389/chainmgr/internal/fault"
)

// ErrInterfaceNotFound indicates no interface with the id exists in the chain.
var ErrInterfaceNotFound = fault.New("interface not found", fault.ErrNotFound)

// ErrDuplicateInterfaceID indicates the chain already holds an interface with the id.
var ErrDuplicateInterfaceID = fault.New("duplicate interface id", fault.ErrDuplicateID)

// ErrInterfaceOwned indicates the interface already belongs to a chain.
var ErrInterfaceOwned = errors.New("interface already belongs to a chain")

// ErrNilInterface indicates a nil interface was passed to AddInterface.
var ErrNilInterface = errors.New("interface is nil")

// Chain is an ordered sequence of interfaces. Interface ids are unique
// within a chain, not across chains.
type Chain struct {
	id    string
	index int

	mu    sync.RWMutex
	label string
	order []*Interface
	byID  map[string]int // interface id -> position in order
}

// New creates an empty chain. index is the 1-based creation ordinal used
// for display.
func New(id string, index int) *Chain {
	return &Chain{
		id:    id,
		index: index,
		byID:  make(map[string]int),
	}
}

// ID returns the chain id.
func (c *Chain) ID() string { return c.id }

// Index returns the 1-based creation ordinal.
func (c *Chain) Index() int { return c.index }

// Label returns the optional display label.
func (c *Chain) Label() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.label
}

// SetLabel sets the display label.
func (c *Chain) SetLabel(label string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.label = label
}

// AddInterface appends iface to the end of the chain.
// Returns ErrDuplicateInterfaceID if the id is already present and
// ErrInterfaceOwned if iface was added to a chain before.
func (c *Chain) AddInterface(iface *Interface) error {
	if iface == nil {
		return ErrNilInterface
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.byID[iface.ID()]; exists {
		return fmt.Errorf("%w: %s in chain %s", ErrDuplicateInterfaceID, iface.ID(), c.id)
	}
	if !iface.claim(c.id) {
		owner, _ := iface.ChainID()
		return fmt.Errorf("%w: %s is in chain %s", ErrInterfaceOwned, iface.ID(), owner)
	}

	c.byID[iface.ID()] = len(c.order)
	c.order = append(c.order, iface)
	return nil
}

// GetInterface returns the interface with id.
func (c *Chain) GetInterface(id string) (*Interface, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	pos, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s in chain %s", ErrInterfaceNotFound, id, c.id)
	}
	return c.order[pos], nil
}

// Contains reports whether the chain holds an interface with id.
func (c *Chain) Contains(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.byID[id]
	return ok
}

// Len returns the number of interfaces.
func (c *Chain) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

// Interfaces returns a copy of the interfaces in order.
func (c *Chain) Interfaces() []*Interface {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.order)
}

// Traverse yields the interfaces in insertion order. Each call takes a
// fresh copy, so the sequence can be restarted and later additions do not
// affect an iteration already in progress.
func (c *Chain) Traverse() iter.Seq[*Interface] {
	return func(yield func(*Interface) bool) {
		for _, iface := range c.Interfaces() {
			if !yield(iface) {
				return
			}
		}
	}
}

// Head returns the first interface.
func (c *Chain) Head() (*Interface, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.order) == 0 {
		return nil, false
	}
	return c.order[0], true
}

// Tail returns the last interface.
func (c *Chain) Tail() (*Interface, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.order) == 0 {
		return nil, false
	}
	return c.order[len(c.order)-1], true
}

// Next returns the interface after id. False when id is the tail or unknown.
func (c *Chain) Next(id string) (*Interface, bool) {
	return c.neighbor(id, 1)
}

// Prev returns the interface before id. False when id is the head or unknown.
func (c *Chain) Prev(id string) (*Interface, bool) {
	return c.neighbor(id, -1)
}

func (c *Chain) neighbor(id string, step int) (*Interface, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	pos, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	pos += step
	if pos < 0 || pos >= len(c.order) {
		return nil, false
	}
	return c.order[pos], true
}
