// ABOUTME: Error kinds shared by the chain and agent packages.
// ABOUTME: Specific sentinels wrap these so callers can match on the kind alone.

// Package fault defines the broad error kinds of the orchestration core.
//
// Every lookup miss in the core wraps ErrNotFound and every id collision
// wraps ErrDuplicateID:
//
//	if errors.Is(err, fault.ErrNotFound) {
//	    // agent, interface, chain, command or metadata key missing
//	}
//
// Handler failures are not wrapped. A command handler's own error reaches
// the caller unchanged.
package fault

import "errors"

// ErrNotFound indicates a lookup by id or name found nothing.
var ErrNotFound = errors.New("not found")

// ErrDuplicateID indicates an id is already taken in its scope.
var ErrDuplicateID = errors.New("duplicate id")

// kindError is a sentinel carrying its own message and a broader kind.
type kindError struct {
	msg  string
	kind error
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

// New returns a sentinel error with msg that also matches kind under errors.Is.
func New(msg string, kind error) error {
	return &kindError{msg: msg, kind: kind}
}
