// ABOUTME: Tests for error kinds and kinded sentinels.
// ABOUTME: Verifies errors.Is matching through wrapping layers.

package fault

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_MatchesKind(t *testing.T) {
	errThing := New("thing not found", ErrNotFound)

	assert.Equal(t, "thing not found", errThing.Error())
	assert.ErrorIs(t, errThing, ErrNotFound)
	assert.NotErrorIs(t, errThing, ErrDuplicateID)
}

func TestNew_WrappedSentinel(t *testing.T) {
	errThing := New("thing already exists", ErrDuplicateID)
	wrapped := fmt.Errorf("%w: %s", errThing, "t-1")

	assert.Equal(t, "thing already exists: t-1", wrapped.Error())
	assert.True(t, errors.Is(wrapped, errThing))
	assert.True(t, errors.Is(wrapped, ErrDuplicateID))
}

func TestNew_DistinctSentinels(t *testing.T) {
	a := New("a not found", ErrNotFound)
	b := New("b not found", ErrNotFound)

	assert.NotErrorIs(t, a, b)
	assert.NotErrorIs(t, b, a)
}
