// ABOUTME: Tests for the builtin registry and the command packs.
// ABOUTME: Covers collisions, install atomicity and handler behaviour.

package builtins

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/chainmgr/internal/agent"
	"github.com/2389/chainmgr/internal/chain"
	"github.com/2389/chainmgr/internal/fault"
)

type fixedStats agent.Stats

func (f fixedStats) Stats() agent.Stats { return agent.Stats(f) }

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	reg := NewRegistry(slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, RegisterAll(reg, fixedStats{TotalAgents: 5, ActiveAgents: 3, IdleAgents: 2, TotalChains: 2, TotalInterfaces: 5, AttachedAgents: 5}))
	return reg
}

func run(t *testing.T, reg *Registry, name string, args ...any) (any, error) {
	t.Helper()
	cmd, err := reg.Lookup(name)
	require.NoError(t, err)
	return cmd.Handler(context.Background(), args...)
}

func TestRegistry(t *testing.T) {
	reg := newTestRegistry(t)

	assert.Equal(t, []string{"add", "double", "echo", "process", "status", "transform", "validate"}, reg.Names())
	assert.Equal(t, StandardNames(), reg.Names())
	assert.Equal(t, []string{"builtin:pipeline", "builtin:utility", "builtin:status"}, reg.Packs())
	assert.True(t, reg.Has("process"))
	assert.False(t, reg.Has("launch"))

	_, err := reg.Lookup("launch")
	assert.ErrorIs(t, err, ErrUnknownCommand)
	assert.ErrorIs(t, err, fault.ErrNotFound)
}

func TestRegistryCollision(t *testing.T) {
	reg := newTestRegistry(t)

	err := reg.RegisterPack(&Pack{
		ID: "custom",
		Commands: []*Command{
			{Name: "fresh", Handler: echo},
			{Name: "process", Handler: echo},
		},
	})
	assert.ErrorIs(t, err, ErrCommandCollision)
	assert.ErrorIs(t, err, fault.ErrDuplicateID)
	assert.False(t, reg.Has("fresh"), "nothing from a colliding pack is added")
}

func TestInstall(t *testing.T) {
	reg := newTestRegistry(t)

	t.Run("installs named handlers", func(t *testing.T) {
		iface := chain.NewInterface("i2", "Processing")
		require.NoError(t, reg.Install(iface, "process", "validate"))
		assert.Equal(t, []string{"process", "validate"}, iface.Commands())

		out, err := iface.ExecuteCommand(context.Background(), "process", "x")
		require.NoError(t, err)
		assert.Equal(t, "Processed: x", out)
	})

	t.Run("unknown name leaves interface unchanged", func(t *testing.T) {
		iface := chain.NewInterface("i2", "Processing")
		err := reg.Install(iface, "process", "launch")
		assert.ErrorIs(t, err, ErrUnknownCommand)
		assert.Empty(t, iface.Commands())
	})

	t.Run("nil interface", func(t *testing.T) {
		assert.ErrorIs(t, reg.Install(nil, "process"), ErrNilInterface)
	})
}

func TestPipelineCommands(t *testing.T) {
	reg := newTestRegistry(t)

	tests := []struct {
		name string
		cmd  string
		arg  any
		want any
	}{
		{"process", "process", "sample data", "Processed: sample data"},
		{"validate non-empty", "validate", "sample data", true},
		{"validate empty", "validate", "", false},
		{"transform", "transform", "sample data", "SAMPLE DATA"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, reg, tt.cmd, tt.arg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}

	_, err := run(t, reg, "validate", 42)
	assert.ErrorIs(t, err, chain.ErrInvalidArguments)
}

func TestUtilityCommands(t *testing.T) {
	reg := newTestRegistry(t)

	tests := []struct {
		name string
		cmd  string
		args []any
		want any
	}{
		{"double int", "double", []any{5}, 10},
		{"double float", "double", []any{1.5}, 3.0},
		{"double string", "double", []any{" 21 "}, 42},
		{"add ints", "add", []any{3, 7}, 10},
		{"add strings", "add", []any{"3", "7"}, 10},
		{"add mixed", "add", []any{1, 0.5, "2"}, 3.5},
		{"echo one", "echo", []any{"hi"}, "hi"},
		{"echo many", "echo", []any{"a", 1}, []any{"a", 1}},
		{"echo none", "echo", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, reg, tt.cmd, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}

	t.Run("bad input", func(t *testing.T) {
		_, err := run(t, reg, "double", "five")
		assert.ErrorIs(t, err, chain.ErrInvalidArguments)

		_, err = run(t, reg, "add", 1)
		assert.ErrorIs(t, err, chain.ErrInvalidArguments)

		_, err = run(t, reg, "double")
		assert.ErrorIs(t, err, chain.ErrInvalidArguments)
	})
}

func TestStatusCommand(t *testing.T) {
	reg := newTestRegistry(t)

	out, err := run(t, reg, "status")
	require.NoError(t, err)
	assert.Equal(t, "5 agents (3 active, 2 idle), 2 chains, 5 interfaces, 5 attached", out)
}

func TestStatusCommandLive(t *testing.T) {
	mgr := agent.NewManager(slog.New(slog.NewTextHandler(io.Discard, nil)))
	reg := NewRegistry(nil)
	require.NoError(t, reg.RegisterPack(StatusPack(mgr)))

	require.NoError(t, mgr.RegisterAgent(agent.New("a1", "Solo", agent.WithStatus(agent.StatusActive))))

	out, err := run(t, reg, "status")
	require.NoError(t, err)
	assert.Equal(t, "1 agents (1 active, 0 idle), 0 chains, 0 interfaces, 0 attached", out)
}
