// ABOUTME: Tests for audit log store operations
// ABOUTME: Covers Append and List with filtering for the audit_log table

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestAuditStore_Append(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	entry := &AuditEntry{
		Kind:        "command_executed",
		AgentID:     "a2",
		InterfaceID: "i2",
		Command:     "process",
		Duration:    1500 * time.Microsecond,
		Detail:      map[string]any{"args": "sample data"},
	}

	err := store.AppendAuditLog(ctx, entry)
	require.NoError(t, err)

	// Should have generated ID, sequence and timestamp
	assert.NotEmpty(t, entry.ID)
	assert.Positive(t, entry.Seq)
	assert.False(t, entry.Timestamp.IsZero())

	entries, err := store.ListAuditLog(ctx, AuditFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	got := entries[0]
	assert.Equal(t, entry.ID, got.ID)
	assert.Equal(t, "process", got.Command)
	assert.Equal(t, 1500*time.Microsecond, got.Duration)
	assert.Equal(t, "sample data", got.Detail["args"])
	assert.True(t, entry.Timestamp.Equal(got.Timestamp))
}

func TestAuditStore_List_NoFilter(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	// Same timestamp for all; order comes from the sequence
	ts := time.Now().UTC()
	for _, kind := range []string{"agent_registered", "agent_attached", "status_changed"} {
		require.NoError(t, store.AppendAuditLog(ctx, &AuditEntry{Kind: kind, AgentID: "a1", Timestamp: ts}))
	}

	entries, err := store.ListAuditLog(ctx, AuditFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Should be newest first
	assert.Equal(t, "status_changed", entries[0].Kind)
	assert.Equal(t, "agent_registered", entries[2].Kind)
	assert.Greater(t, entries[0].Seq, entries[1].Seq)
}

func TestAuditStore_List_Empty(t *testing.T) {
	store := setupTestStore(t)

	entries, err := store.ListAuditLog(context.Background(), AuditFilter{})
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestAuditStore_List_Filters(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	seed := []AuditEntry{
		{Kind: "agent_attached", AgentID: "a1", InterfaceID: "i1", Timestamp: base},
		{Kind: "agent_attached", AgentID: "a2", InterfaceID: "i2", Timestamp: base.Add(time.Second)},
		{Kind: "command_executed", AgentID: "a2", InterfaceID: "i2", Command: "double", Timestamp: base.Add(2 * time.Second)},
		{Kind: "command_failed", AgentID: "a1", InterfaceID: "i1", Command: "validate", Error: "invalid", Timestamp: base.Add(3 * time.Second)},
	}
	for i := range seed {
		require.NoError(t, store.AppendAuditLog(ctx, &seed[i]))
	}

	since := base.Add(2 * time.Second)

	tests := []struct {
		name   string
		filter AuditFilter
		want   []string // commands or kinds, newest first
	}{
		{"by kind", AuditFilter{Kind: strPtr("agent_attached")}, []string{"agent_attached", "agent_attached"}},
		{"by agent", AuditFilter{AgentID: strPtr("a1")}, []string{"command_failed", "agent_attached"}},
		{"by interface", AuditFilter{InterfaceID: strPtr("i2")}, []string{"command_executed", "agent_attached"}},
		{"by since", AuditFilter{Since: &since}, []string{"command_failed", "command_executed"}},
		{"combined", AuditFilter{Kind: strPtr("agent_attached"), AgentID: strPtr("a2")}, []string{"agent_attached"}},
		{"limit", AuditFilter{Limit: 1}, []string{"command_failed"}},
		{"no match", AuditFilter{AgentID: strPtr("ghost")}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := store.ListAuditLog(ctx, tt.filter)
			require.NoError(t, err)

			kinds := make([]string, 0, len(entries))
			for _, e := range entries {
				kinds = append(kinds, e.Kind)
			}
			assert.Equal(t, tt.want, kinds)
		})
	}
}

func TestAuditStore_ErrorField(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AppendAuditLog(ctx, &AuditEntry{
		Kind:    "command_failed",
		Command: "validate",
		Error:   errors.New("invalid arguments").Error(),
	}))

	entries, err := store.ListAuditLog(ctx, AuditFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "invalid arguments", entries[0].Error)
	assert.Nil(t, entries[0].Detail)
}

func TestNormalizeAuditLimit(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 100},
		{-5, 100},
		{20, 20},
		{1000, 1000},
		{5000, 1000},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeAuditLimit(tt.in), "limit %d", tt.in)
	}
}
