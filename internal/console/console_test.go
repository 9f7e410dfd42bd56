package console

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/chainmgr/internal/agent"
	"github.com/2389/chainmgr/internal/builtins"
	"github.com/2389/chainmgr/internal/config"
	"github.com/2389/chainmgr/internal/render"
	"github.com/2389/chainmgr/internal/seed"
	"github.com/2389/chainmgr/internal/store"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// seeded builds a manager from the default topology, optionally journaled.
func seeded(t *testing.T, opts ...agent.ManagerOption) *agent.Manager {
	t.Helper()
	m := agent.NewManager(testLogger(), opts...)
	reg := builtins.NewRegistry(testLogger())
	require.NoError(t, builtins.RegisterAll(reg, m))
	_, err := seed.Apply(m, config.DefaultTopology(), reg)
	require.NoError(t, err)
	return m
}

// session runs the console over script and returns its output.
func session(t *testing.T, m *agent.Manager, script string, opts ...Option) string {
	t.Helper()
	var buf bytes.Buffer
	c := New(m, render.New(&buf), strings.NewReader(script), testLogger(), opts...)
	require.NoError(t, c.Run(context.Background()))
	return buf.String()
}

func status(t *testing.T, m *agent.Manager, id string) agent.Status {
	t.Helper()
	a, err := m.GetAgent(id)
	require.NoError(t, err)
	return a.Status()
}

func TestRun_Quit(t *testing.T) {
	m := seeded(t)
	out := session(t, m, "q\n")

	assert.Contains(t, out, "INTERFACE CHAIN #1: Data Pipeline")
	assert.Contains(t, out, "[1] Activate Agent")
	assert.Contains(t, out, "✓ "+shutdownMessage)
	assert.Equal(t, 1, strings.Count(out, "REGISTERED AGENTS"))
}

func TestRun_QuitIsCaseInsensitive(t *testing.T) {
	out := session(t, seeded(t), "Q\n")
	assert.Contains(t, out, shutdownMessage)
}

func TestRun_EOF(t *testing.T) {
	out := session(t, seeded(t), "")
	assert.Contains(t, out, "✓ "+shutdownMessage)
}

func TestRun_EOFMidPrompt(t *testing.T) {
	m := seeded(t)
	out := session(t, m, "1\n")
	assert.Contains(t, out, "Enter agent ID to activate: ")
	assert.Contains(t, out, shutdownMessage)
	assert.Equal(t, agent.StatusIdle, status(t, m, "a1"))
}

func TestRun_ActivateDeactivate(t *testing.T) {
	m := seeded(t)
	out := session(t, m, "1\na3\n\n2\na1\n\n1\nghost\n\nq\n")

	assert.Contains(t, out, "✓ Agent a3 activated")
	assert.Contains(t, out, "✓ Agent a1 deactivated")
	assert.Contains(t, out, "✗ Agent ghost not found")

	assert.Equal(t, agent.StatusActive, status(t, m, "a3"))
	assert.Equal(t, agent.StatusIdle, status(t, m, "a1"))
}

func TestRun_Statistics(t *testing.T) {
	out := session(t, seeded(t), "3\n\nq\n")
	assert.Contains(t, out, "SYSTEM STATISTICS")
	assert.Contains(t, out, "Total Agents:           5")
	assert.Contains(t, out, "Total Interfaces:       5")
	assert.Contains(t, out, "Press Enter to return...")
}

func TestRun_ToggleAll(t *testing.T) {
	m := seeded(t)
	out := session(t, m, "4\n\nq\n")

	assert.Contains(t, out, "✓ All agents toggled")
	assert.Equal(t, 5, m.Stats().ActiveAgents)
}

func TestRun_RefreshAndInvalid(t *testing.T) {
	out := session(t, seeded(t), "5\nzzz\n\nq\n")

	assert.Contains(t, out, "✗ Invalid choice")
	// initial view, after refresh, after invalid choice
	assert.Equal(t, 3, strings.Count(out, "REGISTERED AGENTS"))
}

func TestRun_ExecuteCommand(t *testing.T) {
	m := seeded(t)
	out := session(t, m,
		"6\ni2\ndouble\n21\n\n"+
			"6\ni2\nprocess\n\"sample data\"\n\n"+
			"6\ni1\nprocess\nx\n\n"+
			"6\ni9\necho\n\n\n"+
			"q\n")

	assert.Contains(t, out, "✓ double → 42")
	assert.Contains(t, out, "✓ process → Processed: sample data")
	assert.Contains(t, out, "✗ process on i1 failed:")
	assert.Contains(t, out, "✗ echo on i9 failed:")
}

func TestRun_AuditLog(t *testing.T) {
	journal, err := store.NewSQLiteStore(store.MemoryPath, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { journal.Close() })

	m := seeded(t, agent.WithObserver(store.NewAuditObserver(journal, testLogger())))
	out := session(t, m, "1\na3\n\n7\n\nq\n", WithJournal(journal, 5))

	assert.Contains(t, out, "AUDIT LOG")
	assert.Contains(t, out, "status_changed")
	assert.Contains(t, out, "agent=a3")

	section := out[strings.LastIndex(out, "AUDIT LOG"):]
	section = section[:strings.Index(section, "Press Enter to continue...")]
	assert.Equal(t, 5, strings.Count(section, "\n  "))
}

func TestRun_AuditLogDisabled(t *testing.T) {
	out := session(t, seeded(t), "7\n\nq\n")
	assert.Contains(t, out, "✗ Audit journal is disabled")
}

func TestRun_ContextCanceled(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	var buf bytes.Buffer
	c := New(seeded(t), render.New(&buf), pr, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("console did not stop on cancel")
	}
	assert.Contains(t, buf.String(), shutdownMessage)
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		in   string
		want []any
	}{
		{"", nil},
		{"   ", nil},
		{"21", []any{21}},
		{"1 2.5 x", []any{1, 2.5, "x"}},
		{`"sample data"`, []any{"sample data"}},
		{`""`, []any{""}},
		{"hello world", []any{"hello", "world"}},
		{`"a" "b"`, []any{"a", "b"}},
		{`"sample data" 3`, []any{"sample data", 3}},
		{`"42"`, []any{"42"}},
		{"x\t7", []any{"x", 7}},
		{`"open ended`, []any{"open ended"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseArgs(tt.in))
		})
	}
}

// endless yields "5\n" forever, so a reader that is never stopped keeps
// producing lines.
type endless struct{}

func (endless) Read(p []byte) (int, error) {
	for i := range p {
		if i%2 == 0 {
			p[i] = '5'
		} else {
			p[i] = '\n'
		}
	}
	return len(p) - len(p)%2, nil
}

func TestScanLines_StopsWhenDone(t *testing.T) {
	done := make(chan struct{})
	lines := scanLines(endless{}, done)

	assert.Equal(t, "5", <-lines)
	close(done)

	drained := make(chan int, 1)
	go func() {
		n := 0
		for range lines {
			n++
		}
		drained <- n
	}()
	select {
	case n := <-drained:
		assert.LessOrEqual(t, n, 1, "at most one line in flight after done")
	case <-time.After(5 * time.Second):
		t.Fatal("reader kept sending after done was closed")
	}
}

func TestRun_ReleasesReaderOnQuit(t *testing.T) {
	var buf bytes.Buffer
	in := io.MultiReader(strings.NewReader("q\n"), endless{})
	c := New(seeded(t), render.New(&buf), in, testLogger())
	require.NoError(t, c.Run(context.Background()))

	drained := make(chan struct{})
	go func() {
		for range c.lines {
		}
		close(drained)
	}()
	select {
	case <-drained:
	case <-time.After(5 * time.Second):
		t.Fatal("reader still running after Run returned")
	}
}
