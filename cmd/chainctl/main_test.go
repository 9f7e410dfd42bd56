package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/chainmgr/internal/config"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// isolate keeps the user's real config out of the test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvPath, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	isolate(t)

	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "chainctl dev\n", out)
}

func TestVersion_IgnoresBrokenConfig(t *testing.T) {
	_, _, err := run(t, "", "--config", "/does/not/exist.yaml", "version")
	assert.NoError(t, err)
}

func TestDemo(t *testing.T) {
	out, _, err := run(t, "", "demo")
	require.NoError(t, err)

	assert.Contains(t, out, "[active] Analyzer (ID: a2)")
	assert.Contains(t, out, "[i2] ProcessingInterface → Analyzer")
	assert.Contains(t, out, "✓ Interface chain established")
}

func TestShowcase(t *testing.T) {
	out, _, err := run(t, "", "showcase")
	require.NoError(t, err)

	assert.Contains(t, out, "DEMO 1: Basic Interface Chain")
	assert.Contains(t, out, "DEMO 4: Scalability")
	assert.Contains(t, out, "Key Takeaways:")
	assert.NotContains(t, out, "Press Enter")
}

func TestShowcase_Pause(t *testing.T) {
	out, _, err := run(t, "\n\n\n\n", "showcase", "--pause")
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(out, "Press Enter to start demonstrations..."))
	assert.Equal(t, 3, strings.Count(out, "Press Enter for next demo..."))
}

func TestStats(t *testing.T) {
	out, _, err := run(t, "", "stats")
	require.NoError(t, err)

	assert.Contains(t, out, "Total Agents:           5")
	assert.Contains(t, out, "Attached Agents:        5")
	assert.Contains(t, out, "Chain #1 (Data Pipeline)")
	assert.Contains(t, out, "3 interfaces, 3 attached, 0 unattached, 0 active")
	assert.Contains(t, out, "Chain #2 (Oversight)")
}

func TestInteractive_Quit(t *testing.T) {
	out, _, err := run(t, "q\n", "interactive")
	require.NoError(t, err)

	// a1, a2 and a4 start active
	assert.Contains(t, out, "● DataCollector (ID: a1)")
	assert.Contains(t, out, "● Monitor (ID: a4)")
	assert.Contains(t, out, "○ Reporter (ID: a3)")
	assert.Contains(t, out, "✓ Shutting down agent interface chain manager...")
}

func TestInteractive_AuditLog(t *testing.T) {
	out, _, err := run(t, "7\n\nq\n", "interactive")
	require.NoError(t, err)

	assert.Contains(t, out, "AUDIT LOG")
	assert.Contains(t, out, "status_changed")
}

func TestInteractive_AuditDisabled(t *testing.T) {
	path := writeConfig(t, "config.yaml", "audit:\n  enabled: false\n")
	out, _, err := run(t, "7\n\nq\n", "--config", path, "interactive")
	require.NoError(t, err)
	assert.Contains(t, out, "✗ Audit journal is disabled")
}

func TestInteractive_MajorityToggleAndTracing(t *testing.T) {
	path := writeConfig(t, "config.toml", `
[manager]
toggle_mode = "majority"

[tracing]
enabled = true
exporter = "stdout"

[logging]
level = "error"
`)
	// 3 of 5 active is a majority, so toggling sends everyone idle
	out, stderr, err := run(t, "4\n\n3\n\n6\ni2\ndouble\n21\n\nq\n", "--config", path, "interactive")
	require.NoError(t, err)

	assert.Contains(t, out, "✓ All agents toggled")
	assert.Contains(t, out, "Active Agents:          0")
	assert.Contains(t, out, "✓ double → 42")
	assert.Contains(t, stderr, "agent.execute_command")
}

func TestFlagOverridesAreValidated(t *testing.T) {
	_, _, err := run(t, "", "--log-level", "loud", "stats")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
}

func TestMissingConfigFile(t *testing.T) {
	_, _, err := run(t, "", "--config", filepath.Join(t.TempDir(), "nope.yaml"), "stats")
	require.Error(t, err)
}

func TestJSONLogging(t *testing.T) {
	_, stderr, err := run(t, "", "--log-format", "json", "--log-level", "info", "stats")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	require.NotEmpty(t, lines)
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.NotEmpty(t, rec["msg"])
}

func TestVisualize(t *testing.T) {
	out, _, err := run(t, "", "visualize")
	require.NoError(t, err)
	assert.Contains(t, out, "SINGLE INTERFACE ARCHITECTURE (RISKY)")
}
