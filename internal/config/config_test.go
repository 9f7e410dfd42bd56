// ABOUTME: Tests for configuration loading and parsing
// ABOUTME: Covers YAML and TOML loading, env var expansion, path resolution and validation

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
logging:
  level: "debug"
  format: "json"

manager:
  toggle_mode: "majority"

metrics:
  enabled: true
  addr: "127.0.0.1:0"

showcase:
  pause: "250ms"

topology:
  agents:
    - id: x1
      name: Solo
      metadata:
        priority: high
  chains:
    - name: Only
      interfaces:
        - id: c1
          name: Control
          agent: x1
          commands: [process, status]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if cfg.Manager.ToggleMode != "majority" {
		t.Errorf("Manager.ToggleMode = %q, want majority", cfg.Manager.ToggleMode)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Path != "/metrics" {
		t.Errorf("Metrics = %+v, want enabled with default path", cfg.Metrics)
	}
	if cfg.Showcase.Pause != 250*time.Millisecond {
		t.Errorf("Showcase.Pause = %v, want 250ms", cfg.Showcase.Pause)
	}
	if !cfg.Audit.Enabled || cfg.Audit.Path != ":memory:" {
		t.Errorf("Audit defaults not kept: %+v", cfg.Audit)
	}

	if len(cfg.Topology.Agents) != 1 {
		t.Fatalf("expected topology to be replaced, got %d agents", len(cfg.Topology.Agents))
	}
	if cfg.Topology.Agents[0].Metadata["priority"] != "high" {
		t.Errorf("metadata = %v", cfg.Topology.Agents[0].Metadata)
	}
	iface := cfg.Topology.Chains[0].Interfaces[0]
	if iface.Agent != "x1" || len(iface.Commands) != 2 {
		t.Errorf("interface = %+v", iface)
	}
}

func TestLoad_TOML(t *testing.T) {
	path := writeConfig(t, "config.toml", `
[logging]
level = "warn"
format = "text"

[manager]
toggle_mode = "flip"

[[topology.agents]]
id = "x1"
name = "Solo"

[topology.agents.metadata]
priority = 3

[[topology.chains]]
name = "Only"

[[topology.chains.interfaces]]
id = "c1"
name = "Control"
agent = "x1"
commands = ["process"]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
	if got := cfg.Topology.Agents[0].Metadata["priority"]; got != int64(3) {
		t.Errorf("metadata priority = %v (%T), want int64 3", got, got)
	}
	if cfg.Topology.Chains[0].Interfaces[0].Commands[0] != "process" {
		t.Errorf("commands = %v", cfg.Topology.Chains[0].Interfaces[0].Commands)
	}
	if cfg.Metrics.Addr != "127.0.0.1:9464" {
		t.Errorf("metrics default not kept: %+v", cfg.Metrics)
	}
}

func TestLoad_KeepsDefaultTopology(t *testing.T) {
	path := writeConfig(t, "config.yaml", "logging:\n  level: error\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.Topology.Agents) != 5 || len(cfg.Topology.Chains) != 2 {
		t.Errorf("expected default topology, got %d agents %d chains",
			len(cfg.Topology.Agents), len(cfg.Topology.Chains))
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("CHAINCTL_TEST_LEVEL", "debug")
	t.Setenv("CHAINCTL_TEST_DB", "/tmp/audit.db")

	path := writeConfig(t, "config.yaml", `
logging:
  level: "${CHAINCTL_TEST_LEVEL}"
audit:
  path: "${CHAINCTL_TEST_DB}"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Audit.Path != "/tmp/audit.db" {
		t.Errorf("Audit.Path = %q", cfg.Audit.Path)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("CHAINCTL_SET", "value")

	got := expandEnvVars("a=${CHAINCTL_SET} b=${CHAINCTL_DEFINITELY_UNSET} c=$PLAIN")
	want := "a=value b= c=$PLAIN"
	if got != want {
		t.Errorf("expandEnvVars() = %q, want %q", got, want)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := writeConfig(t, "bad.yaml", "logging: [unclosed")
	if _, err := Load(bad); err == nil || !strings.Contains(err.Error(), "parsing config file") {
		t.Errorf("expected parse error, got %v", err)
	}

	badTOML := writeConfig(t, "bad.toml", "logging = = 1")
	if _, err := Load(badTOML); err == nil {
		t.Error("expected TOML parse error")
	}

	badDuration := writeConfig(t, "dur.yaml", "showcase:\n  pause: soon\n")
	if _, err := Load(badDuration); err == nil || !strings.Contains(err.Error(), "showcase.pause") {
		t.Errorf("expected duration error, got %v", err)
	}
}

func TestDefault_Validates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}

	topo := cfg.Topology
	if topo.Agents[0].ID != "a1" || topo.Agents[0].Name != "DataCollector" {
		t.Errorf("first agent = %+v", topo.Agents[0])
	}
	if topo.Chains[1].Interfaces[1].ID != "i5" || topo.Chains[1].Interfaces[1].Agent != "a5" {
		t.Errorf("last interface = %+v", topo.Chains[1].Interfaces[1])
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "loud" },
			wantErr: "logging.level",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "logging.format",
		},
		{
			name:    "bad toggle mode",
			mutate:  func(c *Config) { c.Manager.ToggleMode = "random" },
			wantErr: "manager.toggle_mode",
		},
		{
			name:    "audit without path",
			mutate:  func(c *Config) { c.Audit.Path = "" },
			wantErr: "audit.path",
		},
		{
			name:    "negative audit limit",
			mutate:  func(c *Config) { c.Audit.Limit = -1 },
			wantErr: "audit.limit",
		},
		{
			name: "metrics path without slash",
			mutate: func(c *Config) {
				c.Metrics.Enabled = true
				c.Metrics.Path = "metrics"
			},
			wantErr: "metrics.path",
		},
		{
			name:    "unknown exporter",
			mutate:  func(c *Config) { c.Tracing.Exporter = "jaeger" },
			wantErr: "tracing.exporter",
		},
		{
			name: "duplicate agent id",
			mutate: func(c *Config) {
				c.Topology.Agents = append(c.Topology.Agents, AgentSpec{ID: "a1", Name: "Again"})
			},
			wantErr: "duplicate agent id",
		},
		{
			name:    "missing agent id",
			mutate:  func(c *Config) { c.Topology.Agents[0].ID = "" },
			wantErr: "topology.agents[0].id",
		},
		{
			name: "duplicate interface in chain",
			mutate: func(c *Config) {
				c.Topology.Chains[0].Interfaces[1].ID = "i1"
			},
			wantErr: "duplicate interface id",
		},
		{
			name:    "undeclared agent",
			mutate:  func(c *Config) { c.Topology.Chains[0].Interfaces[0].Agent = "ghost" },
			wantErr: "not declared",
		},
		{
			name:    "agent attached twice",
			mutate:  func(c *Config) { c.Topology.Chains[1].Interfaces[0].Agent = "a1" },
			wantErr: "already attached",
		},
		{
			name: "unknown command",
			mutate: func(c *Config) {
				c.Topology.Chains[0].Interfaces[0].Commands = []string{"launch"}
			},
			wantErr: "unknown command",
		},
		{
			name: "shadowed interface with agent",
			mutate: func(c *Config) {
				c.Topology.Chains[1].Interfaces[0].ID = "i1"
			},
			wantErr: "shadowed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}

	t.Run("shadowed interface without agent is allowed", func(t *testing.T) {
		cfg := Default()
		cfg.Topology.Chains[1].Interfaces = append(cfg.Topology.Chains[1].Interfaces,
			InterfaceSpec{ID: "i1", Name: "Mirror"})
		if err := cfg.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestResolve(t *testing.T) {
	t.Run("explicit wins", func(t *testing.T) {
		t.Setenv(EnvPath, "/from/env.yaml")
		if got := Resolve("/from/flag.yaml"); got != "/from/flag.yaml" {
			t.Errorf("Resolve() = %q", got)
		}
	})

	t.Run("env next", func(t *testing.T) {
		t.Setenv(EnvPath, "/from/env.yaml")
		if got := Resolve(""); got != "/from/env.yaml" {
			t.Errorf("Resolve() = %q", got)
		}
	})

	t.Run("user config dir when present", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv(EnvPath, "")
		t.Setenv("XDG_CONFIG_HOME", dir)

		if got := Resolve(""); got != "" {
			t.Errorf("Resolve() = %q, want empty when no file exists", got)
		}

		want := filepath.Join(dir, "chainctl", "config.yaml")
		if err := os.MkdirAll(filepath.Dir(want), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(want, []byte("logging:\n  level: warn\n"), 0644); err != nil {
			t.Fatal(err)
		}
		if got := Resolve(""); got != want {
			t.Errorf("Resolve() = %q, want %q", got, want)
		}

		cfg, path, err := LoadResolved("")
		if err != nil {
			t.Fatalf("LoadResolved() error = %v", err)
		}
		if path != want || cfg.Logging.Level != "warn" {
			t.Errorf("LoadResolved() = %q, level %q", path, cfg.Logging.Level)
		}
	})

	t.Run("defaults when nothing found", func(t *testing.T) {
		t.Setenv(EnvPath, "")
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())

		cfg, path, err := LoadResolved("")
		if err != nil {
			t.Fatalf("LoadResolved() error = %v", err)
		}
		if path != "" || cfg.Logging.Level != "info" {
			t.Errorf("expected defaults, got path %q level %q", path, cfg.Logging.Level)
		}
	})

	t.Run("explicit missing file is an error", func(t *testing.T) {
		if _, _, err := LoadResolved(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("expected error")
		}
	})
}
