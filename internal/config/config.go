// ABOUTME: Configuration loading and parsing for chainctl
// ABOUTME: Supports YAML and TOML files with environment variable expansion and duration parsing

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable holding a config file path.
const EnvPath = "CHAINCTL_CONFIG"

// Config represents the complete chainctl configuration
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" toml:"logging"`
	Manager  ManagerConfig  `yaml:"manager" toml:"manager"`
	Audit    AuditConfig    `yaml:"audit" toml:"audit"`
	Metrics  MetricsConfig  `yaml:"metrics" toml:"metrics"`
	Tracing  TracingConfig  `yaml:"tracing" toml:"tracing"`
	Showcase ShowcaseConfig `yaml:"showcase" toml:"showcase"`
	Topology Topology       `yaml:"topology" toml:"topology"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// ManagerConfig holds agent manager policy
type ManagerConfig struct {
	ToggleMode string `yaml:"toggle_mode" toml:"toggle_mode"`
}

// AuditConfig holds the event journal configuration
type AuditConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Path    string `yaml:"path" toml:"path"`   // ":memory:" keeps the journal in process
	Limit   int    `yaml:"limit" toml:"limit"` // entries shown by the console audit view
}

// MetricsConfig holds metrics endpoint configuration
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Addr    string `yaml:"addr" toml:"addr"`
	Path    string `yaml:"path" toml:"path"`
}

// TracingConfig holds OpenTelemetry exporter configuration
type TracingConfig struct {
	Enabled  bool   `yaml:"enabled" toml:"enabled"`
	Exporter string `yaml:"exporter" toml:"exporter"`
}

// ShowcaseConfig holds showcase pacing
type ShowcaseConfig struct {
	Pause time.Duration `yaml:"-" toml:"-"`

	// Raw string value for unmarshaling
	PauseRaw string `yaml:"pause" toml:"pause"`
}

// Topology declares the agents and chains seeded at startup
type Topology struct {
	Agents []AgentSpec `yaml:"agents" toml:"agents"`
	Chains []ChainSpec `yaml:"chains" toml:"chains"`
}

// AgentSpec declares one agent
type AgentSpec struct {
	ID       string         `yaml:"id" toml:"id"`
	Name     string         `yaml:"name" toml:"name"`
	Status   string         `yaml:"status" toml:"status"`
	Metadata map[string]any `yaml:"metadata" toml:"metadata"`
}

// ChainSpec declares one chain and its interfaces in pipeline order
type ChainSpec struct {
	Name       string          `yaml:"name" toml:"name"`
	Interfaces []InterfaceSpec `yaml:"interfaces" toml:"interfaces"`
}

// InterfaceSpec declares one interface, its attached agent and builtin commands
type InterfaceSpec struct {
	ID       string   `yaml:"id" toml:"id"`
	Name     string   `yaml:"name" toml:"name"`
	Agent    string   `yaml:"agent" toml:"agent"`
	Commands []string `yaml:"commands" toml:"commands"`
}

// Load reads a configuration file from the given path and returns a parsed Config.
// Values in the file override Default(); a topology list in the file replaces
// the default list. Files ending in .toml are parsed as TOML, everything else
// as YAML. Environment variables in the format ${VAR_NAME} are expanded.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the raw content
	expanded := expandEnvVars(string(data))

	cfg := Default()
	cfg.Topology = Topology{}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(expanded, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	} else {
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}
	if len(cfg.Topology.Agents) == 0 && len(cfg.Topology.Chains) == 0 {
		cfg.Topology = DefaultTopology()
	}

	if err := parseDurations(cfg); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Resolve picks the config file to load. An explicit path wins, then
// $CHAINCTL_CONFIG, then chainctl/config.yaml under the user config
// directory if it exists. Returns "" when defaults should be used.
func Resolve(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	p := filepath.Join(dir, "chainctl", "config.yaml")
	if _, err := os.Stat(p); err != nil {
		return ""
	}
	return p
}

// LoadResolved loads the file chosen by Resolve, or Default() when there is
// none. The returned path is "" for defaults.
func LoadResolved(explicit string) (*Config, string, error) {
	path := Resolve(explicit)
	if path == "" {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// envPattern matches ${VAR_NAME}
var envPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// If the environment variable is not set, it is replaced with an empty string.
func expandEnvVars(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(envPattern.FindStringSubmatch(match)[1])
	})
}

// parseDurations converts the raw duration strings into time.Duration values
func parseDurations(cfg *Config) error {
	if cfg.Showcase.PauseRaw == "" {
		return nil
	}
	d, err := time.ParseDuration(cfg.Showcase.PauseRaw)
	if err != nil {
		return fmt.Errorf("parsing showcase.pause %q: %w", cfg.Showcase.PauseRaw, err)
	}
	if d < 0 {
		return errors.New("showcase.pause must not be negative")
	}
	cfg.Showcase.Pause = d
	return nil
}
