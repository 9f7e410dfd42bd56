// ABOUTME: Validation of every configuration section and of the declared topology.
// ABOUTME: Returns the first failure with the offending key path in the message.

package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/2389/chainmgr/internal/agent"
	"github.com/2389/chainmgr/internal/builtins"
)

// Validate checks that all configuration fields are present and valid.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format %q is not one of text, json", c.Logging.Format)
	}

	if _, err := agent.ParseToggleMode(c.Manager.ToggleMode); err != nil {
		return fmt.Errorf("manager.toggle_mode: %w", err)
	}

	if c.Audit.Enabled && c.Audit.Path == "" {
		return fmt.Errorf("audit.path is required when audit is enabled")
	}
	if c.Audit.Limit < 0 {
		return fmt.Errorf("audit.limit must not be negative")
	}

	if c.Metrics.Enabled {
		if c.Metrics.Addr == "" {
			return fmt.Errorf("metrics.addr is required when metrics are enabled")
		}
		if !strings.HasPrefix(c.Metrics.Path, "/") {
			return fmt.Errorf("metrics.path %q must start with /", c.Metrics.Path)
		}
	}

	switch c.Tracing.Exporter {
	case "stdout", "none", "":
	default:
		return fmt.Errorf("tracing.exporter %q is not one of stdout, none", c.Tracing.Exporter)
	}

	return c.Topology.Validate()
}

// Validate checks ids, references and command names in the topology.
func (t *Topology) Validate() error {
	known := builtins.StandardNames()

	agents := make(map[string]bool, len(t.Agents))
	for i, a := range t.Agents {
		if a.ID == "" {
			return fmt.Errorf("topology.agents[%d].id is required", i)
		}
		if agents[a.ID] {
			return fmt.Errorf("topology.agents[%d]: duplicate agent id %q", i, a.ID)
		}
		agents[a.ID] = true
	}

	attachedAt := make(map[string]string)
	firstChain := make(map[string]int)
	for ci, ch := range t.Chains {
		seen := make(map[string]bool, len(ch.Interfaces))
		for ii, iface := range ch.Interfaces {
			key := fmt.Sprintf("topology.chains[%d].interfaces[%d]", ci, ii)
			if iface.ID == "" {
				return fmt.Errorf("%s.id is required", key)
			}
			if seen[iface.ID] {
				return fmt.Errorf("%s: duplicate interface id %q in chain", key, iface.ID)
			}
			seen[iface.ID] = true

			// Lookups by interface id resolve to the first chain holding it.
			if owner, ok := firstChain[iface.ID]; !ok {
				firstChain[iface.ID] = ci
			} else if iface.Agent != "" || len(iface.Commands) > 0 {
				return fmt.Errorf("%s: interface id %q is shadowed by topology.chains[%d] and cannot take an agent or commands",
					key, iface.ID, owner)
			}

			if iface.Agent != "" {
				if !agents[iface.Agent] {
					return fmt.Errorf("%s: agent %q is not declared", key, iface.Agent)
				}
				if prev, ok := attachedAt[iface.Agent]; ok {
					return fmt.Errorf("%s: agent %q already attached at %s", key, iface.Agent, prev)
				}
				attachedAt[iface.Agent] = key
			}

			for _, cmd := range iface.Commands {
				if !slices.Contains(known, cmd) {
					return fmt.Errorf("%s: unknown command %q (known: %s)", key, cmd, strings.Join(known, ", "))
				}
			}
		}
	}
	return nil
}
