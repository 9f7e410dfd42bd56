// Package config handles configuration loading for chainctl.
//
// # Overview
//
// Configuration is loaded from YAML or TOML files with environment variable
// expansion. Every field has a default, so running without a file works.
//
// # Configuration File
//
// Locations (in order):
//
//  1. The --config flag
//  2. Path from CHAINCTL_CONFIG environment variable
//  3. chainctl/config.yaml under the user config directory
//     ($XDG_CONFIG_HOME or ~/.config)
//
// If none is set or found, Default() is used. Files ending in .toml are
// parsed as TOML; anything else is parsed as YAML.
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	audit:
//	  path: "${CHAINCTL_AUDIT_DB}"
//
// Syntax: ${VAR_NAME}. Unset variables expand to the empty string.
//
// # Duration Parsing
//
// Duration values use Go's time.ParseDuration syntax:
//
//	showcase:
//	  pause: "1500ms"
//
// # Configuration Sections
//
// Logging:
//
//	logging:
//	  level: "info"     # debug, info, warn, error
//	  format: "text"    # text, json
//
// Manager policy:
//
//	manager:
//	  toggle_mode: "flip"   # flip, majority
//
// Audit journal:
//
//	audit:
//	  enabled: true
//	  path: ":memory:"      # or a SQLite file path
//	  limit: 20
//
// Metrics:
//
//	metrics:
//	  enabled: false
//	  addr: "127.0.0.1:9464"
//	  path: "/metrics"
//
// Tracing:
//
//	tracing:
//	  enabled: false
//	  exporter: "stdout"    # stdout, none
//
// Topology:
//
//	topology:
//	  agents:
//	    - id: a1
//	      name: DataCollector
//	      status: idle
//	      metadata: {type: collector, priority: high}
//	  chains:
//	    - name: Data Pipeline
//	      interfaces:
//	        - id: i1
//	          name: DataIngestion
//	          agent: a1
//	          commands: [echo, validate]
//
// A topology in the file replaces the default topology entirely. Other
// sections override defaults key by key.
//
// # Validation
//
// Load validates the result. Topology rules:
//
//   - Agent ids are required and unique
//   - Interface ids are required and unique within a chain
//   - An interface may only reference a declared agent
//   - An agent is attached at most once
//   - Commands must be builtin command names
//   - An interface id repeated in a later chain cannot take an agent or
//     commands, since lookups by id resolve to the first chain
package config
