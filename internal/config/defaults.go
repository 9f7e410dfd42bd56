// ABOUTME: Built-in defaults, including the two-chain topology used by the console.
// ABOUTME: Default() always validates, so a missing config file is never an error.

package config

// Default returns a complete configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Manager: ManagerConfig{
			ToggleMode: "flip",
		},
		Audit: AuditConfig{
			Enabled: true,
			Path:    ":memory:",
			Limit:   20,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    "127.0.0.1:9464",
			Path:    "/metrics",
		},
		Tracing: TracingConfig{
			Enabled:  false,
			Exporter: "stdout",
		},
		Topology: DefaultTopology(),
	}
}

// DefaultTopology is five agents across a three-stage data chain and a
// two-stage oversight chain.
func DefaultTopology() Topology {
	return Topology{
		Agents: []AgentSpec{
			{ID: "a1", Name: "DataCollector", Status: "idle", Metadata: map[string]any{"type": "collector", "priority": "high"}},
			{ID: "a2", Name: "Analyzer", Status: "idle", Metadata: map[string]any{"type": "processor", "priority": "medium"}},
			{ID: "a3", Name: "Reporter", Status: "idle", Metadata: map[string]any{"type": "output", "priority": "low"}},
			{ID: "a4", Name: "Monitor", Status: "idle", Metadata: map[string]any{"type": "watcher", "priority": "high"}},
			{ID: "a5", Name: "Validator", Status: "idle", Metadata: map[string]any{"type": "checker", "priority": "medium"}},
		},
		Chains: []ChainSpec{
			{
				Name: "Data Pipeline",
				Interfaces: []InterfaceSpec{
					{ID: "i1", Name: "DataIngestion", Agent: "a1", Commands: []string{"echo", "validate"}},
					{ID: "i2", Name: "Processing", Agent: "a2", Commands: []string{"process", "transform", "double", "add"}},
					{ID: "i3", Name: "Output", Agent: "a3", Commands: []string{"echo", "status"}},
				},
			},
			{
				Name: "Oversight",
				Interfaces: []InterfaceSpec{
					{ID: "i4", Name: "Monitoring", Agent: "a4", Commands: []string{"status"}},
					{ID: "i5", Name: "Validation", Agent: "a5", Commands: []string{"validate"}},
				},
			},
		},
	}
}
