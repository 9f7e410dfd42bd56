// Package metrics exposes manager state to Prometheus.
//
// # Collected Series
//
//   - chainmgr_agents{status}: registered agents by active, idle, other
//   - chainmgr_chains, chainmgr_interfaces, chainmgr_attached_agents
//   - chainmgr_events_total{kind}: every manager event
//   - chainmgr_commands_total{command,status}: executions, status ok or error
//   - chainmgr_command_duration_seconds{command}: execution time
//
// Gauges are computed from Manager.Stats at scrape time, so they never
// drift from the manager. Counters are fed through the agent.Observer hook.
//
// # Wiring
//
//	m := metrics.New()
//	mgr := agent.NewManager(logger, agent.WithObserver(m))
//	_ = m.TrackStats(mgr)
//	srv := metrics.NewServer(m, "127.0.0.1:9464", "/metrics", logger)
//	go srv.Run(ctx)
package metrics
