// ABOUTME: Prometheus metrics for the agent manager
// ABOUTME: Gauges read live manager stats; counters are fed by manager events

package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/2389/chainmgr/internal/agent"
)

const namespace = "chainmgr"

// StatsSource is satisfied by *agent.Manager.
type StatsSource interface {
	Stats() agent.Stats
}

// Metrics owns a private registry so several managers can be measured in
// one process without colliding on the default registerer.
type Metrics struct {
	registry *prometheus.Registry

	eventsTotal     *prometheus.CounterVec
	commandsTotal   *prometheus.CounterVec
	commandDuration *prometheus.HistogramVec
}

// New registers the event counters. Call TrackStats once the manager
// exists to add its gauges.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		eventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "events_total",
				Help:      "Total number of manager events",
			},
			[]string{"kind"},
		),
		commandsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "commands_total",
				Help:      "Total number of command executions",
			},
			[]string{"command", "status"},
		),
		commandDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "command_duration_seconds",
				Help:      "Command execution duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"command"},
		),
	}

	m.registry.MustRegister(
		m.eventsTotal,
		m.commandsTotal,
		m.commandDuration,
	)
	return m
}

// TrackStats registers gauges that read src at scrape time.
func (m *Metrics) TrackStats(src StatsSource) error {
	if err := m.registry.Register(newStatsCollector(src)); err != nil {
		return fmt.Errorf("registering stats collector: %w", err)
	}
	return nil
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an HTTP handler serving this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Observe implements agent.Observer.
func (m *Metrics) Observe(_ context.Context, ev agent.Event) {
	m.eventsTotal.WithLabelValues(string(ev.Kind)).Inc()

	switch ev.Kind {
	case agent.EventCommandExecuted:
		m.commandsTotal.WithLabelValues(ev.Command, "ok").Inc()
		m.commandDuration.WithLabelValues(ev.Command).Observe(ev.Duration.Seconds())
	case agent.EventCommandFailed:
		m.commandsTotal.WithLabelValues(ev.Command, "error").Inc()
		m.commandDuration.WithLabelValues(ev.Command).Observe(ev.Duration.Seconds())
	}
}

var _ agent.Observer = (*Metrics)(nil)

// statsCollector reads Stats at scrape time.
type statsCollector struct {
	src StatsSource

	agents     *prometheus.Desc
	chains     *prometheus.Desc
	interfaces *prometheus.Desc
	attached   *prometheus.Desc
}

func newStatsCollector(src StatsSource) *statsCollector {
	return &statsCollector{
		src: src,
		agents: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "agents"),
			"Number of registered agents by status",
			[]string{"status"}, nil,
		),
		chains: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "chains"),
			"Number of interface chains",
			nil, nil,
		),
		interfaces: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "interfaces"),
			"Number of interfaces across all chains",
			nil, nil,
		),
		attached: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "attached_agents"),
			"Number of agents attached to an interface",
			nil, nil,
		),
	}
}

func (c *statsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.agents
	ch <- c.chains
	ch <- c.interfaces
	ch <- c.attached
}

func (c *statsCollector) Collect(ch chan<- prometheus.Metric) {
	st := c.src.Stats()

	ch <- prometheus.MustNewConstMetric(c.agents, prometheus.GaugeValue, float64(st.ActiveAgents), string(agent.StatusActive))
	ch <- prometheus.MustNewConstMetric(c.agents, prometheus.GaugeValue, float64(st.IdleAgents), string(agent.StatusIdle))
	ch <- prometheus.MustNewConstMetric(c.agents, prometheus.GaugeValue, float64(st.OtherAgents), "other")
	ch <- prometheus.MustNewConstMetric(c.chains, prometheus.GaugeValue, float64(st.TotalChains))
	ch <- prometheus.MustNewConstMetric(c.interfaces, prometheus.GaugeValue, float64(st.TotalInterfaces))
	ch <- prometheus.MustNewConstMetric(c.attached, prometheus.GaugeValue, float64(st.AttachedAgents))
}
