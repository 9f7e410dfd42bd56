// ABOUTME: Builds a manager with the configured journal, metrics and tracing
// ABOUTME: A session owns those resources and releases them in Close

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/2389/chainmgr/internal/agent"
	"github.com/2389/chainmgr/internal/builtins"
	"github.com/2389/chainmgr/internal/config"
	"github.com/2389/chainmgr/internal/metrics"
	"github.com/2389/chainmgr/internal/seed"
	"github.com/2389/chainmgr/internal/store"
	"github.com/2389/chainmgr/internal/tracing"
)

// session holds the manager options shared by every manager a command
// creates, plus the resources behind them.
type session struct {
	cfg    *config.Config
	logger *slog.Logger

	opts     []agent.ManagerOption
	journal  *store.SQLiteStore
	metrics  *metrics.Metrics
	provider *tracing.Provider

	stopMetrics context.CancelFunc
	metricsDone chan error
}

func openSession(cfg *config.Config, logger *slog.Logger, traceOut io.Writer) (*session, error) {
	s := &session{cfg: cfg, logger: logger}

	mode, err := agent.ParseToggleMode(cfg.Manager.ToggleMode)
	if err != nil {
		return nil, err
	}
	s.opts = append(s.opts, agent.WithToggleMode(mode))

	s.provider, err = tracing.Setup(cfg.Tracing, traceOut)
	if err != nil {
		return nil, fmt.Errorf("setting up tracing: %w", err)
	}
	s.opts = append(s.opts, agent.WithTracer(s.provider.Tracer()))

	if cfg.Audit.Enabled {
		s.journal, err = store.NewSQLiteStore(cfg.Audit.Path, logger)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("opening audit journal: %w", err)
		}
		s.opts = append(s.opts, agent.WithObserver(store.NewAuditObserver(s.journal, logger)))
	}

	if cfg.Metrics.Enabled {
		s.metrics = metrics.New()
		s.opts = append(s.opts, agent.WithObserver(s.metrics))
	}

	return s, nil
}

// newManager creates an empty manager wired to the session resources.
func (s *session) newManager() *agent.Manager {
	return agent.NewManager(s.logger, s.opts...)
}

// seeded creates a manager populated from the configured topology.
func (s *session) seeded() (*agent.Manager, error) {
	m := s.newManager()

	reg := builtins.NewRegistry(s.logger)
	if err := builtins.RegisterAll(reg, m); err != nil {
		return nil, err
	}
	if _, err := seed.Apply(m, s.cfg.Topology, reg); err != nil {
		return nil, fmt.Errorf("applying topology: %w", err)
	}
	return m, nil
}

// serveMetrics exposes m's gauges and starts the listener when metrics are
// enabled. It is a no-op otherwise.
func (s *session) serveMetrics(ctx context.Context, m *agent.Manager) error {
	if s.metrics == nil {
		return nil
	}
	if err := s.metrics.TrackStats(m); err != nil {
		return err
	}

	srv := metrics.NewServer(s.metrics, s.cfg.Metrics.Addr, s.cfg.Metrics.Path, s.logger)
	ctx, cancel := context.WithCancel(ctx)
	s.stopMetrics = cancel
	s.metricsDone = make(chan error, 1)
	go func() { s.metricsDone <- srv.Run(ctx) }()
	return nil
}

// auditLimit is the number of entries the console shows.
func (s *session) auditLimit() int {
	return s.cfg.Audit.Limit
}

// Close stops the metrics listener, flushes spans and closes the journal.
func (s *session) Close() error {
	var errs []error
	if s.stopMetrics != nil {
		s.stopMetrics()
		if err := <-s.metricsDone; err != nil {
			errs = append(errs, err)
		}
	}
	if s.provider != nil {
		if err := s.provider.Shutdown(context.Background()); err != nil {
			errs = append(errs, fmt.Errorf("flushing spans: %w", err))
		}
	}
	if s.journal != nil {
		if err := s.journal.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing journal: %w", err))
		}
	}
	return errors.Join(errs...)
}
