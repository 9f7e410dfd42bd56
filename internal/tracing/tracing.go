// ABOUTME: OpenTelemetry tracer provider setup for chainctl
// ABOUTME: Builds a stdout exporting provider or a noop one from config

package tracing

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/2389/chainmgr/internal/config"
)

// TracerName is the instrumentation scope used for manager spans.
const TracerName = "github.com/2389/chainmgr"

// Provider pairs a tracer provider with its shutdown hook.
type Provider struct {
	provider trace.TracerProvider
	shutdown func(context.Context) error
}

// TracerProvider returns the underlying provider.
func (p *Provider) TracerProvider() trace.TracerProvider {
	return p.provider
}

// Tracer returns the tracer the manager should use.
func (p *Provider) Tracer() trace.Tracer {
	return p.provider.Tracer(TracerName)
}

// Shutdown flushes pending spans. Safe to call on a noop provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	return p.shutdown(ctx)
}

// Setup builds a provider from cfg. Spans are written to w when the stdout
// exporter is selected. When cfg.Enabled is false a noop provider is
// returned. The global otel provider is left untouched.
func Setup(cfg config.TracingConfig, w io.Writer) (*Provider, error) {
	noopProvider := &Provider{
		provider: noop.NewTracerProvider(),
		shutdown: func(context.Context) error { return nil },
	}

	if !cfg.Enabled {
		return noopProvider, nil
	}

	switch cfg.Exporter {
	case "stdout":
		exporter, err := stdouttrace.New(
			stdouttrace.WithWriter(w),
			stdouttrace.WithPrettyPrint(),
		)
		if err != nil {
			return nil, fmt.Errorf("create stdout exporter: %w", err)
		}
		tp := sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithSampler(sdktrace.AlwaysSample()),
		)
		return &Provider{provider: tp, shutdown: tp.Shutdown}, nil
	case "none", "":
		return noopProvider, nil
	default:
		return nil, fmt.Errorf("unsupported exporter: %s", cfg.Exporter)
	}
}
