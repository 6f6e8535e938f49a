// Package telemetry wires OpenTelemetry tracing for the HTTP API.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/bizledger/backend/internal/infrastructure/config"
)

// TracerProvider owns the SDK provider when tracing is enabled. When it is
// disabled every span is a no-op and nothing is exported.
type TracerProvider struct {
	provider *sdktrace.TracerProvider
	logger   *zap.Logger
	config   config.TelemetryConfig
}

// NewTracerProvider exports spans over OTLP gRPC to cfg.CollectorEndpoint and
// installs the provider and W3C propagators globally.
func NewTracerProvider(ctx context.Context, cfg config.TelemetryConfig, version string, logger *zap.Logger) (*TracerProvider, error) {
	if !cfg.Enabled {
		logger.Info("Tracing disabled, using no-op tracer provider")
		return &TracerProvider{logger: logger, config: cfg}, nil
	}

	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.CollectorEndpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	tp, err := newTracerProvider(cfg, version, sdktrace.WithBatcher(exporter))
	if err != nil {
		return nil, err
	}
	tp.logger = logger

	otel.SetTracerProvider(tp.provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.Info("OpenTelemetry tracer provider initialized",
		zap.String("collector_endpoint", cfg.CollectorEndpoint),
		zap.Float64("sampling_ratio", cfg.SamplingRatio),
		zap.String("service_name", cfg.ServiceName),
	)
	return tp, nil
}

// NewTracerProviderWithProcessor builds an enabled provider around sp without
// touching the globals. Tests use it with an in-memory span recorder.
func NewTracerProviderWithProcessor(cfg config.TelemetryConfig, version string, sp sdktrace.SpanProcessor, logger *zap.Logger) (*TracerProvider, error) {
	tp, err := newTracerProvider(cfg, version, sdktrace.WithSpanProcessor(sp))
	if err != nil {
		return nil, err
	}
	tp.logger = logger
	return tp, nil
}

func newTracerProvider(cfg config.TelemetryConfig, version string, opt sdktrace.TracerProviderOption) (*TracerProvider, error) {
	// Schemaless so the merge never conflicts with the SDK default schema
	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	var sampler sdktrace.Sampler
	switch cfg.SamplingRatio {
	case 1.0:
		sampler = sdktrace.AlwaysSample()
	case 0.0:
		sampler = sdktrace.NeverSample()
	default:
		sampler = sdktrace.TraceIDRatioBased(cfg.SamplingRatio)
	}

	return &TracerProvider{
		provider: sdktrace.NewTracerProvider(
			opt,
			sdktrace.WithResource(res),
			sdktrace.WithSampler(sdktrace.ParentBased(sampler)),
		),
		config: cfg,
	}, nil
}

// Provider returns the provider spans should be created from
func (tp *TracerProvider) Provider() trace.TracerProvider {
	if tp.provider == nil {
		return noop.NewTracerProvider()
	}
	return tp.provider
}

// IsEnabled reports whether spans are recorded and exported
func (tp *TracerProvider) IsEnabled() bool {
	return tp.provider != nil
}

// Shutdown flushes pending spans. It is a no-op when tracing is disabled.
func (tp *TracerProvider) Shutdown(ctx context.Context) error {
	if tp.provider == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := tp.provider.Shutdown(shutdownCtx); err != nil {
		tp.logger.Error("Error shutting down tracer provider", zap.Error(err))
		return fmt.Errorf("failed to shutdown tracer provider: %w", err)
	}
	tp.logger.Info("OpenTelemetry tracer provider shut down")
	return nil
}
