package app

import (
	"context"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const serviceName = "multiswapd"

// TelemetryConfig holds the configuration for tracing.
type TelemetryConfig struct {
	Enabled      bool
	OTLPEndpoint string
	SampleRate   float64
}

// Telemetry owns the process-wide tracer provider.
type Telemetry struct {
	provider *sdktrace.TracerProvider
}

// InitTelemetry installs an OTLP/HTTP tracer provider as the global one. When
// tracing is disabled the global no-op provider stays in place.
func InitTelemetry(cfg TelemetryConfig, chainID string) (*Telemetry, error) {
	if !cfg.Enabled {
		return &Telemetry{}, nil
	}
	if _, err := url.Parse(cfg.OTLPEndpoint); err != nil {
		return nil, err
	}

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("chain.id", chainID),
		),
	)
	if err != nil {
		return nil, err
	}

	endpoint := strings.TrimPrefix(cfg.OTLPEndpoint, "http://")
	exp, err := otlptracehttp.New(context.Background(), otlptracehttp.WithEndpoint(endpoint), otlptracehttp.WithInsecure())
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRate))),
	)
	otel.SetTracerProvider(tp)
	return &Telemetry{provider: tp}, nil
}

// Shutdown flushes pending spans.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t.provider == nil {
		return nil
	}
	return t.provider.Shutdown(ctx)
}
