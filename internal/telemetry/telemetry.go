// Package telemetry sets up OpenTelemetry tracing for the server and CLI.
package telemetry

import (
	"context"
	"fmt"

	"github.com/caarlos0/env/v11"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"pkt.systems/jirasoap/internal/version"
	"pkt.systems/pslog"
)

// Config is read from the environment.
type Config struct {
	Endpoint    string  `env:"JIRASOAP_OTEL_ENDPOINT"`
	Enabled     bool    `env:"JIRASOAP_OTEL_ENABLED" envDefault:"true"`
	SampleRatio float64 `env:"JIRASOAP_OTEL_SAMPLE_RATIO" envDefault:"1"`
}

// ConfigFromEnv parses Config from the process environment.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse telemetry env: %w", err)
	}
	return cfg, nil
}

// Active reports whether Setup would install a provider.
func (c Config) Active() bool {
	return c.Enabled && c.Endpoint != ""
}

// Setup installs a global tracer provider exporting to cfg.Endpoint. It is
// a no-op unless cfg is Active. The returned shutdown flushes pending spans.
func Setup(ctx context.Context, serviceName string, cfg Config) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }
	log := pslog.Ctx(ctx)
	if !cfg.Active() {
		log.Debug("telemetry disabled")
		return noop, nil
	}
	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(cfg.Endpoint))
	if err != nil {
		return noop, fmt.Errorf("otlp exporter: %w", err)
	}
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(version.Current()),
		),
	)
	if err != nil {
		return noop, fmt.Errorf("otel resource: %w", err)
	}
	sampler := sdktrace.AlwaysSample()
	if cfg.SampleRatio < 1 {
		sampler = sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	log.Info("telemetry enabled", "endpoint", cfg.Endpoint, "service", serviceName)
	return tp.Shutdown, nil
}
