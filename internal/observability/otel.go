package observability

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.uber.org/zap"
)

type Config struct {
	OtelEndpoint string
	ServiceName  string
	Environment  string
	OtelHeaders  string
}

func noopShutdown(context.Context) error {
	return nil
}

func parseHeaders(headersStr string) map[string]string {
	headers := make(map[string]string)

	// key1=value1,key2=value2
	for _, part := range strings.Split(headersStr, ",") {
		key, value, ok := strings.Cut(part, "=")
		if ok && strings.TrimSpace(key) != "" {
			headers[strings.TrimSpace(key)] = strings.TrimSpace(value)
		}
	}

	return headers
}

// Init installs the global tracer provider. Without an endpoint the no-op provider stays in place and the
// returned shutdown does nothing.
func Init(ctx context.Context, cfg Config, log *zap.Logger) (func(context.Context) error, error) {
	if cfg.OtelEndpoint == "" {
		log.Info("otel endpoint not configured, trace export disabled")
		return noopShutdown, nil
	}

	headers := parseHeaders(cfg.OtelHeaders)

	exporter, err := otlptracehttp.New(
		ctx,
		otlptracehttp.WithEndpoint(cfg.OtelEndpoint),
		otlptracehttp.WithInsecure(),
		otlptracehttp.WithHeaders(headers),
		otlptracehttp.WithRetry(
			otlptracehttp.RetryConfig{
				Enabled:         true,
				InitialInterval: 5 * time.Second,
				MaxInterval:     30 * time.Second,
				MaxElapsedTime:  60 * time.Second,
			},
		),
		otlptracehttp.WithTimeout(30*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("create otlp trace exporter: %w", err)
	}

	res, err := resource.New(
		ctx,
		resource.WithFromEnv(),
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.DeploymentEnvironment(cfg.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create otel resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter,
			sdktrace.WithBatchTimeout(10*time.Second),
			sdktrace.WithExportTimeout(30*time.Second),
			sdktrace.WithMaxExportBatchSize(512),
		),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	log.Info("otel trace exporter initialized",
		zap.String("endpoint", cfg.OtelEndpoint),
		zap.String("protocol", "http/protobuf"),
		zap.String("service", cfg.ServiceName),
		zap.Bool("auth_enabled", len(headers) > 0),
	)

	return tp.Shutdown, nil
}
