package middleware

import (
	"context"
	"time"

	"github.com/ferdian3456/leaguebot/internal/exception"
	"github.com/ferdian3456/leaguebot/internal/observability"
	"github.com/knadh/koanf/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const defaultEventTimeout = 30 * time.Second

// EventRunner gives every gateway event its own span, a deadline for the platform calls it makes
// and a trace-aware logger. Panics are recovered per event.
type EventRunner struct {
	Log     *zap.Logger
	Timeout time.Duration
	tracer  trace.Tracer
}

func NewEventRunner(zap *zap.Logger, koanf *koanf.Koanf) *EventRunner {
	timeout := koanf.Duration("DISCORD_TIMEOUT")
	if timeout <= 0 {
		timeout = defaultEventTimeout
	}

	return &EventRunner{
		Log:     zap,
		Timeout: timeout,
		tracer:  otel.Tracer("github.com/ferdian3456/leaguebot/discord"),
	}
}

func (runner *EventRunner) Run(event string, attrs []attribute.KeyValue, handle func(ctx context.Context, log *zap.Logger) error) {
	ctx, cancel := context.WithTimeout(context.Background(), runner.Timeout)
	defer cancel()

	ctx, span := runner.tracer.Start(ctx, event, trace.WithAttributes(attrs...), trace.WithSpanKind(trace.SpanKindConsumer))
	defer span.End()

	log := observability.WithContext(ctx, runner.Log).With(zap.String("event", event))
	defer exception.RecoverEvent(log, event)

	err := handle(ctx, log)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Error("failed to handle event", zap.Error(err))
		return
	}

	log.Debug("event handled")
}
