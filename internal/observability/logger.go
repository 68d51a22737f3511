package observability

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type TraceContext struct {
	TraceID string
	SpanID  string
}

// SpanFromContext reports the ids of the span carried by ctx, if it is a recording or remote span.
func SpanFromContext(ctx context.Context) (TraceContext, bool) {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return TraceContext{}, false
	}

	return TraceContext{
		TraceID: sc.TraceID().String(),
		SpanID:  sc.SpanID().String(),
	}, true
}

// WithContext adds trace_id and span_id from the active span, if any.
func WithContext(ctx context.Context, logger *zap.Logger) *zap.Logger {
	tc, ok := SpanFromContext(ctx)
	if !ok {
		return logger
	}

	return logger.With(
		zap.String("trace_id", tc.TraceID),
		zap.String("span_id", tc.SpanID),
	)
}
