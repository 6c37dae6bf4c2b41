// Package tracing provides the shared OTel tracer helper for domain packages.
//
// When no TracerProvider is registered (tests, local runs without OTel) the
// global no-op provider is used and every call is inert.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "content-service"

// Start opens a span as a child of the span in ctx. The caller must End it.
//
//	ctx, span := tracing.Start(ctx, "integrity.cascade_delete",
//	    attribute.String("content.type", string(ref.Type)),
//	)
//	defer span.End()
func Start(ctx context.Context, spanName string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, spanName, trace.WithAttributes(attrs...))
}

// RecordError marks the span as failed when err is non-nil.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
}
