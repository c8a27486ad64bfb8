// Package tracing holds the library's OpenTelemetry tracer handle. Spans
// are recorded through the global tracer provider, so they are no-ops until
// the hosting application installs one; the library never sets up a span
// processor or exporter of its own.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// tracerName is the instrumentation scope reported on every span.
const tracerName = "github.com/flightbox/blackbox-graphs"

// StartSpan creates a span on the library tracer with optional attributes.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, oteltrace.Span) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, name)
	if len(attrs) > 0 {
		span.SetAttributes(attrs...)
	}
	return ctx, span
}
