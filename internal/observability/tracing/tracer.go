// Package tracing provides OpenTelemetry tracing integration.
// It exposes the application tracer and HTTP middleware that creates a server
// span per request and propagates W3C trace context.
package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// tracer is the global tracer instance for the lexfeed application.
var tracer = otel.Tracer("lexfeed")

// GetTracer returns the global tracer for creating spans.
//
// Example usage:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "fetch-batch")
//	defer span.End()
func GetTracer() trace.Tracer {
	return tracer
}
