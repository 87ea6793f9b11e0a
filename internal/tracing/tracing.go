// Package tracing wires request and script-evaluation spans through
// OpenTelemetry. There's no collector configured out of the box — spans are
// created and ended like any real deployment would, just without an
// exporter wired up to ship them anywhere yet.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/nativewd/webdriverd"

// NewProvider builds the process-wide TracerProvider. Call
// otel.SetTracerProvider(NewProvider()) once at startup.
func NewProvider() *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider()
}

// Tracer returns the package's named tracer from whatever TracerProvider is
// currently registered globally.
func Tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

// Start opens a span named name as a child of ctx's span, if any.
func Start(ctx context.Context, name string) (context.Context, trace.Span) {
	return Tracer().Start(ctx, name)
}
