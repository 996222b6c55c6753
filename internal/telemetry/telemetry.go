// Package telemetry wires span export for the hdns command. The client
// library records spans through the global tracer provider, so without Setup
// they all end at the built-in noop provider.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"

	"github.com/haukened/hdns"
)

const serviceName = "hdns"

// Setup installs a tracer provider for the given mode and returns its
// shutdown function. Mode "console" pretty-prints finished spans to stdout;
// any other mode keeps the noop provider in place.
func Setup(ctx context.Context, mode string) (func(context.Context) error, error) {
	if mode != "console" {
		return func(context.Context) error { return nil }, nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String(hdns.Version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	exporter, err := stdouttrace.New(
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create console exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
	)
	tp.RegisterSpanProcessor(sdktrace.NewBatchSpanProcessor(exporter))
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}
