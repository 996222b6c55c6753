package telemetry

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
)

func TestSetup_Off(t *testing.T) {
	orig := otel.GetTracerProvider()
	defer otel.SetTracerProvider(orig)

	shutdown, err := Setup(context.Background(), "off")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shutdown == nil {
		t.Fatal("expected a shutdown function, got nil")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown returned error: %v", err)
	}
	if otel.GetTracerProvider() != orig {
		t.Error("mode off must not replace the global provider")
	}
}

func TestSetup_Console(t *testing.T) {
	orig := otel.GetTracerProvider()
	defer otel.SetTracerProvider(orig)

	shutdown, err := Setup(context.Background(), "console")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if otel.GetTracerProvider() == orig {
		t.Error("mode console must install a real provider")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown returned error: %v", err)
	}
}
