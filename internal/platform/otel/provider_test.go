package otel_test

import (
	"context"
	"testing"
	"time"

	"github.com/MavethGH/dice-irae/internal/platform/otel"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DICE_IRAE_OTEL_ENDPOINT", "")

	cfg, err := otel.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !cfg.Enabled {
		t.Fatal("expected tracing to be enabled by default")
	}
	if cfg.SampleRatio != 1 {
		t.Fatalf("sample ratio = %v, want 1", cfg.SampleRatio)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Fatalf("shutdown timeout = %v, want 5s", cfg.ShutdownTimeout)
	}
}

func TestLoadConfigReadsEnv(t *testing.T) {
	t.Setenv("DICE_IRAE_OTEL_ENDPOINT", "http://localhost:4318")
	t.Setenv("DICE_IRAE_OTEL_ENABLED", "false")
	t.Setenv("DICE_IRAE_OTEL_SAMPLE_RATIO", "0.25")
	t.Setenv("DICE_IRAE_OTEL_SHUTDOWN_TIMEOUT", "250ms")

	cfg, err := otel.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Endpoint != "http://localhost:4318" || cfg.Enabled || cfg.SampleRatio != 0.25 ||
		cfg.ShutdownTimeout != 250*time.Millisecond {
		t.Fatalf("config = %+v", cfg)
	}
}

func TestSetup_NoopWhenEndpointEmpty(t *testing.T) {
	shutdown, err := otel.Setup(context.Background(), "test-service", otel.Config{Enabled: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_NoopWhenExplicitlyDisabled(t *testing.T) {
	shutdown, err := otel.Setup(context.Background(), "test-service", otel.Config{
		Endpoint: "http://localhost:4318",
		Enabled:  false,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_CreatesProviderWhenEndpointSet(t *testing.T) {
	// Use a non-routable address so no actual export happens.
	shutdown, err := otel.Setup(context.Background(), "test-service", otel.Config{
		Endpoint:    "http://192.0.2.1:4318",
		Enabled:     true,
		SampleRatio: 0.5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Shutdown should flush cleanly even though the endpoint is unreachable.
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_NoopShutdownIgnoresCancelledContext(t *testing.T) {
	shutdown, err := otel.Setup(context.Background(), "noop-test", otel.Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := shutdown(ctx); err != nil {
		t.Fatalf("noop shutdown should not error: %v", err)
	}
}
