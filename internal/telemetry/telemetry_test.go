package telemetry

import (
	"context"
	"testing"
)

func TestConfigFromEnvDefaults(t *testing.T) {
	t.Setenv("JIRASOAP_OTEL_ENDPOINT", "http://192.0.2.1:4318")
	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if !cfg.Enabled || cfg.SampleRatio != 1 || !cfg.Active() {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestConfigFromEnvDisabled(t *testing.T) {
	t.Setenv("JIRASOAP_OTEL_ENDPOINT", "http://192.0.2.1:4318")
	t.Setenv("JIRASOAP_OTEL_ENABLED", "false")
	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if cfg.Active() {
		t.Fatalf("expected inactive config %+v", cfg)
	}
}

func TestConfigFromEnvRejectsBadRatio(t *testing.T) {
	t.Setenv("JIRASOAP_OTEL_SAMPLE_RATIO", "most")
	if _, err := ConfigFromEnv(); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestSetupNoopWithoutEndpoint(t *testing.T) {
	shutdown, err := Setup(context.Background(), "jirasoap-test", Config{Enabled: true})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestSetupCreatesProvider(t *testing.T) {
	// Non-routable address; nothing is exported before shutdown.
	cfg := Config{Endpoint: "http://192.0.2.1:4318", Enabled: true, SampleRatio: 0.5}
	shutdown, err := Setup(context.Background(), "jirasoap-test", cfg)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}
