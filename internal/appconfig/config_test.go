package appconfig

import "testing"

func TestDefaultConfigEnablesFeatures(t *testing.T) {
	cfg, err := DefaultConfig()
	if err != nil {
		t.Fatalf("default config: %v", err)
	}
	if !cfg.Tracker.AllowAttachments || !cfg.Tracker.AllowTimeTracking {
		t.Fatalf("expected attachments and time tracking on by default")
	}
	if cfg.Attachments.Encrypt {
		t.Fatalf("expected attachment encryption to default false")
	}
	if len(cfg.Auth.SeedUsers) != 1 || cfg.Auth.SeedUsers[0].Username != "admin" {
		t.Fatalf("expected admin seed user, got %+v", cfg.Auth.SeedUsers)
	}
	if err := validateTrackerConfig(cfg.Tracker); err != nil {
		t.Fatalf("default tracker config invalid: %v", err)
	}
}
