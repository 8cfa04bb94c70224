package clientenv

import (
	"errors"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JIRA_SOAP_URL", "")
	t.Setenv("JIRA_SOAP_USERNAME", "")
	t.Setenv("JIRA_SOAP_PASSWORD", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.URL != "" && cfg.URL != "http://localhost:8080" {
		t.Fatalf("unexpected url %q", cfg.URL)
	}
	if err := cfg.Require(); !errors.Is(err, ErrNoUsername) {
		t.Fatalf("expected ErrNoUsername, got %v", err)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("JIRA_SOAP_URL", " http://jira.example.com ")
	t.Setenv("JIRA_SOAP_USERNAME", " alice ")
	t.Setenv("JIRA_SOAP_PASSWORD", " s3cret ")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.URL != "http://jira.example.com" || cfg.Username != "alice" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Password != " s3cret " {
		t.Fatalf("password must be kept verbatim, got %q", cfg.Password)
	}
	if err := cfg.Require(); err != nil {
		t.Fatalf("require: %v", err)
	}
}

func TestMergePrefersFlags(t *testing.T) {
	base := Config{URL: "http://env.example.com", Username: "env", Password: "envpw"}
	got := base.Merge("http://flag.example.com", "", "flagpw")
	want := Config{URL: "http://flag.example.com", Username: "env", Password: "flagpw"}
	if got != want {
		t.Fatalf("merge = %+v, want %+v", got, want)
	}
}
