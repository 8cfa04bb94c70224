package version

import (
	"runtime/debug"
	"testing"
	"time"
)

func TestBuildVersionWins(t *testing.T) {
	old := buildVersion
	buildVersion = "v1.2.3"
	t.Cleanup(func() { buildVersion = old })

	if got := Current(); got != "v1.2.3" {
		t.Fatalf("expected build version, got %q", got)
	}
	b := fromBuildInfo(&debug.BuildInfo{Main: debug.Module{Path: "example.com/x", Version: "v9.9.9"}})
	if b.Version != "v1.2.3" || b.Module != "example.com/x" {
		t.Fatalf("unexpected build %+v", b)
	}
}

func TestPseudoVersionFromVCS(t *testing.T) {
	ts := time.Date(2025, time.January, 2, 3, 4, 5, 0, time.UTC)
	info := &debug.BuildInfo{
		Main: debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "1234567890abcdef"},
			{Key: "vcs.time", Value: ts.Format(time.RFC3339)},
			{Key: "vcs.modified", Value: "true"},
		},
	}
	b := fromBuildInfo(info)
	if b.Version != "v0.0.0-20250102030405-1234567890ab+dirty" {
		t.Fatalf("unexpected version %q", b.Version)
	}
	if b.BuildNumber() != "1234567890ab" {
		t.Fatalf("unexpected build number %q", b.BuildNumber())
	}
	if !b.Time.Equal(ts) || !b.Dirty {
		t.Fatalf("unexpected build %+v", b)
	}
	if b.Module != defaultModule {
		t.Fatalf("expected default module, got %q", b.Module)
	}
}

func TestUnknownBuild(t *testing.T) {
	b := fromBuildInfo(nil)
	if b.Version != unknown || b.BuildNumber() != "" || !b.Time.IsZero() {
		t.Fatalf("unexpected build %+v", b)
	}
}

func TestUserAgent(t *testing.T) {
	old := buildVersion
	buildVersion = "v2.0.0+dirty"
	t.Cleanup(func() { buildVersion = old })

	if got := UserAgent(); got != "jirasoap/v2.0.0" {
		t.Fatalf("unexpected user agent %q", got)
	}
}
