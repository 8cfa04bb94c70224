// Package version reports the build of the running binary. The tracker
// serves it through getServerInfo and clients send it as their user agent.
package version

import (
	"runtime/debug"
	"strings"
	"time"
)

const (
	defaultModule = "pkt.systems/jirasoap"
	product       = "jirasoap"
	unknown       = "v0.0.0-unknown"
)

// buildVersion is set via -ldflags "-X pkt.systems/jirasoap/internal/version.buildVersion=...".
var buildVersion = ""

// Build describes the running binary.
type Build struct {
	Module   string
	Version  string
	Revision string
	Time     time.Time
	Dirty    bool
}

// BuildNumber is the short VCS revision, or "" for builds outside a
// checkout.
func (b Build) BuildNumber() string {
	if len(b.Revision) > 12 {
		return b.Revision[:12]
	}
	return b.Revision
}

// Read returns the build of the running binary.
func Read() Build {
	info, _ := debug.ReadBuildInfo()
	return fromBuildInfo(info)
}

func fromBuildInfo(info *debug.BuildInfo) Build {
	b := Build{Module: defaultModule, Version: unknown}
	if info == nil {
		if v := strings.TrimSpace(buildVersion); v != "" {
			b.Version = v
		}
		return b
	}
	if path := strings.TrimSpace(info.Main.Path); path != "" {
		b.Module = path
	}
	var vcsTime string
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			b.Revision = setting.Value
		case "vcs.time":
			vcsTime = setting.Value
		case "vcs.modified":
			b.Dirty = setting.Value == "true"
		}
	}
	if vcsTime != "" {
		if parsed, err := time.Parse(time.RFC3339, vcsTime); err == nil {
			b.Time = parsed.UTC()
		}
	}
	switch v := strings.TrimSpace(info.Main.Version); {
	case strings.TrimSpace(buildVersion) != "":
		b.Version = strings.TrimSpace(buildVersion)
	case v != "" && v != "(devel)":
		b.Version = v
	case b.Revision != "" && !b.Time.IsZero():
		b.Version = "v0.0.0-" + b.Time.Format("20060102150405") + "-" + b.BuildNumber()
		if b.Dirty {
			b.Version += "+dirty"
		}
	}
	return b
}

// Current returns the version without a dirty suffix.
func Current() string {
	return strings.TrimSuffix(Read().Version, "+dirty")
}

// CurrentWithDirty returns the version, marked +dirty for builds from a
// modified checkout.
func CurrentWithDirty() string {
	return Read().Version
}

// UserAgent returns the product token sent by clients, e.g. "jirasoap/v1.2.3".
func UserAgent() string {
	return product + "/" + Current()
}

// Module returns the main module path.
func Module() string {
	return Read().Module
}
