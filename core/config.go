package core

import (
	"strings"
	"time"
)

const (
	// DefaultAdminGroup is the group whose members administer the tracker.
	DefaultAdminGroup = "jira-administrators"
	// DefaultUsersGroup is the implicit group every account belongs to.
	DefaultUsersGroup = "jira-users"
	// DefaultDevelopersGroup is seeded for the default security level and role actors.
	DefaultDevelopersGroup = "jira-developers"
	// DefaultSessionTTL is how long an idle session token stays valid.
	DefaultSessionTTL = 24 * time.Hour
)

// Filter is a saved search served by GetSavedFilters.
type Filter struct {
	Name        string
	Description string
	Owner       string
	Project     string
	JQL         string
	Favourite   bool
}

// CustomField declares a custom field reported by GetCustomFields.
type CustomField struct {
	ID   string
	Name string
}

// Config controls the tracker.
type Config struct {
	BaseURL        string
	Version        string
	BuildNumber    string
	BuildDate      time.Time
	Edition        string
	TimeZone       *time.Location
	AdminGroup     string
	UsersGroup     string
	Administrators []string
	SessionTTL     time.Duration

	HoursPerDay int
	DaysPerWeek int

	AllowAttachments      bool
	AllowTimeTracking     bool
	AllowSubTasks         bool
	AllowUnassignedIssues bool
	AllowVoting           bool
	AllowWatching         bool

	CustomFields []CustomField
	Filters      []Filter
}

// DefaultConfig returns a config with every feature switch on.
func DefaultConfig() Config {
	return Config{
		AllowAttachments:      true,
		AllowTimeTracking:     true,
		AllowSubTasks:         true,
		AllowUnassignedIssues: true,
		AllowVoting:           true,
		AllowWatching:         true,
	}.withDefaults()
}

func (c Config) withDefaults() Config {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		c.BaseURL = "http://localhost:8080"
	}
	if c.Version == "" {
		c.Version = "dev"
	}
	if c.Edition == "" {
		c.Edition = "Standard"
	}
	if c.TimeZone == nil {
		c.TimeZone = time.UTC
	}
	if c.AdminGroup == "" {
		c.AdminGroup = DefaultAdminGroup
	}
	if c.UsersGroup == "" {
		c.UsersGroup = DefaultUsersGroup
	}
	if c.SessionTTL <= 0 {
		c.SessionTTL = DefaultSessionTTL
	}
	if c.HoursPerDay <= 0 {
		c.HoursPerDay = 8
	}
	if c.DaysPerWeek <= 0 {
		c.DaysPerWeek = 5
	}
	return c
}
