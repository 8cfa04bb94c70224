package appconfig

import (
	"os"
	"path/filepath"
)

// Config is the top-level application configuration.
type Config struct {
	ConfigVersion int               `mapstructure:"config_version" yaml:"config_version"`
	StateDir      string            `mapstructure:"state_dir" yaml:"state_dir"`
	Server        ServerConfig      `mapstructure:"server" yaml:"server"`
	Tracker       TrackerConfig     `mapstructure:"tracker" yaml:"tracker"`
	Attachments   AttachmentsConfig `mapstructure:"attachments" yaml:"attachments"`
	Auth          AuthConfig        `mapstructure:"auth" yaml:"auth"`
	Logging       LoggingConfig     `mapstructure:"logging" yaml:"logging"`
}

// CurrentConfigVersion marks the supported config version.
const CurrentConfigVersion = 1

// ServerConfig configures the SOAP endpoint.
type ServerConfig struct {
	Addr            string `mapstructure:"addr" yaml:"addr"`
	BaseURL         string `mapstructure:"base_url" yaml:"base_url"`
	BasePath        string `mapstructure:"base_path" yaml:"base_path"`
	MaxBodyMiB      int    `mapstructure:"max_body_mib" yaml:"max_body_mib"`
	SessionTTLHours int    `mapstructure:"session_ttl_hours" yaml:"session_ttl_hours"`
}

// TrackerConfig controls the reference tracker.
type TrackerConfig struct {
	AdminGroup            string              `mapstructure:"admin_group" yaml:"admin_group"`
	UsersGroup            string              `mapstructure:"users_group" yaml:"users_group"`
	Administrators        []string            `mapstructure:"administrators" yaml:"administrators"`
	TimeZone              string              `mapstructure:"time_zone" yaml:"time_zone"`
	HoursPerDay           int                 `mapstructure:"hours_per_day" yaml:"hours_per_day"`
	DaysPerWeek           int                 `mapstructure:"days_per_week" yaml:"days_per_week"`
	AllowAttachments      bool                `mapstructure:"allow_attachments" yaml:"allow_attachments"`
	AllowTimeTracking     bool                `mapstructure:"allow_time_tracking" yaml:"allow_time_tracking"`
	AllowSubTasks         bool                `mapstructure:"allow_sub_tasks" yaml:"allow_sub_tasks"`
	AllowUnassignedIssues bool                `mapstructure:"allow_unassigned_issues" yaml:"allow_unassigned_issues"`
	AllowVoting           bool                `mapstructure:"allow_voting" yaml:"allow_voting"`
	AllowWatching         bool                `mapstructure:"allow_watching" yaml:"allow_watching"`
	CustomFields          []CustomFieldConfig `mapstructure:"custom_fields" yaml:"custom_fields"`
	Filters               []FilterConfig      `mapstructure:"filters" yaml:"filters"`
}

// CustomFieldConfig declares a custom field reported by getCustomFields.
type CustomFieldConfig struct {
	ID   string `mapstructure:"id" yaml:"id"`
	Name string `mapstructure:"name" yaml:"name"`
}

// FilterConfig declares a saved search.
type FilterConfig struct {
	Name        string `mapstructure:"name" yaml:"name"`
	Description string `mapstructure:"description" yaml:"description"`
	Owner       string `mapstructure:"owner" yaml:"owner"`
	Project     string `mapstructure:"project" yaml:"project"`
	JQL         string `mapstructure:"jql" yaml:"jql"`
	Favourite   bool   `mapstructure:"favourite" yaml:"favourite"`
}

// AttachmentsConfig selects the attachment content store.
type AttachmentsConfig struct {
	Backend      string `mapstructure:"backend" yaml:"backend"`
	Path         string `mapstructure:"path" yaml:"path"`
	Encrypt      bool   `mapstructure:"encrypt" yaml:"encrypt"`
	KeyStorePath string `mapstructure:"key_store_path" yaml:"key_store_path"`
}

// AuthConfig configures auth storage and seed users.
type AuthConfig struct {
	UserFile  string     `mapstructure:"user_file" yaml:"user_file"`
	SeedUsers []SeedUser `mapstructure:"seed_users" yaml:"seed_users"`
}

// LoggingConfig controls audit logging behavior.
type LoggingConfig struct {
	DisableAuditTrails bool `mapstructure:"disable_audit_trails" yaml:"disable_audit_trails"`
}

// SeedUser seeds a user record in the auth store.
type SeedUser struct {
	Username     string `mapstructure:"username" yaml:"username"`
	FullName     string `mapstructure:"full_name" yaml:"full_name"`
	Email        string `mapstructure:"email" yaml:"email"`
	PasswordHash string `mapstructure:"password_hash" yaml:"password_hash"`
	TOTPSecret   string `mapstructure:"totp_secret" yaml:"totp_secret"`
}

const (
	// AttachmentsMemory keeps attachment content in process memory.
	AttachmentsMemory = "memory"
	// AttachmentsSQLite keeps attachment content in a SQLite database.
	AttachmentsSQLite = "sqlite"
)

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, err
	}
	root := filepath.Join(home, ".jirasoap")
	return Config{
		ConfigVersion: CurrentConfigVersion,
		StateDir:      filepath.Join(root, "state"),
		Server: ServerConfig{
			Addr:            ":8080",
			BaseURL:         "",
			BasePath:        "",
			MaxBodyMiB:      32,
			SessionTTLHours: 24,
		},
		Tracker: TrackerConfig{
			AdminGroup:            "jira-administrators",
			UsersGroup:            "jira-users",
			Administrators:        []string{"admin"},
			TimeZone:              "UTC",
			HoursPerDay:           8,
			DaysPerWeek:           5,
			AllowAttachments:      true,
			AllowTimeTracking:     true,
			AllowSubTasks:         true,
			AllowUnassignedIssues: true,
			AllowVoting:           true,
			AllowWatching:         true,
			CustomFields:          []CustomFieldConfig{},
			Filters: []FilterConfig{
				{
					Name:        "My open issues",
					Description: "Unresolved issues assigned to the caller",
					Owner:       "admin",
					JQL:         "assignee = currentUser() AND resolution is EMPTY ORDER BY priority DESC",
					Favourite:   true,
				},
				{
					Name:        "Reported by me",
					Description: "Issues reported by the caller",
					Owner:       "admin",
					JQL:         "reporter = currentUser() ORDER BY created DESC",
				},
			},
		},
		Attachments: AttachmentsConfig{
			Backend:      AttachmentsSQLite,
			Path:         filepath.Join(root, "state", "attachments.db"),
			Encrypt:      false,
			KeyStorePath: filepath.Join(root, "state", "attachments.keys"),
		},
		Auth: AuthConfig{
			UserFile: filepath.Join(root, "users.json"),
			SeedUsers: []SeedUser{
				{
					Username:     "admin",
					FullName:     "Administrator",
					Email:        "admin@localhost",
					PasswordHash: "$2a$12$eKn/.lOtbLvh5z/vhFA1TejoYPGGgd9jxHuDOBHkki76u.zrvES.O",
				},
			},
		},
		Logging: LoggingConfig{
			DisableAuditTrails: false,
		},
	}, nil
}

// DefaultConfigPath returns the standard config path.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".jirasoap", "config.yaml"), nil
}
