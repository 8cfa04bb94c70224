package appconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Load reads configuration from the provided path. If path is empty, uses DefaultConfigPath.
func Load(path string) (Config, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return Config{}, err
		}
		path = defaultPath
	}

	cfg, err := DefaultConfig()
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	setDefaults(v, cfg)

	configLoaded := false
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	} else {
		configLoaded = true
	}

	if configLoaded {
		if !v.InConfig("config_version") {
			return Config{}, fmt.Errorf("config_version is required; expected %d", CurrentConfigVersion)
		}
		if v.GetInt("config_version") != CurrentConfigVersion {
			return Config{}, fmt.Errorf("unsupported config_version %d; expected %d", v.GetInt("config_version"), CurrentConfigVersion)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	expandConfigEnv(&cfg)
	if err := validateServerConfig(cfg.Server); err != nil {
		return Config{}, err
	}
	if err := validateTrackerConfig(cfg.Tracker); err != nil {
		return Config{}, err
	}
	if err := validateAttachmentsConfig(cfg.Attachments); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("config_version", cfg.ConfigVersion)
	v.SetDefault("state_dir", cfg.StateDir)
	v.SetDefault("server.addr", cfg.Server.Addr)
	v.SetDefault("server.base_url", cfg.Server.BaseURL)
	v.SetDefault("server.base_path", cfg.Server.BasePath)
	v.SetDefault("server.max_body_mib", cfg.Server.MaxBodyMiB)
	v.SetDefault("server.session_ttl_hours", cfg.Server.SessionTTLHours)
	v.SetDefault("tracker.admin_group", cfg.Tracker.AdminGroup)
	v.SetDefault("tracker.users_group", cfg.Tracker.UsersGroup)
	v.SetDefault("tracker.administrators", cfg.Tracker.Administrators)
	v.SetDefault("tracker.time_zone", cfg.Tracker.TimeZone)
	v.SetDefault("tracker.hours_per_day", cfg.Tracker.HoursPerDay)
	v.SetDefault("tracker.days_per_week", cfg.Tracker.DaysPerWeek)
	v.SetDefault("tracker.allow_attachments", cfg.Tracker.AllowAttachments)
	v.SetDefault("tracker.allow_time_tracking", cfg.Tracker.AllowTimeTracking)
	v.SetDefault("tracker.allow_sub_tasks", cfg.Tracker.AllowSubTasks)
	v.SetDefault("tracker.allow_unassigned_issues", cfg.Tracker.AllowUnassignedIssues)
	v.SetDefault("tracker.allow_voting", cfg.Tracker.AllowVoting)
	v.SetDefault("tracker.allow_watching", cfg.Tracker.AllowWatching)
	v.SetDefault("tracker.custom_fields", cfg.Tracker.CustomFields)
	v.SetDefault("tracker.filters", cfg.Tracker.Filters)
	v.SetDefault("attachments.backend", cfg.Attachments.Backend)
	v.SetDefault("attachments.path", cfg.Attachments.Path)
	v.SetDefault("attachments.encrypt", cfg.Attachments.Encrypt)
	v.SetDefault("attachments.key_store_path", cfg.Attachments.KeyStorePath)
	v.SetDefault("auth.user_file", cfg.Auth.UserFile)
	v.SetDefault("auth.seed_users", cfg.Auth.SeedUsers)
	v.SetDefault("logging.disable_audit_trails", cfg.Logging.DisableAuditTrails)
}

func validateServerConfig(cfg ServerConfig) error {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL != "" {
		parsed, err := url.Parse(baseURL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("server.base_url must include scheme and host (e.g. https://jira.example.com)")
		}
	}
	basePath := strings.TrimSpace(cfg.BasePath)
	if basePath != "" {
		if strings.Contains(basePath, "://") {
			return fmt.Errorf("server.base_path must be a path prefix, not a URL")
		}
		if strings.ContainsAny(basePath, "?#") {
			return fmt.Errorf("server.base_path must not include query or fragment")
		}
	}
	if cfg.MaxBodyMiB < 0 {
		return fmt.Errorf("server.max_body_mib must not be negative")
	}
	if cfg.SessionTTLHours < 0 {
		return fmt.Errorf("server.session_ttl_hours must not be negative")
	}
	return nil
}

func validateTrackerConfig(cfg TrackerConfig) error {
	if cfg.HoursPerDay < 1 || cfg.HoursPerDay > 24 {
		return fmt.Errorf("tracker.hours_per_day must be between 1 and 24")
	}
	if cfg.DaysPerWeek < 1 || cfg.DaysPerWeek > 7 {
		return fmt.Errorf("tracker.days_per_week must be between 1 and 7")
	}
	if strings.TrimSpace(cfg.AdminGroup) == "" {
		return fmt.Errorf("tracker.admin_group is required")
	}
	if strings.TrimSpace(cfg.UsersGroup) == "" {
		return fmt.Errorf("tracker.users_group is required")
	}
	if cfg.AdminGroup == cfg.UsersGroup {
		return fmt.Errorf("tracker.admin_group and tracker.users_group must differ")
	}
	if _, err := time.LoadLocation(cfg.TimeZone); err != nil {
		return fmt.Errorf("tracker.time_zone: %w", err)
	}
	for i, field := range cfg.CustomFields {
		if !strings.HasPrefix(field.ID, "customfield_") {
			return fmt.Errorf("tracker.custom_fields[%d].id must start with customfield_", i)
		}
	}
	for i, filter := range cfg.Filters {
		if strings.TrimSpace(filter.Name) == "" || strings.TrimSpace(filter.JQL) == "" {
			return fmt.Errorf("tracker.filters[%d] needs a name and jql", i)
		}
	}
	return nil
}

func validateAttachmentsConfig(cfg AttachmentsConfig) error {
	switch cfg.Backend {
	case AttachmentsMemory:
		if cfg.Encrypt {
			return fmt.Errorf("attachments.encrypt requires the %s backend", AttachmentsSQLite)
		}
	case AttachmentsSQLite:
		if strings.TrimSpace(cfg.Path) == "" {
			return fmt.Errorf("attachments.path is required for the %s backend", AttachmentsSQLite)
		}
		if cfg.Encrypt && strings.TrimSpace(cfg.KeyStorePath) == "" {
			return fmt.Errorf("attachments.key_store_path is required when attachments.encrypt is set")
		}
	default:
		return fmt.Errorf("unsupported attachments.backend %q", cfg.Backend)
	}
	return nil
}

func expandConfigEnv(cfg *Config) {
	if cfg == nil {
		return
	}
	cfg.StateDir = expandEnv(cfg.StateDir)
	cfg.Attachments.Path = expandEnv(cfg.Attachments.Path)
	cfg.Attachments.KeyStorePath = expandEnv(cfg.Attachments.KeyStorePath)
	cfg.Auth.UserFile = expandEnv(cfg.Auth.UserFile)
}

func expandEnv(value string) string {
	if value == "" {
		return value
	}
	return os.Expand(value, func(key string) string {
		if key == "" {
			return ""
		}
		if val, ok := lookupEnv(key); ok {
			return val
		}
		return "$" + key
	})
}

func lookupEnv(key string) (string, bool) {
	if val, ok := os.LookupEnv(key); ok {
		return val, true
	}
	switch key {
	case "UID":
		return fmt.Sprintf("%d", os.Getuid()), true
	case "GID":
		return fmt.Sprintf("%d", os.Getgid()), true
	}
	return "", false
}

// WriteDefault writes the default config to the target path.
func WriteDefault(path string, overwrite bool) (string, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return "", err
		}
		path = defaultPath
	}

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("config already exists at %s", path)
		}
	}

	cfg, err := DefaultConfig()
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}
