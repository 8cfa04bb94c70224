// Package clientenv reads the tracker connection settings used by the
// command line client from the environment.
package clientenv

import (
	"errors"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config is the connection a client command uses when flags leave a value
// unset.
type Config struct {
	URL      string `env:"JIRA_SOAP_URL" envDefault:"http://localhost:8080"`
	Username string `env:"JIRA_SOAP_USERNAME"`
	Password string `env:"JIRA_SOAP_PASSWORD"`
}

// ErrNoUsername is returned by Require when no username is configured.
var ErrNoUsername = errors.New("username is required (flag --user or JIRA_SOAP_USERNAME)")

// Load parses the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg.trimmed(), nil
}

// Merge overlays non-empty flag values on the environment.
func (c Config) Merge(url, username, password string) Config {
	if v := strings.TrimSpace(url); v != "" {
		c.URL = v
	}
	if v := strings.TrimSpace(username); v != "" {
		c.Username = v
	}
	if password != "" {
		c.Password = password
	}
	return c
}

// Require checks that a username is set.
func (c Config) Require() error {
	if c.Username == "" {
		return ErrNoUsername
	}
	return nil
}

func (c Config) trimmed() Config {
	c.URL = strings.TrimSpace(c.URL)
	c.Username = strings.TrimSpace(c.Username)
	return c
}
