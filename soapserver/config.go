package soapserver

import (
	"strings"
	"time"
)

const (
	// DefaultEndpointPath is where the SOAP endpoint is mounted.
	DefaultEndpointPath = "/rpc/soap/jirasoapservice-v2"
	// DefaultMaxBodyBytes limits request envelopes.
	DefaultMaxBodyBytes int64 = 32 << 20

	shutdownTimeout = 10 * time.Second
)

// Config defines the SOAP server settings.
type Config struct {
	// BasePath mounts every route below a path prefix, e.g. /jira.
	BasePath     string
	EndpointPath string
	MaxBodyBytes int64
}

func (c Config) withDefaults() Config {
	if strings.TrimSpace(c.EndpointPath) == "" {
		c.EndpointPath = DefaultEndpointPath
	}
	if !strings.HasPrefix(c.EndpointPath, "/") {
		c.EndpointPath = "/" + c.EndpointPath
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	c.BasePath = normalizeBasePath(c.BasePath)
	return c
}

func normalizeBasePath(value string) string {
	path := strings.TrimSpace(value)
	if path == "" || path == "/" {
		return ""
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	path = strings.TrimRight(path, "/")
	if path == "/" {
		return ""
	}
	return path
}
