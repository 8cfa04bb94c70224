package soapclient

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidBaseURL indicates a base URL that cannot address a tracker.
var ErrInvalidBaseURL = errors.New("invalid base url")

// NormalizeBaseURL turns a tracker URL, including a dashboard URL such as
// host/secure/Dashboard.jspa, into scheme://host[/context]. The scheme
// defaults to http.
func NormalizeBaseURL(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidBaseURL)
	}
	if !strings.Contains(s, "://") {
		s = "http://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: unsupported scheme %q", ErrInvalidBaseURL, u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: missing host", ErrInvalidBaseURL)
	}
	path := u.Path
	if idx := strings.Index(path, "/secure"); idx >= 0 {
		path = path[:idx]
	}
	path = strings.TrimSuffix(strings.TrimRight(path, "/"), DefaultEndpointPath)
	path = strings.TrimRight(path, "/")
	return u.Scheme + "://" + u.Host + path, nil
}

// BrowseURL returns the web address of an issue.
func BrowseURL(baseURL, issueKey string) string {
	return strings.TrimRight(baseURL, "/") + "/browse/" + issueKey
}
