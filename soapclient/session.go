package soapclient

import (
	"context"
	"errors"
	"sync"
)

// Session is a logged-in client.
type Session struct {
	client   *Client
	username string

	mu    sync.Mutex
	token string
}

// Login authenticates against the tracker and returns a session.
func Login(ctx context.Context, client *Client, username, password string) (*Session, error) {
	if client == nil {
		return nil, errors.New("soapclient: nil client")
	}
	token, err := client.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return &Session{client: client, username: username, token: token}, nil
}

// Client returns the underlying client.
func (s *Session) Client() *Client {
	return s.client
}

// Username returns the user the session was opened for.
func (s *Session) Username() string {
	return s.username
}

// Token returns the session token, or "" after Close.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Close logs the session out. Closing twice is a no-op.
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	token := s.token
	s.token = ""
	s.mu.Unlock()
	if token == "" {
		return nil
	}
	_, err := s.client.Logout(ctx, token)
	return err
}
