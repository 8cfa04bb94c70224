package core

import (
	"sync"
	"time"
)

type session struct {
	username  string
	expiresAt time.Time
}

type sessionTable struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	items map[string]session
}

func newSessionTable(ttl time.Duration, now func() time.Time) *sessionTable {
	return &sessionTable{
		ttl:   ttl,
		now:   now,
		items: make(map[string]session),
	}
}

func (s *sessionTable) create(username string) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	s.items[token] = session{username: username, expiresAt: s.now().Add(s.ttl)}
	s.mu.Unlock()
	return token, nil
}

// touch resolves a token and extends its expiry.
func (s *sessionTable) touch(token string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.items[token]
	if !ok {
		return "", false
	}
	now := s.now()
	if now.After(entry.expiresAt) {
		delete(s.items, token)
		return "", false
	}
	entry.expiresAt = now.Add(s.ttl)
	s.items[token] = entry
	return entry.username, true
}

func (s *sessionTable) drop(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[token]; !ok {
		return false
	}
	delete(s.items, token)
	return true
}

func (s *sessionTable) dropUser(username string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	dropped := 0
	for token, entry := range s.items {
		if entry.username == username {
			delete(s.items, token)
			dropped++
		}
	}
	return dropped
}

func (s *sessionTable) prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	pruned := 0
	for token, entry := range s.items {
		if now.After(entry.expiresAt) {
			delete(s.items, token)
			pruned++
		}
	}
	return pruned
}

func (s *sessionTable) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
