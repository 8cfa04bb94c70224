package auth

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/pquerna/otp/totp"
	"golang.org/x/crypto/bcrypt"

	"pkt.systems/jirasoap/internal/appconfig"
	"pkt.systems/jirasoap/schema"
	"pkt.systems/pslog"
)

var (
	// ErrInvalidCredentials reports a wrong username, password or TOTP code.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidUsername reports a username outside [a-z0-9._@-].
	ErrInvalidUsername = errors.New("invalid username")
	// ErrUserExists reports a duplicate username.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound reports an unknown username.
	ErrUserNotFound = errors.New("user not found")
)

// TOTPDigits is the length of the one-time code appended to the password of
// users enrolled in TOTP.
const TOTPDigits = 6

var usernamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._@-]{0,254}$`)

// User represents a stored user account.
type User struct {
	Username     string `json:"username"`
	FullName     string `json:"full_name,omitempty"`
	Email        string `json:"email,omitempty"`
	PasswordHash string `json:"password_hash"`
	TOTPSecret   string `json:"totp_secret,omitempty"`
}

func (u User) remote() schema.RemoteUser {
	return schema.RemoteUser{Name: u.Username, Fullname: u.FullName, Email: u.Email}
}

// Store manages user accounts. A store with a path persists to a JSON file
// and picks up edits made by other processes; NewMemoryStore keeps accounts
// in memory only.
type Store struct {
	path      string
	cost      int
	mu        sync.RWMutex
	users     map[string]User
	fileState fileState
	log       pslog.Logger
}

// NewStore loads or seeds the user store.
func NewStore(path string, seeds []appconfig.SeedUser) (*Store, error) {
	return NewStoreWithLogger(path, seeds, nil)
}

// NewStoreWithLogger loads or seeds the user store with logging.
func NewStoreWithLogger(path string, seeds []appconfig.SeedUser, logger pslog.Logger) (*Store, error) {
	if path == "" {
		return nil, errors.New("user file path is required")
	}
	if logger != nil {
		logger = logger.With("user_file", path)
	}
	store := &Store{
		path:  path,
		cost:  bcrypt.DefaultCost,
		users: make(map[string]User),
		log:   logger,
	}
	if err := store.ensureFile(seeds); err != nil {
		return nil, err
	}
	if err := store.loadFromDisk(); err != nil {
		return nil, err
	}
	return store, nil
}

// NewMemoryStore returns a store that never touches disk. Passwords are
// hashed with the minimum bcrypt cost.
func NewMemoryStore(logger pslog.Logger) *Store {
	return &Store{
		cost:  bcrypt.MinCost,
		users: make(map[string]User),
		log:   logger,
	}
}

// Authenticate verifies a username and password. Users enrolled in TOTP
// append the current code to their password.
func (s *Store) Authenticate(username, password string) error {
	if err := s.refreshIfNeeded(); err != nil {
		return err
	}
	s.mu.RLock()
	user, ok := s.users[strings.TrimSpace(username)]
	s.mu.RUnlock()
	if !ok {
		return ErrInvalidCredentials
	}
	code := ""
	if user.TOTPSecret != "" {
		if len(password) <= TOTPDigits {
			return ErrInvalidCredentials
		}
		password, code = password[:len(password)-TOTPDigits], password[len(password)-TOTPDigits:]
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	if user.TOTPSecret != "" && !totp.Validate(code, user.TOTPSecret) {
		return ErrInvalidCredentials
	}
	return nil
}

// Lookup returns the profile of a user.
func (s *Store) Lookup(username string) (schema.RemoteUser, bool) {
	if err := s.refreshIfNeeded(); err != nil {
		s.warn("auth store refresh failed", "err", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[username]
	if !ok {
		return schema.RemoteUser{}, false
	}
	return user.remote(), true
}

// List returns every profile sorted by username.
func (s *Store) List() []schema.RemoteUser {
	users := s.LoadUsers()
	out := make([]schema.RemoteUser, 0, len(users))
	for _, user := range users {
		out = append(out, user.remote())
	}
	return out
}

// Create hashes the password and adds a new user.
func (s *Store) Create(profile schema.RemoteUser, password string) error {
	if strings.TrimSpace(password) == "" {
		return errors.New("password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return err
	}
	return s.AddUser(User{
		Username:     profile.Name,
		FullName:     profile.Fullname,
		Email:        profile.Email,
		PasswordHash: string(hash),
	})
}

// Delete removes a user.
func (s *Store) Delete(username string) error {
	return s.DeleteUser(username)
}

// ChangePassword verifies credentials and replaces the stored password hash.
func (s *Store) ChangePassword(username, currentPassword, newPassword string) error {
	if strings.TrimSpace(newPassword) == "" {
		return errors.New("new password is required")
	}
	if err := s.Authenticate(username, currentPassword); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.cost)
	if err != nil {
		return err
	}
	return s.UpdatePassword(username, string(hash))
}

// LoadUsers returns a snapshot of users sorted by username.
func (s *Store) LoadUsers() []User {
	if err := s.refreshIfNeeded(); err != nil {
		s.warn("auth store refresh failed", "err", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users
}

// AddUser inserts a new user and persists the store.
func (s *Store) AddUser(user User) error {
	if err := s.refreshIfNeeded(); err != nil {
		return err
	}
	username, err := validateUsername(user.Username)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[username]; ok {
		return ErrUserExists
	}
	user.Username = username
	s.users[username] = user
	if err := s.saveLocked(); err != nil {
		delete(s.users, username)
		s.warn("auth user add failed", "user", username, "err", err)
		return err
	}
	s.info("auth user added", "user", username)
	return nil
}

// UpdatePassword replaces the stored password hash.
func (s *Store) UpdatePassword(username, passwordHash string) error {
	if strings.TrimSpace(passwordHash) == "" {
		return errors.New("password hash is required")
	}
	return s.update(username, "auth password updated", func(user *User) {
		user.PasswordHash = passwordHash
	})
}

// UpdateTOTP replaces the stored TOTP secret. An empty secret disables the
// second factor.
func (s *Store) UpdateTOTP(username, secret string) error {
	return s.update(username, "auth totp updated", func(user *User) {
		user.TOTPSecret = strings.TrimSpace(secret)
	})
}

// DeleteUser removes a user.
func (s *Store) DeleteUser(username string) error {
	if err := s.refreshIfNeeded(); err != nil {
		return err
	}
	normalized, err := validateUsername(username)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	previous, ok := s.users[normalized]
	if !ok {
		return ErrUserNotFound
	}
	delete(s.users, normalized)
	if err := s.saveLocked(); err != nil {
		s.users[normalized] = previous
		s.warn("auth user delete failed", "user", normalized, "err", err)
		return err
	}
	s.info("auth user deleted", "user", normalized)
	return nil
}

func (s *Store) update(username, message string, apply func(*User)) error {
	if err := s.refreshIfNeeded(); err != nil {
		return err
	}
	normalized, err := validateUsername(username)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[normalized]
	if !ok {
		return ErrUserNotFound
	}
	previous := user
	apply(&user)
	s.users[normalized] = user
	if err := s.saveLocked(); err != nil {
		s.users[normalized] = previous
		s.warn(message+" failed", "user", normalized, "err", err)
		return err
	}
	s.info(message, "user", normalized)
	return nil
}

func (s *Store) ensureFile(seeds []appconfig.SeedUser) error {
	if _, statErr := os.Stat(s.path); statErr == nil {
		return nil
	} else if !os.IsNotExist(statErr) {
		s.warn("auth store init failed", "err", statErr)
		return statErr
	}
	users := make([]User, 0, len(seeds))
	for _, seed := range seeds {
		if _, err := validateUsername(seed.Username); err != nil {
			return err
		}
		users = append(users, User{
			Username:     seed.Username,
			FullName:     seed.FullName,
			Email:        seed.Email,
			PasswordHash: seed.PasswordHash,
			TOTPSecret:   seed.TOTPSecret,
		})
	}
	if err := writeUsersFile(s.path, users); err != nil {
		s.warn("auth store init failed", "err", err)
		return err
	}
	s.info("auth store initialized", "users", len(users))
	return nil
}

// ValidateUsername reports ErrInvalidUsername for names outside
// [a-z0-9._@-].
func ValidateUsername(username string) error {
	_, err := validateUsername(username)
	return err
}

func validateUsername(username string) (string, error) {
	trimmed := strings.TrimSpace(username)
	if !usernamePattern.MatchString(trimmed) {
		return "", ErrInvalidUsername
	}
	return trimmed, nil
}

func (s *Store) saveLocked() error {
	if s.path == "" {
		return nil
	}
	keys := make([]string, 0, len(s.users))
	for key := range s.users {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	users := make([]User, 0, len(keys))
	for _, key := range keys {
		users = append(users, s.users[key])
	}
	if err := writeUsersFile(s.path, users); err != nil {
		s.warn("auth store save failed", "err", err)
		return err
	}
	if info, err := os.Stat(s.path); err == nil {
		s.fileState = fileStateFromInfo(info)
	} else {
		s.warn("auth store save failed to stat", "err", err)
	}
	if s.log != nil {
		s.log.Debug("auth store save ok", "users", len(users))
	}
	return nil
}

func writeUsersFile(path string, users []User) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "users-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

type fileState struct {
	modTime time.Time
	size    int64
	inode   uint64
	dev     uint64
}

func fileStateFromInfo(info os.FileInfo) fileState {
	state := fileState{
		modTime: info.ModTime(),
		size:    info.Size(),
	}
	if stat, ok := info.Sys().(*syscall.Stat_t); ok {
		state.inode = stat.Ino
		state.dev = uint64(stat.Dev)
	}
	return state
}

func (s fileState) equal(other fileState) bool {
	return s.size == other.size &&
		s.modTime.Equal(other.modTime) &&
		s.inode == other.inode &&
		s.dev == other.dev
}

func (s *Store) refreshIfNeeded() error {
	if s.path == "" {
		return nil
	}
	info, err := os.Stat(s.path)
	if err != nil {
		s.warn("auth store stat failed", "err", err)
		return err
	}
	latest := fileStateFromInfo(info)
	s.mu.RLock()
	current := s.fileState
	s.mu.RUnlock()
	if current.equal(latest) {
		return nil
	}
	return s.loadFromDisk()
}

func (s *Store) loadFromDisk() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		s.warn("auth store load failed", "err", err)
		return err
	}
	var users []User
	if err := json.Unmarshal(data, &users); err != nil {
		s.warn("auth store load failed", "err", err)
		return err
	}
	info, err := os.Stat(s.path)
	if err != nil {
		s.warn("auth store load failed", "err", err)
		return err
	}
	next := make(map[string]User, len(users))
	for _, user := range users {
		if _, err := validateUsername(user.Username); err != nil {
			s.warn("auth store load failed", "user", user.Username, "err", err)
			return err
		}
		next[user.Username] = user
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = next
	s.fileState = fileStateFromInfo(info)
	if s.log != nil {
		s.log.Debug("auth store load ok", "users", len(users))
	}
	return nil
}

func (s *Store) warn(msg string, keyvals ...any) {
	if s.log != nil {
		s.log.Warn(msg, keyvals...)
	}
}

func (s *Store) info(msg string, keyvals ...any) {
	if s.log != nil {
		s.log.Info(msg, keyvals...)
	}
}
