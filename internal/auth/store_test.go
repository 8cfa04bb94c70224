package auth

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"golang.org/x/crypto/bcrypt"

	"pkt.systems/jirasoap/internal/appconfig"
	"pkt.systems/jirasoap/schema"
)

func TestStoreRejectsInvalidUsername(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "users.json")
	store, err := NewStoreWithLogger(path, nil, nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	if err := store.AddUser(User{
		Username:     "Alice",
		PasswordHash: "hash",
	}); !errors.Is(err, ErrInvalidUsername) {
		t.Fatalf("expected invalid username error, got %v", err)
	}
}

func TestStoreRejectsInvalidSeed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "users.json")
	_, err := NewStoreWithLogger(path, []appconfig.SeedUser{
		{
			Username:     "Bad User",
			PasswordHash: "hash",
		},
	}, nil)
	if err == nil {
		t.Fatalf("expected error for invalid seed user")
	}
}

func TestStoreSeedsProfile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "users.json")
	store, err := NewStoreWithLogger(path, []appconfig.SeedUser{
		{
			Username:     "admin",
			FullName:     "Administrator",
			Email:        "admin@example.com",
			PasswordHash: mustHash(t, "admin"),
		},
	}, nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	profile, ok := store.Lookup("admin")
	if !ok {
		t.Fatalf("expected seeded admin")
	}
	if profile != (schema.RemoteUser{Name: "admin", Fullname: "Administrator", Email: "admin@example.com"}) {
		t.Fatalf("profile = %+v", profile)
	}
	if err := store.Authenticate("admin", "admin"); err != nil {
		t.Fatalf("authenticate seeded admin: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected 0600 user file, got %v", info.Mode().Perm())
	}
}

func TestStoreTOTPSuffix(t *testing.T) {
	store := NewMemoryStore(nil)
	secret := "JBSWY3DPEHPK3PXP"
	if err := store.AddUser(User{
		Username:     "alice",
		PasswordHash: mustHash(t, "pass"),
		TOTPSecret:   secret,
	}); err != nil {
		t.Fatalf("add user: %v", err)
	}
	code := mustTOTP(t, secret)
	if err := store.Authenticate("alice", "pass"+code); err != nil {
		t.Fatalf("authenticate with code: %v", err)
	}
	if err := store.Authenticate("alice", "pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected missing code to fail, got %v", err)
	}
	if err := store.Authenticate("alice", "pass000000"); err == nil && code != "000000" {
		t.Fatalf("expected wrong code to fail")
	}
	if err := store.UpdateTOTP("alice", ""); err != nil {
		t.Fatalf("clear totp: %v", err)
	}
	if err := store.Authenticate("alice", "pass"); err != nil {
		t.Fatalf("authenticate without totp: %v", err)
	}
}

func TestStoreCreateListDelete(t *testing.T) {
	store := NewMemoryStore(nil)
	for _, name := range []string{"carol", "bob"} {
		if err := store.Create(schema.RemoteUser{Name: name, Fullname: name + " user"}, "pw-"+name); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}
	if err := store.Create(schema.RemoteUser{Name: "bob"}, "again"); !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
	if err := store.Create(schema.RemoteUser{Name: "dave"}, " "); err == nil {
		t.Fatalf("expected empty password to fail")
	}
	users := store.List()
	if len(users) != 2 || users[0].Name != "bob" || users[1].Name != "carol" {
		t.Fatalf("users = %+v", users)
	}
	if err := store.Authenticate("bob", "pw-bob"); err != nil {
		t.Fatalf("authenticate bob: %v", err)
	}
	if err := store.Delete("bob"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Delete("bob"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, ok := store.Lookup("bob"); ok {
		t.Fatalf("expected bob to be gone")
	}
}

func TestStoreChangePassword(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "users.json")
	store, err := NewStoreWithLogger(path, nil, nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := store.AddUser(User{
		Username:     "alice",
		PasswordHash: mustHash(t, "old-pass"),
	}); err != nil {
		t.Fatalf("add user: %v", err)
	}
	if err := store.ChangePassword("alice", "wrong", "new-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected wrong current password to fail, got %v", err)
	}
	if err := store.ChangePassword("alice", "old-pass", "new-pass"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if err := store.Authenticate("alice", "new-pass"); err != nil {
		t.Fatalf("authenticate new password: %v", err)
	}
	if err := store.Authenticate("alice", "old-pass"); err == nil {
		t.Fatalf("expected old password to fail")
	}
}

func TestStoreReloadsPasswordChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "users.json")
	writer, err := NewStoreWithLogger(path, nil, nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := writer.AddUser(User{
		Username:     "alice",
		PasswordHash: mustHash(t, "old-pass"),
	}); err != nil {
		t.Fatalf("add user: %v", err)
	}
	reader, err := NewStoreWithLogger(path, nil, nil)
	if err != nil {
		t.Fatalf("new store reader: %v", err)
	}
	if err := reader.Authenticate("alice", "old-pass"); err != nil {
		t.Fatalf("authenticate old password: %v", err)
	}
	if err := writer.UpdatePassword("alice", mustHash(t, "new-pass")); err != nil {
		t.Fatalf("update password: %v", err)
	}
	if err := reader.Authenticate("alice", "new-pass"); err != nil {
		t.Fatalf("authenticate new password: %v", err)
	}
	if err := reader.Authenticate("alice", "old-pass"); err == nil {
		t.Fatalf("expected old password to fail after refresh")
	}
}

func TestStoreReloadsUserAddDelete(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "users.json")
	writer, err := NewStoreWithLogger(path, nil, nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	reader, err := NewStoreWithLogger(path, nil, nil)
	if err != nil {
		t.Fatalf("new store reader: %v", err)
	}
	if err := writer.AddUser(User{
		Username:     "bob",
		PasswordHash: mustHash(t, "pass"),
	}); err != nil {
		t.Fatalf("add user: %v", err)
	}
	if _, ok := reader.Lookup("bob"); !ok {
		t.Fatalf("expected reader to see new user")
	}
	if err := writer.DeleteUser("bob"); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if err := reader.Authenticate("bob", "pass"); err == nil {
		t.Fatalf("expected deleted user login to fail")
	}
}

func TestStorePersistsSortedJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "users.json")
	store, err := NewStoreWithLogger(path, nil, nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	for _, name := range []string{"zed", "amy"} {
		if err := store.AddUser(User{Username: name, PasswordHash: "hash"}); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var users []User
	if err := json.Unmarshal(data, &users); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(users) != 2 || users[0].Username != "amy" || users[1].Username != "zed" {
		t.Fatalf("persisted users = %+v", users)
	}
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return string(hash)
}

func mustTOTP(t *testing.T, secret string) string {
	t.Helper()
	code, err := totp.GenerateCode(secret, time.Now())
	if err != nil {
		t.Fatalf("generate totp: %v", err)
	}
	return code
}
