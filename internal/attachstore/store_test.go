package attachstore

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"pkt.systems/jirasoap/core"
)

func openTestStore(t *testing.T, dir string, opts Options) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(dir, "attachments.db"), opts)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestPutGetDelete(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t, t.TempDir(), Options{})

	if err := store.Put(ctx, 10020, []byte("stack trace")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Put(ctx, 10020, []byte("replaced")); err != nil {
		t.Fatalf("put again: %v", err)
	}
	got, err := store.Get(ctx, 10020)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "replaced" {
		t.Fatalf("unexpected content %q", got)
	}
	if err := store.Delete(ctx, 10020); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, 10020); !errors.Is(err, core.ErrAttachmentNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := store.Delete(ctx, 10020); err != nil {
		t.Fatalf("deleting a missing id: %v", err)
	}
}

func TestContentSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	first, err := Open(ctx, filepath.Join(dir, "attachments.db"), Options{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := first.Put(ctx, 1, []byte{0x89, 'P', 'N', 'G'}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	second := openTestStore(t, dir, Options{})
	got, err := second.Get(ctx, 1)
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if !bytes.Equal(got, []byte{0x89, 'P', 'N', 'G'}) {
		t.Fatalf("unexpected content %v", got)
	}
}

func TestEncryptedAtRest(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := openTestStore(t, dir, Options{KeyStorePath: filepath.Join(dir, "keys", "attachments.pb")})
	plain := []byte("customer database password is hunter2")
	if err := store.Put(ctx, 7, plain); err != nil {
		t.Fatalf("put: %v", err)
	}
	var raw []byte
	var encrypted bool
	if err := store.db.QueryRowContext(ctx, `SELECT data, encrypted FROM attachments WHERE id = ?`, 7).Scan(&raw, &encrypted); err != nil {
		t.Fatalf("raw row: %v", err)
	}
	if !encrypted || bytes.Contains(raw, []byte("hunter2")) {
		t.Fatalf("expected ciphertext at rest, encrypted=%v", encrypted)
	}
	got, err := store.Get(ctx, 7)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !bytes.Equal(got, plain) {
		t.Fatalf("unexpected plaintext %q", got)
	}
}

func TestEncryptedContentNeedsKeyStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	keys := filepath.Join(dir, "keys.pb")
	sealed, err := Open(ctx, filepath.Join(dir, "attachments.db"), Options{KeyStorePath: keys})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := sealed.Put(ctx, 3, []byte("secret")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := sealed.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	plain := openTestStore(t, dir, Options{})
	if _, err := plain.Get(ctx, 3); err == nil {
		t.Fatalf("expected error reading encrypted content without keys")
	}
	reopened := openTestStore(t, dir, Options{KeyStorePath: keys})
	got, err := reopened.Get(ctx, 3)
	if err != nil || string(got) != "secret" {
		t.Fatalf("reopen with keys: %q %v", got, err)
	}
}

func TestPrune(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t, t.TempDir(), Options{})
	for _, id := range []int64{1, 2, 3} {
		if err := store.Put(ctx, id, []byte{byte(id)}); err != nil {
			t.Fatalf("put %d: %v", id, err)
		}
	}
	removed, err := store.Prune(ctx, map[int64]bool{2: true})
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if removed != 2 {
		t.Fatalf("expected 2 removed, got %d", removed)
	}
	if _, err := store.Get(ctx, 2); err != nil {
		t.Fatalf("kept attachment: %v", err)
	}
	if _, err := store.Get(ctx, 1); !errors.Is(err, core.ErrAttachmentNotFound) {
		t.Fatalf("expected pruned attachment to be gone, got %v", err)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(context.Background(), " ", Options{}); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
