package persist

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"pkt.systems/pslog"
)

type trackerDoc struct {
	Version int               `json:"version"`
	Keys    []string          `json:"keys"`
	Owners  map[string]string `json:"owners"`
}

func TestStoreLoadMissing(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	var doc trackerDoc
	ok, err := store.Load("tracker", &doc)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok {
		t.Fatalf("expected missing document")
	}
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	doc := trackerDoc{Version: 1, Keys: []string{"ABC-1", "ABC-2"}, Owners: map[string]string{"ABC": "admin"}}
	if err := store.Save("tracker", doc); err != nil {
		t.Fatalf("save: %v", err)
	}
	info, err := os.Stat(filepath.Join(dir, "tracker.json"))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("expected 0600, got %v", perm)
	}
	var got trackerDoc
	ok, err := store.Load("tracker", &got)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !ok {
		t.Fatalf("expected document to exist")
	}
	if !reflect.DeepEqual(doc, got) {
		t.Fatalf("document mismatch:\nwant: %+v\ngot:  %+v", doc, got)
	}
	leftovers, err := filepath.Glob(filepath.Join(dir, "state-*.json"))
	if err != nil || len(leftovers) != 0 {
		t.Fatalf("expected no temp files, got %v %v", leftovers, err)
	}
}

func TestStoreLoadInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	logger := pslog.NewWithOptions(&buf, pslog.Options{Mode: pslog.ModeStructured, NoColor: true, MinLevel: pslog.DebugLevel})
	store, err := NewStoreWithLogger(dir, logger)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "tracker.json"), []byte("{not-json"), 0o600); err != nil {
		t.Fatalf("write bad json: %v", err)
	}
	var doc trackerDoc
	if _, err := store.Load("tracker", &doc); err == nil {
		t.Fatalf("expected error for invalid JSON")
	}
	if !bytes.Contains(buf.Bytes(), []byte("state load failed")) {
		t.Fatalf("expected warning in log, got %q", buf.String())
	}
}

func TestStoreSanitizesNames(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := store.Save("../escape/attempt", trackerDoc{Version: 2}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "___escape_attempt.json")); err != nil {
		t.Fatalf("expected sanitized file name: %v", err)
	}
	if err := store.Remove("../escape/attempt"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := store.Remove("../escape/attempt"); err != nil {
		t.Fatalf("removing a missing document: %v", err)
	}
}

func TestNewStoreRequiresDir(t *testing.T) {
	if _, err := NewStore("  "); err == nil {
		t.Fatalf("expected error for empty dir")
	}
}
