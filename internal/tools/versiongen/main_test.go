package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestUpdateVersionLabel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Containerfile")
	content := "FROM scratch\nLABEL org.opencontainers.image.version=\"v0.0.1\"\nCMD [\"serve\"]\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := updateVersionLabel(path, "v1.2.3"); err != nil {
		t.Fatalf("update: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := "FROM scratch\nLABEL org.opencontainers.image.version=\"v1.2.3\"\nCMD [\"serve\"]\n"
	if string(data) != want {
		t.Fatalf("unexpected content:\n%s", data)
	}
}

func TestUpdateVersionLabelMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Containerfile")
	if err := os.WriteFile(path, []byte("FROM scratch\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := updateVersionLabel(path, "v1.2.3"); err == nil {
		t.Fatalf("expected missing label error")
	}
}
