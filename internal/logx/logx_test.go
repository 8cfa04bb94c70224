package logx

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"pkt.systems/pslog"
)

func newCaptureLogger(capture *logCapture) pslog.Logger {
	return pslog.NewWithOptions(capture, pslog.Options{
		Mode:          pslog.ModeStructured,
		NoColor:       true,
		MinLevel:      pslog.InfoLevel,
		VerboseFields: true,
	})
}

func TestWithIssueAddsField(t *testing.T) {
	capture := &logCapture{}
	log := WithIssue(newCaptureLogger(capture), "PROJ-1")
	log.Info("hello")

	entry := capture.firstEntry(t)
	if entry["issue"] != "PROJ-1" {
		t.Fatalf("expected issue field, got %+v", entry)
	}
	if _, ok := entry["project"]; ok {
		t.Fatalf("did not expect project field")
	}
}

func TestWithOperationAddsFields(t *testing.T) {
	capture := &logCapture{}
	ctx := pslog.ContextWithLogger(context.Background(), newCaptureLogger(capture))
	log := WithOperation(ctx, "getIssue", "alice")
	log.Info("hello")

	entry := capture.firstEntry(t)
	if entry["user"] != "alice" {
		t.Fatalf("expected user field, got %+v", entry)
	}
	if entry["op"] != "getIssue" {
		t.Fatalf("expected op field, got %+v", entry)
	}
}

func TestWithOperationSkipsDuplicateMarkers(t *testing.T) {
	capture := &logCapture{}
	base := newCaptureLogger(capture).With("op", "getIssue")
	ctx := ContextWithOperationLogger(context.Background(), base, "getIssue")
	if got := OperationFromContext(ctx); got != "getIssue" {
		t.Fatalf("operation marker = %q", got)
	}
	WithOperation(ctx, "getIssue", "").Info("hello")
	line := capture.buf.String()
	if bytes.Count([]byte(line), []byte(`"op"`)) != 1 {
		t.Fatalf("expected a single op field, got %s", line)
	}
}

type logCapture struct {
	buf bytes.Buffer
}

func (c *logCapture) Write(p []byte) (int, error) {
	return c.buf.Write(p)
}

func (c *logCapture) firstEntry(t *testing.T) map[string]any {
	t.Helper()
	data := c.buf.Bytes()
	idx := bytes.IndexByte(data, '\n')
	if idx == -1 {
		idx = len(data)
	}
	line := bytes.TrimSpace(data[:idx])
	entry := map[string]any{}
	if err := json.Unmarshal(line, &entry); err != nil {
		t.Fatalf("parse log entry: %v", err)
	}
	return entry
}
