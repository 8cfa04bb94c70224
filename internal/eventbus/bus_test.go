package eventbus

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"pkt.systems/jirasoap/schema"
	"pkt.systems/pslog"
)

func TestSubscribeAndPublish(t *testing.T) {
	bus := New(nil)
	ch, cancel := bus.Subscribe("ABC")
	defer cancel()

	event := schema.TrackerEvent{Type: schema.EventIssueCreated, Actor: "alice", Project: "ABC", Issue: "ABC-1"}
	bus.OnTrackerEvent(event)

	select {
	case got := <-ch:
		if got.Type != schema.EventIssueCreated || got.Issue != "ABC-1" {
			t.Fatalf("unexpected payload: %+v", got)
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("timed out waiting for event")
	}
}

func TestProjectSubscribersOnlySeeTheirProject(t *testing.T) {
	bus := New(nil)
	abc, cancelABC := bus.Subscribe("ABC")
	defer cancelABC()
	all, cancelAll := bus.Subscribe(AllProjects)
	defer cancelAll()

	bus.OnTrackerEvent(schema.TrackerEvent{Type: schema.EventIssueCreated, Project: "XYZ", Issue: "XYZ-1"})
	bus.OnTrackerEvent(schema.TrackerEvent{Type: schema.EventUserCreated, Subject: "bob"})

	select {
	case got := <-abc:
		t.Fatalf("ABC subscriber received %+v", got)
	default:
	}
	for _, want := range []schema.EventType{schema.EventIssueCreated, schema.EventUserCreated} {
		select {
		case got := <-all:
			if got.Type != want {
				t.Fatalf("expected %s, got %s", want, got.Type)
			}
		case <-time.After(500 * time.Millisecond):
			t.Fatalf("timed out waiting for %s", want)
		}
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	bus := New(nil)
	ch, cancel := bus.Subscribe("ABC")
	cancel()
	cancel()
	if _, ok := <-ch; ok {
		t.Fatalf("expected channel to be closed")
	}
	bus.OnTrackerEvent(schema.TrackerEvent{Project: "ABC"})
}

func TestPublishDoesNotBlockWhenFull(t *testing.T) {
	bus := New(nil)
	bus.depth = 1
	ch, cancel := bus.Subscribe("ABC")
	defer cancel()

	bus.OnTrackerEvent(schema.TrackerEvent{Project: "ABC", Issue: "ABC-1"})
	done := make(chan struct{})
	go func() {
		bus.OnTrackerEvent(schema.TrackerEvent{Project: "ABC", Issue: "ABC-2"})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("publish blocked on full channel")
	}
	if got := <-ch; got.Issue != "ABC-1" {
		t.Fatalf("expected first event to be kept, got %+v", got)
	}
}

func TestFanoutSkipsNilSinks(t *testing.T) {
	bus := New(nil)
	ch, cancel := bus.Subscribe(AllProjects)
	defer cancel()
	var nilBus *Bus
	Fanout{nil, nilBus, bus}.OnTrackerEvent(schema.TrackerEvent{Type: schema.EventRoleUpdated})
	if got := <-ch; got.Type != schema.EventRoleUpdated {
		t.Fatalf("unexpected event %+v", got)
	}
}

func TestAuditLogWritesEntry(t *testing.T) {
	var buf bytes.Buffer
	logger := pslog.NewWithOptions(&buf, pslog.Options{Mode: pslog.ModeStructured, NoColor: true, VerboseFields: true, MinLevel: pslog.DebugLevel})
	audit := NewAuditLog(logger)
	audit.OnTrackerEvent(schema.TrackerEvent{
		Type:    schema.EventIssueTransitioned,
		Actor:   "alice",
		Project: "ABC",
		Issue:   "ABC-7",
		Detail:  "Resolve Issue",
		Time:    time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC),
	})
	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("decode log entry %q: %v", buf.String(), err)
	}
	msg, _ := entry["message"].(string)
	if msg == "" {
		msg, _ = entry["msg"].(string)
	}
	if msg != "audit event" {
		t.Fatalf("unexpected message in %+v", entry)
	}
	if entry["issue"] != "ABC-7" || entry["actor"] != "alice" || entry["type"] != "issue.transitioned" {
		t.Fatalf("unexpected fields %+v", entry)
	}
	if _, ok := entry["subject"]; ok {
		t.Fatalf("empty subject must be omitted: %+v", entry)
	}
}
