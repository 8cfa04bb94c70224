package core

import (
	"encoding/json"
	"testing"
	"time"

	"pkt.systems/jirasoap/schema"
)

func TestSnapshotRestoreRollsBack(t *testing.T) {
	f := newFixture(t, nil)
	f.project(t, "ABC", "admin")
	first := f.issue(t, f.admin, "ABC", "kept")

	snap, err := f.tracker.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snap.Version != SnapshotVersion || !snap.Taken.Equal(testEpoch) {
		t.Fatalf("unexpected snapshot header %+v", snap)
	}

	f.clock.Advance(time.Hour)
	dropped := f.issue(t, f.admin, "ABC", "dropped")
	if dropped.Key != "ABC-2" {
		t.Fatalf("unexpected key %s", dropped.Key)
	}
	if err := f.tracker.Restore(snap); err != nil {
		t.Fatalf("restore: %v", err)
	}

	if _, err := f.tracker.GetIssue(f.ctx, f.admin, first.Key); err != nil {
		t.Fatalf("restored issue: %v", err)
	}
	_, err = f.tracker.GetIssue(f.ctx, f.admin, dropped.Key)
	requireFault(t, err, schema.FaultPermission)

	again := f.issue(t, f.admin, "ABC", "replaces the dropped one")
	if again.Key != "ABC-2" {
		t.Fatalf("expected the key counter to roll back, got %s", again.Key)
	}

	var restored bool
	for _, entry := range f.logs.Entries(t) {
		if logMessage(entry) == "state restored" {
			restored = true
		}
	}
	if !restored {
		t.Fatalf("expected restore log entry")
	}
}

func TestRestoreReaddsAdministrators(t *testing.T) {
	f := newFixture(t, nil)
	snap, err := f.tracker.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(snap.State, &raw); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	raw["groups"] = json.RawMessage(`{}`)
	snap.State, err = json.Marshal(raw)
	if err != nil {
		t.Fatalf("encode state: %v", err)
	}
	if err := f.tracker.Restore(snap); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if _, err := f.tracker.CreateProject(f.ctx, f.admin, "ABC", "Alpha", "", "", "admin", nil, nil, nil); err != nil {
		t.Fatalf("admin should keep administering after restore: %v", err)
	}
	group, err := f.tracker.GetGroup(f.ctx, f.admin, DefaultAdminGroup)
	if err != nil || group == nil || len(group.Users) != 1 || group.Users[0].Name != "admin" {
		t.Fatalf("unexpected admin group %+v %v", group, err)
	}
}

func TestRestoreRejectsBadSnapshots(t *testing.T) {
	f := newFixture(t, nil)
	snap, err := f.tracker.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	future := snap
	future.Version = SnapshotVersion + 1
	if err := f.tracker.Restore(future); err == nil {
		t.Fatalf("expected version error")
	}
	if err := f.tracker.Restore(Snapshot{Version: SnapshotVersion}); err == nil {
		t.Fatalf("expected empty state error")
	}
	if err := f.tracker.Restore(Snapshot{Version: SnapshotVersion, State: json.RawMessage(`{"permission_schemes":{}}`)}); err == nil {
		t.Fatalf("expected missing default scheme error")
	}
	if err := f.tracker.Restore(Snapshot{Version: SnapshotVersion, State: json.RawMessage(`[`)}); err == nil {
		t.Fatalf("expected decode error")
	}
}
