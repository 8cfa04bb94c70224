package core

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"
)

// SnapshotVersion is the current snapshot format.
const SnapshotVersion = 1

// Snapshot is a serialized copy of the tracker state. Sessions and
// attachment content are not part of it.
type Snapshot struct {
	Version int             `json:"version"`
	Taken   time.Time       `json:"taken"`
	State   json.RawMessage `json:"state"`
}

// Snapshot captures the current state.
func (t *Tracker) Snapshot() (Snapshot, error) {
	t.mu.RLock()
	data, err := json.Marshal(t.st)
	issues := len(t.st.Issues)
	t.mu.RUnlock()
	if err != nil {
		return Snapshot{}, fmt.Errorf("encode state: %w", err)
	}
	t.logger.Trace("state snapshot", "bytes", len(data), "issues", issues)
	return Snapshot{Version: SnapshotVersion, Taken: t.now().UTC(), State: data}, nil
}

// Restore replaces the current state with a snapshot. Configured
// administrators missing from the admin group are added back.
func (t *Tracker) Restore(snap Snapshot) error {
	if snap.Version != SnapshotVersion {
		return fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}
	if len(snap.State) == 0 {
		return fmt.Errorf("snapshot has no state")
	}
	st := newState()
	if err := json.Unmarshal(snap.State, st); err != nil {
		return fmt.Errorf("decode state: %w", err)
	}
	st.ensureMaps()
	admins := st.Groups[t.cfg.AdminGroup]
	if admins == nil {
		admins = &groupRecord{Name: t.cfg.AdminGroup}
		st.Groups[t.cfg.AdminGroup] = admins
	}
	for _, name := range t.cfg.Administrators {
		if !slices.Contains(admins.Members, name) {
			admins.Members = append(admins.Members, name)
		}
	}
	if _, ok := st.PermissionSchemes[defaultPermissionSchemeID]; !ok {
		return fmt.Errorf("snapshot has no default permission scheme")
	}
	t.mu.Lock()
	t.st = st
	t.mu.Unlock()
	t.logger.Info("state restored", "taken", snap.Taken, "projects", len(st.Projects), "issues", len(st.Issues))
	return nil
}

// AttachmentIDs returns the ids of every attachment in the current state.
func (t *Tracker) AttachmentIDs() map[int64]bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ids := make(map[int64]bool, len(t.st.Attachments))
	for id := range t.st.Attachments {
		ids[id] = true
	}
	return ids
}
