package core

import (
	"context"
	"encoding/base64"
	"net/http"
	"sort"
	"strings"

	"pkt.systems/jirasoap/internal/logx"
	"pkt.systems/jirasoap/schema"
)

const (
	avatarOwnerType = "project"
	maxAvatarBytes  = 1 << 20
)

// GetProjectAvatars lists the custom avatars of a project, followed by the
// system avatars when includeSystem is set.
func (t *Tracker) GetProjectAvatars(ctx context.Context, token, projectKey string, includeSystem bool) ([]schema.RemoteAvatar, error) {
	caller, _, err := t.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	rec, err := t.avatarProject(caller, projectKey, PermBrowse)
	if err != nil {
		return nil, err
	}
	var custom, system []*avatarRecord
	for _, avatar := range t.st.Avatars {
		switch {
		case avatar.System:
			system = append(system, avatar)
		case avatar.ProjectID == rec.ID:
			custom = append(custom, avatar)
		}
	}
	byID := func(list []*avatarRecord) {
		sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	}
	byID(custom)
	byID(system)
	out := []schema.RemoteAvatar{}
	for _, avatar := range custom {
		out = append(out, remoteAvatar(avatar))
	}
	if includeSystem {
		for _, avatar := range system {
			out = append(out, remoteAvatar(avatar))
		}
	}
	return out, nil
}

// GetProjectAvatar returns the avatar in use by a project. Projects without
// a chosen avatar use the first system avatar.
func (t *Tracker) GetProjectAvatar(ctx context.Context, token, projectKey string) (*schema.RemoteAvatar, error) {
	caller, _, err := t.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	rec, err := t.avatarProject(caller, projectKey, PermBrowse)
	if err != nil {
		return nil, err
	}
	avatar := t.st.Avatars[rec.AvatarID]
	if avatar == nil {
		avatar = t.defaultAvatar()
	}
	if avatar == nil {
		return nil, nil
	}
	out := remoteAvatar(avatar)
	return &out, nil
}

// SetProjectAvatar selects a system avatar or one of the project's own.
func (t *Tracker) SetProjectAvatar(ctx context.Context, token, projectKey string, avatarID int64) error {
	caller, log, err := t.authenticate(ctx, token)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	rec, err := t.avatarProject(caller, projectKey, PermProjectAdmin)
	if err != nil {
		return err
	}
	avatar := t.st.Avatars[avatarID]
	if avatar == nil || (!avatar.System && avatar.ProjectID != rec.ID) {
		return schema.PermissionFault("Avatar %d is not available to project %s.", avatarID, rec.Key)
	}
	rec.AvatarID = avatarID
	logx.WithProject(log, rec.Key).Info("project avatar set", "avatar", avatarID)
	t.publish(schema.TrackerEvent{Type: schema.EventProjectUpdated, Actor: caller, Project: rec.Key, Detail: "avatar set"})
	return nil
}

// SetNewProjectAvatar stores a new custom avatar and selects it.
func (t *Tracker) SetNewProjectAvatar(ctx context.Context, token, projectKey, contentType, base64Data string) error {
	caller, log, err := t.authenticate(ctx, token)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	rec, err := t.avatarProject(caller, projectKey, PermProjectAdmin)
	if err != nil {
		return err
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(base64Data))
	if err != nil || len(data) == 0 {
		return schema.RemoteFault("Avatar data is not valid base64.")
	}
	if len(data) > maxAvatarBytes {
		return schema.RemoteFault("Avatar exceeds %d bytes.", maxAvatarBytes)
	}
	detected := http.DetectContentType(data)
	if !strings.HasPrefix(detected, "image/") {
		return schema.RemoteFault("Avatar data is not an image.")
	}
	contentType = strings.TrimSpace(contentType)
	if contentType == "" {
		contentType = detected
	}
	id := t.st.nextID()
	t.st.Avatars[id] = &avatarRecord{ID: id, ProjectID: rec.ID, ContentType: contentType, Data: data}
	rec.AvatarID = id
	logx.WithProject(log, rec.Key).Info("project avatar uploaded", "avatar", id, "bytes", len(data))
	t.publish(schema.TrackerEvent{Type: schema.EventProjectUpdated, Actor: caller, Project: rec.Key, Detail: "avatar uploaded"})
	return nil
}

// DeleteProjectAvatar deletes a custom avatar. Projects using it fall back
// to the default avatar.
func (t *Tracker) DeleteProjectAvatar(ctx context.Context, token string, avatarID int64) error {
	caller, log, err := t.authenticate(ctx, token)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	avatar := t.st.Avatars[avatarID]
	if avatar == nil {
		return schema.RemoteFault("Avatar %d does not exist.", avatarID)
	}
	if avatar.System {
		return schema.RemoteFault("System avatar %d cannot be deleted.", avatarID)
	}
	rec := t.st.Projects[avatar.ProjectID]
	if err := t.requirePermission(caller, rec, PermProjectAdmin); err != nil {
		return err
	}
	delete(t.st.Avatars, avatarID)
	key := ""
	if rec != nil {
		key = rec.Key
		if rec.AvatarID == avatarID {
			rec.AvatarID = 0
		}
	}
	log.Info("project avatar deleted", "avatar", avatarID, "project", key)
	t.publish(schema.TrackerEvent{Type: schema.EventProjectUpdated, Actor: caller, Project: key, Detail: "avatar deleted"})
	return nil
}

// avatarProject requires t.mu. Avatar operations only declare permission
// faults, so a missing project is reported as one.
func (t *Tracker) avatarProject(username, key string, perm int64) (*projectRecord, error) {
	rec := t.st.projectByKey(strings.TrimSpace(key))
	if rec == nil {
		return nil, schema.PermissionFault("No project with key %q is visible to %s.", key, username)
	}
	if err := t.requirePermission(username, rec, perm); err != nil {
		return nil, err
	}
	return rec, nil
}

// defaultAvatar requires t.mu.
func (t *Tracker) defaultAvatar() *avatarRecord {
	var first *avatarRecord
	for _, avatar := range t.st.Avatars {
		if avatar.System && (first == nil || avatar.ID < first.ID) {
			first = avatar
		}
	}
	return first
}

func remoteAvatar(avatar *avatarRecord) schema.RemoteAvatar {
	out := schema.RemoteAvatar{
		ID:          avatar.ID,
		Type:        avatarOwnerType,
		ContentType: avatar.ContentType,
		System:      avatar.System,
		Base64Data:  base64.StdEncoding.EncodeToString(avatar.Data),
	}
	if !avatar.System {
		out.Owner = formatID(avatar.ProjectID)
	}
	return out
}
