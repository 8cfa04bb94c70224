package core

import (
	"context"
	"slices"
	"sort"
	"strings"

	"pkt.systems/jirasoap/schema"
)

// GetNotificationSchemes lists the notification schemes.
func (t *Tracker) GetNotificationSchemes(ctx context.Context, token string) ([]schema.RemoteScheme, error) {
	caller, _, err := t.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	if err := t.requireAdmin(caller, "view notification schemes"); err != nil {
		return nil, err
	}
	return append([]schema.RemoteScheme{}, t.st.NotificationSchemes...), nil
}

// GetPermissionSchemes lists the permission schemes with their mappings.
func (t *Tracker) GetPermissionSchemes(ctx context.Context, token string) ([]schema.RemotePermissionScheme, error) {
	caller, _, err := t.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	if err := t.requireAdmin(caller, "view permission schemes"); err != nil {
		return nil, err
	}
	out := []schema.RemotePermissionScheme{}
	for _, rec := range t.sortedPermissionSchemes() {
		out = append(out, *remotePermissionScheme(rec))
	}
	return out, nil
}

// GetSecuritySchemes lists the issue security schemes.
func (t *Tracker) GetSecuritySchemes(ctx context.Context, token string) ([]schema.RemoteScheme, error) {
	caller, _, err := t.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	if err := t.requireAdmin(caller, "view issue security schemes"); err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(t.st.SecuritySchemes))
	for id := range t.st.SecuritySchemes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := []schema.RemoteScheme{}
	for _, id := range ids {
		rec := t.st.SecuritySchemes[id]
		out = append(out, schema.RemoteScheme{ID: rec.ID, Name: rec.Name, Description: rec.Description, Type: securitySchemeType})
	}
	return out, nil
}

// GetAllPermissions lists every permission the tracker knows.
func (t *Tracker) GetAllPermissions(ctx context.Context, token string) ([]schema.RemotePermission, error) {
	caller, _, err := t.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	if err := t.requireAdmin(caller, "view permissions"); err != nil {
		return nil, err
	}
	return append([]schema.RemotePermission{}, permissionNames...), nil
}

// CreatePermissionScheme creates an empty permission scheme.
func (t *Tracker) CreatePermissionScheme(ctx context.Context, token, name, description string) (*schema.RemotePermissionScheme, error) {
	caller, log, err := t.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.requireAdmin(caller, "create permission schemes"); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, schema.ValidationFault("Permission scheme name must not be empty.")
	}
	if t.permissionSchemeByName(name) != nil {
		return nil, schema.ValidationFault("A permission scheme named %q already exists.", name)
	}
	rec := &permissionSchemeRecord{ID: t.st.nextID(), Name: name, Description: strings.TrimSpace(description)}
	t.st.PermissionSchemes[rec.ID] = rec
	log.Info("permission scheme created", "scheme", name)
	t.publish(schema.TrackerEvent{Type: schema.EventSchemeUpdated, Actor: caller, Subject: name, Detail: "created"})
	return remotePermissionScheme(rec), nil
}

// AddPermissionTo grants a permission to a user or group in a scheme.
func (t *Tracker) AddPermissionTo(ctx context.Context, token string, scheme *schema.RemotePermissionScheme, permission *schema.RemotePermission, entity *schema.RemoteEntity) (*schema.RemotePermissionScheme, error) {
	return t.changeGrant(ctx, token, scheme, permission, entity, true)
}

// DeletePermissionFrom revokes a permission from a user or group in a scheme.
func (t *Tracker) DeletePermissionFrom(ctx context.Context, token string, scheme *schema.RemotePermissionScheme, permission *schema.RemotePermission, entity *schema.RemoteEntity) (*schema.RemotePermissionScheme, error) {
	return t.changeGrant(ctx, token, scheme, permission, entity, false)
}

func (t *Tracker) changeGrant(ctx context.Context, token string, scheme *schema.RemotePermissionScheme, permission *schema.RemotePermission, entity *schema.RemoteEntity, add bool) (*schema.RemotePermissionScheme, error) {
	caller, log, err := t.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.requireAdmin(caller, "change permission schemes"); err != nil {
		return nil, err
	}
	if scheme == nil || permission == nil || entity == nil {
		return nil, schema.ValidationFault("Scheme, permission and entity are required.")
	}
	rec := t.st.PermissionSchemes[scheme.ID]
	if rec == nil {
		rec = t.permissionSchemeByName(scheme.Name)
	}
	if rec == nil {
		return nil, schema.ValidationFault("Permission scheme %d does not exist.", scheme.ID)
	}
	name, ok := permissionName(permission.Permission)
	if !ok {
		return nil, schema.ValidationFault("Permission %d does not exist.", permission.Permission)
	}
	grant := grantRecord{Permission: permission.Permission, Entity: schema.RemoteEntity{Kind: entity.Kind, Name: strings.TrimSpace(entity.Name)}}
	switch grant.Entity.Kind {
	case schema.EntityUser:
		if _, ok := t.accounts.Lookup(grant.Entity.Name); !ok && add {
			return nil, schema.ValidationFault("User %s does not exist.", grant.Entity.Name)
		}
	case schema.EntityGroup:
		if !t.groupExists(grant.Entity.Name) && add {
			return nil, schema.ValidationFault("Group %s does not exist.", grant.Entity.Name)
		}
	default:
		return nil, schema.ValidationFault("Entity kind %q is not valid.", entity.Kind)
	}
	present := slices.Contains(rec.Grants, grant)
	switch {
	case add && !present:
		rec.Grants = append(rec.Grants, grant)
	case !add && present:
		rec.Grants = slices.DeleteFunc(rec.Grants, func(g grantRecord) bool { return g == grant })
	case !add:
		return nil, schema.ValidationFault("%s %s does not hold %s in %s.", grant.Entity.Kind, grant.Entity.Name, name, rec.Name)
	}
	verb := "revoked"
	if add {
		verb = "granted"
	}
	log.Info("permission "+verb, "scheme", rec.Name, "permission", name, "entity", grant.Entity.Name, "kind", string(grant.Entity.Kind))
	t.publish(schema.TrackerEvent{Type: schema.EventSchemeUpdated, Actor: caller, Subject: rec.Name, Detail: verb + " " + name + " to " + grant.Entity.Name})
	return remotePermissionScheme(rec), nil
}

// DeletePermissionScheme deletes a permission scheme no project uses.
func (t *Tracker) DeletePermissionScheme(ctx context.Context, token, name string) error {
	caller, log, err := t.authenticate(ctx, token)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.requireAdmin(caller, "delete permission schemes"); err != nil {
		return err
	}
	rec := t.permissionSchemeByName(strings.TrimSpace(name))
	if rec == nil {
		return schema.ValidationFault("Permission scheme %q does not exist.", name)
	}
	if rec.ID == defaultPermissionSchemeID {
		return schema.ValidationFault("The default permission scheme cannot be deleted.")
	}
	for _, project := range t.st.sortedProjects() {
		if project.PermissionSchemeID == rec.ID {
			return schema.ValidationFault("Permission scheme %q is used by project %s.", rec.Name, project.Key)
		}
	}
	delete(t.st.PermissionSchemes, rec.ID)
	log.Info("permission scheme deleted", "scheme", rec.Name)
	t.publish(schema.TrackerEvent{Type: schema.EventSchemeUpdated, Actor: caller, Subject: rec.Name, Detail: "deleted"})
	return nil
}

// permissionSchemeByName requires t.mu.
func (t *Tracker) permissionSchemeByName(name string) *permissionSchemeRecord {
	for _, rec := range t.st.PermissionSchemes {
		if strings.EqualFold(rec.Name, name) {
			return rec
		}
	}
	return nil
}

// sortedPermissionSchemes requires t.mu.
func (t *Tracker) sortedPermissionSchemes() []*permissionSchemeRecord {
	out := make([]*permissionSchemeRecord, 0, len(t.st.PermissionSchemes))
	for _, rec := range t.st.PermissionSchemes {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// remotePermissionScheme groups the grants of a scheme by permission.
func remotePermissionScheme(rec *permissionSchemeRecord) *schema.RemotePermissionScheme {
	out := &schema.RemotePermissionScheme{
		RemoteScheme: schema.RemoteScheme{
			ID:          rec.ID,
			Name:        rec.Name,
			Description: rec.Description,
			Type:        permissionSchemeType,
		},
		PermissionMappings: []schema.RemotePermissionMapping{},
	}
	index := map[int64]int{}
	for _, grant := range rec.Grants {
		i, ok := index[grant.Permission]
		if !ok {
			name, _ := permissionName(grant.Permission)
			out.PermissionMappings = append(out.PermissionMappings, schema.RemotePermissionMapping{
				Permission:     &schema.RemotePermission{Name: name, Permission: grant.Permission},
				RemoteEntities: []schema.RemoteEntity{},
			})
			i = len(out.PermissionMappings) - 1
			index[grant.Permission] = i
		}
		out.PermissionMappings[i].RemoteEntities = append(out.PermissionMappings[i].RemoteEntities, grant.Entity)
	}
	sort.SliceStable(out.PermissionMappings, func(i, j int) bool {
		return out.PermissionMappings[i].Permission.Permission < out.PermissionMappings[j].Permission.Permission
	})
	return out
}
