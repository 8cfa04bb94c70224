package core

import (
	"context"
	"slices"
	"sort"
	"strings"

	"pkt.systems/jirasoap/schema"
)

// GetProjectRoles lists every project role.
func (t *Tracker) GetProjectRoles(ctx context.Context, token string) ([]schema.RemoteProjectRole, error) {
	if _, _, err := t.authenticate(ctx, token); err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := []schema.RemoteProjectRole{}
	for _, role := range t.st.sortedRoles() {
		out = append(out, remoteRole(role))
	}
	return out, nil
}

// GetProjectRole returns a project role by id.
func (t *Tracker) GetProjectRole(ctx context.Context, token string, id int64) (*schema.RemoteProjectRole, error) {
	if _, _, err := t.authenticate(ctx, token); err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	role := t.st.Roles[id]
	if role == nil {
		return nil, schema.RemoteFault("Project role %d does not exist.", id)
	}
	out := remoteRole(role)
	return &out, nil
}

// CreateProjectRole creates a role with no actors.
func (t *Tracker) CreateProjectRole(ctx context.Context, token string, role *schema.RemoteProjectRole) (*schema.RemoteProjectRole, error) {
	caller, log, err := t.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.requireAdmin(caller, "create project roles"); err != nil {
		return nil, err
	}
	if role == nil || strings.TrimSpace(role.Name) == "" {
		return nil, schema.RemoteFault("Project role name must not be empty.")
	}
	name := strings.TrimSpace(role.Name)
	if t.roleByName(name) != nil {
		return nil, schema.RemoteFault("A project role named %q already exists.", name)
	}
	rec := &roleRecord{ID: t.st.nextID(), Name: name, Description: strings.TrimSpace(role.Description)}
	t.st.Roles[rec.ID] = rec
	log.Info("project role created", "role", name)
	t.publish(schema.TrackerEvent{Type: schema.EventRoleUpdated, Actor: caller, Subject: name, Detail: "created"})
	out := remoteRole(rec)
	return &out, nil
}

// UpdateProjectRole renames or re-describes a role.
func (t *Tracker) UpdateProjectRole(ctx context.Context, token string, role *schema.RemoteProjectRole) error {
	caller, log, err := t.authenticate(ctx, token)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.requireAdmin(caller, "update project roles"); err != nil {
		return err
	}
	rec, err := t.roleFor(role)
	if err != nil {
		return err
	}
	name := strings.TrimSpace(role.Name)
	if name == "" {
		return schema.RemoteFault("Project role name must not be empty.")
	}
	if other := t.roleByName(name); other != nil && other.ID != rec.ID {
		return schema.RemoteFault("A project role named %q already exists.", name)
	}
	if rec.Name != name {
		for _, comment := range t.st.Comments {
			if comment.RoleLevel == rec.Name {
				comment.RoleLevel = name
			}
		}
	}
	rec.Name = name
	rec.Description = strings.TrimSpace(role.Description)
	log.Info("project role updated", "role", rec.ID, "name", name)
	t.publish(schema.TrackerEvent{Type: schema.EventRoleUpdated, Actor: caller, Subject: name, Detail: "updated"})
	return nil
}

// DeleteProjectRole deletes a role. A role still restricting comments or
// worklogs is only deleted when confirm is set; those restrictions are
// then lifted.
func (t *Tracker) DeleteProjectRole(ctx context.Context, token string, role *schema.RemoteProjectRole, confirm bool) error {
	caller, log, err := t.authenticate(ctx, token)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.requireAdmin(caller, "delete project roles"); err != nil {
		return err
	}
	rec, err := t.roleFor(role)
	if err != nil {
		return err
	}
	roleID := formatID(rec.ID)
	used := 0
	for _, comment := range t.st.Comments {
		if comment.RoleLevel == rec.Name {
			used++
		}
	}
	for _, worklog := range t.st.Worklogs {
		if worklog.RoleLevelID == roleID {
			used++
		}
	}
	if used > 0 && !confirm {
		return schema.RemoteFault("Project role %s restricts %d comments or worklogs. Confirm to delete it.", rec.Name, used)
	}
	for _, comment := range t.st.Comments {
		if comment.RoleLevel == rec.Name {
			comment.RoleLevel = ""
		}
	}
	for _, worklog := range t.st.Worklogs {
		if worklog.RoleLevelID == roleID {
			worklog.RoleLevelID = ""
		}
	}
	delete(t.st.Roles, rec.ID)
	log.Info("project role deleted", "role", rec.Name, "released", used)
	t.publish(schema.TrackerEvent{Type: schema.EventRoleUpdated, Actor: caller, Subject: rec.Name, Detail: "deleted"})
	return nil
}

// IsProjectRoleNameUnique reports whether no role has the name.
func (t *Tracker) IsProjectRoleNameUnique(ctx context.Context, token, name string) (bool, error) {
	if _, _, err := t.authenticate(ctx, token); err != nil {
		return false, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.roleByName(strings.TrimSpace(name)) == nil, nil
}

// GetProjectRoleActors returns the actors of a role in a project.
func (t *Tracker) GetProjectRoleActors(ctx context.Context, token string, role *schema.RemoteProjectRole, project *schema.RemoteProject) (*schema.RemoteProjectRoleActors, error) {
	caller, _, err := t.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	rec, err := t.roleFor(role)
	if err != nil {
		return nil, err
	}
	proj, err := t.roleProject(project)
	if err != nil {
		return nil, err
	}
	if err := t.requirePermission(caller, proj, PermBrowse); err != nil {
		return nil, err
	}
	return &schema.RemoteProjectRoleActors{
		RemoteRoleActors: t.remoteRoleActors(rec, rec.actors(proj.ID)),
		Project:          t.remoteProject(proj, false),
	}, nil
}

// GetDefaultRoleActors returns the actors new projects start with.
func (t *Tracker) GetDefaultRoleActors(ctx context.Context, token string, role *schema.RemoteProjectRole) (*schema.RemoteRoleActors, error) {
	if _, _, err := t.authenticate(ctx, token); err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	rec, err := t.roleFor(role)
	if err != nil {
		return nil, err
	}
	out := t.remoteRoleActors(rec, rec.Defaults)
	return &out, nil
}

// AddActorsToProjectRole adds users or groups to a role in a project.
func (t *Tracker) AddActorsToProjectRole(ctx context.Context, token string, actors []string, role *schema.RemoteProjectRole, project *schema.RemoteProject, actorType string) error {
	return t.changeProjectActors(ctx, token, actors, role, project, actorType, true)
}

// RemoveActorsFromProjectRole removes users or groups from a role in a project.
func (t *Tracker) RemoveActorsFromProjectRole(ctx context.Context, token string, actors []string, role *schema.RemoteProjectRole, project *schema.RemoteProject, actorType string) error {
	return t.changeProjectActors(ctx, token, actors, role, project, actorType, false)
}

func (t *Tracker) changeProjectActors(ctx context.Context, token string, actors []string, role *schema.RemoteProjectRole, project *schema.RemoteProject, actorType string, add bool) error {
	caller, log, err := t.authenticate(ctx, token)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	rec, err := t.roleFor(role)
	if err != nil {
		return err
	}
	proj, err := t.roleProject(project)
	if err != nil {
		return err
	}
	if err := t.requirePermission(caller, proj, PermProjectAdmin); err != nil {
		return err
	}
	current := slices.Clone(rec.actors(proj.ID))
	next, err := t.editActors(current, actors, actorType, add)
	if err != nil {
		return err
	}
	if rec.ProjectActors == nil {
		rec.ProjectActors = make(map[int64][]actorRecord)
	}
	rec.ProjectActors[proj.ID] = next
	log.Info("project role actors changed", "role", rec.Name, "project", proj.Key, "type", actorType, "count", len(actors), "added", add)
	t.publish(schema.TrackerEvent{Type: schema.EventRoleUpdated, Actor: caller, Project: proj.Key, Subject: rec.Name, Detail: actorChangeDetail(add, actors)})
	return nil
}

// AddDefaultActorsToProjectRole adds default actors to a role.
func (t *Tracker) AddDefaultActorsToProjectRole(ctx context.Context, token string, actors []string, role *schema.RemoteProjectRole, actorType string) error {
	return t.changeDefaultActors(ctx, token, actors, role, actorType, true)
}

// RemoveDefaultActorsFromProjectRole removes default actors from a role.
func (t *Tracker) RemoveDefaultActorsFromProjectRole(ctx context.Context, token string, actors []string, role *schema.RemoteProjectRole, actorType string) error {
	return t.changeDefaultActors(ctx, token, actors, role, actorType, false)
}

func (t *Tracker) changeDefaultActors(ctx context.Context, token string, actors []string, role *schema.RemoteProjectRole, actorType string, add bool) error {
	caller, log, err := t.authenticate(ctx, token)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.requireAdmin(caller, "change default role actors"); err != nil {
		return err
	}
	rec, err := t.roleFor(role)
	if err != nil {
		return err
	}
	next, err := t.editActors(slices.Clone(rec.Defaults), actors, actorType, add)
	if err != nil {
		return err
	}
	rec.Defaults = next
	log.Info("default role actors changed", "role", rec.Name, "type", actorType, "count", len(actors), "added", add)
	t.publish(schema.TrackerEvent{Type: schema.EventRoleUpdated, Actor: caller, Subject: rec.Name, Detail: actorChangeDetail(add, actors)})
	return nil
}

// RemoveAllRoleActorsByNameAndType removes a user or group from every role,
// both default and per project.
func (t *Tracker) RemoveAllRoleActorsByNameAndType(ctx context.Context, token, name, actorType string) error {
	caller, log, err := t.authenticate(ctx, token)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.requireAdmin(caller, "remove role actors"); err != nil {
		return err
	}
	if !validActorType(actorType) {
		return schema.RemoteFault("Actor type %q is not valid.", actorType)
	}
	name = strings.TrimSpace(name)
	for _, role := range t.st.Roles {
		role.removeActor(actorType, name)
	}
	log.Info("role actor removed everywhere", "actor", name, "type", actorType)
	t.publish(schema.TrackerEvent{Type: schema.EventRoleUpdated, Actor: caller, Subject: name, Detail: "removed from all roles"})
	return nil
}

// RemoveAllRoleActorsByProject clears every role of a project.
func (t *Tracker) RemoveAllRoleActorsByProject(ctx context.Context, token string, project *schema.RemoteProject) error {
	caller, log, err := t.authenticate(ctx, token)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	proj, err := t.roleProject(project)
	if err != nil {
		return err
	}
	if err := t.requirePermission(caller, proj, PermProjectAdmin); err != nil {
		return err
	}
	for _, role := range t.st.Roles {
		if role.ProjectActors == nil {
			role.ProjectActors = make(map[int64][]actorRecord)
		}
		role.ProjectActors[proj.ID] = []actorRecord{}
	}
	log.Info("project role actors cleared", "project", proj.Key)
	t.publish(schema.TrackerEvent{Type: schema.EventRoleUpdated, Actor: caller, Project: proj.Key, Detail: "all actors removed"})
	return nil
}

// GetAssociatedNotificationSchemes lists the notification schemes of the
// projects in which the role has actors.
func (t *Tracker) GetAssociatedNotificationSchemes(ctx context.Context, token string, role *schema.RemoteProjectRole) ([]schema.RemoteScheme, error) {
	if _, _, err := t.authenticate(ctx, token); err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	rec, err := t.roleFor(role)
	if err != nil {
		return nil, err
	}
	out := []schema.RemoteScheme{}
	for _, id := range t.associatedSchemeIDs(rec, func(p *projectRecord) int64 { return p.NotificationSchemeID }) {
		if scheme := t.notificationScheme(id); scheme != nil {
			out = append(out, *scheme)
		}
	}
	return out, nil
}

// GetAssociatedPermissionSchemes lists the permission schemes of the
// projects in which the role has actors.
func (t *Tracker) GetAssociatedPermissionSchemes(ctx context.Context, token string, role *schema.RemoteProjectRole) ([]schema.RemoteScheme, error) {
	if _, _, err := t.authenticate(ctx, token); err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	rec, err := t.roleFor(role)
	if err != nil {
		return nil, err
	}
	out := []schema.RemoteScheme{}
	for _, id := range t.associatedSchemeIDs(rec, func(p *projectRecord) int64 { return p.PermissionSchemeID }) {
		if scheme := t.st.PermissionSchemes[id]; scheme != nil {
			out = append(out, remotePermissionScheme(scheme).RemoteScheme)
		}
	}
	return out, nil
}

// associatedSchemeIDs requires t.mu.
func (t *Tracker) associatedSchemeIDs(role *roleRecord, scheme func(*projectRecord) int64) []int64 {
	var ids []int64
	for _, project := range t.st.sortedProjects() {
		if len(role.actors(project.ID)) == 0 {
			continue
		}
		if id := scheme(project); !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// roleFor requires t.mu. Roles are matched by id, then by name.
func (t *Tracker) roleFor(role *schema.RemoteProjectRole) (*roleRecord, error) {
	if role == nil {
		return nil, schema.RemoteFault("Project role must not be null.")
	}
	if rec := t.st.Roles[role.ID]; rec != nil {
		return rec, nil
	}
	if rec := t.roleByName(strings.TrimSpace(role.Name)); rec != nil && role.ID == 0 {
		return rec, nil
	}
	return nil, schema.RemoteFault("Project role %d does not exist.", role.ID)
}

// roleProject requires t.mu. Projects are matched by key, then by id.
func (t *Tracker) roleProject(project *schema.RemoteProject) (*projectRecord, error) {
	if project == nil {
		return nil, schema.RemoteFault("Project must not be null.")
	}
	if rec := t.st.projectByKey(strings.TrimSpace(project.Key)); rec != nil {
		return rec, nil
	}
	if id, ok := parseID(project.ID); ok {
		if rec := t.st.Projects[id]; rec != nil {
			return rec, nil
		}
	}
	return nil, schema.RemoteFault("No project could be found with key %q.", project.Key)
}

// roleByName requires t.mu.
func (t *Tracker) roleByName(name string) *roleRecord {
	for _, role := range t.st.Roles {
		if strings.EqualFold(role.Name, name) {
			return role
		}
	}
	return nil
}

// inRole requires t.mu.
func (t *Tracker) inRole(username string, project *projectRecord, role *roleRecord) bool {
	if project == nil {
		return false
	}
	for _, actor := range role.actors(project.ID) {
		switch actor.Type {
		case userRoleActorType:
			if actor.Parameter == username {
				return true
			}
		case groupRoleActorType:
			if t.inGroup(username, actor.Parameter) {
				return true
			}
		}
	}
	return false
}

// editActors requires t.mu.
func (t *Tracker) editActors(current []actorRecord, names []string, actorType string, add bool) ([]actorRecord, error) {
	if !validActorType(actorType) {
		return nil, schema.RemoteFault("Actor type %q is not valid.", actorType)
	}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		actor := actorRecord{Type: actorType, Parameter: name}
		present := slices.Contains(current, actor)
		if !add {
			current = slices.DeleteFunc(current, func(a actorRecord) bool { return a == actor })
			continue
		}
		if present {
			continue
		}
		switch actorType {
		case userRoleActorType:
			if _, ok := t.accounts.Lookup(name); !ok {
				return nil, schema.RemoteFault("User %s does not exist.", name)
			}
		case groupRoleActorType:
			if !t.groupExists(name) {
				return nil, schema.RemoteFault("Group %s does not exist.", name)
			}
		}
		current = append(current, actor)
	}
	if current == nil {
		current = []actorRecord{}
	}
	return current, nil
}

// remoteRoleActors requires t.mu.
func (t *Tracker) remoteRoleActors(role *roleRecord, actors []actorRecord) schema.RemoteRoleActors {
	projectRole := remoteRole(role)
	out := schema.RemoteRoleActors{
		ProjectRole: &projectRole,
		RoleActors:  []schema.RemoteRoleActor{},
		Users:       []schema.RemoteUser{},
	}
	var everyone []string
	for _, actor := range actors {
		var members []string
		descriptor := actor.Parameter
		switch actor.Type {
		case userRoleActorType:
			members = []string{actor.Parameter}
			if user, ok := t.accounts.Lookup(actor.Parameter); ok && user.Fullname != "" {
				descriptor = user.Fullname
			}
		case groupRoleActorType:
			members = t.groupMembers(actor.Parameter)
		}
		out.RoleActors = append(out.RoleActors, schema.RemoteRoleActor{
			Descriptor:  descriptor,
			Parameter:   actor.Parameter,
			Type:        actor.Type,
			ProjectRole: &projectRole,
			Users:       t.remoteUsers(members),
		})
		for _, member := range members {
			if !slices.Contains(everyone, member) {
				everyone = append(everyone, member)
			}
		}
	}
	sort.Strings(everyone)
	out.Users = t.remoteUsers(everyone)
	return out
}

// actors returns the project's actors, or the defaults when the project
// never had its own.
func (r *roleRecord) actors(projectID int64) []actorRecord {
	if actors, ok := r.ProjectActors[projectID]; ok {
		return actors
	}
	return r.Defaults
}

func (r *roleRecord) removeActor(actorType, name string) {
	match := func(a actorRecord) bool { return a.Type == actorType && a.Parameter == name }
	r.Defaults = slices.DeleteFunc(r.Defaults, match)
	for id, actors := range r.ProjectActors {
		r.ProjectActors[id] = slices.DeleteFunc(actors, match)
	}
}

func remoteRole(role *roleRecord) schema.RemoteProjectRole {
	return schema.RemoteProjectRole{ID: role.ID, Name: role.Name, Description: role.Description}
}

func validActorType(actorType string) bool {
	return actorType == userRoleActorType || actorType == groupRoleActorType
}

func actorChangeDetail(add bool, actors []string) string {
	verb := "removed "
	if add {
		verb = "added "
	}
	return verb + strings.Join(actors, ",")
}
