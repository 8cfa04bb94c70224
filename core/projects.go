package core

import (
	"context"
	"regexp"
	"slices"
	"sort"
	"strings"

	"pkt.systems/jirasoap/internal/logx"
	"pkt.systems/jirasoap/schema"
)

var projectKeyPattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]{1,9}$`)

type projectInput struct {
	key, name, description, url, lead string
	permissionScheme                  *schema.RemotePermissionScheme
	notificationScheme                *schema.RemoteScheme
	securityScheme                    *schema.RemoteScheme
}

// CreateProject creates a project. Nil schemes select the default
// permission and notification schemes and no issue security.
func (t *Tracker) CreateProject(ctx context.Context, token, key, name, description, url, lead string, permissionScheme *schema.RemotePermissionScheme, notificationScheme, issueSecurityScheme *schema.RemoteScheme) (*schema.RemoteProject, error) {
	return t.createProject(ctx, token, projectInput{
		key:                key,
		name:               name,
		description:        description,
		url:                url,
		lead:               lead,
		permissionScheme:   permissionScheme,
		notificationScheme: notificationScheme,
		securityScheme:     issueSecurityScheme,
	})
}

// CreateProjectFromObject creates a project from a project record.
func (t *Tracker) CreateProjectFromObject(ctx context.Context, token string, project *schema.RemoteProject) (*schema.RemoteProject, error) {
	if project == nil {
		if _, _, err := t.authenticate(ctx, token); err != nil {
			return nil, err
		}
		return nil, schema.ValidationFault("Project must not be null.")
	}
	return t.createProject(ctx, token, projectInput{
		key:                project.Key,
		name:               project.Name,
		description:        project.Description,
		url:                project.URL,
		lead:               project.Lead,
		permissionScheme:   project.PermissionScheme,
		notificationScheme: project.NotificationScheme,
		securityScheme:     project.IssueSecurityScheme,
	})
}

func (t *Tracker) createProject(ctx context.Context, token string, in projectInput) (*schema.RemoteProject, error) {
	caller, log, err := t.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.requireAdmin(caller, "create projects"); err != nil {
		return nil, err
	}
	key := strings.TrimSpace(in.key)
	if !projectKeyPattern.MatchString(key) {
		return nil, schema.ValidationFault("Project key %q must be 2 to 10 upper case letters, digits or underscores starting with a letter.", key)
	}
	if t.st.projectByKey(key) != nil {
		return nil, schema.ValidationFault("A project with key %s already exists.", key)
	}
	rec := &projectRecord{Key: key}
	if err := t.applyProjectInput(rec, in); err != nil {
		return nil, err
	}
	rec.ID = t.st.nextID()
	t.st.Projects[rec.ID] = rec
	logx.WithProject(log, key).Info("project created", "lead", rec.Lead)
	t.publish(schema.TrackerEvent{Type: schema.EventProjectCreated, Actor: caller, Project: key, Subject: rec.Name})
	return t.remoteProject(rec, true), nil
}

// UpdateProject updates the project identified by key.
func (t *Tracker) UpdateProject(ctx context.Context, token string, project *schema.RemoteProject) (*schema.RemoteProject, error) {
	caller, log, err := t.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if project == nil {
		return nil, schema.ValidationFault("Project must not be null.")
	}
	rec := t.st.projectByKey(strings.TrimSpace(project.Key))
	if rec == nil {
		return nil, schema.ValidationFault("No project could be found with key %q.", project.Key)
	}
	if err := t.requirePermission(caller, rec, PermProjectAdmin); err != nil {
		return nil, err
	}
	in := projectInput{
		key:                rec.Key,
		name:               project.Name,
		description:        project.Description,
		url:                project.URL,
		lead:               project.Lead,
		permissionScheme:   project.PermissionScheme,
		notificationScheme: project.NotificationScheme,
		securityScheme:     project.IssueSecurityScheme,
	}
	if in.name == "" {
		in.name = rec.Name
	}
	if in.lead == "" {
		in.lead = rec.Lead
	}
	updated := *rec
	if err := t.applyProjectInput(&updated, in); err != nil {
		return nil, err
	}
	if project.PermissionScheme == nil {
		updated.PermissionSchemeID = rec.PermissionSchemeID
	}
	if project.NotificationScheme == nil {
		updated.NotificationSchemeID = rec.NotificationSchemeID
	}
	if project.IssueSecurityScheme == nil {
		updated.SecuritySchemeID = rec.SecuritySchemeID
	}
	*rec = updated
	logx.WithProject(log, rec.Key).Info("project updated")
	t.publish(schema.TrackerEvent{Type: schema.EventProjectUpdated, Actor: caller, Project: rec.Key, Subject: rec.Name})
	return t.remoteProject(rec, true), nil
}

// applyProjectInput requires t.mu.
func (t *Tracker) applyProjectInput(rec *projectRecord, in projectInput) error {
	name := strings.TrimSpace(in.name)
	if name == "" {
		return schema.ValidationFault("Project name must not be empty.")
	}
	for _, other := range t.st.Projects {
		if other.ID != rec.ID && strings.EqualFold(other.Name, name) {
			return schema.ValidationFault("A project with name %q already exists.", name)
		}
	}
	lead := strings.TrimSpace(in.lead)
	if lead == "" {
		return schema.ValidationFault("Project lead must not be empty.")
	}
	if _, ok := t.accounts.Lookup(lead); !ok {
		return schema.ValidationFault("Project lead %s does not exist.", lead)
	}
	permissionID := defaultPermissionSchemeID
	if in.permissionScheme != nil {
		permissionID = in.permissionScheme.ID
		if t.st.PermissionSchemes[permissionID] == nil {
			return schema.ValidationFault("Permission scheme %d does not exist.", permissionID)
		}
	}
	var notificationID int64
	if len(t.st.NotificationSchemes) > 0 {
		notificationID = t.st.NotificationSchemes[0].ID
	}
	if in.notificationScheme != nil {
		notificationID = in.notificationScheme.ID
		if t.notificationScheme(notificationID) == nil {
			return schema.ValidationFault("Notification scheme %d does not exist.", notificationID)
		}
	}
	var securityID int64
	if in.securityScheme != nil && in.securityScheme.ID != 0 {
		securityID = in.securityScheme.ID
		if t.st.SecuritySchemes[securityID] == nil {
			return schema.ValidationFault("Issue security scheme %d does not exist.", securityID)
		}
	}
	rec.Name = name
	rec.Description = strings.TrimSpace(in.description)
	rec.URL = strings.TrimSpace(in.url)
	rec.Lead = lead
	rec.PermissionSchemeID = permissionID
	rec.NotificationSchemeID = notificationID
	rec.SecuritySchemeID = securityID
	return nil
}

// DeleteProject removes a project with its issues and custom avatars.
func (t *Tracker) DeleteProject(ctx context.Context, token, projectKey string) error {
	caller, log, err := t.authenticate(ctx, token)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.requireAdmin(caller, "delete projects"); err != nil {
		return err
	}
	rec := t.st.projectByKey(strings.TrimSpace(projectKey))
	if rec == nil {
		return schema.RemoteFault("No project could be found with key %q.", projectKey)
	}
	for _, issue := range t.st.sortedIssues() {
		if issue.ProjectID == rec.ID {
			t.removeIssue(ctx, issue)
		}
	}
	for id, avatar := range t.st.Avatars {
		if avatar.ProjectID == rec.ID {
			delete(t.st.Avatars, id)
		}
	}
	for _, role := range t.st.Roles {
		delete(role.ProjectActors, rec.ID)
	}
	delete(t.st.Projects, rec.ID)
	logx.WithProject(log, rec.Key).Info("project deleted")
	t.publish(schema.TrackerEvent{Type: schema.EventProjectDeleted, Actor: caller, Project: rec.Key, Subject: rec.Name})
	return nil
}

// GetProjectByKey returns a project the caller can browse.
func (t *Tracker) GetProjectByKey(ctx context.Context, token, projectKey string) (*schema.RemoteProject, error) {
	caller, _, err := t.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	rec, err := t.browseProject(caller, projectKey)
	if err != nil {
		return nil, err
	}
	return t.remoteProject(rec, false), nil
}

// GetProjectByID returns a project the caller can browse.
func (t *Tracker) GetProjectByID(ctx context.Context, token string, id int64) (*schema.RemoteProject, error) {
	return t.projectByID(ctx, token, id, false)
}

// GetProjectWithSchemesByID returns a project including its schemes.
func (t *Tracker) GetProjectWithSchemesByID(ctx context.Context, token string, id int64) (*schema.RemoteProject, error) {
	return t.projectByID(ctx, token, id, true)
}

func (t *Tracker) projectByID(ctx context.Context, token string, id int64, withSchemes bool) (*schema.RemoteProject, error) {
	caller, _, err := t.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	rec := t.st.Projects[id]
	if rec == nil {
		return nil, schema.RemoteFault("No project could be found with id %d.", id)
	}
	if err := t.requirePermission(caller, rec, PermBrowse); err != nil {
		return nil, err
	}
	return t.remoteProject(rec, withSchemes), nil
}

// GetProjectsNoSchemes lists the projects the caller can browse.
func (t *Tracker) GetProjectsNoSchemes(ctx context.Context, token string) ([]schema.RemoteProject, error) {
	caller, _, err := t.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := []schema.RemoteProject{}
	for _, rec := range t.st.sortedProjects() {
		if t.hasPermission(caller, rec, PermBrowse) {
			out = append(out, *t.remoteProject(rec, false))
		}
	}
	return out, nil
}

// GetComponents lists the components of a project.
func (t *Tracker) GetComponents(ctx context.Context, token, projectKey string) ([]schema.RemoteComponent, error) {
	caller, _, err := t.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	rec, err := t.browseProject(caller, projectKey)
	if err != nil {
		return nil, err
	}
	return append([]schema.RemoteComponent{}, rec.Components...), nil
}

// AddComponent adds a component to a project. It is not part of the remote
// call catalogue; the CLI and tests use it to set projects up.
func (t *Tracker) AddComponent(ctx context.Context, token, projectKey, name string) (*schema.RemoteComponent, error) {
	caller, log, err := t.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	rec := t.st.projectByKey(strings.TrimSpace(projectKey))
	if rec == nil {
		return nil, schema.ValidationFault("No project could be found with key %q.", projectKey)
	}
	if err := t.requirePermission(caller, rec, PermProjectAdmin); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, schema.ValidationFault("Component name must not be empty.")
	}
	for _, c := range rec.Components {
		if strings.EqualFold(c.Name, name) {
			return nil, schema.ValidationFault("Component %q already exists in project %s.", name, rec.Key)
		}
	}
	component := schema.RemoteComponent{ID: formatID(t.st.nextID()), Name: name}
	rec.Components = append(rec.Components, component)
	sort.Slice(rec.Components, func(i, j int) bool { return rec.Components[i].Name < rec.Components[j].Name })
	logx.WithProject(log, rec.Key).Info("component added", "component", name)
	t.publish(schema.TrackerEvent{Type: schema.EventProjectUpdated, Actor: caller, Project: rec.Key, Subject: name, Detail: "component added"})
	return &component, nil
}

// GetVersions lists the versions of a project in sequence order.
func (t *Tracker) GetVersions(ctx context.Context, token, projectKey string) ([]schema.RemoteVersion, error) {
	caller, _, err := t.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	rec, err := t.browseProject(caller, projectKey)
	if err != nil {
		return nil, err
	}
	return append([]schema.RemoteVersion{}, rec.Versions...), nil
}

// AddVersion appends a version to a project.
func (t *Tracker) AddVersion(ctx context.Context, token, projectKey string, version *schema.RemoteVersion) (*schema.RemoteVersion, error) {
	caller, log, err := t.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	rec, err := t.adminProject(caller, projectKey)
	if err != nil {
		return nil, err
	}
	if version == nil || strings.TrimSpace(version.Name) == "" {
		return nil, schema.RemoteFault("Version name must not be empty.")
	}
	name := strings.TrimSpace(version.Name)
	if findVersion(rec, "", name) >= 0 {
		return nil, schema.RemoteFault("Version %q already exists in project %s.", name, rec.Key)
	}
	added := schema.RemoteVersion{
		ID:       formatID(t.st.nextID()),
		Name:     name,
		Archived: version.Archived,
		Released: version.Released,
		Sequence: int64(len(rec.Versions) + 1),
	}
	if version.ReleaseDate != nil {
		added.ReleaseDate = timePtr(*version.ReleaseDate)
	}
	rec.Versions = append(rec.Versions, added)
	logx.WithProject(log, rec.Key).Info("version added", "version", name)
	t.publish(schema.TrackerEvent{Type: schema.EventProjectUpdated, Actor: caller, Project: rec.Key, Subject: name, Detail: "version added"})
	return &added, nil
}

// ReleaseVersion sets the released flag and release date of a version
// identified by id or name.
func (t *Tracker) ReleaseVersion(ctx context.Context, token, projectKey string, version *schema.RemoteVersion) error {
	caller, log, err := t.authenticate(ctx, token)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	rec, err := t.adminProject(caller, projectKey)
	if err != nil {
		return err
	}
	if version == nil {
		return schema.RemoteFault("Version must not be null.")
	}
	idx := findVersion(rec, version.ID, version.Name)
	if idx < 0 {
		return schema.RemoteFault("Version %q does not exist in project %s.", version.Name, rec.Key)
	}
	v := &rec.Versions[idx]
	v.Released = version.Released
	v.ReleaseDate = nil
	if version.ReleaseDate != nil {
		v.ReleaseDate = timePtr(*version.ReleaseDate)
	} else if version.Released {
		v.ReleaseDate = timePtr(t.timestamp())
	}
	logx.WithProject(log, rec.Key).Info("version released", "version", v.Name, "released", v.Released)
	t.publish(schema.TrackerEvent{Type: schema.EventProjectUpdated, Actor: caller, Project: rec.Key, Subject: v.Name, Detail: "version released"})
	return nil
}

// ArchiveVersion sets the archived flag of a version.
func (t *Tracker) ArchiveVersion(ctx context.Context, token, projectKey, versionName string, archive bool) error {
	caller, log, err := t.authenticate(ctx, token)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	rec, err := t.adminProject(caller, projectKey)
	if err != nil {
		return err
	}
	idx := findVersion(rec, "", versionName)
	if idx < 0 {
		return schema.RemoteFault("Version %q does not exist in project %s.", versionName, rec.Key)
	}
	rec.Versions[idx].Archived = archive
	logx.WithProject(log, rec.Key).Info("version archived", "version", versionName, "archived", archive)
	t.publish(schema.TrackerEvent{Type: schema.EventProjectUpdated, Actor: caller, Project: rec.Key, Subject: versionName, Detail: "version archived"})
	return nil
}

// GetSecurityLevels lists the levels of the project's issue security
// scheme that the caller may set.
func (t *Tracker) GetSecurityLevels(ctx context.Context, token, projectKey string) ([]schema.RemoteSecurityLevel, error) {
	caller, _, err := t.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	rec := t.st.projectByKey(strings.TrimSpace(projectKey))
	if rec == nil || !t.hasPermission(caller, rec, PermBrowse) {
		return nil, schema.PermissionFault("No project with key %q is visible to %s.", projectKey, caller)
	}
	out := []schema.RemoteSecurityLevel{}
	scheme := t.st.SecuritySchemes[rec.SecuritySchemeID]
	if scheme == nil || !t.hasPermission(caller, rec, PermSetIssueSecurity) {
		return out, nil
	}
	for _, level := range scheme.Levels {
		if t.isAdmin(caller) || t.inGroup(caller, level.Group) {
			out = append(out, remoteSecurityLevel(level))
		}
	}
	return out, nil
}

// browseProject requires t.mu.
func (t *Tracker) browseProject(username, key string) (*projectRecord, error) {
	rec := t.st.projectByKey(strings.TrimSpace(key))
	if rec == nil {
		return nil, schema.RemoteFault("No project could be found with key %q.", key)
	}
	if err := t.requirePermission(username, rec, PermBrowse); err != nil {
		return nil, err
	}
	return rec, nil
}

// adminProject requires t.mu.
func (t *Tracker) adminProject(username, key string) (*projectRecord, error) {
	rec := t.st.projectByKey(strings.TrimSpace(key))
	if rec == nil {
		return nil, schema.RemoteFault("No project could be found with key %q.", key)
	}
	if err := t.requirePermission(username, rec, PermProjectAdmin); err != nil {
		return nil, err
	}
	return rec, nil
}

// remoteProject requires t.mu.
func (t *Tracker) remoteProject(rec *projectRecord, withSchemes bool) *schema.RemoteProject {
	out := &schema.RemoteProject{
		ID:          formatID(rec.ID),
		Key:         rec.Key,
		Name:        rec.Name,
		Description: rec.Description,
		Lead:        rec.Lead,
		URL:         rec.URL,
		ProjectURL:  t.cfg.BaseURL + "/browse/" + rec.Key,
	}
	if !withSchemes {
		return out
	}
	if scheme := t.st.PermissionSchemes[rec.PermissionSchemeID]; scheme != nil {
		out.PermissionScheme = remotePermissionScheme(scheme)
	}
	if scheme := t.notificationScheme(rec.NotificationSchemeID); scheme != nil {
		copied := *scheme
		out.NotificationScheme = &copied
	}
	if scheme := t.st.SecuritySchemes[rec.SecuritySchemeID]; scheme != nil {
		out.IssueSecurityScheme = &schema.RemoteScheme{
			ID:          scheme.ID,
			Name:        scheme.Name,
			Description: scheme.Description,
			Type:        securitySchemeType,
		}
	}
	return out
}

// notificationScheme requires t.mu.
func (t *Tracker) notificationScheme(id int64) *schema.RemoteScheme {
	for i := range t.st.NotificationSchemes {
		if t.st.NotificationSchemes[i].ID == id {
			return &t.st.NotificationSchemes[i]
		}
	}
	return nil
}

func findVersion(rec *projectRecord, id, name string) int {
	if id != "" {
		if idx := slices.IndexFunc(rec.Versions, func(v schema.RemoteVersion) bool { return v.ID == id }); idx >= 0 {
			return idx
		}
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return -1
	}
	return slices.IndexFunc(rec.Versions, func(v schema.RemoteVersion) bool { return strings.EqualFold(v.Name, name) })
}

func findComponent(rec *projectRecord, id, name string) int {
	if id != "" {
		if idx := slices.IndexFunc(rec.Components, func(c schema.RemoteComponent) bool { return c.ID == id }); idx >= 0 {
			return idx
		}
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return -1
	}
	return slices.IndexFunc(rec.Components, func(c schema.RemoteComponent) bool { return strings.EqualFold(c.Name, name) })
}

func remoteSecurityLevel(level securityLevelRecord) schema.RemoteSecurityLevel {
	return schema.RemoteSecurityLevel{
		ID:          formatID(level.ID),
		Name:        level.Name,
		Description: level.Description,
	}
}
