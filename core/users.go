package core

import (
	"context"
	"errors"
	"regexp"
	"slices"
	"sort"
	"strings"

	"pkt.systems/jirasoap/internal/auth"
	"pkt.systems/jirasoap/schema"
)

var groupNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._ -]{0,254}$`)

// CreateUser creates an account. Administrators only.
func (t *Tracker) CreateUser(ctx context.Context, token, username, password, fullName, email string) (*schema.RemoteUser, error) {
	caller, log, err := t.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.requireAdmin(caller, "create users"); err != nil {
		return nil, err
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, schema.ValidationFault("Username must not be empty.")
	}
	if strings.TrimSpace(password) == "" {
		return nil, schema.ValidationFault("Password must not be empty.")
	}
	if strings.TrimSpace(fullName) == "" {
		return nil, schema.ValidationFault("Full name must not be empty.")
	}
	if email != "" && !strings.Contains(email, "@") {
		return nil, schema.ValidationFault("Email address %q is not valid.", email)
	}
	profile := schema.RemoteUser{Name: username, Fullname: strings.TrimSpace(fullName), Email: strings.TrimSpace(email)}
	if err := t.accounts.Create(profile, password); err != nil {
		switch {
		case errors.Is(err, auth.ErrUserExists):
			return nil, schema.ValidationFault("User %s already exists.", username)
		case errors.Is(err, auth.ErrInvalidUsername):
			return nil, schema.ValidationFault("Username %q is not valid.", username)
		}
		log.Error("user create failed", "user", username, "err", err)
		return nil, schema.RemoteFault("could not create user %s", username)
	}
	created, _ := t.accounts.Lookup(username)
	log.Info("user created", "user", username)
	t.publish(schema.TrackerEvent{Type: schema.EventUserCreated, Actor: caller, Subject: username})
	return &created, nil
}

// GetUser returns a user profile, or nil when the user does not exist.
func (t *Tracker) GetUser(ctx context.Context, token, username string) (*schema.RemoteUser, error) {
	if _, _, err := t.authenticate(ctx, token); err != nil {
		return nil, err
	}
	user, ok := t.accounts.Lookup(strings.TrimSpace(username))
	if !ok {
		return nil, nil
	}
	return &user, nil
}

// DeleteUser removes an account, its group memberships and its sessions.
func (t *Tracker) DeleteUser(ctx context.Context, token, username string) error {
	caller, log, err := t.authenticate(ctx, token)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.requireAdmin(caller, "delete users"); err != nil {
		return err
	}
	username = strings.TrimSpace(username)
	if username == caller {
		return schema.ValidationFault("You cannot delete the currently logged in user.")
	}
	if _, ok := t.accounts.Lookup(username); !ok {
		return schema.ValidationFault("User %s does not exist.", username)
	}
	for _, project := range t.st.sortedProjects() {
		if project.Lead == username {
			return schema.ValidationFault("User %s is the lead of project %s.", username, project.Key)
		}
	}
	if err := t.accounts.Delete(username); err != nil {
		log.Error("user delete failed", "user", username, "err", err)
		return schema.RemoteFault("could not delete user %s", username)
	}
	for _, group := range t.st.Groups {
		group.Members = slices.DeleteFunc(group.Members, func(member string) bool { return member == username })
	}
	for _, role := range t.st.Roles {
		role.removeActor(userRoleActorType, username)
	}
	dropped := t.sessions.dropUser(username)
	log.Info("user deleted", "user", username, "sessions", dropped)
	t.publish(schema.TrackerEvent{Type: schema.EventUserDeleted, Actor: caller, Subject: username})
	return nil
}

// CreateGroup creates a group, optionally with a first member.
func (t *Tracker) CreateGroup(ctx context.Context, token, groupName string, firstUser *schema.RemoteUser) (*schema.RemoteGroup, error) {
	caller, log, err := t.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.requireAdmin(caller, "create groups"); err != nil {
		return nil, err
	}
	groupName = strings.TrimSpace(groupName)
	if !groupNamePattern.MatchString(groupName) {
		return nil, schema.ValidationFault("Group name %q is not valid.", groupName)
	}
	if t.groupExists(groupName) {
		return nil, schema.ValidationFault("Group %s already exists.", groupName)
	}
	rec := &groupRecord{Name: groupName}
	if firstUser != nil && firstUser.Name != "" {
		if _, ok := t.accounts.Lookup(firstUser.Name); !ok {
			return nil, schema.ValidationFault("User %s does not exist.", firstUser.Name)
		}
		rec.Members = []string{firstUser.Name}
	}
	t.st.Groups[groupName] = rec
	log.Info("group created", "group", groupName)
	t.publish(schema.TrackerEvent{Type: schema.EventGroupUpdated, Actor: caller, Subject: groupName, Detail: "created"})
	return t.remoteGroup(groupName), nil
}

// GetGroup returns a group with its members, or nil when it does not exist.
func (t *Tracker) GetGroup(ctx context.Context, token, groupName string) (*schema.RemoteGroup, error) {
	caller, _, err := t.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	if err := t.requireAdmin(caller, "view groups"); err != nil {
		return nil, err
	}
	groupName = strings.TrimSpace(groupName)
	if !t.groupExists(groupName) {
		return nil, nil
	}
	return t.remoteGroup(groupName), nil
}

// UpdateGroup replaces the member list of a group.
func (t *Tracker) UpdateGroup(ctx context.Context, token string, group *schema.RemoteGroup) (*schema.RemoteGroup, error) {
	caller, log, err := t.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.requireAdmin(caller, "update groups"); err != nil {
		return nil, err
	}
	if group == nil {
		return nil, schema.ValidationFault("Group must not be null.")
	}
	rec, err := t.mutableGroup(group.Name)
	if err != nil {
		return nil, err
	}
	members := make([]string, 0, len(group.Users))
	for _, user := range group.Users {
		if _, ok := t.accounts.Lookup(user.Name); !ok {
			return nil, schema.ValidationFault("User %s does not exist.", user.Name)
		}
		if !slices.Contains(members, user.Name) {
			members = append(members, user.Name)
		}
	}
	sort.Strings(members)
	if rec.Name == t.cfg.AdminGroup && len(members) == 0 {
		return nil, schema.ValidationFault("Group %s must keep at least one member.", rec.Name)
	}
	rec.Members = members
	log.Info("group updated", "group", rec.Name, "members", len(members))
	t.publish(schema.TrackerEvent{Type: schema.EventGroupUpdated, Actor: caller, Subject: rec.Name, Detail: "updated"})
	return t.remoteGroup(rec.Name), nil
}

// DeleteGroup removes a group. Comment and worklog visibility restricted to
// the group moves to swapGroup when given.
func (t *Tracker) DeleteGroup(ctx context.Context, token, groupName, swapGroup string) error {
	caller, log, err := t.authenticate(ctx, token)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.requireAdmin(caller, "delete groups"); err != nil {
		return err
	}
	groupName = strings.TrimSpace(groupName)
	swapGroup = strings.TrimSpace(swapGroup)
	if groupName == t.cfg.AdminGroup || groupName == t.cfg.UsersGroup {
		return schema.ValidationFault("Group %s cannot be deleted.", groupName)
	}
	if t.st.Groups[groupName] == nil {
		return schema.ValidationFault("Group %s does not exist.", groupName)
	}
	if swapGroup != "" && (swapGroup == groupName || !t.groupExists(swapGroup)) {
		return schema.ValidationFault("Swap group %s is not valid.", swapGroup)
	}
	for _, comment := range t.st.Comments {
		if comment.GroupLevel == groupName {
			comment.GroupLevel = swapGroup
		}
	}
	for _, worklog := range t.st.Worklogs {
		if worklog.GroupLevel == groupName {
			worklog.GroupLevel = swapGroup
		}
	}
	for _, scheme := range t.st.PermissionSchemes {
		scheme.Grants = slices.DeleteFunc(scheme.Grants, func(g grantRecord) bool {
			return g.Entity.Kind != schema.EntityUser && g.Entity.Name == groupName
		})
	}
	for _, role := range t.st.Roles {
		role.removeActor(groupRoleActorType, groupName)
	}
	delete(t.st.Groups, groupName)
	log.Info("group deleted", "group", groupName, "swap", swapGroup)
	t.publish(schema.TrackerEvent{Type: schema.EventGroupDeleted, Actor: caller, Subject: groupName, Detail: swapGroup})
	return nil
}

// AddUserToGroup adds a member. Adding an existing member is a no-op.
func (t *Tracker) AddUserToGroup(ctx context.Context, token string, group *schema.RemoteGroup, user *schema.RemoteUser) error {
	return t.changeMembership(ctx, token, group, user, true)
}

// RemoveUserFromGroup removes a member. The last administrator cannot be removed.
func (t *Tracker) RemoveUserFromGroup(ctx context.Context, token string, group *schema.RemoteGroup, user *schema.RemoteUser) error {
	return t.changeMembership(ctx, token, group, user, false)
}

func (t *Tracker) changeMembership(ctx context.Context, token string, group *schema.RemoteGroup, user *schema.RemoteUser, add bool) error {
	caller, log, err := t.authenticate(ctx, token)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.requireAdmin(caller, "change group membership"); err != nil {
		return err
	}
	if group == nil || user == nil {
		return schema.ValidationFault("Group and user must not be null.")
	}
	rec, err := t.mutableGroup(group.Name)
	if err != nil {
		return err
	}
	if _, ok := t.accounts.Lookup(user.Name); !ok {
		return schema.ValidationFault("User %s does not exist.", user.Name)
	}
	present := slices.Contains(rec.Members, user.Name)
	switch {
	case add && present, !add && !present:
		return nil
	case add:
		rec.Members = append(rec.Members, user.Name)
		sort.Strings(rec.Members)
	default:
		if rec.Name == t.cfg.AdminGroup && len(rec.Members) == 1 {
			return schema.ValidationFault("Cannot remove the last member of %s.", rec.Name)
		}
		rec.Members = slices.DeleteFunc(rec.Members, func(member string) bool { return member == user.Name })
	}
	detail := "removed " + user.Name
	if add {
		detail = "added " + user.Name
	}
	log.Info("group membership changed", "group", rec.Name, "user", user.Name, "added", add)
	t.publish(schema.TrackerEvent{Type: schema.EventGroupUpdated, Actor: caller, Subject: rec.Name, Detail: detail})
	return nil
}

// groupExists requires t.mu.
func (t *Tracker) groupExists(name string) bool {
	return name == t.cfg.UsersGroup || t.st.Groups[name] != nil
}

// mutableGroup requires t.mu. The users group is derived from the account
// list and cannot be edited.
func (t *Tracker) mutableGroup(name string) (*groupRecord, error) {
	name = strings.TrimSpace(name)
	if name == t.cfg.UsersGroup {
		return nil, schema.ValidationFault("Membership of %s follows the user list and cannot be changed.", name)
	}
	rec := t.st.Groups[name]
	if rec == nil {
		return nil, schema.ValidationFault("Group %s does not exist.", name)
	}
	return rec, nil
}

// remoteGroup requires t.mu.
func (t *Tracker) remoteGroup(name string) *schema.RemoteGroup {
	out := &schema.RemoteGroup{Name: name, Users: []schema.RemoteUser{}}
	for _, member := range t.groupMembers(name) {
		if user, ok := t.accounts.Lookup(member); ok {
			out.Users = append(out.Users, user)
		}
	}
	return out
}

// remoteUsers requires t.mu.
func (t *Tracker) remoteUsers(names []string) []schema.RemoteUser {
	out := []schema.RemoteUser{}
	for _, name := range names {
		if user, ok := t.accounts.Lookup(name); ok {
			out = append(out, user)
		}
	}
	return out
}
