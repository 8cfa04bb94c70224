package core

import (
	"context"
	"strings"

	"pkt.systems/jirasoap/internal/logx"
	"pkt.systems/jirasoap/schema"
)

// AddComment adds a comment to an issue. GroupLevel and RoleLevel restrict
// who can see it.
func (t *Tracker) AddComment(ctx context.Context, token, issueKey string, comment *schema.RemoteComment) error {
	caller, log, err := t.authenticate(ctx, token)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	issue, project, err := t.visibleIssue(caller, strings.TrimSpace(issueKey))
	if err != nil {
		return err
	}
	if err := t.requirePermission(caller, project, PermCommentIssue); err != nil {
		return err
	}
	if comment == nil || strings.TrimSpace(comment.Body) == "" {
		return schema.RemoteFault("Comment body must not be empty.")
	}
	group := strings.TrimSpace(comment.GroupLevel)
	role := strings.TrimSpace(comment.RoleLevel)
	if err := t.checkVisibility(caller, project, group, role); err != nil {
		return err
	}
	rec := t.addCommentLocked(issue, caller, comment.Body, group, role)
	issue.Updated = rec.Created
	logx.WithIssue(log, issue.Key).Info("comment added", "comment", rec.ID)
	return nil
}

// addCommentLocked requires t.mu held for writing.
func (t *Tracker) addCommentLocked(issue *issueRecord, author, body, group, role string) *commentRecord {
	now := t.timestamp()
	rec := &commentRecord{
		ID:           t.st.nextID(),
		IssueID:      issue.ID,
		Author:       author,
		Body:         body,
		GroupLevel:   group,
		RoleLevel:    role,
		UpdateAuthor: author,
		Created:      now,
		Updated:      now,
	}
	t.st.Comments[rec.ID] = rec
	project := t.st.Projects[issue.ProjectID]
	key := ""
	if project != nil {
		key = project.Key
	}
	t.publish(schema.TrackerEvent{Type: schema.EventIssueCommented, Actor: author, Project: key, Issue: issue.Key, Subject: formatID(rec.ID)})
	return rec
}

// GetComment returns a comment the caller can see.
func (t *Tracker) GetComment(ctx context.Context, token string, id int64) (*schema.RemoteComment, error) {
	caller, _, err := t.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	rec, _, _, err := t.visibleComment(caller, id)
	if err != nil {
		return nil, err
	}
	out := remoteComment(rec)
	return &out, nil
}

// GetComments lists the comments of an issue visible to the caller.
func (t *Tracker) GetComments(ctx context.Context, token, issueKey string) ([]schema.RemoteComment, error) {
	caller, _, err := t.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	issue, project, err := t.visibleIssue(caller, strings.TrimSpace(issueKey))
	if err != nil {
		return nil, err
	}
	out := []schema.RemoteComment{}
	for _, rec := range t.st.issueComments(issue.ID) {
		if t.canSeeRestricted(caller, project, rec.GroupLevel, rec.RoleLevel) {
			out = append(out, remoteComment(rec))
		}
	}
	return out, nil
}

// EditComment replaces the body and visibility of a comment.
func (t *Tracker) EditComment(ctx context.Context, token string, comment *schema.RemoteComment) (*schema.RemoteComment, error) {
	caller, log, err := t.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if comment == nil {
		return nil, schema.RemoteFault("Comment must not be null.")
	}
	id, ok := parseID(strings.TrimSpace(comment.ID))
	if !ok {
		return nil, schema.RemoteFault("Comment id %q is not valid.", comment.ID)
	}
	rec, issue, project, err := t.visibleComment(caller, id)
	if err != nil {
		return nil, err
	}
	if !t.canEditComment(caller, project, rec) {
		return nil, schema.PermissionFault("%s cannot edit comment %d.", caller, id)
	}
	if strings.TrimSpace(comment.Body) == "" {
		return nil, schema.RemoteFault("Comment body must not be empty.")
	}
	group := strings.TrimSpace(comment.GroupLevel)
	role := strings.TrimSpace(comment.RoleLevel)
	if err := t.checkVisibility(caller, project, group, role); err != nil {
		return nil, err
	}
	rec.Body = comment.Body
	rec.GroupLevel = group
	rec.RoleLevel = role
	rec.UpdateAuthor = caller
	rec.Updated = t.timestamp()
	logx.WithIssue(log, issue.Key).Info("comment edited", "comment", rec.ID)
	t.publish(schema.TrackerEvent{Type: schema.EventIssueCommented, Actor: caller, Project: project.Key, Issue: issue.Key, Subject: formatID(rec.ID), Detail: "edited"})
	out := remoteComment(rec)
	return &out, nil
}

// HasPermissionToEditComment reports whether the caller may edit a comment.
func (t *Tracker) HasPermissionToEditComment(ctx context.Context, token string, comment *schema.RemoteComment) (bool, error) {
	caller, _, err := t.authenticate(ctx, token)
	if err != nil {
		return false, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	if comment == nil {
		return false, schema.RemoteFault("Comment must not be null.")
	}
	id, ok := parseID(strings.TrimSpace(comment.ID))
	if !ok {
		return false, schema.RemoteFault("Comment id %q is not valid.", comment.ID)
	}
	rec, _, project, err := t.visibleComment(caller, id)
	if err != nil {
		return false, err
	}
	return t.canEditComment(caller, project, rec), nil
}

// visibleComment requires t.mu.
func (t *Tracker) visibleComment(caller string, id int64) (*commentRecord, *issueRecord, *projectRecord, error) {
	rec := t.st.Comments[id]
	if rec == nil {
		return nil, nil, nil, schema.RemoteFault("Comment %d does not exist.", id)
	}
	issue, project, err := t.visibleIssueByID(caller, rec.IssueID)
	if err != nil {
		return nil, nil, nil, err
	}
	if !t.canSeeRestricted(caller, project, rec.GroupLevel, rec.RoleLevel) {
		return nil, nil, nil, schema.PermissionFault("%s cannot see comment %d.", caller, id)
	}
	return rec, issue, project, nil
}

// canEditComment requires t.mu.
func (t *Tracker) canEditComment(caller string, project *projectRecord, rec *commentRecord) bool {
	if t.hasPermission(caller, project, PermCommentEditAll) {
		return true
	}
	return rec.Author == caller && t.hasPermission(caller, project, PermCommentEditOwn)
}

// checkVisibility requires t.mu. Callers may only restrict to a group they
// belong to or a role they hold in the project.
func (t *Tracker) checkVisibility(caller string, project *projectRecord, group, role string) error {
	if group != "" && role != "" {
		return schema.RemoteFault("Only one of group level and role level may be set.")
	}
	if group != "" {
		if !t.groupExists(group) {
			return schema.RemoteFault("Group %s does not exist.", group)
		}
		if !t.isAdmin(caller) && !t.inGroup(caller, group) {
			return schema.RemoteFault("You are not a member of group %s.", group)
		}
	}
	if role != "" {
		rec := t.roleByName(role)
		if rec == nil {
			return schema.RemoteFault("Project role %s does not exist.", role)
		}
		if !t.isAdmin(caller) && !t.inRole(caller, project, rec) {
			return schema.RemoteFault("You are not in project role %s.", role)
		}
	}
	return nil
}

// canSeeRestricted requires t.mu.
func (t *Tracker) canSeeRestricted(caller string, project *projectRecord, group, role string) bool {
	if t.isAdmin(caller) {
		return true
	}
	if group != "" && !t.inGroup(caller, group) {
		return false
	}
	if role != "" {
		rec := t.roleByName(role)
		if rec == nil || !t.inRole(caller, project, rec) {
			return false
		}
	}
	return true
}

func remoteComment(rec *commentRecord) schema.RemoteComment {
	return schema.RemoteComment{
		ID:           formatID(rec.ID),
		Author:       rec.Author,
		Body:         rec.Body,
		GroupLevel:   rec.GroupLevel,
		RoleLevel:    rec.RoleLevel,
		UpdateAuthor: rec.UpdateAuthor,
		Created:      timePtr(rec.Created),
		Updated:      timePtr(rec.Updated),
	}
}
