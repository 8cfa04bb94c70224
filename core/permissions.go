package core

import (
	"slices"

	"pkt.systems/jirasoap/schema"
)

const issueNotVisible = "This issue does not exist or you don't have permission to view it."

// inGroup requires t.mu. Every existing account is an implicit member of
// the users group.
func (t *Tracker) inGroup(username, group string) bool {
	if group == t.cfg.UsersGroup {
		_, ok := t.accounts.Lookup(username)
		return ok
	}
	rec := t.st.Groups[group]
	if rec == nil {
		return false
	}
	return slices.Contains(rec.Members, username)
}

// groupMembers requires t.mu.
func (t *Tracker) groupMembers(group string) []string {
	if group == t.cfg.UsersGroup {
		users := t.accounts.List()
		out := make([]string, 0, len(users))
		for _, u := range users {
			out = append(out, u.Name)
		}
		return out
	}
	rec := t.st.Groups[group]
	if rec == nil {
		return nil
	}
	return append([]string(nil), rec.Members...)
}

// hasPermission requires t.mu. Administrators hold every permission.
func (t *Tracker) hasPermission(username string, project *projectRecord, perm int64) bool {
	if t.isAdmin(username) {
		return true
	}
	if project == nil {
		return false
	}
	scheme := t.st.PermissionSchemes[project.PermissionSchemeID]
	if scheme == nil {
		scheme = t.st.PermissionSchemes[defaultPermissionSchemeID]
	}
	if scheme == nil {
		return false
	}
	for _, grant := range scheme.Grants {
		if grant.Permission != perm {
			continue
		}
		switch grant.Entity.Kind {
		case schema.EntityUser:
			if grant.Entity.Name == username {
				return true
			}
		default:
			if t.inGroup(username, grant.Entity.Name) {
				return true
			}
		}
	}
	if perm == PermProjectAdmin && project.Lead == username {
		return true
	}
	return false
}

// canSeeIssue requires t.mu.
func (t *Tracker) canSeeIssue(username string, issue *issueRecord) bool {
	project := t.st.Projects[issue.ProjectID]
	if !t.hasPermission(username, project, PermBrowse) {
		return false
	}
	if issue.SecurityLevelID == 0 || t.isAdmin(username) {
		return true
	}
	if issue.Reporter == username || issue.Assignee == username {
		return true
	}
	level, _ := t.st.securityLevel(issue.SecurityLevelID)
	if level == nil {
		return true
	}
	return t.inGroup(username, level.Group)
}

// visibleIssue resolves an issue key for the caller. Missing and hidden
// issues fail identically. Requires t.mu.
func (t *Tracker) visibleIssue(username, key string) (*issueRecord, *projectRecord, error) {
	issue := t.st.issueByKey(key)
	if issue == nil || !t.canSeeIssue(username, issue) {
		return nil, nil, schema.PermissionFault(issueNotVisible)
	}
	return issue, t.st.Projects[issue.ProjectID], nil
}

// visibleIssueByID is visibleIssue keyed by numeric id. Requires t.mu.
func (t *Tracker) visibleIssueByID(username string, id int64) (*issueRecord, *projectRecord, error) {
	issue := t.st.Issues[id]
	if issue == nil || !t.canSeeIssue(username, issue) {
		return nil, nil, schema.PermissionFault(issueNotVisible)
	}
	return issue, t.st.Projects[issue.ProjectID], nil
}

// requirePermission requires t.mu.
func (t *Tracker) requirePermission(username string, project *projectRecord, perm int64) error {
	if t.hasPermission(username, project, perm) {
		return nil
	}
	name, _ := permissionName(perm)
	if project == nil {
		return schema.PermissionFault("%s does not have the '%s' permission.", username, name)
	}
	return schema.PermissionFault("%s does not have the '%s' permission in project %s.", username, name, project.Key)
}
