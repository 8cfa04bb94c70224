package core

import (
	"context"

	"pkt.systems/jirasoap/schema"
)

// Issue type ids.
const (
	TypeBug         = "1"
	TypeNewFeature  = "2"
	TypeTask        = "3"
	TypeImprovement = "4"
	TypeSubTask     = "5"
)

// Status ids.
const (
	StatusOpen       = "1"
	StatusInProgress = "3"
	StatusReopened   = "4"
	StatusResolved   = "5"
	StatusClosed     = "6"
)

// Priority ids.
const (
	PriorityBlocker  = "1"
	PriorityCritical = "2"
	PriorityMajor    = "3"
	PriorityMinor    = "4"
	PriorityTrivial  = "5"
)

// Resolution ids.
const (
	ResolutionFixed           = "1"
	ResolutionWontFix         = "2"
	ResolutionDuplicate       = "3"
	ResolutionIncomplete      = "4"
	ResolutionCannotReproduce = "5"
)

// Permission constants.
const (
	PermAdminister       int64 = 0
	PermUse              int64 = 1
	PermBrowse           int64 = 10
	PermCreateIssue      int64 = 11
	PermEditIssue        int64 = 12
	PermAssignIssue      int64 = 13
	PermResolveIssue     int64 = 14
	PermCommentIssue     int64 = 15
	PermDeleteIssue      int64 = 16
	PermAssignableUser   int64 = 17
	PermCloseIssue       int64 = 18
	PermCreateAttachment int64 = 19
	PermWorkIssue        int64 = 20
	PermLinkIssue        int64 = 21
	PermProjectAdmin     int64 = 23
	PermMoveIssue        int64 = 25
	PermSetIssueSecurity int64 = 26
	PermScheduleIssue    int64 = 28
	PermModifyReporter   int64 = 30
	PermCommentEditAll   int64 = 34
	PermCommentEditOwn   int64 = 35
	PermWorklogEditOwn   int64 = 40
	PermWorklogEditAll   int64 = 41
	PermWorklogDeleteOwn int64 = 42
	PermWorklogDeleteAll int64 = 43
	PermSystemAdminister int64 = 44
)

const (
	defaultPermissionSchemeID int64 = 0

	userRoleActorType  = "atlassian-user-role-actor"
	groupRoleActorType = "atlassian-group-role-actor"
)

var permissionNames = []schema.RemotePermission{
	{Name: "Administer", Permission: PermAdminister},
	{Name: "Use", Permission: PermUse},
	{Name: "Browse Projects", Permission: PermBrowse},
	{Name: "Create Issues", Permission: PermCreateIssue},
	{Name: "Edit Issues", Permission: PermEditIssue},
	{Name: "Assign Issues", Permission: PermAssignIssue},
	{Name: "Resolve Issues", Permission: PermResolveIssue},
	{Name: "Add Comments", Permission: PermCommentIssue},
	{Name: "Delete Issues", Permission: PermDeleteIssue},
	{Name: "Assignable User", Permission: PermAssignableUser},
	{Name: "Close Issues", Permission: PermCloseIssue},
	{Name: "Create Attachments", Permission: PermCreateAttachment},
	{Name: "Work On Issues", Permission: PermWorkIssue},
	{Name: "Link Issues", Permission: PermLinkIssue},
	{Name: "Administer Projects", Permission: PermProjectAdmin},
	{Name: "Move Issues", Permission: PermMoveIssue},
	{Name: "Set Issue Security", Permission: PermSetIssueSecurity},
	{Name: "Schedule Issues", Permission: PermScheduleIssue},
	{Name: "Modify Reporter", Permission: PermModifyReporter},
	{Name: "Edit All Comments", Permission: PermCommentEditAll},
	{Name: "Edit Own Comments", Permission: PermCommentEditOwn},
	{Name: "Edit Own Worklogs", Permission: PermWorklogEditOwn},
	{Name: "Edit All Worklogs", Permission: PermWorklogEditAll},
	{Name: "Delete Own Worklogs", Permission: PermWorklogDeleteOwn},
	{Name: "Delete All Worklogs", Permission: PermWorklogDeleteAll},
	{Name: "System Administer", Permission: PermSystemAdminister},
}

func permissionName(perm int64) (string, bool) {
	for _, p := range permissionNames {
		if p.Permission == perm {
			return p.Name, true
		}
	}
	return "", false
}

var priorities = []schema.RemotePriority{
	{ID: PriorityBlocker, Name: "Blocker", Description: "Blocks development and/or testing work, production could not run.", Icon: "priority_blocker.gif", Color: "#cc0000"},
	{ID: PriorityCritical, Name: "Critical", Description: "Crashes, loss of data, severe memory leak.", Icon: "priority_critical.gif", Color: "#ff0000"},
	{ID: PriorityMajor, Name: "Major", Description: "Major loss of function.", Icon: "priority_major.gif", Color: "#009900"},
	{ID: PriorityMinor, Name: "Minor", Description: "Minor loss of function, or other problem where easy workaround is present.", Icon: "priority_minor.gif", Color: "#006600"},
	{ID: PriorityTrivial, Name: "Trivial", Description: "Cosmetic problem like misspelt words or misaligned text.", Icon: "priority_trivial.gif", Color: "#003300"},
}

var resolutions = []schema.RemoteResolution{
	{ID: ResolutionFixed, Name: "Fixed", Description: "A fix for this issue is checked into the tree and tested."},
	{ID: ResolutionWontFix, Name: "Won't Fix", Description: "The problem described is an issue which will never be fixed."},
	{ID: ResolutionDuplicate, Name: "Duplicate", Description: "The problem is a duplicate of an existing issue."},
	{ID: ResolutionIncomplete, Name: "Incomplete", Description: "The problem is not completely described."},
	{ID: ResolutionCannotReproduce, Name: "Cannot Reproduce", Description: "All attempts at reproducing this issue failed."},
}

var issueTypes = []schema.RemoteIssueType{
	{ID: TypeBug, Name: "Bug", Description: "A problem which impairs or prevents the functions of the product.", Icon: "bug.gif"},
	{ID: TypeNewFeature, Name: "New Feature", Description: "A new feature of the product, which has yet to be developed.", Icon: "newfeature.gif"},
	{ID: TypeTask, Name: "Task", Description: "A task that needs to be done.", Icon: "task.gif"},
	{ID: TypeImprovement, Name: "Improvement", Description: "An improvement or enhancement to an existing feature or task.", Icon: "improvement.gif"},
	{ID: TypeSubTask, Name: "Sub-task", Description: "The sub-task of the issue", Icon: "issue_subtask.gif", SubTask: true},
}

var statuses = []schema.RemoteStatus{
	{ID: StatusOpen, Name: "Open", Description: "The issue is open and ready for the assignee to start work on it.", Icon: "status_open.gif"},
	{ID: StatusInProgress, Name: "In Progress", Description: "This issue is being actively worked on at the moment by the assignee.", Icon: "status_inprogress.gif"},
	{ID: StatusReopened, Name: "Reopened", Description: "This issue was once resolved, but the resolution was deemed incorrect.", Icon: "status_reopened.gif"},
	{ID: StatusResolved, Name: "Resolved", Description: "A resolution has been taken, and it is awaiting verification by reporter.", Icon: "status_resolved.gif"},
	{ID: StatusClosed, Name: "Closed", Description: "The issue is considered finished, the resolution is correct.", Icon: "status_closed.gif"},
}

func (t *Tracker) iconURL(name string) string {
	return t.cfg.BaseURL + "/images/icons/" + name
}

// GetPriorities lists the priority constants.
func (t *Tracker) GetPriorities(ctx context.Context, token string) ([]schema.RemotePriority, error) {
	if _, _, err := t.authenticate(ctx, token); err != nil {
		return nil, err
	}
	out := make([]schema.RemotePriority, len(priorities))
	for i, p := range priorities {
		p.Icon = t.iconURL(p.Icon)
		out[i] = p
	}
	return out, nil
}

// GetResolutions lists the resolution constants.
func (t *Tracker) GetResolutions(ctx context.Context, token string) ([]schema.RemoteResolution, error) {
	if _, _, err := t.authenticate(ctx, token); err != nil {
		return nil, err
	}
	return append([]schema.RemoteResolution(nil), resolutions...), nil
}

// GetStatuses lists the workflow statuses.
func (t *Tracker) GetStatuses(ctx context.Context, token string) ([]schema.RemoteStatus, error) {
	if _, _, err := t.authenticate(ctx, token); err != nil {
		return nil, err
	}
	out := make([]schema.RemoteStatus, len(statuses))
	for i, s := range statuses {
		s.Icon = t.iconURL(s.Icon)
		out[i] = s
	}
	return out, nil
}

// GetIssueTypes lists the standard issue types.
func (t *Tracker) GetIssueTypes(ctx context.Context, token string) ([]schema.RemoteIssueType, error) {
	if _, _, err := t.authenticate(ctx, token); err != nil {
		return nil, err
	}
	return t.issueTypes(false), nil
}

// GetSubTaskIssueTypes lists the sub-task issue types.
func (t *Tracker) GetSubTaskIssueTypes(ctx context.Context, token string) ([]schema.RemoteIssueType, error) {
	if _, _, err := t.authenticate(ctx, token); err != nil {
		return nil, err
	}
	return t.issueTypes(true), nil
}

// GetIssueTypesForProject lists the standard issue types of a project the caller can browse.
func (t *Tracker) GetIssueTypesForProject(ctx context.Context, token, projectID string) ([]schema.RemoteIssueType, error) {
	return t.projectIssueTypes(ctx, token, projectID, false)
}

// GetSubTaskIssueTypesForProject lists the sub-task issue types of a project the caller can browse.
func (t *Tracker) GetSubTaskIssueTypesForProject(ctx context.Context, token, projectID string) ([]schema.RemoteIssueType, error) {
	return t.projectIssueTypes(ctx, token, projectID, true)
}

func (t *Tracker) projectIssueTypes(ctx context.Context, token, projectID string, subTask bool) ([]schema.RemoteIssueType, error) {
	user, _, err := t.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	id, ok := parseID(projectID)
	var project *projectRecord
	if ok {
		project = t.st.Projects[id]
	}
	if project == nil || !t.hasPermission(user, project, PermBrowse) {
		return nil, schema.PermissionFault("No project with id %s is visible to %s.", projectID, user)
	}
	return t.issueTypes(subTask), nil
}

func (t *Tracker) issueTypes(subTask bool) []schema.RemoteIssueType {
	out := []schema.RemoteIssueType{}
	if subTask && !t.cfg.AllowSubTasks {
		return out
	}
	for _, it := range issueTypes {
		if it.SubTask != subTask {
			continue
		}
		it.Icon = t.iconURL(it.Icon)
		out = append(out, it)
	}
	return out
}

func lookupIssueType(id string) (schema.RemoteIssueType, bool) {
	for _, it := range issueTypes {
		if it.ID == id {
			return it, true
		}
	}
	return schema.RemoteIssueType{}, false
}

func lookupPriority(id string) (schema.RemotePriority, bool) {
	for _, p := range priorities {
		if p.ID == id {
			return p, true
		}
	}
	return schema.RemotePriority{}, false
}

func lookupResolution(id string) (schema.RemoteResolution, bool) {
	for _, r := range resolutions {
		if r.ID == id {
			return r, true
		}
	}
	return schema.RemoteResolution{}, false
}

func lookupStatus(id string) (schema.RemoteStatus, bool) {
	for _, s := range statuses {
		if s.ID == id {
			return s, true
		}
	}
	return schema.RemoteStatus{}, false
}
