package core

import (
	"context"
	"slices"
	"strings"

	"pkt.systems/jirasoap/internal/logx"
	"pkt.systems/jirasoap/schema"
)

// Workflow action ids of the default workflow.
const (
	ActionStartProgress = "4"
	ActionStopProgress  = "301"
	ActionResolve       = "5"
	ActionClose         = "2"
	ActionReopen        = "3"
)

type workflowAction struct {
	id         string
	name       string
	from       []string
	to         string
	permission int64
	fields     []schema.RemoteField
	resolves   bool
	reopens    bool
}

var (
	resolutionField  = schema.RemoteField{ID: "resolution", Name: "Resolution"}
	fixVersionsField = schema.RemoteField{ID: "fixVersions", Name: "Fix Version/s"}
	assigneeField    = schema.RemoteField{ID: "assignee", Name: "Assignee"}
)

var workflowActions = []workflowAction{
	{
		id:         ActionStartProgress,
		name:       "Start Progress",
		from:       []string{StatusOpen, StatusReopened},
		to:         StatusInProgress,
		permission: PermWorkIssue,
	},
	{
		id:         ActionStopProgress,
		name:       "Stop Progress",
		from:       []string{StatusInProgress},
		to:         StatusOpen,
		permission: PermWorkIssue,
	},
	{
		id:         ActionResolve,
		name:       "Resolve Issue",
		from:       []string{StatusOpen, StatusInProgress, StatusReopened},
		to:         StatusResolved,
		permission: PermResolveIssue,
		fields:     []schema.RemoteField{resolutionField, fixVersionsField, assigneeField},
		resolves:   true,
	},
	{
		id:         ActionClose,
		name:       "Close Issue",
		from:       []string{StatusOpen, StatusInProgress, StatusReopened, StatusResolved},
		to:         StatusClosed,
		permission: PermCloseIssue,
		fields:     []schema.RemoteField{resolutionField, fixVersionsField, assigneeField},
		resolves:   true,
	},
	{
		id:         ActionReopen,
		name:       "Reopen Issue",
		from:       []string{StatusResolved, StatusClosed},
		to:         StatusReopened,
		permission: PermResolveIssue,
		fields:     []schema.RemoteField{assigneeField, fixVersionsField},
		reopens:    true,
	},
}

func lookupAction(id string) (workflowAction, bool) {
	for _, action := range workflowActions {
		if action.id == id {
			return action, true
		}
	}
	return workflowAction{}, false
}

// availableActions requires t.mu.
func (t *Tracker) availableActions(caller string, project *projectRecord, issue *issueRecord) []workflowAction {
	var out []workflowAction
	for _, action := range workflowActions {
		if !slices.Contains(action.from, issue.Status) {
			continue
		}
		if !t.hasPermission(caller, project, action.permission) {
			continue
		}
		// Start and stop progress belong to the assignee.
		if action.permission == PermWorkIssue && issue.Assignee != caller && !t.isAdmin(caller) {
			continue
		}
		out = append(out, action)
	}
	return out
}

// GetAvailableActions lists the workflow actions the caller can run on an issue.
func (t *Tracker) GetAvailableActions(ctx context.Context, token, issueKey string) ([]schema.RemoteNamedObject, error) {
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
	out := []schema.RemoteNamedObject{}
	for _, action := range t.availableActions(caller, project, issue) {
		out = append(out, schema.RemoteNamedObject{ID: action.id, Name: action.name})
	}
	return out, nil
}

// GetFieldsForAction lists the fields a workflow action accepts.
func (t *Tracker) GetFieldsForAction(ctx context.Context, token, issueKey, actionID string) ([]schema.RemoteField, error) {
	caller, _, err := t.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	if _, _, err := t.visibleIssue(caller, strings.TrimSpace(issueKey)); err != nil {
		return nil, err
	}
	action, ok := lookupAction(strings.TrimSpace(actionID))
	if !ok {
		return nil, schema.RemoteFault("Workflow action %q does not exist.", actionID)
	}
	return append([]schema.RemoteField{}, action.fields...), nil
}

// ProgressWorkflowAction runs a workflow action. Fields named by the action
// are applied with it and a "comment" field value adds a comment.
func (t *Tracker) ProgressWorkflowAction(ctx context.Context, token, issueKey, actionID string, fields []schema.RemoteFieldValue) (*schema.RemoteIssue, error) {
	caller, log, err := t.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	issue, project, err := t.visibleIssue(caller, strings.TrimSpace(issueKey))
	if err != nil {
		return nil, err
	}
	actionID = strings.TrimSpace(actionID)
	var action workflowAction
	found := false
	for _, candidate := range t.availableActions(caller, project, issue) {
		if candidate.id == actionID {
			action, found = candidate, true
			break
		}
	}
	if !found {
		if _, exists := lookupAction(actionID); !exists {
			return nil, schema.RemoteFault("Workflow action %q does not exist.", actionID)
		}
		return nil, schema.RemoteFault("Workflow action %s is not available for %s in status %s.", actionID, issue.Key, statusName(issue.Status))
	}

	updated := cloneIssue(issue)
	resolution := ""
	comment := ""
	var edits []schema.RemoteFieldValue
	for _, field := range fields {
		switch strings.TrimSpace(field.ID) {
		case "comment":
			comment = strings.TrimSpace(firstValue(field.Values))
		case resolutionField.ID:
			if !action.resolves {
				return nil, schema.RemoteFault("Action %s does not accept a resolution.", action.name)
			}
			resolution = strings.TrimSpace(firstValue(field.Values))
		default:
			if !slices.ContainsFunc(action.fields, func(f schema.RemoteField) bool { return f.ID == field.ID }) {
				return nil, schema.RemoteFault("Field %q cannot be set by action %s.", field.ID, action.name)
			}
			edits = append(edits, field)
		}
	}
	if _, err := t.applyFields(caller, project, updated, edits); err != nil {
		return nil, err
	}
	now := t.timestamp()
	switch {
	case action.resolves:
		if resolution == "" {
			resolution = firstNonEmpty(issue.Resolution, ResolutionFixed)
		}
		if _, ok := lookupResolution(resolution); !ok {
			return nil, schema.RemoteFault("Resolution %q does not exist.", resolution)
		}
		updated.Resolution = resolution
		if updated.Resolved == nil {
			updated.Resolved = timePtr(now)
		}
	case action.reopens:
		updated.Resolution = ""
		updated.Resolved = nil
	}
	from := updated.Status
	updated.Status = action.to
	updated.Updated = now
	*issue = *updated
	if comment != "" {
		t.addCommentLocked(issue, caller, comment, "", "")
	}
	logx.WithIssue(log, issue.Key).Info("issue transitioned", "action", action.name, "from", statusName(from), "to", statusName(action.to))
	t.publish(schema.TrackerEvent{
		Type:    schema.EventIssueTransitioned,
		Actor:   caller,
		Project: project.Key,
		Issue:   issue.Key,
		Subject: action.name,
		Detail:  statusName(from) + " -> " + statusName(action.to),
	})
	return t.remoteIssue(issue), nil
}

func statusName(id string) string {
	if status, ok := lookupStatus(id); ok {
		return status.Name
	}
	return id
}
