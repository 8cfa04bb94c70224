package schema

import "time"

// EventType identifies a tracker mutation.
type EventType string

const (
	// EventUserCreated is published when a user account is created.
	EventUserCreated EventType = "user.created"
	// EventUserDeleted is published when a user account is deleted.
	EventUserDeleted EventType = "user.deleted"
	// EventGroupUpdated is published when a group or its membership changes.
	EventGroupUpdated EventType = "group.updated"
	// EventGroupDeleted is published when a group is deleted.
	EventGroupDeleted EventType = "group.deleted"
	// EventProjectCreated is published when a project is created.
	EventProjectCreated EventType = "project.created"
	// EventProjectUpdated is published when project details, versions or avatars change.
	EventProjectUpdated EventType = "project.updated"
	// EventProjectDeleted is published when a project and its issues are deleted.
	EventProjectDeleted EventType = "project.deleted"
	// EventIssueCreated is published when an issue is created.
	EventIssueCreated EventType = "issue.created"
	// EventIssueUpdated is published when issue fields change.
	EventIssueUpdated EventType = "issue.updated"
	// EventIssueTransitioned is published when a workflow action moves an issue.
	EventIssueTransitioned EventType = "issue.transitioned"
	// EventIssueDeleted is published when an issue is deleted.
	EventIssueDeleted EventType = "issue.deleted"
	// EventIssueCommented is published when a comment is added or edited.
	EventIssueCommented EventType = "issue.commented"
	// EventIssueAttached is published when attachments are added.
	EventIssueAttached EventType = "issue.attached"
	// EventIssueWorklogged is published when a worklog is added, updated or deleted.
	EventIssueWorklogged EventType = "issue.worklogged"
	// EventSchemeUpdated is published when a permission scheme changes.
	EventSchemeUpdated EventType = "scheme.updated"
	// EventRoleUpdated is published when a project role or its actors change.
	EventRoleUpdated EventType = "role.updated"
)

// TrackerEvent describes one mutation performed through the service.
type TrackerEvent struct {
	Type    EventType `json:"type"`
	Actor   string    `json:"actor"`
	Project string    `json:"project,omitempty"`
	Issue   string    `json:"issue,omitempty"`
	Subject string    `json:"subject,omitempty"`
	Detail  string    `json:"detail,omitempty"`
	Time    time.Time `json:"time"`
}
