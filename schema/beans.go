package schema

import "time"

// RemoteUser is a user account.
type RemoteUser struct {
	Name     string `xml:"name"`
	Fullname string `xml:"fullname,omitempty"`
	Email    string `xml:"email,omitempty"`
}

// RemoteGroup is a named group of users.
type RemoteGroup struct {
	Name  string       `xml:"name"`
	Users []RemoteUser `xml:"users>item"`
}

// EntityKind distinguishes the concrete type behind a RemoteEntity.
type EntityKind string

const (
	// EntityUser marks a user entity.
	EntityUser EntityKind = "user"
	// EntityGroup marks a group entity.
	EntityGroup EntityKind = "group"
)

// RemoteEntity is either a user or a group in a permission mapping.
type RemoteEntity struct {
	Kind EntityKind `xml:"kind,attr,omitempty"`
	Name string     `xml:"name"`
}

// RemoteComponent is a project component.
type RemoteComponent struct {
	ID   string `xml:"id"`
	Name string `xml:"name,omitempty"`
}

// RemoteVersion is a project version.
type RemoteVersion struct {
	ID          string     `xml:"id,omitempty"`
	Name        string     `xml:"name"`
	Archived    bool       `xml:"archived"`
	Released    bool       `xml:"released"`
	ReleaseDate *time.Time `xml:"releaseDate,omitempty"`
	Sequence    int64      `xml:"sequence,omitempty"`
}

// RemoteCustomFieldValue carries the values of one custom field on an issue.
type RemoteCustomFieldValue struct {
	CustomfieldID string   `xml:"customfieldId"`
	Key           string   `xml:"key,omitempty"`
	Values        []string `xml:"values>item"`
}

// RemoteFieldValue is a field update used by UpdateIssue and ProgressWorkflowAction.
type RemoteFieldValue struct {
	ID     string   `xml:"id"`
	Values []string `xml:"values>item"`
}

// RemoteField names an editable field.
type RemoteField struct {
	ID   string `xml:"id"`
	Name string `xml:"name"`
}

// RemoteIssue is an issue record.
type RemoteIssue struct {
	ID                string                   `xml:"id,omitempty"`
	Key               string                   `xml:"key,omitempty"`
	Project           string                   `xml:"project"`
	Type              string                   `xml:"type"`
	Summary           string                   `xml:"summary"`
	Description       string                   `xml:"description,omitempty"`
	Environment       string                   `xml:"environment,omitempty"`
	Assignee          string                   `xml:"assignee,omitempty"`
	Reporter          string                   `xml:"reporter,omitempty"`
	Priority          string                   `xml:"priority,omitempty"`
	Status            string                   `xml:"status,omitempty"`
	Resolution        string                   `xml:"resolution,omitempty"`
	Created           *time.Time               `xml:"created,omitempty"`
	Updated           *time.Time               `xml:"updated,omitempty"`
	Duedate           *time.Time               `xml:"duedate,omitempty"`
	Votes             *int64                   `xml:"votes,omitempty"`
	AffectsVersions   []RemoteVersion          `xml:"affectsVersions>item"`
	FixVersions       []RemoteVersion          `xml:"fixVersions>item"`
	Components        []RemoteComponent        `xml:"components>item"`
	AttachmentNames   []string                 `xml:"attachmentNames>item"`
	CustomFieldValues []RemoteCustomFieldValue `xml:"customFieldValues>item"`
}

// RemoteNamedObject is an id/name pair, used for workflow actions.
type RemoteNamedObject struct {
	ID   string `xml:"id"`
	Name string `xml:"name"`
}

// RemoteIssueType is an issue type constant.
type RemoteIssueType struct {
	ID          string `xml:"id"`
	Name        string `xml:"name"`
	Description string `xml:"description,omitempty"`
	Icon        string `xml:"icon,omitempty"`
	SubTask     bool   `xml:"subTask"`
}

// RemotePriority is a priority constant.
type RemotePriority struct {
	ID          string `xml:"id"`
	Name        string `xml:"name"`
	Description string `xml:"description,omitempty"`
	Icon        string `xml:"icon,omitempty"`
	Color       string `xml:"color,omitempty"`
}

// RemoteResolution is a resolution constant.
type RemoteResolution struct {
	ID          string `xml:"id"`
	Name        string `xml:"name"`
	Description string `xml:"description,omitempty"`
	Icon        string `xml:"icon,omitempty"`
}

// RemoteStatus is a workflow status constant.
type RemoteStatus struct {
	ID          string `xml:"id"`
	Name        string `xml:"name"`
	Description string `xml:"description,omitempty"`
	Icon        string `xml:"icon,omitempty"`
}

// RemoteComment is an issue comment. GroupLevel and RoleLevel restrict visibility.
type RemoteComment struct {
	ID           string     `xml:"id,omitempty"`
	Author       string     `xml:"author,omitempty"`
	Body         string     `xml:"body"`
	GroupLevel   string     `xml:"groupLevel,omitempty"`
	RoleLevel    string     `xml:"roleLevel,omitempty"`
	UpdateAuthor string     `xml:"updateAuthor,omitempty"`
	Created      *time.Time `xml:"created,omitempty"`
	Updated      *time.Time `xml:"updated,omitempty"`
}

// RemoteWorklog is a unit of logged work on an issue.
type RemoteWorklog struct {
	ID                 string     `xml:"id,omitempty"`
	Author             string     `xml:"author,omitempty"`
	Comment            string     `xml:"comment,omitempty"`
	GroupLevel         string     `xml:"groupLevel,omitempty"`
	RoleLevelID        string     `xml:"roleLevelId,omitempty"`
	StartDate          *time.Time `xml:"startDate,omitempty"`
	TimeSpent          string     `xml:"timeSpent"`
	TimeSpentInSeconds int64      `xml:"timeSpentInSeconds"`
	UpdateAuthor       string     `xml:"updateAuthor,omitempty"`
	Created            *time.Time `xml:"created,omitempty"`
	Updated            *time.Time `xml:"updated,omitempty"`
}

// RemoteAttachment describes an attachment stored on an issue.
type RemoteAttachment struct {
	ID       string     `xml:"id"`
	Author   string     `xml:"author,omitempty"`
	Filename string     `xml:"filename"`
	Filesize int64      `xml:"filesize"`
	Mimetype string     `xml:"mimetype,omitempty"`
	Created  *time.Time `xml:"created,omitempty"`
}

// RemoteFilter is a saved search. Query holds the filter's JQL.
type RemoteFilter struct {
	ID          string `xml:"id"`
	Name        string `xml:"name"`
	Author      string `xml:"author,omitempty"`
	Description string `xml:"description,omitempty"`
	Project     string `xml:"project,omitempty"`
	Query       string `xml:"xml,omitempty"`
}

// RemoteSecurityLevel is an issue security level.
type RemoteSecurityLevel struct {
	ID          string `xml:"id"`
	Name        string `xml:"name"`
	Description string `xml:"description,omitempty"`
}

// RemoteScheme is a notification or issue security scheme.
type RemoteScheme struct {
	ID          int64  `xml:"id,omitempty"`
	Name        string `xml:"name"`
	Description string `xml:"description,omitempty"`
	Type        string `xml:"type,omitempty"`
}

// RemotePermission is a permission constant.
type RemotePermission struct {
	Name       string `xml:"name,omitempty"`
	Permission int64  `xml:"permission"`
}

// RemotePermissionMapping grants one permission to a set of entities.
type RemotePermissionMapping struct {
	Permission     *RemotePermission `xml:"permission"`
	RemoteEntities []RemoteEntity    `xml:"remoteEntities>item"`
}

// RemotePermissionScheme is a scheme with its permission grants.
type RemotePermissionScheme struct {
	RemoteScheme
	PermissionMappings []RemotePermissionMapping `xml:"permissionMappings>item"`
}

// RemoteProject is a project record. Scheme fields are only populated by
// the operations that say so.
type RemoteProject struct {
	ID                  string                  `xml:"id,omitempty"`
	Key                 string                  `xml:"key"`
	Name                string                  `xml:"name"`
	Description         string                  `xml:"description,omitempty"`
	Lead                string                  `xml:"lead,omitempty"`
	URL                 string                  `xml:"url,omitempty"`
	ProjectURL          string                  `xml:"projectUrl,omitempty"`
	PermissionScheme    *RemotePermissionScheme `xml:"permissionScheme,omitempty"`
	NotificationScheme  *RemoteScheme           `xml:"notificationScheme,omitempty"`
	IssueSecurityScheme *RemoteScheme           `xml:"issueSecurityScheme,omitempty"`
}

// RemoteProjectRole is a project role definition.
type RemoteProjectRole struct {
	ID          int64  `xml:"id,omitempty"`
	Name        string `xml:"name"`
	Description string `xml:"description,omitempty"`
}

// RemoteRoleActor is one user or group actor attached to a role.
type RemoteRoleActor struct {
	Descriptor  string             `xml:"descriptor,omitempty"`
	Parameter   string             `xml:"parameter"`
	Type        string             `xml:"type"`
	ProjectRole *RemoteProjectRole `xml:"projectRole,omitempty"`
	Users       []RemoteUser       `xml:"users>item"`
}

// RemoteRoleActors lists the actors of a role.
type RemoteRoleActors struct {
	ProjectRole *RemoteProjectRole `xml:"projectRole,omitempty"`
	RoleActors  []RemoteRoleActor  `xml:"roleActors>item"`
	Users       []RemoteUser       `xml:"users>item"`
}

// RemoteProjectRoleActors lists the actors of a role within one project.
type RemoteProjectRoleActors struct {
	RemoteRoleActors
	Project *RemoteProject `xml:"project,omitempty"`
}

// RemoteAvatar is a project avatar image.
type RemoteAvatar struct {
	ID          int64  `xml:"id"`
	Owner       string `xml:"owner,omitempty"`
	Type        string `xml:"type,omitempty"`
	ContentType string `xml:"contentType,omitempty"`
	System      bool   `xml:"system"`
	Base64Data  string `xml:"base64Data,omitempty"`
}

// RemoteConfiguration reports server feature switches.
type RemoteConfiguration struct {
	AllowAttachments           bool `xml:"allowAttachments"`
	AllowExternalUserManagment bool `xml:"allowExternalUserManagment"`
	AllowIssueLinking          bool `xml:"allowIssueLinking"`
	AllowSubTasks              bool `xml:"allowSubTasks"`
	AllowTimeTracking          bool `xml:"allowTimeTracking"`
	AllowUnassignedIssues      bool `xml:"allowUnassignedIssues"`
	AllowVoting                bool `xml:"allowVoting"`
	AllowWatching              bool `xml:"allowWatching"`
	TimeTrackingDaysPerWeek    int  `xml:"timeTrackingDaysPerWeek"`
	TimeTrackingHoursPerDay    int  `xml:"timeTrackingHoursPerDay"`
}

// RemoteTimeInfo is the server clock.
type RemoteTimeInfo struct {
	ServerTime string `xml:"serverTime"`
	TimeZoneID string `xml:"timeZoneId"`
}

// RemoteServerInfo describes the server build.
type RemoteServerInfo struct {
	BaseURL     string          `xml:"baseUrl"`
	BuildDate   *time.Time      `xml:"buildDate,omitempty"`
	BuildNumber string          `xml:"buildNumber,omitempty"`
	Edition     string          `xml:"edition,omitempty"`
	ServerTime  *RemoteTimeInfo `xml:"serverTime,omitempty"`
	Version     string          `xml:"version"`
}
