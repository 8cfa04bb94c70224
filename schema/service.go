package schema

import (
	"context"
	"time"
)

// Service is the remote call catalogue of the issue tracker. Every operation
// except Login takes the session token returned by Login as its first argument
// and reports failures as *Fault.
type Service interface {
	// Session and server.
	Login(ctx context.Context, username, password string) (string, error)
	Logout(ctx context.Context, token string) (bool, error)
	GetServerInfo(ctx context.Context, token string) (*RemoteServerInfo, error)
	GetConfiguration(ctx context.Context, token string) (*RemoteConfiguration, error)

	// Users and groups.
	CreateUser(ctx context.Context, token, username, password, fullName, email string) (*RemoteUser, error)
	GetUser(ctx context.Context, token, username string) (*RemoteUser, error)
	DeleteUser(ctx context.Context, token, username string) error
	CreateGroup(ctx context.Context, token, groupName string, firstUser *RemoteUser) (*RemoteGroup, error)
	GetGroup(ctx context.Context, token, groupName string) (*RemoteGroup, error)
	UpdateGroup(ctx context.Context, token string, group *RemoteGroup) (*RemoteGroup, error)
	DeleteGroup(ctx context.Context, token, groupName, swapGroup string) error
	AddUserToGroup(ctx context.Context, token string, group *RemoteGroup, user *RemoteUser) error
	RemoveUserFromGroup(ctx context.Context, token string, group *RemoteGroup, user *RemoteUser) error

	// Projects.
	CreateProject(ctx context.Context, token, key, name, description, url, lead string, permissionScheme *RemotePermissionScheme, notificationScheme, issueSecurityScheme *RemoteScheme) (*RemoteProject, error)
	CreateProjectFromObject(ctx context.Context, token string, project *RemoteProject) (*RemoteProject, error)
	UpdateProject(ctx context.Context, token string, project *RemoteProject) (*RemoteProject, error)
	DeleteProject(ctx context.Context, token, projectKey string) error
	GetProjectByKey(ctx context.Context, token, projectKey string) (*RemoteProject, error)
	GetProjectByID(ctx context.Context, token string, id int64) (*RemoteProject, error)
	GetProjectWithSchemesByID(ctx context.Context, token string, id int64) (*RemoteProject, error)
	GetProjectsNoSchemes(ctx context.Context, token string) ([]RemoteProject, error)
	GetComponents(ctx context.Context, token, projectKey string) ([]RemoteComponent, error)
	GetVersions(ctx context.Context, token, projectKey string) ([]RemoteVersion, error)
	AddVersion(ctx context.Context, token, projectKey string, version *RemoteVersion) (*RemoteVersion, error)
	ReleaseVersion(ctx context.Context, token, projectKey string, version *RemoteVersion) error
	ArchiveVersion(ctx context.Context, token, projectKey, versionName string, archive bool) error
	GetSecurityLevels(ctx context.Context, token, projectKey string) ([]RemoteSecurityLevel, error)
	GetProjectAvatars(ctx context.Context, token, projectKey string, includeSystem bool) ([]RemoteAvatar, error)
	GetProjectAvatar(ctx context.Context, token, projectKey string) (*RemoteAvatar, error)
	SetProjectAvatar(ctx context.Context, token, projectKey string, avatarID int64) error
	SetNewProjectAvatar(ctx context.Context, token, projectKey, contentType, base64Data string) error
	DeleteProjectAvatar(ctx context.Context, token string, avatarID int64) error

	// Constants and fields.
	GetPriorities(ctx context.Context, token string) ([]RemotePriority, error)
	GetResolutions(ctx context.Context, token string) ([]RemoteResolution, error)
	GetIssueTypes(ctx context.Context, token string) ([]RemoteIssueType, error)
	GetSubTaskIssueTypes(ctx context.Context, token string) ([]RemoteIssueType, error)
	GetIssueTypesForProject(ctx context.Context, token, projectID string) ([]RemoteIssueType, error)
	GetSubTaskIssueTypesForProject(ctx context.Context, token, projectID string) ([]RemoteIssueType, error)
	GetStatuses(ctx context.Context, token string) ([]RemoteStatus, error)
	GetCustomFields(ctx context.Context, token string) ([]RemoteField, error)
	RefreshCustomFields(ctx context.Context, token string) error

	// Issues.
	CreateIssue(ctx context.Context, token string, issue *RemoteIssue) (*RemoteIssue, error)
	CreateIssueWithSecurityLevel(ctx context.Context, token string, issue *RemoteIssue, securityLevelID int64) (*RemoteIssue, error)
	GetIssue(ctx context.Context, token, issueKey string) (*RemoteIssue, error)
	GetIssueByID(ctx context.Context, token, issueID string) (*RemoteIssue, error)
	UpdateIssue(ctx context.Context, token, issueKey string, fields []RemoteFieldValue) (*RemoteIssue, error)
	DeleteIssue(ctx context.Context, token, issueKey string) error
	GetAvailableActions(ctx context.Context, token, issueKey string) ([]RemoteNamedObject, error)
	ProgressWorkflowAction(ctx context.Context, token, issueKey, actionID string, fields []RemoteFieldValue) (*RemoteIssue, error)
	GetFieldsForEdit(ctx context.Context, token, issueKey string) ([]RemoteField, error)
	GetFieldsForAction(ctx context.Context, token, issueKey, actionID string) ([]RemoteField, error)
	GetSecurityLevel(ctx context.Context, token, issueKey string) (*RemoteSecurityLevel, error)
	GetResolutionDateByKey(ctx context.Context, token, issueKey string) (time.Time, error)
	GetResolutionDateByID(ctx context.Context, token string, issueID int64) (time.Time, error)

	// Comments.
	AddComment(ctx context.Context, token, issueKey string, comment *RemoteComment) error
	GetComment(ctx context.Context, token string, id int64) (*RemoteComment, error)
	GetComments(ctx context.Context, token, issueKey string) ([]RemoteComment, error)
	EditComment(ctx context.Context, token string, comment *RemoteComment) (*RemoteComment, error)
	HasPermissionToEditComment(ctx context.Context, token string, comment *RemoteComment) (bool, error)

	// Attachments.
	AddAttachmentsToIssue(ctx context.Context, token, issueKey string, fileNames []string, data [][]byte) (bool, error)
	AddBase64EncodedAttachmentsToIssue(ctx context.Context, token, issueKey string, fileNames, base64Data []string) (bool, error)
	GetAttachmentsFromIssue(ctx context.Context, token, issueKey string) ([]RemoteAttachment, error)

	// Worklogs.
	AddWorklogWithNewRemainingEstimate(ctx context.Context, token, issueKey string, worklog *RemoteWorklog, newRemainingEstimate string) (*RemoteWorklog, error)
	AddWorklogAndAutoAdjustRemainingEstimate(ctx context.Context, token, issueKey string, worklog *RemoteWorklog) (*RemoteWorklog, error)
	AddWorklogAndRetainRemainingEstimate(ctx context.Context, token, issueKey string, worklog *RemoteWorklog) (*RemoteWorklog, error)
	DeleteWorklogWithNewRemainingEstimate(ctx context.Context, token, worklogID, newRemainingEstimate string) error
	DeleteWorklogAndAutoAdjustRemainingEstimate(ctx context.Context, token, worklogID string) error
	DeleteWorklogAndRetainRemainingEstimate(ctx context.Context, token, worklogID string) error
	UpdateWorklogWithNewRemainingEstimate(ctx context.Context, token string, worklog *RemoteWorklog, newRemainingEstimate string) error
	UpdateWorklogAndAutoAdjustRemainingEstimate(ctx context.Context, token string, worklog *RemoteWorklog) error
	UpdateWorklogAndRetainRemainingEstimate(ctx context.Context, token string, worklog *RemoteWorklog) error
	GetWorklogs(ctx context.Context, token, issueKey string) ([]RemoteWorklog, error)
	HasPermissionToCreateWorklog(ctx context.Context, token, issueKey string) (bool, error)
	HasPermissionToDeleteWorklog(ctx context.Context, token, worklogID string) (bool, error)
	HasPermissionToUpdateWorklog(ctx context.Context, token, worklogID string) (bool, error)

	// Schemes and permissions.
	GetNotificationSchemes(ctx context.Context, token string) ([]RemoteScheme, error)
	GetPermissionSchemes(ctx context.Context, token string) ([]RemotePermissionScheme, error)
	GetSecuritySchemes(ctx context.Context, token string) ([]RemoteScheme, error)
	GetAllPermissions(ctx context.Context, token string) ([]RemotePermission, error)
	CreatePermissionScheme(ctx context.Context, token, name, description string) (*RemotePermissionScheme, error)
	AddPermissionTo(ctx context.Context, token string, scheme *RemotePermissionScheme, permission *RemotePermission, entity *RemoteEntity) (*RemotePermissionScheme, error)
	DeletePermissionFrom(ctx context.Context, token string, scheme *RemotePermissionScheme, permission *RemotePermission, entity *RemoteEntity) (*RemotePermissionScheme, error)
	DeletePermissionScheme(ctx context.Context, token, name string) error

	// Project roles.
	GetProjectRoles(ctx context.Context, token string) ([]RemoteProjectRole, error)
	GetProjectRole(ctx context.Context, token string, id int64) (*RemoteProjectRole, error)
	CreateProjectRole(ctx context.Context, token string, role *RemoteProjectRole) (*RemoteProjectRole, error)
	UpdateProjectRole(ctx context.Context, token string, role *RemoteProjectRole) error
	DeleteProjectRole(ctx context.Context, token string, role *RemoteProjectRole, confirm bool) error
	IsProjectRoleNameUnique(ctx context.Context, token, name string) (bool, error)
	GetProjectRoleActors(ctx context.Context, token string, role *RemoteProjectRole, project *RemoteProject) (*RemoteProjectRoleActors, error)
	GetDefaultRoleActors(ctx context.Context, token string, role *RemoteProjectRole) (*RemoteRoleActors, error)
	AddActorsToProjectRole(ctx context.Context, token string, actors []string, role *RemoteProjectRole, project *RemoteProject, actorType string) error
	RemoveActorsFromProjectRole(ctx context.Context, token string, actors []string, role *RemoteProjectRole, project *RemoteProject, actorType string) error
	AddDefaultActorsToProjectRole(ctx context.Context, token string, actors []string, role *RemoteProjectRole, actorType string) error
	RemoveDefaultActorsFromProjectRole(ctx context.Context, token string, actors []string, role *RemoteProjectRole, actorType string) error
	RemoveAllRoleActorsByNameAndType(ctx context.Context, token, name, actorType string) error
	RemoveAllRoleActorsByProject(ctx context.Context, token string, project *RemoteProject) error
	GetAssociatedNotificationSchemes(ctx context.Context, token string, role *RemoteProjectRole) ([]RemoteScheme, error)
	GetAssociatedPermissionSchemes(ctx context.Context, token string, role *RemoteProjectRole) ([]RemoteScheme, error)

	// Search and filters.
	GetIssuesFromTextSearch(ctx context.Context, token, searchTerms string) ([]RemoteIssue, error)
	GetIssuesFromTextSearchWithProject(ctx context.Context, token string, projectKeys []string, searchTerms string, maxResults int) ([]RemoteIssue, error)
	GetIssuesFromTextSearchWithLimit(ctx context.Context, token, searchTerms string, offset, maxResults int) ([]RemoteIssue, error)
	GetIssuesFromJQLSearch(ctx context.Context, token, jql string, maxResults int) ([]RemoteIssue, error)
	GetSavedFilters(ctx context.Context, token string) ([]RemoteFilter, error)
	GetFavouriteFilters(ctx context.Context, token string) ([]RemoteFilter, error)
	GetIssuesFromFilter(ctx context.Context, token, filterID string) ([]RemoteIssue, error)
	GetIssuesFromFilterWithLimit(ctx context.Context, token, filterID string, offset, maxResults int) ([]RemoteIssue, error)
	GetIssueCountForFilter(ctx context.Context, token, filterID string) (int64, error)
}
