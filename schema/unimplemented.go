package schema

import (
	"context"
	"time"
)

// UnimplementedService answers every operation with a remote fault. Embed it
// in partial implementations of Service.
type UnimplementedService struct{}

func unimplemented(op string) error {
	return RemoteFault("operation %s is not implemented", op)
}

func (UnimplementedService) Login(context.Context, string, string) (string, error) {
	return "", unimplemented("login")
}

func (UnimplementedService) Logout(context.Context, string) (bool, error) {
	return false, unimplemented("logout")
}

func (UnimplementedService) GetServerInfo(context.Context, string) (*RemoteServerInfo, error) {
	return nil, unimplemented("getServerInfo")
}

func (UnimplementedService) GetConfiguration(context.Context, string) (*RemoteConfiguration, error) {
	return nil, unimplemented("getConfiguration")
}

func (UnimplementedService) CreateUser(context.Context, string, string, string, string, string) (*RemoteUser, error) {
	return nil, unimplemented("createUser")
}

func (UnimplementedService) GetUser(context.Context, string, string) (*RemoteUser, error) {
	return nil, unimplemented("getUser")
}

func (UnimplementedService) DeleteUser(context.Context, string, string) error {
	return unimplemented("deleteUser")
}

func (UnimplementedService) CreateGroup(context.Context, string, string, *RemoteUser) (*RemoteGroup, error) {
	return nil, unimplemented("createGroup")
}

func (UnimplementedService) GetGroup(context.Context, string, string) (*RemoteGroup, error) {
	return nil, unimplemented("getGroup")
}

func (UnimplementedService) UpdateGroup(context.Context, string, *RemoteGroup) (*RemoteGroup, error) {
	return nil, unimplemented("updateGroup")
}

func (UnimplementedService) DeleteGroup(context.Context, string, string, string) error {
	return unimplemented("deleteGroup")
}

func (UnimplementedService) AddUserToGroup(context.Context, string, *RemoteGroup, *RemoteUser) error {
	return unimplemented("addUserToGroup")
}

func (UnimplementedService) RemoveUserFromGroup(context.Context, string, *RemoteGroup, *RemoteUser) error {
	return unimplemented("removeUserFromGroup")
}

func (UnimplementedService) CreateProject(context.Context, string, string, string, string, string, string, *RemotePermissionScheme, *RemoteScheme, *RemoteScheme) (*RemoteProject, error) {
	return nil, unimplemented("createProject")
}

func (UnimplementedService) CreateProjectFromObject(context.Context, string, *RemoteProject) (*RemoteProject, error) {
	return nil, unimplemented("createProjectFromObject")
}

func (UnimplementedService) UpdateProject(context.Context, string, *RemoteProject) (*RemoteProject, error) {
	return nil, unimplemented("updateProject")
}

func (UnimplementedService) DeleteProject(context.Context, string, string) error {
	return unimplemented("deleteProject")
}

func (UnimplementedService) GetProjectByKey(context.Context, string, string) (*RemoteProject, error) {
	return nil, unimplemented("getProjectByKey")
}

func (UnimplementedService) GetProjectByID(context.Context, string, int64) (*RemoteProject, error) {
	return nil, unimplemented("getProjectById")
}

func (UnimplementedService) GetProjectWithSchemesByID(context.Context, string, int64) (*RemoteProject, error) {
	return nil, unimplemented("getProjectWithSchemesById")
}

func (UnimplementedService) GetProjectsNoSchemes(context.Context, string) ([]RemoteProject, error) {
	return nil, unimplemented("getProjectsNoSchemes")
}

func (UnimplementedService) GetComponents(context.Context, string, string) ([]RemoteComponent, error) {
	return nil, unimplemented("getComponents")
}

func (UnimplementedService) GetVersions(context.Context, string, string) ([]RemoteVersion, error) {
	return nil, unimplemented("getVersions")
}

func (UnimplementedService) AddVersion(context.Context, string, string, *RemoteVersion) (*RemoteVersion, error) {
	return nil, unimplemented("addVersion")
}

func (UnimplementedService) ReleaseVersion(context.Context, string, string, *RemoteVersion) error {
	return unimplemented("releaseVersion")
}

func (UnimplementedService) ArchiveVersion(context.Context, string, string, string, bool) error {
	return unimplemented("archiveVersion")
}

func (UnimplementedService) GetSecurityLevels(context.Context, string, string) ([]RemoteSecurityLevel, error) {
	return nil, unimplemented("getSecurityLevels")
}

func (UnimplementedService) GetProjectAvatars(context.Context, string, string, bool) ([]RemoteAvatar, error) {
	return nil, unimplemented("getProjectAvatars")
}

func (UnimplementedService) GetProjectAvatar(context.Context, string, string) (*RemoteAvatar, error) {
	return nil, unimplemented("getProjectAvatar")
}

func (UnimplementedService) SetProjectAvatar(context.Context, string, string, int64) error {
	return unimplemented("setProjectAvatar")
}

func (UnimplementedService) SetNewProjectAvatar(context.Context, string, string, string, string) error {
	return unimplemented("setNewProjectAvatar")
}

func (UnimplementedService) DeleteProjectAvatar(context.Context, string, int64) error {
	return unimplemented("deleteProjectAvatar")
}

func (UnimplementedService) GetPriorities(context.Context, string) ([]RemotePriority, error) {
	return nil, unimplemented("getPriorities")
}

func (UnimplementedService) GetResolutions(context.Context, string) ([]RemoteResolution, error) {
	return nil, unimplemented("getResolutions")
}

func (UnimplementedService) GetIssueTypes(context.Context, string) ([]RemoteIssueType, error) {
	return nil, unimplemented("getIssueTypes")
}

func (UnimplementedService) GetSubTaskIssueTypes(context.Context, string) ([]RemoteIssueType, error) {
	return nil, unimplemented("getSubTaskIssueTypes")
}

func (UnimplementedService) GetIssueTypesForProject(context.Context, string, string) ([]RemoteIssueType, error) {
	return nil, unimplemented("getIssueTypesForProject")
}

func (UnimplementedService) GetSubTaskIssueTypesForProject(context.Context, string, string) ([]RemoteIssueType, error) {
	return nil, unimplemented("getSubTaskIssueTypesForProject")
}

func (UnimplementedService) GetStatuses(context.Context, string) ([]RemoteStatus, error) {
	return nil, unimplemented("getStatuses")
}

func (UnimplementedService) GetCustomFields(context.Context, string) ([]RemoteField, error) {
	return nil, unimplemented("getCustomFields")
}

func (UnimplementedService) RefreshCustomFields(context.Context, string) error {
	return unimplemented("refreshCustomFields")
}

func (UnimplementedService) CreateIssue(context.Context, string, *RemoteIssue) (*RemoteIssue, error) {
	return nil, unimplemented("createIssue")
}

func (UnimplementedService) CreateIssueWithSecurityLevel(context.Context, string, *RemoteIssue, int64) (*RemoteIssue, error) {
	return nil, unimplemented("createIssueWithSecurityLevel")
}

func (UnimplementedService) GetIssue(context.Context, string, string) (*RemoteIssue, error) {
	return nil, unimplemented("getIssue")
}

func (UnimplementedService) GetIssueByID(context.Context, string, string) (*RemoteIssue, error) {
	return nil, unimplemented("getIssueById")
}

func (UnimplementedService) UpdateIssue(context.Context, string, string, []RemoteFieldValue) (*RemoteIssue, error) {
	return nil, unimplemented("updateIssue")
}

func (UnimplementedService) DeleteIssue(context.Context, string, string) error {
	return unimplemented("deleteIssue")
}

func (UnimplementedService) GetAvailableActions(context.Context, string, string) ([]RemoteNamedObject, error) {
	return nil, unimplemented("getAvailableActions")
}

func (UnimplementedService) ProgressWorkflowAction(context.Context, string, string, string, []RemoteFieldValue) (*RemoteIssue, error) {
	return nil, unimplemented("progressWorkflowAction")
}

func (UnimplementedService) GetFieldsForEdit(context.Context, string, string) ([]RemoteField, error) {
	return nil, unimplemented("getFieldsForEdit")
}

func (UnimplementedService) GetFieldsForAction(context.Context, string, string, string) ([]RemoteField, error) {
	return nil, unimplemented("getFieldsForAction")
}

func (UnimplementedService) GetSecurityLevel(context.Context, string, string) (*RemoteSecurityLevel, error) {
	return nil, unimplemented("getSecurityLevel")
}

func (UnimplementedService) GetResolutionDateByKey(context.Context, string, string) (time.Time, error) {
	return time.Time{}, unimplemented("getResolutionDateByKey")
}

func (UnimplementedService) GetResolutionDateByID(context.Context, string, int64) (time.Time, error) {
	return time.Time{}, unimplemented("getResolutionDateById")
}

func (UnimplementedService) AddComment(context.Context, string, string, *RemoteComment) error {
	return unimplemented("addComment")
}

func (UnimplementedService) GetComment(context.Context, string, int64) (*RemoteComment, error) {
	return nil, unimplemented("getComment")
}

func (UnimplementedService) GetComments(context.Context, string, string) ([]RemoteComment, error) {
	return nil, unimplemented("getComments")
}

func (UnimplementedService) EditComment(context.Context, string, *RemoteComment) (*RemoteComment, error) {
	return nil, unimplemented("editComment")
}

func (UnimplementedService) HasPermissionToEditComment(context.Context, string, *RemoteComment) (bool, error) {
	return false, unimplemented("hasPermissionToEditComment")
}

func (UnimplementedService) AddAttachmentsToIssue(context.Context, string, string, []string, [][]byte) (bool, error) {
	return false, unimplemented("addAttachmentsToIssue")
}

func (UnimplementedService) AddBase64EncodedAttachmentsToIssue(context.Context, string, string, []string, []string) (bool, error) {
	return false, unimplemented("addBase64EncodedAttachmentsToIssue")
}

func (UnimplementedService) GetAttachmentsFromIssue(context.Context, string, string) ([]RemoteAttachment, error) {
	return nil, unimplemented("getAttachmentsFromIssue")
}

func (UnimplementedService) AddWorklogWithNewRemainingEstimate(context.Context, string, string, *RemoteWorklog, string) (*RemoteWorklog, error) {
	return nil, unimplemented("addWorklogWithNewRemainingEstimate")
}

func (UnimplementedService) AddWorklogAndAutoAdjustRemainingEstimate(context.Context, string, string, *RemoteWorklog) (*RemoteWorklog, error) {
	return nil, unimplemented("addWorklogAndAutoAdjustRemainingEstimate")
}

func (UnimplementedService) AddWorklogAndRetainRemainingEstimate(context.Context, string, string, *RemoteWorklog) (*RemoteWorklog, error) {
	return nil, unimplemented("addWorklogAndRetainRemainingEstimate")
}

func (UnimplementedService) DeleteWorklogWithNewRemainingEstimate(context.Context, string, string, string) error {
	return unimplemented("deleteWorklogWithNewRemainingEstimate")
}

func (UnimplementedService) DeleteWorklogAndAutoAdjustRemainingEstimate(context.Context, string, string) error {
	return unimplemented("deleteWorklogAndAutoAdjustRemainingEstimate")
}

func (UnimplementedService) DeleteWorklogAndRetainRemainingEstimate(context.Context, string, string) error {
	return unimplemented("deleteWorklogAndRetainRemainingEstimate")
}

func (UnimplementedService) UpdateWorklogWithNewRemainingEstimate(context.Context, string, *RemoteWorklog, string) error {
	return unimplemented("updateWorklogWithNewRemainingEstimate")
}

func (UnimplementedService) UpdateWorklogAndAutoAdjustRemainingEstimate(context.Context, string, *RemoteWorklog) error {
	return unimplemented("updateWorklogAndAutoAdjustRemainingEstimate")
}

func (UnimplementedService) UpdateWorklogAndRetainRemainingEstimate(context.Context, string, *RemoteWorklog) error {
	return unimplemented("updateWorklogAndRetainRemainingEstimate")
}

func (UnimplementedService) GetWorklogs(context.Context, string, string) ([]RemoteWorklog, error) {
	return nil, unimplemented("getWorklogs")
}

func (UnimplementedService) HasPermissionToCreateWorklog(context.Context, string, string) (bool, error) {
	return false, unimplemented("hasPermissionToCreateWorklog")
}

func (UnimplementedService) HasPermissionToDeleteWorklog(context.Context, string, string) (bool, error) {
	return false, unimplemented("hasPermissionToDeleteWorklog")
}

func (UnimplementedService) HasPermissionToUpdateWorklog(context.Context, string, string) (bool, error) {
	return false, unimplemented("hasPermissionToUpdateWorklog")
}

func (UnimplementedService) GetNotificationSchemes(context.Context, string) ([]RemoteScheme, error) {
	return nil, unimplemented("getNotificationSchemes")
}

func (UnimplementedService) GetPermissionSchemes(context.Context, string) ([]RemotePermissionScheme, error) {
	return nil, unimplemented("getPermissionSchemes")
}

func (UnimplementedService) GetSecuritySchemes(context.Context, string) ([]RemoteScheme, error) {
	return nil, unimplemented("getSecuritySchemes")
}

func (UnimplementedService) GetAllPermissions(context.Context, string) ([]RemotePermission, error) {
	return nil, unimplemented("getAllPermissions")
}

func (UnimplementedService) CreatePermissionScheme(context.Context, string, string, string) (*RemotePermissionScheme, error) {
	return nil, unimplemented("createPermissionScheme")
}

func (UnimplementedService) AddPermissionTo(context.Context, string, *RemotePermissionScheme, *RemotePermission, *RemoteEntity) (*RemotePermissionScheme, error) {
	return nil, unimplemented("addPermissionTo")
}

func (UnimplementedService) DeletePermissionFrom(context.Context, string, *RemotePermissionScheme, *RemotePermission, *RemoteEntity) (*RemotePermissionScheme, error) {
	return nil, unimplemented("deletePermissionFrom")
}

func (UnimplementedService) DeletePermissionScheme(context.Context, string, string) error {
	return unimplemented("deletePermissionScheme")
}

func (UnimplementedService) GetProjectRoles(context.Context, string) ([]RemoteProjectRole, error) {
	return nil, unimplemented("getProjectRoles")
}

func (UnimplementedService) GetProjectRole(context.Context, string, int64) (*RemoteProjectRole, error) {
	return nil, unimplemented("getProjectRole")
}

func (UnimplementedService) CreateProjectRole(context.Context, string, *RemoteProjectRole) (*RemoteProjectRole, error) {
	return nil, unimplemented("createProjectRole")
}

func (UnimplementedService) UpdateProjectRole(context.Context, string, *RemoteProjectRole) error {
	return unimplemented("updateProjectRole")
}

func (UnimplementedService) DeleteProjectRole(context.Context, string, *RemoteProjectRole, bool) error {
	return unimplemented("deleteProjectRole")
}

func (UnimplementedService) IsProjectRoleNameUnique(context.Context, string, string) (bool, error) {
	return false, unimplemented("isProjectRoleNameUnique")
}

func (UnimplementedService) GetProjectRoleActors(context.Context, string, *RemoteProjectRole, *RemoteProject) (*RemoteProjectRoleActors, error) {
	return nil, unimplemented("getProjectRoleActors")
}

func (UnimplementedService) GetDefaultRoleActors(context.Context, string, *RemoteProjectRole) (*RemoteRoleActors, error) {
	return nil, unimplemented("getDefaultRoleActors")
}

func (UnimplementedService) AddActorsToProjectRole(context.Context, string, []string, *RemoteProjectRole, *RemoteProject, string) error {
	return unimplemented("addActorsToProjectRole")
}

func (UnimplementedService) RemoveActorsFromProjectRole(context.Context, string, []string, *RemoteProjectRole, *RemoteProject, string) error {
	return unimplemented("removeActorsFromProjectRole")
}

func (UnimplementedService) AddDefaultActorsToProjectRole(context.Context, string, []string, *RemoteProjectRole, string) error {
	return unimplemented("addDefaultActorsToProjectRole")
}

func (UnimplementedService) RemoveDefaultActorsFromProjectRole(context.Context, string, []string, *RemoteProjectRole, string) error {
	return unimplemented("removeDefaultActorsFromProjectRole")
}

func (UnimplementedService) RemoveAllRoleActorsByNameAndType(context.Context, string, string, string) error {
	return unimplemented("removeAllRoleActorsByNameAndType")
}

func (UnimplementedService) RemoveAllRoleActorsByProject(context.Context, string, *RemoteProject) error {
	return unimplemented("removeAllRoleActorsByProject")
}

func (UnimplementedService) GetAssociatedNotificationSchemes(context.Context, string, *RemoteProjectRole) ([]RemoteScheme, error) {
	return nil, unimplemented("getAssociatedNotificationSchemes")
}

func (UnimplementedService) GetAssociatedPermissionSchemes(context.Context, string, *RemoteProjectRole) ([]RemoteScheme, error) {
	return nil, unimplemented("getAssociatedPermissionSchemes")
}

func (UnimplementedService) GetIssuesFromTextSearch(context.Context, string, string) ([]RemoteIssue, error) {
	return nil, unimplemented("getIssuesFromTextSearch")
}

func (UnimplementedService) GetIssuesFromTextSearchWithProject(context.Context, string, []string, string, int) ([]RemoteIssue, error) {
	return nil, unimplemented("getIssuesFromTextSearchWithProject")
}

func (UnimplementedService) GetIssuesFromTextSearchWithLimit(context.Context, string, string, int, int) ([]RemoteIssue, error) {
	return nil, unimplemented("getIssuesFromTextSearchWithLimit")
}

func (UnimplementedService) GetIssuesFromJQLSearch(context.Context, string, string, int) ([]RemoteIssue, error) {
	return nil, unimplemented("getIssuesFromJqlSearch")
}

func (UnimplementedService) GetSavedFilters(context.Context, string) ([]RemoteFilter, error) {
	return nil, unimplemented("getSavedFilters")
}

func (UnimplementedService) GetFavouriteFilters(context.Context, string) ([]RemoteFilter, error) {
	return nil, unimplemented("getFavouriteFilters")
}

func (UnimplementedService) GetIssuesFromFilter(context.Context, string, string) ([]RemoteIssue, error) {
	return nil, unimplemented("getIssuesFromFilter")
}

func (UnimplementedService) GetIssuesFromFilterWithLimit(context.Context, string, string, int, int) ([]RemoteIssue, error) {
	return nil, unimplemented("getIssuesFromFilterWithLimit")
}

func (UnimplementedService) GetIssueCountForFilter(context.Context, string, string) (int64, error) {
	return 0, unimplemented("getIssueCountForFilter")
}

var _ Service = UnimplementedService{}
