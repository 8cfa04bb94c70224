package schema

// Operation describes one remote operation: its wire name, the Go method
// implementing it, the names of its parameters after the session token and
// the fault kinds it declares.
type Operation struct {
	Name   string
	Method string
	Params []string
	Faults []FaultKind
}

// Declares reports whether the operation declares the fault kind.
func (o Operation) Declares(kind FaultKind) bool {
	for _, k := range o.Faults {
		if k == kind {
			return true
		}
	}
	return false
}

// TakesToken reports whether the first wire parameter is the session token.
func (o Operation) TakesToken() bool {
	return o.Name != "login"
}

// Arity returns the number of positional wire parameters, token included.
func (o Operation) Arity() int {
	if o.TakesToken() {
		return len(o.Params) + 1
	}
	return len(o.Params)
}

var (
	authPermValid    = []FaultKind{FaultPermission, FaultValidation, FaultAuthentication, FaultRemote}
	authPerm         = []FaultKind{FaultPermission, FaultAuthentication, FaultRemote}
	authPermNoRemote = []FaultKind{FaultPermission, FaultAuthentication}
	permOnly         = []FaultKind{FaultPermission, FaultRemote}
	permValid        = []FaultKind{FaultPermission, FaultValidation, FaultRemote}
	validOnly        = []FaultKind{FaultValidation, FaultRemote}
	authOnly         = []FaultKind{FaultAuthentication, FaultRemote}
	remoteOnly       = []FaultKind{FaultRemote}
	transportOnly    = []FaultKind{}
)

// Operations is the full call catalogue in wire form.
var Operations = []Operation{
	// Session and server.
	{Name: "login", Method: "Login", Params: []string{"username", "password"}, Faults: authOnly},
	{Name: "logout", Method: "Logout", Faults: transportOnly},
	{Name: "getServerInfo", Method: "GetServerInfo", Faults: transportOnly},
	{Name: "getConfiguration", Method: "GetConfiguration", Faults: authPerm},

	// Users and groups.
	{Name: "createUser", Method: "CreateUser", Params: []string{"username", "password", "fullName", "email"}, Faults: authPermValid},
	{Name: "getUser", Method: "GetUser", Params: []string{"username"}, Faults: authPermNoRemote},
	{Name: "deleteUser", Method: "DeleteUser", Params: []string{"username"}, Faults: authPermValid},
	{Name: "createGroup", Method: "CreateGroup", Params: []string{"groupName", "firstUser"}, Faults: authPermValid},
	{Name: "getGroup", Method: "GetGroup", Params: []string{"groupName"}, Faults: authPermValid},
	{Name: "updateGroup", Method: "UpdateGroup", Params: []string{"group"}, Faults: authPermValid},
	{Name: "deleteGroup", Method: "DeleteGroup", Params: []string{"groupName", "swapGroup"}, Faults: authPermValid},
	{Name: "addUserToGroup", Method: "AddUserToGroup", Params: []string{"group", "user"}, Faults: authPermValid},
	{Name: "removeUserFromGroup", Method: "RemoveUserFromGroup", Params: []string{"group", "user"}, Faults: authPermValid},

	// Projects.
	{Name: "createProject", Method: "CreateProject", Params: []string{"key", "name", "description", "url", "lead", "permissionScheme", "notificationScheme", "issueSecurityScheme"}, Faults: authPermValid},
	{Name: "createProjectFromObject", Method: "CreateProjectFromObject", Params: []string{"project"}, Faults: authPermValid},
	{Name: "updateProject", Method: "UpdateProject", Params: []string{"project"}, Faults: authPermValid},
	{Name: "deleteProject", Method: "DeleteProject", Params: []string{"projectKey"}, Faults: authPerm},
	{Name: "getProjectByKey", Method: "GetProjectByKey", Params: []string{"projectKey"}, Faults: authPerm},
	{Name: "getProjectById", Method: "GetProjectByID", Params: []string{"id"}, Faults: authPerm},
	{Name: "getProjectWithSchemesById", Method: "GetProjectWithSchemesByID", Params: []string{"id"}, Faults: remoteOnly},
	{Name: "getProjectsNoSchemes", Method: "GetProjectsNoSchemes", Faults: authPerm},
	{Name: "getComponents", Method: "GetComponents", Params: []string{"projectKey"}, Faults: authPerm},
	{Name: "getVersions", Method: "GetVersions", Params: []string{"projectKey"}, Faults: authPerm},
	{Name: "addVersion", Method: "AddVersion", Params: []string{"projectKey", "version"}, Faults: remoteOnly},
	{Name: "releaseVersion", Method: "ReleaseVersion", Params: []string{"projectKey", "version"}, Faults: remoteOnly},
	{Name: "archiveVersion", Method: "ArchiveVersion", Params: []string{"projectKey", "versionName", "archive"}, Faults: remoteOnly},
	{Name: "getSecurityLevels", Method: "GetSecurityLevels", Params: []string{"projectKey"}, Faults: permOnly},
	{Name: "getProjectAvatars", Method: "GetProjectAvatars", Params: []string{"projectKey", "includeSystem"}, Faults: permOnly},
	{Name: "getProjectAvatar", Method: "GetProjectAvatar", Params: []string{"projectKey"}, Faults: permOnly},
	{Name: "setProjectAvatar", Method: "SetProjectAvatar", Params: []string{"projectKey", "avatarID"}, Faults: permOnly},
	{Name: "setNewProjectAvatar", Method: "SetNewProjectAvatar", Params: []string{"projectKey", "contentType", "base64Data"}, Faults: permOnly},
	{Name: "deleteProjectAvatar", Method: "DeleteProjectAvatar", Params: []string{"avatarID"}, Faults: remoteOnly},

	// Constants and fields.
	{Name: "getPriorities", Method: "GetPriorities", Faults: authPermNoRemote},
	{Name: "getResolutions", Method: "GetResolutions", Faults: authPermNoRemote},
	{Name: "getIssueTypes", Method: "GetIssueTypes", Faults: authPermNoRemote},
	{Name: "getSubTaskIssueTypes", Method: "GetSubTaskIssueTypes", Faults: authPermNoRemote},
	{Name: "getIssueTypesForProject", Method: "GetIssueTypesForProject", Params: []string{"projectID"}, Faults: authPermNoRemote},
	{Name: "getSubTaskIssueTypesForProject", Method: "GetSubTaskIssueTypesForProject", Params: []string{"projectID"}, Faults: authPermNoRemote},
	{Name: "getStatuses", Method: "GetStatuses", Faults: authPermNoRemote},
	{Name: "getCustomFields", Method: "GetCustomFields", Faults: remoteOnly},
	{Name: "refreshCustomFields", Method: "RefreshCustomFields", Faults: remoteOnly},

	// Issues.
	{Name: "createIssue", Method: "CreateIssue", Params: []string{"issue"}, Faults: authPermValid},
	{Name: "createIssueWithSecurityLevel", Method: "CreateIssueWithSecurityLevel", Params: []string{"issue", "securityLevelID"}, Faults: authPermValid},
	{Name: "getIssue", Method: "GetIssue", Params: []string{"issueKey"}, Faults: authPerm},
	{Name: "getIssueById", Method: "GetIssueByID", Params: []string{"issueID"}, Faults: authPerm},
	{Name: "updateIssue", Method: "UpdateIssue", Params: []string{"issueKey", "fields"}, Faults: remoteOnly},
	{Name: "deleteIssue", Method: "DeleteIssue", Params: []string{"issueKey"}, Faults: authPerm},
	{Name: "getAvailableActions", Method: "GetAvailableActions", Params: []string{"issueKey"}, Faults: remoteOnly},
	{Name: "progressWorkflowAction", Method: "ProgressWorkflowAction", Params: []string{"issueKey", "actionID", "fields"}, Faults: remoteOnly},
	{Name: "getFieldsForEdit", Method: "GetFieldsForEdit", Params: []string{"issueKey"}, Faults: remoteOnly},
	{Name: "getFieldsForAction", Method: "GetFieldsForAction", Params: []string{"issueKey", "actionID"}, Faults: remoteOnly},
	{Name: "getSecurityLevel", Method: "GetSecurityLevel", Params: []string{"issueKey"}, Faults: permOnly},
	{Name: "getResolutionDateByKey", Method: "GetResolutionDateByKey", Params: []string{"issueKey"}, Faults: authPerm},
	{Name: "getResolutionDateById", Method: "GetResolutionDateByID", Params: []string{"issueID"}, Faults: authPerm},

	// Comments.
	{Name: "addComment", Method: "AddComment", Params: []string{"issueKey", "comment"}, Faults: authPerm},
	{Name: "getComment", Method: "GetComment", Params: []string{"id"}, Faults: remoteOnly},
	{Name: "getComments", Method: "GetComments", Params: []string{"issueKey"}, Faults: authPerm},
	{Name: "editComment", Method: "EditComment", Params: []string{"comment"}, Faults: remoteOnly},
	{Name: "hasPermissionToEditComment", Method: "HasPermissionToEditComment", Params: []string{"comment"}, Faults: remoteOnly},

	// Attachments.
	{Name: "addAttachmentsToIssue", Method: "AddAttachmentsToIssue", Params: []string{"issueKey", "fileNames", "data"}, Faults: authPermValid},
	{Name: "addBase64EncodedAttachmentsToIssue", Method: "AddBase64EncodedAttachmentsToIssue", Params: []string{"issueKey", "fileNames", "base64Data"}, Faults: authPermValid},
	{Name: "getAttachmentsFromIssue", Method: "GetAttachmentsFromIssue", Params: []string{"issueKey"}, Faults: authPermValid},

	// Worklogs.
	{Name: "addWorklogWithNewRemainingEstimate", Method: "AddWorklogWithNewRemainingEstimate", Params: []string{"issueKey", "worklog", "newRemainingEstimate"}, Faults: permValid},
	{Name: "addWorklogAndAutoAdjustRemainingEstimate", Method: "AddWorklogAndAutoAdjustRemainingEstimate", Params: []string{"issueKey", "worklog"}, Faults: permValid},
	{Name: "addWorklogAndRetainRemainingEstimate", Method: "AddWorklogAndRetainRemainingEstimate", Params: []string{"issueKey", "worklog"}, Faults: permValid},
	{Name: "deleteWorklogWithNewRemainingEstimate", Method: "DeleteWorklogWithNewRemainingEstimate", Params: []string{"worklogID", "newRemainingEstimate"}, Faults: permValid},
	{Name: "deleteWorklogAndAutoAdjustRemainingEstimate", Method: "DeleteWorklogAndAutoAdjustRemainingEstimate", Params: []string{"worklogID"}, Faults: permValid},
	{Name: "deleteWorklogAndRetainRemainingEstimate", Method: "DeleteWorklogAndRetainRemainingEstimate", Params: []string{"worklogID"}, Faults: permValid},
	{Name: "updateWorklogWithNewRemainingEstimate", Method: "UpdateWorklogWithNewRemainingEstimate", Params: []string{"worklog", "newRemainingEstimate"}, Faults: permValid},
	{Name: "updateWorklogAndAutoAdjustRemainingEstimate", Method: "UpdateWorklogAndAutoAdjustRemainingEstimate", Params: []string{"worklog"}, Faults: permValid},
	{Name: "updateWorklogAndRetainRemainingEstimate", Method: "UpdateWorklogAndRetainRemainingEstimate", Params: []string{"worklog"}, Faults: permValid},
	{Name: "getWorklogs", Method: "GetWorklogs", Params: []string{"issueKey"}, Faults: permValid},
	{Name: "hasPermissionToCreateWorklog", Method: "HasPermissionToCreateWorklog", Params: []string{"issueKey"}, Faults: validOnly},
	{Name: "hasPermissionToDeleteWorklog", Method: "HasPermissionToDeleteWorklog", Params: []string{"worklogID"}, Faults: validOnly},
	{Name: "hasPermissionToUpdateWorklog", Method: "HasPermissionToUpdateWorklog", Params: []string{"worklogID"}, Faults: validOnly},

	// Schemes and permissions.
	{Name: "getNotificationSchemes", Method: "GetNotificationSchemes", Faults: authPerm},
	{Name: "getPermissionSchemes", Method: "GetPermissionSchemes", Faults: authPerm},
	{Name: "getSecuritySchemes", Method: "GetSecuritySchemes", Faults: authPerm},
	{Name: "getAllPermissions", Method: "GetAllPermissions", Faults: authPerm},
	{Name: "createPermissionScheme", Method: "CreatePermissionScheme", Params: []string{"name", "description"}, Faults: authPermValid},
	{Name: "addPermissionTo", Method: "AddPermissionTo", Params: []string{"scheme", "permission", "entity"}, Faults: authPermValid},
	{Name: "deletePermissionFrom", Method: "DeletePermissionFrom", Params: []string{"scheme", "permission", "entity"}, Faults: authPermValid},
	{Name: "deletePermissionScheme", Method: "DeletePermissionScheme", Params: []string{"name"}, Faults: authPermValid},

	// Project roles.
	{Name: "getProjectRoles", Method: "GetProjectRoles", Faults: remoteOnly},
	{Name: "getProjectRole", Method: "GetProjectRole", Params: []string{"id"}, Faults: remoteOnly},
	{Name: "createProjectRole", Method: "CreateProjectRole", Params: []string{"role"}, Faults: remoteOnly},
	{Name: "updateProjectRole", Method: "UpdateProjectRole", Params: []string{"role"}, Faults: remoteOnly},
	{Name: "deleteProjectRole", Method: "DeleteProjectRole", Params: []string{"role", "confirm"}, Faults: remoteOnly},
	{Name: "isProjectRoleNameUnique", Method: "IsProjectRoleNameUnique", Params: []string{"name"}, Faults: remoteOnly},
	{Name: "getProjectRoleActors", Method: "GetProjectRoleActors", Params: []string{"role", "project"}, Faults: remoteOnly},
	{Name: "getDefaultRoleActors", Method: "GetDefaultRoleActors", Params: []string{"role"}, Faults: remoteOnly},
	{Name: "addActorsToProjectRole", Method: "AddActorsToProjectRole", Params: []string{"actors", "role", "project", "actorType"}, Faults: remoteOnly},
	{Name: "removeActorsFromProjectRole", Method: "RemoveActorsFromProjectRole", Params: []string{"actors", "role", "project", "actorType"}, Faults: remoteOnly},
	{Name: "addDefaultActorsToProjectRole", Method: "AddDefaultActorsToProjectRole", Params: []string{"actors", "role", "actorType"}, Faults: remoteOnly},
	{Name: "removeDefaultActorsFromProjectRole", Method: "RemoveDefaultActorsFromProjectRole", Params: []string{"actors", "role", "actorType"}, Faults: remoteOnly},
	{Name: "removeAllRoleActorsByNameAndType", Method: "RemoveAllRoleActorsByNameAndType", Params: []string{"name", "actorType"}, Faults: remoteOnly},
	{Name: "removeAllRoleActorsByProject", Method: "RemoveAllRoleActorsByProject", Params: []string{"project"}, Faults: remoteOnly},
	{Name: "getAssociatedNotificationSchemes", Method: "GetAssociatedNotificationSchemes", Params: []string{"role"}, Faults: remoteOnly},
	{Name: "getAssociatedPermissionSchemes", Method: "GetAssociatedPermissionSchemes", Params: []string{"role"}, Faults: remoteOnly},

	// Search and filters.
	{Name: "getIssuesFromTextSearch", Method: "GetIssuesFromTextSearch", Params: []string{"searchTerms"}, Faults: remoteOnly},
	{Name: "getIssuesFromTextSearchWithProject", Method: "GetIssuesFromTextSearchWithProject", Params: []string{"projectKeys", "searchTerms", "maxResults"}, Faults: remoteOnly},
	{Name: "getIssuesFromTextSearchWithLimit", Method: "GetIssuesFromTextSearchWithLimit", Params: []string{"searchTerms", "offset", "maxResults"}, Faults: remoteOnly},
	{Name: "getIssuesFromJqlSearch", Method: "GetIssuesFromJQLSearch", Params: []string{"jql", "maxResults"}, Faults: remoteOnly},
	{Name: "getSavedFilters", Method: "GetSavedFilters", Faults: authPerm},
	{Name: "getFavouriteFilters", Method: "GetFavouriteFilters", Faults: authPerm},
	{Name: "getIssuesFromFilter", Method: "GetIssuesFromFilter", Params: []string{"filterID"}, Faults: remoteOnly},
	{Name: "getIssuesFromFilterWithLimit", Method: "GetIssuesFromFilterWithLimit", Params: []string{"filterID", "offset", "maxResults"}, Faults: remoteOnly},
	{Name: "getIssueCountForFilter", Method: "GetIssueCountForFilter", Params: []string{"filterID"}, Faults: remoteOnly},
}

var operationIndex = func() map[string]Operation {
	index := make(map[string]Operation, len(Operations))
	for _, op := range Operations {
		index[op.Name] = op
	}
	return index
}()

// LookupOperation finds an operation by wire name.
func LookupOperation(name string) (Operation, bool) {
	op, ok := operationIndex[name]
	return op, ok
}
