package core

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"pkt.systems/jirasoap/internal/logx"
	"pkt.systems/jirasoap/schema"
)

const customFieldPrefix = "customfield_"

var dueDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"02/Jan/06",
	"2/Jan/06",
}

// editableFields are the system fields UpdateIssue accepts, in the order
// GetFieldsForEdit reports them.
var editableFields = []schema.RemoteField{
	{ID: "summary", Name: "Summary"},
	{ID: "issuetype", Name: "Issue Type"},
	{ID: "priority", Name: "Priority"},
	{ID: "duedate", Name: "Due Date"},
	{ID: "components", Name: "Component/s"},
	{ID: "versions", Name: "Affects Version/s"},
	{ID: "fixVersions", Name: "Fix Version/s"},
	{ID: "assignee", Name: "Assignee"},
	{ID: "reporter", Name: "Reporter"},
	{ID: "environment", Name: "Environment"},
	{ID: "description", Name: "Description"},
}

// CreateIssue creates an issue in the project named by issue.Project.
func (t *Tracker) CreateIssue(ctx context.Context, token string, issue *schema.RemoteIssue) (*schema.RemoteIssue, error) {
	return t.createIssue(ctx, token, issue, 0)
}

// CreateIssueWithSecurityLevel creates an issue restricted to a security level.
func (t *Tracker) CreateIssueWithSecurityLevel(ctx context.Context, token string, issue *schema.RemoteIssue, securityLevelID int64) (*schema.RemoteIssue, error) {
	return t.createIssue(ctx, token, issue, securityLevelID)
}

func (t *Tracker) createIssue(ctx context.Context, token string, in *schema.RemoteIssue, securityLevelID int64) (*schema.RemoteIssue, error) {
	caller, log, err := t.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if in == nil {
		return nil, schema.ValidationFault("Issue must not be null.")
	}
	project := t.st.projectByKey(strings.TrimSpace(in.Project))
	if project == nil {
		return nil, schema.ValidationFault("Project %q does not exist.", in.Project)
	}
	if err := t.requirePermission(caller, project, PermCreateIssue); err != nil {
		return nil, err
	}
	now := t.timestamp()
	rec := &issueRecord{
		ProjectID: project.ID,
		Type:      strings.TrimSpace(in.Type),
		Summary:   strings.TrimSpace(in.Summary),
		Priority:  strings.TrimSpace(in.Priority),
		Status:    StatusOpen,
		Created:   now,
		Updated:   now,
	}
	if rec.Summary == "" {
		return nil, schema.ValidationFault("You must specify a summary of the issue.")
	}
	if rec.Type == "" {
		return nil, schema.ValidationFault("You must specify an issue type.")
	}
	issueType, ok := lookupIssueType(rec.Type)
	if !ok {
		return nil, schema.ValidationFault("Issue type %q does not exist.", rec.Type)
	}
	if issueType.SubTask {
		return nil, schema.ValidationFault("Sub-tasks need a parent issue and cannot be created directly.")
	}
	if rec.Priority == "" {
		rec.Priority = PriorityMajor
	}
	if _, ok := lookupPriority(rec.Priority); !ok {
		return nil, schema.ValidationFault("Priority %q does not exist.", rec.Priority)
	}
	rec.Description = in.Description
	rec.Environment = in.Environment
	if rec.Components, err = componentIDs(project, in.Components); err != nil {
		return nil, err
	}
	if rec.AffectsVersions, err = versionIDs(project, in.AffectsVersions); err != nil {
		return nil, err
	}
	if rec.FixVersions, err = versionIDs(project, in.FixVersions); err != nil {
		return nil, err
	}
	rec.Reporter = caller
	if reporter := strings.TrimSpace(in.Reporter); reporter != "" && reporter != caller {
		if err := t.requirePermission(caller, project, PermModifyReporter); err != nil {
			return nil, err
		}
		if _, ok := t.accounts.Lookup(reporter); !ok {
			return nil, schema.ValidationFault("Reporter %s does not exist.", reporter)
		}
		rec.Reporter = reporter
	}
	assignee := strings.TrimSpace(in.Assignee)
	if assignee == "" && !t.cfg.AllowUnassignedIssues {
		assignee = project.Lead
	}
	if assignee != "" {
		if err := t.checkAssignee(caller, project, assignee, true); err != nil {
			return nil, err
		}
	}
	rec.Assignee = assignee
	if in.Duedate != nil {
		rec.Duedate = timePtr(*in.Duedate)
	}
	for _, value := range in.CustomFieldValues {
		if !strings.HasPrefix(value.CustomfieldID, customFieldPrefix) {
			return nil, schema.ValidationFault("Custom field id %q is not valid.", value.CustomfieldID)
		}
		rec.CustomFields = setCustomField(rec.CustomFields, value.CustomfieldID, value.Key, value.Values)
	}
	if securityLevelID != 0 {
		if err := t.checkSecurityLevel(caller, project, securityLevelID); err != nil {
			return nil, err
		}
		rec.SecurityLevelID = securityLevelID
	}
	project.Counter++
	rec.ID = t.st.nextID()
	rec.Key = fmt.Sprintf("%s-%d", project.Key, project.Counter)
	t.st.Issues[rec.ID] = rec
	logx.WithIssue(log, rec.Key).Info("issue created", "type", rec.Type, "assignee", rec.Assignee)
	t.publish(schema.TrackerEvent{Type: schema.EventIssueCreated, Actor: caller, Project: project.Key, Issue: rec.Key, Subject: rec.Summary})
	return t.remoteIssue(rec), nil
}

// GetIssue returns an issue the caller can see.
func (t *Tracker) GetIssue(ctx context.Context, token, issueKey string) (*schema.RemoteIssue, error) {
	caller, _, err := t.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	issue, _, err := t.visibleIssue(caller, strings.TrimSpace(issueKey))
	if err != nil {
		return nil, err
	}
	return t.remoteIssue(issue), nil
}

// GetIssueByID returns an issue the caller can see.
func (t *Tracker) GetIssueByID(ctx context.Context, token, issueID string) (*schema.RemoteIssue, error) {
	caller, _, err := t.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	id, ok := parseID(strings.TrimSpace(issueID))
	if !ok {
		return nil, schema.PermissionFault(issueNotVisible)
	}
	issue, _, err := t.visibleIssueByID(caller, id)
	if err != nil {
		return nil, err
	}
	return t.remoteIssue(issue), nil
}

// UpdateIssue applies field values to an issue.
func (t *Tracker) UpdateIssue(ctx context.Context, token, issueKey string, fields []schema.RemoteFieldValue) (*schema.RemoteIssue, error) {
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
	if err := t.requirePermission(caller, project, PermEditIssue); err != nil {
		return nil, err
	}
	updated := cloneIssue(issue)
	changed, err := t.applyFields(caller, project, updated, fields)
	if err != nil {
		return nil, err
	}
	if len(changed) > 0 {
		updated.Updated = t.timestamp()
		*issue = *updated
		logx.WithIssue(log, issue.Key).Info("issue updated", "fields", strings.Join(changed, ","))
		t.publish(schema.TrackerEvent{Type: schema.EventIssueUpdated, Actor: caller, Project: project.Key, Issue: issue.Key, Detail: strings.Join(changed, ",")})
	}
	return t.remoteIssue(issue), nil
}

// DeleteIssue removes an issue with its comments, worklogs and attachments.
func (t *Tracker) DeleteIssue(ctx context.Context, token, issueKey string) error {
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
	if err := t.requirePermission(caller, project, PermDeleteIssue); err != nil {
		return err
	}
	t.removeIssue(ctx, issue)
	logx.WithIssue(log, issue.Key).Info("issue deleted")
	t.publish(schema.TrackerEvent{Type: schema.EventIssueDeleted, Actor: caller, Project: project.Key, Issue: issue.Key, Subject: issue.Summary})
	return nil
}

// GetFieldsForEdit lists the fields the caller may pass to UpdateIssue.
func (t *Tracker) GetFieldsForEdit(ctx context.Context, token, issueKey string) ([]schema.RemoteField, error) {
	caller, _, err := t.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, project, err := t.visibleIssue(caller, strings.TrimSpace(issueKey))
	if err != nil {
		return nil, err
	}
	if !t.hasPermission(caller, project, PermEditIssue) {
		return []schema.RemoteField{}, nil
	}
	out := make([]schema.RemoteField, 0, len(editableFields)+len(t.st.CustomFields))
	for _, field := range editableFields {
		switch field.ID {
		case "assignee":
			if !t.hasPermission(caller, project, PermAssignIssue) {
				continue
			}
		case "reporter":
			if !t.hasPermission(caller, project, PermModifyReporter) {
				continue
			}
		case "duedate":
			if !t.hasPermission(caller, project, PermScheduleIssue) {
				continue
			}
		}
		out = append(out, field)
	}
	return append(out, t.st.CustomFields...), nil
}

// GetSecurityLevel returns the security level of an issue, or nil when the
// issue is unrestricted.
func (t *Tracker) GetSecurityLevel(ctx context.Context, token, issueKey string) (*schema.RemoteSecurityLevel, error) {
	caller, _, err := t.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	issue, _, err := t.visibleIssue(caller, strings.TrimSpace(issueKey))
	if err != nil {
		return nil, err
	}
	if issue.SecurityLevelID == 0 {
		return nil, nil
	}
	level, _ := t.st.securityLevel(issue.SecurityLevelID)
	if level == nil {
		return nil, nil
	}
	out := remoteSecurityLevel(*level)
	return &out, nil
}

// GetResolutionDateByKey returns when the issue was resolved, or the zero
// time when it is unresolved.
func (t *Tracker) GetResolutionDateByKey(ctx context.Context, token, issueKey string) (time.Time, error) {
	caller, _, err := t.authenticate(ctx, token)
	if err != nil {
		return time.Time{}, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	issue, _, err := t.visibleIssue(caller, strings.TrimSpace(issueKey))
	if err != nil {
		return time.Time{}, err
	}
	return resolvedAt(issue), nil
}

// GetResolutionDateByID is GetResolutionDateByKey keyed by issue id.
func (t *Tracker) GetResolutionDateByID(ctx context.Context, token string, issueID int64) (time.Time, error) {
	caller, _, err := t.authenticate(ctx, token)
	if err != nil {
		return time.Time{}, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	issue, _, err := t.visibleIssueByID(caller, issueID)
	if err != nil {
		return time.Time{}, err
	}
	return resolvedAt(issue), nil
}

func resolvedAt(issue *issueRecord) time.Time {
	if issue.Resolved == nil {
		return time.Time{}
	}
	return *issue.Resolved
}

// applyFields requires t.mu. It mutates issue and returns the ids of the
// fields that changed. Failures are remote faults since the update and
// workflow operations declare nothing narrower.
func (t *Tracker) applyFields(caller string, project *projectRecord, issue *issueRecord, fields []schema.RemoteFieldValue) ([]string, error) {
	var changed []string
	for _, field := range fields {
		id := strings.TrimSpace(field.ID)
		value := ""
		if len(field.Values) > 0 {
			value = strings.TrimSpace(field.Values[0])
		}
		switch {
		case id == "summary":
			if value == "" {
				return nil, schema.RemoteFault("Summary must not be empty.")
			}
			issue.Summary = value
		case id == "description":
			issue.Description = firstValue(field.Values)
		case id == "environment":
			issue.Environment = firstValue(field.Values)
		case id == "assignee":
			if value == issue.Assignee {
				continue
			}
			if err := t.requirePermission(caller, project, PermAssignIssue); err != nil {
				return nil, err
			}
			if value == "" && !t.cfg.AllowUnassignedIssues {
				return nil, schema.RemoteFault("Issues must be assigned.")
			}
			if value != "" {
				if err := t.checkAssignee(caller, project, value, false); err != nil {
					return nil, err
				}
			}
			issue.Assignee = value
		case id == "reporter":
			if value == issue.Reporter {
				continue
			}
			if err := t.requirePermission(caller, project, PermModifyReporter); err != nil {
				return nil, err
			}
			if _, ok := t.accounts.Lookup(value); !ok {
				return nil, schema.RemoteFault("Reporter %q does not exist.", value)
			}
			issue.Reporter = value
		case id == "priority":
			if _, ok := lookupPriority(value); !ok {
				return nil, schema.RemoteFault("Priority %q does not exist.", value)
			}
			issue.Priority = value
		case id == "issuetype":
			it, ok := lookupIssueType(value)
			if !ok || it.SubTask {
				return nil, schema.RemoteFault("Issue type %q is not valid here.", value)
			}
			issue.Type = value
		case id == "duedate":
			if err := t.requirePermission(caller, project, PermScheduleIssue); err != nil {
				return nil, err
			}
			due, err := parseDueDate(value, t.cfg.TimeZone)
			if err != nil {
				return nil, schema.RemoteFault("%v", err)
			}
			issue.Duedate = due
		case id == "components":
			ids, err := lookupIDs(field.Values, func(v string) int { return findComponent(project, v, v) }, func(i int) string { return project.Components[i].ID })
			if err != nil {
				return nil, schema.RemoteFault("Component %v does not exist in project %s.", err, project.Key)
			}
			issue.Components = ids
		case id == "versions", id == "fixVersions":
			ids, err := lookupIDs(field.Values, func(v string) int { return findVersion(project, v, v) }, func(i int) string { return project.Versions[i].ID })
			if err != nil {
				return nil, schema.RemoteFault("Version %v does not exist in project %s.", err, project.Key)
			}
			if id == "versions" {
				issue.AffectsVersions = ids
			} else {
				issue.FixVersions = ids
			}
		case strings.HasPrefix(id, customFieldPrefix):
			key := ""
			if i := strings.IndexByte(id, ':'); i >= 0 {
				id, key = id[:i], id[i+1:]
			}
			issue.CustomFields = setCustomField(issue.CustomFields, id, key, field.Values)
		default:
			return nil, schema.RemoteFault("Field %q is not editable.", id)
		}
		if !slices.Contains(changed, id) {
			changed = append(changed, id)
		}
	}
	return changed, nil
}

// checkAssignee requires t.mu. Validation failures are reported as
// validation faults on create and remote faults on update.
func (t *Tracker) checkAssignee(caller string, project *projectRecord, assignee string, creating bool) error {
	fault := schema.RemoteFault
	if creating {
		fault = schema.ValidationFault
	}
	if _, ok := t.accounts.Lookup(assignee); !ok {
		return fault("Assignee %s does not exist.", assignee)
	}
	if !t.hasPermission(assignee, project, PermAssignableUser) {
		return fault("User %s cannot be assigned issues in project %s.", assignee, project.Key)
	}
	if assignee != caller {
		return t.requirePermission(caller, project, PermAssignIssue)
	}
	return nil
}

// checkSecurityLevel requires t.mu.
func (t *Tracker) checkSecurityLevel(caller string, project *projectRecord, levelID int64) error {
	level, scheme := t.st.securityLevel(levelID)
	if level == nil || scheme.ID != project.SecuritySchemeID {
		return schema.ValidationFault("Security level %d is not available in project %s.", levelID, project.Key)
	}
	if err := t.requirePermission(caller, project, PermSetIssueSecurity); err != nil {
		return err
	}
	if !t.isAdmin(caller) && !t.inGroup(caller, level.Group) {
		return schema.PermissionFault("%s cannot set security level %s.", caller, level.Name)
	}
	return nil
}

// removeIssue requires t.mu.
func (t *Tracker) removeIssue(ctx context.Context, issue *issueRecord) {
	for _, comment := range t.st.issueComments(issue.ID) {
		delete(t.st.Comments, comment.ID)
	}
	for _, worklog := range t.st.issueWorklogs(issue.ID) {
		delete(t.st.Worklogs, worklog.ID)
	}
	for _, attachment := range t.st.issueAttachments(issue.ID) {
		if err := t.attachments.Delete(ctx, attachment.ID); err != nil {
			logx.Ctx(ctx).Warn("attachment content delete failed", "attachment", attachment.ID, "err", err)
		}
		delete(t.st.Attachments, attachment.ID)
	}
	delete(t.st.Issues, issue.ID)
}

// remoteIssue requires t.mu.
func (t *Tracker) remoteIssue(issue *issueRecord) *schema.RemoteIssue {
	project := t.st.Projects[issue.ProjectID]
	votes := issue.Votes
	out := &schema.RemoteIssue{
		ID:                formatID(issue.ID),
		Key:               issue.Key,
		Type:              issue.Type,
		Summary:           issue.Summary,
		Description:       issue.Description,
		Environment:       issue.Environment,
		Assignee:          issue.Assignee,
		Reporter:          issue.Reporter,
		Priority:          issue.Priority,
		Status:            issue.Status,
		Resolution:        issue.Resolution,
		Created:           timePtr(issue.Created),
		Updated:           timePtr(issue.Updated),
		Votes:             &votes,
		AffectsVersions:   []schema.RemoteVersion{},
		FixVersions:       []schema.RemoteVersion{},
		Components:        []schema.RemoteComponent{},
		AttachmentNames:   []string{},
		CustomFieldValues: []schema.RemoteCustomFieldValue{},
	}
	if issue.Duedate != nil {
		out.Duedate = timePtr(*issue.Duedate)
	}
	if project != nil {
		out.Project = project.Key
		for _, id := range issue.Components {
			if i := findComponent(project, id, ""); i >= 0 {
				out.Components = append(out.Components, project.Components[i])
			}
		}
		for _, id := range issue.AffectsVersions {
			if i := findVersion(project, id, ""); i >= 0 {
				out.AffectsVersions = append(out.AffectsVersions, project.Versions[i])
			}
		}
		for _, id := range issue.FixVersions {
			if i := findVersion(project, id, ""); i >= 0 {
				out.FixVersions = append(out.FixVersions, project.Versions[i])
			}
		}
	}
	for _, attachment := range t.st.issueAttachments(issue.ID) {
		out.AttachmentNames = append(out.AttachmentNames, attachment.Filename)
	}
	for _, value := range issue.CustomFields {
		value.Values = append([]string{}, value.Values...)
		out.CustomFieldValues = append(out.CustomFieldValues, value)
	}
	return out
}

func cloneIssue(issue *issueRecord) *issueRecord {
	out := *issue
	out.Components = slices.Clone(issue.Components)
	out.AffectsVersions = slices.Clone(issue.AffectsVersions)
	out.FixVersions = slices.Clone(issue.FixVersions)
	out.CustomFields = slices.Clone(issue.CustomFields)
	return &out
}

func componentIDs(project *projectRecord, components []schema.RemoteComponent) ([]string, error) {
	var out []string
	for _, c := range components {
		i := findComponent(project, c.ID, c.Name)
		if i < 0 {
			return nil, schema.ValidationFault("Component %q does not exist in project %s.", firstNonEmpty(c.ID, c.Name), project.Key)
		}
		if id := project.Components[i].ID; !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out, nil
}

func versionIDs(project *projectRecord, versions []schema.RemoteVersion) ([]string, error) {
	var out []string
	for _, v := range versions {
		i := findVersion(project, v.ID, v.Name)
		if i < 0 {
			return nil, schema.ValidationFault("Version %q does not exist in project %s.", firstNonEmpty(v.ID, v.Name), project.Key)
		}
		if id := project.Versions[i].ID; !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out, nil
}

// lookupIDs resolves id-or-name values with find and maps the hits through
// id. The error carries the first unknown value.
func lookupIDs(values []string, find func(string) int, id func(int) string) ([]string, error) {
	var out []string
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		i := find(value)
		if i < 0 {
			return nil, fmt.Errorf("%q", value)
		}
		if resolved := id(i); !slices.Contains(out, resolved) {
			out = append(out, resolved)
		}
	}
	return out, nil
}

func setCustomField(values []schema.RemoteCustomFieldValue, id, key string, raw []string) []schema.RemoteCustomFieldValue {
	cleaned := make([]string, 0, len(raw))
	for _, v := range raw {
		if v = strings.TrimSpace(v); v != "" {
			cleaned = append(cleaned, v)
		}
	}
	idx := slices.IndexFunc(values, func(v schema.RemoteCustomFieldValue) bool {
		return v.CustomfieldID == id && v.Key == key
	})
	if len(cleaned) == 0 {
		if idx >= 0 {
			values = slices.Delete(values, idx, idx+1)
		}
		return values
	}
	entry := schema.RemoteCustomFieldValue{CustomfieldID: id, Key: key, Values: cleaned}
	if idx >= 0 {
		values[idx] = entry
		return values
	}
	return append(values, entry)
}

func parseDueDate(value string, loc *time.Location) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range dueDateLayouts {
		if parsed, err := time.ParseInLocation(layout, value, loc); err == nil {
			return &parsed, nil
		}
	}
	return nil, fmt.Errorf("due date %q is not a recognised date", value)
}

func firstValue(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
