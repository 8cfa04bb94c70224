package core

import (
	"encoding/base64"
	"errors"
	"slices"
	"testing"
	"time"

	"pkt.systems/jirasoap/schema"
)

func TestCreateIssueAssignsKeysPerProject(t *testing.T) {
	f := newFixture(t, nil)
	f.project(t, "ABC", "admin")
	f.project(t, "XYZ", "admin")

	first := f.issue(t, f.admin, "ABC", "first")
	second := f.issue(t, f.admin, "ABC", "second")
	other := f.issue(t, f.admin, "XYZ", "other")
	if first.Key != "ABC-1" || second.Key != "ABC-2" || other.Key != "XYZ-1" {
		t.Fatalf("unexpected keys %s %s %s", first.Key, second.Key, other.Key)
	}
	if first.Status != StatusOpen || first.Priority != PriorityMajor {
		t.Fatalf("unexpected defaults status=%s priority=%s", first.Status, first.Priority)
	}
	if first.Reporter != "admin" || first.Created == nil || !first.Created.Equal(testEpoch) {
		t.Fatalf("unexpected reporter %q created %v", first.Reporter, first.Created)
	}
	if first.Components == nil || first.AttachmentNames == nil || first.CustomFieldValues == nil {
		t.Fatalf("expected empty lists rather than nil")
	}
	got, err := f.tracker.GetIssueByID(f.ctx, f.admin, second.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got.Key != "ABC-2" {
		t.Fatalf("expected ABC-2, got %s", got.Key)
	}
}

func TestCreateIssueValidation(t *testing.T) {
	f := newFixture(t, nil)
	f.project(t, "ABC", "admin")
	cases := []struct {
		name  string
		issue *schema.RemoteIssue
	}{
		{"nil", nil},
		{"unknown project", &schema.RemoteIssue{Project: "NOPE", Type: TypeBug, Summary: "x"}},
		{"no summary", &schema.RemoteIssue{Project: "ABC", Type: TypeBug, Summary: "  "}},
		{"no type", &schema.RemoteIssue{Project: "ABC", Summary: "x"}},
		{"unknown type", &schema.RemoteIssue{Project: "ABC", Type: "99", Summary: "x"}},
		{"sub-task", &schema.RemoteIssue{Project: "ABC", Type: TypeSubTask, Summary: "x"}},
		{"unknown priority", &schema.RemoteIssue{Project: "ABC", Type: TypeBug, Summary: "x", Priority: "42"}},
		{"unknown assignee", &schema.RemoteIssue{Project: "ABC", Type: TypeBug, Summary: "x", Assignee: "ghost"}},
		{"unknown component", &schema.RemoteIssue{Project: "ABC", Type: TypeBug, Summary: "x", Components: []schema.RemoteComponent{{ID: "1"}}}},
		{"bad custom field", &schema.RemoteIssue{Project: "ABC", Type: TypeBug, Summary: "x", CustomFieldValues: []schema.RemoteCustomFieldValue{{CustomfieldID: "severity"}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.tracker.CreateIssue(f.ctx, f.admin, tc.issue)
			requireFault(t, err, schema.FaultValidation)
		})
	}
}

func TestCreateIssueDefaultsAssigneeToLead(t *testing.T) {
	f := newFixture(t, func(cfg *Config) { cfg.AllowUnassignedIssues = false })
	f.user(t, "lead")
	f.project(t, "ABC", "lead")
	issue := f.issue(t, f.admin, "ABC", "needs an owner")
	if issue.Assignee != "lead" {
		t.Fatalf("expected lead as assignee, got %q", issue.Assignee)
	}
}

func TestCreateIssueWithComponentsAndVersions(t *testing.T) {
	f := newFixture(t, nil)
	f.project(t, "ABC", "admin")
	component, err := f.tracker.AddComponent(f.ctx, f.admin, "ABC", "Backend")
	if err != nil {
		t.Fatalf("add component: %v", err)
	}
	version, err := f.tracker.AddVersion(f.ctx, f.admin, "ABC", &schema.RemoteVersion{Name: "1.0"})
	if err != nil {
		t.Fatalf("add version: %v", err)
	}
	issue, err := f.tracker.CreateIssue(f.ctx, f.admin, &schema.RemoteIssue{
		Project:     "ABC",
		Type:        TypeTask,
		Summary:     "ship it",
		Components:  []schema.RemoteComponent{{ID: component.ID}},
		FixVersions: []schema.RemoteVersion{{Name: "1.0"}},
	})
	if err != nil {
		t.Fatalf("create issue: %v", err)
	}
	if len(issue.Components) != 1 || issue.Components[0].Name != "Backend" {
		t.Fatalf("unexpected components %+v", issue.Components)
	}
	if len(issue.FixVersions) != 1 || issue.FixVersions[0].ID != version.ID {
		t.Fatalf("unexpected fix versions %+v", issue.FixVersions)
	}
}

func TestUpdateIssueFields(t *testing.T) {
	f := newFixture(t, func(cfg *Config) {
		cfg.CustomFields = []CustomField{{ID: "customfield_10100", Name: "Severity"}}
	})
	f.user(t, "bob")
	f.project(t, "ABC", "admin")
	issue := f.issue(t, f.admin, "ABC", "original")
	f.clock.Advance(time.Hour)

	updated, err := f.tracker.UpdateIssue(f.ctx, f.admin, issue.Key, []schema.RemoteFieldValue{
		{ID: "summary", Values: []string{"renamed"}},
		{ID: "assignee", Values: []string{"bob"}},
		{ID: "priority", Values: []string{PriorityBlocker}},
		{ID: "duedate", Values: []string{"2026-04-01"}},
		{ID: "customfield_10100", Values: []string{"high"}},
	})
	if err != nil {
		t.Fatalf("update issue: %v", err)
	}
	if updated.Summary != "renamed" || updated.Assignee != "bob" || updated.Priority != PriorityBlocker {
		t.Fatalf("unexpected issue %+v", updated)
	}
	if updated.Duedate == nil || updated.Duedate.Format("2006-01-02") != "2026-04-01" {
		t.Fatalf("unexpected due date %v", updated.Duedate)
	}
	if len(updated.CustomFieldValues) != 1 || updated.CustomFieldValues[0].Values[0] != "high" {
		t.Fatalf("unexpected custom fields %+v", updated.CustomFieldValues)
	}
	if updated.Updated == nil || !updated.Updated.Equal(testEpoch.Add(time.Hour)) {
		t.Fatalf("expected updated timestamp to move, got %v", updated.Updated)
	}

	_, err = f.tracker.UpdateIssue(f.ctx, f.admin, issue.Key, []schema.RemoteFieldValue{{ID: "status", Values: []string{StatusClosed}}})
	requireFault(t, err, schema.FaultRemote)
	_, err = f.tracker.UpdateIssue(f.ctx, f.admin, issue.Key, []schema.RemoteFieldValue{{ID: "assignee", Values: []string{"ghost"}}})
	requireFault(t, err, schema.FaultRemote)
	got, err := f.tracker.GetIssue(f.ctx, f.admin, issue.Key)
	if err != nil {
		t.Fatalf("get issue: %v", err)
	}
	if got.Assignee != "bob" {
		t.Fatalf("failed update must not change the issue, assignee=%q", got.Assignee)
	}
}

func TestUpdateIssueRequiresEditPermission(t *testing.T) {
	f := newFixture(t, nil)
	bob := f.user(t, "bob")
	f.project(t, "ABC", "admin")
	issue := f.issue(t, f.admin, "ABC", "locked down")
	_, err := f.tracker.UpdateIssue(f.ctx, bob, issue.Key, []schema.RemoteFieldValue{{ID: "reporter", Values: []string{"bob"}}})
	requireFault(t, err, schema.FaultPermission)
}

func TestMissingIssueIsPermissionFault(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.tracker.GetIssue(f.ctx, f.admin, "ABC-404")
	requireFault(t, err, schema.FaultPermission)
	_, err = f.tracker.GetIssueByID(f.ctx, f.admin, "not-a-number")
	requireFault(t, err, schema.FaultPermission)
}

func TestDeleteIssueRemovesChildren(t *testing.T) {
	f := newFixture(t, nil)
	bob := f.user(t, "bob")
	f.project(t, "ABC", "admin")
	issue := f.issue(t, bob, "ABC", "doomed")
	if err := f.tracker.AddComment(f.ctx, bob, issue.Key, &schema.RemoteComment{Body: "hello"}); err != nil {
		t.Fatalf("add comment: %v", err)
	}
	if _, err := f.tracker.AddAttachmentsToIssue(f.ctx, bob, issue.Key, []string{"notes.txt"}, [][]byte{[]byte("hi")}); err != nil {
		t.Fatalf("add attachment: %v", err)
	}

	attachments, err := f.tracker.GetAttachmentsFromIssue(f.ctx, bob, issue.Key)
	if err != nil || len(attachments) != 1 {
		t.Fatalf("attachments: %v %+v", err, attachments)
	}
	attachmentID, _ := parseID(attachments[0].ID)

	err = f.tracker.DeleteIssue(f.ctx, bob, issue.Key)
	requireFault(t, err, schema.FaultPermission)

	if err := f.tracker.DeleteIssue(f.ctx, f.admin, issue.Key); err != nil {
		t.Fatalf("delete issue: %v", err)
	}
	if _, err := f.tracker.GetIssue(f.ctx, f.admin, issue.Key); err == nil {
		t.Fatalf("expected deleted issue to be gone")
	}
	if len(f.tracker.st.Comments) != 0 || len(f.tracker.st.Attachments) != 0 {
		t.Fatalf("expected comments and attachments to be removed")
	}
	if _, err := f.tracker.attachments.Get(f.ctx, attachmentID); !errors.Is(err, ErrAttachmentNotFound) {
		t.Fatalf("expected attachment content to be deleted, got %v", err)
	}
}

func TestGetFieldsForEdit(t *testing.T) {
	f := newFixture(t, nil)
	bob := f.user(t, "bob")
	f.project(t, "ABC", "admin")
	issue := f.issue(t, f.admin, "ABC", "fields")
	adminFields, err := f.tracker.GetFieldsForEdit(f.ctx, f.admin, issue.Key)
	if err != nil {
		t.Fatalf("admin fields: %v", err)
	}
	bobFields, err := f.tracker.GetFieldsForEdit(f.ctx, bob, issue.Key)
	if err != nil {
		t.Fatalf("bob fields: %v", err)
	}
	hasField := func(fields []schema.RemoteField, id string) bool {
		return slices.ContainsFunc(fields, func(field schema.RemoteField) bool { return field.ID == id })
	}
	if !hasField(adminFields, "reporter") {
		t.Fatalf("expected admin to edit reporter")
	}
	if hasField(bobFields, "reporter") || !hasField(bobFields, "summary") {
		t.Fatalf("unexpected fields for bob: %+v", bobFields)
	}
}

func TestWorkflowResolveAndReopen(t *testing.T) {
	f := newFixture(t, nil)
	bob := f.user(t, "bob")
	f.project(t, "ABC", "admin")
	issue, err := f.tracker.CreateIssue(f.ctx, bob, &schema.RemoteIssue{Project: "ABC", Type: TypeBug, Summary: "crash", Assignee: "bob"})
	if err != nil {
		t.Fatalf("create issue: %v", err)
	}

	actions, err := f.tracker.GetAvailableActions(f.ctx, bob, issue.Key)
	if err != nil {
		t.Fatalf("available actions: %v", err)
	}
	ids := make([]string, 0, len(actions))
	for _, action := range actions {
		ids = append(ids, action.ID)
	}
	if !slices.Equal(ids, []string{ActionStartProgress, ActionResolve, ActionClose}) {
		t.Fatalf("unexpected actions %v", ids)
	}

	if _, err := f.tracker.ProgressWorkflowAction(f.ctx, bob, issue.Key, ActionStartProgress, nil); err != nil {
		t.Fatalf("start progress: %v", err)
	}
	f.clock.Advance(2 * time.Hour)
	resolved, err := f.tracker.ProgressWorkflowAction(f.ctx, bob, issue.Key, ActionResolve, []schema.RemoteFieldValue{
		{ID: "resolution", Values: []string{ResolutionWontFix}},
		{ID: "comment", Values: []string{"working as intended"}},
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.Status != StatusResolved || resolved.Resolution != ResolutionWontFix {
		t.Fatalf("unexpected resolved issue %+v", resolved)
	}
	when, err := f.tracker.GetResolutionDateByKey(f.ctx, bob, issue.Key)
	if err != nil {
		t.Fatalf("resolution date: %v", err)
	}
	if !when.Equal(testEpoch.Add(2 * time.Hour)) {
		t.Fatalf("unexpected resolution date %v", when)
	}
	comments, err := f.tracker.GetComments(f.ctx, bob, issue.Key)
	if err != nil {
		t.Fatalf("comments: %v", err)
	}
	if len(comments) != 1 || comments[0].Body != "working as intended" {
		t.Fatalf("unexpected comments %+v", comments)
	}

	_, err = f.tracker.ProgressWorkflowAction(f.ctx, bob, issue.Key, ActionStartProgress, nil)
	requireFault(t, err, schema.FaultRemote)

	reopened, err := f.tracker.ProgressWorkflowAction(f.ctx, bob, issue.Key, ActionReopen, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reopened.Status != StatusReopened || reopened.Resolution != "" {
		t.Fatalf("unexpected reopened issue %+v", reopened)
	}
	id, _ := parseID(issue.ID)
	when, err = f.tracker.GetResolutionDateByID(f.ctx, bob, id)
	if err != nil {
		t.Fatalf("resolution date by id: %v", err)
	}
	if !when.IsZero() {
		t.Fatalf("expected zero resolution date after reopen, got %v", when)
	}
}

func TestWorkflowStartProgressBelongsToAssignee(t *testing.T) {
	f := newFixture(t, nil)
	f.user(t, "bob")
	carol := f.user(t, "carol")
	f.project(t, "ABC", "admin")
	issue, err := f.tracker.CreateIssue(f.ctx, f.admin, &schema.RemoteIssue{Project: "ABC", Type: TypeBug, Summary: "x", Assignee: "bob"})
	if err != nil {
		t.Fatalf("create issue: %v", err)
	}
	_, err = f.tracker.ProgressWorkflowAction(f.ctx, carol, issue.Key, ActionStartProgress, nil)
	requireFault(t, err, schema.FaultRemote)
	_, err = f.tracker.ProgressWorkflowAction(f.ctx, carol, issue.Key, "999", nil)
	requireFault(t, err, schema.FaultRemote)
	fields, err := f.tracker.GetFieldsForAction(f.ctx, carol, issue.Key, ActionResolve)
	if err != nil {
		t.Fatalf("fields for action: %v", err)
	}
	if len(fields) != 3 || fields[0].ID != "resolution" {
		t.Fatalf("unexpected fields %+v", fields)
	}
}

func TestSecurityLevelHidesIssue(t *testing.T) {
	f := newFixture(t, nil)
	bob := f.user(t, "bob")
	carol := f.user(t, "carol")
	schemes, err := f.tracker.GetSecuritySchemes(f.ctx, f.admin)
	if err != nil || len(schemes) != 1 {
		t.Fatalf("security schemes: %v %+v", err, schemes)
	}
	if _, err := f.tracker.CreateProject(f.ctx, f.admin, "SEC", "Secure", "", "", "admin", nil, nil, &schemes[0]); err != nil {
		t.Fatalf("create project: %v", err)
	}
	levels, err := f.tracker.GetSecurityLevels(f.ctx, f.admin, "SEC")
	if err != nil || len(levels) != 2 {
		t.Fatalf("security levels: %v %+v", err, levels)
	}
	developers := levels[0]
	if developers.Name != "Developers" {
		t.Fatalf("unexpected first level %+v", developers)
	}
	id, _ := parseID(developers.ID)
	issue, err := f.tracker.CreateIssueWithSecurityLevel(f.ctx, f.admin, &schema.RemoteIssue{Project: "SEC", Type: TypeBug, Summary: "embargoed", Assignee: "carol"}, id)
	if err != nil {
		t.Fatalf("create restricted issue: %v", err)
	}
	_, err = f.tracker.GetIssue(f.ctx, bob, issue.Key)
	requireFault(t, err, schema.FaultPermission)
	if _, err := f.tracker.GetIssue(f.ctx, carol, issue.Key); err != nil {
		t.Fatalf("assignee should see the issue: %v", err)
	}
	if err := f.tracker.AddUserToGroup(f.ctx, f.admin, &schema.RemoteGroup{Name: DefaultDevelopersGroup}, &schema.RemoteUser{Name: "bob"}); err != nil {
		t.Fatalf("add bob to developers: %v", err)
	}
	level, err := f.tracker.GetSecurityLevel(f.ctx, bob, issue.Key)
	if err != nil {
		t.Fatalf("security level: %v", err)
	}
	if level == nil || level.ID != developers.ID {
		t.Fatalf("unexpected level %+v", level)
	}
	_, err = f.tracker.CreateIssueWithSecurityLevel(f.ctx, bob, &schema.RemoteIssue{Project: "SEC", Type: TypeBug, Summary: "x"}, id)
	requireFault(t, err, schema.FaultPermission)
}

func TestCommentVisibilityAndEditing(t *testing.T) {
	f := newFixture(t, nil)
	bob := f.user(t, "bob")
	carol := f.user(t, "carol")
	f.project(t, "ABC", "admin")
	issue := f.issue(t, bob, "ABC", "chatty")

	if err := f.tracker.AddComment(f.ctx, bob, issue.Key, &schema.RemoteComment{Body: "public"}); err != nil {
		t.Fatalf("public comment: %v", err)
	}
	if err := f.tracker.AddComment(f.ctx, f.admin, issue.Key, &schema.RemoteComment{Body: "admins only", GroupLevel: DefaultAdminGroup}); err != nil {
		t.Fatalf("restricted comment: %v", err)
	}
	err := f.tracker.AddComment(f.ctx, bob, issue.Key, &schema.RemoteComment{Body: "nope", GroupLevel: DefaultAdminGroup})
	requireFault(t, err, schema.FaultRemote)
	err = f.tracker.AddComment(f.ctx, bob, issue.Key, &schema.RemoteComment{Body: " "})
	requireFault(t, err, schema.FaultRemote)

	visible, err := f.tracker.GetComments(f.ctx, carol, issue.Key)
	if err != nil {
		t.Fatalf("comments: %v", err)
	}
	if len(visible) != 1 || visible[0].Body != "public" {
		t.Fatalf("unexpected comments for carol %+v", visible)
	}
	all, err := f.tracker.GetComments(f.ctx, f.admin, issue.Key)
	if err != nil || len(all) != 2 {
		t.Fatalf("admin comments: %v %+v", err, all)
	}

	ok, err := f.tracker.HasPermissionToEditComment(f.ctx, carol, &visible[0])
	if err != nil || ok {
		t.Fatalf("carol edit permission: ok=%v err=%v", ok, err)
	}
	ok, err = f.tracker.HasPermissionToEditComment(f.ctx, bob, &visible[0])
	if err != nil || !ok {
		t.Fatalf("bob edit permission: ok=%v err=%v", ok, err)
	}
	f.clock.Advance(time.Minute)
	edited, err := f.tracker.EditComment(f.ctx, bob, &schema.RemoteComment{ID: visible[0].ID, Body: "public, edited"})
	if err != nil {
		t.Fatalf("edit comment: %v", err)
	}
	if edited.Body != "public, edited" || edited.UpdateAuthor != "bob" || !edited.Updated.After(*edited.Created) {
		t.Fatalf("unexpected edited comment %+v", edited)
	}
	_, err = f.tracker.EditComment(f.ctx, carol, &schema.RemoteComment{ID: visible[0].ID, Body: "hijack"})
	requireFault(t, err, schema.FaultPermission)

	id, _ := parseID(all[1].ID)
	_, err = f.tracker.GetComment(f.ctx, carol, id)
	requireFault(t, err, schema.FaultPermission)
}

func TestAttachments(t *testing.T) {
	f := newFixture(t, nil)
	bob := f.user(t, "bob")
	f.project(t, "ABC", "admin")
	issue := f.issue(t, bob, "ABC", "with files")

	ok, err := f.tracker.AddBase64EncodedAttachmentsToIssue(f.ctx, bob, issue.Key,
		[]string{"trace.txt", "dump.json"},
		[]string{base64.StdEncoding.EncodeToString([]byte("stack")), base64.StdEncoding.EncodeToString([]byte(`{"a":1}`))})
	if err != nil || !ok {
		t.Fatalf("add attachments: ok=%v err=%v", ok, err)
	}
	list, err := f.tracker.GetAttachmentsFromIssue(f.ctx, bob, issue.Key)
	if err != nil {
		t.Fatalf("list attachments: %v", err)
	}
	if len(list) != 2 || list[0].Filename != "trace.txt" || list[0].Filesize != 5 {
		t.Fatalf("unexpected attachments %+v", list)
	}
	if list[1].Mimetype != "application/json" {
		t.Fatalf("unexpected mimetype %q", list[1].Mimetype)
	}
	id, _ := parseID(list[0].ID)
	mimetype, data, err := f.tracker.AttachmentContent(f.ctx, bob, id)
	if err != nil {
		t.Fatalf("attachment content: %v", err)
	}
	if string(data) != "stack" || mimetype == "" {
		t.Fatalf("unexpected content %q (%s)", data, mimetype)
	}
	got, err := f.tracker.GetIssue(f.ctx, bob, issue.Key)
	if err != nil {
		t.Fatalf("get issue: %v", err)
	}
	if !slices.Equal(got.AttachmentNames, []string{"trace.txt", "dump.json"}) {
		t.Fatalf("unexpected attachment names %v", got.AttachmentNames)
	}

	_, err = f.tracker.AddAttachmentsToIssue(f.ctx, bob, issue.Key, []string{"../escape"}, [][]byte{[]byte("x")})
	requireFault(t, err, schema.FaultValidation)
	_, err = f.tracker.AddAttachmentsToIssue(f.ctx, bob, issue.Key, []string{"a", "b"}, [][]byte{[]byte("x")})
	requireFault(t, err, schema.FaultValidation)
	_, err = f.tracker.AddBase64EncodedAttachmentsToIssue(f.ctx, bob, issue.Key, []string{"a"}, []string{"%%%"})
	requireFault(t, err, schema.FaultValidation)
}

func TestAttachmentsDisabled(t *testing.T) {
	f := newFixture(t, func(cfg *Config) { cfg.AllowAttachments = false })
	f.project(t, "ABC", "admin")
	issue := f.issue(t, f.admin, "ABC", "no files")
	_, err := f.tracker.AddAttachmentsToIssue(f.ctx, f.admin, issue.Key, []string{"a.txt"}, [][]byte{[]byte("x")})
	requireFault(t, err, schema.FaultValidation)
}

func TestIssueEventsPublished(t *testing.T) {
	f := newFixture(t, nil)
	f.project(t, "ABC", "admin")
	issue := f.issue(t, f.admin, "ABC", "events")
	if _, err := f.tracker.UpdateIssue(f.ctx, f.admin, issue.Key, []schema.RemoteFieldValue{{ID: "summary", Values: []string{"evented"}}}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := f.tracker.DeleteIssue(f.ctx, f.admin, issue.Key); err != nil {
		t.Fatalf("delete: %v", err)
	}
	want := []schema.EventType{schema.EventProjectCreated, schema.EventIssueCreated, schema.EventIssueUpdated, schema.EventIssueDeleted}
	if got := f.sink.types(); !slices.Equal(got, want) {
		t.Fatalf("unexpected events %v", got)
	}
}
