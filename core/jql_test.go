package core

import (
	"testing"

	"pkt.systems/jirasoap/schema"
)

func TestParseJQL(t *testing.T) {
	q, err := parseJQL(`project = ABC AND status in (Open, "In Progress") AND assignee = currentUser() AND resolution is EMPTY ORDER BY priority DESC, key`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(q.clauses) != 4 {
		t.Fatalf("expected 4 clauses, got %d", len(q.clauses))
	}
	if q.clauses[1].op != opIn || len(q.clauses[1].values) != 2 || q.clauses[1].values[1].text != "In Progress" {
		t.Fatalf("unexpected in clause %+v", q.clauses[1])
	}
	if !q.clauses[2].values[0].currentUser {
		t.Fatalf("expected currentUser() value")
	}
	if q.clauses[3].op != opIsEmpty {
		t.Fatalf("expected is EMPTY, got %v", q.clauses[3].op)
	}
	if len(q.order) != 2 || q.order[0].field != "priority" || !q.order[0].descending || q.order[1].descending {
		t.Fatalf("unexpected order %+v", q.order)
	}
}

func TestParseJQLVariants(t *testing.T) {
	valid := []string{
		"",
		"ORDER BY created",
		"summary ~ crash",
		"text !~ 'flaky test'",
		"issuetype != Bug",
		"fixVersion not in (1.0, 2.0)",
		"duedate = EMPTY",
		"assignee is not null",
	}
	for _, source := range valid {
		if _, err := parseJQL(source); err != nil {
			t.Fatalf("parse %q: %v", source, err)
		}
	}
	invalid := []string{
		"bogus = 1",
		"project ~ ABC",
		"summary in (a, b)",
		"project =",
		"project = ABC OR project = XYZ",
		"status in (Open",
		"ORDER created",
		`summary ~ "unterminated`,
		"assignee is maybe",
	}
	for _, source := range invalid {
		if _, err := parseJQL(source); err == nil {
			t.Fatalf("expected %q to fail", source)
		}
	}
}

func TestParseJQLEqualsEmpty(t *testing.T) {
	q, err := parseJQL("assignee != EMPTY")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if q.clauses[0].op != opIsNotEmpty {
		t.Fatalf("expected != EMPTY to become is not EMPTY, got %v", q.clauses[0].op)
	}
}

func searchKeys(issues []schema.RemoteIssue) []string {
	keys := make([]string, 0, len(issues))
	for _, issue := range issues {
		keys = append(keys, issue.Key)
	}
	return keys
}

func requireKeys(t *testing.T, issues []schema.RemoteIssue, want ...string) {
	t.Helper()
	got := searchKeys(issues)
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func seedSearch(t *testing.T, f *fixture) (bob string) {
	t.Helper()
	bob = f.user(t, "bob")
	f.project(t, "ABC", "admin")
	f.project(t, "XYZ", "admin")
	create := func(project, summary, priority, assignee string) {
		if _, err := f.tracker.CreateIssue(f.ctx, f.admin, &schema.RemoteIssue{
			Project:  project,
			Type:     TypeBug,
			Summary:  summary,
			Priority: priority,
			Assignee: assignee,
		}); err != nil {
			t.Fatalf("create %q: %v", summary, err)
		}
	}
	create("ABC", "Login page crashes", PriorityCritical, "bob")
	create("ABC", "Typo on dashboard", PriorityTrivial, "")
	create("XYZ", "Crash when saving", PriorityBlocker, "bob")
	create("XYZ", "Slow report export", PriorityMajor, "admin")
	if err := f.tracker.AddComment(f.ctx, f.admin, "ABC-2", &schema.RemoteComment{Body: "also crashes on mobile"}); err != nil {
		t.Fatalf("comment: %v", err)
	}
	return bob
}

func TestJQLSearch(t *testing.T) {
	f := newFixture(t, nil)
	bob := seedSearch(t, f)

	issues, err := f.tracker.GetIssuesFromJQLSearch(f.ctx, bob, "assignee = currentUser() ORDER BY priority DESC", 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	requireKeys(t, issues, "XYZ-1", "ABC-1")

	issues, err = f.tracker.GetIssuesFromJQLSearch(f.ctx, bob, "project = ABC AND priority in (Trivial, Major)", 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	requireKeys(t, issues, "ABC-2")

	issues, err = f.tracker.GetIssuesFromJQLSearch(f.ctx, bob, "assignee is EMPTY", 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	requireKeys(t, issues, "ABC-2")

	issues, err = f.tracker.GetIssuesFromJQLSearch(f.ctx, bob, "resolution = Unresolved ORDER BY priority ASC", 2)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	requireKeys(t, issues, "ABC-2", "XYZ-2")

	issues, err = f.tracker.GetIssuesFromJQLSearch(f.ctx, bob, "comment ~ mobile", 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	requireKeys(t, issues, "ABC-2")

	_, err = f.tracker.GetIssuesFromJQLSearch(f.ctx, bob, "project = = ABC", 0)
	requireFault(t, err, schema.FaultRemote)
}

func TestTextSearch(t *testing.T) {
	f := newFixture(t, nil)
	bob := seedSearch(t, f)

	issues, err := f.tracker.GetIssuesFromTextSearch(f.ctx, bob, "crash")
	if err != nil {
		t.Fatalf("text search: %v", err)
	}
	requireKeys(t, issues, "ABC-1", "ABC-2", "XYZ-1")

	issues, err = f.tracker.GetIssuesFromTextSearch(f.ctx, bob, "crash saving")
	if err != nil {
		t.Fatalf("text search: %v", err)
	}
	requireKeys(t, issues, "XYZ-1")

	issues, err = f.tracker.GetIssuesFromTextSearchWithProject(f.ctx, bob, []string{"XYZ"}, "crash", 0)
	if err != nil {
		t.Fatalf("project text search: %v", err)
	}
	requireKeys(t, issues, "XYZ-1")

	issues, err = f.tracker.GetIssuesFromTextSearchWithLimit(f.ctx, bob, "crash", 1, 1)
	if err != nil {
		t.Fatalf("limited text search: %v", err)
	}
	requireKeys(t, issues, "ABC-2")

	issues, err = f.tracker.GetIssuesFromTextSearchWithLimit(f.ctx, bob, "crash", 10, 5)
	if err != nil {
		t.Fatalf("offset past end: %v", err)
	}
	if issues == nil || len(issues) != 0 {
		t.Fatalf("expected empty non-nil result, got %v", issues)
	}

	_, err = f.tracker.GetIssuesFromTextSearch(f.ctx, bob, "   ")
	requireFault(t, err, schema.FaultRemote)
	_, err = f.tracker.GetIssuesFromTextSearchWithProject(f.ctx, bob, nil, "crash", 0)
	requireFault(t, err, schema.FaultRemote)
}

func TestSearchSkipsHiddenProjects(t *testing.T) {
	f := newFixture(t, nil)
	bob := seedSearch(t, f)
	scheme, err := f.tracker.CreatePermissionScheme(f.ctx, f.admin, "Private", "admins only")
	if err != nil {
		t.Fatalf("create scheme: %v", err)
	}
	if _, err := f.tracker.UpdateProject(f.ctx, f.admin, &schema.RemoteProject{Key: "XYZ", PermissionScheme: scheme}); err != nil {
		t.Fatalf("update project: %v", err)
	}
	issues, err := f.tracker.GetIssuesFromTextSearch(f.ctx, bob, "crash")
	if err != nil {
		t.Fatalf("text search: %v", err)
	}
	requireKeys(t, issues, "ABC-1", "ABC-2")
}

func TestSavedFilters(t *testing.T) {
	f := newFixture(t, func(cfg *Config) {
		cfg.Filters = []Filter{
			{Name: "My open issues", Owner: "admin", JQL: "assignee = currentUser() AND resolution is EMPTY", Favourite: true},
			{Name: "XYZ by priority", Owner: "admin", Project: "XYZ", JQL: "ORDER BY priority DESC"},
		}
	})
	bob := seedSearch(t, f)

	filters, err := f.tracker.GetSavedFilters(f.ctx, bob)
	if err != nil {
		t.Fatalf("saved filters: %v", err)
	}
	if len(filters) != 2 || filters[0].ID != "1" || filters[1].Project != "XYZ" {
		t.Fatalf("unexpected filters %+v", filters)
	}
	favourites, err := f.tracker.GetFavouriteFilters(f.ctx, bob)
	if err != nil {
		t.Fatalf("favourite filters: %v", err)
	}
	if len(favourites) != 1 || favourites[0].Name != "My open issues" {
		t.Fatalf("unexpected favourites %+v", favourites)
	}

	issues, err := f.tracker.GetIssuesFromFilter(f.ctx, bob, "1")
	if err != nil {
		t.Fatalf("run filter: %v", err)
	}
	requireKeys(t, issues, "ABC-1", "XYZ-1")

	issues, err = f.tracker.GetIssuesFromFilterWithLimit(f.ctx, bob, "2", 0, 1)
	if err != nil {
		t.Fatalf("run limited filter: %v", err)
	}
	requireKeys(t, issues, "XYZ-1")

	count, err := f.tracker.GetIssueCountForFilter(f.ctx, f.admin, "2")
	if err != nil {
		t.Fatalf("filter count: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 issues, got %d", count)
	}

	_, err = f.tracker.GetIssuesFromFilter(f.ctx, bob, "42")
	requireFault(t, err, schema.FaultRemote)
}

func TestCompileFiltersRejectsBadJQL(t *testing.T) {
	if _, err := compileFilters([]Filter{{Name: "broken", JQL: "nonsense ="}}); err == nil {
		t.Fatalf("expected bad filter to fail")
	}
	if _, err := compileFilters([]Filter{{JQL: "project = ABC"}}); err == nil {
		t.Fatalf("expected unnamed filter to fail")
	}
	_, err := New(Config{Filters: []Filter{{Name: "broken", JQL: "status ~ open"}}}, Deps{})
	if err == nil {
		t.Fatalf("expected tracker construction to fail on a bad filter")
	}
}
