package core

import (
	"context"
	"slices"
	"strings"

	"pkt.systems/jirasoap/schema"
)

// GetIssuesFromTextSearch returns the visible issues containing every search
// term in their summary, description, environment or comments.
func (t *Tracker) GetIssuesFromTextSearch(ctx context.Context, token, searchTerms string) ([]schema.RemoteIssue, error) {
	return t.textSearch(ctx, token, nil, searchTerms, 0, 0)
}

// GetIssuesFromTextSearchWithProject restricts a text search to projects.
func (t *Tracker) GetIssuesFromTextSearchWithProject(ctx context.Context, token string, projectKeys []string, searchTerms string, maxResults int) ([]schema.RemoteIssue, error) {
	keys := make([]string, 0, len(projectKeys))
	for _, key := range projectKeys {
		if key = strings.TrimSpace(key); key != "" {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		if _, _, err := t.authenticate(ctx, token); err != nil {
			return nil, err
		}
		return nil, schema.RemoteFault("At least one project key is required.")
	}
	return t.textSearch(ctx, token, keys, searchTerms, 0, maxResults)
}

// GetIssuesFromTextSearchWithLimit returns one page of a text search.
func (t *Tracker) GetIssuesFromTextSearchWithLimit(ctx context.Context, token, searchTerms string, offset, maxResults int) ([]schema.RemoteIssue, error) {
	return t.textSearch(ctx, token, nil, searchTerms, offset, maxResults)
}

// GetIssuesFromJQLSearch runs a JQL query.
func (t *Tracker) GetIssuesFromJQLSearch(ctx context.Context, token, jql string, maxResults int) ([]schema.RemoteIssue, error) {
	caller, log, err := t.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	query, err := parseJQL(jql)
	if err != nil {
		return nil, schema.RemoteFault("%v", err)
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	views := page(t.searchLocked(caller, query), 0, maxResults)
	log.Debug("jql search", "results", len(views))
	return t.remoteIssues(views), nil
}

func (t *Tracker) textSearch(ctx context.Context, token string, projectKeys []string, searchTerms string, offset, maxResults int) ([]schema.RemoteIssue, error) {
	caller, log, err := t.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	terms := strings.Fields(strings.ToLower(searchTerms))
	if len(terms) == 0 {
		return nil, schema.RemoteFault("Search terms must not be empty.")
	}
	query := &jqlQuery{}
	for _, term := range terms {
		query.clauses = append(query.clauses, jqlClause{field: "text", op: opContains, values: []jqlValue{{text: term}}})
	}
	if len(projectKeys) > 0 {
		values := make([]jqlValue, 0, len(projectKeys))
		for _, key := range projectKeys {
			values = append(values, jqlValue{text: key})
		}
		query.clauses = append(query.clauses, jqlClause{field: "project", op: opIn, values: values})
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	views := page(t.searchLocked(caller, query), offset, maxResults)
	log.Debug("text search", "terms", len(terms), "results", len(views))
	return t.remoteIssues(views), nil
}

// searchLocked requires t.mu. It returns the visible issues matching query
// in query order.
func (t *Tracker) searchLocked(caller string, query *jqlQuery) []issueView {
	var views []issueView
	for _, issue := range t.st.sortedIssues() {
		if !t.canSeeIssue(caller, issue) {
			continue
		}
		view := t.issueView(caller, issue)
		if query.matches(view, caller) {
			views = append(views, view)
		}
	}
	query.sortIssues(views)
	return views
}

// issueView requires t.mu.
func (t *Tracker) issueView(caller string, issue *issueRecord) issueView {
	view := issueView{issue: issue}
	project := t.st.Projects[issue.ProjectID]
	if project == nil {
		return view
	}
	view.projectKey = project.Key
	view.projectName = project.Name
	for _, id := range issue.Components {
		if i := findComponent(project, id, ""); i >= 0 {
			view.components = append(view.components, project.Components[i].ID, project.Components[i].Name)
		}
	}
	versionNames := func(ids []string) []string {
		var out []string
		for _, id := range ids {
			if i := findVersion(project, id, ""); i >= 0 {
				out = append(out, project.Versions[i].ID, project.Versions[i].Name)
			}
		}
		return out
	}
	view.fixVersions = versionNames(issue.FixVersions)
	view.affects = versionNames(issue.AffectsVersions)
	for _, comment := range t.st.issueComments(issue.ID) {
		if t.canSeeRestricted(caller, project, comment.GroupLevel, comment.RoleLevel) {
			view.comments = append(view.comments, comment.Body)
		}
	}
	return view
}

// remoteIssues requires t.mu.
func (t *Tracker) remoteIssues(views []issueView) []schema.RemoteIssue {
	out := make([]schema.RemoteIssue, 0, len(views))
	for _, view := range views {
		out = append(out, *t.remoteIssue(view.issue))
	}
	return out
}

// page applies offset and maxResults. A maxResults of zero or less means
// no limit.
func page(views []issueView, offset, maxResults int) []issueView {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(views) {
		return nil
	}
	views = views[offset:]
	if maxResults > 0 && maxResults < len(views) {
		views = views[:maxResults]
	}
	return slices.Clip(views)
}
