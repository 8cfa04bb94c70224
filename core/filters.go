package core

import (
	"context"
	"fmt"
	"strings"

	"pkt.systems/jirasoap/schema"
)

type filterRecord struct {
	id     string
	filter Filter
	query  *jqlQuery
}

// compileFilters parses the JQL of every configured filter. A filter bound
// to a project is narrowed to it.
func compileFilters(filters []Filter) ([]filterRecord, error) {
	out := make([]filterRecord, 0, len(filters))
	for i, f := range filters {
		name := strings.TrimSpace(f.Name)
		if name == "" {
			return nil, fmt.Errorf("filter %d: name is required", i+1)
		}
		query, err := parseJQL(f.JQL)
		if err != nil {
			return nil, fmt.Errorf("filter %q: %w", name, err)
		}
		if project := strings.TrimSpace(f.Project); project != "" {
			query.clauses = append(query.clauses, jqlClause{
				field:  "project",
				op:     opEquals,
				values: []jqlValue{{text: project}},
			})
		}
		f.Name = name
		out = append(out, filterRecord{id: formatID(int64(i + 1)), filter: f, query: query})
	}
	return out, nil
}

// GetSavedFilters lists the saved filters visible to the caller.
func (t *Tracker) GetSavedFilters(ctx context.Context, token string) ([]schema.RemoteFilter, error) {
	return t.listFilters(ctx, token, false)
}

// GetFavouriteFilters lists the saved filters marked favourite.
func (t *Tracker) GetFavouriteFilters(ctx context.Context, token string) ([]schema.RemoteFilter, error) {
	return t.listFilters(ctx, token, true)
}

func (t *Tracker) listFilters(ctx context.Context, token string, favouritesOnly bool) ([]schema.RemoteFilter, error) {
	caller, _, err := t.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := []schema.RemoteFilter{}
	for _, rec := range t.filters {
		if favouritesOnly && !rec.filter.Favourite {
			continue
		}
		if !t.filterVisible(caller, rec) {
			continue
		}
		out = append(out, schema.RemoteFilter{
			ID:          rec.id,
			Name:        rec.filter.Name,
			Author:      rec.filter.Owner,
			Description: rec.filter.Description,
			Project:     rec.filter.Project,
			Query:       rec.filter.JQL,
		})
	}
	return out, nil
}

// GetIssuesFromFilter runs a saved filter.
func (t *Tracker) GetIssuesFromFilter(ctx context.Context, token, filterID string) ([]schema.RemoteIssue, error) {
	return t.runFilter(ctx, token, filterID, 0, 0)
}

// GetIssuesFromFilterWithLimit runs a saved filter and returns one page of
// the result.
func (t *Tracker) GetIssuesFromFilterWithLimit(ctx context.Context, token, filterID string, offset, maxResults int) ([]schema.RemoteIssue, error) {
	return t.runFilter(ctx, token, filterID, offset, maxResults)
}

// GetIssueCountForFilter counts the issues a saved filter matches.
func (t *Tracker) GetIssueCountForFilter(ctx context.Context, token, filterID string) (int64, error) {
	caller, _, err := t.authenticate(ctx, token)
	if err != nil {
		return 0, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	rec, err := t.filterFor(caller, filterID)
	if err != nil {
		return 0, err
	}
	return int64(len(t.searchLocked(caller, rec.query))), nil
}

func (t *Tracker) runFilter(ctx context.Context, token, filterID string, offset, maxResults int) ([]schema.RemoteIssue, error) {
	caller, log, err := t.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	rec, err := t.filterFor(caller, filterID)
	if err != nil {
		return nil, err
	}
	views := page(t.searchLocked(caller, rec.query), offset, maxResults)
	log.Debug("filter run", "filter", rec.filter.Name, "results", len(views))
	return t.remoteIssues(views), nil
}

// filterFor requires t.mu.
func (t *Tracker) filterFor(caller, filterID string) (filterRecord, error) {
	filterID = strings.TrimSpace(filterID)
	for _, rec := range t.filters {
		if rec.id == filterID && t.filterVisible(caller, rec) {
			return rec, nil
		}
	}
	return filterRecord{}, schema.RemoteFault("Filter %s does not exist.", filterID)
}

// filterVisible requires t.mu. Filters are shared with everyone who can
// browse the filter's project.
func (t *Tracker) filterVisible(caller string, rec filterRecord) bool {
	if rec.filter.Project == "" || rec.filter.Owner == caller {
		return true
	}
	project := t.st.projectByKey(rec.filter.Project)
	return project != nil && t.hasPermission(caller, project, PermBrowse)
}
