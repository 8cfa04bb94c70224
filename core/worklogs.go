package core

import (
	"context"
	"errors"
	"strings"

	"pkt.systems/jirasoap/internal/logx"
	"pkt.systems/jirasoap/schema"
)

// estimateStrategy selects how logging work changes an issue's remaining
// estimate.
type estimateStrategy int

const (
	estimateNew estimateStrategy = iota
	estimateAutoAdjust
	estimateRetain
)

func (s estimateStrategy) String() string {
	switch s {
	case estimateNew:
		return "new"
	case estimateAutoAdjust:
		return "auto"
	default:
		return "retain"
	}
}

// AddWorklogWithNewRemainingEstimate logs work and sets the remaining estimate.
func (t *Tracker) AddWorklogWithNewRemainingEstimate(ctx context.Context, token, issueKey string, worklog *schema.RemoteWorklog, newRemainingEstimate string) (*schema.RemoteWorklog, error) {
	return t.addWorklog(ctx, token, issueKey, worklog, estimateNew, newRemainingEstimate)
}

// AddWorklogAndAutoAdjustRemainingEstimate logs work and reduces the remaining estimate by it.
func (t *Tracker) AddWorklogAndAutoAdjustRemainingEstimate(ctx context.Context, token, issueKey string, worklog *schema.RemoteWorklog) (*schema.RemoteWorklog, error) {
	return t.addWorklog(ctx, token, issueKey, worklog, estimateAutoAdjust, "")
}

// AddWorklogAndRetainRemainingEstimate logs work leaving the remaining estimate alone.
func (t *Tracker) AddWorklogAndRetainRemainingEstimate(ctx context.Context, token, issueKey string, worklog *schema.RemoteWorklog) (*schema.RemoteWorklog, error) {
	return t.addWorklog(ctx, token, issueKey, worklog, estimateRetain, "")
}

// DeleteWorklogWithNewRemainingEstimate deletes a worklog and sets the remaining estimate.
func (t *Tracker) DeleteWorklogWithNewRemainingEstimate(ctx context.Context, token, worklogID, newRemainingEstimate string) error {
	return t.deleteWorklog(ctx, token, worklogID, estimateNew, newRemainingEstimate)
}

// DeleteWorklogAndAutoAdjustRemainingEstimate deletes a worklog and gives its time back to the estimate.
func (t *Tracker) DeleteWorklogAndAutoAdjustRemainingEstimate(ctx context.Context, token, worklogID string) error {
	return t.deleteWorklog(ctx, token, worklogID, estimateAutoAdjust, "")
}

// DeleteWorklogAndRetainRemainingEstimate deletes a worklog leaving the estimate alone.
func (t *Tracker) DeleteWorklogAndRetainRemainingEstimate(ctx context.Context, token, worklogID string) error {
	return t.deleteWorklog(ctx, token, worklogID, estimateRetain, "")
}

// UpdateWorklogWithNewRemainingEstimate updates a worklog and sets the remaining estimate.
func (t *Tracker) UpdateWorklogWithNewRemainingEstimate(ctx context.Context, token string, worklog *schema.RemoteWorklog, newRemainingEstimate string) error {
	return t.updateWorklog(ctx, token, worklog, estimateNew, newRemainingEstimate)
}

// UpdateWorklogAndAutoAdjustRemainingEstimate updates a worklog and adjusts the estimate by the difference.
func (t *Tracker) UpdateWorklogAndAutoAdjustRemainingEstimate(ctx context.Context, token string, worklog *schema.RemoteWorklog) error {
	return t.updateWorklog(ctx, token, worklog, estimateAutoAdjust, "")
}

// UpdateWorklogAndRetainRemainingEstimate updates a worklog leaving the estimate alone.
func (t *Tracker) UpdateWorklogAndRetainRemainingEstimate(ctx context.Context, token string, worklog *schema.RemoteWorklog) error {
	return t.updateWorklog(ctx, token, worklog, estimateRetain, "")
}

func (t *Tracker) addWorklog(ctx context.Context, token, issueKey string, in *schema.RemoteWorklog, strategy estimateStrategy, newEstimate string) (*schema.RemoteWorklog, error) {
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
	if err := t.checkCreateWorklog(caller, project); err != nil {
		return nil, err
	}
	if in == nil {
		return nil, schema.ValidationFault("Worklog must not be null.")
	}
	seconds, err := t.worklogSeconds(in)
	if err != nil {
		return nil, err
	}
	estimate, err := t.parseEstimate(strategy, newEstimate)
	if err != nil {
		return nil, err
	}
	group, role, err := t.worklogVisibility(caller, project, in)
	if err != nil {
		return nil, err
	}
	now := t.timestamp()
	rec := &worklogRecord{
		ID:           t.st.nextID(),
		IssueID:      issue.ID,
		Author:       caller,
		Comment:      in.Comment,
		GroupLevel:   group,
		RoleLevelID:  role,
		StartDate:    now,
		Seconds:      seconds,
		UpdateAuthor: caller,
		Created:      now,
		Updated:      now,
	}
	if in.StartDate != nil {
		rec.StartDate = in.StartDate.In(t.cfg.TimeZone)
	}
	issue.TimeSpent += seconds
	adjustEstimate(issue, strategy, estimate, -seconds)
	issue.Updated = now
	t.st.Worklogs[rec.ID] = rec
	logx.WithIssue(log, issue.Key).Info("work logged", "worklog", rec.ID, "seconds", seconds, "estimate", strategy.String())
	t.publish(schema.TrackerEvent{Type: schema.EventIssueWorklogged, Actor: caller, Project: project.Key, Issue: issue.Key, Subject: formatID(rec.ID), Detail: t.durations().format(seconds)})
	out := t.remoteWorklog(rec)
	return &out, nil
}

func (t *Tracker) deleteWorklog(ctx context.Context, token, worklogID string, strategy estimateStrategy, newEstimate string) error {
	caller, log, err := t.authenticate(ctx, token)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	rec, issue, project, err := t.visibleWorklog(caller, worklogID)
	if err != nil {
		return err
	}
	if !t.canChangeWorklog(caller, project, rec, PermWorklogDeleteOwn, PermWorklogDeleteAll) {
		return schema.PermissionFault("%s cannot delete worklog %d.", caller, rec.ID)
	}
	estimate, err := t.parseEstimate(strategy, newEstimate)
	if err != nil {
		return err
	}
	issue.TimeSpent -= rec.Seconds
	if issue.TimeSpent < 0 {
		issue.TimeSpent = 0
	}
	adjustEstimate(issue, strategy, estimate, rec.Seconds)
	issue.Updated = t.timestamp()
	delete(t.st.Worklogs, rec.ID)
	logx.WithIssue(log, issue.Key).Info("worklog deleted", "worklog", rec.ID, "estimate", strategy.String())
	t.publish(schema.TrackerEvent{Type: schema.EventIssueWorklogged, Actor: caller, Project: project.Key, Issue: issue.Key, Subject: formatID(rec.ID), Detail: "deleted"})
	return nil
}

func (t *Tracker) updateWorklog(ctx context.Context, token string, in *schema.RemoteWorklog, strategy estimateStrategy, newEstimate string) error {
	caller, log, err := t.authenticate(ctx, token)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if in == nil {
		return schema.ValidationFault("Worklog must not be null.")
	}
	rec, issue, project, err := t.visibleWorklog(caller, in.ID)
	if err != nil {
		return err
	}
	if !t.canChangeWorklog(caller, project, rec, PermWorklogEditOwn, PermWorklogEditAll) {
		return schema.PermissionFault("%s cannot update worklog %d.", caller, rec.ID)
	}
	seconds, err := t.worklogSeconds(in)
	if err != nil {
		return err
	}
	estimate, err := t.parseEstimate(strategy, newEstimate)
	if err != nil {
		return err
	}
	group, role, err := t.worklogVisibility(caller, project, in)
	if err != nil {
		return err
	}
	delta := seconds - rec.Seconds
	issue.TimeSpent += delta
	adjustEstimate(issue, strategy, estimate, -delta)
	now := t.timestamp()
	rec.Seconds = seconds
	rec.Comment = in.Comment
	rec.GroupLevel = group
	rec.RoleLevelID = role
	if in.StartDate != nil {
		rec.StartDate = in.StartDate.In(t.cfg.TimeZone)
	}
	rec.UpdateAuthor = caller
	rec.Updated = now
	issue.Updated = now
	logx.WithIssue(log, issue.Key).Info("worklog updated", "worklog", rec.ID, "seconds", seconds, "estimate", strategy.String())
	t.publish(schema.TrackerEvent{Type: schema.EventIssueWorklogged, Actor: caller, Project: project.Key, Issue: issue.Key, Subject: formatID(rec.ID), Detail: "updated"})
	return nil
}

// GetWorklogs lists the worklogs of an issue visible to the caller.
func (t *Tracker) GetWorklogs(ctx context.Context, token, issueKey string) ([]schema.RemoteWorklog, error) {
	caller, _, err := t.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	issue, project, err := t.visibleIssue(caller, strings.TrimSpace(issueKey))
	if err != nil {
		return nil, err
	}
	out := []schema.RemoteWorklog{}
	for _, rec := range t.st.issueWorklogs(issue.ID) {
		if t.canSeeWorklog(caller, project, rec) {
			out = append(out, t.remoteWorklog(rec))
		}
	}
	return out, nil
}

// HasPermissionToCreateWorklog reports whether the caller may log work on an issue.
func (t *Tracker) HasPermissionToCreateWorklog(ctx context.Context, token, issueKey string) (bool, error) {
	caller, _, err := t.authenticate(ctx, token)
	if err != nil {
		return false, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	issue := t.st.issueByKey(strings.TrimSpace(issueKey))
	if issue == nil || !t.canSeeIssue(caller, issue) {
		return false, schema.ValidationFault(issueNotVisible)
	}
	return t.checkCreateWorklog(caller, t.st.Projects[issue.ProjectID]) == nil, nil
}

// HasPermissionToDeleteWorklog reports whether the caller may delete a worklog.
func (t *Tracker) HasPermissionToDeleteWorklog(ctx context.Context, token, worklogID string) (bool, error) {
	return t.hasWorklogPermission(ctx, token, worklogID, PermWorklogDeleteOwn, PermWorklogDeleteAll)
}

// HasPermissionToUpdateWorklog reports whether the caller may update a worklog.
func (t *Tracker) HasPermissionToUpdateWorklog(ctx context.Context, token, worklogID string) (bool, error) {
	return t.hasWorklogPermission(ctx, token, worklogID, PermWorklogEditOwn, PermWorklogEditAll)
}

func (t *Tracker) hasWorklogPermission(ctx context.Context, token, worklogID string, own, all int64) (bool, error) {
	caller, _, err := t.authenticate(ctx, token)
	if err != nil {
		return false, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	rec, _, project, err := t.visibleWorklog(caller, worklogID)
	if err != nil {
		return false, schema.ValidationFault("Worklog %s does not exist.", worklogID)
	}
	return t.canChangeWorklog(caller, project, rec, own, all), nil
}

// checkCreateWorklog requires t.mu.
func (t *Tracker) checkCreateWorklog(caller string, project *projectRecord) error {
	if !t.cfg.AllowTimeTracking {
		return schema.ValidationFault("Time tracking is disabled.")
	}
	return t.requirePermission(caller, project, PermWorkIssue)
}

// visibleWorklog requires t.mu.
func (t *Tracker) visibleWorklog(caller, worklogID string) (*worklogRecord, *issueRecord, *projectRecord, error) {
	id, ok := parseID(strings.TrimSpace(worklogID))
	if !ok {
		return nil, nil, nil, schema.ValidationFault("Worklog id %q is not valid.", worklogID)
	}
	rec := t.st.Worklogs[id]
	if rec == nil {
		return nil, nil, nil, schema.ValidationFault("Worklog %d does not exist.", id)
	}
	issue, project, err := t.visibleIssueByID(caller, rec.IssueID)
	if err != nil {
		return nil, nil, nil, err
	}
	if !t.canSeeWorklog(caller, project, rec) {
		return nil, nil, nil, schema.PermissionFault("%s cannot see worklog %d.", caller, id)
	}
	return rec, issue, project, nil
}

// canChangeWorklog requires t.mu.
func (t *Tracker) canChangeWorklog(caller string, project *projectRecord, rec *worklogRecord, own, all int64) bool {
	if !t.cfg.AllowTimeTracking {
		return false
	}
	if t.hasPermission(caller, project, all) {
		return true
	}
	return rec.Author == caller && t.hasPermission(caller, project, own)
}

// canSeeWorklog requires t.mu.
func (t *Tracker) canSeeWorklog(caller string, project *projectRecord, rec *worklogRecord) bool {
	role := ""
	if rec.RoleLevelID != "" {
		if id, ok := parseID(rec.RoleLevelID); ok {
			if r := t.st.Roles[id]; r != nil {
				role = r.Name
			}
		}
	}
	return t.canSeeRestricted(caller, project, rec.GroupLevel, role)
}

// worklogVisibility requires t.mu.
func (t *Tracker) worklogVisibility(caller string, project *projectRecord, in *schema.RemoteWorklog) (string, string, error) {
	group := strings.TrimSpace(in.GroupLevel)
	roleID := strings.TrimSpace(in.RoleLevelID)
	roleName := ""
	if roleID != "" {
		id, ok := parseID(roleID)
		if !ok || t.st.Roles[id] == nil {
			return "", "", schema.ValidationFault("Project role %q does not exist.", roleID)
		}
		roleName = t.st.Roles[id].Name
	}
	if err := t.checkVisibility(caller, project, group, roleName); err != nil {
		var fault *schema.Fault
		if errors.As(err, &fault) {
			return "", "", schema.ValidationFault("%s", fault.Message)
		}
		return "", "", err
	}
	return group, roleID, nil
}

func (t *Tracker) worklogSeconds(in *schema.RemoteWorklog) (int64, error) {
	if strings.TrimSpace(in.TimeSpent) == "" {
		if in.TimeSpentInSeconds > 0 {
			return in.TimeSpentInSeconds, nil
		}
		return 0, schema.ValidationFault("Time spent must be set.")
	}
	seconds, err := t.durations().parse(in.TimeSpent)
	if err != nil {
		return 0, schema.ValidationFault("Invalid time spent: %v", err)
	}
	if seconds <= 0 {
		return 0, schema.ValidationFault("Time spent must be greater than zero.")
	}
	return seconds, nil
}

func (t *Tracker) parseEstimate(strategy estimateStrategy, value string) (int64, error) {
	if strategy != estimateNew {
		return 0, nil
	}
	seconds, err := t.durations().parse(value)
	if err != nil {
		return 0, schema.ValidationFault("Invalid remaining estimate: %v", err)
	}
	return seconds, nil
}

// adjustEstimate applies the strategy. delta is added to the remaining
// estimate under auto-adjust; an unset estimate stays unset.
func adjustEstimate(issue *issueRecord, strategy estimateStrategy, newEstimate, delta int64) {
	switch strategy {
	case estimateNew:
		v := newEstimate
		issue.Estimate = &v
	case estimateAutoAdjust:
		if issue.Estimate == nil {
			return
		}
		v := *issue.Estimate + delta
		if v < 0 {
			v = 0
		}
		issue.Estimate = &v
	}
}

func (t *Tracker) remoteWorklog(rec *worklogRecord) schema.RemoteWorklog {
	return schema.RemoteWorklog{
		ID:                 formatID(rec.ID),
		Author:             rec.Author,
		Comment:            rec.Comment,
		GroupLevel:         rec.GroupLevel,
		RoleLevelID:        rec.RoleLevelID,
		StartDate:          timePtr(rec.StartDate),
		TimeSpent:          t.durations().format(rec.Seconds),
		TimeSpentInSeconds: rec.Seconds,
		UpdateAuthor:       rec.UpdateAuthor,
		Created:            timePtr(rec.Created),
		Updated:            timePtr(rec.Updated),
	}
}
