package core

import (
	"testing"
	"time"

	"pkt.systems/jirasoap/schema"
)

func estimateOf(t *testing.T, f *fixture, key string) *int64 {
	t.Helper()
	f.tracker.mu.RLock()
	defer f.tracker.mu.RUnlock()
	issue := f.tracker.st.issueByKey(key)
	if issue == nil {
		t.Fatalf("issue %s not found", key)
	}
	if issue.Estimate == nil {
		return nil
	}
	v := *issue.Estimate
	return &v
}

func TestWorklogEstimateStrategies(t *testing.T) {
	f := newFixture(t, nil)
	bob := f.user(t, "bob")
	f.project(t, "ABC", "admin")
	issue := f.issue(t, bob, "ABC", "timed")

	start := testEpoch.Add(-24 * time.Hour)
	first, err := f.tracker.AddWorklogWithNewRemainingEstimate(f.ctx, bob, issue.Key, &schema.RemoteWorklog{TimeSpent: "1h 30m", StartDate: &start, Comment: "digging"}, "1d")
	if err != nil {
		t.Fatalf("add worklog: %v", err)
	}
	if first.TimeSpentInSeconds != 5400 || first.TimeSpent != "1h 30m" || first.Author != "bob" {
		t.Fatalf("unexpected worklog %+v", first)
	}
	if first.StartDate == nil || !first.StartDate.Equal(start) {
		t.Fatalf("unexpected start date %v", first.StartDate)
	}
	if got := estimateOf(t, f, issue.Key); got == nil || *got != 8*3600 {
		t.Fatalf("expected estimate of one day, got %v", got)
	}

	second, err := f.tracker.AddWorklogAndAutoAdjustRemainingEstimate(f.ctx, bob, issue.Key, &schema.RemoteWorklog{TimeSpent: "3h"})
	if err != nil {
		t.Fatalf("auto adjust worklog: %v", err)
	}
	if got := estimateOf(t, f, issue.Key); got == nil || *got != 5*3600 {
		t.Fatalf("expected 5h remaining, got %v", got)
	}

	if _, err := f.tracker.AddWorklogAndRetainRemainingEstimate(f.ctx, bob, issue.Key, &schema.RemoteWorklog{TimeSpentInSeconds: 600}); err != nil {
		t.Fatalf("retain worklog: %v", err)
	}
	if got := estimateOf(t, f, issue.Key); got == nil || *got != 5*3600 {
		t.Fatalf("retain must keep estimate, got %v", got)
	}

	second.TimeSpent = "1h"
	if err := f.tracker.UpdateWorklogAndAutoAdjustRemainingEstimate(f.ctx, bob, second); err != nil {
		t.Fatalf("update worklog: %v", err)
	}
	if got := estimateOf(t, f, issue.Key); got == nil || *got != 7*3600 {
		t.Fatalf("expected 7h remaining after shrinking worklog, got %v", got)
	}

	if err := f.tracker.DeleteWorklogAndAutoAdjustRemainingEstimate(f.ctx, bob, first.ID); err != nil {
		t.Fatalf("delete worklog: %v", err)
	}
	if got := estimateOf(t, f, issue.Key); got == nil || *got != 7*3600+5400 {
		t.Fatalf("expected deleted time back on the estimate, got %v", got)
	}

	if err := f.tracker.DeleteWorklogWithNewRemainingEstimate(f.ctx, bob, second.ID, "0"); err != nil {
		t.Fatalf("delete with new estimate: %v", err)
	}
	if got := estimateOf(t, f, issue.Key); got == nil || *got != 0 {
		t.Fatalf("expected zero estimate, got %v", got)
	}

	logs, err := f.tracker.GetWorklogs(f.ctx, bob, issue.Key)
	if err != nil {
		t.Fatalf("get worklogs: %v", err)
	}
	if len(logs) != 1 || logs[0].TimeSpent != "10m" {
		t.Fatalf("unexpected remaining worklogs %+v", logs)
	}
}

func TestWorklogAutoAdjustLeavesUnsetEstimate(t *testing.T) {
	f := newFixture(t, nil)
	f.project(t, "ABC", "admin")
	issue := f.issue(t, f.admin, "ABC", "no estimate")
	if _, err := f.tracker.AddWorklogAndAutoAdjustRemainingEstimate(f.ctx, f.admin, issue.Key, &schema.RemoteWorklog{TimeSpent: "2h"}); err != nil {
		t.Fatalf("add worklog: %v", err)
	}
	if got := estimateOf(t, f, issue.Key); got != nil {
		t.Fatalf("expected estimate to stay unset, got %d", *got)
	}
}

func TestWorklogValidation(t *testing.T) {
	f := newFixture(t, nil)
	bob := f.user(t, "bob")
	f.project(t, "ABC", "admin")
	issue := f.issue(t, bob, "ABC", "invalid work")

	_, err := f.tracker.AddWorklogAndRetainRemainingEstimate(f.ctx, bob, issue.Key, &schema.RemoteWorklog{})
	requireFault(t, err, schema.FaultValidation)
	_, err = f.tracker.AddWorklogAndRetainRemainingEstimate(f.ctx, bob, issue.Key, &schema.RemoteWorklog{TimeSpent: "2x"})
	requireFault(t, err, schema.FaultValidation)
	_, err = f.tracker.AddWorklogWithNewRemainingEstimate(f.ctx, bob, issue.Key, &schema.RemoteWorklog{TimeSpent: "1h"}, "soon")
	requireFault(t, err, schema.FaultValidation)
	_, err = f.tracker.AddWorklogWithNewRemainingEstimate(f.ctx, bob, issue.Key, &schema.RemoteWorklog{TimeSpent: "1h"}, "999999999999999999")
	requireFault(t, err, schema.FaultValidation)
	_, err = f.tracker.AddWorklogAndRetainRemainingEstimate(f.ctx, bob, issue.Key, &schema.RemoteWorklog{TimeSpent: "9999999999999999w"})
	requireFault(t, err, schema.FaultValidation)
	_, err = f.tracker.AddWorklogAndRetainRemainingEstimate(f.ctx, bob, issue.Key, &schema.RemoteWorklog{TimeSpent: "1h", GroupLevel: DefaultAdminGroup})
	requireFault(t, err, schema.FaultValidation)
	err = f.tracker.DeleteWorklogAndRetainRemainingEstimate(f.ctx, bob, "99999")
	requireFault(t, err, schema.FaultValidation)
}

func TestWorklogPermissions(t *testing.T) {
	f := newFixture(t, nil)
	bob := f.user(t, "bob")
	carol := f.user(t, "carol")
	f.project(t, "ABC", "admin")
	issue := f.issue(t, bob, "ABC", "shared")
	worklog, err := f.tracker.AddWorklogAndRetainRemainingEstimate(f.ctx, bob, issue.Key, &schema.RemoteWorklog{TimeSpent: "1h"})
	if err != nil {
		t.Fatalf("add worklog: %v", err)
	}

	ok, err := f.tracker.HasPermissionToCreateWorklog(f.ctx, carol, issue.Key)
	if err != nil || !ok {
		t.Fatalf("carol create: ok=%v err=%v", ok, err)
	}
	ok, err = f.tracker.HasPermissionToUpdateWorklog(f.ctx, carol, worklog.ID)
	if err != nil || ok {
		t.Fatalf("carol update: ok=%v err=%v", ok, err)
	}
	ok, err = f.tracker.HasPermissionToDeleteWorklog(f.ctx, bob, worklog.ID)
	if err != nil || !ok {
		t.Fatalf("bob delete: ok=%v err=%v", ok, err)
	}
	ok, err = f.tracker.HasPermissionToDeleteWorklog(f.ctx, f.admin, worklog.ID)
	if err != nil || !ok {
		t.Fatalf("admin delete: ok=%v err=%v", ok, err)
	}
	_, err = f.tracker.HasPermissionToCreateWorklog(f.ctx, carol, "ABC-99")
	requireFault(t, err, schema.FaultValidation)
	_, err = f.tracker.HasPermissionToUpdateWorklog(f.ctx, carol, "nope")
	requireFault(t, err, schema.FaultValidation)

	err = f.tracker.DeleteWorklogAndRetainRemainingEstimate(f.ctx, carol, worklog.ID)
	requireFault(t, err, schema.FaultPermission)
}

func TestWorklogTimeTrackingDisabled(t *testing.T) {
	f := newFixture(t, func(cfg *Config) { cfg.AllowTimeTracking = false })
	f.project(t, "ABC", "admin")
	issue := f.issue(t, f.admin, "ABC", "untracked")
	ok, err := f.tracker.HasPermissionToCreateWorklog(f.ctx, f.admin, issue.Key)
	if err != nil || ok {
		t.Fatalf("expected no worklog permission: ok=%v err=%v", ok, err)
	}
	_, err = f.tracker.AddWorklogAndRetainRemainingEstimate(f.ctx, f.admin, issue.Key, &schema.RemoteWorklog{TimeSpent: "1h"})
	requireFault(t, err, schema.FaultValidation)
}

func TestDurationParse(t *testing.T) {
	units := durationUnits{hoursPerDay: 8, daysPerWeek: 5}
	cases := []struct {
		in   string
		want int64
	}{
		{"30", 1800},
		{"45m", 2700},
		{"2h", 7200},
		{"1d", 28800},
		{"1w", 144000},
		{"1w 2d 3h 30m", 144000 + 57600 + 10800 + 1800},
		{" 3H ", 10800},
	}
	for _, tc := range cases {
		got, err := units.parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("parse %q: expected %d, got %d", tc.in, tc.want, got)
		}
	}
	for _, bad := range []string{"", "h", "1y", "1h 2h", "-5", "1.5h", "abc", "999999999999999999", "9999999999999999w", "153722867280912930m 1h"} {
		if _, err := units.parse(bad); err == nil {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func TestDurationFormat(t *testing.T) {
	units := durationUnits{hoursPerDay: 8, daysPerWeek: 5}
	cases := map[int64]string{
		0:                   "0m",
		-10:                 "0m",
		59:                  "0m",
		60:                  "1m",
		5400:                "1h 30m",
		28800:               "1d",
		144000 + 28800 + 60: "1w 1d 1m",
		2*144000 + 3*3600:   "2w 3h",
	}
	for seconds, want := range cases {
		if got := units.format(seconds); got != want {
			t.Fatalf("format %d: expected %q, got %q", seconds, want, got)
		}
	}
}
