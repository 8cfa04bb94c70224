package main

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"pkt.systems/jirasoap/core"
	"pkt.systems/jirasoap/internal/auth"
	"pkt.systems/jirasoap/internal/bugfiler"
	"pkt.systems/jirasoap/internal/persist"
	"pkt.systems/jirasoap/schema"
	"pkt.systems/jirasoap/soapserver"
	"pkt.systems/pslog"
)

const testPassword = "s3cret-pass"

// startTracker serves a tracker holding project ABC with component Backend.
func startTracker(t *testing.T) (*core.Tracker, *httptest.Server) {
	t.Helper()
	t.Setenv("JIRA_SOAP_USERNAME", "")
	t.Setenv("JIRA_SOAP_PASSWORD", "")
	logger := pslog.NewWithOptions(&strings.Builder{}, pslog.Options{Mode: pslog.ModeStructured, NoColor: true})
	accounts := auth.NewMemoryStore(logger)
	if err := accounts.Create(schema.RemoteUser{Name: "admin", Fullname: "Ada Admin"}, testPassword); err != nil {
		t.Fatalf("create admin: %v", err)
	}
	cfg := core.DefaultConfig()
	cfg.Administrators = []string{"admin"}
	tracker, err := core.New(cfg, core.Deps{Accounts: accounts, Logger: logger})
	if err != nil {
		t.Fatalf("new tracker: %v", err)
	}
	ctx := context.Background()
	token, err := tracker.Login(ctx, "admin", testPassword)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := tracker.CreateProject(ctx, token, "ABC", "Alphabet", "", "", "admin", nil, nil, nil); err != nil {
		t.Fatalf("create project: %v", err)
	}
	if _, err := tracker.AddComponent(ctx, token, "ABC", "Backend"); err != nil {
		t.Fatalf("add component: %v", err)
	}
	srv := httptest.NewServer(soapserver.New(tracker, soapserver.Config{}).Handler())
	t.Cleanup(srv.Close)
	return tracker, srv
}

func runCmd(t *testing.T, cmd *cobra.Command, args ...string) string {
	t.Helper()
	out := &bytes.Buffer{}
	cmd.SetArgs(args)
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(""))
	if err := cmd.Execute(); err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return out.String()
}

func TestServerInfoWithoutLogin(t *testing.T) {
	_, srv := startTracker(t)
	out := runCmd(t, newServerInfoCmd(), "--url", srv.URL)
	if !strings.Contains(out, "version:") {
		t.Fatalf("expected version line, got %q", out)
	}
}

func TestIssueCreateGetAndSearch(t *testing.T) {
	_, srv := startTracker(t)
	conn := []string{"--url", srv.URL, "-u", "admin", "--password", testPassword}

	out := runCmd(t, newIssueCmd(), append(conn, "create", "-p", "ABC", "-s", "Crash on start", "--component", "Backend", "--assignee", "admin")...)
	if !strings.Contains(out, "ABC-1") || !strings.Contains(out, srv.URL+"/browse/ABC-1") {
		t.Fatalf("expected new issue link, got %q", out)
	}

	out = runCmd(t, newIssueCmd(), append(conn, "-o", "yaml", "get", "ABC-1")...)
	if !strings.Contains(out, "summary: Crash on start") {
		t.Fatalf("expected yaml summary, got %q", out)
	}

	out = runCmd(t, newSearchCmd(), append(conn, "jql", "project = ABC")...)
	if !strings.Contains(out, "ABC-1") {
		t.Fatalf("expected jql hit, got %q", out)
	}
	out = runCmd(t, newSearchCmd(), append(conn, "text", "crash")...)
	if !strings.Contains(out, "ABC-1") {
		t.Fatalf("expected text hit, got %q", out)
	}
	out = runCmd(t, newSearchCmd(), append(conn, "text", "nothing-matches-this")...)
	if strings.Contains(out, "ABC-1") {
		t.Fatalf("expected no text hit, got %q", out)
	}
}

func TestIssueCreateRejectsUnknownComponent(t *testing.T) {
	_, srv := startTracker(t)
	cmd := newIssueCmd()
	cmd.SetArgs([]string{"--url", srv.URL, "-u", "admin", "--password", testPassword, "create", "-p", "ABC", "-s", "x", "--component", "Frontend"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	if err := cmd.Execute(); err == nil || !strings.Contains(err.Error(), "Frontend") {
		t.Fatalf("expected unknown component error, got %v", err)
	}
}

func TestIssueTransition(t *testing.T) {
	tracker, srv := startTracker(t)
	conn := []string{"--url", srv.URL, "-u", "admin", "--password", testPassword}
	runCmd(t, newIssueCmd(), append(conn, "create", "-p", "ABC", "-s", "Slow search", "--assignee", "admin")...)

	out := runCmd(t, newIssueCmd(), append(conn, "transition", "ABC-1")...)
	if !strings.Contains(out, "Start Progress") {
		t.Fatalf("expected Start Progress action, got %q", out)
	}
	runCmd(t, newIssueCmd(), append(conn, "transition", "ABC-1", "start progress")...)

	ctx := context.Background()
	token, err := tracker.Login(ctx, "admin", testPassword)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	issue, err := tracker.GetIssue(ctx, token, "ABC-1")
	if err != nil {
		t.Fatalf("get issue: %v", err)
	}
	if issue.Status != core.StatusInProgress {
		t.Fatalf("expected in progress, got status %s", issue.Status)
	}
}

func TestIssueCommentAndAttach(t *testing.T) {
	tracker, srv := startTracker(t)
	conn := []string{"--url", srv.URL, "-u", "admin", "--password", testPassword}
	runCmd(t, newIssueCmd(), append(conn, "create", "-p", "ABC", "-s", "Needs logs")...)
	runCmd(t, newIssueCmd(), append(conn, "comment", "ABC-1", "attached", "the", "logs")...)

	path := filepath.Join(t.TempDir(), "server.log")
	if err := os.WriteFile(path, []byte("panic: boom\n"), 0o600); err != nil {
		t.Fatalf("write log: %v", err)
	}
	runCmd(t, newIssueCmd(), append(conn, "attach", "ABC-1", path)...)

	ctx := context.Background()
	token, err := tracker.Login(ctx, "admin", testPassword)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	comments, err := tracker.GetComments(ctx, token, "ABC-1")
	if err != nil {
		t.Fatalf("get comments: %v", err)
	}
	if len(comments) != 1 || comments[0].Body != "attached the logs" {
		t.Fatalf("unexpected comments %+v", comments)
	}
	issue, err := tracker.GetIssue(ctx, token, "ABC-1")
	if err != nil {
		t.Fatalf("get issue: %v", err)
	}
	if len(issue.AttachmentNames) != 1 || issue.AttachmentNames[0] != "server.log" {
		t.Fatalf("unexpected attachments %v", issue.AttachmentNames)
	}
}

func TestProjectsList(t *testing.T) {
	_, srv := startTracker(t)
	conn := []string{"--url", srv.URL, "-u", "admin", "--password", testPassword}
	out := runCmd(t, newProjectsCmd(), append(conn, "list")...)
	if !strings.Contains(out, "ABC") || !strings.Contains(out, "Alphabet") {
		t.Fatalf("expected project ABC, got %q", out)
	}
	out = runCmd(t, newProjectsCmd(), append(conn, "components", "ABC")...)
	if !strings.Contains(out, "Backend") {
		t.Fatalf("expected Backend component, got %q", out)
	}
}

func TestClientRejectsUnknownOutput(t *testing.T) {
	_, srv := startTracker(t)
	cmd := newProjectsCmd()
	cmd.SetArgs([]string{"--url", srv.URL, "-u", "admin", "--password", testPassword, "-o", "json", "list"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error for unknown output format")
	}
}

func TestFileBugAndStatus(t *testing.T) {
	_, srv := startTracker(t)
	stateDir := t.TempDir()
	conn := []string{"-u", "admin", "--password", testPassword, "--state-dir", stateDir}

	out := runCmd(t, newFileBugCmd(), append(conn, "--tracker", srv.URL)...)
	if !strings.Contains(out, "projects: ABC") || !strings.Contains(out, "Bug") {
		t.Fatalf("expected filing options, got %q", out)
	}
	out = runCmd(t, newFileBugCmd(), append(conn, "--tracker", srv.URL, "-p", "ABC")...)
	if !strings.Contains(out, "Backend") {
		t.Fatalf("expected component list, got %q", out)
	}
	out = runCmd(t, newFileBugCmd(), append(conn, "--tracker", srv.URL, "-p", "ABC", "-c", "Backend", "-s", "Login button dead")...)
	link := strings.TrimSpace(out)
	if link != srv.URL+"/browse/ABC-1" {
		t.Fatalf("unexpected link %q", link)
	}

	out = runCmd(t, newBugStatusCmd(), append(conn, link)...)
	if !strings.Contains(out, "Open") {
		t.Fatalf("expected Open status, got %q", out)
	}

	store, err := persist.NewStore(stateDir)
	if err != nil {
		t.Fatalf("open state: %v", err)
	}
	prefs, err := bugfiler.NewStorePreferences(store)
	if err != nil {
		t.Fatalf("load preferences: %v", err)
	}
	if got := prefs.Get(bugfiler.PreferencesKey(srv.URL)); got != "admin" {
		t.Fatalf("expected remembered username admin, got %q", got)
	}
}

func TestTerminalPrompterOffersLastUsername(t *testing.T) {
	p := &terminalPrompter{in: strings.NewReader("\n"), out: &bytes.Buffer{}, password: "pw"}
	creds, err := p.Credentials(context.Background(), "http://jira.example.com", "bob")
	if err != nil {
		t.Fatalf("credentials: %v", err)
	}
	if creds.Username != "bob" || creds.Password != "pw" {
		t.Fatalf("unexpected credentials %+v", creds)
	}

	p = &terminalPrompter{in: strings.NewReader("carol\r\n"), out: &bytes.Buffer{}, password: "pw"}
	if creds, err = p.Credentials(context.Background(), "http://jira.example.com", "bob"); err != nil || creds.Username != "carol" {
		t.Fatalf("expected typed username, got %+v (%v)", creds, err)
	}

	p = &terminalPrompter{in: strings.NewReader(""), out: &bytes.Buffer{}}
	if _, err := p.Credentials(context.Background(), "http://jira.example.com", ""); !errors.Is(err, bugfiler.ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
}

func TestParseFieldValues(t *testing.T) {
	values, err := parseFieldValues([]string{"resolution=1", "fixVersions=10, 11"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(values) != 2 || values[0].ID != "resolution" || len(values[1].Values) != 2 || values[1].Values[1] != "11" {
		t.Fatalf("unexpected values %+v", values)
	}
	if _, err := parseFieldValues([]string{"novalue"}); err == nil {
		t.Fatalf("expected error for missing =")
	}
}
