package jirasoap

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"pkt.systems/jirasoap/core"
	"pkt.systems/jirasoap/internal/appconfig"
	"pkt.systems/jirasoap/internal/attachstore"
	"pkt.systems/jirasoap/internal/auth"
	"pkt.systems/jirasoap/internal/eventbus"
	"pkt.systems/jirasoap/schema"
	"pkt.systems/pslog"
)

const testPassword = "correct horse"

func testLogger() pslog.Logger {
	return pslog.NewWithOptions(io.Discard, pslog.Options{Mode: pslog.ModeStructured, NoColor: true})
}

func testAccounts(t *testing.T, logger pslog.Logger) *auth.Store {
	t.Helper()
	accounts := auth.NewMemoryStore(logger)
	if err := accounts.Create(schema.RemoteUser{Name: "admin", Fullname: "Ada Admin"}, testPassword); err != nil {
		t.Fatalf("create admin: %v", err)
	}
	return accounts
}

func testConfig(stateDir string) ServerConfig {
	tracker := core.DefaultConfig()
	tracker.Administrators = []string{"admin"}
	return ServerConfig{
		Addr:        "127.0.0.1:0",
		Tracker:     tracker,
		StateDir:    stateDir,
		Attachments: appconfig.AttachmentsConfig{Backend: appconfig.AttachmentsMemory},
	}
}

func login(t *testing.T, svc schema.Service) string {
	t.Helper()
	token, err := svc.Login(context.Background(), "admin", testPassword)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	return token
}

func stop(t *testing.T, s *compositeServer) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Stop(ctx); err != nil {
		t.Fatalf("Stop: %v", err)
	}
}

func TestNewRequiresAService(t *testing.T) {
	if _, err := New(testConfig(t.TempDir()), ServerDeps{Logger: testLogger()}); err == nil {
		t.Fatalf("expected error without services")
	}
}

func TestStopCancelsServerContext(t *testing.T) {
	logger := testLogger()
	s, err := newCompositeServer(testConfig(t.TempDir()), ServerDeps{Logger: logger, Accounts: testAccounts(t, logger)}, WithSnapshots())
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Start(context.Background()); err == nil {
		t.Fatalf("expected second Start to fail")
	}
	stop(t, s)
	select {
	case <-s.ctx.Done():
	default:
		t.Fatalf("expected server context to be canceled")
	}
	if err := s.Wait(); err != nil {
		t.Fatalf("Wait after stop: %v", err)
	}
}

func TestStateSurvivesRestart(t *testing.T) {
	logger := testLogger()
	accounts := testAccounts(t, logger)
	cfg := testConfig(t.TempDir())
	first, err := newCompositeServer(cfg, ServerDeps{Logger: logger, Accounts: accounts}, WithSnapshots())
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if err := first.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	ctx := context.Background()
	token := login(t, first.Tracker())
	if _, err := first.Tracker().CreateProject(ctx, token, "ABC", "Alphabet", "", "", "admin", nil, nil, nil); err != nil {
		t.Fatalf("create project: %v", err)
	}
	stop(t, first)

	second, err := newCompositeServer(cfg, ServerDeps{Logger: logger, Accounts: accounts}, WithSnapshots())
	if err != nil {
		t.Fatalf("new server after restart: %v", err)
	}
	defer second.close()
	// Sessions are not part of the saved state.
	if _, err := second.Tracker().GetProjectByKey(ctx, token, "ABC"); schema.KindOf(err) != schema.FaultAuthentication {
		t.Fatalf("expected old token to be rejected, got %v", err)
	}
	project, err := second.Tracker().GetProjectByKey(ctx, login(t, second.Tracker()), "ABC")
	if err != nil {
		t.Fatalf("project after restart: %v", err)
	}
	if project.Name != "Alphabet" {
		t.Fatalf("unexpected project %+v", project)
	}
}

func TestSubscribeSeesTrackerEvents(t *testing.T) {
	logger := testLogger()
	s, err := newCompositeServer(testConfig(t.TempDir()), ServerDeps{Logger: logger, Accounts: testAccounts(t, logger)}, WithSOAP())
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	events, cancel := s.Subscribe(eventbus.AllProjects)
	defer cancel()
	ctx := context.Background()
	token := login(t, s.Tracker())
	if _, err := s.Tracker().CreateProject(ctx, token, "ABC", "Alphabet", "", "", "admin", nil, nil, nil); err != nil {
		t.Fatalf("create project: %v", err)
	}
	select {
	case event := <-events:
		if event.Actor != "admin" {
			t.Fatalf("unexpected event %+v", event)
		}
	case <-time.After(time.Second):
		t.Fatalf("expected an event")
	}
}

func TestSOAPHandlerServesHealth(t *testing.T) {
	logger := testLogger()
	s, err := newCompositeServer(testConfig(t.TempDir()), ServerDeps{Logger: logger, Accounts: testAccounts(t, logger)}, WithSOAP())
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	srv := httptest.NewServer(s.soap.Handler())
	defer srv.Close()
	resp, err := srv.Client().Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("get health: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
}

func TestRestorePrunesOrphanedAttachments(t *testing.T) {
	logger := testLogger()
	accounts := testAccounts(t, logger)
	dir := t.TempDir()
	cfg := testConfig(filepath.Join(dir, "state"))
	cfg.Attachments = appconfig.AttachmentsConfig{
		Backend: appconfig.AttachmentsSQLite,
		Path:    filepath.Join(dir, "attachments.db"),
	}
	first, err := newCompositeServer(cfg, ServerDeps{Logger: logger, Accounts: accounts}, WithSnapshots())
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if err := first.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	stop(t, first)

	ctx := context.Background()
	store, err := attachstore.Open(ctx, cfg.Attachments.Path, attachstore.Options{Logger: logger})
	if err != nil {
		t.Fatalf("open attachment store: %v", err)
	}
	if err := store.Put(ctx, 99999, []byte("orphan")); err != nil {
		t.Fatalf("put orphan: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	second, err := newCompositeServer(cfg, ServerDeps{Logger: logger, Accounts: accounts}, WithSnapshots())
	if err != nil {
		t.Fatalf("new server after restart: %v", err)
	}
	_, err = second.attachments.Get(ctx, 99999)
	second.close()
	if !errors.Is(err, core.ErrAttachmentNotFound) {
		t.Fatalf("expected orphan to be pruned, got %v", err)
	}
}

func TestFromAppConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("JIRASOAP_OTEL_ENDPOINT", "")
	app, err := appconfig.DefaultConfig()
	if err != nil {
		t.Fatalf("default config: %v", err)
	}
	app.Tracker.TimeZone = "Europe/Stockholm"
	app.Server.MaxBodyMiB = 4
	cfg, err := FromAppConfig(app)
	if err != nil {
		t.Fatalf("FromAppConfig: %v", err)
	}
	if cfg.Tracker.TimeZone.String() != "Europe/Stockholm" {
		t.Fatalf("unexpected time zone %v", cfg.Tracker.TimeZone)
	}
	if cfg.SOAP.MaxBodyBytes != 4<<20 {
		t.Fatalf("unexpected body limit %d", cfg.SOAP.MaxBodyBytes)
	}
	if len(cfg.Tracker.Filters) != len(app.Tracker.Filters) {
		t.Fatalf("filters not converted")
	}
	if cfg.Telemetry.Active() {
		t.Fatalf("telemetry must be inactive without an endpoint")
	}

	app.Tracker.TimeZone = "Not/AZone"
	if _, err := FromAppConfig(app); err == nil {
		t.Fatalf("expected bad time zone error")
	}
}
