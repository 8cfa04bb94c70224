// Package bugfiler files bug reports as tracker issues and looks up the
// status of filed issues.
package bugfiler

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"pkt.systems/jirasoap/schema"
	"pkt.systems/jirasoap/soapclient"
	"pkt.systems/pslog"
)

// ErrCancelled is returned when the user declines to sign in.
var ErrCancelled = errors.New("sign-in cancelled")

// DefaultIssueTypeID is used when the requested issue type name is not
// offered by the project.
const DefaultIssueTypeID = "1"

var (
	dashboardPattern = regexp.MustCompile(`^(?:https?://)?(.*?)(?:/secure(?:/Dashboard\.jspa)?.*)?$`)
	bugLinkPattern   = regexp.MustCompile(`^(.*?)/browse/(.*-\d+).*$`)
	prefKeyStrip     = regexp.MustCompile(`[^A-Za-z0-9_.-]`)
)

// Credentials are what the user typed into the sign-in prompt.
type Credentials struct {
	Username string
	Password string
}

// Prompter asks the user to sign in to baseURL. It returns ErrCancelled
// when the user declines.
type Prompter interface {
	Credentials(ctx context.Context, baseURL, lastUsername string) (Credentials, error)
}

// PrompterFunc adapts a function to Prompter.
type PrompterFunc func(ctx context.Context, baseURL, lastUsername string) (Credentials, error)

// Credentials calls f.
func (f PrompterFunc) Credentials(ctx context.Context, baseURL, lastUsername string) (Credentials, error) {
	return f(ctx, baseURL, lastUsername)
}

// Dialer returns a service for a tracker base URL.
type Dialer func(baseURL string) (schema.Service, error)

// Report is the bug to file.
type Report struct {
	Summary     string
	Description string
}

// FilingOptions are the choices offered when filing a bug.
type FilingOptions struct {
	Projects   []string
	IssueTypes []string
}

type session struct {
	svc      schema.Service
	token    string
	username string
}

// Filer files bugs on one or more trackers. Sessions are cached per base
// URL until an authentication fault shows the token has expired.
type Filer struct {
	dial     Dialer
	prompter Prompter
	prefs    Preferences
	log      pslog.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

// Option configures a Filer.
type Option func(*Filer)

// WithDialer replaces the default SOAP client dialer.
func WithDialer(dial Dialer) Option {
	return func(f *Filer) {
		if dial != nil {
			f.dial = dial
		}
	}
}

// WithLogger sets the logger used when the call context carries none.
func WithLogger(logger pslog.Logger) Option {
	return func(f *Filer) {
		f.log = logger
	}
}

// New constructs a Filer. A nil prefs keeps preferences in memory.
func New(prompter Prompter, prefs Preferences, opts ...Option) *Filer {
	if prefs == nil {
		prefs = NewMemoryPreferences()
	}
	f := &Filer{
		prompter: prompter,
		prefs:    prefs,
		sessions: make(map[string]*session),
		dial: func(baseURL string) (schema.Service, error) {
			return soapclient.New(baseURL)
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// ProcessDashboardURL turns a dashboard URL such as
// https://jira.example.com/secure/Dashboard.jspa into the tracker base URL
// http://jira.example.com.
func ProcessDashboardURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if m := dashboardPattern.FindStringSubmatch(trimmed); m != nil {
		return "http://" + m[1]
	}
	return trimmed
}

// PreferencesKey is the key remembering the last username for baseURL.
func PreferencesKey(baseURL string) string {
	return "jira_last_user_" + prefKeyStrip.ReplaceAllString(baseURL, "")
}

func (f *Filer) logger(ctx context.Context) pslog.Logger {
	if f.log != nil {
		return f.log
	}
	return pslog.Ctx(ctx)
}

// session returns the cached session for baseURL, signing in when there is
// none.
func (f *Filer) session(ctx context.Context, baseURL string) (*session, error) {
	f.mu.Lock()
	cached := f.sessions[baseURL]
	f.mu.Unlock()
	if cached != nil {
		return cached, nil
	}
	if f.prompter == nil {
		return nil, ErrCancelled
	}
	log := f.logger(ctx).With("tracker", baseURL)
	key := PreferencesKey(baseURL)
	creds, err := f.prompter.Credentials(ctx, baseURL, f.prefs.Get(key))
	if err != nil {
		return nil, err
	}
	svc, err := f.dial(baseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", baseURL, err)
	}
	token, err := svc.Login(ctx, creds.Username, creds.Password)
	if err != nil {
		log.Warn("bugfiler sign-in failed", "user", creds.Username, "err", err)
		return nil, err
	}
	if err := f.prefs.Put(key, creds.Username); err != nil {
		log.Warn("bugfiler preference save failed", "err", err)
	}
	s := &session{svc: svc, token: token, username: creds.Username}
	f.mu.Lock()
	if existing := f.sessions[baseURL]; existing != nil {
		s = existing
	} else {
		f.sessions[baseURL] = s
	}
	f.mu.Unlock()
	log.Info("bugfiler signed in", "user", s.username)
	return s, nil
}

// checkSession drops the cached session when err shows its token is no
// longer accepted, and returns err unchanged.
func (f *Filer) checkSession(baseURL string, s *session, err error) error {
	if err != nil && schema.KindOf(err) == schema.FaultAuthentication {
		f.mu.Lock()
		if f.sessions[baseURL] == s {
			delete(f.sessions, baseURL)
		}
		f.mu.Unlock()
	}
	return err
}

// Options fetches the project keys and issue type names of the tracker.
func (f *Filer) Options(ctx context.Context, baseURL string) (FilingOptions, error) {
	s, err := f.session(ctx, baseURL)
	if err != nil {
		return FilingOptions{}, err
	}
	var out FilingOptions
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		projects, err := s.svc.GetProjectsNoSchemes(gctx, s.token)
		if err != nil {
			return fmt.Errorf("list projects: %w", err)
		}
		out.Projects = make([]string, 0, len(projects))
		for _, project := range projects {
			out.Projects = append(out.Projects, project.Key)
		}
		return nil
	})
	g.Go(func() error {
		types, err := s.svc.GetIssueTypes(gctx, s.token)
		if err != nil {
			return fmt.Errorf("list issue types: %w", err)
		}
		out.IssueTypes = make([]string, 0, len(types))
		for _, it := range types {
			out.IssueTypes = append(out.IssueTypes, it.Name)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return FilingOptions{}, f.checkSession(baseURL, s, err)
	}
	return out, nil
}

// ComponentNames lists the components of a project.
func (f *Filer) ComponentNames(ctx context.Context, baseURL, projectKey string) ([]string, error) {
	s, err := f.session(ctx, baseURL)
	if err != nil {
		return nil, err
	}
	components, err := s.svc.GetComponents(ctx, s.token, projectKey)
	if err != nil {
		return nil, f.checkSession(baseURL, s, err)
	}
	names := make([]string, 0, len(components))
	for _, c := range components {
		names = append(names, c.Name)
	}
	return names, nil
}

// File creates an issue for report, reported by and assigned to the
// signed-in user, and returns its browse URL.
func (f *Filer) File(ctx context.Context, baseURL string, report Report, projectKey, componentName, issueTypeName string) (string, error) {
	s, err := f.session(ctx, baseURL)
	if err != nil {
		return "", err
	}
	issue, err := f.file(ctx, s, report, projectKey, componentName, issueTypeName)
	if err != nil {
		return "", f.checkSession(baseURL, s, err)
	}
	if issue == nil {
		return "", fmt.Errorf("%s returned no issue for project %s", baseURL, projectKey)
	}
	link := soapclient.BrowseURL(baseURL, issue.Key)
	f.logger(ctx).Info("bug filed", "tracker", baseURL, "issue", issue.Key)
	return link, nil
}

func (f *Filer) file(ctx context.Context, s *session, report Report, projectKey, componentName, issueTypeName string) (*schema.RemoteIssue, error) {
	components, err := s.svc.GetComponents(ctx, s.token, projectKey)
	if err != nil {
		return nil, err
	}
	var component *schema.RemoteComponent
	for i := range components {
		if components[i].Name == componentName {
			component = &components[i]
			break
		}
	}
	if component == nil {
		return nil, fmt.Errorf("no component named %q in project %s", componentName, projectKey)
	}
	project, err := s.svc.GetProjectByKey(ctx, s.token, projectKey)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("project %s not found", projectKey)
	}
	typeID, err := issueTypeID(ctx, s, project.ID, issueTypeName)
	if err != nil {
		return nil, err
	}
	return s.svc.CreateIssue(ctx, s.token, &schema.RemoteIssue{
		Project:     projectKey,
		Type:        typeID,
		Summary:     report.Summary,
		Description: report.Description,
		Reporter:    s.username,
		Assignee:    s.username,
		Components:  []schema.RemoteComponent{*component},
	})
}

func issueTypeID(ctx context.Context, s *session, projectID, name string) (string, error) {
	types, err := s.svc.GetIssueTypesForProject(ctx, s.token, projectID)
	if err != nil {
		return "", err
	}
	for _, it := range types {
		if it.Name == name {
			return it.ID, nil
		}
	}
	return DefaultIssueTypeID, nil
}

// Status returns the status name of the issue a bug URL points at. It
// returns "" when bugURL is not an issue link or the status is unknown.
func (f *Filer) Status(ctx context.Context, bugURL string) (string, error) {
	m := bugLinkPattern.FindStringSubmatch(strings.TrimSpace(bugURL))
	if m == nil {
		return "", nil
	}
	baseURL, issueKey := m[1], m[2]
	s, err := f.session(ctx, baseURL)
	if err != nil {
		return "", err
	}
	issue, err := s.svc.GetIssue(ctx, s.token, issueKey)
	if err != nil {
		return "", f.checkSession(baseURL, s, err)
	}
	if issue == nil {
		return "", nil
	}
	statuses, err := s.svc.GetStatuses(ctx, s.token)
	if err != nil {
		return "", f.checkSession(baseURL, s, err)
	}
	for _, status := range statuses {
		if status.ID == issue.Status {
			return status.Name, nil
		}
	}
	return "", nil
}

// Close logs out every cached session.
func (f *Filer) Close(ctx context.Context) error {
	f.mu.Lock()
	sessions := f.sessions
	f.sessions = make(map[string]*session)
	f.mu.Unlock()
	var errs []error
	for baseURL, s := range sessions {
		if _, err := s.svc.Logout(ctx, s.token); err != nil {
			errs = append(errs, fmt.Errorf("logout %s: %w", baseURL, err))
		}
	}
	return errors.Join(errs...)
}
