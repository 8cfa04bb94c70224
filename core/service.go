package core

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"pkt.systems/jirasoap/internal/auth"
	"pkt.systems/jirasoap/internal/logx"
	"pkt.systems/jirasoap/schema"
	"pkt.systems/pslog"
)

// Tracker is an in-memory issue tracker serving the whole call catalogue.
type Tracker struct {
	cfg         Config
	accounts    Accounts
	attachments AttachmentStore
	sink        EventSink
	logger      pslog.Logger
	now         func() time.Time
	sessions    *sessionTable
	filters     []filterRecord

	mu sync.RWMutex
	st *state
}

var _ schema.Service = (*Tracker)(nil)

// New constructs a tracker seeded with the default constants, schemes,
// roles and system avatars.
func New(cfg Config, deps Deps) (*Tracker, error) {
	cfg = cfg.withDefaults()
	logger := deps.Logger
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	if deps.Accounts == nil {
		deps.Accounts = auth.NewMemoryStore(logger)
	}
	if deps.Attachments == nil {
		deps.Attachments = NewMemoryAttachmentStore()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	t := &Tracker{
		cfg:         cfg,
		accounts:    deps.Accounts,
		attachments: deps.Attachments,
		sink:        deps.EventSink,
		logger:      logger,
		now:         deps.Now,
		sessions:    newSessionTable(cfg.SessionTTL, deps.Now),
	}
	filters, err := compileFilters(cfg.Filters)
	if err != nil {
		return nil, err
	}
	t.filters = filters
	t.st = t.seed()
	logger.Debug("tracker ready", "projects", len(t.st.Projects), "filters", len(filters))
	return t, nil
}

// Config returns the effective configuration.
func (t *Tracker) Config() Config {
	return t.cfg
}

// PruneSessions drops expired session tokens and returns how many were dropped.
func (t *Tracker) PruneSessions() int {
	pruned := t.sessions.prune()
	if pruned > 0 {
		t.logger.Debug("sessions pruned", "count", pruned, "active", t.sessions.count())
	}
	return pruned
}

// ActiveSessions returns the number of live session tokens.
func (t *Tracker) ActiveSessions() int {
	return t.sessions.count()
}

// Login authenticates a user and returns a new session token.
func (t *Tracker) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	log := logx.WithUser(ctx, username)
	if err := t.accounts.Authenticate(username, password); err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			log.Warn("login failed", "err", err)
		} else {
			log.Info("login rejected")
		}
		return "", schema.AuthenticationFault("Invalid username or password.")
	}
	token, err := t.sessions.create(username)
	if err != nil {
		log.Error("session token generation failed", "err", err)
		return "", schema.RemoteFault("could not create session")
	}
	log.Info("login")
	return token, nil
}

// Logout drops the session token. It reports whether a session existed.
func (t *Tracker) Logout(ctx context.Context, token string) (bool, error) {
	dropped := t.sessions.drop(token)
	if dropped {
		logx.Ctx(ctx).Debug("logout")
	}
	return dropped, nil
}

// GetServerInfo describes the server. It does not require a valid token.
func (t *Tracker) GetServerInfo(_ context.Context, _ string) (*schema.RemoteServerInfo, error) {
	now := t.now().In(t.cfg.TimeZone)
	info := &schema.RemoteServerInfo{
		BaseURL:     t.cfg.BaseURL,
		BuildNumber: t.cfg.BuildNumber,
		Edition:     t.cfg.Edition,
		Version:     t.cfg.Version,
		ServerTime: &schema.RemoteTimeInfo{
			ServerTime: now.Format("2006-01-02T15:04:05.000-0700"),
			TimeZoneID: t.cfg.TimeZone.String(),
		},
	}
	if !t.cfg.BuildDate.IsZero() {
		built := t.cfg.BuildDate
		info.BuildDate = &built
	}
	return info, nil
}

// GetConfiguration reports the feature switches.
func (t *Tracker) GetConfiguration(ctx context.Context, token string) (*schema.RemoteConfiguration, error) {
	if _, _, err := t.authenticate(ctx, token); err != nil {
		return nil, err
	}
	return &schema.RemoteConfiguration{
		AllowAttachments:           t.cfg.AllowAttachments,
		AllowExternalUserManagment: false,
		AllowIssueLinking:          false,
		AllowSubTasks:              t.cfg.AllowSubTasks,
		AllowTimeTracking:          t.cfg.AllowTimeTracking,
		AllowUnassignedIssues:      t.cfg.AllowUnassignedIssues,
		AllowVoting:                t.cfg.AllowVoting,
		AllowWatching:              t.cfg.AllowWatching,
		TimeTrackingDaysPerWeek:    t.cfg.DaysPerWeek,
		TimeTrackingHoursPerDay:    t.cfg.HoursPerDay,
	}, nil
}

// authenticate resolves the caller of a session token and returns a logger
// annotated with the caller.
func (t *Tracker) authenticate(ctx context.Context, token string) (string, pslog.Logger, error) {
	username, ok := t.sessions.touch(token)
	if !ok {
		logx.Ctx(ctx).Debug("session token rejected")
		return "", nil, schema.AuthenticationFault("Session token is invalid or has expired. Log in again.")
	}
	if _, exists := t.accounts.Lookup(username); !exists {
		t.sessions.dropUser(username)
		return "", nil, schema.AuthenticationFault("User %s no longer exists.", username)
	}
	return username, logx.WithUser(ctx, username), nil
}

// isAdmin requires t.mu.
func (t *Tracker) isAdmin(username string) bool {
	return t.inGroup(username, t.cfg.AdminGroup)
}

// requireAdmin requires t.mu.
func (t *Tracker) requireAdmin(username, action string) error {
	if t.isAdmin(username) {
		return nil
	}
	return schema.PermissionFault("%s does not have permission to %s.", username, action)
}

func (t *Tracker) publish(event schema.TrackerEvent) {
	if t.sink == nil {
		return
	}
	if event.Time.IsZero() {
		event.Time = t.now()
	}
	t.sink.OnTrackerEvent(event)
}

func (t *Tracker) timestamp() time.Time {
	return t.now().In(t.cfg.TimeZone).Truncate(time.Millisecond)
}

func timePtr(value time.Time) *time.Time {
	if value.IsZero() {
		return nil
	}
	v := value
	return &v
}
