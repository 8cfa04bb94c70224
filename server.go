package jirasoap

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"pkt.systems/jirasoap/core"
	"pkt.systems/jirasoap/internal/appconfig"
	"pkt.systems/jirasoap/internal/attachstore"
	"pkt.systems/jirasoap/internal/auth"
	"pkt.systems/jirasoap/internal/eventbus"
	"pkt.systems/jirasoap/internal/persist"
	"pkt.systems/jirasoap/internal/telemetry"
	"pkt.systems/jirasoap/internal/version"
	"pkt.systems/jirasoap/schema"
	"pkt.systems/jirasoap/soapserver"
	"pkt.systems/pslog"
)

// snapshotDoc names the persisted tracker state in the state directory.
const snapshotDoc = "tracker"

// Server composes the tracker with its SOAP endpoint and state handling.
type Server interface {
	Start(ctx context.Context) error
	Wait() error
	Stop(ctx context.Context) error
}

// ServerConfig configures the compositor.
type ServerConfig struct {
	Addr        string
	SOAP        soapserver.Config
	Tracker     core.Config
	StateDir    string
	Attachments appconfig.AttachmentsConfig
	Auth        AuthConfig
	Telemetry   telemetry.Config
	// SnapshotInterval saves the tracker state periodically. Zero saves
	// only on stop.
	SnapshotInterval time.Duration
	// PruneInterval drops expired sessions periodically. Zero disables it.
	PruneInterval      time.Duration
	DisableAuditTrails bool
}

// AuthConfig defines authentication storage settings.
type AuthConfig struct {
	UserFile  string
	SeedUsers []appconfig.SeedUser
}

// ServerDeps captures optional dependencies. Nil fields are built from the
// config.
type ServerDeps struct {
	Logger      pslog.Logger
	Accounts    core.Accounts
	Attachments core.AttachmentStore
	EventSink   core.EventSink
	Now         func() time.Time
}

// ServerOption toggles compositor components.
type ServerOption func(*serverOptions)

type serverOptions struct {
	enableSOAP      bool
	enableSnapshots bool
}

// WithSOAP enables the SOAP endpoint.
func WithSOAP() ServerOption {
	return func(o *serverOptions) { o.enableSOAP = true }
}

// WithSnapshots loads the tracker state from the state directory on
// construction and saves it on stop.
func WithSnapshots() ServerOption {
	return func(o *serverOptions) { o.enableSnapshots = true }
}

type attachmentPruner interface {
	Prune(ctx context.Context, keep map[int64]bool) (int, error)
}

// FromAppConfig converts the loaded application config.
func FromAppConfig(cfg appconfig.Config) (ServerConfig, error) {
	loc, err := time.LoadLocation(cfg.Tracker.TimeZone)
	if err != nil {
		return ServerConfig{}, fmt.Errorf("tracker.time_zone: %w", err)
	}
	build := version.Read()
	trackerCfg := core.Config{
		BaseURL:               cfg.Server.BaseURL,
		Version:               strings.TrimSuffix(build.Version, "+dirty"),
		BuildNumber:           build.BuildNumber(),
		BuildDate:             build.Time,
		TimeZone:              loc,
		AdminGroup:            cfg.Tracker.AdminGroup,
		UsersGroup:            cfg.Tracker.UsersGroup,
		Administrators:        cfg.Tracker.Administrators,
		SessionTTL:            time.Duration(cfg.Server.SessionTTLHours) * time.Hour,
		HoursPerDay:           cfg.Tracker.HoursPerDay,
		DaysPerWeek:           cfg.Tracker.DaysPerWeek,
		AllowAttachments:      cfg.Tracker.AllowAttachments,
		AllowTimeTracking:     cfg.Tracker.AllowTimeTracking,
		AllowSubTasks:         cfg.Tracker.AllowSubTasks,
		AllowUnassignedIssues: cfg.Tracker.AllowUnassignedIssues,
		AllowVoting:           cfg.Tracker.AllowVoting,
		AllowWatching:         cfg.Tracker.AllowWatching,
	}
	for _, field := range cfg.Tracker.CustomFields {
		trackerCfg.CustomFields = append(trackerCfg.CustomFields, core.CustomField{ID: field.ID, Name: field.Name})
	}
	for _, filter := range cfg.Tracker.Filters {
		trackerCfg.Filters = append(trackerCfg.Filters, core.Filter{
			Name:        filter.Name,
			Description: filter.Description,
			Owner:       filter.Owner,
			Project:     filter.Project,
			JQL:         filter.JQL,
			Favourite:   filter.Favourite,
		})
	}
	tel, err := telemetry.ConfigFromEnv()
	if err != nil {
		return ServerConfig{}, err
	}
	return ServerConfig{
		Addr: cfg.Server.Addr,
		SOAP: soapserver.Config{
			BasePath:     cfg.Server.BasePath,
			MaxBodyBytes: int64(cfg.Server.MaxBodyMiB) << 20,
		},
		Tracker:            trackerCfg,
		StateDir:           cfg.StateDir,
		Attachments:        cfg.Attachments,
		Auth:               AuthConfig{UserFile: cfg.Auth.UserFile, SeedUsers: cfg.Auth.SeedUsers},
		Telemetry:          tel,
		SnapshotInterval:   5 * time.Minute,
		PruneInterval:      10 * time.Minute,
		DisableAuditTrails: cfg.Logging.DisableAuditTrails,
	}, nil
}

// New constructs a composable jirasoap server.
func New(cfg ServerConfig, deps ServerDeps, opts ...ServerOption) (Server, error) {
	return newCompositeServer(cfg, deps, opts...)
}

func newCompositeServer(cfg ServerConfig, deps ServerDeps, opts ...ServerOption) (*compositeServer, error) {
	options := serverOptions{}
	for _, opt := range opts {
		opt(&options)
	}
	if !options.enableSOAP && !options.enableSnapshots {
		return nil, errors.New("no services enabled")
	}
	logger := deps.Logger
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}

	s := &compositeServer{cfg: cfg, options: options, logger: logger}
	accounts := deps.Accounts
	if accounts == nil {
		store, err := auth.NewStoreWithLogger(cfg.Auth.UserFile, cfg.Auth.SeedUsers, logger)
		if err != nil {
			return nil, err
		}
		accounts = store
	}
	attachments := deps.Attachments
	if attachments == nil {
		store, err := openAttachments(cfg.Attachments, logger)
		if err != nil {
			return nil, err
		}
		attachments = store
		if closer, ok := store.(interface{ Close() error }); ok {
			s.closers = append(s.closers, closer.Close)
		}
	}

	s.bus = eventbus.New(logger)
	sinks := eventbus.Fanout{deps.EventSink, s.bus}
	if !cfg.DisableAuditTrails {
		sinks = append(sinks, eventbus.NewAuditLog(logger))
	}
	tracker, err := core.New(cfg.Tracker, core.Deps{
		Accounts:    accounts,
		Attachments: attachments,
		EventSink:   sinks,
		Logger:      logger,
		Now:         deps.Now,
	})
	if err != nil {
		s.close()
		return nil, err
	}
	s.tracker = tracker
	s.attachments = attachments

	if options.enableSnapshots {
		state, err := persist.NewStoreWithLogger(cfg.StateDir, logger)
		if err != nil {
			s.close()
			return nil, err
		}
		s.state = state
		if err := s.restore(context.Background()); err != nil {
			s.close()
			return nil, err
		}
	}
	if options.enableSOAP {
		s.soap = soapserver.New(tracker, cfg.SOAP)
	}
	return s, nil
}

func openAttachments(cfg appconfig.AttachmentsConfig, logger pslog.Logger) (core.AttachmentStore, error) {
	switch cfg.Backend {
	case "", appconfig.AttachmentsMemory:
		return core.NewMemoryAttachmentStore(), nil
	case appconfig.AttachmentsSQLite:
		opts := attachstore.Options{Logger: logger}
		if cfg.Encrypt {
			opts.KeyStorePath = cfg.KeyStorePath
		}
		return attachstore.Open(context.Background(), cfg.Path, opts)
	default:
		return nil, fmt.Errorf("unknown attachment backend %q", cfg.Backend)
	}
}

type compositeServer struct {
	cfg         ServerConfig
	options     serverOptions
	tracker     *core.Tracker
	attachments core.AttachmentStore
	bus         *eventbus.Bus
	soap        *soapserver.Server
	state       *persist.Store
	closers     []func() error
	logger      pslog.Logger

	mu       sync.Mutex
	ctx      context.Context
	cancel   context.CancelFunc
	errCh    chan error
	done     chan struct{}
	started  bool
	shutdown func(context.Context) error
}

// Tracker returns the composed tracker for in-process callers.
func (s *compositeServer) Tracker() schema.Service {
	return s.tracker
}

// Subscribe streams tracker events for a project key, or for every project
// with eventbus.AllProjects.
func (s *compositeServer) Subscribe(project string) (<-chan schema.TrackerEvent, func()) {
	return s.bus.Subscribe(project)
}

// restore loads the saved state, if any, and drops attachment content the
// restored state no longer references.
func (s *compositeServer) restore(ctx context.Context) error {
	var snap core.Snapshot
	found, err := s.state.Load(snapshotDoc, &snap)
	if err != nil {
		return fmt.Errorf("load tracker state: %w", err)
	}
	if !found {
		s.logger.Info("tracker state fresh", "state_dir", s.state.Dir())
		return nil
	}
	if err := s.tracker.Restore(snap); err != nil {
		return fmt.Errorf("restore tracker state: %w", err)
	}
	if pruner, ok := s.attachments.(attachmentPruner); ok {
		pruned, err := pruner.Prune(ctx, s.tracker.AttachmentIDs())
		if err != nil {
			s.logger.Warn("attachment prune failed", "err", err)
		} else if pruned > 0 {
			s.logger.Info("attachment prune ok", "removed", pruned)
		}
	}
	return nil
}

func (s *compositeServer) saveSnapshot() error {
	if s.state == nil {
		return nil
	}
	snap, err := s.tracker.Snapshot()
	if err != nil {
		return err
	}
	return s.state.Save(snapshotDoc, snap)
}

func (s *compositeServer) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		pslog.Ctx(ctx).Warn("server start rejected", "reason", "already started")
		return errors.New("server already started")
	}
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.errCh = make(chan error, 2)
	s.done = make(chan struct{})
	s.started = true
	s.mu.Unlock()

	log := s.logger
	log.Info(
		"server start",
		"soap", s.options.enableSOAP,
		"snapshots", s.options.enableSnapshots,
		"addr", s.cfg.Addr,
		"base_url", s.cfg.Tracker.BaseURL,
		"base_path", s.cfg.SOAP.BasePath,
		"attachments", s.cfg.Attachments.Backend,
	)
	if s.cfg.Telemetry.Active() {
		shutdown, err := telemetry.Setup(s.ctx, "jirasoap", s.cfg.Telemetry)
		if err != nil {
			log.Warn("telemetry setup failed", "err", err)
		} else {
			s.mu.Lock()
			s.shutdown = shutdown
			s.mu.Unlock()
		}
	}
	if s.options.enableSOAP && s.soap != nil {
		serveCtx := pslog.ContextWithLogger(s.ctx, log)
		go func() {
			if err := soapserver.ListenAndServe(serveCtx, s.cfg.Addr, s.soap.Handler()); err != nil {
				log.Error("soap server failed", "err", err)
				s.errCh <- err
			}
		}()
	}
	go s.maintain()
	return nil
}

// maintain prunes sessions and saves snapshots until the server stops.
func (s *compositeServer) maintain() {
	defer close(s.done)
	var pruneC, snapC <-chan time.Time
	if s.cfg.PruneInterval > 0 {
		ticker := time.NewTicker(s.cfg.PruneInterval)
		defer ticker.Stop()
		pruneC = ticker.C
	}
	if s.cfg.SnapshotInterval > 0 && s.state != nil {
		ticker := time.NewTicker(s.cfg.SnapshotInterval)
		defer ticker.Stop()
		snapC = ticker.C
	}
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-pruneC:
			if pruned := s.tracker.PruneSessions(); pruned > 0 {
				s.logger.Debug("sessions pruned", "count", pruned)
			}
		case <-snapC:
			if err := s.saveSnapshot(); err != nil {
				s.logger.Warn("tracker state save failed", "err", err)
			}
		}
	}
}

func (s *compositeServer) Wait() error {
	s.mu.Lock()
	ctx := s.ctx
	errCh := s.errCh
	started := s.started
	s.mu.Unlock()
	if !started {
		return errors.New("server not started")
	}

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		if err != nil {
			s.logger.Error("server stopped", "err", err)
			_ = s.Stop(context.Background())
			return err
		}
		return nil
	}
}

func (s *compositeServer) Stop(ctx context.Context) error {
	s.mu.Lock()
	cancel := s.cancel
	started := s.started
	done := s.done
	shutdown := s.shutdown
	s.shutdown = nil
	s.mu.Unlock()
	if !started {
		return nil
	}
	log := s.logger
	log.Info("server stop requested")
	if cancel != nil {
		cancel()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-ctx.Done():
		log.Warn("server stop timed out", "err", ctx.Err())
		return ctx.Err()
	case <-done:
	}
	var errs []error
	if err := s.saveSnapshot(); err != nil {
		log.Warn("tracker state save failed", "err", err)
		errs = append(errs, err)
	} else if s.state != nil {
		log.Info("tracker state saved", "state_dir", s.state.Dir())
	}
	if shutdown != nil {
		if err := shutdown(ctx); err != nil {
			log.Warn("telemetry shutdown failed", "err", err)
		}
	}
	s.close()
	log.Info("server stopped")
	return errors.Join(errs...)
}

func (s *compositeServer) close() {
	for _, closeFn := range s.closers {
		if err := closeFn(); err != nil {
			s.logger.Warn("server close failed", "err", err)
		}
	}
	s.closers = nil
}
