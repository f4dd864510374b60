package ussdflow

import (
	"context"
	"log/slog"

	"github.com/akwaba/ussdflow/internal/logging"
	"github.com/akwaba/ussdflow/internal/runtime"
	"github.com/akwaba/ussdflow/pkg/adapters/file"
	"github.com/akwaba/ussdflow/pkg/adapters/memory"
	"github.com/akwaba/ussdflow/pkg/domain"
	"github.com/akwaba/ussdflow/pkg/ports"
)

// App is the high-level entry point for the library. It wraps the internal
// navigation runtime and provides a simplified API for consumers.
type App struct {
	runtime *runtime.Engine
	graph   domain.Graph
	cfg     domain.Config
	store   ports.SessionStore
	remote  ports.RemoteSwitch
	sms     ports.SMSGateway
	hooks   domain.Hooks
	logger  *slog.Logger
}

// Option defines a functional option for configuring the App.
type Option func(*App)

// WithGraph injects an in-memory graph and config, bypassing the graph file.
func WithGraph(graph domain.Graph, cfg domain.Config) Option {
	return func(a *App) {
		a.graph = graph
		a.cfg = cfg
	}
}

// WithStore injects a session store. Defaults to the in-memory store, which
// is fine for a single process and for tests; multi-instance deployments
// want the redis adapter.
func WithStore(store ports.SessionStore) Option {
	return func(a *App) {
		a.store = store
	}
}

// WithHooks registers the per-menu validate/before/after callbacks.
func WithHooks(hooks domain.Hooks) Option {
	return func(a *App) {
		a.hooks = hooks
	}
}

// WithRemoteSwitch enables URL targets by injecting the delivery client.
func WithRemoteSwitch(remote ports.RemoteSwitch) Option {
	return func(a *App) {
		a.remote = remote
	}
}

// WithSMSGateway enables terminal SMS echoes.
func WithSMSGateway(sms ports.SMSGateway) Option {
	return func(a *App) {
		a.sms = sms
	}
}

// WithLogger sets a custom structured logger. Defaults to a silent one.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// New assembles an App from the graph document at graphPath. With the
// WithGraph option the file is skipped and graphPath may be empty.
func New(graphPath string, opts ...Option) (*App, error) {
	app := &App{}
	for _, opt := range opts {
		opt(app)
	}

	if app.graph == nil {
		graph, cfg, err := file.Load(graphPath)
		if err != nil {
			return nil, err
		}
		app.graph = graph
		app.cfg = cfg
	}

	if app.store == nil {
		app.store = memory.NewStore()
	}
	if app.logger == nil {
		app.logger = logging.NewNop()
	}
	if app.cfg.AppID != "" {
		app.logger = app.logger.With("app", app.cfg.AppID)
	}

	rt, err := runtime.NewEngine(app.graph, app.cfg, app.store,
		runtime.WithHooks(app.hooks),
		runtime.WithRemoteSwitch(app.remote),
		runtime.WithSMSGateway(app.sms),
		runtime.WithLogger(app.logger),
	)
	if err != nil {
		return nil, err
	}
	app.runtime = rt
	return app, nil
}

// Process runs one carrier turn against the stored session. A returned
// error is a configuration or collaborator fault; nothing was persisted
// and no reply should be sent back to the carrier.
func (a *App) Process(ctx context.Context, req domain.Request) (*domain.Reply, error) {
	return a.runtime.Process(ctx, req)
}

// Graph returns the loaded menu graph, without engine-injected menus.
func (a *App) Graph() domain.Graph {
	return a.graph
}

// Config returns the effective application parameters.
func (a *App) Config() domain.Config {
	return a.cfg
}
