// Package runtime is the navigation engine: it classifies each inbound
// carrier event, resolves the next destination from the menu graph and the
// stored session, orchestrates hooks and pagination, and keeps the back
// history and captured responses consistent.
package runtime

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/akwaba/ussdflow/internal/logging"
	"github.com/akwaba/ussdflow/pkg/domain"
	"github.com/akwaba/ussdflow/pkg/ports"
)

// Engine drives one request/response turn at a time. It is safe for
// concurrent use across distinct subscribers; turns for the same subscriber
// must be serialized by the SessionStore.
type Engine struct {
	graph  domain.Graph
	cfg    domain.Config
	hooks  domain.Hooks
	store  ports.SessionStore
	remote ports.RemoteSwitch
	sms    ports.SMSGateway
	logger *slog.Logger
}

// Option configures the engine.
type Option func(*Engine)

// WithHooks registers the per-menu validate/before/after callbacks.
func WithHooks(hooks domain.Hooks) Option {
	return func(e *Engine) {
		if hooks != nil {
			e.hooks = hooks
		}
	}
}

// WithRemoteSwitch sets the delivery port used for URL hand-offs.
func WithRemoteSwitch(remote ports.RemoteSwitch) Option {
	return func(e *Engine) {
		e.remote = remote
	}
}

// WithSMSGateway sets the delivery port for terminal SMS echoes.
func WithSMSGateway(sms ports.SMSGateway) Option {
	return func(e *Engine) {
		e.sms = sms
	}
}

// WithLogger sets a structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine validates the configuration, injects the ask-to-resume menu and
// returns a ready engine.
func NewEngine(graph domain.Graph, cfg domain.Config, store ports.SessionStore, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid app params: %w", err)
	}
	if store == nil {
		return nil, fmt.Errorf("a session store is required")
	}
	if !graph.Has(domain.WelcomeMenuID) {
		return nil, fmt.Errorf("menu graph has no %q menu", domain.WelcomeMenuID)
	}

	// Copy the graph so the injected pseudo menu never leaks into the
	// caller's map.
	merged := make(domain.Graph, len(graph)+1)
	for id, menu := range graph {
		merged[id] = menu
	}
	merged[domain.AskResumeMenuID] = askResumeMenu()

	e := &Engine{
		graph:  merged,
		cfg:    cfg,
		hooks:  domain.Hooks{},
		store:  store,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// askResumeMenu is presented on Init when a resumable session exists and
// the app asks before reloading it.
func askResumeMenu() *domain.Menu {
	return &domain.Menu{
		Message: "Do you want to continue from where you left?",
		Actions: []domain.Action{
			{Trigger: "1", Label: "Continue last session", Target: string(domain.ContinueLast)},
			{Trigger: "2", Label: "Restart", Target: string(domain.Welcome)},
		},
	}
}

// Process runs one carrier turn. A returned error is a configuration or
// collaborator fault: nothing was persisted and no reply should be sent.
func (e *Engine) Process(ctx context.Context, req domain.Request) (*domain.Reply, error) {
	t := &turn{e: e, req: req}

	switch req.Op {
	case domain.OpInit:
		return t.init(ctx)

	case domain.OpResponse:
		return t.userResponse(ctx)

	case domain.OpCancelled:
		if err := e.store.Delete(ctx, req.MSISDN); err != nil {
			return nil, fmt.Errorf("failed to delete cancelled session: %w", err)
		}
		e.logger.Info("session cancelled by carrier", "msisdn", req.MSISDN)
		return domain.NewEnd("REQUEST CANCELLED", req.SessionID), nil

	default:
		e.logger.Warn("unknown operator code", "op", string(req.Op), "msisdn", req.MSISDN)
		return domain.NewEnd("UNKNOWN USSD SERVICE OPERATOR", req.SessionID), nil
	}
}
