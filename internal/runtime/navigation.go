package runtime

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/akwaba/ussdflow/pkg/domain"
)

// turn carries the mutable pieces of one request/response cycle.
type turn struct {
	e     *Engine
	req   domain.Request
	state *domain.State
}

// init handles a first-contact event: fresh start, direct resume, or the
// ask-to-resume choice, depending on policy and stored state.
func (t *turn) init(ctx context.Context) (*domain.Reply, error) {
	if t.e.cfg.AlwaysStartNewSession {
		if err := t.e.store.Delete(ctx, t.req.MSISDN); err != nil {
			return nil, fmt.Errorf("failed to reset session: %w", err)
		}
		t.state = domain.NewState(t.req.MSISDN)
		return t.renderMenu(ctx, domain.WelcomeMenuID)
	}

	state, err := t.e.store.Get(ctx, t.req.MSISDN)
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		t.state = domain.NewState(t.req.MSISDN)
		return t.renderMenu(ctx, domain.WelcomeMenuID)
	case err != nil:
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	t.state = state

	if state.CurrentMenuID == "" {
		return t.renderMenu(ctx, domain.WelcomeMenuID)
	}
	if t.e.cfg.AskToResume && state.CurrentMenuID != domain.WelcomeMenuID {
		return t.renderMenu(ctx, domain.AskResumeMenuID)
	}
	return t.renderMenu(ctx, state.CurrentMenuID)
}

// userResponse handles a subscriber reply: forwarded verbatim when the
// session was handed off to a remote endpoint, processed locally otherwise.
func (t *turn) userResponse(ctx context.Context) (*domain.Reply, error) {
	state, err := t.e.store.Get(ctx, t.req.MSISDN)
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		state = domain.NewState(t.req.MSISDN)
	case err != nil:
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	t.state = state

	if state.Switched {
		return t.relay(ctx, state.SwitchedEndpoint, t.req.Params())
	}
	return t.processResponse(ctx, state.CurrentMenuID)
}

// processResponse resolves the subscriber's input against pageID and
// dispatches the resulting destination.
func (t *turn) processResponse(ctx context.Context, pageID string) (*domain.Reply, error) {
	input := t.req.Input
	if input == "" {
		return t.invalidInput(ctx, "Empty response not allowed")
	}

	menu := t.e.graph[pageID]

	// Resolution precedence: explicit action, pagination triggers, default
	// action.
	var (
		next     string
		act      *domain.Action
		implicit bool
	)
	if menu != nil {
		if a := menu.ActionFor(input); a != nil && a.Target != "" {
			next = a.Target
			act = a
		}
	}
	if act == nil {
		sp := t.state.Split
		switch {
		case sp != nil && !sp.End && input == t.e.cfg.NextPageTrigger:
			next = string(domain.SplitNext)
			implicit = true
		case sp != nil && !sp.Start && input == t.e.cfg.BackTrigger:
			next = string(domain.Back)
			implicit = true
		case menu != nil && menu.DefaultTarget != "":
			next = menu.DefaultTarget
		}
	}

	if next == "" || !t.destinationExists(next) {
		return t.invalidInput(ctx, "Action not defined")
	}

	// Hooks belong to developer menus. Engine-level navigation bypasses
	// them: both the implicit pagination/back triggers and explicitly
	// configured special actions.
	skipHooks := implicit || (act != nil && domain.IsSpecial(next))

	if !skipHooks {
		if validate := t.e.hooks[pageID].Validate; validate != nil && !validate(input, t.state.Responses) {
			return t.invalidInput(ctx, "")
		}
	}

	value := input
	if act != nil && act.SaveAs != "" {
		value = act.SaveAs
	}
	t.state.Responses.Push(pageID, value)

	if !skipHooks {
		if after := t.e.hooks[pageID].After; after != nil {
			after(input, t.state.Responses)
		}
	}

	if isURL(next) {
		return t.switchToRemote(ctx, next)
	}

	switch domain.Special(next) {
	case domain.Welcome:
		return t.renderMenu(ctx, domain.WelcomeMenuID)

	case domain.ContinueLast:
		prev, ok := t.state.PopHistory()
		if !ok {
			return nil, fmt.Errorf("cannot continue last session: %w", domain.ErrEmptyHistory)
		}
		t.state.CurrentMenuID = prev
		return t.renderMenu(ctx, prev)

	case domain.Back:
		return t.goBack(ctx)

	case domain.SplitNext:
		// A page turn is not a response; drop what was just captured.
		t.state.Responses.PopLast(t.state.CurrentMenuID)
		return t.renderSplit(ctx, +1)

	case domain.SplitBack:
		return t.renderSplit(ctx, -1)

	case domain.Same:
		t.state.Responses.PopLast(t.state.CurrentMenuID)
		return t.renderMenu(ctx, t.state.CurrentMenuID)

	case domain.End:
		return t.end(ctx, "")

	default:
		return t.renderMenu(ctx, next)
	}
}

// goBack renders the previous page: the prior chunk while mid-pagination,
// the previous menu from history otherwise. The captured response of the
// abandoned visit is discarded on both sides.
func (t *turn) goBack(ctx context.Context) (*domain.Reply, error) {
	t.state.Responses.PopLast(t.state.CurrentMenuID)

	if sp := t.state.Split; sp != nil && sp.Index > 0 {
		return t.renderSplit(ctx, -1)
	}

	prev, ok := t.state.PeekHistory()
	if !ok {
		return nil, fmt.Errorf("cannot navigate back from %q: %w", t.state.CurrentMenuID, domain.ErrEmptyHistory)
	}
	t.state.Responses.PopLast(prev)

	// renderMenu's history bookkeeping pops the stack, since prev is its
	// own predecessor on it.
	return t.renderMenu(ctx, prev)
}

// invalidInput records a one-shot error for the current menu and re-renders
// it. History and captured responses stay untouched.
func (t *turn) invalidInput(ctx context.Context, msg string) (*domain.Reply, error) {
	if msg == "" {
		if pe := t.state.PendingError; pe != nil && pe.Message != "" {
			msg = pe.Message
		} else {
			msg = t.e.cfg.DefaultErrorMessage
		}
	}
	t.state.PendingError = &domain.PendingError{MenuID: t.state.CurrentMenuID, Message: msg}
	t.e.logger.Debug("invalid input", "menu", t.state.CurrentMenuID, "reason", msg)
	return t.renderMenu(ctx, t.state.CurrentMenuID)
}

// applyHistory runs the back-history bookkeeping just before CurrentMenuID
// is overwritten with next. The guard order is load-bearing; the push/pop
// symmetry tests pin it down.
func (t *turn) applyHistory(next string) {
	cur := t.state.CurrentMenuID
	top, hasTop := t.state.PeekHistory()

	switch {
	case cur != "" && cur != domain.WelcomeMenuID && next != domain.AskResumeMenuID && hasTop && next == top:
		// Returning to the immediate predecessor, which is already recorded.
		t.state.PopHistory()
	case cur != "" && next != cur && cur != domain.AskResumeMenuID:
		t.state.PushHistory(cur)
	}
}

// destinationExists reports whether next is somewhere the engine can go: a
// graph menu, a special action, or a remote endpoint.
func (t *turn) destinationExists(next string) bool {
	return t.e.graph.Has(next) || domain.IsSpecial(next) || isURL(next)
}

func (t *turn) persist(ctx context.Context) error {
	if err := t.e.store.Put(ctx, t.req.MSISDN, t.req.SessionID, t.state); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

func isURL(target string) bool {
	u, err := url.Parse(target)
	return err == nil && u.Host != "" && (u.Scheme == "http" || u.Scheme == "https")
}
