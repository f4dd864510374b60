package runtime

import (
	"context"
	"fmt"
	"strings"

	"github.com/akwaba/ussdflow/internal/paginator"
	"github.com/akwaba/ussdflow/pkg/domain"
)

// HookResultError reports a before hook that returned an unsupported shape.
// This is a configuration fault and aborts the turn.
type HookResultError struct {
	MenuID string
	Got    any
	// WantString is set when the menu has no static message, in which case
	// only a string result can supply one.
	WantString bool
}

func (e *HookResultError) Error() string {
	if e.WantString {
		return fmt.Sprintf("before hook for menu %q must return a string because the menu has no message (got %T)", e.MenuID, e.Got)
	}
	return fmt.Sprintf("before hook for menu %q must return a string or a map[string]string (got %T)", e.MenuID, e.Got)
}

// renderMenu builds the page for id, updates history, records id as the
// current menu and persists the session. Terminal leaves short-circuit into
// an End reply without touching history or the store.
func (t *turn) renderMenu(ctx context.Context, id string) (*domain.Reply, error) {
	var banner string
	if pe := t.state.PendingError; pe != nil && pe.MenuID == id {
		banner = pe.Message
		t.state.PendingError = nil
	}

	menu := t.e.graph[id]

	body, err := t.menuMessage(id, menu, banner)
	if err != nil {
		return nil, err
	}

	if menu == nil || menu.Terminal() {
		return t.end(ctx, body)
	}

	lines := menuLines(body, menu.Actions)
	hasBack := menu.HasBackAction()

	res, err := paginator.Paginate(lines,
		paginator.Limits{MaxChars: t.e.cfg.MaxPageChars, MaxLines: t.e.cfg.MaxPageLines},
		paginator.Controls{Next: t.e.cfg.NextControl(), Back: t.e.cfg.BackControl()},
		hasBack,
	)
	if err != nil {
		return nil, fmt.Errorf("menu %q: %w", id, err)
	}

	if res.Split {
		t.state.Split = &domain.SplitState{
			Chunks:        res.Pages,
			Index:         0,
			Start:         true,
			End:           len(res.Pages) == 1,
			HasBackAction: hasBack,
		}
	} else {
		t.state.Split = nil
	}

	t.applyHistory(id)
	t.state.CurrentMenuID = id

	if err := t.persist(ctx); err != nil {
		return nil, err
	}

	t.e.logger.Debug("menu rendered", "menu", id, "split", res.Split)
	return domain.NewAsk(res.Pages[0], t.req.SessionID), nil
}

// menuMessage assembles the page header: error banner, before-hook output
// and the menu's static message.
func (t *turn) menuMessage(id string, menu *domain.Menu, banner string) (string, error) {
	var result any = ""
	if before := t.e.hooks[id].Before; before != nil {
		result = before(t.state.Responses)
		if result == nil {
			result = ""
		}
	}

	if menu != nil && menu.Message != "" {
		msg := menu.Message
		switch v := result.(type) {
		case string:
			if v != "" {
				msg = v + "\n" + msg
			}
		case map[string]string:
			for name, val := range v {
				msg = strings.ReplaceAll(msg, ":"+name+":", val)
			}
		default:
			return "", &HookResultError{MenuID: id, Got: result}
		}
		if banner != "" {
			return banner + "\n" + msg, nil
		}
		return msg, nil
	}

	// No static message: the hook is the only possible source of one.
	v, ok := result.(string)
	if !ok {
		return "", &HookResultError{MenuID: id, Got: result, WantString: true}
	}
	if banner == "" {
		return v, nil
	}
	if v != "" {
		return v + "\n" + banner, nil
	}
	return banner, nil
}

// menuLines lays out the page as the paginator consumes it: message lines,
// a blank separator, then one "trigger. label" line per selectable item.
func menuLines(body string, actions []domain.Action) []string {
	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n\n")
	for _, act := range actions {
		b.WriteString(act.Trigger)
		b.WriteString(". ")
		b.WriteString(act.Label)
		b.WriteString("\n")
	}
	return strings.Split(strings.TrimSpace(b.String()), "\n")
}

// end produces the terminal reply, echoing it over SMS when the policy
// demands. SMS failures are logged and dropped.
func (t *turn) end(ctx context.Context, msg string) (*domain.Reply, error) {
	if msg == "" {
		msg = t.e.cfg.DefaultEndMessage
	}
	if t.e.cfg.AlwaysSendSMS && t.e.sms != nil {
		if err := t.e.sms.Send(ctx, msg, t.req.MSISDN, t.e.cfg.SMSSenderName); err != nil {
			t.e.logger.Warn("sms delivery failed", "recipient", t.req.MSISDN, "error", err)
		}
	}
	return domain.NewEnd(msg, t.req.SessionID), nil
}
