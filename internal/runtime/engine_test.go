package runtime

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akwaba/ussdflow/pkg/adapters/memory"
	"github.com/akwaba/ussdflow/pkg/domain"
)

// testGraph is a small banking flow: welcome fans out to a menu with its
// own back item and to a free-text capture chain.
func testGraph() domain.Graph {
	return domain.Graph{
		"welcome": {
			Message: "Welcome",
			Actions: []domain.Action{
				{Trigger: "1", Label: "Go A", Target: "a"},
				{Trigger: "2", Label: "Go B", Target: "b"},
			},
		},
		"a": {
			Message: "Menu A",
			Actions: []domain.Action{
				{Trigger: "0", Label: "Back", Target: "__back"},
			},
		},
		"b": {
			Message:       "Enter amount",
			DefaultTarget: "done",
		},
		"done": {
			Message: "All set",
		},
	}
}

func testConfig() domain.Config {
	cfg := domain.DefaultConfig()
	cfg.AppID = "testapp"
	return cfg
}

type harness struct {
	t      *testing.T
	engine *Engine
	store  *memory.Store
}

func newHarness(t *testing.T, graph domain.Graph, cfg domain.Config, opts ...Option) *harness {
	t.Helper()
	store := memory.NewStore()
	engine, err := NewEngine(graph, cfg, store, opts...)
	require.NoError(t, err)
	return &harness{t: t, engine: engine, store: store}
}

func (h *harness) turn(op domain.Op, input string) *domain.Reply {
	h.t.Helper()
	reply, err := h.engine.Process(context.Background(), domain.Request{
		MSISDN:    "233200000000",
		Network:   "MTN",
		SessionID: "carrier-1",
		Input:     input,
		Op:        op,
	})
	require.NoError(h.t, err)
	return reply
}

func (h *harness) dial() *domain.Reply {
	return h.turn(domain.OpInit, "")
}

func (h *harness) respond(input string) *domain.Reply {
	return h.turn(domain.OpResponse, input)
}

func (h *harness) state() *domain.State {
	h.t.Helper()
	state, err := h.store.Get(context.Background(), "233200000000")
	require.NoError(h.t, err)
	return state
}

func TestProcess_InitRendersWelcome(t *testing.T) {
	h := newHarness(t, testGraph(), testConfig())

	reply := h.dial()

	assert.Equal(t, domain.OpAsk, reply.Op)
	assert.Equal(t, "Welcome\n\n1. Go A\n2. Go B", reply.Message)
	assert.Equal(t, "carrier-1", reply.SessionID)

	state := h.state()
	assert.Equal(t, "welcome", state.CurrentMenuID)
	assert.Empty(t, state.BackHistory)
}

func TestProcess_NavigateAndBack(t *testing.T) {
	h := newHarness(t, testGraph(), testConfig())

	h.dial()
	reply := h.respond("1")
	assert.Equal(t, "Menu A\n\n0. Back", reply.Message)

	state := h.state()
	assert.Equal(t, "a", state.CurrentMenuID)
	assert.Equal(t, []string{"welcome"}, state.BackHistory)
	assert.Equal(t, []string{"1"}, state.Responses["welcome"])

	reply = h.respond("0")
	assert.Equal(t, "Welcome\n\n1. Go A\n2. Go B", reply.Message)

	// Going back unwinds both the history and the captured responses.
	state = h.state()
	assert.Equal(t, "welcome", state.CurrentMenuID)
	assert.Empty(t, state.BackHistory)
	assert.Empty(t, state.Responses["welcome"])
	assert.Empty(t, state.Responses["a"])
}

func TestProcess_HistoryPopsOnReturnToPredecessor(t *testing.T) {
	graph := testGraph()
	graph["a"].Actions = append(graph["a"].Actions,
		domain.Action{Trigger: "9", Label: "Home", Target: "welcome"})
	h := newHarness(t, graph, testConfig())

	h.dial()
	h.respond("1")
	h.respond("9")

	// Returning to the recorded predecessor must not grow the stack.
	assert.Empty(t, h.state().BackHistory)
}

func TestProcess_EmptyInput(t *testing.T) {
	h := newHarness(t, testGraph(), testConfig())

	h.dial()
	reply := h.respond("")

	assert.Equal(t, domain.OpAsk, reply.Op)
	assert.Equal(t, "Empty response not allowed\nWelcome\n\n1. Go A\n2. Go B", reply.Message)

	// The banner is one-shot: a valid follow-up renders clean.
	reply = h.respond("1")
	assert.Equal(t, "Menu A\n\n0. Back", reply.Message)
}

func TestProcess_ErrorBannerConsumedOnRender(t *testing.T) {
	h := newHarness(t, testGraph(), testConfig())

	h.dial()
	h.respond("")

	// The banner was consumed by the re-render; nothing lingers on the
	// stored session to contaminate later visits.
	assert.Nil(t, h.state().PendingError)

	reply := h.respond("7")
	assert.Equal(t, "Action not defined\nWelcome\n\n1. Go A\n2. Go B", reply.Message,
		"each mistake carries its own banner")
}

func TestProcess_UnresolvedInput(t *testing.T) {
	h := newHarness(t, testGraph(), testConfig())

	h.dial()
	reply := h.respond("7")

	assert.Equal(t, "Action not defined\nWelcome\n\n1. Go A\n2. Go B", reply.Message)
	assert.Empty(t, h.state().Responses["welcome"], "rejected input must not be captured")
}

func TestProcess_DefaultTargetCapturesRawInput(t *testing.T) {
	graph := testGraph()
	graph["b"].DefaultTarget = "a"
	h := newHarness(t, graph, testConfig())

	h.dial()
	h.respond("2")
	reply := h.respond("1500")

	assert.Equal(t, "Menu A\n\n0. Back", reply.Message)
	assert.Equal(t, []string{"1500"}, h.state().Responses["b"])
}

func TestProcess_SaveAsAlias(t *testing.T) {
	graph := testGraph()
	graph["welcome"].Actions[0].SaveAs = "check_balance"
	h := newHarness(t, graph, testConfig())

	h.dial()
	h.respond("1")

	assert.Equal(t, []string{"check_balance"}, h.state().Responses["welcome"])
}

func TestProcess_TerminalLeafEndsSession(t *testing.T) {
	h := newHarness(t, testGraph(), testConfig())

	h.dial()
	h.respond("2")
	reply := h.respond("1500")

	assert.Equal(t, domain.OpEnd, reply.Op)
	assert.Equal(t, "All set", reply.Message)
}

func TestProcess_EndActionUsesDefaultEndMessage(t *testing.T) {
	graph := testGraph()
	graph["welcome"].Actions = append(graph["welcome"].Actions,
		domain.Action{Trigger: "3", Label: "Quit", Target: "__end"})
	h := newHarness(t, graph, testConfig())

	h.dial()
	reply := h.respond("3")

	assert.Equal(t, domain.OpEnd, reply.Op)
	assert.Equal(t, "Goodbye", reply.Message)
}

func TestProcess_SameRerendersWithoutCapture(t *testing.T) {
	graph := testGraph()
	graph["b"].DefaultTarget = "__same"
	h := newHarness(t, graph, testConfig())

	h.dial()
	h.respond("2")
	reply := h.respond("anything")

	assert.Equal(t, "Enter amount", reply.Message)
	assert.Empty(t, h.state().Responses["b"])
	assert.Equal(t, "b", h.state().CurrentMenuID)
}

func TestProcess_AlwaysStartNewSessionWipesOnDial(t *testing.T) {
	h := newHarness(t, testGraph(), testConfig())

	h.dial()
	h.respond("1")
	reply := h.dial()

	assert.Equal(t, "Welcome\n\n1. Go A\n2. Go B", reply.Message)
	state := h.state()
	assert.Empty(t, state.BackHistory)
	assert.Empty(t, state.Responses)
}

func TestProcess_ResumeWithoutAsking(t *testing.T) {
	cfg := testConfig()
	cfg.AlwaysStartNewSession = false
	h := newHarness(t, testGraph(), cfg)

	h.dial()
	h.respond("1")
	reply := h.dial()

	assert.Equal(t, "Menu A\n\n0. Back", reply.Message)
	assert.Equal(t, "a", h.state().CurrentMenuID)
}

func TestProcess_AskToResume(t *testing.T) {
	cfg := testConfig()
	cfg.AlwaysStartNewSession = false
	cfg.AskToResume = true

	t.Run("continue", func(t *testing.T) {
		h := newHarness(t, testGraph(), cfg)
		h.dial()
		h.respond("1")

		reply := h.dial()
		assert.Equal(t, "Do you want to continue from where you left?\n\n1. Continue last session\n2. Restart", reply.Message)

		reply = h.respond("1")
		assert.Equal(t, "Menu A\n\n0. Back", reply.Message)
		assert.Equal(t, []string{"welcome"}, h.state().BackHistory)
	})

	t.Run("restart", func(t *testing.T) {
		h := newHarness(t, testGraph(), cfg)
		h.dial()
		h.respond("1")
		h.dial()

		reply := h.respond("2")
		assert.Equal(t, "Welcome\n\n1. Go A\n2. Go B", reply.Message)
		assert.Equal(t, "welcome", h.state().CurrentMenuID)
	})

	t.Run("fresh session skips the question", func(t *testing.T) {
		h := newHarness(t, testGraph(), cfg)
		reply := h.dial()
		assert.Equal(t, "Welcome\n\n1. Go A\n2. Go B", reply.Message)
	})
}

func TestProcess_Cancelled(t *testing.T) {
	h := newHarness(t, testGraph(), testConfig())

	h.dial()
	reply := h.turn(domain.OpCancelled, "")

	assert.Equal(t, domain.OpEnd, reply.Op)
	assert.Equal(t, "REQUEST CANCELLED", reply.Message)

	_, err := h.store.Get(context.Background(), "233200000000")
	assert.True(t, errors.Is(err, domain.ErrSessionNotFound))
}

func TestProcess_UnknownOperator(t *testing.T) {
	h := newHarness(t, testGraph(), testConfig())

	reply := h.turn(domain.Op("42"), "")

	assert.Equal(t, domain.OpEnd, reply.Op)
	assert.Equal(t, "UNKNOWN USSD SERVICE OPERATOR", reply.Message)
}

func TestNewEngine_RequiresWelcomeMenu(t *testing.T) {
	_, err := NewEngine(domain.Graph{"a": {Message: "x"}}, testConfig(), memory.NewStore())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "welcome")
}

func TestNewEngine_RejectsBadConfig(t *testing.T) {
	cfg := testConfig()
	cfg.MaxPageChars = 0
	_, err := NewEngine(testGraph(), cfg, memory.NewStore())
	require.Error(t, err)
}
