package runtime

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akwaba/ussdflow/pkg/domain"
)

// splitGraph puts more text on the welcome menu than one page can hold.
func splitGraph() domain.Graph {
	var b strings.Builder
	for i := 0; i < 12; i++ {
		b.WriteString(strings.Repeat("x", 40))
		b.WriteString("\n")
	}
	return domain.Graph{
		"welcome": {
			Message: strings.TrimSpace(b.String()),
			Actions: []domain.Action{
				{Trigger: "1", Label: "Go A", Target: "a"},
			},
		},
		"a": {
			Message: "Menu A",
			Actions: []domain.Action{
				{Trigger: "0", Label: "Back", Target: "__back"},
			},
		},
	}
}

func TestSplit_PageThroughAndBack(t *testing.T) {
	h := newHarness(t, splitGraph(), testConfig())

	first := h.dial()
	require.Contains(t, first.Message, "99. More")
	require.NotContains(t, first.Message, "0. Back")

	state := h.state()
	require.NotNil(t, state.Split)
	assert.True(t, state.Split.Start)
	assert.False(t, state.Split.End)

	second := h.respond("99")
	assert.NotEqual(t, first.Message, second.Message)
	assert.Contains(t, second.Message, "0. Back")
	assert.Equal(t, 1, h.state().Split.Index)

	// A page turn is navigation, not an answer.
	assert.Empty(t, h.state().Responses["welcome"])

	again := h.respond("0")
	assert.Equal(t, first.Message, again.Message)
	assert.Equal(t, 0, h.state().Split.Index)
	assert.True(t, h.state().Split.Start)
	assert.Empty(t, h.state().Responses["welcome"])
}

func TestSplit_RealActionStillResolvesMidSplit(t *testing.T) {
	h := newHarness(t, splitGraph(), testConfig())

	h.dial()
	h.respond("99")
	reply := h.respond("1")

	assert.Equal(t, "Menu A\n\n0. Back", reply.Message)
	assert.Equal(t, domain.OpAsk, reply.Op)
}

func TestSplit_TriggersInertOffTheEdge(t *testing.T) {
	h := newHarness(t, splitGraph(), testConfig())

	h.dial()
	reply := h.respond("0")

	// On the first page "0" is no pagination trigger and matches nothing.
	assert.Contains(t, reply.Message, "Action not defined")
}

func TestSplit_CursorClearedOnSinglePageMenu(t *testing.T) {
	h := newHarness(t, splitGraph(), testConfig())

	h.dial()
	h.respond("99")
	require.NotNil(t, h.state().Split)

	h.respond("1")

	// Menu A fits on one page; rendering it must drop the split cursor so
	// stale pagination triggers stop resolving.
	assert.Nil(t, h.state().Split)
}
