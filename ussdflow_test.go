package ussdflow_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akwaba/ussdflow"
	"github.com/akwaba/ussdflow/pkg/domain"
)

const demoDoc = `
app:
  id: demo

menus:
  welcome:
    message: "Welcome"
    actions:
      - trigger: "1"
        display: Balance
        next_menu: balance
  balance: {}
`

func writeDoc(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "menus.yaml")
	require.NoError(t, os.WriteFile(path, []byte(demoDoc), 0o644))
	return path
}

func TestNew_FromGraphFile(t *testing.T) {
	app, err := ussdflow.New(writeDoc(t))
	require.NoError(t, err)

	assert.Equal(t, "demo", app.Config().AppID)
	assert.True(t, app.Graph().Has("welcome"))

	reply, err := app.Process(context.Background(), domain.Request{
		MSISDN: "233200000000", Network: "MTN", SessionID: "s1", Op: domain.OpInit,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OpAsk, reply.Op)
	assert.Equal(t, "Welcome\n\n1. Balance", reply.Message)
}

func TestNew_FullTurnSequence(t *testing.T) {
	hooks := domain.Hooks{
		"balance": {
			Before: func(domain.Responses) any { return "Your balance is GHS 12.00" },
		},
	}
	app, err := ussdflow.New(writeDoc(t), ussdflow.WithHooks(hooks))
	require.NoError(t, err)

	ctx := context.Background()
	req := domain.Request{MSISDN: "233200000000", Network: "MTN", SessionID: "s1", Op: domain.OpInit}
	_, err = app.Process(ctx, req)
	require.NoError(t, err)

	req.Op = domain.OpResponse
	req.Input = "1"
	reply, err := app.Process(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, domain.OpEnd, reply.Op)
	assert.Equal(t, "Your balance is GHS 12.00", reply.Message)
}

func TestNew_WithGraphSkipsFile(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.AppID = "inmem"
	graph := domain.Graph{
		"welcome": {Message: "Hi"},
	}

	app, err := ussdflow.New("", ussdflow.WithGraph(graph, cfg))
	require.NoError(t, err)

	reply, err := app.Process(context.Background(), domain.Request{
		MSISDN: "233200000001", Network: "MTN", SessionID: "s2", Op: domain.OpInit,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OpEnd, reply.Op)
	assert.Equal(t, "Hi", reply.Message)
}

func TestNew_MissingFile(t *testing.T) {
	_, err := ussdflow.New(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestNew_RejectsGraphWithoutWelcome(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.AppID = "broken"
	_, err := ussdflow.New("", ussdflow.WithGraph(domain.Graph{"a": {Message: "x"}}, cfg))
	require.Error(t, err)
}
