package http

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkMessage_ShortMessageUntouched(t *testing.T) {
	msg := strings.Repeat("a", SMSMaxContent)
	assert.Equal(t, []string{msg}, ChunkMessage(msg, SMSMaxContent))
}

func TestChunkMessage_LongMessageSplit(t *testing.T) {
	msg := strings.Repeat("a", 300)

	chunks := ChunkMessage(msg, SMSMaxContent)

	require.Len(t, chunks, 3)
	for i, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), SMSMaxContent, "chunk %d over budget", i)
		if i < len(chunks)-1 {
			assert.True(t, strings.HasSuffix(chunk, "..."), "chunk %d misses continuation mark", i)
		} else {
			assert.False(t, strings.HasSuffix(chunk, "..."))
		}
	}

	// Stripping the marks must reassemble the original text.
	var rebuilt strings.Builder
	for _, chunk := range chunks {
		rebuilt.WriteString(strings.TrimSuffix(chunk, "..."))
	}
	assert.Equal(t, msg, rebuilt.String())
}

func TestSMSGateway_SendsEachChunk(t *testing.T) {
	var messages []string
	var recipients []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		messages = append(messages, r.PostForm.Get("message"))
		recipients = append(recipients, r.PostForm.Get("recipient"))
		fmt.Fprint(w, "ok")
	}))
	defer srv.Close()

	gw := NewSMSGateway(srv.URL, NewClient(0))
	err := gw.Send(context.Background(), strings.Repeat("x", 200), "233200000000", "DemoBank")

	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.True(t, strings.HasSuffix(messages[0], "..."))
	assert.Equal(t, "233200000000", recipients[0])
}

func TestSMSGateway_AbortsOnFailure(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		http.Error(w, "down", http.StatusBadGateway)
	}))
	srv.Close() // refuse connections outright

	gw := NewSMSGateway(srv.URL, NewClient(0))
	err := gw.Send(context.Background(), strings.Repeat("x", 500), "233200000000", "DemoBank")

	require.Error(t, err)
	assert.Zero(t, calls)
}
