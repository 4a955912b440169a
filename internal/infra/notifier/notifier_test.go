package notifier

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlackNotifier_SendsBlockKitPayload(t *testing.T) {
	var got slackPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewSlackNotifier(srv.URL, 5*time.Second)
	err := n.Notify(context.Background(), Alert{Component: "warmer", Message: "warm cycle incomplete"})

	require.NoError(t, err)
	assert.Contains(t, got.Text, "warmer")
	require.Len(t, got.Blocks, 2)
	assert.Contains(t, got.Blocks[0].Text.Text, "warm cycle incomplete")
}

func TestDiscordNotifier_SendsEmbed(t *testing.T) {
	var got discordPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := NewDiscordNotifier(srv.URL, 5*time.Second)
	err := n.Notify(context.Background(), Alert{Component: "warmer", Message: "backend down"})

	require.NoError(t, err)
	require.Len(t, got.Embeds, 1)
	assert.Equal(t, "Alert: warmer", got.Embeds[0].Title)
	assert.Equal(t, "backend down", got.Embeds[0].Description)
}

func TestWebhookClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewSlackNotifier(srv.URL, 5*time.Second)
	n.webhook.limiter.SetBurst(10)

	err := n.Notify(context.Background(), Alert{Component: "warmer", Message: "m"})

	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestWebhookClient_ClientErrorIsTerminal(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	n := NewDiscordNotifier(srv.URL, 5*time.Second)
	err := n.Notify(context.Background(), Alert{Component: "warmer", Message: "m"})

	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestNoOpNotifier(t *testing.T) {
	assert.NoError(t, NewNoOpNotifier().Notify(context.Background(), Alert{}))
}
