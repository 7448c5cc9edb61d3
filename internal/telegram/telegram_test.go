package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendHTML(t *testing.T) {
	var got sendMessageRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/botTOKEN/sendMessage" {
			http.NotFound(w, r)
			return
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]any{"ok": true}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, "TOKEN", "42")
	require.NoError(t, c.SendHTML(context.Background(), "<b>hi</b>"))

	assert.Equal(t, "42", got.ChatID)
	assert.Equal(t, "<b>hi</b>", got.Text)
	assert.Equal(t, "HTML", got.ParseMode)
}

func TestSendHTML_NotOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"ok": false, "description": "chat not found"}) //nolint:errcheck
	}))
	defer srv.Close()

	err := New(srv.URL, "TOKEN", "42").SendHTML(context.Background(), "x")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "chat not found", apiErr.Description)
}

func TestSendHTML_NotConfigured(t *testing.T) {
	assert.ErrorIs(t, New("", "", "42").SendHTML(context.Background(), "x"), ErrNotConfigured)
	assert.ErrorIs(t, New("", "TOKEN", "").SendHTML(context.Background(), "x"), ErrNotConfigured)

	var c *Client
	assert.False(t, c.Configured())
}

func TestSendHTML_TransportErrorHidesToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	err := New(srv.URL, "SECRET-TOKEN", "42").SendHTML(context.Background(), "x")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "SECRET-TOKEN")
}
