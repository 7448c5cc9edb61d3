package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter_EnvelopeForUnknownRoutes(t *testing.T) {
	env := newTestEnv(t)

	rec, res := env.do(t, http.MethodGet, "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, res.Success)
	assert.Equal(t, "Route not found", res.Error)

	rec, res = env.do(t, http.MethodPatch, "/api/posts", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "Method not allowed", res.Error)
}

func TestRecoverer(t *testing.T) {
	h := recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Internal server error"}`, rec.Body.String())
}

func TestHealth(t *testing.T) {
	t.Run("up", func(t *testing.T) {
		env := newTestEnv(t, func(o *Options) { o.Ping = func(context.Context) error { return nil } })
		rec, res := env.do(t, http.MethodGet, "/health", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "up", decodeData[map[string]any](t, res)["database"])
	})

	t.Run("down", func(t *testing.T) {
		env := newTestEnv(t, func(o *Options) { o.Ping = func(context.Context) error { return errors.New("refused") } })
		rec, res := env.do(t, http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.False(t, res.Success)
		assert.Equal(t, "down", decodeData[map[string]any](t, res)["database"])
	})
}
