package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Ibrohimov-Zafar/DevVibe/internal/auth"
	"github.com/Ibrohimov-Zafar/DevVibe/internal/cache"
	"github.com/Ibrohimov-Zafar/DevVibe/internal/config"
	"github.com/Ibrohimov-Zafar/DevVibe/internal/database/dbtest"
	"github.com/Ibrohimov-Zafar/DevVibe/internal/notify"
	"github.com/Ibrohimov-Zafar/DevVibe/internal/store"
)

var testAdmin = config.Admin{
	UserID:   1,
	Name:     "Admin User",
	Email:    "admin@example.com",
	Password: "secret-password",
}

type recordingSink struct {
	mu     sync.Mutex
	events []notify.Event
}

func (s *recordingSink) Send(_ context.Context, ev notify.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

func (s *recordingSink) all() []notify.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]notify.Event(nil), s.events...)
}

type testEnv struct {
	api     *API
	store   *store.Store
	tokens  *auth.Tokens
	events  *notify.Dispatcher
	sink    *recordingSink
	handler http.Handler
}

func newTestEnv(t *testing.T, configure ...func(*Options)) *testEnv {
	t.Helper()

	db := dbtest.New(t)
	sink := &recordingSink{}
	env := &testEnv{
		store:  store.New(db, testAdmin),
		tokens: auth.NewTokens("test-secret", time.Hour),
		sink:   sink,
		events: notify.NewDispatcher(time.Second, sink),
	}

	opts := Options{
		Store:  env.store,
		Tokens: env.tokens,
		Cache:  cache.NewMemory(time.Minute),
		Events: env.events,
	}
	for _, fn := range configure {
		fn(&opts)
	}
	env.api = New(opts)
	env.handler = env.api.Router()
	return env
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

func (env *testEnv) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	var out envelope
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec, out
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v), string(env.Data))
	return v
}
