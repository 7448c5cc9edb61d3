// Package api serves the portfolio content over HTTP.
package api

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/Ibrohimov-Zafar/DevVibe/internal/auth"
	"github.com/Ibrohimov-Zafar/DevVibe/internal/cache"
	"github.com/Ibrohimov-Zafar/DevVibe/internal/notify"
	"github.com/Ibrohimov-Zafar/DevVibe/internal/store"
	"github.com/Ibrohimov-Zafar/DevVibe/internal/telegram"
)

// Uploader puts files in object storage and removes them again.
type Uploader interface {
	// Upload stores body under key and returns its public URL.
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
}

// Options carries the collaborators of the HTTP layer. Store and Tokens are
// required; the rest may be nil.
type Options struct {
	Store    *store.Store
	Tokens   *auth.Tokens
	Cache    cache.Cache
	Events   *notify.Dispatcher
	Telegram *telegram.Client
	Uploads  Uploader
	// Ping reports database health for /health.
	Ping func(ctx context.Context) error
	// DashboardDir is served behind the session guard when set.
	DashboardDir string
}

// API holds the handlers.
type API struct {
	store        *store.Store
	tokens       *auth.Tokens
	cache        cache.Cache
	events       *notify.Dispatcher
	telegram     *telegram.Client
	uploads      Uploader
	ping         func(ctx context.Context) error
	dashboardDir string

	// generations maps a resource name to an *atomic.Uint64 bumped on
	// every write. List entries are keyed by it.
	generations sync.Map
}

func New(opts Options) *API {
	a := &API{
		store:        opts.Store,
		tokens:       opts.Tokens,
		cache:        opts.Cache,
		events:       opts.Events,
		telegram:     opts.Telegram,
		uploads:      opts.Uploads,
		ping:         opts.Ping,
		dashboardDir: opts.DashboardDir,
	}
	if a.cache == nil {
		a.cache = cache.Nop{}
	}
	return a
}

// changed drops cached lists of resource and announces the write.
func (a *API) changed(ctx context.Context, resource, action string, id uint) {
	a.Forget(ctx, resource)
	a.events.Publish(notify.Event{Resource: resource, Action: action, ID: id})
}

// Forget drops the cached lists of resource, for writes made here or
// announced by another instance. A list computed before the call was keyed
// by the old generation, so it is never read back even if it is stored
// after the invalidation.
func (a *API) Forget(ctx context.Context, resource string) {
	a.counter(resource).Add(1)
	if err := a.cache.InvalidatePrefix(ctx, cacheKeyPrefix(resource)); err != nil {
		log.Printf("invalidate %s cache: %v", resource, err)
	}
}

func (a *API) counter(resource string) *atomic.Uint64 {
	v, _ := a.generations.LoadOrStore(resource, new(atomic.Uint64))
	return v.(*atomic.Uint64)
}

// listKey names the cached list of resource for the current generation.
func (a *API) listKey(resource, query string) string {
	gen := a.counter(resource).Load()
	return cacheKeyPrefix(resource) + strconv.FormatUint(gen, 10) + "?" + query
}

func cacheKeyPrefix(resource string) string { return resource + ":" }

// fail answers with 400 for validation errors and 500 otherwise.
func fail(w http.ResponseWriter, message string, err error) {
	var verr *validationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, verr.msg)
		return
	}
	serverError(w, message, err)
}
