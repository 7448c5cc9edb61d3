package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"

	"github.com/Ibrohimov-Zafar/DevVibe/internal/notify"
	"github.com/Ibrohimov-Zafar/DevVibe/internal/store"
)

// tableStore is the CRUD surface a resource needs from the store.
type tableStore[T any] interface {
	List(ctx context.Context, filters ...store.Filter) ([]T, error)
	Get(ctx context.Context, id uint) (*T, error)
	Create(ctx context.Context, row *T) error
	Update(ctx context.Context, id uint, row *T) error
	Delete(ctx context.Context, id uint) error
}

type keyed interface {
	PrimaryKey() uint
}

// listFilter maps a query parameter onto an equality condition. Boolean
// filters only apply when the parameter is "true".
type listFilter struct {
	param   string
	column  string
	boolean bool
}

// resource serves the five CRUD routes of one table.
type resource[T any] struct {
	api     *API
	name    string
	noun    string
	store   tableStore[T]
	filters []listFilter
	created int
	decodeC func() input[T]
	decodeU func() updateInput[T]
}

func (res *resource[T]) register(r *mux.Router) {
	base := "/api/" + res.name
	r.HandleFunc(base, res.list).Methods(http.MethodGet)
	r.HandleFunc(base, res.create).Methods(http.MethodPost)
	r.HandleFunc(base, res.update).Methods(http.MethodPut)
	r.HandleFunc(base, res.delete).Methods(http.MethodDelete)
	r.HandleFunc(base+"/{id}", res.get).Methods(http.MethodGet)
}

func (res *resource[T]) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filters, query := res.parseFilters(r.URL.Query())
	key := res.api.listKey(res.name, query)

	if cached, ok := res.api.cache.Get(ctx, key); ok {
		writeData(w, http.StatusOK, json.RawMessage(cached))
		return
	}

	rows, err := res.store.List(ctx, filters...)
	if err != nil {
		serverError(w, "Failed to load "+res.name, err)
		return
	}

	payload, err := json.Marshal(rows)
	if err != nil {
		serverError(w, "Failed to load "+res.name, err)
		return
	}
	if err := res.api.cache.Set(ctx, key, payload); err != nil {
		log.Printf("cache %s: %v", key, err)
	}
	writeData(w, http.StatusOK, json.RawMessage(payload))
}

// parseFilters returns the active filters and their canonical query string,
// listed in declaration order so equal queries share a cache entry.
func (res *resource[T]) parseFilters(q url.Values) ([]store.Filter, string) {
	var (
		filters []store.Filter
		parts   []string
	)
	for _, f := range res.filters {
		v := strings.TrimSpace(q.Get(f.param))
		switch {
		case f.boolean && v == "true":
			filters = append(filters, store.Filter{Column: f.column, Value: true})
		case !f.boolean && v != "":
			filters = append(filters, store.Filter{Column: f.column, Value: v})
		default:
			continue
		}
		parts = append(parts, f.param+"="+v)
	}
	return filters, strings.Join(parts, "&")
}

func (res *resource[T]) get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(mux.Vars(r)["id"])
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid ID")
		return
	}

	row, err := res.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, res.noun+" not found")
		return
	}
	if err != nil {
		serverError(w, "Failed to load "+res.name, err)
		return
	}
	writeData(w, http.StatusOK, row)
}

func (res *resource[T]) create(w http.ResponseWriter, r *http.Request) {
	in := res.decodeC()
	if err := decode(r, in); err != nil {
		fail(w, "Failed to create "+strings.ToLower(res.noun), err)
		return
	}
	row, err := in.model()
	if err != nil {
		fail(w, "Failed to create "+strings.ToLower(res.noun), err)
		return
	}

	if err := res.store.Create(r.Context(), row); err != nil {
		serverError(w, "Failed to create "+strings.ToLower(res.noun), err)
		return
	}

	res.api.changed(r.Context(), res.name, notify.ActionCreated, primaryKey(row))
	writeData(w, res.created, row)
}

func (res *resource[T]) update(w http.ResponseWriter, r *http.Request) {
	in := res.decodeU()
	if err := decode(r, in); err != nil {
		fail(w, "Failed to update "+strings.ToLower(res.noun), err)
		return
	}
	row, err := in.model()
	if err != nil {
		fail(w, "Failed to update "+strings.ToLower(res.noun), err)
		return
	}

	id := in.recordID()
	err = res.store.Update(r.Context(), id, row)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, res.noun+" not found")
		return
	}
	if err != nil {
		serverError(w, "Failed to update "+strings.ToLower(res.noun), err)
		return
	}

	res.api.changed(r.Context(), res.name, notify.ActionUpdated, id)
	writeJSON(w, http.StatusOK, Response{Success: true, Data: row, Message: res.noun + " updated successfully"})
}

func (res *resource[T]) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r.URL.Query().Get("id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid ID")
		return
	}

	err := res.store.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, res.noun+" not found")
		return
	}
	if err != nil {
		serverError(w, "Failed to delete "+strings.ToLower(res.noun), err)
		return
	}

	res.api.changed(r.Context(), res.name, notify.ActionDeleted, id)
	writeMessage(w, http.StatusOK, res.noun+" deleted successfully")
}

func primaryKey(row any) uint {
	if k, ok := row.(keyed); ok {
		return k.PrimaryKey()
	}
	return 0
}
