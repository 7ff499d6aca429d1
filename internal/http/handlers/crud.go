package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"communityaid/internal/domain"
	"communityaid/internal/resource"
)

// Generic handlers shared by every entity collection. view turns a stored
// record into the response body for the calling actor.

type viewFunc[T domain.Record] func(domain.Actor, T) any

type filterFunc func(*http.Request) (domain.Filter, error)

func noFilter(*http.Request) (domain.Filter, error) { return domain.Filter{}, nil }

func list[T domain.Record](a *App, w http.ResponseWriter, r *http.Request, svc *resource.Service[T], filter filterFunc, view viewFunc[T]) {
	actor, err := a.actor(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	f, err := filter(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	items, err := svc.List(r.Context(), actor, f)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, view(actor, item))
	}
	a.json(w, http.StatusOK, out)
}

func retrieve[T domain.Record](a *App, w http.ResponseWriter, r *http.Request, svc *resource.Service[T], view viewFunc[T]) {
	actor, err := a.actor(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	item, err := svc.Retrieve(r.Context(), actor, id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, view(actor, *item))
}

func create[T domain.Record, P resource.Patch[T]](a *App, w http.ResponseWriter, r *http.Request, svc *resource.Service[T], view viewFunc[T]) {
	actor, err := a.actor(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	var patch P
	if err := a.decode(w, r, &patch); err != nil {
		a.fail(w, r, err)
		return
	}
	item, err := svc.Create(r.Context(), actor, patch)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, view(actor, *item))
}

func update[T domain.Record, P resource.Patch[T]](a *App, w http.ResponseWriter, r *http.Request, svc *resource.Service[T], view viewFunc[T]) {
	actor, err := a.actor(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	var patch P
	if err := a.decode(w, r, &patch); err != nil {
		a.fail(w, r, err)
		return
	}
	item, err := svc.Update(r.Context(), actor, id, patch)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, view(actor, *item))
}

func remove[T domain.Record](a *App, w http.ResponseWriter, r *http.Request, svc *resource.Service[T]) {
	actor, err := a.actor(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if err := svc.Delete(r.Context(), actor, id); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrNotFound
	}
	return id, nil
}

func queryID(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Invalid(name, "must be a positive integer")
	}
	return id, nil
}

type idsRequest struct {
	IDs []int64 `json:"ids"`
}

type transitionResponse struct {
	Updated int64 `json:"updated"`
}

// transition applies a bulk state change through approver.
func (a *App) transition(w http.ResponseWriter, r *http.Request, approver *resource.Approver, state string) {
	actor, err := a.actor(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	var req idsRequest
	if err := a.decode(w, r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	n, err := approver.Transition(r.Context(), actor, req.IDs, state)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, transitionResponse{Updated: n})
}
