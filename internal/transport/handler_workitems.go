package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oselo/compass/internal/config"
	"github.com/oselo/compass/internal/observability"
	"github.com/oselo/compass/internal/tracker"
)

func handleListWorkItems(svc *tracker.WorkItems, cfg config.DashboardConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		items, err := svc.List(r.Context(), rctx, listFilters(r, cfg))
		if err != nil {
			WriteError(w, err)
			return
		}
		writeList(w, items)
	}
}

func handleCreateWorkItem(svc *tracker.WorkItems, m *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		var in tracker.WorkItemInput
		if err := decodeBody(r, &in); err != nil {
			WriteError(w, err)
			return
		}
		item, err := svc.Create(r.Context(), rctx, in)
		recordMutation(m, "work_item", "create", err)
		if err != nil {
			WriteError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, item)
	}
}

func handleGetWorkItem(svc *tracker.WorkItems) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		item, err := svc.Get(r.Context(), rctx, chi.URLParam(r, "workItemId"))
		if err != nil {
			WriteError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, item)
	}
}

func handleUpdateWorkItem(svc *tracker.WorkItems, m *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		var in tracker.WorkItemInput
		if err := decodeBody(r, &in); err != nil {
			WriteError(w, err)
			return
		}
		item, err := svc.Update(r.Context(), rctx, chi.URLParam(r, "workItemId"), in)
		recordMutation(m, "work_item", "update", err)
		if err != nil {
			WriteError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, item)
	}
}

func handleDeleteWorkItem(svc *tracker.WorkItems, m *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		err := svc.Delete(r.Context(), rctx, chi.URLParam(r, "workItemId"))
		recordMutation(m, "work_item", "delete", err)
		if err != nil {
			WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
