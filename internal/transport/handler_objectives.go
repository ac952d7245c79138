package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oselo/compass/internal/config"
	"github.com/oselo/compass/internal/observability"
	"github.com/oselo/compass/internal/tracker"
)

func handleListObjectives(svc *tracker.Objectives, cfg config.DashboardConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		objectives, err := svc.List(r.Context(), rctx, listFilters(r, cfg))
		if err != nil {
			WriteError(w, err)
			return
		}
		writeList(w, objectives)
	}
}

func handleCreateObjective(svc *tracker.Objectives, m *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		var in tracker.ObjectiveInput
		if err := decodeBody(r, &in); err != nil {
			WriteError(w, err)
			return
		}
		o, err := svc.Create(r.Context(), rctx, in)
		recordMutation(m, "objective", "create", err)
		if err != nil {
			WriteError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, o)
	}
}

func handleGetObjective(svc *tracker.Objectives) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		o, err := svc.Get(r.Context(), rctx, chi.URLParam(r, "objectiveId"))
		if err != nil {
			WriteError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, o)
	}
}

func handleUpdateObjective(svc *tracker.Objectives, m *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		var in tracker.ObjectiveInput
		if err := decodeBody(r, &in); err != nil {
			WriteError(w, err)
			return
		}
		o, err := svc.Update(r.Context(), rctx, chi.URLParam(r, "objectiveId"), in)
		recordMutation(m, "objective", "update", err)
		if err != nil {
			WriteError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, o)
	}
}

func handleDeleteObjective(svc *tracker.Objectives, m *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		err := svc.Delete(r.Context(), rctx, chi.URLParam(r, "objectiveId"))
		recordMutation(m, "objective", "delete", err)
		if err != nil {
			WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
