package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oselo/compass/internal/config"
	"github.com/oselo/compass/internal/observability"
	"github.com/oselo/compass/internal/tracker"
)

func handleRecordDecision(svc *tracker.Decisions, m *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		var in tracker.DecisionInput
		if err := decodeBody(r, &in); err != nil {
			WriteError(w, err)
			return
		}
		d, err := svc.Record(r.Context(), rctx, in)
		recordMutation(m, "decision", "record", err)
		if err != nil {
			WriteError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, d)
	}
}

func handleListDecisions(svc *tracker.Decisions, cfg config.DashboardConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		decisions, err := svc.List(r.Context(), rctx, listFilters(r, cfg))
		if err != nil {
			WriteError(w, err)
			return
		}
		writeList(w, decisions)
	}
}

func handleGetDecision(svc *tracker.Decisions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		d, err := svc.Get(r.Context(), rctx, chi.URLParam(r, "decisionId"))
		if err != nil {
			WriteError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, d)
	}
}

func handleDeleteDecision(svc *tracker.Decisions, m *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		err := svc.Delete(r.Context(), rctx, chi.URLParam(r, "decisionId"))
		recordMutation(m, "decision", "delete", err)
		if err != nil {
			WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
