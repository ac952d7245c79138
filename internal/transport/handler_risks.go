package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oselo/compass/internal/config"
	"github.com/oselo/compass/internal/observability"
	"github.com/oselo/compass/internal/tracker"
)

func handleListRisks(svc *tracker.Risks, cfg config.DashboardConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		risks, err := svc.List(r.Context(), rctx, listFilters(r, cfg))
		if err != nil {
			WriteError(w, err)
			return
		}
		writeList(w, risks)
	}
}

func handleCreateRisk(svc *tracker.Risks, m *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		var in tracker.RiskInput
		if err := decodeBody(r, &in); err != nil {
			WriteError(w, err)
			return
		}
		risk, err := svc.Create(r.Context(), rctx, in)
		recordMutation(m, "risk", "create", err)
		if err != nil {
			WriteError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, risk)
	}
}

func handleGetRisk(svc *tracker.Risks) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		risk, err := svc.Get(r.Context(), rctx, chi.URLParam(r, "riskId"))
		if err != nil {
			WriteError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, risk)
	}
}

func handleUpdateRisk(svc *tracker.Risks, m *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		var in tracker.RiskInput
		if err := decodeBody(r, &in); err != nil {
			WriteError(w, err)
			return
		}
		risk, err := svc.Update(r.Context(), rctx, chi.URLParam(r, "riskId"), in)
		recordMutation(m, "risk", "update", err)
		if err != nil {
			WriteError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, risk)
	}
}

func handleDeleteRisk(svc *tracker.Risks, m *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		err := svc.Delete(r.Context(), rctx, chi.URLParam(r, "riskId"))
		recordMutation(m, "risk", "delete", err)
		if err != nil {
			WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
