package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oselo/compass/internal/config"
	"github.com/oselo/compass/internal/observability"
	"github.com/oselo/compass/internal/tracker"
)

func handleListKeyResults(svc *tracker.KeyResults, cfg config.DashboardConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		krs, err := svc.List(r.Context(), rctx, listFilters(r, cfg))
		if err != nil {
			WriteError(w, err)
			return
		}
		writeList(w, krs)
	}
}

func handleCreateKeyResult(svc *tracker.KeyResults, m *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		var in tracker.KeyResultInput
		if err := decodeBody(r, &in); err != nil {
			WriteError(w, err)
			return
		}
		kr, err := svc.Create(r.Context(), rctx, in)
		recordMutation(m, "key_result", "create", err)
		if err != nil {
			WriteError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, kr)
	}
}

func handleGetKeyResult(svc *tracker.KeyResults) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		kr, err := svc.Get(r.Context(), rctx, chi.URLParam(r, "keyResultId"))
		if err != nil {
			WriteError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, kr)
	}
}

func handleUpdateKeyResult(svc *tracker.KeyResults, m *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		var in tracker.KeyResultInput
		if err := decodeBody(r, &in); err != nil {
			WriteError(w, err)
			return
		}
		kr, err := svc.Update(r.Context(), rctx, chi.URLParam(r, "keyResultId"), in)
		recordMutation(m, "key_result", "update", err)
		if err != nil {
			WriteError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, kr)
	}
}

func handleDeleteKeyResult(svc *tracker.KeyResults, m *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		err := svc.Delete(r.Context(), rctx, chi.URLParam(r, "keyResultId"))
		recordMutation(m, "key_result", "delete", err)
		if err != nil {
			WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleRecordCheckIn(svc *tracker.KeyResults, m *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		var in tracker.CheckInInput
		if err := decodeBody(r, &in); err != nil {
			WriteError(w, err)
			return
		}
		keyResultID := chi.URLParam(r, "keyResultId")
		ci, err := svc.RecordCheckIn(r.Context(), rctx, keyResultID, in)
		recordMutation(m, "key_result", "check_in", err)
		if err != nil {
			WriteError(w, err)
			return
		}
		if m != nil {
			if kr, krErr := svc.Get(r.Context(), rctx, keyResultID); krErr == nil {
				m.RecordCheckIn(string(kr.ScoringMethod))
			}
		}
		WriteJSON(w, http.StatusCreated, ci)
	}
}

func handleListCheckIns(svc *tracker.KeyResults) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		cis, err := svc.ListCheckIns(r.Context(), rctx, chi.URLParam(r, "keyResultId"))
		if err != nil {
			WriteError(w, err)
			return
		}
		writeList(w, cis)
	}
}

func handleDeleteCheckIn(svc *tracker.KeyResults, m *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		err := svc.DeleteCheckIn(r.Context(), rctx, chi.URLParam(r, "checkInId"))
		recordMutation(m, "key_result", "delete_check_in", err)
		if err != nil {
			WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
