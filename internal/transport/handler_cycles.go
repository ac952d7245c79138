package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oselo/compass/internal/observability"
	"github.com/oselo/compass/internal/tracker"
)

func handleListCycles(svc *tracker.Cycles) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		cycles, err := svc.List(r.Context(), rctx)
		if err != nil {
			WriteError(w, err)
			return
		}
		writeList(w, cycles)
	}
}

func handleCreateCycle(svc *tracker.Cycles, m *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		var in tracker.CycleInput
		if err := decodeBody(r, &in); err != nil {
			WriteError(w, err)
			return
		}
		cycle, err := svc.Create(r.Context(), rctx, in)
		recordMutation(m, "cycle", "create", err)
		if err != nil {
			WriteError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, cycle)
	}
}

func handleGetCycle(svc *tracker.Cycles) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		cycle, err := svc.Get(r.Context(), rctx, chi.URLParam(r, "cycleId"))
		if err != nil {
			WriteError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, cycle)
	}
}

func handleUpdateCycle(svc *tracker.Cycles, m *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		var in tracker.CycleInput
		if err := decodeBody(r, &in); err != nil {
			WriteError(w, err)
			return
		}
		cycle, err := svc.Update(r.Context(), rctx, chi.URLParam(r, "cycleId"), in)
		recordMutation(m, "cycle", "update", err)
		if err != nil {
			WriteError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, cycle)
	}
}

func handleDeleteCycle(svc *tracker.Cycles, m *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		err := svc.Delete(r.Context(), rctx, chi.URLParam(r, "cycleId"))
		recordMutation(m, "cycle", "delete", err)
		if err != nil {
			WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleActivateCycle(svc *tracker.Cycles, m *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		cycle, err := svc.Activate(r.Context(), rctx, chi.URLParam(r, "cycleId"))
		recordMutation(m, "cycle", "activate", err)
		if err != nil {
			WriteError(w, err)
			return
		}
		if m != nil {
			m.RecordCycleTransition("active")
		}
		WriteJSON(w, http.StatusOK, cycle)
	}
}

func handleCompleteCycle(svc *tracker.Cycles, m *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		cycle, err := svc.Complete(r.Context(), rctx, chi.URLParam(r, "cycleId"))
		recordMutation(m, "cycle", "complete", err)
		if err != nil {
			WriteError(w, err)
			return
		}
		if m != nil {
			m.RecordCycleTransition("completed")
		}
		WriteJSON(w, http.StatusOK, cycle)
	}
}

func handleArchiveCycle(svc *tracker.Cycles, m *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		cycle, err := svc.Archive(r.Context(), rctx, chi.URLParam(r, "cycleId"))
		recordMutation(m, "cycle", "archive", err)
		if err != nil {
			WriteError(w, err)
			return
		}
		if m != nil {
			m.RecordCycleTransition("archived")
		}
		WriteJSON(w, http.StatusOK, cycle)
	}
}
