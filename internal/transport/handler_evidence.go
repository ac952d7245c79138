package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oselo/compass/internal/observability"
	"github.com/oselo/compass/internal/tracker"
)

func handleAttachEvidence(svc *tracker.EvidenceService, m *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		var in tracker.AttachEvidenceInput
		if err := decodeBody(r, &in); err != nil {
			WriteError(w, err)
			return
		}
		ev, err := svc.Attach(r.Context(), rctx, in)
		recordMutation(m, "evidence", "attach", err)
		if err != nil {
			WriteError(w, err)
			return
		}
		if m != nil {
			m.RecordEvidenceAttached(string(ev.Ref.Type))
		}
		WriteJSON(w, http.StatusCreated, ev)
	}
}

// handleListEvidence lists evidence for an entity ref (entity_type and
// entity_id query params) or a check-in (check_in_id query param).
func handleListEvidence(svc *tracker.EvidenceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		ref := refFromQuery(r)
		checkInID := r.URL.Query().Get("check_in_id")
		evidence, err := svc.List(r.Context(), rctx, ref, checkInID)
		if err != nil {
			WriteError(w, err)
			return
		}
		writeList(w, evidence)
	}
}

func handleGetEvidence(svc *tracker.EvidenceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		ev, err := svc.Get(r.Context(), rctx, chi.URLParam(r, "evidenceId"))
		if err != nil {
			WriteError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, ev)
	}
}

func handleDeleteEvidence(svc *tracker.EvidenceService, m *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		err := svc.Delete(r.Context(), rctx, chi.URLParam(r, "evidenceId"))
		recordMutation(m, "evidence", "delete", err)
		if err != nil {
			WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
