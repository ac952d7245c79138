package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oselo/compass/internal/config"
	"github.com/oselo/compass/internal/observability"
	"github.com/oselo/compass/internal/tracker"
)

func handleListInitiatives(svc *tracker.Initiatives, cfg config.DashboardConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		initiatives, err := svc.List(r.Context(), rctx, listFilters(r, cfg))
		if err != nil {
			WriteError(w, err)
			return
		}
		writeList(w, initiatives)
	}
}

func handleCreateInitiative(svc *tracker.Initiatives, m *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		var in tracker.InitiativeInput
		if err := decodeBody(r, &in); err != nil {
			WriteError(w, err)
			return
		}
		initiative, err := svc.Create(r.Context(), rctx, in)
		recordMutation(m, "initiative", "create", err)
		if err != nil {
			WriteError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, initiative)
	}
}

func handleGetInitiative(svc *tracker.Initiatives) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		initiative, err := svc.Get(r.Context(), rctx, chi.URLParam(r, "initiativeId"))
		if err != nil {
			WriteError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, initiative)
	}
}

func handleUpdateInitiative(svc *tracker.Initiatives, m *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		var in tracker.InitiativeInput
		if err := decodeBody(r, &in); err != nil {
			WriteError(w, err)
			return
		}
		initiative, err := svc.Update(r.Context(), rctx, chi.URLParam(r, "initiativeId"), in)
		recordMutation(m, "initiative", "update", err)
		if err != nil {
			WriteError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, initiative)
	}
}

func handleDeleteInitiative(svc *tracker.Initiatives, m *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		err := svc.Delete(r.Context(), rctx, chi.URLParam(r, "initiativeId"))
		recordMutation(m, "initiative", "delete", err)
		if err != nil {
			WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleLinkObjective(svc *tracker.Initiatives, m *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		var in tracker.LinkInput
		if err := decodeBody(r, &in); err != nil {
			WriteError(w, err)
			return
		}
		link, err := svc.Link(r.Context(), rctx, chi.URLParam(r, "initiativeId"), in)
		recordMutation(m, "initiative", "link", err)
		if err != nil {
			WriteError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, link)
	}
}

func handleListObjectiveLinks(svc *tracker.Initiatives) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		links, err := svc.Links(r.Context(), rctx, chi.URLParam(r, "initiativeId"))
		if err != nil {
			WriteError(w, err)
			return
		}
		writeList(w, links)
	}
}

func handleUnlinkObjective(svc *tracker.Initiatives, m *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		err := svc.Unlink(r.Context(), rctx, chi.URLParam(r, "linkId"))
		recordMutation(m, "initiative", "unlink", err)
		if err != nil {
			WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
