package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oselo/compass/internal/observability"
	"github.com/oselo/compass/internal/tracker"
)

// Area and owner administration. These routes are mounted behind
// RequireRole(admin) in the router.

func handleListAreas(svc *tracker.Org) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		areas, err := svc.ListAreas(r.Context(), rctx)
		if err != nil {
			WriteError(w, err)
			return
		}
		writeList(w, areas)
	}
}

func handleCreateArea(svc *tracker.Org, m *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		var in tracker.AreaInput
		if err := decodeBody(r, &in); err != nil {
			WriteError(w, err)
			return
		}
		area, err := svc.CreateArea(r.Context(), rctx, in)
		recordMutation(m, "area", "create", err)
		if err != nil {
			WriteError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, area)
	}
}

func handleGetArea(svc *tracker.Org) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		area, err := svc.GetArea(r.Context(), rctx, chi.URLParam(r, "areaId"))
		if err != nil {
			WriteError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, area)
	}
}

func handleUpdateArea(svc *tracker.Org, m *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		var in tracker.AreaInput
		if err := decodeBody(r, &in); err != nil {
			WriteError(w, err)
			return
		}
		area, err := svc.UpdateArea(r.Context(), rctx, chi.URLParam(r, "areaId"), in)
		recordMutation(m, "area", "update", err)
		if err != nil {
			WriteError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, area)
	}
}

func handleDeleteArea(svc *tracker.Org, m *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		err := svc.DeleteArea(r.Context(), rctx, chi.URLParam(r, "areaId"))
		recordMutation(m, "area", "delete", err)
		if err != nil {
			WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleListOwners(svc *tracker.Org) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		owners, err := svc.ListOwners(r.Context(), rctx)
		if err != nil {
			WriteError(w, err)
			return
		}
		writeList(w, owners)
	}
}

func handleCreateOwner(svc *tracker.Org, m *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		var in tracker.OwnerInput
		if err := decodeBody(r, &in); err != nil {
			WriteError(w, err)
			return
		}
		owner, err := svc.CreateOwner(r.Context(), rctx, in)
		recordMutation(m, "owner", "create", err)
		if err != nil {
			WriteError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, owner)
	}
}

func handleGetOwner(svc *tracker.Org) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		owner, err := svc.GetOwner(r.Context(), rctx, chi.URLParam(r, "ownerId"))
		if err != nil {
			WriteError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, owner)
	}
}

func handleUpdateOwner(svc *tracker.Org, m *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		var in tracker.OwnerInput
		if err := decodeBody(r, &in); err != nil {
			WriteError(w, err)
			return
		}
		owner, err := svc.UpdateOwner(r.Context(), rctx, chi.URLParam(r, "ownerId"), in)
		recordMutation(m, "owner", "update", err)
		if err != nil {
			WriteError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, owner)
	}
}

func handleDeleteOwner(svc *tracker.Org, m *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		err := svc.DeleteOwner(r.Context(), rctx, chi.URLParam(r, "ownerId"))
		recordMutation(m, "owner", "delete", err)
		if err != nil {
			WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
