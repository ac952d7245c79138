package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oselo/compass/internal/observability"
	"github.com/oselo/compass/internal/tracker"
)

func handleCreateDependency(svc *tracker.Dependencies, m *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		var in tracker.DependencyInput
		if err := decodeBody(r, &in); err != nil {
			WriteError(w, err)
			return
		}
		dep, err := svc.Create(r.Context(), rctx, in)
		recordMutation(m, "dependency", "create", err)
		if err != nil {
			WriteError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, dep)
	}
}

// handleListDependencies lists dependencies touching an entity ref
// (entity_type and entity_id query params), or all for the tenant when
// no ref is given.
func handleListDependencies(svc *tracker.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		deps, err := svc.List(r.Context(), rctx, refFromQuery(r))
		if err != nil {
			WriteError(w, err)
			return
		}
		writeList(w, deps)
	}
}

func handleDeleteDependency(svc *tracker.Dependencies, m *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		err := svc.Delete(r.Context(), rctx, chi.URLParam(r, "dependencyId"))
		recordMutation(m, "dependency", "delete", err)
		if err != nil {
			WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
