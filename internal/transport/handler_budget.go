package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oselo/compass/internal/observability"
	"github.com/oselo/compass/internal/tracker"
)

// handleListBudgetItems lists budget items for an initiative
// (initiative_id query param, empty lists all for the tenant).
func handleListBudgetItems(svc *tracker.Budget) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		items, err := svc.List(r.Context(), rctx, r.URL.Query().Get("initiative_id"))
		if err != nil {
			WriteError(w, err)
			return
		}
		writeList(w, items)
	}
}

func handleCreateBudgetItem(svc *tracker.Budget, m *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		var in tracker.BudgetItemInput
		if err := decodeBody(r, &in); err != nil {
			WriteError(w, err)
			return
		}
		item, err := svc.Create(r.Context(), rctx, in)
		recordMutation(m, "budget_item", "create", err)
		if err != nil {
			WriteError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, item)
	}
}

func handleGetBudgetItem(svc *tracker.Budget) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		item, err := svc.Get(r.Context(), rctx, chi.URLParam(r, "budgetItemId"))
		if err != nil {
			WriteError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, item)
	}
}

func handleUpdateBudgetItem(svc *tracker.Budget, m *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		var in tracker.BudgetItemInput
		if err := decodeBody(r, &in); err != nil {
			WriteError(w, err)
			return
		}
		item, err := svc.Update(r.Context(), rctx, chi.URLParam(r, "budgetItemId"), in)
		recordMutation(m, "budget_item", "update", err)
		if err != nil {
			WriteError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, item)
	}
}

func handleDeleteBudgetItem(svc *tracker.Budget, m *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		err := svc.Delete(r.Context(), rctx, chi.URLParam(r, "budgetItemId"))
		recordMutation(m, "budget_item", "delete", err)
		if err != nil {
			WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
