package transport

import (
	"net/http"

	"github.com/oselo/compass/internal/config"
	"github.com/oselo/compass/internal/tracker"
	"github.com/oselo/compass/model"
)

// NavItem is a single entry in the navigation menu returned to clients.
type NavItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Path  string `json:"path"`
	Icon  string `json:"icon,omitempty"`
}

// trackerNav is the base menu available to every authenticated user.
var trackerNav = []NavItem{
	{ID: "dashboard", Label: "Dashboard", Path: "/dashboard", Icon: "gauge"},
	{ID: "cycles", Label: "Cycles", Path: "/cycles", Icon: "calendar"},
	{ID: "objectives", Label: "Objectives", Path: "/objectives", Icon: "target"},
	{ID: "key-results", Label: "Key Results", Path: "/key-results", Icon: "trending-up"},
	{ID: "initiatives", Label: "Initiatives", Path: "/initiatives", Icon: "rocket"},
	{ID: "work-items", Label: "Work Items", Path: "/work-items", Icon: "list-checks"},
	{ID: "risks", Label: "Risks", Path: "/risks", Icon: "alert-triangle"},
	{ID: "decisions", Label: "Decisions", Path: "/decisions", Icon: "scale"},
	{ID: "budget", Label: "Budget", Path: "/budget-items", Icon: "wallet"},
}

var adminNav = NavItem{ID: "admin", Label: "Administration", Path: "/admin", Icon: "settings"}

// handleNavigation returns the navigation menu for the current user. The
// admin section is only included for subjects carrying the admin role.
func handleNavigation(identity config.IdentityConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		items := make([]NavItem, 0, len(trackerNav)+1)
		items = append(items, trackerNav...)
		if rctx.HasRole(identity.AdminRole) {
			items = append(items, adminNav)
		}
		writeList(w, items)
	}
}

// handleResolveRef resolves a polymorphic entity ref (entity_type and
// entity_id query params) to a display label.
func handleResolveRef(resolver *tracker.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		ref := refFromQuery(r)
		if !ref.Type.Valid() || ref.ID == "" {
			WriteError(w, model.NewBadRequestError("entity_type and entity_id query params are required"))
			return
		}
		label, err := resolver.Resolve(r.Context(), rctx.TenantID, ref)
		if err != nil {
			WriteError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, tracker.ResolvedRef{EntityRef: ref, Label: label})
	}
}
