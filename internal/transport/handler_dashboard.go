package transport

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/oselo/compass/internal/dashboard"
	"github.com/oselo/compass/internal/observability"
)

func observeDashboard(m *observability.Metrics, section string, start time.Time) {
	if m != nil {
		m.RecordDashboardQuery(section, time.Since(start))
	}
}

func handleDashboardOverview(p *dashboard.Provider, m *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		start := time.Now()
		overview, err := p.Load(r.Context(), rctx, chi.URLParam(r, "cycleId"))
		observeDashboard(m, "overview", start)
		if err != nil {
			WriteError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, overview)
	}
}

func handleDashboardStats(p *dashboard.Provider, m *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		start := time.Now()
		stats, err := p.Stats(r.Context(), rctx, chi.URLParam(r, "cycleId"))
		observeDashboard(m, "stats", start)
		if err != nil {
			WriteError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, stats)
	}
}

func handleDashboardBlocked(p *dashboard.Provider, m *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		start := time.Now()
		blocked, err := p.BlockedItems(r.Context(), rctx, chi.URLParam(r, "cycleId"))
		observeDashboard(m, "blocked", start)
		if err != nil {
			WriteError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, blocked)
	}
}

func handleDashboardStale(p *dashboard.Provider, m *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		start := time.Now()
		stale, err := p.StaleInitiatives(r.Context(), rctx, chi.URLParam(r, "cycleId"))
		observeDashboard(m, "stale", start)
		if err != nil {
			WriteError(w, err)
			return
		}
		writeList(w, stale)
	}
}

func handleDashboardHighPriority(p *dashboard.Provider, m *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx, ok := requestContext(w, r)
		if !ok {
			return
		}
		start := time.Now()
		items, err := p.HighPriorityItems(r.Context(), rctx, chi.URLParam(r, "cycleId"))
		observeDashboard(m, "high_priority", start)
		if err != nil {
			WriteError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, items)
	}
}
