package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/oselo/compass/internal/config"
	"github.com/oselo/compass/internal/dashboard"
	"github.com/oselo/compass/internal/observability"
	"github.com/oselo/compass/internal/tracker"
)

// Dependencies holds all injected dependencies for the HTTP transport layer.
type Dependencies struct {
	Config       *config.Config
	Logger       *zap.Logger
	Metrics      *observability.Metrics
	Services     *tracker.Services
	Dashboard    *dashboard.Provider
	Readiness    observability.ReadinessChecks
	Authenticate func(http.Handler) http.Handler
}

// NewRouter creates a chi.Router with the full middleware pipeline and all
// route registrations. Health, readiness, and metrics endpoints bypass the
// authentication middleware.
func NewRouter(deps Dependencies) chi.Router {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg := deps.Config
	m := deps.Metrics
	svcs := deps.Services

	r := chi.NewRouter()

	// Global middleware: applied to all routes including health.
	r.Use(Recovery(logger))
	r.Use(CORS(cfg.Server.CORS))
	r.Use(RequestID)
	r.Use(SecurityHeaders)

	// Public routes — bypass authentication.
	r.Get("/healthz", observability.HandleHealth())
	r.Get("/readyz", observability.HandleReady(deps.Readiness))
	if cfg.Observability.Metrics.Enabled {
		path := cfg.Observability.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		r.Method(http.MethodGet, path, observability.Handler())
	}

	// Authenticated routes.
	auth := deps.Authenticate
	if auth == nil {
		auth = func(next http.Handler) http.Handler { return next }
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(observability.TracingMiddleware)
		r.Use(auth)
		r.Use(BuildRequestContext(cfg.Identity.ClaimPaths))
		r.Use(HandlerTimeout(cfg.Server.HandlerTimeout))
		r.Use(RequestLogging(logger))
		if m != nil {
			r.Use(m.MetricsMiddleware)
		}

		dash := cfg.Dashboard

		r.Get("/navigation", handleNavigation(cfg.Identity))
		r.Get("/resolve", handleResolveRef(svcs.Resolver))

		r.Route("/cycles", func(r chi.Router) {
			r.Get("/", handleListCycles(svcs.Cycles))
			r.Post("/", handleCreateCycle(svcs.Cycles, m))
			r.Route("/{cycleId}", func(r chi.Router) {
				r.Get("/", handleGetCycle(svcs.Cycles))
				r.Put("/", handleUpdateCycle(svcs.Cycles, m))
				r.Delete("/", handleDeleteCycle(svcs.Cycles, m))
				r.Post("/activate", handleActivateCycle(svcs.Cycles, m))
				r.Post("/complete", handleCompleteCycle(svcs.Cycles, m))
				r.Post("/archive", handleArchiveCycle(svcs.Cycles, m))
			})
		})

		r.Route("/objectives", func(r chi.Router) {
			r.Get("/", handleListObjectives(svcs.Objectives, dash))
			r.Post("/", handleCreateObjective(svcs.Objectives, m))
			r.Route("/{objectiveId}", func(r chi.Router) {
				r.Get("/", handleGetObjective(svcs.Objectives))
				r.Put("/", handleUpdateObjective(svcs.Objectives, m))
				r.Delete("/", handleDeleteObjective(svcs.Objectives, m))
			})
		})

		r.Route("/key-results", func(r chi.Router) {
			r.Get("/", handleListKeyResults(svcs.KeyResults, dash))
			r.Post("/", handleCreateKeyResult(svcs.KeyResults, m))
			r.Route("/{keyResultId}", func(r chi.Router) {
				r.Get("/", handleGetKeyResult(svcs.KeyResults))
				r.Put("/", handleUpdateKeyResult(svcs.KeyResults, m))
				r.Delete("/", handleDeleteKeyResult(svcs.KeyResults, m))
				r.Get("/check-ins", handleListCheckIns(svcs.KeyResults))
				r.Post("/check-ins", handleRecordCheckIn(svcs.KeyResults, m))
			})
		})
		r.Delete("/check-ins/{checkInId}", handleDeleteCheckIn(svcs.KeyResults, m))

		r.Route("/initiatives", func(r chi.Router) {
			r.Get("/", handleListInitiatives(svcs.Initiatives, dash))
			r.Post("/", handleCreateInitiative(svcs.Initiatives, m))
			r.Route("/{initiativeId}", func(r chi.Router) {
				r.Get("/", handleGetInitiative(svcs.Initiatives))
				r.Put("/", handleUpdateInitiative(svcs.Initiatives, m))
				r.Delete("/", handleDeleteInitiative(svcs.Initiatives, m))
				r.Get("/links", handleListObjectiveLinks(svcs.Initiatives))
				r.Post("/links", handleLinkObjective(svcs.Initiatives, m))
			})
		})
		r.Delete("/links/{linkId}", handleUnlinkObjective(svcs.Initiatives, m))

		r.Route("/work-items", func(r chi.Router) {
			r.Get("/", handleListWorkItems(svcs.WorkItems, dash))
			r.Post("/", handleCreateWorkItem(svcs.WorkItems, m))
			r.Route("/{workItemId}", func(r chi.Router) {
				r.Get("/", handleGetWorkItem(svcs.WorkItems))
				r.Put("/", handleUpdateWorkItem(svcs.WorkItems, m))
				r.Delete("/", handleDeleteWorkItem(svcs.WorkItems, m))
			})
		})

		r.Route("/evidence", func(r chi.Router) {
			r.Get("/", handleListEvidence(svcs.Evidence))
			r.Post("/", handleAttachEvidence(svcs.Evidence, m))
			r.Get("/{evidenceId}", handleGetEvidence(svcs.Evidence))
			r.Delete("/{evidenceId}", handleDeleteEvidence(svcs.Evidence, m))
		})

		r.Route("/risks", func(r chi.Router) {
			r.Get("/", handleListRisks(svcs.Risks, dash))
			r.Post("/", handleCreateRisk(svcs.Risks, m))
			r.Route("/{riskId}", func(r chi.Router) {
				r.Get("/", handleGetRisk(svcs.Risks))
				r.Put("/", handleUpdateRisk(svcs.Risks, m))
				r.Delete("/", handleDeleteRisk(svcs.Risks, m))
			})
		})

		r.Route("/dependencies", func(r chi.Router) {
			r.Get("/", handleListDependencies(svcs.Dependencies))
			r.Post("/", handleCreateDependency(svcs.Dependencies, m))
			r.Delete("/{dependencyId}", handleDeleteDependency(svcs.Dependencies, m))
		})

		r.Route("/budget-items", func(r chi.Router) {
			r.Get("/", handleListBudgetItems(svcs.Budget))
			r.Post("/", handleCreateBudgetItem(svcs.Budget, m))
			r.Route("/{budgetItemId}", func(r chi.Router) {
				r.Get("/", handleGetBudgetItem(svcs.Budget))
				r.Put("/", handleUpdateBudgetItem(svcs.Budget, m))
				r.Delete("/", handleDeleteBudgetItem(svcs.Budget, m))
			})
		})

		r.Route("/decisions", func(r chi.Router) {
			r.Get("/", handleListDecisions(svcs.Decisions, dash))
			r.Post("/", handleRecordDecision(svcs.Decisions, m))
			r.Get("/{decisionId}", handleGetDecision(svcs.Decisions))
			r.Delete("/{decisionId}", handleDeleteDecision(svcs.Decisions, m))
		})

		r.Route("/dashboard/{cycleId}", func(r chi.Router) {
			r.Get("/", handleDashboardOverview(deps.Dashboard, m))
			r.Get("/stats", handleDashboardStats(deps.Dashboard, m))
			r.Get("/blocked", handleDashboardBlocked(deps.Dashboard, m))
			r.Get("/stale", handleDashboardStale(deps.Dashboard, m))
			r.Get("/high-priority", handleDashboardHighPriority(deps.Dashboard, m))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(RequireRole(cfg.Identity.AdminRole))
			r.Route("/areas", func(r chi.Router) {
				r.Get("/", handleListAreas(svcs.Org))
				r.Post("/", handleCreateArea(svcs.Org, m))
				r.Route("/{areaId}", func(r chi.Router) {
					r.Get("/", handleGetArea(svcs.Org))
					r.Put("/", handleUpdateArea(svcs.Org, m))
					r.Delete("/", handleDeleteArea(svcs.Org, m))
				})
			})
			r.Route("/owners", func(r chi.Router) {
				r.Get("/", handleListOwners(svcs.Org))
				r.Post("/", handleCreateOwner(svcs.Org, m))
				r.Route("/{ownerId}", func(r chi.Router) {
					r.Get("/", handleGetOwner(svcs.Org))
					r.Put("/", handleUpdateOwner(svcs.Org, m))
					r.Delete("/", handleDeleteOwner(svcs.Org, m))
				})
			})
		})
	})

	return r
}
