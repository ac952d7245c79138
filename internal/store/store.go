// Package store defines the persistence interfaces for all OKR entities and
// provides PostgreSQL and in-memory implementations.
package store

import (
	"context"

	"github.com/oselo/compass/model"
)

// ListFilters narrows list queries. Zero-valued fields are ignored. These
// correspond one-to-one with the filter query parameters on list screens.
type ListFilters struct {
	CycleID      string
	AreaID       string
	OwnerID      string
	ObjectiveID  string
	InitiativeID string
	Status       string
	Priority     string
	Type         string
	Query        string
	Limit        int
	Offset       int
}

// CycleStore persists planning cycles.
type CycleStore interface {
	CreateCycle(ctx context.Context, c model.Cycle) error
	GetCycle(ctx context.Context, tenantID, id string) (model.Cycle, error)
	ListCycles(ctx context.Context, tenantID string) ([]model.Cycle, error)
	UpdateCycle(ctx context.Context, c model.Cycle) error

	// DeleteCycle removes the cycle and everything scoped to it: its
	// objectives (with their key results and check-ins), its initiatives
	// (with their work items, budget items, and objective links).
	DeleteCycle(ctx context.Context, tenantID, id string) error

	// ActivateCycle archives every cycle currently active for the tenant,
	// then marks the target cycle active, in one transaction. After it
	// returns at most one cycle is active regardless of how many were
	// active before.
	ActivateCycle(ctx context.Context, tenantID, id string) error

	// SetCycleStatus moves the cycle to the given status unconditionally.
	SetCycleStatus(ctx context.Context, tenantID, id string, status model.CycleStatus) error
}

// ObjectiveStore persists objectives.
type ObjectiveStore interface {
	CreateObjective(ctx context.Context, o model.Objective) error
	GetObjective(ctx context.Context, tenantID, id string) (model.Objective, error)
	ListObjectives(ctx context.Context, tenantID string, f ListFilters) ([]model.Objective, error)
	UpdateObjective(ctx context.Context, o model.Objective) error

	// DeleteObjective removes the objective, its key results, their
	// check-ins, and its initiative links. Polymorphic rows pointing at it
	// (evidence, risks, dependencies, decisions) are left dangling.
	DeleteObjective(ctx context.Context, tenantID, id string) error
}

// KeyResultStore persists key results and their check-ins.
type KeyResultStore interface {
	CreateKeyResult(ctx context.Context, kr model.KeyResult) error
	GetKeyResult(ctx context.Context, tenantID, id string) (model.KeyResult, error)
	ListKeyResults(ctx context.Context, tenantID string, f ListFilters) ([]model.KeyResult, error)
	UpdateKeyResult(ctx context.Context, kr model.KeyResult) error
	DeleteKeyResult(ctx context.Context, tenantID, id string) error

	// RecordCheckIn atomically inserts the check-in (capturing the key
	// result's prior current value as PreviousValue), inserts any evidence
	// rows linked to it, and advances the key result's current value. All
	// three writes happen in one transaction; on failure no partial state
	// is visible.
	RecordCheckIn(ctx context.Context, ci model.KeyResultCheckIn, evidence []model.EvidenceInput) (model.KeyResultCheckIn, error)

	// DeleteCheckIn removes the check-in row only. It does not revert the
	// key result's current value, and it is a no-op when the check-in does
	// not exist.
	DeleteCheckIn(ctx context.Context, tenantID, id string) error

	ListCheckIns(ctx context.Context, tenantID, keyResultID string) ([]model.KeyResultCheckIn, error)
}

// InitiativeStore persists initiatives and their objective links.
type InitiativeStore interface {
	CreateInitiative(ctx context.Context, in model.Initiative) error
	GetInitiative(ctx context.Context, tenantID, id string) (model.Initiative, error)
	ListInitiatives(ctx context.Context, tenantID string, f ListFilters) ([]model.Initiative, error)
	UpdateInitiative(ctx context.Context, in model.Initiative) error

	// DeleteInitiative removes the initiative, its work items, its budget
	// items, and its objective links. Polymorphic rows pointing at it are
	// left dangling.
	DeleteInitiative(ctx context.Context, tenantID, id string) error

	LinkObjective(ctx context.Context, link model.ObjectiveInitiative) error
	UnlinkObjective(ctx context.Context, tenantID, linkID string) error
	ListObjectiveLinks(ctx context.Context, tenantID, initiativeID string) ([]model.ObjectiveInitiative, error)
}

// WorkItemStore persists work items.
type WorkItemStore interface {
	CreateWorkItem(ctx context.Context, wi model.WorkItem) error
	GetWorkItem(ctx context.Context, tenantID, id string) (model.WorkItem, error)
	ListWorkItems(ctx context.Context, tenantID string, f ListFilters) ([]model.WorkItem, error)
	UpdateWorkItem(ctx context.Context, wi model.WorkItem) error
	DeleteWorkItem(ctx context.Context, tenantID, id string) error
}

// EvidenceStore persists evidence attachments.
type EvidenceStore interface {
	CreateEvidence(ctx context.Context, ev model.Evidence) error
	GetEvidence(ctx context.Context, tenantID, id string) (model.Evidence, error)
	ListEvidence(ctx context.Context, tenantID string, ref model.EntityRef, checkInID string) ([]model.Evidence, error)
	DeleteEvidence(ctx context.Context, tenantID, id string) error
}

// RiskStore persists risks.
type RiskStore interface {
	CreateRisk(ctx context.Context, r model.Risk) error
	GetRisk(ctx context.Context, tenantID, id string) (model.Risk, error)
	ListRisks(ctx context.Context, tenantID string, f ListFilters) ([]model.Risk, error)
	UpdateRisk(ctx context.Context, r model.Risk) error
	DeleteRisk(ctx context.Context, tenantID, id string) error
}

// DependencyStore persists dependency edges.
type DependencyStore interface {
	CreateDependency(ctx context.Context, d model.Dependency) error
	ListDependencies(ctx context.Context, tenantID string, ref model.EntityRef) ([]model.Dependency, error)
	DeleteDependency(ctx context.Context, tenantID, id string) error
}

// BudgetStore persists budget items.
type BudgetStore interface {
	CreateBudgetItem(ctx context.Context, b model.BudgetItem) error
	GetBudgetItem(ctx context.Context, tenantID, id string) (model.BudgetItem, error)
	ListBudgetItems(ctx context.Context, tenantID, initiativeID string) ([]model.BudgetItem, error)
	UpdateBudgetItem(ctx context.Context, b model.BudgetItem) error
	DeleteBudgetItem(ctx context.Context, tenantID, id string) error
}

// DecisionStore persists the append-only decision log. Decisions have no
// update operation.
type DecisionStore interface {
	CreateDecision(ctx context.Context, d model.DecisionLog) error
	GetDecision(ctx context.Context, tenantID, id string) (model.DecisionLog, error)
	ListDecisions(ctx context.Context, tenantID string, f ListFilters) ([]model.DecisionLog, error)
	DeleteDecision(ctx context.Context, tenantID, id string) error
}

// OrgStore persists the organizational entities managed in the admin area.
type OrgStore interface {
	CreateArea(ctx context.Context, a model.Area) error
	GetArea(ctx context.Context, tenantID, id string) (model.Area, error)
	ListAreas(ctx context.Context, tenantID string) ([]model.Area, error)
	UpdateArea(ctx context.Context, a model.Area) error
	DeleteArea(ctx context.Context, tenantID, id string) error

	CreateOwner(ctx context.Context, o model.Owner) error
	GetOwner(ctx context.Context, tenantID, id string) (model.Owner, error)
	ListOwners(ctx context.Context, tenantID string) ([]model.Owner, error)
	UpdateOwner(ctx context.Context, o model.Owner) error
	DeleteOwner(ctx context.Context, tenantID, id string) error
}

// DashboardStore serves the read-only aggregation queries. All results
// reflect the database at query time; there is no caching layer.
type DashboardStore interface {
	// StatusCounts groups objectives, key results (via their parent
	// objective), and initiatives scoped to the cycle by status. An empty
	// cycle yields empty bucket lists.
	StatusCounts(ctx context.Context, tenantID, cycleID string) (model.DashboardStats, error)

	// BlockedItems returns the objectives and initiatives in the cycle
	// whose status is at_risk or off_track.
	BlockedItems(ctx context.Context, tenantID, cycleID string) (model.BlockedItems, error)

	// StaleInitiatives returns up to limit initiatives in the cycle with no
	// evidence row created within the last staleDays days. An initiative
	// with no evidence at all is included.
	StaleInitiatives(ctx context.Context, tenantID, cycleID string, staleDays, limit int) ([]model.Initiative, error)

	// HighPriorityItems returns the high and critical priority objectives
	// (ordered by declared priority severity) and initiatives (ordered by
	// ascending due date) in the cycle, each list capped at limit.
	HighPriorityItems(ctx context.Context, tenantID, cycleID string, limit int) (model.HighPriorityItems, error)
}

// Store is the full persistence surface of the service.
type Store interface {
	CycleStore
	ObjectiveStore
	KeyResultStore
	InitiativeStore
	WorkItemStore
	EvidenceStore
	RiskStore
	DependencyStore
	BudgetStore
	DecisionStore
	OrgStore
	DashboardStore

	// HealthCheck verifies the backing store is reachable.
	HealthCheck(ctx context.Context) error
}
