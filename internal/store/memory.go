package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oselo/compass/model"
)

// Memory is an in-memory Store for tests and local development. It mirrors
// the Postgres implementation's semantics, including cascade scope: deleting
// a cycle, objective, or initiative removes the rows it owns, while
// polymorphic attachments are left dangling.
type Memory struct {
	mu           sync.RWMutex
	areas        map[string]model.Area
	owners       map[string]model.Owner
	cycles       map[string]model.Cycle
	objectives   map[string]model.Objective
	keyResults   map[string]model.KeyResult
	checkIns     map[string]model.KeyResultCheckIn
	initiatives  map[string]model.Initiative
	links        map[string]model.ObjectiveInitiative
	workItems    map[string]model.WorkItem
	evidence     map[string]model.Evidence
	dependencies map[string]model.Dependency
	risks        map[string]model.Risk
	budgetItems  map[string]model.BudgetItem
	decisions    map[string]model.DecisionLog
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		areas:        make(map[string]model.Area),
		owners:       make(map[string]model.Owner),
		cycles:       make(map[string]model.Cycle),
		objectives:   make(map[string]model.Objective),
		keyResults:   make(map[string]model.KeyResult),
		checkIns:     make(map[string]model.KeyResultCheckIn),
		initiatives:  make(map[string]model.Initiative),
		links:        make(map[string]model.ObjectiveInitiative),
		workItems:    make(map[string]model.WorkItem),
		evidence:     make(map[string]model.Evidence),
		dependencies: make(map[string]model.Dependency),
		risks:        make(map[string]model.Risk),
		budgetItems:  make(map[string]model.BudgetItem),
		decisions:    make(map[string]model.DecisionLog),
	}
}

// HealthCheck always succeeds for the in-memory store.
func (s *Memory) HealthCheck(_ context.Context) error {
	return nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return nil
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// --- Cycles ---

// CreateCycle persists a new cycle.
func (s *Memory) CreateCycle(_ context.Context, c model.Cycle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.cycles[c.ID]; exists {
		return model.NewConflictError(fmt.Sprintf("cycle %q already exists", c.ID))
	}
	s.cycles[c.ID] = c
	return nil
}

// GetCycle retrieves a cycle by ID, scoped to tenant.
func (s *Memory) GetCycle(_ context.Context, tenantID, id string) (model.Cycle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, exists := s.cycles[id]
	if !exists || c.TenantID != tenantID {
		return model.Cycle{}, model.NewNotFoundError(fmt.Sprintf("cycle %q not found", id))
	}
	return c, nil
}

// ListCycles returns a tenant's cycles, most recent start date first.
func (s *Memory) ListCycles(_ context.Context, tenantID string) ([]model.Cycle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var cycles []model.Cycle
	for _, c := range s.cycles {
		if c.TenantID == tenantID {
			cycles = append(cycles, c)
		}
	}
	sort.Slice(cycles, func(i, j int) bool {
		return cycles[i].StartDate.After(cycles[j].StartDate)
	})
	return cycles, nil
}

// UpdateCycle persists an updated cycle.
func (s *Memory) UpdateCycle(_ context.Context, c model.Cycle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.cycles[c.ID]
	if !exists || existing.TenantID != c.TenantID {
		return model.NewNotFoundError(fmt.Sprintf("cycle %q not found", c.ID))
	}
	c.UpdatedAt = time.Now().UTC()
	s.cycles[c.ID] = c
	return nil
}

// DeleteCycle removes the cycle and everything scoped to it.
func (s *Memory) DeleteCycle(_ context.Context, tenantID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, exists := s.cycles[id]
	if !exists || c.TenantID != tenantID {
		return model.NewNotFoundError(fmt.Sprintf("cycle %q not found", id))
	}
	for oid, o := range s.objectives {
		if o.CycleID == id {
			s.deleteObjectiveLocked(oid)
		}
	}
	for iid, in := range s.initiatives {
		if in.CycleID == id {
			s.deleteInitiativeLocked(iid)
		}
	}
	delete(s.cycles, id)
	return nil
}

// ActivateCycle archives every active cycle for the tenant, then marks the
// target active. The whole transition happens under one lock, so at most
// one cycle is active when it returns.
func (s *Memory) ActivateCycle(_ context.Context, tenantID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	target, exists := s.cycles[id]
	if !exists || target.TenantID != tenantID {
		return model.NewNotFoundError(fmt.Sprintf("cycle %q not found", id))
	}

	now := time.Now().UTC()
	for cid, c := range s.cycles {
		if cid != id && c.TenantID == tenantID && c.Status == model.CycleActive {
			c.Status = model.CycleArchived
			c.UpdatedAt = now
			s.cycles[cid] = c
		}
	}
	target.Status = model.CycleActive
	target.UpdatedAt = now
	s.cycles[id] = target
	return nil
}

// SetCycleStatus moves the cycle to the given status unconditionally.
func (s *Memory) SetCycleStatus(_ context.Context, tenantID, id string, status model.CycleStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, exists := s.cycles[id]
	if !exists || c.TenantID != tenantID {
		return model.NewNotFoundError(fmt.Sprintf("cycle %q not found", id))
	}
	c.Status = status
	c.UpdatedAt = time.Now().UTC()
	s.cycles[id] = c
	return nil
}

// --- Objectives ---

// CreateObjective persists a new objective.
func (s *Memory) CreateObjective(_ context.Context, o model.Objective) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.objectives[o.ID]; exists {
		return model.NewConflictError(fmt.Sprintf("objective %q already exists", o.ID))
	}
	s.objectives[o.ID] = o
	return nil
}

// GetObjective retrieves an objective by ID, scoped to tenant.
func (s *Memory) GetObjective(_ context.Context, tenantID, id string) (model.Objective, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, exists := s.objectives[id]
	if !exists || o.TenantID != tenantID {
		return model.Objective{}, model.NewNotFoundError(fmt.Sprintf("objective %q not found", id))
	}
	return o, nil
}

// ListObjectives returns objectives matching the filters, newest first.
func (s *Memory) ListObjectives(_ context.Context, tenantID string, f ListFilters) ([]model.Objective, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var objectives []model.Objective
	for _, o := range s.objectives {
		if o.TenantID != tenantID {
			continue
		}
		if f.CycleID != "" && o.CycleID != f.CycleID {
			continue
		}
		if f.AreaID != "" && o.AreaID != f.AreaID {
			continue
		}
		if f.OwnerID != "" && o.OwnerID != f.OwnerID {
			continue
		}
		if f.Status != "" && string(o.Status) != f.Status {
			continue
		}
		if f.Priority != "" && string(o.Priority) != f.Priority {
			continue
		}
		if f.Type != "" && string(o.Type) != f.Type {
			continue
		}
		if f.Query != "" && !containsFold(o.Title, f.Query) && !containsFold(o.Description, f.Query) {
			continue
		}
		objectives = append(objectives, o)
	}
	sort.Slice(objectives, func(i, j int) bool {
		return objectives[i].CreatedAt.After(objectives[j].CreatedAt)
	})
	return paginate(objectives, f.Limit, f.Offset), nil
}

// UpdateObjective persists an updated objective.
func (s *Memory) UpdateObjective(_ context.Context, o model.Objective) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.objectives[o.ID]
	if !exists || existing.TenantID != o.TenantID {
		return model.NewNotFoundError(fmt.Sprintf("objective %q not found", o.ID))
	}
	o.UpdatedAt = time.Now().UTC()
	s.objectives[o.ID] = o
	return nil
}

// DeleteObjective removes the objective, its key results, their check-ins,
// and its initiative links. Polymorphic rows pointing at it stay behind.
func (s *Memory) DeleteObjective(_ context.Context, tenantID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, exists := s.objectives[id]
	if !exists || o.TenantID != tenantID {
		return model.NewNotFoundError(fmt.Sprintf("objective %q not found", id))
	}
	s.deleteObjectiveLocked(id)
	return nil
}

func (s *Memory) deleteObjectiveLocked(id string) {
	for krID, kr := range s.keyResults {
		if kr.ObjectiveID == id {
			s.deleteKeyResultLocked(krID)
		}
	}
	for linkID, link := range s.links {
		if link.ObjectiveID == id {
			delete(s.links, linkID)
		}
	}
	delete(s.objectives, id)
}

// --- Key results ---

// CreateKeyResult persists a new key result.
func (s *Memory) CreateKeyResult(_ context.Context, kr model.KeyResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.keyResults[kr.ID]; exists {
		return model.NewConflictError(fmt.Sprintf("key result %q already exists", kr.ID))
	}
	s.keyResults[kr.ID] = kr
	return nil
}

// GetKeyResult retrieves a key result by ID, scoped to tenant.
func (s *Memory) GetKeyResult(_ context.Context, tenantID, id string) (model.KeyResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	kr, exists := s.keyResults[id]
	if !exists || kr.TenantID != tenantID {
		return model.KeyResult{}, model.NewNotFoundError(fmt.Sprintf("key result %q not found", id))
	}
	return kr, nil
}

// ListKeyResults returns key results matching the filters, newest first.
// When CycleID is set, key results are scoped through their parent
// objective.
func (s *Memory) ListKeyResults(_ context.Context, tenantID string, f ListFilters) ([]model.KeyResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var keyResults []model.KeyResult
	for _, kr := range s.keyResults {
		if kr.TenantID != tenantID {
			continue
		}
		if f.ObjectiveID != "" && kr.ObjectiveID != f.ObjectiveID {
			continue
		}
		if f.CycleID != "" {
			parent, ok := s.objectives[kr.ObjectiveID]
			if !ok || parent.CycleID != f.CycleID {
				continue
			}
		}
		if f.Status != "" && string(kr.Status) != f.Status {
			continue
		}
		if f.OwnerID != "" && kr.OwnerID != f.OwnerID {
			continue
		}
		if f.Query != "" && !containsFold(kr.Title, f.Query) {
			continue
		}
		keyResults = append(keyResults, kr)
	}
	sort.Slice(keyResults, func(i, j int) bool {
		return keyResults[i].CreatedAt.After(keyResults[j].CreatedAt)
	})
	return paginate(keyResults, f.Limit, f.Offset), nil
}

// UpdateKeyResult persists an updated key result.
func (s *Memory) UpdateKeyResult(_ context.Context, kr model.KeyResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.keyResults[kr.ID]
	if !exists || existing.TenantID != kr.TenantID {
		return model.NewNotFoundError(fmt.Sprintf("key result %q not found", kr.ID))
	}
	kr.UpdatedAt = time.Now().UTC()
	s.keyResults[kr.ID] = kr
	return nil
}

// DeleteKeyResult removes a key result and its check-ins.
func (s *Memory) DeleteKeyResult(_ context.Context, tenantID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kr, exists := s.keyResults[id]
	if !exists || kr.TenantID != tenantID {
		return model.NewNotFoundError(fmt.Sprintf("key result %q not found", id))
	}
	s.deleteKeyResultLocked(id)
	return nil
}

func (s *Memory) deleteKeyResultLocked(id string) {
	for ciID, ci := range s.checkIns {
		if ci.KeyResultID == id {
			delete(s.checkIns, ciID)
		}
	}
	delete(s.keyResults, id)
}

// RecordCheckIn performs the check-in triple write under one lock: the
// check-in row capturing the prior current value, the evidence rows linked
// to it, and the key result's new current value. Either all three land or
// none do.
func (s *Memory) RecordCheckIn(_ context.Context, ci model.KeyResultCheckIn, evidence []model.EvidenceInput) (model.KeyResultCheckIn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kr, exists := s.keyResults[ci.KeyResultID]
	if !exists || kr.TenantID != ci.TenantID {
		return model.KeyResultCheckIn{}, model.NewNotFoundError(
			fmt.Sprintf("key result %q not found", ci.KeyResultID),
		)
	}

	ci.PreviousValue = kr.CurrentValue
	s.checkIns[ci.ID] = ci

	for _, ev := range evidence {
		id := uuid.NewString()
		s.evidence[id] = model.Evidence{
			ID:        id,
			TenantID:  ci.TenantID,
			Ref:       model.EntityRef{Type: model.EntityKeyResult, ID: ci.KeyResultID},
			CheckInID: ci.ID,
			Title:     ev.Name,
			URL:       ev.URL,
			Type:      model.EvidenceLink,
			CreatedBy: ci.CreatedBy,
			CreatedAt: ci.CreatedAt,
		}
	}

	kr.CurrentValue = ci.Value
	kr.UpdatedAt = time.Now().UTC()
	s.keyResults[kr.ID] = kr
	return ci, nil
}

// DeleteCheckIn removes the check-in row only. The key result's current
// value is not reverted, and deleting a missing check-in is a no-op.
func (s *Memory) DeleteCheckIn(_ context.Context, tenantID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ci, exists := s.checkIns[id]
	if exists && ci.TenantID == tenantID {
		delete(s.checkIns, id)
	}
	return nil
}

// ListCheckIns returns a key result's check-ins, newest first.
func (s *Memory) ListCheckIns(_ context.Context, tenantID, keyResultID string) ([]model.KeyResultCheckIn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var checkIns []model.KeyResultCheckIn
	for _, ci := range s.checkIns {
		if ci.TenantID == tenantID && ci.KeyResultID == keyResultID {
			checkIns = append(checkIns, ci)
		}
	}
	sort.Slice(checkIns, func(i, j int) bool {
		return checkIns[i].CreatedAt.After(checkIns[j].CreatedAt)
	})
	return checkIns, nil
}

// --- Initiatives ---

// CreateInitiative persists a new initiative.
func (s *Memory) CreateInitiative(_ context.Context, in model.Initiative) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.initiatives[in.ID]; exists {
		return model.NewConflictError(fmt.Sprintf("initiative %q already exists", in.ID))
	}
	s.initiatives[in.ID] = in
	return nil
}

// GetInitiative retrieves an initiative by ID, scoped to tenant.
func (s *Memory) GetInitiative(_ context.Context, tenantID, id string) (model.Initiative, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	in, exists := s.initiatives[id]
	if !exists || in.TenantID != tenantID {
		return model.Initiative{}, model.NewNotFoundError(fmt.Sprintf("initiative %q not found", id))
	}
	return in, nil
}

// ListInitiatives returns initiatives matching the filters, newest first.
func (s *Memory) ListInitiatives(_ context.Context, tenantID string, f ListFilters) ([]model.Initiative, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	linked := map[string]bool{}
	if f.ObjectiveID != "" {
		for _, link := range s.links {
			if link.ObjectiveID == f.ObjectiveID {
				linked[link.InitiativeID] = true
			}
		}
	}

	var initiatives []model.Initiative
	for _, in := range s.initiatives {
		if in.TenantID != tenantID {
			continue
		}
		if f.CycleID != "" && in.CycleID != f.CycleID {
			continue
		}
		if f.AreaID != "" && in.AreaID != f.AreaID {
			continue
		}
		if f.OwnerID != "" && in.OwnerID != f.OwnerID {
			continue
		}
		if f.Status != "" && string(in.Status) != f.Status {
			continue
		}
		if f.Priority != "" && string(in.Priority) != f.Priority {
			continue
		}
		if f.ObjectiveID != "" && !linked[in.ID] {
			continue
		}
		if f.Query != "" && !containsFold(in.Name, f.Query) && !containsFold(in.ProblemStatement, f.Query) {
			continue
		}
		initiatives = append(initiatives, in)
	}
	sort.Slice(initiatives, func(i, j int) bool {
		return initiatives[i].CreatedAt.After(initiatives[j].CreatedAt)
	})
	return paginate(initiatives, f.Limit, f.Offset), nil
}

// UpdateInitiative persists an updated initiative.
func (s *Memory) UpdateInitiative(_ context.Context, in model.Initiative) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.initiatives[in.ID]
	if !exists || existing.TenantID != in.TenantID {
		return model.NewNotFoundError(fmt.Sprintf("initiative %q not found", in.ID))
	}
	in.UpdatedAt = time.Now().UTC()
	s.initiatives[in.ID] = in
	return nil
}

// DeleteInitiative removes the initiative, its work items, its budget items,
// and its objective links. Polymorphic rows pointing at it stay behind.
func (s *Memory) DeleteInitiative(_ context.Context, tenantID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	in, exists := s.initiatives[id]
	if !exists || in.TenantID != tenantID {
		return model.NewNotFoundError(fmt.Sprintf("initiative %q not found", id))
	}
	s.deleteInitiativeLocked(id)
	return nil
}

func (s *Memory) deleteInitiativeLocked(id string) {
	for wiID, wi := range s.workItems {
		if wi.InitiativeID == id {
			delete(s.workItems, wiID)
		}
	}
	for biID, bi := range s.budgetItems {
		if bi.InitiativeID == id {
			delete(s.budgetItems, biID)
		}
	}
	for linkID, link := range s.links {
		if link.InitiativeID == id {
			delete(s.links, linkID)
		}
	}
	delete(s.initiatives, id)
}

// LinkObjective creates an objective-initiative link. Linking the same pair
// twice is a conflict.
func (s *Memory) LinkObjective(_ context.Context, link model.ObjectiveInitiative) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.links {
		if existing.ObjectiveID == link.ObjectiveID && existing.InitiativeID == link.InitiativeID {
			return model.NewConflictError(
				fmt.Sprintf("initiative %q already linked to objective %q", link.InitiativeID, link.ObjectiveID),
			)
		}
	}
	s.links[link.ID] = link
	return nil
}

// UnlinkObjective removes an objective-initiative link by link ID.
func (s *Memory) UnlinkObjective(_ context.Context, tenantID, linkID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	link, exists := s.links[linkID]
	if !exists || link.TenantID != tenantID {
		return model.NewNotFoundError(fmt.Sprintf("link %q not found", linkID))
	}
	delete(s.links, linkID)
	return nil
}

// ListObjectiveLinks returns an initiative's objective links, oldest first.
func (s *Memory) ListObjectiveLinks(_ context.Context, tenantID, initiativeID string) ([]model.ObjectiveInitiative, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var links []model.ObjectiveInitiative
	for _, link := range s.links {
		if link.TenantID == tenantID && link.InitiativeID == initiativeID {
			links = append(links, link)
		}
	}
	sort.Slice(links, func(i, j int) bool {
		return links[i].CreatedAt.Before(links[j].CreatedAt)
	})
	return links, nil
}

// --- Work items ---

// CreateWorkItem persists a new work item.
func (s *Memory) CreateWorkItem(_ context.Context, wi model.WorkItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.workItems[wi.ID]; exists {
		return model.NewConflictError(fmt.Sprintf("work item %q already exists", wi.ID))
	}
	s.workItems[wi.ID] = wi
	return nil
}

// GetWorkItem retrieves a work item by ID, scoped to tenant.
func (s *Memory) GetWorkItem(_ context.Context, tenantID, id string) (model.WorkItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wi, exists := s.workItems[id]
	if !exists || wi.TenantID != tenantID {
		return model.WorkItem{}, model.NewNotFoundError(fmt.Sprintf("work item %q not found", id))
	}
	return wi, nil
}

// ListWorkItems returns work items matching the filters, newest first.
func (s *Memory) ListWorkItems(_ context.Context, tenantID string, f ListFilters) ([]model.WorkItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var workItems []model.WorkItem
	for _, wi := range s.workItems {
		if wi.TenantID != tenantID {
			continue
		}
		if f.InitiativeID != "" && wi.InitiativeID != f.InitiativeID {
			continue
		}
		if f.OwnerID != "" && wi.OwnerID != f.OwnerID {
			continue
		}
		if f.Status != "" && string(wi.Status) != f.Status {
			continue
		}
		if f.Priority != "" && string(wi.Priority) != f.Priority {
			continue
		}
		if f.Type != "" && string(wi.Type) != f.Type {
			continue
		}
		if f.CycleID != "" {
			parent, ok := s.initiatives[wi.InitiativeID]
			if !ok || parent.CycleID != f.CycleID {
				continue
			}
		}
		if f.Query != "" && !containsFold(wi.Title, f.Query) && !containsFold(wi.Description, f.Query) {
			continue
		}
		workItems = append(workItems, wi)
	}
	sort.Slice(workItems, func(i, j int) bool {
		return workItems[i].CreatedAt.After(workItems[j].CreatedAt)
	})
	return paginate(workItems, f.Limit, f.Offset), nil
}

// UpdateWorkItem persists an updated work item.
func (s *Memory) UpdateWorkItem(_ context.Context, wi model.WorkItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.workItems[wi.ID]
	if !exists || existing.TenantID != wi.TenantID {
		return model.NewNotFoundError(fmt.Sprintf("work item %q not found", wi.ID))
	}
	wi.UpdatedAt = time.Now().UTC()
	s.workItems[wi.ID] = wi
	return nil
}

// DeleteWorkItem removes a work item.
func (s *Memory) DeleteWorkItem(_ context.Context, tenantID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	wi, exists := s.workItems[id]
	if !exists || wi.TenantID != tenantID {
		return model.NewNotFoundError(fmt.Sprintf("work item %q not found", id))
	}
	delete(s.workItems, id)
	return nil
}

// --- Evidence ---

// CreateEvidence persists a new evidence row.
func (s *Memory) CreateEvidence(_ context.Context, ev model.Evidence) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.evidence[ev.ID]; exists {
		return model.NewConflictError(fmt.Sprintf("evidence %q already exists", ev.ID))
	}
	s.evidence[ev.ID] = ev
	return nil
}

// GetEvidence retrieves evidence by ID, scoped to tenant.
func (s *Memory) GetEvidence(_ context.Context, tenantID, id string) (model.Evidence, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ev, exists := s.evidence[id]
	if !exists || ev.TenantID != tenantID {
		return model.Evidence{}, model.NewNotFoundError(fmt.Sprintf("evidence %q not found", id))
	}
	return ev, nil
}

// ListEvidence returns evidence for a tenant, optionally narrowed to one
// polymorphic target or one check-in. Rows whose target was deleted are
// still returned.
func (s *Memory) ListEvidence(_ context.Context, tenantID string, ref model.EntityRef, checkInID string) ([]model.Evidence, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var evidence []model.Evidence
	for _, ev := range s.evidence {
		if ev.TenantID != tenantID {
			continue
		}
		if !ref.Zero() && ev.Ref != ref {
			continue
		}
		if checkInID != "" && ev.CheckInID != checkInID {
			continue
		}
		evidence = append(evidence, ev)
	}
	sort.Slice(evidence, func(i, j int) bool {
		return evidence[i].CreatedAt.After(evidence[j].CreatedAt)
	})
	return evidence, nil
}

// DeleteEvidence removes an evidence row.
func (s *Memory) DeleteEvidence(_ context.Context, tenantID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev, exists := s.evidence[id]
	if !exists || ev.TenantID != tenantID {
		return model.NewNotFoundError(fmt.Sprintf("evidence %q not found", id))
	}
	delete(s.evidence, id)
	return nil
}

// --- Risks ---

// CreateRisk persists a new risk.
func (s *Memory) CreateRisk(_ context.Context, r model.Risk) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.risks[r.ID]; exists {
		return model.NewConflictError(fmt.Sprintf("risk %q already exists", r.ID))
	}
	s.risks[r.ID] = r
	return nil
}

// GetRisk retrieves a risk by ID, scoped to tenant.
func (s *Memory) GetRisk(_ context.Context, tenantID, id string) (model.Risk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, exists := s.risks[id]
	if !exists || r.TenantID != tenantID {
		return model.Risk{}, model.NewNotFoundError(fmt.Sprintf("risk %q not found", id))
	}
	return r, nil
}

// ListRisks returns risks matching the filters, newest first.
func (s *Memory) ListRisks(_ context.Context, tenantID string, f ListFilters) ([]model.Risk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var risks []model.Risk
	for _, r := range s.risks {
		if r.TenantID != tenantID {
			continue
		}
		if f.Status != "" && string(r.Status) != f.Status {
			continue
		}
		if f.OwnerID != "" && r.OwnerID != f.OwnerID {
			continue
		}
		if f.Query != "" && !containsFold(r.Title, f.Query) && !containsFold(r.Description, f.Query) {
			continue
		}
		risks = append(risks, r)
	}
	sort.Slice(risks, func(i, j int) bool {
		return risks[i].CreatedAt.After(risks[j].CreatedAt)
	})
	return paginate(risks, f.Limit, f.Offset), nil
}

// UpdateRisk persists an updated risk.
func (s *Memory) UpdateRisk(_ context.Context, r model.Risk) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.risks[r.ID]
	if !exists || existing.TenantID != r.TenantID {
		return model.NewNotFoundError(fmt.Sprintf("risk %q not found", r.ID))
	}
	r.UpdatedAt = time.Now().UTC()
	s.risks[r.ID] = r
	return nil
}

// DeleteRisk removes a risk.
func (s *Memory) DeleteRisk(_ context.Context, tenantID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, exists := s.risks[id]
	if !exists || r.TenantID != tenantID {
		return model.NewNotFoundError(fmt.Sprintf("risk %q not found", id))
	}
	delete(s.risks, id)
	return nil
}

// --- Dependencies ---

// CreateDependency persists a new dependency edge.
func (s *Memory) CreateDependency(_ context.Context, d model.Dependency) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.dependencies[d.ID]; exists {
		return model.NewConflictError(fmt.Sprintf("dependency %q already exists", d.ID))
	}
	s.dependencies[d.ID] = d
	return nil
}

// ListDependencies returns dependency edges, optionally narrowed to edges
// touching one entity on either end.
func (s *Memory) ListDependencies(_ context.Context, tenantID string, ref model.EntityRef) ([]model.Dependency, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var deps []model.Dependency
	for _, d := range s.dependencies {
		if d.TenantID != tenantID {
			continue
		}
		if !ref.Zero() && d.From != ref && d.To != ref {
			continue
		}
		deps = append(deps, d)
	}
	sort.Slice(deps, func(i, j int) bool {
		return deps[i].CreatedAt.After(deps[j].CreatedAt)
	})
	return deps, nil
}

// DeleteDependency removes a dependency edge.
func (s *Memory) DeleteDependency(_ context.Context, tenantID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, exists := s.dependencies[id]
	if !exists || d.TenantID != tenantID {
		return model.NewNotFoundError(fmt.Sprintf("dependency %q not found", id))
	}
	delete(s.dependencies, id)
	return nil
}

// --- Budget items ---

// CreateBudgetItem persists a new budget item.
func (s *Memory) CreateBudgetItem(_ context.Context, b model.BudgetItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.budgetItems[b.ID]; exists {
		return model.NewConflictError(fmt.Sprintf("budget item %q already exists", b.ID))
	}
	s.budgetItems[b.ID] = b
	return nil
}

// GetBudgetItem retrieves a budget item by ID, scoped to tenant.
func (s *Memory) GetBudgetItem(_ context.Context, tenantID, id string) (model.BudgetItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, exists := s.budgetItems[id]
	if !exists || b.TenantID != tenantID {
		return model.BudgetItem{}, model.NewNotFoundError(fmt.Sprintf("budget item %q not found", id))
	}
	return b, nil
}

// ListBudgetItems returns the budget lines under an initiative, oldest
// first.
func (s *Memory) ListBudgetItems(_ context.Context, tenantID, initiativeID string) ([]model.BudgetItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var items []model.BudgetItem
	for _, b := range s.budgetItems {
		if b.TenantID == tenantID && b.InitiativeID == initiativeID {
			items = append(items, b)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

// UpdateBudgetItem persists an updated budget item.
func (s *Memory) UpdateBudgetItem(_ context.Context, b model.BudgetItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.budgetItems[b.ID]
	if !exists || existing.TenantID != b.TenantID {
		return model.NewNotFoundError(fmt.Sprintf("budget item %q not found", b.ID))
	}
	b.UpdatedAt = time.Now().UTC()
	s.budgetItems[b.ID] = b
	return nil
}

// DeleteBudgetItem removes a budget item.
func (s *Memory) DeleteBudgetItem(_ context.Context, tenantID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, exists := s.budgetItems[id]
	if !exists || b.TenantID != tenantID {
		return model.NewNotFoundError(fmt.Sprintf("budget item %q not found", id))
	}
	delete(s.budgetItems, id)
	return nil
}

// --- Decisions ---

// CreateDecision appends a decision to the log.
func (s *Memory) CreateDecision(_ context.Context, d model.DecisionLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.decisions[d.ID]; exists {
		return model.NewConflictError(fmt.Sprintf("decision %q already exists", d.ID))
	}
	s.decisions[d.ID] = d
	return nil
}

// GetDecision retrieves a decision by ID, scoped to tenant.
func (s *Memory) GetDecision(_ context.Context, tenantID, id string) (model.DecisionLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, exists := s.decisions[id]
	if !exists || d.TenantID != tenantID {
		return model.DecisionLog{}, model.NewNotFoundError(fmt.Sprintf("decision %q not found", id))
	}
	return d, nil
}

// ListDecisions returns logged decisions, most recent decision date first.
func (s *Memory) ListDecisions(_ context.Context, tenantID string, f ListFilters) ([]model.DecisionLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var decisions []model.DecisionLog
	for _, d := range s.decisions {
		if d.TenantID != tenantID {
			continue
		}
		if f.OwnerID != "" && d.OwnerID != f.OwnerID {
			continue
		}
		if f.Query != "" && !containsFold(d.Title, f.Query) && !containsFold(d.Decision, f.Query) {
			continue
		}
		decisions = append(decisions, d)
	}
	sort.Slice(decisions, func(i, j int) bool {
		if !decisions[i].DecisionDate.Equal(decisions[j].DecisionDate) {
			return decisions[i].DecisionDate.After(decisions[j].DecisionDate)
		}
		return decisions[i].CreatedAt.After(decisions[j].CreatedAt)
	})
	return paginate(decisions, f.Limit, f.Offset), nil
}

// DeleteDecision removes a decision from the log.
func (s *Memory) DeleteDecision(_ context.Context, tenantID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, exists := s.decisions[id]
	if !exists || d.TenantID != tenantID {
		return model.NewNotFoundError(fmt.Sprintf("decision %q not found", id))
	}
	delete(s.decisions, id)
	return nil
}

// --- Org ---

// CreateArea persists a new area.
func (s *Memory) CreateArea(_ context.Context, a model.Area) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.areas[a.ID]; exists {
		return model.NewConflictError(fmt.Sprintf("area %q already exists", a.ID))
	}
	s.areas[a.ID] = a
	return nil
}

// GetArea retrieves an area by ID, scoped to tenant.
func (s *Memory) GetArea(_ context.Context, tenantID, id string) (model.Area, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, exists := s.areas[id]
	if !exists || a.TenantID != tenantID {
		return model.Area{}, model.NewNotFoundError(fmt.Sprintf("area %q not found", id))
	}
	return a, nil
}

// ListAreas returns a tenant's areas, sorted by name.
func (s *Memory) ListAreas(_ context.Context, tenantID string) ([]model.Area, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var areas []model.Area
	for _, a := range s.areas {
		if a.TenantID == tenantID {
			areas = append(areas, a)
		}
	}
	sort.Slice(areas, func(i, j int) bool {
		return areas[i].Name < areas[j].Name
	})
	return areas, nil
}

// UpdateArea persists an updated area.
func (s *Memory) UpdateArea(_ context.Context, a model.Area) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.areas[a.ID]
	if !exists || existing.TenantID != a.TenantID {
		return model.NewNotFoundError(fmt.Sprintf("area %q not found", a.ID))
	}
	a.UpdatedAt = time.Now().UTC()
	s.areas[a.ID] = a
	return nil
}

// DeleteArea removes an area. Entities referencing it keep the stored id.
func (s *Memory) DeleteArea(_ context.Context, tenantID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, exists := s.areas[id]
	if !exists || a.TenantID != tenantID {
		return model.NewNotFoundError(fmt.Sprintf("area %q not found", id))
	}
	delete(s.areas, id)
	return nil
}

// CreateOwner persists a new owner.
func (s *Memory) CreateOwner(_ context.Context, o model.Owner) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.owners[o.ID]; exists {
		return model.NewConflictError(fmt.Sprintf("owner %q already exists", o.ID))
	}
	s.owners[o.ID] = o
	return nil
}

// GetOwner retrieves an owner by ID, scoped to tenant.
func (s *Memory) GetOwner(_ context.Context, tenantID, id string) (model.Owner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, exists := s.owners[id]
	if !exists || o.TenantID != tenantID {
		return model.Owner{}, model.NewNotFoundError(fmt.Sprintf("owner %q not found", id))
	}
	return o, nil
}

// ListOwners returns a tenant's owners, sorted by name.
func (s *Memory) ListOwners(_ context.Context, tenantID string) ([]model.Owner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var owners []model.Owner
	for _, o := range s.owners {
		if o.TenantID == tenantID {
			owners = append(owners, o)
		}
	}
	sort.Slice(owners, func(i, j int) bool {
		return owners[i].Name < owners[j].Name
	})
	return owners, nil
}

// UpdateOwner persists an updated owner.
func (s *Memory) UpdateOwner(_ context.Context, o model.Owner) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.owners[o.ID]
	if !exists || existing.TenantID != o.TenantID {
		return model.NewNotFoundError(fmt.Sprintf("owner %q not found", o.ID))
	}
	o.UpdatedAt = time.Now().UTC()
	s.owners[o.ID] = o
	return nil
}

// DeleteOwner removes an owner. Entities referencing it keep the stored id.
func (s *Memory) DeleteOwner(_ context.Context, tenantID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, exists := s.owners[id]
	if !exists || o.TenantID != tenantID {
		return model.NewNotFoundError(fmt.Sprintf("owner %q not found", id))
	}
	delete(s.owners, id)
	return nil
}
