package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/oselo/compass/internal/store"
	"github.com/oselo/compass/model"
)

// Initiatives manages initiative mutations and their objective links.
type Initiatives struct {
	store store.Store
}

// InitiativeInput carries the writable fields of an initiative.
type InitiativeInput struct {
	CycleID          string           `json:"cycle_id"`
	AreaID           string           `json:"area_id"`
	OwnerID          string           `json:"owner_id"`
	Name             string           `json:"name"`
	ProblemStatement string           `json:"problem_statement"`
	ExpectedOutcome  string           `json:"expected_outcome"`
	Status           model.WorkStatus `json:"status"`
	Priority         model.Priority   `json:"priority"`
	Effort           int              `json:"effort"`
	Impact           int              `json:"impact"`
	DueDate          *time.Time       `json:"due_date"`
}

func (in InitiativeInput) validate() error {
	var f fieldErrors
	f.required("name", in.Name)
	f.required("cycle_id", in.CycleID)
	if !in.Status.Valid() {
		f.add("status", "invalid", fmt.Sprintf("unknown status %q", in.Status))
	}
	if !in.Priority.Valid() {
		f.add("priority", "invalid", fmt.Sprintf("unknown priority %q", in.Priority))
	}
	return f.err()
}

// LinkInput attaches an initiative to an objective with a relation type and
// a contribution weight.
type LinkInput struct {
	ObjectiveID  string             `json:"objective_id"`
	RelationType model.RelationType `json:"relation_type"`
	Weight       float64            `json:"weight"`
}

func (in LinkInput) validate() error {
	var f fieldErrors
	f.required("objective_id", in.ObjectiveID)
	if !in.RelationType.Valid() {
		f.add("relation_type", "invalid", fmt.Sprintf("unknown relation type %q", in.RelationType))
	}
	if in.Weight < 0 || in.Weight > 1 {
		f.add("weight", "out_of_range", "weight must be between 0 and 1")
	}
	return f.err()
}

// Create persists a new initiative under the named cycle.
func (s *Initiatives) Create(ctx context.Context, rctx *model.RequestContext, in InitiativeInput) (model.Initiative, error) {
	if err := in.validate(); err != nil {
		return model.Initiative{}, err
	}
	if _, err := s.store.GetCycle(ctx, rctx.TenantID, in.CycleID); err != nil {
		return model.Initiative{}, err
	}

	now := time.Now().UTC()
	init := model.Initiative{
		ID:               uuid.New().String(),
		TenantID:         rctx.TenantID,
		CycleID:          in.CycleID,
		AreaID:           in.AreaID,
		OwnerID:          in.OwnerID,
		Name:             in.Name,
		ProblemStatement: in.ProblemStatement,
		ExpectedOutcome:  in.ExpectedOutcome,
		Status:           in.Status,
		Priority:         in.Priority,
		Effort:           in.Effort,
		Impact:           in.Impact,
		DueDate:          in.DueDate,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.store.CreateInitiative(ctx, init); err != nil {
		return model.Initiative{}, err
	}
	return init, nil
}

// Get retrieves an initiative.
func (s *Initiatives) Get(ctx context.Context, rctx *model.RequestContext, id string) (model.Initiative, error) {
	return s.store.GetInitiative(ctx, rctx.TenantID, id)
}

// List returns initiatives matching the filters.
func (s *Initiatives) List(ctx context.Context, rctx *model.RequestContext, f store.ListFilters) ([]model.Initiative, error) {
	return s.store.ListInitiatives(ctx, rctx.TenantID, f)
}

// Update replaces an initiative's writable fields. The initiative cannot
// move to another cycle.
func (s *Initiatives) Update(ctx context.Context, rctx *model.RequestContext, id string, in InitiativeInput) (model.Initiative, error) {
	init, err := s.store.GetInitiative(ctx, rctx.TenantID, id)
	if err != nil {
		return model.Initiative{}, err
	}
	in.CycleID = init.CycleID
	if err := in.validate(); err != nil {
		return model.Initiative{}, err
	}

	init.AreaID = in.AreaID
	init.OwnerID = in.OwnerID
	init.Name = in.Name
	init.ProblemStatement = in.ProblemStatement
	init.ExpectedOutcome = in.ExpectedOutcome
	init.Status = in.Status
	init.Priority = in.Priority
	init.Effort = in.Effort
	init.Impact = in.Impact
	init.DueDate = in.DueDate
	if err := s.store.UpdateInitiative(ctx, init); err != nil {
		return model.Initiative{}, err
	}
	return s.store.GetInitiative(ctx, rctx.TenantID, id)
}

// Delete removes the initiative, its work items, its budget items, and its
// objective links. Evidence, risks, dependencies, and decisions pointing at
// it are left dangling and resolve to an unknown label afterwards.
func (s *Initiatives) Delete(ctx context.Context, rctx *model.RequestContext, id string) error {
	return s.store.DeleteInitiative(ctx, rctx.TenantID, id)
}

// Link attaches the initiative to an objective. Both ends must exist and
// the pair may only be linked once.
func (s *Initiatives) Link(ctx context.Context, rctx *model.RequestContext, initiativeID string, in LinkInput) (model.ObjectiveInitiative, error) {
	if err := in.validate(); err != nil {
		return model.ObjectiveInitiative{}, err
	}
	if _, err := s.store.GetInitiative(ctx, rctx.TenantID, initiativeID); err != nil {
		return model.ObjectiveInitiative{}, err
	}
	if _, err := s.store.GetObjective(ctx, rctx.TenantID, in.ObjectiveID); err != nil {
		return model.ObjectiveInitiative{}, err
	}

	link := model.ObjectiveInitiative{
		ID:           uuid.New().String(),
		TenantID:     rctx.TenantID,
		ObjectiveID:  in.ObjectiveID,
		InitiativeID: initiativeID,
		RelationType: in.RelationType,
		Weight:       in.Weight,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.LinkObjective(ctx, link); err != nil {
		return model.ObjectiveInitiative{}, err
	}
	return link, nil
}

// Unlink removes an objective link by its link id.
func (s *Initiatives) Unlink(ctx context.Context, rctx *model.RequestContext, linkID string) error {
	return s.store.UnlinkObjective(ctx, rctx.TenantID, linkID)
}

// Links returns an initiative's objective links.
func (s *Initiatives) Links(ctx context.Context, rctx *model.RequestContext, initiativeID string) ([]model.ObjectiveInitiative, error) {
	if _, err := s.store.GetInitiative(ctx, rctx.TenantID, initiativeID); err != nil {
		return nil, err
	}
	return s.store.ListObjectiveLinks(ctx, rctx.TenantID, initiativeID)
}
