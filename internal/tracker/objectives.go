package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/oselo/compass/internal/store"
	"github.com/oselo/compass/model"
)

// Objectives manages objective mutations.
type Objectives struct {
	store store.Store
}

// ObjectiveInput carries the writable fields of an objective.
type ObjectiveInput struct {
	CycleID     string              `json:"cycle_id"`
	AreaID      string              `json:"area_id"`
	OwnerID     string              `json:"owner_id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Type        model.ObjectiveType `json:"type"`
	Status      model.WorkStatus    `json:"status"`
	Priority    model.Priority      `json:"priority"`
	Confidence  int                 `json:"confidence"`
}

func (in ObjectiveInput) validate() error {
	var f fieldErrors
	f.required("title", in.Title)
	f.required("cycle_id", in.CycleID)
	if !in.Type.Valid() {
		f.add("type", "invalid", fmt.Sprintf("unknown objective type %q", in.Type))
	}
	if !in.Status.Valid() {
		f.add("status", "invalid", fmt.Sprintf("unknown status %q", in.Status))
	}
	if !in.Priority.Valid() {
		f.add("priority", "invalid", fmt.Sprintf("unknown priority %q", in.Priority))
	}
	f.intRange("confidence", in.Confidence, 0, 100)
	return f.err()
}

// Create persists a new objective under the named cycle.
func (s *Objectives) Create(ctx context.Context, rctx *model.RequestContext, in ObjectiveInput) (model.Objective, error) {
	if err := in.validate(); err != nil {
		return model.Objective{}, err
	}
	if _, err := s.store.GetCycle(ctx, rctx.TenantID, in.CycleID); err != nil {
		return model.Objective{}, err
	}

	now := time.Now().UTC()
	o := model.Objective{
		ID:          uuid.New().String(),
		TenantID:    rctx.TenantID,
		CycleID:     in.CycleID,
		AreaID:      in.AreaID,
		OwnerID:     in.OwnerID,
		Title:       in.Title,
		Description: in.Description,
		Type:        in.Type,
		Status:      in.Status,
		Priority:    in.Priority,
		Confidence:  in.Confidence,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateObjective(ctx, o); err != nil {
		return model.Objective{}, err
	}
	return o, nil
}

// Get retrieves an objective.
func (s *Objectives) Get(ctx context.Context, rctx *model.RequestContext, id string) (model.Objective, error) {
	return s.store.GetObjective(ctx, rctx.TenantID, id)
}

// List returns objectives matching the filters.
func (s *Objectives) List(ctx context.Context, rctx *model.RequestContext, f store.ListFilters) ([]model.Objective, error) {
	return s.store.ListObjectives(ctx, rctx.TenantID, f)
}

// Update replaces an objective's writable fields. The objective cannot move
// to another cycle.
func (s *Objectives) Update(ctx context.Context, rctx *model.RequestContext, id string, in ObjectiveInput) (model.Objective, error) {
	o, err := s.store.GetObjective(ctx, rctx.TenantID, id)
	if err != nil {
		return model.Objective{}, err
	}
	in.CycleID = o.CycleID
	if err := in.validate(); err != nil {
		return model.Objective{}, err
	}

	o.AreaID = in.AreaID
	o.OwnerID = in.OwnerID
	o.Title = in.Title
	o.Description = in.Description
	o.Type = in.Type
	o.Status = in.Status
	o.Priority = in.Priority
	o.Confidence = in.Confidence
	if err := s.store.UpdateObjective(ctx, o); err != nil {
		return model.Objective{}, err
	}
	return s.store.GetObjective(ctx, rctx.TenantID, id)
}

// Delete removes the objective, its key results, their check-ins, and its
// initiative links. Evidence, risks, dependencies, and decisions pointing
// at it are left dangling and resolve to an unknown label afterwards.
func (s *Objectives) Delete(ctx context.Context, rctx *model.RequestContext, id string) error {
	return s.store.DeleteObjective(ctx, rctx.TenantID, id)
}
