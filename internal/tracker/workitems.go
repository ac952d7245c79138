package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/oselo/compass/internal/store"
	"github.com/oselo/compass/model"
)

// WorkItems manages work item mutations.
type WorkItems struct {
	store store.Store
}

// WorkItemInput carries the writable fields of a work item.
type WorkItemInput struct {
	InitiativeID   string               `json:"initiative_id"`
	OwnerID        string               `json:"owner_id"`
	Title          string               `json:"title"`
	Description    string               `json:"description"`
	Type           model.WorkItemType   `json:"type"`
	Status         model.WorkItemStatus `json:"status"`
	Priority       model.Priority       `json:"priority"`
	EstimatedHours float64              `json:"estimated_hours"`
	ActualHours    float64              `json:"actual_hours"`
}

func (in WorkItemInput) validate() error {
	var f fieldErrors
	f.required("title", in.Title)
	f.required("initiative_id", in.InitiativeID)
	if !in.Type.Valid() {
		f.add("type", "invalid", fmt.Sprintf("unknown work item type %q", in.Type))
	}
	if !in.Status.Valid() {
		f.add("status", "invalid", fmt.Sprintf("unknown work item status %q", in.Status))
	}
	if !in.Priority.Valid() {
		f.add("priority", "invalid", fmt.Sprintf("unknown priority %q", in.Priority))
	}
	if in.EstimatedHours < 0 {
		f.add("estimated_hours", "out_of_range", "estimated_hours must not be negative")
	}
	if in.ActualHours < 0 {
		f.add("actual_hours", "out_of_range", "actual_hours must not be negative")
	}
	return f.err()
}

// Create persists a new work item under the named initiative. CompletedAt
// is stamped when the item is created already completed.
func (s *WorkItems) Create(ctx context.Context, rctx *model.RequestContext, in WorkItemInput) (model.WorkItem, error) {
	if err := in.validate(); err != nil {
		return model.WorkItem{}, err
	}
	if _, err := s.store.GetInitiative(ctx, rctx.TenantID, in.InitiativeID); err != nil {
		return model.WorkItem{}, err
	}

	now := time.Now().UTC()
	wi := model.WorkItem{
		ID:             uuid.New().String(),
		TenantID:       rctx.TenantID,
		InitiativeID:   in.InitiativeID,
		OwnerID:        in.OwnerID,
		Title:          in.Title,
		Description:    in.Description,
		Type:           in.Type,
		Status:         in.Status,
		Priority:       in.Priority,
		EstimatedHours: in.EstimatedHours,
		ActualHours:    in.ActualHours,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if wi.Status == model.WorkItemCompleted {
		wi.CompletedAt = &now
	}
	if err := s.store.CreateWorkItem(ctx, wi); err != nil {
		return model.WorkItem{}, err
	}
	return wi, nil
}

// Get retrieves a work item.
func (s *WorkItems) Get(ctx context.Context, rctx *model.RequestContext, id string) (model.WorkItem, error) {
	return s.store.GetWorkItem(ctx, rctx.TenantID, id)
}

// List returns work items matching the filters.
func (s *WorkItems) List(ctx context.Context, rctx *model.RequestContext, f store.ListFilters) ([]model.WorkItem, error) {
	return s.store.ListWorkItems(ctx, rctx.TenantID, f)
}

// Update replaces a work item's writable fields. CompletedAt is set exactly
// while the status is completed: it is stamped on the transition into
// completed and cleared on the transition out.
func (s *WorkItems) Update(ctx context.Context, rctx *model.RequestContext, id string, in WorkItemInput) (model.WorkItem, error) {
	wi, err := s.store.GetWorkItem(ctx, rctx.TenantID, id)
	if err != nil {
		return model.WorkItem{}, err
	}
	in.InitiativeID = wi.InitiativeID
	if err := in.validate(); err != nil {
		return model.WorkItem{}, err
	}

	wi.OwnerID = in.OwnerID
	wi.Title = in.Title
	wi.Description = in.Description
	wi.Type = in.Type
	wi.Priority = in.Priority
	wi.EstimatedHours = in.EstimatedHours
	wi.ActualHours = in.ActualHours

	switch {
	case in.Status == model.WorkItemCompleted && wi.Status != model.WorkItemCompleted:
		now := time.Now().UTC()
		wi.CompletedAt = &now
	case in.Status != model.WorkItemCompleted:
		wi.CompletedAt = nil
	}
	wi.Status = in.Status

	if err := s.store.UpdateWorkItem(ctx, wi); err != nil {
		return model.WorkItem{}, err
	}
	return s.store.GetWorkItem(ctx, rctx.TenantID, id)
}

// Delete removes a work item.
func (s *WorkItems) Delete(ctx context.Context, rctx *model.RequestContext, id string) error {
	return s.store.DeleteWorkItem(ctx, rctx.TenantID, id)
}
