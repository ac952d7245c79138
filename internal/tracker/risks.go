package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/oselo/compass/internal/store"
	"github.com/oselo/compass/model"
)

// Risks manages risk mutations.
type Risks struct {
	store store.Store
}

// RiskInput carries the writable fields of a risk.
type RiskInput struct {
	Ref         model.EntityRef  `json:"ref"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Probability int              `json:"probability"`
	Impact      int              `json:"impact"`
	Status      model.RiskStatus `json:"status"`
	Mitigation  string           `json:"mitigation"`
	OwnerID     string           `json:"owner_id"`
}

func (in RiskInput) validate() error {
	var f fieldErrors
	f.required("title", in.Title)
	validRef(&f, "ref", in.Ref)
	f.intRange("probability", in.Probability, 1, 5)
	f.intRange("impact", in.Impact, 1, 5)
	if !in.Status.Valid() {
		f.add("status", "invalid", fmt.Sprintf("unknown risk status %q", in.Status))
	}
	return f.err()
}

// Create records a risk against an entity.
func (s *Risks) Create(ctx context.Context, rctx *model.RequestContext, in RiskInput) (model.Risk, error) {
	if err := in.validate(); err != nil {
		return model.Risk{}, err
	}

	now := time.Now().UTC()
	r := model.Risk{
		ID:          uuid.New().String(),
		TenantID:    rctx.TenantID,
		Ref:         in.Ref,
		Title:       in.Title,
		Description: in.Description,
		Probability: in.Probability,
		Impact:      in.Impact,
		Status:      in.Status,
		Mitigation:  in.Mitigation,
		OwnerID:     in.OwnerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateRisk(ctx, r); err != nil {
		return model.Risk{}, err
	}
	return r, nil
}

// Get retrieves a risk.
func (s *Risks) Get(ctx context.Context, rctx *model.RequestContext, id string) (model.Risk, error) {
	return s.store.GetRisk(ctx, rctx.TenantID, id)
}

// List returns risks matching the filters.
func (s *Risks) List(ctx context.Context, rctx *model.RequestContext, f store.ListFilters) ([]model.Risk, error) {
	return s.store.ListRisks(ctx, rctx.TenantID, f)
}

// Update replaces a risk's writable fields. The ref is immutable.
func (s *Risks) Update(ctx context.Context, rctx *model.RequestContext, id string, in RiskInput) (model.Risk, error) {
	r, err := s.store.GetRisk(ctx, rctx.TenantID, id)
	if err != nil {
		return model.Risk{}, err
	}
	in.Ref = r.Ref
	if err := in.validate(); err != nil {
		return model.Risk{}, err
	}

	r.Title = in.Title
	r.Description = in.Description
	r.Probability = in.Probability
	r.Impact = in.Impact
	r.Status = in.Status
	r.Mitigation = in.Mitigation
	r.OwnerID = in.OwnerID
	if err := s.store.UpdateRisk(ctx, r); err != nil {
		return model.Risk{}, err
	}
	return s.store.GetRisk(ctx, rctx.TenantID, id)
}

// Delete removes a risk.
func (s *Risks) Delete(ctx context.Context, rctx *model.RequestContext, id string) error {
	return s.store.DeleteRisk(ctx, rctx.TenantID, id)
}
