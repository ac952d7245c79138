package tracker

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/oselo/compass/internal/store"
	"github.com/oselo/compass/model"
)

// Org manages the organizational entities behind the admin screens: areas
// and owners.
type Org struct {
	store store.Store
}

// AreaInput carries the writable fields of an area.
type AreaInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// OwnerInput carries the writable fields of an owner.
type OwnerInput struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	SubjectID string `json:"subject_id"`
	AreaID    string `json:"area_id"`
}

// CreateArea persists a new area.
func (s *Org) CreateArea(ctx context.Context, rctx *model.RequestContext, in AreaInput) (model.Area, error) {
	var f fieldErrors
	f.required("name", in.Name)
	if err := f.err(); err != nil {
		return model.Area{}, err
	}

	now := time.Now().UTC()
	a := model.Area{
		ID:          uuid.New().String(),
		TenantID:    rctx.TenantID,
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateArea(ctx, a); err != nil {
		return model.Area{}, err
	}
	return a, nil
}

// GetArea retrieves an area.
func (s *Org) GetArea(ctx context.Context, rctx *model.RequestContext, id string) (model.Area, error) {
	return s.store.GetArea(ctx, rctx.TenantID, id)
}

// ListAreas returns the tenant's areas.
func (s *Org) ListAreas(ctx context.Context, rctx *model.RequestContext) ([]model.Area, error) {
	return s.store.ListAreas(ctx, rctx.TenantID)
}

// UpdateArea replaces an area's writable fields.
func (s *Org) UpdateArea(ctx context.Context, rctx *model.RequestContext, id string, in AreaInput) (model.Area, error) {
	var f fieldErrors
	f.required("name", in.Name)
	if err := f.err(); err != nil {
		return model.Area{}, err
	}

	a, err := s.store.GetArea(ctx, rctx.TenantID, id)
	if err != nil {
		return model.Area{}, err
	}
	a.Name = in.Name
	a.Description = in.Description
	if err := s.store.UpdateArea(ctx, a); err != nil {
		return model.Area{}, err
	}
	return s.store.GetArea(ctx, rctx.TenantID, id)
}

// DeleteArea removes an area. Entities filed under it keep the stored id
// and display an unknown label once it is gone.
func (s *Org) DeleteArea(ctx context.Context, rctx *model.RequestContext, id string) error {
	return s.store.DeleteArea(ctx, rctx.TenantID, id)
}

// CreateOwner persists a new owner.
func (s *Org) CreateOwner(ctx context.Context, rctx *model.RequestContext, in OwnerInput) (model.Owner, error) {
	var f fieldErrors
	f.required("name", in.Name)
	if err := f.err(); err != nil {
		return model.Owner{}, err
	}

	now := time.Now().UTC()
	o := model.Owner{
		ID:        uuid.New().String(),
		TenantID:  rctx.TenantID,
		Name:      in.Name,
		Email:     in.Email,
		Role:      in.Role,
		SubjectID: in.SubjectID,
		AreaID:    in.AreaID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateOwner(ctx, o); err != nil {
		return model.Owner{}, err
	}
	return o, nil
}

// GetOwner retrieves an owner.
func (s *Org) GetOwner(ctx context.Context, rctx *model.RequestContext, id string) (model.Owner, error) {
	return s.store.GetOwner(ctx, rctx.TenantID, id)
}

// ListOwners returns the tenant's owners.
func (s *Org) ListOwners(ctx context.Context, rctx *model.RequestContext) ([]model.Owner, error) {
	return s.store.ListOwners(ctx, rctx.TenantID)
}

// UpdateOwner replaces an owner's writable fields.
func (s *Org) UpdateOwner(ctx context.Context, rctx *model.RequestContext, id string, in OwnerInput) (model.Owner, error) {
	var f fieldErrors
	f.required("name", in.Name)
	if err := f.err(); err != nil {
		return model.Owner{}, err
	}

	o, err := s.store.GetOwner(ctx, rctx.TenantID, id)
	if err != nil {
		return model.Owner{}, err
	}
	o.Name = in.Name
	o.Email = in.Email
	o.Role = in.Role
	o.SubjectID = in.SubjectID
	o.AreaID = in.AreaID
	if err := s.store.UpdateOwner(ctx, o); err != nil {
		return model.Owner{}, err
	}
	return s.store.GetOwner(ctx, rctx.TenantID, id)
}

// DeleteOwner removes an owner. Entities referencing it keep the stored id
// and display an unknown label once it is gone.
func (s *Org) DeleteOwner(ctx context.Context, rctx *model.RequestContext, id string) error {
	return s.store.DeleteOwner(ctx, rctx.TenantID, id)
}
