package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/oselo/compass/internal/store"
	"github.com/oselo/compass/model"
)

// Dependencies manages dependency edges between entities. Edges are stored
// as declared; chains are not walked and cycles are not rejected.
type Dependencies struct {
	store store.Store
}

// DependencyInput carries the fields of a dependency edge.
type DependencyInput struct {
	From        model.EntityRef      `json:"from"`
	To          model.EntityRef      `json:"to"`
	Type        model.DependencyType `json:"type"`
	Description string               `json:"description"`
}

func (in DependencyInput) validate() error {
	var f fieldErrors
	validRef(&f, "from", in.From)
	validRef(&f, "to", in.To)
	if !in.Type.Valid() {
		f.add("type", "invalid", fmt.Sprintf("unknown dependency type %q", in.Type))
	}
	if in.From == in.To && !in.From.Zero() {
		f.add("to", "invalid", "an entity cannot depend on itself")
	}
	return f.err()
}

// Create records a dependency edge.
func (s *Dependencies) Create(ctx context.Context, rctx *model.RequestContext, in DependencyInput) (model.Dependency, error) {
	if err := in.validate(); err != nil {
		return model.Dependency{}, err
	}

	d := model.Dependency{
		ID:          uuid.New().String(),
		TenantID:    rctx.TenantID,
		From:        in.From,
		To:          in.To,
		Type:        in.Type,
		Description: in.Description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.store.CreateDependency(ctx, d); err != nil {
		return model.Dependency{}, err
	}
	return d, nil
}

// List returns dependency edges, optionally narrowed to edges touching one
// entity on either end.
func (s *Dependencies) List(ctx context.Context, rctx *model.RequestContext, ref model.EntityRef) ([]model.Dependency, error) {
	return s.store.ListDependencies(ctx, rctx.TenantID, ref)
}

// Delete removes a dependency edge.
func (s *Dependencies) Delete(ctx context.Context, rctx *model.RequestContext, id string) error {
	return s.store.DeleteDependency(ctx, rctx.TenantID, id)
}
