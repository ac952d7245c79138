package tracker

import (
	"context"

	"github.com/oselo/compass/internal/store"
	"github.com/oselo/compass/model"
)

// Resolver turns polymorphic entity refs into display labels. Refs are
// allowed to dangle after their target is deleted, so a missing target
// resolves to an "Unknown <type>" placeholder rather than an error. Any
// other store failure is surfaced to the caller.
type Resolver struct {
	store store.Store
}

// NewResolver creates a resolver over the given store.
func NewResolver(st store.Store) *Resolver {
	return &Resolver{store: st}
}

// ResolvedRef is a ref together with its display label.
type ResolvedRef struct {
	model.EntityRef
	Label string `json:"label"`
}

// Resolve returns the display label for a ref: the target's title or name,
// or the unknown placeholder when the target does not exist.
func (r *Resolver) Resolve(ctx context.Context, tenantID string, ref model.EntityRef) (string, error) {
	switch ref.Type {
	case model.EntityObjective:
		o, err := r.store.GetObjective(ctx, tenantID, ref.ID)
		return resolved(ref, o.Title, err)
	case model.EntityKeyResult:
		kr, err := r.store.GetKeyResult(ctx, tenantID, ref.ID)
		return resolved(ref, kr.Title, err)
	case model.EntityInitiative:
		in, err := r.store.GetInitiative(ctx, tenantID, ref.ID)
		return resolved(ref, in.Name, err)
	case model.EntityWorkItem:
		wi, err := r.store.GetWorkItem(ctx, tenantID, ref.ID)
		return resolved(ref, wi.Title, err)
	}
	return ref.UnknownLabel(), nil
}

func resolved(ref model.EntityRef, label string, err error) (string, error) {
	if err != nil {
		if model.IsNotFound(err) {
			return ref.UnknownLabel(), nil
		}
		return "", err
	}
	return label, nil
}

// ResolveAll labels a batch of refs, deduplicating lookups.
func (r *Resolver) ResolveAll(ctx context.Context, tenantID string, refs []model.EntityRef) ([]ResolvedRef, error) {
	labels := make(map[model.EntityRef]string, len(refs))
	resolved := make([]ResolvedRef, 0, len(refs))
	for _, ref := range refs {
		label, ok := labels[ref]
		if !ok {
			var err error
			label, err = r.Resolve(ctx, tenantID, ref)
			if err != nil {
				return nil, err
			}
			labels[ref] = label
		}
		resolved = append(resolved, ResolvedRef{EntityRef: ref, Label: label})
	}
	return resolved, nil
}

// OwnerName resolves an owner id to a display name, with the same dangling
// tolerance as entity refs.
func (r *Resolver) OwnerName(ctx context.Context, tenantID, ownerID string) (string, error) {
	if ownerID == "" {
		return "", nil
	}
	o, err := r.store.GetOwner(ctx, tenantID, ownerID)
	if err != nil {
		if model.IsNotFound(err) {
			return "Unknown owner", nil
		}
		return "", err
	}
	return o.Name, nil
}

// AreaName resolves an area id to a display name, with the same dangling
// tolerance as entity refs.
func (r *Resolver) AreaName(ctx context.Context, tenantID, areaID string) (string, error) {
	if areaID == "" {
		return "", nil
	}
	a, err := r.store.GetArea(ctx, tenantID, areaID)
	if err != nil {
		if model.IsNotFound(err) {
			return "Unknown area", nil
		}
		return "", err
	}
	return a.Name, nil
}
