package tracker

import (
	"context"
	"errors"
	"testing"

	"github.com/oselo/compass/internal/store"
	"github.com/oselo/compass/model"
)

func TestResolveLiveRefs(t *testing.T) {
	svc, _ := testServices(t)
	ctx := context.Background()
	rctx := testRequestContext()

	c := createCycle(t, svc, "Q1")
	o, err := svc.Objectives.Create(ctx, rctx, ObjectiveInput{
		CycleID:  c.ID,
		Title:    "Reduce churn",
		Type:     model.ObjectiveTactical,
		Status:   model.StatusOnTrack,
		Priority: model.PriorityMedium,
	})
	if err != nil {
		t.Fatalf("Objectives.Create: %v", err)
	}
	in, err := svc.Initiatives.Create(ctx, rctx, InitiativeInput{
		CycleID:  c.ID,
		Name:     "Onboarding revamp",
		Status:   model.StatusOnTrack,
		Priority: model.PriorityMedium,
	})
	if err != nil {
		t.Fatalf("Initiatives.Create: %v", err)
	}

	got, err := svc.Resolver.Resolve(ctx, rctx.TenantID, model.EntityRef{Type: model.EntityObjective, ID: o.ID})
	if err != nil {
		t.Fatalf("Resolve(objective): %v", err)
	}
	if got != "Reduce churn" {
		t.Errorf("objective label = %q, want %q", got, "Reduce churn")
	}
	got, err = svc.Resolver.Resolve(ctx, rctx.TenantID, model.EntityRef{Type: model.EntityInitiative, ID: in.ID})
	if err != nil {
		t.Fatalf("Resolve(initiative): %v", err)
	}
	if got != "Onboarding revamp" {
		t.Errorf("initiative label = %q, want %q", got, "Onboarding revamp")
	}
}

func TestResolveDanglingRef(t *testing.T) {
	svc, _ := testServices(t)
	ctx := context.Background()
	rctx := testRequestContext()

	c := createCycle(t, svc, "Q1")
	o, err := svc.Objectives.Create(ctx, rctx, ObjectiveInput{
		CycleID:  c.ID,
		Title:    "Doomed objective",
		Type:     model.ObjectiveStrategic,
		Status:   model.StatusOnTrack,
		Priority: model.PriorityLow,
	})
	if err != nil {
		t.Fatalf("Objectives.Create: %v", err)
	}
	ref := model.EntityRef{Type: model.EntityObjective, ID: o.ID}

	r, err := svc.Risks.Create(ctx, rctx, RiskInput{
		Ref: ref, Title: "Key dependency slips",
		Probability: 3, Impact: 4, Status: model.RiskOpen,
	})
	if err != nil {
		t.Fatalf("Risks.Create: %v", err)
	}

	if err := svc.Objectives.Delete(ctx, rctx, o.ID); err != nil {
		t.Fatalf("Objectives.Delete: %v", err)
	}

	// The risk survives and its ref resolves to a placeholder, not an error.
	if _, err := svc.Risks.Get(ctx, rctx, r.ID); err != nil {
		t.Fatalf("risk should survive target delete: %v", err)
	}
	got, err := svc.Resolver.Resolve(ctx, rctx.TenantID, ref)
	if err != nil {
		t.Fatalf("Resolve(dangling): %v", err)
	}
	if got != "Unknown objective" {
		t.Errorf("dangling label = %q, want %q", got, "Unknown objective")
	}
}

func TestResolveUnknownType(t *testing.T) {
	svc, _ := testServices(t)
	got, err := svc.Resolver.Resolve(context.Background(), "tenant-1", model.EntityRef{Type: "mystery", ID: "x"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != "Unknown" {
		t.Errorf("label = %q, want %q", got, "Unknown")
	}
}

// failingStore wraps the memory store and makes objective lookups fail
// with a non-NotFound error.
type failingStore struct {
	*store.Memory
	err error
}

func (f *failingStore) GetObjective(context.Context, string, string) (model.Objective, error) {
	return model.Objective{}, f.err
}

func TestResolveSurfacesStoreErrors(t *testing.T) {
	storeErr := errors.New("connection reset")
	resolver := NewResolver(&failingStore{Memory: store.NewMemory(), err: storeErr})

	_, err := resolver.Resolve(context.Background(), "tenant-1", model.EntityRef{Type: model.EntityObjective, ID: "o1"})
	if !errors.Is(err, storeErr) {
		t.Fatalf("Resolve error = %v, want %v", err, storeErr)
	}
}

func TestResolveAllDeduplicates(t *testing.T) {
	svc, _ := testServices(t)
	ctx := context.Background()
	rctx := testRequestContext()

	ref := model.EntityRef{Type: model.EntityKeyResult, ID: "gone"}
	resolved, err := svc.Resolver.ResolveAll(ctx, rctx.TenantID, []model.EntityRef{ref, ref})
	if err != nil {
		t.Fatalf("ResolveAll: %v", err)
	}
	if len(resolved) != 2 {
		t.Fatalf("got %d resolved refs, want 2", len(resolved))
	}
	for _, r := range resolved {
		if r.Label != "Unknown key result" {
			t.Errorf("label = %q, want %q", r.Label, "Unknown key result")
		}
	}
}

func TestOwnerAndAreaNames(t *testing.T) {
	svc, _ := testServices(t)
	ctx := context.Background()
	rctx := testRequestContext()

	a, err := svc.Org.CreateArea(ctx, rctx, AreaInput{Name: "Platform"})
	if err != nil {
		t.Fatalf("CreateArea: %v", err)
	}
	if got, err := svc.Resolver.AreaName(ctx, rctx.TenantID, a.ID); err != nil || got != "Platform" {
		t.Errorf("AreaName = %q, %v, want Platform", got, err)
	}
	if got, err := svc.Resolver.AreaName(ctx, rctx.TenantID, "gone"); err != nil || got != "Unknown area" {
		t.Errorf("AreaName(dangling) = %q, %v, want Unknown area", got, err)
	}
	if got, err := svc.Resolver.OwnerName(ctx, rctx.TenantID, ""); err != nil || got != "" {
		t.Errorf("OwnerName(empty) = %q, %v, want empty", got, err)
	}
}
