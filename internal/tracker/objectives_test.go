package tracker

import (
	"context"
	"testing"

	"github.com/oselo/compass/model"
)

func createObjective(t *testing.T, svc *Services, cycleID, title string) model.Objective {
	t.Helper()
	o, err := svc.Objectives.Create(context.Background(), testRequestContext(), ObjectiveInput{
		CycleID:  cycleID,
		Title:    title,
		Type:     model.ObjectiveTactical,
		Status:   model.StatusOnTrack,
		Priority: model.PriorityMedium,
	})
	if err != nil {
		t.Fatalf("Objectives.Create(%s): %v", title, err)
	}
	return o
}

func createKeyResult(t *testing.T, svc *Services, objectiveID, title string) model.KeyResult {
	t.Helper()
	kr, err := svc.KeyResults.Create(context.Background(), testRequestContext(), KeyResultInput{
		ObjectiveID:   objectiveID,
		Title:         title,
		BaselineValue: "0",
		TargetValue:   "100",
		ScoringMethod: model.ScoringPercentage,
		Status:        model.StatusOnTrack,
	})
	if err != nil {
		t.Fatalf("KeyResults.Create(%s): %v", title, err)
	}
	return kr
}

func TestObjectiveCreateRequiresExistingCycle(t *testing.T) {
	svc, _ := testServices(t)

	_, err := svc.Objectives.Create(context.Background(), testRequestContext(), ObjectiveInput{
		CycleID:  "no-such-cycle",
		Title:    "Grow revenue",
		Type:     model.ObjectiveStrategic,
		Status:   model.StatusNotStarted,
		Priority: model.PriorityHigh,
	})
	if !model.IsNotFound(err) {
		t.Fatalf("err = %v, want NOT_FOUND", err)
	}
}

func TestObjectiveCreateValidation(t *testing.T) {
	svc, _ := testServices(t)
	c := createCycle(t, svc, "Q1")

	_, err := svc.Objectives.Create(context.Background(), testRequestContext(), ObjectiveInput{
		CycleID:    c.ID,
		Type:       "aspirational",
		Status:     model.StatusOnTrack,
		Priority:   model.PriorityLow,
		Confidence: 150,
	})
	env, ok := err.(*model.ErrorEnvelope)
	if !ok || env.Code != model.ErrValidationError {
		t.Fatalf("err = %v, want VALIDATION_ERROR", err)
	}
	fields := map[string]bool{}
	for _, d := range env.Details {
		fields[d.Field] = true
	}
	for _, f := range []string{"title", "type", "confidence"} {
		if !fields[f] {
			t.Errorf("missing %s detail in %v", f, env.Details)
		}
	}
}

func TestObjectiveUpdateCannotChangeCycle(t *testing.T) {
	svc, _ := testServices(t)
	ctx := context.Background()
	rctx := testRequestContext()

	c1 := createCycle(t, svc, "Q1")
	c2 := createCycle(t, svc, "Q2")
	o := createObjective(t, svc, c1.ID, "Grow revenue")

	updated, err := svc.Objectives.Update(ctx, rctx, o.ID, ObjectiveInput{
		CycleID:  c2.ID,
		Title:    "Grow revenue faster",
		Type:     model.ObjectiveTactical,
		Status:   model.StatusAtRisk,
		Priority: model.PriorityHigh,
	})
	if err != nil {
		t.Fatalf("Objectives.Update: %v", err)
	}
	if updated.CycleID != c1.ID {
		t.Errorf("cycle_id = %s, want original %s", updated.CycleID, c1.ID)
	}
	if updated.Title != "Grow revenue faster" {
		t.Errorf("title = %q", updated.Title)
	}
}

func TestObjectiveDeleteCascadesKeyResults(t *testing.T) {
	svc, _ := testServices(t)
	ctx := context.Background()
	rctx := testRequestContext()

	c := createCycle(t, svc, "Q1")
	o := createObjective(t, svc, c.ID, "Grow revenue")
	kr := createKeyResult(t, svc, o.ID, "MRR to 200k")

	if err := svc.Objectives.Delete(ctx, rctx, o.ID); err != nil {
		t.Fatalf("Objectives.Delete: %v", err)
	}
	if _, err := svc.KeyResults.Get(ctx, rctx, kr.ID); !model.IsNotFound(err) {
		t.Errorf("key result survived objective delete: err = %v", err)
	}
}
