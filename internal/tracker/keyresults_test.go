package tracker

import (
	"context"
	"testing"

	"github.com/oselo/compass/model"
)

func seedKeyResultTree(t *testing.T, svc *Services) model.KeyResult {
	t.Helper()
	ctx := context.Background()
	rctx := testRequestContext()

	c := createCycle(t, svc, "Q1")
	o, err := svc.Objectives.Create(ctx, rctx, ObjectiveInput{
		CycleID:  c.ID,
		Title:    "Grow revenue",
		Type:     model.ObjectiveStrategic,
		Status:   model.StatusOnTrack,
		Priority: model.PriorityHigh,
	})
	if err != nil {
		t.Fatalf("Objectives.Create: %v", err)
	}
	kr, err := svc.KeyResults.Create(ctx, rctx, KeyResultInput{
		ObjectiveID:   o.ID,
		Title:         "ARR to 10M",
		BaselineValue: "6",
		TargetValue:   "10",
		Unit:          "M USD",
		ScoringMethod: model.ScoringPercentage,
		Status:        model.StatusOnTrack,
	})
	if err != nil {
		t.Fatalf("KeyResults.Create: %v", err)
	}
	return kr
}

func TestKeyResultCreateStartsAtBaseline(t *testing.T) {
	svc, _ := testServices(t)
	kr := seedKeyResultTree(t, svc)
	if kr.CurrentValue != kr.BaselineValue {
		t.Errorf("CurrentValue = %q, want baseline %q", kr.CurrentValue, kr.BaselineValue)
	}
	if got := kr.Progress(); got != 0 {
		t.Errorf("Progress() = %v, want 0 at baseline", got)
	}
}

func TestRecordCheckInAdvancesCurrentValue(t *testing.T) {
	svc, _ := testServices(t)
	ctx := context.Background()
	rctx := testRequestContext()
	kr := seedKeyResultTree(t, svc)

	ci, err := svc.KeyResults.RecordCheckIn(ctx, rctx, kr.ID, CheckInInput{
		Value:   "8",
		Comment: "two new contracts",
		Evidence: []model.EvidenceInput{
			{Name: "Signed contract", URL: "https://example.com/contract"},
		},
	})
	if err != nil {
		t.Fatalf("RecordCheckIn: %v", err)
	}
	if ci.PreviousValue != "6" {
		t.Errorf("PreviousValue = %q, want %q", ci.PreviousValue, "6")
	}
	if ci.CreatedBy != rctx.SubjectID {
		t.Errorf("CreatedBy = %q, want %q", ci.CreatedBy, rctx.SubjectID)
	}

	got, err := svc.KeyResults.Get(ctx, rctx, kr.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.CurrentValue != "8" {
		t.Errorf("CurrentValue = %q, want %q", got.CurrentValue, "8")
	}
	if p := got.Progress(); p != 50 {
		t.Errorf("Progress() = %v, want 50", p)
	}

	evidence, err := svc.Evidence.List(ctx, rctx, model.EntityRef{}, ci.ID)
	if err != nil {
		t.Fatalf("Evidence.List: %v", err)
	}
	if len(evidence) != 1 {
		t.Fatalf("got %d evidence rows, want 1", len(evidence))
	}
}

func TestRecordCheckInValidation(t *testing.T) {
	svc, _ := testServices(t)
	kr := seedKeyResultTree(t, svc)

	_, err := svc.KeyResults.RecordCheckIn(context.Background(), testRequestContext(), kr.ID, CheckInInput{
		Evidence: []model.EvidenceInput{{Name: "no url"}},
	})
	env, ok := err.(*model.ErrorEnvelope)
	if !ok || env.Code != model.ErrValidationError {
		t.Fatalf("err = %v, want VALIDATION_ERROR", err)
	}
	if len(env.Details) != 2 {
		t.Errorf("got %d details, want 2 (value, evidence url)", len(env.Details))
	}
}

func TestDeleteCheckInKeepsCurrentValue(t *testing.T) {
	svc, _ := testServices(t)
	ctx := context.Background()
	rctx := testRequestContext()
	kr := seedKeyResultTree(t, svc)

	ci, err := svc.KeyResults.RecordCheckIn(ctx, rctx, kr.ID, CheckInInput{Value: "9"})
	if err != nil {
		t.Fatalf("RecordCheckIn: %v", err)
	}
	if err := svc.KeyResults.DeleteCheckIn(ctx, rctx, ci.ID); err != nil {
		t.Fatalf("DeleteCheckIn: %v", err)
	}

	got, _ := svc.KeyResults.Get(ctx, rctx, kr.ID)
	if got.CurrentValue != "9" {
		t.Errorf("CurrentValue = %q after check-in delete, want %q (never reverted)", got.CurrentValue, "9")
	}

	checkIns, err := svc.KeyResults.ListCheckIns(ctx, rctx, kr.ID)
	if err != nil {
		t.Fatalf("ListCheckIns: %v", err)
	}
	if len(checkIns) != 0 {
		t.Errorf("got %d check-ins after delete, want 0", len(checkIns))
	}

	// Repeating the delete is a quiet no-op.
	if err := svc.KeyResults.DeleteCheckIn(ctx, rctx, ci.ID); err != nil {
		t.Errorf("repeat DeleteCheckIn: %v", err)
	}
}

func TestCheckInHistoryNewestFirst(t *testing.T) {
	svc, _ := testServices(t)
	ctx := context.Background()
	rctx := testRequestContext()
	kr := seedKeyResultTree(t, svc)

	for _, v := range []string{"7", "8", "9"} {
		if _, err := svc.KeyResults.RecordCheckIn(ctx, rctx, kr.ID, CheckInInput{Value: v}); err != nil {
			t.Fatalf("RecordCheckIn(%s): %v", v, err)
		}
	}

	checkIns, err := svc.KeyResults.ListCheckIns(ctx, rctx, kr.ID)
	if err != nil {
		t.Fatalf("ListCheckIns: %v", err)
	}
	if len(checkIns) != 3 {
		t.Fatalf("got %d check-ins, want 3", len(checkIns))
	}
	// Each check-in preserves the transition it made.
	for _, ci := range checkIns {
		if ci.Value == "9" && ci.PreviousValue != "8" {
			t.Errorf("check-in 9 previous = %q, want 8", ci.PreviousValue)
		}
		if ci.Value == "7" && ci.PreviousValue != "6" {
			t.Errorf("check-in 7 previous = %q, want 6", ci.PreviousValue)
		}
	}
}
