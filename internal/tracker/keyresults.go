package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/oselo/compass/internal/store"
	"github.com/oselo/compass/model"
)

// KeyResults manages key result mutations and their check-in history.
type KeyResults struct {
	store store.Store
}

// KeyResultInput carries the writable fields of a key result.
type KeyResultInput struct {
	ObjectiveID   string              `json:"objective_id"`
	OwnerID       string              `json:"owner_id"`
	Title         string              `json:"title"`
	BaselineValue string              `json:"baseline_value"`
	TargetValue   string              `json:"target_value"`
	Unit          string              `json:"unit"`
	ScoringMethod model.ScoringMethod `json:"scoring_method"`
	Status        model.WorkStatus    `json:"status"`
	Confidence    int                 `json:"confidence"`
}

func (in KeyResultInput) validate() error {
	var f fieldErrors
	f.required("title", in.Title)
	f.required("objective_id", in.ObjectiveID)
	if !in.ScoringMethod.Valid() {
		f.add("scoring_method", "invalid", fmt.Sprintf("unknown scoring method %q", in.ScoringMethod))
	}
	if !in.Status.Valid() {
		f.add("status", "invalid", fmt.Sprintf("unknown status %q", in.Status))
	}
	f.intRange("confidence", in.Confidence, 0, 100)
	return f.err()
}

// CheckInInput carries one progress update: the new value, an optional
// comment, and evidence links to record alongside it.
type CheckInInput struct {
	Value    string                `json:"value"`
	Comment  string                `json:"comment"`
	Evidence []model.EvidenceInput `json:"evidence"`
}

func (in CheckInInput) validate() error {
	var f fieldErrors
	f.required("value", in.Value)
	for i, ev := range in.Evidence {
		if ev.URL == "" {
			f.add(fmt.Sprintf("evidence[%d].url", i), "required", "evidence url is required")
		}
	}
	return f.err()
}

// Create persists a new key result under the named objective. The current
// value starts at the baseline.
func (s *KeyResults) Create(ctx context.Context, rctx *model.RequestContext, in KeyResultInput) (model.KeyResult, error) {
	if err := in.validate(); err != nil {
		return model.KeyResult{}, err
	}
	if _, err := s.store.GetObjective(ctx, rctx.TenantID, in.ObjectiveID); err != nil {
		return model.KeyResult{}, err
	}

	now := time.Now().UTC()
	kr := model.KeyResult{
		ID:            uuid.New().String(),
		TenantID:      rctx.TenantID,
		ObjectiveID:   in.ObjectiveID,
		OwnerID:       in.OwnerID,
		Title:         in.Title,
		BaselineValue: in.BaselineValue,
		TargetValue:   in.TargetValue,
		CurrentValue:  in.BaselineValue,
		Unit:          in.Unit,
		ScoringMethod: in.ScoringMethod,
		Status:        in.Status,
		Confidence:    in.Confidence,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.CreateKeyResult(ctx, kr); err != nil {
		return model.KeyResult{}, err
	}
	return kr, nil
}

// Get retrieves a key result.
func (s *KeyResults) Get(ctx context.Context, rctx *model.RequestContext, id string) (model.KeyResult, error) {
	return s.store.GetKeyResult(ctx, rctx.TenantID, id)
}

// List returns key results matching the filters.
func (s *KeyResults) List(ctx context.Context, rctx *model.RequestContext, f store.ListFilters) ([]model.KeyResult, error) {
	return s.store.ListKeyResults(ctx, rctx.TenantID, f)
}

// Update replaces a key result's writable fields. The current value is not
// touched here; it only advances through check-ins.
func (s *KeyResults) Update(ctx context.Context, rctx *model.RequestContext, id string, in KeyResultInput) (model.KeyResult, error) {
	kr, err := s.store.GetKeyResult(ctx, rctx.TenantID, id)
	if err != nil {
		return model.KeyResult{}, err
	}
	in.ObjectiveID = kr.ObjectiveID
	if err := in.validate(); err != nil {
		return model.KeyResult{}, err
	}

	kr.OwnerID = in.OwnerID
	kr.Title = in.Title
	kr.BaselineValue = in.BaselineValue
	kr.TargetValue = in.TargetValue
	kr.Unit = in.Unit
	kr.ScoringMethod = in.ScoringMethod
	kr.Status = in.Status
	kr.Confidence = in.Confidence
	if err := s.store.UpdateKeyResult(ctx, kr); err != nil {
		return model.KeyResult{}, err
	}
	return s.store.GetKeyResult(ctx, rctx.TenantID, id)
}

// Delete removes a key result and its check-in history.
func (s *KeyResults) Delete(ctx context.Context, rctx *model.RequestContext, id string) error {
	return s.store.DeleteKeyResult(ctx, rctx.TenantID, id)
}

// RecordCheckIn records a progress update against the key result. In one
// transaction the check-in row is written (capturing the value it
// replaced), any evidence links are attached to it, and the key result's
// current value advances to the new value. When it returns the current
// value equals the recorded value and the previous one is preserved on the
// check-in for history display.
func (s *KeyResults) RecordCheckIn(ctx context.Context, rctx *model.RequestContext, keyResultID string, in CheckInInput) (model.KeyResultCheckIn, error) {
	if err := in.validate(); err != nil {
		return model.KeyResultCheckIn{}, err
	}

	ci := model.KeyResultCheckIn{
		ID:          uuid.New().String(),
		TenantID:    rctx.TenantID,
		KeyResultID: keyResultID,
		Value:       in.Value,
		Comment:     in.Comment,
		CreatedBy:   rctx.SubjectID,
		CreatedAt:   time.Now().UTC(),
	}
	return s.store.RecordCheckIn(ctx, ci, in.Evidence)
}

// DeleteCheckIn removes a check-in from history. The key result's current
// value is deliberately not reverted: a wrong check-in is corrected by
// recording a new one. Deleting a check-in that does not exist succeeds.
func (s *KeyResults) DeleteCheckIn(ctx context.Context, rctx *model.RequestContext, checkInID string) error {
	return s.store.DeleteCheckIn(ctx, rctx.TenantID, checkInID)
}

// ListCheckIns returns a key result's check-ins, newest first.
func (s *KeyResults) ListCheckIns(ctx context.Context, rctx *model.RequestContext, keyResultID string) ([]model.KeyResultCheckIn, error) {
	if _, err := s.store.GetKeyResult(ctx, rctx.TenantID, keyResultID); err != nil {
		return nil, err
	}
	return s.store.ListCheckIns(ctx, rctx.TenantID, keyResultID)
}
