package tracker

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/oselo/compass/internal/store"
	"github.com/oselo/compass/model"
)

// Decisions manages the append-only decision log. A decision can be
// recorded and removed but never edited; a correction is a new entry.
type Decisions struct {
	store store.Store
}

// DecisionInput carries the fields of a decision log entry.
type DecisionInput struct {
	Ref          model.EntityRef `json:"ref"`
	OwnerID      string          `json:"owner_id"`
	Title        string          `json:"title"`
	Decision     string          `json:"decision"`
	Context      string          `json:"context"`
	DecisionDate time.Time       `json:"decision_date"`
	EvidenceURL  string          `json:"evidence_url"`
}

func (in DecisionInput) validate() error {
	var f fieldErrors
	f.required("title", in.Title)
	f.required("decision", in.Decision)
	if !in.Ref.Zero() && !in.Ref.Type.Valid() {
		f.add("ref", "invalid", "unknown entity type")
	}
	return f.err()
}

// Record appends a decision to the log.
func (s *Decisions) Record(ctx context.Context, rctx *model.RequestContext, in DecisionInput) (model.DecisionLog, error) {
	if err := in.validate(); err != nil {
		return model.DecisionLog{}, err
	}

	now := time.Now().UTC()
	decisionDate := in.DecisionDate
	if decisionDate.IsZero() {
		decisionDate = now
	}
	d := model.DecisionLog{
		ID:           uuid.New().String(),
		TenantID:     rctx.TenantID,
		Ref:          in.Ref,
		OwnerID:      in.OwnerID,
		Title:        in.Title,
		Decision:     in.Decision,
		Context:      in.Context,
		DecisionDate: decisionDate,
		EvidenceURL:  in.EvidenceURL,
		CreatedAt:    now,
	}
	if err := s.store.CreateDecision(ctx, d); err != nil {
		return model.DecisionLog{}, err
	}
	return d, nil
}

// Get retrieves a decision.
func (s *Decisions) Get(ctx context.Context, rctx *model.RequestContext, id string) (model.DecisionLog, error) {
	return s.store.GetDecision(ctx, rctx.TenantID, id)
}

// List returns logged decisions matching the filters.
func (s *Decisions) List(ctx context.Context, rctx *model.RequestContext, f store.ListFilters) ([]model.DecisionLog, error) {
	return s.store.ListDecisions(ctx, rctx.TenantID, f)
}

// Delete removes a decision from the log.
func (s *Decisions) Delete(ctx context.Context, rctx *model.RequestContext, id string) error {
	return s.store.DeleteDecision(ctx, rctx.TenantID, id)
}
