package tracker

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/oselo/compass/internal/store"
	"github.com/oselo/compass/model"
)

// Cycles manages planning cycle lifecycle. Cycle status moves draft →
// active → completed, with archived as the parking state for cycles that
// lost the active slot. A completed cycle cannot be reactivated.
type Cycles struct {
	store  store.Store
	logger *zap.Logger
}

// CycleInput carries the writable fields of a cycle.
type CycleInput struct {
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

func (in CycleInput) validate() error {
	var f fieldErrors
	f.required("name", in.Name)
	if in.StartDate.IsZero() {
		f.add("start_date", "required", "start_date is required")
	}
	if in.EndDate.IsZero() {
		f.add("end_date", "required", "end_date is required")
	}
	if !in.StartDate.IsZero() && !in.EndDate.IsZero() && in.EndDate.Before(in.StartDate) {
		f.add("end_date", "invalid", "end_date must not precede start_date")
	}
	return f.err()
}

// Create persists a new cycle in draft status.
func (s *Cycles) Create(ctx context.Context, rctx *model.RequestContext, in CycleInput) (model.Cycle, error) {
	if err := in.validate(); err != nil {
		return model.Cycle{}, err
	}

	now := time.Now().UTC()
	c := model.Cycle{
		ID:        uuid.New().String(),
		TenantID:  rctx.TenantID,
		Name:      in.Name,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Status:    model.CycleDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateCycle(ctx, c); err != nil {
		return model.Cycle{}, err
	}
	return c, nil
}

// Get retrieves a cycle.
func (s *Cycles) Get(ctx context.Context, rctx *model.RequestContext, id string) (model.Cycle, error) {
	return s.store.GetCycle(ctx, rctx.TenantID, id)
}

// List returns the tenant's cycles.
func (s *Cycles) List(ctx context.Context, rctx *model.RequestContext) ([]model.Cycle, error) {
	return s.store.ListCycles(ctx, rctx.TenantID)
}

// Update changes a cycle's name and dates. Status moves only through
// Activate, Complete, and Archive.
func (s *Cycles) Update(ctx context.Context, rctx *model.RequestContext, id string, in CycleInput) (model.Cycle, error) {
	if err := in.validate(); err != nil {
		return model.Cycle{}, err
	}

	c, err := s.store.GetCycle(ctx, rctx.TenantID, id)
	if err != nil {
		return model.Cycle{}, err
	}
	c.Name = in.Name
	c.StartDate = in.StartDate
	c.EndDate = in.EndDate
	if err := s.store.UpdateCycle(ctx, c); err != nil {
		return model.Cycle{}, err
	}
	return s.store.GetCycle(ctx, rctx.TenantID, id)
}

// Delete removes a cycle together with its objectives (and their key
// results and check-ins) and its initiatives (and their work items, budget
// items, and objective links).
func (s *Cycles) Delete(ctx context.Context, rctx *model.RequestContext, id string) error {
	return s.store.DeleteCycle(ctx, rctx.TenantID, id)
}

// Activate makes the cycle the tenant's single active cycle: every other
// active cycle is archived in the same transaction. Activating the already
// active cycle succeeds without effect. A completed cycle stays completed.
func (s *Cycles) Activate(ctx context.Context, rctx *model.RequestContext, id string) (model.Cycle, error) {
	c, err := s.store.GetCycle(ctx, rctx.TenantID, id)
	if err != nil {
		return model.Cycle{}, err
	}
	if c.Status == model.CycleCompleted {
		return model.Cycle{}, model.NewInvalidTransitionError("a completed cycle cannot be reactivated")
	}

	if err := s.store.ActivateCycle(ctx, rctx.TenantID, id); err != nil {
		return model.Cycle{}, err
	}
	s.logger.Info("cycle activated",
		zap.String("cycle_id", id),
		zap.String("tenant_id", rctx.TenantID),
		zap.String("subject_id", rctx.SubjectID),
	)
	return s.store.GetCycle(ctx, rctx.TenantID, id)
}

// Complete closes out the cycle unconditionally.
func (s *Cycles) Complete(ctx context.Context, rctx *model.RequestContext, id string) (model.Cycle, error) {
	if err := s.store.SetCycleStatus(ctx, rctx.TenantID, id, model.CycleCompleted); err != nil {
		return model.Cycle{}, err
	}
	s.logger.Info("cycle completed",
		zap.String("cycle_id", id),
		zap.String("tenant_id", rctx.TenantID),
		zap.String("subject_id", rctx.SubjectID),
	)
	return s.store.GetCycle(ctx, rctx.TenantID, id)
}

// Archive parks the cycle without deleting anything under it.
func (s *Cycles) Archive(ctx context.Context, rctx *model.RequestContext, id string) (model.Cycle, error) {
	if err := s.store.SetCycleStatus(ctx, rctx.TenantID, id, model.CycleArchived); err != nil {
		return model.Cycle{}, err
	}
	return s.store.GetCycle(ctx, rctx.TenantID, id)
}
