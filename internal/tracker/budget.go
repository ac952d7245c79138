package tracker

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/oselo/compass/internal/store"
	"github.com/oselo/compass/model"
)

// Budget manages budget items under initiatives.
type Budget struct {
	store store.Store
}

// BudgetItemInput carries the writable fields of a budget item.
type BudgetItemInput struct {
	InitiativeID  string  `json:"initiative_id"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	PlannedAmount float64 `json:"planned_amount"`
	ActualAmount  float64 `json:"actual_amount"`
	Currency      string  `json:"currency"`
}

func (in BudgetItemInput) validate() error {
	var f fieldErrors
	f.required("name", in.Name)
	f.required("initiative_id", in.InitiativeID)
	if in.PlannedAmount < 0 {
		f.add("planned_amount", "out_of_range", "planned_amount must not be negative")
	}
	if in.ActualAmount < 0 {
		f.add("actual_amount", "out_of_range", "actual_amount must not be negative")
	}
	return f.err()
}

// Create persists a new budget item under the named initiative.
func (s *Budget) Create(ctx context.Context, rctx *model.RequestContext, in BudgetItemInput) (model.BudgetItem, error) {
	if err := in.validate(); err != nil {
		return model.BudgetItem{}, err
	}
	if _, err := s.store.GetInitiative(ctx, rctx.TenantID, in.InitiativeID); err != nil {
		return model.BudgetItem{}, err
	}

	currency := in.Currency
	if currency == "" {
		currency = "USD"
	}
	now := time.Now().UTC()
	b := model.BudgetItem{
		ID:            uuid.New().String(),
		TenantID:      rctx.TenantID,
		InitiativeID:  in.InitiativeID,
		Name:          in.Name,
		Category:      in.Category,
		PlannedAmount: in.PlannedAmount,
		ActualAmount:  in.ActualAmount,
		Currency:      currency,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.CreateBudgetItem(ctx, b); err != nil {
		return model.BudgetItem{}, err
	}
	return b, nil
}

// Get retrieves a budget item.
func (s *Budget) Get(ctx context.Context, rctx *model.RequestContext, id string) (model.BudgetItem, error) {
	return s.store.GetBudgetItem(ctx, rctx.TenantID, id)
}

// List returns the budget lines under an initiative.
func (s *Budget) List(ctx context.Context, rctx *model.RequestContext, initiativeID string) ([]model.BudgetItem, error) {
	return s.store.ListBudgetItems(ctx, rctx.TenantID, initiativeID)
}

// Update replaces a budget item's writable fields. The item stays under its
// initiative.
func (s *Budget) Update(ctx context.Context, rctx *model.RequestContext, id string, in BudgetItemInput) (model.BudgetItem, error) {
	b, err := s.store.GetBudgetItem(ctx, rctx.TenantID, id)
	if err != nil {
		return model.BudgetItem{}, err
	}
	in.InitiativeID = b.InitiativeID
	if err := in.validate(); err != nil {
		return model.BudgetItem{}, err
	}

	b.Name = in.Name
	b.Category = in.Category
	b.PlannedAmount = in.PlannedAmount
	b.ActualAmount = in.ActualAmount
	if in.Currency != "" {
		b.Currency = in.Currency
	}
	if err := s.store.UpdateBudgetItem(ctx, b); err != nil {
		return model.BudgetItem{}, err
	}
	return s.store.GetBudgetItem(ctx, rctx.TenantID, id)
}

// Delete removes a budget item.
func (s *Budget) Delete(ctx context.Context, rctx *model.RequestContext, id string) error {
	return s.store.DeleteBudgetItem(ctx, rctx.TenantID, id)
}
