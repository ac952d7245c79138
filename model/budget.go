package model

import "time"

// BudgetItem is a planned-versus-actual spend line under an initiative.
type BudgetItem struct {
	ID            string    `json:"id"`
	TenantID      string    `json:"tenant_id"`
	InitiativeID  string    `json:"initiative_id"`
	Name          string    `json:"name"`
	Category      string    `json:"category,omitempty"`
	PlannedAmount float64   `json:"planned_amount"`
	ActualAmount  float64   `json:"actual_amount"`
	Currency      string    `json:"currency"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Variance returns actual minus planned spend. It is derived, not persisted.
func (b BudgetItem) Variance() float64 {
	return b.ActualAmount - b.PlannedAmount
}
