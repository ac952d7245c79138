package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/oselo/compass/model"
)

const budgetColumns = `id, tenant_id, initiative_id, name, category, planned_amount,
		actual_amount, currency, created_at, updated_at`

func scanBudgetItem(row pgx.Row) (model.BudgetItem, error) {
	var b model.BudgetItem
	err := row.Scan(
		&b.ID, &b.TenantID, &b.InitiativeID, &b.Name, &b.Category, &b.PlannedAmount,
		&b.ActualAmount, &b.Currency, &b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}

// CreateBudgetItem inserts a new budget item.
func (s *Postgres) CreateBudgetItem(ctx context.Context, b model.BudgetItem) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO budget_items (`+budgetColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		b.ID, b.TenantID, b.InitiativeID, b.Name, b.Category, b.PlannedAmount,
		b.ActualAmount, b.Currency, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert budget item: %w", err)
	}
	return nil
}

// GetBudgetItem retrieves a budget item by ID, scoped to tenant.
func (s *Postgres) GetBudgetItem(ctx context.Context, tenantID, id string) (model.BudgetItem, error) {
	b, err := scanBudgetItem(s.pool.QueryRow(ctx, `
		SELECT `+budgetColumns+`
		FROM budget_items
		WHERE id = $1 AND tenant_id = $2`,
		id, tenantID,
	))
	if err == pgx.ErrNoRows {
		return model.BudgetItem{}, model.NewNotFoundError(fmt.Sprintf("budget item %q not found", id))
	}
	if err != nil {
		return model.BudgetItem{}, fmt.Errorf("query budget item: %w", err)
	}
	return b, nil
}

// ListBudgetItems returns the budget lines under an initiative.
func (s *Postgres) ListBudgetItems(ctx context.Context, tenantID, initiativeID string) ([]model.BudgetItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+budgetColumns+`
		FROM budget_items
		WHERE tenant_id = $1 AND initiative_id = $2
		ORDER BY created_at ASC`,
		tenantID, initiativeID,
	)
	if err != nil {
		return nil, fmt.Errorf("query budget items: %w", err)
	}
	defer rows.Close()

	var items []model.BudgetItem
	for rows.Next() {
		b, err := scanBudgetItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan budget item: %w", err)
		}
		items = append(items, b)
	}
	return items, rows.Err()
}

// UpdateBudgetItem persists an updated budget item.
func (s *Postgres) UpdateBudgetItem(ctx context.Context, b model.BudgetItem) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE budget_items SET
			name = $1, category = $2, planned_amount = $3, actual_amount = $4,
			currency = $5, updated_at = $6
		WHERE id = $7 AND tenant_id = $8`,
		b.Name, b.Category, b.PlannedAmount, b.ActualAmount,
		b.Currency, time.Now().UTC(),
		b.ID, b.TenantID,
	)
	if err != nil {
		return fmt.Errorf("update budget item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewNotFoundError(fmt.Sprintf("budget item %q not found", b.ID))
	}
	return nil
}

// DeleteBudgetItem removes a budget item.
func (s *Postgres) DeleteBudgetItem(ctx context.Context, tenantID, id string) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM budget_items WHERE id = $1 AND tenant_id = $2`,
		id, tenantID,
	)
	if err != nil {
		return fmt.Errorf("delete budget item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewNotFoundError(fmt.Sprintf("budget item %q not found", id))
	}
	return nil
}
