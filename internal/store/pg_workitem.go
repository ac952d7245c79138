package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/oselo/compass/model"
)

const workItemColumns = `id, tenant_id, initiative_id, owner_id, title, description, type,
		status, priority, estimated_hours, actual_hours, completed_at, created_at, updated_at`

func scanWorkItem(row pgx.Row) (model.WorkItem, error) {
	var wi model.WorkItem
	err := row.Scan(
		&wi.ID, &wi.TenantID, &wi.InitiativeID, &wi.OwnerID, &wi.Title, &wi.Description, &wi.Type,
		&wi.Status, &wi.Priority, &wi.EstimatedHours, &wi.ActualHours, &wi.CompletedAt,
		&wi.CreatedAt, &wi.UpdatedAt,
	)
	return wi, err
}

// CreateWorkItem inserts a new work item.
func (s *Postgres) CreateWorkItem(ctx context.Context, wi model.WorkItem) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO work_items (`+workItemColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		wi.ID, wi.TenantID, wi.InitiativeID, wi.OwnerID, wi.Title, wi.Description, wi.Type,
		wi.Status, wi.Priority, wi.EstimatedHours, wi.ActualHours, wi.CompletedAt,
		wi.CreatedAt, wi.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert work item: %w", err)
	}
	return nil
}

// GetWorkItem retrieves a work item by ID, scoped to tenant.
func (s *Postgres) GetWorkItem(ctx context.Context, tenantID, id string) (model.WorkItem, error) {
	wi, err := scanWorkItem(s.pool.QueryRow(ctx, `
		SELECT `+workItemColumns+`
		FROM work_items
		WHERE id = $1 AND tenant_id = $2`,
		id, tenantID,
	))
	if err == pgx.ErrNoRows {
		return model.WorkItem{}, model.NewNotFoundError(fmt.Sprintf("work item %q not found", id))
	}
	if err != nil {
		return model.WorkItem{}, fmt.Errorf("query work item: %w", err)
	}
	return wi, nil
}

// ListWorkItems returns work items matching the filters, newest first.
func (s *Postgres) ListWorkItems(ctx context.Context, tenantID string, f ListFilters) ([]model.WorkItem, error) {
	query := `SELECT ` + workItemColumns + ` FROM work_items WHERE tenant_id = $1`
	args := []any{tenantID}
	argIdx := 2

	appendFilter := func(clause, value string) {
		if value != "" {
			query += fmt.Sprintf(" AND "+clause, argIdx)
			args = append(args, value)
			argIdx++
		}
	}
	appendFilter("initiative_id = $%d", f.InitiativeID)
	appendFilter("owner_id = $%d", f.OwnerID)
	appendFilter("status = $%d", f.Status)
	appendFilter("priority = $%d", f.Priority)
	appendFilter("type = $%d", f.Type)
	if f.CycleID != "" {
		query += fmt.Sprintf(" AND initiative_id IN (SELECT id FROM initiatives WHERE cycle_id = $%d)", argIdx)
		args = append(args, f.CycleID)
		argIdx++
	}
	if f.Query != "" {
		query += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+f.Query+"%")
		argIdx++
	}

	query += " ORDER BY created_at DESC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, f.Limit)
		argIdx++
	}
	if f.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIdx)
		args = append(args, f.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query work items: %w", err)
	}
	defer rows.Close()

	var items []model.WorkItem
	for rows.Next() {
		wi, err := scanWorkItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan work item: %w", err)
		}
		items = append(items, wi)
	}
	return items, rows.Err()
}

// UpdateWorkItem persists an updated work item.
func (s *Postgres) UpdateWorkItem(ctx context.Context, wi model.WorkItem) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE work_items SET
			owner_id = $1, title = $2, description = $3, type = $4, status = $5,
			priority = $6, estimated_hours = $7, actual_hours = $8, completed_at = $9,
			updated_at = $10
		WHERE id = $11 AND tenant_id = $12`,
		wi.OwnerID, wi.Title, wi.Description, wi.Type, wi.Status,
		wi.Priority, wi.EstimatedHours, wi.ActualHours, wi.CompletedAt,
		time.Now().UTC(),
		wi.ID, wi.TenantID,
	)
	if err != nil {
		return fmt.Errorf("update work item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewNotFoundError(fmt.Sprintf("work item %q not found", wi.ID))
	}
	return nil
}

// DeleteWorkItem removes a work item.
func (s *Postgres) DeleteWorkItem(ctx context.Context, tenantID, id string) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM work_items WHERE id = $1 AND tenant_id = $2`,
		id, tenantID,
	)
	if err != nil {
		return fmt.Errorf("delete work item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewNotFoundError(fmt.Sprintf("work item %q not found", id))
	}
	return nil
}
