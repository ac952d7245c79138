package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/oselo/compass/model"
)

const objectiveColumns = `id, tenant_id, cycle_id, area_id, owner_id, title, description,
		type, status, priority, confidence, created_at, updated_at`

func scanObjective(row pgx.Row) (model.Objective, error) {
	var o model.Objective
	err := row.Scan(
		&o.ID, &o.TenantID, &o.CycleID, &o.AreaID, &o.OwnerID, &o.Title, &o.Description,
		&o.Type, &o.Status, &o.Priority, &o.Confidence, &o.CreatedAt, &o.UpdatedAt,
	)
	return o, err
}

// CreateObjective inserts a new objective.
func (s *Postgres) CreateObjective(ctx context.Context, o model.Objective) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO objectives (`+objectiveColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		o.ID, o.TenantID, o.CycleID, o.AreaID, o.OwnerID, o.Title, o.Description,
		o.Type, o.Status, o.Priority, o.Confidence, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert objective: %w", err)
	}
	return nil
}

// GetObjective retrieves an objective by ID, scoped to tenant.
func (s *Postgres) GetObjective(ctx context.Context, tenantID, id string) (model.Objective, error) {
	o, err := scanObjective(s.pool.QueryRow(ctx, `
		SELECT `+objectiveColumns+`
		FROM objectives
		WHERE id = $1 AND tenant_id = $2`,
		id, tenantID,
	))
	if err == pgx.ErrNoRows {
		return model.Objective{}, model.NewNotFoundError(fmt.Sprintf("objective %q not found", id))
	}
	if err != nil {
		return model.Objective{}, fmt.Errorf("query objective: %w", err)
	}
	return o, nil
}

// ListObjectives returns objectives matching the filters, newest first.
func (s *Postgres) ListObjectives(ctx context.Context, tenantID string, f ListFilters) ([]model.Objective, error) {
	query := `SELECT ` + objectiveColumns + ` FROM objectives WHERE tenant_id = $1`
	args := []any{tenantID}
	argIdx := 2

	appendFilter := func(clause, value string) {
		if value != "" {
			query += fmt.Sprintf(" AND "+clause, argIdx)
			args = append(args, value)
			argIdx++
		}
	}
	appendFilter("cycle_id = $%d", f.CycleID)
	appendFilter("area_id = $%d", f.AreaID)
	appendFilter("owner_id = $%d", f.OwnerID)
	appendFilter("status = $%d", f.Status)
	appendFilter("priority = $%d", f.Priority)
	appendFilter("type = $%d", f.Type)
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
		return nil, fmt.Errorf("query objectives: %w", err)
	}
	defer rows.Close()

	var objectives []model.Objective
	for rows.Next() {
		o, err := scanObjective(rows)
		if err != nil {
			return nil, fmt.Errorf("scan objective: %w", err)
		}
		objectives = append(objectives, o)
	}
	return objectives, rows.Err()
}

// UpdateObjective persists an updated objective.
func (s *Postgres) UpdateObjective(ctx context.Context, o model.Objective) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE objectives SET
			cycle_id = $1, area_id = $2, owner_id = $3, title = $4, description = $5,
			type = $6, status = $7, priority = $8, confidence = $9, updated_at = $10
		WHERE id = $11 AND tenant_id = $12`,
		o.CycleID, o.AreaID, o.OwnerID, o.Title, o.Description,
		o.Type, o.Status, o.Priority, o.Confidence, time.Now().UTC(),
		o.ID, o.TenantID,
	)
	if err != nil {
		return fmt.Errorf("update objective: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewNotFoundError(fmt.Sprintf("objective %q not found", o.ID))
	}
	return nil
}

// DeleteObjective removes an objective. Its key results, their check-ins,
// and its initiative links go with it via ON DELETE CASCADE; polymorphic
// rows pointing at it are left dangling.
func (s *Postgres) DeleteObjective(ctx context.Context, tenantID, id string) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM objectives WHERE id = $1 AND tenant_id = $2`,
		id, tenantID,
	)
	if err != nil {
		return fmt.Errorf("delete objective: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewNotFoundError(fmt.Sprintf("objective %q not found", id))
	}
	return nil
}
