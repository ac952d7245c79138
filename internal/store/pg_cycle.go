package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/oselo/compass/model"
)

const cycleColumns = `id, tenant_id, name, start_date, end_date, status, created_at, updated_at`

// CreateCycle inserts a new cycle.
func (s *Postgres) CreateCycle(ctx context.Context, c model.Cycle) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO cycles (`+cycleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, c.TenantID, c.Name, c.StartDate, c.EndDate, c.Status, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cycle: %w", err)
	}
	return nil
}

// GetCycle retrieves a cycle by ID, scoped to tenant.
func (s *Postgres) GetCycle(ctx context.Context, tenantID, id string) (model.Cycle, error) {
	var c model.Cycle
	err := s.pool.QueryRow(ctx, `
		SELECT `+cycleColumns+`
		FROM cycles
		WHERE id = $1 AND tenant_id = $2`,
		id, tenantID,
	).Scan(&c.ID, &c.TenantID, &c.Name, &c.StartDate, &c.EndDate, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err == pgx.ErrNoRows {
		return model.Cycle{}, model.NewNotFoundError(fmt.Sprintf("cycle %q not found", id))
	}
	if err != nil {
		return model.Cycle{}, fmt.Errorf("query cycle: %w", err)
	}
	return c, nil
}

// ListCycles returns all cycles for a tenant, most recent start first.
func (s *Postgres) ListCycles(ctx context.Context, tenantID string) ([]model.Cycle, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+cycleColumns+`
		FROM cycles
		WHERE tenant_id = $1
		ORDER BY start_date DESC`,
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("query cycles: %w", err)
	}
	defer rows.Close()

	var cycles []model.Cycle
	for rows.Next() {
		var c model.Cycle
		if err := rows.Scan(&c.ID, &c.TenantID, &c.Name, &c.StartDate, &c.EndDate, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cycle: %w", err)
		}
		cycles = append(cycles, c)
	}
	return cycles, rows.Err()
}

// UpdateCycle persists an updated cycle.
func (s *Postgres) UpdateCycle(ctx context.Context, c model.Cycle) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE cycles SET
			name = $1, start_date = $2, end_date = $3, status = $4, updated_at = $5
		WHERE id = $6 AND tenant_id = $7`,
		c.Name, c.StartDate, c.EndDate, c.Status, time.Now().UTC(), c.ID, c.TenantID,
	)
	if err != nil {
		return fmt.Errorf("update cycle: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewNotFoundError(fmt.Sprintf("cycle %q not found", c.ID))
	}
	return nil
}

// DeleteCycle removes a cycle. Objectives, key results, check-ins,
// initiatives, work items, budget items, and link rows scoped to the cycle
// are removed by the schema's ON DELETE CASCADE actions.
func (s *Postgres) DeleteCycle(ctx context.Context, tenantID, id string) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM cycles WHERE id = $1 AND tenant_id = $2`,
		id, tenantID,
	)
	if err != nil {
		return fmt.Errorf("delete cycle: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewNotFoundError(fmt.Sprintf("cycle %q not found", id))
	}
	return nil
}

// ActivateCycle archives every active cycle for the tenant and then marks
// the target cycle active, in one transaction. The archive step runs first
// so the single-active invariant holds even if prior data had several
// active cycles.
func (s *Postgres) ActivateCycle(ctx context.Context, tenantID, id string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin activate cycle: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()

	_, err = tx.Exec(ctx, `
		UPDATE cycles SET status = $1, updated_at = $2
		WHERE tenant_id = $3 AND status = $4 AND id <> $5`,
		model.CycleArchived, now, tenantID, model.CycleActive, id,
	)
	if err != nil {
		return fmt.Errorf("archive active cycles: %w", err)
	}

	tag, err := tx.Exec(ctx, `
		UPDATE cycles SET status = $1, updated_at = $2
		WHERE id = $3 AND tenant_id = $4`,
		model.CycleActive, now, id, tenantID,
	)
	if err != nil {
		return fmt.Errorf("activate cycle: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewNotFoundError(fmt.Sprintf("cycle %q not found", id))
	}

	return tx.Commit(ctx)
}

// SetCycleStatus moves a cycle to the given status unconditionally.
func (s *Postgres) SetCycleStatus(ctx context.Context, tenantID, id string, status model.CycleStatus) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE cycles SET status = $1, updated_at = $2
		WHERE id = $3 AND tenant_id = $4`,
		status, time.Now().UTC(), id, tenantID,
	)
	if err != nil {
		return fmt.Errorf("set cycle status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewNotFoundError(fmt.Sprintf("cycle %q not found", id))
	}
	return nil
}
