package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/oselo/compass/model"
)

const riskColumns = `id, tenant_id, entity_type, entity_id, title, description, probability,
		impact, status, mitigation, owner_id, created_at, updated_at`

func scanRisk(row pgx.Row) (model.Risk, error) {
	var r model.Risk
	err := row.Scan(
		&r.ID, &r.TenantID, &r.Ref.Type, &r.Ref.ID, &r.Title, &r.Description, &r.Probability,
		&r.Impact, &r.Status, &r.Mitigation, &r.OwnerID, &r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

// CreateRisk inserts a new risk.
func (s *Postgres) CreateRisk(ctx context.Context, r model.Risk) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO risks (`+riskColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		r.ID, r.TenantID, r.Ref.Type, r.Ref.ID, r.Title, r.Description, r.Probability,
		r.Impact, r.Status, r.Mitigation, r.OwnerID, r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert risk: %w", err)
	}
	return nil
}

// GetRisk retrieves a risk by ID, scoped to tenant.
func (s *Postgres) GetRisk(ctx context.Context, tenantID, id string) (model.Risk, error) {
	r, err := scanRisk(s.pool.QueryRow(ctx, `
		SELECT `+riskColumns+`
		FROM risks
		WHERE id = $1 AND tenant_id = $2`,
		id, tenantID,
	))
	if err == pgx.ErrNoRows {
		return model.Risk{}, model.NewNotFoundError(fmt.Sprintf("risk %q not found", id))
	}
	if err != nil {
		return model.Risk{}, fmt.Errorf("query risk: %w", err)
	}
	return r, nil
}

// ListRisks returns risks matching the filters, newest first.
func (s *Postgres) ListRisks(ctx context.Context, tenantID string, f ListFilters) ([]model.Risk, error) {
	query := `SELECT ` + riskColumns + ` FROM risks WHERE tenant_id = $1`
	args := []any{tenantID}
	argIdx := 2

	if f.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, f.Status)
		argIdx++
	}
	if f.OwnerID != "" {
		query += fmt.Sprintf(" AND owner_id = $%d", argIdx)
		args = append(args, f.OwnerID)
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
		return nil, fmt.Errorf("query risks: %w", err)
	}
	defer rows.Close()

	var risks []model.Risk
	for rows.Next() {
		r, err := scanRisk(rows)
		if err != nil {
			return nil, fmt.Errorf("scan risk: %w", err)
		}
		risks = append(risks, r)
	}
	return risks, rows.Err()
}

// UpdateRisk persists an updated risk.
func (s *Postgres) UpdateRisk(ctx context.Context, r model.Risk) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE risks SET
			title = $1, description = $2, probability = $3, impact = $4, status = $5,
			mitigation = $6, owner_id = $7, updated_at = $8
		WHERE id = $9 AND tenant_id = $10`,
		r.Title, r.Description, r.Probability, r.Impact, r.Status,
		r.Mitigation, r.OwnerID, time.Now().UTC(),
		r.ID, r.TenantID,
	)
	if err != nil {
		return fmt.Errorf("update risk: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewNotFoundError(fmt.Sprintf("risk %q not found", r.ID))
	}
	return nil
}

// DeleteRisk removes a risk.
func (s *Postgres) DeleteRisk(ctx context.Context, tenantID, id string) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM risks WHERE id = $1 AND tenant_id = $2`,
		id, tenantID,
	)
	if err != nil {
		return fmt.Errorf("delete risk: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewNotFoundError(fmt.Sprintf("risk %q not found", id))
	}
	return nil
}
