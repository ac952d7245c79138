package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/oselo/compass/model"
)

const decisionColumns = `id, tenant_id, entity_type, entity_id, owner_id, title, decision,
		context, decision_date, evidence_url, created_at`

func scanDecision(row pgx.Row) (model.DecisionLog, error) {
	var d model.DecisionLog
	err := row.Scan(
		&d.ID, &d.TenantID, &d.Ref.Type, &d.Ref.ID, &d.OwnerID, &d.Title, &d.Decision,
		&d.Context, &d.DecisionDate, &d.EvidenceURL, &d.CreatedAt,
	)
	return d, err
}

// CreateDecision appends a decision to the log. Decisions are never updated.
func (s *Postgres) CreateDecision(ctx context.Context, d model.DecisionLog) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO decision_log (`+decisionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		d.ID, d.TenantID, d.Ref.Type, d.Ref.ID, d.OwnerID, d.Title, d.Decision,
		d.Context, d.DecisionDate, d.EvidenceURL, d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert decision: %w", err)
	}
	return nil
}

// GetDecision retrieves a decision by ID, scoped to tenant.
func (s *Postgres) GetDecision(ctx context.Context, tenantID, id string) (model.DecisionLog, error) {
	d, err := scanDecision(s.pool.QueryRow(ctx, `
		SELECT `+decisionColumns+`
		FROM decision_log
		WHERE id = $1 AND tenant_id = $2`,
		id, tenantID,
	))
	if err == pgx.ErrNoRows {
		return model.DecisionLog{}, model.NewNotFoundError(fmt.Sprintf("decision %q not found", id))
	}
	if err != nil {
		return model.DecisionLog{}, fmt.Errorf("query decision: %w", err)
	}
	return d, nil
}

// ListDecisions returns logged decisions matching the filters, most recent
// decision date first.
func (s *Postgres) ListDecisions(ctx context.Context, tenantID string, f ListFilters) ([]model.DecisionLog, error) {
	query := `SELECT ` + decisionColumns + ` FROM decision_log WHERE tenant_id = $1`
	args := []any{tenantID}
	argIdx := 2

	if f.OwnerID != "" {
		query += fmt.Sprintf(" AND owner_id = $%d", argIdx)
		args = append(args, f.OwnerID)
		argIdx++
	}
	if f.Query != "" {
		query += fmt.Sprintf(" AND (title ILIKE $%d OR decision ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+f.Query+"%")
		argIdx++
	}

	query += " ORDER BY decision_date DESC, created_at DESC"
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
		return nil, fmt.Errorf("query decisions: %w", err)
	}
	defer rows.Close()

	var decisions []model.DecisionLog
	for rows.Next() {
		d, err := scanDecision(rows)
		if err != nil {
			return nil, fmt.Errorf("scan decision: %w", err)
		}
		decisions = append(decisions, d)
	}
	return decisions, rows.Err()
}

// DeleteDecision removes a decision from the log.
func (s *Postgres) DeleteDecision(ctx context.Context, tenantID, id string) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM decision_log WHERE id = $1 AND tenant_id = $2`,
		id, tenantID,
	)
	if err != nil {
		return fmt.Errorf("delete decision: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewNotFoundError(fmt.Sprintf("decision %q not found", id))
	}
	return nil
}
