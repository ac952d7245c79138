package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/oselo/compass/model"
)

const evidenceColumns = `id, tenant_id, entity_type, entity_id, check_in_id, title, url, type,
		created_by, created_at`

func scanEvidence(row pgx.Row) (model.Evidence, error) {
	var ev model.Evidence
	err := row.Scan(
		&ev.ID, &ev.TenantID, &ev.Ref.Type, &ev.Ref.ID, &ev.CheckInID, &ev.Title, &ev.URL,
		&ev.Type, &ev.CreatedBy, &ev.CreatedAt,
	)
	return ev, err
}

// CreateEvidence inserts a new evidence row.
func (s *Postgres) CreateEvidence(ctx context.Context, ev model.Evidence) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO evidence (`+evidenceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		ev.ID, ev.TenantID, ev.Ref.Type, ev.Ref.ID, ev.CheckInID, ev.Title, ev.URL,
		ev.Type, ev.CreatedBy, ev.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert evidence: %w", err)
	}
	return nil
}

// GetEvidence retrieves an evidence row by ID, scoped to tenant.
func (s *Postgres) GetEvidence(ctx context.Context, tenantID, id string) (model.Evidence, error) {
	ev, err := scanEvidence(s.pool.QueryRow(ctx, `
		SELECT `+evidenceColumns+`
		FROM evidence
		WHERE id = $1 AND tenant_id = $2`,
		id, tenantID,
	))
	if err == pgx.ErrNoRows {
		return model.Evidence{}, model.NewNotFoundError(fmt.Sprintf("evidence %q not found", id))
	}
	if err != nil {
		return model.Evidence{}, fmt.Errorf("query evidence: %w", err)
	}
	return ev, nil
}

// ListEvidence returns evidence for a tenant, optionally narrowed to one
// polymorphic target or one check-in. The ref is not dereferenced here:
// rows whose target was deleted are still returned.
func (s *Postgres) ListEvidence(ctx context.Context, tenantID string, ref model.EntityRef, checkInID string) ([]model.Evidence, error) {
	query := `SELECT ` + evidenceColumns + ` FROM evidence WHERE tenant_id = $1`
	args := []any{tenantID}
	argIdx := 2

	if !ref.Zero() {
		query += fmt.Sprintf(" AND entity_type = $%d AND entity_id = $%d", argIdx, argIdx+1)
		args = append(args, ref.Type, ref.ID)
		argIdx += 2
	}
	if checkInID != "" {
		query += fmt.Sprintf(" AND check_in_id = $%d", argIdx)
		args = append(args, checkInID)
	}

	query += " ORDER BY created_at DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query evidence: %w", err)
	}
	defer rows.Close()

	var evidence []model.Evidence
	for rows.Next() {
		ev, err := scanEvidence(rows)
		if err != nil {
			return nil, fmt.Errorf("scan evidence: %w", err)
		}
		evidence = append(evidence, ev)
	}
	return evidence, rows.Err()
}

// DeleteEvidence removes an evidence row.
func (s *Postgres) DeleteEvidence(ctx context.Context, tenantID, id string) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM evidence WHERE id = $1 AND tenant_id = $2`,
		id, tenantID,
	)
	if err != nil {
		return fmt.Errorf("delete evidence: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewNotFoundError(fmt.Sprintf("evidence %q not found", id))
	}
	return nil
}
