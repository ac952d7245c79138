package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/oselo/compass/model"
)

const keyResultColumns = `id, tenant_id, objective_id, owner_id, title, baseline_value,
		target_value, current_value, unit, scoring_method, status, confidence,
		created_at, updated_at`

func scanKeyResult(row pgx.Row) (model.KeyResult, error) {
	var kr model.KeyResult
	err := row.Scan(
		&kr.ID, &kr.TenantID, &kr.ObjectiveID, &kr.OwnerID, &kr.Title, &kr.BaselineValue,
		&kr.TargetValue, &kr.CurrentValue, &kr.Unit, &kr.ScoringMethod, &kr.Status,
		&kr.Confidence, &kr.CreatedAt, &kr.UpdatedAt,
	)
	return kr, err
}

// CreateKeyResult inserts a new key result.
func (s *Postgres) CreateKeyResult(ctx context.Context, kr model.KeyResult) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO key_results (`+keyResultColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		kr.ID, kr.TenantID, kr.ObjectiveID, kr.OwnerID, kr.Title, kr.BaselineValue,
		kr.TargetValue, kr.CurrentValue, kr.Unit, kr.ScoringMethod, kr.Status,
		kr.Confidence, kr.CreatedAt, kr.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert key result: %w", err)
	}
	return nil
}

// GetKeyResult retrieves a key result by ID, scoped to tenant.
func (s *Postgres) GetKeyResult(ctx context.Context, tenantID, id string) (model.KeyResult, error) {
	kr, err := scanKeyResult(s.pool.QueryRow(ctx, `
		SELECT `+keyResultColumns+`
		FROM key_results
		WHERE id = $1 AND tenant_id = $2`,
		id, tenantID,
	))
	if err == pgx.ErrNoRows {
		return model.KeyResult{}, model.NewNotFoundError(fmt.Sprintf("key result %q not found", id))
	}
	if err != nil {
		return model.KeyResult{}, fmt.Errorf("query key result: %w", err)
	}
	return kr, nil
}

// ListKeyResults returns key results matching the filters. When CycleID is
// set, key results are scoped to the cycle through their parent objective.
func (s *Postgres) ListKeyResults(ctx context.Context, tenantID string, f ListFilters) ([]model.KeyResult, error) {
	query := `SELECT ` + prefixColumns("kr", keyResultColumns) + `
		FROM key_results kr
		WHERE kr.tenant_id = $1`
	args := []any{tenantID}
	argIdx := 2

	if f.ObjectiveID != "" {
		query += fmt.Sprintf(" AND kr.objective_id = $%d", argIdx)
		args = append(args, f.ObjectiveID)
		argIdx++
	}
	if f.CycleID != "" {
		query += fmt.Sprintf(" AND kr.objective_id IN (SELECT id FROM objectives WHERE cycle_id = $%d)", argIdx)
		args = append(args, f.CycleID)
		argIdx++
	}
	if f.Status != "" {
		query += fmt.Sprintf(" AND kr.status = $%d", argIdx)
		args = append(args, f.Status)
		argIdx++
	}
	if f.OwnerID != "" {
		query += fmt.Sprintf(" AND kr.owner_id = $%d", argIdx)
		args = append(args, f.OwnerID)
		argIdx++
	}
	if f.Query != "" {
		query += fmt.Sprintf(" AND kr.title ILIKE $%d", argIdx)
		args = append(args, "%"+f.Query+"%")
		argIdx++
	}

	query += " ORDER BY kr.created_at DESC"
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
		return nil, fmt.Errorf("query key results: %w", err)
	}
	defer rows.Close()

	var results []model.KeyResult
	for rows.Next() {
		kr, err := scanKeyResult(rows)
		if err != nil {
			return nil, fmt.Errorf("scan key result: %w", err)
		}
		results = append(results, kr)
	}
	return results, rows.Err()
}

// UpdateKeyResult persists an updated key result.
func (s *Postgres) UpdateKeyResult(ctx context.Context, kr model.KeyResult) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE key_results SET
			owner_id = $1, title = $2, baseline_value = $3, target_value = $4,
			current_value = $5, unit = $6, scoring_method = $7, status = $8,
			confidence = $9, updated_at = $10
		WHERE id = $11 AND tenant_id = $12`,
		kr.OwnerID, kr.Title, kr.BaselineValue, kr.TargetValue,
		kr.CurrentValue, kr.Unit, kr.ScoringMethod, kr.Status,
		kr.Confidence, time.Now().UTC(),
		kr.ID, kr.TenantID,
	)
	if err != nil {
		return fmt.Errorf("update key result: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewNotFoundError(fmt.Sprintf("key result %q not found", kr.ID))
	}
	return nil
}

// DeleteKeyResult removes a key result and, via cascade, its check-ins.
func (s *Postgres) DeleteKeyResult(ctx context.Context, tenantID, id string) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM key_results WHERE id = $1 AND tenant_id = $2`,
		id, tenantID,
	)
	if err != nil {
		return fmt.Errorf("delete key result: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewNotFoundError(fmt.Sprintf("key result %q not found", id))
	}
	return nil
}

// RecordCheckIn performs the check-in triple write in one transaction:
// the check-in row (capturing the prior current value), the evidence rows
// linked to it, and the key result's new current value. The key result row
// is locked for the duration so concurrent check-ins serialize and each
// PreviousValue reflects the value it actually replaced.
func (s *Postgres) RecordCheckIn(ctx context.Context, ci model.KeyResultCheckIn, evidence []model.EvidenceInput) (model.KeyResultCheckIn, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return model.KeyResultCheckIn{}, fmt.Errorf("begin check-in: %w", err)
	}
	defer tx.Rollback(ctx)

	var previous string
	err = tx.QueryRow(ctx, `
		SELECT current_value FROM key_results
		WHERE id = $1 AND tenant_id = $2
		FOR UPDATE`,
		ci.KeyResultID, ci.TenantID,
	).Scan(&previous)
	if err == pgx.ErrNoRows {
		return model.KeyResultCheckIn{}, model.NewNotFoundError(
			fmt.Sprintf("key result %q not found", ci.KeyResultID),
		)
	}
	if err != nil {
		return model.KeyResultCheckIn{}, fmt.Errorf("lock key result: %w", err)
	}

	ci.PreviousValue = previous

	_, err = tx.Exec(ctx, `
		INSERT INTO key_result_check_ins (
			id, tenant_id, key_result_id, value, previous_value, comment, created_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		ci.ID, ci.TenantID, ci.KeyResultID, ci.Value, ci.PreviousValue,
		ci.Comment, ci.CreatedBy, ci.CreatedAt,
	)
	if err != nil {
		return model.KeyResultCheckIn{}, fmt.Errorf("insert check-in: %w", err)
	}

	for _, ev := range evidence {
		_, err = tx.Exec(ctx, `
			INSERT INTO evidence (
				id, tenant_id, entity_type, entity_id, check_in_id, title, url, type, created_by, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			uuid.NewString(), ci.TenantID, model.EntityKeyResult, ci.KeyResultID, ci.ID,
			ev.Name, ev.URL, model.EvidenceLink, ci.CreatedBy, ci.CreatedAt,
		)
		if err != nil {
			return model.KeyResultCheckIn{}, fmt.Errorf("insert check-in evidence: %w", err)
		}
	}

	_, err = tx.Exec(ctx, `
		UPDATE key_results SET current_value = $1, updated_at = $2
		WHERE id = $3 AND tenant_id = $4`,
		ci.Value, time.Now().UTC(), ci.KeyResultID, ci.TenantID,
	)
	if err != nil {
		return model.KeyResultCheckIn{}, fmt.Errorf("advance current value: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return model.KeyResultCheckIn{}, fmt.Errorf("commit check-in: %w", err)
	}
	return ci, nil
}

// DeleteCheckIn removes the check-in row only. The key result's current
// value is deliberately not reverted; an erroneous check-in must be
// corrected with a follow-up check-in. Deleting a missing check-in is a
// no-op.
func (s *Postgres) DeleteCheckIn(ctx context.Context, tenantID, id string) error {
	_, err := s.pool.Exec(ctx, `
		DELETE FROM key_result_check_ins WHERE id = $1 AND tenant_id = $2`,
		id, tenantID,
	)
	if err != nil {
		return fmt.Errorf("delete check-in: %w", err)
	}
	return nil
}

// ListCheckIns returns a key result's check-ins, newest first.
func (s *Postgres) ListCheckIns(ctx context.Context, tenantID, keyResultID string) ([]model.KeyResultCheckIn, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, tenant_id, key_result_id, value, previous_value, comment, created_by, created_at
		FROM key_result_check_ins
		WHERE tenant_id = $1 AND key_result_id = $2
		ORDER BY created_at DESC`,
		tenantID, keyResultID,
	)
	if err != nil {
		return nil, fmt.Errorf("query check-ins: %w", err)
	}
	defer rows.Close()

	var checkIns []model.KeyResultCheckIn
	for rows.Next() {
		var ci model.KeyResultCheckIn
		if err := rows.Scan(&ci.ID, &ci.TenantID, &ci.KeyResultID, &ci.Value,
			&ci.PreviousValue, &ci.Comment, &ci.CreatedBy, &ci.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan check-in: %w", err)
		}
		checkIns = append(checkIns, ci)
	}
	return checkIns, rows.Err()
}
