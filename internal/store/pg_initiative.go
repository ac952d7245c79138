package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/oselo/compass/model"
)

const initiativeColumns = `id, tenant_id, cycle_id, area_id, owner_id, name, problem_statement,
		expected_outcome, status, priority, effort, impact, due_date, created_at, updated_at`

func scanInitiative(row pgx.Row) (model.Initiative, error) {
	var in model.Initiative
	err := row.Scan(
		&in.ID, &in.TenantID, &in.CycleID, &in.AreaID, &in.OwnerID, &in.Name, &in.ProblemStatement,
		&in.ExpectedOutcome, &in.Status, &in.Priority, &in.Effort, &in.Impact, &in.DueDate,
		&in.CreatedAt, &in.UpdatedAt,
	)
	return in, err
}

// CreateInitiative inserts a new initiative.
func (s *Postgres) CreateInitiative(ctx context.Context, in model.Initiative) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO initiatives (`+initiativeColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		in.ID, in.TenantID, in.CycleID, in.AreaID, in.OwnerID, in.Name, in.ProblemStatement,
		in.ExpectedOutcome, in.Status, in.Priority, in.Effort, in.Impact, in.DueDate,
		in.CreatedAt, in.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert initiative: %w", err)
	}
	return nil
}

// GetInitiative retrieves an initiative by ID, scoped to tenant.
func (s *Postgres) GetInitiative(ctx context.Context, tenantID, id string) (model.Initiative, error) {
	in, err := scanInitiative(s.pool.QueryRow(ctx, `
		SELECT `+initiativeColumns+`
		FROM initiatives
		WHERE id = $1 AND tenant_id = $2`,
		id, tenantID,
	))
	if err == pgx.ErrNoRows {
		return model.Initiative{}, model.NewNotFoundError(fmt.Sprintf("initiative %q not found", id))
	}
	if err != nil {
		return model.Initiative{}, fmt.Errorf("query initiative: %w", err)
	}
	return in, nil
}

// ListInitiatives returns initiatives matching the filters, newest first.
func (s *Postgres) ListInitiatives(ctx context.Context, tenantID string, f ListFilters) ([]model.Initiative, error) {
	query := `SELECT ` + initiativeColumns + ` FROM initiatives WHERE tenant_id = $1`
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
	if f.ObjectiveID != "" {
		query += fmt.Sprintf(" AND id IN (SELECT initiative_id FROM objective_initiatives WHERE objective_id = $%d)", argIdx)
		args = append(args, f.ObjectiveID)
		argIdx++
	}
	if f.Query != "" {
		query += fmt.Sprintf(" AND (name ILIKE $%d OR problem_statement ILIKE $%d)", argIdx, argIdx)
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

	return s.queryInitiatives(ctx, query, args...)
}

func (s *Postgres) queryInitiatives(ctx context.Context, query string, args ...any) ([]model.Initiative, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query initiatives: %w", err)
	}
	defer rows.Close()

	var initiatives []model.Initiative
	for rows.Next() {
		in, err := scanInitiative(rows)
		if err != nil {
			return nil, fmt.Errorf("scan initiative: %w", err)
		}
		initiatives = append(initiatives, in)
	}
	return initiatives, rows.Err()
}

// UpdateInitiative persists an updated initiative.
func (s *Postgres) UpdateInitiative(ctx context.Context, in model.Initiative) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE initiatives SET
			cycle_id = $1, area_id = $2, owner_id = $3, name = $4, problem_statement = $5,
			expected_outcome = $6, status = $7, priority = $8, effort = $9, impact = $10,
			due_date = $11, updated_at = $12
		WHERE id = $13 AND tenant_id = $14`,
		in.CycleID, in.AreaID, in.OwnerID, in.Name, in.ProblemStatement,
		in.ExpectedOutcome, in.Status, in.Priority, in.Effort, in.Impact,
		in.DueDate, time.Now().UTC(),
		in.ID, in.TenantID,
	)
	if err != nil {
		return fmt.Errorf("update initiative: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewNotFoundError(fmt.Sprintf("initiative %q not found", in.ID))
	}
	return nil
}

// DeleteInitiative removes an initiative. Its work items, budget items, and
// objective links go with it via ON DELETE CASCADE; polymorphic rows
// pointing at it are left dangling.
func (s *Postgres) DeleteInitiative(ctx context.Context, tenantID, id string) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM initiatives WHERE id = $1 AND tenant_id = $2`,
		id, tenantID,
	)
	if err != nil {
		return fmt.Errorf("delete initiative: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewNotFoundError(fmt.Sprintf("initiative %q not found", id))
	}
	return nil
}

// LinkObjective creates a weighted objective-initiative link.
func (s *Postgres) LinkObjective(ctx context.Context, link model.ObjectiveInitiative) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO objective_initiatives (
			id, tenant_id, objective_id, initiative_id, relation_type, weight, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		link.ID, link.TenantID, link.ObjectiveID, link.InitiativeID,
		link.RelationType, link.Weight, link.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert objective link: %w", err)
	}
	return nil
}

// UnlinkObjective removes an objective-initiative link.
func (s *Postgres) UnlinkObjective(ctx context.Context, tenantID, linkID string) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM objective_initiatives WHERE id = $1 AND tenant_id = $2`,
		linkID, tenantID,
	)
	if err != nil {
		return fmt.Errorf("delete objective link: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewNotFoundError(fmt.Sprintf("objective link %q not found", linkID))
	}
	return nil
}

// ListObjectiveLinks returns an initiative's objective links.
func (s *Postgres) ListObjectiveLinks(ctx context.Context, tenantID, initiativeID string) ([]model.ObjectiveInitiative, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, tenant_id, objective_id, initiative_id, relation_type, weight, created_at
		FROM objective_initiatives
		WHERE tenant_id = $1 AND initiative_id = $2
		ORDER BY created_at ASC`,
		tenantID, initiativeID,
	)
	if err != nil {
		return nil, fmt.Errorf("query objective links: %w", err)
	}
	defer rows.Close()

	var links []model.ObjectiveInitiative
	for rows.Next() {
		var l model.ObjectiveInitiative
		if err := rows.Scan(&l.ID, &l.TenantID, &l.ObjectiveID, &l.InitiativeID,
			&l.RelationType, &l.Weight, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan objective link: %w", err)
		}
		links = append(links, l)
	}
	return links, rows.Err()
}
