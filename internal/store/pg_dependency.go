package store

import (
	"context"
	"fmt"

	"github.com/oselo/compass/model"
)

// CreateDependency inserts a new dependency edge. Edges are stored as-is:
// no cycle detection or transitive validation is performed.
func (s *Postgres) CreateDependency(ctx context.Context, d model.Dependency) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO dependencies (
			id, tenant_id, from_type, from_id, to_type, to_id, type, description, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		d.ID, d.TenantID, d.From.Type, d.From.ID, d.To.Type, d.To.ID,
		d.Type, d.Description, d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert dependency: %w", err)
	}
	return nil
}

// ListDependencies returns dependency edges for a tenant. When ref is set,
// only edges touching that entity (on either end) are returned.
func (s *Postgres) ListDependencies(ctx context.Context, tenantID string, ref model.EntityRef) ([]model.Dependency, error) {
	query := `
		SELECT id, tenant_id, from_type, from_id, to_type, to_id, type, description, created_at
		FROM dependencies
		WHERE tenant_id = $1`
	args := []any{tenantID}

	if !ref.Zero() {
		query += ` AND ((from_type = $2 AND from_id = $3) OR (to_type = $2 AND to_id = $3))`
		args = append(args, ref.Type, ref.ID)
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query dependencies: %w", err)
	}
	defer rows.Close()

	var deps []model.Dependency
	for rows.Next() {
		var d model.Dependency
		if err := rows.Scan(&d.ID, &d.TenantID, &d.From.Type, &d.From.ID, &d.To.Type, &d.To.ID,
			&d.Type, &d.Description, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan dependency: %w", err)
		}
		deps = append(deps, d)
	}
	return deps, rows.Err()
}

// DeleteDependency removes a dependency edge.
func (s *Postgres) DeleteDependency(ctx context.Context, tenantID, id string) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM dependencies WHERE id = $1 AND tenant_id = $2`,
		id, tenantID,
	)
	if err != nil {
		return fmt.Errorf("delete dependency: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewNotFoundError(fmt.Sprintf("dependency %q not found", id))
	}
	return nil
}
