package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/oselo/compass/model"
)

// CreateArea inserts a new area.
func (s *Postgres) CreateArea(ctx context.Context, a model.Area) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO areas (id, tenant_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.TenantID, a.Name, a.Description, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert area: %w", err)
	}
	return nil
}

// GetArea retrieves an area by ID, scoped to tenant.
func (s *Postgres) GetArea(ctx context.Context, tenantID, id string) (model.Area, error) {
	var a model.Area
	err := s.pool.QueryRow(ctx, `
		SELECT id, tenant_id, name, description, created_at, updated_at
		FROM areas
		WHERE id = $1 AND tenant_id = $2`,
		id, tenantID,
	).Scan(&a.ID, &a.TenantID, &a.Name, &a.Description, &a.CreatedAt, &a.UpdatedAt)
	if err == pgx.ErrNoRows {
		return model.Area{}, model.NewNotFoundError(fmt.Sprintf("area %q not found", id))
	}
	if err != nil {
		return model.Area{}, fmt.Errorf("query area: %w", err)
	}
	return a, nil
}

// ListAreas returns all areas for a tenant, sorted by name.
func (s *Postgres) ListAreas(ctx context.Context, tenantID string) ([]model.Area, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, tenant_id, name, description, created_at, updated_at
		FROM areas
		WHERE tenant_id = $1
		ORDER BY name ASC`,
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("query areas: %w", err)
	}
	defer rows.Close()

	var areas []model.Area
	for rows.Next() {
		var a model.Area
		if err := rows.Scan(&a.ID, &a.TenantID, &a.Name, &a.Description, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan area: %w", err)
		}
		areas = append(areas, a)
	}
	return areas, rows.Err()
}

// UpdateArea persists an updated area.
func (s *Postgres) UpdateArea(ctx context.Context, a model.Area) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE areas SET name = $1, description = $2, updated_at = $3
		WHERE id = $4 AND tenant_id = $5`,
		a.Name, a.Description, time.Now().UTC(), a.ID, a.TenantID,
	)
	if err != nil {
		return fmt.Errorf("update area: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewNotFoundError(fmt.Sprintf("area %q not found", a.ID))
	}
	return nil
}

// DeleteArea removes an area. Objectives, initiatives, and owners keep their
// stored area id and fall back to an unknown label when it no longer resolves.
func (s *Postgres) DeleteArea(ctx context.Context, tenantID, id string) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM areas WHERE id = $1 AND tenant_id = $2`,
		id, tenantID,
	)
	if err != nil {
		return fmt.Errorf("delete area: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewNotFoundError(fmt.Sprintf("area %q not found", id))
	}
	return nil
}

// CreateOwner inserts a new owner.
func (s *Postgres) CreateOwner(ctx context.Context, o model.Owner) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO owners (id, tenant_id, name, email, role, subject_id, area_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		o.ID, o.TenantID, o.Name, o.Email, o.Role, o.SubjectID, o.AreaID, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert owner: %w", err)
	}
	return nil
}

// GetOwner retrieves an owner by ID, scoped to tenant.
func (s *Postgres) GetOwner(ctx context.Context, tenantID, id string) (model.Owner, error) {
	var o model.Owner
	err := s.pool.QueryRow(ctx, `
		SELECT id, tenant_id, name, email, role, subject_id, area_id, created_at, updated_at
		FROM owners
		WHERE id = $1 AND tenant_id = $2`,
		id, tenantID,
	).Scan(&o.ID, &o.TenantID, &o.Name, &o.Email, &o.Role, &o.SubjectID, &o.AreaID, &o.CreatedAt, &o.UpdatedAt)
	if err == pgx.ErrNoRows {
		return model.Owner{}, model.NewNotFoundError(fmt.Sprintf("owner %q not found", id))
	}
	if err != nil {
		return model.Owner{}, fmt.Errorf("query owner: %w", err)
	}
	return o, nil
}

// ListOwners returns all owners for a tenant, sorted by name.
func (s *Postgres) ListOwners(ctx context.Context, tenantID string) ([]model.Owner, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, tenant_id, name, email, role, subject_id, area_id, created_at, updated_at
		FROM owners
		WHERE tenant_id = $1
		ORDER BY name ASC`,
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("query owners: %w", err)
	}
	defer rows.Close()

	var owners []model.Owner
	for rows.Next() {
		var o model.Owner
		if err := rows.Scan(&o.ID, &o.TenantID, &o.Name, &o.Email, &o.Role, &o.SubjectID, &o.AreaID, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan owner: %w", err)
		}
		owners = append(owners, o)
	}
	return owners, rows.Err()
}

// UpdateOwner persists an updated owner.
func (s *Postgres) UpdateOwner(ctx context.Context, o model.Owner) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE owners SET
			name = $1, email = $2, role = $3, subject_id = $4, area_id = $5, updated_at = $6
		WHERE id = $7 AND tenant_id = $8`,
		o.Name, o.Email, o.Role, o.SubjectID, o.AreaID, time.Now().UTC(),
		o.ID, o.TenantID,
	)
	if err != nil {
		return fmt.Errorf("update owner: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewNotFoundError(fmt.Sprintf("owner %q not found", o.ID))
	}
	return nil
}

// DeleteOwner removes an owner. Entities keep their stored owner id and fall
// back to an unknown label when it no longer resolves.
func (s *Postgres) DeleteOwner(ctx context.Context, tenantID, id string) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM owners WHERE id = $1 AND tenant_id = $2`,
		id, tenantID,
	)
	if err != nil {
		return fmt.Errorf("delete owner: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewNotFoundError(fmt.Sprintf("owner %q not found", id))
	}
	return nil
}
