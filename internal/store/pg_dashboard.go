package store

import (
	"context"
	"fmt"
	"time"

	"github.com/oselo/compass/model"
)

// StatusCounts groups the cycle's objectives, key results, and initiatives
// by status. Key results are scoped through their parent objective. An empty
// cycle yields empty bucket lists, not an error.
func (s *Postgres) StatusCounts(ctx context.Context, tenantID, cycleID string) (model.DashboardStats, error) {
	var stats model.DashboardStats

	counts, err := s.statusBuckets(ctx, `
		SELECT status, COUNT(*)
		FROM objectives
		WHERE tenant_id = $1 AND cycle_id = $2
		GROUP BY status
		ORDER BY status`,
		tenantID, cycleID,
	)
	if err != nil {
		return model.DashboardStats{}, fmt.Errorf("count objectives: %w", err)
	}
	stats.Objectives = counts

	counts, err = s.statusBuckets(ctx, `
		SELECT kr.status, COUNT(*)
		FROM key_results kr
		JOIN objectives o ON o.id = kr.objective_id
		WHERE kr.tenant_id = $1 AND o.cycle_id = $2
		GROUP BY kr.status
		ORDER BY kr.status`,
		tenantID, cycleID,
	)
	if err != nil {
		return model.DashboardStats{}, fmt.Errorf("count key results: %w", err)
	}
	stats.KeyResults = counts

	counts, err = s.statusBuckets(ctx, `
		SELECT status, COUNT(*)
		FROM initiatives
		WHERE tenant_id = $1 AND cycle_id = $2
		GROUP BY status
		ORDER BY status`,
		tenantID, cycleID,
	)
	if err != nil {
		return model.DashboardStats{}, fmt.Errorf("count initiatives: %w", err)
	}
	stats.Initiatives = counts

	return stats, nil
}

func (s *Postgres) statusBuckets(ctx context.Context, query string, args ...any) ([]model.StatusCount, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []model.StatusCount{}
	for rows.Next() {
		var c model.StatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// BlockedItems returns the objectives and initiatives in the cycle whose
// status is at_risk or off_track.
func (s *Postgres) BlockedItems(ctx context.Context, tenantID, cycleID string) (model.BlockedItems, error) {
	var blocked model.BlockedItems

	rows, err := s.pool.Query(ctx, `
		SELECT `+objectiveColumns+`
		FROM objectives
		WHERE tenant_id = $1 AND cycle_id = $2 AND status IN ($3, $4)
		ORDER BY created_at ASC`,
		tenantID, cycleID, model.StatusAtRisk, model.StatusOffTrack,
	)
	if err != nil {
		return model.BlockedItems{}, fmt.Errorf("query blocked objectives: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		o, err := scanObjective(rows)
		if err != nil {
			return model.BlockedItems{}, fmt.Errorf("scan blocked objective: %w", err)
		}
		blocked.Objectives = append(blocked.Objectives, o)
	}
	if err := rows.Err(); err != nil {
		return model.BlockedItems{}, err
	}

	rows, err = s.pool.Query(ctx, `
		SELECT `+initiativeColumns+`
		FROM initiatives
		WHERE tenant_id = $1 AND cycle_id = $2 AND status IN ($3, $4)
		ORDER BY created_at ASC`,
		tenantID, cycleID, model.StatusAtRisk, model.StatusOffTrack,
	)
	if err != nil {
		return model.BlockedItems{}, fmt.Errorf("query blocked initiatives: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		in, err := scanInitiative(rows)
		if err != nil {
			return model.BlockedItems{}, fmt.Errorf("scan blocked initiative: %w", err)
		}
		blocked.Initiatives = append(blocked.Initiatives, in)
	}
	return blocked, rows.Err()
}

// StaleInitiatives returns up to limit initiatives in the cycle with no
// evidence created within the last staleDays days. Initiatives with no
// evidence at all are included; oldest initiatives come first.
func (s *Postgres) StaleInitiatives(ctx context.Context, tenantID, cycleID string, staleDays, limit int) ([]model.Initiative, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -staleDays)

	rows, err := s.pool.Query(ctx, `
		SELECT `+prefixColumns("i", initiativeColumns)+`
		FROM initiatives i
		WHERE i.tenant_id = $1 AND i.cycle_id = $2
		  AND NOT EXISTS (
			SELECT 1 FROM evidence e
			WHERE e.tenant_id = i.tenant_id
			  AND e.entity_type = $3
			  AND e.entity_id = i.id
			  AND e.created_at >= $4
		  )
		ORDER BY i.created_at ASC
		LIMIT $5`,
		tenantID, cycleID, model.EntityInitiative, cutoff, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query stale initiatives: %w", err)
	}
	defer rows.Close()

	var stale []model.Initiative
	for rows.Next() {
		in, err := scanInitiative(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stale initiative: %w", err)
		}
		stale = append(stale, in)
	}
	return stale, rows.Err()
}

// HighPriorityItems returns the high and critical priority objectives and
// initiatives in the cycle, each list capped at limit. Objectives order
// critical before high; initiatives order by ascending due date with undated
// ones last.
func (s *Postgres) HighPriorityItems(ctx context.Context, tenantID, cycleID string, limit int) (model.HighPriorityItems, error) {
	var items model.HighPriorityItems

	rows, err := s.pool.Query(ctx, `
		SELECT `+objectiveColumns+`
		FROM objectives
		WHERE tenant_id = $1 AND cycle_id = $2 AND priority IN ($3, $4)
		ORDER BY CASE priority WHEN $4 THEN 0 ELSE 1 END, created_at ASC
		LIMIT $5`,
		tenantID, cycleID, model.PriorityHigh, model.PriorityCritical, limit,
	)
	if err != nil {
		return model.HighPriorityItems{}, fmt.Errorf("query high priority objectives: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		o, err := scanObjective(rows)
		if err != nil {
			return model.HighPriorityItems{}, fmt.Errorf("scan high priority objective: %w", err)
		}
		items.Objectives = append(items.Objectives, o)
	}
	if err := rows.Err(); err != nil {
		return model.HighPriorityItems{}, err
	}

	rows, err = s.pool.Query(ctx, `
		SELECT `+initiativeColumns+`
		FROM initiatives
		WHERE tenant_id = $1 AND cycle_id = $2 AND priority IN ($3, $4)
		ORDER BY due_date ASC NULLS LAST, created_at ASC
		LIMIT $5`,
		tenantID, cycleID, model.PriorityHigh, model.PriorityCritical, limit,
	)
	if err != nil {
		return model.HighPriorityItems{}, fmt.Errorf("query high priority initiatives: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		in, err := scanInitiative(rows)
		if err != nil {
			return model.HighPriorityItems{}, fmt.Errorf("scan high priority initiative: %w", err)
		}
		items.Initiatives = append(items.Initiatives, in)
	}
	return items, rows.Err()
}
