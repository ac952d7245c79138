// Package dashboard serves the read-only aggregation queries behind the
// dashboard screen. Every query is computed from the store at request time
// and scoped to an explicitly supplied cycle; there is no cached or global
// "current cycle" state.
package dashboard

import (
	"context"

	"github.com/oselo/compass/internal/config"
	"github.com/oselo/compass/internal/store"
	"github.com/oselo/compass/model"
)

// Provider answers dashboard queries over a DashboardStore.
type Provider struct {
	store store.DashboardStore
	cfg   config.DashboardConfig
}

// NewProvider creates a dashboard provider with the given aggregation
// settings.
func NewProvider(st store.DashboardStore, cfg config.DashboardConfig) *Provider {
	return &Provider{store: st, cfg: cfg}
}

// Overview is the full dashboard payload for one cycle.
type Overview struct {
	CycleID      string                  `json:"cycle_id"`
	Stats        model.DashboardStats    `json:"stats"`
	Blocked      model.BlockedItems      `json:"blocked"`
	Stale        []model.Initiative      `json:"stale_initiatives"`
	HighPriority model.HighPriorityItems `json:"high_priority"`
}

// Stats returns the status counts for the cycle's objectives, key results,
// and initiatives. A cycle with no content yields empty bucket lists.
func (p *Provider) Stats(ctx context.Context, rctx *model.RequestContext, cycleID string) (model.DashboardStats, error) {
	return p.store.StatusCounts(ctx, rctx.TenantID, cycleID)
}

// BlockedItems returns the cycle's objectives and initiatives whose status
// is at_risk or off_track.
func (p *Provider) BlockedItems(ctx context.Context, rctx *model.RequestContext, cycleID string) (model.BlockedItems, error) {
	return p.store.BlockedItems(ctx, rctx.TenantID, cycleID)
}

// StaleInitiatives returns the cycle's initiatives with no evidence
// recorded within the configured staleness window, capped at the configured
// page size. An initiative that never produced evidence is stale.
func (p *Provider) StaleInitiatives(ctx context.Context, rctx *model.RequestContext, cycleID string) ([]model.Initiative, error) {
	return p.store.StaleInitiatives(ctx, rctx.TenantID, cycleID, p.cfg.StaleDays, p.cfg.StalePageSize)
}

// HighPriorityItems returns the cycle's high and critical priority
// objectives and initiatives, each list capped at the configured limit.
func (p *Provider) HighPriorityItems(ctx context.Context, rctx *model.RequestContext, cycleID string) (model.HighPriorityItems, error) {
	return p.store.HighPriorityItems(ctx, rctx.TenantID, cycleID, p.cfg.HighPriorityCap)
}

// Load assembles the whole dashboard for one cycle in a single call.
func (p *Provider) Load(ctx context.Context, rctx *model.RequestContext, cycleID string) (Overview, error) {
	stats, err := p.Stats(ctx, rctx, cycleID)
	if err != nil {
		return Overview{}, err
	}
	blocked, err := p.BlockedItems(ctx, rctx, cycleID)
	if err != nil {
		return Overview{}, err
	}
	stale, err := p.StaleInitiatives(ctx, rctx, cycleID)
	if err != nil {
		return Overview{}, err
	}
	high, err := p.HighPriorityItems(ctx, rctx, cycleID)
	if err != nil {
		return Overview{}, err
	}
	return Overview{
		CycleID:      cycleID,
		Stats:        stats,
		Blocked:      blocked,
		Stale:        stale,
		HighPriority: high,
	}, nil
}
