package store

import (
	"context"
	"sort"
	"time"

	"github.com/oselo/compass/model"
)

// StatusCounts groups the cycle's objectives, key results, and initiatives
// by status.
func (s *Memory) StatusCounts(_ context.Context, tenantID, cycleID string) (model.DashboardStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	objectiveCounts := map[string]int{}
	keyResultCounts := map[string]int{}
	initiativeCounts := map[string]int{}

	for _, o := range s.objectives {
		if o.TenantID == tenantID && o.CycleID == cycleID {
			objectiveCounts[string(o.Status)]++
		}
	}
	for _, kr := range s.keyResults {
		if kr.TenantID != tenantID {
			continue
		}
		parent, ok := s.objectives[kr.ObjectiveID]
		if ok && parent.CycleID == cycleID {
			keyResultCounts[string(kr.Status)]++
		}
	}
	for _, in := range s.initiatives {
		if in.TenantID == tenantID && in.CycleID == cycleID {
			initiativeCounts[string(in.Status)]++
		}
	}

	return model.DashboardStats{
		Objectives:  toBuckets(objectiveCounts),
		KeyResults:  toBuckets(keyResultCounts),
		Initiatives: toBuckets(initiativeCounts),
	}, nil
}

func toBuckets(counts map[string]int) []model.StatusCount {
	buckets := []model.StatusCount{}
	for status, count := range counts {
		buckets = append(buckets, model.StatusCount{Status: status, Count: count})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Status < buckets[j].Status
	})
	return buckets
}

// BlockedItems returns the objectives and initiatives in the cycle whose
// status is at_risk or off_track.
func (s *Memory) BlockedItems(_ context.Context, tenantID, cycleID string) (model.BlockedItems, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var blocked model.BlockedItems
	for _, o := range s.objectives {
		if o.TenantID == tenantID && o.CycleID == cycleID && o.Status.Blocked() {
			blocked.Objectives = append(blocked.Objectives, o)
		}
	}
	for _, in := range s.initiatives {
		if in.TenantID == tenantID && in.CycleID == cycleID && in.Status.Blocked() {
			blocked.Initiatives = append(blocked.Initiatives, in)
		}
	}
	sort.Slice(blocked.Objectives, func(i, j int) bool {
		return blocked.Objectives[i].CreatedAt.Before(blocked.Objectives[j].CreatedAt)
	})
	sort.Slice(blocked.Initiatives, func(i, j int) bool {
		return blocked.Initiatives[i].CreatedAt.Before(blocked.Initiatives[j].CreatedAt)
	})
	return blocked, nil
}

// StaleInitiatives returns up to limit initiatives in the cycle with no
// evidence created within the last staleDays days, oldest first.
func (s *Memory) StaleInitiatives(_ context.Context, tenantID, cycleID string, staleDays, limit int) ([]model.Initiative, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cutoff := time.Now().UTC().AddDate(0, 0, -staleDays)

	fresh := map[string]bool{}
	for _, ev := range s.evidence {
		if ev.TenantID == tenantID && ev.Ref.Type == model.EntityInitiative && !ev.CreatedAt.Before(cutoff) {
			fresh[ev.Ref.ID] = true
		}
	}

	var stale []model.Initiative
	for _, in := range s.initiatives {
		if in.TenantID == tenantID && in.CycleID == cycleID && !fresh[in.ID] {
			stale = append(stale, in)
		}
	}
	sort.Slice(stale, func(i, j int) bool {
		return stale[i].CreatedAt.Before(stale[j].CreatedAt)
	})
	if limit > 0 && limit < len(stale) {
		stale = stale[:limit]
	}
	return stale, nil
}

// HighPriorityItems returns the high and critical priority objectives and
// initiatives in the cycle, each list capped at limit.
func (s *Memory) HighPriorityItems(_ context.Context, tenantID, cycleID string, limit int) (model.HighPriorityItems, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var items model.HighPriorityItems
	for _, o := range s.objectives {
		if o.TenantID == tenantID && o.CycleID == cycleID &&
			(o.Priority == model.PriorityHigh || o.Priority == model.PriorityCritical) {
			items.Objectives = append(items.Objectives, o)
		}
	}
	for _, in := range s.initiatives {
		if in.TenantID == tenantID && in.CycleID == cycleID &&
			(in.Priority == model.PriorityHigh || in.Priority == model.PriorityCritical) {
			items.Initiatives = append(items.Initiatives, in)
		}
	}

	// Critical before high, then oldest first.
	sort.Slice(items.Objectives, func(i, j int) bool {
		ri, rj := items.Objectives[i].Priority.Rank(), items.Objectives[j].Priority.Rank()
		if ri != rj {
			return ri < rj
		}
		return items.Objectives[i].CreatedAt.Before(items.Objectives[j].CreatedAt)
	})
	// Earliest due date first; undated initiatives sort last.
	sort.Slice(items.Initiatives, func(i, j int) bool {
		di, dj := items.Initiatives[i].DueDate, items.Initiatives[j].DueDate
		switch {
		case di == nil && dj == nil:
			return items.Initiatives[i].CreatedAt.Before(items.Initiatives[j].CreatedAt)
		case di == nil:
			return false
		case dj == nil:
			return true
		case !di.Equal(*dj):
			return di.Before(*dj)
		}
		return items.Initiatives[i].CreatedAt.Before(items.Initiatives[j].CreatedAt)
	})

	if limit > 0 && limit < len(items.Objectives) {
		items.Objectives = items.Objectives[:limit]
	}
	if limit > 0 && limit < len(items.Initiatives) {
		items.Initiatives = items.Initiatives[:limit]
	}
	return items, nil
}
