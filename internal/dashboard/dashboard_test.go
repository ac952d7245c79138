package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/oselo/compass/internal/config"
	"github.com/oselo/compass/internal/store"
	"github.com/oselo/compass/model"
)

const testTenant = "tenant-1"

func testProvider(t *testing.T) (*Provider, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	cfg := config.DashboardConfig{
		StaleDays:       7,
		StalePageSize:   10,
		HighPriorityCap: 5,
		DefaultPageSize: 25,
		MaxPageSize:     200,
	}
	return NewProvider(mem, cfg), mem
}

func testRctx() *model.RequestContext {
	return &model.RequestContext{SubjectID: "user-1", TenantID: testTenant}
}

func seedCycle(t *testing.T, mem *store.Memory, id string) {
	t.Helper()
	now := time.Now().UTC()
	err := mem.CreateCycle(context.Background(), model.Cycle{
		ID: id, TenantID: testTenant, Name: "Cycle " + id,
		StartDate: now, EndDate: now.AddDate(0, 3, 0),
		Status: model.CycleActive, CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateCycle: %v", err)
	}
}

func seedObjective(t *testing.T, mem *store.Memory, id, cycleID string, status model.WorkStatus, priority model.Priority) {
	t.Helper()
	now := time.Now().UTC()
	err := mem.CreateObjective(context.Background(), model.Objective{
		ID: id, TenantID: testTenant, CycleID: cycleID, Title: "Objective " + id,
		Type: model.ObjectiveStrategic, Status: status, Priority: priority,
		CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateObjective(%s): %v", id, err)
	}
}

func seedInitiative(t *testing.T, mem *store.Memory, id, cycleID string, status model.WorkStatus, priority model.Priority, due *time.Time, createdAt time.Time) {
	t.Helper()
	err := mem.CreateInitiative(context.Background(), model.Initiative{
		ID: id, TenantID: testTenant, CycleID: cycleID, Name: "Initiative " + id,
		Status: status, Priority: priority, DueDate: due,
		CreatedAt: createdAt, UpdatedAt: createdAt,
	})
	if err != nil {
		t.Fatalf("CreateInitiative(%s): %v", id, err)
	}
}

func seedEvidence(t *testing.T, mem *store.Memory, id, initiativeID string, createdAt time.Time) {
	t.Helper()
	err := mem.CreateEvidence(context.Background(), model.Evidence{
		ID: id, TenantID: testTenant,
		Ref:   model.EntityRef{Type: model.EntityInitiative, ID: initiativeID},
		Title: "Evidence " + id, URL: "https://example.com/" + id,
		Type: model.EvidenceLink, CreatedAt: createdAt,
	})
	if err != nil {
		t.Fatalf("CreateEvidence(%s): %v", id, err)
	}
}

func TestEmptyCycleYieldsZeroState(t *testing.T) {
	p, mem := testProvider(t)
	seedCycle(t, mem, "c1")

	overview, err := p.Load(context.Background(), testRctx(), "c1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(overview.Stats.Objectives) != 0 || len(overview.Stats.KeyResults) != 0 || len(overview.Stats.Initiatives) != 0 {
		t.Errorf("empty cycle stats not empty: %+v", overview.Stats)
	}
	if len(overview.Blocked.Objectives) != 0 || len(overview.Blocked.Initiatives) != 0 {
		t.Errorf("empty cycle has blocked items: %+v", overview.Blocked)
	}
	if len(overview.Stale) != 0 {
		t.Errorf("empty cycle has stale initiatives: %+v", overview.Stale)
	}
	if len(overview.HighPriority.Objectives) != 0 || len(overview.HighPriority.Initiatives) != 0 {
		t.Errorf("empty cycle has high priority items: %+v", overview.HighPriority)
	}
}

func TestStatsGroupsByStatus(t *testing.T) {
	p, mem := testProvider(t)
	seedCycle(t, mem, "c1")
	seedCycle(t, mem, "c2")

	seedObjective(t, mem, "o1", "c1", model.StatusOnTrack, model.PriorityMedium)
	seedObjective(t, mem, "o2", "c1", model.StatusOnTrack, model.PriorityMedium)
	seedObjective(t, mem, "o3", "c1", model.StatusAtRisk, model.PriorityMedium)
	seedObjective(t, mem, "o4", "c2", model.StatusOffTrack, model.PriorityMedium) // other cycle

	stats, err := p.Stats(context.Background(), testRctx(), "c1")
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	counts := map[string]int{}
	for _, b := range stats.Objectives {
		counts[b.Status] = b.Count
	}
	if counts["on_track"] != 2 || counts["at_risk"] != 1 {
		t.Errorf("objective buckets = %v, want on_track:2 at_risk:1", counts)
	}
	if counts["off_track"] != 0 {
		t.Errorf("objective from another cycle counted: %v", counts)
	}
}

func TestBlockedItemsSelectsAtRiskAndOffTrack(t *testing.T) {
	p, mem := testProvider(t)
	seedCycle(t, mem, "c1")

	now := time.Now().UTC()
	seedObjective(t, mem, "o1", "c1", model.StatusOnTrack, model.PriorityMedium)
	seedObjective(t, mem, "o2", "c1", model.StatusAtRisk, model.PriorityMedium)
	seedObjective(t, mem, "o3", "c1", model.StatusOffTrack, model.PriorityMedium)
	seedInitiative(t, mem, "i1", "c1", model.StatusOffTrack, model.PriorityMedium, nil, now)
	seedInitiative(t, mem, "i2", "c1", model.StatusCompleted, model.PriorityMedium, nil, now)

	blocked, err := p.BlockedItems(context.Background(), testRctx(), "c1")
	if err != nil {
		t.Fatalf("BlockedItems: %v", err)
	}
	if len(blocked.Objectives) != 2 {
		t.Errorf("got %d blocked objectives, want 2", len(blocked.Objectives))
	}
	if len(blocked.Initiatives) != 1 || blocked.Initiatives[0].ID != "i1" {
		t.Errorf("blocked initiatives = %v, want [i1]", blocked.Initiatives)
	}
}

func TestStaleInitiativesWindow(t *testing.T) {
	p, mem := testProvider(t)
	seedCycle(t, mem, "c1")

	now := time.Now().UTC()
	// i1: recent evidence, not stale. i2: old evidence only, stale.
	// i3: no evidence at all, stale.
	seedInitiative(t, mem, "i1", "c1", model.StatusOnTrack, model.PriorityMedium, nil, now.Add(-72*time.Hour))
	seedInitiative(t, mem, "i2", "c1", model.StatusOnTrack, model.PriorityMedium, nil, now.Add(-48*time.Hour))
	seedInitiative(t, mem, "i3", "c1", model.StatusOnTrack, model.PriorityMedium, nil, now.Add(-24*time.Hour))
	seedEvidence(t, mem, "e1", "i1", now.Add(-time.Hour))
	seedEvidence(t, mem, "e2", "i2", now.Add(-30*24*time.Hour))

	stale, err := p.StaleInitiatives(context.Background(), testRctx(), "c1")
	if err != nil {
		t.Fatalf("StaleInitiatives: %v", err)
	}
	if len(stale) != 2 {
		t.Fatalf("got %d stale initiatives, want 2", len(stale))
	}
	// Oldest first.
	if stale[0].ID != "i2" || stale[1].ID != "i3" {
		t.Errorf("stale order = [%s %s], want [i2 i3]", stale[0].ID, stale[1].ID)
	}
}

func TestStaleInitiativesCapped(t *testing.T) {
	mem := store.NewMemory()
	p := NewProvider(mem, config.DashboardConfig{StaleDays: 7, StalePageSize: 2, HighPriorityCap: 5})
	seedCycle(t, mem, "c1")

	now := time.Now().UTC()
	for _, id := range []string{"i1", "i2", "i3", "i4"} {
		seedInitiative(t, mem, id, "c1", model.StatusOnTrack, model.PriorityMedium, nil, now)
	}

	stale, err := p.StaleInitiatives(context.Background(), testRctx(), "c1")
	if err != nil {
		t.Fatalf("StaleInitiatives: %v", err)
	}
	if len(stale) != 2 {
		t.Errorf("got %d stale initiatives, want cap of 2", len(stale))
	}
}

func TestHighPriorityOrderingAndCap(t *testing.T) {
	p, mem := testProvider(t)
	seedCycle(t, mem, "c1")

	now := time.Now().UTC()
	seedObjective(t, mem, "o1", "c1", model.StatusOnTrack, model.PriorityHigh)
	seedObjective(t, mem, "o2", "c1", model.StatusOnTrack, model.PriorityCritical)
	seedObjective(t, mem, "o3", "c1", model.StatusOnTrack, model.PriorityMedium) // excluded

	d1 := now.AddDate(0, 0, 14)
	d2 := now.AddDate(0, 0, 3)
	seedInitiative(t, mem, "i1", "c1", model.StatusOnTrack, model.PriorityHigh, &d1, now)
	seedInitiative(t, mem, "i2", "c1", model.StatusOnTrack, model.PriorityCritical, &d2, now)
	seedInitiative(t, mem, "i3", "c1", model.StatusOnTrack, model.PriorityHigh, nil, now) // undated sorts last
	seedInitiative(t, mem, "i4", "c1", model.StatusOnTrack, model.PriorityLow, nil, now)  // excluded

	high, err := p.HighPriorityItems(context.Background(), testRctx(), "c1")
	if err != nil {
		t.Fatalf("HighPriorityItems: %v", err)
	}
	if len(high.Objectives) != 2 || high.Objectives[0].ID != "o2" {
		t.Errorf("objectives = %v, want critical o2 first of 2", high.Objectives)
	}
	if len(high.Initiatives) != 3 {
		t.Fatalf("got %d high priority initiatives, want 3", len(high.Initiatives))
	}
	if high.Initiatives[0].ID != "i2" || high.Initiatives[1].ID != "i1" || high.Initiatives[2].ID != "i3" {
		t.Errorf("initiative order = [%s %s %s], want [i2 i1 i3]",
			high.Initiatives[0].ID, high.Initiatives[1].ID, high.Initiatives[2].ID)
	}
}

func TestHighPriorityCap(t *testing.T) {
	mem := store.NewMemory()
	p := NewProvider(mem, config.DashboardConfig{StaleDays: 7, StalePageSize: 10, HighPriorityCap: 2})
	seedCycle(t, mem, "c1")

	for _, id := range []string{"o1", "o2", "o3"} {
		seedObjective(t, mem, id, "c1", model.StatusOnTrack, model.PriorityHigh)
	}

	high, err := p.HighPriorityItems(context.Background(), testRctx(), "c1")
	if err != nil {
		t.Fatalf("HighPriorityItems: %v", err)
	}
	if len(high.Objectives) != 2 {
		t.Errorf("got %d objectives, want cap of 2", len(high.Objectives))
	}
}
