package model

import "testing"

func TestRisk_Score(t *testing.T) {
	r := Risk{Probability: 4, Impact: 5}
	if got := r.Score(); got != 20 {
		t.Errorf("Score() = %d, want 20", got)
	}
}

func TestBudgetItem_Variance(t *testing.T) {
	b := BudgetItem{PlannedAmount: 1000, ActualAmount: 1250.50}
	if got := b.Variance(); got != 250.50 {
		t.Errorf("Variance() = %v, want 250.50", got)
	}

	under := BudgetItem{PlannedAmount: 500, ActualAmount: 300}
	if got := under.Variance(); got != -200 {
		t.Errorf("Variance() = %v, want -200", got)
	}
}

func TestPriority_Rank_order(t *testing.T) {
	// Declared severity order: critical < high < medium < low.
	if !(PriorityCritical.Rank() < PriorityHigh.Rank() &&
		PriorityHigh.Rank() < PriorityMedium.Rank() &&
		PriorityMedium.Rank() < PriorityLow.Rank()) {
		t.Error("priority ranks do not follow declared severity order")
	}
	if Priority("bogus").Rank() <= PriorityLow.Rank() {
		t.Error("unknown priority must rank after low")
	}
}

func TestWorkStatus_Blocked(t *testing.T) {
	blocked := []WorkStatus{StatusAtRisk, StatusOffTrack}
	for _, s := range blocked {
		if !s.Blocked() {
			t.Errorf("%s.Blocked() = false, want true", s)
		}
	}
	clear := []WorkStatus{StatusNotStarted, StatusOnTrack, StatusCompleted}
	for _, s := range clear {
		if s.Blocked() {
			t.Errorf("%s.Blocked() = true, want false", s)
		}
	}
}

func TestEnums_Valid(t *testing.T) {
	if !CycleActive.Valid() || CycleStatus("paused").Valid() {
		t.Error("CycleStatus.Valid misclassifies")
	}
	if !ObjectiveStrategic.Valid() || ObjectiveType("wishful").Valid() {
		t.Error("ObjectiveType.Valid misclassifies")
	}
	if !ScoringMilestone.Valid() || ScoringMethod("vibes").Valid() {
		t.Error("ScoringMethod.Valid misclassifies")
	}
	if !DependencyBlocks.Valid() || DependencyType("requires").Valid() {
		t.Error("DependencyType.Valid misclassifies")
	}
	if !RelationPrimary.Valid() || RelationType("tertiary").Valid() {
		t.Error("RelationType.Valid misclassifies")
	}
	if !RiskMitigating.Valid() || RiskStatus("ignored").Valid() {
		t.Error("RiskStatus.Valid misclassifies")
	}
	if !WorkItemSpike.Valid() || WorkItemType("chore").Valid() {
		t.Error("WorkItemType.Valid misclassifies")
	}
	if !WorkItemInProgress.Valid() || WorkItemStatus("paused").Valid() {
		t.Error("WorkItemStatus.Valid misclassifies")
	}
}
