package model

import "time"

// ScoringMethod describes how a key result's completion is interpreted.
type ScoringMethod string

// Scoring methods.
const (
	ScoringPercentage ScoringMethod = "percentage"
	ScoringBinary     ScoringMethod = "binary"
	ScoringMilestone  ScoringMethod = "milestone"
)

// Valid reports whether m is a known scoring method.
func (m ScoringMethod) Valid() bool {
	switch m {
	case ScoringPercentage, ScoringBinary, ScoringMilestone:
		return true
	}
	return false
}

// KeyResult is a quantitative metric tracked toward an objective. Baseline,
// target, and current values are stored as text and parsed when progress is
// derived; CurrentValue is the only authoritative stored progress input and
// is advanced by check-ins.
type KeyResult struct {
	ID            string        `json:"id"`
	TenantID      string        `json:"tenant_id"`
	ObjectiveID   string        `json:"objective_id"`
	OwnerID       string        `json:"owner_id,omitempty"`
	Title         string        `json:"title"`
	BaselineValue string        `json:"baseline_value"`
	TargetValue   string        `json:"target_value"`
	CurrentValue  string        `json:"current_value"`
	Unit          string        `json:"unit,omitempty"`
	ScoringMethod ScoringMethod `json:"scoring_method"`
	Status        WorkStatus    `json:"status"`
	Confidence    int           `json:"confidence"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Progress returns the key result's derived completion percentage in [0,100].
func (kr KeyResult) Progress() float64 {
	return ComputeKeyResultProgress(kr.BaselineValue, kr.TargetValue, kr.CurrentValue)
}

// KeyResultCheckIn records one update to a key result's current value.
// Check-ins are immutable once created except via delete; PreviousValue
// preserves the transition for history display. Deleting a check-in does
// not revert the key result's current value.
type KeyResultCheckIn struct {
	ID            string    `json:"id"`
	TenantID      string    `json:"tenant_id"`
	KeyResultID   string    `json:"key_result_id"`
	Value         string    `json:"value"`
	PreviousValue string    `json:"previous_value"`
	Comment       string    `json:"comment,omitempty"`
	CreatedBy     string    `json:"created_by,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
