package model

import "time"

// CycleStatus is the lifecycle state of a planning cycle.
type CycleStatus string

// Cycle lifecycle states.
const (
	CycleDraft     CycleStatus = "draft"
	CycleActive    CycleStatus = "active"
	CycleCompleted CycleStatus = "completed"
	CycleArchived  CycleStatus = "archived"
)

// Valid reports whether s is a known cycle status.
func (s CycleStatus) Valid() bool {
	switch s {
	case CycleDraft, CycleActive, CycleCompleted, CycleArchived:
		return true
	}
	return false
}

// Cycle is a bounded planning period (typically a quarter) that scopes
// objectives and initiatives. At most one cycle per tenant is active at any
// time; activation archives whichever cycle held the slot before.
type Cycle struct {
	ID        string      `json:"id"`
	TenantID  string      `json:"tenant_id"`
	Name      string      `json:"name"`
	StartDate time.Time   `json:"start_date"`
	EndDate   time.Time   `json:"end_date"`
	Status    CycleStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
