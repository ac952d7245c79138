package model

import "time"

// DependencyType is the direction/meaning of a dependency edge.
type DependencyType string

// Dependency types.
const (
	DependencyBlocks    DependencyType = "blocks"
	DependencyBlockedBy DependencyType = "blocked_by"
	DependencyRelatesTo DependencyType = "relates_to"
)

// Valid reports whether t is a known dependency type.
func (t DependencyType) Valid() bool {
	switch t {
	case DependencyBlocks, DependencyBlockedBy, DependencyRelatesTo:
		return true
	}
	return false
}

// Dependency is a directional edge between two polymorphic entities.
// Chains are stored but never validated for cycles.
type Dependency struct {
	ID          string         `json:"id"`
	TenantID    string         `json:"tenant_id"`
	From        EntityRef      `json:"from"`
	To          EntityRef      `json:"to"`
	Type        DependencyType `json:"type"`
	Description string         `json:"description,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}
