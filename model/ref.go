package model

import "fmt"

// EntityType discriminates the target of a polymorphic attachment.
type EntityType string

// Attachable entity types.
const (
	EntityObjective  EntityType = "objective"
	EntityKeyResult  EntityType = "key_result"
	EntityInitiative EntityType = "initiative"
	EntityWorkItem   EntityType = "work_item"
)

// Valid reports whether t is a known entity type.
func (t EntityType) Valid() bool {
	switch t {
	case EntityObjective, EntityKeyResult, EntityInitiative, EntityWorkItem:
		return true
	}
	return false
}

// EntityRef identifies one of several unrelated entity types without a
// per-type foreign key. The storage layer enforces no referential integrity
// across this boundary: a ref may dangle after its target is deleted, and
// readers must tolerate that by falling back to a placeholder label rather
// than failing.
type EntityRef struct {
	Type EntityType `json:"entity_type"`
	ID   string     `json:"entity_id"`
}

// Zero reports whether the ref is unset.
func (r EntityRef) Zero() bool {
	return r.Type == "" && r.ID == ""
}

// String returns a compact type/id form for logging.
func (r EntityRef) String() string {
	return fmt.Sprintf("%s/%s", r.Type, r.ID)
}

// UnknownLabel is the display label used when a ref's target no longer
// exists.
func (r EntityRef) UnknownLabel() string {
	switch r.Type {
	case EntityObjective:
		return "Unknown objective"
	case EntityKeyResult:
		return "Unknown key result"
	case EntityInitiative:
		return "Unknown initiative"
	case EntityWorkItem:
		return "Unknown work item"
	}
	return "Unknown"
}
