package model

import "time"

// ObjectiveType classifies the planning horizon of an objective.
type ObjectiveType string

// Objective types.
const (
	ObjectiveStrategic   ObjectiveType = "strategic"
	ObjectiveTactical    ObjectiveType = "tactical"
	ObjectiveOperational ObjectiveType = "operational"
)

// Valid reports whether t is a known objective type.
func (t ObjectiveType) Valid() bool {
	switch t {
	case ObjectiveStrategic, ObjectiveTactical, ObjectiveOperational:
		return true
	}
	return false
}

// WorkStatus is the manually-set health status shared by objectives, key
// results, and initiatives. It is informational and never recomputed from
// child progress.
type WorkStatus string

// Work statuses.
const (
	StatusNotStarted WorkStatus = "not_started"
	StatusOnTrack    WorkStatus = "on_track"
	StatusAtRisk     WorkStatus = "at_risk"
	StatusOffTrack   WorkStatus = "off_track"
	StatusCompleted  WorkStatus = "completed"
)

// Valid reports whether s is a known work status.
func (s WorkStatus) Valid() bool {
	switch s {
	case StatusNotStarted, StatusOnTrack, StatusAtRisk, StatusOffTrack, StatusCompleted:
		return true
	}
	return false
}

// Blocked reports whether the status marks an item as blocked for dashboard
// purposes.
func (s WorkStatus) Blocked() bool {
	return s == StatusAtRisk || s == StatusOffTrack
}

// Priority ranks the urgency of objectives, initiatives, and work items.
// The declaration order is the severity order used when sorting: critical
// sorts before high.
type Priority string

// Priorities, most severe first.
const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Rank returns the sort rank of the priority, 0 being the most severe.
// Unknown priorities rank last.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	}
	return 4
}

// Objective is a qualitative goal for a planning cycle. It belongs to
// exactly one cycle; confidence is a manual 0-100 estimate.
type Objective struct {
	ID          string        `json:"id"`
	TenantID    string        `json:"tenant_id"`
	CycleID     string        `json:"cycle_id"`
	AreaID      string        `json:"area_id,omitempty"`
	OwnerID     string        `json:"owner_id,omitempty"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Type        ObjectiveType `json:"type"`
	Status      WorkStatus    `json:"status"`
	Priority    Priority      `json:"priority"`
	Confidence  int           `json:"confidence"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
