package model

import "time"

// WorkItemType classifies a granular unit of work under an initiative.
type WorkItemType string

// Work item types.
const (
	WorkItemTask    WorkItemType = "task"
	WorkItemBug     WorkItemType = "bug"
	WorkItemFeature WorkItemType = "feature"
	WorkItemSpike   WorkItemType = "spike"
	WorkItemOther   WorkItemType = "other"
)

// Valid reports whether t is a known work item type.
func (t WorkItemType) Valid() bool {
	switch t {
	case WorkItemTask, WorkItemBug, WorkItemFeature, WorkItemSpike, WorkItemOther:
		return true
	}
	return false
}

// WorkItemStatus is the lifecycle state of a work item.
type WorkItemStatus string

// Work item statuses.
const (
	WorkItemTodo       WorkItemStatus = "todo"
	WorkItemInProgress WorkItemStatus = "in_progress"
	WorkItemBlocked    WorkItemStatus = "blocked"
	WorkItemCompleted  WorkItemStatus = "completed"
	WorkItemCancelled  WorkItemStatus = "cancelled"
)

// Valid reports whether s is a known work item status.
func (s WorkItemStatus) Valid() bool {
	switch s {
	case WorkItemTodo, WorkItemInProgress, WorkItemBlocked, WorkItemCompleted, WorkItemCancelled:
		return true
	}
	return false
}

// WorkItem is a granular task, bug, feature, or spike under an initiative.
// CompletedAt is set if and only if the status is completed.
type WorkItem struct {
	ID             string         `json:"id"`
	TenantID       string         `json:"tenant_id"`
	InitiativeID   string         `json:"initiative_id"`
	OwnerID        string         `json:"owner_id,omitempty"`
	Title          string         `json:"title"`
	Description    string         `json:"description,omitempty"`
	Type           WorkItemType   `json:"type"`
	Status         WorkItemStatus `json:"status"`
	Priority       Priority       `json:"priority"`
	EstimatedHours float64        `json:"estimated_hours,omitempty"`
	ActualHours    float64        `json:"actual_hours,omitempty"`
	CompletedAt    *time.Time     `json:"completed_at,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}
