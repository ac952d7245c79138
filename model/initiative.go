package model

import "time"

// RelationType describes how strongly an initiative is linked to an objective.
type RelationType string

// Relation types for objective-initiative links.
const (
	RelationPrimary   RelationType = "primary"
	RelationSecondary RelationType = "secondary"
)

// Valid reports whether r is a known relation type.
func (r RelationType) Valid() bool {
	return r == RelationPrimary || r == RelationSecondary
}

// Initiative is a project-level effort intended to move one or more
// objectives. It is linked many-to-many with objectives through weighted
// ObjectiveInitiative rows.
type Initiative struct {
	ID               string     `json:"id"`
	TenantID         string     `json:"tenant_id"`
	CycleID          string     `json:"cycle_id"`
	AreaID           string     `json:"area_id,omitempty"`
	OwnerID          string     `json:"owner_id,omitempty"`
	Name             string     `json:"name"`
	ProblemStatement string     `json:"problem_statement,omitempty"`
	ExpectedOutcome  string     `json:"expected_outcome,omitempty"`
	Status           WorkStatus `json:"status"`
	Priority         Priority   `json:"priority"`
	Effort           int        `json:"effort,omitempty"`
	Impact           int        `json:"impact,omitempty"`
	DueDate          *time.Time `json:"due_date,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// ObjectiveInitiative links an initiative to an objective with a relation
// type and a contribution weight in [0,1].
type ObjectiveInitiative struct {
	ID           string       `json:"id"`
	TenantID     string       `json:"tenant_id"`
	ObjectiveID  string       `json:"objective_id"`
	InitiativeID string       `json:"initiative_id"`
	RelationType RelationType `json:"relation_type"`
	Weight       float64      `json:"weight"`
	CreatedAt    time.Time    `json:"created_at"`
}
