package model

// StatusCount is one bucket of a grouped status count.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// DashboardStats contains the grouped status counts for one cycle. An empty
// cycle yields empty bucket lists, not an error.
type DashboardStats struct {
	Objectives  []StatusCount `json:"objectives"`
	KeyResults  []StatusCount `json:"key_results"`
	Initiatives []StatusCount `json:"initiatives"`
}

// BlockedItems lists the objectives and initiatives in a cycle whose status
// is at_risk or off_track.
type BlockedItems struct {
	Objectives  []Objective  `json:"objectives"`
	Initiatives []Initiative `json:"initiatives"`
}

// HighPriorityItems lists the high and critical priority objectives and
// initiatives in a cycle. Each list is capped; objectives are ordered by
// declared priority severity, initiatives by ascending due date.
type HighPriorityItems struct {
	Objectives  []Objective  `json:"objectives"`
	Initiatives []Initiative `json:"initiatives"`
}
