package model

import "time"

// DecisionLog is an append-only record of a decision, optionally linked to
// an owner and an entity. Decisions are created and deleted but never
// updated.
type DecisionLog struct {
	ID           string    `json:"id"`
	TenantID     string    `json:"tenant_id"`
	Ref          EntityRef `json:"ref,omitempty"`
	OwnerID      string    `json:"owner_id,omitempty"`
	Title        string    `json:"title"`
	Decision     string    `json:"decision"`
	Context      string    `json:"context,omitempty"`
	DecisionDate time.Time `json:"decision_date"`
	EvidenceURL  string    `json:"evidence_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
