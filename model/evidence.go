package model

import "time"

// EvidenceType classifies an evidence artifact.
type EvidenceType string

// Evidence types.
const (
	EvidenceDocument   EvidenceType = "document"
	EvidenceLink       EvidenceType = "link"
	EvidenceScreenshot EvidenceType = "screenshot"
	EvidenceVideo      EvidenceType = "video"
	EvidenceOther      EvidenceType = "other"
)

// Valid reports whether t is a known evidence type.
func (t EvidenceType) Valid() bool {
	switch t {
	case EvidenceDocument, EvidenceLink, EvidenceScreenshot, EvidenceVideo, EvidenceOther:
		return true
	}
	return false
}

// Evidence is a document, link, screenshot, or video substantiating
// progress. It attaches polymorphically to an objective, key result,
// initiative, or work item, or directly to a check-in via CheckInID.
type Evidence struct {
	ID        string       `json:"id"`
	TenantID  string       `json:"tenant_id"`
	Ref       EntityRef    `json:"ref"`
	CheckInID string       `json:"check_in_id,omitempty"`
	Title     string       `json:"title"`
	URL       string       `json:"url"`
	Type      EvidenceType `json:"type"`
	CreatedBy string       `json:"created_by,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// EvidenceInput is the name+URL pair supplied when attaching evidence to a
// check-in in the same operation.
type EvidenceInput struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}
