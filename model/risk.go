package model

import "time"

// RiskStatus is the mitigation state of a risk.
type RiskStatus string

// Risk statuses.
const (
	RiskOpen       RiskStatus = "open"
	RiskMitigating RiskStatus = "mitigating"
	RiskMitigated  RiskStatus = "mitigated"
	RiskAccepted   RiskStatus = "accepted"
	RiskClosed     RiskStatus = "closed"
)

// Valid reports whether s is a known risk status.
func (s RiskStatus) Valid() bool {
	switch s {
	case RiskOpen, RiskMitigating, RiskMitigated, RiskAccepted, RiskClosed:
		return true
	}
	return false
}

// Risk is a probability-and-impact scored threat to an entity's success,
// attached polymorphically. Probability and impact are 1-5.
type Risk struct {
	ID          string     `json:"id"`
	TenantID    string     `json:"tenant_id"`
	Ref         EntityRef  `json:"ref"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Probability int        `json:"probability"`
	Impact      int        `json:"impact"`
	Status      RiskStatus `json:"status"`
	Mitigation  string     `json:"mitigation,omitempty"`
	OwnerID     string     `json:"owner_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Score returns the derived risk score, probability times impact. It is not
// persisted.
func (r Risk) Score() int {
	return r.Probability * r.Impact
}
