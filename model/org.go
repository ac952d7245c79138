package model

import "time"

// Area is an organizational unit (team, department) that objectives and
// initiatives are filed under.
type Area struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Owner is the person or group accountable for an entity. Ownership here is
// organizational, not an authentication identity; the subject id links an
// owner to an IdP account when one exists.
type Owner struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role,omitempty"`
	SubjectID string    `json:"subject_id,omitempty"`
	AreaID    string    `json:"area_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
