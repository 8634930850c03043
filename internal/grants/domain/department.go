package domain

import "time"

// Department groups faculty under an administrator.
type Department struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// GrantingEntity is the organization a grant is attributed to. The startup
// grant is always attributed to the well-known "ODU" entity.
type GrantingEntity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// SourceEntityODU is the name of the entity startup grants are drawn from.
const SourceEntityODU = "ODU"
