package model

import "time"

// TeamMapping exposes one tracker team to a hub tenant. An empty visibility
// list means the dimension is unscoped for this team, not that nothing is
// visible.
type TeamMapping struct {
	ID                   int64     `json:"id"`
	TenantID             string    `json:"tenant_id"`
	TeamID               string    `json:"team_id"`
	OwnerID              string    `json:"owner_id"`
	VisibleProjectIDs    []string  `json:"visible_project_ids"`
	VisibleInitiativeIDs []string  `json:"visible_initiative_ids"`
	VisibleLabelIDs      []string  `json:"visible_label_ids"`
	Active               bool      `json:"active"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// Integration holds what the mirror needs to accept webhooks and run
// backfills for one owning account.
type Integration struct {
	ID             int64      `json:"id"`
	OwnerID        string     `json:"owner_id"`
	WebhookSecret  string     `json:"-"`
	APIKey         string     `json:"-"`
	APIBaseURL     *string    `json:"api_base_url,omitempty"`
	Enabled        bool       `json:"enabled"`
	LastBackfillAt *time.Time `json:"last_backfill_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
