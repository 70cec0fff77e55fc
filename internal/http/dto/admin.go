package dto

import (
	"time"

	"basegraph.app/hubsync/internal/model"
	"basegraph.app/hubsync/internal/service"
)

type UpsertMappingRequest struct {
	OwnerID              string   `json:"owner_id" binding:"required"`
	VisibleProjectIDs    []string `json:"visible_project_ids"`
	VisibleInitiativeIDs []string `json:"visible_initiative_ids"`
	VisibleLabelIDs      []string `json:"visible_label_ids"`
}

type MappingsResponse struct {
	Mappings []model.TeamMapping `json:"mappings"`
}

type UpsertIntegrationRequest struct {
	WebhookSecret string  `json:"webhook_secret" binding:"required"`
	APIKey        string  `json:"api_key"`
	APIBaseURL    *string `json:"api_base_url"`
	Enabled       *bool   `json:"enabled"`
}

// IntegrationResponse never echoes secrets; HasAPIKey tells the caller
// whether backfills can run.
type IntegrationResponse struct {
	OwnerID        string     `json:"owner_id"`
	Enabled        bool       `json:"enabled"`
	HasAPIKey      bool       `json:"has_api_key"`
	APIBaseURL     *string    `json:"api_base_url,omitempty"`
	LastBackfillAt *time.Time `json:"last_backfill_at,omitempty"`
}

func NewIntegrationResponse(i *model.Integration) IntegrationResponse {
	return IntegrationResponse{
		OwnerID:        i.OwnerID,
		Enabled:        i.Enabled,
		HasAPIKey:      i.APIKey != "",
		APIBaseURL:     i.APIBaseURL,
		LastBackfillAt: i.LastBackfillAt,
	}
}

type BackfillEnqueuedResponse struct {
	OwnerID string `json:"owner_id"`
	Status  string `json:"status"`
}

type BatchSummary struct {
	EntityType model.EntityType      `json:"entity_type"`
	Succeeded  int                   `json:"succeeded"`
	Failed     int                   `json:"failed"`
	Outcomes   map[model.Outcome]int `json:"outcomes,omitempty"`
}

type BackfillResultResponse struct {
	OwnerID    string         `json:"owner_id"`
	Batches    []BatchSummary `json:"batches"`
	Failed     int            `json:"failed"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
}

func NewBackfillResultResponse(r *service.BackfillResult) BackfillResultResponse {
	resp := BackfillResultResponse{
		OwnerID:    r.OwnerID,
		Batches:    make([]BatchSummary, len(r.Batches)),
		Failed:     r.Failed(),
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
	}
	for i, b := range r.Batches {
		resp.Batches[i] = BatchSummary{
			EntityType: b.EntityType,
			Succeeded:  b.Succeeded,
			Failed:     b.Failed,
			Outcomes:   b.Outcomes,
		}
	}
	return resp
}
