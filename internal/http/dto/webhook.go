package dto

import "basegraph.app/hubsync/internal/model"

type WebhookResponse struct {
	Status     string           `json:"status"`
	Outcome    model.Outcome    `json:"outcome"`
	EntityType model.EntityType `json:"entity_type,omitempty"`
	NaturalKey string           `json:"natural_key,omitempty"`
}
