package mapper

import (
	"errors"
	"fmt"

	"basegraph.app/hubsync/internal/model"
)

var (
	ErrMissingNaturalKey = errors.New("payload has no id")
	ErrUnknownEntityType = errors.New("unknown entity type")
	ErrUnsupportedAction = errors.New("action does not produce a record")
)

// EntityMapper turns one tracker payload into a storage record. Mappers are
// pure: the same input always yields the same record, minus SyncedAt which
// the caller stamps.
type EntityMapper interface {
	Map(action model.Action, payload model.Document, ownerID string) (model.Record, error)
}

// MapperFunc adapts a function to EntityMapper.
type MapperFunc func(action model.Action, payload model.Document, ownerID string) (model.Record, error)

func (f MapperFunc) Map(action model.Action, payload model.Document, ownerID string) (model.Record, error) {
	return f(action, payload, ownerID)
}

// Envelope is the webhook body. Only Data is mapped; the rest routes it.
type Envelope struct {
	Action           string         `json:"action" jsonschema:"enum=create,enum=update,enum=remove"`
	Type             string         `json:"type" jsonschema:"minLength=1"`
	Data             map[string]any `json:"data"`
	URL              string         `json:"url,omitempty"`
	CreatedAt        string         `json:"createdAt,omitempty"`
	OrganizationID   string         `json:"organizationId,omitempty"`
	WebhookID        string         `json:"webhookId,omitempty"`
	WebhookTimestamp int64          `json:"webhookTimestamp,omitempty"`
	UpdatedFrom      map[string]any `json:"updatedFrom,omitempty"`
}

// baseRecord fills the fields every entity shares.
func baseRecord(entityType model.EntityType, action model.Action, payload model.Document, ownerID string) (model.Record, error) {
	if action != model.ActionCreate && action != model.ActionUpdate {
		return model.Record{}, fmt.Errorf("%w: %s", ErrUnsupportedAction, action)
	}

	key, ok := payload.String("id")
	if !ok || key == "" {
		return model.Record{}, fmt.Errorf("mapping %s: %w", entityType, ErrMissingNaturalKey)
	}

	rec := model.Record{
		EntityType:      entityType,
		OwnerID:         ownerID,
		NaturalKey:      key,
		Document:        payload.Clone(),
		SourceUpdatedAt: payload.TimePtr("updatedAt"),
	}
	if action == model.ActionCreate {
		rec.SourceCreatedAt = payload.TimePtr("createdAt")
	}
	return rec, nil
}
