package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields contains structured fields automatically added to all logs within a context.
// Fields flow through context enrichment, so ingestion and query code never has to
// repeat owner/tenant/entity attributes on every log line.
type LogFields struct {
	OwnerID    *string // Account whose synced data is being read or written
	TenantID   *string // Hub tenant issuing a scoped read
	EntityType *string // Issue, Comment, Project, Initiative, Team
	NaturalKey *string // Tracker id of the entity
	DeliveryID *string // Webhook delivery id
	MessageID  *string // Redis stream message ID
	Component  string  // Component name, e.g. "hubsync.service.ingest"
}

// WithLogFields enriches context with structured log fields.
// Multiple calls merge fields, with newer non-nil/non-empty values taking precedence.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	existing := GetLogFields(ctx)
	merged := mergeFields(existing, fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from context.
// Returns empty LogFields if none are set.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, next LogFields) LogFields {
	result := existing

	if next.OwnerID != nil {
		result.OwnerID = next.OwnerID
	}
	if next.TenantID != nil {
		result.TenantID = next.TenantID
	}
	if next.EntityType != nil {
		result.EntityType = next.EntityType
	}
	if next.NaturalKey != nil {
		result.NaturalKey = next.NaturalKey
	}
	if next.DeliveryID != nil {
		result.DeliveryID = next.DeliveryID
	}
	if next.MessageID != nil {
		result.MessageID = next.MessageID
	}
	if next.Component != "" {
		result.Component = next.Component
	}

	return result
}

// Ptr is a helper to create a pointer from a value.
// Useful for setting LogFields inline: logger.WithLogFields(ctx, logger.LogFields{OwnerID: logger.Ptr(owner)})
func Ptr[T any](v T) *T {
	return &v
}

// Truncate truncates a string to maxLen characters, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
