package model

import (
	"reflect"
	"time"
)

// Columns is the typed set of indexed columns for one entity type. They are
// a cache of the document and never read by projection.
type Columns interface {
	Entity() EntityType
	// Overlay returns the receiver with every field it does not mention
	// taken from prior. prior is always the same concrete type.
	Overlay(prior Columns) Columns
}

// Record is one stored entity, unique per (OwnerID, NaturalKey).
type Record struct {
	ID              int64
	EntityType      EntityType
	OwnerID         string
	NaturalKey      string
	Document        Document
	Columns         Columns
	SourceCreatedAt *time.Time
	SourceUpdatedAt *time.Time
	SyncedAt        time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// MergeRecord folds a freshly mapped delivery into the stored record. The
// document is merged key by key, mentioned columns overwrite, the source
// creation time is kept from the first create, and the source update time
// only moves when the delivery carries one.
func MergeRecord(prior *Record, next Record) Record {
	if prior == nil {
		return next
	}

	merged := next
	merged.ID = prior.ID
	merged.CreatedAt = prior.CreatedAt
	merged.Document = prior.Document.Merge(next.Document)

	if next.Columns != nil && prior.Columns != nil && prior.Columns.Entity() == next.Columns.Entity() {
		merged.Columns = next.Columns.Overlay(prior.Columns)
	} else if next.Columns == nil {
		merged.Columns = prior.Columns
	}

	if prior.SourceCreatedAt != nil {
		merged.SourceCreatedAt = prior.SourceCreatedAt
	}
	if next.SourceUpdatedAt == nil {
		merged.SourceUpdatedAt = prior.SourceUpdatedAt
	}

	return merged
}

// IsStale reports whether next carries an update time strictly older than
// the one already stored.
func IsStale(prior *Record, next Record) bool {
	if prior == nil || prior.SourceUpdatedAt == nil || next.SourceUpdatedAt == nil {
		return false
	}
	return next.SourceUpdatedAt.Before(*prior.SourceUpdatedAt)
}

// Unchanged reports whether merging left the stored content as it was, as
// for a replayed delivery. Such merges need not be written back.
func Unchanged(prior *Record, merged Record) bool {
	if prior == nil {
		return false
	}
	return reflect.DeepEqual(prior.Document, merged.Document) &&
		sameTime(prior.SourceCreatedAt, merged.SourceCreatedAt) &&
		sameTime(prior.SourceUpdatedAt, merged.SourceUpdatedAt)
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
