package store

import (
	"fmt"
	"time"

	"basegraph.app/hubsync/common/id"
	"basegraph.app/hubsync/internal/model"
	"github.com/jackc/pgx/v5/pgtype"
)

// rowMeta is the part every entity row shares.
type rowMeta struct {
	ID              int64
	OwnerID         string
	NaturalKey      string
	Document        []byte
	SourceCreatedAt pgtype.Timestamptz
	SourceUpdatedAt pgtype.Timestamptz
	SyncedAt        pgtype.Timestamptz
	CreatedAt       pgtype.Timestamptz
	UpdatedAt       pgtype.Timestamptz
}

func toRecord(entityType model.EntityType, meta rowMeta, cols model.Columns) (*model.Record, error) {
	doc, err := model.ParseDocument(meta.Document)
	if err != nil {
		return nil, fmt.Errorf("decoding %s document %s: %w", entityType, meta.NaturalKey, err)
	}
	return &model.Record{
		ID:              meta.ID,
		EntityType:      entityType,
		OwnerID:         meta.OwnerID,
		NaturalKey:      meta.NaturalKey,
		Document:        doc,
		Columns:         cols,
		SourceCreatedAt: toTimePointer(meta.SourceCreatedAt),
		SourceUpdatedAt: toTimePointer(meta.SourceUpdatedAt),
		SyncedAt:        meta.SyncedAt.Time,
		CreatedAt:       meta.CreatedAt.Time,
		UpdatedAt:       meta.UpdatedAt.Time,
	}, nil
}

// prepareRecord assigns a row id to new records and encodes the document.
func prepareRecord(rec *model.Record) ([]byte, error) {
	if rec.ID == 0 {
		rec.ID = id.New()
	}
	if rec.SyncedAt.IsZero() {
		rec.SyncedAt = time.Now().UTC()
	}
	return rec.Document.Marshal()
}

func toRecords[T any](rows []T, convert func(T) (*model.Record, error)) ([]model.Record, error) {
	out := make([]model.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := convert(row)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, nil
}

func stringsOpt(v []string) model.Opt[[]string] {
	if v == nil {
		return model.Null[[]string]()
	}
	return model.Some(v)
}

func stringsPtr(o model.Opt[[]string]) []string {
	v, ok := o.Get()
	if !ok {
		return nil
	}
	if v == nil {
		return []string{}
	}
	return v
}

func int32Opt(v *int32) model.Opt[int] {
	if v == nil {
		return model.Null[int]()
	}
	return model.Some(int(*v))
}

func int32Ptr(o model.Opt[int]) *int32 {
	v, ok := o.Get()
	if !ok {
		return nil
	}
	n := int32(v)
	return &n
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// timeToPgTimestamptz converts *time.Time to pgtype.Timestamptz
func timeToPgTimestamptz(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{Valid: false}
	}
	return pgtype.Timestamptz{Time: *t, Valid: true}
}

func toTimePointer(t pgtype.Timestamptz) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
