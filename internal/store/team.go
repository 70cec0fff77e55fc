package store

import (
	"context"
	"errors"
	"fmt"

	"basegraph.app/hubsync/core/db/sqlc"
	"basegraph.app/hubsync/internal/model"
	"github.com/jackc/pgx/v5"
)

type teamStore struct {
	queries *sqlc.Queries
}

func newTeamStore(queries *sqlc.Queries) TeamStore {
	return &teamStore{queries: queries}
}

func (s *teamStore) Get(ctx context.Context, ownerID, naturalKey string) (*model.Record, error) {
	row, err := s.queries.GetTeam(ctx, sqlc.GetTeamParams{OwnerID: ownerID, NaturalKey: naturalKey})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting team: %w", err)
	}
	return toTeamRecord(row)
}

func (s *teamStore) GetForUpdate(ctx context.Context, ownerID, naturalKey string) (*model.Record, error) {
	row, err := s.queries.GetTeamForUpdate(ctx, sqlc.GetTeamForUpdateParams{OwnerID: ownerID, NaturalKey: naturalKey})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("locking team: %w", err)
	}
	return toTeamRecord(row)
}

func (s *teamStore) Upsert(ctx context.Context, rec *model.Record) (*model.Record, error) {
	cols, ok := rec.Columns.(model.TeamColumns)
	if !ok {
		return nil, fmt.Errorf("upserting team %s: unexpected columns %T", rec.NaturalKey, rec.Columns)
	}
	doc, err := prepareRecord(rec)
	if err != nil {
		return nil, fmt.Errorf("encoding team %s: %w", rec.NaturalKey, err)
	}

	row, err := s.queries.UpsertTeam(ctx, sqlc.UpsertTeamParams{
		ID:              rec.ID,
		OwnerID:         rec.OwnerID,
		NaturalKey:      rec.NaturalKey,
		Document:        doc,
		Key:             cols.Key.Ptr(),
		Name:            cols.Name.Ptr(),
		ParentID:        cols.ParentID.Ptr(),
		Private:         cols.Private.Ptr(),
		SourceCreatedAt: timeToPgTimestamptz(rec.SourceCreatedAt),
		SourceUpdatedAt: timeToPgTimestamptz(rec.SourceUpdatedAt),
		SyncedAt:        timeToPgTimestamptz(&rec.SyncedAt),
	})
	if err != nil {
		return nil, fmt.Errorf("upserting team %s: %w", rec.NaturalKey, err)
	}
	return toTeamRecord(row)
}

func (s *teamStore) ListByKeys(ctx context.Context, ownerID string, keys []string) ([]model.Record, error) {
	if len(keys) == 0 {
		return []model.Record{}, nil
	}
	rows, err := s.queries.ListTeamsByKeys(ctx, sqlc.ListTeamsByKeysParams{
		OwnerID:     ownerID,
		NaturalKeys: keys,
	})
	if err != nil {
		return nil, fmt.Errorf("listing teams: %w", err)
	}
	return toRecords(rows, toTeamRecord)
}

func toTeamRecord(row sqlc.Team) (*model.Record, error) {
	return toRecord(model.EntityTeam, rowMeta{
		ID:              row.ID,
		OwnerID:         row.OwnerID,
		NaturalKey:      row.NaturalKey,
		Document:        row.Document,
		SourceCreatedAt: row.SourceCreatedAt,
		SourceUpdatedAt: row.SourceUpdatedAt,
		SyncedAt:        row.SyncedAt,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}, model.TeamColumns{
		Key:      model.FromPtr(row.Key),
		Name:     model.FromPtr(row.Name),
		ParentID: model.FromPtr(row.ParentID),
		Private:  model.FromPtr(row.Private),
	})
}
