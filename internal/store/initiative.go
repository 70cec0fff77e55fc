package store

import (
	"context"
	"errors"
	"fmt"

	"basegraph.app/hubsync/core/db/sqlc"
	"basegraph.app/hubsync/internal/model"
	"github.com/jackc/pgx/v5"
)

type initiativeStore struct {
	queries *sqlc.Queries
}

func newInitiativeStore(queries *sqlc.Queries) InitiativeStore {
	return &initiativeStore{queries: queries}
}

func (s *initiativeStore) Get(ctx context.Context, ownerID, naturalKey string) (*model.Record, error) {
	row, err := s.queries.GetInitiative(ctx, sqlc.GetInitiativeParams{OwnerID: ownerID, NaturalKey: naturalKey})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting initiative: %w", err)
	}
	return toInitiativeRecord(row)
}

func (s *initiativeStore) GetForUpdate(ctx context.Context, ownerID, naturalKey string) (*model.Record, error) {
	row, err := s.queries.GetInitiativeForUpdate(ctx, sqlc.GetInitiativeForUpdateParams{OwnerID: ownerID, NaturalKey: naturalKey})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("locking initiative: %w", err)
	}
	return toInitiativeRecord(row)
}

func (s *initiativeStore) Upsert(ctx context.Context, rec *model.Record) (*model.Record, error) {
	cols, ok := rec.Columns.(model.InitiativeColumns)
	if !ok {
		return nil, fmt.Errorf("upserting initiative %s: unexpected columns %T", rec.NaturalKey, rec.Columns)
	}
	doc, err := prepareRecord(rec)
	if err != nil {
		return nil, fmt.Errorf("encoding initiative %s: %w", rec.NaturalKey, err)
	}

	row, err := s.queries.UpsertInitiative(ctx, sqlc.UpsertInitiativeParams{
		ID:              rec.ID,
		OwnerID:         rec.OwnerID,
		NaturalKey:      rec.NaturalKey,
		Document:        doc,
		Name:            cols.Name.Ptr(),
		Status:          cols.Status.Ptr(),
		OwnerUserID:     cols.OwnerID.Ptr(),
		TeamIds:         stringsPtr(cols.TeamIDs),
		ProjectIds:      stringsPtr(cols.ProjectIDs),
		SourceCreatedAt: timeToPgTimestamptz(rec.SourceCreatedAt),
		SourceUpdatedAt: timeToPgTimestamptz(rec.SourceUpdatedAt),
		SyncedAt:        timeToPgTimestamptz(&rec.SyncedAt),
	})
	if err != nil {
		return nil, fmt.Errorf("upserting initiative %s: %w", rec.NaturalKey, err)
	}
	return toInitiativeRecord(row)
}

func (s *initiativeStore) List(ctx context.Context, ownerID string, statuses []string) ([]model.Record, error) {
	rows, err := s.queries.ListInitiatives(ctx, sqlc.ListInitiativesParams{
		OwnerID:  ownerID,
		Statuses: statuses,
	})
	if err != nil {
		return nil, fmt.Errorf("listing initiatives: %w", err)
	}
	return toRecords(rows, toInitiativeRecord)
}

func toInitiativeRecord(row sqlc.Initiative) (*model.Record, error) {
	return toRecord(model.EntityInitiative, rowMeta{
		ID:              row.ID,
		OwnerID:         row.OwnerID,
		NaturalKey:      row.NaturalKey,
		Document:        row.Document,
		SourceCreatedAt: row.SourceCreatedAt,
		SourceUpdatedAt: row.SourceUpdatedAt,
		SyncedAt:        row.SyncedAt,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}, model.InitiativeColumns{
		Name:       model.FromPtr(row.Name),
		Status:     model.FromPtr(row.Status),
		OwnerID:    model.FromPtr(row.OwnerUserID),
		TeamIDs:    stringsOpt(row.TeamIds),
		ProjectIDs: stringsOpt(row.ProjectIds),
	})
}
