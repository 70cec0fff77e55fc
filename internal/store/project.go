package store

import (
	"context"
	"errors"
	"fmt"

	"basegraph.app/hubsync/core/db/sqlc"
	"basegraph.app/hubsync/internal/model"
	"github.com/jackc/pgx/v5"
)

type projectStore struct {
	queries *sqlc.Queries
}

func newProjectStore(queries *sqlc.Queries) ProjectStore {
	return &projectStore{queries: queries}
}

func (s *projectStore) Get(ctx context.Context, ownerID, naturalKey string) (*model.Record, error) {
	row, err := s.queries.GetProject(ctx, sqlc.GetProjectParams{OwnerID: ownerID, NaturalKey: naturalKey})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return toProjectRecord(row)
}

func (s *projectStore) GetForUpdate(ctx context.Context, ownerID, naturalKey string) (*model.Record, error) {
	row, err := s.queries.GetProjectForUpdate(ctx, sqlc.GetProjectForUpdateParams{OwnerID: ownerID, NaturalKey: naturalKey})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("locking project: %w", err)
	}
	return toProjectRecord(row)
}

func (s *projectStore) Upsert(ctx context.Context, rec *model.Record) (*model.Record, error) {
	cols, ok := rec.Columns.(model.ProjectColumns)
	if !ok {
		return nil, fmt.Errorf("upserting project %s: unexpected columns %T", rec.NaturalKey, rec.Columns)
	}
	doc, err := prepareRecord(rec)
	if err != nil {
		return nil, fmt.Errorf("encoding project %s: %w", rec.NaturalKey, err)
	}

	row, err := s.queries.UpsertProject(ctx, sqlc.UpsertProjectParams{
		ID:              rec.ID,
		OwnerID:         rec.OwnerID,
		NaturalKey:      rec.NaturalKey,
		Document:        doc,
		Name:            cols.Name.Ptr(),
		StatusName:      cols.StatusName.Ptr(),
		LeadID:          cols.LeadID.Ptr(),
		TeamIds:         stringsPtr(cols.TeamIDs),
		InitiativeIds:   stringsPtr(cols.InitiativeIDs),
		SourceCreatedAt: timeToPgTimestamptz(rec.SourceCreatedAt),
		SourceUpdatedAt: timeToPgTimestamptz(rec.SourceUpdatedAt),
		SyncedAt:        timeToPgTimestamptz(&rec.SyncedAt),
	})
	if err != nil {
		return nil, fmt.Errorf("upserting project %s: %w", rec.NaturalKey, err)
	}
	return toProjectRecord(row)
}

func (s *projectStore) List(ctx context.Context, q ProjectQuery) ([]model.Record, error) {
	rows, err := s.queries.ListProjects(ctx, sqlc.ListProjectsParams{
		OwnerID:  q.OwnerID,
		TeamIds:  nonNil(q.TeamIDs),
		Statuses: q.Statuses,
	})
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return toRecords(rows, toProjectRecord)
}

func toProjectRecord(row sqlc.Project) (*model.Record, error) {
	return toRecord(model.EntityProject, rowMeta{
		ID:              row.ID,
		OwnerID:         row.OwnerID,
		NaturalKey:      row.NaturalKey,
		Document:        row.Document,
		SourceCreatedAt: row.SourceCreatedAt,
		SourceUpdatedAt: row.SourceUpdatedAt,
		SyncedAt:        row.SyncedAt,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}, model.ProjectColumns{
		Name:          model.FromPtr(row.Name),
		StatusName:    model.FromPtr(row.StatusName),
		LeadID:        model.FromPtr(row.LeadID),
		TeamIDs:       stringsOpt(row.TeamIds),
		InitiativeIDs: stringsOpt(row.InitiativeIds),
	})
}
