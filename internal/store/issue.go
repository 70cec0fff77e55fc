package store

import (
	"context"
	"errors"
	"fmt"

	"basegraph.app/hubsync/core/db/sqlc"
	"basegraph.app/hubsync/internal/model"
	"github.com/jackc/pgx/v5"
)

type issueStore struct {
	queries *sqlc.Queries
}

func newIssueStore(queries *sqlc.Queries) IssueStore {
	return &issueStore{queries: queries}
}

func (s *issueStore) Get(ctx context.Context, ownerID, naturalKey string) (*model.Record, error) {
	row, err := s.queries.GetIssue(ctx, sqlc.GetIssueParams{OwnerID: ownerID, NaturalKey: naturalKey})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting issue: %w", err)
	}
	return toIssueRecord(row)
}

func (s *issueStore) GetForUpdate(ctx context.Context, ownerID, naturalKey string) (*model.Record, error) {
	row, err := s.queries.GetIssueForUpdate(ctx, sqlc.GetIssueForUpdateParams{OwnerID: ownerID, NaturalKey: naturalKey})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("locking issue: %w", err)
	}
	return toIssueRecord(row)
}

func (s *issueStore) Upsert(ctx context.Context, rec *model.Record) (*model.Record, error) {
	cols, ok := rec.Columns.(model.IssueColumns)
	if !ok {
		return nil, fmt.Errorf("upserting issue %s: unexpected columns %T", rec.NaturalKey, rec.Columns)
	}
	doc, err := prepareRecord(rec)
	if err != nil {
		return nil, fmt.Errorf("encoding issue %s: %w", rec.NaturalKey, err)
	}

	row, err := s.queries.UpsertIssue(ctx, sqlc.UpsertIssueParams{
		ID:              rec.ID,
		OwnerID:         rec.OwnerID,
		NaturalKey:      rec.NaturalKey,
		Document:        doc,
		Identifier:      cols.Identifier.Ptr(),
		Title:           cols.Title.Ptr(),
		StateID:         cols.StateID.Ptr(),
		StateName:       cols.StateName.Ptr(),
		StateType:       cols.StateType.Ptr(),
		Priority:        int32Ptr(cols.Priority),
		AssigneeID:      cols.AssigneeID.Ptr(),
		AssigneeName:    cols.AssigneeName.Ptr(),
		TeamID:          cols.TeamID.Ptr(),
		ProjectID:       cols.ProjectID.Ptr(),
		CycleID:         cols.CycleID.Ptr(),
		LabelIds:        stringsPtr(cols.LabelIDs),
		DueDate:         cols.DueDate.Ptr(),
		SourceCreatedAt: timeToPgTimestamptz(rec.SourceCreatedAt),
		SourceUpdatedAt: timeToPgTimestamptz(rec.SourceUpdatedAt),
		SyncedAt:        timeToPgTimestamptz(&rec.SyncedAt),
	})
	if err != nil {
		return nil, fmt.Errorf("upserting issue %s: %w", rec.NaturalKey, err)
	}
	return toIssueRecord(row)
}

func (s *issueStore) List(ctx context.Context, q IssueQuery) ([]model.Record, error) {
	rows, err := s.queries.ListIssues(ctx, sqlc.ListIssuesParams{
		OwnerID:    q.OwnerID,
		TeamIds:    nonNil(q.TeamIDs),
		ProjectIds: q.ProjectIDs,
		Statuses:   q.Statuses,
		RowLimit:   q.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("listing issues: %w", err)
	}
	return toRecords(rows, toIssueRecord)
}

func toIssueRecord(row sqlc.Issue) (*model.Record, error) {
	return toRecord(model.EntityIssue, rowMeta{
		ID:              row.ID,
		OwnerID:         row.OwnerID,
		NaturalKey:      row.NaturalKey,
		Document:        row.Document,
		SourceCreatedAt: row.SourceCreatedAt,
		SourceUpdatedAt: row.SourceUpdatedAt,
		SyncedAt:        row.SyncedAt,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}, model.IssueColumns{
		Identifier:   model.FromPtr(row.Identifier),
		Title:        model.FromPtr(row.Title),
		StateID:      model.FromPtr(row.StateID),
		StateName:    model.FromPtr(row.StateName),
		StateType:    model.FromPtr(row.StateType),
		Priority:     int32Opt(row.Priority),
		AssigneeID:   model.FromPtr(row.AssigneeID),
		AssigneeName: model.FromPtr(row.AssigneeName),
		TeamID:       model.FromPtr(row.TeamID),
		ProjectID:    model.FromPtr(row.ProjectID),
		CycleID:      model.FromPtr(row.CycleID),
		LabelIDs:     stringsOpt(row.LabelIds),
		DueDate:      model.FromPtr(row.DueDate),
	})
}
