package store

import (
	"context"
	"errors"
	"fmt"

	"basegraph.app/hubsync/core/db/sqlc"
	"basegraph.app/hubsync/internal/model"
	"github.com/jackc/pgx/v5"
)

type commentStore struct {
	queries *sqlc.Queries
}

func newCommentStore(queries *sqlc.Queries) CommentStore {
	return &commentStore{queries: queries}
}

func (s *commentStore) Get(ctx context.Context, ownerID, naturalKey string) (*model.Record, error) {
	row, err := s.queries.GetComment(ctx, sqlc.GetCommentParams{OwnerID: ownerID, NaturalKey: naturalKey})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting comment: %w", err)
	}
	return toCommentRecord(row)
}

func (s *commentStore) GetForUpdate(ctx context.Context, ownerID, naturalKey string) (*model.Record, error) {
	row, err := s.queries.GetCommentForUpdate(ctx, sqlc.GetCommentForUpdateParams{OwnerID: ownerID, NaturalKey: naturalKey})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("locking comment: %w", err)
	}
	return toCommentRecord(row)
}

func (s *commentStore) Upsert(ctx context.Context, rec *model.Record) (*model.Record, error) {
	cols, ok := rec.Columns.(model.CommentColumns)
	if !ok {
		return nil, fmt.Errorf("upserting comment %s: unexpected columns %T", rec.NaturalKey, rec.Columns)
	}
	doc, err := prepareRecord(rec)
	if err != nil {
		return nil, fmt.Errorf("encoding comment %s: %w", rec.NaturalKey, err)
	}

	row, err := s.queries.UpsertComment(ctx, sqlc.UpsertCommentParams{
		ID:              rec.ID,
		OwnerID:         rec.OwnerID,
		NaturalKey:      rec.NaturalKey,
		Document:        doc,
		IssueRef:        cols.IssueRef.Ptr(),
		UserID:          cols.UserID.Ptr(),
		UserName:        cols.UserName.Ptr(),
		SourceCreatedAt: timeToPgTimestamptz(rec.SourceCreatedAt),
		SourceUpdatedAt: timeToPgTimestamptz(rec.SourceUpdatedAt),
		SyncedAt:        timeToPgTimestamptz(&rec.SyncedAt),
	})
	if err != nil {
		return nil, fmt.Errorf("upserting comment %s: %w", rec.NaturalKey, err)
	}
	return toCommentRecord(row)
}

func (s *commentStore) ListByIssue(ctx context.Context, ownerID, issueKey string) ([]model.Record, error) {
	rows, err := s.queries.ListCommentsByIssue(ctx, sqlc.ListCommentsByIssueParams{
		OwnerID:  ownerID,
		IssueRef: &issueKey,
	})
	if err != nil {
		return nil, fmt.Errorf("listing comments for issue %s: %w", issueKey, err)
	}
	return toRecords(rows, toCommentRecord)
}

func toCommentRecord(row sqlc.Comment) (*model.Record, error) {
	return toRecord(model.EntityComment, rowMeta{
		ID:              row.ID,
		OwnerID:         row.OwnerID,
		NaturalKey:      row.NaturalKey,
		Document:        row.Document,
		SourceCreatedAt: row.SourceCreatedAt,
		SourceUpdatedAt: row.SourceUpdatedAt,
		SyncedAt:        row.SyncedAt,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}, model.CommentColumns{
		IssueRef: model.FromPtr(row.IssueRef),
		UserID:   model.FromPtr(row.UserID),
		UserName: model.FromPtr(row.UserName),
	})
}
