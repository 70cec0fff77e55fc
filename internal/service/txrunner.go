package service

import (
	"context"

	"basegraph.app/hubsync/core/db"
	"basegraph.app/hubsync/core/db/sqlc"
	"basegraph.app/hubsync/internal/model"
	"basegraph.app/hubsync/internal/store"
)

// StoreProvider exposes the stores services read and write through. Inside
// WithTx every store is bound to the transaction.
type StoreProvider interface {
	Issues() store.IssueStore
	Comments() store.CommentStore
	Projects() store.ProjectStore
	Initiatives() store.InitiativeStore
	Teams() store.TeamStore
	Mappings() store.MappingStore
	Integrations() store.IntegrationStore
	Locks() store.LockStore
	Records(entityType model.EntityType) (store.RecordStore, error)
}

// TxRunner runs functions within a transaction and provides stores bound to that transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(stores StoreProvider) error) error
}

type dbTxRunner struct {
	db *db.DB
}

// NewTxRunner builds a TxRunner backed by the core DB.
func NewTxRunner(db *db.DB) TxRunner {
	return &dbTxRunner{db: db}
}

func (r *dbTxRunner) WithTx(ctx context.Context, fn func(stores StoreProvider) error) error {
	return r.db.WithTx(ctx, func(q *sqlc.Queries) error {
		return fn(store.NewStores(q))
	})
}
