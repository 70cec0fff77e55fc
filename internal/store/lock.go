package store

import (
	"context"
	"fmt"

	"basegraph.app/hubsync/core/db/sqlc"
)

type lockStore struct {
	queries *sqlc.Queries
}

func newLockStore(queries *sqlc.Queries) LockStore {
	return &lockStore{queries: queries}
}

// TryLock takes a transaction-scoped advisory lock. It is released on commit
// or rollback, so it only holds when the store was built inside WithTx.
func (s *lockStore) TryLock(ctx context.Context, key int64) (bool, error) {
	ok, err := s.queries.TryAdvisoryXactLock(ctx, key)
	if err != nil {
		return false, fmt.Errorf("acquiring advisory lock %d: %w", key, err)
	}
	return ok, nil
}
