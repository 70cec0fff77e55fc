package store

import (
	"context"
	"errors"
	"time"

	"basegraph.app/hubsync/internal/model"
)

var (
	// ErrNotFound is returned when a requested entity does not exist
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a write violates a uniqueness constraint
	ErrConflict = errors.New("conflict")
)

// RecordStore reads and writes one entity table keyed by (owner, natural key).
type RecordStore interface {
	Get(ctx context.Context, ownerID, naturalKey string) (*model.Record, error)
	// GetForUpdate locks the row for the rest of the transaction.
	GetForUpdate(ctx context.Context, ownerID, naturalKey string) (*model.Record, error)
	// Upsert inserts or fully replaces the stored row. Merging with the prior
	// row is the caller's job.
	Upsert(ctx context.Context, rec *model.Record) (*model.Record, error)
}

type IssueQuery struct {
	OwnerID string
	TeamIDs []string
	// ProjectIDs and Statuses are skipped when nil.
	ProjectIDs []string
	Statuses   []string
	Limit      int32
}

type IssueStore interface {
	RecordStore
	List(ctx context.Context, q IssueQuery) ([]model.Record, error)
}

type CommentStore interface {
	RecordStore
	ListByIssue(ctx context.Context, ownerID, issueKey string) ([]model.Record, error)
}

type ProjectQuery struct {
	OwnerID  string
	TeamIDs  []string
	Statuses []string
}

type ProjectStore interface {
	RecordStore
	List(ctx context.Context, q ProjectQuery) ([]model.Record, error)
}

type InitiativeStore interface {
	RecordStore
	List(ctx context.Context, ownerID string, statuses []string) ([]model.Record, error)
}

type TeamStore interface {
	RecordStore
	ListByKeys(ctx context.Context, ownerID string, keys []string) ([]model.Record, error)
}

// MappingStore defines the contract for tenant team mappings
type MappingStore interface {
	ListActiveByTenant(ctx context.Context, tenantID string) ([]model.TeamMapping, error)
	ListByTenant(ctx context.Context, tenantID string) ([]model.TeamMapping, error)
	GetByTeam(ctx context.Context, teamID string) (*model.TeamMapping, error)
	Upsert(ctx context.Context, mapping *model.TeamMapping) error
	// Deactivate reports false when no active mapping matched.
	Deactivate(ctx context.Context, tenantID, teamID string) (bool, error)
}

// IntegrationStore defines the contract for per-owner integration settings
type IntegrationStore interface {
	GetByOwner(ctx context.Context, ownerID string) (*model.Integration, error)
	Upsert(ctx context.Context, integration *model.Integration) error
	ListEnabled(ctx context.Context) ([]model.Integration, error)
	MarkBackfilled(ctx context.Context, ownerID string, at time.Time) error
}

// LockStore hands out transaction-scoped advisory locks.
type LockStore interface {
	TryLock(ctx context.Context, key int64) (bool, error)
}
