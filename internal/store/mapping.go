package store

import (
	"context"
	"errors"
	"fmt"

	"basegraph.app/hubsync/common/id"
	"basegraph.app/hubsync/core/db/sqlc"
	"basegraph.app/hubsync/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type mappingStore struct {
	queries *sqlc.Queries
}

func newMappingStore(queries *sqlc.Queries) MappingStore {
	return &mappingStore{queries: queries}
}

func (s *mappingStore) ListActiveByTenant(ctx context.Context, tenantID string) ([]model.TeamMapping, error) {
	rows, err := s.queries.ListActiveMappingsByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("listing active mappings: %w", err)
	}
	return toMappingModels(rows), nil
}

func (s *mappingStore) ListByTenant(ctx context.Context, tenantID string) ([]model.TeamMapping, error) {
	rows, err := s.queries.ListMappingsByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("listing mappings: %w", err)
	}
	return toMappingModels(rows), nil
}

func (s *mappingStore) GetByTeam(ctx context.Context, teamID string) (*model.TeamMapping, error) {
	row, err := s.queries.GetMappingByTeam(ctx, teamID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting mapping for team %s: %w", teamID, err)
	}
	m := toMappingModel(row)
	return &m, nil
}

func (s *mappingStore) Upsert(ctx context.Context, mapping *model.TeamMapping) error {
	if mapping.ID == 0 {
		mapping.ID = id.New()
	}
	row, err := s.queries.UpsertMapping(ctx, sqlc.UpsertMappingParams{
		ID:                   mapping.ID,
		TenantID:             mapping.TenantID,
		TeamID:               mapping.TeamID,
		OwnerID:              mapping.OwnerID,
		VisibleProjectIds:    nonNil(mapping.VisibleProjectIDs),
		VisibleInitiativeIds: nonNil(mapping.VisibleInitiativeIDs),
		VisibleLabelIds:      nonNil(mapping.VisibleLabelIDs),
		IsActive:             mapping.Active,
	})
	if err != nil {
		// The conflict guard skipped the update: another tenant holds the team.
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("team %s is mapped elsewhere: %w", mapping.TeamID, ErrConflict)
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("team %s is mapped elsewhere: %w", mapping.TeamID, ErrConflict)
		}
		return fmt.Errorf("upserting mapping %s/%s: %w", mapping.TenantID, mapping.TeamID, err)
	}
	*mapping = toMappingModel(row)
	return nil
}

func (s *mappingStore) Deactivate(ctx context.Context, tenantID, teamID string) (bool, error) {
	n, err := s.queries.DeactivateMapping(ctx, sqlc.DeactivateMappingParams{TenantID: tenantID, TeamID: teamID})
	if err != nil {
		return false, fmt.Errorf("deactivating mapping %s/%s: %w", tenantID, teamID, err)
	}
	return n > 0, nil
}

func toMappingModels(rows []sqlc.TenantTeamMapping) []model.TeamMapping {
	out := make([]model.TeamMapping, 0, len(rows))
	for _, row := range rows {
		out = append(out, toMappingModel(row))
	}
	return out
}

func toMappingModel(row sqlc.TenantTeamMapping) model.TeamMapping {
	return model.TeamMapping{
		ID:                   row.ID,
		TenantID:             row.TenantID,
		TeamID:               row.TeamID,
		OwnerID:              row.OwnerID,
		VisibleProjectIDs:    row.VisibleProjectIds,
		VisibleInitiativeIDs: row.VisibleInitiativeIds,
		VisibleLabelIDs:      row.VisibleLabelIds,
		Active:               row.IsActive,
		CreatedAt:            row.CreatedAt.Time,
		UpdatedAt:            row.UpdatedAt.Time,
	}
}
