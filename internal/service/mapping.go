package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"basegraph.app/hubsync/internal/model"
	"basegraph.app/hubsync/internal/store"
)

type UpsertMappingParams struct {
	TenantID             string
	TeamID               string
	OwnerID              string
	VisibleProjectIDs    []string
	VisibleInitiativeIDs []string
	VisibleLabelIDs      []string
}

// MappingService manages which tracker teams a hub tenant aggregates.
type MappingService interface {
	Upsert(ctx context.Context, params UpsertMappingParams) (*model.TeamMapping, error)
	Deactivate(ctx context.Context, tenantID, teamID string) error
	List(ctx context.Context, tenantID string) ([]model.TeamMapping, error)
}

type mappingService struct {
	stores   StoreProvider
	txRunner TxRunner
}

func NewMappingService(stores StoreProvider, txRunner TxRunner) MappingService {
	return &mappingService{stores: stores, txRunner: txRunner}
}

func (s *mappingService) Upsert(ctx context.Context, params UpsertMappingParams) (*model.TeamMapping, error) {
	if params.TenantID == "" || params.TeamID == "" || params.OwnerID == "" {
		return nil, fmt.Errorf("%w: tenant_id, team_id and owner_id are required", ErrInvalidInput)
	}

	mapping := &model.TeamMapping{
		TenantID:             params.TenantID,
		TeamID:               params.TeamID,
		OwnerID:              params.OwnerID,
		VisibleProjectIDs:    normalizeIDs(params.VisibleProjectIDs),
		VisibleInitiativeIDs: normalizeIDs(params.VisibleInitiativeIDs),
		VisibleLabelIDs:      normalizeIDs(params.VisibleLabelIDs),
		Active:               true,
	}

	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		existing, err := sp.Mappings().GetByTeam(ctx, params.TeamID)
		switch {
		case err == nil:
			// A deactivated mapping frees the team for any tenant.
			if existing.Active && existing.TenantID != params.TenantID {
				return ErrTeamAlreadyMapped
			}
			mapping.ID = existing.ID
		case !errors.Is(err, store.ErrNotFound):
			return err
		}

		active, err := sp.Mappings().ListActiveByTenant(ctx, params.TenantID)
		if err != nil {
			return err
		}
		for _, m := range active {
			if m.TeamID != params.TeamID && m.OwnerID != params.OwnerID {
				return fmt.Errorf("%w: tenant already reads owner %s", ErrMappingOwnerMismatch, m.OwnerID)
			}
		}

		return sp.Mappings().Upsert(ctx, mapping)
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrTeamAlreadyMapped), errors.Is(err, ErrMappingOwnerMismatch):
			return nil, err
		case errors.Is(err, store.ErrConflict):
			return nil, ErrTeamAlreadyMapped
		}
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	slog.InfoContext(ctx, "tenant team mapping saved",
		"tenant_id", mapping.TenantID,
		"team_id", mapping.TeamID,
		"owner_id", mapping.OwnerID)
	return mapping, nil
}

func (s *mappingService) Deactivate(ctx context.Context, tenantID, teamID string) error {
	ok, err := s.stores.Mappings().Deactivate(ctx, tenantID, teamID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	if !ok {
		return ErrMappingNotFound
	}
	slog.InfoContext(ctx, "tenant team mapping deactivated", "tenant_id", tenantID, "team_id", teamID)
	return nil
}

func (s *mappingService) List(ctx context.Context, tenantID string) ([]model.TeamMapping, error) {
	mappings, err := s.stores.Mappings().ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return mappings, nil
}

// normalizeIDs sorts, dedupes and drops blank ids. The result is never nil.
func normalizeIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
