package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"basegraph.app/hubsync/common/id"
	"basegraph.app/hubsync/core/db/sqlc"
	"basegraph.app/hubsync/internal/model"
	"github.com/jackc/pgx/v5"
)

type integrationStore struct {
	queries *sqlc.Queries
}

func newIntegrationStore(queries *sqlc.Queries) IntegrationStore {
	return &integrationStore{queries: queries}
}

func (s *integrationStore) GetByOwner(ctx context.Context, ownerID string) (*model.Integration, error) {
	row, err := s.queries.GetIntegrationByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting integration for owner %s: %w", ownerID, err)
	}
	i := toIntegrationModel(row)
	return &i, nil
}

func (s *integrationStore) Upsert(ctx context.Context, integration *model.Integration) error {
	if integration.ID == 0 {
		integration.ID = id.New()
	}
	row, err := s.queries.UpsertIntegration(ctx, sqlc.UpsertIntegrationParams{
		ID:            integration.ID,
		OwnerID:       integration.OwnerID,
		WebhookSecret: integration.WebhookSecret,
		ApiKey:        integration.APIKey,
		ApiBaseUrl:    integration.APIBaseURL,
		IsEnabled:     integration.Enabled,
	})
	if err != nil {
		return fmt.Errorf("upserting integration for owner %s: %w", integration.OwnerID, err)
	}
	*integration = toIntegrationModel(row)
	return nil
}

func (s *integrationStore) ListEnabled(ctx context.Context) ([]model.Integration, error) {
	rows, err := s.queries.ListEnabledIntegrations(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing enabled integrations: %w", err)
	}
	out := make([]model.Integration, 0, len(rows))
	for _, row := range rows {
		out = append(out, toIntegrationModel(row))
	}
	return out, nil
}

func (s *integrationStore) MarkBackfilled(ctx context.Context, ownerID string, at time.Time) error {
	err := s.queries.MarkIntegrationBackfilled(ctx, sqlc.MarkIntegrationBackfilledParams{
		OwnerID:        ownerID,
		LastBackfillAt: timeToPgTimestamptz(&at),
	})
	if err != nil {
		return fmt.Errorf("marking backfill for owner %s: %w", ownerID, err)
	}
	return nil
}

func toIntegrationModel(row sqlc.Integration) model.Integration {
	return model.Integration{
		ID:             row.ID,
		OwnerID:        row.OwnerID,
		WebhookSecret:  row.WebhookSecret,
		APIKey:         row.ApiKey,
		APIBaseURL:     row.ApiBaseUrl,
		Enabled:        row.IsEnabled,
		LastBackfillAt: toTimePointer(row.LastBackfillAt),
		CreatedAt:      row.CreatedAt.Time,
		UpdatedAt:      row.UpdatedAt.Time,
	}
}
