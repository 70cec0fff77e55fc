package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"basegraph.app/hubsync/internal/model"
	"basegraph.app/hubsync/internal/store"
)

type UpsertIntegrationParams struct {
	OwnerID       string
	WebhookSecret string
	// APIKey is kept from the stored integration when empty.
	APIKey     string
	APIBaseURL *string
	Enabled    *bool
}

type IntegrationService interface {
	Upsert(ctx context.Context, params UpsertIntegrationParams) (*model.Integration, error)
	Get(ctx context.Context, ownerID string) (*model.Integration, error)
	ListEnabled(ctx context.Context) ([]model.Integration, error)
}

type integrationService struct {
	integrations store.IntegrationStore
}

func NewIntegrationService(integrations store.IntegrationStore) IntegrationService {
	return &integrationService{integrations: integrations}
}

func (s *integrationService) Upsert(ctx context.Context, params UpsertIntegrationParams) (*model.Integration, error) {
	if params.OwnerID == "" || params.WebhookSecret == "" {
		return nil, fmt.Errorf("%w: owner_id and webhook_secret are required", ErrInvalidInput)
	}

	integration := &model.Integration{
		OwnerID:       params.OwnerID,
		WebhookSecret: params.WebhookSecret,
		APIKey:        params.APIKey,
		APIBaseURL:    params.APIBaseURL,
		Enabled:       true,
	}
	if params.Enabled != nil {
		integration.Enabled = *params.Enabled
	}

	existing, err := s.integrations.GetByOwner(ctx, params.OwnerID)
	switch {
	case err == nil:
		integration.ID = existing.ID
		if integration.APIKey == "" {
			integration.APIKey = existing.APIKey
		}
	case !errors.Is(err, store.ErrNotFound):
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	if err := s.integrations.Upsert(ctx, integration); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	slog.InfoContext(ctx, "integration saved", "owner_id", integration.OwnerID, "enabled", integration.Enabled)
	return integration, nil
}

func (s *integrationService) Get(ctx context.Context, ownerID string) (*model.Integration, error) {
	integration, err := s.integrations.GetByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrIntegrationNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return integration, nil
}

func (s *integrationService) ListEnabled(ctx context.Context) ([]model.Integration, error) {
	integrations, err := s.integrations.ListEnabled(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return integrations, nil
}
