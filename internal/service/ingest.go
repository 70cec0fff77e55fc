package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"basegraph.app/hubsync/common/logger"
	"basegraph.app/hubsync/core/config"
	"basegraph.app/hubsync/internal/mapper"
	"basegraph.app/hubsync/internal/model"
	"basegraph.app/hubsync/internal/signature"
	"basegraph.app/hubsync/internal/store"
)

type IngestParams struct {
	OwnerID    string
	RawBody    []byte
	Signature  string
	DeliveryID string
}

type IngestResult struct {
	Outcome    model.Outcome
	EntityType model.EntityType
	Action     model.Action
	NaturalKey string
	// Record is the stored row after a created or updated outcome.
	Record *model.Record
}

// BatchResult counts what a trusted batch did. Failed entities are logged
// and skipped.
type BatchResult struct {
	EntityType model.EntityType
	Succeeded  int
	Failed     int
	Outcomes   map[model.Outcome]int
}

func (r *BatchResult) Add(other BatchResult) {
	r.Succeeded += other.Succeeded
	r.Failed += other.Failed
	if r.Outcomes == nil {
		r.Outcomes = make(map[model.Outcome]int)
	}
	for outcome, n := range other.Outcomes {
		r.Outcomes[outcome] += n
	}
}

// EnvelopeDecoder validates a verified webhook body and decodes it.
type EnvelopeDecoder interface {
	DecodeEnvelope(raw []byte) (*mapper.Envelope, error)
}

// DeliveryDeduper remembers webhook deliveries that were already applied.
type DeliveryDeduper interface {
	Seen(ctx context.Context, ownerID, deliveryID string) (bool, error)
	Remember(ctx context.Context, ownerID, deliveryID string) error
}

type IngestService interface {
	Ingest(ctx context.Context, params IngestParams) (*IngestResult, error)
	IngestBatch(ctx context.Context, ownerID string, entityType model.EntityType, action model.Action, payloads []model.Document) BatchResult
}

type ingestService struct {
	integrations store.IntegrationStore
	txRunner     TxRunner
	registry     *mapper.Registry
	envelopes    EnvelopeDecoder
	dedupe       DeliveryDeduper
	cfg          config.IngestConfig
}

// NewIngestService builds the webhook ingestion gateway. dedupe may be nil,
// in which case every delivery is applied.
func NewIngestService(
	integrations store.IntegrationStore,
	txRunner TxRunner,
	registry *mapper.Registry,
	envelopes EnvelopeDecoder,
	dedupe DeliveryDeduper,
	cfg config.IngestConfig,
) IngestService {
	return &ingestService{
		integrations: integrations,
		txRunner:     txRunner,
		registry:     registry,
		envelopes:    envelopes,
		dedupe:       dedupe,
		cfg:          cfg,
	}
}

func (s *ingestService) Ingest(ctx context.Context, params IngestParams) (*IngestResult, error) {
	fields := logger.LogFields{OwnerID: &params.OwnerID, Component: "hubsync.service.ingest"}
	if params.DeliveryID != "" {
		fields.DeliveryID = &params.DeliveryID
	}
	ctx = logger.WithLogFields(ctx, fields)

	sc := logger.StartSpan(ctx, "hubsync.ingest.webhook")
	defer sc.End()
	ctx = sc.Context()

	integration, err := s.integrations.GetByOwner(ctx, params.OwnerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrIntegrationNotFound
		}
		sc.RecordError(err)
		return nil, fmt.Errorf("%w: loading integration: %w", ErrStorageUnavailable, err)
	}
	if !integration.Enabled {
		return nil, ErrIntegrationDisabled
	}

	if err := verifySignature(params.RawBody, params.Signature, integration.WebhookSecret); err != nil {
		slog.WarnContext(ctx, "rejected webhook delivery", "error", err)
		return nil, err
	}

	if s.seen(ctx, params) {
		slog.InfoContext(ctx, "duplicate delivery skipped")
		return &IngestResult{Outcome: model.OutcomeDuplicate}, nil
	}

	envelope, err := s.envelopes.DecodeEnvelope(params.RawBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	action, ok := model.ParseAction(envelope.Action)
	if !ok {
		return nil, fmt.Errorf("%w: unknown action %q", ErrMalformedPayload, envelope.Action)
	}

	entityType, known := model.ParseEntityType(envelope.Type)
	if !known {
		slog.InfoContext(ctx, "ignoring unsupported entity type", "type", envelope.Type, "action", action)
		s.remember(ctx, params)
		return &IngestResult{Outcome: model.OutcomeIgnored, EntityType: model.EntityType(envelope.Type), Action: action}, nil
	}

	result, err := s.apply(ctx, params.OwnerID, entityType, action, model.Document(envelope.Data))
	if err != nil {
		sc.RecordError(err)
		slog.ErrorContext(ctx, "webhook delivery failed", "entity_type", entityType, "action", action, "error", err)
		return nil, err
	}
	s.remember(ctx, params)

	slog.InfoContext(ctx, "webhook delivery ingested",
		"entity_type", entityType,
		"action", action,
		"natural_key", result.NaturalKey,
		"outcome", result.Outcome)
	return result, nil
}

func (s *ingestService) IngestBatch(ctx context.Context, ownerID string, entityType model.EntityType, action model.Action, payloads []model.Document) BatchResult {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		OwnerID:    &ownerID,
		EntityType: logger.Ptr(string(entityType)),
		Component:  "hubsync.service.ingest",
	})

	result := BatchResult{EntityType: entityType, Outcomes: make(map[model.Outcome]int)}
	for _, payload := range payloads {
		r, err := s.apply(ctx, ownerID, entityType, action, payload)
		if err != nil {
			key, _ := payload.String("id")
			slog.WarnContext(ctx, "skipping entity in batch", "natural_key", key, "error", err)
			result.Failed++
			continue
		}
		result.Succeeded++
		result.Outcomes[r.Outcome]++
	}
	return result
}

// apply maps one payload and folds it into the stored record under a row
// lock.
func (s *ingestService) apply(ctx context.Context, ownerID string, entityType model.EntityType, action model.Action, payload model.Document) (*IngestResult, error) {
	result := &IngestResult{EntityType: entityType, Action: action}
	result.NaturalKey, _ = payload.String("id")

	if action == model.ActionRemove {
		result.Outcome = model.OutcomeIgnored
		return result, nil
	}

	rec, err := s.registry.Map(entityType, action, payload, ownerID)
	if err != nil {
		if errors.Is(err, mapper.ErrUnknownEntityType) {
			result.Outcome = model.OutcomeIgnored
			return result, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}

	err = s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		records, err := sp.Records(entityType)
		if err != nil {
			return err
		}

		prior, err := records.GetForUpdate(ctx, ownerID, rec.NaturalKey)
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				return err
			}
			prior = nil
		}

		if s.cfg.RejectStaleUpdates && action == model.ActionUpdate && model.IsStale(prior, rec) {
			result.Outcome = model.OutcomeStale
			return nil
		}

		merged, err := s.registry.Merge(prior, rec)
		if err != nil {
			return err
		}
		if model.Unchanged(prior, merged) {
			result.Record = prior
			result.Outcome = model.OutcomeUpdated
			return nil
		}

		saved, err := records.Upsert(ctx, &merged)
		if err != nil {
			return err
		}

		result.Record = saved
		result.Outcome = model.OutcomeUpdated
		if prior == nil {
			result.Outcome = model.OutcomeCreated
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return result, nil
}

func verifySignature(body []byte, provided, secret string) error {
	if provided == "" {
		return ErrSignatureInvalid
	}
	ok, err := signature.Verify(body, provided, secret)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSignatureMalformed, err)
	}
	if !ok {
		return ErrSignatureInvalid
	}
	return nil
}

// seen treats a failed lookup as unseen.
func (s *ingestService) seen(ctx context.Context, params IngestParams) bool {
	if s.dedupe == nil || params.DeliveryID == "" {
		return false
	}
	seen, err := s.dedupe.Seen(ctx, params.OwnerID, params.DeliveryID)
	if err != nil {
		slog.WarnContext(ctx, "delivery dedupe lookup failed", "error", err)
		return false
	}
	return seen
}

func (s *ingestService) remember(ctx context.Context, params IngestParams) {
	if s.dedupe == nil || params.DeliveryID == "" {
		return
	}
	if err := s.dedupe.Remember(ctx, params.OwnerID, params.DeliveryID); err != nil {
		slog.WarnContext(ctx, "failed to remember delivery", "error", err)
	}
}
