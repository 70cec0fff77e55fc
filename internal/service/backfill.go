package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"basegraph.app/hubsync/common/logger"
	"basegraph.app/hubsync/core/config"
	"basegraph.app/hubsync/internal/model"
	"basegraph.app/hubsync/internal/queue"
	"basegraph.app/hubsync/internal/store"
	"basegraph.app/hubsync/internal/tracker"
)

// TrackerClient pages entity documents out of the tracker API.
type TrackerClient interface {
	FetchPage(ctx context.Context, creds tracker.Credentials, entityType model.EntityType, cursor string) (tracker.Page, error)
}

// BackfillEnqueuer hands backfill runs to the worker.
type BackfillEnqueuer interface {
	EnqueueBackfill(ctx context.Context, ownerID string, trigger queue.Trigger) error
}

type BackfillResult struct {
	OwnerID    string
	Batches    []BatchResult
	StartedAt  time.Time
	FinishedAt time.Time
}

// Failed reports how many entities were skipped across all batches.
func (r *BackfillResult) Failed() int {
	n := 0
	for _, b := range r.Batches {
		n += b.Failed
	}
	return n
}

type BackfillService interface {
	// Run pulls every entity type for ownerID and ingests it page by page.
	Run(ctx context.Context, ownerID string) (*BackfillResult, error)
	Enqueue(ctx context.Context, ownerID string, trigger queue.Trigger) error
	// EnqueueAll queues a backfill for every enabled integration. It returns
	// zero without enqueueing when another process holds the schedule lock.
	EnqueueAll(ctx context.Context) (int, error)
}

type backfillService struct {
	integrations store.IntegrationStore
	txRunner     TxRunner
	ingest       IngestService
	tracker      TrackerClient
	enqueuer     BackfillEnqueuer
	cfg          config.BackfillConfig
}

func NewBackfillService(
	integrations store.IntegrationStore,
	txRunner TxRunner,
	ingest IngestService,
	trackerClient TrackerClient,
	enqueuer BackfillEnqueuer,
	cfg config.BackfillConfig,
) BackfillService {
	return &backfillService{
		integrations: integrations,
		txRunner:     txRunner,
		ingest:       ingest,
		tracker:      trackerClient,
		enqueuer:     enqueuer,
		cfg:          cfg,
	}
}

func (s *backfillService) Run(ctx context.Context, ownerID string) (*BackfillResult, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		OwnerID:   &ownerID,
		Component: "hubsync.service.backfill",
	})

	sc := logger.StartSpan(ctx, "hubsync.backfill.run")
	defer sc.End()
	ctx = sc.Context()

	if s.cfg.Deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Deadline)
		defer cancel()
	}

	creds, err := s.credentials(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	result := &BackfillResult{OwnerID: ownerID, StartedAt: time.Now().UTC()}
	slog.InfoContext(ctx, "backfill started")

	for _, entityType := range model.EntityTypes {
		batch, err := s.backfillType(ctx, creds, ownerID, entityType)
		result.Batches = append(result.Batches, batch)
		if err != nil {
			sc.RecordError(err)
			slog.ErrorContext(ctx, "backfill aborted", "entity_type", entityType, "error", err)
			return result, fmt.Errorf("backfilling %s: %w", entityType, err)
		}
	}

	result.FinishedAt = time.Now().UTC()
	if err := s.integrations.MarkBackfilled(ctx, ownerID, result.FinishedAt); err != nil {
		return result, fmt.Errorf("%w: marking backfill: %w", ErrStorageUnavailable, err)
	}

	slog.InfoContext(ctx, "backfill finished",
		"failed", result.Failed(),
		"duration_ms", result.FinishedAt.Sub(result.StartedAt).Milliseconds())
	return result, nil
}

func (s *backfillService) credentials(ctx context.Context, ownerID string) (tracker.Credentials, error) {
	integration, err := s.integrations.GetByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return tracker.Credentials{}, ErrIntegrationNotFound
		}
		return tracker.Credentials{}, fmt.Errorf("%w: loading integration: %w", ErrStorageUnavailable, err)
	}
	if !integration.Enabled {
		return tracker.Credentials{}, ErrIntegrationDisabled
	}
	if integration.APIKey == "" {
		return tracker.Credentials{}, fmt.Errorf("%w: integration has no api key", ErrInvalidInput)
	}

	creds := tracker.Credentials{APIKey: integration.APIKey}
	if integration.APIBaseURL != nil {
		creds.BaseURL = *integration.APIBaseURL
	}
	return creds, nil
}

func (s *backfillService) backfillType(ctx context.Context, creds tracker.Credentials, ownerID string, entityType model.EntityType) (BatchResult, error) {
	total := BatchResult{EntityType: entityType, Outcomes: make(map[model.Outcome]int)}
	cursor := ""
	pages := 0

	for {
		page, err := s.fetchPage(ctx, creds, entityType, cursor)
		if err != nil {
			return total, err
		}
		pages++

		total.Add(s.ingest.IngestBatch(ctx, ownerID, entityType, model.ActionCreate, page.Nodes))

		if !page.HasNextPage {
			break
		}
		if page.EndCursor == "" || page.EndCursor == cursor {
			return total, fmt.Errorf("tracker returned no progress after cursor %q", cursor)
		}
		cursor = page.EndCursor
	}

	slog.InfoContext(ctx, "entity type backfilled",
		"entity_type", entityType,
		"pages", pages,
		"succeeded", total.Succeeded,
		"failed", total.Failed)
	return total, nil
}

func (s *backfillService) fetchPage(ctx context.Context, creds tracker.Credentials, entityType model.EntityType, cursor string) (tracker.Page, error) {
	sc := logger.StartSpan(ctx, "hubsync.backfill.page")
	defer sc.End()

	page, err := s.tracker.FetchPage(sc.Context(), creds, entityType, cursor)
	if err != nil {
		sc.RecordError(err)
		return tracker.Page{}, err
	}
	return page, nil
}

func (s *backfillService) Enqueue(ctx context.Context, ownerID string, trigger queue.Trigger) error {
	integration, err := s.integrations.GetByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrIntegrationNotFound
		}
		return fmt.Errorf("%w: loading integration: %w", ErrStorageUnavailable, err)
	}
	if !integration.Enabled {
		return ErrIntegrationDisabled
	}
	return s.enqueuer.EnqueueBackfill(ctx, ownerID, trigger)
}

func (s *backfillService) EnqueueAll(ctx context.Context) (int, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "hubsync.service.backfill"})

	enqueued := 0
	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		locked, err := sp.Locks().TryLock(ctx, s.cfg.LockKey)
		if err != nil {
			return fmt.Errorf("acquiring schedule lock: %w", err)
		}
		if !locked {
			slog.InfoContext(ctx, "scheduled backfill already running elsewhere")
			return nil
		}

		integrations, err := sp.Integrations().ListEnabled(ctx)
		if err != nil {
			return fmt.Errorf("listing enabled integrations: %w", err)
		}
		for _, integration := range integrations {
			if err := s.enqueuer.EnqueueBackfill(ctx, integration.OwnerID, queue.TriggerSchedule); err != nil {
				slog.ErrorContext(ctx, "failed to enqueue backfill", "owner_id", integration.OwnerID, "error", err)
				continue
			}
			enqueued++
		}
		return nil
	})
	if err != nil {
		return enqueued, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return enqueued, nil
}
