package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"basegraph.app/hubsync/common/logger"
	"basegraph.app/hubsync/internal/queue"
	"basegraph.app/hubsync/internal/service"
	"basegraph.app/hubsync/internal/tracker"
)

type Config struct {
	MaxAttempts int
	// ErrorBackoff is the pause after a failed read.
	ErrorBackoff time.Duration
}

type Worker struct {
	consumer Consumer
	backfill BackfillRunner
	cfg      Config
}

func New(consumer Consumer, backfill BackfillRunner, cfg Config) *Worker {
	if cfg.ErrorBackoff <= 0 {
		cfg.ErrorBackoff = time.Second
	}
	return &Worker{
		consumer:  consumer,
		backfill:  backfill,
		cfg:       cfg,
	}
}

// Run consumes tasks until ctx is done.
func (w *Worker) Run(ctx context.Context) error {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "hubsync.worker"})
	slog.InfoContext(ctx, "worker started")

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
			if err := w.processOneBatch(ctx); err != nil {
				slog.ErrorContext(ctx, "batch processing error", "error", err)
				select {
				case <-ctx.Done():
					return nil
				case <-time.After(w.cfg.ErrorBackoff):
				}
			}
		}
	}
}

func (w *Worker) processOneBatch(ctx context.Context) error {
	messages, err := w.consumer.Read(ctx)
	if err != nil {
		return fmt.Errorf("reading from stream: %w", err)
	}

	for _, msg := range messages {
		if err := w.processMessageSafe(ctx, msg); err != nil {
			slog.ErrorContext(ctx, "message processing failed",
				"error", err,
				"message_id", msg.ID,
				"owner_id", msg.OwnerID)
			w.HandleFailedMessage(ctx, msg, err)
		}
	}

	return nil
}

func (w *Worker) processMessageSafe(ctx context.Context, msg queue.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "panic recovered in message processing",
				"panic", r,
				"message_id", msg.ID,
				"owner_id", msg.OwnerID)
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return w.ProcessMessage(ctx, msg)
}

// ProcessMessage runs one task and acks it on success. The reclaimer reuses
// it for stale messages.
func (w *Worker) ProcessMessage(ctx context.Context, msg queue.Message) error {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		OwnerID:   &msg.OwnerID,
		MessageID: &msg.ID,
	})

	sc := logger.StartSpanFromTraceID(ctx, msg.TraceID, "hubsync.worker.task")
	defer sc.End()
	ctx = sc.Context()

	slog.InfoContext(ctx, "processing message",
		"task_type", msg.TaskType,
		"trigger", msg.Trigger,
		"attempt", msg.Attempt)

	switch msg.TaskType {
	case queue.TaskTypeBackfill:
		result, err := w.backfill.Run(ctx, msg.OwnerID)
		if err != nil {
			sc.RecordError(err)
			return err
		}
		slog.InfoContext(ctx, "backfill task complete", "failed_entities", result.Failed())
	default:
		return permanent(fmt.Errorf("unknown task type %q", msg.TaskType))
	}

	if err := w.consumer.Ack(ctx, msg); err != nil {
		// A redelivered backfill is harmless.
		slog.WarnContext(ctx, "failed to ACK message",
			"error", err,
			"message_id", msg.ID)
	}
	return nil
}

// HandleFailedMessage requeues msg or dead-letters it once attempts run out
// or the failure cannot be retried.
func (w *Worker) HandleFailedMessage(ctx context.Context, msg queue.Message, err error) {
	if msg.Attempt >= w.cfg.MaxAttempts || isPermanent(err) {
		slog.ErrorContext(ctx, "sending message to DLQ",
			"message_id", msg.ID,
			"owner_id", msg.OwnerID,
			"attempts", msg.Attempt,
			"permanent", isPermanent(err))
		if dlqErr := w.consumer.SendDLQ(ctx, msg, err.Error()); dlqErr != nil {
			slog.ErrorContext(ctx, "failed to send to DLQ", "error", dlqErr)
		}
		return
	}

	slog.WarnContext(ctx, "requeuing failed message",
		"message_id", msg.ID,
		"owner_id", msg.OwnerID,
		"attempt", msg.Attempt)
	if requeueErr := w.consumer.Requeue(ctx, msg, err.Error()); requeueErr != nil {
		slog.ErrorContext(ctx, "failed to requeue message", "error", requeueErr)
	}
}

type permanentError struct{ err error }

func (e permanentError) Error() string { return e.err.Error() }
func (e permanentError) Unwrap() error { return e.err }

func permanent(err error) error { return permanentError{err: err} }

// isPermanent reports failures a retry cannot fix.
func isPermanent(err error) bool {
	var p permanentError
	if errors.As(err, &p) {
		return true
	}
	return errors.Is(err, service.ErrIntegrationNotFound) ||
		errors.Is(err, service.ErrIntegrationDisabled) ||
		errors.Is(err, service.ErrInvalidInput) ||
		errors.Is(err, tracker.ErrUnauthorized)
}
