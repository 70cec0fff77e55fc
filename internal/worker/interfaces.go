package worker

import (
	"context"

	"basegraph.app/hubsync/internal/queue"
	"basegraph.app/hubsync/internal/service"
)

// Consumer abstracts the message queue for testability.
type Consumer interface {
	Read(ctx context.Context) ([]queue.Message, error)
	Ack(ctx context.Context, msg queue.Message) error
	Requeue(ctx context.Context, msg queue.Message, errMsg string) error
	SendDLQ(ctx context.Context, msg queue.Message, errMsg string) error
}

// BackfillRunner runs one owner's backfill to completion.
type BackfillRunner interface {
	Run(ctx context.Context, ownerID string) (*service.BackfillResult, error)
}

// BackfillScheduler queues backfills for every enabled integration.
type BackfillScheduler interface {
	EnqueueAll(ctx context.Context) (int, error)
}
