package queue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

type Producer interface {
	Enqueue(ctx context.Context, task Task) error
	EnqueueBackfill(ctx context.Context, ownerID string, trigger Trigger) error
	Close() error
}

type redisProducer struct {
	client *redis.Client
	stream string
	logger *slog.Logger
}

func NewRedisProducer(client *redis.Client, stream string, logger *slog.Logger) Producer {
	if logger == nil {
		logger = slog.Default()
	}
	return &redisProducer{
		client: client,
		stream: stream,
		logger: logger,
	}
}

func (p *redisProducer) EnqueueBackfill(ctx context.Context, ownerID string, trigger Trigger) error {
	return p.Enqueue(ctx, Task{
		TaskType: TaskTypeBackfill,
		OwnerID:  ownerID,
		Trigger:  trigger,
	})
}

func (p *redisProducer) Enqueue(ctx context.Context, task Task) error {
	if task.OwnerID == "" {
		return fmt.Errorf("enqueue %s: missing owner_id", task.TaskType)
	}

	attempt := task.Attempt
	if attempt <= 0 {
		attempt = 1
	}

	fields := map[string]any{
		"task_type": string(task.TaskType),
		"owner_id":  task.OwnerID,
		"attempt":   attempt,
	}
	if task.Trigger != "" {
		fields["trigger"] = string(task.Trigger)
	}
	if task.TraceID != nil && *task.TraceID != "" {
		fields["trace_id"] = *task.TraceID
	}

	if err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: fields,
	}).Err(); err != nil {
		return fmt.Errorf("enqueue task: %w", err)
	}

	p.logger.InfoContext(ctx, "enqueued task", "task_type", task.TaskType, "owner_id", task.OwnerID, "trigger", task.Trigger, "attempt", attempt)
	return nil
}

func (p *redisProducer) Close() error {
	return p.client.Close()
}
