package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisDeduper remembers webhook delivery ids for a TTL.
type RedisDeduper struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisDeduper(client *redis.Client, prefix string, ttl time.Duration) *RedisDeduper {
	return &RedisDeduper{client: client, prefix: prefix, ttl: ttl}
}

func (d *RedisDeduper) key(ownerID, deliveryID string) string {
	return d.prefix + ownerID + ":" + deliveryID
}

func (d *RedisDeduper) Seen(ctx context.Context, ownerID, deliveryID string) (bool, error) {
	if deliveryID == "" {
		return false, nil
	}
	err := d.client.Get(ctx, d.key(ownerID, deliveryID)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking delivery %s: %w", deliveryID, err)
	}
	return true, nil
}

func (d *RedisDeduper) Remember(ctx context.Context, ownerID, deliveryID string) error {
	if deliveryID == "" {
		return nil
	}
	if err := d.client.SetNX(ctx, d.key(ownerID, deliveryID), 1, d.ttl).Err(); err != nil {
		return fmt.Errorf("remembering delivery %s: %w", deliveryID, err)
	}
	return nil
}
