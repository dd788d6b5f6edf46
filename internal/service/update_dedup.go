package service

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisSetNXer interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// UpdateDeduplicator drops Telegram webhook redeliveries of the same update_id.
type UpdateDeduplicator struct {
	client redisSetNXer
	ttl    time.Duration
	prefix string
}

func NewRedisUpdateDeduplicator(client *redis.Client, ttl time.Duration) *UpdateDeduplicator {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &UpdateDeduplicator{
		client: client,
		ttl:    ttl,
		prefix: "tg:update:",
	}
}

// FirstDelivery claims updateID and reports whether this is its first delivery.
// Fails open on redis errors.
func (d *UpdateDeduplicator) FirstDelivery(ctx context.Context, updateID int64) bool {
	if d == nil || d.client == nil || updateID == 0 {
		return true
	}
	rctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	ok, err := d.client.SetNX(rctx, d.key(updateID), 1, d.ttl).Result()
	if err != nil {
		return true
	}
	return ok
}

// Release forgets updateID so a redelivery gets processed again.
func (d *UpdateDeduplicator) Release(ctx context.Context, updateID int64) {
	if d == nil || d.client == nil || updateID == 0 {
		return
	}
	rctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	_ = d.client.Del(rctx, d.key(updateID)).Err()
}

func (d *UpdateDeduplicator) key(updateID int64) string {
	return d.prefix + strconv.FormatInt(updateID, 10)
}
