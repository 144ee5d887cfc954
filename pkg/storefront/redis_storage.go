package storefront

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix  = "shop:session:"
	defaultSessionTTL = 30 * 24 * time.Hour
)

// RedisStorage keeps one shopper's keys in redis under a session id, so a
// cart can follow the shopper across processes. Each write refreshes the
// key's TTL.
type RedisStorage struct {
	client    *redis.Client
	sessionID string
	ttl       time.Duration
}

// NewRedisStorage binds to sessionID, or to a fresh random id when empty.
func NewRedisStorage(client *redis.Client, sessionID string, ttl time.Duration) *RedisStorage {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &RedisStorage{client: client, sessionID: sessionID, ttl: ttl}
}

// SessionID is the id to pass back in to resume this session.
func (r *RedisStorage) SessionID() string { return r.sessionID }

func (r *RedisStorage) key(k string) string {
	return sessionKeyPrefix + r.sessionID + ":" + k
}

func (r *RedisStorage) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, true, nil
}

func (r *RedisStorage) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.key(key), value, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *RedisStorage) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = r.key(k)
	}
	if err := r.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("redis delete: %w", err)
	}
	return nil
}
