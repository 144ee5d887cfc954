package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	categoriesKey     = "catalog:categories"
	categoriesBaseTTL = 10 * time.Minute
	categoriesJitter  = 5
)

// CategoryCache stores the distinct catalog categories. Entries expire after
// a base TTL plus up to a few minutes of jitter so replicas do not refresh
// in lockstep.
type CategoryCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func NewCategoryCache(client *redis.Client) *CategoryCache {
	return &CategoryCache{client: client, baseTTL: categoriesBaseTTL}
}

// Get returns the cached categories, or nil without error on a miss.
func (c *CategoryCache) Get(ctx context.Context) ([]string, error) {
	data, err := c.client.Get(ctx, categoriesKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get categories: %w", err)
	}

	categories := []string{}
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("unmarshal categories: %w", err)
	}
	return categories, nil
}

func (c *CategoryCache) Set(ctx context.Context, categories []string) error {
	if categories == nil {
		categories = []string{}
	}
	data, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("marshal categories: %w", err)
	}

	ttl := c.baseTTL + time.Duration(rand.Intn(categoriesJitter))*time.Minute
	if err := c.client.Set(ctx, categoriesKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set categories: %w", err)
	}
	return nil
}

func (c *CategoryCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, categoriesKey).Err(); err != nil {
		return fmt.Errorf("redis delete categories: %w", err)
	}
	return nil
}
