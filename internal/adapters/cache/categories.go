package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"organizaai/internal/domain"
)

const (
	categoriesKey = "organizaai:categories"
	categoriesTTL = 10 * time.Minute
)

type categoryCache struct {
	client *redis.Client
}

// NewCategoryCache connects to Redis and returns a CategoryCache, or nil when
// addr is empty so callers can skip caching entirely.
func NewCategoryCache(addr, password string, logger *slog.Logger) domain.CategoryCache {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", "err", err)
	} else {
		logger.Info("connected to redis")
	}
	return &categoryCache{client: client}
}

func (c *categoryCache) Get(ctx context.Context) ([]*domain.Category, error) {
	raw, err := c.client.Get(ctx, categoriesKey).Bytes()
	if err != nil {
		return nil, err
	}
	var cats []*domain.Category
	if err := json.Unmarshal(raw, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

func (c *categoryCache) Set(ctx context.Context, cats []*domain.Category) error {
	raw, err := json.Marshal(cats)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, categoriesKey, raw, categoriesTTL).Err()
}
