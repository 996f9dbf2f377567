package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"botmart/domain"

	"github.com/redis/go-redis/v9"
)

// TrendingCache holds the pre-scored trending list for a short window so the
// popularity join does not run on every home-page hit. Per-user ranking is
// never cached here.
type TrendingCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewTrendingCache(client *redis.Client, ttl time.Duration) *TrendingCache {
	return &TrendingCache{
		client: client,
		ttl:    ttl,
	}
}

func trendingKey(limit int) string {
	return fmt.Sprintf("reco:trending:%d", limit)
}

// Get returns the cached list, or (nil, nil) on a cache miss.
func (c *TrendingCache) Get(ctx context.Context, limit int) ([]domain.Recommendation, error) {
	val, err := c.client.Get(ctx, trendingKey(limit)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read trending cache: %w", err)
	}

	var recs []domain.Recommendation
	if err := json.Unmarshal([]byte(val), &recs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal trending cache: %w", err)
	}

	return recs, nil
}

func (c *TrendingCache) Set(ctx context.Context, limit int, recs []domain.Recommendation) error {
	jsonData, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("failed to marshal trending cache: %w", err)
	}

	if err := c.client.Set(ctx, trendingKey(limit), jsonData, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write trending cache: %w", err)
	}

	return nil
}
