package memcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"playgroundr/internal/models/place_models"
)

const placeKeyPrefix = "playgroundr:place:"

// RedisPlaceCache keeps place payloads as JSON strings in Redis so they are
// shared between instances.
type RedisPlaceCache struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisPlaceCache(client *redis.Client, logger *zap.Logger) *RedisPlaceCache {
	return &RedisPlaceCache{client: client, logger: logger}
}

// Get treats any Redis or decoding failure as a miss.
func (c *RedisPlaceCache) Get(ctx context.Context, placeID string) (*place_models.PlaceRecord, bool) {
	data, err := c.client.Get(ctx, placeKeyPrefix+placeID).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("redis place cache get failed", zap.String("place_id", placeID), zap.Error(err))
		}
		return nil, false
	}

	var rec place_models.PlaceRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		c.logger.Warn("dropping undecodable cached place", zap.String("place_id", placeID), zap.Error(err))
		_ = c.client.Del(ctx, placeKeyPrefix+placeID).Err()
		return nil, false
	}
	return &rec, true
}

func (c *RedisPlaceCache) Set(ctx context.Context, placeID string, rec *place_models.PlaceRecord, ttl time.Duration) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode place %s: %w", placeID, err)
	}
	if err := c.client.Set(ctx, placeKeyPrefix+placeID, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set place %s: %w", placeID, err)
	}
	return nil
}
