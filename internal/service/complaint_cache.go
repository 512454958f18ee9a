package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/dmiher/complaint-portal/internal/models"
)

const complaintCacheKey = "complaints:register"

// RedisComplaintCache caches the complaint register in Redis. Cache failures
// are logged and treated as misses; the store remains the source of truth.
type RedisComplaintCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisComplaintCache constructs the cache.
func NewRedisComplaintCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisComplaintCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisComplaintCache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached register when present.
func (c *RedisComplaintCache) Get(ctx context.Context) ([]models.Complaint, bool) {
	raw, err := c.client.Get(ctx, complaintCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("complaint cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var complaints []models.Complaint
	if err := json.Unmarshal(raw, &complaints); err != nil {
		c.logger.Warn("complaint cache decode failed", zap.Error(err))
		return nil, false
	}
	return complaints, true
}

// Set stores the register with the configured TTL.
func (c *RedisComplaintCache) Set(ctx context.Context, complaints []models.Complaint) {
	raw, err := json.Marshal(complaints)
	if err != nil {
		c.logger.Warn("complaint cache encode failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, complaintCacheKey, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("complaint cache write failed", zap.Error(err))
	}
}

// Invalidate drops the cached register.
func (c *RedisComplaintCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, complaintCacheKey).Err(); err != nil {
		c.logger.Warn("complaint cache invalidation failed", zap.Error(err))
	}
}
