package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jpashop/backend/internal/domain/member"
	"github.com/jpashop/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultKeyPrefix = "jpashop:member:"

// RedisMemberCache shares cached members between instances. Redis failures
// are logged and treated as misses so lookups fall through to the database.
type RedisMemberCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
	logger    *zap.Logger
}

// NewRedisClient connects to redis and pings it
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// NewRedisMemberCache creates a cache on an existing client
func NewRedisMemberCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisMemberCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisMemberCache{
		client:    client,
		keyPrefix: defaultKeyPrefix,
		ttl:       ttl,
		logger:    logger,
	}
}

func (c *RedisMemberCache) key(id int64) string {
	return c.keyPrefix + strconv.FormatInt(id, 10)
}

// Get reads and decodes the cached member
func (c *RedisMemberCache) Get(ctx context.Context, id int64) (*member.Member, bool) {
	data, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Member cache read failed", zap.Int64("member_id", id), zap.Error(err))
		}
		return nil, false
	}

	var m member.Member
	if err := json.Unmarshal(data, &m); err != nil {
		c.logger.Warn("Member cache entry is corrupt", zap.Int64("member_id", id), zap.Error(err))
		return nil, false
	}
	return &m, true
}

// Set encodes the member as JSON with the cache TTL
func (c *RedisMemberCache) Set(ctx context.Context, m *member.Member) {
	if m == nil || m.ID == 0 {
		return
	}
	data, err := json.Marshal(m)
	if err != nil {
		c.logger.Warn("Member cache encode failed", zap.Int64("member_id", m.ID), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, c.key(m.ID), data, c.ttl).Err(); err != nil {
		c.logger.Warn("Member cache write failed", zap.Int64("member_id", m.ID), zap.Error(err))
	}
}

// Invalidate deletes the cached member
func (c *RedisMemberCache) Invalidate(ctx context.Context, id int64) {
	if err := c.client.Del(ctx, c.key(id)).Err(); err != nil {
		c.logger.Warn("Member cache invalidate failed", zap.Int64("member_id", id), zap.Error(err))
	}
}

// Close closes the redis client
func (c *RedisMemberCache) Close() error {
	return c.client.Close()
}
