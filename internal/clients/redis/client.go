package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"campaign-server/internal/config"
	"campaign-server/internal/observability"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Client wraps the Redis client with observability
type Client struct {
	client *redis.Client
	logger *observability.Logger
}

// NewClient creates a new Redis client. It returns nil when Redis is not
// configured.
func NewClient(cfg config.RedisConfig, logger *observability.Logger) (*Client, error) {
	if !cfg.Enabled() {
		logger.Info(context.Background(), "Redis is disabled, skipping client initialization")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "redis_addr", Value: cfg.Addr()},
		observability.Field{Key: "redis_db", Value: cfg.DB},
	)
	logger.Info(ctx, "successfully connected to Redis")

	return &Client{
		client: client,
		logger: logger,
	}, nil
}

// Close closes the Redis connection
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// IsEnabled returns whether Redis is enabled
func (c *Client) IsEnabled() bool {
	return c != nil && c.client != nil
}

// SlidingWindowHit records a hit at now in the sorted set key, drops hits
// older than window and returns the hit count and oldest hit in the window.
// The whole sequence runs in one MULTI/EXEC.
func (c *Client) SlidingWindowHit(ctx context.Context, key string, now time.Time, window time.Duration) (int64, time.Time, error) {
	if !c.IsEnabled() {
		return 0, time.Time{}, fmt.Errorf("Redis client not initialized")
	}

	nowMs := now.UnixMilli()
	windowStartMs := now.Add(-window).UnixMilli()
	member := strconv.FormatInt(nowMs, 10) + "-" + uuid.NewString()

	var card *redis.IntCmd
	var oldest *redis.ZSliceCmd
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStartMs, 10))
		pipe.ZAdd(ctx, key, redis.Z{Score: float64(nowMs), Member: member})
		card = pipe.ZCard(ctx, key)
		oldest = pipe.ZRangeWithScores(ctx, key, 0, 0)
		pipe.Expire(ctx, key, window+time.Second)
		return nil
	})
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("failed to record rate limit hit: %w", err)
	}

	oldestAt := now
	if zs := oldest.Val(); len(zs) > 0 {
		oldestAt = time.UnixMilli(int64(zs[0].Score))
	}
	return card.Val(), oldestAt, nil
}
