package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"profilelens/internal/config"
	"profilelens/internal/domain/models"
	"profilelens/pkg/logger"
)

// Cache key constants
const (
	KeyRateLimitPrefix = "rate_limit:"
	KeyStatsTotal      = "stats:analyses:total"
	KeyStatsPlatform   = "stats:analyses:platform:"
	KeyStatsConfidence = "stats:analyses:confidence:"
)

// statsPlatforms enumerates the platform buckets reported by GetAnalysisStats
var statsPlatforms = []models.Platform{
	models.PlatformInstagram,
	models.PlatformTwitterX,
	models.PlatformTikTok,
	models.PlatformFacebook,
	models.PlatformLinkedIn,
	models.PlatformReddit,
	models.PlatformYouTube,
	models.PlatformUnknown,
}

var statsConfidences = []models.Confidence{
	models.ConfidenceHigh,
	models.ConfidenceMedium,
	models.ConfidenceLow,
}

// RedisCache wraps the Redis client with typed operations
type RedisCache struct {
	client    *redis.Client
	keyPrefix string
	logger    *logger.Logger
}

// NewRedis creates a new Redis client
func NewRedis(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) (*RedisCache, error) {
	log = log.WithComponent("redis")
	log.Info().Str("host", cfg.Host).Int("port", cfg.Port).Msg("connecting to Redis")

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	log.Info().Msg("connected to Redis successfully")

	return &RedisCache{
		client:    client,
		keyPrefix: cfg.KeyPrefix,
		logger:    log,
	}, nil
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	c.logger.Info().Msg("closing Redis connection")
	return c.client.Close()
}

// Ping checks the Redis connection
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// key prepends the namespace prefix to a key
func (c *RedisCache) key(k string) string {
	return c.keyPrefix + k
}

// IncrAnalysisStats bumps the per-platform and per-confidence counters for
// one finished analysis
func (c *RedisCache) IncrAnalysisStats(ctx context.Context, platform, confidence string) error {
	pipe := c.client.Pipeline()
	pipe.Incr(ctx, c.key(KeyStatsTotal))
	pipe.Incr(ctx, c.key(KeyStatsPlatform+platform))
	pipe.Incr(ctx, c.key(KeyStatsConfidence+confidence))
	_, err := pipe.Exec(ctx)
	return err
}

// GetAnalysisStats reads the aggregate analysis counters
func (c *RedisCache) GetAnalysisStats(ctx context.Context) (*models.AnalysisStats, error) {
	stats := &models.AnalysisStats{
		ByPlatform:   make(map[string]int64),
		ByConfidence: make(map[string]int64),
	}

	total, err := c.getCounter(ctx, KeyStatsTotal)
	if err != nil {
		return nil, err
	}
	stats.TotalAnalyses = total

	for _, p := range statsPlatforms {
		n, err := c.getCounter(ctx, KeyStatsPlatform+string(p))
		if err != nil {
			return nil, err
		}
		if n > 0 {
			stats.ByPlatform[string(p)] = n
		}
	}

	for _, conf := range statsConfidences {
		n, err := c.getCounter(ctx, KeyStatsConfidence+string(conf))
		if err != nil {
			return nil, err
		}
		if n > 0 {
			stats.ByConfidence[string(conf)] = n
		}
	}

	return stats, nil
}

func (c *RedisCache) getCounter(ctx context.Context, key string) (int64, error) {
	val, err := c.client.Get(ctx, c.key(key)).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(val, 10, 64)
}

// CheckRateLimit checks and increments the rate limit counter.
// Returns (allowed, remaining, resetTime, error)
func (c *RedisCache) CheckRateLimit(ctx context.Context, key string, limit int64, window time.Duration) (bool, int64, time.Time, error) {
	now := time.Now()
	windowKey := fmt.Sprintf("%s%s:%d", KeyRateLimitPrefix, key, now.Unix()/int64(window.Seconds()))

	pipe := c.client.Pipeline()
	incr := pipe.Incr(ctx, c.key(windowKey))
	pipe.Expire(ctx, c.key(windowKey), window)
	_, err := pipe.Exec(ctx)
	if err != nil {
		return false, 0, time.Time{}, err
	}

	count := incr.Val()
	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}

	return count <= limit, remaining, now.Add(window), nil
}
