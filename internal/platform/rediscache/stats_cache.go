// Package rediscache implements a Redis-backed read-through cache for profile
// aggregate statistics. The recalculation engine invalidates entries after a
// recompute commits; the stats read path repopulates them on demand.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mentorhub/mentorhub-api/internal/config"
	"github.com/mentorhub/mentorhub-api/internal/domain"
)

// statsKeyPrefix namespaces profile stats keys.
const statsKeyPrefix = "profile:stats:"

// defaultTTL bounds staleness when an invalidation is lost (e.g. the process
// dies between commit and invalidate).
const defaultTTL = 5 * time.Minute

var (
	// ErrCacheMiss is returned when the requested key is not found in cache.
	ErrCacheMiss = errors.New("cache: key not found")

	// ErrCacheConnection is returned when the Redis connection fails.
	ErrCacheConnection = errors.New("cache: connection failed")
)

// StatsCache caches domain.ProfileStats keyed by profile ID.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// New creates a StatsCache from the cache configuration and verifies the
// connection before returning.
func New(cfg config.CacheConfig, logger *slog.Logger) (*StatsCache, error) {
	if logger == nil {
		logger = slog.Default()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCacheConnection, err)
	}

	ttl := defaultTTL
	if cfg.TTLSeconds > 0 {
		ttl = time.Duration(cfg.TTLSeconds) * time.Second
	}

	return &StatsCache{
		client: client,
		ttl:    ttl,
		logger: logger.With(slog.String("component", "stats_cache")),
	}, nil
}

// Get retrieves cached stats for a profile.
// Returns ErrCacheMiss if the profile has no cached entry.
func (c *StatsCache) Get(ctx context.Context, profileID uuid.UUID) (*domain.ProfileStats, error) {
	data, err := c.client.Get(ctx, statsKey(profileID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("%w: %v", ErrCacheConnection, err)
	}

	var stats domain.ProfileStats
	if err := json.Unmarshal(data, &stats); err != nil {
		// A corrupt entry behaves like a miss; the read path will rewrite it.
		c.logger.Warn("discarding corrupt stats cache entry",
			slog.String("profile_id", profileID.String()),
			slog.String("error", err.Error()))
		return nil, ErrCacheMiss
	}

	return &stats, nil
}

// Set stores stats for a profile with the configured TTL.
func (c *StatsCache) Set(ctx context.Context, stats domain.ProfileStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	if err := c.client.Set(ctx, statsKey(stats.ProfileID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheConnection, err)
	}

	return nil
}

// Invalidate drops the cached stats for a profile.
func (c *StatsCache) Invalidate(ctx context.Context, profileID uuid.UUID) error {
	if err := c.client.Del(ctx, statsKey(profileID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheConnection, err)
	}
	return nil
}

// Close closes the underlying Redis connection.
func (c *StatsCache) Close() error {
	return c.client.Close()
}

func statsKey(profileID uuid.UUID) string {
	return statsKeyPrefix + profileID.String()
}
