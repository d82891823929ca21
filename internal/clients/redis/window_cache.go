package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/cognify-backend/internal/domain"
	"github.com/yungbote/cognify-backend/internal/pkg/logger"
)

// WindowCache holds recently computed behavioral windows so repeated
// analytics reads within the TTL skip the full aggregation query. A nil
// *windowCache is a working no-op cache, which keeps Redis optional.
type WindowCache interface {
	Get(ctx context.Context, userID string, daysBack int) (*domain.BehavioralWindow, bool)
	Set(ctx context.Context, w domain.BehavioralWindow, daysBack int)
	Invalidate(ctx context.Context, userID string)
	Close() error
}

type windowCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

// NewWindowCache returns (nil, nil) when REDIS_ADDR is unset; callers treat
// the nil cache as a miss on every read.
func NewWindowCache(log *logger.Logger) (WindowCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, nil
	}

	ttl := 5 * time.Minute
	if v := strings.TrimSpace(os.Getenv("WINDOW_CACHE_TTL")); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			ttl = parsed
		}
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &windowCache{
		log: log.With("client", "RedisWindowCache"),
		rdb: rdb,
		ttl: ttl,
	}, nil
}

func cacheKey(userID string, daysBack int) string {
	return fmt.Sprintf("cognify:window:%s:%dd", userID, daysBack)
}

func (c *windowCache) Get(ctx context.Context, userID string, daysBack int) (*domain.BehavioralWindow, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, cacheKey(userID, daysBack)).Bytes()
	if err != nil {
		return nil, false
	}
	var w domain.BehavioralWindow
	if err := json.Unmarshal(raw, &w); err != nil {
		c.log.Warn("Dropping undecodable cached window", "user_id", userID, "error", err)
		return nil, false
	}
	return &w, true
}

func (c *windowCache) Set(ctx context.Context, w domain.BehavioralWindow, daysBack int) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := json.Marshal(w)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(w.UserID, daysBack), raw, c.ttl).Err(); err != nil {
		c.log.Warn("Failed to cache window", "user_id", w.UserID, "error", err)
	}
}

func (c *windowCache) Invalidate(ctx context.Context, userID string) {
	if c == nil || c.rdb == nil {
		return
	}
	iter := c.rdb.Scan(ctx, 0, fmt.Sprintf("cognify:window:%s:*", userID), 0).Iterator()
	for iter.Next(ctx) {
		_ = c.rdb.Del(ctx, iter.Val()).Err()
	}
}

func (c *windowCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
