// internal/matching/cache.go
// Redis-backed cache for per-user match stats plus the single-flight lock
// around the generate-all batch. Every method tolerates a nil client, so the
// service works unchanged when Redis is not configured.

package matching

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	statsKeyPrefix  = "matching:stats:"
	generateAllLock = "matching:generate_all:lock"
)

type Cache struct {
	client   *redis.Client
	statsTTL time.Duration
}

func NewCache(client *redis.Client, statsTTL time.Duration) *Cache {
	return &Cache{client: client, statsTTL: statsTTL}
}

// GetStats returns the cached stats for a user, or (nil, nil) on a miss.
func (c *Cache) GetStats(ctx context.Context, userID int64) (*MatchStats, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}

	data, err := c.client.Get(ctx, statsKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var stats MatchStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, nil
	}
	return &stats, nil
}

func (c *Cache) SetStats(ctx context.Context, userID int64, stats *MatchStats) {
	if c == nil || c.client == nil {
		return
	}

	data, err := json.Marshal(stats)
	if err != nil {
		return
	}
	c.client.Set(ctx, statsKey(userID), data, c.statsTTL)
}

func (c *Cache) InvalidateStats(ctx context.Context, userIDs ...int64) {
	if c == nil || c.client == nil || len(userIDs) == 0 {
		return
	}

	keys := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, statsKey(id))
	}
	c.client.Del(ctx, keys...)
}

// AcquireBatchLock takes the generate-all lock for ttl. Without Redis the
// lock degrades to a no-op and the caller runs unguarded.
func (c *Cache) AcquireBatchLock(ctx context.Context, ttl time.Duration) (bool, error) {
	if c == nil || c.client == nil {
		return true, nil
	}
	return c.client.SetNX(ctx, generateAllLock, time.Now().Unix(), ttl).Result()
}

func (c *Cache) ReleaseBatchLock(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, generateAllLock)
}

func statsKey(userID int64) string {
	return fmt.Sprintf("%s%d", statsKeyPrefix, userID)
}
