package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/andresuchdata/ventas-bi/backend-go/internal/config"
	"github.com/andresuchdata/ventas-bi/backend-go/internal/domain"
)

const (
	dashboardKeyPrefix = "dashboard:result"
	scanBatchSize      = 100
)

// DashboardCache memoizes dashboard computations. Keys include the
// dataset fingerprint, so a re-upload invalidates naturally; recomputation
// is idempotent and side-effect-free, so caching is always safe.
type DashboardCache interface {
	Get(ctx context.Context, fingerprint string, sel domain.Selection) (*domain.Dashboard, bool, error)
	Set(ctx context.Context, fingerprint string, sel domain.Selection, d *domain.Dashboard) error
	InvalidateAll(ctx context.Context) error
}

type redisDashboardCache struct {
	client *redis.Client
	ttl    int
}

type noopDashboardCache struct{}

// NewDashboardCache returns a Redis-backed cache when caching is enabled
// and reachable, falling back is left to the caller.
func NewDashboardCache(cfg config.CacheConfig) (DashboardCache, error) {
	if !cfg.Enabled {
		return &noopDashboardCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisDashboardCache{client: client, ttl: ttl}, nil
}

func NewNoopDashboardCache() DashboardCache {
	return &noopDashboardCache{}
}

func (c *redisDashboardCache) Get(ctx context.Context, fingerprint string, sel domain.Selection) (*domain.Dashboard, bool, error) {
	key := buildDashboardKey(fingerprint, sel)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var dashboard domain.Dashboard
	if err := json.Unmarshal(payload, &dashboard); err != nil {
		return nil, false, fmt.Errorf("decode dashboard cache: %w", err)
	}

	return &dashboard, true, nil
}

func (c *redisDashboardCache) Set(ctx context.Context, fingerprint string, sel domain.Selection, d *domain.Dashboard) error {
	key := buildDashboardKey(fingerprint, sel)
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode dashboard cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, ttlDuration(c.ttl)).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (c *redisDashboardCache) InvalidateAll(ctx context.Context) error {
	var cursor uint64
	for {
		keys, nextCursor, err := c.client.Scan(ctx, cursor, dashboardKeyPrefix+"*", scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("redis scan failed: %w", err)
		}

		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis delete failed: %w", err)
			}
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	return nil
}

func (n *noopDashboardCache) Get(ctx context.Context, fingerprint string, sel domain.Selection) (*domain.Dashboard, bool, error) {
	return nil, false, nil
}

func (n *noopDashboardCache) Set(ctx context.Context, fingerprint string, sel domain.Selection, d *domain.Dashboard) error {
	return nil
}

func (n *noopDashboardCache) InvalidateAll(ctx context.Context) error {
	return nil
}

// buildDashboardKey hashes the dataset fingerprint together with the
// selection so every distinct slice gets its own entry.
func buildDashboardKey(fingerprint string, sel domain.Selection) string {
	parts := []string{
		"data=" + fingerprint,
		"start=" + sel.Start.Format("2006-01-02"),
		"end=" + sel.End.Format("2006-01-02"),
	}
	if sel.Region != "" {
		parts = append(parts, "region="+sel.Region)
	}
	if sel.Channel != "" {
		parts = append(parts, "channel="+sel.Channel)
	}
	if sel.ProductID != "" {
		parts = append(parts, "product="+sel.ProductID)
	}

	raw := strings.Join(parts, "|")
	hash := sha1.Sum([]byte(raw))
	return fmt.Sprintf("%s:%s", dashboardKeyPrefix, hex.EncodeToString(hash[:]))
}
