// README: Redis cache for price recommendations, invalidated on model swap.
package prediction

import (
	"context"
	"fmt"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	priceVersionKey = "assistant:price:version"
	priceKeyPrefix  = "assistant:price:%d:%x"
	priceTTL        = 1 * time.Hour
)

// Cache keeps recently computed price recommendations keyed by a
// fingerprint of the request. A version counter namespaces all entries;
// bumping it on Invalidate drops the whole cache without scanning keys.
// A nil *Cache is valid and disables caching.
type Cache struct {
	redis *redis.Client
}

func NewCache(redis *redis.Client) *Cache {
	return &Cache{redis: redis}
}

func (c *Cache) GetPrice(ctx context.Context, req PriceRequest) (float64, bool) {
	if c == nil || c.redis == nil {
		return 0, false
	}
	key, err := c.priceKey(ctx, req)
	if err != nil {
		return 0, false
	}
	val, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		return 0, false
	}
	price, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false
	}
	return price, true
}

func (c *Cache) SetPrice(ctx context.Context, req PriceRequest, price float64) {
	if c == nil || c.redis == nil {
		return
	}
	key, err := c.priceKey(ctx, req)
	if err != nil {
		return
	}
	c.redis.Set(ctx, key, strconv.FormatFloat(price, 'f', -1, 64), priceTTL)
}

// Invalidate makes all cached prices unreachable. Called after a new
// model set is published; stale entries expire via TTL.
func (c *Cache) Invalidate(ctx context.Context) {
	if c == nil || c.redis == nil {
		return
	}
	c.redis.Incr(ctx, priceVersionKey)
}

func (c *Cache) priceKey(ctx context.Context, req PriceRequest) (string, error) {
	version, err := c.redis.Get(ctx, priceVersionKey).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}
	return fmt.Sprintf(priceKeyPrefix, version, fingerprint(req)), nil
}

// fingerprint hashes the request fields that influence the prediction.
// The timestamp is truncated to the hour: finer resolution does not
// change any derived feature.
func fingerprint(req PriceRequest) uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%g;%g;%g;%g;%g;%s;%s;%d",
		req.DistanceMeters,
		req.DurationSeconds,
		req.DriverRating,
		req.PickupMeters,
		req.ExperienceMonths,
		req.Platform,
		req.CarName,
		req.Timestamp.Truncate(time.Hour).Unix(),
	)
	return h.Sum64()
}
