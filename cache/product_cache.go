package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/rohitkandpal03/shopz-store/models"
)

const pageCachePrefix = "page:"

// DefaultTTL bounds how long a cached product page survives without a
// revalidation.
const DefaultTTL = 10 * time.Minute

// ProductCache keeps rendered product detail responses in Redis, keyed
// by page path, so cart mutations can revalidate exactly the affected
// pages.
type ProductCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewProductCache(client *redis.Client) *ProductCache {
	return &ProductCache{
		redis: client,
		ttl:   DefaultTTL,
	}
}

func (c *ProductCache) key(path string) string {
	return pageCachePrefix + path
}

func (c *ProductCache) GetProduct(ctx context.Context, slug string) (*models.Product, bool) {
	data, err := c.redis.Get(ctx, c.key("/product/"+slug)).Result()
	if err != nil {
		return nil, false
	}

	var product models.Product
	if err := json.Unmarshal([]byte(data), &product); err != nil {
		zap.L().Warn("Failed to unmarshal cached product", zap.Error(err), zap.String("slug", slug))
		return nil, false
	}
	return &product, true
}

// SetProduct caches a product asynchronously; a cache write must never
// slow down or fail the request.
func (c *ProductCache) SetProduct(ctx context.Context, slug string, product *models.Product) {
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		data, err := json.Marshal(product)
		if err != nil {
			zap.L().Warn("Failed to marshal product for cache", zap.Error(err), zap.String("slug", slug))
			return
		}

		if err := c.redis.Set(bgCtx, c.key("/product/"+slug), data, c.ttl).Err(); err != nil {
			zap.L().Warn("Failed to cache product", zap.Error(err), zap.String("slug", slug))
		}
	}()
}

// Revalidate drops the cached rendering of the given page path.
func (c *ProductCache) Revalidate(ctx context.Context, path string) {
	if err := c.redis.Del(ctx, c.key(path)).Err(); err != nil {
		zap.L().Warn("Failed to revalidate page cache", zap.Error(err), zap.String("path", path))
	}
}
