package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/linemk/shop-dashboard/internal/domain/models"
	"github.com/linemk/shop-dashboard/internal/storage"
	"github.com/redis/go-redis/v9"
)

const (
	keyProduct      = "product:%s"
	keyProductsList = "products:list:%s"
	keyListPattern  = "products:list:*"
)

// ProductCache — кэширующая обёртка над ProductStorage.
// Ошибки redis только логируются: запрос уходит в нижележащее хранилище.
type ProductCache struct {
	next  storage.ProductStorage
	redis *redis.Client
	ttl   time.Duration
	log   *slog.Logger
}

func NewProductCache(log *slog.Logger, next storage.ProductStorage, rdb *redis.Client, ttl time.Duration) *ProductCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ProductCache{next: next, redis: rdb, ttl: ttl, log: log}
}

func (c *ProductCache) ListProducts(ctx context.Context, categoryID string) ([]*models.Product, error) {
	key := fmt.Sprintf(keyProductsList, categoryID)

	var cached []*models.Product
	if c.load(ctx, key, &cached) {
		return cached, nil
	}

	products, err := c.next.ListProducts(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, products)
	return products, nil
}

func (c *ProductCache) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	key := fmt.Sprintf(keyProduct, id)

	var cached models.Product
	if c.load(ctx, key, &cached) {
		return &cached, nil
	}

	p, err := c.next.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, p)
	return p, nil
}

func (c *ProductCache) CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	created, err := c.next.CreateProduct(ctx, p)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, p.ID)
	return created, nil
}

func (c *ProductCache) UpdateProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	updated, err := c.next.UpdateProduct(ctx, p)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, p.ID)
	return updated, nil
}

func (c *ProductCache) DeleteProduct(ctx context.Context, id string) error {
	if err := c.next.DeleteProduct(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, id)
	return nil
}

func (c *ProductCache) DecrementStock(ctx context.Context, productID, variantID string, quantity int) error {
	if err := c.next.DecrementStock(ctx, productID, variantID, quantity); err != nil {
		return err
	}
	c.invalidate(ctx, productID)
	return nil
}

func (c *ProductCache) load(ctx context.Context, key string, dst any) bool {
	data, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
	case errors.Is(err, redis.Nil):
		return false
	default:
		c.log.Warn("redis get failed, continuing without cache", slog.String("key", key), slog.Any("error", err))
		return false
	}

	if err := json.Unmarshal(data, dst); err != nil {
		c.log.Warn("failed to decode cached value", slog.String("key", key), slog.Any("error", err))
		return false
	}
	return true
}

func (c *ProductCache) store(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		c.log.Warn("failed to encode value for cache", slog.String("key", key), slog.Any("error", err))
		return
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Warn("redis set failed", slog.String("key", key), slog.Any("error", err))
	}
}

func (c *ProductCache) invalidate(ctx context.Context, productID string) {
	if err := c.redis.Del(ctx, fmt.Sprintf(keyProduct, productID)).Err(); err != nil {
		c.log.Warn("failed to drop product cache", slog.String("id", productID), slog.Any("error", err))
	}

	iter := c.redis.Scan(ctx, 0, keyListPattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.redis.Del(ctx, iter.Val()).Err(); err != nil {
			c.log.Warn("failed to drop list cache", slog.String("key", iter.Val()), slog.Any("error", err))
		}
	}
	if err := iter.Err(); err != nil {
		c.log.Warn("failed to scan list cache keys", slog.Any("error", err))
	}
}
