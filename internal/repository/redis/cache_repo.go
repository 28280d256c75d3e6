package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jimlawless/whereami"

	"github.com/sweetslice/go-backend/internal/cfg"
	"github.com/sweetslice/go-backend/internal/domain"
	"github.com/sweetslice/go-backend/pkg/clients"
	"github.com/sweetslice/go-backend/pkg/e"
	"github.com/sweetslice/go-backend/pkg/logger"
)

// CacheRepo caches product details in Redis as JSON with a TTL.
// Every failure here degrades to a cache miss; the catalog never breaks
// because the cache is down.
type CacheRepo struct {
	client *clients.RedisClient
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCacheRepo(client *clients.RedisClient, cfg *cfg.RedisCfg, logger logger.Logger) *CacheRepo {
	return &CacheRepo{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// GetProduct returns the cached product, or (nil, nil) on a miss.
func (r *CacheRepo) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	data, err := r.client.Client.Get(ctx, r.productKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		r.logger.Warnf("redis GET failed: %v", e.Wrap(whereami.WhereAmI(), err))
		return nil, nil
	}

	var product domain.Product
	if err := json.Unmarshal(data, &product); err != nil {
		r.logger.Warnf("redis unmarshal failed, dropping key: %v", e.Wrap(whereami.WhereAmI(), err))
		if err := r.client.Client.Del(context.Background(), r.productKey(id)).Err(); err != nil {
			r.logger.Warnf("redis DEL failed: %v", e.Wrap(whereami.WhereAmI(), err))
		}
		return nil, nil
	}

	return &product, nil
}

func (r *CacheRepo) SetProduct(ctx context.Context, product *domain.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		r.logger.Warnf("failed to marshal product %s for caching: %v", product.ID, e.Wrap(whereami.WhereAmI(), err))
		return nil
	}

	if err := r.client.Client.Set(ctx, r.productKey(product.ID), data, r.cfg.ProductTTL).Err(); err != nil {
		r.logger.Warnf("redis SET failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}

	return nil
}

func (r *CacheRepo) DeleteProducts(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.productKey(id)
	}

	if err := r.client.Client.Del(ctx, keys...).Err(); err != nil {
		r.logger.Warnf("redis DEL failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}

	return nil
}

func (r *CacheRepo) productKey(id string) string {
	return fmt.Sprintf("product:%s", id)
}
