package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jimlawless/whereami"

	"github.com/sweetslice/go-backend/internal/cfg"
	"github.com/sweetslice/go-backend/pkg/clients"
	"github.com/sweetslice/go-backend/pkg/e"
)

// CartStore keeps one cart snapshot per browsing session. Unlike the product
// cache, writes here must not be silently dropped: the snapshot is the only
// copy of the cart.
type CartStore struct {
	client *clients.RedisClient
	cfg    *cfg.RedisCfg
}

func NewCartStore(client *clients.RedisClient, cfg *cfg.RedisCfg) *CartStore {
	return &CartStore{
		client: client,
		cfg:    cfg,
	}
}

// Get returns the stored snapshot, or nil when the session has no cart.
func (s *CartStore) Get(ctx context.Context, sessionID string) ([]byte, error) {
	data, err := s.client.Client.Get(ctx, s.cartKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return data, nil
}

// Set stores the snapshot and refreshes the session's TTL.
func (s *CartStore) Set(ctx context.Context, sessionID string, snapshot []byte) error {
	if err := s.client.Client.Set(ctx, s.cartKey(sessionID), snapshot, s.cfg.CartTTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (s *CartStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Client.Del(ctx, s.cartKey(sessionID)).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (s *CartStore) cartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}
