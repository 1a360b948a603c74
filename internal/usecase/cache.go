package usecase

//go:generate mockgen -source=cache.go -destination=../../tests/mock/usecase/cache.go -package=usecasemock

import (
	"context"
	"log/slog"
	"time"

	"wallet-screening/internal/domain/screening"
)

// ResultCache is best effort: read failures are misses and write failures are dropped.
type ResultCache interface {
	Get(ctx context.Context, addr screening.Address) (*screening.Result, bool)
	Put(ctx context.Context, r screening.Result)
}

type resultCacheImpl struct {
	store   ResultStore
	timeout time.Duration
	logger  *slog.Logger
}

func NewResultCache(store ResultStore, timeout time.Duration, logger *slog.Logger) ResultCache {
	return &resultCacheImpl{store: store, timeout: timeout, logger: logger}
}

func (c *resultCacheImpl) Get(ctx context.Context, addr screening.Address) (*screening.Result, bool) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	r, err := c.store.Get(ctx, addr.Chain(), addr.String())
	if err != nil {
		c.logger.WarnContext(ctx, "result cache read failed, treating as miss", slog.String("error", err.Error()))
		return nil, false
	}
	if r == nil {
		return nil, false
	}
	return r, true
}

// Put writes with a context detached from the request, so a client that
// disconnects does not abort the write.
func (c *resultCacheImpl) Put(ctx context.Context, r screening.Result) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
	defer cancel()

	r.CacheHit = false
	if err := c.store.Set(ctx, r, r.CacheTTL()); err != nil {
		c.logger.WarnContext(ctx, "result cache write failed", slog.String("error", err.Error()))
	}
}
