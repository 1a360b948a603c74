package redisstore

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"wallet-screening/internal/infra"
)

// NonceLedger remembers ERC-3009 authorizations this service has already accepted.
type NonceLedger struct {
	rdb    *redis.Client
	logger *slog.Logger
}

func NewNonceLedger(rdb *redis.Client, logger *slog.Logger) *NonceLedger {
	return &NonceLedger{rdb: rdb, logger: logger}
}

func (l *NonceLedger) Seen(ctx context.Context, payer, nonce string) (bool, error) {
	n, err := l.rdb.Exists(ctx, nonceKey(payer, nonce)).Result()
	if err != nil {
		return false, infra.WrapStoreErr(l.logger, infra.KindStoreFailure, "failed to check payment nonce", err)
	}
	return n > 0, nil
}

// Claim is atomic: of two concurrent claims for the same nonce exactly one succeeds.
func (l *NonceLedger) Claim(ctx context.Context, payer, nonce string, ttl time.Duration) (bool, error) {
	ok, err := l.rdb.SetNX(ctx, nonceKey(payer, nonce), time.Now().UTC().Format(time.RFC3339), ttl).Result()
	if err != nil {
		return false, infra.WrapStoreErr(l.logger, infra.KindStoreFailure, "failed to claim payment nonce", err)
	}
	return ok, nil
}
