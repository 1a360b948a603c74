package redisstore

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"wallet-screening/internal/domain/screening"
	"wallet-screening/internal/infra"
)

const (
	// SanctionsTTL outlives the daily sync by an hour so a late sync does not empty the set.
	SanctionsTTL      = 25 * time.Hour
	sanctionsAddChunk = 1000
)

type SanctionsStore struct {
	rdb    *redis.Client
	logger *slog.Logger
}

func NewSanctionsStore(rdb *redis.Client, logger *slog.Logger) *SanctionsStore {
	return &SanctionsStore{rdb: rdb, logger: logger}
}

// IsMember reports NOT_FOUND when the chain's set does not exist, since SISMEMBER
// alone cannot tell a missing list from a clean address.
func (s *SanctionsStore) IsMember(ctx context.Context, chain screening.Chain, address string) (bool, error) {
	key := sanctionsKey(string(chain))
	var (
		member *redis.BoolCmd
		exists *redis.IntCmd
	)
	_, err := s.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		member = pipe.SIsMember(ctx, key, strings.ToLower(address))
		exists = pipe.Exists(ctx, key)
		return nil
	})
	if err != nil {
		return false, infra.WrapStoreErr(s.logger, infra.KindStoreFailure, "failed to query sanctions set", err)
	}
	if member.Val() {
		return true, nil
	}
	if exists.Val() == 0 {
		return false, infra.WrapStoreErr(s.logger, infra.KindNotFound, "sanctions set "+key+" is missing", nil)
	}
	return false, nil
}

func (s *SanctionsStore) Freshness(ctx context.Context, chain screening.Chain) (screening.Freshness, error) {
	var (
		exists *redis.IntCmd
		synced *redis.StringCmd
		ttl    *redis.DurationCmd
	)
	_, err := s.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		exists = pipe.Exists(ctx, sanctionsKey(string(chain)))
		synced = pipe.Get(ctx, sanctionsSyncKey(string(chain)))
		ttl = pipe.PTTL(ctx, sanctionsKey(string(chain)))
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return screening.Freshness{}, infra.WrapStoreErr(s.logger, infra.KindStoreFailure, "failed to read sanctions freshness", err)
	}

	f := screening.Freshness{Chain: chain, Present: exists.Val() > 0}
	if v, err := synced.Result(); err == nil {
		if t, perr := time.Parse(time.RFC3339Nano, v); perr == nil {
			f.LastSync = &t
		}
	}
	if d := ttl.Val(); d > 0 {
		f.TTLRemaining = d
	}
	return f, nil
}

// Replace swaps the whole set for chain in one transaction and stamps the sync time.
func (s *SanctionsStore) Replace(ctx context.Context, chain screening.Chain, addresses []string, syncedAt time.Time) error {
	key := sanctionsKey(string(chain))
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		for start := 0; start < len(addresses); start += sanctionsAddChunk {
			end := min(start+sanctionsAddChunk, len(addresses))
			members := make([]any, 0, end-start)
			for _, a := range addresses[start:end] {
				members = append(members, strings.ToLower(a))
			}
			pipe.SAdd(ctx, key, members...)
		}
		pipe.PExpire(ctx, key, SanctionsTTL)
		pipe.Set(ctx, sanctionsSyncKey(string(chain)), syncedAt.UTC().Format(time.RFC3339Nano), SanctionsTTL)
		return nil
	})
	if err != nil {
		return infra.WrapStoreErr(s.logger, infra.KindStoreFailure, "failed to replace sanctions set", err)
	}
	return nil
}
