package redisstore

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"wallet-screening/internal/domain/quota"
	"wallet-screening/internal/infra"
)

// slidingWindowScript keeps a sorted-set log of request timestamps. Entries at or
// before the cutoff are trimmed, the request is recorded only when under the limit,
// and the oldest remaining score is returned so the caller can compute the reset.
var slidingWindowScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local cutoff = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local window = tonumber(ARGV[4])

redis.call('ZREMRANGEBYSCORE', key, '-inf', cutoff)
local count = redis.call('ZCARD', key)
local allowed = 0
if count < limit then
  redis.call('ZADD', key, now, ARGV[5])
  count = count + 1
  allowed = 1
end
redis.call('PEXPIRE', key, window)

local oldest = 0
local first = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
if #first == 2 then
  oldest = tonumber(first[2])
end
return {allowed, count, oldest}
`)

type QuotaStore struct {
	rdb    *redis.Client
	logger *slog.Logger
}

func NewQuotaStore(rdb *redis.Client, logger *slog.Logger) *QuotaStore {
	return &QuotaStore{rdb: rdb, logger: logger}
}

// Hit records one request against policy p for identifier and returns the verdict.
func (s *QuotaStore) Hit(ctx context.Context, identifier string, p quota.Policy, now time.Time) (quota.Result, error) {
	switch p.Algorithm {
	case quota.FixedWindow:
		return s.fixed(ctx, identifier, p, now)
	case quota.SlidingWindow:
		return s.sliding(ctx, identifier, p, now)
	default:
		return quota.Result{}, infra.WrapStoreErr(s.logger, infra.KindStoreFailure,
			"unknown quota algorithm", fmt.Errorf("algorithm %q", p.Algorithm))
	}
}

func (s *QuotaStore) fixed(ctx context.Context, identifier string, p quota.Policy, now time.Time) (quota.Result, error) {
	windowMs := p.Window.Milliseconds()
	index := now.UnixMilli() / windowMs
	resetAt := time.UnixMilli((index + 1) * windowMs).UTC()
	key := fixedWindowKey(p.Name, identifier, index)

	var incr *redis.IntCmd
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.PExpireAt(ctx, key, resetAt)
		return nil
	})
	if err != nil {
		return quota.Result{}, infra.WrapStoreErr(s.logger, infra.KindStoreFailure, "failed to count fixed window", err)
	}

	count := incr.Val()
	return quota.Result{
		Policy:    p.Name,
		Allowed:   count <= p.Limit,
		Limit:     p.Limit,
		Remaining: max(p.Limit-count, 0),
		ResetAt:   resetAt,
	}, nil
}

func (s *QuotaStore) sliding(ctx context.Context, identifier string, p quota.Policy, now time.Time) (quota.Result, error) {
	nowMs := now.UnixMilli()
	windowMs := p.Window.Milliseconds()
	member := strconv.FormatInt(nowMs, 10) + "-" + uuid.NewString()

	vals, err := slidingWindowScript.Run(ctx, s.rdb,
		[]string{quotaKey(p.Name, identifier)},
		nowMs, nowMs-windowMs, p.Limit, windowMs, member,
	).Int64Slice()
	if err != nil {
		return quota.Result{}, infra.WrapStoreErr(s.logger, infra.KindStoreFailure, "failed to count sliding window", err)
	}
	if len(vals) != 3 {
		return quota.Result{}, infra.WrapStoreErr(s.logger, infra.KindDecodeFailure,
			"unexpected sliding window reply", fmt.Errorf("got %d values", len(vals)))
	}

	allowed, count, oldest := vals[0] == 1, vals[1], vals[2]
	resetAt := now.Add(p.Window).UTC()
	if oldest > 0 {
		resetAt = time.UnixMilli(oldest + windowMs).UTC()
	}
	return quota.Result{
		Policy:    p.Name,
		Allowed:   allowed,
		Limit:     p.Limit,
		Remaining: max(p.Limit-count, 0),
		ResetAt:   resetAt,
	}, nil
}
