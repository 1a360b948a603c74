package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"wallet-screening/internal/domain/screening"
	"wallet-screening/internal/infra"
)

// cachedResult is the stored form of a screening result. Per-request fields such as
// the correlation id and the cache-hit marker are never persisted.
type cachedResult struct {
	Address    string         `json:"address"`
	Chain      string         `json:"chain"`
	Sanctioned bool           `json:"sanctioned"`
	RiskLevel  string         `json:"risk_level"`
	Flags      []string       `json:"flags"`
	CheckedAt  time.Time      `json:"checked_at"`
	Sources    []string       `json:"sources"`
	Details    *cachedDetails `json:"details,omitempty"`
}

type cachedDetails struct {
	List       string `json:"list"`
	EntityName string `json:"entity_name,omitempty"`
	AddedDate  string `json:"added_date,omitempty"`
}

type ResultStore struct {
	rdb    *redis.Client
	logger *slog.Logger
}

func NewResultStore(rdb *redis.Client, logger *slog.Logger) *ResultStore {
	return &ResultStore{rdb: rdb, logger: logger}
}

// Get returns nil without error on a miss.
func (s *ResultStore) Get(ctx context.Context, chain screening.Chain, address string) (*screening.Result, error) {
	raw, err := s.rdb.Get(ctx, resultKey(string(chain), address)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, infra.WrapStoreErr(s.logger, infra.KindStoreFailure, "failed to read cached result", err)
	}

	var c cachedResult
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, infra.WrapStoreErr(s.logger, infra.KindDecodeFailure, "failed to decode cached result", err)
	}
	r := &screening.Result{
		Address:    c.Address,
		Chain:      screening.Chain(c.Chain),
		Sanctioned: c.Sanctioned,
		RiskLevel:  screening.RiskLevel(c.RiskLevel),
		Flags:      c.Flags,
		CheckedAt:  c.CheckedAt,
		Sources:    c.Sources,
	}
	if r.Flags == nil {
		r.Flags = []string{}
	}
	if c.Details != nil {
		r.Details = &screening.Details{List: c.Details.List, EntityName: c.Details.EntityName, AddedDate: c.Details.AddedDate}
	}
	return r, nil
}

func (s *ResultStore) Set(ctx context.Context, r screening.Result, ttl time.Duration) error {
	c := cachedResult{
		Address:    r.Address,
		Chain:      string(r.Chain),
		Sanctioned: r.Sanctioned,
		RiskLevel:  string(r.RiskLevel),
		Flags:      r.Flags,
		CheckedAt:  r.CheckedAt,
		Sources:    r.Sources,
	}
	if r.Details != nil {
		c.Details = &cachedDetails{List: r.Details.List, EntityName: r.Details.EntityName, AddedDate: r.Details.AddedDate}
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return infra.WrapStoreErr(s.logger, infra.KindDecodeFailure, "failed to encode result", err)
	}
	if err := s.rdb.Set(ctx, resultKey(string(r.Chain), r.Address), raw, ttl).Err(); err != nil {
		return infra.WrapStoreErr(s.logger, infra.KindStoreFailure, "failed to cache result", err)
	}
	return nil
}
