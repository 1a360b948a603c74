package credential

import (
	"strings"

	"wallet-screening/internal/pkg/errs"
)

type Tier string

const (
	TierFree       Tier = "free"
	TierStarter    Tier = "starter"
	TierPro        Tier = "pro"
	TierEnterprise Tier = "enterprise"
)

type Limits struct {
	RequestsPerMinute int64
	RequestsPerDay    int64
}

var tierLimits = map[Tier]Limits{
	TierFree:       {RequestsPerMinute: 10, RequestsPerDay: 100},
	TierStarter:    {RequestsPerMinute: 100, RequestsPerDay: 10_000},
	TierPro:        {RequestsPerMinute: 500, RequestsPerDay: 100_000},
	TierEnterprise: {RequestsPerMinute: 2_000, RequestsPerDay: 1_000_000},
}

func ParseTier(s string) (Tier, error) {
	t := Tier(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := tierLimits[t]; !ok {
		return "", errs.ErrInvalidTier
	}
	return t, nil
}

func (t Tier) Valid() bool {
	_, ok := tierLimits[t]
	return ok
}

func (t Tier) Limits() Limits {
	return tierLimits[t]
}

func (t Tier) String() string {
	return string(t)
}
