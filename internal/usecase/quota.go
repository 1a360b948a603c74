package usecase

//go:generate mockgen -source=quota.go -destination=../../tests/mock/usecase/quota.go -package=usecasemock

import (
	"context"
	"log/slog"
	"time"

	"wallet-screening/internal/domain/quota"
	"wallet-screening/internal/pkg/clock"
)

// QuotaEnforcer evaluates one or more policies for a subject and combines them.
// Any counter failure denies the request.
type QuotaEnforcer interface {
	Check(ctx context.Context, identifier string, policies ...quota.Policy) quota.Decision
}

type quotaEnforcerImpl struct {
	counter QuotaCounter
	clock   clock.Clock
	timeout time.Duration
	logger  *slog.Logger
}

func NewQuotaEnforcer(counter QuotaCounter, clk clock.Clock, timeout time.Duration, logger *slog.Logger) QuotaEnforcer {
	return &quotaEnforcerImpl{counter: counter, clock: clk, timeout: timeout, logger: logger}
}

// Check stops at the first denying policy so that looser budgets are not consumed
// by a request that will be rejected anyway.
func (q *quotaEnforcerImpl) Check(ctx context.Context, identifier string, policies ...quota.Policy) quota.Decision {
	now := q.clock.Now()
	results := make([]quota.Result, 0, len(policies))

	for _, p := range quota.ByPriority(policies) {
		res, err := q.hit(ctx, identifier, p, now)
		if err != nil {
			q.logger.WarnContext(ctx, "quota store unavailable, denying request",
				slog.String("policy", p.Name),
				slog.String("identifier", identifier),
				slog.String("error", err.Error()))
			res = quota.FailClosed(p, now)
		}
		results = append(results, res)
		if !res.Allowed {
			break
		}
	}
	return quota.Compose(results)
}

func (q *quotaEnforcerImpl) hit(ctx context.Context, identifier string, p quota.Policy, now time.Time) (quota.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, q.timeout)
	defer cancel()
	return q.counter.Hit(ctx, identifier, p, now)
}
