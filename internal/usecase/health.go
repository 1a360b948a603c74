package usecase

//go:generate mockgen -source=health.go -destination=../../tests/mock/usecase/health.go -package=usecasemock

import (
	"context"
	"log/slog"
	"time"

	"wallet-screening/internal/domain/screening"
	"wallet-screening/internal/pkg/clock"
)

const (
	HealthHealthy   = "healthy"
	HealthDegraded  = "degraded"
	HealthUnhealthy = "unhealthy"
)

type HealthChecks struct {
	Store         bool
	SanctionsData bool
	Config        bool
}

type ChainFreshness struct {
	Chain        screening.Chain
	Present      bool
	Fresh        bool
	Age          *time.Duration
	LastSync     *time.Time
	TTLRemaining time.Duration
}

type HealthReport struct {
	Status    string
	Timestamp time.Time
	Version   string
	Checks    HealthChecks
	Freshness []ChainFreshness
	Issues    []string
}

func (r HealthReport) Healthy() bool {
	return r.Status == HealthHealthy
}

type HealthUseCase interface {
	Check(ctx context.Context) HealthReport
	Freshness(ctx context.Context) []ChainFreshness
}

type HealthSettings struct {
	Version      string
	StaleAfter   time.Duration
	ConfigIssues []string
}

type healthUseCaseImpl struct {
	pinger    StorePinger
	sanctions SanctionsStore
	clock     clock.Clock
	timeout   time.Duration
	settings  HealthSettings
	logger    *slog.Logger
}

func NewHealthUseCase(pinger StorePinger, sanctions SanctionsStore, clk clock.Clock, timeout time.Duration, settings HealthSettings, logger *slog.Logger) HealthUseCase {
	return &healthUseCaseImpl{
		pinger:    pinger,
		sanctions: sanctions,
		clock:     clk,
		timeout:   timeout,
		settings:  settings,
		logger:    logger,
	}
}

// Check reports unhealthy when the store is down, degraded when sanctions data is
// missing or stale or configuration is incomplete, healthy otherwise.
func (u *healthUseCaseImpl) Check(ctx context.Context) HealthReport {
	report := HealthReport{
		Timestamp: u.clock.Now().UTC(),
		Version:   u.settings.Version,
		Issues:    u.settings.ConfigIssues,
	}
	report.Checks.Config = len(u.settings.ConfigIssues) == 0

	pingCtx, cancel := context.WithTimeout(ctx, u.timeout)
	err := u.pinger.Ping(pingCtx)
	cancel()
	report.Checks.Store = err == nil
	if err != nil {
		u.logger.ErrorContext(ctx, "store ping failed", slog.String("error", err.Error()))
		report.Status = HealthUnhealthy
		return report
	}

	report.Freshness = u.Freshness(ctx)
	allFresh := len(report.Freshness) > 0
	for _, f := range report.Freshness {
		if f.Present {
			report.Checks.SanctionsData = true
		}
		allFresh = allFresh && f.Fresh
	}

	switch {
	case report.Checks.SanctionsData && allFresh && report.Checks.Config:
		report.Status = HealthHealthy
	default:
		report.Status = HealthDegraded
	}
	return report
}

func (u *healthUseCaseImpl) Freshness(ctx context.Context) []ChainFreshness {
	now := u.clock.Now()
	chains := screening.SupportedChains()
	out := make([]ChainFreshness, 0, len(chains))
	for _, chain := range chains {
		ctx, cancel := context.WithTimeout(ctx, u.timeout)
		f, err := u.sanctions.Freshness(ctx, chain)
		cancel()
		if err != nil {
			out = append(out, ChainFreshness{Chain: chain})
			continue
		}
		cf := ChainFreshness{
			Chain:        chain,
			Present:      f.Present,
			Fresh:        f.IsFresh(now, u.settings.StaleAfter),
			LastSync:     f.LastSync,
			TTLRemaining: f.TTLRemaining,
		}
		if age, ok := f.Age(now); ok {
			cf.Age = &age
		}
		out = append(out, cf)
	}
	return out
}
