package components

import (
	"context"
	"log/slog"

	"wallet-screening/internal/domain/quota"
	"wallet-screening/internal/pkg/clock"
	"wallet-screening/internal/pkg/config"
	usecase "wallet-screening/internal/usecase"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseServicesModule,
	usecaseEntryModule,
	fx.Invoke(drainOnStop),
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewQuotaPlan,
)

var usecaseServicesModule = fx.Module("usecase/services",
	fx.Provide(
		NewIdentityResolver,
		NewQuotaEnforcer,
		NewSanctionsChecker,
		NewResultCache,
	),
)

var usecaseEntryModule = fx.Module("usecase/entry",
	fx.Provide(
		NewScreeningUseCase,
		usecase.NewKeyUseCase,
		usecase.NewSanctionsDataUseCase,
		NewHealthUseCase,
	),
)

func NewQuotaPlan(cfg config.Config) quota.Plan {
	return quota.NewPlan(cfg.Quota.FreeTierLimit, cfg.Quota.PaidTierLimitPerMinute, cfg.Quota.AdminLimit)
}

func NewIdentityResolver(store usecase.CredentialStore, clk clock.Clock, cfg config.Config, logger *slog.Logger) usecase.IdentityResolver {
	return usecase.NewIdentityResolver(store, clk, cfg.Redis.Timeout, logger)
}

func NewQuotaEnforcer(counter usecase.QuotaCounter, clk clock.Clock, cfg config.Config, logger *slog.Logger) usecase.QuotaEnforcer {
	return usecase.NewQuotaEnforcer(counter, clk, cfg.Redis.Timeout, logger)
}

func NewSanctionsChecker(store usecase.SanctionsStore, cfg config.Config, logger *slog.Logger) usecase.SanctionsChecker {
	return usecase.NewSanctionsChecker(store, cfg.Redis.Timeout, logger)
}

func NewResultCache(store usecase.ResultStore, cfg config.Config, logger *slog.Logger) usecase.ResultCache {
	return usecase.NewResultCache(store, cfg.Redis.Timeout, logger)
}

type screeningParams struct {
	fx.In

	Config    config.Config
	Plan      quota.Plan
	Identity  usecase.IdentityResolver
	Quota     usecase.QuotaEnforcer
	Payments  usecase.PaymentVerifier
	Sanctions usecase.SanctionsChecker
	Cache     usecase.ResultCache
	Audit     usecase.AuditRecorder
	Clock     clock.Clock
	Logger    *slog.Logger
}

func NewScreeningUseCase(p screeningParams) usecase.ScreeningUseCase {
	return usecase.NewScreeningUseCase(usecase.ScreeningDeps{
		Identity:  p.Identity,
		Quota:     p.Quota,
		Payments:  p.Payments,
		Sanctions: p.Sanctions,
		Cache:     p.Cache,
		Audit:     p.Audit,
		Clock:     p.Clock,
		Logger:    p.Logger,
	}, usecase.ScreeningSettings{
		Plan:             p.Plan,
		BatchMaxSize:     p.Config.Screening.BatchMaxSize,
		BatchConcurrency: p.Config.Screening.BatchConcurrency,
	})
}

func NewHealthUseCase(pinger usecase.StorePinger, sanctions usecase.SanctionsStore, clk clock.Clock, cfg config.Config, logger *slog.Logger) usecase.HealthUseCase {
	return usecase.NewHealthUseCase(pinger, sanctions, clk, cfg.Redis.Timeout, usecase.HealthSettings{
		Version:      cfg.Server.Version,
		StaleAfter:   cfg.Screening.StaleAfter,
		ConfigIssues: cfg.Payment.Issues(),
	}, logger)
}

// drainOnStop lets in-flight usage and audit writes finish before the stores close.
func drainOnStop(lc fx.Lifecycle, uc usecase.ScreeningUseCase, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if err := uc.Drain(ctx); err != nil {
				logger.Warn("background writes did not finish before shutdown", "error", err)
			}
			return nil
		},
	})
}
