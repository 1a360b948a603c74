package bootstrap

import (
	"context"
	"log/slog"

	"wallet-screening/internal/infra/scheduler"
	"wallet-screening/internal/pkg/config"
	usecase "wallet-screening/internal/usecase"

	"go.uber.org/fx"
)

var SchedulerModule = fx.Module("scheduler",
	fx.Provide(
		NewFreshnessMonitor,
	),
	fx.Invoke(func(*scheduler.FreshnessMonitor) {}),
)

func NewFreshnessMonitor(lc fx.Lifecycle, cfg config.Config, health usecase.HealthUseCase, logger *slog.Logger) (*scheduler.FreshnessMonitor, error) {
	m, err := scheduler.NewFreshnessMonitor(cfg.Screening.FreshnessSchedule, health, logger)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			m.RunOnce(ctx)
			m.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			m.Stop(ctx)
			return nil
		},
	})

	return m, nil
}
