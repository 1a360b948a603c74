package bootstrap

import (
	"context"
	"log/slog"

	"wallet-screening/internal/infra/audit"
	"wallet-screening/internal/infra/redisstore"
	"wallet-screening/internal/pkg/config"
	usecase "wallet-screening/internal/usecase"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewRedis,
		NewAuditRecorder,
	),
)

func NewRedis(lc fx.Lifecycle, cfg config.Config) (*redis.Client, error) {
	rdb, cleanup, err := redisstore.Connect(context.Background(), cfg.Redis)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return rdb, nil
}

// NewAuditRecorder returns a no-op recorder unless AUDIT_DATABASE_URL is set.
func NewAuditRecorder(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (usecase.AuditRecorder, error) {
	if !cfg.Audit.Enabled() {
		logger.Info("audit log disabled")
		return usecase.NopAuditRecorder{}, nil
	}

	pool, cleanup, err := audit.Connect(context.Background(), cfg.Audit.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := audit.RunMigrations(pool); err != nil {
		cleanup()
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})

	return audit.NewRecorder(pool, logger), nil
}
