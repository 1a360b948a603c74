package components

import (
	"wallet-screening/internal/infra/redisstore"
	usecase "wallet-screening/internal/usecase"

	"go.uber.org/fx"
)

var StoreModule = fx.Module("store",
	fx.Provide(
		fx.Annotate(
			redisstore.NewPinger,
			fx.As(new(usecase.StorePinger)),
		),
		fx.Annotate(
			redisstore.NewCredentialStore,
			fx.As(new(usecase.CredentialStore)),
		),
		fx.Annotate(
			redisstore.NewQuotaStore,
			fx.As(new(usecase.QuotaCounter)),
		),
		fx.Annotate(
			redisstore.NewSanctionsStore,
			fx.As(new(usecase.SanctionsStore)),
		),
		fx.Annotate(
			redisstore.NewResultStore,
			fx.As(new(usecase.ResultStore)),
		),
		// Consumed by the payment verifier, which owns its own ledger interface.
		redisstore.NewNonceLedger,
	),
)
