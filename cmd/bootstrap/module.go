package bootstrap

import (
	"wallet-screening/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	JWTModule,
	components.StoreModule,
	PaymentModule,
	components.UseCaseModule,
	components.HandlerModule,
	SchedulerModule,
)
