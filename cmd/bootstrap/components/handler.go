package components

import (
	"wallet-screening/internal/domain/quota"
	"wallet-screening/internal/handler"
	"wallet-screening/internal/handler/api"
	"wallet-screening/internal/handler/middleware"
	"wallet-screening/internal/pkg/clock"
	"wallet-screening/internal/pkg/config"
	usecase "wallet-screening/internal/usecase"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewScreeningHandler,
		api.NewKeyHandler,
		api.NewHealthHandler,
		api.NewSanctionsHandler,
		NewHandlers,
		NewAdminMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(s *api.ScreeningHandler, k *api.KeyHandler, h *api.HealthHandler, d *api.SanctionsHandler) handler.Handlers {
	return handler.Handlers{
		Screening: s,
		Keys:      k,
		Health:    h,
		Sanctions: d,
	}
}

func NewAdminMiddleware(cfg config.Config, plan quota.Plan, enforcer usecase.QuotaEnforcer, clk clock.Clock) *middleware.AdminMiddleware {
	return middleware.NewAdminMiddleware(cfg.Admin, plan, enforcer, clk)
}
