package bootstrap

import (
	"time"

	"wallet-screening/internal/pkg/config"
	"wallet-screening/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewFacilitatorSigner,
	),
)

const (
	facilitatorTokenIssuer   = "wallet-screening"
	facilitatorTokenDuration = time.Minute
)

// NewFacilitatorSigner signs outgoing facilitator requests. With no secret the
// signer is disabled and requests go out unauthenticated.
func NewFacilitatorSigner(cfg config.Config) *jwt.Signer {
	return jwt.NewSigner(cfg.Payment.FacilitatorSecret, facilitatorTokenIssuer, facilitatorTokenDuration)
}
