package bootstrap

import (
	"context"
	"log/slog"
	"net/http"

	"wallet-screening/internal/infra/redisstore"
	"wallet-screening/internal/infra/x402"
	"wallet-screening/internal/pkg/clock"
	"wallet-screening/internal/pkg/config"
	"wallet-screening/internal/pkg/jwt"
	usecase "wallet-screening/internal/usecase"

	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/fx"
)

var PaymentModule = fx.Module("payment",
	fx.Provide(
		NewAuthorizer,
		NewPaymentVerifier,
	),
)

func NewAuthorizer(lc fx.Lifecycle, cfg config.Config, signer *jwt.Signer, logger *slog.Logger) (x402.Authorizer, error) {
	switch cfg.Payment.Mode {
	case config.PaymentModeOnchain:
		if cfg.Payment.RPCURL == "" {
			logger.Warn("payment verification rpc not configured; paid access is unavailable")
			return x402.NewUnconfiguredAuthorizer("PAYMENT_VERIFICATION_RPC is empty"), nil
		}
		client, err := ethclient.DialContext(context.Background(), cfg.Payment.RPCURL)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				client.Close()
				return nil
			},
		})
		return x402.NewOnchainAuthorizer(client, logger)
	case config.PaymentModeFacilitator:
		if cfg.Payment.FacilitatorURL == "" {
			logger.Warn("facilitator url not configured; paid access is unavailable")
			return x402.NewUnconfiguredAuthorizer("X402_FACILITATOR_URL is empty"), nil
		}
		httpClient := &http.Client{Timeout: cfg.Payment.Timeout}
		return x402.NewFacilitatorAuthorizer(cfg.Payment.FacilitatorURL, httpClient, signer, logger), nil
	default:
		logger.Warn("unknown payment mode; paid access is unavailable", "mode", cfg.Payment.Mode)
		return x402.NewUnconfiguredAuthorizer("unknown PAYMENT_MODE " + cfg.Payment.Mode), nil
	}
}

func NewPaymentVerifier(cfg config.Config, ledger *redisstore.NonceLedger, authorizer x402.Authorizer, clk clock.Clock, logger *slog.Logger) (usecase.PaymentVerifier, error) {
	return x402.NewVerifier(x402.Settings{
		PricePerCheck: cfg.Payment.PricePerCheck,
		Recipient:     cfg.Payment.Recipient,
		Network:       cfg.Payment.Network,
		Timeout:       cfg.Payment.Timeout,
	}, ledger, authorizer, clk, logger)
}
