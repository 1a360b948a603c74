package usecase

//go:generate mockgen -source=identity.go -destination=../../tests/mock/usecase/identity.go -package=usecasemock

import (
	"context"
	"log/slog"
	"time"

	"wallet-screening/internal/domain/credential"
	"wallet-screening/internal/infra"
	"wallet-screening/internal/pkg/clock"
)

// IdentityResolver maps a presented API key to its stored record.
type IdentityResolver interface {
	// Resolve never fails: malformed, unknown and unreachable all report found=false.
	Resolve(ctx context.Context, presented string) (*credential.Record, bool)
	// TouchUsage records one use. Callers run it in the background.
	TouchUsage(ctx context.Context, keyID string)
}

type identityResolverImpl struct {
	store   CredentialStore
	clock   clock.Clock
	timeout time.Duration
	logger  *slog.Logger
}

func NewIdentityResolver(store CredentialStore, clk clock.Clock, timeout time.Duration, logger *slog.Logger) IdentityResolver {
	return &identityResolverImpl{store: store, clock: clk, timeout: timeout, logger: logger}
}

func (r *identityResolverImpl) Resolve(ctx context.Context, presented string) (*credential.Record, bool) {
	if !credential.IsValidSecretFormat(presented) {
		return nil, false
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rec, err := r.store.FindBySecretHash(ctx, credential.LookupHash(presented))
	if err != nil {
		if !infra.IsKind(err, infra.KindNotFound) {
			r.logger.WarnContext(ctx, "credential lookup failed, treating as unknown",
				slog.String("error", err.Error()))
		}
		return nil, false
	}
	return rec, true
}

func (r *identityResolverImpl) TouchUsage(ctx context.Context, keyID string) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.store.TouchUsage(ctx, keyID, r.clock.Now()); err != nil {
		r.logger.WarnContext(ctx, "failed to record credential usage",
			slog.String("key_id", keyID),
			slog.String("error", err.Error()))
	}
}
