package usecase

//go:generate mockgen -source=ports.go -destination=../../tests/mock/usecase/ports.go -package=usecasemock

import (
	"context"
	"time"

	"wallet-screening/internal/domain/credential"
	"wallet-screening/internal/domain/payment"
	"wallet-screening/internal/domain/quota"
	"wallet-screening/internal/domain/screening"
)

// Store ports implemented by infra/redisstore.

type CredentialStore interface {
	Create(ctx context.Context, rec credential.Record, secretHash string) error
	Get(ctx context.Context, keyID string) (*credential.Record, error)
	FindBySecretHash(ctx context.Context, secretHash string) (*credential.Record, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*credential.Record, error)
	SetActive(ctx context.Context, keyID string, active bool) error
	UpdateTier(ctx context.Context, keyID string, tier credential.Tier, limits credential.Limits) error
	Delete(ctx context.Context, keyID string) error
	TouchUsage(ctx context.Context, keyID string, at time.Time) error
}

type QuotaCounter interface {
	Hit(ctx context.Context, identifier string, p quota.Policy, now time.Time) (quota.Result, error)
}

type SanctionsStore interface {
	IsMember(ctx context.Context, chain screening.Chain, address string) (bool, error)
	Freshness(ctx context.Context, chain screening.Chain) (screening.Freshness, error)
	Replace(ctx context.Context, chain screening.Chain, addresses []string, syncedAt time.Time) error
}

type ResultStore interface {
	Get(ctx context.Context, chain screening.Chain, address string) (*screening.Result, error)
	Set(ctx context.Context, r screening.Result, ttl time.Duration) error
}

type StorePinger interface {
	Ping(ctx context.Context) error
}

// PaymentVerifier is implemented by infra/x402.
type PaymentVerifier interface {
	Verify(ctx context.Context, header string) payment.Verification
	Requirements() payment.Requirements
}

// AuditRecorder is implemented by infra/audit; NopAuditRecorder is used when no database is configured.
type AuditRecorder interface {
	Record(ctx context.Context, entry AuditEntry) error
}
