package usecase

//go:generate mockgen -source=keys.go -destination=../../tests/mock/usecase/keys.go -package=usecasemock

import (
	"context"
	"log/slog"

	"wallet-screening/internal/domain/credential"
	"wallet-screening/internal/infra"
	"wallet-screening/internal/pkg/clock"
	"wallet-screening/internal/pkg/errs"
)

type IssueKeyParams struct {
	CustomerID string
	Name       string
	Tier       string
	Limits     *credential.Limits
	Metadata   map[string]string
}

type KeyUseCase interface {
	Issue(ctx context.Context, p IssueKeyParams) (*credential.Issued, error)
	Get(ctx context.Context, keyID string) (*credential.Record, error)
	List(ctx context.Context, customerID string) ([]*credential.Record, error)
	Revoke(ctx context.Context, keyID string) error
	Delete(ctx context.Context, keyID string) error
	UpdateTier(ctx context.Context, keyID, tier string, limits *credential.Limits) (*credential.Record, error)
}

type keyUseCaseImpl struct {
	store  CredentialStore
	clock  clock.Clock
	logger *slog.Logger
}

func NewKeyUseCase(store CredentialStore, clk clock.Clock, logger *slog.Logger) KeyUseCase {
	return &keyUseCaseImpl{store: store, clock: clk, logger: logger}
}

func (u *keyUseCaseImpl) Issue(ctx context.Context, p IssueKeyParams) (*credential.Issued, error) {
	tier := credential.TierFree
	if p.Tier != "" {
		t, err := credential.ParseTier(p.Tier)
		if err != nil {
			return nil, errs.Mark(err, ErrInvalidTier)
		}
		tier = t
	}
	if err := validateLimits(p.Limits); err != nil {
		return nil, err
	}

	secret, err := credential.GenerateSecret()
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate api key")
	}
	keyID, err := credential.GenerateKeyID()
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate key id")
	}

	rec := credential.Record{
		KeyID:      keyID,
		CustomerID: p.CustomerID,
		Name:       p.Name,
		Tier:       tier,
		CreatedAt:  u.clock.Now().UTC(),
		Active:     true,
		Metadata:   p.Metadata,
	}
	if p.Limits != nil {
		rec.Limits = *p.Limits
	}

	if err := u.store.Create(ctx, rec, credential.LookupHash(secret)); err != nil {
		return nil, errs.Wrap(err, "failed to store api key")
	}

	u.logger.InfoContext(ctx, "api key issued",
		slog.String("key_id", keyID),
		slog.String("customer_id", p.CustomerID),
		slog.String("tier", string(tier)))
	return &credential.Issued{Record: rec, Secret: secret}, nil
}

func (u *keyUseCaseImpl) Get(ctx context.Context, keyID string) (*credential.Record, error) {
	rec, err := u.store.Get(ctx, keyID)
	if err != nil {
		return nil, mapKeyErr(err, "failed to get api key")
	}
	return rec, nil
}

func (u *keyUseCaseImpl) List(ctx context.Context, customerID string) ([]*credential.Record, error) {
	recs, err := u.store.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list api keys")
	}
	return recs, nil
}

// Revoke is a soft delete: the record stays and lookups report it inactive.
func (u *keyUseCaseImpl) Revoke(ctx context.Context, keyID string) error {
	if err := u.store.SetActive(ctx, keyID, false); err != nil {
		return mapKeyErr(err, "failed to revoke api key")
	}
	u.logger.InfoContext(ctx, "api key revoked", slog.String("key_id", keyID))
	return nil
}

func (u *keyUseCaseImpl) Delete(ctx context.Context, keyID string) error {
	if err := u.store.Delete(ctx, keyID); err != nil {
		return mapKeyErr(err, "failed to delete api key")
	}
	u.logger.InfoContext(ctx, "api key deleted", slog.String("key_id", keyID))
	return nil
}

func (u *keyUseCaseImpl) UpdateTier(ctx context.Context, keyID, tier string, limits *credential.Limits) (*credential.Record, error) {
	t, err := credential.ParseTier(tier)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidTier)
	}
	if err := validateLimits(limits); err != nil {
		return nil, err
	}
	var custom credential.Limits
	if limits != nil {
		custom = *limits
	}
	if err := u.store.UpdateTier(ctx, keyID, t, custom); err != nil {
		return nil, mapKeyErr(err, "failed to update api key tier")
	}
	return u.Get(ctx, keyID)
}

func validateLimits(l *credential.Limits) error {
	if l == nil {
		return nil
	}
	if l.RequestsPerMinute < 0 || l.RequestsPerDay < 0 {
		return ErrInvalidLimits
	}
	return nil
}

func mapKeyErr(err error, msg string) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(errs.Wrap(err, msg), ErrKeyNotFound)
	}
	return errs.Wrap(err, msg)
}
