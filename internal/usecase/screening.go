package usecase

//go:generate mockgen -source=screening.go -destination=../../tests/mock/usecase/screening.go -package=usecasemock

import (
	"context"
	"log/slog"
	"time"

	"wallet-screening/internal/domain/payment"
	"wallet-screening/internal/domain/quota"
	"wallet-screening/internal/domain/screening"
	"wallet-screening/internal/pkg/clock"
)

type ScreenRequest struct {
	Chain         string
	Address       string
	Credential    string
	PaymentProof  string
	ClientIP      string
	CorrelationID string
}

type ScreenOutcome struct {
	Result screening.Result
	Quota  quota.Decision
	Auth   AuthContext
}

type ScreeningUseCase interface {
	Screen(ctx context.Context, req ScreenRequest) (*ScreenOutcome, error)
	ScreenBatch(ctx context.Context, req BatchRequest) (*BatchOutcome, error)
	// Drain waits for background usage and audit writes started by earlier requests.
	Drain(ctx context.Context) error
}

type ScreeningSettings struct {
	Plan              quota.Plan
	BatchMaxSize      int
	BatchConcurrency  int
	BackgroundTimeout time.Duration
}

type ScreeningDeps struct {
	Identity  IdentityResolver
	Quota     QuotaEnforcer
	Payments  PaymentVerifier
	Sanctions SanctionsChecker
	Cache     ResultCache
	Audit     AuditRecorder
	Clock     clock.Clock
	Logger    *slog.Logger
}

type screeningUseCaseImpl struct {
	identity  IdentityResolver
	quota     QuotaEnforcer
	payments  PaymentVerifier
	sanctions SanctionsChecker
	cache     ResultCache
	audit     AuditRecorder
	clock     clock.Clock
	logger    *slog.Logger
	settings  ScreeningSettings
	bg        *background
}

func NewScreeningUseCase(deps ScreeningDeps, settings ScreeningSettings) ScreeningUseCase {
	if settings.BatchConcurrency < 1 {
		settings.BatchConcurrency = 1
	}
	if settings.BackgroundTimeout <= 0 {
		settings.BackgroundTimeout = 5 * time.Second
	}
	audit := deps.Audit
	if audit == nil {
		audit = NopAuditRecorder{}
	}
	return &screeningUseCaseImpl{
		identity:  deps.Identity,
		quota:     deps.Quota,
		payments:  deps.Payments,
		sanctions: deps.Sanctions,
		cache:     deps.Cache,
		audit:     audit,
		clock:     deps.Clock,
		logger:    deps.Logger,
		settings:  settings,
		bg:        newBackground(settings.BackgroundTimeout, deps.Logger),
	}
}

func (u *screeningUseCaseImpl) Screen(ctx context.Context, req ScreenRequest) (*ScreenOutcome, error) {
	addr, err := parseTarget(req.Chain, req.Address)
	if err != nil {
		return nil, err
	}

	auth, decision, err := u.authorize(ctx, req)
	if err != nil {
		return nil, err
	}

	result := u.screen(ctx, addr)
	u.recordAudit(ctx, req.CorrelationID, auth, result)

	return &ScreenOutcome{Result: result, Quota: decision, Auth: auth}, nil
}

func (u *screeningUseCaseImpl) Drain(ctx context.Context) error {
	return u.bg.Wait(ctx)
}

func parseTarget(chain, address string) (screening.Address, error) {
	c, err := screening.ParseChain(chain)
	if err != nil {
		return screening.Address{}, &InvalidInputError{
			Code:            CodeUnsupportedChain,
			Message:         "Unsupported chain",
			Chain:           chain,
			SupportedChains: screening.SupportedChainNames(),
		}
	}
	addr, err := screening.NewAddress(c, address)
	if err != nil {
		return screening.Address{}, &InvalidInputError{
			Code:    CodeInvalidAddress,
			Message: "Invalid address format",
			Chain:   chain,
			Address: address,
		}
	}
	return addr, nil
}

// authorize resolves the AuthContext once and applies the matching quota.
// Only an active credential skips payment; an inactive or unknown one is ignored.
func (u *screeningUseCaseImpl) authorize(ctx context.Context, req ScreenRequest) (AuthContext, quota.Decision, error) {
	if req.Credential != "" {
		rec, found := u.identity.Resolve(ctx, req.Credential)
		switch {
		case found && rec.Active:
			auth := Credentialed(rec, req.ClientIP)
			decision := u.quota.Check(ctx, auth.QuotaIdentifier(), quota.ForCredential(rec.EffectiveLimits())...)
			if !decision.Allowed {
				return auth, decision, &RateLimitedError{Decision: decision}
			}
			u.touchUsage(ctx, rec.KeyID)
			return auth, decision, nil
		case found:
			u.logger.InfoContext(ctx, "inactive credential presented, continuing unauthenticated",
				slog.String("key_id", rec.KeyID))
		}
	}

	auth := Anonymous(req.ClientIP)
	policy := u.settings.Plan.Free
	var reason payment.Reason
	if req.PaymentProof != "" {
		v := u.payments.Verify(ctx, req.PaymentProof)
		if v.Valid {
			auth = Paid(v, req.ClientIP)
			policy = u.settings.Plan.Paid
		} else {
			reason = v.Reason
			u.logger.InfoContext(ctx, "payment proof rejected", slog.String("reason", string(v.Reason)))
		}
	}

	decision := u.quota.Check(ctx, auth.QuotaIdentifier(), policy)
	if !decision.Allowed {
		return auth, decision, &RateLimitedError{Decision: decision}
	}
	if !auth.HasAccess() {
		return auth, decision, &PaymentRequiredError{
			Requirements: u.payments.Requirements(),
			Reason:       reason,
			Decision:     decision,
		}
	}
	return auth, decision, nil
}

// screen runs cache lookup, sanctions check and write-through for one validated address.
func (u *screeningUseCaseImpl) screen(ctx context.Context, addr screening.Address) screening.Result {
	if cached, ok := u.cache.Get(ctx, addr); ok {
		return cached.AsCacheHit()
	}

	match := u.sanctions.Check(ctx, addr)
	result := screening.NewResult(addr, match, u.clock.Now())
	// A degraded verdict is returned but never cached.
	if !match.Degraded {
		u.cache.Put(ctx, result)
	}
	return result
}

func (u *screeningUseCaseImpl) touchUsage(ctx context.Context, keyID string) {
	u.bg.Go(ctx, "touch_usage", func(ctx context.Context) error {
		u.identity.TouchUsage(ctx, keyID)
		return nil
	})
}

func (u *screeningUseCaseImpl) recordAudit(ctx context.Context, correlationID string, auth AuthContext, r screening.Result) {
	entry := newAuditEntry(correlationID, auth, r)
	u.bg.Go(ctx, "audit", func(ctx context.Context) error {
		return u.audit.Record(ctx, entry)
	})
}
