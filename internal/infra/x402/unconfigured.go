package x402

import (
	"context"

	"wallet-screening/internal/domain/payment"
	"wallet-screening/internal/pkg/errs"
)

// UnconfiguredAuthorizer stands in when the selected verification backend has no
// endpoint. Every proof is reported as unverifiable so callers keep getting 402.
type UnconfiguredAuthorizer struct {
	reason string
}

func NewUnconfiguredAuthorizer(reason string) *UnconfiguredAuthorizer {
	return &UnconfiguredAuthorizer{reason: reason}
}

func (u *UnconfiguredAuthorizer) Consumed(context.Context, *payment.Proof) (bool, error) {
	return false, errs.Newf("payment verification not configured: %s", u.reason)
}

func (u *UnconfiguredAuthorizer) Authorize(context.Context, *payment.Proof, payment.Requirements) payment.Verification {
	return payment.Reject(payment.ReasonVerificationUnavailable)
}
