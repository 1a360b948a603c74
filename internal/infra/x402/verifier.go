// Package x402 verifies ERC-3009 payment proofs presented in the X-PAYMENT header.
package x402

import (
	"context"
	"log/slog"
	"math/big"
	"regexp"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"wallet-screening/internal/domain/payment"
	"wallet-screening/internal/pkg/clock"
	"wallet-screening/internal/pkg/errs"
)

var bytes32Pattern = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)

// nonceRetention keeps claimed nonces a little past validBefore to absorb clock skew.
const nonceRetention = time.Minute

type NonceLedger interface {
	Seen(ctx context.Context, payer, nonce string) (bool, error)
	Claim(ctx context.Context, payer, nonce string, ttl time.Duration) (bool, error)
}

// Authorizer performs the checks that need an external party: whether the
// authorization was already consumed and whether its signature would settle.
type Authorizer interface {
	Consumed(ctx context.Context, proof *payment.Proof) (bool, error)
	Authorize(ctx context.Context, proof *payment.Proof, req payment.Requirements) payment.Verification
}

type Settings struct {
	PricePerCheck string
	Recipient     string
	Network       string
	Timeout       time.Duration
}

type Verifier struct {
	requirements payment.Requirements
	minValue     *big.Int
	recipient    string
	timeout      time.Duration
	ledger       NonceLedger
	authorizer   Authorizer
	clock        clock.Clock
	logger       *slog.Logger
}

func NewVerifier(s Settings, ledger NonceLedger, authorizer Authorizer, clk clock.Clock, logger *slog.Logger) (*Verifier, error) {
	minValue, err := payment.MinorUnits(s.PricePerCheck, payment.USDCDecimals)
	if err != nil {
		return nil, errs.Wrap(err, "invalid PRICE_PER_CHECK")
	}
	if _, ok := payment.USDCContract(s.Network); !ok {
		return nil, errs.Newf("unsupported payment network %q", s.Network)
	}
	return &Verifier{
		requirements: payment.NewRequirements(s.PricePerCheck, s.Network, s.Recipient),
		minValue:     minValue,
		recipient:    strings.ToLower(s.Recipient),
		timeout:      s.Timeout,
		ledger:       ledger,
		authorizer:   authorizer,
		clock:        clk,
		logger:       logger,
	}, nil
}

func (v *Verifier) Requirements() payment.Requirements {
	return v.requirements
}

// Verify runs the local checks first and only then consults the nonce ledger and
// the authorizer. A proof is accepted only after its nonce has been claimed.
func (v *Verifier) Verify(ctx context.Context, header string) payment.Verification {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	proof, err := payment.DecodeProof(header)
	if err != nil {
		return payment.Reject(payment.ReasonMalformedProof)
	}
	if res, ok := v.checkLocal(proof); !ok {
		return res
	}

	auth := proof.Payload
	seen, err := v.ledger.Seen(ctx, auth.From, auth.Nonce)
	if err != nil {
		return v.unavailable(ctx, "nonce ledger", err)
	}
	if seen {
		return payment.Reject(payment.ReasonNonceUsed)
	}
	consumed, err := v.authorizer.Consumed(ctx, proof)
	if err != nil {
		return v.unavailable(ctx, "authorization state", err)
	}
	if consumed {
		return payment.Reject(payment.ReasonNonceUsed)
	}

	if res := v.authorizer.Authorize(ctx, proof, v.requirements); !res.Valid {
		return res
	}

	ttl := time.Unix(auth.ValidBefore, 0).Sub(v.clock.Now()) + nonceRetention
	claimed, err := v.ledger.Claim(ctx, auth.From, auth.Nonce, ttl)
	if err != nil {
		return v.unavailable(ctx, "nonce claim", err)
	}
	if !claimed {
		return payment.Reject(payment.ReasonNonceUsed)
	}
	return payment.Accept(strings.ToLower(auth.From))
}

func (v *Verifier) checkLocal(p *payment.Proof) (payment.Verification, bool) {
	auth := p.Payload
	switch {
	case p.X402Version != payment.ProtocolVersion:
		return payment.Reject(payment.ReasonUnsupportedVersion), false
	case p.Scheme != payment.SchemeERC3009:
		return payment.Reject(payment.ReasonUnsupportedScheme), false
	case p.Network != v.requirements.Network:
		return payment.Reject(payment.ReasonUnsupportedNetwork), false
	case !common.IsHexAddress(auth.From) || !common.IsHexAddress(auth.To) || !bytes32Pattern.MatchString(auth.Nonce):
		return payment.Reject(payment.ReasonMalformedProof), false
	case strings.ToLower(auth.To) != v.recipient:
		return payment.Reject(payment.ReasonWrongRecipient), false
	}

	value, ok := new(big.Int).SetString(auth.Value, 0)
	if !ok || value.Sign() < 0 {
		return payment.Reject(payment.ReasonMalformedProof), false
	}
	if value.Cmp(v.minValue) < 0 {
		return payment.Reject(payment.ReasonInsufficientAmount), false
	}

	now := v.clock.Now().Unix()
	if auth.ValidAfter > now {
		return payment.Reject(payment.ReasonNotYetValid), false
	}
	if auth.ValidBefore < now {
		return payment.Reject(payment.ReasonExpired), false
	}
	return payment.Verification{}, true
}

func (v *Verifier) unavailable(ctx context.Context, step string, err error) payment.Verification {
	v.logger.WarnContext(ctx, "payment verification unavailable",
		slog.String("step", step),
		slog.String("error", err.Error()))
	return payment.Reject(payment.ReasonVerificationUnavailable)
}
