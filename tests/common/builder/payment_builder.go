//go:build unit || e2e

package builder

import (
	"strings"
	"time"

	"wallet-screening/internal/domain/payment"
)

const (
	PaymentRecipient = "0x1111111111111111111111111111111111111111"
	PaymentPayer     = "0x2222222222222222222222222222222222222222"
	PaymentNetwork   = "base-sepolia"
)

type ProofBuilder struct {
	Network     string
	From        string
	To          string
	Value       string
	ValidAfter  time.Time
	ValidBefore time.Time
	Nonce       string
}

// NewProofBuilder returns a proof for exactly one check at the default price, valid around now.
func NewProofBuilder(now time.Time) *ProofBuilder {
	return &ProofBuilder{
		Network:     PaymentNetwork,
		From:        PaymentPayer,
		To:          PaymentRecipient,
		Value:       "5000",
		ValidAfter:  now.Add(-time.Minute),
		ValidBefore: now.Add(10 * time.Minute),
		Nonce:       Nonce(0xab),
	}
}

func (b *ProofBuilder) With(mutate func(*ProofBuilder)) *ProofBuilder {
	mutate(b)
	return b
}

func (b *ProofBuilder) Build() payment.Proof {
	return payment.Proof{
		X402Version: payment.ProtocolVersion,
		Scheme:      payment.SchemeERC3009,
		Network:     b.Network,
		Payload: payment.Authorization{
			From:        b.From,
			To:          b.To,
			Value:       b.Value,
			ValidAfter:  b.ValidAfter.Unix(),
			ValidBefore: b.ValidBefore.Unix(),
			Nonce:       b.Nonce,
			V:           27,
			R:           "0x" + strings.Repeat("01", 32),
			S:           "0x" + strings.Repeat("02", 32),
		},
	}
}

// BuildHeader returns the base64 value for the X-Payment header.
func (b *ProofBuilder) BuildHeader() string {
	h, err := b.Build().Encode()
	if err != nil {
		panic(err)
	}
	return h
}

// Nonce returns a bytes32 nonce made of one repeated byte.
func Nonce(fill byte) string {
	const hex = "0123456789abcdef"
	pair := string([]byte{hex[fill>>4], hex[fill&0x0f]})
	return "0x" + strings.Repeat(pair, 32)
}
