//go:build unit || e2e

package builder

import (
	"time"

	"wallet-screening/internal/domain/screening"
)

const (
	CleanAddress      = "0x1234567890abcdef1234567890abcdef12345678"
	SanctionedAddress = "0x8589427373d6d84e98730d7795d8f6f8731fda16"
)

type ResultBuilder struct {
	Chain     screening.Chain
	Address   string
	Match     screening.Match
	CheckedAt time.Time
}

func NewResultBuilder() *ResultBuilder {
	return &ResultBuilder{
		Chain:     screening.Ethereum,
		Address:   CleanAddress,
		CheckedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (b *ResultBuilder) With(mutate func(*ResultBuilder)) *ResultBuilder {
	mutate(b)
	return b
}

func (b *ResultBuilder) Sanctioned() *ResultBuilder {
	b.Address = SanctionedAddress
	b.Match = screening.SDNMatch()
	return b
}

func (b *ResultBuilder) Build() screening.Result {
	addr, err := screening.NewAddress(b.Chain, b.Address)
	if err != nil {
		panic(err)
	}
	return screening.NewResult(addr, b.Match, b.CheckedAt)
}
