//go:build unit || e2e

package builder

import (
	"time"

	"wallet-screening/internal/domain/credential"
	reqdto "wallet-screening/internal/handler/dto/request"
)

type CredentialBuilder struct {
	KeyID      string
	CustomerID string
	Name       string
	Tier       credential.Tier
	CreatedAt  time.Time
	Active     bool
	Limits     credential.Limits
	Metadata   map[string]string
}

func NewCredentialBuilder() *CredentialBuilder {
	return &CredentialBuilder{
		KeyID:      "key_0123456789abcdef01234567",
		CustomerID: "cust_1",
		Name:       "primary",
		Tier:       credential.TierStarter,
		CreatedAt:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Active:     true,
	}
}

func (b *CredentialBuilder) With(mutate func(*CredentialBuilder)) *CredentialBuilder {
	mutate(b)
	return b
}

func (b *CredentialBuilder) Inactive() *CredentialBuilder {
	b.Active = false
	return b
}

func (b *CredentialBuilder) BuildRecord() *credential.Record {
	return &credential.Record{
		KeyID:      b.KeyID,
		CustomerID: b.CustomerID,
		Name:       b.Name,
		Tier:       b.Tier,
		CreatedAt:  b.CreatedAt,
		Active:     b.Active,
		Limits:     b.Limits,
		Metadata:   b.Metadata,
	}
}

func (b *CredentialBuilder) BuildIssued(secret string) *credential.Issued {
	return &credential.Issued{Record: *b.BuildRecord(), Secret: secret}
}

func (b *CredentialBuilder) BuildIssueRequestDTO() reqdto.IssueKeyRequest {
	return reqdto.IssueKeyRequest{
		CustomerID: b.CustomerID,
		Name:       b.Name,
		Tier:       string(b.Tier),
	}
}

// TestSecret returns a well-formed key secret distinguished by its last byte.
func TestSecret(n byte) string {
	const hex = "0123456789abcdef"
	buf := []byte("cw_live_000000000000000000000000000000000000000000000000")
	buf[len(buf)-1] = hex[n%16]
	return string(buf)
}
