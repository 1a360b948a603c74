package response

import (
	"wallet-screening/internal/domain/credential"

	"github.com/jinzhu/copier"
)

type RateLimitsResponse struct {
	RequestsPerMinute int64 `json:"requests_per_minute"`
	RequestsPerDay    int64 `json:"requests_per_day"`
}

type KeyResponse struct {
	KeyID      string             `json:"key_id"`
	CustomerID string             `json:"customer_id"`
	Name       string             `json:"name"`
	Tier       string             `json:"tier" copier:"-"`
	Active     bool               `json:"is_active"`
	UsageCount int64              `json:"usage_count"`
	CreatedAt  string             `json:"created_at" copier:"-"`
	LastUsedAt *string            `json:"last_used_at" copier:"-"`
	RateLimits RateLimitsResponse `json:"rate_limits" copier:"-"`
	Metadata   map[string]string  `json:"metadata,omitempty"`
}

// IssuedKeyResponse is the only response that ever carries the plaintext key.
type IssuedKeyResponse struct {
	KeyResponse
	APIKey       string `json:"api_key"`
	APIKeyMasked string `json:"api_key_masked"`
}

func FromRecord(rec *credential.Record) *KeyResponse {
	res := &KeyResponse{}
	// copier maps the same-named scalar fields; fields tagged copier:"-" are filled below.
	_ = copier.Copy(res, rec)
	res.Tier = rec.Tier.String()
	res.CreatedAt = FormatTime(rec.CreatedAt)
	if rec.LastUsedAt != nil {
		s := FormatTime(*rec.LastUsedAt)
		res.LastUsedAt = &s
	}
	limits := rec.EffectiveLimits()
	res.RateLimits = RateLimitsResponse{
		RequestsPerMinute: limits.RequestsPerMinute,
		RequestsPerDay:    limits.RequestsPerDay,
	}
	return res
}

func FromRecords(recs []*credential.Record) []*KeyResponse {
	res := make([]*KeyResponse, len(recs))
	for i, rec := range recs {
		res[i] = FromRecord(rec)
	}
	return res
}

func FromIssued(issued *credential.Issued) *IssuedKeyResponse {
	return &IssuedKeyResponse{
		KeyResponse:  *FromRecord(&issued.Record),
		APIKey:       issued.Secret,
		APIKeyMasked: credential.Mask(issued.Secret),
	}
}
