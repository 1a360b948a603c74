package request

import (
	"wallet-screening/internal/domain/credential"
	usecase "wallet-screening/internal/usecase"
)

type RateLimits struct {
	RequestsPerMinute int64 `json:"requests_per_minute" binding:"omitempty,min=1"`
	RequestsPerDay    int64 `json:"requests_per_day" binding:"omitempty,min=1"`
}

func (r *RateLimits) toDomain() *credential.Limits {
	if r == nil {
		return nil
	}
	return &credential.Limits{RequestsPerMinute: r.RequestsPerMinute, RequestsPerDay: r.RequestsPerDay}
}

type IssueKeyRequest struct {
	CustomerID string            `json:"customer_id" binding:"required,max=128"`
	Name       string            `json:"name" binding:"required,max=256"`
	Tier       string            `json:"tier" binding:"omitempty,tier"`
	RateLimits *RateLimits       `json:"rate_limits"`
	Metadata   map[string]string `json:"metadata"`
}

func (r *IssueKeyRequest) ToParams() usecase.IssueKeyParams {
	return usecase.IssueKeyParams{
		CustomerID: r.CustomerID,
		Name:       r.Name,
		Tier:       r.Tier,
		Limits:     r.RateLimits.toDomain(),
		Metadata:   r.Metadata,
	}
}

type UpdateTierRequest struct {
	Tier       string      `json:"tier" binding:"required,tier"`
	RateLimits *RateLimits `json:"rate_limits"`
}

func (r *UpdateTierRequest) Limits() *credential.Limits {
	return r.RateLimits.toDomain()
}

type ListKeysQuery struct {
	CustomerID string `form:"customer_id" binding:"required"`
}
