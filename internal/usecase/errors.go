package usecase

import (
	"errors"

	"wallet-screening/internal/domain/payment"
	"wallet-screening/internal/domain/quota"
)

var (
	ErrKeyNotFound   = errors.New("api key not found")
	ErrInvalidTier   = errors.New("invalid tier")
	ErrInvalidLimits = errors.New("rate limits must be positive")
	ErrAdminDisabled = errors.New("admin access disabled")
)

// Error codes shared with the HTTP layer.
const (
	CodeInvalidAddress     = "INVALID_ADDRESS"
	CodeUnsupportedChain   = "UNSUPPORTED_CHAIN"
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeBatchTooLarge      = "BATCH_TOO_LARGE"
	CodeAPIKeyRequired     = "API_KEY_REQUIRED"
	CodeInvalidAPIKey      = "INVALID_API_KEY"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeRateLimitExceeded  = "RATE_LIMIT_EXCEEDED"
	CodePaymentRequired    = "PAYMENT_REQUIRED"
	CodeKeyNotFound        = "KEY_NOT_FOUND"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeInternalError      = "INTERNAL_ERROR"
)

// InvalidInputError is raised before any store is touched.
type InvalidInputError struct {
	Code            string
	Message         string
	Chain           string
	Address         string
	SupportedChains []string
	MaxBatchSize    int
	Requested       int
}

func (e *InvalidInputError) Error() string {
	return e.Message
}

type UnauthorizedError struct {
	Code    string
	Message string
}

func (e *UnauthorizedError) Error() string {
	return e.Message
}

type RateLimitedError struct {
	Decision quota.Decision
}

func (e *RateLimitedError) Error() string {
	return "rate limit exceeded by policy " + e.Decision.DeniedBy
}

// PaymentRequiredError carries the quota decision evaluated for the anonymous caller
// so rate-limit headers can still be reported.
type PaymentRequiredError struct {
	Requirements payment.Requirements
	Reason       payment.Reason
	Decision     quota.Decision
}

func (e *PaymentRequiredError) Error() string {
	if e.Reason != "" {
		return "payment required: " + string(e.Reason)
	}
	return "payment required"
}
