package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"wallet-screening/internal/domain/quota"
	"wallet-screening/internal/handler/httperr"
	"wallet-screening/internal/pkg/clock"
	"wallet-screening/internal/pkg/config"
	"wallet-screening/internal/pkg/secret"
	usecase "wallet-screening/internal/usecase"

	"github.com/gin-gonic/gin"
)

// AdminMiddleware guards key management and data ingestion. Attempts are counted
// against the hourly admin policy before the token is checked, so guessing is
// rate limited as well.
type AdminMiddleware struct {
	tokenHash string
	policy    quota.Policy
	quota     usecase.QuotaEnforcer
	clock     clock.Clock
}

func NewAdminMiddleware(cfg config.AdminConfig, plan quota.Plan, enforcer usecase.QuotaEnforcer, clk clock.Clock) *AdminMiddleware {
	return &AdminMiddleware{
		tokenHash: cfg.TokenHash,
		policy:    plan.Admin,
		quota:     enforcer,
		clock:     clk,
	}
}

func (m *AdminMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.tokenHash == "" {
			httperr.AbortWithError(c, usecase.ErrAdminDisabled,
				httperr.New(http.StatusForbidden, usecase.CodeUnauthorized, "Admin access disabled"))
			return
		}

		decision := m.quota.Check(c.Request.Context(), "admin:"+c.ClientIP(), m.policy)
		SetQuotaHeaders(c, decision)
		if !decision.Allowed {
			AbortRateLimited(c, &usecase.RateLimitedError{Decision: decision}, m.clock.Now())
			return
		}

		token := bearerToken(c)
		if err := secret.CompareToken(m.tokenHash, token); err != nil {
			slog.Warn("Admin token rejected", "client_ip", c.ClientIP(), "correlation_id", GetCorrelationID(c))
			httperr.AbortWithError(c, err,
				httperr.New(http.StatusUnauthorized, usecase.CodeUnauthorized, "Admin token required"))
			return
		}

		SetAuthKind(c, "admin")
		c.Next()
	}
}

// SetQuotaHeaders writes X-RateLimit-* for an evaluated decision. Reset is an ISO-8601 timestamp.
func SetQuotaHeaders(c *gin.Context, d quota.Decision) {
	if d.ResetAt.IsZero() {
		return
	}
	c.Header(HeaderRateLimitLimit, strconv.FormatInt(d.Limit, 10))
	c.Header(HeaderRateLimitRemaining, strconv.FormatInt(d.Remaining, 10))
	c.Header(HeaderRateLimitReset, d.ResetAt.UTC().Format(time.RFC3339))
}

func AbortRateLimited(c *gin.Context, err *usecase.RateLimitedError, now time.Time) {
	retryAfter := err.Decision.RetryAfter(now)
	SetQuotaHeaders(c, err.Decision)
	c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))

	resp := httperr.New(http.StatusTooManyRequests, usecase.CodeRateLimitExceeded, "Rate limit exceeded")
	resp.RetryAfter = &retryAfter
	httperr.AbortWithError(c, err, resp)
}
