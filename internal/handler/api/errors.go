package api

import (
	"errors"
	"net/http"
	"time"

	"wallet-screening/internal/handler/httperr"
	"wallet-screening/internal/handler/middleware"
	usecase "wallet-screening/internal/usecase"

	"github.com/gin-gonic/gin"
)

// abortWithUseCaseError maps the typed pipeline errors onto status codes and bodies.
func abortWithUseCaseError(c *gin.Context, err error, now time.Time) {
	var (
		invalid     *usecase.InvalidInputError
		unauth      *usecase.UnauthorizedError
		rateLimited *usecase.RateLimitedError
		payReq      *usecase.PaymentRequiredError
	)

	switch {
	case errors.As(err, &invalid):
		resp := httperr.New(http.StatusBadRequest, invalid.Code, invalid.Message)
		resp.Chain = invalid.Chain
		resp.Address = invalid.Address
		resp.SupportedChains = invalid.SupportedChains
		resp.MaxBatchSize = invalid.MaxBatchSize
		resp.Requested = invalid.Requested
		httperr.AbortWithError(c, err, resp)

	case errors.As(err, &unauth):
		httperr.AbortWithError(c, err, httperr.New(http.StatusUnauthorized, unauth.Code, unauth.Message))

	case errors.As(err, &rateLimited):
		middleware.AbortRateLimited(c, rateLimited, now)

	case errors.As(err, &payReq):
		middleware.SetQuotaHeaders(c, payReq.Decision)
		resp := httperr.New(http.StatusPaymentRequired, usecase.CodePaymentRequired, "Payment required")
		resp.PaymentDetails = payReq.Requirements
		if payReq.Reason != "" {
			resp.Message = "Payment proof rejected: " + string(payReq.Reason)
		}
		httperr.AbortWithError(c, err, resp)

	default:
		httperr.AbortWithError(c, err,
			httperr.New(http.StatusInternalServerError, usecase.CodeInternalError, "Internal server error"))
	}
}
