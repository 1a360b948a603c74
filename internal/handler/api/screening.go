package api

import (
	"net/http"

	reqdto "wallet-screening/internal/handler/dto/request"
	resdto "wallet-screening/internal/handler/dto/response"
	"wallet-screening/internal/handler/httperr"
	"wallet-screening/internal/handler/middleware"
	"wallet-screening/internal/pkg/clock"
	usecase "wallet-screening/internal/usecase"

	"github.com/gin-gonic/gin"
)

type ScreeningHandler struct {
	screening usecase.ScreeningUseCase
	clock     clock.Clock
}

func NewScreeningHandler(screening usecase.ScreeningUseCase, clk clock.Clock) *ScreeningHandler {
	return &ScreeningHandler{screening: screening, clock: clk}
}

// @Summary Screen address
// @Description Check a wallet address against the sanctions list. Requires an API key or an x402 payment proof.
// @Tags screening
// @Produce json
// @Param chain path string true "Chain (ethereum, base)"
// @Param address path string true "0x-prefixed address"
// @Param X-API-Key header string false "API key"
// @Param X-Payment header string false "Base64 x402 payment proof"
// @Success 200 {object} resdto.ScreeningResponse
// @Failure 400 {object} httperr.Response
// @Failure 402 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Router /api/screen/{chain}/{address} [get]
func (h *ScreeningHandler) Screen(c *gin.Context) {
	correlationID := middleware.GetCorrelationID(c)

	out, err := h.screening.Screen(c.Request.Context(), usecase.ScreenRequest{
		Chain:         c.Param("chain"),
		Address:       c.Param("address"),
		Credential:    middleware.ExtractCredential(c),
		PaymentProof:  c.GetHeader(middleware.HeaderPayment),
		ClientIP:      c.ClientIP(),
		CorrelationID: correlationID,
	})
	if err != nil {
		abortWithUseCaseError(c, err, h.clock.Now())
		return
	}

	middleware.SetAuthKind(c, out.Auth.Kind().String())
	middleware.SetQuotaHeaders(c, out.Quota)
	c.JSON(http.StatusOK, resdto.FromResult(out.Result, correlationID))
}

// @Summary Screen addresses in batch
// @Description Screen up to BATCH_MAX_SIZE addresses in one request. Requires an API key.
// @Tags screening
// @Accept json
// @Produce json
// @Param request body reqdto.BatchScreenRequest true "Addresses"
// @Success 200 {object} resdto.BatchResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Router /api/screen/batch [post]
func (h *ScreeningHandler) ScreenBatch(c *gin.Context) {
	correlationID := middleware.GetCorrelationID(c)

	var req reqdto.BatchScreenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, err,
			httperr.New(http.StatusBadRequest, usecase.CodeInvalidRequest, "Invalid request body"))
		return
	}

	out, err := h.screening.ScreenBatch(c.Request.Context(), usecase.BatchRequest{
		Credential:    middleware.ExtractCredential(c),
		Items:         req.ToItems(),
		ClientIP:      c.ClientIP(),
		CorrelationID: correlationID,
	})
	if err != nil {
		abortWithUseCaseError(c, err, h.clock.Now())
		return
	}

	middleware.SetAuthKind(c, usecase.AuthCredentialed.String())
	middleware.SetQuotaHeaders(c, out.Quota)
	c.JSON(http.StatusOK, resdto.FromBatch(out, correlationID))
}
