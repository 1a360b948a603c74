package api

import (
	"net/http"

	reqdto "wallet-screening/internal/handler/dto/request"
	resdto "wallet-screening/internal/handler/dto/response"
	"wallet-screening/internal/handler/httperr"
	"wallet-screening/internal/pkg/clock"
	usecase "wallet-screening/internal/usecase"

	"github.com/gin-gonic/gin"
)

type SanctionsHandler struct {
	data  usecase.SanctionsDataUseCase
	clock clock.Clock
}

func NewSanctionsHandler(data usecase.SanctionsDataUseCase, clk clock.Clock) *SanctionsHandler {
	return &SanctionsHandler{data: data, clock: clk}
}

// @Summary Replace sanctions list
// @Description Replaces the sanctioned address set for one chain.
// @Tags data
// @Accept json
// @Produce json
// @Security AdminToken
// @Param chain path string true "Chain"
// @Param request body reqdto.ReplaceSanctionsRequest true "Addresses"
// @Success 200 {object} resdto.SanctionsImportResponse
// @Failure 400 {object} httperr.Response
// @Router /api/data/sanctions/{chain} [post]
func (h *SanctionsHandler) Replace(c *gin.Context) {
	var req reqdto.ReplaceSanctionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, err,
			httperr.New(http.StatusBadRequest, usecase.CodeInvalidRequest, "addresses must be a non-empty array"))
		return
	}

	out, err := h.data.Replace(c.Request.Context(), c.Param("chain"), req.Addresses)
	if err != nil {
		abortWithUseCaseError(c, err, h.clock.Now())
		return
	}
	c.JSON(http.StatusOK, resdto.FromSanctionsImport(out))
}
