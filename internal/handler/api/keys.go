package api

import (
	"net/http"

	reqdto "wallet-screening/internal/handler/dto/request"
	resdto "wallet-screening/internal/handler/dto/response"
	"wallet-screening/internal/handler/httperr"
	"wallet-screening/internal/pkg/errs"
	usecase "wallet-screening/internal/usecase"

	"github.com/gin-gonic/gin"
)

type KeyHandler struct {
	keys usecase.KeyUseCase
}

func NewKeyHandler(keys usecase.KeyUseCase) *KeyHandler {
	return &KeyHandler{keys: keys}
}

// @Summary Issue API key
// @Tags keys
// @Accept json
// @Produce json
// @Security AdminToken
// @Param request body reqdto.IssueKeyRequest true "Key parameters"
// @Success 201 {object} resdto.IssuedKeyResponse
// @Failure 400 {object} httperr.Response
// @Router /api/keys [post]
func (h *KeyHandler) Issue(c *gin.Context) {
	var req reqdto.IssueKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, err, httperr.New(http.StatusBadRequest, usecase.CodeInvalidRequest, "customer_id and name are required"))
		return
	}
	issued, err := h.keys.Issue(c.Request.Context(), req.ToParams())
	if err != nil {
		h.abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromIssued(issued))
}

// @Summary List API keys of a customer
// @Tags keys
// @Produce json
// @Security AdminToken
// @Param customer_id query string true "Customer ID"
// @Success 200 {array} resdto.KeyResponse
// @Router /api/keys [get]
func (h *KeyHandler) List(c *gin.Context) {
	var q reqdto.ListKeysQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, err, httperr.New(http.StatusBadRequest, usecase.CodeInvalidRequest, "customer_id is required"))
		return
	}
	recs, err := h.keys.List(c.Request.Context(), q.CustomerID)
	if err != nil {
		h.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"keys": resdto.FromRecords(recs)})
}

// @Summary Get API key
// @Tags keys
// @Produce json
// @Security AdminToken
// @Param keyId path string true "Key ID"
// @Success 200 {object} resdto.KeyResponse
// @Failure 404 {object} httperr.Response
// @Router /api/keys/{keyId} [get]
func (h *KeyHandler) Get(c *gin.Context) {
	rec, err := h.keys.Get(c.Request.Context(), c.Param("keyId"))
	if err != nil {
		h.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRecord(rec))
}

// @Summary Change API key tier
// @Tags keys
// @Accept json
// @Produce json
// @Security AdminToken
// @Param keyId path string true "Key ID"
// @Param request body reqdto.UpdateTierRequest true "Tier"
// @Success 200 {object} resdto.KeyResponse
// @Failure 404 {object} httperr.Response
// @Router /api/keys/{keyId} [patch]
func (h *KeyHandler) UpdateTier(c *gin.Context) {
	var req reqdto.UpdateTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, err, httperr.New(http.StatusBadRequest, usecase.CodeInvalidRequest, "a valid tier is required"))
		return
	}
	rec, err := h.keys.UpdateTier(c.Request.Context(), c.Param("keyId"), req.Tier, req.Limits())
	if err != nil {
		h.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRecord(rec))
}

// @Summary Revoke or delete API key
// @Description Revokes by default; permanent=true removes the record.
// @Tags keys
// @Produce json
// @Security AdminToken
// @Param keyId path string true "Key ID"
// @Param permanent query bool false "Hard delete"
// @Success 200 {object} map[string]any
// @Failure 404 {object} httperr.Response
// @Router /api/keys/{keyId} [delete]
func (h *KeyHandler) Delete(c *gin.Context) {
	keyID := c.Param("keyId")
	permanent := c.Query("permanent") == "true"

	var err error
	if permanent {
		err = h.keys.Delete(c.Request.Context(), keyID)
	} else {
		err = h.keys.Revoke(c.Request.Context(), keyID)
	}
	if err != nil {
		h.abort(c, err)
		return
	}

	action := "revoked"
	if permanent {
		action = "deleted"
	}
	c.JSON(http.StatusOK, gin.H{"key_id": keyID, "status": action})
}

func (h *KeyHandler) abort(c *gin.Context, err error) {
	switch {
	case errs.Is(err, usecase.ErrKeyNotFound):
		httperr.AbortWithError(c, err, httperr.New(http.StatusNotFound, usecase.CodeKeyNotFound, "API key not found"))
	case errs.Is(err, usecase.ErrInvalidTier), errs.Is(err, usecase.ErrInvalidLimits):
		httperr.AbortWithError(c, err, httperr.New(http.StatusBadRequest, usecase.CodeInvalidRequest, err.Error()))
	default:
		httperr.AbortWithError(c, err, httperr.New(http.StatusInternalServerError, usecase.CodeInternalError, "Internal server error"))
	}
}
