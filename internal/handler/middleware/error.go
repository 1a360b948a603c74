package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"wallet-screening/internal/handler/httperr"
	usecase "wallet-screening/internal/usecase"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		// Search backward through the error stack
		for i := len(c.Errors) - 1; i >= 0; i-- {
			err := c.Errors[i]

			if err.IsType(gin.ErrorTypePublic) {
				// Public: Meta ⇒ Return as is
				if resp, ok := err.Meta.(httperr.Response); ok {
					c.JSON(resp.Status, resp)
					return
				}
			}
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}
		if len(c.Errors) > 0 {
			resp := httperr.New(http.StatusInternalServerError, usecase.CodeInternalError, "Internal server error")
			resp.CorrelationID = GetCorrelationID(c)
			c.JSON(resp.Status, resp)
		}
	}
}

func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}
				slog.Error("recovered from panic", "error", rec, "path", c.Request.URL.Path,
					"correlation_id", GetCorrelationID(c))

				resp := httperr.New(http.StatusInternalServerError, usecase.CodeInternalError, "Internal server error")
				resp.CorrelationID = GetCorrelationID(c)

				c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
			}
		}()
		c.Next()
	}
}
