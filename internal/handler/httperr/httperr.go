package httperr

import (
	"github.com/gin-gonic/gin"
)

// CorrelationIDKey is the gin context key holding the request's correlation id.
const CorrelationIDKey = "correlation_id"

// Response is the error body: {error, code, correlation_id, ...contextual fields}.
type Response struct {
	Status          int      `json:"-"`
	Error           string   `json:"error"`
	Code            string   `json:"code"`
	CorrelationID   string   `json:"correlation_id,omitempty"`
	Message         string   `json:"message,omitempty"`
	Chain           string   `json:"chain,omitempty"`
	Address         string   `json:"address,omitempty"`
	SupportedChains []string `json:"supported_chains,omitempty"`
	RetryAfter      *int64   `json:"retry_after,omitempty"`
	PaymentDetails  any      `json:"payment_details,omitempty"`
	MaxBatchSize    int      `json:"max_batch_size,omitempty"`
	Requested       int      `json:"requested,omitempty"`
}

func New(status int, code, msg string) Response {
	return Response{Status: status, Code: code, Error: msg}
}

// AbortWithError preserves the original error on the gin context for logging.
func AbortWithError(c *gin.Context, err error, resp Response) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}
	if resp.CorrelationID == "" {
		resp.CorrelationID = c.GetString(CorrelationIDKey)
	}

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(resp.Status, resp)
}
