//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// ErrorBody mirrors the error envelope written by the handlers.
type ErrorBody struct {
	Error           string          `json:"error"`
	Code            string          `json:"code"`
	CorrelationID   string          `json:"correlation_id"`
	Message         string          `json:"message"`
	Chain           string          `json:"chain"`
	Address         string          `json:"address"`
	SupportedChains []string        `json:"supported_chains"`
	RetryAfter      *int64          `json:"retry_after"`
	PaymentDetails  json.RawMessage `json:"payment_details"`
	MaxBatchSize    int             `json:"max_batch_size"`
	Requested       int             `json:"requested"`
}

func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, targetStruct any) {
	t.Helper()

	if !assert.Equal(t, expectedStatus, w.Code,
		fmt.Sprintf("Expected status %d, got %d. Response: %s", expectedStatus, w.Code, w.Body.String())) {
		return
	}

	if expectedStatus >= 200 && expectedStatus < 300 && targetStruct != nil {
		err := json.Unmarshal(w.Body.Bytes(), targetStruct)
		assert.NoError(t, err, fmt.Sprintf("Failed to decode response JSON: %s", w.Body.String()))
	}
}

// AssertErrorResponse checks the status and, when given, the machine-readable code.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedCode string) ErrorBody {
	t.Helper()

	assert.Equal(t, expectedStatus, w.Code,
		fmt.Sprintf("Expected status %d, got %d. Response: %s", expectedStatus, w.Code, w.Body.String()))

	var errorResponse ErrorBody
	err := json.Unmarshal(w.Body.Bytes(), &errorResponse)
	assert.NoError(t, err, fmt.Sprintf("Failed to decode error response JSON: %s", w.Body.String()))

	if expectedCode != "" {
		assert.Equal(t, expectedCode, errorResponse.Code,
			"Response error code mismatch")
	}
	assert.NotEmpty(t, errorResponse.Error, "error message must be present")
	return errorResponse
}
