//go:build e2e

package e2e

import (
	"context"
	"net/http"
	"time"

	resdto "wallet-screening/internal/handler/dto/response"
	"wallet-screening/tests/common/builder"
	"wallet-screening/tests/common/httptest"

	"github.com/stretchr/testify/require"
)

func (s *SharedSuite) Admin() httptest.Headers {
	return httptest.AdminToken(AdminToken)
}

// IssueKey creates a key through the admin API and returns the plaintext secret with its record.
func (s *SharedSuite) IssueKey(tier string) (string, resdto.KeyResponse) {
	t := s.T()
	body := builder.NewCredentialBuilder().BuildIssueRequestDTO()
	body.Tier = tier

	w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/keys", body, s.Admin())
	var issued resdto.IssuedKeyResponse
	httptest.AssertSuccessResponse(t, w, http.StatusCreated, &issued)
	require.NotEmpty(t, issued.APIKey)
	return issued.APIKey, issued.KeyResponse
}

func (s *SharedSuite) LoadSanctions(chain string, addresses ...string) {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/data/sanctions/"+chain,
		map[string]any{"addresses": addresses}, s.Admin())
	httptest.AssertSuccessResponse(t, w, http.StatusOK, nil)
}

// Drain waits for the usage counters and audit rows written after a response.
func (s *SharedSuite) Drain() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(s.T(), s.Screening.Drain(ctx))
}

func (s *SharedSuite) AuditRows(authKind string) int {
	var n int
	err := s.Audit.QueryRow(context.Background(),
		"SELECT count(*) FROM screening_audit WHERE auth_kind = $1", authKind).Scan(&n)
	require.NoError(s.T(), err)
	return n
}
