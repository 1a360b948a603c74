//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"wallet-screening/internal/domain/screening"
	"wallet-screening/internal/handler/api"
	resdto "wallet-screening/internal/handler/dto/response"
	usecase "wallet-screening/internal/usecase"
	"wallet-screening/tests/common/httptest"
	usecasemock "wallet-screening/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	age := 2 * time.Hour
	lastSync := testNow.Add(-age)

	cases := []struct {
		name       string
		report     usecase.HealthReport
		wantStatus int
	}{
		{
			name: "正常なら200",
			report: usecase.HealthReport{
				Status:    usecase.HealthHealthy,
				Timestamp: testNow,
				Version:   "1.0.0",
				Checks:    usecase.HealthChecks{Store: true, SanctionsData: true, Config: true},
				Freshness: []usecase.ChainFreshness{
					{Chain: screening.Ethereum, Present: true, Fresh: true, Age: &age, LastSync: &lastSync, TTLRemaining: 23 * time.Hour},
				},
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "劣化なら503",
			report: usecase.HealthReport{
				Status:    usecase.HealthDegraded,
				Timestamp: testNow,
				Checks:    usecase.HealthChecks{Store: true},
				Issues:    []string{"OFAC data for base is missing"},
			},
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "ストア不通なら503",
			report:     usecase.HealthReport{Status: usecase.HealthUnhealthy, Timestamp: testNow},
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockUC := usecasemock.NewMockHealthUseCase(ctrl)
			mockUC.EXPECT().Check(gomock.Any()).Return(tc.report)

			router := gin.New()
			router.GET("/health", api.NewHealthHandler(mockUC).Health)

			rec := httptest.PerformRequest(t, router, http.MethodGet, "/health", nil, nil)
			assert.Equal(t, tc.wantStatus, rec.Code)

			var body resdto.HealthResponse
			httptest.AssertSuccessResponse(t, rec, tc.wantStatus, nil)
			assert.NoError(t, httptest.DecodeResponseBody(t, rec.Body, &body))
			assert.Equal(t, tc.report.Status, body.Status)
			assert.Equal(t, "2026-03-01T12:00:00.000Z", body.Timestamp)
			assert.Equal(t, tc.report.Issues, body.Issues)
			assert.Len(t, body.DataFreshness, len(tc.report.Freshness))
		})
	}

	t.Run("鮮度の詳細を時間と秒で返すこと", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockUC := usecasemock.NewMockHealthUseCase(ctrl)
		mockUC.EXPECT().Check(gomock.Any()).Return(cases[0].report)

		router := gin.New()
		router.GET("/health", api.NewHealthHandler(mockUC).Health)

		rec := httptest.PerformRequest(t, router, http.MethodGet, "/health", nil, nil)
		var body resdto.HealthResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)

		eth, ok := body.DataFreshness["ethereum"]
		if assert.True(t, ok) {
			assert.True(t, eth.Fresh)
			assert.InDelta(t, 2.0, *eth.AgeHours, 0.001)
			assert.Equal(t, "2026-03-01T10:00:00.000Z", *eth.LastSync)
			assert.Equal(t, int64(23*3600), eth.TTLRemainingSeconds)
		}
		assert.True(t, body.Checks.Redis)
		assert.True(t, body.Checks.OFACData)
	})
}
