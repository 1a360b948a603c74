//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"wallet-screening/internal/domain/credential"
	"wallet-screening/internal/handler/api"
	reqdto "wallet-screening/internal/handler/dto/request"
	resdto "wallet-screening/internal/handler/dto/response"
	"wallet-screening/internal/handler/middleware"
	"wallet-screening/internal/pkg/errs"
	usecase "wallet-screening/internal/usecase"
	"wallet-screening/tests/common/builder"
	"wallet-screening/tests/common/httptest"
	"wallet-screening/tests/common/testutil"
	usecasemock "wallet-screening/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type KeyHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	mockCtrl *gomock.Controller
	mockUC   *usecasemock.MockKeyUseCase
}

func (s *KeyHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	reqdto.RegisterValidators()
	s.router = gin.New()
	s.router.Use(middleware.Correlation(), middleware.ErrorHandler())

	s.mockCtrl = gomock.NewController(s.T())
	s.mockUC = usecasemock.NewMockKeyUseCase(s.mockCtrl)
	h := api.NewKeyHandler(s.mockUC)

	s.router.POST("/api/keys", h.Issue)
	s.router.GET("/api/keys", h.List)
	s.router.GET("/api/keys/:keyId", h.Get)
	s.router.PATCH("/api/keys/:keyId", h.UpdateTier)
	s.router.DELETE("/api/keys/:keyId", h.Delete)
}

func (s *KeyHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestKeyHandlerSuite(t *testing.T) {
	suite.Run(t, new(KeyHandlerTestSuite))
}

type testCaseKey struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestIssue
// ================================================================================

func (s *KeyHandlerTestSuite) TestIssue() {
	url := "/api/keys"
	reqBody := builder.NewCredentialBuilder().BuildIssueRequestDTO()
	secret := builder.TestSecret(5)
	issued := builder.NewCredentialBuilder().BuildIssued(secret)

	s.Run("成功: 201で平文キーを一度だけ返すこと", func() {
		s.mockUC.EXPECT().Issue(gomock.Any(), reqBody.ToParams()).Return(issued, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, nil)
		var body resdto.IssuedKeyResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(secret, body.APIKey)
		s.Equal(credential.Mask(secret), body.APIKeyMasked)
		s.Equal(issued.Record.KeyID, body.KeyID)
		s.Equal("starter", body.Tier)
		s.True(body.Active)
		s.Equal(int64(100), body.RateLimits.RequestsPerMinute)
		s.Equal("2026-03-01T00:00:00.000Z", body.CreatedAt)
	})

	s.Run("エラー: 400 バリデーション", func() {
		cases := []testCaseKey{
			{name: "customer_id欠落", mutate: testutil.Field("customer_id", nil), expectCode: http.StatusBadRequest},
			{name: "name欠落", mutate: testutil.Field("name", nil), expectCode: http.StatusBadRequest},
			{name: "name長すぎ", mutate: testutil.Field("name", strings.Repeat("a", 257)), expectCode: http.StatusBadRequest},
			{name: "未知のティア", mutate: testutil.Field("tier", "platinum"), expectCode: http.StatusBadRequest},
			{name: "上限が0", mutate: testutil.Field("rate_limits", map[string]any{"requests_per_minute": 0, "requests_per_day": -1}), expectCode: http.StatusBadRequest},
			{name: "ティア省略はOK", mutate: testutil.Field("tier", nil), expectCode: http.StatusCreated},
			{name: "大文字のティアもOK", mutate: testutil.Field("tier", "PRO"), expectCode: http.StatusCreated},
		}

		for _, tc := range cases {
			s.Run(tc.name, func() {
				if tc.expectCode == http.StatusCreated {
					s.mockUC.EXPECT().Issue(gomock.Any(), gomock.Any()).Return(issued, nil)
				}
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, testutil.DtoMap(s.T(), reqBody, tc.mutate), nil)
				if tc.expectCode == http.StatusCreated {
					httptest.AssertSuccessResponse(s.T(), rec, tc.expectCode, nil)
				} else {
					httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, usecase.CodeInvalidRequest)
				}
			})
		}
	})

	s.Run("エラー: ユースケースのエラー", func() {
		s.mockUC.EXPECT().Issue(gomock.Any(), gomock.Any()).Return(nil, errors.New("redis down"))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, usecase.CodeInternalError)
	})
}

// ================================================================================
// TestList / TestGet
// ================================================================================

func (s *KeyHandlerTestSuite) TestList() {
	s.Run("成功: 顧客のキー一覧", func() {
		recs := []*credential.Record{builder.NewCredentialBuilder().BuildRecord()}
		s.mockUC.EXPECT().List(gomock.Any(), "cust_1").Return(recs, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/keys?customer_id=cust_1", nil, nil)
		var body struct {
			Keys []resdto.KeyResponse `json:"keys"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body.Keys, 1)
		s.Equal(recs[0].KeyID, body.Keys[0].KeyID)
	})

	s.Run("エラー: customer_idなしは400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/keys", nil, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, usecase.CodeInvalidRequest)
	})
}

func (s *KeyHandlerTestSuite) TestGet() {
	s.Run("成功", func() {
		r := builder.NewCredentialBuilder().BuildRecord()
		s.mockUC.EXPECT().Get(gomock.Any(), r.KeyID).Return(r, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/keys/"+r.KeyID, nil, nil)
		var body resdto.KeyResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(r.CustomerID, body.CustomerID)
		s.Nil(body.LastUsedAt)
	})

	s.Run("エラー: 存在しないキーは404", func() {
		s.mockUC.EXPECT().Get(gomock.Any(), "key_missing").Return(nil, errs.Mark(errors.New("not found"), usecase.ErrKeyNotFound))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/keys/key_missing", nil, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, usecase.CodeKeyNotFound)
	})
}

// ================================================================================
// TestUpdateTier / TestDelete
// ================================================================================

func (s *KeyHandlerTestSuite) TestUpdateTier() {
	s.Run("成功: 独自上限付き", func() {
		r := builder.NewCredentialBuilder().With(func(b *builder.CredentialBuilder) { b.Tier = credential.TierPro }).BuildRecord()
		s.mockUC.EXPECT().UpdateTier(gomock.Any(), r.KeyID, "pro", &credential.Limits{RequestsPerMinute: 50}).Return(r, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/api/keys/"+r.KeyID,
			map[string]any{"tier": "pro", "rate_limits": map[string]any{"requests_per_minute": 50}}, nil)
		var body resdto.KeyResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("pro", body.Tier)
	})

	s.Run("エラー: ティアなしは400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/api/keys/key_1", map[string]any{}, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, usecase.CodeInvalidRequest)
	})

	s.Run("エラー: 存在しないキーは404", func() {
		s.mockUC.EXPECT().UpdateTier(gomock.Any(), "key_missing", "pro", gomock.Nil()).
			Return(nil, errs.Mark(errors.New("not found"), usecase.ErrKeyNotFound))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/api/keys/key_missing", map[string]any{"tier": "pro"}, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, usecase.CodeKeyNotFound)
	})
}

func (s *KeyHandlerTestSuite) TestDelete() {
	s.Run("既定は無効化", func() {
		s.mockUC.EXPECT().Revoke(gomock.Any(), "key_1").Return(nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/api/keys/key_1", nil, nil)
		var body map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("revoked", body["status"])
	})

	s.Run("permanent=trueで削除", func() {
		s.mockUC.EXPECT().Delete(gomock.Any(), "key_1").Return(nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/api/keys/key_1?permanent=true", nil, nil)
		var body map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("deleted", body["status"])
		s.Equal("key_1", body["key_id"])
	})

	s.Run("エラー: 存在しないキーは404", func() {
		s.mockUC.EXPECT().Revoke(gomock.Any(), "key_missing").Return(errs.Mark(errors.New("not found"), usecase.ErrKeyNotFound))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/api/keys/key_missing", nil, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, usecase.CodeKeyNotFound)
	})
}
