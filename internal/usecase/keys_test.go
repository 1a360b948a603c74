//go:build unit

package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"wallet-screening/internal/domain/credential"
	"wallet-screening/internal/infra/redisstore"
	"wallet-screening/internal/pkg/clock"
	"wallet-screening/internal/pkg/errs"
	usecase "wallet-screening/internal/usecase"
	"wallet-screening/tests/common/redistest"

	"github.com/stretchr/testify/suite"
)

type KeyUseCaseTestSuite struct {
	suite.Suite
	store    *redisstore.CredentialStore
	resolver usecase.IdentityResolver
	uc       usecase.KeyUseCase
}

func TestKeyUseCaseSuite(t *testing.T) {
	suite.Run(t, new(KeyUseCaseTestSuite))
}

func (s *KeyUseCaseTestSuite) SetupTest() {
	_, rdb := redistest.New(s.T())
	s.store = redisstore.NewCredentialStore(rdb, redistest.DiscardLogger())
	clk := clock.NewMockClock(testNow)
	s.uc = usecase.NewKeyUseCase(s.store, clk, redistest.DiscardLogger())
	s.resolver = usecase.NewIdentityResolver(s.store, clk, time.Second, redistest.DiscardLogger())
}

func (s *KeyUseCaseTestSuite) issue(p usecase.IssueKeyParams) *credential.Issued {
	issued, err := s.uc.Issue(context.Background(), p)
	s.Require().NoError(err)
	return issued
}

func (s *KeyUseCaseTestSuite) TestIssue() {
	ctx := context.Background()

	s.Run("発行したキーで認証できること", func() {
		issued := s.issue(usecase.IssueKeyParams{CustomerID: "cust_1", Name: "ci"})

		s.True(strings.HasPrefix(issued.Secret, credential.SecretPrefix))
		s.True(strings.HasPrefix(issued.Record.KeyID, credential.KeyIDPrefix))
		s.Equal(credential.TierFree, issued.Record.Tier)
		s.Equal(testNow, issued.Record.CreatedAt)

		rec, found := s.resolver.Resolve(ctx, issued.Secret)
		s.Require().True(found)
		s.Equal(issued.Record.KeyID, rec.KeyID)
	})

	s.Run("ティアと独自上限を指定できること", func() {
		issued := s.issue(usecase.IssueKeyParams{
			CustomerID: "cust_1",
			Name:       "pro",
			Tier:       "PRO",
			Limits:     &credential.Limits{RequestsPerMinute: 42},
			Metadata:   map[string]string{"env": "prod"},
		})

		rec, err := s.uc.Get(ctx, issued.Record.KeyID)
		s.Require().NoError(err)
		s.Equal(credential.TierPro, rec.Tier)
		s.Equal(credential.Limits{RequestsPerMinute: 42, RequestsPerDay: 100_000}, rec.EffectiveLimits())
		s.Equal("prod", rec.Metadata["env"])
	})

	s.Run("不正なティアはErrInvalidTier", func() {
		_, err := s.uc.Issue(ctx, usecase.IssueKeyParams{CustomerID: "c", Name: "n", Tier: "platinum"})
		s.True(errs.Is(err, usecase.ErrInvalidTier))
	})

	s.Run("負の上限はErrInvalidLimits", func() {
		_, err := s.uc.Issue(ctx, usecase.IssueKeyParams{CustomerID: "c", Name: "n", Limits: &credential.Limits{RequestsPerDay: -1}})
		s.True(errs.Is(err, usecase.ErrInvalidLimits))
	})
}

func (s *KeyUseCaseTestSuite) TestList() {
	ctx := context.Background()
	a := s.issue(usecase.IssueKeyParams{CustomerID: "cust_a", Name: "1"})
	s.issue(usecase.IssueKeyParams{CustomerID: "cust_a", Name: "2"})
	s.issue(usecase.IssueKeyParams{CustomerID: "cust_b", Name: "3"})

	recs, err := s.uc.List(ctx, "cust_a")
	s.Require().NoError(err)
	s.Len(recs, 2)

	ids := map[string]bool{}
	for _, r := range recs {
		ids[r.KeyID] = true
	}
	s.True(ids[a.Record.KeyID])

	none, err := s.uc.List(ctx, "cust_none")
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *KeyUseCaseTestSuite) TestRevokeAndDelete() {
	ctx := context.Background()

	s.Run("無効化したキーはレコードが残り、非アクティブで解決されること", func() {
		issued := s.issue(usecase.IssueKeyParams{CustomerID: "c", Name: "n"})
		s.Require().NoError(s.uc.Revoke(ctx, issued.Record.KeyID))

		rec, found := s.resolver.Resolve(ctx, issued.Secret)
		s.Require().True(found)
		s.False(rec.Active)
	})

	s.Run("削除したキーは解決できないこと", func() {
		issued := s.issue(usecase.IssueKeyParams{CustomerID: "c", Name: "n"})
		s.Require().NoError(s.uc.Delete(ctx, issued.Record.KeyID))

		_, found := s.resolver.Resolve(ctx, issued.Secret)
		s.False(found)
		_, err := s.uc.Get(ctx, issued.Record.KeyID)
		s.True(errs.Is(err, usecase.ErrKeyNotFound))
	})

	s.Run("存在しないキーはErrKeyNotFound", func() {
		s.True(errs.Is(s.uc.Revoke(ctx, "key_missing"), usecase.ErrKeyNotFound))
		s.True(errs.Is(s.uc.Delete(ctx, "key_missing"), usecase.ErrKeyNotFound))
	})
}

func (s *KeyUseCaseTestSuite) TestUpdateTier() {
	ctx := context.Background()
	issued := s.issue(usecase.IssueKeyParams{CustomerID: "c", Name: "n"})

	s.Run("ティアを変更すると上限も変わること", func() {
		rec, err := s.uc.UpdateTier(ctx, issued.Record.KeyID, "enterprise", nil)
		s.Require().NoError(err)
		s.Equal(credential.TierEnterprise, rec.Tier)
		s.Equal(credential.TierEnterprise.Limits(), rec.EffectiveLimits())
	})

	s.Run("不正なティア", func() {
		_, err := s.uc.UpdateTier(ctx, issued.Record.KeyID, "gold", nil)
		s.True(errs.Is(err, usecase.ErrInvalidTier))
	})

	s.Run("存在しないキー", func() {
		_, err := s.uc.UpdateTier(ctx, "key_missing", "pro", nil)
		s.True(errs.Is(err, usecase.ErrKeyNotFound))
	})
}
