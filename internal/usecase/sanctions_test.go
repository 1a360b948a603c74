//go:build unit

package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"wallet-screening/internal/domain/quota"
	"wallet-screening/internal/domain/screening"
	"wallet-screening/internal/infra/redisstore"
	"wallet-screening/internal/pkg/clock"
	usecase "wallet-screening/internal/usecase"
	"wallet-screening/tests/common/builder"
	"wallet-screening/tests/common/redistest"
	usecasemock "wallet-screening/tests/mock/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func mustAddress(t *testing.T, chain screening.Chain, raw string) screening.Address {
	t.Helper()
	addr, err := screening.NewAddress(chain, raw)
	require.NoError(t, err)
	return addr
}

func TestSanctionsChecker(t *testing.T) {
	ctx := context.Background()
	mr, rdb := redistest.New(t)
	store := redisstore.NewSanctionsStore(rdb, redistest.DiscardLogger())
	require.NoError(t, store.Replace(ctx, screening.Ethereum, []string{builder.SanctionedAddress}, testNow))
	checker := usecase.NewSanctionsChecker(store, time.Second, redistest.DiscardLogger())

	t.Run("リスト掲載アドレスは大文字小文字を問わずSDN一致", func(t *testing.T) {
		m := checker.Check(ctx, mustAddress(t, screening.Ethereum, "0x"+strings.ToUpper(builder.SanctionedAddress[2:])))
		assert.True(t, m.Sanctioned)
		assert.Equal(t, screening.SourceOFAC, m.Source)
		assert.False(t, m.Degraded)
	})

	t.Run("別チェーンのリストとは独立", func(t *testing.T) {
		require.NoError(t, store.Replace(ctx, screening.Base, []string{builder.CleanAddress}, testNow))
		m := checker.Check(ctx, mustAddress(t, screening.Base, builder.SanctionedAddress))
		assert.False(t, m.Sanctioned)
	})

	t.Run("未掲載アドレスは一致なし", func(t *testing.T) {
		m := checker.Check(ctx, mustAddress(t, screening.Ethereum, builder.CleanAddress))
		assert.Equal(t, screening.Match{}, m)
	})

	t.Run("照会失敗は非該当の暫定判定", func(t *testing.T) {
		mr.SetError("LOADING")
		defer mr.SetError("")

		m := checker.Check(ctx, mustAddress(t, screening.Ethereum, builder.SanctionedAddress))
		assert.False(t, m.Sanctioned)
		assert.True(t, m.Degraded)
	})
}

func TestSanctionsChecker_ListNotLoaded(t *testing.T) {
	ctx := context.Background()

	t.Run("未読込のチェーンは非該当の暫定判定", func(t *testing.T) {
		_, rdb := redistest.New(t)
		checker := usecase.NewSanctionsChecker(redisstore.NewSanctionsStore(rdb, redistest.DiscardLogger()), time.Second, redistest.DiscardLogger())

		m := checker.Check(ctx, mustAddress(t, screening.Ethereum, builder.SanctionedAddress))
		assert.False(t, m.Sanctioned)
		assert.True(t, m.Degraded)
	})

	t.Run("未読込のチェーンの判定はキャッシュされないこと", func(t *testing.T) {
		_, rdb := redistest.New(t)
		ctrl := gomock.NewController(t)
		identity := usecasemock.NewMockIdentityResolver(ctrl)
		enforcer := usecasemock.NewMockQuotaEnforcer(ctrl)

		rec := builder.NewCredentialBuilder().BuildRecord()
		identity.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return(rec, true)
		identity.EXPECT().TouchUsage(gomock.Any(), rec.KeyID)
		enforcer.EXPECT().Check(gomock.Any(), gomock.Any(), gomock.Any()).Return(allowed())

		uc := usecase.NewScreeningUseCase(usecase.ScreeningDeps{
			Identity:  identity,
			Quota:     enforcer,
			Sanctions: usecase.NewSanctionsChecker(redisstore.NewSanctionsStore(rdb, redistest.DiscardLogger()), time.Second, redistest.DiscardLogger()),
			Cache:     usecase.NewResultCache(redisstore.NewResultStore(rdb, redistest.DiscardLogger()), time.Second, redistest.DiscardLogger()),
			Clock:     clock.NewMockClock(testNow),
			Logger:    redistest.DiscardLogger(),
		}, usecase.ScreeningSettings{Plan: quota.NewPlan(10, 100, 10), BatchMaxSize: 10})

		out, err := uc.Screen(ctx, usecase.ScreenRequest{
			Chain:      "ethereum",
			Address:    builder.SanctionedAddress,
			Credential: builder.TestSecret(1),
			ClientIP:   clientIP,
		})
		require.NoError(t, err)
		require.NoError(t, uc.Drain(ctx))
		assert.False(t, out.Result.Sanctioned)
		assert.Equal(t, screening.RiskClear, out.Result.RiskLevel)

		keys, err := rdb.Keys(ctx, "screen:*").Result()
		require.NoError(t, err)
		assert.Empty(t, keys)
	})
}

func TestSanctionsDataUseCase_Replace(t *testing.T) {
	ctx := context.Background()

	t.Run("正規化と重複排除をして不正な項目を報告すること", func(t *testing.T) {
		_, rdb := redistest.New(t)
		store := redisstore.NewSanctionsStore(rdb, redistest.DiscardLogger())
		uc := usecase.NewSanctionsDataUseCase(store, clock.NewMockClock(testNow), redistest.DiscardLogger())

		upper := "0x" + strings.ToUpper(builder.SanctionedAddress[2:])
		out, err := uc.Replace(ctx, "Base", []string{builder.SanctionedAddress, upper, " " + builder.CleanAddress + " ", "0xnope"})
		require.NoError(t, err)

		assert.Equal(t, screening.Base, out.Chain)
		assert.Equal(t, 2, out.Stored)
		assert.Equal(t, []string{"0xnope"}, out.Rejected)
		assert.Equal(t, testNow, out.SyncedAt)

		members, err := rdb.SMembers(ctx, "ofac:base").Result()
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{builder.SanctionedAddress, builder.CleanAddress}, members)

		f, err := store.Freshness(ctx, screening.Base)
		require.NoError(t, err)
		require.NotNil(t, f.LastSync)
		assert.True(t, f.LastSync.Equal(testNow))
	})

	t.Run("以前のリストを置き換えること", func(t *testing.T) {
		_, rdb := redistest.New(t)
		store := redisstore.NewSanctionsStore(rdb, redistest.DiscardLogger())
		uc := usecase.NewSanctionsDataUseCase(store, clock.NewMockClock(testNow), redistest.DiscardLogger())

		_, err := uc.Replace(ctx, "ethereum", []string{builder.SanctionedAddress})
		require.NoError(t, err)
		_, err = uc.Replace(ctx, "ethereum", []string{builder.CleanAddress})
		require.NoError(t, err)

		hit, err := store.IsMember(ctx, screening.Ethereum, builder.SanctionedAddress)
		require.NoError(t, err)
		assert.False(t, hit)
	})

	t.Run("未対応チェーンはUNSUPPORTED_CHAIN", func(t *testing.T) {
		_, rdb := redistest.New(t)
		uc := usecase.NewSanctionsDataUseCase(redisstore.NewSanctionsStore(rdb, redistest.DiscardLogger()), clock.NewMockClock(testNow), redistest.DiscardLogger())

		_, err := uc.Replace(ctx, "tron", []string{builder.SanctionedAddress})
		var invalid *usecase.InvalidInputError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, usecase.CodeUnsupportedChain, invalid.Code)
	})

	t.Run("有効な項目がなければ既存のリストを消さないこと", func(t *testing.T) {
		_, rdb := redistest.New(t)
		store := redisstore.NewSanctionsStore(rdb, redistest.DiscardLogger())
		uc := usecase.NewSanctionsDataUseCase(store, clock.NewMockClock(testNow), redistest.DiscardLogger())
		_, err := uc.Replace(ctx, "ethereum", []string{builder.SanctionedAddress})
		require.NoError(t, err)

		_, err = uc.Replace(ctx, "ethereum", []string{"garbage", "0x12"})
		var invalid *usecase.InvalidInputError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, usecase.CodeInvalidRequest, invalid.Code)

		hit, err := store.IsMember(ctx, screening.Ethereum, builder.SanctionedAddress)
		require.NoError(t, err)
		assert.True(t, hit)
	})

	t.Run("ストア障害はエラー", func(t *testing.T) {
		mr, rdb := redistest.New(t)
		mr.SetError("READONLY")
		uc := usecase.NewSanctionsDataUseCase(redisstore.NewSanctionsStore(rdb, redistest.DiscardLogger()), clock.NewMockClock(testNow), redistest.DiscardLogger())

		_, err := uc.Replace(ctx, "ethereum", []string{builder.SanctionedAddress})
		require.Error(t, err)
	})
}
