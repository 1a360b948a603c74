//go:build unit

package usecase_test

import (
	"context"
	"testing"
	"time"

	"wallet-screening/internal/domain/credential"
	"wallet-screening/internal/infra/redisstore"
	"wallet-screening/internal/pkg/clock"
	usecase "wallet-screening/internal/usecase"
	"wallet-screening/tests/common/builder"
	"wallet-screening/tests/common/redistest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityResolver(t *testing.T) {
	ctx := context.Background()
	mr, rdb := redistest.New(t)
	store := redisstore.NewCredentialStore(rdb, redistest.DiscardLogger())
	clk := clock.NewMockClock(testNow)
	resolver := usecase.NewIdentityResolver(store, clk, time.Second, redistest.DiscardLogger())

	rec := builder.NewCredentialBuilder().BuildRecord()
	secret := builder.TestSecret(7)
	require.NoError(t, store.Create(ctx, *rec, credential.LookupHash(secret)))

	t.Run("登録済みのキーを解決できること", func(t *testing.T) {
		got, found := resolver.Resolve(ctx, secret)
		require.True(t, found)
		assert.Equal(t, rec.KeyID, got.KeyID)
		assert.True(t, got.Active)
	})

	t.Run("形式不正のキーはストアに問い合わせないこと", func(t *testing.T) {
		require.NoError(t, rdb.Ping(ctx).Err())
		counter := redistest.Count(rdb)

		for _, presented := range []string{"", "cw_live_short", "sk_live_" + secret[8:], secret + "0"} {
			_, found := resolver.Resolve(ctx, presented)
			assert.False(t, found, presented)
		}
		assert.Zero(t, counter.Load())
	})

	t.Run("未登録のキーは見つからない", func(t *testing.T) {
		_, found := resolver.Resolve(ctx, builder.TestSecret(8))
		assert.False(t, found)
	})

	t.Run("ストア障害も見つからない扱い", func(t *testing.T) {
		mr.SetError("LOADING")
		defer mr.SetError("")

		_, found := resolver.Resolve(ctx, secret)
		assert.False(t, found)
	})

	t.Run("利用記録を更新すること", func(t *testing.T) {
		resolver.TouchUsage(ctx, rec.KeyID)
		clk.Add(time.Minute)
		resolver.TouchUsage(ctx, rec.KeyID)

		got, err := store.Get(ctx, rec.KeyID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), got.UsageCount)
		require.NotNil(t, got.LastUsedAt)
		assert.True(t, got.LastUsedAt.Equal(testNow.Add(time.Minute)))
	})

	t.Run("利用記録の失敗は握りつぶすこと", func(t *testing.T) {
		assert.NotPanics(t, func() { resolver.TouchUsage(ctx, "key_missing") })
	})
}
