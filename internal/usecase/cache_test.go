//go:build unit

package usecase_test

import (
	"context"
	"testing"
	"time"

	"wallet-screening/internal/domain/screening"
	"wallet-screening/internal/infra/redisstore"
	usecase "wallet-screening/internal/usecase"
	"wallet-screening/tests/common/builder"
	"wallet-screening/tests/common/redistest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultCache(t *testing.T) {
	ctx := context.Background()

	t.Run("書き込んだ結果を読み出せ、判定ごとのTTLが付くこと", func(t *testing.T) {
		mr, rdb := redistest.New(t)
		cache := usecase.NewResultCache(redisstore.NewResultStore(rdb, redistest.DiscardLogger()), time.Second, redistest.DiscardLogger())

		sanctioned := builder.NewResultBuilder().Sanctioned().Build()
		clean := builder.NewResultBuilder().Build()
		cache.Put(ctx, sanctioned.AsCacheHit())
		cache.Put(ctx, clean)

		got, ok := cache.Get(ctx, mustAddress(t, screening.Ethereum, builder.SanctionedAddress))
		require.True(t, ok)
		if diff := cmp.Diff(sanctioned, *got); diff != "" {
			t.Errorf("Result mismatch (-want +got):\n%s", diff)
		}

		assert.Equal(t, 24*time.Hour, mr.TTL("screen:ethereum:"+builder.SanctionedAddress))
		assert.Equal(t, time.Hour, mr.TTL("screen:ethereum:"+builder.CleanAddress))

		mr.FastForward(time.Hour)
		_, ok = cache.Get(ctx, mustAddress(t, screening.Ethereum, builder.CleanAddress))
		assert.False(t, ok)
	})

	t.Run("読み出し失敗はミス扱い、書き込み失敗は無視すること", func(t *testing.T) {
		mr, rdb := redistest.New(t)
		cache := usecase.NewResultCache(redisstore.NewResultStore(rdb, redistest.DiscardLogger()), time.Second, redistest.DiscardLogger())
		mr.SetError("LOADING")

		assert.NotPanics(t, func() { cache.Put(ctx, builder.NewResultBuilder().Build()) })
		_, ok := cache.Get(ctx, mustAddress(t, screening.Ethereum, builder.CleanAddress))
		assert.False(t, ok)
	})

	t.Run("キャンセル済みのリクエストでも書き込むこと", func(t *testing.T) {
		mr, rdb := redistest.New(t)
		cache := usecase.NewResultCache(redisstore.NewResultStore(rdb, redistest.DiscardLogger()), time.Second, redistest.DiscardLogger())

		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		cache.Put(cancelled, builder.NewResultBuilder().Build())

		assert.True(t, mr.Exists("screen:ethereum:"+builder.CleanAddress))
	})
}
