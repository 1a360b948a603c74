//go:build unit

package screening_test

import (
	"strings"
	"testing"
	"time"

	"wallet-screening/internal/domain/screening"
	"wallet-screening/internal/pkg/errs"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	checksummed = "0x7F367cC41522cE07553e823bf3be79A889DEbe1B"
	lowered     = "0x7f367cc41522ce07553e823bf3be79a889debe1b"
)

func TestParseChain(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  screening.Chain
		errIs error
	}{
		{name: "ethereum OK", input: "ethereum", want: screening.Ethereum},
		{name: "base OK", input: "base", want: screening.Base},
		{name: "大文字混在OK", input: "Ethereum", want: screening.Ethereum},
		{name: "前後の空白OK", input: " base ", want: screening.Base},
		{name: "未対応チェーンNG", input: "solana", errIs: errs.ErrUnsupportedChain},
		{name: "空文字NG", input: "", errIs: errs.ErrUnsupportedChain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := screening.ParseChain(tt.input)
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSupportedChains(t *testing.T) {
	t.Run("コピーを返すこと", func(t *testing.T) {
		chains := screening.SupportedChains()
		chains[0] = "mutated"
		assert.Equal(t, []string{"ethereum", "base"}, screening.SupportedChainNames())
	})
}

func TestNewAddress(t *testing.T) {
	t.Run("小文字に正規化されること", func(t *testing.T) {
		addr, err := screening.NewAddress(screening.Ethereum, checksummed)
		require.NoError(t, err)
		assert.Equal(t, lowered, addr.String())
		assert.Equal(t, screening.Ethereum, addr.Chain())
	})

	t.Run("正規化は冪等であること", func(t *testing.T) {
		once, err := screening.NormalizeAddress(screening.Base, checksummed)
		require.NoError(t, err)
		twice, err := screening.NormalizeAddress(screening.Base, once)
		require.NoError(t, err)
		assert.Equal(t, once, twice)
	})

	invalid := []struct {
		name string
		raw  string
	}{
		{name: "0xなしNG", raw: strings.TrimPrefix(lowered, "0x")},
		{name: "39桁NG", raw: lowered[:41]},
		{name: "41桁NG", raw: lowered + "a"},
		{name: "16進以外の文字NG", raw: "0x" + strings.Repeat("g", 40)},
		{name: "空文字NG", raw: ""},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := screening.NewAddress(screening.Ethereum, tt.raw)
			require.ErrorIs(t, err, errs.ErrInvalidAddress)
		})
	}

	t.Run("未対応チェーンNG", func(t *testing.T) {
		_, err := screening.NewAddress(screening.Chain("solana"), lowered)
		require.ErrorIs(t, err, errs.ErrUnsupportedChain)
	})
}

func TestAssess(t *testing.T) {
	t.Run("シグナルなしはclear", func(t *testing.T) {
		got := screening.Assess(screening.Signals{})
		assert.Equal(t, screening.RiskClear, got.Level)
		assert.NotNil(t, got.Flags)
		assert.Empty(t, got.Flags)
	})

	t.Run("制裁対象はhighとofac_sdn_list", func(t *testing.T) {
		got := screening.Assess(screening.Signals{Sanctioned: true})
		assert.Equal(t, screening.RiskHigh, got.Level)
		assert.Equal(t, []string{screening.FlagOFACSDNList}, got.Flags)
	})

	t.Run("リスクレベルの順序", func(t *testing.T) {
		assert.True(t, screening.RiskHigh.AtLeast(screening.RiskMedium))
		assert.True(t, screening.RiskLow.AtLeast(screening.RiskLow))
		assert.False(t, screening.RiskClear.AtLeast(screening.RiskLow))
	})
}

func TestNewResult(t *testing.T) {
	addr, err := screening.NewAddress(screening.Ethereum, checksummed)
	require.NoError(t, err)
	checkedAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.FixedZone("JST", 9*60*60))

	t.Run("制裁対象の結果", func(t *testing.T) {
		got := screening.NewResult(addr, screening.SDNMatch(), checkedAt)

		want := screening.Result{
			Address:    lowered,
			Chain:      screening.Ethereum,
			Sanctioned: true,
			RiskLevel:  screening.RiskHigh,
			Flags:      []string{screening.FlagOFACSDNList},
			CheckedAt:  checkedAt.UTC(),
			Sources:    []string{screening.SourceOFAC},
			Details:    screening.SDNMatch().Details,
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Result mismatch (-want +got):\n%s", diff)
		}
		assert.Equal(t, screening.SanctionedTTL, got.CacheTTL())
	})

	t.Run("クリアな結果は詳細を持たない", func(t *testing.T) {
		got := screening.NewResult(addr, screening.Match{Details: &screening.Details{List: "ignored"}}, checkedAt)

		assert.False(t, got.Sanctioned)
		assert.Equal(t, screening.RiskClear, got.RiskLevel)
		assert.Nil(t, got.Details)
		assert.Equal(t, screening.ClearTTL, got.CacheTTL())
		if diff := cmp.Diff([]string{}, got.Flags, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("Flags mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("AsCacheHitは元の値を変更しない", func(t *testing.T) {
		orig := screening.NewResult(addr, screening.Match{}, checkedAt)
		hit := orig.AsCacheHit()
		assert.True(t, hit.CacheHit)
		assert.False(t, orig.CacheHit)
	})
}

func TestFreshness(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	synced := now.Add(-2 * time.Hour)

	tests := []struct {
		name      string
		freshness screening.Freshness
		want      bool
	}{
		{name: "同期直後はfresh", freshness: screening.Freshness{Present: true, LastSync: &synced}, want: true},
		{name: "データなしはstale", freshness: screening.Freshness{Present: false, LastSync: &synced}, want: false},
		{name: "同期時刻なしはstale", freshness: screening.Freshness{Present: true}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.freshness.IsFresh(now, 24*time.Hour))
		})
	}

	t.Run("しきい値を超えるとstale", func(t *testing.T) {
		f := screening.Freshness{Present: true, LastSync: &synced}
		assert.False(t, f.IsFresh(now, time.Hour))
		age, ok := f.Age(now)
		require.True(t, ok)
		assert.Equal(t, 2*time.Hour, age)
	})
}
