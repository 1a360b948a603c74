//go:build unit

package credential_test

import (
	"strings"
	"testing"

	"wallet-screening/internal/domain/credential"
	"wallet-screening/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTier(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  credential.Tier
		limit credential.Limits
		errIs error
	}{
		{name: "free", input: "free", want: credential.TierFree, limit: credential.Limits{RequestsPerMinute: 10, RequestsPerDay: 100}},
		{name: "starter", input: "starter", want: credential.TierStarter, limit: credential.Limits{RequestsPerMinute: 100, RequestsPerDay: 10_000}},
		{name: "pro", input: "PRO", want: credential.TierPro, limit: credential.Limits{RequestsPerMinute: 500, RequestsPerDay: 100_000}},
		{name: "enterprise", input: "enterprise", want: credential.TierEnterprise, limit: credential.Limits{RequestsPerMinute: 2_000, RequestsPerDay: 1_000_000}},
		{name: "未知のティアNG", input: "platinum", errIs: errs.ErrInvalidTier},
		{name: "空文字NG", input: "", errIs: errs.ErrInvalidTier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := credential.ParseTier(tt.input)
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Valid())
			assert.Equal(t, tt.limit, got.Limits())
		})
	}
}

func TestEffectiveLimits(t *testing.T) {
	t.Run("上書きなしはティアの既定値", func(t *testing.T) {
		rec := credential.Record{Tier: credential.TierStarter}
		assert.Equal(t, credential.TierStarter.Limits(), rec.EffectiveLimits())
	})

	t.Run("正の値のみ上書きされること", func(t *testing.T) {
		rec := credential.Record{
			Tier:   credential.TierStarter,
			Limits: credential.Limits{RequestsPerMinute: 7},
		}
		assert.Equal(t, credential.Limits{RequestsPerMinute: 7, RequestsPerDay: 10_000}, rec.EffectiveLimits())
	})
}

func TestSecret(t *testing.T) {
	t.Run("生成したキーは形式チェックを通ること", func(t *testing.T) {
		s, err := credential.GenerateSecret()
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(s, credential.SecretPrefix))
		assert.Len(t, s, len(credential.SecretPrefix)+48)
		assert.True(t, credential.IsValidSecretFormat(s))
	})

	t.Run("生成は毎回異なること", func(t *testing.T) {
		a, err := credential.GenerateSecret()
		require.NoError(t, err)
		b, err := credential.GenerateSecret()
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
		assert.NotEqual(t, credential.LookupHash(a), credential.LookupHash(b))
	})

	t.Run("キーIDの形式", func(t *testing.T) {
		id, err := credential.GenerateKeyID()
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(id, credential.KeyIDPrefix))
		assert.Len(t, id, len(credential.KeyIDPrefix)+24)
	})

	invalid := []struct {
		name string
		s    string
	}{
		{name: "接頭辞違いNG", s: "cw_test_" + strings.Repeat("a", 48)},
		{name: "短すぎNG", s: credential.SecretPrefix + strings.Repeat("a", 47)},
		{name: "大文字NG", s: credential.SecretPrefix + strings.Repeat("A", 48)},
		{name: "空文字NG", s: ""},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, credential.IsValidSecretFormat(tt.s))
		})
	}

	t.Run("ハッシュは決定的であること", func(t *testing.T) {
		s := credential.SecretPrefix + strings.Repeat("b", 48)
		assert.Equal(t, credential.LookupHash(s), credential.LookupHash(s))
		assert.Len(t, credential.LookupHash(s), 64)
	})
}

func TestMask(t *testing.T) {
	s := credential.SecretPrefix + strings.Repeat("0", 45) + "xyz"
	assert.Equal(t, "cw_live_000...xyz", credential.Mask(s))
	assert.Equal(t, "***", credential.Mask("short"))
}
