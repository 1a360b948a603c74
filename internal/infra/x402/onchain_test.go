//go:build unit

package x402

import (
	"bytes"
	"context"
	"errors"
	"math/big"
	"testing"

	"wallet-screening/internal/domain/payment"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCaller struct {
	used        bool
	stateErr    error
	transferErr error
	calls       []ethereum.CallMsg
}

func (c *fakeCaller) CallContract(_ context.Context, call ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	c.calls = append(c.calls, call)
	if bytes.HasPrefix(call.Data, stateSelector()) {
		if c.stateErr != nil {
			return nil, c.stateErr
		}
		word := make([]byte, 32)
		if c.used {
			word[31] = 1
		}
		return word, nil
	}
	return nil, c.transferErr
}

func stateSelector() []byte {
	a, err := NewOnchainAuthorizer(nil, discardLogger())
	if err != nil {
		panic(err)
	}
	return a.abi.Methods["authorizationState"].ID
}

func TestOnchainAuthorizer_Consumed(t *testing.T) {
	proof := validProof()

	t.Run("USDCコントラクトに問い合わせること", func(t *testing.T) {
		caller := &fakeCaller{used: true}
		a, err := NewOnchainAuthorizer(caller, discardLogger())
		require.NoError(t, err)

		used, err := a.Consumed(context.Background(), &proof)
		require.NoError(t, err)
		assert.True(t, used)

		require.Len(t, caller.calls, 1)
		want, _ := payment.USDCContract(testNetwork)
		assert.Equal(t, common.HexToAddress(want), *caller.calls[0].To)
	})

	t.Run("未使用", func(t *testing.T) {
		a, err := NewOnchainAuthorizer(&fakeCaller{}, discardLogger())
		require.NoError(t, err)

		used, err := a.Consumed(context.Background(), &proof)
		require.NoError(t, err)
		assert.False(t, used)
	})

	t.Run("RPC障害はエラー", func(t *testing.T) {
		a, err := NewOnchainAuthorizer(&fakeCaller{stateErr: errors.New("dial tcp: refused")}, discardLogger())
		require.NoError(t, err)

		_, err = a.Consumed(context.Background(), &proof)
		require.Error(t, err)
	})
}

func TestOnchainAuthorizer_Authorize(t *testing.T) {
	proof := validProof()

	tests := []struct {
		name        string
		transferErr error
		wantValid   bool
		wantReason  payment.Reason
	}{
		{name: "シミュレーション成功", wantValid: true},
		{name: "残高不足", transferErr: errors.New("execution reverted: ERC20: transfer amount exceeds balance"), wantReason: payment.ReasonInsufficientFunds},
		{name: "使用済み", transferErr: errors.New("execution reverted: FiatTokenV2: authorization is used or canceled"), wantReason: payment.ReasonNonceUsed},
		{name: "署名不正", transferErr: errors.New("execution reverted: FiatTokenV2: invalid signature"), wantReason: payment.ReasonInvalidSignature},
		{name: "期限切れ", transferErr: errors.New("execution reverted: FiatTokenV2: authorization is expired"), wantReason: payment.ReasonExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewOnchainAuthorizer(&fakeCaller{transferErr: tt.transferErr}, discardLogger())
			require.NoError(t, err)

			got := a.Authorize(context.Background(), &proof, payment.Requirements{})
			assert.Equal(t, tt.wantValid, got.Valid)
			assert.Equal(t, tt.wantReason, got.Reason)
			if tt.wantValid {
				assert.Equal(t, testPayer, got.Payer)
			}
		})
	}

	t.Run("r/sが32バイトでなければmalformed", func(t *testing.T) {
		a, err := NewOnchainAuthorizer(&fakeCaller{}, discardLogger())
		require.NoError(t, err)
		p := validProof()
		p.Payload.R = "0x01"

		got := a.Authorize(context.Background(), &p, payment.Requirements{})
		assert.Equal(t, payment.ReasonMalformedProof, got.Reason)
	})
}
