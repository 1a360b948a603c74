package x402

import (
	"context"
	"log/slog"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"wallet-screening/internal/domain/payment"
	"wallet-screening/internal/pkg/errs"
)

const erc3009ABI = `[
  {"type":"function","name":"authorizationState","stateMutability":"view",
   "inputs":[{"name":"authorizer","type":"address"},{"name":"nonce","type":"bytes32"}],
   "outputs":[{"name":"","type":"bool"}]},
  {"type":"function","name":"transferWithAuthorization","stateMutability":"nonpayable",
   "inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"value","type":"uint256"},
             {"name":"validAfter","type":"uint256"},{"name":"validBefore","type":"uint256"},{"name":"nonce","type":"bytes32"},
             {"name":"v","type":"uint8"},{"name":"r","type":"bytes32"},{"name":"s","type":"bytes32"}],
   "outputs":[]}
]`

// ContractCaller is the subset of ethclient.Client used for read-only calls.
type ContractCaller interface {
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// OnchainAuthorizer checks proofs against the USDC contract through a JSON-RPC node.
// Authorize simulates transferWithAuthorization without broadcasting it.
type OnchainAuthorizer struct {
	caller ContractCaller
	abi    abi.ABI
	logger *slog.Logger
}

func NewOnchainAuthorizer(caller ContractCaller, logger *slog.Logger) (*OnchainAuthorizer, error) {
	parsed, err := abi.JSON(strings.NewReader(erc3009ABI))
	if err != nil {
		return nil, errs.Wrap(err, "parse erc3009 abi")
	}
	return &OnchainAuthorizer{caller: caller, abi: parsed, logger: logger}, nil
}

func (a *OnchainAuthorizer) Consumed(ctx context.Context, proof *payment.Proof) (bool, error) {
	contract, err := usdcAddress(proof.Network)
	if err != nil {
		return false, err
	}
	nonce, err := bytes32(proof.Payload.Nonce)
	if err != nil {
		return false, err
	}

	data, err := a.abi.Pack("authorizationState", common.HexToAddress(proof.Payload.From), nonce)
	if err != nil {
		return false, errs.Wrap(err, "pack authorizationState")
	}
	out, err := a.caller.CallContract(ctx, ethereum.CallMsg{To: &contract, Data: data}, nil)
	if err != nil {
		return false, errs.Wrap(err, "call authorizationState")
	}
	vals, err := a.abi.Unpack("authorizationState", out)
	if err != nil {
		return false, errs.Wrap(err, "unpack authorizationState")
	}
	if len(vals) != 1 {
		return false, errs.Newf("authorizationState returned %d values", len(vals))
	}
	used, ok := vals[0].(bool)
	if !ok {
		return false, errs.New("authorizationState returned a non-bool value")
	}
	return used, nil
}

func (a *OnchainAuthorizer) Authorize(ctx context.Context, proof *payment.Proof, _ payment.Requirements) payment.Verification {
	contract, err := usdcAddress(proof.Network)
	if err != nil {
		return payment.Reject(payment.ReasonUnsupportedNetwork)
	}
	data, err := a.packTransfer(proof.Payload)
	if err != nil {
		return payment.Reject(payment.ReasonMalformedProof)
	}

	_, err = a.caller.CallContract(ctx, ethereum.CallMsg{To: &contract, Data: data}, nil)
	if err != nil {
		reason := classifyRevert(err)
		a.logger.InfoContext(ctx, "transferWithAuthorization simulation failed",
			slog.String("reason", string(reason)),
			slog.String("error", err.Error()))
		return payment.Reject(reason)
	}
	return payment.Accept(strings.ToLower(proof.Payload.From))
}

func (a *OnchainAuthorizer) packTransfer(auth payment.Authorization) ([]byte, error) {
	value, ok := new(big.Int).SetString(auth.Value, 0)
	if !ok {
		return nil, errs.New("invalid value")
	}
	nonce, err := bytes32(auth.Nonce)
	if err != nil {
		return nil, err
	}
	r, err := bytes32(auth.R)
	if err != nil {
		return nil, err
	}
	s, err := bytes32(auth.S)
	if err != nil {
		return nil, err
	}
	return a.abi.Pack("transferWithAuthorization",
		common.HexToAddress(auth.From),
		common.HexToAddress(auth.To),
		value,
		big.NewInt(auth.ValidAfter),
		big.NewInt(auth.ValidBefore),
		nonce,
		auth.V,
		r,
		s,
	)
}

// classifyRevert maps FiatToken revert strings onto verification reasons.
func classifyRevert(err error) payment.Reason {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "authorization is used"), strings.Contains(msg, "already used"):
		return payment.ReasonNonceUsed
	case strings.Contains(msg, "exceeds balance"), strings.Contains(msg, "insufficient"):
		return payment.ReasonInsufficientFunds
	case strings.Contains(msg, "not yet valid"):
		return payment.ReasonNotYetValid
	case strings.Contains(msg, "authorization is expired"):
		return payment.ReasonExpired
	default:
		return payment.ReasonInvalidSignature
	}
}

func usdcAddress(network string) (common.Address, error) {
	addr, ok := payment.USDCContract(network)
	if !ok {
		return common.Address{}, errs.Newf("no USDC contract for network %q", network)
	}
	return common.HexToAddress(addr), nil
}

func bytes32(s string) ([32]byte, error) {
	var out [32]byte
	b, err := hexutil.Decode(s)
	if err != nil {
		return out, errs.Wrap(err, "decode bytes32")
	}
	if len(b) != 32 {
		return out, errs.Newf("expected 32 bytes, got %d", len(b))
	}
	copy(out[:], b)
	return out, nil
}
