package payment

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"wallet-screening/internal/pkg/errs"
)

const (
	ProtocolVersion = 1
	SchemeERC3009   = "erc3009"
	Currency        = "USDC"
	USDCDecimals    = 6
)

var usdcContracts = map[string]string{
	"base":         "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913",
	"base-sepolia": "0x036CbD53842c5426634e7929541eC2318f3dCF7e",
	"ethereum":     "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
}

func USDCContract(network string) (string, bool) {
	addr, ok := usdcContracts[network]
	return addr, ok
}

// Authorization is an ERC-3009 transferWithAuthorization payload.
type Authorization struct {
	From        string `json:"from"`
	To          string `json:"to"`
	Value       string `json:"value"`
	ValidAfter  int64  `json:"validAfter"`
	ValidBefore int64  `json:"validBefore"`
	Nonce       string `json:"nonce"`
	V           uint8  `json:"v"`
	R           string `json:"r"`
	S           string `json:"s"`
}

type Proof struct {
	X402Version int           `json:"x402Version"`
	Scheme      string        `json:"scheme"`
	Network     string        `json:"network"`
	Payload     Authorization `json:"payload"`
}

// DecodeProof parses the base64 JSON carried in the X-PAYMENT header.
func DecodeProof(header string) (*Proof, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return nil, errs.ErrMalformedProof
	}
	raw, err := base64.StdEncoding.DecodeString(header)
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(header)
		if err != nil {
			return nil, errs.Mark(errs.Wrap(err, "decode payment header"), errs.ErrMalformedProof)
		}
	}
	var p Proof
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, errs.Mark(errs.Wrap(err, "unmarshal payment proof"), errs.ErrMalformedProof)
	}
	return &p, nil
}

// Encode is the inverse of DecodeProof; clients and tests use it to build headers.
func (p Proof) Encode() (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}
