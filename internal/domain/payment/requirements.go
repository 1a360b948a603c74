package payment

import (
	"math/big"

	"github.com/shopspring/decimal"

	"wallet-screening/internal/pkg/errs"
)

type RequirementsMetadata struct {
	Service      string `json:"service"`
	Version      string `json:"version"`
	USDCDecimals int    `json:"usdcDecimals"`
}

// Requirements tell a client how to pay for one check.
type Requirements struct {
	Scheme    string               `json:"scheme"`
	Amount    string               `json:"amount"`
	Currency  string               `json:"currency"`
	Network   string               `json:"network"`
	Recipient string               `json:"recipient"`
	Metadata  RequirementsMetadata `json:"metadata"`
}

func NewRequirements(amount, network, recipient string) Requirements {
	return Requirements{
		Scheme:    SchemeERC3009,
		Amount:    amount,
		Currency:  Currency,
		Network:   network,
		Recipient: recipient,
		Metadata: RequirementsMetadata{
			Service:      "wallet-screening",
			Version:      "v1",
			USDCDecimals: USDCDecimals,
		},
	}
}

// MinorUnits converts a decimal token amount such as "0.005" into base units.
// Amounts with more precision than the token supports are rejected.
func MinorUnits(amount string, decimals int32) (*big.Int, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, errs.Wrapf(err, "parse amount %q", amount)
	}
	if d.IsNegative() {
		return nil, errs.Newf("negative amount %q", amount)
	}
	scaled := d.Shift(decimals)
	if !scaled.Equal(scaled.Truncate(0)) {
		return nil, errs.Newf("amount %q exceeds %d decimals", amount, decimals)
	}
	return scaled.BigInt(), nil
}
