package screening

import (
	"regexp"
	"strings"

	"wallet-screening/internal/pkg/errs"
)

type Chain string

const (
	Ethereum Chain = "ethereum"
	Base     Chain = "base"
)

var supportedChains = []Chain{Ethereum, Base}

var evmAddressRegex = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)

func SupportedChains() []Chain {
	out := make([]Chain, len(supportedChains))
	copy(out, supportedChains)
	return out
}

func SupportedChainNames() []string {
	out := make([]string, len(supportedChains))
	for i, c := range supportedChains {
		out[i] = string(c)
	}
	return out
}

// ParseChain accepts a chain identifier in any letter case.
func ParseChain(s string) (Chain, error) {
	c := Chain(strings.ToLower(strings.TrimSpace(s)))
	for _, supported := range supportedChains {
		if c == supported {
			return c, nil
		}
	}
	return "", errs.ErrUnsupportedChain
}

func (c Chain) String() string {
	return string(c)
}

type Address struct {
	chain Chain
	value string
}

// NewAddress validates raw against the chain's address format and stores its canonical form.
func NewAddress(chain Chain, raw string) (Address, error) {
	switch chain {
	case Ethereum, Base:
		if !evmAddressRegex.MatchString(raw) {
			return Address{}, errs.ErrInvalidAddress
		}
		return Address{chain: chain, value: strings.ToLower(raw)}, nil
	default:
		return Address{}, errs.ErrUnsupportedChain
	}
}

// NormalizeAddress is idempotent: normalizing an already normalized address returns it unchanged.
func NormalizeAddress(chain Chain, raw string) (string, error) {
	addr, err := NewAddress(chain, raw)
	if err != nil {
		return "", err
	}
	return addr.value, nil
}

func (a Address) Chain() Chain {
	return a.chain
}

func (a Address) String() string {
	return a.value
}
