package errs

import "errors"

// Domain-specific sentinel errors shared by the screening pipeline layers
var (
	// Input errors
	ErrInvalidAddress    = errors.New("invalid address format")
	ErrUnsupportedChain  = errors.New("unsupported chain")
	ErrInvalidTier       = errors.New("invalid tier")
	ErrInvalidCredential = errors.New("invalid credential format")

	// Credential errors
	ErrKeyNotFound = errors.New("api key not found")

	// Payment errors
	ErrMalformedProof = errors.New("malformed payment proof")

	// Store errors
	ErrStoreUnavailable = errors.New("store unavailable")
)
