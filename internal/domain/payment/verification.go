package payment

type Reason string

const (
	ReasonMalformedProof          Reason = "malformed_proof"
	ReasonUnsupportedVersion      Reason = "unsupported_version"
	ReasonUnsupportedScheme       Reason = "unsupported_scheme"
	ReasonUnsupportedNetwork      Reason = "unsupported_network"
	ReasonWrongRecipient          Reason = "wrong_recipient"
	ReasonInsufficientAmount      Reason = "insufficient_amount"
	ReasonNotYetValid             Reason = "not_yet_valid"
	ReasonExpired                 Reason = "expired"
	ReasonNonceUsed               Reason = "nonce_used"
	ReasonInvalidSignature        Reason = "invalid_signature"
	ReasonInsufficientFunds       Reason = "insufficient_funds"
	ReasonFacilitatorRejected     Reason = "facilitator_rejected"
	ReasonFacilitatorUnavailable  Reason = "facilitator_unavailable"
	ReasonVerificationUnavailable Reason = "verification_unavailable"
)

// Verification is the outcome of checking one payment proof. Invalid proofs are
// values, not errors: the caller falls back to requesting payment.
type Verification struct {
	Valid  bool
	Reason Reason
	Payer  string
}

func Accept(payer string) Verification {
	return Verification{Valid: true, Payer: payer}
}

func Reject(reason Reason) Verification {
	return Verification{Reason: reason}
}
