package usecase

import (
	"wallet-screening/internal/domain/credential"
	"wallet-screening/internal/domain/payment"
)

type AuthKind int

const (
	AuthAnonymous AuthKind = iota
	AuthCredentialed
	AuthPaid
)

func (k AuthKind) String() string {
	switch k {
	case AuthCredentialed:
		return "credentialed"
	case AuthPaid:
		return "paid"
	default:
		return "anonymous"
	}
}

// AuthContext records how a request was authorized. Exactly one of the
// constructors below produces each variant.
type AuthContext struct {
	kind     AuthKind
	record   *credential.Record
	payment  payment.Verification
	clientIP string
}

func Credentialed(rec *credential.Record, clientIP string) AuthContext {
	return AuthContext{kind: AuthCredentialed, record: rec, clientIP: clientIP}
}

func Paid(v payment.Verification, clientIP string) AuthContext {
	return AuthContext{kind: AuthPaid, payment: v, clientIP: clientIP}
}

func Anonymous(clientIP string) AuthContext {
	return AuthContext{kind: AuthAnonymous, clientIP: clientIP}
}

func (a AuthContext) Kind() AuthKind {
	return a.kind
}

// Record is non-nil only for credentialed requests.
func (a AuthContext) Record() *credential.Record {
	return a.record
}

func (a AuthContext) Payment() (payment.Verification, bool) {
	return a.payment, a.kind == AuthPaid
}

func (a AuthContext) ClientIP() string {
	return a.clientIP
}

// HasAccess reports whether the request may reach the screening step.
func (a AuthContext) HasAccess() bool {
	return a.kind == AuthCredentialed || a.kind == AuthPaid
}

// QuotaIdentifier is the counter subject: the key id when credentialed, otherwise the client IP.
func (a AuthContext) QuotaIdentifier() string {
	if a.kind == AuthCredentialed {
		return "key:" + a.record.KeyID
	}
	return "ip:" + a.clientIP
}

func (a AuthContext) KeyID() string {
	if a.record == nil {
		return ""
	}
	return a.record.KeyID
}
