package credential

import (
	"regexp"
	"time"

	"wallet-screening/internal/pkg/secret"
)

const (
	SecretPrefix = "cw_live_"
	KeyIDPrefix  = "key_"
)

var secretRegex = regexp.MustCompile(`^cw_live_[0-9a-f]{48}$`)

// Record is the stored state of an API key. The secret itself is never part of it.
type Record struct {
	KeyID      string
	CustomerID string
	Name       string
	Tier       Tier
	CreatedAt  time.Time
	LastUsedAt *time.Time
	UsageCount int64
	Active     bool
	// Limits overrides the tier defaults when either field is positive.
	Limits   Limits
	Metadata map[string]string
}

func (r Record) EffectiveLimits() Limits {
	limits := r.Tier.Limits()
	if r.Limits.RequestsPerMinute > 0 {
		limits.RequestsPerMinute = r.Limits.RequestsPerMinute
	}
	if r.Limits.RequestsPerDay > 0 {
		limits.RequestsPerDay = r.Limits.RequestsPerDay
	}
	return limits
}

// Issued is returned exactly once, when a key is created.
type Issued struct {
	Record Record
	Secret string
}

func IsValidSecretFormat(s string) bool {
	return secretRegex.MatchString(s)
}

func GenerateSecret() (string, error) {
	h, err := secret.RandomHex(24)
	if err != nil {
		return "", err
	}
	return SecretPrefix + h, nil
}

func GenerateKeyID() (string, error) {
	h, err := secret.RandomHex(12)
	if err != nil {
		return "", err
	}
	return KeyIDPrefix + h, nil
}

// LookupHash is the store index for a presented secret.
func LookupHash(s string) string {
	return secret.Digest(s)
}

// Mask keeps the prefix and the last three characters so operators can recognise a key.
func Mask(s string) string {
	if len(s) < 14 {
		return "***"
	}
	return s[:11] + "..." + s[len(s)-3:]
}
