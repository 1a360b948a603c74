package redisstore

import (
	"strconv"
	"strings"
)

func credentialKey(keyID string) string {
	return "apikey:" + keyID
}

func credentialLookupKey(secretHash string) string {
	return "apikey:lookup:" + secretHash
}

func customerKeysKey(customerID string) string {
	return "customer:" + customerID + ":keys"
}

func sanctionsKey(chain string) string {
	return "ofac:" + chain
}

func sanctionsSyncKey(chain string) string {
	return "ofac:" + chain + ":last_sync"
}

func resultKey(chain, address string) string {
	return "screen:" + chain + ":" + strings.ToLower(address)
}

func quotaKey(policy, identifier string) string {
	return "ratelimit:" + policy + ":" + identifier
}

func fixedWindowKey(policy, identifier string, window int64) string {
	return quotaKey(policy, identifier) + ":" + strconv.FormatInt(window, 10)
}

func nonceKey(payer, nonce string) string {
	return "x402:nonce:" + strings.ToLower(payer) + ":" + strings.ToLower(nonce)
}
