// Package github ingests GitHub webhook deliveries and reconciles commits and
// pull requests into issue state.
package github

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const signaturePrefix = "sha256="

// VerifySignature checks a X-Hub-Signature-256 header against the raw request
// body. The MAC must be computed over the exact bytes GitHub sent;
// re-serializing a parsed body changes key order and whitespace and so changes
// the hash. Returns false for missing or malformed signatures, never an error.
func VerifySignature(payload []byte, signature, secret string) bool {
	if !strings.HasPrefix(signature, signaturePrefix) {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	expected := signaturePrefix + hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(signature), []byte(expected))
}
