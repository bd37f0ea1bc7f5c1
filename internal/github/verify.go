package github

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// VerifySignature validates a GitHub webhook signature. The digest must be
// computed over the exact bytes received on the wire; re-serializing the JSON
// first would change whitespace and key order and break the signature.
func VerifySignature(body []byte, signature, secret string) bool {
	// Secret is required for security - no bypass allowed
	if secret == "" {
		return false
	}

	if !strings.HasPrefix(signature, "sha256=") {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := "sha256=" + hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(signature), []byte(expected))
}
