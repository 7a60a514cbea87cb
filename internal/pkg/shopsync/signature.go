package shopsync

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

// VerifySignature checks the X-Shopify-Hmac-Sha256 header against the raw
// request body. Shopify sends the base64-encoded HMAC-SHA256 digest of the
// body, keyed with the shared webhook secret. Comparison happens in constant
// time via hmac.Equal; only the length check can short-circuit.
func VerifySignature(payload []byte, signatureHeader, webhookSecret string) bool {
	sig := strings.TrimSpace(signatureHeader)
	secret := strings.TrimSpace(webhookSecret)
	if sig == "" || secret == "" {
		return false
	}

	decodedSig, err := base64.StdEncoding.DecodeString(sig)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hmac.Equal(mac.Sum(nil), decodedSig)
}

// ComputeSignature returns the base64 HMAC-SHA256 digest for a payload. Used
// by the replay tooling and tests to produce valid signatures.
func ComputeSignature(payload []byte, webhookSecret string) string {
	mac := hmac.New(sha256.New, []byte(webhookSecret))
	mac.Write(payload)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
