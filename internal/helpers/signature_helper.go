package helpers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// ComputeWebhookSignature returns the hex HMAC-SHA256 of the raw request
// body under the shared webhook secret. Flutterwave sends the same value in
// the verif-hash header of every webhook delivery.
func ComputeWebhookSignature(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyWebhookSignature recomputes the signature over the raw body and
// compares it to the header value in constant time.
func VerifyWebhookSignature(secret string, body []byte, signature string) bool {
	if secret == "" || signature == "" {
		return false
	}
	expected := ComputeWebhookSignature(secret, body)
	return hmac.Equal([]byte(expected), []byte(signature))
}
