package shopify

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// WebhookSignatureHeader carries the base64 HMAC Shopify signs webhook
// deliveries with.
const WebhookSignatureHeader = "X-Shopify-Hmac-Sha256"

// VerifyWebhookHMAC reports whether header is a valid base64-encoded
// HMAC-SHA256 of the exact raw body under secret. A missing, empty,
// undecodable or wrong-length header is false. The byte comparison is
// constant time.
func VerifyWebhookHMAC(body []byte, header, secret string) bool {
	if header == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := mac.Sum(nil)

	got, err := base64.StdEncoding.DecodeString(header)
	if err != nil {
		return false
	}

	return hmac.Equal(expected, got)
}
