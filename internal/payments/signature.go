package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Both trust paths share the secret and the algorithm (HMAC-SHA256); only
// the signed message differs. The widget callback signs the
// orderNumber|paymentID pair, the webhook signs the raw request body.

// WidgetSignature computes the hex signature the hosted checkout widget
// returns on completion.
func WidgetSignature(secret, orderNumber, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderNumber + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyWidgetSignature checks a client-supplied widget signature.
// An empty secret fails closed. The comparison is constant-time.
func VerifyWidgetSignature(secret, orderNumber, paymentID, supplied string) bool {
	if secret == "" {
		return false
	}
	expected := WidgetSignature(secret, orderNumber, paymentID)
	return hmac.Equal([]byte(expected), []byte(supplied))
}

// WebhookSignature computes the hex signature over a raw webhook body.
func WebhookSignature(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyWebhookSignature checks the header-supplied webhook signature
// against the raw body. An empty secret fails closed. The comparison is
// constant-time.
func VerifyWebhookSignature(secret string, body []byte, supplied string) bool {
	if secret == "" {
		return false
	}
	expected := WebhookSignature(secret, body)
	return hmac.Equal([]byte(expected), []byte(supplied))
}
