// Package paystack implements the provider-side webhook contract: HMAC-SHA512
// signatures over the raw request body, sent in the x-paystack-signature
// header.
package paystack

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"

	domainErrors "github.com/vayva/payments-service/internal/domain/errors"
)

// Provider is the name events from this verifier are stored under
const Provider = "paystack"

// SignatureHeader is the HTTP header carrying the body signature
const SignatureHeader = "x-paystack-signature"

// VerifySignature checks the signature against the raw, unparsed body. The
// body must not be re-serialized before verification: whitespace or key
// ordering changes would invalidate the signature.
func VerifySignature(secret string, body []byte, signature string) error {
	if secret == "" {
		return domainErrors.ErrSecretNotConfigured
	}
	if signature == "" {
		return domainErrors.ErrSignatureMismatch
	}

	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return domainErrors.ErrSignatureMismatch
	}

	return nil
}

// Sign computes the signature for a body. Used by tests and by the local
// provider simulator.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
