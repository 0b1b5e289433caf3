package errors

import "errors"

var (
	// ErrSecretNotConfigured indicates the webhook shared secret is missing.
	// The pipeline fails closed: unsigned payloads are never processed.
	ErrSecretNotConfigured = errors.New("webhook secret not configured")

	// ErrSignatureMismatch indicates the signature does not match the raw body
	ErrSignatureMismatch = errors.New("webhook signature mismatch")

	// ErrMalformedPayload indicates the signed body could not be decoded
	ErrMalformedPayload = errors.New("malformed webhook payload")

	// ErrMissingEventID indicates the payload carries no provider event id
	ErrMissingEventID = errors.New("missing provider event id")

	// ErrStoreNotFound indicates the event references an unknown store
	ErrStoreNotFound = errors.New("store not found")

	// ErrOrderNotFound indicates the event references an unknown order
	ErrOrderNotFound = errors.New("order not found")

	// ErrInvalidCursor indicates a reconciliation cursor that was not issued
	// by a previous page
	ErrInvalidCursor = errors.New("invalid pagination cursor")
)
