package core

import "errors"

var (
	// ErrProviderUnavailable wraps transport failures, non-2xx responses and
	// undecodable payloads from a flight provider.
	ErrProviderUnavailable = errors.New("flight provider unavailable")

	// ErrTemporary marks a provider failure worth retrying (429, 5xx, network).
	ErrTemporary = errors.New("temporary provider error")

	ErrCurrencyMismatch = errors.New("offers carry different currencies")

	// ErrInvalidTrip is a caller precondition violation. It is never retried.
	ErrInvalidTrip = errors.New("invalid trip")
)
