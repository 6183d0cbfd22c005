package apperr

import "errors"

// Sentinel errors for the ordering core. Callers classify failures with
// errors.Is and decide whether the condition is user-recoverable.
var (
	// ErrValidation means the input shape or value is wrong; the user can
	// correct it and retry.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound means a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a state transition was attempted against a stale
	// expected status; re-fetch the current state and retry.
	ErrConflict = errors.New("conflicting state")

	// ErrInvalidTransition means the requested state-machine edge is illegal.
	// Never retried; surfaced and logged.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrUnavailable means an upstream data source cannot be reached.
	ErrUnavailable = errors.New("upstream unavailable")

	// ErrEmptyCart means an order submission carried no line items.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrInvalidIdentifier means a table identifier does not match the
	// recognized format.
	ErrInvalidIdentifier = errors.New("invalid table identifier")

	// ErrDecodeFailed means a scanned QR payload was not a well-formed table
	// URL. Distinct from ErrNotFound so the UI can prompt a rescan instead of
	// showing "unknown table".
	ErrDecodeFailed = errors.New("qr payload decode failed")
)
