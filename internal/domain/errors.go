package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency. All are local,
// recoverable conditions returned to the caller; none is fatal.

var (
	// Tracking errors
	ErrActivityNotFound = errors.New("activity not found in catalog")
	ErrUnknownSession   = errors.New("session not found or not pending")
	ErrPersistence      = errors.New("persistence write failed")

	// Series errors
	ErrSeriesActive   = errors.New("a series is already active")
	ErrSeriesNotFound = errors.New("no active series")

	// Journal errors
	ErrEntryNotFound = errors.New("journal entry not found")
	ErrEmptyEntry    = errors.New("journal entry text is empty")

	// Reflection errors
	ErrReflectionUnavailable = errors.New("reflection service unavailable")
	ErrMissingAPIKey         = errors.New("reflection API key not provided")
)
