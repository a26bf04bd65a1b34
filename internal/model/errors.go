package model

import "errors"

// Error kinds surfaced by the core. Callers test with errors.Is; the
// wrapped message carries the specifics.
var (
	// ErrInput marks malformed segment streams (out of order, overlapping,
	// empty). The whole source fails; no partial claims are persisted.
	ErrInput = errors.New("malformed input")

	// ErrConfig marks missing or invalid lexicons, detected at startup.
	ErrConfig = errors.New("invalid configuration")

	// ErrStore marks persistence failures. The current claim's transaction
	// rolls back; the orchestrator continues to the next claim.
	ErrStore = errors.New("store failure")
)
