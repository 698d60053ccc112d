package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores, clocks and sequencers
// return these (optionally wrapped) so services can translate them into
// domain errors.
//
// These represent factual states, not validation failures:
// - ErrNotFound: presentation does not exist in the registry
// - ErrConflict: a presentation with the same ID is already registered
// - ErrInvalidState: the trigger is not accepted in the current phase
// - ErrUnavailable: the sequencer has been closed
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
