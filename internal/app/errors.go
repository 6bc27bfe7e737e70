package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotStarted       = errors.New("service not started")
	ErrInvalidLogin     = errors.New("invalid login identity")
	ErrNoSession        = errors.New("no active session")
	ErrWrongQuestion    = errors.New("answer does not match the active question")
	ErrUnknownOption    = errors.New("option not in the active question")
	ErrUnknownArchetype = errors.New("unknown archetype")
	ErrUpgradeRequired  = errors.New("free tier is limited to directives")
	ErrQueryLimit       = errors.New("free query limit reached")
	ErrCompanionOffline = errors.New("companion not configured")
)
