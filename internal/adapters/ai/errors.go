package ai

import "errors"

// Sentinel kinds for companion errors.
var (
	ErrNoAPIKey     = errors.New("companion API key not configured")
	ErrLaneBusy     = errors.New("session lane full")
	ErrDispatchDown = errors.New("dispatcher closed")
)
