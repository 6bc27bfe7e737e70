package onboarding

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrInvalidStep rejects an action that is not legal in the current step.
	ErrInvalidStep = errors.New("action not legal in current step")
	// ErrOverlayActive rejects a trigger while an overlay or warp is pending.
	// The original trigger is untouched.
	ErrOverlayActive = errors.New("transition already active")
	// ErrTornDown rejects actions after the machine was torn down.
	ErrTornDown = errors.New("machine torn down")
)
