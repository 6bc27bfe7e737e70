package onboarding

import "time"

// TransitionKind distinguishes the two interstitial styles.
type TransitionKind string

const (
	// KindNarration is the timed overlay showing a title and narration lines.
	KindNarration TransitionKind = "narration"
	// KindWarp is the longer cinematic interlude carrying a color tag.
	KindWarp TransitionKind = "warp"
)

// Transition describes a pending step change and the interstitial shown
// while it is pending. Ephemeral: created when a transition is triggered and
// discarded once the overlay completes.
type Transition struct {
	Target   Step
	Kind     TransitionKind
	Title    string
	Lines    []string
	Color    string
	Duration time.Duration
}

// StepChange is emitted on the machine's event channel after a step commits.
// Narration and animation subscribers react to these independently; the
// machine itself has no audio or rendering dependencies.
type StepChange struct {
	From Step
	To   Step
	Via  TransitionKind
}
