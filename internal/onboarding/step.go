// Package onboarding implements the step machine that drives a user from
// login through calibration, reveal, synthesis, the warp interlude, avatar
// building, and into the dashboard, plus the overlay orchestration that
// delays each step change behind a timed interstitial.
package onboarding

// Step is one screen of the onboarding flow. Exactly one step is current at
// any time; a pending step may exist while an overlay is displayed.
type Step string

const (
	StepPortal      Step = "PORTAL"
	StepShowcase    Step = "SHOWCASE"
	StepInitPrimary Step = "INIT_PRIMARY"
	StepReveal      Step = "REVEAL"
	StepInitSkill   Step = "INIT_SKILL"
	StepSynthesis   Step = "SYNTHESIS"
	StepWarp        Step = "WARP"
	StepBuilder     Step = "BUILDER"
	StepComplete    Step = "COMPLETE"
)

// String implements fmt.Stringer.
func (s Step) String() string { return string(s) }
