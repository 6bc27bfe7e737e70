package onboarding

import (
	"context"
	"sync"
	"time"

	"github.com/phoenixgodbrain/neurogate/internal/domain/model"
	"github.com/phoenixgodbrain/neurogate/pkg/logger"
	"github.com/phoenixgodbrain/neurogate/pkg/metrics"
)

// Default interstitial durations, matching the reference client.
const (
	defaultOverlayDuration = 2800 * time.Millisecond
	defaultWarpDuration    = 3500 * time.Millisecond
	defaultEventBuffer     = 16
)

// Machine is the onboarding step state machine. The current and pending step
// are mutated only by the trigger/completeOverlay pair; user actions enqueue
// a Transition and the overlay timer commits it. All methods are safe for
// concurrent use.
type Machine struct {
	mu sync.Mutex

	current Step
	pending *Transition
	timer   Timer
	torn    bool

	overlayDuration time.Duration
	warpDuration    time.Duration

	clock  Clock
	logger logger.Logger
	events chan StepChange
}

// Option applies a configuration option to the Machine.
type Option func(*Machine)

// WithClock sets the timer source, used by tests for deterministic overlays.
func WithClock(c Clock) Option {
	return func(m *Machine) {
		if c != nil {
			m.clock = c
		}
	}
}

// WithLogger sets a custom logger for the machine.
func WithLogger(l logger.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithOverlayDuration sets the narration overlay display time.
func WithOverlayDuration(d time.Duration) Option {
	return func(m *Machine) {
		if d > 0 {
			m.overlayDuration = d
		}
	}
}

// WithWarpDuration sets the warp interlude display time.
func WithWarpDuration(d time.Duration) Option {
	return func(m *Machine) {
		if d > 0 {
			m.warpDuration = d
		}
	}
}

// New creates a machine positioned at the portal.
func New(opts ...Option) *Machine {
	m := &Machine{
		current:         StepPortal,
		overlayDuration: defaultOverlayDuration,
		warpDuration:    defaultWarpDuration,
		clock:           NewClock(),
		events:          make(chan StepChange, defaultEventBuffer),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = logger.Get().Named("onboarding")
	}
	return m
}

// Current returns the current step.
func (m *Machine) Current() Step {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Pending returns the transition awaiting its timer, if any.
func (m *Machine) Pending() (Transition, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pending == nil {
		return Transition{}, false
	}
	return *m.pending, true
}

// OverlayActive reports whether an overlay or warp is currently displayed.
func (m *Machine) OverlayActive() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending != nil
}

// Events returns the step-change channel. Slow consumers drop events rather
// than blocking the machine.
func (m *Machine) Events() <-chan StepChange {
	return m.events
}

// Restore positions the machine from persisted state. A valid session with a
// saved path lands on COMPLETE, a session without a path on SHOWCASE, and no
// session (or a forced reset) on PORTAL. Running it again yields the same
// landing step.
func (m *Machine) Restore(ctx context.Context, hasSession, hasPath, forcePortal bool) Step {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cancelPendingLocked()

	switch {
	case forcePortal:
		m.current = StepPortal
	case hasSession && hasPath:
		m.current = StepComplete
	case hasSession:
		m.current = StepShowcase
	default:
		m.current = StepPortal
	}

	metrics.RecordRestore(string(m.current))
	m.logger.Debug(ctx, "restored step machine",
		logger.String("step", string(m.current)),
		logger.Bool("forced", forcePortal),
	)
	return m.current
}

// Login leaves the portal for the showcase behind the warp interlude. The
// session side effects (record creation, admin entitlement) belong to the
// caller.
func (m *Machine) Login(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.requireLocked(StepPortal); err != nil {
		return err
	}
	return m.triggerLocked(ctx, Transition{
		Target:   StepShowcase,
		Kind:     KindWarp,
		Color:    "cyan",
		Duration: m.warpDuration,
	})
}

// AdminLogin short-circuits onboarding for a privileged identity: the portal
// leads straight to the dashboard behind the recognition overlay. This is a
// deliberate shortcut edge; a privileged identity never takes the warp to
// the showcase the way Login does. The caller commits the blended path and
// premium entitlement.
func (m *Machine) AdminLogin(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.requireLocked(StepPortal); err != nil {
		return err
	}
	title, lines := phoenixScript()
	return m.triggerLocked(ctx, Transition{
		Target:   StepComplete,
		Kind:     KindNarration,
		Title:    title,
		Lines:    lines,
		Duration: m.overlayDuration,
	})
}

// BeginCalibration starts the primary question phase from the showcase.
func (m *Machine) BeginCalibration(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.requireLocked(StepShowcase); err != nil {
		return err
	}
	title, lines := calibrationScript()
	return m.triggerLocked(ctx, Transition{
		Target:   StepInitPrimary,
		Kind:     KindNarration,
		Title:    title,
		Lines:    lines,
		Duration: m.overlayDuration,
	})
}

// ManualSelect bypasses calibration entirely: the showcase lets a user pick
// an archetype directly and jump to the builder.
func (m *Machine) ManualSelect(ctx context.Context, a model.Archetype, skill string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.requireLocked(StepShowcase); err != nil {
		return err
	}
	title, lines := manualProtocolScript(a, skill)
	return m.triggerLocked(ctx, Transition{
		Target:   StepBuilder,
		Kind:     KindNarration,
		Title:    title,
		Lines:    lines,
		Duration: m.overlayDuration,
	})
}

// CompletePrimary moves from the primary phase to the reveal once all ten
// questions are answered.
func (m *Machine) CompletePrimary(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.requireLocked(StepInitPrimary); err != nil {
		return err
	}
	title, lines := analysisScript()
	return m.triggerLocked(ctx, Transition{
		Target:   StepReveal,
		Kind:     KindNarration,
		Title:    title,
		Lines:    lines,
		Duration: m.overlayDuration,
	})
}

// AcceptArchetype commits the revealed archetype and opens the skill phase.
func (m *Machine) AcceptArchetype(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.requireLocked(StepReveal); err != nil {
		return err
	}
	title, lines := pathLockScript()
	return m.triggerLocked(ctx, Transition{
		Target:   StepInitSkill,
		Kind:     KindNarration,
		Title:    title,
		Lines:    lines,
		Duration: m.overlayDuration,
	})
}

// CompleteSkill moves from the skill phase to the synthesis screen once all
// three questions are answered.
func (m *Machine) CompleteSkill(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.requireLocked(StepInitSkill); err != nil {
		return err
	}
	title, lines := synthesisScript()
	return m.triggerLocked(ctx, Transition{
		Target:   StepSynthesis,
		Kind:     KindNarration,
		Title:    title,
		Lines:    lines,
		Duration: m.overlayDuration,
	})
}

// AcceptSynthesis leaves the synthesis screen for the builder behind the
// warp interlude, tinted with the accepted archetype's color.
func (m *Machine) AcceptSynthesis(ctx context.Context, color string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.requireLocked(StepSynthesis); err != nil {
		return err
	}
	return m.triggerLocked(ctx, Transition{
		Target:   StepBuilder,
		Kind:     KindWarp,
		Color:    color,
		Duration: m.warpDuration,
	})
}

// FinishBuilder completes the avatar and enters the dashboard.
func (m *Machine) FinishBuilder(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.requireLocked(StepBuilder); err != nil {
		return err
	}
	title, lines := uplinkScript()
	return m.triggerLocked(ctx, Transition{
		Target:   StepComplete,
		Kind:     KindNarration,
		Title:    title,
		Lines:    lines,
		Duration: m.overlayDuration,
	})
}

// EditAvatar re-enters the builder from the dashboard.
func (m *Machine) EditAvatar(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.requireLocked(StepComplete); err != nil {
		return err
	}
	title, lines := editorScript()
	return m.triggerLocked(ctx, Transition{
		Target:   StepBuilder,
		Kind:     KindNarration,
		Title:    title,
		Lines:    lines,
		Duration: m.overlayDuration,
	})
}

// Back applies the backward edge for the current step and returns the new
// step. From the showcase it lands on the portal; the caller performs the
// logout side effects. From the builder it returns to the dashboard when a
// path was already chosen this session, otherwise to the synthesis screen.
//
// Going back does not roll back calibration tallies. Previously recorded
// increments stay, so re-answering after going back counts again.
func (m *Machine) Back(ctx context.Context, pathChosen bool) (Step, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.torn {
		return m.current, ErrTornDown
	}
	if m.pending != nil {
		return m.current, ErrOverlayActive
	}

	var target Step
	switch m.current {
	case StepShowcase:
		target = StepPortal
	case StepInitPrimary:
		target = StepShowcase
	case StepReveal:
		target = StepInitPrimary
	case StepInitSkill:
		target = StepReveal
	case StepSynthesis:
		target = StepInitSkill
	case StepBuilder:
		if pathChosen {
			target = StepComplete
		} else {
			target = StepSynthesis
		}
	default:
		return m.current, ErrInvalidStep
	}

	from := m.current
	m.current = target
	metrics.RecordBackStep(string(from))
	m.emitLocked(ctx, StepChange{From: from, To: target})
	return target, nil
}

// Teardown cancels any pending overlay timer so a stale transition cannot
// apply after logout or navigation away, and stops event emission.
func (m *Machine) Teardown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelPendingLocked()
	m.torn = true
}

// requireLocked guards an action against the wrong step or teardown.
func (m *Machine) requireLocked(want Step) error {
	if m.torn {
		return ErrTornDown
	}
	if m.current != want {
		return ErrInvalidStep
	}
	return nil
}

// triggerLocked stores the pending transition and starts its timer. While a
// transition is active further triggers are ignored deterministically: the
// original pending target is untouched.
func (m *Machine) triggerLocked(ctx context.Context, t Transition) error {
	if m.pending != nil {
		metrics.RecordOverlayIgnored()
		return ErrOverlayActive
	}

	from := m.current
	m.pending = &t
	metrics.RecordOverlayTrigger(string(t.Kind))

	// The warp interlude is itself a step; narration overlays keep the
	// origin step current until the timer commits.
	if t.Kind == KindWarp {
		m.current = StepWarp
		m.emitLocked(ctx, StepChange{From: from, To: StepWarp, Via: t.Kind})
	}

	m.timer = m.clock.AfterFunc(t.Duration, m.completeOverlay)
	m.logger.Debug(ctx, "transition triggered",
		logger.String("from", string(from)),
		logger.String("target", string(t.Target)),
		logger.String("kind", string(t.Kind)),
	)
	return nil
}

// completeOverlay is invoked only by the overlay timer. It applies the
// pending target as current and clears the overlay state. Without a pending
// target it is a no-op.
func (m *Machine) completeOverlay() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.torn || m.pending == nil {
		return
	}

	t := *m.pending
	m.pending = nil
	m.timer = nil

	from := m.current
	m.current = t.Target
	metrics.RecordOverlayCompletion()
	metrics.RecordStepTransition(string(from), string(t.Target))
	m.emitLocked(context.Background(), StepChange{From: from, To: t.Target, Via: t.Kind})
}

func (m *Machine) cancelPendingLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	if m.pending != nil {
		m.pending = nil
		metrics.RecordOverlayCancel()
	}
}

// emitLocked pushes a step change without blocking; slow consumers lose
// events rather than stalling transitions.
func (m *Machine) emitLocked(ctx context.Context, ev StepChange) {
	if m.torn {
		return
	}
	select {
	case m.events <- ev:
	default:
		m.logger.Warn(ctx, "dropping step change event",
			logger.String("from", string(ev.From)),
			logger.String("to", string(ev.To)),
		)
	}
}
