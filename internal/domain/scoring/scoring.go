// Package scoring accumulates calibration answers into per-category tallies.
package scoring

import (
	"context"

	"github.com/phoenixgodbrain/neurogate/internal/domain/catalog"
	"github.com/phoenixgodbrain/neurogate/internal/domain/model"
	"github.com/phoenixgodbrain/neurogate/pkg/logger"
	"github.com/phoenixgodbrain/neurogate/pkg/metrics"
)

// PrimaryTally counts answers per base category during the primary phase.
type PrimaryTally map[model.Category]int

// SkillTally counts answers per skill slot during the skill phase.
type SkillTally map[int]int

// NewPrimaryTally creates a tally with every primary category at zero.
func NewPrimaryTally() PrimaryTally {
	t := make(PrimaryTally, 3)
	for _, c := range model.CanonicalCategories() {
		t[c] = 0
	}
	return t
}

// NewSkillTally creates a tally with every skill slot at zero.
func NewSkillTally() SkillTally {
	return SkillTally{0: 0, 1: 0, 2: 0}
}

// Sum returns the total number of recorded answers.
func (t PrimaryTally) Sum() int {
	n := 0
	for _, v := range t {
		n += v
	}
	return n
}

// Sum returns the total number of recorded answers.
func (t SkillTally) Sum() int {
	n := 0
	for _, v := range t {
		n += v
	}
	return n
}

// Clone returns an independent copy of the tally.
func (t PrimaryTally) Clone() PrimaryTally {
	c := make(PrimaryTally, len(t))
	for k, v := range t {
		c[k] = v
	}
	return c
}

// Clone returns an independent copy of the tally.
func (t SkillTally) Clone() SkillTally {
	c := make(SkillTally, len(t))
	for k, v := range t {
		c[k] = v
	}
	return c
}

// Scorer records selected options into tallies. The caller presents only the
// active question's options, but an out-of-catalog option is still guarded
// against: it is logged and ignored rather than crashing the step machine.
type Scorer struct {
	logger logger.Logger
}

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithLogger sets a custom logger for the scorer.
func WithLogger(l logger.Logger) Option {
	return func(s *Scorer) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewScorer creates a scorer with configuration options.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("scoring")
	}
	return s
}

// ScorePrimary increments the tally entry for the selected option's category.
// Returns false if the option does not belong to the question, in which case
// the tally is untouched.
func (s *Scorer) ScorePrimary(ctx context.Context, tally PrimaryTally, q catalog.Question, opt catalog.Option) bool {
	if !belongsTo(q, opt) {
		s.reject(ctx, q, opt)
		return false
	}
	tally[opt.Category]++
	metrics.RecordAnswerScored(string(catalog.PhasePrimary))
	return true
}

// ScoreSkill increments the tally entry for the selected option's skill slot.
// Returns false if the option does not belong to the question, in which case
// the tally is untouched.
func (s *Scorer) ScoreSkill(ctx context.Context, tally SkillTally, q catalog.Question, opt catalog.Option) bool {
	if !belongsTo(q, opt) {
		s.reject(ctx, q, opt)
		return false
	}
	tally[opt.SkillSlot]++
	metrics.RecordAnswerScored(string(catalog.PhaseSkill))
	return true
}

func (s *Scorer) reject(ctx context.Context, q catalog.Question, opt catalog.Option) {
	metrics.RecordAnswerRejected()
	s.logger.Warn(ctx, "ignoring option outside the active question",
		logger.Int("question", q.ID),
		logger.String("label", opt.Label),
	)
}

// belongsTo reports whether opt is one of q's three options. Options are
// value types; label identity within a question is unique in the catalog.
func belongsTo(q catalog.Question, opt catalog.Option) bool {
	for _, o := range q.Options {
		if o.Label == opt.Label {
			return true
		}
	}
	return false
}
