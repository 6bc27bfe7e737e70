package service

import (
	"github.com/phoenixgodbrain/neurogate/internal/domain/archetype"
	"github.com/phoenixgodbrain/neurogate/internal/domain/catalog"
	"github.com/phoenixgodbrain/neurogate/internal/domain/model"
	"github.com/phoenixgodbrain/neurogate/internal/onboarding"
)

// OptionView is one selectable answer as shown to the user. Category and
// slot tags stay server-side.
type OptionView struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// QuestionView is the active calibration prompt.
type QuestionView struct {
	ID      int          `json:"id"`
	Text    string       `json:"text"`
	Phase   string       `json:"phase"`
	Index   int          `json:"index"`
	Total   int          `json:"total"`
	Options []OptionView `json:"options"`
}

// RevealView is the archetype display data for the reveal and synthesis
// screens.
type RevealView struct {
	Archetype   model.Archetype `json:"archetype"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Path        model.Path      `json:"path"`
	WarpColor   string          `json:"warp_color"`
	SkillName   string          `json:"skill_name,omitempty"`
}

// OverlayView describes a transition currently on screen.
type OverlayView struct {
	Kind       string   `json:"kind"`
	Title      string   `json:"title,omitempty"`
	Lines      []string `json:"lines,omitempty"`
	Color      string   `json:"color,omitempty"`
	DurationMS int64    `json:"duration_ms"`
}

// State is the full onboarding state for one session, shaped for the API.
type State struct {
	Step        onboarding.Step `json:"step"`
	Overlay     *OverlayView    `json:"overlay,omitempty"`
	Profile     *model.Profile  `json:"profile,omitempty"`
	Path        model.Path      `json:"path"`
	QueriesUsed int             `json:"queries_used"`
	IsPremium   bool            `json:"is_premium"`
	IsAuthor    bool            `json:"is_author"`
	Question    *QuestionView   `json:"question,omitempty"`
	Reveal      *RevealView     `json:"reveal,omitempty"`
}

// portalState is the state handed to anyone without a session.
func portalState() State {
	return State{Step: onboarding.StepPortal, Path: model.PathNone}
}

func questionView(phase catalog.Phase, idx int) *QuestionView {
	qs := catalog.QuestionsFor(phase)
	if idx < 0 || idx >= len(qs) {
		return nil
	}
	q := qs[idx]
	opts := make([]OptionView, 0, len(q.Options))
	for _, o := range q.Options {
		opts = append(opts, OptionView{Label: o.Label, Icon: o.Icon})
	}
	return &QuestionView{
		ID:      q.ID,
		Text:    q.Text,
		Phase:   string(q.Phase),
		Index:   idx,
		Total:   len(qs),
		Options: opts,
	}
}

func revealView(res archetype.Resolution, withSkill bool) *RevealView {
	info := catalog.InfoFor(res.Archetype)
	v := &RevealView{
		Archetype:   res.Archetype,
		Title:       info.Title,
		Description: info.Description,
		Path:        info.Path,
		WarpColor:   info.WarpColor,
	}
	if withSkill {
		v.SkillName = res.SkillName
	}
	return v
}

func overlayView(t onboarding.Transition) *OverlayView {
	return &OverlayView{
		Kind:       string(t.Kind),
		Title:      t.Title,
		Lines:      t.Lines,
		Color:      t.Color,
		DurationMS: t.Duration.Milliseconds(),
	}
}
