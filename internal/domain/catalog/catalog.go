// Package catalog holds the immutable calibration catalog: the question
// sequences for both phases, the per-archetype skill name tables, and the
// archetype display data consumed by the reveal and warp screens.
//
// Everything here is process-wide constant data. Display order is scoring
// order; questions are never shuffled.
package catalog

import (
	"github.com/phoenixgodbrain/neurogate/internal/domain/model"
)

// Phase identifies which calibration phase a question belongs to.
type Phase string

const (
	PhasePrimary Phase = "PRIMARY"
	PhaseSkill   Phase = "SKILL"
)

// Option is one selectable answer. For primary-phase questions Category is
// set; for skill-phase questions SkillSlot is set.
type Option struct {
	Label     string
	Category  model.Category
	SkillSlot int
	Icon      string
	Reaction  string
}

// Question is one calibration prompt with exactly three options.
type Question struct {
	ID      int
	Text    string
	Phase   Phase
	Options [3]Option
}

// PrimaryQuestions returns the ten archetype-phase questions in display order.
func PrimaryQuestions() []Question { return primaryQuestions }

// SkillQuestions returns the three skill-phase questions in display order.
func SkillQuestions() []Question { return skillQuestions }

// QuestionsFor returns the question sequence for a phase.
func QuestionsFor(phase Phase) []Question {
	if phase == PhaseSkill {
		return skillQuestions
	}
	return primaryQuestions
}

var primaryQuestions = []Question{
	{
		ID:    1,
		Text:  "Let's start simple. When you look at the stars, what is the first thought that enters your mind?",
		Phase: PhasePrimary,
		Options: [3]Option{
			{Label: "It looks like a giant machine.", Category: model.CategoryScientist, Icon: "🧬", Reaction: "A mechanic of the cosmos. Efficient."},
			{Label: "It looks like a map of my destiny.", Category: model.CategoryMystic, Icon: "🕯️", Reaction: "The stars guide you? Interesting."},
			{Label: "It looks like territory to conquer.", Category: model.CategoryActiveNode, Icon: "⚡", Reaction: "Ambitious. I like that."},
		},
	},
	{
		ID:    2,
		Text:  "You find a locked door in a recurring dream. How do you proceed?",
		Phase: PhasePrimary,
		Options: [3]Option{
			{Label: "I pick the lock.", Category: model.CategoryActiveNode, Icon: "⚡", Reaction: "Criminal... but effective."},
			{Label: "I study the mechanism.", Category: model.CategoryScientist, Icon: "🔑", Reaction: "By the book. Methodical."},
			{Label: "I knock and wait.", Category: model.CategoryMystic, Icon: "🚪", Reaction: "Patience is a virtue, or a weakness."},
		},
	},
	{
		ID:    3,
		Text:  "Imagine your life suddenly falls apart. Everything goes wrong at once. What is your honest reaction?",
		Phase: PhasePrimary,
		Options: [3]Option{
			{Label: "I pull back and analyze.", Category: model.CategoryScientist, Icon: "📊", Reaction: "Data collection before action. Smart."},
			{Label: "I go quiet and surrender.", Category: model.CategoryMystic, Icon: "🛡️", Reaction: "Acceptance of the flow. Dangerous, but peaceful."},
			{Label: "I stand up and fight.", Category: model.CategoryActiveNode, Icon: "⚔️", Reaction: "The warrior instinct. Necessary for survival."},
		},
	},
	{
		ID:    4,
		Text:  "If the Universe offered you one gift to help you on your journey, which one would you take?",
		Phase: PhasePrimary,
		Options: [3]Option{
			{Label: "The Key to All Knowledge.", Category: model.CategoryScientist, Icon: "👁️", Reaction: "Ignorance is indeed fatal."},
			{Label: "The Connection to Source.", Category: model.CategoryMystic, Icon: "🌑", Reaction: "Bypassing the intellect. A shortcut to God."},
			{Label: "The Remedy (Inner Healing).", Category: model.CategoryActiveNode, Icon: "⚗️", Reaction: "Optimizing the vessel. Practical."},
		},
	},
	{
		ID:    5,
		Text:  "You meet a person who is suffering. How do you help them?",
		Phase: PhasePrimary,
		Options: [3]Option{
			{Label: "I teach them to heal themselves.", Category: model.CategoryActiveNode, Icon: "⚡", Reaction: "Empowerment. You hate dependency."},
			{Label: "I analyze why they are hurting.", Category: model.CategoryScientist, Icon: "🧬", Reaction: "Diagnosis is the first step to a cure."},
			{Label: "I sit with them in the dark.", Category: model.CategoryMystic, Icon: "🕯️", Reaction: "Empathy. The heavy burden."},
		},
	},
	{
		ID:    6,
		Text:  "At the end of your life, what do you hope to say?",
		Phase: PhasePrimary,
		Options: [3]Option{
			{Label: "I understood it.", Category: model.CategoryScientist, Icon: "🧠", Reaction: "To solve the puzzle. A noble goal."},
			{Label: "I improved it.", Category: model.CategoryActiveNode, Icon: "🏗️", Reaction: "Leaving a mark on the hardware."},
			{Label: "I became it.", Category: model.CategoryMystic, Icon: "✨", Reaction: "Total integration. The Omega Point."},
		},
	},
	{
		ID:    7,
		Text:  "You look into a mirror, but the reflection is different. What do you see?",
		Phase: PhasePrimary,
		Options: [3]Option{
			{Label: "A version of me that is stronger.", Category: model.CategoryActiveNode, Icon: "💪", Reaction: "Always seeking the upgrade."},
			{Label: "A stranger I need to know.", Category: model.CategoryMystic, Icon: "🔮", Reaction: "The self is an illusion."},
			{Label: "The geometry behind my face.", Category: model.CategoryScientist, Icon: "📐", Reaction: "Seeing the wireframe. Interesting."},
		},
	},
	{
		ID:    8,
		Text:  "What is the most dangerous thing to lose?",
		Phase: PhasePrimary,
		Options: [3]Option{
			{Label: "Your Purpose.", Category: model.CategoryActiveNode, Icon: "🎯", Reaction: "Without direction, velocity is useless."},
			{Label: "Your Mind.", Category: model.CategoryScientist, Icon: "🧩", Reaction: "The processor is everything."},
			{Label: "Your Connection.", Category: model.CategoryMystic, Icon: "🔌", Reaction: "To be unplugged is to be dead."},
		},
	},
	{
		ID:    9,
		Text:  "You are forced to make a life-or-death decision in 10 seconds. You have ZERO data. How do you choose?",
		Phase: PhasePrimary,
		Options: [3]Option{
			{Label: "I trust my gut instinct.", Category: model.CategoryActiveNode, Icon: "🔥", Reaction: "Speed over accuracy."},
			{Label: "I quiet my mind to hear the signal.", Category: model.CategoryMystic, Icon: "🌊", Reaction: "Trusting the invisible."},
			{Label: "I hesitate.", Category: model.CategoryScientist, Icon: "🛑", Reaction: "Analysis paralysis. We must fix that."},
		},
	},
	{
		ID:    10,
		Text:  "Final Phase 1 Calibration. What is the ultimate form of power?",
		Phase: PhasePrimary,
		Options: [3]Option{
			{Label: "Truth.", Category: model.CategoryScientist, Icon: "🧬", Reaction: "The only thing that lasts."},
			{Label: "Love.", Category: model.CategoryMystic, Icon: "❤️", Reaction: "The binding force of the universe."},
			{Label: "Willpower.", Category: model.CategoryActiveNode, Icon: "⚡", Reaction: "The engine that drives reality."},
		},
	},
}

var skillQuestions = []Question{
	{
		ID:    11,
		Text:  "The Archetype is set. Now for the Skill. How do you approach a complex problem?",
		Phase: PhaseSkill,
		Options: [3]Option{
			{Label: "I break it down into tiny pieces.", SkillSlot: 0, Icon: "🧩", Reaction: "Granular processing."},
			{Label: "I look for the hidden pattern underneath.", SkillSlot: 1, Icon: "👁️", Reaction: "Deep sight."},
			{Label: "I simplify it to its core essence.", SkillSlot: 2, Icon: "💎", Reaction: "Reductionism."},
		},
	},
	{
		ID:    12,
		Text:  "When interacting with others, what is your greatest asset?",
		Phase: PhaseSkill,
		Options: [3]Option{
			{Label: "My ability to explain things.", SkillSlot: 0, Icon: "🗣️", Reaction: "Transmission clarity."},
			{Label: "My ability to read their intentions.", SkillSlot: 1, Icon: "📡", Reaction: "Signal interception."},
			{Label: "My ability to motivate them.", SkillSlot: 2, Icon: "🔥", Reaction: "Energy transfer."},
		},
	},
	{
		ID:    13,
		Text:  "Final Query. Where do you draw your energy from?",
		Phase: PhaseSkill,
		Options: [3]Option{
			{Label: "From solving difficult tasks.", SkillSlot: 0, Icon: "⚙️", Reaction: "Processing power."},
			{Label: "From exploring the unknown.", SkillSlot: 1, Icon: "🌌", Reaction: "Data acquisition."},
			{Label: "From seeing results manifest.", SkillSlot: 2, Icon: "🏗️", Reaction: "Output generation."},
		},
	},
}

// UnknownSkill is returned when a skill lookup has no table entry.
const UnknownSkill = "Unknown Protocol"

var skillNames = map[model.Archetype][3]string{
	model.ArchetypeScientist:  {"Quantum Logic", "Data Mining", "Entropic Reduction"},
	model.ArchetypeMystic:     {"Intuition", "Remote Viewing", "Resonance"},
	model.ArchetypeActiveNode: {"Network Bridging", "Signal Boosting", "Error Correction"},
	model.ArchetypeArchitect:  {"System Design", "Foundation Laying", "Structural Integrity"},
	model.ArchetypeSeeker:     {"Pathfinding", "Mapping", "Discovery"},
	model.ArchetypeAlchemist:  {"Transmutation", "Synthesis", "Purification"},
}

// SkillName resolves the skill name for an archetype and slot, falling back
// to UnknownSkill when the lookup misses.
func SkillName(a model.Archetype, slot int) string {
	names, ok := skillNames[a]
	if !ok || slot < 0 || slot >= len(names) {
		return UnknownSkill
	}
	return names[slot]
}

// Info is the display and routing data attached to a refined archetype.
type Info struct {
	Title       string
	Description string
	Path        model.Path
	WarpColor   string
}

var archetypeInfo = map[model.Archetype]Info{
	model.ArchetypeScientist: {
		Title:       "THE SCIENTIST",
		Description: "You decode the Divine through evidence. The universe is a machine, and you are here to understand its gears.",
		Path:        model.PathScientific,
		WarpColor:   "cyan",
	},
	model.ArchetypeArchitect: {
		Title:       "THE ARCHITECT",
		Description: "You build order from chaos. You see the structure behind the veil and seek to reconstruct reality.",
		Path:        model.PathScientific,
		WarpColor:   "rose",
	},
	model.ArchetypeMystic: {
		Title:       "THE MYSTIC",
		Description: "You feel the pulse of the Source. You bypass the intellect to connect directly with the heart of God.",
		Path:        model.PathReligious,
		WarpColor:   "amber",
	},
	model.ArchetypeSeeker: {
		Title:       "THE SEEKER",
		Description: "You roam the edges of the known, hunting for the light that guides the lost.",
		Path:        model.PathReligious,
		WarpColor:   "orange",
	},
	model.ArchetypeAlchemist: {
		Title:       "THE ALCHEMIST",
		Description: "You transmute the self. You believe in internal optimization to change external reality.",
		Path:        model.PathBlended,
		WarpColor:   "green",
	},
	model.ArchetypeActiveNode: {
		Title:       "ACTIVE NODE",
		Description: "You are the hand of the God-Brain. While others study the code, you execute it.",
		Path:        model.PathBlended,
		WarpColor:   "purple",
	},
}

// InfoFor returns the display data for an archetype. Unknown archetypes get
// the ACTIVE_NODE entry, matching the reference client's default branch.
func InfoFor(a model.Archetype) Info {
	if info, ok := archetypeInfo[a]; ok {
		return info
	}
	return archetypeInfo[model.ArchetypeActiveNode]
}

// Archetypes lists the six refined archetypes in display order.
func Archetypes() []model.Archetype {
	return []model.Archetype{
		model.ArchetypeScientist,
		model.ArchetypeArchitect,
		model.ArchetypeMystic,
		model.ArchetypeSeeker,
		model.ArchetypeAlchemist,
		model.ArchetypeActiveNode,
	}
}
