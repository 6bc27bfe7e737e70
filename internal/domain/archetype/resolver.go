// Package archetype converts final calibration tallies into a resolved
// profile: the refined archetype and its skill designation.
package archetype

import (
	"github.com/phoenixgodbrain/neurogate/internal/domain/catalog"
	"github.com/phoenixgodbrain/neurogate/internal/domain/model"
	"github.com/phoenixgodbrain/neurogate/internal/domain/scoring"
)

// Resolution is the output of a calibration run. Created once when the final
// skill question is answered; immutable afterwards. Raw tallies are carried
// for display and audit.
type Resolution struct {
	Archetype     model.Archetype
	SkillName     string
	SkillSlot     int
	PrimaryWinner model.Category
	PrimaryTally  scoring.PrimaryTally
	SkillTally    scoring.SkillTally
}

// Resolve computes the winning archetype and skill from two tallies. Total
// over any pair of non-negative tallies: all-zero input resolves to the first
// canonical category and slot 0.
func Resolve(primary scoring.PrimaryTally, skill scoring.SkillTally) Resolution {
	winner := winningCategory(primary)
	slot := winningSlot(skill)

	// A slot-1 skill refines the base category into its counterpart.
	refined := model.Archetype(winner)
	if slot == 1 {
		switch winner {
		case model.CategoryScientist:
			refined = model.ArchetypeArchitect
		case model.CategoryMystic:
			refined = model.ArchetypeSeeker
		case model.CategoryActiveNode:
			refined = model.ArchetypeAlchemist
		}
	}

	return Resolution{
		Archetype:     refined,
		SkillName:     catalog.SkillName(refined, slot),
		SkillSlot:     slot,
		PrimaryWinner: winner,
		PrimaryTally:  primary.Clone(),
		SkillTally:    skill.Clone(),
	}
}

// winningCategory picks the category with the greatest tally. Ties resolve
// to the earliest category in canonical order.
func winningCategory(t scoring.PrimaryTally) model.Category {
	cats := model.CanonicalCategories()
	best := cats[0]
	for _, c := range cats[1:] {
		if t[c] > t[best] {
			best = c
		}
	}
	return best
}

// winningSlot picks the skill slot with the greatest tally; slot 0 wins ties.
func winningSlot(t scoring.SkillTally) int {
	best := 0
	for slot := 1; slot <= 2; slot++ {
		if t[slot] > t[best] {
			best = slot
		}
	}
	return best
}
