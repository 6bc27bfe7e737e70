// Package model contains domain models passed between layers.
package model

// Path is the narrative track a user commits to after calibration.
type Path string

// Paths mirror the three tracks of the reference client plus the unset state.
const (
	PathNone       Path = "NONE"
	PathScientific Path = "SCIENTIFIC"
	PathReligious  Path = "RELIGIOUS"
	PathBlended    Path = "BLENDED"
)

// Valid reports whether p is one of the three committed tracks.
func (p Path) Valid() bool {
	switch p {
	case PathScientific, PathReligious, PathBlended:
		return true
	default:
		return false
	}
}

// Category is one of the three base personality categories scored during the
// primary calibration phase.
type Category string

// Canonical order matters: ties resolve to the earliest category.
const (
	CategoryScientist  Category = "SCIENTIST"
	CategoryMystic     Category = "MYSTIC"
	CategoryActiveNode Category = "ACTIVE_NODE"
)

// CanonicalCategories lists the primary categories in tie-break order.
func CanonicalCategories() []Category {
	return []Category{CategoryScientist, CategoryMystic, CategoryActiveNode}
}

// Archetype is one of the six refined archetypes a calibration run can produce.
type Archetype string

const (
	ArchetypeScientist  Archetype = "SCIENTIST"
	ArchetypeMystic     Archetype = "MYSTIC"
	ArchetypeActiveNode Archetype = "ACTIVE_NODE"
	ArchetypeArchitect  Archetype = "ARCHITECT"
	ArchetypeSeeker     Archetype = "SEEKER"
	ArchetypeAlchemist  Archetype = "ALCHEMIST"
)

// Profile is the versioned user profile. Downstream screens extend it only
// through the well-defined optional fields below, never ad hoc.
type Profile struct {
	Version       int       `json:"version"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Provider      string    `json:"provider"`
	Archetype     Archetype `json:"archetype,omitempty"`
	StartingSkill string    `json:"starting_skill,omitempty"`
	Avatar        string    `json:"avatar,omitempty"`
}

// ProfileVersion is the current schema version written to new profiles.
const ProfileVersion = 1

// UserRecord is the persisted per-user state, keyed by email in the store.
type UserRecord struct {
	Profile     Profile `json:"profile"`
	QueriesUsed int     `json:"queries_used"`
	IsPremium   bool    `json:"is_premium"`
	LastLogin   int64   `json:"last_login"` // epoch milliseconds
}

// ChatRole identifies a conversation turn's author.
type ChatRole string

const (
	RoleUser  ChatRole = "user"
	RoleModel ChatRole = "model"
)

// ChatTurn is one committed turn of the companion conversation.
type ChatTurn struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}
