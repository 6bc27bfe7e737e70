// Package ai provides the conversational companion behind the completed
// onboarding flow. The contract is defined here; the Gemini-backed
// implementation lives alongside it.
package ai

import (
	"context"

	"github.com/phoenixgodbrain/neurogate/internal/domain/model"
)

// Voice selects the narration voice for synthesized audio.
type Voice string

const (
	VoiceMale   Voice = "MALE"
	VoiceFemale Voice = "FEMALE"
)

// ChatRequest carries one user message plus the persona context the
// companion needs to answer in character.
type ChatRequest struct {
	Message   string
	Path      model.Path
	Language  string
	Name      string
	History   []model.ChatTurn
	IsAuthor  bool
	IsPremium bool
}

// Companion answers user messages in persona and narrates text aloud.
type Companion interface {
	// Chat answers one message. Quota exhaustion and suppressed upstream
	// failures come back as in-persona notices, not errors.
	Chat(ctx context.Context, req ChatRequest) (string, error)

	// Synthesize renders text to PCM audio. A nil slice with nil error
	// means audio is unavailable for this request.
	Synthesize(ctx context.Context, text string, voice Voice) ([]byte, error)

	// Close releases the underlying client.
	Close() error
}
