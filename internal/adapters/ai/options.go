package ai

import "github.com/phoenixgodbrain/neurogate/pkg/logger"

// GeminiOption applies a configuration option to the GeminiCompanion.
type GeminiOption func(*GeminiCompanion)

// WithChatModel overrides the model used for conversation.
func WithChatModel(model string) GeminiOption {
	return func(c *GeminiCompanion) {
		if model != "" {
			c.chatModel = model
		}
	}
}

// WithAudioModel overrides the model used for speech synthesis.
func WithAudioModel(model string) GeminiOption {
	return func(c *GeminiCompanion) {
		if model != "" {
			c.audioModel = model
		}
	}
}

// WithCompanionLogger sets the logger used by the companion.
func WithCompanionLogger(l logger.Logger) GeminiOption {
	return func(c *GeminiCompanion) {
		if l != nil {
			c.log = l
		}
	}
}
