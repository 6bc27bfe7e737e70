package service

import (
	"time"

	"github.com/phoenixgodbrain/neurogate/internal/adapters/ai"
	"github.com/phoenixgodbrain/neurogate/internal/adapters/repository"
	"github.com/phoenixgodbrain/neurogate/internal/auth"
	"github.com/phoenixgodbrain/neurogate/internal/onboarding"
	"github.com/phoenixgodbrain/neurogate/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the user record store.
func WithStore(s repository.Store) Option {
	return func(svc *Service) {
		if s != nil {
			svc.store = s
		}
	}
}

// WithTokenService sets the session token signer.
func WithTokenService(t *auth.TokenService) Option {
	return func(svc *Service) {
		if t != nil {
			svc.tokens = t
		}
	}
}

// WithCompanion sets the AI companion backing the chat surface.
func WithCompanion(c ai.Companion) Option {
	return func(svc *Service) {
		if c != nil {
			svc.companion = c
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(svc *Service) {
		if l != nil {
			svc.logger = l
		}
	}
}

// WithAdminIdentities sets the identities granted the privileged login.
func WithAdminIdentities(ids []string) Option {
	return func(svc *Service) {
		if len(ids) > 0 {
			svc.adminIdentities = ids
		}
	}
}

// WithAdminResetOnRestore controls whether privileged identities restore to
// the portal instead of their saved step.
func WithAdminResetOnRestore(reset bool) Option {
	return func(svc *Service) {
		svc.adminResetOnRestore = reset
	}
}

// WithFreeQueryLimit sets the chat budget for non-premium users.
func WithFreeQueryLimit(n int) Option {
	return func(svc *Service) {
		if n >= 0 {
			svc.freeQueryLimit = n
		}
	}
}

// WithOverlayDuration sets the narration overlay display time for new
// session machines.
func WithOverlayDuration(d time.Duration) Option {
	return func(svc *Service) {
		if d > 0 {
			svc.overlayDuration = d
		}
	}
}

// WithWarpDuration sets the warp interlude display time for new session
// machines.
func WithWarpDuration(d time.Duration) Option {
	return func(svc *Service) {
		if d > 0 {
			svc.warpDuration = d
		}
	}
}

// WithChatLaneSize sets the per-session chat queue depth.
func WithChatLaneSize(n int) Option {
	return func(svc *Service) {
		if n > 0 {
			svc.chatLaneSize = n
		}
	}
}

// WithAudioCacheSize sets the narration audio cache capacity.
func WithAudioCacheSize(n int) Option {
	return func(svc *Service) {
		if n > 0 {
			svc.audioCacheSize = n
		}
	}
}

// WithClock sets the timer source for session machines, used by tests for
// deterministic overlays.
func WithClock(c onboarding.Clock) Option {
	return func(svc *Service) {
		if c != nil {
			svc.clock = c
		}
	}
}
