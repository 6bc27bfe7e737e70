// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New(...Option) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// StorePath points at the JSON snapshot holding user records. Empty
	// keeps the store purely in memory.
	StorePath string `koanf:"store_path"`

	// TokenSecret signs session tokens. Must be set outside of tests.
	TokenSecret string `koanf:"token_secret"`

	// TokenTTLHours bounds how long a restore token stays valid.
	TokenTTLHours int `koanf:"token_ttl_hours"`

	// AdminIdentities lists emails granted the elevated entitlement on login.
	AdminIdentities []string `koanf:"admin_identities"`

	// AdminResetOnRestore forces admin sessions back to the portal on
	// restore instead of resuming their saved position.
	AdminResetOnRestore bool `koanf:"admin_reset_on_restore"`

	// OverlayDurationMS is the fixed display time of a narration overlay.
	OverlayDurationMS int `koanf:"overlay_duration_ms"`

	// WarpDurationMS is the fixed display time of the warp interlude.
	WarpDurationMS int `koanf:"warp_duration_ms"`

	// FreeQueryLimit caps chat turns for non-premium users.
	FreeQueryLimit int `koanf:"free_query_limit"`

	// GeminiAPIKey authenticates against the generative AI service. Usually
	// supplied via NEUROGATE_GEMINI_API_KEY or a .env file.
	GeminiAPIKey string `koanf:"gemini_api_key"`

	// ChatModel and AudioModel select the generative models used by the companion.
	ChatModel  string `koanf:"chat_model"`
	AudioModel string `koanf:"audio_model"`

	// ChatQueueSize bounds the per-session queue of in-flight chat turns.
	ChatQueueSize int `koanf:"chat_queue_size"`

	// AudioCacheSize bounds the narration audio prefetch cache.
	AudioCacheSize int `koanf:"audio_cache_size"`
}

// Default durations mirror the reference client: narration overlays hold for
// a fixed beat and the warp interlude runs 3.5 seconds.
const (
	defaultOverlayDurationMS = 2800
	defaultWarpDurationMS    = 3500
)

// New creates a Config populated with defaults.
func New() *Config {
	c := &Config{
		LogLevel:            "info",
		Addr:                ":9090",
		StorePath:           "",
		TokenTTLHours:       24 * 30,
		AdminIdentities:     []string{"architect@source.code", "admin@godsbrain.com"},
		AdminResetOnRestore: true,
		OverlayDurationMS:   defaultOverlayDurationMS,
		WarpDurationMS:      defaultWarpDurationMS,
		FreeQueryLimit:      10,
		ChatModel:           "gemini-3-flash-preview",
		AudioModel:          "gemini-2.5-flash-preview-tts",
		ChatQueueSize:       16,
		AudioCacheSize:      64,
	}
	return c
}
