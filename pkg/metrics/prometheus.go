// Package metrics provides Prometheus metrics for the NEUROGATE onboarding service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the onboarding service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Session lifecycle
	sessionsActive prometheus.Gauge
	logins         *prometheus.CounterVec
	logouts        prometheus.Counter
	restores       *prometheus.CounterVec

	// Step machine
	stepTransitions *prometheus.CounterVec
	backSteps       *prometheus.CounterVec

	// Overlay orchestration
	overlayTriggers    *prometheus.CounterVec
	overlayIgnored     prometheus.Counter
	overlayCompletions prometheus.Counter
	overlayCancels     prometheus.Counter

	// Calibration
	answersScored    *prometheus.CounterVec
	answersRejected  prometheus.Counter
	profilesResolved *prometheus.CounterVec

	// Companion (AI chat/audio)
	chatRequests   prometheus.Counter
	chatFallbacks  *prometheus.CounterVec
	chatLatency    prometheus.Histogram
	audioRequests  prometheus.Counter
	audioFailures  prometheus.Counter
	audioCacheHit  prometheus.Counter
	audioCacheMiss prometheus.Counter

	// Persistence
	storeSaves      prometheus.Counter
	storeSaveErrors prometheus.Counter
	storeLoadErrors prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "neurogate",
		subsystem:        "onboarding",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.sessionsActive = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sessions_active",
		Help:      "Number of onboarding sessions currently held in memory",
	})

	m.logins = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "logins_total",
		Help:      "Total successful logins by kind (standard, admin)",
	}, []string{"kind"})

	m.logouts = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "logouts_total",
		Help:      "Total session teardowns triggered by logout",
	})

	m.restores = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "session_restores_total",
		Help:      "Total session restores by landing step",
	}, []string{"step"})

	m.stepTransitions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "step_transitions_total",
		Help:      "Committed onboarding step transitions by edge",
	}, []string{"from", "to"})

	m.backSteps = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "back_steps_total",
		Help:      "Backward transitions by origin step",
	}, []string{"from"})

	m.overlayTriggers = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "overlay_triggers_total",
		Help:      "Transition overlays started by kind (narration, warp)",
	}, []string{"kind"})

	m.overlayIgnored = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "overlay_triggers_ignored_total",
		Help:      "Overlay triggers ignored because one was already active",
	})

	m.overlayCompletions = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "overlay_completions_total",
		Help:      "Overlays whose timer fired and committed the pending step",
	})

	m.overlayCancels = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "overlay_cancels_total",
		Help:      "Overlays cancelled by session teardown before completing",
	})

	m.answersScored = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "answers_scored_total",
		Help:      "Calibration answers scored by phase (primary, skill)",
	}, []string{"phase"})

	m.answersRejected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "answers_rejected_total",
		Help:      "Answers ignored because the option did not belong to the active question",
	})

	m.profilesResolved = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "profiles_resolved_total",
		Help:      "Resolved calibration profiles by final archetype",
	}, []string{"archetype"})

	m.chatRequests = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "chat_requests_total",
		Help:      "Chat turns dispatched to the AI companion",
	})

	m.chatFallbacks = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "chat_fallbacks_total",
		Help:      "Chat turns answered with a canned fallback by reason (quota, author, premium, generic)",
	}, []string{"reason"})

	m.chatLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "chat_latency_milliseconds",
		Help:      "Histogram of AI chat round-trip latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.audioRequests = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "audio_requests_total",
		Help:      "Narration audio generations requested",
	})

	m.audioFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "audio_failures_total",
		Help:      "Narration audio generations that returned no audio",
	})

	m.audioCacheHit = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "audio_cache_hits_total",
		Help:      "Narration audio served from the prefetch cache",
	})

	m.audioCacheMiss = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "audio_cache_misses_total",
		Help:      "Narration audio generated on demand after a cache miss",
	})

	m.storeSaves = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_saves_total",
		Help:      "User record snapshots written to disk",
	})

	m.storeSaveErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_save_errors_total",
		Help:      "Snapshot writes that failed",
	})

	m.storeLoadErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_load_errors_total",
		Help:      "Snapshot reads that failed and fell back to an empty record set",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// UpdateSessionsActive sets the current number of live sessions.
func UpdateSessionsActive(count int) {
	globalManager.sessionsActive.Set(float64(count))
}

// RecordLogin increments the login counter for the given kind.
func RecordLogin(kind string) {
	globalManager.logins.WithLabelValues(kind).Inc()
}

// RecordLogout increments the logout counter.
func RecordLogout() {
	globalManager.logouts.Inc()
}

// RecordRestore increments the restore counter for the landing step.
func RecordRestore(step string) {
	globalManager.restores.WithLabelValues(step).Inc()
}

// RecordStepTransition increments the committed transition counter for an edge.
func RecordStepTransition(from, to string) {
	globalManager.stepTransitions.WithLabelValues(from, to).Inc()
}

// RecordBackStep increments the backward transition counter.
func RecordBackStep(from string) {
	globalManager.backSteps.WithLabelValues(from).Inc()
}

// RecordOverlayTrigger increments the overlay trigger counter by kind.
func RecordOverlayTrigger(kind string) {
	globalManager.overlayTriggers.WithLabelValues(kind).Inc()
}

// RecordOverlayIgnored increments the ignored-trigger counter.
func RecordOverlayIgnored() {
	globalManager.overlayIgnored.Inc()
}

// RecordOverlayCompletion increments the overlay completion counter.
func RecordOverlayCompletion() {
	globalManager.overlayCompletions.Inc()
}

// RecordOverlayCancel increments the overlay cancellation counter.
func RecordOverlayCancel() {
	globalManager.overlayCancels.Inc()
}

// RecordAnswerScored increments the scored-answer counter for a phase.
func RecordAnswerScored(phase string) {
	globalManager.answersScored.WithLabelValues(phase).Inc()
}

// RecordAnswerRejected increments the rejected-answer counter.
func RecordAnswerRejected() {
	globalManager.answersRejected.Inc()
}

// RecordProfileResolved increments the resolved-profile counter for an archetype.
func RecordProfileResolved(archetype string) {
	globalManager.profilesResolved.WithLabelValues(archetype).Inc()
}

// RecordChatRequest increments the chat request counter.
func RecordChatRequest() {
	globalManager.chatRequests.Inc()
}

// RecordChatFallback increments the fallback counter for a reason.
func RecordChatFallback(reason string) {
	globalManager.chatFallbacks.WithLabelValues(reason).Inc()
}

// RecordChatLatency records chat round-trip latency in milliseconds.
func RecordChatLatency(latencyMs float64) {
	globalManager.chatLatency.Observe(latencyMs)
}

// RecordAudioRequest increments the audio generation counter.
func RecordAudioRequest() {
	globalManager.audioRequests.Inc()
}

// RecordAudioFailure increments the audio failure counter.
func RecordAudioFailure() {
	globalManager.audioFailures.Inc()
}

// RecordAudioCacheHit increments the audio cache hit counter.
func RecordAudioCacheHit() {
	globalManager.audioCacheHit.Inc()
}

// RecordAudioCacheMiss increments the audio cache miss counter.
func RecordAudioCacheMiss() {
	globalManager.audioCacheMiss.Inc()
}

// RecordStoreSave increments the snapshot save counter.
func RecordStoreSave() {
	globalManager.storeSaves.Inc()
}

// RecordStoreSaveError increments the snapshot save error counter.
func RecordStoreSaveError() {
	globalManager.storeSaveErrors.Inc()
}

// RecordStoreLoadError increments the snapshot load error counter.
func RecordStoreLoadError() {
	globalManager.storeLoadErrors.Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// GetRegistry returns the registry backing the global manager, for /metrics exposure.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
