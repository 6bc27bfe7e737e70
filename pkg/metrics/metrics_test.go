package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a dedicated registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(true),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics helpers", t, func() {
		Convey("When recording session lifecycle metrics", func() {
			So(func() {
				UpdateSessionsActive(3)
				RecordLogin("email")
				RecordLogin("admin")
				RecordLogout()
				RecordRestore("SHOWCASE")
			}, ShouldNotPanic)
		})

		Convey("When recording step machine metrics", func() {
			So(func() {
				RecordStepTransition("PORTAL", "SHOWCASE")
				RecordBackStep("SHOWCASE")
				RecordOverlayTrigger("warp")
				RecordOverlayIgnored()
				RecordOverlayCompletion()
				RecordOverlayCancel()
			}, ShouldNotPanic)
		})

		Convey("When recording calibration metrics", func() {
			So(func() {
				RecordAnswerScored("PRIMARY")
				RecordAnswerScored("SKILL")
				RecordAnswerRejected()
				RecordProfileResolved("SEEKER")
			}, ShouldNotPanic)
		})

		Convey("When recording companion metrics", func() {
			So(func() {
				RecordChatRequest()
				RecordChatFallback("quota")
				RecordChatLatency(12.5)
				RecordAudioRequest()
				RecordAudioFailure()
				RecordAudioCacheHit()
				RecordAudioCacheMiss()
			}, ShouldNotPanic)
		})

		Convey("When recording persistence and HTTP metrics", func() {
			So(func() {
				RecordStoreSave()
				RecordStoreSaveError()
				RecordStoreLoadError()
				RecordHTTPRequest("chat", "POST", "200")
				RecordHTTPRequestDuration("chat", "POST", "200", 4.2)
			}, ShouldNotPanic)
		})
	})
}

func TestGetRegistry(t *testing.T) {
	Convey("Given the global registry", t, func() {
		registry := GetRegistry()

		Convey("Then it should expose the registered metric families", func() {
			So(registry, ShouldNotBeNil)

			RecordLogin("email")
			families, err := registry.Gather()
			So(err, ShouldBeNil)
			So(len(families), ShouldBeGreaterThan, 0)

			found := false
			for _, f := range families {
				if f.GetName() == "neurogate_onboarding_logins_total" {
					found = true
				}
			}
			So(found, ShouldBeTrue)
		})
	})
}
