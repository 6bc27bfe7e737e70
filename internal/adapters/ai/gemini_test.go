package ai

import (
	"context"
	"errors"
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"google.golang.org/genai"

	"github.com/phoenixgodbrain/neurogate/internal/domain/model"
	"github.com/phoenixgodbrain/neurogate/pkg/logger"
)

func init() {
	_ = logger.Init()
}

func testCompanion() *GeminiCompanion {
	return &GeminiCompanion{log: logger.Get().Named("companion")}
}

func TestIsQuotaError(t *testing.T) {
	Convey("Given upstream failures", t, func() {
		Convey("Then a 429 response is a quota error", func() {
			So(isQuotaError(genai.APIError{Code: 429}), ShouldBeTrue)
		})

		Convey("Then a RESOURCE_EXHAUSTED status is a quota error", func() {
			So(isQuotaError(genai.APIError{Code: 500, Status: "RESOURCE_EXHAUSTED"}), ShouldBeTrue)
		})

		Convey("Then a wrapped quota error is still recognized", func() {
			err := fmt.Errorf("generate content: %w", genai.APIError{Code: 429})
			So(isQuotaError(err), ShouldBeTrue)
		})

		Convey("Then a quota mention in plain text counts", func() {
			So(isQuotaError(errors.New("quota exceeded for model")), ShouldBeTrue)
		})

		Convey("Then an unrelated failure does not", func() {
			So(isQuotaError(errors.New("connection reset")), ShouldBeFalse)
			So(isQuotaError(genai.APIError{Code: 500, Status: "INTERNAL"}), ShouldBeFalse)
		})
	})
}

func TestChatFallback(t *testing.T) {
	ctx := context.Background()

	Convey("Given a companion mapping upstream chat failures", t, func() {
		c := testCompanion()

		Convey("When the upstream rejects with a rate limit", func() {
			msg, err := c.chatFallback(ctx, ChatRequest{}, genai.APIError{Code: 429})

			Convey("Then the bandwidth exhaustion notice comes back in persona", func() {
				So(err, ShouldBeNil)
				So(msg, ShouldEqual, quotaNotice)
				So(msg, ShouldContainSubstring, "Neural bandwidth limit")
			})
		})

		Convey("When the author hits any other failure", func() {
			msg, err := c.chatFallback(ctx, ChatRequest{IsAuthor: true}, errors.New("upstream 500"))

			Convey("Then the override notice comes back", func() {
				So(err, ShouldBeNil)
				So(msg, ShouldEqual, authorNotice)
			})
		})

		Convey("When a premium user hits any other failure", func() {
			msg, err := c.chatFallback(ctx, ChatRequest{IsPremium: true}, errors.New("upstream 500"))

			Convey("Then the priority uplink notice comes back", func() {
				So(err, ShouldBeNil)
				So(msg, ShouldEqual, premiumNotice)
			})
		})

		Convey("When a free user hits any other failure", func() {
			msg, err := c.chatFallback(ctx, ChatRequest{}, errors.New("upstream 500: internal error"))

			Convey("Then the generic reconnect notice comes back, never the raw error", func() {
				So(err, ShouldBeNil)
				So(msg, ShouldEqual, genericNotice)
			})
		})

		Convey("When the author hits a quota rejection", func() {
			msg, err := c.chatFallback(ctx, ChatRequest{IsAuthor: true}, genai.APIError{Status: "RESOURCE_EXHAUSTED"})

			Convey("Then the quota notice wins over the override notice", func() {
				So(err, ShouldBeNil)
				So(msg, ShouldEqual, quotaNotice)
			})
		})
	})
}

func TestBuildInstruction(t *testing.T) {
	Convey("Given system instruction composition", t, func() {
		Convey("When the request carries a named user on a path", func() {
			got := buildInstruction(ChatRequest{Path: model.PathScientific, Name: "Nova", Language: "ru"})

			So(got, ShouldContainSubstring, "PATH: SCIENTIFIC")
			So(got, ShouldContainSubstring, "USER NAME: Nova")
			So(got, ShouldContainSubstring, "LANGUAGE CODE: RU")
			So(got, ShouldNotContainSubstring, "CRITICAL OVERRIDE")
		})

		Convey("When name and language are empty", func() {
			got := buildInstruction(ChatRequest{Path: model.PathBlended})

			So(got, ShouldContainSubstring, "USER NAME: User")
			So(got, ShouldContainSubstring, "LANGUAGE CODE: EN")
		})

		Convey("When the author speaks", func() {
			got := buildInstruction(ChatRequest{Path: model.PathBlended, IsAuthor: true})

			So(got, ShouldContainSubstring, "CRITICAL OVERRIDE")
		})
	})
}
