package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/phoenixgodbrain/neurogate/internal/adapters/ai"
	"github.com/phoenixgodbrain/neurogate/internal/adapters/repository"
	service "github.com/phoenixgodbrain/neurogate/internal/app"
	"github.com/phoenixgodbrain/neurogate/internal/auth"
	"github.com/phoenixgodbrain/neurogate/internal/domain/model"
	"github.com/phoenixgodbrain/neurogate/internal/onboarding"
	"github.com/phoenixgodbrain/neurogate/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

// fakeClock collects scheduled callbacks so tests commit overlays on demand.
type fakeClock struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

type fakeTimer struct {
	mu      sync.Mutex
	fn      func()
	stopped bool
	fired   bool
}

func (c *fakeClock) AfterFunc(_ time.Duration, f func()) onboarding.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{fn: f}
	c.timers = append(c.timers, t)
	return t
}

// Fire runs every armed callback exactly once.
func (c *fakeClock) Fire() {
	c.mu.Lock()
	timers := append([]*fakeTimer(nil), c.timers...)
	c.mu.Unlock()
	for _, t := range timers {
		t.fire()
	}
}

func (t *fakeTimer) fire() {
	t.mu.Lock()
	if t.stopped || t.fired {
		t.mu.Unlock()
		return
	}
	t.fired = true
	fn := t.fn
	t.mu.Unlock()
	fn()
}

func (t *fakeTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// stubCompanion is a scripted ai.Companion for chat tests. When entered and
// release are set, Chat announces each call and waits before answering so a
// test can hold a request in flight.
type stubCompanion struct {
	mu      sync.Mutex
	reply   string
	chatErr error
	audio   []byte
	chats   int
	synths  int
	lastReq ai.ChatRequest
	entered chan struct{}
	release chan struct{}
}

func (s *stubCompanion) Chat(_ context.Context, req ai.ChatRequest) (string, error) {
	if s.entered != nil {
		s.entered <- struct{}{}
	}
	if s.release != nil {
		<-s.release
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chats++
	s.lastReq = req
	if s.chatErr != nil {
		return "", s.chatErr
	}
	return s.reply, nil
}

func (s *stubCompanion) Synthesize(_ context.Context, _ string, _ ai.Voice) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.synths++
	return s.audio, nil
}

func (s *stubCompanion) Close() error { return nil }

type fixture struct {
	svc   *service.Service
	store repository.Store
	clock *fakeClock
}

func newFixture(extra ...service.Option) *fixture {
	clock := &fakeClock{}
	store := repository.NewFileStore("")
	opts := append([]service.Option{
		service.WithStore(store),
		service.WithClock(clock),
	}, extra...)
	svc := service.New(opts...)
	So(svc.Start(context.Background()), ShouldBeNil)
	return &fixture{svc: svc, store: store, clock: clock}
}

// completeOnboarding walks a fresh login to the dashboard via manual select.
func (f *fixture) completeOnboarding(ctx context.Context, email string) string {
	token, _, err := f.svc.Login(ctx, email)
	So(err, ShouldBeNil)
	f.clock.Fire() // warp -> showcase

	_, err = f.svc.ManualSelect(ctx, token, model.ArchetypeActiveNode, "")
	So(err, ShouldBeNil)
	f.clock.Fire() // narration -> builder

	_, err = f.svc.FinishBuilder(ctx, token, "")
	So(err, ShouldBeNil)
	f.clock.Fire() // narration -> complete

	st := f.svc.State(ctx, token)
	So(st.Step, ShouldEqual, onboarding.StepComplete)
	return token
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()

	Convey("Given a started service", t, func() {
		f := newFixture()
		defer f.svc.Stop()

		Convey("When logging in with an empty identity", func() {
			_, _, err := f.svc.Login(ctx, "   ")
			So(err, ShouldEqual, service.ErrInvalidLogin)
		})

		Convey("When logging in with a fresh identity", func() {
			token, st, err := f.svc.Login(ctx, "Node@Example.COM")
			So(err, ShouldBeNil)
			So(token, ShouldNotBeEmpty)

			Convey("Then the warp interlude should be on screen", func() {
				So(st.Step, ShouldEqual, onboarding.StepWarp)
				So(st.Overlay, ShouldNotBeNil)
				So(st.Overlay.Kind, ShouldEqual, "warp")
			})

			Convey("And a record should exist with the email local part as name", func() {
				rec, err := f.store.Load(ctx, "node@example.com")
				So(err, ShouldBeNil)
				So(rec.Profile.Name, ShouldEqual, "node")
				So(rec.Profile.Provider, ShouldEqual, "email")
				So(rec.IsPremium, ShouldBeFalse)
				So(rec.LastLogin, ShouldBeGreaterThan, 0)
			})

			Convey("And the warp should land on the showcase", func() {
				f.clock.Fire()
				st := f.svc.State(ctx, token)
				So(st.Step, ShouldEqual, onboarding.StepShowcase)
				So(st.Overlay, ShouldBeNil)
			})
		})

		Convey("When the author alias logs in", func() {
			token, st, err := f.svc.Login(ctx, "phoenix")
			So(err, ShouldBeNil)

			Convey("Then the recognition overlay should be on screen", func() {
				So(st.IsAuthor, ShouldBeTrue)
				So(st.IsPremium, ShouldBeTrue)
				So(st.Overlay, ShouldNotBeNil)
				So(st.Overlay.Title, ShouldEqual, "PHOENIX PROTOCOL RECOGNIZED")
			})

			Convey("And the author record should carry the full entitlement", func() {
				rec, err := f.store.Load(ctx, "architect@source.code")
				So(err, ShouldBeNil)
				So(rec.Profile.Name, ShouldEqual, "The Phoenix")
				So(rec.Profile.Avatar, ShouldNotBeEmpty)
				So(rec.IsPremium, ShouldBeTrue)
			})

			Convey("And calibration should be bypassed to the dashboard", func() {
				f.clock.Fire()
				st := f.svc.State(ctx, token)
				So(st.Step, ShouldEqual, onboarding.StepComplete)
				So(st.Path, ShouldEqual, model.PathBlended)
			})
		})

		Convey("When an admin email logs in directly", func() {
			_, st, err := f.svc.Login(ctx, "admin@godsbrain.com")
			So(err, ShouldBeNil)
			So(st.IsAuthor, ShouldBeTrue)
		})
	})
}

func TestService_StateAndRestore(t *testing.T) {
	ctx := context.Background()

	Convey("Given a started service", t, func() {
		tokens := auth.NewTokenService("restore-secret", time.Hour)
		f := newFixture(service.WithTokenService(tokens))
		defer f.svc.Stop()

		Convey("When asking for state without a token", func() {
			st := f.svc.State(ctx, "")
			So(st.Step, ShouldEqual, onboarding.StepPortal)
		})

		Convey("When asking for state with garbage", func() {
			st := f.svc.State(ctx, "bogus")
			So(st.Step, ShouldEqual, onboarding.StepPortal)
		})

		Convey("When a token outlives its process", func() {
			token, _, err := f.svc.Login(ctx, "node@example.com")
			So(err, ShouldBeNil)
			f.clock.Fire()

			// Same store and signing secret, fresh process.
			other := service.New(
				service.WithStore(f.store),
				service.WithTokenService(tokens),
				service.WithClock(f.clock),
			)
			So(other.Start(ctx), ShouldBeNil)
			defer other.Stop()

			Convey("Then the session should restore onto the showcase", func() {
				st := other.State(ctx, token)
				So(st.Step, ShouldEqual, onboarding.StepShowcase)
			})

			Convey("And with a committed path it should restore onto the dashboard", func() {
				So(f.store.SetChosenPath(ctx, "node@example.com", model.PathBlended), ShouldBeNil)
				st := other.State(ctx, token)
				So(st.Step, ShouldEqual, onboarding.StepComplete)
			})
		})

		Convey("When an admin token outlives its process", func() {
			token, _, err := f.svc.Login(ctx, "phoenix")
			So(err, ShouldBeNil)
			f.clock.Fire()

			other := service.New(
				service.WithStore(f.store),
				service.WithTokenService(tokens),
				service.WithClock(f.clock),
			)
			So(other.Start(ctx), ShouldBeNil)
			defer other.Stop()

			Convey("Then the privileged identity should be forced to re-authenticate", func() {
				st := other.State(ctx, token)
				So(st.Step, ShouldEqual, onboarding.StepPortal)
			})
		})
	})
}

func TestService_Calibration(t *testing.T) {
	ctx := context.Background()

	// answerAll answers every remaining question of the active phase by
	// picking the option at choose(questionID).
	answerAll := func(f *fixture, token string, choose func(id int) int) service.AnswerResult {
		var last service.AnswerResult
		for i := 0; i < 16; i++ {
			st := f.svc.State(ctx, token)
			if st.Question == nil {
				break
			}
			q := st.Question
			res, err := f.svc.Answer(ctx, token, q.ID, q.Options[choose(q.ID)].Label)
			So(err, ShouldBeNil)
			So(res.Reaction, ShouldNotBeEmpty)
			last = res
			if res.PhaseDone {
				f.clock.Fire()
				break
			}
		}
		return last
	}

	Convey("Given a session on the showcase", t, func() {
		f := newFixture()
		defer f.svc.Stop()

		token, _, err := f.svc.Login(ctx, "node@example.com")
		So(err, ShouldBeNil)
		f.clock.Fire()

		Convey("When continuing into calibration", func() {
			_, err := f.svc.Continue(ctx, token)
			So(err, ShouldBeNil)
			f.clock.Fire()

			st := f.svc.State(ctx, token)
			So(st.Step, ShouldEqual, onboarding.StepInitPrimary)
			So(st.Question, ShouldNotBeNil)
			So(st.Question.ID, ShouldEqual, 1)
			So(st.Question.Total, ShouldEqual, 10)

			Convey("And answering with a stale question ID should be rejected", func() {
				_, err := f.svc.Answer(ctx, token, 99, st.Question.Options[0].Label)
				So(err, ShouldEqual, service.ErrWrongQuestion)
			})

			Convey("And answering with an unknown option should be rejected", func() {
				_, err := f.svc.Answer(ctx, token, 1, "not an option")
				So(err, ShouldEqual, service.ErrUnknownOption)
			})

			Convey("And completing the primary phase should reach the reveal", func() {
				// Always the first option; the tally still has a unique winner.
				res := answerAll(f, token, func(int) int { return 0 })
				So(res.PhaseDone, ShouldBeTrue)

				st := f.svc.State(ctx, token)
				So(st.Step, ShouldEqual, onboarding.StepReveal)
				So(st.Reveal, ShouldNotBeNil)
				So(st.Reveal.Title, ShouldNotBeEmpty)
				So(st.Reveal.SkillName, ShouldBeEmpty)

				Convey("And accepting should open the skill phase", func() {
					_, err := f.svc.Accept(ctx, token)
					So(err, ShouldBeNil)
					f.clock.Fire()

					st := f.svc.State(ctx, token)
					So(st.Step, ShouldEqual, onboarding.StepInitSkill)
					So(st.Question.ID, ShouldEqual, 11)
					So(st.Question.Total, ShouldEqual, 3)

					Convey("And completing the skill phase should reach the synthesis", func() {
						res := answerAll(f, token, func(int) int { return 1 })
						So(res.PhaseDone, ShouldBeTrue)

						st := f.svc.State(ctx, token)
						So(st.Step, ShouldEqual, onboarding.StepSynthesis)
						So(st.Reveal, ShouldNotBeNil)
						So(st.Reveal.SkillName, ShouldNotBeEmpty)

						Convey("And accepting the synthesis should commit the profile", func() {
							_, err := f.svc.Accept(ctx, token)
							So(err, ShouldBeNil)
							f.clock.Fire()

							st := f.svc.State(ctx, token)
							So(st.Step, ShouldEqual, onboarding.StepBuilder)

							rec, err := f.store.Load(ctx, "node@example.com")
							So(err, ShouldBeNil)
							So(rec.Profile.Archetype, ShouldNotBeEmpty)
							So(rec.Profile.StartingSkill, ShouldNotBeEmpty)

							path, err := f.store.ChosenPath(ctx, "node@example.com")
							So(err, ShouldBeNil)
							So(path.Valid(), ShouldBeTrue)

							Convey("And finishing the builder should store the avatar", func() {
								_, err := f.svc.FinishBuilder(ctx, token, "https://example.com/a.svg")
								So(err, ShouldBeNil)
								f.clock.Fire()

								st := f.svc.State(ctx, token)
								So(st.Step, ShouldEqual, onboarding.StepComplete)

								rec, err := f.store.Load(ctx, "node@example.com")
								So(err, ShouldBeNil)
								So(rec.Profile.Avatar, ShouldEqual, "https://example.com/a.svg")
							})
						})
					})
				})
			})

			Convey("And answering while the phase-end overlay runs should be rejected", func() {
				answered := 0
				for {
					st := f.svc.State(ctx, token)
					if st.Question == nil {
						break
					}
					res, err := f.svc.Answer(ctx, token, st.Question.ID, st.Question.Options[0].Label)
					So(err, ShouldBeNil)
					answered++
					if res.PhaseDone {
						break
					}
				}
				So(answered, ShouldEqual, 10)

				_, err := f.svc.Answer(ctx, token, 1, "anything")
				So(err, ShouldEqual, onboarding.ErrOverlayActive)
			})
		})

		Convey("When answering outside a question phase", func() {
			_, err := f.svc.Answer(ctx, token, 1, "anything")
			So(err, ShouldEqual, onboarding.ErrInvalidStep)
		})
	})
}

func TestService_Back(t *testing.T) {
	ctx := context.Background()

	Convey("Given a session in the primary phase", t, func() {
		f := newFixture()
		defer f.svc.Stop()

		token, _, err := f.svc.Login(ctx, "node@example.com")
		So(err, ShouldBeNil)
		f.clock.Fire()
		_, err = f.svc.Continue(ctx, token)
		So(err, ShouldBeNil)
		f.clock.Fire()

		st := f.svc.State(ctx, token)
		_, err = f.svc.Answer(ctx, token, st.Question.ID, st.Question.Options[0].Label)
		So(err, ShouldBeNil)

		Convey("When going back to the showcase and returning", func() {
			back, err := f.svc.Back(ctx, token)
			So(err, ShouldBeNil)
			So(back.Step, ShouldEqual, onboarding.StepShowcase)

			_, err = f.svc.Continue(ctx, token)
			So(err, ShouldBeNil)
			f.clock.Fire()

			Convey("Then the question sequence should restart from the first", func() {
				st := f.svc.State(ctx, token)
				So(st.Question.ID, ShouldEqual, 1)
			})
		})

		Convey("When going back twice to the portal", func() {
			back, err := f.svc.Back(ctx, token)
			So(err, ShouldBeNil)
			So(back.Step, ShouldEqual, onboarding.StepShowcase)

			back, err = f.svc.Back(ctx, token)
			So(err, ShouldBeNil)

			Convey("Then the session should be closed out", func() {
				So(back.Step, ShouldEqual, onboarding.StepPortal)
			})
		})
	})
}

func TestService_ManualSelect(t *testing.T) {
	ctx := context.Background()

	Convey("Given a session on the showcase", t, func() {
		f := newFixture()
		defer f.svc.Stop()

		token, _, err := f.svc.Login(ctx, "node@example.com")
		So(err, ShouldBeNil)
		f.clock.Fire()

		Convey("When selecting an unknown archetype", func() {
			_, err := f.svc.ManualSelect(ctx, token, model.Archetype("GHOST"), "")
			So(err, ShouldEqual, service.ErrUnknownArchetype)
		})

		Convey("When selecting the alchemist without a skill", func() {
			_, err := f.svc.ManualSelect(ctx, token, model.ArchetypeAlchemist, "")
			So(err, ShouldBeNil)
			f.clock.Fire()

			Convey("Then the builder should be reached with the profile committed", func() {
				st := f.svc.State(ctx, token)
				So(st.Step, ShouldEqual, onboarding.StepBuilder)

				rec, err := f.store.Load(ctx, "node@example.com")
				So(err, ShouldBeNil)
				So(rec.Profile.Archetype, ShouldEqual, model.ArchetypeAlchemist)
				So(rec.Profile.StartingSkill, ShouldEqual, "Transmutation")

				path, err := f.store.ChosenPath(ctx, "node@example.com")
				So(err, ShouldBeNil)
				So(path, ShouldEqual, model.PathBlended)
			})
		})
	})
}

func TestService_Logout(t *testing.T) {
	ctx := context.Background()

	Convey("Given a completed session", t, func() {
		f := newFixture()
		defer f.svc.Stop()

		token := f.completeOnboarding(ctx, "node@example.com")

		Convey("When logging out", func() {
			So(f.svc.Logout(ctx, token), ShouldBeNil)

			Convey("Then the chosen path should be cleared", func() {
				path, err := f.store.ChosenPath(ctx, "node@example.com")
				So(err, ShouldBeNil)
				So(path.Valid(), ShouldBeFalse)
			})

			Convey("And logging out again should fail", func() {
				So(f.svc.Logout(ctx, token), ShouldEqual, service.ErrNoSession)
			})

			Convey("And the record itself should survive", func() {
				_, err := f.store.Load(ctx, "node@example.com")
				So(err, ShouldBeNil)
			})
		})
	})
}

func TestService_Chat(t *testing.T) {
	ctx := context.Background()

	Convey("Given a completed session with a companion", t, func() {
		companion := &stubCompanion{reply: "The signal is clear.", audio: []byte{0xA, 0xB}}
		f := newFixture(
			service.WithCompanion(companion),
			service.WithFreeQueryLimit(2),
		)
		defer f.svc.Stop()

		token := f.completeOnboarding(ctx, "node@example.com")

		Convey("When a free user sends a free-form message", func() {
			_, err := f.svc.Chat(ctx, token, service.ChatInput{Message: "hello"})
			So(err, ShouldEqual, service.ErrUpgradeRequired)
		})

		Convey("When a free user sends directives", func() {
			reply, err := f.svc.Chat(ctx, token, service.ChatInput{Message: "Explain the Code.", Directive: true})
			So(err, ShouldBeNil)
			So(reply.Text, ShouldEqual, "The signal is clear.")

			Convey("Then the query budget should be consumed", func() {
				rec, err := f.store.Load(ctx, "node@example.com")
				So(err, ShouldBeNil)
				So(rec.QueriesUsed, ShouldEqual, 1)
			})

			Convey("And the budget should eventually run out", func() {
				_, err := f.svc.Chat(ctx, token, service.ChatInput{Message: "Again.", Directive: true})
				So(err, ShouldBeNil)

				_, err = f.svc.Chat(ctx, token, service.ChatInput{Message: "Once more.", Directive: true})
				So(err, ShouldEqual, service.ErrQueryLimit)
			})

			Convey("And committed turns should be sent as history on the next request", func() {
				_, err := f.svc.Chat(ctx, token, service.ChatInput{Message: "Again.", Directive: true})
				So(err, ShouldBeNil)

				companion.mu.Lock()
				history := companion.lastReq.History
				companion.mu.Unlock()
				So(history, ShouldHaveLength, 2)
				So(history[0].Role, ShouldEqual, model.RoleUser)
				So(history[0].Content, ShouldEqual, "Explain the Code.")
				So(history[1].Role, ShouldEqual, model.RoleModel)
			})
		})

		Convey("When a second message is issued while one is in flight", func() {
			companion.entered = make(chan struct{}, 2)
			companion.release = make(chan struct{})

			done := make(chan error, 2)
			go func() {
				_, err := f.svc.Chat(ctx, token, service.ChatInput{Message: "First.", Directive: true})
				done <- err
			}()
			<-companion.entered

			go func() {
				_, err := f.svc.Chat(ctx, token, service.ChatInput{Message: "Second.", Directive: true})
				done <- err
			}()

			companion.release <- struct{}{}
			<-companion.entered
			companion.release <- struct{}{}
			So(<-done, ShouldBeNil)
			So(<-done, ShouldBeNil)

			Convey("Then the later request should see the earlier committed turns", func() {
				companion.mu.Lock()
				history := companion.lastReq.History
				companion.mu.Unlock()

				So(history, ShouldHaveLength, 2)
				So(history[0].Role, ShouldEqual, model.RoleUser)
				So(history[0].Content, ShouldEqual, "First.")
				So(history[1].Role, ShouldEqual, model.RoleModel)
			})
		})

		Convey("When a premium user sends a free-form message", func() {
			_, err := f.svc.SetPremium(ctx, token, true)
			So(err, ShouldBeNil)

			reply, err := f.svc.Chat(ctx, token, service.ChatInput{Message: "hello"})
			So(err, ShouldBeNil)
			So(reply.Text, ShouldNotBeEmpty)

			companion.mu.Lock()
			premium := companion.lastReq.IsPremium
			companion.mu.Unlock()
			So(premium, ShouldBeTrue)
		})

		Convey("When narration is requested", func() {
			_, err := f.svc.SetPremium(ctx, token, true)
			So(err, ShouldBeNil)

			reply, err := f.svc.Chat(ctx, token, service.ChatInput{Message: "hello", Speak: true})
			So(err, ShouldBeNil)
			So(reply.Audio, ShouldResemble, []byte{0xA, 0xB})

			Convey("Then repeating the same line should hit the cache", func() {
				companion.mu.Lock()
				companion.reply = "The signal is clear." // same text, same clip
				companion.mu.Unlock()

				_, err := f.svc.Chat(ctx, token, service.ChatInput{Message: "hello again", Speak: true})
				So(err, ShouldBeNil)

				companion.mu.Lock()
				synths := companion.synths
				companion.mu.Unlock()
				So(synths, ShouldEqual, 1)
			})
		})

		Convey("When the author chats", func() {
			authorToken, _, err := f.svc.Login(ctx, "phoenix")
			So(err, ShouldBeNil)
			f.clock.Fire()

			for i := 0; i < 5; i++ {
				_, err := f.svc.Chat(ctx, authorToken, service.ChatInput{Message: "override"})
				So(err, ShouldBeNil)
			}

			Convey("Then no queries should be counted", func() {
				rec, err := f.store.Load(ctx, "architect@source.code")
				So(err, ShouldBeNil)
				So(rec.QueriesUsed, ShouldEqual, 0)
			})

			Convey("And the request should be flagged as the author's", func() {
				companion.mu.Lock()
				author := companion.lastReq.IsAuthor
				companion.mu.Unlock()
				So(author, ShouldBeTrue)
			})
		})

		Convey("When the companion fails", func() {
			companion.mu.Lock()
			companion.chatErr = errors.New("uplink severed")
			companion.mu.Unlock()

			_, err := f.svc.Chat(ctx, token, service.ChatInput{Message: "hello", Directive: true})
			So(err, ShouldNotBeNil)

			Convey("Then no turns should be committed for the failed request", func() {
				companion.mu.Lock()
				companion.chatErr = nil
				companion.mu.Unlock()

				_, err := f.svc.Chat(ctx, token, service.ChatInput{Message: "again", Directive: true})
				So(err, ShouldBeNil)

				companion.mu.Lock()
				history := companion.lastReq.History
				companion.mu.Unlock()
				So(history, ShouldBeEmpty)
			})
		})

		Convey("When chatting before onboarding is complete", func() {
			midToken, _, err := f.svc.Login(ctx, "other@example.com")
			So(err, ShouldBeNil)
			f.clock.Fire()

			_, err = f.svc.Chat(ctx, midToken, service.ChatInput{Message: "hello", Directive: true})
			So(err, ShouldEqual, onboarding.ErrInvalidStep)
		})

		Convey("When chatting without a session", func() {
			_, err := f.svc.Chat(ctx, "bogus", service.ChatInput{Message: "hello"})
			So(err, ShouldEqual, service.ErrNoSession)
		})
	})

	Convey("Given a completed session without a companion", t, func() {
		f := newFixture()
		defer f.svc.Stop()

		token := f.completeOnboarding(ctx, "node@example.com")

		Convey("When chatting", func() {
			_, err := f.svc.Chat(ctx, token, service.ChatInput{Message: "hello", Directive: true})
			So(err, ShouldEqual, service.ErrCompanionOffline)
		})
	})
}

func TestService_Lifecycle(t *testing.T) {
	ctx := context.Background()

	Convey("Given a new service", t, func() {
		f := newFixture()

		Convey("Then its stats should report it running", func() {
			stats := f.svc.GetStats()
			So(stats["started"], ShouldEqual, true)
			So(stats["sessions"], ShouldEqual, 0)
		})

		Convey("When sessions are open and the service stops", func() {
			_, _, err := f.svc.Login(ctx, "node@example.com")
			So(err, ShouldBeNil)

			f.svc.Stop()

			Convey("Then everything should be torn down", func() {
				stats := f.svc.GetStats()
				So(stats["started"], ShouldEqual, false)
			})

			Convey("And further logins should be refused", func() {
				_, _, err := f.svc.Login(ctx, "other@example.com")
				So(err, ShouldEqual, service.ErrNotStarted)
			})
		})

		Convey("When started twice", func() {
			So(f.svc.Start(ctx), ShouldBeNil)
			f.svc.Stop()
		})
	})
}
