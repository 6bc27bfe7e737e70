// Package service provides the core business service that implements the
// dependencies required by the HTTP API: session lifecycle, the per-session
// onboarding machine, calibration scoring, and the companion chat surface.
package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/phoenixgodbrain/neurogate/internal/adapters/ai"
	"github.com/phoenixgodbrain/neurogate/internal/adapters/repository"
	"github.com/phoenixgodbrain/neurogate/internal/auth"
	"github.com/phoenixgodbrain/neurogate/internal/domain/archetype"
	"github.com/phoenixgodbrain/neurogate/internal/domain/catalog"
	"github.com/phoenixgodbrain/neurogate/internal/domain/model"
	"github.com/phoenixgodbrain/neurogate/internal/domain/scoring"
	"github.com/phoenixgodbrain/neurogate/internal/onboarding"
	"github.com/phoenixgodbrain/neurogate/pkg/logger"
	"github.com/phoenixgodbrain/neurogate/pkg/metrics"
)

// Default configuration.
const (
	defaultFreeQueryLimit = 10
	defaultChatLaneSize   = 16
	defaultAudioCacheSize = 64
)

// The privileged identity created by the author login, from the reference
// client.
const (
	authorName   = "The Phoenix"
	authorAvatar = "https://api.dicebear.com/7.x/bottts/svg?seed=Phoenix"
	authorAlias  = "phoenix"
)

// session is the server-side state of one authenticated onboarding run.
type session struct {
	token      string
	email      string
	isAuthor   bool
	machine    *onboarding.Machine
	primary    scoring.PrimaryTally
	skill      scoring.SkillTally
	primaryIdx int
	skillIdx   int
	resolution *archetype.Resolution
	pathChosen bool
	history    []model.ChatTurn
}

// Service implements the API dependencies for the onboarding system.
type Service struct {
	mu sync.RWMutex

	// Core components
	store      repository.Store
	tokens     *auth.TokenService
	companion  ai.Companion
	dispatcher *ai.Dispatcher
	audioCache *ai.AudioCache
	scorer     *scoring.Scorer
	sessions   map[string]*session

	// Configuration
	adminIdentities     []string
	adminResetOnRestore bool
	freeQueryLimit      int
	overlayDuration     time.Duration
	warpDuration        time.Duration
	chatLaneSize        int
	audioCacheSize      int
	clock               onboarding.Clock

	// State
	started bool

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		sessions:            make(map[string]*session),
		adminIdentities:     []string{"architect@source.code", "admin@godsbrain.com"},
		adminResetOnRestore: true,
		freeQueryLimit:      defaultFreeQueryLimit,
		chatLaneSize:        defaultChatLaneSize,
		audioCacheSize:      defaultAudioCacheSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	if s.store == nil {
		s.store = repository.NewFileStore("")
	}
	if s.tokens == nil {
		s.tokens = auth.NewTokenService("", 0)
	}
	s.scorer = scoring.NewScorer()
	s.dispatcher = ai.NewDispatcher(ai.WithLaneSize(s.chatLaneSize))
	s.audioCache = ai.NewAudioCache(ai.WithCacheSize(s.audioCacheSize))

	s.started = true
	s.logger.Info(ctx, "onboarding service started",
		logger.Int("freeQueryLimit", s.freeQueryLimit),
		logger.Bool("adminResetOnRestore", s.adminResetOnRestore),
		logger.Bool("companion", s.companion != nil),
	)
	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping onboarding service...")

	for token, sess := range s.sessions {
		sess.machine.Teardown()
		delete(s.sessions, token)
	}
	metrics.UpdateSessionsActive(0)
	s.started = false
	s.mu.Unlock()

	// Closing the dispatcher waits for in-flight lane jobs, and those jobs
	// take the service lock to commit turns; the close must run unlocked.
	if s.dispatcher != nil {
		_ = s.dispatcher.Close()
	}
	if s.companion != nil {
		_ = s.companion.Close()
	}
	if s.store != nil {
		_ = s.store.Close()
	}

	s.logger.Info(ctx, "onboarding service stopped")
}

// newMachine creates a machine for one session with the configured timings.
func (s *Service) newMachine() *onboarding.Machine {
	opts := []onboarding.Option{
		onboarding.WithOverlayDuration(s.overlayDuration),
		onboarding.WithWarpDuration(s.warpDuration),
	}
	if s.clock != nil {
		opts = append(opts, onboarding.WithClock(s.clock))
	}
	return onboarding.New(opts...)
}

// isAdmin reports whether email is a privileged identity.
func (s *Service) isAdmin(email string) bool {
	if strings.EqualFold(email, authorAlias) {
		return true
	}
	for _, id := range s.adminIdentities {
		if strings.EqualFold(email, id) {
			return true
		}
	}
	return false
}

// Login authenticates an identity, creates or updates its record, and starts
// a fresh onboarding session. Privileged identities bypass calibration.
func (s *Service) Login(ctx context.Context, email string) (string, State, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return "", portalState(), ErrInvalidLogin
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return "", portalState(), ErrNotStarted
	}

	admin := s.isAdmin(email)
	if admin && email == authorAlias {
		email = s.adminIdentities[0]
	}

	now := time.Now().UnixMilli()
	rec, err := s.store.Load(ctx, email)
	switch {
	case admin:
		rec = model.UserRecord{
			Profile: model.Profile{
				Version:  model.ProfileVersion,
				Name:     authorName,
				Email:    email,
				Provider: "email",
				Avatar:   authorAvatar,
			},
			QueriesUsed: 0,
			IsPremium:   true,
			LastLogin:   now,
		}
	case err == nil:
		rec.LastLogin = now
	default:
		rec = model.UserRecord{
			Profile: model.Profile{
				Version:  model.ProfileVersion,
				Name:     strings.SplitN(email, "@", 2)[0],
				Email:    email,
				Provider: "email",
			},
			LastLogin: now,
		}
	}
	if err := s.store.Save(ctx, email, rec); err != nil {
		return "", portalState(), fmt.Errorf("save record: %w", err)
	}

	token, err := s.tokens.Issue(email)
	if err != nil {
		return "", portalState(), fmt.Errorf("issue token: %w", err)
	}

	sess := &session{
		token:   token,
		email:   email,
		machine: s.newMachine(),
		primary: scoring.NewPrimaryTally(),
		skill:   scoring.NewSkillTally(),
	}

	if admin {
		sess.isAuthor = true
		sess.pathChosen = true
		if err := s.store.SetChosenPath(ctx, email, model.PathBlended); err != nil {
			return "", portalState(), fmt.Errorf("save path: %w", err)
		}
		if err := sess.machine.AdminLogin(ctx); err != nil {
			return "", portalState(), err
		}
		metrics.RecordLogin("admin")
	} else {
		if err := sess.machine.Login(ctx); err != nil {
			return "", portalState(), err
		}
		metrics.RecordLogin("email")
	}

	s.sessions[token] = sess
	metrics.UpdateSessionsActive(len(s.sessions))
	s.logger.Info(ctx, "session opened",
		logger.String("email", email),
		logger.Bool("admin", admin),
	)
	return token, s.stateLocked(ctx, sess), nil
}

// Logout ends the session. The chosen path is cleared so the next login
// lands on the showcase instead of the dashboard.
func (s *Service) Logout(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return ErrNoSession
	}
	s.endSessionLocked(ctx, sess)
	return nil
}

// endSessionLocked tears down a session and its persisted path. Caller
// holds s.mu.
func (s *Service) endSessionLocked(ctx context.Context, sess *session) {
	sess.machine.Teardown()
	delete(s.sessions, sess.token)
	if s.dispatcher != nil {
		s.dispatcher.Release(sess.token)
	}
	if err := s.store.SetChosenPath(ctx, sess.email, model.PathNone); err != nil {
		s.logger.Warn(ctx, "clearing path failed", logger.Error(err))
	}
	metrics.RecordLogout()
	metrics.UpdateSessionsActive(len(s.sessions))
	s.logger.Info(ctx, "session closed", logger.String("email", sess.email))
}

// State returns the onboarding state for a token, restoring a session from
// the store when the token is valid but the process has no live session.
// Anything unverifiable degrades to the portal.
func (s *Service) State(ctx context.Context, token string) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessionLocked(ctx, token)
	if !ok {
		return portalState()
	}
	return s.stateLocked(ctx, sess)
}

// sessionLocked finds or restores the session for a token. Caller holds s.mu.
func (s *Service) sessionLocked(ctx context.Context, token string) (*session, bool) {
	if token == "" || !s.started {
		return nil, false
	}
	if sess, ok := s.sessions[token]; ok {
		return sess, true
	}

	email, err := s.tokens.Verify(token)
	if err != nil {
		return nil, false
	}
	if _, err := s.store.Load(ctx, email); err != nil {
		return nil, false
	}

	admin := s.isAdmin(email)
	if admin && s.adminResetOnRestore {
		// Privileged identities always re-authenticate.
		return nil, false
	}

	path, err := s.store.ChosenPath(ctx, email)
	if err != nil {
		path = model.PathNone
	}

	sess := &session{
		token:      token,
		email:      email,
		isAuthor:   admin,
		machine:    s.newMachine(),
		primary:    scoring.NewPrimaryTally(),
		skill:      scoring.NewSkillTally(),
		pathChosen: path.Valid(),
	}
	sess.machine.Restore(ctx, true, path.Valid(), false)

	s.sessions[token] = sess
	metrics.UpdateSessionsActive(len(s.sessions))
	s.logger.Info(ctx, "session restored",
		logger.String("email", email),
		logger.String("step", string(sess.machine.Current())),
	)
	return sess, true
}

// stateLocked builds the state view for one session. Caller holds s.mu.
func (s *Service) stateLocked(ctx context.Context, sess *session) State {
	st := State{Step: sess.machine.Current(), Path: model.PathNone, IsAuthor: sess.isAuthor}
	if t, ok := sess.machine.Pending(); ok {
		st.Overlay = overlayView(t)
	}
	if rec, err := s.store.Load(ctx, sess.email); err == nil {
		p := rec.Profile
		st.Profile = &p
		st.QueriesUsed = rec.QueriesUsed
		st.IsPremium = rec.IsPremium || sess.isAuthor
	}
	if p, err := s.store.ChosenPath(ctx, sess.email); err == nil {
		st.Path = p
	}

	switch st.Step {
	case onboarding.StepInitPrimary:
		st.Question = questionView(catalog.PhasePrimary, sess.primaryIdx)
	case onboarding.StepInitSkill:
		st.Question = questionView(catalog.PhaseSkill, sess.skillIdx)
	case onboarding.StepReveal:
		res := archetype.Resolve(sess.primary, scoring.NewSkillTally())
		st.Reveal = revealView(res, false)
	case onboarding.StepSynthesis, onboarding.StepBuilder:
		if sess.resolution != nil {
			st.Reveal = revealView(*sess.resolution, true)
		}
	}
	return st
}

// AnswerResult is the outcome of scoring one calibration answer.
type AnswerResult struct {
	Reaction  string `json:"reaction"`
	PhaseDone bool   `json:"phase_done"`
	State     State  `json:"state"`
}

// Answer scores the selected option for the active question and advances
// the sequence. Answering the last question of a phase completes it.
func (s *Service) Answer(ctx context.Context, token string, questionID int, optionLabel string) (AnswerResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessionLocked(ctx, token)
	if !ok {
		return AnswerResult{}, ErrNoSession
	}

	var (
		phase catalog.Phase
		idx   *int
	)
	switch sess.machine.Current() {
	case onboarding.StepInitPrimary:
		phase, idx = catalog.PhasePrimary, &sess.primaryIdx
	case onboarding.StepInitSkill:
		phase, idx = catalog.PhaseSkill, &sess.skillIdx
	default:
		return AnswerResult{}, onboarding.ErrInvalidStep
	}
	if sess.machine.OverlayActive() {
		return AnswerResult{}, onboarding.ErrOverlayActive
	}

	qs := catalog.QuestionsFor(phase)
	q := qs[*idx]
	if q.ID != questionID {
		return AnswerResult{}, ErrWrongQuestion
	}

	var opt *catalog.Option
	for i := range q.Options {
		if q.Options[i].Label == optionLabel {
			opt = &q.Options[i]
			break
		}
	}
	if opt == nil {
		return AnswerResult{}, ErrUnknownOption
	}

	if phase == catalog.PhasePrimary {
		s.scorer.ScorePrimary(ctx, sess.primary, q, *opt)
	} else {
		s.scorer.ScoreSkill(ctx, sess.skill, q, *opt)
	}
	*idx++

	res := AnswerResult{Reaction: opt.Reaction}
	if *idx >= len(qs) {
		res.PhaseDone = true
		if phase == catalog.PhasePrimary {
			if err := sess.machine.CompletePrimary(ctx); err != nil {
				return AnswerResult{}, err
			}
		} else {
			r := archetype.Resolve(sess.primary, sess.skill)
			sess.resolution = &r
			metrics.RecordProfileResolved(string(r.Archetype))
			if err := sess.machine.CompleteSkill(ctx); err != nil {
				return AnswerResult{}, err
			}
		}
	}

	res.State = s.stateLocked(ctx, sess)
	return res, nil
}

// Back applies the backward edge for the session's current step. Backing out
// of the showcase logs out. Re-entering a question phase restarts its
// sequence without rolling back recorded tallies.
func (s *Service) Back(ctx context.Context, token string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessionLocked(ctx, token)
	if !ok {
		return portalState(), ErrNoSession
	}

	step, err := sess.machine.Back(ctx, sess.pathChosen)
	if err != nil {
		return s.stateLocked(ctx, sess), err
	}

	switch step {
	case onboarding.StepPortal:
		s.endSessionLocked(ctx, sess)
		return portalState(), nil
	case onboarding.StepInitPrimary:
		sess.primaryIdx = 0
	case onboarding.StepInitSkill:
		sess.skillIdx = 0
	}
	return s.stateLocked(ctx, sess), nil
}

// Continue starts the calibration sequence from the showcase.
func (s *Service) Continue(ctx context.Context, token string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessionLocked(ctx, token)
	if !ok {
		return portalState(), ErrNoSession
	}
	if err := sess.machine.BeginCalibration(ctx); err != nil {
		return s.stateLocked(ctx, sess), err
	}
	// Entering the phase restarts its sequence; recorded tallies stay.
	sess.primaryIdx = 0
	return s.stateLocked(ctx, sess), nil
}

// ManualSelect bypasses calibration with a directly chosen archetype. The
// path, archetype, and starting skill are committed immediately.
func (s *Service) ManualSelect(ctx context.Context, token string, a model.Archetype, skill string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessionLocked(ctx, token)
	if !ok {
		return portalState(), ErrNoSession
	}

	known := false
	for _, candidate := range catalog.Archetypes() {
		if candidate == a {
			known = true
			break
		}
	}
	if !known {
		return s.stateLocked(ctx, sess), ErrUnknownArchetype
	}
	if skill == "" {
		skill = catalog.SkillName(a, 0)
	}

	if err := sess.machine.ManualSelect(ctx, a, skill); err != nil {
		return s.stateLocked(ctx, sess), err
	}

	info := catalog.InfoFor(a)
	if err := s.commitProfileLocked(ctx, sess, a, skill, info.Path); err != nil {
		return s.stateLocked(ctx, sess), err
	}
	return s.stateLocked(ctx, sess), nil
}

// Accept advances past a confirmation screen: the reveal opens the skill
// phase, the synthesis commits the resolved profile and warps to the builder.
func (s *Service) Accept(ctx context.Context, token string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessionLocked(ctx, token)
	if !ok {
		return portalState(), ErrNoSession
	}

	switch sess.machine.Current() {
	case onboarding.StepReveal:
		if err := sess.machine.AcceptArchetype(ctx); err != nil {
			return s.stateLocked(ctx, sess), err
		}
		sess.skillIdx = 0
	case onboarding.StepSynthesis:
		if sess.resolution == nil {
			return s.stateLocked(ctx, sess), onboarding.ErrInvalidStep
		}
		res := *sess.resolution
		info := catalog.InfoFor(res.Archetype)
		if err := sess.machine.AcceptSynthesis(ctx, info.WarpColor); err != nil {
			return s.stateLocked(ctx, sess), err
		}
		if err := s.commitProfileLocked(ctx, sess, res.Archetype, res.SkillName, info.Path); err != nil {
			return s.stateLocked(ctx, sess), err
		}
	default:
		return s.stateLocked(ctx, sess), onboarding.ErrInvalidStep
	}
	return s.stateLocked(ctx, sess), nil
}

// commitProfileLocked persists the archetype, skill, and path for a session.
// Caller holds s.mu.
func (s *Service) commitProfileLocked(ctx context.Context, sess *session, a model.Archetype, skill string, path model.Path) error {
	rec, err := s.store.Load(ctx, sess.email)
	if err != nil {
		return fmt.Errorf("load record: %w", err)
	}
	rec.Profile.Archetype = a
	rec.Profile.StartingSkill = skill
	if err := s.store.Save(ctx, sess.email, rec); err != nil {
		return fmt.Errorf("save record: %w", err)
	}
	if err := s.store.SetChosenPath(ctx, sess.email, path); err != nil {
		return fmt.Errorf("save path: %w", err)
	}
	sess.pathChosen = true
	return nil
}

// FinishBuilder stores the avatar and completes onboarding.
func (s *Service) FinishBuilder(ctx context.Context, token, avatar string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessionLocked(ctx, token)
	if !ok {
		return portalState(), ErrNoSession
	}
	if err := sess.machine.FinishBuilder(ctx); err != nil {
		return s.stateLocked(ctx, sess), err
	}
	if avatar != "" {
		rec, err := s.store.Load(ctx, sess.email)
		if err == nil {
			rec.Profile.Avatar = avatar
			if err := s.store.Save(ctx, sess.email, rec); err != nil {
				s.logger.Warn(ctx, "saving avatar failed", logger.Error(err))
			}
		}
	}
	return s.stateLocked(ctx, sess), nil
}

// EditAvatar re-enters the builder from the dashboard.
func (s *Service) EditAvatar(ctx context.Context, token string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessionLocked(ctx, token)
	if !ok {
		return portalState(), ErrNoSession
	}
	if err := sess.machine.EditAvatar(ctx); err != nil {
		return s.stateLocked(ctx, sess), err
	}
	return s.stateLocked(ctx, sess), nil
}

// SetPremium toggles the premium entitlement on the session's record.
func (s *Service) SetPremium(ctx context.Context, token string, premium bool) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessionLocked(ctx, token)
	if !ok {
		return portalState(), ErrNoSession
	}
	rec, err := s.store.Load(ctx, sess.email)
	if err != nil {
		return s.stateLocked(ctx, sess), fmt.Errorf("load record: %w", err)
	}
	rec.IsPremium = premium
	if err := s.store.Save(ctx, sess.email, rec); err != nil {
		return s.stateLocked(ctx, sess), fmt.Errorf("save record: %w", err)
	}
	return s.stateLocked(ctx, sess), nil
}

// ChatInput is one companion request.
type ChatInput struct {
	Message   string
	Language  string
	Directive bool
	Speak     bool
	Voice     ai.Voice
}

// ChatReply is the companion's answer, with optional narration audio.
type ChatReply struct {
	Text  string `json:"text"`
	Audio []byte `json:"audio,omitempty"`
}

// Chat sends a message to the companion on the session's lane. Requests on
// one session are answered in issue order; only committed turns are sent as
// history. Non-premium users are limited to canned directives and the free
// query budget; privileged users are never counted.
func (s *Service) Chat(ctx context.Context, token string, in ChatInput) (ChatReply, error) {
	s.mu.Lock()
	sess, ok := s.sessionLocked(ctx, token)
	if !ok {
		s.mu.Unlock()
		return ChatReply{}, ErrNoSession
	}
	if s.companion == nil {
		s.mu.Unlock()
		return ChatReply{}, ErrCompanionOffline
	}
	if sess.machine.Current() != onboarding.StepComplete {
		s.mu.Unlock()
		return ChatReply{}, onboarding.ErrInvalidStep
	}

	rec, err := s.store.Load(ctx, sess.email)
	if err != nil {
		s.mu.Unlock()
		return ChatReply{}, fmt.Errorf("load record: %w", err)
	}
	premium := rec.IsPremium || sess.isAuthor

	if !premium && !in.Directive {
		s.mu.Unlock()
		return ChatReply{}, ErrUpgradeRequired
	}
	if !sess.isAuthor {
		if !rec.IsPremium && rec.QueriesUsed >= s.freeQueryLimit {
			s.mu.Unlock()
			return ChatReply{}, ErrQueryLimit
		}
		rec.QueriesUsed++
		if err := s.store.Save(ctx, sess.email, rec); err != nil {
			s.logger.Warn(ctx, "saving query count failed", logger.Error(err))
		}
	}

	path, err := s.store.ChosenPath(ctx, sess.email)
	if err != nil || !path.Valid() {
		path = model.PathBlended
	}

	req := ai.ChatRequest{
		Message:   in.Message,
		Path:      path,
		Language:  in.Language,
		Name:      rec.Profile.Name,
		IsAuthor:  sess.isAuthor,
		IsPremium: rec.IsPremium,
	}
	lane := sess.token
	s.mu.Unlock()

	// The history snapshot and the turn commit both happen inside the lane
	// job. The lane runs jobs one at a time, so each request sees every
	// previously committed turn and none that is still in flight, and turns
	// land in the session history in lane order.
	text, err := s.dispatcher.Do(ctx, lane, func(ctx context.Context) (string, error) {
		s.mu.Lock()
		req.History = append([]model.ChatTurn(nil), sess.history...)
		s.mu.Unlock()

		reply, err := s.companion.Chat(ctx, req)
		if err != nil {
			return "", err
		}

		s.mu.Lock()
		sess.history = append(sess.history,
			model.ChatTurn{Role: model.RoleUser, Content: in.Message},
			model.ChatTurn{Role: model.RoleModel, Content: reply},
		)
		s.mu.Unlock()
		return reply, nil
	})
	if err != nil {
		return ChatReply{}, err
	}

	reply := ChatReply{Text: text}
	if in.Speak && text != "" {
		reply.Audio = s.narrate(ctx, text, in.Voice)
	}
	return reply, nil
}

// narrate returns cached narration audio for text, synthesizing on a miss.
// Audio is best effort; failures yield a silent reply.
func (s *Service) narrate(ctx context.Context, text string, voice ai.Voice) []byte {
	if voice != ai.VoiceFemale {
		voice = ai.VoiceMale
	}
	key := ai.Key(text, voice)
	if data, ok := s.audioCache.Get(key); ok {
		return data
	}
	data, err := s.companion.Synthesize(ctx, text, voice)
	if err != nil || len(data) == 0 {
		return nil
	}
	s.audioCache.Put(key, data)
	return data
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":  s.started,
		"sessions": len(s.sessions),
	}
	if s.started {
		stats["records"] = s.store.Count(context.Background())
		stats["audioCache"] = s.audioCache.Len()
	}
	return stats
}
