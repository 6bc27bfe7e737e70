// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/phoenixgodbrain/neurogate/internal/adapters/ai"
	service "github.com/phoenixgodbrain/neurogate/internal/app"
	"github.com/phoenixgodbrain/neurogate/internal/domain/model"
	"github.com/phoenixgodbrain/neurogate/internal/onboarding"
)

// Read shapes mirrored from the service layer.
type (
	State        = service.State
	AnswerResult = service.AnswerResult
	ChatReply    = service.ChatReply
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Login(ctx context.Context, email string) (string, State, error)
	Logout(ctx context.Context, token string) error
	State(ctx context.Context, token string) State

	Answer(ctx context.Context, token string, questionID int, optionLabel string) (AnswerResult, error)
	Back(ctx context.Context, token string) (State, error)
	Continue(ctx context.Context, token string) (State, error)
	ManualSelect(ctx context.Context, token string, a model.Archetype, skill string) (State, error)
	Accept(ctx context.Context, token string) (State, error)
	FinishBuilder(ctx context.Context, token, avatar string) (State, error)
	EditAvatar(ctx context.Context, token string) (State, error)
	SetPremium(ctx context.Context, token string, premium bool) (State, error)

	Chat(ctx context.Context, token string, in service.ChatInput) (ChatReply, error)
}

// StatsProvider exposes service statistics for the stats endpoint.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// Server wires HTTP routes for the business API.
type Server struct {
	sessionHandler    *SessionHandler
	onboardingHandler *OnboardingHandler
	chatHandler       *ChatHandler
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		sessionHandler:    NewSessionHandler(deps),
		onboardingHandler: NewOnboardingHandler(deps),
		chatHandler:       NewChatHandler(deps),
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/session/login", MetricsMiddleware(s.sessionHandler.HandleLogin, "session_login"))
	mux.HandleFunc("/session/logout", MetricsMiddleware(s.sessionHandler.HandleLogout, "session_logout"))
	mux.HandleFunc("/session/state", MetricsMiddleware(s.sessionHandler.HandleState, "session_state"))
	mux.HandleFunc("/session/premium", MetricsMiddleware(s.sessionHandler.HandlePremium, "session_premium"))

	mux.HandleFunc("/onboarding/answer", MetricsMiddleware(s.onboardingHandler.HandleAnswer, "onboarding_answer"))
	mux.HandleFunc("/onboarding/back", MetricsMiddleware(s.onboardingHandler.HandleBack, "onboarding_back"))
	mux.HandleFunc("/onboarding/continue", MetricsMiddleware(s.onboardingHandler.HandleContinue, "onboarding_continue"))
	mux.HandleFunc("/onboarding/select", MetricsMiddleware(s.onboardingHandler.HandleSelect, "onboarding_select"))
	mux.HandleFunc("/onboarding/accept", MetricsMiddleware(s.onboardingHandler.HandleAccept, "onboarding_accept"))
	mux.HandleFunc("/onboarding/builder/finish", MetricsMiddleware(s.onboardingHandler.HandleBuilderFinish, "onboarding_builder_finish"))
	mux.HandleFunc("/onboarding/edit-avatar", MetricsMiddleware(s.onboardingHandler.HandleEditAvatar, "onboarding_edit_avatar"))

	mux.HandleFunc("/chat", MetricsMiddleware(s.chatHandler.HandleChat, "chat"))

	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
}

// bearerToken extracts the session token from the Authorization header.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(h, "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	return ""
}

type stateResponse struct {
	State State `json:"state"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError translates service errors to HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNoSession):
		writeError(w, http.StatusUnauthorized, "no_session", err)
	case errors.Is(err, service.ErrInvalidLogin),
		errors.Is(err, service.ErrWrongQuestion),
		errors.Is(err, service.ErrUnknownOption),
		errors.Is(err, service.ErrUnknownArchetype):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, onboarding.ErrInvalidStep),
		errors.Is(err, onboarding.ErrOverlayActive),
		errors.Is(err, onboarding.ErrTornDown):
		writeError(w, http.StatusConflict, "invalid_step", err)
	case errors.Is(err, service.ErrUpgradeRequired):
		writeError(w, http.StatusForbidden, "upgrade_required", err)
	case errors.Is(err, service.ErrQueryLimit),
		errors.Is(err, ai.ErrLaneBusy):
		writeError(w, http.StatusTooManyRequests, "query_limit", err)
	case errors.Is(err, service.ErrCompanionOffline),
		errors.Is(err, ai.ErrDispatchDown),
		errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "unavailable", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal", err)
	}
}
