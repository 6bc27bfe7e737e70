package api

import (
	"encoding/json"
	"net/http"
	"strings"

	service "github.com/phoenixgodbrain/neurogate/internal/app"
)

// SessionHandler handles login, logout, and state requests.
type SessionHandler struct {
	deps Dependencies
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(deps Dependencies) *SessionHandler {
	return &SessionHandler{deps: deps}
}

type loginRequest struct {
	Email string `json:"email"`
}

type loginResponse struct {
	Token string `json:"token"`
	State State  `json:"state"`
}

// HandleLogin handles POST /session/login requests.
func (h *SessionHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	const op = "api.login"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, service.ErrInvalidLogin))
		return
	}

	token, state, err := h.deps.Login(r.Context(), req.Email)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: token, State: state})
}

// HandleLogout handles POST /session/logout requests.
func (h *SessionHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if err := h.deps.Logout(r.Context(), bearerToken(r)); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stateResponse{State: h.deps.State(r.Context(), "")})
}

// HandleState handles GET /session/state requests. An absent or invalid
// token yields the portal state rather than an error.
func (h *SessionHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, stateResponse{State: h.deps.State(r.Context(), bearerToken(r))})
}

type premiumRequest struct {
	Premium bool `json:"premium"`
}

// HandlePremium handles POST /session/premium requests.
func (h *SessionHandler) HandlePremium(w http.ResponseWriter, r *http.Request) {
	const op = "api.premium"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req premiumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	state, err := h.deps.SetPremium(r.Context(), bearerToken(r), req.Premium)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stateResponse{State: state})
}
