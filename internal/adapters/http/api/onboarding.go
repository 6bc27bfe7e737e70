package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/phoenixgodbrain/neurogate/internal/domain/model"
)

// OnboardingHandler handles the step-machine actions.
type OnboardingHandler struct {
	deps Dependencies
}

// NewOnboardingHandler creates a new onboarding handler.
func NewOnboardingHandler(deps Dependencies) *OnboardingHandler {
	return &OnboardingHandler{deps: deps}
}

type answerRequest struct {
	QuestionID int    `json:"question_id"`
	Option     string `json:"option"`
}

func (a answerRequest) validate() error {
	switch {
	case a.QuestionID <= 0:
		return NewKind("api.answer", ErrBadRequest)
	case strings.TrimSpace(a.Option) == "":
		return NewKind("api.answer", ErrBadRequest)
	}
	return nil
}

// HandleAnswer handles POST /onboarding/answer requests.
func (h *OnboardingHandler) HandleAnswer(w http.ResponseWriter, r *http.Request) {
	const op = "api.answer"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	result, err := h.deps.Answer(r.Context(), bearerToken(r), req.QuestionID, req.Option)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleBack handles POST /onboarding/back requests.
func (h *OnboardingHandler) HandleBack(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	state, err := h.deps.Back(r.Context(), bearerToken(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stateResponse{State: state})
}

// HandleContinue handles POST /onboarding/continue requests.
func (h *OnboardingHandler) HandleContinue(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	state, err := h.deps.Continue(r.Context(), bearerToken(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stateResponse{State: state})
}

type selectRequest struct {
	Archetype string `json:"archetype"`
	Skill     string `json:"skill"`
}

// HandleSelect handles POST /onboarding/select requests.
func (h *OnboardingHandler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	const op = "api.select"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.Archetype) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	state, err := h.deps.ManualSelect(r.Context(), bearerToken(r), model.Archetype(req.Archetype), req.Skill)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stateResponse{State: state})
}

// HandleAccept handles POST /onboarding/accept requests.
func (h *OnboardingHandler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	state, err := h.deps.Accept(r.Context(), bearerToken(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stateResponse{State: state})
}

type builderFinishRequest struct {
	Avatar string `json:"avatar"`
}

// HandleBuilderFinish handles POST /onboarding/builder/finish requests.
func (h *OnboardingHandler) HandleBuilderFinish(w http.ResponseWriter, r *http.Request) {
	const op = "api.builder_finish"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req builderFinishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	state, err := h.deps.FinishBuilder(r.Context(), bearerToken(r), req.Avatar)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stateResponse{State: state})
}

// HandleEditAvatar handles POST /onboarding/edit-avatar requests.
func (h *OnboardingHandler) HandleEditAvatar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	state, err := h.deps.EditAvatar(r.Context(), bearerToken(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stateResponse{State: state})
}
