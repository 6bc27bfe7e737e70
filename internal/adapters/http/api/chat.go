package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/phoenixgodbrain/neurogate/internal/adapters/ai"
	service "github.com/phoenixgodbrain/neurogate/internal/app"
)

// ChatHandler handles companion requests.
type ChatHandler struct {
	deps Dependencies
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(deps Dependencies) *ChatHandler {
	return &ChatHandler{deps: deps}
}

type chatRequest struct {
	Message   string `json:"message"`
	Language  string `json:"language"`
	Directive bool   `json:"directive"`
	Speak     bool   `json:"speak"`
	Voice     string `json:"voice"`
}

// HandleChat handles POST /chat requests.
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	const op = "api.chat"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	voice := ai.VoiceMale
	if strings.EqualFold(req.Voice, string(ai.VoiceFemale)) {
		voice = ai.VoiceFemale
	}

	reply, err := h.deps.Chat(r.Context(), bearerToken(r), service.ChatInput{
		Message:   req.Message,
		Language:  req.Language,
		Directive: req.Directive,
		Speak:     req.Speak,
		Voice:     voice,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reply)
}
