package handler

import (
	"encoding/json"
	"net/http"

	"github.com/aicockpit/aicockpit/internal/agent"
	"github.com/aicockpit/aicockpit/internal/models"
)

// ChatHandler handles POST /api/chat
type ChatHandler struct {
	pipeline *agent.Pipeline
}

func NewChatHandler(pipeline *agent.Pipeline) *ChatHandler {
	return &ChatHandler{pipeline: pipeline}
}

// Ask handles POST /api/chat. Recoverable pipeline failures come back
// as 200 with an error-typed envelope; only malformed request bodies
// are transport-level errors.
func (h *ChatHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req models.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if msg := req.Validate(); msg != "" {
		models.WriteError(w, http.StatusBadRequest, msg)
		return
	}

	resp := h.pipeline.Answer(r.Context(), req.Question)
	models.WriteJSON(w, http.StatusOK, resp)
}
