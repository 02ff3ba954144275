package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	h "organizaai/internal/delivery/http/helpers"
	"organizaai/internal/domain"
)

// ChatRequest is the request body for POST /assistant/chat.
type ChatRequest struct {
	Messages []domain.ChatMessage `json:"messages"`
}

// Validate implements Validator.
func (c ChatRequest) Validate() []string {
	var errs []string
	if len(c.Messages) == 0 {
		errs = append(errs, "messages is required")
	}
	for _, m := range c.Messages {
		if strings.TrimSpace(m.Role) == "" || strings.TrimSpace(m.Content) == "" {
			errs = append(errs, "every message needs a role and content")
			break
		}
	}
	return errs
}

// ChatResponse is the response body for POST /assistant/chat.
type ChatResponse struct {
	Reply string `json:"reply"`
}

type AssistantController struct {
	Logger    *slog.Logger
	Assistant domain.ChatAssistant
}

func NewAssistantController(logger *slog.Logger, assistant domain.ChatAssistant) *AssistantController {
	return &AssistantController{
		Logger:    logger,
		Assistant: assistant,
	}
}

// Chat godoc
// @Summary Chat with the planning assistant
// @Description Forwards the conversation to the completion service and returns the assistant's reply. The caller keeps the conversation history.
// @Tags assistant
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ChatRequest true "Conversation messages"
// @Success 200 {object} helpers.APIResponse "data contains the reply"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 502 {object} helpers.APIResponse "error.code: bad_gateway"
// @Failure 503 {object} helpers.APIResponse "error.code: internal_error"
// @Router /assistant/chat [post]
func (c *AssistantController) Chat(w http.ResponseWriter, r *http.Request) {
	if c.Assistant == nil {
		h.WriteJSONError(w, http.StatusServiceUnavailable, h.ErrCodeInternalError, "assistente não configurado")
		return
	}
	var req ChatRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	reply, err := c.Assistant.Complete(r.Context(), req.Messages)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "completion failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusBadGateway, h.ErrCodeBadGateway, "Assistente indisponível no momento")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, ChatResponse{Reply: reply})
}
