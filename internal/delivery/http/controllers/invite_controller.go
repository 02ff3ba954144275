package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	h "organizaai/internal/delivery/http/helpers"
	"organizaai/internal/delivery/http/middleware"
	"organizaai/internal/domain"
)

// InviteUserRequest is the request body for POST /events/invite.
type InviteUserRequest struct {
	EventID string  `json:"eventId"`
	Email   string  `json:"email"`
	Message *string `json:"message"`
}

// Validate implements Validator.
func (i InviteUserRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(i.EventID) == "" {
		errs = append(errs, "eventId is required")
	}
	if strings.TrimSpace(i.Email) == "" {
		errs = append(errs, "email is required")
	}
	return errs
}

// AnswerInviteRequest is the request body for POST /events/answer.
type AnswerInviteRequest struct {
	InviteID string `json:"inviteId"`
	Answer   string `json:"answer"`
}

// Validate implements Validator.
func (a AnswerInviteRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(a.InviteID) == "" {
		errs = append(errs, "inviteId is required")
	}
	if strings.TrimSpace(a.Answer) == "" {
		errs = append(errs, "answer is required")
	}
	return errs
}

// ConfirmPresenceResponse is the response body for POST /events/{eventID}/confirm.
type ConfirmPresenceResponse struct {
	Confirmed bool `json:"confirmed"`
}

type InviteController struct {
	Logger  *slog.Logger
	Service domain.InviteService
}

func NewInviteController(logger *slog.Logger, svc domain.InviteService) *InviteController {
	return &InviteController{
		Logger:  logger,
		Service: svc,
	}
}

// InviteUser godoc
// @Summary Invite a user to an event
// @Description Invite a registered user by email. Only the event owner may invite. Each user can be invited at most once per event.
// @Tags invites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body InviteUserRequest true "Invite data"
// @Success 201 {object} helpers.APIResponse "data contains the created invite"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 422 {object} helpers.APIResponse "error.code: unprocessable"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/invite [post]
func (c *InviteController) InviteUser(w http.ResponseWriter, r *http.Request) {
	var req InviteUserRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	invite, err := c.Service.InviteUser(r.Context(), userID, req.EventID, req.Email, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidEmail):
			h.WriteJSONError(w, http.StatusUnprocessableEntity, h.ErrCodeUnprocessable, "E-mail inválido")
		case errors.Is(err, domain.ErrNotFound):
			h.WriteJSONError(w, http.StatusUnprocessableEntity, h.ErrCodeUnprocessable, "Evento não encontrado")
		case errors.Is(err, domain.ErrForbidden):
			h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "Você não tem permissão para convidar usuários para este evento")
		case errors.Is(err, domain.ErrUserNotFound):
			h.WriteJSONError(w, http.StatusUnprocessableEntity, h.ErrCodeUnprocessable, "Usuário não encontrado")
		case errors.Is(err, domain.ErrAlreadyInvited):
			h.WriteJSONError(w, http.StatusUnprocessableEntity, h.ErrCodeUnprocessable, "Usuário já convidado")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		}
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, invite)
}

// AnswerInvite godoc
// @Summary Answer an invite
// @Description Accept or deny a pending invite. Only the invited user may answer, and only once.
// @Tags invites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body AnswerInviteRequest true "Answer: accept or deny"
// @Success 200 {object} helpers.APIResponse "data contains status ok"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 422 {object} helpers.APIResponse "error.code: unprocessable"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/answer [post]
func (c *InviteController) AnswerInvite(w http.ResponseWriter, r *http.Request) {
	var req AnswerInviteRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.AnswerInvite(r.Context(), userID, req.InviteID, req.Answer); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAnswer):
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "Resposta inválida")
		case errors.Is(err, domain.ErrForbidden):
			h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "Você não tem permissão para responder este convite")
		case errors.Is(err, domain.ErrAlreadyAnswered):
			h.WriteJSONError(w, http.StatusUnprocessableEntity, h.ErrCodeUnprocessable, "Convite já respondido")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		}
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ConfirmPresence godoc
// @Summary Confirm presence at a public event
// @Description Self-confirm attendance at a public event. Creates an accepted invite on first call; repeat calls are acknowledged without change.
// @Tags invites
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "already confirmed"
// @Success 201 {object} helpers.APIResponse "presence confirmed"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 422 {object} helpers.APIResponse "error.code: unprocessable"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/confirm [post]
func (c *InviteController) ConfirmPresence(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing eventID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	created, err := c.Service.ConfirmPresence(r.Context(), userID, eventID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "Evento não encontrado")
		case errors.Is(err, domain.ErrPrivateEvent):
			h.WriteJSONError(w, http.StatusUnprocessableEntity, h.ErrCodeUnprocessable, "evento privado")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		}
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	h.WriteJSONSuccess(w, status, ConfirmPresenceResponse{Confirmed: true})
}
