package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	h "organizaai/internal/delivery/http/helpers"
	"organizaai/internal/delivery/http/middleware"
	"organizaai/internal/domain"
)

// RegisterRequest is the request body for POST /users/register
type RegisterRequest struct {
	Fullname  string `json:"fullname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Birthdate string `json:"birthdate"`
	Phone     string `json:"phone"`
}

// Validate implements Validator.
func (u RegisterRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(u.Fullname) == "" {
		errs = append(errs, "fullname is required")
	}
	if strings.TrimSpace(u.Email) == "" {
		errs = append(errs, "email is required")
	}
	if u.Password == "" {
		errs = append(errs, "password is required")
	} else if len(u.Password) < 6 {
		errs = append(errs, "password must be at least 6 characters")
	}
	if strings.TrimSpace(u.Birthdate) == "" {
		errs = append(errs, "birthdate is required")
	} else if _, err := parseDate(u.Birthdate); err != nil {
		errs = append(errs, "birthdate must be an RFC 3339 timestamp or YYYY-MM-DD date")
	}
	return errs
}

// parseDate accepts an RFC 3339 timestamp or a plain YYYY-MM-DD date.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// SearchUserResponse is the response body for GET /users/search. User is null
// when no account matches the email.
type SearchUserResponse struct {
	User *domain.User `json:"user"`
}

type UserController struct {
	Logger  *slog.Logger
	Service domain.UserService
}

func NewUserController(logger *slog.Logger, svc domain.UserService) *UserController {
	return &UserController{
		Logger:  logger,
		Service: svc,
	}
}

// Register godoc
// @Summary Register a new user
// @Description Create an account with fullname, email, password, birthdate, and optional phone. Phone is stored digits-only.
// @Tags users
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration data"
// @Success 201 {object} helpers.APIResponse "data contains the created user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/register [post]
func (c *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	birthdate, err := parseDate(req.Birthdate)
	if err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "birthdate must be an RFC 3339 timestamp or YYYY-MM-DD date")
		return
	}
	user, err := c.Service.Register(r.Context(), req.Email, req.Password, req.Fullname, birthdate, req.Phone)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateEmail):
			h.WriteJSONError(w, http.StatusConflict, h.ErrCodeConflict, "E-mail já cadastrado")
		case errors.Is(err, domain.ErrInvalidEmail):
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "E-mail inválido")
		case errors.Is(err, domain.ErrInvalidInput):
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		}
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, user)
}

// Me godoc
// @Summary Get the authenticated user
// @Description Returns the profile of the user identified by the Bearer token.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the user"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/me [get]
func (c *UserController) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	user, err := c.Service.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "Usuário não encontrado")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, user)
}

// Search godoc
// @Summary Search a user by email
// @Description Looks up an account by exact email. data.user is null when no account matches, so invite flows can distinguish registered from unregistered guests.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param email query string true "Email to look up"
// @Success 200 {object} helpers.APIResponse "data contains user (possibly null)"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/search [get]
func (c *UserController) Search(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(strings.ToLower(r.URL.Query().Get("email")))
	if email == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "email query parameter is required")
		return
	}
	user, err := c.Service.SearchByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			h.WriteJSONSuccess(w, http.StatusOK, SearchUserResponse{User: nil})
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, SearchUserResponse{User: user})
}
