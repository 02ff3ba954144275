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

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Location    *string `json:"location"`
	Init        string  `json:"init"`
	End         *string `json:"end"`
	IsPublic    bool    `json:"isPublic"`
	CategoryID  string  `json:"categoryId"`
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, "title is required")
	}
	if strings.TrimSpace(c.Description) == "" {
		errs = append(errs, "description is required")
	}
	if strings.TrimSpace(c.CategoryID) == "" {
		errs = append(errs, "categoryId is required")
	}
	if strings.TrimSpace(c.Init) == "" {
		errs = append(errs, "init is required")
	} else if _, err := parseDate(c.Init); err != nil {
		errs = append(errs, "init must be an RFC 3339 timestamp or YYYY-MM-DD date")
	}
	if c.End != nil && *c.End != "" {
		if _, err := parseDate(*c.End); err != nil {
			errs = append(errs, "end must be an RFC 3339 timestamp or YYYY-MM-DD date")
		}
	}
	return errs
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Create an event owned by the authenticated user. id and timestamps are server-generated.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateEventRequest true "Event data"
// @Success 201 {object} helpers.APIResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	initAt, _ := parseDate(req.Init)
	var endAt *time.Time
	if req.End != nil && *req.End != "" {
		t, _ := parseDate(*req.End)
		endAt = &t
	}
	event := domain.NewEvent(req.Title, req.Description, req.Location, initAt, endAt, req.IsPublic, req.CategoryID, userID, time.Now())
	if err := c.Service.CreateEvent(r.Context(), event); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, event)
}

// ListEvents godoc
// @Summary List events
// @Description Without me=true, returns the upcoming feed: public events, plus the caller's own and invited private events when authenticated. Supports skip/take pagination and category filtering. With me=true, returns every event owned by the authenticated user, past included.
// @Tags events
// @Produce json
// @Param skip query int false "Rows to skip"
// @Param take query int false "Rows to return (capped at 100)"
// @Param categories query string false "Comma-separated category IDs"
// @Param me query bool false "Return only the authenticated user's events"
// @Success 200 {object} helpers.APIResponse "data contains the event list"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	viewerID, authenticated := middleware.UserIDFromContext(r.Context())

	if r.URL.Query().Get("me") == "true" {
		if !authenticated {
			h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
			return
		}
		events, err := c.Service.ListOwnEvents(r.Context(), viewerID)
		if err != nil {
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
			return
		}
		h.WriteJSONSuccess(w, http.StatusOK, events)
		return
	}

	filter := domain.FeedFilter{
		Pagination:  h.ParsePagination(r),
		CategoryIDs: parseCategoryIDs(r.URL.Query()["categories"]),
	}
	events, err := c.Service.ListPublicFeed(r.Context(), viewerID, filter)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, events)
}

// parseCategoryIDs flattens repeated and comma-separated categories query values.
// Returns nil when no filter was given.
func parseCategoryIDs(values []string) []string {
	var ids []string
	for _, v := range values {
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

// ListCategories godoc
// @Summary List event categories
// @Description Returns all categories ordered by name.
// @Tags events
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains the category list"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/categories [get]
func (c *EventController) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.Service.ListCategories(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, categories)
}

// DetailEvent godoc
// @Summary Get an event by ID
// @Description Returns the event with its category, owner, and guest list with invite statuses.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the event detail"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) DetailEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing eventID")
		return
	}
	detail, err := c.Service.DetailEvent(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "Evento não encontrado")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, detail)
}
