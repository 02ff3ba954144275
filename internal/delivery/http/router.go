package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"organizaai/internal/delivery/http/controllers"
	"organizaai/internal/delivery/http/middleware"
	"organizaai/internal/domain"
)

// Controllers groups everything the router mounts.
type Controllers struct {
	Health    *controllers.HealthController
	Auth      *controllers.AuthController
	User      *controllers.UserController
	Event     *controllers.EventController
	Invite    *controllers.InviteController
	Assistant *controllers.AssistantController
}

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(c Controllers, verifier domain.TokenVerifier) *http.ServeMux {
	requireAuth := middleware.RequireAuth(verifier)
	optionalAuth := middleware.OptionalAuth(verifier)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", c.Health.Health)

	// Auth
	mux.HandleFunc("POST /auth/login", c.Auth.Login)
	mux.HandleFunc("POST /auth/logout", c.Auth.Logout)

	// Users
	mux.HandleFunc("POST /users/register", c.User.Register)
	mux.HandleFunc("GET /users/me", requireAuth(c.User.Me))
	mux.HandleFunc("GET /users/search", requireAuth(c.User.Search))

	// Events. The feed is public but gains private events for logged-in callers.
	mux.HandleFunc("GET /events", optionalAuth(c.Event.ListEvents))
	mux.HandleFunc("POST /events", requireAuth(c.Event.CreateEvent))
	mux.HandleFunc("GET /events/categories", c.Event.ListCategories)
	mux.HandleFunc("GET /events/{eventID}", c.Event.DetailEvent)

	// Invites
	mux.HandleFunc("POST /events/invite", requireAuth(c.Invite.InviteUser))
	mux.HandleFunc("POST /events/answer", requireAuth(c.Invite.AnswerInvite))
	mux.HandleFunc("POST /events/{eventID}/confirm", requireAuth(c.Invite.ConfirmPresence))

	// Assistant
	mux.HandleFunc("POST /assistant/chat", requireAuth(c.Assistant.Chat))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
