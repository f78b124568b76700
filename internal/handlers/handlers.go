package handlers

import (
	"CookieVault/internal/config"
	"CookieVault/internal/middleware"
	"CookieVault/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	authService *service.AuthService,
	accountService *service.AccountService,
	entryService *service.EntryService,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(config.AuthSecret))

	// Handlers
	authHandler := NewAuthHandler(authService, logger, config)
	accountHandler := NewAccountHandler(accountService, logger)
	entryHandler := NewEntryHandler(entryService, logger)

	// Auth routes
	r.Post("/api/auth/login", authHandler.Login)
	r.Post("/api/auth/logout", authHandler.Logout)
	r.Get("/api/auth/session", authHandler.Session)
	r.Post("/api/seed", authHandler.Seed)

	// User provisioning routes (admin only)
	r.Post("/api/users", accountHandler.Create)
	r.Get("/api/users", accountHandler.List)

	// Credential entries
	r.Route("/api/entries", func(r chi.Router) {
		r.Get("/", entryHandler.List)
		r.Post("/", entryHandler.Create)
		r.Get("/{id}", entryHandler.Get)
		r.Put("/{id}", entryHandler.Update)
		r.Delete("/{id}", entryHandler.Delete)
	})

	return &Handler{Router: r}
}
