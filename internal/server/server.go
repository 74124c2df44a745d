package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"mfdl/internal/auth"
	"mfdl/internal/catalog"
	"mfdl/internal/chat"
	"mfdl/internal/config"
	"mfdl/internal/inbox"
	"mfdl/internal/logger"
	"mfdl/internal/observability"
)

// Deps are the domain services the server exposes over HTTP.
type Deps struct {
	Store     *catalog.Store
	Chat      *chat.Service
	Inbox     *inbox.Inbox
	Auth      *auth.Authenticator
	Sessions  *auth.Sessions
	Analytics *observability.PostHogClient
}

// Server represents the HTTP server
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	config     config.Server
	app        config.App
	posthog    config.PostHog
	log        *slog.Logger
	renderer   *TemplateRenderer
	startedAt  time.Time

	store     *catalog.Store
	chat      *chat.Service
	inbox     *inbox.Inbox
	auth      *auth.Authenticator
	sessions  *auth.Sessions
	analytics *observability.PostHogClient
}

// New creates a new HTTP server instance
func New(cfg *config.Config, deps Deps) (*Server, error) {
	if deps.Store == nil {
		return nil, errors.New("server: catalog store is required")
	}
	if deps.Chat == nil {
		deps.Chat = chat.NewService(chat.NewCannedResponder())
	}
	if deps.Inbox == nil {
		deps.Inbox = inbox.New()
	}
	if deps.Auth == nil {
		deps.Auth = auth.NewAuthenticator(cfg.Admin.Email, cfg.Admin.Password)
	}
	if deps.Sessions == nil {
		deps.Sessions = auth.NewSessions(cfg.Admin.SessionTTL)
	}
	if deps.Analytics == nil {
		deps.Analytics = observability.NewDisabledClient()
	}

	// Templates are reloaded per request only when served from disk
	renderer, err := NewTemplateRenderer(cfg.Server.TemplateDir != "" && cfg.App.Debug, cfg.Server.TemplateDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize template renderer: %w", err)
	}

	s := &Server{
		router:    chi.NewRouter(),
		config:    cfg.Server,
		app:       cfg.App,
		posthog:   cfg.PostHog,
		log:       logger.Get(),
		renderer:  renderer,
		startedAt: time.Now(),
		store:     deps.Store,
		chat:      deps.Chat,
		inbox:     deps.Inbox,
		auth:      deps.Auth,
		sessions:  deps.Sessions,
		analytics: deps.Analytics,
	}

	s.setupMiddleware()
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return s, nil
}

// setupMiddleware configures middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))
	s.router.Use(securityHeaders)
	s.router.Use(visitorID)

	if s.config.RateLimit.Enabled {
		s.router.Use(middleware.Throttle(s.config.RateLimit.Limit))
	}
}

// setupRoutes configures routes for the server
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		if s.config.CORS.Enabled {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins:   s.config.CORS.AllowedOrigins,
				AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
				AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
				ExposedHeaders:   []string{"Link"},
				AllowCredentials: false,
				MaxAge:           300, // Maximum value not ignored by any major browsers
			}))
		}
		r.Use(noCache)

		r.Get("/status", s.handleStatus)

		r.Route("/articles", func(r chi.Router) {
			r.Get("/", s.handleListArticles)
			r.Get("/{id}", s.handleGetArticle)
		})
		r.Get("/categories", s.handleListCategories)

		r.Post("/chat", s.handleChatAPI)
		r.Get("/chat/{id}", s.handleGetConversation)
		r.Post("/contact", s.handleContactAPI)
	})

	// Web routes (HTML pages)
	s.router.Get("/", s.handleHomePage)
	s.router.Get("/blog", s.handleBlogPage)
	s.router.Get("/blog/{id}", s.handleArticlePage)

	// HTMX partial routes
	s.router.Post("/chat", s.handleChatPartial)
	s.router.Post("/contact", s.handleContactPartial)

	s.router.Route("/admin", func(r chi.Router) {
		r.Use(noCache)
		r.Get("/login", s.handleLoginPage)
		r.Post("/login", s.handleLogin)
		r.Post("/logout", s.handleLogout)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAdmin)
			r.Get("/", s.handleAdminDashboard)
			r.Get("/inbox", s.handleAdminInbox)
			r.Post("/inbox/{id}/star", s.handleToggleStar)
		})
	})

	s.router.NotFound(s.handleNotFound)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info("Starting HTTP server",
		"addr", s.httpServer.Addr,
		"read_timeout", s.config.ReadTimeout,
		"write_timeout", s.config.WriteTimeout,
		"articles", s.store.Len(),
	)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed to start: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down HTTP server gracefully...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.log.Info("HTTP server stopped")
	return nil
}

// Router returns the chi router instance (useful for testing)
func (s *Server) Router() *chi.Mux {
	return s.router
}
