package handlers

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"mfdl/internal/auth"
	"mfdl/internal/catalog"
	"mfdl/internal/chat"
	"mfdl/internal/config"
	"mfdl/internal/inbox"
	"mfdl/internal/logger"
	"mfdl/internal/observability"
	"mfdl/internal/server"
)

// NewServeCmd creates the serve command for starting the HTTP server
func NewServeCmd() *cobra.Command {
	var (
		port        int
		host        string
		templateDir string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start HTTP server for the personal site",
		Long: `Start the mfdl web server.

The server provides:
  • Home page with the featured article and the contact form
  • Blog listing with search and category filters
  • Article pages with table of contents and share links
  • Chat assistant and admin inbox
  • JSON API under /api

Examples:
  # Start server on default port 8080
  mfdl serve

  # Start on custom port
  mfdl serve --port 3000

  # Serve templates from disk (reloaded on every request when app.debug is set)
  mfdl serve --template-dir ./internal/server/templates`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), port, host, templateDir)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "HTTP server port (default from config: 8080)")
	cmd.Flags().StringVar(&host, "host", "", "HTTP server host (default from config: 0.0.0.0)")
	cmd.Flags().StringVar(&templateDir, "template-dir", "", "Template directory (default: embedded templates)")

	return cmd
}

func runServe(ctx context.Context, port int, host, templateDir string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	log := logger.Get()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override server config from flags if provided
	if port != 0 {
		cfg.Server.Port = port
	}
	if host != "" {
		cfg.Server.Host = host
	}
	if templateDir != "" {
		cfg.Server.TemplateDir = templateDir
	}

	store, err := loadStore(cfg)
	if err != nil {
		return err
	}

	responder, err := newResponder(ctx, cfg, store)
	if err != nil {
		return err
	}

	analytics, err := observability.NewPostHogClient(cfg.PostHog)
	if err != nil {
		log.Warn("PostHog disabled", "error", err)
		analytics = observability.NewDisabledClient()
	}
	defer func() {
		if err := analytics.Close(); err != nil {
			log.Warn("Failed to flush analytics", "error", err)
		}
	}()

	srv, err := server.New(cfg, server.Deps{
		Store:     store,
		Chat:      chat.NewService(responder),
		Inbox:     inbox.New(),
		Auth:      auth.NewAuthenticator(cfg.Admin.Email, cfg.Admin.Password),
		Sessions:  auth.NewSessions(cfg.Admin.SessionTTL),
		Analytics: analytics,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	go func() {
		log.Info(fmt.Sprintf("Server listening on http://%s:%d", cfg.Server.Host, cfg.Server.Port))
		log.Info("Press Ctrl+C to stop")
		serverErrors <- srv.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil

	case sig := <-shutdown:
		log.Info("Server shutdown initiated", "signal", sig.String())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Server shutdown failed, forcing close", "error", err)
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		log.Info("Server stopped successfully")
	}

	return nil
}

// newResponder builds the chat responder for the configured provider.
func newResponder(ctx context.Context, cfg *config.Config, store *catalog.Store) (chat.Responder, error) {
	canned := chat.NewCannedResponder()
	if cfg.Chat.Provider != config.ChatProviderGemini {
		return canned, nil
	}

	client, err := chat.NewGeminiClient(ctx, cfg.Chat.Gemini.APIKey)
	if err != nil {
		return nil, err
	}

	logger.Info("Chat uses Gemini", "model", cfg.Chat.Gemini.Model)
	persona := chat.BuildPersona(cfg.App.SiteName, store)
	return chat.NewGeminiResponder(client, cfg.Chat.Gemini.Model, cfg.GeminiTimeout(), persona, canned, logger.Get()), nil
}
