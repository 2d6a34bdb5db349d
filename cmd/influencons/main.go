// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/influencons/influencons-go/internal/config"
	"github.com/influencons/influencons-go/internal/handler"
	"github.com/influencons/influencons-go/internal/logging"
	"github.com/influencons/influencons-go/internal/middleware"
	"github.com/influencons/influencons-go/internal/service"
	"github.com/influencons/influencons-go/internal/session"
	"github.com/influencons/influencons-go/internal/store"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

// formHandlers defines the standard admin form handler methods for a
// content resource.
type formHandlers struct {
	List     http.HandlerFunc
	NewForm  http.HandlerFunc
	Create   http.HandlerFunc
	EditForm http.HandlerFunc
	Update   http.HandlerFunc
	Delete   http.HandlerFunc
}

// registerFormRoutes registers the admin form routes for a resource.
// Creates and updates accept both the bare resource path and the
// /new and /{id}/edit form paths.
func registerFormRoutes(r chi.Router, base, baseID string, h formHandlers) {
	r.Get(base, h.List)
	r.Get(base+handler.RouteSuffixNew, h.NewForm)
	r.Post(base, h.Create)
	r.Post(base+handler.RouteSuffixNew, h.Create)
	r.Get(baseID+handler.RouteSuffixEdit, h.EditForm)
	r.Post(baseID, h.Update)
	r.Post(baseID+handler.RouteSuffixEdit, h.Update)
	r.Post(baseID+handler.RouteSuffixDelete, h.Delete)
}

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Influencons - community site backend\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  INFLU_SESSION_SECRET    Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  INFLU_DB_PATH           SQLite database path (default: ./data/influencons.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  INFLU_SERVER_PORT       Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  INFLU_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  INFLU_UPLOADS_DIR       Uploaded images directory (default: ./static/uploads)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  INFLU_ADMIN_EMAIL       Bootstrap admin email (default: admin@influencons.com)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  INFLU_ADMIN_PASSWORD    Bootstrap admin password\n")
	}

	flag.Parse()

	// Handle -h/-help flag
	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	// Handle -v/-version flag
	if *showVersion {
		_, _ = fmt.Printf("influencons %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure data and uploads directories exist
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	if err := os.MkdirAll(cfg.UploadsDir, 0755); err != nil {
		return fmt.Errorf("creating uploads directory: %w", err)
	}

	// Initialize database
	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	// Run migrations
	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to also write WARN and ERROR logs to the Event Log database
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	// Seed the bootstrap admin account
	ctx := context.Background()
	if err := store.Seed(ctx, db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}

	// Initialize session manager
	sessionManager := session.New(db, cfg.IsDevelopment())
	slog.Info("session manager initialized")

	// Initialize login protection (rate limiting + account lockout)
	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())

	// CSRF protection middleware for browser form endpoints
	csrfConfig := middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment())
	csrfMiddleware := middleware.CSRF(csrfConfig)
	slog.Info("CSRF protection initialized", "secure", !cfg.IsDevelopment())

	// Image upload service
	images := service.NewImageService(cfg.UploadsDir)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(db, sessionManager, loginProtection)
	adminHandler := handler.NewAdminHandler(db, sessionManager)
	articleHandler := handler.NewArticleHandler(db, sessionManager, images, cfg.MaxUploadSize)
	defiHandler := handler.NewDefiHandler(db, sessionManager, images, cfg.MaxUploadSize)
	solidariteHandler := handler.NewSolidariteHandler(db, sessionManager, images, cfg.MaxUploadSize)
	forumHandler := handler.NewForumHandler(db, sessionManager)
	newsletterHandler := handler.NewNewsletterHandler(db, sessionManager)
	frontendHandler := handler.NewFrontendHandler(db, sessionManager)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.RequestPath)
	r.Use(sessionManager.LoadAndSave)

	// Public routes
	r.Get(handler.RouteRoot, frontendHandler.Home)
	r.Get(handler.RouteArticles, frontendHandler.Articles)
	r.Get(handler.RouteArticleSlug, frontendHandler.Article)

	// Public form routes (no authentication, with CSRF protection)
	r.Group(func(r chi.Router) {
		r.Use(csrfMiddleware)
		r.Post(handler.RouteNewsletter, frontendHandler.Subscribe)
	})

	// Admin routes
	r.Route("/admin", func(r chi.Router) {
		r.Use(csrfMiddleware)

		r.Get(handler.RouteLogin, authHandler.LoginForm)
		r.With(loginProtection.Middleware()).Post(handler.RouteLogin, authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(sessionManager))
			r.Use(middleware.LoadUser(sessionManager, db))
			r.Use(middleware.RequireAdmin())

			r.Get(handler.RouteLogout, authHandler.Logout)
			r.Get(handler.RouteRoot, adminHandler.Dashboard)
			r.Get(handler.RouteDashboard, adminHandler.Dashboard)

			registerFormRoutes(r, handler.RouteArticles, handler.RouteArticlesID, formHandlers{
				List: articleHandler.List, NewForm: articleHandler.NewForm, Create: articleHandler.Create,
				EditForm: articleHandler.EditForm, Update: articleHandler.Update, Delete: articleHandler.Delete,
			})
			registerFormRoutes(r, handler.RouteDefis, handler.RouteDefisID, formHandlers{
				List: defiHandler.List, NewForm: defiHandler.NewForm, Create: defiHandler.Create,
				EditForm: defiHandler.EditForm, Update: defiHandler.Update, Delete: defiHandler.Delete,
			})
			registerFormRoutes(r, handler.RouteSolidarite, handler.RouteSolidariteID, formHandlers{
				List: solidariteHandler.List, NewForm: solidariteHandler.NewForm, Create: solidariteHandler.Create,
				EditForm: solidariteHandler.EditForm, Update: solidariteHandler.Update, Delete: solidariteHandler.Delete,
			})
			registerFormRoutes(r, handler.RouteForum, handler.RouteForumID, formHandlers{
				List: forumHandler.List, NewForm: forumHandler.NewForm, Create: forumHandler.Create,
				EditForm: forumHandler.EditForm, Update: forumHandler.Update, Delete: forumHandler.Delete,
			})

			r.Get(handler.RouteNewsletter, newsletterHandler.List)
			r.Post(handler.RouteNewsletterID+handler.RouteSuffixToggle, newsletterHandler.Toggle)
			r.Post(handler.RouteNewsletterID+handler.RouteSuffixDelete, newsletterHandler.Delete)
		})
	})

	// Serve uploaded images from the uploads directory
	uploadsHandler := http.StripPrefix(service.PublicUploadPrefix+"/", http.FileServer(http.Dir(cfg.UploadsDir)))
	r.Handle(service.PublicUploadPrefix+"/*", uploadsHandler)

	// Create server with appropriate timeouts
	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // Longer to allow for large uploads and slow connections
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
