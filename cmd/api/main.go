package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "staffing-awards/docs" // This is for Swagger
	"staffing-awards/internal/auth"
	"staffing-awards/internal/config"
	"staffing-awards/internal/database"
	"staffing-awards/internal/handlers"
	"staffing-awards/internal/logger"
	"staffing-awards/internal/middleware"
	"staffing-awards/internal/repository"
	"staffing-awards/internal/service"
	"staffing-awards/internal/sync"
	"staffing-awards/internal/uploads"
	"staffing-awards/internal/vault"

	httpSwagger "github.com/swaggo/http-swagger"
)

// @title World Staffing Awards API
// @version 1.0
// @description Backend API for the World Staffing Awards nominations and voting platform

// @contact.name API Support
// @contact.email support@worldstaffingawards.com

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the admin session token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logger
	logger.Setup(logger.Config{
		Level: cfg.Log.Level,
	})

	slog.Info("Starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"env", cfg.App.Env,
		"awards_year", cfg.App.AwardsYear,
		"log_level", cfg.Log.Level,
	)

	// Initialize database
	db, err := database.New(&cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func(db *database.Database) {
		err := db.Close()
		if err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}(db)

	slog.Info("Database connection established")

	// Run database migrations
	migrator := database.NewMigrationExecutor(db.DB)
	if err := migrator.RunMigrations("./migrations"); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed")

	// Initialize repositories
	nominationRepo := repository.NewNominationRepository(db.DB)
	voteRepo := repository.NewVoteRepository(db.DB)
	auditRepo := repository.NewAuditRepository(db.DB)

	// Initialize admin authentication
	authService := auth.NewService(&cfg.Admin)

	// External API tokens come from Vault when enabled; the environment
	// values act as a fallback for local development.
	if cfg.Vault.Enabled {
		vaultClient, err := vault.NewClient(&cfg.Vault)
		if err != nil {
			slog.Error("Failed to initialize Vault client", "error", err)
			os.Exit(1)
		}
		if err := vaultClient.Health(); err != nil {
			slog.Error("Vault health check failed", "error", err)
			os.Exit(1)
		}

		if token, err := vaultClient.GetString(cfg.Vault.SecretPath, "hubspot_token"); err == nil {
			cfg.HubSpot.Token = token
		} else {
			slog.Warn("HubSpot token not found in Vault", "path", cfg.Vault.SecretPath, "error", err)
		}
		if token, err := vaultClient.GetString(cfg.Vault.SecretPath, "loops_token"); err == nil {
			cfg.Loops.Token = token
		} else {
			slog.Warn("Loops token not found in Vault", "path", cfg.Vault.SecretPath, "error", err)
		}

		slog.Info("Vault secrets loaded", "vault_addr", cfg.Vault.Address)
	}

	// Initialize the outbound sync dispatcher. Targets without a token are
	// skipped so a missing integration never blocks nominations or votes.
	var notifier service.Notifier = service.NopNotifier{}
	if cfg.Sync.Enabled {
		var targets []sync.Target
		if cfg.HubSpot.Enabled && cfg.HubSpot.Token != "" {
			targets = append(targets, sync.NewHubSpot(&cfg.HubSpot, cfg.Sync.HTTPTimeout))
		}
		if cfg.Loops.Enabled && cfg.Loops.Token != "" {
			targets = append(targets, sync.NewLoops(&cfg.Loops, cfg.Sync.HTTPTimeout))
		}

		if len(targets) > 0 {
			dispatcher := sync.NewDispatcher(&cfg.Sync, targets...)
			dispatcher.Start()
			defer dispatcher.Stop()
			notifier = dispatcher
			slog.Info("Sync dispatcher started", "targets", len(targets))
		} else {
			slog.Warn("Sync enabled but no targets configured")
		}
	}

	// Initialize services
	nominationService := service.NewNominationService(nominationRepo, auditRepo, notifier)
	voteService := service.NewVoteService(voteRepo, nominationRepo, notifier)
	statsService := service.NewStatsService(nominationRepo, voteRepo)

	// Initialize image uploads (optional, requires object storage credentials)
	var uploadService *uploads.Service
	if cfg.Storage.AccessKey != "" {
		uploadService, err = uploads.New(&cfg.Storage)
		if err != nil {
			slog.Error("Failed to initialize object storage", "error", err)
			os.Exit(1)
		}
		slog.Info("Object storage initialized", "bucket", cfg.Storage.Bucket)
	} else {
		slog.Warn("Object storage not configured - image uploads disabled")
	}

	// Initialize middleware
	adminMw := middleware.NewAdminMiddleware(authService)
	corsMw := middleware.NewCORSMiddleware(&cfg.CORS)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	nominationHandler := handlers.NewNominationHandler(nominationService, cfg.App.MaxPageSize)
	voteHandler := handlers.NewVoteHandler(voteService)
	statsHandler := handlers.NewStatsHandler(statsService)
	adminHandler := handlers.NewAdminHandler(nominationService, statsService)

	// Setup router
	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("POST /api/nominations", nominationHandler.Create)
	mux.Handle("GET /api/nominations", adminMw.OptionalAdmin(http.HandlerFunc(nominationHandler.List)))
	mux.Handle("GET /api/nominations/{id}", adminMw.OptionalAdmin(http.HandlerFunc(nominationHandler.GetByID)))
	mux.HandleFunc("POST /api/votes", voteHandler.Cast)
	mux.HandleFunc("GET /api/votes/count", voteHandler.Count)
	mux.HandleFunc("GET /api/stats", statsHandler.PublicStats)
	mux.HandleFunc("GET /api/podium", statsHandler.Podium)
	mux.HandleFunc("GET /api/categories", statsHandler.Categories)
	mux.HandleFunc("POST /api/auth/admin/login", authHandler.AdminLogin)

	// Admin routes
	mux.Handle("PATCH /api/admin/nominations",
		adminMw.RequireAdmin(http.HandlerFunc(adminHandler.UpdateNomination)))
	mux.Handle("DELETE /api/admin/nominations/{id}",
		adminMw.RequireAdmin(http.HandlerFunc(adminHandler.DeleteNomination)))
	mux.Handle("GET /api/admin/nominations/{id}/votes",
		adminMw.RequireAdmin(http.HandlerFunc(voteHandler.ListForNominee)))
	mux.Handle("GET /api/admin/stats",
		adminMw.RequireAdmin(http.HandlerFunc(adminHandler.Stats)))
	mux.Handle("GET /api/admin/audit-logs",
		adminMw.RequireAdmin(http.HandlerFunc(adminHandler.AuditLogs)))

	if uploadService != nil {
		uploadHandler := handlers.NewUploadHandler(uploadService)
		mux.Handle("POST /api/uploads/image",
			adminMw.RequireAdmin(http.HandlerFunc(uploadHandler.UploadImage)))
	}

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.HealthCheck(); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, err := w.Write([]byte(`{"status":"unhealthy","database":"error"}`))
			if err != nil {
				slog.Error("Failed to write health check response", "error", err)
				return
			}
			return
		}
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte(`{"status":"healthy","version":"` + cfg.App.Version + `"}`))
		if err != nil {
			slog.Error("Failed to write health check response", "error", err)
			return
		}
	})

	// Swagger documentation
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// Apply global middleware
	handler := middleware.LoggingMiddleware(
		middleware.SecurityHeaders(
			corsMw.Handler(
				rateLimiter.Limit(mux),
			),
		),
	)

	// Create server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.TimeoutRead,
		WriteTimeout: cfg.Server.TimeoutWrite,
		IdleTimeout:  cfg.Server.TimeoutIdle,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server starting", "address", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Server shutting down...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped")
}
