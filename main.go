package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Yeisssons/helios-contract-analysis-sub000/config"
	"github.com/Yeisssons/helios-contract-analysis-sub000/handler"
	"github.com/Yeisssons/helios-contract-analysis-sub000/job"
	"github.com/Yeisssons/helios-contract-analysis-sub000/middleware"
	"github.com/Yeisssons/helios-contract-analysis-sub000/pkg/logger"
	"github.com/Yeisssons/helios-contract-analysis-sub000/service"
	"github.com/Yeisssons/helios-contract-analysis-sub000/storage"
	"github.com/Yeisssons/helios-contract-analysis-sub000/storage/memory"
	"github.com/Yeisssons/helios-contract-analysis-sub000/storage/postgres"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	slog.Info("configuration loaded successfully")

	// Initialize services
	files, err := service.NewFileStore(&cfg.Minio)
	if err != nil {
		slog.Error("failed to initialize file store", "error", err)
		os.Exit(1)
	}

	// Ensure bucket exists
	if err := files.EnsureBucket(context.Background()); err != nil {
		slog.Error("failed to ensure bucket", "error", err)
		os.Exit(1)
	}

	extractor := service.NewExtractorService(&cfg.Extractor)

	// Select the persistence backend. No DSN means in-memory.
	var store storage.Store
	if cfg.Store.DSN != "" {
		pg, err := postgres.Open(cfg.Store.DSN)
		if err != nil {
			slog.Error("failed to open postgres", "error", err)
			os.Exit(1)
		}
		store = pg
		slog.Info("using postgres store")
	} else {
		store = memory.New(cfg.Store.MaxDocuments)
		slog.Info("using in-memory store", "max_documents", cfg.Store.MaxDocuments)
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(cfg)
	documentHandler := handler.NewDocumentHandler(files, extractor, store)
	draftHandler := handler.NewDraftHandler(store)
	calendarHandler := handler.NewCalendarHandler(store, &cfg.Calendar)
	taskHandler := handler.NewTaskHandler(store)
	teamHandler := handler.NewTeamHandler(store)
	callbackHandler := handler.NewCallbackHandler(extractor, store)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New() // Use New() instead of Default() to avoid default middleware

	// Add custom middleware
	router.Use(middleware.RequestID())                 // Request ID for tracing
	router.Use(middleware.Recovery())                  // Panic recovery
	router.Use(middleware.RequestLogger())             // Access logging
	router.Use(middleware.Metrics())                   // Prometheus counters
	router.Use(corsMiddleware())                       // CORS
	router.Use(middleware.RateLimit(100, time.Minute)) // Rate limiting: 100 requests per minute

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes
	api := router.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)
		api.POST("/extraction/callback", callbackHandler.HandleCallback)
	}

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(&cfg.Auth))
	{
		protected.GET("/auth/me", authHandler.GetCurrentUser)

		protected.POST("/documents/upload", documentHandler.Upload)
		protected.GET("/documents", documentHandler.List)
		protected.GET("/documents/:id", documentHandler.Get)
		protected.GET("/documents/:id/status", documentHandler.GetStatus)
		protected.PATCH("/documents/:id", documentHandler.Update)
		protected.POST("/documents/:id/reanalyze", documentHandler.Reanalyze)
		protected.DELETE("/documents/:id", documentHandler.Delete)

		protected.PUT("/documents/:id/draft", draftHandler.Save)
		protected.GET("/documents/:id/draft", draftHandler.Get)
		protected.DELETE("/documents/:id/draft", draftHandler.Delete)

		protected.GET("/calendar/events", calendarHandler.Events)
		protected.GET("/calendar/stats", calendarHandler.Stats)
		protected.GET("/calendar/grid", calendarHandler.Grid)
		protected.GET("/calendar/export.ics", calendarHandler.Export)

		protected.POST("/tasks", taskHandler.Create)
		protected.GET("/tasks", taskHandler.List)
		protected.PUT("/tasks/:id", taskHandler.Update)
		protected.DELETE("/tasks/:id", taskHandler.Delete)

		protected.POST("/team", teamHandler.Create)
		protected.GET("/team", teamHandler.List)
		protected.PUT("/team/:id", teamHandler.Update)
		protected.DELETE("/team/:id", teamHandler.Delete)
	}

	// Daily maintenance
	scheduler := job.NewScheduler(store)
	if err := scheduler.Start(cfg.Jobs.Schedule); err != nil {
		slog.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server...")

	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited gracefully")
}

// corsMiddleware handles CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
