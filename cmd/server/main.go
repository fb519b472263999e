package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dias221467/tagwish/internal/config"
	"github.com/Dias221467/tagwish/internal/handlers"
	"github.com/Dias221467/tagwish/internal/hub"
	"github.com/Dias221467/tagwish/internal/repository"
	"github.com/Dias221467/tagwish/internal/services"
	"github.com/Dias221467/tagwish/internal/verification"
	"github.com/Dias221467/tagwish/pkg/logger"
	"github.com/Dias221467/tagwish/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger(cfg.LogLevel)
	logger.Log.Info("Logger initialized")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Store ---
	store := repository.NewSeededWishStore()

	// --- Verification ---
	var backend verification.Backend = verification.Unavailable{}
	if cfg.Gemini.APIKey != "" {
		gemini, err := verification.NewGeminiBackend(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			logger.Log.WithError(err).Fatal("Failed to create Gemini client")
		}
		backend = gemini
		logger.Log.WithField("model", cfg.Gemini.Model).Info("Gemini verification enabled")
	} else {
		logger.Log.Warn("GEMINI_API_KEY not set, AI features disabled")
	}
	verifier := verification.NewGuard(backend, cfg.Gemini.Timeout)

	events := hub.New(0)

	// --- Services ---
	wishService := services.NewWishService(store, verifier, events)
	chatService := services.NewChatService(store, events)
	userService := services.NewUserService(store)

	// --- Handlers ---
	wishHandler := handlers.NewWishHandler(wishService, cfg.MaxUploadBytes)
	userHandler := handlers.NewUserHandler(userService)
	chatHandler := handlers.NewChatHandler(chatService, events, cfg.AllowedOrigins)

	router := mux.NewRouter()
	handlers.RegisterRoutes(router, wishHandler, userHandler, chatHandler)
	router.Use(middleware.RecoverMiddleware)
	router.Use(middleware.LoggingMiddleware)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Infof("Server running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.WithError(err).Fatal("Server failed")
		}
	}()

	<-ctx.Done()
	logger.Log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.WithError(err).Error("Graceful shutdown failed")
	}
}
