package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medgpt-backend/internal/api"
	"medgpt-backend/internal/assistant"
	"medgpt-backend/internal/cache"
	"medgpt-backend/internal/catalog"
	"medgpt-backend/internal/config"
	"medgpt-backend/internal/crypto"
	"medgpt-backend/internal/handlers"
	"medgpt-backend/internal/integrations/slack"
	"medgpt-backend/internal/services"
	"medgpt-backend/internal/store"
	"medgpt-backend/internal/store/memory"
	"medgpt-backend/internal/store/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	log.Println("Starting MedGPT Backend...")

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}
	log.Println("Configuration loaded successfully.")

	// 2. Initialize the Store
	initCtx, initCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer initCancel()

	var appStore store.Store
	if cfg.DatabaseURL != "" {
		dbpool, err := pgxpool.New(initCtx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("FATAL: Unable to create database connection pool: %v\n", err)
		}
		defer dbpool.Close() // Ensure pool is closed on exit

		if err := dbpool.Ping(initCtx); err != nil {
			log.Fatalf("FATAL: Unable to ping database: %v\n", err)
		}
		log.Println("Database connection pool established and pinged successfully.")

		pgStore := postgres.NewPostgresStore(dbpool)
		if err := pgStore.Migrate(initCtx); err != nil {
			log.Fatalf("FATAL: Failed to apply database schema: %v", err)
		}
		appStore = pgStore
		log.Println("Postgres store initialized.")
	} else {
		appStore = memory.New()
		log.Println("WARN: DATABASE_URL not set, using the in-memory store. Data is lost on restart.")
	}

	if err := catalog.Seed(initCtx, appStore); err != nil {
		log.Fatalf("FATAL: Failed to seed medication catalog: %v", err)
	}
	log.Println("Medication catalog seeded.")

	// --- Transcript Encryption ---
	key := cfg.EncryptionKey
	if key == nil {
		if key, err = crypto.NewRandomKey(); err != nil {
			log.Fatalf("FATAL: Failed to generate encryption key: %v", err)
		}
	}
	sealer, err := crypto.NewSealer(key)
	if err != nil {
		log.Fatalf("FATAL: Failed to create AES-GCM sealer: %v", err)
	}
	log.Println("AES-GCM sealer initialized.")

	// --- Response Cache ---
	var respCache cache.Cache = cache.Noop{}
	if cfg.RedisAddr != "" {
		rc, err := cache.NewRedis(initCtx, cache.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   "medgpt:",
		})
		if err != nil {
			log.Printf("WARN: Redis unavailable, assistant answers will not be cached: %v", err)
		} else {
			defer rc.Close()
			respCache = rc
			log.Println("Redis cache connected.")
		}
	}

	// --- Assistant Provider Registry ---
	registry := assistant.NewRegistry()
	if cfg.GeminiAPIKey != "" {
		registry.Register(assistant.NewGemini(assistant.GeminiConfig{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			BaseURL: cfg.GeminiBaseURL,
		}))
	}
	if cfg.AnthropicAPIKey != "" {
		registry.Register(assistant.NewAnthropic(assistant.AnthropicConfig{
			APIKey:  cfg.AnthropicAPIKey,
			Model:   cfg.AnthropicModel,
			BaseURL: cfg.AnthropicBaseURL,
		}))
	}
	assistantService := assistant.NewService(assistant.ServiceConfig{
		Registry:     registry,
		Order:        cfg.AssistantProviders,
		Timeout:      cfg.AssistantTimeout,
		HistoryLimit: cfg.ChatHistoryLimit,
		Cache:        respCache,
		CacheTTL:     cfg.CacheTTL,
	})
	if !assistantService.Available() {
		log.Println("WARN: No assistant provider configured; chat replies will report an error.")
	}

	// --- Slack Alerts ---
	var notifier services.Notifier
	if n := slack.NewNotifier(slack.Config{BotToken: cfg.SlackBotToken, Channel: cfg.SlackAlertChannel}); n != nil {
		notifier = n
	}

	// 3. Initialize Services
	authService := services.NewAuthService(appStore, cfg)
	medicationService := services.NewMedicationService(appStore)
	interactionService := services.NewInteractionService(appStore, notifier)
	bookmarkService := services.NewBookmarkService(appStore)
	chatService := services.NewChatService(appStore, assistantService, sealer)
	log.Println("Services initialized.")

	// --- Initialize Handlers ---
	routerDeps := api.RouterDependencies{
		AuthHandler:        handlers.NewAuthHandler(authService),
		MedicationHandler:  handlers.NewMedicationHandlers(medicationService),
		InteractionHandler: handlers.NewInteractionHandlers(interactionService),
		BookmarkHandler:    handlers.NewBookmarkHandlers(bookmarkService),
		ChatHandler:        handlers.NewChatHandlers(chatService),
		AssistantHandler:   handlers.NewAssistantHandlers(assistantService),
		CompatHandler:      handlers.NewCompatHandlers(assistantService, medicationService, interactionService),
		Config:             cfg,
	}
	if cfg.SlackSigningSecret != "" {
		routerDeps.SlackCommandHandler = handlers.NewSlackCommandHandlers(interactionService, cfg.SlackSigningSecret)
	}

	// 4. Setup Router
	router := api.NewRouter(routerDeps)
	log.Println("HTTP router configured.")

	// 5. Configure and Start HTTP Server
	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
		// WriteTimeout must outlast the router's request timeout so the
		// timeout response can still be written.
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Channel to listen for OS signals for graceful shutdown
	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting and listening on port %s", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: Could not listen on %s: %v\n", cfg.HTTPPort, err)
		}
		log.Println("Server listener routine stopped.")
	}()

	// Wait for interrupt signal
	<-stopChan
	log.Println("Shutdown signal received, initiating graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("WARN: Server graceful shutdown failed: %v", err)
		log.Fatal("Forcing shutdown due to error.")
	}

	log.Println("Server shutdown complete.")
}
