package api

import (
	"log"
	"net/http"
	"time"

	"medgpt-backend/internal/config"
	"medgpt-backend/internal/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterDependencies holds all the dependencies required by the router setup,
// primarily handlers and configuration.
type RouterDependencies struct {
	AuthHandler         *handlers.AuthHandler
	MedicationHandler   *handlers.MedicationHandlers
	InteractionHandler  *handlers.InteractionHandlers
	BookmarkHandler     *handlers.BookmarkHandlers
	ChatHandler         *handlers.ChatHandlers
	AssistantHandler    *handlers.AssistantHandlers
	CompatHandler       *handlers.CompatHandlers
	SlackCommandHandler *handlers.SlackCommandHandlers // nil without a signing secret
	Config              *config.Config
}

// defaultRequestTimeout applies when the config does not set one.
const defaultRequestTimeout = 60 * time.Second

func requestTimeout(cfg *config.Config) time.Duration {
	if cfg.RequestTimeout > 0 {
		return cfg.RequestTimeout
	}
	return defaultRequestTimeout
}

// NewRouter creates and configures the main Chi router for the application.
func NewRouter(deps RouterDependencies) *chi.Mux {
	r := chi.NewRouter()

	// --- Base Middleware Stack ---
	r.Use(middleware.RequestID)                            // Inject request ID into context
	r.Use(middleware.RealIP)                               // Use X-Forwarded-For or X-Real-IP
	r.Use(middleware.Logger)                               // Log requests
	r.Use(middleware.Recoverer)                            // Recover from panics, return 500
	r.Use(middleware.Timeout(requestTimeout(deps.Config))) // Set a request timeout

	// --- CORS Configuration ---
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	// --- Public Routes (No JWT Required) ---
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/v1/auth", func(r chi.Router) {
		if deps.AuthHandler == nil {
			panic("AuthHandler dependency is nil in router setup")
		}
		r.Post("/signup", deps.AuthHandler.HandleSignup)
		r.Post("/login", deps.AuthHandler.HandleLogin)
	})

	// --- Routes the web client already calls ---
	if deps.CompatHandler != nil {
		r.Route("/api", func(r chi.Router) {
			r.Post("/chat", deps.CompatHandler.HandleChat)
			r.Post("/medications/info", deps.CompatHandler.HandleMedicationInfo)
			r.Post("/interactions/check", deps.CompatHandler.HandleCheckInteractions)
		})
	} else {
		log.Println("WARN: CompatHandler dependency is nil, skipping /api routes.")
	}

	// --- Slack slash command, verified by request signature ---
	if deps.SlackCommandHandler != nil {
		r.Post("/slack/commands", deps.SlackCommandHandler.HandleSlashCommand)
	} else {
		log.Println("WARN: SlackCommandHandler dependency is nil, skipping /slack/commands route.")
	}

	r.Route("/v1", func(r chi.Router) {
		// --- Optional Auth: anonymous allowed, bookmarks flagged when signed in ---
		r.Group(func(r chi.Router) {
			r.Use(OptionalJwtAuthMiddleware(deps.Config.JWTSecret))

			if deps.MedicationHandler != nil {
				r.Route("/medications", func(r chi.Router) {
					r.Get("/", deps.MedicationHandler.HandleListMedications)
					r.Get("/compare", deps.MedicationHandler.HandleCompare)
					r.Get("/compare.pdf", deps.MedicationHandler.HandleCompareSheet)
					r.Get("/{id}", deps.MedicationHandler.HandleGetMedication)
					r.Get("/{id}/sheet.pdf", deps.MedicationHandler.HandleMedicationSheet)
				})
				r.Get("/search", deps.MedicationHandler.HandleSearch)
				r.Get("/conditions", deps.MedicationHandler.HandleListConditions)
				r.Get("/conditions/{id}/medications", deps.MedicationHandler.HandleConditionMedications)
			} else {
				log.Println("WARN: MedicationHandler dependency is nil, skipping /v1/medications routes.")
			}

			if deps.InteractionHandler != nil {
				r.Post("/interactions/check", deps.InteractionHandler.HandleCheck)
			} else {
				log.Println("WARN: InteractionHandler dependency is nil, skipping /v1/interactions routes.")
			}

			if deps.AssistantHandler != nil {
				r.Post("/assistant/ask", deps.AssistantHandler.HandleAsk)
			} else {
				log.Println("WARN: AssistantHandler dependency is nil, skipping /v1/assistant routes.")
			}
		})

		// --- Authenticated Routes (JWT Required) ---
		r.Group(func(r chi.Router) {
			r.Use(JwtAuthMiddleware(deps.Config.JWTSecret))

			if deps.BookmarkHandler != nil {
				r.Route("/bookmarks", func(r chi.Router) {
					r.Get("/", deps.BookmarkHandler.HandleList)
					r.Delete("/", deps.BookmarkHandler.HandleClear)
					r.Put("/{medicationID}", deps.BookmarkHandler.HandleAdd)
					r.Delete("/{medicationID}", deps.BookmarkHandler.HandleRemove)
				})
			} else {
				log.Println("WARN: BookmarkHandler dependency is nil, skipping /v1/bookmarks routes.")
			}

			if deps.ChatHandler != nil {
				r.Route("/chats", func(r chi.Router) {
					r.Post("/", deps.ChatHandler.HandleCreateChat)
					r.Get("/", deps.ChatHandler.HandleListChats)
					r.Get("/{chatID}", deps.ChatHandler.HandleGetChatByID)
					r.Delete("/{chatID}", deps.ChatHandler.HandleDeleteChat)
					r.Post("/{chatID}/messages", deps.ChatHandler.HandleSendMessage)
				})
			} else {
				log.Println("WARN: ChatHandler dependency is nil, skipping /v1/chats routes.")
			}
		})
	})

	return r
}
