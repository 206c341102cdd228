package config

import (
	"encoding/hex"
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration values loaded from environment variables.
type Config struct {
	HTTPPort        string
	DatabaseURL     string // empty selects the in-memory store
	JWTSecret       string
	TokenExpiration time.Duration
	EncryptionKey   []byte // 32 bytes, or nil when no key was configured
	CORSOrigins     []string

	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string

	AnthropicAPIKey  string
	AnthropicModel   string
	AnthropicBaseURL string

	AssistantProviders []string
	AssistantTimeout   time.Duration // per provider attempt
	RequestTimeout     time.Duration // whole HTTP request, covers every provider attempt
	ChatHistoryLimit   int

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	SlackBotToken      string
	SlackAlertChannel  string
	SlackSigningSecret string // enables the /slack/commands endpoint
}

// requestOverhead is the part of the request timeout not spent waiting on
// assistant providers.
const requestOverhead = 15 * time.Second

// ErrInvalidEncryptionKey is returned when ENCRYPTION_KEY is not 64 hex characters.
var ErrInvalidEncryptionKey = errors.New("ENCRYPTION_KEY must be 64 hex characters (32 bytes)")

// ErrMissingEncryptionKey is returned when a database is configured without a key.
var ErrMissingEncryptionKey = errors.New("ENCRYPTION_KEY is required when DATABASE_URL is set")

// LoadConfig loads configuration from environment variables.
// It looks for a .env file first, then checks actual environment variables.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Could not load .env file. Using environment variables only.", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		DatabaseURL:        getSecret("DATABASE_URL"),
		JWTSecret:          getEnv("JWT_SECRET", "default-super-secret-key"), // CHANGE THIS IN PRODUCTION!
		TokenExpiration:    time.Hour * time.Duration(getPositiveInt("JWT_EXPIRATION_HOURS", 24)),
		CORSOrigins:        splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		GeminiAPIKey:       getSecret("GEMINI_API_KEY"),
		GeminiModel:        getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		GeminiBaseURL:      getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		AnthropicAPIKey:    getSecret("ANTHROPIC_API_KEY"),
		AnthropicModel:     getEnv("ANTHROPIC_MODEL", "claude-3-5-haiku-latest"),
		AnthropicBaseURL:   getEnv("ANTHROPIC_BASE_URL", ""),
		AssistantProviders: splitList(getEnv("ASSISTANT_PROVIDERS", "gemini,anthropic")),
		AssistantTimeout:   time.Second * time.Duration(getPositiveInt("ASSISTANT_TIMEOUT_SECONDS", 30)),
		ChatHistoryLimit:   getInt("CHAT_HISTORY_LIMIT", 20),
		RedisAddr:          getEnv("REDIS_ADDR", ""),
		RedisPassword:      getSecret("REDIS_PASSWORD"),
		RedisDB:            getInt("REDIS_DB", 0),
		CacheTTL:           time.Minute * time.Duration(getPositiveInt("CACHE_TTL_MINUTES", 60)),
		SlackBotToken:      getSecret("SLACK_BOT_TOKEN"),
		SlackAlertChannel:  getEnv("SLACK_ALERT_CHANNEL", ""),
		SlackSigningSecret: getSecret("SLACK_SIGNING_SECRET"),
	}

	// Leave room for every provider in the fallback chain to use its full
	// attempt, plus time for the store.
	budget := cfg.AssistantTimeout*time.Duration(max(len(cfg.AssistantProviders), 1)) + requestOverhead
	cfg.RequestTimeout = time.Second * time.Duration(getPositiveInt("REQUEST_TIMEOUT_SECONDS", int(budget/time.Second)))
	if cfg.RequestTimeout < budget {
		log.Printf("Warning: REQUEST_TIMEOUT_SECONDS=%s is shorter than the assistant fallback budget %s; later providers may be cut off.",
			cfg.RequestTimeout, budget)
	}

	encryptionKeyHex := getSecret("ENCRYPTION_KEY")
	switch {
	case encryptionKeyHex != "":
		key, err := hex.DecodeString(encryptionKeyHex)
		if err != nil || len(key) != 32 {
			return nil, ErrInvalidEncryptionKey
		}
		cfg.EncryptionKey = key
	case cfg.DatabaseURL != "":
		return nil, ErrMissingEncryptionKey
	default:
		log.Println("Warning: ENCRYPTION_KEY not set; an ephemeral key will be generated for the in-memory store.")
	}

	log.Printf("Loaded config: Port=%s, DB_URL=%s, TokenExp=%s, Providers=%v, Redis=%t, SlackAlerts=%t",
		cfg.HTTPPort, redact(cfg.DatabaseURL), cfg.TokenExpiration, cfg.AssistantProviders,
		cfg.RedisAddr != "", cfg.SlackBotToken != "" && cfg.SlackAlertChannel != "")

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Env variable %s not set, using default: %s", key, fallback)
	return fallback
}

// getSecret is getEnv for values that must never be logged.
func getSecret(key string) string {
	return os.Getenv(key)
}

func getInt(key string, fallback int) int {
	raw := getEnv(key, strconv.Itoa(fallback))
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		log.Printf("Warning: Invalid %s '%s', using default %d. Error: %v", key, raw, fallback, err)
		return fallback
	}
	return n
}

// getPositiveInt is getInt for values where zero is meaningless or
// dangerous, such as token lifetimes and TTLs.
func getPositiveInt(key string, fallback int) int {
	n := getInt(key, fallback)
	if n == 0 {
		log.Printf("Warning: %s must be positive, using default %d", key, fallback)
		return fallback
	}
	return n
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func redact(s string) string {
	if s == "" {
		return "<memory>"
	}
	return "***"
}
