package config

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"HTTP_PORT", "DATABASE_URL", "JWT_SECRET", "JWT_EXPIRATION_HOURS", "ENCRYPTION_KEY",
		"CORS_ALLOWED_ORIGINS", "GEMINI_API_KEY", "GEMINI_MODEL", "GEMINI_BASE_URL",
		"ANTHROPIC_API_KEY", "ANTHROPIC_MODEL", "ANTHROPIC_BASE_URL", "ASSISTANT_PROVIDERS",
		"ASSISTANT_TIMEOUT_SECONDS", "CHAT_HISTORY_LIMIT", "REDIS_ADDR", "REDIS_PASSWORD",
		"REDIS_DB", "CACHE_TTL_MINUTES", "SLACK_BOT_TOKEN", "SLACK_ALERT_CHANNEL", "SLACK_SIGNING_SECRET",
		"REQUEST_TIMEOUT_SECONDS",
	} {
		t.Setenv(key, "") // registers restore on cleanup
		os.Unsetenv(key)
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.HTTPPort != "8080" {
		t.Errorf("HTTPPort = %q", cfg.HTTPPort)
	}
	if cfg.TokenExpiration != 24*time.Hour {
		t.Errorf("TokenExpiration = %s", cfg.TokenExpiration)
	}
	if cfg.GeminiModel != "gemini-1.5-flash" {
		t.Errorf("GeminiModel = %q", cfg.GeminiModel)
	}
	if strings.Join(cfg.AssistantProviders, ",") != "gemini,anthropic" {
		t.Errorf("AssistantProviders = %v", cfg.AssistantProviders)
	}
	if cfg.AssistantTimeout != 30*time.Second || cfg.ChatHistoryLimit != 20 || cfg.CacheTTL != time.Hour {
		t.Errorf("timeouts/limits = %s %d %s", cfg.AssistantTimeout, cfg.ChatHistoryLimit, cfg.CacheTTL)
	}
	if cfg.EncryptionKey != nil {
		t.Error("EncryptionKey set without ENCRYPTION_KEY")
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ASSISTANT_PROVIDERS", " anthropic , ,gemini ")
	t.Setenv("CHAT_HISTORY_LIMIT", "oops")
	t.Setenv("JWT_EXPIRATION_HOURS", "2")
	t.Setenv("ENCRYPTION_KEY", strings.Repeat("ab", 32))

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if strings.Join(cfg.AssistantProviders, ",") != "anthropic,gemini" {
		t.Errorf("AssistantProviders = %v", cfg.AssistantProviders)
	}
	if cfg.ChatHistoryLimit != 20 {
		t.Errorf("invalid CHAT_HISTORY_LIMIT not defaulted: %d", cfg.ChatHistoryLimit)
	}
	if cfg.TokenExpiration != 2*time.Hour {
		t.Errorf("TokenExpiration = %s", cfg.TokenExpiration)
	}
	if len(cfg.EncryptionKey) != 32 || cfg.EncryptionKey[0] != 0xab {
		t.Errorf("EncryptionKey not decoded")
	}
}

func TestFromEnvRejectsZeroDurations(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_EXPIRATION_HOURS", "0")
	t.Setenv("CACHE_TTL_MINUTES", "0")
	t.Setenv("ASSISTANT_TIMEOUT_SECONDS", "0")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "0")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.TokenExpiration != 24*time.Hour {
		t.Errorf("TokenExpiration = %s, want default", cfg.TokenExpiration)
	}
	if cfg.CacheTTL != time.Hour {
		t.Errorf("CacheTTL = %s, want default", cfg.CacheTTL)
	}
	if cfg.AssistantTimeout != 30*time.Second {
		t.Errorf("AssistantTimeout = %s, want default", cfg.AssistantTimeout)
	}
	if cfg.RequestTimeout <= 0 {
		t.Errorf("RequestTimeout = %s", cfg.RequestTimeout)
	}
}

func TestRequestTimeoutCoversProviderFallback(t *testing.T) {
	tests := []struct {
		name      string
		providers string
		attempt   string
		override  string
		want      time.Duration
	}{
		{"defaults", "", "", "", 2*30*time.Second + requestOverhead},
		{"single provider", "gemini", "20", "", 20*time.Second + requestOverhead},
		{"explicit", "", "", "120", 120 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			if tt.providers != "" {
				t.Setenv("ASSISTANT_PROVIDERS", tt.providers)
			}
			if tt.attempt != "" {
				t.Setenv("ASSISTANT_TIMEOUT_SECONDS", tt.attempt)
			}
			if tt.override != "" {
				t.Setenv("REQUEST_TIMEOUT_SECONDS", tt.override)
			}
			cfg, err := FromEnv()
			if err != nil {
				t.Fatalf("FromEnv: %v", err)
			}
			if cfg.RequestTimeout != tt.want {
				t.Errorf("RequestTimeout = %s, want %s", cfg.RequestTimeout, tt.want)
			}
			if budget := cfg.AssistantTimeout * time.Duration(len(cfg.AssistantProviders)); tt.override == "" && cfg.RequestTimeout <= budget {
				t.Errorf("RequestTimeout %s does not exceed provider budget %s", cfg.RequestTimeout, budget)
			}
		})
	}
}

func TestFromEnvEncryptionKeyErrors(t *testing.T) {
	tests := []struct {
		name string
		key  string
		db   string
		want error
	}{
		{"not hex", "zz", "", ErrInvalidEncryptionKey},
		{"short", "abcd", "", ErrInvalidEncryptionKey},
		{"required with database", "", "postgres://localhost/medgpt", ErrMissingEncryptionKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("ENCRYPTION_KEY", tt.key)
			t.Setenv("DATABASE_URL", tt.db)
			if _, err := FromEnv(); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}
