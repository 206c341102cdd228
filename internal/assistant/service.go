package assistant

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"medgpt-backend/internal/cache"
	"medgpt-backend/internal/models"
)

// ServiceConfig wires a Service.
type ServiceConfig struct {
	Registry     *Registry
	Order        []string      // provider names, tried first to last
	Timeout      time.Duration // per provider attempt; zero means no extra deadline
	HistoryLimit int           // turns sent upstream; zero means all
	Cache        cache.Cache   // optional, used by Ask
	CacheTTL     time.Duration
}

// Service sends prompts to the configured providers, falling back down
// the list until one succeeds.
type Service struct {
	providers    []Provider
	order        string
	timeout      time.Duration
	historyLimit int
	cache        cache.Cache
	cacheTTL     time.Duration
}

// Answer is the result of a single-turn Ask.
type Answer struct {
	Text     string `json:"text"`
	Provider string `json:"provider"`
	Cached   bool   `json:"-"`
}

func NewService(cfg ServiceConfig) *Service {
	var providers []Provider
	if cfg.Registry != nil {
		providers = cfg.Registry.Ordered(cfg.Order)
	}
	names := make([]string, len(providers))
	for i, p := range providers {
		names[i] = p.Name()
	}
	c := cfg.Cache
	if c == nil {
		c = cache.Noop{}
	}
	if len(providers) == 0 {
		log.Println("WARN [AssistantService] No assistant providers configured; replies will fail.")
	} else {
		log.Printf("[AssistantService] Provider order: %s", strings.Join(names, " -> "))
	}
	return &Service{
		providers:    providers,
		order:        strings.Join(names, ","),
		timeout:      cfg.Timeout,
		historyLimit: cfg.HistoryLimit,
		cache:        c,
		cacheTTL:     cfg.CacheTTL,
	}
}

// Available reports whether at least one provider is configured.
func (s *Service) Available() bool {
	return len(s.providers) > 0
}

// Reply answers the last user message of history, using earlier messages
// as context.
func (s *Service) Reply(ctx context.Context, history []models.ChatMessage) (*Completion, error) {
	turns := NormalizeHistory(history, s.historyLimit)
	return s.complete(ctx, Request{System: Preamble, Turns: turns})
}

// Ask answers a standalone question. Successful answers are cached.
func (s *Service) Ask(ctx context.Context, question string) (*Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyPrompt
	}
	key := s.cacheKey(question)

	if raw, err := s.cache.Get(ctx, key); err == nil {
		var a Answer
		if jsonErr := json.Unmarshal([]byte(raw), &a); jsonErr == nil && a.Text != "" {
			a.Cached = true
			return &a, nil
		}
	} else if !errors.Is(err, cache.ErrMiss) {
		log.Printf("WARN [AssistantService] Ask: cache read failed: %v", err)
	}

	c, err := s.complete(ctx, Request{System: Preamble, Turns: []Turn{{Role: RoleUser, Text: question}}})
	if err != nil {
		return nil, err
	}
	a := &Answer{Text: c.Text, Provider: c.Provider}
	if raw, err := json.Marshal(a); err == nil {
		if err := s.cache.Set(ctx, key, string(raw), s.cacheTTL); err != nil {
			log.Printf("WARN [AssistantService] Ask: cache write failed: %v", err)
		}
	}
	return a, nil
}

func (s *Service) cacheKey(question string) string {
	sum := sha256.Sum256([]byte(s.order + "\n" + question))
	return "ask:" + hex.EncodeToString(sum[:])
}

func (s *Service) complete(ctx context.Context, req Request) (*Completion, error) {
	if len(s.providers) == 0 {
		return nil, ErrNoProvider
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	var errs []error
	for _, p := range s.providers {
		attemptCtx, cancel := ctx, context.CancelFunc(func() {})
		if s.timeout > 0 {
			attemptCtx, cancel = context.WithTimeout(ctx, s.timeout)
		}
		c, err := p.Complete(attemptCtx, req)
		cancel()
		if err == nil {
			return c, nil
		}
		log.Printf("ERROR [AssistantService] Provider %s failed: %v", p.Name(), err)
		errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
		if ctx.Err() != nil {
			break
		}
	}
	return nil, fmt.Errorf("all assistant providers failed: %w", errors.Join(errs...))
}

// NormalizeHistory turns a stored transcript into provider turns: failed
// replies and blank messages are dropped, consecutive messages from the
// same role are merged, only the last limit turns are kept, and the
// result never starts with an assistant turn.
func NormalizeHistory(history []models.ChatMessage, limit int) []Turn {
	var turns []Turn
	for _, m := range history {
		text := strings.TrimSpace(m.Content)
		if m.Error || text == "" {
			continue
		}
		role := RoleUser
		if m.Role == models.RoleAssistant {
			role = RoleAssistant
		}
		if n := len(turns); n > 0 && turns[n-1].Role == role {
			turns[n-1].Text += "\n\n" + text
			continue
		}
		turns = append(turns, Turn{Role: role, Text: text})
	}
	if limit > 0 && len(turns) > limit {
		turns = turns[len(turns)-limit:]
	}
	for len(turns) > 0 && turns[0].Role == RoleAssistant {
		turns = turns[1:]
	}
	return turns
}
