package assistant

import (
	"fmt"
	"log"
	"sync"
)

// Registry holds the configured providers by name.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]Provider),
	}
}

// Register adds a provider, replacing any provider with the same name.
func (r *Registry) Register(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.providers[p.Name()]; exists {
		log.Printf("WARN [ProviderRegistry] Provider '%s' is already registered. Overwriting.", p.Name())
	}
	r.providers[p.Name()] = p
	log.Printf("[ProviderRegistry] Registered assistant provider: %s", p.Name())
}

// Get retrieves a provider by name.
func (r *Registry) Get(name string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, exists := r.providers[name]
	if !exists {
		return nil, fmt.Errorf("no assistant provider registered with name: %s", name)
	}
	return p, nil
}

// Ordered returns the registered providers named in order, skipping
// names that are not registered.
func (r *Registry) Ordered(order []string) []Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Provider
	seen := make(map[string]bool)
	for _, name := range order {
		if p, ok := r.providers[name]; ok && !seen[name] {
			out = append(out, p)
			seen[name] = true
		}
	}
	return out
}
