package registry

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/igolaizola/motivai/pkg/videogen"
	"github.com/igolaizola/motivai/pkg/videogen/did"
	"github.com/igolaizola/motivai/pkg/videogen/heygen"
	"github.com/igolaizola/motivai/pkg/videogen/sora"
)

const (
	defaultPrimary  = "did"
	defaultFallback = "heygen"
)

// candidates is the fixed probe order for last-resort selection.
var candidates = []string{"did", "heygen", "sora"}

// Config maps provider names to their vendor configuration and names the
// preferred selection order.
type Config struct {
	Primary   string
	Fallback  string
	Providers map[string]videogen.Config
}

// Registry constructs one adapter per provider name and keeps it for the
// process lifetime.
type Registry struct {
	cfg       *Config
	primary   string
	fallback  string
	lck       sync.Mutex
	providers map[string]videogen.Provider
}

func New(cfg *Config) *Registry {
	primary := cfg.Primary
	if primary == "" {
		primary = defaultPrimary
	}
	fallback := cfg.Fallback
	if fallback == "" {
		fallback = defaultFallback
	}
	return &Registry{
		cfg:       cfg,
		primary:   primary,
		fallback:  fallback,
		providers: map[string]videogen.Provider{},
	}
}

// Register seeds the cache with a ready-made provider, taking precedence over
// lazy construction for that name.
func (r *Registry) Register(name string, p videogen.Provider) {
	r.lck.Lock()
	defer r.lck.Unlock()
	r.providers[name] = p
}

// Get returns the adapter for a provider name, constructing it on first use.
func (r *Registry) Get(name string) (videogen.Provider, error) {
	r.lck.Lock()
	defer r.lck.Unlock()
	if p, ok := r.providers[name]; ok {
		return p, nil
	}
	p, err := r.create(name)
	if err != nil {
		return nil, err
	}
	r.providers[name] = p
	return p, nil
}

func (r *Registry) create(name string) (videogen.Provider, error) {
	cfg, ok := r.cfg.Providers[name]
	if !ok || cfg.Key == "" {
		return nil, fmt.Errorf("registry: no api key for %s: %w", name, videogen.ErrNotConfigured)
	}
	switch name {
	case "did":
		return did.New(&cfg), nil
	case "heygen":
		return heygen.New(&cfg), nil
	case "sora":
		return sora.New(&cfg), nil
	default:
		return nil, fmt.Errorf("registry: unknown provider %q", name)
	}
}

// Primary selects the configured primary provider if its probe succeeds, then
// the configured fallback, then any available candidate. Errors during the
// primary/fallback probes never propagate: they route into AnyAvailable.
func (r *Registry) Primary(ctx context.Context) (videogen.Provider, error) {
	if p, err := r.Get(r.primary); err == nil {
		if p.Available(ctx) {
			return p, nil
		}
		log.Printf("registry: primary provider %s unavailable, trying %s\n", r.primary, r.fallback)
	} else {
		log.Printf("registry: couldn't resolve primary provider %s: %v\n", r.primary, err)
	}
	if p, err := r.Get(r.fallback); err == nil {
		if p.Available(ctx) {
			return p, nil
		}
	} else {
		log.Printf("registry: couldn't resolve fallback provider %s: %v\n", r.fallback, err)
	}
	return r.AnyAvailable(ctx)
}

// AnyAvailable walks the fixed candidate list and returns the first provider
// whose probe succeeds.
func (r *Registry) AnyAvailable(ctx context.Context) (videogen.Provider, error) {
	for _, name := range candidates {
		p, err := r.Get(name)
		if err != nil {
			log.Printf("registry: skipping provider %s: %v\n", name, err)
			continue
		}
		if p.Available(ctx) {
			log.Printf("registry: found available provider: %s\n", name)
			return p, nil
		}
	}
	return nil, videogen.ErrNoProvider
}
