package voice

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

// Status is the lifecycle state of a cloned voice at the vendor.
type Status string

const (
	StatusProcessing Status = "processing"
	StatusReady      Status = "ready"
	StatusFailed     Status = "failed"
)

// Clone is a cloned voice identity. It is created by a one-time cloning call
// and read-only afterwards except for vendor-driven status transitions.
type Clone struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Relationship string    `json:"relationship,omitempty"`
	Description  string    `json:"description,omitempty"`
	Gender       string    `json:"gender,omitempty"`
	Language     string    `json:"language"`
	Provider     string    `json:"provider"`
	ProviderID   string    `json:"provider_id"`
	SampleURL    string    `json:"sample_url,omitempty"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// CloneRequest carries the metadata and local sample paths for a cloning call.
type CloneRequest struct {
	Name         string
	Relationship string
	Description  string
	Gender       string
	Language     string
	Samples      []string
}

// Cloner is the per-vendor voice cloning contract.
type Cloner interface {
	Name() string
	Clone(ctx context.Context, req *CloneRequest) (*Clone, error)
	Synthesize(ctx context.Context, providerID, text string) ([]byte, error)
	Delete(ctx context.Context, providerID string) error
	Available(ctx context.Context) bool
}

var (
	// ErrNoCloner is returned when no voice cloning vendor is configured.
	ErrNoCloner = errors.New("voice: no voice cloning provider configured")

	// ErrNotReady is returned when synthesis is requested on a voice that
	// hasn't finished processing or has failed.
	ErrNotReady = errors.New("voice: voice is not ready")
)

// Service dispatches cloning and synthesis to the vendor named in each voice,
// preferring the configured default vendor for new clones.
type Service struct {
	provider string
	cloners  map[string]Cloner
}

// New builds a service over the given vendor adapters. provider names the
// preferred vendor for new clones; it falls back to any configured vendor.
func New(provider string, cloners ...Cloner) *Service {
	m := map[string]Cloner{}
	for _, c := range cloners {
		m[c.Name()] = c
	}
	return &Service{
		provider: provider,
		cloners:  m,
	}
}

// CloneVoice creates a cloned voice from local audio samples. At least one
// sample is required; quality is best with three or more, which is logged as
// a warning rather than enforced.
func (s *Service) CloneVoice(ctx context.Context, req *CloneRequest) (*Clone, error) {
	if len(req.Samples) == 0 {
		return nil, errors.New("voice: at least one audio sample is required")
	}
	if len(req.Samples) < 3 {
		log.Println("voice: cloning works best with 3 or more audio samples")
	}
	if req.Language == "" {
		req.Language = "en"
	}
	cloner, err := s.cloner(s.provider)
	if err != nil {
		return nil, err
	}
	clone, err := cloner.Clone(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("voice: couldn't clone voice: %w", err)
	}
	return clone, nil
}

// Synthesize narrates text with a cloned voice, returning raw audio bytes.
func (s *Service) Synthesize(ctx context.Context, clone *Clone, text string) ([]byte, error) {
	if clone.Status != StatusReady {
		return nil, fmt.Errorf("voice: %s is %s: %w", clone.ID, clone.Status, ErrNotReady)
	}
	cloner, err := s.cloner(clone.Provider)
	if err != nil {
		return nil, err
	}
	b, err := cloner.Synthesize(ctx, clone.ProviderID, text)
	if err != nil {
		return nil, fmt.Errorf("voice: couldn't synthesize speech: %w", err)
	}
	return b, nil
}

// DeleteVoice removes the voice at the vendor. Vendor-side failure is logged
// and swallowed: the caller's local deactivation must proceed regardless.
func (s *Service) DeleteVoice(ctx context.Context, clone *Clone) {
	cloner, err := s.cloner(clone.Provider)
	if err != nil {
		log.Printf("voice: couldn't delete %s at vendor: %v\n", clone.ID, err)
		return
	}
	if err := cloner.Delete(ctx, clone.ProviderID); err != nil {
		log.Printf("voice: couldn't delete %s at vendor: %v\n", clone.ID, err)
	}
}

// Available returns the names of the configured vendors that answer their
// account probe.
func (s *Service) Available(ctx context.Context) []string {
	var names []string
	for name, c := range s.cloners {
		if c.Available(ctx) {
			names = append(names, name)
		}
	}
	return names
}

func (s *Service) cloner(name string) (Cloner, error) {
	if c, ok := s.cloners[name]; ok {
		return c, nil
	}
	// Fall back to any configured vendor for new clones.
	if name == s.provider {
		for _, c := range s.cloners {
			return c, nil
		}
	}
	return nil, fmt.Errorf("voice: %q: %w", name, ErrNoCloner)
}
