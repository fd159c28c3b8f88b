package videogen

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Status is the canonical lifecycle status of a generation job. Vendor
// specific vocabularies are mapped onto these three values by each adapter.
type Status string

const (
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// MaxDuration is the platform cap for generated videos, in seconds
// (vertical short format).
const MaxDuration = 60

type Style string

const (
	StyleProfessional Style = "professional"
	StyleCasual       Style = "casual"
	StyleEnergetic    Style = "energetic"
	StyleCalm         Style = "calm"
)

// Request is a vendor-agnostic avatar video generation request.
type Request struct {
	Script   string `json:"script"`
	VoiceID  string `json:"voice_id,omitempty"`
	AvatarID string `json:"avatar_id,omitempty"`
	Style    Style  `json:"style,omitempty"`
	Duration int    `json:"duration,omitempty"`
	Language string `json:"language,omitempty"`
}

func (r *Request) Validate() error {
	if r.Script == "" {
		return errors.New("videogen: empty script")
	}
	if r.Duration > MaxDuration {
		return fmt.Errorf("videogen: duration %d over the %d second cap", r.Duration, MaxDuration)
	}
	return nil
}

// Job is the vendor-assigned generation job as seen from the last status
// fetch. It is owned by the generation call that submitted it and is only
// mutated by polling reads.
type Job struct {
	ID           string  `json:"id"`
	Provider     string  `json:"provider"`
	Status       Status  `json:"status"`
	VideoURL     string  `json:"video_url,omitempty"`
	ThumbnailURL string  `json:"thumbnail_url,omitempty"`
	Duration     float32 `json:"duration,omitempty"`
}

// Provider is the uniform contract implemented by every video vendor adapter.
type Provider interface {
	Name() string
	// Generate submits a generation job and returns it in processing state.
	Generate(ctx context.Context, req *Request) (*Job, error)
	// Status fetches the current state of a previously submitted job.
	Status(ctx context.Context, id string) (*Job, error)
	// Available probes the vendor account. It never returns an error: any
	// failure (network, auth, quota) reports the vendor as unavailable.
	Available(ctx context.Context) bool
}

// Config holds the credentials and overrides for one vendor adapter.
type Config struct {
	Key     string        `yaml:"key"`
	BaseURL string        `yaml:"base-url"`
	Timeout time.Duration `yaml:"timeout"` // 0 means adapter default
	Wait    time.Duration `yaml:"-"`       // minimum spacing between vendor calls
	Client  *http.Client  `yaml:"-"`
	Debug   bool          `yaml:"-"`
}

var (
	// ErrNoProvider is returned when no vendor in the candidate list is
	// available. The generation request cannot be served.
	ErrNoProvider = errors.New("videogen: no video provider available")

	// ErrNotConfigured is returned when a vendor has no API key configured.
	ErrNotConfigured = errors.New("videogen: provider not configured")

	// ErrGenerationFailed is a terminal job outcome reported by the vendor.
	ErrGenerationFailed = errors.New("videogen: generation failed")

	// ErrGenerationTimeout is raised when a job doesn't reach a terminal
	// status within the polling budget. The vendor job is not cancelled.
	ErrGenerationTimeout = errors.New("videogen: generation timed out")
)

// RequestError wraps a vendor rejection, keeping the raw vendor message for
// diagnostics.
type RequestError struct {
	Provider string
	Message  string
	Err      error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("videogen: %s rejected request (%s): %v", e.Provider, e.Message, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}
