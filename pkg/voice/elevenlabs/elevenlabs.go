package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/igolaizola/motivai/pkg/ratelimit"
	"github.com/igolaizola/motivai/pkg/voice"
)

const (
	name           = "elevenlabs"
	defaultBaseURL = "https://api.elevenlabs.io/v1"
	defaultTimeout = 2 * time.Minute

	// Multilingual TTS model, covers all platform languages.
	ttsModel = "eleven_multilingual_v2"
)

type Client struct {
	client    *http.Client
	ratelimit ratelimit.Lock
	key       string
	baseURL   string
	debug     bool
}

type Config struct {
	Key     string
	BaseURL string
	Wait    time.Duration
	Client  *http.Client
	Debug   bool
}

func New(cfg *Config) *Client {
	wait := cfg.Wait
	if wait == 0 {
		wait = 1 * time.Second
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{
			Timeout: defaultTimeout,
		}
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		client:    client,
		ratelimit: ratelimit.New(wait),
		key:       cfg.Key,
		baseURL:   baseURL,
		debug:     cfg.Debug,
	}
}

func (c *Client) Name() string {
	return name
}

type addVoiceResponse struct {
	VoiceID string `json:"voice_id"`
}

// Clone uploads all samples in one multipart call. The vendor returns a voice
// that is usable immediately.
func (c *Client) Clone(ctx context.Context, req *voice.CloneRequest) (*voice.Clone, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("name", req.Name); err != nil {
		return nil, fmt.Errorf("elevenlabs: couldn't write field: %w", err)
	}
	if err := w.WriteField("description", req.Description); err != nil {
		return nil, fmt.Errorf("elevenlabs: couldn't write field: %w", err)
	}
	for _, sample := range req.Samples {
		b, err := os.ReadFile(sample)
		if err != nil {
			return nil, fmt.Errorf("elevenlabs: couldn't read sample %s: %w", sample, err)
		}
		part, err := w.CreateFormFile("files", filepath.Base(sample))
		if err != nil {
			return nil, fmt.Errorf("elevenlabs: couldn't create form file: %w", err)
		}
		if _, err := part.Write(b); err != nil {
			return nil, fmt.Errorf("elevenlabs: couldn't write sample: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("elevenlabs: couldn't close multipart body: %w", err)
	}

	var resp addVoiceResponse
	if err := c.do(ctx, "POST", "voices/add", &buf, w.FormDataContentType(), &resp); err != nil {
		return nil, err
	}
	if resp.VoiceID == "" {
		return nil, fmt.Errorf("elevenlabs: empty voice id")
	}
	return &voice.Clone{
		ID:           resp.VoiceID,
		Name:         req.Name,
		Relationship: req.Relationship,
		Description:  req.Description,
		Gender:       req.Gender,
		Language:     req.Language,
		Provider:     name,
		ProviderID:   resp.VoiceID,
		Status:       voice.StatusReady,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

type ttsRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float32 `json:"stability"`
	SimilarityBoost float32 `json:"similarity_boost"`
}

// Synthesize returns MP3 bytes narrated with the cloned voice.
func (c *Client) Synthesize(ctx context.Context, providerID, text string) ([]byte, error) {
	in := &ttsRequest{
		Text:    text,
		ModelID: ttsModel,
		VoiceSettings: voiceSettings{
			Stability:       0.5,
			SimilarityBoost: 0.75,
		},
	}
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs: couldn't marshal request body: %w", err)
	}
	return c.doRaw(ctx, "POST", fmt.Sprintf("text-to-speech/%s", providerID), bytes.NewReader(body), "application/json")
}

func (c *Client) Delete(ctx context.Context, providerID string) error {
	if err := c.do(ctx, "DELETE", fmt.Sprintf("voices/%s", providerID), nil, "", nil); err != nil {
		return fmt.Errorf("elevenlabs: couldn't delete voice %s: %w", providerID, err)
	}
	return nil
}

func (c *Client) Available(ctx context.Context) bool {
	if err := c.do(ctx, "GET", "user", nil, "", nil); err != nil {
		c.log("elevenlabs: availability check failed: %v", err)
		return false
	}
	return true
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	b, err := c.doRaw(ctx, method, path, body, contentType)
	if err != nil {
		return err
	}
	if out != nil {
		if err := json.Unmarshal(b, out); err != nil {
			return fmt.Errorf("elevenlabs: couldn't unmarshal response body (%T): %w", out, err)
		}
	}
	return nil
}

func (c *Client) doRaw(ctx context.Context, method, path string, body io.Reader, contentType string) ([]byte, error) {
	u := fmt.Sprintf("%s/%s", c.baseURL, path)
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs: couldn't create request: %w", err)
	}
	req.Header.Set("xi-api-key", c.key)
	if contentType != "" {
		req.Header.Set("content-type", contentType)
	}

	unlock := c.ratelimit.Lock(ctx)
	defer unlock()

	c.log("elevenlabs: do %s %s", method, path)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs: couldn't %s %s: %w", method, u, err)
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs: couldn't read response body: %w", err)
	}
	c.log("elevenlabs: response %s %s %d", method, path, resp.StatusCode)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errMessage := string(respBody)
		if len(errMessage) > 100 {
			errMessage = errMessage[:100] + "..."
		}
		return nil, fmt.Errorf("elevenlabs: %s %s returned %d: %s", method, u, resp.StatusCode, errMessage)
	}
	return respBody, nil
}

func (c *Client) log(format string, args ...interface{}) {
	if c.debug {
		format += "\n"
		log.Printf(format, args...)
	}
}
