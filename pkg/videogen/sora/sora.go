package sora

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/igolaizola/motivai/pkg/videogen"
)

// Cinematic text-to-video vendor with no public API yet. The protocol below
// is a projection from the vendor's existing API patterns so the adapter can
// sit in the fallback chain today; Available always reports false until the
// real API launches.

const (
	name           = "sora"
	defaultBaseURL = "https://api.openai.com/v1"
	defaultTimeout = 120 * time.Second
)

type Client struct {
	client  *http.Client
	key     string
	baseURL string
}

func New(cfg *videogen.Config) *Client {
	client := cfg.Client
	if client == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{
			Timeout: timeout,
		}
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		client:  client,
		key:     cfg.Key,
		baseURL: baseURL,
	}
}

func (c *Client) Name() string {
	return name
}

type generateRequest struct {
	Prompt      string `json:"prompt"`
	Duration    int    `json:"duration"`
	AspectRatio string `json:"aspect_ratio"`
	Quality     string `json:"quality"`
	Style       string `json:"style"`
}

type generateResponse struct {
	ID       string  `json:"id"`
	Status   string  `json:"status"`
	URL      string  `json:"url"`
	Duration float32 `json:"duration"`
}

func (c *Client) Generate(ctx context.Context, req *videogen.Request) (*videogen.Job, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	duration := req.Duration
	if duration == 0 {
		duration = 30
	}
	style := string(req.Style)
	if style == "" {
		style = "realistic"
	}
	in := &generateRequest{
		Prompt:      buildPrompt(req),
		Duration:    duration,
		AspectRatio: "9:16",
		Quality:     "hd",
		Style:       style,
	}
	var resp generateResponse
	if err := c.do(ctx, "POST", "sora/generate", in, &resp); err != nil {
		return nil, &videogen.RequestError{
			Provider: name,
			Message:  "vendor has no public API yet",
			Err:      err,
		}
	}
	return &videogen.Job{
		ID:       resp.ID,
		Provider: name,
		Status:   videogen.StatusProcessing,
	}, nil
}

func (c *Client) Status(ctx context.Context, id string) (*videogen.Job, error) {
	var resp generateResponse
	if err := c.do(ctx, "GET", fmt.Sprintf("sora/videos/%s", id), nil, &resp); err != nil {
		return nil, fmt.Errorf("sora: couldn't get video %s: %w", id, err)
	}
	return &videogen.Job{
		ID:       resp.ID,
		Provider: name,
		Status:   mapStatus(resp.Status),
		VideoURL: resp.URL,
		Duration: resp.Duration,
	}, nil
}

// Available always reports false: the vendor hasn't launched. Keeping the
// stub in the candidate list preserves the selection chain's behavior.
func (c *Client) Available(ctx context.Context) bool {
	return false
}

func mapStatus(status string) videogen.Status {
	switch status {
	case "completed", "succeeded":
		return videogen.StatusCompleted
	case "failed", "error":
		return videogen.StatusFailed
	default:
		return videogen.StatusProcessing
	}
}

var styleScenes = map[videogen.Style]string{
	videogen.StyleProfessional: "professional, business-like setting with clean background",
	videogen.StyleCasual:       "casual, friendly atmosphere with warm lighting",
	videogen.StyleEnergetic:    "vibrant, energetic environment with dynamic lighting",
	videogen.StyleCalm:         "peaceful, serene setting with soft, natural lighting",
}

func buildPrompt(req *videogen.Request) string {
	scene, ok := styleScenes[req.Style]
	if !ok {
		scene = styleScenes[videogen.StyleProfessional]
	}
	var b strings.Builder
	b.WriteString("Create a motivational video featuring a realistic avatar speaking to camera.\n")
	b.WriteString(scene)
	b.WriteString(". The avatar should appear genuine, trustworthy, and encouraging.\n")
	b.WriteString("High quality cinematography, natural movements, engaging eye contact.\n")
	b.WriteString("Vertical 9:16 short format.\n\n")
	b.WriteString(fmt.Sprintf("Voice-over text: %q", req.Script))
	return b.String()
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var reqBody io.Reader
	if in != nil {
		body, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("sora: couldn't marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(body)
	}
	u := fmt.Sprintf("%s/%s", c.baseURL, path)
	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("sora: couldn't create request: %w", err)
	}
	req.Header.Set("authorization", fmt.Sprintf("Bearer %s", c.key))
	req.Header.Set("content-type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("sora: couldn't %s %s: %w", method, u, err)
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("sora: couldn't read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errMessage := string(respBody)
		if len(errMessage) > 100 {
			errMessage = errMessage[:100] + "..."
		}
		return fmt.Errorf("sora: %s %s returned %d: %s", method, u, resp.StatusCode, errMessage)
	}
	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("sora: couldn't unmarshal response body (%T): %w", out, err)
		}
	}
	return nil
}
