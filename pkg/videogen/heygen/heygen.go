package heygen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/igolaizola/motivai/pkg/lang"
	"github.com/igolaizola/motivai/pkg/ratelimit"
	"github.com/igolaizola/motivai/pkg/videogen"
)

// Avatar-marketing vendor. Generates vertical 9:16 avatar videos with a
// catalog of stock presenters.

const (
	name           = "heygen"
	defaultBaseURL = "https://api.heygen.com/v2"
	defaultTimeout = 60 * time.Second
	defaultAvatar  = "josh_lite3_20230714"
)

type Client struct {
	client    *http.Client
	ratelimit ratelimit.Lock
	key       string
	baseURL   string
	debug     bool
}

func New(cfg *videogen.Config) *Client {
	wait := cfg.Wait
	if wait == 0 {
		wait = 1 * time.Second
	}
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

type character struct {
	Type        string `json:"type"`
	AvatarID    string `json:"avatar_id"`
	AvatarStyle string `json:"avatar_style"`
}

type voiceInput struct {
	Type      string `json:"type"`
	InputText string `json:"input_text"`
	VoiceID   string `json:"voice_id"`
}

type videoInput struct {
	Character character  `json:"character"`
	Voice     voiceInput `json:"voice"`
}

type dimension struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type generateRequest struct {
	VideoInputs []videoInput `json:"video_inputs"`
	Dimension   dimension    `json:"dimension"`
	AspectRatio string       `json:"aspect_ratio"`
}

type generateResponse struct {
	VideoID      string  `json:"video_id"`
	Status       string  `json:"status"`
	VideoURL     string  `json:"video_url"`
	ThumbnailURL string  `json:"thumbnail_url"`
	Duration     float32 `json:"duration"`
	Error        string  `json:"error"`
}

func (c *Client) Generate(ctx context.Context, req *videogen.Request) (*videogen.Job, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	voiceID := req.VoiceID
	if voiceID == "" {
		voiceID = lang.VoiceFor(req.Language, name)
	}
	avatar := req.AvatarID
	if avatar == "" {
		avatar = defaultAvatar
	}
	style := "normal"
	if req.Style != "" {
		style = string(req.Style)
	}
	in := &generateRequest{
		VideoInputs: []videoInput{
			{
				Character: character{
					Type:        "avatar",
					AvatarID:    avatar,
					AvatarStyle: style,
				},
				Voice: voiceInput{
					Type:      "text",
					InputText: req.Script,
					VoiceID:   voiceID,
				},
			},
		},
		// Vertical short format
		Dimension: dimension{
			Width:  1080,
			Height: 1920,
		},
		AspectRatio: "9:16",
	}
	var resp generateResponse
	if err := c.do(ctx, "POST", "video/generate", in, &resp); err != nil {
		return nil, &videogen.RequestError{
			Provider: name,
			Message:  resp.Error,
			Err:      err,
		}
	}
	return &videogen.Job{
		ID:       resp.VideoID,
		Provider: name,
		Status:   videogen.StatusProcessing,
	}, nil
}

func (c *Client) Status(ctx context.Context, id string) (*videogen.Job, error) {
	var resp generateResponse
	if err := c.do(ctx, "GET", fmt.Sprintf("video/status/%s", id), nil, &resp); err != nil {
		return nil, fmt.Errorf("heygen: couldn't get video %s: %w", id, err)
	}
	return &videogen.Job{
		ID:           resp.VideoID,
		Provider:     name,
		Status:       mapStatus(resp.Status),
		VideoURL:     resp.VideoURL,
		ThumbnailURL: resp.ThumbnailURL,
		Duration:     resp.Duration,
	}, nil
}

func (c *Client) Available(ctx context.Context) bool {
	if err := c.do(ctx, "GET", "user/remaining_quota", nil, nil); err != nil {
		c.log("heygen: availability check failed: %v", err)
		return false
	}
	return true
}

func mapStatus(status string) videogen.Status {
	switch status {
	case "completed":
		return videogen.StatusCompleted
	case "failed":
		return videogen.StatusFailed
	default:
		return videogen.StatusProcessing
	}
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var reqBody io.Reader
	if in != nil {
		body, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("heygen: couldn't marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(body)
	}
	u := fmt.Sprintf("%s/%s", c.baseURL, path)
	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("heygen: couldn't create request: %w", err)
	}
	req.Header.Set("x-api-key", c.key)
	req.Header.Set("content-type", "application/json")

	unlock := c.ratelimit.Lock(ctx)
	defer unlock()

	c.log("heygen: do %s %s", method, path)
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("heygen: couldn't %s %s: %w", method, u, err)
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("heygen: couldn't read response body: %w", err)
	}
	c.log("heygen: response %s %s %d", method, path, resp.StatusCode)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errMessage := string(respBody)
		if len(errMessage) > 100 {
			errMessage = errMessage[:100] + "..."
		}
		return fmt.Errorf("heygen: %s %s returned %d: %s", method, u, resp.StatusCode, errMessage)
	}
	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("heygen: couldn't unmarshal response body (%T): %w", out, err)
		}
	}
	return nil
}

func (c *Client) log(format string, args ...interface{}) {
	if c.debug {
		format += "\n"
		log.Printf(format, args...)
	}
}
