package did

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

// Photoreal talking-avatar vendor. Turns a still presenter image plus a text
// script into a narrated video.

const (
	name           = "did"
	defaultBaseURL = "https://api.d-id.com"
	defaultTimeout = 60 * time.Second
	defaultAvatar  = "https://create-images-results.d-id.com/default-presenter.jpg"
	voiceProvider  = "microsoft"
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

type talkScript struct {
	Type     string       `json:"type"`
	Input    string       `json:"input"`
	Provider talkProvider `json:"provider"`
}

type talkProvider struct {
	Type    string `json:"type"`
	VoiceID string `json:"voice_id"`
}

type talkConfig struct {
	Stitch       bool   `json:"stitch"`
	ResultFormat string `json:"result_format"`
}

type talkRequest struct {
	Script    talkScript `json:"script"`
	SourceURL string     `json:"source_url"`
	Config    talkConfig `json:"config"`
}

type talkResponse struct {
	ID        string  `json:"id"`
	Status    string  `json:"status"`
	ResultURL string  `json:"result_url"`
	Duration  float32 `json:"duration"`
	Error     struct {
		Kind        string `json:"kind"`
		Description string `json:"description"`
	} `json:"error"`
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
	in := &talkRequest{
		Script: talkScript{
			Type:  "text",
			Input: req.Script,
			Provider: talkProvider{
				Type:    voiceProvider,
				VoiceID: voiceID,
			},
		},
		SourceURL: avatar,
		Config: talkConfig{
			Stitch:       true,
			ResultFormat: "mp4",
		},
	}
	var resp talkResponse
	if err := c.do(ctx, "POST", "talks", in, &resp); err != nil {
		return nil, &videogen.RequestError{
			Provider: name,
			Message:  resp.Error.Description,
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
	var resp talkResponse
	if err := c.do(ctx, "GET", fmt.Sprintf("talks/%s", id), nil, &resp); err != nil {
		return nil, fmt.Errorf("did: couldn't get talk %s: %w", id, err)
	}
	return &videogen.Job{
		ID:       resp.ID,
		Provider: name,
		Status:   mapStatus(resp.Status),
		VideoURL: resp.ResultURL,
		Duration: resp.Duration,
	}, nil
}

func (c *Client) Available(ctx context.Context) bool {
	if err := c.do(ctx, "GET", "credits", nil, nil); err != nil {
		c.log("did: availability check failed: %v", err)
		return false
	}
	return true
}

// mapStatus maps the vendor vocabulary onto the canonical statuses. Unknown
// statuses count as still processing.
func mapStatus(status string) videogen.Status {
	switch status {
	case "done":
		return videogen.StatusCompleted
	case "error", "rejected":
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
			return fmt.Errorf("did: couldn't marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(body)
	}
	u := fmt.Sprintf("%s/%s", c.baseURL, path)
	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("did: couldn't create request: %w", err)
	}
	req.Header.Set("authorization", fmt.Sprintf("Basic %s", c.key))
	req.Header.Set("content-type", "application/json")

	unlock := c.ratelimit.Lock(ctx)
	defer unlock()

	c.log("did: do %s %s", method, path)
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("did: couldn't %s %s: %w", method, u, err)
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("did: couldn't read response body: %w", err)
	}
	c.log("did: response %s %s %d", method, path, resp.StatusCode)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errMessage := string(respBody)
		if len(errMessage) > 100 {
			errMessage = errMessage[:100] + "..."
		}
		return fmt.Errorf("did: %s %s returned %d: %s", method, u, resp.StatusCode, errMessage)
	}
	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("did: couldn't unmarshal response body (%T): %w", out, err)
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
