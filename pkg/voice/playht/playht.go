package playht

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
	name           = "playht"
	defaultBaseURL = "https://api.play.ht/api/v2"
	defaultTimeout = 2 * time.Minute
)

type Client struct {
	client    *http.Client
	ratelimit ratelimit.Lock
	key       string
	user      string
	baseURL   string
	debug     bool
}

type Config struct {
	Key     string
	User    string
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
		user:      cfg.User,
		baseURL:   baseURL,
		debug:     cfg.Debug,
	}
}

func (c *Client) Name() string {
	return name
}

type uploadResponse struct {
	FileURL string `json:"file_url"`
}

type cloneRequest struct {
	VoiceName      string   `json:"voice_name"`
	SampleFileURLs []string `json:"sample_file_urls"`
}

type cloneResponse struct {
	ID string `json:"id"`
}

// Clone uploads each sample, then creates the cloned voice from the uploaded
// URLs. The vendor processes the voice asynchronously.
func (c *Client) Clone(ctx context.Context, req *voice.CloneRequest) (*voice.Clone, error) {
	var urls []string
	for _, sample := range req.Samples {
		u, err := c.upload(ctx, sample)
		if err != nil {
			return nil, err
		}
		urls = append(urls, u)
	}
	in := &cloneRequest{
		VoiceName:      req.Name,
		SampleFileURLs: urls,
	}
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("playht: couldn't marshal request body: %w", err)
	}
	var resp cloneResponse
	if err := c.do(ctx, "POST", "cloned-voices", bytes.NewReader(body), "application/json", &resp); err != nil {
		return nil, err
	}
	if resp.ID == "" {
		return nil, fmt.Errorf("playht: empty voice id")
	}
	return &voice.Clone{
		ID:           resp.ID,
		Name:         req.Name,
		Relationship: req.Relationship,
		Description:  req.Description,
		Gender:       req.Gender,
		Language:     req.Language,
		Provider:     name,
		ProviderID:   resp.ID,
		Status:       voice.StatusProcessing,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

func (c *Client) upload(ctx context.Context, sample string) (string, error) {
	b, err := os.ReadFile(sample)
	if err != nil {
		return "", fmt.Errorf("playht: couldn't read sample %s: %w", sample, err)
	}
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filepath.Base(sample))
	if err != nil {
		return "", fmt.Errorf("playht: couldn't create form file: %w", err)
	}
	if _, err := part.Write(b); err != nil {
		return "", fmt.Errorf("playht: couldn't write sample: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("playht: couldn't close multipart body: %w", err)
	}
	var resp uploadResponse
	if err := c.do(ctx, "POST", "cloned-voices/instant", &buf, w.FormDataContentType(), &resp); err != nil {
		return "", err
	}
	if resp.FileURL == "" {
		return "", fmt.Errorf("playht: empty sample file url")
	}
	return resp.FileURL, nil
}

type ttsRequest struct {
	Text         string `json:"text"`
	Voice        string `json:"voice"`
	OutputFormat string `json:"output_format"`
}

type ttsResponse struct {
	AudioURL string `json:"audio_url"`
}

// Synthesize requests a TTS job and downloads the resulting audio.
func (c *Client) Synthesize(ctx context.Context, providerID, text string) ([]byte, error) {
	in := &ttsRequest{
		Text:         text,
		Voice:        providerID,
		OutputFormat: "mp3",
	}
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("playht: couldn't marshal request body: %w", err)
	}
	var resp ttsResponse
	if err := c.do(ctx, "POST", "tts", bytes.NewReader(body), "application/json", &resp); err != nil {
		return nil, err
	}
	if resp.AudioURL == "" {
		return nil, fmt.Errorf("playht: empty audio url")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resp.AudioURL, nil)
	if err != nil {
		return nil, fmt.Errorf("playht: couldn't create request: %w", err)
	}
	audioResp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("playht: couldn't download audio: %w", err)
	}
	defer audioResp.Body.Close()
	if audioResp.StatusCode < 200 || audioResp.StatusCode >= 300 {
		return nil, fmt.Errorf("playht: audio download returned %d", audioResp.StatusCode)
	}
	b, err := io.ReadAll(audioResp.Body)
	if err != nil {
		return nil, fmt.Errorf("playht: couldn't read audio: %w", err)
	}
	return b, nil
}

func (c *Client) Delete(ctx context.Context, providerID string) error {
	if err := c.do(ctx, "DELETE", fmt.Sprintf("cloned-voices/%s", providerID), nil, "", nil); err != nil {
		return fmt.Errorf("playht: couldn't delete voice %s: %w", providerID, err)
	}
	return nil
}

func (c *Client) Available(ctx context.Context) bool {
	if err := c.do(ctx, "GET", "user", nil, "", nil); err != nil {
		c.log("playht: availability check failed: %v", err)
		return false
	}
	return true
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	u := fmt.Sprintf("%s/%s", c.baseURL, path)
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("playht: couldn't create request: %w", err)
	}
	req.Header.Set("authorization", fmt.Sprintf("Bearer %s", c.key))
	req.Header.Set("x-user-id", c.user)
	if contentType != "" {
		req.Header.Set("content-type", contentType)
	}

	unlock := c.ratelimit.Lock(ctx)
	defer unlock()

	c.log("playht: do %s %s", method, path)
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("playht: couldn't %s %s: %w", method, u, err)
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("playht: couldn't read response body: %w", err)
	}
	c.log("playht: response %s %s %d", method, path, resp.StatusCode)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errMessage := string(respBody)
		if len(errMessage) > 100 {
			errMessage = errMessage[:100] + "..."
		}
		return fmt.Errorf("playht: %s %s returned %d: %s", method, u, resp.StatusCode, errMessage)
	}
	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("playht: couldn't unmarshal response body (%T): %w", out, err)
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
