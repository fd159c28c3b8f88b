package avatar

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/igolaizola/motivai/pkg/videogen"
)

const (
	// defaultInterval is the spacing between job status fetches.
	defaultInterval = 5 * time.Second

	// defaultTimeout is the total polling budget per generation. A job that
	// hasn't reached a terminal status by then is abandoned, not cancelled.
	defaultTimeout = 120 * time.Second
)

// Selector picks the vendor adapter to use for a generation.
type Selector interface {
	Primary(ctx context.Context) (videogen.Provider, error)
}

// Mixer combines a background track with a video's narration, writing the
// result to output. All paths are local files except the track reference.
type Mixer interface {
	Mix(ctx context.Context, video, track, output string) error
}

// Publisher stores a finished video file and resolves its access URL.
type Publisher interface {
	SetMP4(ctx context.Context, path, id string) error
	URL(ctx context.Context, name string) (string, error)
}

// Options tunes a single generation. The zero value produces an energetic
// English video with an estimated duration and no music.
type Options struct {
	Style    videogen.Style
	Language string
	VoiceID  string
	AvatarID string
	Duration int
	Music    string // catalog track id or raw URL, empty for none
	Publish  bool
}

// Result is the outcome of a completed generation.
type Result struct {
	VideoID      string
	UserID       string
	Provider     string
	Status       videogen.Status
	VideoURL     string
	ThumbnailURL string
	Duration     float32
	Warnings     []string
}

// Service orchestrates avatar video generation end to end: provider
// selection, submission, polling, music mixing and publication.
type Service struct {
	selector  Selector
	mixer     Mixer
	publisher Publisher
	client    *http.Client
	interval  time.Duration
	timeout   time.Duration
	debug     bool
}

type Config struct {
	Selector  Selector
	Mixer     Mixer     // nil disables music mixing
	Publisher Publisher // nil disables publication
	Client    *http.Client
	Interval  time.Duration
	Timeout   time.Duration
	Debug     bool
}

func New(cfg *Config) *Service {
	client := cfg.Client
	if client == nil {
		client = &http.Client{
			Timeout: 2 * time.Minute,
		}
	}
	interval := cfg.Interval
	if interval == 0 {
		interval = defaultInterval
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Service{
		selector:  cfg.Selector,
		mixer:     cfg.Mixer,
		publisher: cfg.Publisher,
		client:    client,
		interval:  interval,
		timeout:   timeout,
		debug:     cfg.Debug,
	}
}

// Generate runs one avatar video generation for the given user and script.
// Generation errors are fatal. Post-processing errors (music mixing,
// publication) are not: the vendor's unprocessed video URL is returned with
// a warning appended to the result.
func (s *Service) Generate(ctx context.Context, userID, script string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = &Options{}
	}
	style := opts.Style
	if style == "" {
		style = videogen.StyleEnergetic
	}
	language := opts.Language
	if language == "" {
		language = "en"
	}
	duration := opts.Duration
	if duration == 0 {
		duration = EstimateDuration(script)
	}

	req := &videogen.Request{
		Script:   script,
		VoiceID:  opts.VoiceID,
		AvatarID: opts.AvatarID,
		Style:    style,
		Duration: duration,
		Language: language,
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("avatar: invalid request: %w", err)
	}

	provider, err := s.selector.Primary(ctx)
	if err != nil {
		return nil, fmt.Errorf("avatar: couldn't select provider: %w", err)
	}
	s.log("avatar: generating with %s (style %s, duration %d)", provider.Name(), style, duration)

	job, err := provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("avatar: couldn't submit generation: %w", err)
	}

	job, err = s.wait(ctx, provider, job.ID)
	if err != nil {
		return nil, err
	}

	result := &Result{
		VideoID:      ulid.Make().String(),
		UserID:       userID,
		Provider:     provider.Name(),
		Status:       job.Status,
		VideoURL:     job.VideoURL,
		ThumbnailURL: job.ThumbnailURL,
		Duration:     job.Duration,
	}

	if opts.Music != "" && s.mixer != nil {
		if u, err := s.mix(ctx, result, opts.Music, opts.Publish); err != nil {
			log.Printf("avatar: couldn't mix music: %v\n", err)
			result.Warnings = append(result.Warnings, fmt.Sprintf("music mixing failed: %v", err))
		} else {
			result.VideoURL = u
		}
		return result, nil
	}

	if opts.Publish && s.publisher != nil {
		if u, err := s.publish(ctx, result.VideoID, result.VideoURL); err != nil {
			log.Printf("avatar: couldn't publish video: %v\n", err)
			result.Warnings = append(result.Warnings, fmt.Sprintf("publication failed: %v", err))
		} else {
			result.VideoURL = u
		}
	}
	return result, nil
}

// wait polls the job until it reaches a terminal status or the polling
// budget runs out. The first fetch happens immediately, the interval applies
// between fetches. A status fetch error is fatal: the call never retries a
// failed fetch.
func (s *Service) wait(ctx context.Context, provider videogen.Provider, id string) (*videogen.Job, error) {
	timeout := time.After(s.timeout)
	for {
		job, err := provider.Status(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("avatar: couldn't fetch job status: %w", err)
		}
		s.log("avatar: job %s on %s is %s", id, provider.Name(), job.Status)
		switch job.Status {
		case videogen.StatusCompleted:
			if job.VideoURL == "" {
				return nil, fmt.Errorf("avatar: job %s completed without a video url", id)
			}
			return job, nil
		case videogen.StatusFailed:
			return nil, fmt.Errorf("avatar: job %s on %s: %w", id, provider.Name(), videogen.ErrGenerationFailed)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timeout:
			return nil, fmt.Errorf("avatar: job %s on %s: %w", id, provider.Name(), videogen.ErrGenerationTimeout)
		case <-time.After(s.interval):
		}
	}
}

// mix downloads the vendor video, mixes the track under its narration and
// either publishes the result or leaves it next to the temp dir.
func (s *Service) mix(ctx context.Context, result *Result, track string, publish bool) (string, error) {
	video, err := s.download(ctx, result.VideoURL)
	if err != nil {
		return "", err
	}
	defer func() { _ = os.Remove(video) }()

	output := filepath.Join(filepath.Dir(video), fmt.Sprintf("%s.mp4", result.VideoID))
	if err := s.mixer.Mix(ctx, video, track, output); err != nil {
		return "", err
	}

	if !publish || s.publisher == nil {
		return output, nil
	}
	defer func() { _ = os.Remove(output) }()
	if err := s.publisher.SetMP4(ctx, output, result.VideoID); err != nil {
		return "", fmt.Errorf("avatar: couldn't store video: %w", err)
	}
	return s.publisher.URL(ctx, fmt.Sprintf("%s.mp4", result.VideoID))
}

func (s *Service) publish(ctx context.Context, id, videoURL string) (string, error) {
	video, err := s.download(ctx, videoURL)
	if err != nil {
		return "", err
	}
	defer func() { _ = os.Remove(video) }()
	if err := s.publisher.SetMP4(ctx, video, id); err != nil {
		return "", fmt.Errorf("avatar: couldn't store video: %w", err)
	}
	return s.publisher.URL(ctx, fmt.Sprintf("%s.mp4", id))
}

func (s *Service) download(ctx context.Context, u string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("avatar: couldn't create request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("avatar: couldn't download video: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("avatar: video download returned %d", resp.StatusCode)
	}
	f, err := os.CreateTemp("", "motivai-video-*.mp4")
	if err != nil {
		return "", fmt.Errorf("avatar: couldn't create temp file: %w", err)
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("avatar: couldn't write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("avatar: couldn't close temp file: %w", err)
	}
	return f.Name(), nil
}

func (s *Service) log(format string, args ...interface{}) {
	if s.debug {
		format += "\n"
		log.Printf(format, args...)
	}
}
