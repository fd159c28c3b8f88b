package music

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/igolaizola/motivai/pkg/ffmpeg"
)

// DefaultVolume keeps the music well under the narration.
const DefaultVolume = 0.15

type encoder interface {
	Mix(ctx context.Context, video, music, output string, volume float64) error
}

// Mixer downloads a catalog track or raw URL and mixes it under a video's
// narration.
type Mixer struct {
	client  *http.Client
	encoder encoder
	volume  float64
	debug   bool
}

type MixerConfig struct {
	Client    *http.Client
	FFmpegBin string
	Volume    float64
	Debug     bool
}

func NewMixer(cfg *MixerConfig) *Mixer {
	client := cfg.Client
	if client == nil {
		client = &http.Client{
			Timeout: 30 * time.Second,
		}
	}
	volume := cfg.Volume
	if volume == 0 {
		volume = DefaultVolume
	}
	return &Mixer{
		client:  client,
		encoder: ffmpeg.New(cfg.FFmpegBin),
		volume:  volume,
		debug:   cfg.Debug,
	}
}

// Mix resolves the track (catalog id or raw URL), downloads it to an
// ephemeral file and produces output with the track mixed under the video's
// audio. The downloaded file is removed on every exit path.
func (m *Mixer) Mix(ctx context.Context, video, track, output string) error {
	u := track
	if t, ok := Lookup(track); ok {
		u = t.URL
	}
	if !strings.HasPrefix(u, "http") {
		return fmt.Errorf("music: unknown track %q", track)
	}

	path, err := m.download(ctx, u)
	if err != nil {
		return err
	}
	defer func() {
		if err := os.Remove(path); err != nil {
			log.Printf("music: couldn't remove %s: %v\n", path, err)
		}
	}()

	if m.debug {
		log.Printf("music: mixing %s under %s at %v\n", track, video, m.volume)
	}
	if err := m.encoder.Mix(ctx, video, path, output, m.volume); err != nil {
		return fmt.Errorf("music: couldn't mix track: %w", err)
	}
	return nil
}

func (m *Mixer) download(ctx context.Context, u string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("music: couldn't create request: %w", err)
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("music: couldn't download track: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("music: track download returned %d", resp.StatusCode)
	}

	f, err := os.CreateTemp("", "motivai-music-*.mp3")
	if err != nil {
		return "", fmt.Errorf("music: couldn't create temp file: %w", err)
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("music: couldn't write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("music: couldn't close temp file: %w", err)
	}
	return filepath.Clean(f.Name()), nil
}
