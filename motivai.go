package motivai

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/igolaizola/motivai/pkg/avatar"
	"github.com/igolaizola/motivai/pkg/music"
	"github.com/igolaizola/motivai/pkg/videogen"
	"github.com/igolaizola/motivai/pkg/videogen/registry"
)

type Config struct {
	Proxy string
	Wait  time.Duration
	Debug bool

	DIDKey    string
	HeygenKey string
	SoraKey   string
	Primary   string
	Fallback  string

	FFmpegBin string
}

// GenerateVideo generates an avatar video from a script and optionally
// downloads it to the output path.
func GenerateVideo(ctx context.Context, cfg *Config, script, style, language, track, output string) error {
	httpClient := &http.Client{
		Timeout: 2 * time.Minute,
	}
	if cfg.Proxy != "" {
		u, err := url.Parse(cfg.Proxy)
		if err != nil {
			return fmt.Errorf("invalid proxy URL: %w", err)
		}
		httpClient.Transport = &http.Transport{
			Proxy: http.ProxyURL(u),
		}
	}

	providers := map[string]videogen.Config{}
	for name, key := range map[string]string{
		"did":    cfg.DIDKey,
		"heygen": cfg.HeygenKey,
		"sora":   cfg.SoraKey,
	} {
		if key == "" {
			continue
		}
		providers[name] = videogen.Config{
			Key:    key,
			Wait:   cfg.Wait,
			Client: httpClient,
			Debug:  cfg.Debug,
		}
	}
	reg := registry.New(&registry.Config{
		Primary:   cfg.Primary,
		Fallback:  cfg.Fallback,
		Providers: providers,
	})

	svc := avatar.New(&avatar.Config{
		Selector: reg,
		Mixer: music.NewMixer(&music.MixerConfig{
			Client:    httpClient,
			FFmpegBin: cfg.FFmpegBin,
			Debug:     cfg.Debug,
		}),
		Client: httpClient,
		Debug:  cfg.Debug,
	})

	result, err := svc.Generate(ctx, "", script, &avatar.Options{
		Style:    videogen.Style(style),
		Language: language,
		Music:    track,
	})
	if err != nil {
		return fmt.Errorf("couldn't generate video: %w", err)
	}
	log.Println("id:", result.VideoID)
	log.Println("provider:", result.Provider)
	log.Println("url:", result.VideoURL)
	if result.ThumbnailURL != "" {
		log.Println("thumbnail:", result.ThumbnailURL)
	}
	for _, w := range result.Warnings {
		log.Println("warning:", w)
	}

	if output == "" {
		return nil
	}
	if !strings.HasPrefix(result.VideoURL, "http") {
		// Already a local file, move it into place
		if err := os.Rename(result.VideoURL, output); err != nil {
			return fmt.Errorf("couldn't move video: %w", err)
		}
		return nil
	}
	return download(ctx, httpClient, result.VideoURL, output)
}

func download(ctx context.Context, client *http.Client, url, output string) error {
	// Create request
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("couldn't create request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("couldn't download video: %w", err)
	}
	defer resp.Body.Close()

	// Write video to output
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("couldn't create output file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, resp.Body); err != nil {
		return fmt.Errorf("couldn't write to output file: %w", err)
	}
	return nil
}
