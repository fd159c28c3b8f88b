package generate

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/igolaizola/motivai/pkg/avatar"
	"github.com/igolaizola/motivai/pkg/filestore"
	"github.com/igolaizola/motivai/pkg/lang"
	"github.com/igolaizola/motivai/pkg/music"
	"github.com/igolaizola/motivai/pkg/openai"
	"github.com/igolaizola/motivai/pkg/storage"
	"github.com/igolaizola/motivai/pkg/videogen"
	"github.com/igolaizola/motivai/pkg/videogen/registry"
)

type Config struct {
	Debug  bool
	DBType string
	DBConn string
	Proxy  string

	FSType string
	FSConn string

	FFmpegBin string
	Languages string

	OpenAIKey   string
	OpenAIModel string
	DIDKey      string
	HeygenKey   string
	SoraKey     string

	Primary  string
	Fallback string

	User     string
	Script   string
	Story    string
	Title    string
	Language string
	Style    string
	Voice    string
	Avatar   string
	Duration int
	Music    string
	Volume   float64
	Publish  bool
}

// Run launches a full avatar video generation.
func Run(ctx context.Context, cfg *Config) error {
	log.Println("generate: started")
	defer func() {
		log.Println("generate: ended")
	}()

	if cfg.Languages != "" {
		if err := lang.Load(cfg.Languages); err != nil {
			return fmt.Errorf("generate: %w", err)
		}
	}

	store, err := storage.New(cfg.DBType, cfg.DBConn, cfg.Debug)
	if err != nil {
		return fmt.Errorf("generate: couldn't create orm store: %w", err)
	}
	if err := store.Start(ctx); err != nil {
		return fmt.Errorf("generate: couldn't start orm store: %w", err)
	}

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

	// Keys not given as flags are read from the settings table.
	key := func(flag, service string) string {
		if flag != "" {
			return flag
		}
		s, err := store.GetSetting(ctx, fmt.Sprintf("%s/default/key", service))
		if err != nil {
			return ""
		}
		return s.Value
	}

	providers := map[string]videogen.Config{}
	for service, k := range map[string]string{
		"did":    key(cfg.DIDKey, "did"),
		"heygen": key(cfg.HeygenKey, "heygen"),
		"sora":   key(cfg.SoraKey, "sora"),
	} {
		if k == "" {
			continue
		}
		providers[service] = videogen.Config{
			Key:    k,
			Client: httpClient,
			Debug:  cfg.Debug,
		}
	}
	reg := registry.New(&registry.Config{
		Primary:   cfg.Primary,
		Fallback:  cfg.Fallback,
		Providers: providers,
	})

	var fstore *filestore.Store
	if cfg.FSType != "" {
		fstore, err = filestore.New(cfg.FSType, cfg.FSConn, cfg.Proxy, cfg.Debug, store)
		if err != nil {
			return fmt.Errorf("generate: %w", err)
		}
	}

	mixer := music.NewMixer(&music.MixerConfig{
		Client:    httpClient,
		FFmpegBin: cfg.FFmpegBin,
		Volume:    cfg.Volume,
		Debug:     cfg.Debug,
	})

	var publisher avatar.Publisher
	if fstore != nil {
		publisher = fstore
	}
	svc := avatar.New(&avatar.Config{
		Selector:  reg,
		Mixer:     mixer,
		Publisher: publisher,
		Client:    httpClient,
		Debug:     cfg.Debug,
	})

	// Generate a script from the user's story when none is given.
	script := cfg.Script
	title := cfg.Title
	if script == "" {
		openaiKey := key(cfg.OpenAIKey, "openai")
		if openaiKey == "" {
			return fmt.Errorf("generate: script or openai key required")
		}
		ai := openai.New(&openai.Config{
			Token: openaiKey,
			Model: cfg.OpenAIModel,
			Debug: cfg.Debug,
		})
		generated, err := ai.GenerateScript(ctx, cfg.Story, cfg.Language)
		if err != nil {
			return fmt.Errorf("generate: %w", err)
		}
		script = generated.Content
		if title == "" {
			title = generated.Title
		}
		log.Printf("generate: script generated: %s\n", title)
	}

	result, err := svc.Generate(ctx, cfg.User, script, &avatar.Options{
		Style:    videogen.Style(cfg.Style),
		Language: cfg.Language,
		VoiceID:  cfg.Voice,
		AvatarID: cfg.Avatar,
		Duration: cfg.Duration,
		Music:    cfg.Music,
		Publish:  cfg.Publish,
	})
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	for _, w := range result.Warnings {
		log.Printf("generate: warning: %s\n", w)
	}

	video := &storage.Video{
		ID:           result.VideoID,
		UserID:       cfg.User,
		Title:        title,
		Script:       script,
		Language:     cfg.Language,
		Style:        cfg.Style,
		Provider:     result.Provider,
		Status:       string(result.Status),
		VideoURL:     result.VideoURL,
		ThumbnailURL: result.ThumbnailURL,
		Duration:     result.Duration,
		MusicTrack:   cfg.Music,
		Warnings:     strings.Join(result.Warnings, "; "),
	}
	if err := store.SetVideo(ctx, video); err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	log.Printf("generate: video %s ready at %s\n", result.VideoID, result.VideoURL)
	return nil
}
