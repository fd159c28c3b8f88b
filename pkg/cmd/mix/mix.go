package mix

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/igolaizola/motivai/pkg/music"
)

type Config struct {
	Debug     bool
	FFmpegBin string

	Video  string
	Track  string
	Output string
	Volume float64
}

// Run mixes a background track under an existing video file.
func Run(ctx context.Context, cfg *Config) error {
	log.Println("mix: started")
	defer func() {
		log.Println("mix: ended")
	}()

	if cfg.Video == "" {
		return fmt.Errorf("mix: video is empty")
	}
	if cfg.Track == "" {
		return fmt.Errorf("mix: track is empty")
	}
	output := cfg.Output
	if output == "" {
		output = "mixed.mp4"
	}

	mixer := music.NewMixer(&music.MixerConfig{
		Client: &http.Client{
			Timeout: 2 * time.Minute,
		},
		FFmpegBin: cfg.FFmpegBin,
		Volume:    cfg.Volume,
		Debug:     cfg.Debug,
	})
	if err := mixer.Mix(ctx, cfg.Video, cfg.Track, output); err != nil {
		return fmt.Errorf("mix: %w", err)
	}
	log.Printf("mix: wrote %s\n", output)
	return nil
}
