package voice

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/igolaizola/motivai/pkg/sound"
)

type InspectConfig struct {
	Debug bool

	Sample string
	Plot   string
}

// RunInspect analyzes a local audio sample and optionally plots its waveform.
func RunInspect(ctx context.Context, cfg *InspectConfig) error {
	if cfg.Sample == "" {
		return fmt.Errorf("voice: sample is empty")
	}

	a, err := sound.NewAnalyzer(cfg.Sample)
	if err != nil {
		return fmt.Errorf("voice: couldn't analyze sample %s: %w", cfg.Sample, err)
	}

	log.Printf("voice: %s duration %s peak %.3f\n", cfg.Sample, a.Duration(), a.Peak())
	if a.NearSilent(0.9) {
		log.Printf("voice: %s is mostly silence, not usable for cloning\n", cfg.Sample)
	} else if a.Duration() < minSampleDuration {
		log.Printf("voice: %s is short (%s), cloning quality may suffer\n", cfg.Sample, a.Duration())
	} else {
		log.Printf("voice: %s looks usable for cloning\n", cfg.Sample)
	}

	if cfg.Plot != "" {
		b, err := a.PlotWave(cfg.Sample)
		if err != nil {
			return fmt.Errorf("voice: couldn't plot sample: %w", err)
		}
		if err := os.WriteFile(cfg.Plot, b, 0644); err != nil {
			return fmt.Errorf("voice: couldn't write %s: %w", cfg.Plot, err)
		}
		log.Printf("voice: wrote %s\n", cfg.Plot)
	}
	return nil
}
