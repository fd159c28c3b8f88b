package voice

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/igolaizola/motivai/pkg/storage"
	"github.com/igolaizola/motivai/pkg/voice"
)

type SynthesizeConfig struct {
	Debug  bool
	DBType string
	DBConn string

	Vendors Vendors

	ID     string
	Text   string
	Output string
}

// RunSynthesize narrates text with a cloned voice and writes the MP3.
func RunSynthesize(ctx context.Context, cfg *SynthesizeConfig) error {
	log.Printf("voice: synthesize started\n")
	defer func() {
		log.Printf("voice: synthesize ended\n")
	}()

	if cfg.Text == "" {
		return fmt.Errorf("voice: text is empty")
	}
	output := cfg.Output
	if output == "" {
		output = "speech.mp3"
	}

	store, err := storage.New(cfg.DBType, cfg.DBConn, cfg.Debug)
	if err != nil {
		return fmt.Errorf("voice: couldn't create orm store: %w", err)
	}
	if err := store.Start(ctx); err != nil {
		return fmt.Errorf("voice: couldn't start orm store: %w", err)
	}

	record, err := store.GetVoice(ctx, cfg.ID)
	if err != nil {
		return fmt.Errorf("voice: couldn't get voice %s: %w", cfg.ID, err)
	}

	svc, err := newService(&cfg.Vendors, nil, cfg.Debug)
	if err != nil {
		return err
	}
	b, err := svc.Synthesize(ctx, &voice.Clone{
		ID:         record.ID,
		Provider:   record.Provider,
		ProviderID: record.ProviderID,
		Status:     voice.Status(record.Status),
	}, cfg.Text)
	if err != nil {
		return err
	}

	if err := os.WriteFile(output, b, 0644); err != nil {
		return fmt.Errorf("voice: couldn't write %s: %w", output, err)
	}
	log.Printf("voice: wrote %s\n", output)
	return nil
}
