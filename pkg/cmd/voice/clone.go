package voice

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/igolaizola/motivai/pkg/filestore"
	"github.com/igolaizola/motivai/pkg/sound"
	"github.com/igolaizola/motivai/pkg/storage"
	"github.com/igolaizola/motivai/pkg/voice"
)

// minSampleDuration is the shortest sample worth sending to a vendor.
const minSampleDuration = 10 * time.Second

type CloneConfig struct {
	Debug  bool
	DBType string
	DBConn string
	FSType string
	FSConn string

	Vendors Vendors

	User         string
	Name         string
	Relationship string
	Description  string
	Gender       string
	Language     string
	Samples      []string
}

// RunClone vets the audio samples and creates a cloned voice at the vendor.
func RunClone(ctx context.Context, cfg *CloneConfig) error {
	log.Printf("voice: clone started\n")
	defer func() {
		log.Printf("voice: clone ended\n")
	}()

	if cfg.Name == "" {
		return fmt.Errorf("voice: name is empty")
	}
	if len(cfg.Samples) == 0 {
		return fmt.Errorf("voice: at least one sample is required")
	}

	store, err := storage.New(cfg.DBType, cfg.DBConn, cfg.Debug)
	if err != nil {
		return fmt.Errorf("voice: couldn't create orm store: %w", err)
	}
	if err := store.Start(ctx); err != nil {
		return fmt.Errorf("voice: couldn't start orm store: %w", err)
	}

	// Vet the samples before paying for a vendor call.
	for _, sample := range cfg.Samples {
		a, err := sound.NewAnalyzer(sample)
		if err != nil {
			return fmt.Errorf("voice: couldn't analyze sample %s: %w", sample, err)
		}
		if a.NearSilent(0.9) {
			return fmt.Errorf("voice: sample %s is mostly silence", sample)
		}
		if a.Duration() < minSampleDuration {
			log.Printf("voice: sample %s is short (%s), cloning quality may suffer\n", sample, a.Duration())
		}
	}

	var fstore *filestore.Store
	if cfg.FSType != "" {
		fstore, err = filestore.New(cfg.FSType, cfg.FSConn, "", cfg.Debug, store)
		if err != nil {
			return fmt.Errorf("voice: couldn't create file storage: %w", err)
		}
	}

	svc, err := newService(&cfg.Vendors, nil, cfg.Debug)
	if err != nil {
		return err
	}
	clone, err := svc.CloneVoice(ctx, &voice.CloneRequest{
		Name:         cfg.Name,
		Relationship: cfg.Relationship,
		Description:  cfg.Description,
		Gender:       cfg.Gender,
		Language:     cfg.Language,
		Samples:      cfg.Samples,
	})
	if err != nil {
		return err
	}

	// Archive the first sample next to the record so the voice can be
	// re-cloned at another vendor later. Archiving failures don't lose the
	// clone, the record just keeps an empty sample url.
	if fstore != nil {
		if err := archiveSample(ctx, fstore, clone, cfg.Samples[0]); err != nil {
			log.Printf("voice: couldn't archive sample: %v\n", err)
		}
	}

	v := &storage.Voice{
		ID:           clone.ID,
		UserID:       cfg.User,
		Name:         clone.Name,
		Relationship: clone.Relationship,
		Description:  clone.Description,
		Gender:       clone.Gender,
		Language:     clone.Language,
		Provider:     clone.Provider,
		ProviderID:   clone.ProviderID,
		SampleURL:    clone.SampleURL,
		Status:       string(clone.Status),
	}
	if err := store.SetVoice(ctx, v); err != nil {
		return err
	}
	log.Printf("voice: cloned %s at %s (%s)\n", clone.ID, clone.Provider, clone.Status)
	return nil
}

type sampleStore interface {
	SetMP3(ctx context.Context, path, id string) error
	URL(ctx context.Context, name string) (string, error)
}

// archiveSample uploads the sample under the clone id and fills in the
// clone's sample url.
func archiveSample(ctx context.Context, fstore sampleStore, clone *voice.Clone, sample string) error {
	if err := fstore.SetMP3(ctx, sample, clone.ID); err != nil {
		return fmt.Errorf("voice: couldn't store sample %s: %w", sample, err)
	}
	u, err := fstore.URL(ctx, filestore.MP3(clone.ID))
	if err != nil {
		return fmt.Errorf("voice: couldn't resolve sample url: %w", err)
	}
	clone.SampleURL = u
	return nil
}
