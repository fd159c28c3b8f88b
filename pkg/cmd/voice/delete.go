package voice

import (
	"context"
	"fmt"
	"log"

	"github.com/igolaizola/motivai/pkg/storage"
	"github.com/igolaizola/motivai/pkg/voice"
)

type DeleteConfig struct {
	Debug  bool
	DBType string
	DBConn string

	Vendors Vendors

	ID string
}

// RunDelete deactivates a cloned voice. The vendor-side voice is removed
// best-effort, the local record always.
func RunDelete(ctx context.Context, cfg *DeleteConfig) error {
	log.Printf("voice: delete started\n")
	defer func() {
		log.Printf("voice: delete ended\n")
	}()

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
	svc.DeleteVoice(ctx, &voice.Clone{
		ID:         record.ID,
		Provider:   record.Provider,
		ProviderID: record.ProviderID,
	})

	if err := store.DeleteVoice(ctx, cfg.ID); err != nil {
		return err
	}
	log.Printf("voice: deleted %s\n", cfg.ID)
	return nil
}
