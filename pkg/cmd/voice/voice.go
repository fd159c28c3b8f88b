package voice

import (
	"fmt"
	"net/http"
	"time"

	"github.com/igolaizola/motivai/pkg/voice"
	"github.com/igolaizola/motivai/pkg/voice/elevenlabs"
	"github.com/igolaizola/motivai/pkg/voice/playht"
)

// Vendors is the shared vendor configuration for every voice operation.
type Vendors struct {
	Provider string

	ElevenLabsKey string
	PlayHTKey     string
	PlayHTUser    string
}

func newService(v *Vendors, proxyClient *http.Client, debug bool) (*voice.Service, error) {
	client := proxyClient
	if client == nil {
		client = &http.Client{
			Timeout: 2 * time.Minute,
		}
	}
	var cloners []voice.Cloner
	if v.ElevenLabsKey != "" {
		cloners = append(cloners, elevenlabs.New(&elevenlabs.Config{
			Key:    v.ElevenLabsKey,
			Client: client,
			Debug:  debug,
		}))
	}
	if v.PlayHTKey != "" {
		cloners = append(cloners, playht.New(&playht.Config{
			Key:    v.PlayHTKey,
			User:   v.PlayHTUser,
			Client: client,
			Debug:  debug,
		}))
	}
	if len(cloners) == 0 {
		return nil, fmt.Errorf("voice: no voice vendor configured")
	}
	provider := v.Provider
	if provider == "" {
		provider = "elevenlabs"
	}
	return voice.New(provider, cloners...), nil
}
