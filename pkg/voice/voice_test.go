package voice

import (
	"context"
	"errors"
	"testing"
)

type fakeCloner struct {
	name      string
	cloneErr  error
	synthErr  error
	deleteErr error
	available bool

	cloned      *CloneRequest
	synthesized string
	deleted     string
}

func (f *fakeCloner) Name() string { return f.name }

func (f *fakeCloner) Clone(ctx context.Context, req *CloneRequest) (*Clone, error) {
	f.cloned = req
	if f.cloneErr != nil {
		return nil, f.cloneErr
	}
	return &Clone{
		ID:         "v-1",
		Name:       req.Name,
		Language:   req.Language,
		Provider:   f.name,
		ProviderID: "pv-1",
		Status:     StatusReady,
	}, nil
}

func (f *fakeCloner) Synthesize(ctx context.Context, providerID, text string) ([]byte, error) {
	f.synthesized = text
	if f.synthErr != nil {
		return nil, f.synthErr
	}
	return []byte("audio"), nil
}

func (f *fakeCloner) Delete(ctx context.Context, providerID string) error {
	f.deleted = providerID
	return f.deleteErr
}

func (f *fakeCloner) Available(ctx context.Context) bool { return f.available }

func TestCloneVoiceRequiresSamples(t *testing.T) {
	svc := New("elevenlabs", &fakeCloner{name: "elevenlabs"})
	_, err := svc.CloneVoice(context.Background(), &CloneRequest{Name: "dad"})
	if err == nil {
		t.Fatal("CloneVoice() = nil; want error")
	}
}

func TestCloneVoiceDefaultsLanguage(t *testing.T) {
	cloner := &fakeCloner{name: "elevenlabs"}
	svc := New("elevenlabs", cloner)
	clone, err := svc.CloneVoice(context.Background(), &CloneRequest{
		Name:    "dad",
		Samples: []string{"a.mp3"},
	})
	if err != nil {
		t.Fatalf("CloneVoice() error = %v", err)
	}
	if clone.Language != "en" {
		t.Errorf("clone.Language = %q; want %q", clone.Language, "en")
	}
	if cloner.cloned == nil {
		t.Fatal("vendor clone not called")
	}
}

func TestCloneVoiceFallsBackToAnyVendor(t *testing.T) {
	cloner := &fakeCloner{name: "playht"}
	svc := New("elevenlabs", cloner)
	clone, err := svc.CloneVoice(context.Background(), &CloneRequest{
		Name:    "dad",
		Samples: []string{"a.mp3"},
	})
	if err != nil {
		t.Fatalf("CloneVoice() error = %v", err)
	}
	if clone.Provider != "playht" {
		t.Errorf("clone.Provider = %q; want %q", clone.Provider, "playht")
	}
}

func TestCloneVoiceNoVendor(t *testing.T) {
	svc := New("elevenlabs")
	_, err := svc.CloneVoice(context.Background(), &CloneRequest{
		Name:    "dad",
		Samples: []string{"a.mp3"},
	})
	if !errors.Is(err, ErrNoCloner) {
		t.Fatalf("CloneVoice() error = %v; want %v", err, ErrNoCloner)
	}
}

func TestSynthesizeNotReady(t *testing.T) {
	cloner := &fakeCloner{name: "elevenlabs"}
	svc := New("elevenlabs", cloner)
	clone := &Clone{ID: "v-1", Provider: "elevenlabs", Status: StatusProcessing}
	_, err := svc.Synthesize(context.Background(), clone, "hello")
	if !errors.Is(err, ErrNotReady) {
		t.Fatalf("Synthesize() error = %v; want %v", err, ErrNotReady)
	}
	if cloner.synthesized != "" {
		t.Error("vendor synthesize called on a voice that isn't ready")
	}
}

func TestSynthesize(t *testing.T) {
	cloner := &fakeCloner{name: "elevenlabs"}
	svc := New("elevenlabs", cloner)
	clone := &Clone{ID: "v-1", Provider: "elevenlabs", ProviderID: "pv-1", Status: StatusReady}
	b, err := svc.Synthesize(context.Background(), clone, "hello")
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if string(b) != "audio" {
		t.Errorf("Synthesize() = %q; want %q", b, "audio")
	}
}

func TestDeleteVoiceSwallowsVendorError(t *testing.T) {
	cloner := &fakeCloner{name: "elevenlabs", deleteErr: errors.New("boom")}
	svc := New("elevenlabs", cloner)
	clone := &Clone{ID: "v-1", Provider: "elevenlabs", ProviderID: "pv-1", Status: StatusReady}
	svc.DeleteVoice(context.Background(), clone)
	if cloner.deleted != "pv-1" {
		t.Errorf("deleted = %q; want %q", cloner.deleted, "pv-1")
	}
}

func TestAvailable(t *testing.T) {
	svc := New("elevenlabs",
		&fakeCloner{name: "elevenlabs", available: true},
		&fakeCloner{name: "playht"},
	)
	got := svc.Available(context.Background())
	if len(got) != 1 || got[0] != "elevenlabs" {
		t.Fatalf("Available() = %v; want [elevenlabs]", got)
	}
}
