package voice

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/igolaizola/motivai/pkg/filestore"
	"github.com/igolaizola/motivai/pkg/voice"
)

func TestArchiveSample(t *testing.T) {
	dir := t.TempDir()
	sample := filepath.Join(dir, "sample.mp3")
	if err := os.WriteFile(sample, []byte("mp3-bytes"), 0644); err != nil {
		t.Fatalf("couldn't write sample: %v", err)
	}
	root := filepath.Join(dir, "store")
	if err := os.Mkdir(root, 0755); err != nil {
		t.Fatalf("couldn't create store dir: %v", err)
	}
	fstore, err := filestore.New("local", root, "", false, nil)
	if err != nil {
		t.Fatalf("filestore.New() error = %v", err)
	}

	clone := &voice.Clone{ID: "voice-1"}
	if err := archiveSample(context.Background(), fstore, clone, sample); err != nil {
		t.Fatalf("archiveSample() error = %v", err)
	}
	if clone.SampleURL == "" {
		t.Fatal("clone.SampleURL is empty")
	}
	if !strings.HasSuffix(clone.SampleURL, "voice-1.mp3") {
		t.Errorf("clone.SampleURL = %q; want voice-1.mp3 suffix", clone.SampleURL)
	}
	stored, err := os.ReadFile(filepath.Join(root, "voice-1.mp3"))
	if err != nil {
		t.Fatalf("couldn't read stored sample: %v", err)
	}
	if string(stored) != "mp3-bytes" {
		t.Errorf("stored sample = %q; want %q", stored, "mp3-bytes")
	}
}

type failingStore struct{}

func (failingStore) SetMP3(ctx context.Context, path, id string) error {
	return fmt.Errorf("upload rejected")
}

func (failingStore) URL(ctx context.Context, name string) (string, error) {
	return "", fmt.Errorf("no such file")
}

func TestArchiveSampleUploadError(t *testing.T) {
	clone := &voice.Clone{ID: "voice-1"}
	err := archiveSample(context.Background(), failingStore{}, clone, "sample.mp3")
	if err == nil {
		t.Fatal("archiveSample() = nil; want error")
	}
	if clone.SampleURL != "" {
		t.Errorf("clone.SampleURL = %q; want empty", clone.SampleURL)
	}
}
