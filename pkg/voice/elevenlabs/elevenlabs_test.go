package elevenlabs

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/igolaizola/motivai/pkg/voice"
)

func TestClone(t *testing.T) {
	var gotPath, gotKey, gotName string
	var gotFiles int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("xi-api-key")
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			t.Fatalf("couldn't parse multipart form: %v", err)
		}
		gotName = r.MultipartForm.Value["name"][0]
		gotFiles = len(r.MultipartForm.File["files"])
		_, _ = w.Write([]byte(`{"voice_id": "ev-1"}`))
	}))
	defer server.Close()

	sample := filepath.Join(t.TempDir(), "sample.mp3")
	if err := os.WriteFile(sample, []byte("mp3-bytes"), 0644); err != nil {
		t.Fatal(err)
	}

	client := New(&Config{Key: "test-key", BaseURL: server.URL, Wait: 1})
	clone, err := client.Clone(context.Background(), &voice.CloneRequest{
		Name:     "dad",
		Language: "es",
		Samples:  []string{sample},
	})
	if err != nil {
		t.Fatalf("Clone() error = %v", err)
	}
	if gotPath != "/voices/add" {
		t.Errorf("path = %q; want %q", gotPath, "/voices/add")
	}
	if gotKey != "test-key" {
		t.Errorf("xi-api-key = %q; want %q", gotKey, "test-key")
	}
	if gotName != "dad" {
		t.Errorf("name field = %q; want %q", gotName, "dad")
	}
	if gotFiles != 1 {
		t.Errorf("files = %d; want 1", gotFiles)
	}
	if clone.ProviderID != "ev-1" {
		t.Errorf("clone.ProviderID = %q; want %q", clone.ProviderID, "ev-1")
	}
	if clone.Status != voice.StatusReady {
		t.Errorf("clone.Status = %q; want %q", clone.Status, voice.StatusReady)
	}
}

func TestSynthesize(t *testing.T) {
	var gotPath, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		_, _ = w.Write([]byte("mp3-audio"))
	}))
	defer server.Close()

	client := New(&Config{Key: "test-key", BaseURL: server.URL, Wait: 1})
	b, err := client.Synthesize(context.Background(), "ev-1", "hello there")
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if string(b) != "mp3-audio" {
		t.Errorf("Synthesize() = %q; want %q", b, "mp3-audio")
	}
	if gotPath != "/text-to-speech/ev-1" {
		t.Errorf("path = %q; want %q", gotPath, "/text-to-speech/ev-1")
	}
	if !strings.Contains(gotBody, "eleven_multilingual_v2") {
		t.Errorf("body = %q; want tts model", gotBody)
	}
}

func TestAvailable(t *testing.T) {
	status := http.StatusOK
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	defer server.Close()

	client := New(&Config{Key: "test-key", BaseURL: server.URL, Wait: 1})
	if !client.Available(context.Background()) {
		t.Error("Available() = false; want true")
	}
	status = http.StatusUnauthorized
	if client.Available(context.Background()) {
		t.Error("Available() = true; want false")
	}
}
