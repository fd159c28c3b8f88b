package did

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/igolaizola/motivai/pkg/videogen"
)

func TestMapStatus(t *testing.T) {
	tests := []struct {
		status string
		want   videogen.Status
	}{
		{"done", videogen.StatusCompleted},
		{"error", videogen.StatusFailed},
		{"rejected", videogen.StatusFailed},
		{"created", videogen.StatusProcessing},
		{"started", videogen.StatusProcessing},
		// Unknown vendor statuses count as still processing.
		{"whatever", videogen.StatusProcessing},
		{"", videogen.StatusProcessing},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			got := mapStatus(tt.status)
			if got != tt.want {
				t.Fatalf("mapStatus(%q) = %v; want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestGenerate(t *testing.T) {
	var gotReq talkRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/talks" {
			t.Fatalf("path = %q; want %q", r.URL.Path, "/talks")
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(talkResponse{ID: "tlk_1", Status: "created"})
	}))
	defer srv.Close()

	c := New(&videogen.Config{Key: "key", BaseURL: srv.URL})
	job, err := c.Generate(context.Background(), &videogen.Request{
		Script:   "You can do this.",
		Language: "es",
	})
	if err != nil {
		t.Fatalf("Generate() err = %v; want nil", err)
	}
	if job.ID != "tlk_1" {
		t.Fatalf("Generate() id = %q; want %q", job.ID, "tlk_1")
	}
	if job.Status != videogen.StatusProcessing {
		t.Fatalf("Generate() status = %v; want %v", job.Status, videogen.StatusProcessing)
	}
	// Voice auto-selected from the request language.
	if gotReq.Script.Provider.VoiceID != "es-ES-ElviraNeural" {
		t.Fatalf("voice = %q; want %q", gotReq.Script.Provider.VoiceID, "es-ES-ElviraNeural")
	}
	if gotReq.SourceURL != defaultAvatar {
		t.Fatalf("avatar = %q; want default", gotReq.SourceURL)
	}
}

func TestGenerateEmptyScript(t *testing.T) {
	c := New(&videogen.Config{Key: "key"})
	if _, err := c.Generate(context.Background(), &videogen.Request{}); err == nil {
		t.Fatal("Generate() err = nil; want error")
	}
}

func TestStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/talks/tlk_1" {
			t.Fatalf("path = %q; want %q", r.URL.Path, "/talks/tlk_1")
		}
		_ = json.NewEncoder(w).Encode(talkResponse{
			ID:        "tlk_1",
			Status:    "done",
			ResultURL: "https://cdn.example.com/tlk_1.mp4",
			Duration:  42.0,
		})
	}))
	defer srv.Close()

	c := New(&videogen.Config{Key: "key", BaseURL: srv.URL})
	job, err := c.Status(context.Background(), "tlk_1")
	if err != nil {
		t.Fatalf("Status() err = %v; want nil", err)
	}
	if job.Status != videogen.StatusCompleted {
		t.Fatalf("Status() status = %v; want %v", job.Status, videogen.StatusCompleted)
	}
	if job.VideoURL != "https://cdn.example.com/tlk_1.mp4" {
		t.Fatalf("Status() url = %q; want unchanged vendor url", job.VideoURL)
	}
}

func TestAvailable(t *testing.T) {
	status := http.StatusOK
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	defer srv.Close()

	c := New(&videogen.Config{Key: "key", BaseURL: srv.URL})
	if !c.Available(context.Background()) {
		t.Fatal("Available() = false; want true")
	}
	status = http.StatusUnauthorized
	if c.Available(context.Background()) {
		t.Fatal("Available() = true; want false")
	}
}
