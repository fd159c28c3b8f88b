package heygen

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
		{"completed", videogen.StatusCompleted},
		{"failed", videogen.StatusFailed},
		{"pending", videogen.StatusProcessing},
		{"waiting", videogen.StatusProcessing},
		{"unknown_vendor_state", videogen.StatusProcessing},
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
	var gotReq generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/video/generate" {
			t.Fatalf("path = %q; want %q", r.URL.Path, "/video/generate")
		}
		if got := r.Header.Get("x-api-key"); got != "key" {
			t.Fatalf("x-api-key = %q; want %q", got, "key")
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(generateResponse{VideoID: "vid_1"})
	}))
	defer srv.Close()

	c := New(&videogen.Config{Key: "key", BaseURL: srv.URL})
	job, err := c.Generate(context.Background(), &videogen.Request{
		Script: "Keep going.",
		Style:  videogen.StyleEnergetic,
	})
	if err != nil {
		t.Fatalf("Generate() err = %v; want nil", err)
	}
	if job.ID != "vid_1" {
		t.Fatalf("Generate() id = %q; want %q", job.ID, "vid_1")
	}
	if len(gotReq.VideoInputs) != 1 {
		t.Fatalf("video inputs = %d; want 1", len(gotReq.VideoInputs))
	}
	in := gotReq.VideoInputs[0]
	if in.Character.AvatarID != defaultAvatar {
		t.Fatalf("avatar = %q; want default", in.Character.AvatarID)
	}
	// Missing voice resolved from the default language.
	if in.Voice.VoiceID != "en-US-AriaNeural" {
		t.Fatalf("voice = %q; want %q", in.Voice.VoiceID, "en-US-AriaNeural")
	}
	if gotReq.Dimension.Width != 1080 || gotReq.Dimension.Height != 1920 {
		t.Fatalf("dimension = %dx%d; want 1080x1920", gotReq.Dimension.Width, gotReq.Dimension.Height)
	}
}

func TestStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(generateResponse{
			VideoID:      "vid_1",
			Status:       "completed",
			VideoURL:     "https://cdn.example.com/vid_1.mp4",
			ThumbnailURL: "https://cdn.example.com/vid_1.jpg",
		})
	}))
	defer srv.Close()

	c := New(&videogen.Config{Key: "key", BaseURL: srv.URL})
	job, err := c.Status(context.Background(), "vid_1")
	if err != nil {
		t.Fatalf("Status() err = %v; want nil", err)
	}
	if job.Status != videogen.StatusCompleted {
		t.Fatalf("Status() status = %v; want %v", job.Status, videogen.StatusCompleted)
	}
	if job.ThumbnailURL != "https://cdn.example.com/vid_1.jpg" {
		t.Fatalf("Status() thumbnail = %q; want vendor url", job.ThumbnailURL)
	}
}
