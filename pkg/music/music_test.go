package music

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/igolaizola/motivai/pkg/videogen"
)

func TestRecommend(t *testing.T) {
	tests := []struct {
		style videogen.Style
		want  string
	}{
		{videogen.StyleProfessional, "motivational_3"},
		{videogen.StyleCasual, "motivational_1"},
		{videogen.StyleCalm, "motivational_2"},
		{videogen.StyleEnergetic, "energetic_beats"},
		{"", "energetic_beats"},
	}
	for _, tt := range tests {
		t.Run(string(tt.style), func(t *testing.T) {
			got := Recommend(tt.style)
			if got != tt.want {
				t.Fatalf("Recommend(%q) = %q; want %q", tt.style, got, tt.want)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	for _, track := range Tracks() {
		got, ok := Lookup(track.ID)
		if !ok {
			t.Fatalf("Lookup(%q) = false; want true", track.ID)
		}
		if got.URL == "" {
			t.Fatalf("Lookup(%q) returned empty URL", track.ID)
		}
	}
	if _, ok := Lookup("missing"); ok {
		t.Fatal("Lookup(missing) = true; want false")
	}
}

type fakeEncoder struct {
	music string
	err   error
}

func (f *fakeEncoder) Mix(ctx context.Context, video, music, output string, volume float64) error {
	f.music = music
	return f.err
}

func newTestMixer(enc encoder) *Mixer {
	m := NewMixer(&MixerConfig{})
	m.encoder = enc
	return m
}

func trackServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("track-bytes"))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestMixRemovesDownload(t *testing.T) {
	server := trackServer(t)
	enc := &fakeEncoder{}
	m := newTestMixer(enc)
	if err := m.Mix(context.Background(), "video.mp4", server.URL+"/track.mp3", "out.mp4"); err != nil {
		t.Fatalf("Mix() error = %v", err)
	}
	if enc.music == "" {
		t.Fatal("encoder never received the downloaded track")
	}
	if _, err := os.Stat(enc.music); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("downloaded track %s still exists after mix", enc.music)
	}
}

func TestMixRemovesDownloadOnEncodeFailure(t *testing.T) {
	server := trackServer(t)
	enc := &fakeEncoder{err: fmt.Errorf("encoder exploded")}
	m := newTestMixer(enc)
	err := m.Mix(context.Background(), "video.mp4", server.URL+"/track.mp3", "out.mp4")
	if err == nil {
		t.Fatal("Mix() = nil; want error")
	}
	if _, err := os.Stat(enc.music); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("downloaded track %s still exists after failed mix", enc.music)
	}
}

func TestMixUnknownTrack(t *testing.T) {
	m := newTestMixer(&fakeEncoder{})
	if err := m.Mix(context.Background(), "video.mp4", "not-a-track", "out.mp4"); err == nil {
		t.Fatal("Mix() = nil; want error")
	}
}
