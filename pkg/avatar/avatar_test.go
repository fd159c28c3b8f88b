package avatar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/igolaizola/motivai/pkg/videogen"
)

type fakeProvider struct {
	name     string
	statuses []videogen.Status
	videoURL string
	genErr   error
	fetches  int
	lastReq  *videogen.Request
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Generate(ctx context.Context, req *videogen.Request) (*videogen.Job, error) {
	f.lastReq = req
	if f.genErr != nil {
		return nil, f.genErr
	}
	return &videogen.Job{ID: "job-1", Provider: f.name, Status: videogen.StatusProcessing}, nil
}

func (f *fakeProvider) Status(ctx context.Context, id string) (*videogen.Job, error) {
	i := f.fetches
	f.fetches++
	if i >= len(f.statuses) {
		i = len(f.statuses) - 1
	}
	status := f.statuses[i]
	job := &videogen.Job{ID: id, Provider: f.name, Status: status, Duration: 32}
	if status == videogen.StatusCompleted {
		job.VideoURL = f.videoURL
		job.ThumbnailURL = f.videoURL + ".png"
	}
	return job, nil
}

func (f *fakeProvider) Available(ctx context.Context) bool { return true }

type fakeSelector struct {
	provider videogen.Provider
	err      error
}

func (f *fakeSelector) Primary(ctx context.Context) (videogen.Provider, error) {
	return f.provider, f.err
}

func newService(sel Selector) *Service {
	return New(&Config{
		Selector: sel,
		Interval: time.Millisecond,
		Timeout:  50 * time.Millisecond,
	})
}

func TestEstimateDuration(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   int
	}{
		{"empty", "", 5},
		{"one word", "go", 6},
		{"thirty words", strings.Repeat("word ", 30), 17},
		{"capped", strings.Repeat("word ", 300), 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateDuration(tt.script); got != tt.want {
				t.Errorf("EstimateDuration() = %d; want %d", got, tt.want)
			}
		})
	}
}

func TestGenerateCompleted(t *testing.T) {
	provider := &fakeProvider{
		name:     "did",
		statuses: []videogen.Status{videogen.StatusProcessing, videogen.StatusCompleted},
		videoURL: "https://cdn.example.com/v.mp4",
	}
	svc := newService(&fakeSelector{provider: provider})
	result, err := svc.Generate(context.Background(), "u-1", "stay hungry, stay foolish", nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if result.Status != videogen.StatusCompleted {
		t.Errorf("result.Status = %q; want %q", result.Status, videogen.StatusCompleted)
	}
	if result.VideoURL != provider.videoURL {
		t.Errorf("result.VideoURL = %q; want %q", result.VideoURL, provider.videoURL)
	}
	if result.Provider != "did" {
		t.Errorf("result.Provider = %q; want %q", result.Provider, "did")
	}
	if result.VideoID == "" {
		t.Error("result.VideoID is empty")
	}
	if provider.fetches != 2 {
		t.Errorf("status fetches = %d; want 2", provider.fetches)
	}
	if provider.lastReq.Style != videogen.StyleEnergetic {
		t.Errorf("request style = %q; want %q", provider.lastReq.Style, videogen.StyleEnergetic)
	}
	if provider.lastReq.Language != "en" {
		t.Errorf("request language = %q; want %q", provider.lastReq.Language, "en")
	}
	if provider.lastReq.Duration != EstimateDuration("stay hungry, stay foolish") {
		t.Errorf("request duration = %d; want estimate", provider.lastReq.Duration)
	}
}

func TestGenerateFetchesBeforeFirstWait(t *testing.T) {
	provider := &fakeProvider{
		name:     "did",
		statuses: []videogen.Status{videogen.StatusCompleted},
		videoURL: "https://cdn.example.com/v.mp4",
	}
	// An interval far beyond the budget: only an immediate first fetch can
	// reach the completed status before the timeout fires.
	svc := New(&Config{
		Selector: &fakeSelector{provider: provider},
		Interval: time.Hour,
		Timeout:  50 * time.Millisecond,
	})
	result, err := svc.Generate(context.Background(), "u-1", "hello", nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if result.Status != videogen.StatusCompleted {
		t.Errorf("result.Status = %q; want %q", result.Status, videogen.StatusCompleted)
	}
	if provider.fetches != 1 {
		t.Errorf("status fetches = %d; want 1", provider.fetches)
	}
}

func TestGenerateFailed(t *testing.T) {
	provider := &fakeProvider{
		name:     "did",
		statuses: []videogen.Status{videogen.StatusFailed},
	}
	svc := newService(&fakeSelector{provider: provider})
	_, err := svc.Generate(context.Background(), "u-1", "hello", nil)
	if !errors.Is(err, videogen.ErrGenerationFailed) {
		t.Fatalf("Generate() error = %v; want %v", err, videogen.ErrGenerationFailed)
	}
}

func TestGenerateTimeout(t *testing.T) {
	provider := &fakeProvider{
		name:     "did",
		statuses: []videogen.Status{videogen.StatusProcessing},
	}
	svc := New(&Config{
		Selector: &fakeSelector{provider: provider},
		Interval: time.Millisecond,
		Timeout:  10 * time.Millisecond,
	})
	_, err := svc.Generate(context.Background(), "u-1", "hello", nil)
	if !errors.Is(err, videogen.ErrGenerationTimeout) {
		t.Fatalf("Generate() error = %v; want %v", err, videogen.ErrGenerationTimeout)
	}
	fetches := provider.fetches
	time.Sleep(20 * time.Millisecond)
	if provider.fetches != fetches {
		t.Errorf("status fetches continued after timeout: %d -> %d", fetches, provider.fetches)
	}
}

func TestGenerateEmptyScript(t *testing.T) {
	svc := newService(&fakeSelector{provider: &fakeProvider{name: "did"}})
	_, err := svc.Generate(context.Background(), "u-1", "", nil)
	if err == nil {
		t.Fatal("Generate() = nil; want error")
	}
}

func TestGenerateNoProvider(t *testing.T) {
	svc := newService(&fakeSelector{err: videogen.ErrNoProvider})
	_, err := svc.Generate(context.Background(), "u-1", "hello", nil)
	if !errors.Is(err, videogen.ErrNoProvider) {
		t.Fatalf("Generate() error = %v; want %v", err, videogen.ErrNoProvider)
	}
}

type failingMixer struct{}

func (failingMixer) Mix(ctx context.Context, video, track, output string) error {
	return fmt.Errorf("no such track")
}

func TestGenerateMixFailureKeepsVendorURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("video-bytes"))
	}))
	defer server.Close()

	provider := &fakeProvider{
		name:     "did",
		statuses: []videogen.Status{videogen.StatusCompleted},
		videoURL: server.URL + "/v.mp4",
	}
	svc := New(&Config{
		Selector: &fakeSelector{provider: provider},
		Mixer:    failingMixer{},
		Interval: time.Millisecond,
		Timeout:  50 * time.Millisecond,
	})
	result, err := svc.Generate(context.Background(), "u-1", "hello", &Options{Music: "motivational_1"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if result.VideoURL != provider.videoURL {
		t.Errorf("result.VideoURL = %q; want vendor url %q", result.VideoURL, provider.videoURL)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("warnings = %v; want one entry", result.Warnings)
	}
	if !strings.Contains(result.Warnings[0], "music mixing failed") {
		t.Errorf("warning = %q; want music mixing failure", result.Warnings[0])
	}
}
