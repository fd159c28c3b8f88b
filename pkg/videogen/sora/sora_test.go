package sora

import (
	"context"
	"strings"
	"testing"

	"github.com/igolaizola/motivai/pkg/videogen"
)

func TestNeverAvailable(t *testing.T) {
	c := New(&videogen.Config{Key: "key"})
	if c.Available(context.Background()) {
		t.Fatal("Available() = true; want false")
	}
}

func TestBuildPrompt(t *testing.T) {
	req := &videogen.Request{
		Script: "Today is your day.",
		Style:  videogen.StyleCalm,
	}
	prompt := buildPrompt(req)
	if !strings.Contains(prompt, "peaceful, serene setting") {
		t.Fatalf("buildPrompt() missing style scene: %q", prompt)
	}
	if !strings.Contains(prompt, `"Today is your day."`) {
		t.Fatalf("buildPrompt() missing script: %q", prompt)
	}
}

func TestBuildPromptUnknownStyle(t *testing.T) {
	prompt := buildPrompt(&videogen.Request{Script: "s", Style: "noir"})
	if !strings.Contains(prompt, "business-like setting") {
		t.Fatalf("buildPrompt() should fall back to the professional scene: %q", prompt)
	}
}
