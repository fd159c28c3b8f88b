package openai

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	gopenai "github.com/sashabaranov/go-openai"

	"github.com/igolaizola/motivai/pkg/lang"
	"github.com/igolaizola/motivai/pkg/ratelimit"
)

const (
	defaultModel = gopenai.GPT4
	speechModel  = "tts-1-hd"
)

type Client struct {
	client    *gopenai.Client
	ratelimit ratelimit.Lock
	model     string
	debug     bool
}

type Config struct {
	Token string
	Model string
	Wait  time.Duration
	Debug bool
}

func New(cfg *Config) *Client {
	wait := cfg.Wait
	if wait == 0 {
		wait = 1 * time.Second
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	return &Client{
		client:    gopenai.NewClient(cfg.Token),
		ratelimit: ratelimit.New(wait),
		model:     model,
		debug:     cfg.Debug,
	}
}

// Script is a generated motivational script with its catalog suggestions.
type Script struct {
	Title    string
	Content  string
	Language string
}

// GenerateScript turns a user's personal story into a short motivational
// script in the given language, plus a catchy title in the same language.
func (c *Client) GenerateScript(ctx context.Context, story, language string) (*Script, error) {
	if language == "" {
		language = lang.Default
	}
	if story == "" {
		story = "A person seeking daily motivation and encouragement"
	}
	native := lang.Name(language)

	prompt := fmt.Sprintf(`Based on this user's personal story and goals, generate a short (30 seconds),
motivational message that feels personal and encouraging. The message should be uplifting
and actionable.

User's Story: %s

Create a motivational message that:
1. Addresses their specific challenges or goals
2. Provides actionable encouragement
3. Is concise enough for a 30-second video
4. Feels personal and authentic

Respond in %s. Return ONLY the motivational text, no extra formatting.`, story, native)

	content, err := c.chat(ctx, fmt.Sprintf("You are a compassionate life coach creating personalized daily motivational messages. You speak naturally in %s.", native), prompt, 200)
	if err != nil {
		return nil, err
	}

	title, err := c.chat(ctx, "", fmt.Sprintf("Generate a short, catchy title (max 5 words) in %s for this motivational message: %q", native, content), 20)
	if err != nil {
		return nil, err
	}
	title = strings.ReplaceAll(title, `"`, "")

	return &Script{
		Title:    strings.TrimSpace(title),
		Content:  strings.TrimSpace(content),
		Language: language,
	}, nil
}

func (c *Client) chat(ctx context.Context, system, prompt string, maxTokens int) (string, error) {
	var messages []gopenai.ChatCompletionMessage
	if system != "" {
		messages = append(messages, gopenai.ChatCompletionMessage{
			Role:    gopenai.ChatMessageRoleSystem,
			Content: system,
		})
	}
	messages = append(messages, gopenai.ChatCompletionMessage{
		Role:    gopenai.ChatMessageRoleUser,
		Content: prompt,
	})

	unlock := c.ratelimit.Lock(ctx)
	defer unlock()

	c.log("openai: chat completion (%d tokens max)", maxTokens)
	resp, err := c.client.CreateChatCompletion(ctx, gopenai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: 0.8,
	})
	if err != nil {
		return "", fmt.Errorf("openai: couldn't create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: empty chat completion response")
	}
	return resp.Choices[0].Message.Content, nil
}

// Speech narrates text with a stock voice, returning raw MP3 bytes. The
// voice is picked per language unless one is given.
func (c *Client) Speech(ctx context.Context, text, language, voice string) ([]byte, error) {
	if voice == "" {
		voice = lang.VoiceFor(language, "openai")
	}

	unlock := c.ratelimit.Lock(ctx)
	defer unlock()

	c.log("openai: speech with voice %s", voice)
	resp, err := c.client.CreateSpeech(ctx, gopenai.CreateSpeechRequest{
		Model: speechModel,
		Input: text,
		Voice: gopenai.SpeechVoice(voice),
		Speed: 1.0,
	})
	if err != nil {
		return nil, fmt.Errorf("openai: couldn't create speech: %w", err)
	}
	defer resp.Close()
	b, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("openai: couldn't read speech response: %w", err)
	}
	return b, nil
}

func (c *Client) log(format string, args ...interface{}) {
	if c.debug {
		format += "\n"
		log.Printf(format, args...)
	}
}
