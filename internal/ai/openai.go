package ai

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	// Temperature is the sampling temperature for blog posts.
	Temperature float32 = 0.8
	// MaxTokens caps the length of a generated post.
	MaxTokens = 1200
)

// ErrNoChoices is returned when the provider answers without any completion.
var ErrNoChoices = errors.New("ai: completion returned no choices")

// Generator defines the content generation interface used by the blog job.
type Generator interface {
	// GeneratePost writes a blog post around keyword.
	GeneratePost(ctx context.Context, keyword string) (string, error)
}

// Config carries the model provider credentials. Values are passed to the
// provider unchecked; a missing key or endpoint fails at request time.
type Config struct {
	Provider   string // azure (default) or openai
	Deployment string // Azure deployment name, or model name for openai
	APIKey     string
	Endpoint   string // Azure resource endpoint, or optional base URL for openai
	APIVersion string // Azure only
	Timeout    time.Duration
}

// OpenAIClient implements Generator using the Chat Completions API.
type OpenAIClient struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

func NewOpenAI(cfg Config) *OpenAIClient {
	var cc openai.ClientConfig
	if strings.EqualFold(cfg.Provider, "openai") {
		cc = openai.DefaultConfig(cfg.APIKey)
		if cfg.Endpoint != "" {
			cc.BaseURL = cfg.Endpoint
		}
	} else {
		cc = openai.DefaultAzureConfig(cfg.APIKey, cfg.Endpoint)
		if cfg.APIVersion != "" {
			cc.APIVersion = cfg.APIVersion
		}
		// deployment names are used verbatim
		cc.AzureModelMapperFunc = func(model string) string { return model }
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 300 * time.Second
	}
	return &OpenAIClient{client: openai.NewClientWithConfig(cc), model: cfg.Deployment, timeout: timeout}
}

func (o *OpenAIClient) GeneratePost(ctx context.Context, keyword string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: BlogPrompt(keyword)},
		},
		Temperature: Temperature,
		MaxTokens:   MaxTokens,
	})
	if err != nil {
		slog.Error("openai: generate post error", "keyword", keyword, "err", err)
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}
	slog.Info("openai: generated post",
		"keyword", keyword,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
		"finish_reason", resp.Choices[0].FinishReason,
	)
	return resp.Choices[0].Message.Content, nil
}
