// Package openai streams chat completions from OpenAI and from
// OpenAI-compatible APIs such as Groq.
package openai

import (
	"context"
	"errors"
	"iter"
	"net/http"
	"time"

	"github.com/fwojciec/docsite"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.openai.com/v1"
	GroqBaseURL    = "https://api.groq.com/openai/v1"
	DefaultTimeout = 120 * time.Second
	Temperature    = 0.4
)

// Ensure Generator implements docsite.Generator at compile time.
var _ docsite.Generator = (*Generator)(nil)

// Config holds configuration for a Generator.
type Config struct {
	// APIKey is the bearer token (required).
	APIKey string

	// BaseURL is the API base URL (default: DefaultBaseURL).
	BaseURL string

	// Model is the model name (default: docsite.DefaultOpenAIModel).
	Model string

	// Timeout bounds a whole streamed response (default: DefaultTimeout).
	Timeout time.Duration
}

// Generator streams chat completions through the OpenAI client.
type Generator struct {
	client openai.Client
	model  string
}

// NewGenerator creates a new Generator.
func NewGenerator(cfg Config) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, docsite.Errorf(docsite.EINVALID, "openai: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = docsite.DefaultOpenAIModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	// Retries are left to the user, who resubmits a failed question.
	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		option.WithMaxRetries(0),
	)

	return &Generator{client: client, model: cfg.Model}, nil
}

// Generate streams the completion for messages with systemPrompt as the
// leading system message. A stream that ends before any choice reports a
// finish reason is an error.
func (g *Generator) Generate(ctx context.Context, systemPrompt string, messages []docsite.Message) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		stream := g.client.Chat.Completions.NewStreaming(ctx, g.params(systemPrompt, messages))
		defer stream.Close()

		finished := false
		for stream.Next() {
			chunk := stream.Current()
			for _, choice := range chunk.Choices {
				if choice.FinishReason != "" {
					finished = true
				}
				if choice.Delta.Content == "" {
					continue
				}
				if !yield(choice.Delta.Content, nil) {
					return
				}
			}
		}
		if err := stream.Err(); err != nil {
			yield("", apiError(err))
			return
		}
		if !finished {
			yield("", docsite.Errorf(docsite.EUNAVAILABLE, "openai: stream ended before completion"))
		}
	}
}

func (g *Generator) params(systemPrompt string, messages []docsite.Message) openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{
		Model:       g.model,
		Messages:    []openai.ChatCompletionMessageParamUnion{openai.SystemMessage(systemPrompt)},
		Temperature: openai.Float(Temperature),
	}
	for _, m := range messages {
		switch m.Role {
		case docsite.RoleUser:
			params.Messages = append(params.Messages, openai.UserMessage(m.Content))
		case docsite.RoleAssistant:
			params.Messages = append(params.Messages, openai.AssistantMessage(m.Content))
		}
	}
	return params
}

// apiError converts a client error into an application error.
func apiError(err error) error {
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return docsite.Errorf(docsite.EUNAVAILABLE, "openai: %v", err)
	}

	code := docsite.EINTERNAL
	switch {
	case apiErr.StatusCode == http.StatusUnauthorized, apiErr.StatusCode == http.StatusForbidden:
		code = docsite.EINVALID
	case apiErr.StatusCode == http.StatusTooManyRequests, apiErr.StatusCode >= 500:
		code = docsite.EUNAVAILABLE
	}
	return docsite.Errorf(code, "openai error (status %d): %s", apiErr.StatusCode, apiErr.Message)
}
