// Package anthropic streams replies from the Anthropic Messages API.
package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"iter"
	"net/http"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/fwojciec/docsite"
)

// Default configuration values.
const (
	DefaultBaseURL   = "https://api.anthropic.com"
	DefaultTimeout   = 120 * time.Second
	DefaultMaxTokens = 4096
	Temperature      = 0.4
)

// Ensure Generator implements docsite.Generator at compile time.
var _ docsite.Generator = (*Generator)(nil)

// Config holds configuration for a Generator.
type Config struct {
	// APIKey is the Anthropic API key (required).
	APIKey string

	// BaseURL is the API base URL (default: DefaultBaseURL).
	BaseURL string

	// Model is the model name (default: docsite.DefaultAnthropicModel).
	Model string

	// MaxTokens caps the reply length (default: DefaultMaxTokens).
	MaxTokens int

	// Timeout bounds a whole streamed response (default: DefaultTimeout).
	Timeout time.Duration
}

// Generator streams message replies through the Anthropic client.
type Generator struct {
	client    anthropic.Client
	model     string
	maxTokens int
}

// NewGenerator creates a new Generator.
func NewGenerator(cfg Config) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, docsite.Errorf(docsite.EINVALID, "anthropic: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = docsite.DefaultAnthropicModel
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	client := anthropic.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		option.WithMaxRetries(0),
	)

	return &Generator{
		client:    client,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}, nil
}

// Generate streams the reply to messages under systemPrompt. A stream
// that ends without message_stop is an error.
func (g *Generator) Generate(ctx context.Context, systemPrompt string, messages []docsite.Message) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		stream := g.client.Messages.NewStreaming(ctx, g.params(systemPrompt, messages))
		defer stream.Close()

		stopped := false
		for stream.Next() {
			event := stream.Current()
			switch event.Type {
			case "content_block_delta":
				if event.Delta.Type != "text_delta" || event.Delta.Text == "" {
					continue
				}
				if !yield(event.Delta.Text, nil) {
					return
				}
			case "message_stop":
				stopped = true
			}
		}
		if err := stream.Err(); err != nil {
			yield("", apiError(err))
			return
		}
		if !stopped {
			yield("", docsite.Errorf(docsite.EUNAVAILABLE, "anthropic: stream ended before completion"))
		}
	}
}

func (g *Generator) params(systemPrompt string, messages []docsite.Message) anthropic.MessageNewParams {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(g.model),
		MaxTokens:   int64(g.maxTokens),
		Temperature: anthropic.Float(Temperature),
	}
	if systemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: systemPrompt}}
	}
	for _, m := range messages {
		switch m.Role {
		case docsite.RoleUser:
			params.Messages = append(params.Messages, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		case docsite.RoleAssistant:
			params.Messages = append(params.Messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		}
	}
	return params
}

// apiError converts a client error into an application error.
func apiError(err error) error {
	var apiErr *anthropic.Error
	if !errors.As(err, &apiErr) {
		return docsite.Errorf(docsite.EUNAVAILABLE, "anthropic: %v", err)
	}

	msg := apiErr.RawJSON()
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal([]byte(msg), &envelope) == nil && envelope.Error.Message != "" {
		msg = envelope.Error.Message
	}

	code := docsite.EINTERNAL
	switch {
	case apiErr.StatusCode == http.StatusUnauthorized, apiErr.StatusCode == http.StatusForbidden:
		code = docsite.EINVALID
	case apiErr.StatusCode == http.StatusTooManyRequests, apiErr.StatusCode >= 500:
		// 529 is Anthropic's overloaded status.
		code = docsite.EUNAVAILABLE
	}
	return docsite.Errorf(code, "anthropic error (status %d): %s", apiErr.StatusCode, msg)
}
