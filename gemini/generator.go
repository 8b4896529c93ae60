// Package gemini implements language model access with Google Gemini.
package gemini

import (
	"context"
	"iter"

	"github.com/fwojciec/docsite"
	"google.golang.org/genai"
)

// Temperature keeps answers close to the documentation wording.
const Temperature = 0.4

// Ensure Generator implements docsite.Generator at compile time.
var _ docsite.Generator = (*Generator)(nil)

// Generator implements docsite.Generator using the Gemini API.
type Generator struct {
	client *genai.Client
	model  string
}

// NewGenerator creates a new Generator for model.
func NewGenerator(client *genai.Client, model string) *Generator {
	if model == "" {
		model = docsite.DefaultGeminiModel
	}
	return &Generator{client: client, model: model}
}

// Generate streams the model reply to messages.
func (g *Generator) Generate(ctx context.Context, systemPrompt string, messages []docsite.Message) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for resp, err := range g.client.Models.GenerateContentStream(ctx, g.model, BuildContents(messages), BuildConfig(systemPrompt)) {
			if err != nil {
				yield("", err)
				return
			}
			if resp == nil {
				continue
			}
			if text := resp.Text(); text != "" {
				if !yield(text, nil) {
					return
				}
			}
		}
	}
}

// BuildConfig returns the GenerateContentConfig carrying systemPrompt.
func BuildConfig(systemPrompt string) *genai.GenerateContentConfig {
	temp := float32(Temperature)
	return &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       &temp,
	}
}

// BuildContents maps chat messages onto Gemini conversation turns.
// Assistant turns use the "model" role; other non-user roles are dropped.
func BuildContents(messages []docsite.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case docsite.RoleUser:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		case docsite.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		}
	}
	return contents
}
