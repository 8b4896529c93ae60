package gemini

import (
	"context"

	"github.com/fwojciec/docsite"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ docsite.TokenCounter = (*TokenCounter)(nil)

// TokenCounter measures corpus size with the local Gemini tokenizer, so
// grounding budgets can be checked without an API call.
type TokenCounter struct {
	tok *tokenizer.LocalTokenizer
}

// NewTokenCounter creates a new TokenCounter for the given model.
// Only models known to google.golang.org/genai/tokenizer are supported.
func NewTokenCounter(model string) (*TokenCounter, error) {
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, err
	}
	return &TokenCounter{tok: tok}, nil
}

// CountTokens counts the number of tokens in the given text.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	result, err := tc.tok.CountTokens([]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}, nil)
	if err != nil {
		return 0, docsite.Errorf(docsite.EINTERNAL, "count tokens: %v", err)
	}

	return int(result.TotalTokens), nil
}
