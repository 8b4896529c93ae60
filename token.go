package docsite

import "context"

// TokenCounter counts tokens in text for a specific model.
// The chat orchestrator uses it to keep grounding context within budget.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
