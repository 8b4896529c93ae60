package slog

import (
	"context"
	"iter"
	"log/slog"
	"time"

	"github.com/fwojciec/docsite"
)

// Ensure LoggingGenerator implements docsite.Generator.
var _ docsite.Generator = (*LoggingGenerator)(nil)

// LoggingGenerator wraps a Generator and logs each completed stream.
type LoggingGenerator struct {
	next     docsite.Generator
	provider string
	logger   *slog.Logger
}

// NewLoggingGenerator creates a new LoggingGenerator. provider labels the
// log lines, e.g. "groq/llama-3.3-70b-versatile".
func NewLoggingGenerator(next docsite.Generator, provider string, logger *slog.Logger) *LoggingGenerator {
	return &LoggingGenerator{next: next, provider: provider, logger: logger}
}

// Generate delegates to the wrapped generator. The log line is written when
// the stream ends, whether it finished, failed or was abandoned.
func (g *LoggingGenerator) Generate(ctx context.Context, systemPrompt string, messages []docsite.Message) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		var (
			tokens int
			err    error
		)
		defer func(begin time.Time) {
			g.logger.Info("generate",
				"provider", g.provider,
				"messages", len(messages),
				"tokens", tokens,
				"duration", time.Since(begin),
				"err", err,
			)
		}(time.Now())

		for tok, e := range g.next.Generate(ctx, systemPrompt, messages) {
			if e != nil {
				err = e
				yield("", e)
				return
			}
			tokens++
			if !yield(tok, nil) {
				return
			}
		}
	}
}
