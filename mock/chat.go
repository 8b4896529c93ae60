package mock

import (
	"context"
	"iter"

	"github.com/fwojciec/docsite"
)

var (
	_ docsite.Generator         = (*Generator)(nil)
	_ docsite.Chatter           = (*Chatter)(nil)
	_ docsite.CorpusLoader      = (*CorpusLoader)(nil)
	_ docsite.TranscriptService = (*TranscriptService)(nil)
)

// Generator is a mock implementation of docsite.Generator.
type Generator struct {
	GenerateFn func(ctx context.Context, systemPrompt string, messages []docsite.Message) iter.Seq2[string, error]
}

func (g *Generator) Generate(ctx context.Context, systemPrompt string, messages []docsite.Message) iter.Seq2[string, error] {
	return g.GenerateFn(ctx, systemPrompt, messages)
}

// Chatter is a mock implementation of docsite.Chatter.
type Chatter struct {
	StreamAnswerFn func(ctx context.Context, messages []docsite.Message, onComplete docsite.CompletionFunc) iter.Seq2[string, error]
}

func (c *Chatter) StreamAnswer(ctx context.Context, messages []docsite.Message, onComplete docsite.CompletionFunc) iter.Seq2[string, error] {
	return c.StreamAnswerFn(ctx, messages, onComplete)
}

// CorpusLoader is a mock implementation of docsite.CorpusLoader.
type CorpusLoader struct {
	LoadCorpusFn func(ctx context.Context, root string) ([]*docsite.Document, error)
}

func (l *CorpusLoader) LoadCorpus(ctx context.Context, root string) ([]*docsite.Document, error) {
	return l.LoadCorpusFn(ctx, root)
}

// TranscriptService is a mock implementation of docsite.TranscriptService.
type TranscriptService struct {
	CreateTranscriptFn func(ctx context.Context, t *docsite.Transcript) error
	FindTranscriptsFn  func(ctx context.Context, filter docsite.TranscriptFilter) ([]*docsite.Transcript, error)
}

func (s *TranscriptService) CreateTranscript(ctx context.Context, t *docsite.Transcript) error {
	return s.CreateTranscriptFn(ctx, t)
}

func (s *TranscriptService) FindTranscripts(ctx context.Context, filter docsite.TranscriptFilter) ([]*docsite.Transcript, error) {
	return s.FindTranscriptsFn(ctx, filter)
}

// Tokens returns a stream yielding tokens in order, then err if non-nil.
func Tokens(err error, tokens ...string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, tok := range tokens {
			if !yield(tok, nil) {
				return
			}
		}
		if err != nil {
			yield("", err)
		}
	}
}
