// Package chat answers questions about the documentation by grounding a
// language model in the site's content, and tracks chat sessions.
package chat

import (
	"context"
	"iter"
	"strings"

	"github.com/fwojciec/docsite"
)

// DefaultSystemPrompt instructs the model to answer from the documentation.
const DefaultSystemPrompt = "You are a helpful assistant for the provided documentation knowledge base.\n" +
	"Based on user questions you should be able to help them by providing answers based on the knowledge base only.\n" +
	"Keep your responses concise and focused."

// KnowledgeBaseHeader separates the instructions from the corpus.
const KnowledgeBaseHeader = "\nDocumentation Knowledge Base:\n"

// DefaultTopK is the number of documents kept when the corpus is too large.
const DefaultTopK = 8

// Ensure Orchestrator implements docsite.Chatter at compile time.
var _ docsite.Chatter = (*Orchestrator)(nil)

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithSystemPrompt replaces DefaultSystemPrompt.
func WithSystemPrompt(prompt string) Option {
	return func(o *Orchestrator) {
		o.systemPrompt = prompt
	}
}

// WithTokenBudget limits grounding to maxTokens as measured by counter.
// A corpus over budget is replaced by the topK documents most relevant to
// the latest user message.
func WithTokenBudget(counter docsite.TokenCounter, maxTokens, topK int) Option {
	return func(o *Orchestrator) {
		o.counter = counter
		o.maxTokens = maxTokens
		if topK > 0 {
			o.topK = topK
		}
	}
}

// Orchestrator streams answers grounded in the documentation corpus.
type Orchestrator struct {
	loader      docsite.CorpusLoader
	generator   docsite.Generator
	contentPath string

	systemPrompt string
	counter      docsite.TokenCounter
	maxTokens    int
	topK         int
}

// NewOrchestrator creates an Orchestrator that grounds answers in the
// documents loaded from contentPath.
func NewOrchestrator(loader docsite.CorpusLoader, generator docsite.Generator, contentPath string, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		loader:       loader,
		generator:    generator,
		contentPath:  contentPath,
		systemPrompt: DefaultSystemPrompt,
		topK:         DefaultTopK,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// StreamAnswer streams the reply to messages. The stream ends at the first
// error; onComplete runs only after a clean finish.
func (o *Orchestrator) StreamAnswer(ctx context.Context, messages []docsite.Message, onComplete docsite.CompletionFunc) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		conversation, err := conversationMessages(messages)
		if err != nil {
			yield("", err)
			return
		}

		prompt, err := o.SystemPrompt(ctx, conversation)
		if err != nil {
			yield("", err)
			return
		}

		var answer strings.Builder
		for tok, err := range o.generator.Generate(ctx, prompt, conversation) {
			if err != nil {
				yield("", err)
				return
			}
			answer.WriteString(tok)
			if !yield(tok, nil) {
				return
			}
		}

		if onComplete != nil {
			if err := onComplete(ctx, docsite.FinishResult{Text: answer.String()}); err != nil {
				yield("", err)
			}
		}
	}
}

// SystemPrompt returns the instructions followed by the grounding corpus.
func (o *Orchestrator) SystemPrompt(ctx context.Context, messages []docsite.Message) (string, error) {
	docs, err := o.loader.LoadCorpus(ctx, o.contentPath)
	if err != nil {
		return "", err
	}

	corpus, err := o.corpus(ctx, docs, messages)
	if err != nil {
		return "", err
	}
	return o.systemPrompt + KnowledgeBaseHeader + corpus, nil
}

func (o *Orchestrator) corpus(ctx context.Context, docs []*docsite.Document, messages []docsite.Message) (string, error) {
	full := docsite.FormatCorpus(docs)
	if o.counter == nil || o.maxTokens <= 0 {
		return full, nil
	}

	n, err := o.counter.CountTokens(ctx, full)
	if err != nil {
		return "", err
	}
	if n <= o.maxTokens {
		return full, nil
	}

	top := docsite.RankDocuments(docs, docsite.LastUserMessage(messages), o.topK)
	if len(top) == 0 {
		// Nothing matched the question; keep the leading pages in index order.
		top = docs[:min(max(o.topK, 0), len(docs))]
	}
	return docsite.FormatCorpus(top), nil
}

// conversationMessages validates messages and keeps the user and assistant
// turns that are forwarded to the model.
func conversationMessages(messages []docsite.Message) ([]docsite.Message, error) {
	out := make([]docsite.Message, 0, len(messages))
	for i := range messages {
		if err := messages[i].Validate(); err != nil {
			return nil, err
		}
		switch messages[i].Role {
		case docsite.RoleUser, docsite.RoleAssistant:
			out = append(out, messages[i])
		}
	}
	if len(out) == 0 || docsite.LastUserMessage(out) == "" {
		return nil, docsite.Errorf(docsite.EINVALID, "at least one user message required")
	}
	return out, nil
}
