package docsite

import (
	"context"
	"iter"
	"time"
)

// Role identifies the author of a chat message.
type Role string

// Message roles.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleData      Role = "data"
)

// Message is one turn of a chat conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Validate returns an error if the message contains invalid fields.
func (m *Message) Validate() error {
	switch m.Role {
	case RoleSystem, RoleUser, RoleAssistant, RoleData:
	case "":
		return Errorf(EINVALID, "message role required")
	default:
		return Errorf(EINVALID, "unknown message role %q", m.Role)
	}
	return nil
}

// FinishResult is passed to a CompletionFunc when a stream ends cleanly.
type FinishResult struct {
	Text string `json:"text"`
}

// CompletionFunc is called with the full answer after a successful stream.
type CompletionFunc func(ctx context.Context, result FinishResult) error

// Generator streams model output from a hosted language model provider.
type Generator interface {
	// Generate streams tokens answering messages under systemPrompt.
	// Tokens are yielded in generation order. A non-nil error ends the stream.
	Generate(ctx context.Context, systemPrompt string, messages []Message) iter.Seq2[string, error]
}

// Chatter answers questions about the documentation as a token stream.
type Chatter interface {
	// StreamAnswer streams the assistant reply to messages, grounded in the
	// documentation corpus. onComplete, if non-nil, receives the full text
	// once the stream ends without error.
	StreamAnswer(ctx context.Context, messages []Message, onComplete CompletionFunc) iter.Seq2[string, error]
}

// CorpusLoader loads the documentation corpus used as grounding context.
type CorpusLoader interface {
	// LoadCorpus returns the documents under root.
	LoadCorpus(ctx context.Context, root string) ([]*Document, error)
}

// Transcript is a completed chat exchange.
type Transcript struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Provider  string    `json:"provider"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate returns an error if the transcript contains invalid fields.
func (t *Transcript) Validate() error {
	if t.Question == "" {
		return Errorf(EINVALID, "transcript question required")
	}
	return nil
}

// TranscriptService persists completed chat exchanges.
type TranscriptService interface {
	// CreateTranscript stores a transcript, assigning ID and CreatedAt.
	CreateTranscript(ctx context.Context, t *Transcript) error

	// FindTranscripts returns transcripts, newest first.
	FindTranscripts(ctx context.Context, filter TranscriptFilter) ([]*Transcript, error)
}

// TranscriptFilter represents a filter for FindTranscripts.
type TranscriptFilter struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// LastUserMessage returns the content of the most recent user message.
func LastUserMessage(messages []Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == RoleUser {
			return messages[i].Content
		}
	}
	return ""
}
