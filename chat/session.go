package chat

import (
	"context"
	"strings"
	"sync"

	"github.com/fwojciec/docsite"
	"github.com/google/uuid"
)

// Status is the lifecycle state of a Session.
type Status string

// Session states.
const (
	StatusIdle      Status = "idle"
	StatusStreaming Status = "streaming"
	StatusError     Status = "error"
)

// Session is one conversation with the assistant, optionally seeded with
// the query the user typed into the search box.
type Session struct {
	ID    string
	Query string

	chatter docsite.Chatter
	record  func(question string) docsite.CompletionFunc

	mu       sync.Mutex
	messages []docsite.Message
	seeded   bool
	status   Status
	err      error
}

// NewSession creates an idle session seeded with query.
func NewSession(chatter docsite.Chatter, query string) *Session {
	return &Session{
		ID:      uuid.NewString(),
		Query:   strings.TrimSpace(query),
		chatter: chatter,
		status:  StatusIdle,
	}
}

// Seed submits the seed query until a submission of it is accepted. Later
// calls, and calls on a session without a query, return false without
// submitting.
func (s *Session) Seed(ctx context.Context, onToken func(string)) (bool, error) {
	s.mu.Lock()
	if s.seeded || s.Query == "" {
		s.mu.Unlock()
		return false, nil
	}
	s.mu.Unlock()

	// Submit marks the session seeded once it accepts the query, so a
	// rejected submission leaves the seed pending.
	err := s.Submit(ctx, s.Query, onToken)
	return s.Seeded(), err
}

// Submit appends a user message and streams the reply into a new assistant
// message, calling onToken for each token. It blocks until the stream ends.
// A submission while another is streaming fails with ECONFLICT. On failure
// the partial reply is discarded, earlier messages are kept and the session
// enters StatusError until the next submission.
func (s *Session) Submit(ctx context.Context, text string, onToken func(string)) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return docsite.Errorf(docsite.EINVALID, "message required")
	}

	s.mu.Lock()
	if s.status == StatusStreaming {
		s.mu.Unlock()
		return docsite.Errorf(docsite.ECONFLICT, "a reply is still streaming")
	}
	s.seeded = s.seeded || text == s.Query
	s.messages = append(s.messages, docsite.Message{Role: docsite.RoleUser, Content: text})
	history := append([]docsite.Message(nil), s.messages...)
	s.messages = append(s.messages, docsite.Message{Role: docsite.RoleAssistant})
	reply := len(s.messages) - 1
	s.status, s.err = StatusStreaming, nil
	s.mu.Unlock()

	var onComplete docsite.CompletionFunc
	if s.record != nil {
		onComplete = s.record(text)
	}

	var streamErr error
	for tok, err := range s.chatter.StreamAnswer(ctx, history, onComplete) {
		if err != nil {
			streamErr = err
			break
		}
		s.mu.Lock()
		s.messages[reply].Content += tok
		s.mu.Unlock()
		if onToken != nil {
			onToken(tok)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if streamErr != nil {
		s.messages = s.messages[:reply]
		s.status, s.err = StatusError, streamErr
		return streamErr
	}
	s.status = StatusIdle
	return nil
}

// Messages returns a copy of the conversation so far.
func (s *Session) Messages() []docsite.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]docsite.Message(nil), s.messages...)
}

// Status returns the session state and, in StatusError, the failure.
func (s *Session) Status() (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status, s.err
}

// Seeded reports whether the seed query has been submitted.
func (s *Session) Seeded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seeded
}

// Sessions keeps one session per seed query so reopening the chat for the
// same query resumes the existing conversation instead of starting over.
type Sessions struct {
	chatter docsite.Chatter
	record  func(question string) docsite.CompletionFunc

	mu      sync.Mutex
	byQuery map[string]*Session
}

// NewSessions creates an empty registry whose sessions use chatter.
func NewSessions(chatter docsite.Chatter) *Sessions {
	return &Sessions{
		chatter: chatter,
		byQuery: make(map[string]*Session),
	}
}

// OnComplete registers a factory building the completion callback for each
// question submitted in sessions opened afterwards.
func (r *Sessions) OnComplete(fn func(question string) docsite.CompletionFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record = fn
}

// Open returns the session for query, creating it on first use.
func (r *Sessions) Open(query string) *Session {
	key := strings.TrimSpace(query)

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.byQuery[key]; ok {
		return s
	}
	s := NewSession(r.chatter, key)
	s.record = r.record
	r.byQuery[key] = s
	return s
}

// Len returns the number of open sessions.
func (r *Sessions) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byQuery)
}

// RecordTranscript returns a CompletionFunc that stores each completed
// answer to question in svc.
func RecordTranscript(svc docsite.TranscriptService, question, provider string) docsite.CompletionFunc {
	return func(ctx context.Context, result docsite.FinishResult) error {
		return svc.CreateTranscript(ctx, &docsite.Transcript{
			Question: question,
			Answer:   result.Text,
			Provider: provider,
		})
	}
}
