package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"iter"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/docsite"
)

// DefaultFetchTimeout bounds index requests.
const DefaultFetchTimeout = 10 * time.Second

// Ensure IndexClient implements docsite.IndexFetcher at compile time.
var _ docsite.IndexFetcher = (*IndexClient)(nil)

// Option configures an IndexClient.
type Option func(*IndexClient)

// WithTimeout sets the timeout for index requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(c *IndexClient) {
		c.timeout = d
	}
}

// IndexClient fetches search indexes from a running server. The fetch key
// is the endpoint path, e.g. "/api/docs/search-index".
type IndexClient struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
}

// NewIndexClient creates a client for the server at baseURL.
func NewIndexClient(baseURL string, opts ...Option) *IndexClient {
	c := &IndexClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.client = &http.Client{Timeout: c.timeout}
	return c
}

// FetchIndex downloads and decodes the index served at path.
func (c *IndexClient) FetchIndex(ctx context.Context, path string) ([]*docsite.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, docsite.Errorf(docsite.EUNAVAILABLE, "fetch index: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, responseError(resp)
	}

	var docs []*docsite.Document
	if err := json.NewDecoder(resp.Body).Decode(&docs); err != nil {
		return nil, docsite.Errorf(docsite.EINVALID, "decode index: %v", err)
	}
	return docs, nil
}

// Ensure ChatClient implements docsite.Chatter at compile time.
var _ docsite.Chatter = (*ChatClient)(nil)

// ChatClient streams chat answers from a running server.
type ChatClient struct {
	url    string
	client *http.Client
}

// NewChatClient creates a client posting to the chat endpoint at path on
// the server at baseURL. Streams are bounded only by the request context.
func NewChatClient(baseURL, path string) *ChatClient {
	return &ChatClient{
		url:    strings.TrimSuffix(baseURL, "/") + path,
		client: &http.Client{},
	}
}

// StreamAnswer posts messages and yields the streamed reply. onComplete
// runs locally after the server reports a clean finish.
func (c *ChatClient) StreamAnswer(ctx context.Context, messages []docsite.Message, onComplete docsite.CompletionFunc) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		body, err := json.Marshal(chatRequest{Messages: messages})
		if err != nil {
			yield("", err)
			return
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
		if err != nil {
			yield("", err)
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			yield("", docsite.Errorf(docsite.EUNAVAILABLE, "chat request: %v", err))
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			yield("", responseError(resp))
			return
		}

		var answer strings.Builder
		for tok, err := range DecodeStream(resp.Body) {
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

// responseError converts a non-OK response into an application error.
func responseError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))

	msg := strings.TrimSpace(string(data))
	var er errorResponse
	if json.Unmarshal(data, &er) == nil && er.Error != "" {
		msg = er.Error
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return docsite.Errorf(FromErrorStatusCode(resp.StatusCode), "HTTP %d: %s", resp.StatusCode, msg)
}
