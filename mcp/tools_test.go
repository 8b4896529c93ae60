package mcp

import (
	"context"
	"iter"
	"testing"

	"github.com/fwojciec/docsite"
	"github.com/fwojciec/docsite/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testIndex = []*docsite.Document{
	{Title: "Install", Content: "Run npm install to set up.", URL: "/docs/install"},
	{Title: "Usage", Content: "See install docs for details.", URL: "/docs/usage"},
	{Title: "FAQ", Content: "Nothing relevant.", URL: "/docs/faq"},
}

func newTestServer(t *testing.T, chatter docsite.Chatter) *Server {
	t.Helper()
	index := &mock.IndexFetcher{
		FetchIndexFn: func(ctx context.Context, key string) ([]*docsite.Document, error) {
			assert.Equal(t, "content/docs", key)
			return testIndex, nil
		},
	}
	s, err := NewServer(index, "content/docs", chatter)
	require.NoError(t, err)
	return s
}

func TestNewServer(t *testing.T) {
	t.Parallel()

	_, err := NewServer(nil, "content/docs", nil)

	assert.Equal(t, docsite.EINVALID, docsite.ErrorCode(err))
}

func TestServer_handleSearch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("returns ranked results", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t, nil)

		_, output, err := s.handleSearch(ctx, nil, SearchInput{Query: "install"})

		require.NoError(t, err)
		assert.Equal(t, 2, output.Count)
		assert.Equal(t, "Install", output.Results[0].Title)
		assert.Equal(t, docsite.ScoreTitleMatch, output.Results[0].Score)
		assert.Equal(t, "/docs/usage", output.Results[1].URL)
	})

	t.Run("applies limit", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t, nil)

		_, output, err := s.handleSearch(ctx, nil, SearchInput{Query: "install", Limit: 1})

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
	})

	t.Run("short query returns nothing", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t, nil)

		_, output, err := s.handleSearch(ctx, nil, SearchInput{Query: "i"})

		require.NoError(t, err)
		assert.Equal(t, 0, output.Count)
		assert.NotNil(t, output.Results)
	})

	t.Run("returns error on fetch failure", func(t *testing.T) {
		t.Parallel()

		index := &mock.IndexFetcher{
			FetchIndexFn: func(ctx context.Context, key string) ([]*docsite.Document, error) {
				return nil, docsite.Errorf(docsite.EUNAVAILABLE, "index unavailable")
			},
		}
		s, err := NewServer(index, "content/docs", nil)
		require.NoError(t, err)

		_, _, err = s.handleSearch(ctx, nil, SearchInput{Query: "install"})

		assert.Equal(t, docsite.EUNAVAILABLE, docsite.ErrorCode(err))
	})
}

func TestServer_handleGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("returns page content", func(t *testing.T) {
		t.Parallel()

		_, output, err := newTestServer(t, nil).handleGet(ctx, nil, GetInput{URL: "/docs/faq"})

		require.NoError(t, err)
		assert.Equal(t, "FAQ", output.Title)
		assert.Equal(t, "Nothing relevant.", output.Content)
	})

	t.Run("returns ENOTFOUND for unknown URL", func(t *testing.T) {
		t.Parallel()

		_, _, err := newTestServer(t, nil).handleGet(ctx, nil, GetInput{URL: "/docs/missing"})

		assert.Equal(t, docsite.ENOTFOUND, docsite.ErrorCode(err))
	})

	t.Run("skips nil documents", func(t *testing.T) {
		t.Parallel()

		index := &mock.IndexFetcher{
			FetchIndexFn: func(ctx context.Context, key string) ([]*docsite.Document, error) {
				return []*docsite.Document{nil, testIndex[2]}, nil
			},
		}
		s, err := NewServer(index, "content/docs", nil)
		require.NoError(t, err)

		_, output, err := s.handleGet(ctx, nil, GetInput{URL: "/docs/faq"})

		require.NoError(t, err)
		assert.Equal(t, "FAQ", output.Title)
	})
}

func TestServer_handleAsk(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("collects streamed answer", func(t *testing.T) {
		t.Parallel()

		chatter := &mock.Chatter{
			StreamAnswerFn: func(ctx context.Context, messages []docsite.Message, onComplete docsite.CompletionFunc) iter.Seq2[string, error] {
				assert.Equal(t, []docsite.Message{{Role: docsite.RoleUser, Content: "How to install?"}}, messages)
				return mock.Tokens(nil, "Run ", "npm install.")
			},
		}

		_, output, err := newTestServer(t, chatter).handleAsk(ctx, nil, AskInput{Question: "  How to install?  "})

		require.NoError(t, err)
		assert.Equal(t, "Run npm install.", output.Answer)
	})

	t.Run("rejects blank question", func(t *testing.T) {
		t.Parallel()

		_, _, err := newTestServer(t, &mock.Chatter{}).handleAsk(ctx, nil, AskInput{Question: " "})

		assert.Equal(t, docsite.EINVALID, docsite.ErrorCode(err))
	})

	t.Run("returns stream error", func(t *testing.T) {
		t.Parallel()

		chatter := &mock.Chatter{
			StreamAnswerFn: func(ctx context.Context, messages []docsite.Message, onComplete docsite.CompletionFunc) iter.Seq2[string, error] {
				return mock.Tokens(docsite.Errorf(docsite.EUNAVAILABLE, "provider down"), "partial")
			},
		}

		_, _, err := newTestServer(t, chatter).handleAsk(ctx, nil, AskInput{Question: "q?"})

		assert.Equal(t, "provider down", docsite.ErrorMessage(err))
	})
}
