package http_test

import (
	"context"
	"fmt"
	"iter"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/docsite"
	dshttp "github.com/fwojciec/docsite/http"
	"github.com/fwojciec/docsite/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexClient_FetchIndex(t *testing.T) {
	t.Parallel()

	t.Run("fetches index from server", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t, nil)

		docs, err := dshttp.NewIndexClient(ts.URL).FetchIndex(context.Background(), "/api/docs/search-index")

		require.NoError(t, err)
		assert.Equal(t, testIndex, docs)
	})

	t.Run("maps error status to code", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t, nil)

		_, err := dshttp.NewIndexClient(ts.URL).FetchIndex(context.Background(), "/missing")

		require.Error(t, err)
		assert.Equal(t, docsite.ENOTFOUND, docsite.ErrorCode(err))
		assert.Contains(t, docsite.ErrorMessage(err), "404")
	})

	t.Run("respects timeout option", func(t *testing.T) {
		t.Parallel()

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			fmt.Fprint(w, "[]")
		}))
		defer ts.Close()

		_, err := dshttp.NewIndexClient(ts.URL, dshttp.WithTimeout(20*time.Millisecond)).
			FetchIndex(context.Background(), "/idx")

		require.Error(t, err)
		assert.Equal(t, docsite.EUNAVAILABLE, docsite.ErrorCode(err))
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		t.Parallel()

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "<html>")
		}))
		defer ts.Close()

		_, err := dshttp.NewIndexClient(ts.URL).FetchIndex(context.Background(), "/idx")

		assert.Equal(t, docsite.EINVALID, docsite.ErrorCode(err))
	})
}

func TestChatClient_StreamAnswer(t *testing.T) {
	t.Parallel()

	t.Run("round trips through server", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t, func(s *dshttp.Server) {
			s.Chatter = &mock.Chatter{
				StreamAnswerFn: func(ctx context.Context, messages []docsite.Message, onComplete docsite.CompletionFunc) iter.Seq2[string, error] {
					return mock.Tokens(nil, "Line one\n", "Line \"two\"")
				},
			}
		})
		client := dshttp.NewChatClient(ts.URL, "/api/docs/chat")

		var tokens []string
		var finished string
		for tok, err := range client.StreamAnswer(context.Background(),
			[]docsite.Message{{Role: docsite.RoleUser, Content: "hi"}},
			func(ctx context.Context, result docsite.FinishResult) error {
				finished = result.Text
				return nil
			}) {
			require.NoError(t, err)
			tokens = append(tokens, tok)
		}

		assert.Equal(t, []string{"Line one\n", "Line \"two\""}, tokens)
		assert.Equal(t, "Line one\nLine \"two\"", finished)
	})

	t.Run("surfaces server stream error", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t, func(s *dshttp.Server) {
			s.Chatter = &mock.Chatter{
				StreamAnswerFn: func(ctx context.Context, messages []docsite.Message, onComplete docsite.CompletionFunc) iter.Seq2[string, error] {
					return mock.Tokens(docsite.Errorf(docsite.EUNAVAILABLE, "quota exceeded"))
				},
			}
		})
		client := dshttp.NewChatClient(ts.URL, "/api/docs/chat")

		var gotErr error
		for _, err := range client.StreamAnswer(context.Background(), []docsite.Message{{Role: docsite.RoleUser, Content: "hi"}}, nil) {
			gotErr = err
		}

		require.Error(t, gotErr)
		assert.Equal(t, "quota exceeded", docsite.ErrorMessage(gotErr))
	})

	t.Run("surfaces rejected request", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t, func(s *dshttp.Server) {
			s.Chatter = &mock.Chatter{}
		})
		client := dshttp.NewChatClient(ts.URL, "/api/docs/chat")

		var gotErr error
		for _, err := range client.StreamAnswer(context.Background(), nil, nil) {
			gotErr = err
		}

		require.Error(t, gotErr)
		assert.Equal(t, docsite.EINVALID, docsite.ErrorCode(gotErr))
	})
}
