package slog_test

import (
	"bytes"
	"context"
	"iter"
	"log/slog"
	"testing"

	"github.com/fwojciec/docsite"
	"github.com/fwojciec/docsite/mock"
	dsslog "github.com/fwojciec/docsite/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingGenerator_Generate(t *testing.T) {
	t.Parallel()

	t.Run("passes tokens through and logs count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Generator{
			GenerateFn: func(ctx context.Context, systemPrompt string, messages []docsite.Message) iter.Seq2[string, error] {
				return mock.Tokens(nil, "a", "b", "c")
			},
		}
		gen := dsslog.NewLoggingGenerator(inner, "groq/llama", logger)

		var got []string
		for tok, err := range gen.Generate(context.Background(), "sys", []docsite.Message{{Role: docsite.RoleUser, Content: "hi"}}) {
			require.NoError(t, err)
			got = append(got, tok)
		}

		assert.Equal(t, []string{"a", "b", "c"}, got)
		output := buf.String()
		assert.Contains(t, output, "provider=groq/llama")
		assert.Contains(t, output, "tokens=3")
		assert.Contains(t, output, "messages=1")
	})

	t.Run("logs stream error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Generator{
			GenerateFn: func(ctx context.Context, systemPrompt string, messages []docsite.Message) iter.Seq2[string, error] {
				return mock.Tokens(docsite.Errorf(docsite.EUNAVAILABLE, "rate limited"), "a")
			},
		}
		gen := dsslog.NewLoggingGenerator(inner, "openai/gpt-4o", logger)

		var gotErr error
		for _, err := range gen.Generate(context.Background(), "sys", nil) {
			if err != nil {
				gotErr = err
			}
		}

		require.Error(t, gotErr)
		output := buf.String()
		assert.Contains(t, output, "tokens=1")
		assert.Contains(t, output, "rate limited")
	})

	t.Run("logs once when consumer stops early", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Generator{
			GenerateFn: func(ctx context.Context, systemPrompt string, messages []docsite.Message) iter.Seq2[string, error] {
				return mock.Tokens(nil, "a", "b", "c")
			},
		}
		gen := dsslog.NewLoggingGenerator(inner, "p", logger)

		for range gen.Generate(context.Background(), "sys", nil) {
			break
		}

		assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("msg=generate")))
		assert.Contains(t, buf.String(), "tokens=1")
	})
}
