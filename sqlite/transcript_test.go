package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/docsite"
	"github.com/fwojciec/docsite/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscriptService_CreateTranscript(t *testing.T) {
	t.Parallel()

	t.Run("assigns ID and timestamp", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewTranscriptService(setupTestDB(t))
		tr := &docsite.Transcript{Question: "How?", Answer: "Like this.", Provider: "groq/llama"}

		require.NoError(t, svc.CreateTranscript(context.Background(), tr))

		assert.NotEmpty(t, tr.ID)
		assert.False(t, tr.CreatedAt.IsZero())
	})

	t.Run("rejects missing question", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewTranscriptService(setupTestDB(t))

		err := svc.CreateTranscript(context.Background(), &docsite.Transcript{Answer: "x"})

		assert.Equal(t, docsite.EINVALID, docsite.ErrorCode(err))
	})
}

func TestTranscriptService_FindTranscripts(t *testing.T) {
	t.Parallel()

	t.Run("returns newest first", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewTranscriptService(setupTestDB(t))
		ctx := context.Background()
		for _, q := range []string{"first", "second", "third"} {
			require.NoError(t, svc.CreateTranscript(ctx, &docsite.Transcript{Question: q}))
		}

		got, err := svc.FindTranscripts(ctx, docsite.TranscriptFilter{})

		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "third", got[0].Question)
		assert.Equal(t, "first", got[2].Question)
	})

	t.Run("round trips fields", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewTranscriptService(setupTestDB(t))
		ctx := context.Background()
		tr := &docsite.Transcript{Question: "How?", Answer: "Like this.", Provider: "anthropic/claude"}
		require.NoError(t, svc.CreateTranscript(ctx, tr))

		got, err := svc.FindTranscripts(ctx, docsite.TranscriptFilter{Limit: 1})

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, tr.ID, got[0].ID)
		assert.Equal(t, tr.Answer, got[0].Answer)
		assert.Equal(t, tr.Provider, got[0].Provider)
		assert.True(t, tr.CreatedAt.Equal(got[0].CreatedAt))
	})
}
