package docsite_test

import (
	"testing"

	"github.com/fwojciec/docsite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_Validate(t *testing.T) {
	t.Parallel()

	t.Run("requires URL", func(t *testing.T) {
		t.Parallel()

		err := (&docsite.Document{Title: "Intro"}).Validate()

		require.Error(t, err)
		assert.Equal(t, docsite.EINVALID, docsite.ErrorCode(err))
	})

	t.Run("accepts document with URL", func(t *testing.T) {
		t.Parallel()

		err := (&docsite.Document{URL: "/docs/intro"}).Validate()

		assert.NoError(t, err)
	})
}

func TestDocumentURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		basePath string
		relPath  string
		want     string
	}{
		{"top-level file", "/docs", "intro.mdx", "/docs/intro"},
		{"nested file keeps directories", "/docs", "guides/setup/install.mdx", "/docs/guides/setup/install"},
		{"markdown extension", "/docs", "faq.md", "/docs/faq"},
		{"trailing slash on base path", "/docs/", "intro.mdx", "/docs/intro"},
		{"empty base path", "", "intro.mdx", "/intro"},
		{"dots in name keep all but the extension", "/docs", "v1.2/notes.mdx", "/docs/v1.2/notes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, docsite.DocumentURL(tt.basePath, tt.relPath))
		})
	}
}

func TestSlug(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "install", docsite.Slug("guides/install.mdx"))
	assert.Equal(t, "index", docsite.Slug("index.md"))
}
