package readability_test

import (
	"testing"

	"github.com/fwojciec/docsite"
	"github.com/fwojciec/docsite/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := readability.NewExtractor().Extract("")

		require.Error(t, err)
		assert.Equal(t, docsite.EINVALID, docsite.ErrorCode(err))
	})

	t.Run("reads page title", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Configuration</title></head>
<body><article><p>Settings live in a single YAML file next to the binary.</p></article></body>
</html>`

		result, err := readability.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "Configuration", result.Title)
	})

	t.Run("keeps article and drops site chrome", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Deploying</title></head>
<body>
<nav><a href="/">Home Nav Link</a></nav>
<aside class="sidebar"><p>Sidebar navigation content</p></aside>
<article>
<h2>Deploying to production</h2>
<p>Build the static site first, then copy the output directory to your web server root.</p>
<ul><li>Check the base path</li><li>Rebuild the search index</li></ul>
</article>
<footer><p>Footer copyright text</p></footer>
</body>
</html>`

		result, err := readability.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "copy the output directory")
		assert.Contains(t, result.ContentHTML, "<li")
		assert.NotContains(t, result.ContentHTML, "Home Nav Link")
		assert.NotContains(t, result.ContentHTML, "Sidebar navigation content")
		assert.NotContains(t, result.ContentHTML, "Footer copyright text")
	})
}
