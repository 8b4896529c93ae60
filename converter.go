package docsite

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms an HTML content file into Markdown so it can be
	// cleaned and indexed like any other document.
	Convert(html string) (string, error)
}
