package docsite

// ExtractResult holds the readable part of an HTML content file.
type ExtractResult struct {
	// Title is the page title, empty when the page declares none.
	Title string

	// ContentHTML is the main content region. Site chrome such as
	// navigation, sidebars and footers has been removed.
	ContentHTML string
}

// Extractor isolates the main content of an HTML page.
type Extractor interface {
	// Extract returns the title and main content of rawHTML.
	// Empty input is rejected with EINVALID.
	Extract(rawHTML string) (*ExtractResult, error)
}
