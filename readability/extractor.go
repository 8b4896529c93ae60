// Package readability isolates page content with Mozilla's Readability
// heuristics. It suits hand-written HTML pages that follow no known
// site generator layout.
package readability

import (
	"strings"

	"github.com/fwojciec/docsite"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements docsite.Extractor at compile time.
var _ docsite.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the readable article of rawHTML.
func (e *Extractor) Extract(rawHTML string) (*docsite.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, docsite.Errorf(docsite.EINVALID, "empty HTML input")
	}

	// Content files have no origin URL, so relative links stay as written.
	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, docsite.Errorf(docsite.EINVALID, "failed to parse HTML: %v", err)
	}

	return &docsite.ExtractResult{
		Title:       strings.TrimSpace(article.Title),
		ContentHTML: strings.TrimSpace(article.Content),
	}, nil
}
