// Package trafilatura isolates page content with go-trafilatura, falling
// back to its readability and dom-distiller heuristics on sparse pages.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/docsite"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements docsite.Extractor at compile time.
var _ docsite.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor that keeps tables and links.
func NewExtractor() *Extractor {
	return &Extractor{
		opts: trafilatura.Options{
			EnableFallback: true,
			IncludeLinks:   true,
		},
	}
}

// Extract returns the main content of rawHTML.
func (e *Extractor) Extract(rawHTML string) (*docsite.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, docsite.Errorf(docsite.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, docsite.Errorf(docsite.EINVALID, "failed to extract content: %v", err)
	}

	res := &docsite.ExtractResult{Title: strings.TrimSpace(result.Metadata.Title)}
	if result.ContentNode != nil {
		var buf bytes.Buffer
		if err := html.Render(&buf, result.ContentNode); err != nil {
			return nil, err
		}
		res.ContentHTML = buf.String()
	}
	return res, nil
}
