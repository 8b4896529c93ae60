// Package goquery extracts the readable part of generated documentation
// pages using CSS selectors tuned per site generator.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docsite"
)

// Ensure Extractor implements docsite.Extractor at compile time.
var _ docsite.Extractor = (*Extractor)(nil)

// contentSelectors maps each framework to the selectors of its main
// content region, most specific first.
var contentSelectors = map[Framework][]string{
	FrameworkDocusaurus: {".theme-doc-markdown", "article"},
	FrameworkMkDocs:     {".md-content__inner", ".md-content"},
	FrameworkSphinx:     {"div[role='main']", ".body", ".document"},
	FrameworkVitePress:  {".vp-doc", ".VPDoc"},
	FrameworkVuePress:   {".theme-default-content"},
	FrameworkGitBook:    {"main"},
	FrameworkNextra:     {".nextra-content", "article", "main"},
}

// fallbackSelectors locate main content on pages of unknown origin.
var fallbackSelectors = []string{"main", "article", "[role='main']", "body"}

// chrome matches elements that never carry document content.
const chrome = "script, style, noscript, template, nav, header, footer, aside, " +
	".theme-doc-toc-mobile, .table-of-contents, .md-sidebar, .headerlink, .hash-link"

// Extractor selects the main content region of an HTML page.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the page title and the HTML of its main content region.
// The title is read from <title>, falling back to the first <h1>.
func (e *Extractor) Extract(rawHTML string) (*docsite.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, docsite.Errorf(docsite.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, docsite.Errorf(docsite.EINVALID, "failed to parse HTML: %v", err)
	}

	title := pageTitle(doc)
	framework := DetectFramework(doc)
	doc.Find(chrome).Remove()

	content := selectContent(doc, append(contentSelectors[framework], fallbackSelectors...))
	if content == nil {
		return &docsite.ExtractResult{Title: title}, nil
	}

	contentHTML, err := content.Html()
	if err != nil {
		return nil, err
	}

	return &docsite.ExtractResult{
		Title:       title,
		ContentHTML: strings.TrimSpace(contentHTML),
	}, nil
}

func pageTitle(doc *goquery.Document) string {
	if title := strings.TrimSpace(doc.Find("head title").First().Text()); title != "" {
		return title
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}

func selectContent(doc *goquery.Document, selectors []string) *goquery.Selection {
	for _, sel := range selectors {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			return s
		}
	}
	return nil
}
