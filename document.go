package docsite

import (
	"context"
	"path"
	"path/filepath"
	"strings"
)

// Document represents one documentation page prepared for search.
// Content has all markup removed; see CleanContent.
type Document struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	URL     string `json:"url"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.URL == "" {
		return Errorf(EINVALID, "document URL required")
	}
	return nil
}

// DocumentURL builds the canonical site-relative URL for a content file.
// relPath is the file path relative to the content root; its extension is
// dropped and directory separators become slashes.
// Example: ("/docs", "guides/setup.mdx") → "/docs/guides/setup"
func DocumentURL(basePath, relPath string) string {
	slug := strings.TrimSuffix(filepath.ToSlash(relPath), path.Ext(relPath))
	return strings.TrimSuffix(basePath, "/") + "/" + strings.TrimPrefix(slug, "/")
}

// Slug returns the file name of relPath without its extension.
func Slug(relPath string) string {
	base := path.Base(filepath.ToSlash(relPath))
	return strings.TrimSuffix(base, path.Ext(base))
}

// IndexBuilder builds a search index from a content directory.
type IndexBuilder interface {
	// BuildIndex walks root and returns one document per content file,
	// in traversal order. A file that cannot be parsed fails the whole build.
	BuildIndex(ctx context.Context, root string) ([]*Document, error)
}

// IndexFetcher retrieves a previously built search index.
// The key identifies the index source, e.g. the search endpoint path.
type IndexFetcher interface {
	FetchIndex(ctx context.Context, key string) ([]*Document, error)
}

// DocumentService persists index snapshots.
type DocumentService interface {
	// ReplaceDocuments replaces all documents stored for a content root.
	ReplaceDocuments(ctx context.Context, root string, docs []*Document) error

	// FindDocuments retrieves documents matching the filter in index order.
	FindDocuments(ctx context.Context, filter DocumentFilter) ([]*Document, error)

	// DeleteDocumentsByRoot removes all documents for a content root.
	DeleteDocumentsByRoot(ctx context.Context, root string) error
}

// DocumentFilter represents a filter for FindDocuments.
type DocumentFilter struct {
	Root *string `json:"root"`
	URL  *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
