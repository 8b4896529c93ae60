// Package fs builds search indexes from documentation content on disk and
// stores serialized indexes as JSON files.
package fs

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/fwojciec/docsite"
	"golang.org/x/sync/errgroup"
)

// Ensure IndexBuilder implements docsite.IndexBuilder and
// docsite.IndexFetcher at compile time.
var (
	_ docsite.IndexBuilder = (*IndexBuilder)(nil)
	_ docsite.IndexFetcher = (*IndexBuilder)(nil)
)

// Extensions of Markdown content files.
var markdownExts = map[string]bool{".mdx": true, ".md": true}

// Extensions of HTML content files, indexed only when a Converter is set.
var htmlExts = map[string]bool{".html": true, ".htm": true}

// Option configures an IndexBuilder.
type Option func(*IndexBuilder)

// WithConverter enables indexing of HTML files, converted to Markdown by c.
func WithConverter(c docsite.Converter) Option {
	return func(b *IndexBuilder) {
		b.converter = c
	}
}

// WithExtractor sets the extractor that isolates the main content of HTML
// files before conversion. Without one the whole page is converted.
func WithExtractor(e docsite.Extractor) Option {
	return func(b *IndexBuilder) {
		b.extractor = e
	}
}

// WithConcurrency sets how many files are parsed in parallel.
func WithConcurrency(n int) Option {
	return func(b *IndexBuilder) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// IndexBuilder builds a search index from a directory of content files.
type IndexBuilder struct {
	basePath    string
	converter   docsite.Converter
	extractor   docsite.Extractor
	concurrency int
}

// NewIndexBuilder creates an IndexBuilder whose document URLs start with
// basePath.
func NewIndexBuilder(basePath string, opts ...Option) *IndexBuilder {
	b := &IndexBuilder{
		basePath:    basePath,
		concurrency: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BuildIndex walks root in lexical order and parses every content file.
// Documents keep traversal order. Any parse failure aborts the build and
// duplicate URLs are rejected with ECONFLICT.
func (b *IndexBuilder) BuildIndex(ctx context.Context, root string) ([]*docsite.Document, error) {
	paths, err := b.walk(root)
	if err != nil {
		return nil, err
	}

	docs := make([]*docsite.Document, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)
	for i, rel := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := b.parseFile(root, rel)
			if err != nil {
				return fmt.Errorf("%s: %w", rel, err)
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]string, len(docs))
	for i, doc := range docs {
		if prev, ok := seen[doc.URL]; ok {
			return nil, docsite.Errorf(docsite.ECONFLICT, "%s and %s both map to %s", prev, paths[i], doc.URL)
		}
		seen[doc.URL] = paths[i]
	}

	return docs, nil
}

// FetchIndex builds the index of the content directory named by root, so a
// builder can sit behind cache.IndexCache.
func (b *IndexBuilder) FetchIndex(ctx context.Context, root string) ([]*docsite.Document, error) {
	return b.BuildIndex(ctx, root)
}

// walk returns the slash-separated paths of content files under root.
// Hidden directories are skipped.
func (b *IndexBuilder) walk(root string) ([]string, error) {
	info, err := os.Stat(root)
	if os.IsNotExist(err) {
		return nil, docsite.Errorf(docsite.ENOTFOUND, "content directory %q not found", root)
	} else if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, docsite.Errorf(docsite.EINVALID, "content path %q is not a directory", root)
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !b.accepts(filepath.Ext(path)) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	return paths, err
}

func (b *IndexBuilder) accepts(ext string) bool {
	ext = strings.ToLower(ext)
	return markdownExts[ext] || (b.converter != nil && htmlExts[ext])
}

func (b *IndexBuilder) parseFile(root, rel string) (*docsite.Document, error) {
	src, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return nil, err
	}

	var title, body string
	if htmlExts[strings.ToLower(filepath.Ext(rel))] {
		title, body, err = b.parseHTML(string(src))
	} else {
		title, body, err = parseMarkdown(src)
	}
	if err != nil {
		return nil, err
	}
	if title == "" {
		title = docsite.Slug(rel)
	}

	return &docsite.Document{
		Title:   title,
		Content: docsite.CleanContent(body),
		URL:     docsite.DocumentURL(b.basePath, rel),
	}, nil
}

func parseMarkdown(src []byte) (title, body string, err error) {
	fm, rest, err := parseFrontMatter(src)
	if err != nil {
		return "", "", err
	}
	return strings.TrimSpace(fm.Title), string(rest), nil
}

func (b *IndexBuilder) parseHTML(src string) (title, body string, err error) {
	contentHTML := src
	if b.extractor != nil {
		res, err := b.extractor.Extract(src)
		if err != nil {
			return "", "", err
		}
		title, contentHTML = res.Title, res.ContentHTML
	}

	body, err = b.converter.Convert(contentHTML)
	if err != nil {
		return "", "", err
	}
	return title, body, nil
}
