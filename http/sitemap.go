package http

import (
	"io"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/docsite"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// WriteSitemap writes a sitemap listing every document, with each URL
// resolved against origin (e.g., "https://example.com").
func WriteSitemap(w io.Writer, origin string, docs []*docsite.Document) error {
	origin = strings.TrimSuffix(origin, "/")

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	urlset := doc.CreateElement("urlset")
	urlset.CreateAttr("xmlns", sitemapNamespace)
	for _, d := range docs {
		if d == nil {
			continue
		}
		urlset.CreateElement("url").CreateElement("loc").SetText(origin + d.URL)
	}
	doc.Indent(2)

	_, err := doc.WriteTo(w)
	return err
}
