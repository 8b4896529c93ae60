package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Framework identifies the static site generator that produced an HTML page.
type Framework string

// Known frameworks.
const (
	FrameworkUnknown    Framework = ""
	FrameworkDocusaurus Framework = "docusaurus"
	FrameworkMkDocs     Framework = "mkdocs"
	FrameworkSphinx     Framework = "sphinx"
	FrameworkVitePress  Framework = "vitepress"
	FrameworkVuePress   Framework = "vuepress"
	FrameworkGitBook    Framework = "gitbook"
	FrameworkNextra     Framework = "nextra"
)

// markers lists structural selectors unique to each framework.
// VitePress is checked before VuePress because it reuses VuePress markup.
var markers = []struct {
	framework Framework
	selectors []string
}{
	{FrameworkDocusaurus, []string{"#__docusaurus_skipToContent_fallback", ".theme-doc-sidebar-container", ".theme-doc-markdown"}},
	{FrameworkMkDocs, []string{"[data-md-color-scheme]", "[data-md-component]", ".md-content"}},
	{FrameworkSphinx, []string{".toctree-wrapper", ".wy-nav-side", ".sphinxsidebar", "div[role='main'].document"}},
	{FrameworkVitePress, []string{"#VPContent", ".VPDoc", ".vp-doc"}},
	{FrameworkVuePress, []string{".theme-default-content", ".vuepress-navbar"}},
	{FrameworkGitBook, []string{"[data-testid='space.sidebar']", "[data-testid='page.desktopTableOfContents']"}},
	{FrameworkNextra, []string{".nextra-navbar", ".nextra-sidebar", ".nextra-content"}},
}

// DetectFramework identifies the framework that generated doc.
// The meta generator tag wins over structural markers.
func DetectFramework(doc *goquery.Document) Framework {
	if f := frameworkFromGenerator(doc); f != FrameworkUnknown {
		return f
	}
	for _, m := range markers {
		for _, sel := range m.selectors {
			if doc.Find(sel).Length() > 0 {
				return m.framework
			}
		}
	}
	return FrameworkUnknown
}

func frameworkFromGenerator(doc *goquery.Document) Framework {
	generator, _ := doc.Find("meta[name='generator']").Last().Attr("content")
	generator = strings.ToLower(generator)
	if generator == "" {
		return FrameworkUnknown
	}
	for _, m := range markers {
		if strings.Contains(generator, string(m.framework)) {
			return m.framework
		}
	}
	return FrameworkUnknown
}
