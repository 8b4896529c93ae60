package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/docsite"
	"github.com/fwojciec/docsite/fs"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	var docs []*docsite.Document
	var err error
	if c.Index != "" {
		docs, err = fs.NewIndexFile().FetchIndex(deps.Ctx, c.Index)
	} else {
		docs, err = deps.Index.FetchIndex(deps.Ctx, deps.Config.ContentPath)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsite.ErrorMessage(err))
		return err
	}

	query := strings.TrimSpace(c.Query)
	results := docsite.Search(docs, query)
	if len(results) == 0 {
		if len([]rune(query)) < docsite.MinQueryLength {
			fmt.Fprintln(deps.Stdout, docsite.ShortQueryMessage)
		} else {
			fmt.Fprintln(deps.Stdout, docsite.NoResultsMessage)
		}
		return nil
	}
	if c.Limit > 0 && len(results) > c.Limit {
		results = results[:c.Limit]
	}

	for i, r := range results {
		fmt.Fprintf(deps.Stdout, "%d. %s\n", i+1, docsite.Mark(r.Title, query, "**", "**"))
		fmt.Fprintf(deps.Stdout, "   %s\n", joinURL(deps.SiteURL, r.URL))
		if r.Snippet != "" {
			fmt.Fprintf(deps.Stdout, "   %s\n", docsite.Mark(r.Snippet, query, "**", "**"))
		}
		fmt.Fprintln(deps.Stdout)
	}
	return nil
}

// joinURL prefixes a site-relative URL with origin when one is configured.
func joinURL(origin, url string) string {
	if origin == "" {
		return url
	}
	return origin + url
}
