package main

import (
	"fmt"

	"github.com/fwojciec/docsite"
)

// Run executes the docs command.
func (c *DocsCmd) Run(deps *Dependencies) error {
	root := deps.Config.ContentPath

	docs, err := deps.Documents.FindDocuments(deps.Ctx, docsite.DocumentFilter{
		Root:   &root,
		Limit:  c.Limit,
		Offset: c.Offset,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsite.ErrorMessage(err))
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintf(deps.Stderr, "error: no documents stored for %s. Run 'docsite build --db' first.\n", root)
		return docsite.Errorf(docsite.ENOTFOUND, "no documents stored for %q", root)
	}

	if c.Full {
		fmt.Fprintln(deps.Stdout, docsite.FormatCorpus(docs))
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Documents for %s (%d shown):\n\n", root, len(docs))
	for i, doc := range docs {
		title := doc.Title
		if title == "" {
			title = doc.URL
		}
		fmt.Fprintf(deps.Stdout, "  %d. %s\n     %s\n", c.Offset+i+1, title, doc.URL)
	}
	return nil
}
