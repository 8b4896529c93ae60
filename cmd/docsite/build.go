package main

import (
	"fmt"

	"github.com/fwojciec/docsite"
	"github.com/fwojciec/docsite/fs"
)

// Run executes the build command.
func (c *BuildCmd) Run(deps *Dependencies) error {
	root := deps.Config.ContentPath

	docs, err := deps.Builder.BuildIndex(deps.Ctx, root)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsite.ErrorMessage(err))
		return err
	}

	if c.Out != "" {
		if err := fs.WriteIndex(c.Out, docs); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docsite.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Wrote %d documents to %s\n", len(docs), c.Out)
	}

	if c.DB {
		if err := deps.Documents.ReplaceDocuments(deps.Ctx, root, docs); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docsite.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Stored %d documents for %s\n", len(docs), root)
	}

	if c.Out == "" && !c.DB {
		fmt.Fprintf(deps.Stdout, "Indexed %d documents from %s\n", len(docs), root)
	}
	return nil
}
