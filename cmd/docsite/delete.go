package main

import (
	"fmt"

	"github.com/fwojciec/docsite"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return docsite.Errorf(docsite.EINVALID, "use --force to confirm deletion")
	}

	root := deps.Config.ContentPath
	if err := deps.Documents.DeleteDocumentsByRoot(deps.Ctx, root); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsite.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted index snapshot for %s\n", root)
	return nil
}
