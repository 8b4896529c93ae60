package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/docsite"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	transcripts, err := deps.Transcripts.FindTranscripts(deps.Ctx, docsite.TranscriptFilter{Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsite.ErrorMessage(err))
		return err
	}

	if len(transcripts) == 0 {
		fmt.Fprintln(deps.Stdout, "No transcripts yet. Use 'docsite ask' to ask a question.")
		return nil
	}

	for _, t := range transcripts {
		fmt.Fprintf(deps.Stdout, "%s  %s\n", t.CreatedAt.Local().Format(time.DateTime), t.Provider)
		fmt.Fprintf(deps.Stdout, "Q: %s\n", t.Question)
		fmt.Fprintf(deps.Stdout, "A: %s\n\n", t.Answer)
	}
	return nil
}
