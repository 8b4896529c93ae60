package main

import (
	"fmt"

	"github.com/fwojciec/docsite"
	"github.com/fwojciec/docsite/chat"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	if deps.Chatter == nil {
		err := docsite.Errorf(docsite.ENOTIMPLEMENTED, "no model provider configured")
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsite.ErrorMessage(err))
		return err
	}

	var onComplete docsite.CompletionFunc
	if deps.Transcripts != nil {
		onComplete = chat.RecordTranscript(deps.Transcripts, c.Question, deps.Provider)
	}

	messages := []docsite.Message{{Role: docsite.RoleUser, Content: c.Question}}
	for tok, err := range deps.Chatter.StreamAnswer(deps.Ctx, messages, onComplete) {
		if err != nil {
			fmt.Fprintln(deps.Stdout)
			fmt.Fprintf(deps.Stderr, "error: %s\n", docsite.ErrorMessage(err))
			return err
		}
		fmt.Fprint(deps.Stdout, tok)
	}
	fmt.Fprintln(deps.Stdout)
	return nil
}
