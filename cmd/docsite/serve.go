package main

import (
	"cmp"
	"fmt"

	"github.com/fwojciec/docsite"
	dshttp "github.com/fwojciec/docsite/http"
)

// Run executes the serve command. It blocks until the context is cancelled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	root := deps.Config.ContentPath

	// Build up front so content errors fail the start instead of the first request.
	docs, err := deps.Index.FetchIndex(deps.Ctx, root)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsite.ErrorMessage(err))
		return err
	}

	s := dshttp.NewServer()
	s.Addr = c.Addr
	s.Config = deps.Config
	s.Index = deps.Index
	s.IndexKey = root
	s.Chatter = deps.Chatter
	s.Transcripts = deps.Transcripts
	s.Provider = deps.Provider
	s.Limiter = dshttp.NewClientLimiter(c.Rate, c.Burst)
	s.SiteURL = cmp.Or(c.SiteURL, deps.SiteURL)
	s.Logger = deps.Logger

	if err := s.Open(); err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "Serving %d documents from %s on %s\n", len(docs), root, s.URL())

	<-deps.Ctx.Done()
	return s.Close()
}
