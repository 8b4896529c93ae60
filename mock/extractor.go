package mock

import "github.com/fwojciec/docsite"

var _ docsite.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of docsite.Extractor.
type Extractor struct {
	ExtractFn func(rawHTML string) (*docsite.ExtractResult, error)
}

func (e *Extractor) Extract(rawHTML string) (*docsite.ExtractResult, error) {
	return e.ExtractFn(rawHTML)
}
