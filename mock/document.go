package mock

import (
	"context"

	"github.com/fwojciec/docsite"
)

var _ docsite.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of docsite.DocumentService.
type DocumentService struct {
	ReplaceDocumentsFn      func(ctx context.Context, root string, docs []*docsite.Document) error
	FindDocumentsFn         func(ctx context.Context, filter docsite.DocumentFilter) ([]*docsite.Document, error)
	DeleteDocumentsByRootFn func(ctx context.Context, root string) error
}

func (s *DocumentService) ReplaceDocuments(ctx context.Context, root string, docs []*docsite.Document) error {
	return s.ReplaceDocumentsFn(ctx, root, docs)
}

func (s *DocumentService) FindDocuments(ctx context.Context, filter docsite.DocumentFilter) ([]*docsite.Document, error) {
	return s.FindDocumentsFn(ctx, filter)
}

func (s *DocumentService) DeleteDocumentsByRoot(ctx context.Context, root string) error {
	return s.DeleteDocumentsByRootFn(ctx, root)
}
