package mock

import (
	"context"

	"github.com/fwojciec/docsite"
)

var (
	_ docsite.IndexFetcher = (*IndexFetcher)(nil)
	_ docsite.IndexBuilder = (*IndexBuilder)(nil)
)

// IndexFetcher is a mock implementation of docsite.IndexFetcher.
type IndexFetcher struct {
	FetchIndexFn func(ctx context.Context, key string) ([]*docsite.Document, error)
}

func (f *IndexFetcher) FetchIndex(ctx context.Context, key string) ([]*docsite.Document, error) {
	return f.FetchIndexFn(ctx, key)
}

// IndexBuilder is a mock implementation of docsite.IndexBuilder.
type IndexBuilder struct {
	BuildIndexFn func(ctx context.Context, root string) ([]*docsite.Document, error)
}

func (b *IndexBuilder) BuildIndex(ctx context.Context, root string) ([]*docsite.Document, error) {
	return b.BuildIndexFn(ctx, root)
}
