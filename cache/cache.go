// Package cache provides process-local memoization with single-flight
// loading. At most one load per key is in flight at any time and every
// caller waiting on that load shares its outcome.
package cache

import (
	"context"
	"sync"

	"github.com/fwojciec/docsite"
	"golang.org/x/sync/singleflight"
)

// LoadFunc loads the value for a key.
type LoadFunc[T any] func(ctx context.Context) (T, error)

// Group memoizes values by key. Loaded values never expire.
// A failed load is not memoized: all of its waiters receive the error and
// the next call loads again. The zero value is ready to use.
type Group[T any] struct {
	mu     sync.Mutex
	values map[string]T
	flight singleflight.Group
}

// Get returns the value for key, calling load at most once per in-flight
// key. A caller whose ctx is done stops waiting and returns ctx.Err();
// the load itself keeps running for the remaining waiters.
func (g *Group[T]) Get(ctx context.Context, key string, load LoadFunc[T]) (T, error) {
	if v, ok := g.lookup(key); ok {
		return v, nil
	}

	ch := g.flight.DoChan(key, func() (any, error) {
		// A load may have finished between lookup and DoChan.
		if v, ok := g.lookup(key); ok {
			return v, nil
		}

		v, err := load(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}

		g.mu.Lock()
		if g.values == nil {
			g.values = make(map[string]T)
		}
		g.values[key] = v
		g.mu.Unlock()

		return v, nil
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

// Loaded reports whether a value is memoized for key.
func (g *Group[T]) Loaded(key string) bool {
	_, ok := g.lookup(key)
	return ok
}

func (g *Group[T]) lookup(key string) (T, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	v, ok := g.values[key]
	return v, ok
}

// Ensure IndexCache implements docsite.IndexFetcher and
// docsite.CorpusLoader at compile time.
var (
	_ docsite.IndexFetcher = (*IndexCache)(nil)
	_ docsite.CorpusLoader = (*IndexCache)(nil)
)

// IndexCache memoizes search indexes fetched through another IndexFetcher.
// Each distinct key is fetched once; concurrent requests for a key that is
// still loading share the same fetch. Content changes after the first load
// are not observed.
type IndexCache struct {
	next  docsite.IndexFetcher
	group Group[[]*docsite.Document]
}

// NewIndexCache creates a new IndexCache in front of next.
func NewIndexCache(next docsite.IndexFetcher) *IndexCache {
	return &IndexCache{next: next}
}

// FetchIndex returns the memoized index for key, fetching it on first use.
func (c *IndexCache) FetchIndex(ctx context.Context, key string) ([]*docsite.Document, error) {
	return c.group.Get(ctx, key, func(ctx context.Context) ([]*docsite.Document, error) {
		return c.next.FetchIndex(ctx, key)
	})
}

// LoadCorpus returns the memoized index for root as chat grounding, so
// search and chat over the same root share one load.
func (c *IndexCache) LoadCorpus(ctx context.Context, root string) ([]*docsite.Document, error) {
	return c.FetchIndex(ctx, root)
}

// Loaded reports whether the index for key has been fetched.
func (c *IndexCache) Loaded(key string) bool {
	return c.group.Loaded(key)
}
