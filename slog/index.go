// Package slog provides logging decorators for docsite services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docsite"
)

// Ensure LoggingIndexBuilder implements docsite.IndexBuilder.
var _ docsite.IndexBuilder = (*LoggingIndexBuilder)(nil)

// LoggingIndexBuilder wraps an IndexBuilder with logging.
type LoggingIndexBuilder struct {
	next   docsite.IndexBuilder
	logger *slog.Logger
}

// NewLoggingIndexBuilder creates a new LoggingIndexBuilder.
func NewLoggingIndexBuilder(next docsite.IndexBuilder, logger *slog.Logger) *LoggingIndexBuilder {
	return &LoggingIndexBuilder{next: next, logger: logger}
}

// BuildIndex delegates to the wrapped builder and logs the operation.
func (b *LoggingIndexBuilder) BuildIndex(ctx context.Context, root string) (docs []*docsite.Document, err error) {
	defer func(begin time.Time) {
		b.logger.Info("build index",
			"root", root,
			"count", len(docs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return b.next.BuildIndex(ctx, root)
}

// Ensure LoggingIndexFetcher implements docsite.IndexFetcher.
var _ docsite.IndexFetcher = (*LoggingIndexFetcher)(nil)

// LoggingIndexFetcher wraps an IndexFetcher with debug logging.
type LoggingIndexFetcher struct {
	next   docsite.IndexFetcher
	logger *slog.Logger
}

// NewLoggingIndexFetcher creates a new LoggingIndexFetcher.
func NewLoggingIndexFetcher(next docsite.IndexFetcher, logger *slog.Logger) *LoggingIndexFetcher {
	return &LoggingIndexFetcher{next: next, logger: logger}
}

// FetchIndex delegates to the wrapped fetcher and logs the operation.
func (f *LoggingIndexFetcher) FetchIndex(ctx context.Context, key string) (docs []*docsite.Document, err error) {
	defer func(begin time.Time) {
		f.logger.Debug("fetch index",
			"key", key,
			"count", len(docs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.FetchIndex(ctx, key)
}
