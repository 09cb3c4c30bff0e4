// Package slog provides logging decorators for grail services. Each
// decorator wraps an implementation of a root interface and logs one line
// per call with its outcome and duration.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/grail"
)

// Ensure LoggingFetcher implements grail.Fetcher.
var _ grail.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   grail.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next grail.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the request.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (body string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"bytes", len(body),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// Ensure LoggingPageFetcher implements grail.PageFetcher.
var _ grail.PageFetcher = (*LoggingPageFetcher)(nil)

// LoggingPageFetcher wraps a PageFetcher with logging. The content hash
// makes upstream changes between runs visible in the logs.
type LoggingPageFetcher struct {
	next   grail.PageFetcher
	logger *slog.Logger
}

// NewLoggingPageFetcher creates a new LoggingPageFetcher.
func NewLoggingPageFetcher(next grail.PageFetcher, logger *slog.Logger) *LoggingPageFetcher {
	return &LoggingPageFetcher{next: next, logger: logger}
}

// FetchPage delegates to the wrapped fetcher and logs the page obtained.
func (f *LoggingPageFetcher) FetchPage(ctx context.Context, title string) (page *grail.Page, err error) {
	defer func(begin time.Time) {
		if err != nil {
			f.logger.Info("fetch page",
				"title", title,
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		f.logger.Info("fetch page",
			"title", title,
			"representation", page.Representation.String(),
			"bytes", len(page.Content),
			"hash", xxhash.Sum64String(page.Content),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return f.next.FetchPage(ctx, title)
}
