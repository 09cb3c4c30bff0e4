package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/grail"
)

// Ensure LoggingExtractor implements grail.Extractor.
var _ grail.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   grail.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next grail.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the record count.
func (e *LoggingExtractor) Extract(content string, hint grail.Hint) (items []*grail.Item, err error) {
	defer func(begin time.Time) {
		e.logger.Debug("extract",
			"title", hint.PageTitle,
			"category", string(hint.Category),
			"count", len(items),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(content, hint)
}
