package extractor

import (
	"fmt"
	"log/slog"

	"github.com/pkg/errors"
)

// Chain tries its sources in order and returns the first result that passes
// its Quality. A source that fails or returns unreadable text is skipped;
// when every source fails the call fails with ErrUnreadable.
type Chain struct {
	sources []TextSource
	quality Quality
	logger  *slog.Logger
}

// NewChain returns a chain over sources.
func NewChain(logger *slog.Logger, quality Quality, sources ...TextSource) *Chain {
	if logger == nil {
		logger = slog.Default()
	}
	return &Chain{sources: sources, quality: quality, logger: logger}
}

func (c *Chain) PageTexts(path string) ([]string, error) {
	var lastErr error
	for _, src := range c.sources {
		name := fmt.Sprintf("%T", src)
		pages, err := src.PageTexts(path)
		if err != nil {
			c.logger.Debug("extraction backend failed", "backend", name, "path", path, "error", err)
			lastErr = err
			continue
		}
		if !c.quality.Readable(pages) {
			c.logger.Debug("extraction backend returned unreadable text", "backend", name, "path", path)
			continue
		}
		c.logger.Debug("extraction backend selected", "backend", name, "path", path, "pages", len(pages))
		return pages, nil
	}
	if lastErr != nil {
		return nil, errors.Wrapf(ErrUnreadable, "%s: last error: %v", path, lastErr)
	}
	return nil, errors.Wrap(ErrUnreadable, path)
}
