package slog

import (
	"context"
	"log/slog"
	"time"

	ultravox "github.com/BollineniRohith123/Ultravox"
)

// Ensure LoggingURLSource implements ultravox.URLSource.
var _ ultravox.URLSource = (*LoggingURLSource)(nil)

// LoggingURLSource wraps a URLSource with debug logging.
type LoggingURLSource struct {
	next   ultravox.URLSource
	logger *slog.Logger
}

// NewLoggingURLSource creates a new LoggingURLSource.
func NewLoggingURLSource(next ultravox.URLSource, logger *slog.Logger) *LoggingURLSource {
	return &LoggingURLSource{next: next, logger: logger}
}

// Discover delegates to the wrapped source and logs the operation.
func (s *LoggingURLSource) Discover(ctx context.Context, baseURL string) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("url discovery",
			"url", baseURL,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Discover(ctx, baseURL)
}
