package slog

import (
	"context"
	"log/slog"
	"time"

	ultravox "github.com/BollineniRohith123/Ultravox"
)

// Ensure LoggingChunkWriter implements ultravox.ChunkWriter.
var _ ultravox.ChunkWriter = (*LoggingChunkWriter)(nil)

// LoggingChunkWriter wraps a ChunkWriter with debug logging.
type LoggingChunkWriter struct {
	next   ultravox.ChunkWriter
	logger *slog.Logger
}

// NewLoggingChunkWriter creates a new LoggingChunkWriter.
func NewLoggingChunkWriter(next ultravox.ChunkWriter, logger *slog.Logger) *LoggingChunkWriter {
	return &LoggingChunkWriter{next: next, logger: logger}
}

// CreateChunk delegates to the wrapped writer and logs the operation.
func (w *LoggingChunkWriter) CreateChunk(ctx context.Context, chunk *ultravox.ProcessedChunk) (err error) {
	defer func(begin time.Time) {
		w.logger.Info("chunk write",
			"url", chunk.URL,
			"number", chunk.Number,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.CreateChunk(ctx, chunk)
}
