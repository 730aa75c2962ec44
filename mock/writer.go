package mock

import (
	"context"

	ultravox "github.com/BollineniRohith123/Ultravox"
)

var _ ultravox.ChunkWriter = (*ChunkWriter)(nil)

// ChunkWriter is a mock implementation of ultravox.ChunkWriter.
type ChunkWriter struct {
	CreateChunkFn func(ctx context.Context, chunk *ultravox.ProcessedChunk) error
}

func (w *ChunkWriter) CreateChunk(ctx context.Context, chunk *ultravox.ProcessedChunk) error {
	return w.CreateChunkFn(ctx, chunk)
}
