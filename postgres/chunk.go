package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	ultravox "github.com/BollineniRohith123/Ultravox"
	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// Compile-time interface verification.
var _ ultravox.ChunkWriter = (*ChunkWriter)(nil)

// ChunkWriter implements ultravox.ChunkWriter using PostgreSQL with
// pgvector.
type ChunkWriter struct {
	db *DB
}

// NewChunkWriter creates a new ChunkWriter.
func NewChunkWriter(db *DB) *ChunkWriter {
	return &ChunkWriter{db: db}
}

// hashContent computes an xxHash of content as a hex string.
func hashContent(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}

// CreateChunk inserts one processed chunk.
func (w *ChunkWriter) CreateChunk(ctx context.Context, chunk *ultravox.ProcessedChunk) error {
	if err := chunk.Validate(); err != nil {
		return err
	}

	metadata, err := json.Marshal(chunk.Metadata)
	if err != nil {
		return ultravox.Errorf(ultravox.EINTERNAL, "failed to marshal metadata: %v", err)
	}

	return w.db.Exec(ctx, `
		INSERT INTO site_pages (id, url, chunk_number, title, summary, content, content_hash, metadata, embedding)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, uuid.New(), chunk.URL, chunk.Number, chunk.Title, chunk.Summary, chunk.Content,
		hashContent(chunk.Content), metadata, pgvector.NewVector(chunk.Embedding))
}
