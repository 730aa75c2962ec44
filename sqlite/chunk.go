package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	ultravox "github.com/BollineniRohith123/Ultravox"
	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ ultravox.ChunkWriter = (*ChunkWriter)(nil)

// ChunkWriter implements ultravox.ChunkWriter using SQLite.
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

// CreateChunk inserts one processed chunk. Embedding and metadata are
// stored as JSON text since SQLite has no vector type.
func (w *ChunkWriter) CreateChunk(ctx context.Context, chunk *ultravox.ProcessedChunk) error {
	if err := chunk.Validate(); err != nil {
		return err
	}

	metadata, err := json.Marshal(chunk.Metadata)
	if err != nil {
		return ultravox.Errorf(ultravox.EINTERNAL, "failed to marshal metadata: %v", err)
	}

	embedding, err := json.Marshal(chunk.Embedding)
	if err != nil {
		return ultravox.Errorf(ultravox.EINTERNAL, "failed to marshal embedding: %v", err)
	}

	_, err = w.db.ExecContext(ctx, `
		INSERT INTO site_pages (id, url, chunk_number, title, summary, content, content_hash, metadata, embedding, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, uuid.New().String(), chunk.URL, chunk.Number, chunk.Title, chunk.Summary, chunk.Content,
		hashContent(chunk.Content), string(metadata), string(embedding),
		time.Now().UTC().Format(time.RFC3339))

	return err
}
