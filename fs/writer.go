// Package fs provides file-based chunk storage.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	ultravox "github.com/BollineniRohith123/Ultravox"
)

// Ensure ChunkWriter implements ultravox.ChunkWriter at compile time.
var _ ultravox.ChunkWriter = (*ChunkWriter)(nil)

// ChunkWriter appends processed chunks to a JSON Lines file. It backs
// local runs and inspection without a database.
type ChunkWriter struct {
	path string

	mu   sync.Mutex
	file *os.File
	enc  *json.Encoder
}

// NewChunkWriter creates a writer that appends to the file at path.
func NewChunkWriter(path string) *ChunkWriter {
	return &ChunkWriter{path: path}
}

// Open opens the output file, creating it and any parent directories if
// needed. Existing content is kept so repeated runs append.
func (w *ChunkWriter) Open() error {
	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return err
	}

	file, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}

	w.file = file
	w.enc = json.NewEncoder(file)
	return nil
}

// Close closes the output file.
func (w *ChunkWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	w.enc = nil
	return err
}

// CreateChunk appends one chunk as a single JSON line. It is safe for
// concurrent use.
func (w *ChunkWriter) CreateChunk(ctx context.Context, chunk *ultravox.ProcessedChunk) error {
	if err := chunk.Validate(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.enc == nil {
		return ultravox.Errorf(ultravox.EINTERNAL, "chunk writer is not open")
	}
	return w.enc.Encode(chunk)
}
