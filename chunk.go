package ultravox

import (
	"context"
	"time"
)

// DefaultSource is the source tag recorded in chunk metadata.
const DefaultSource = "ultravox_docs"

// Chunk is a bounded slice of a document's markdown, identified by the
// source URL and its position within the document.
type Chunk struct {
	URL     string `json:"url"`
	Number  int    `json:"number"`
	Content string `json:"content"`
}

// ChunkMetadata is synthesized locally for each chunk, without LLM
// involvement. The JSON keys define the metadata payload stored alongside
// the chunk, so retrieval-side filters (e.g. on source) keep working.
type ChunkMetadata struct {
	// Source tags every chunk of a corpus (e.g. "ultravox_docs").
	Source string `json:"source"`

	// ChunkSize is the chunk content length in characters.
	ChunkSize int `json:"chunk_size"`

	// CrawledAt is the UTC time the chunk was processed.
	CrawledAt time.Time `json:"crawled_at"`

	// URLPath is the path component of the chunk's source URL.
	URLPath string `json:"url_path"`
}

// ProcessedChunk is a chunk enriched with an LLM title and summary, an
// embedding vector, and synthesized metadata. It is the unit of storage.
type ProcessedChunk struct {
	URL       string        `json:"url"`
	Number    int           `json:"number"`
	Title     string        `json:"title"`
	Summary   string        `json:"summary"`
	Content   string        `json:"content"`
	Metadata  ChunkMetadata `json:"metadata"`
	Embedding []float32     `json:"embedding"`
}

// Validate returns an error if the processed chunk contains invalid fields.
// Title and summary are not checked: enrichment failures leave sentinel
// values there and the record is stored regardless.
func (c *ProcessedChunk) Validate() error {
	if c.URL == "" {
		return Errorf(EINVALID, "chunk URL required")
	}
	if c.Number < 0 {
		return Errorf(EINVALID, "chunk number must not be negative")
	}
	if c.Content == "" {
		return Errorf(EINVALID, "chunk content required")
	}
	return nil
}

// ChunkWriter persists processed chunks.
type ChunkWriter interface {
	// CreateChunk appends one processed chunk to storage.
	//
	// Implementations must not deduplicate or upsert: running the same
	// crawl twice stores every chunk twice. Observable identity of a row
	// is the (URL, Number) pair plus insertion order.
	CreateChunk(ctx context.Context, chunk *ProcessedChunk) error
}
