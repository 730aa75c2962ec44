// Package ingest provides documentation ingestion orchestration.
// It coordinates chunking, LLM enrichment, embedding, and storage of
// crawled documentation pages.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"time"
	"unicode/utf8"

	ultravox "github.com/BollineniRohith123/Ultravox"
)

// titleSummarySystemPrompt instructs the model to return a JSON object
// with title and summary keys for a documentation chunk.
const titleSummarySystemPrompt = `You are an AI that extracts titles and summaries from documentation chunks.
Return a JSON object with 'title' and 'summary' keys.
For the title: If this seems like the start of a document, extract its title. If it's a middle chunk, derive a descriptive title.
For the summary: Create a concise summary of the main points in this chunk.
Keep both title and summary concise but informative.`

// Sentinel values stored when title and summary generation fails.
const (
	ErrorTitle   = "Error processing title"
	ErrorSummary = "Error processing summary"
)

// maxPromptChars bounds how much chunk content is sent to the model for
// title and summary extraction.
const maxPromptChars = 1000

// Enricher turns chunks into processed chunks ready for storage.
// Enrichment never fails the chunk: when a model call errors, sentinel
// title and summary values or a zero embedding are substituted and the
// error is logged.
type Enricher struct {
	Completer  ultravox.Completer
	Embedder   ultravox.Embedder
	Dimensions int    // zero-vector length, DefaultEmbeddingDimensions if zero
	Source     string // metadata source tag, DefaultSource if empty
	Logger     *slog.Logger
}

// Enrich attaches a title, summary, embedding, and metadata to the chunk.
func (e *Enricher) Enrich(ctx context.Context, chunk *ultravox.Chunk) *ultravox.ProcessedChunk {
	title, summary := e.titleAndSummary(ctx, chunk)

	return &ultravox.ProcessedChunk{
		URL:       chunk.URL,
		Number:    chunk.Number,
		Title:     title,
		Summary:   summary,
		Content:   chunk.Content,
		Metadata:  e.metadata(chunk),
		Embedding: e.embedding(ctx, chunk),
	}
}

func (e *Enricher) titleAndSummary(ctx context.Context, chunk *ultravox.Chunk) (title, summary string) {
	raw, err := e.Completer.Complete(ctx, titleSummarySystemPrompt, BuildEnrichmentPrompt(chunk.URL, chunk.Content))
	if err != nil {
		e.logger().Warn("title and summary generation failed",
			"url", chunk.URL, "chunk", chunk.Number, "err", err)
		return ErrorTitle, ErrorSummary
	}

	var parsed struct {
		Title   string `json:"title"`
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		e.logger().Warn("title and summary response unparseable",
			"url", chunk.URL, "chunk", chunk.Number, "err", err)
		return ErrorTitle, ErrorSummary
	}

	return parsed.Title, parsed.Summary
}

func (e *Enricher) embedding(ctx context.Context, chunk *ultravox.Chunk) []float32 {
	vec, err := e.Embedder.Embed(ctx, chunk.Content)
	if err != nil {
		e.logger().Warn("embedding failed",
			"url", chunk.URL, "chunk", chunk.Number, "err", err)
		return make([]float32, e.dimensions())
	}
	return vec
}

// metadata synthesizes chunk metadata locally, without model involvement.
func (e *Enricher) metadata(chunk *ultravox.Chunk) ultravox.ChunkMetadata {
	source := e.Source
	if source == "" {
		source = ultravox.DefaultSource
	}

	var urlPath string
	if u, err := url.Parse(chunk.URL); err == nil {
		urlPath = u.Path
	}

	return ultravox.ChunkMetadata{
		Source:    source,
		ChunkSize: utf8.RuneCountInString(chunk.Content),
		CrawledAt: time.Now().UTC(),
		URLPath:   urlPath,
	}
}

func (e *Enricher) dimensions() int {
	if e.Dimensions > 0 {
		return e.Dimensions
	}
	return ultravox.DefaultEmbeddingDimensions
}

func (e *Enricher) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}

// BuildEnrichmentPrompt builds the user prompt for title and summary
// extraction. At most the first 1000 characters of the chunk are included.
func BuildEnrichmentPrompt(pageURL, content string) string {
	if runes := []rune(content); len(runes) > maxPromptChars {
		content = string(runes[:maxPromptChars])
	}
	return fmt.Sprintf("URL: %s\n\nContent:\n%s...", pageURL, content)
}
