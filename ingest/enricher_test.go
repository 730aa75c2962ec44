package ingest_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	ultravox "github.com/BollineniRohith123/Ultravox"
	"github.com/BollineniRohith123/Ultravox/ingest"
	"github.com/BollineniRohith123/Ultravox/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEnricher_Enrich(t *testing.T) {
	t.Parallel()

	t.Run("attaches title, summary, and embedding", func(t *testing.T) {
		t.Parallel()

		e := &ingest.Enricher{
			Completer: &mock.Completer{
				CompleteFn: func(_ context.Context, _, _ string) (string, error) {
					return `{"title": "Getting Started", "summary": "How to install the SDK."}`, nil
				},
			},
			Embedder: &mock.Embedder{
				EmbedFn: func(_ context.Context, _ string) ([]float32, error) {
					return []float32{0.1, 0.2, 0.3}, nil
				},
			},
			Logger: discardLogger(),
		}

		chunk := &ultravox.Chunk{
			URL:     "https://docs.example.com/install",
			Number:  2,
			Content: "Install the SDK with npm.",
		}

		processed := e.Enrich(context.Background(), chunk)

		require.NotNil(t, processed)
		assert.Equal(t, "https://docs.example.com/install", processed.URL)
		assert.Equal(t, 2, processed.Number)
		assert.Equal(t, "Getting Started", processed.Title)
		assert.Equal(t, "How to install the SDK.", processed.Summary)
		assert.Equal(t, "Install the SDK with npm.", processed.Content)
		assert.Equal(t, []float32{0.1, 0.2, 0.3}, processed.Embedding)
	})

	t.Run("synthesizes metadata locally", func(t *testing.T) {
		t.Parallel()

		e := &ingest.Enricher{
			Completer: &mock.Completer{
				CompleteFn: func(_ context.Context, _, _ string) (string, error) {
					return `{"title": "T", "summary": "S"}`, nil
				},
			},
			Embedder: &mock.Embedder{
				EmbedFn: func(_ context.Context, _ string) ([]float32, error) {
					return []float32{1}, nil
				},
			},
			Logger: discardLogger(),
		}

		chunk := &ultravox.Chunk{
			URL:     "https://docs.example.com/guides/install?tab=npm",
			Number:  0,
			Content: "héllo wörld",
		}

		processed := e.Enrich(context.Background(), chunk)

		assert.Equal(t, ultravox.DefaultSource, processed.Metadata.Source)
		assert.Equal(t, 11, processed.Metadata.ChunkSize) // runes, not bytes
		assert.Equal(t, "/guides/install", processed.Metadata.URLPath)
		assert.Equal(t, time.UTC, processed.Metadata.CrawledAt.Location())
		assert.WithinDuration(t, time.Now().UTC(), processed.Metadata.CrawledAt, 5*time.Second)
	})

	t.Run("uses the configured source tag", func(t *testing.T) {
		t.Parallel()

		e := &ingest.Enricher{
			Completer: &mock.Completer{
				CompleteFn: func(_ context.Context, _, _ string) (string, error) {
					return `{"title": "T", "summary": "S"}`, nil
				},
			},
			Embedder: &mock.Embedder{
				EmbedFn: func(_ context.Context, _ string) ([]float32, error) {
					return []float32{1}, nil
				},
			},
			Source: "custom_docs",
			Logger: discardLogger(),
		}

		processed := e.Enrich(context.Background(), &ultravox.Chunk{
			URL:     "https://docs.example.com/a",
			Content: "text",
		})

		assert.Equal(t, "custom_docs", processed.Metadata.Source)
	})

	t.Run("substitutes sentinels when the completion fails", func(t *testing.T) {
		t.Parallel()

		e := &ingest.Enricher{
			Completer: &mock.Completer{
				CompleteFn: func(_ context.Context, _, _ string) (string, error) {
					return "", ultravox.Errorf(ultravox.EUNAVAILABLE, "model overloaded")
				},
			},
			Embedder: &mock.Embedder{
				EmbedFn: func(_ context.Context, _ string) ([]float32, error) {
					return []float32{0.5}, nil
				},
			},
			Logger: discardLogger(),
		}

		processed := e.Enrich(context.Background(), &ultravox.Chunk{
			URL:     "https://docs.example.com/a",
			Content: "text",
		})

		assert.Equal(t, ingest.ErrorTitle, processed.Title)
		assert.Equal(t, ingest.ErrorSummary, processed.Summary)
		assert.Equal(t, []float32{0.5}, processed.Embedding)
	})

	t.Run("substitutes sentinels when the response is not JSON", func(t *testing.T) {
		t.Parallel()

		e := &ingest.Enricher{
			Completer: &mock.Completer{
				CompleteFn: func(_ context.Context, _, _ string) (string, error) {
					return "Sorry, I cannot help with that.", nil
				},
			},
			Embedder: &mock.Embedder{
				EmbedFn: func(_ context.Context, _ string) ([]float32, error) {
					return []float32{0.5}, nil
				},
			},
			Logger: discardLogger(),
		}

		processed := e.Enrich(context.Background(), &ultravox.Chunk{
			URL:     "https://docs.example.com/a",
			Content: "text",
		})

		assert.Equal(t, ingest.ErrorTitle, processed.Title)
		assert.Equal(t, ingest.ErrorSummary, processed.Summary)
	})

	t.Run("substitutes a zero vector when embedding fails", func(t *testing.T) {
		t.Parallel()

		e := &ingest.Enricher{
			Completer: &mock.Completer{
				CompleteFn: func(_ context.Context, _, _ string) (string, error) {
					return `{"title": "T", "summary": "S"}`, nil
				},
			},
			Embedder: &mock.Embedder{
				EmbedFn: func(_ context.Context, _ string) ([]float32, error) {
					return nil, ultravox.Errorf(ultravox.EUNAVAILABLE, "embedding api down")
				},
			},
			Logger: discardLogger(),
		}

		processed := e.Enrich(context.Background(), &ultravox.Chunk{
			URL:     "https://docs.example.com/a",
			Content: "text",
		})

		assert.Equal(t, "T", processed.Title)
		require.Len(t, processed.Embedding, ultravox.DefaultEmbeddingDimensions)
		for _, v := range processed.Embedding {
			assert.Zero(t, v)
		}
	})

	t.Run("zero vector respects configured dimensions", func(t *testing.T) {
		t.Parallel()

		e := &ingest.Enricher{
			Completer: &mock.Completer{
				CompleteFn: func(_ context.Context, _, _ string) (string, error) {
					return `{"title": "T", "summary": "S"}`, nil
				},
			},
			Embedder: &mock.Embedder{
				EmbedFn: func(_ context.Context, _ string) ([]float32, error) {
					return nil, ultravox.Errorf(ultravox.EUNAVAILABLE, "down")
				},
			},
			Dimensions: 8,
			Logger:     discardLogger(),
		}

		processed := e.Enrich(context.Background(), &ultravox.Chunk{
			URL:     "https://docs.example.com/a",
			Content: "text",
		})

		assert.Equal(t, make([]float32, 8), processed.Embedding)
	})

	t.Run("never fails even when every provider call fails", func(t *testing.T) {
		t.Parallel()

		e := &ingest.Enricher{
			Completer: &mock.Completer{
				CompleteFn: func(_ context.Context, _, _ string) (string, error) {
					return "", ultravox.Errorf(ultravox.EUNAVAILABLE, "down")
				},
			},
			Embedder: &mock.Embedder{
				EmbedFn: func(_ context.Context, _ string) ([]float32, error) {
					return nil, ultravox.Errorf(ultravox.EUNAVAILABLE, "down")
				},
			},
			Logger: discardLogger(),
		}

		processed := e.Enrich(context.Background(), &ultravox.Chunk{
			URL:     "https://docs.example.com/a",
			Number:  3,
			Content: "text",
		})

		require.NotNil(t, processed)
		assert.Equal(t, ingest.ErrorTitle, processed.Title)
		assert.Equal(t, ingest.ErrorSummary, processed.Summary)
		assert.Len(t, processed.Embedding, ultravox.DefaultEmbeddingDimensions)
		assert.Equal(t, "text", processed.Content)
		assert.Equal(t, 3, processed.Number)
	})

	t.Run("sends the full chunk content to the embedder", func(t *testing.T) {
		t.Parallel()

		content := strings.Repeat("x", 4000)
		var embedded string
		e := &ingest.Enricher{
			Completer: &mock.Completer{
				CompleteFn: func(_ context.Context, _, _ string) (string, error) {
					return `{"title": "T", "summary": "S"}`, nil
				},
			},
			Embedder: &mock.Embedder{
				EmbedFn: func(_ context.Context, text string) ([]float32, error) {
					embedded = text
					return []float32{1}, nil
				},
			},
			Logger: discardLogger(),
		}

		e.Enrich(context.Background(), &ultravox.Chunk{
			URL:     "https://docs.example.com/a",
			Content: content,
		})

		assert.Equal(t, content, embedded)
	})

	t.Run("sends a truncated user prompt to the completer", func(t *testing.T) {
		t.Parallel()

		var userPrompt string
		e := &ingest.Enricher{
			Completer: &mock.Completer{
				CompleteFn: func(_ context.Context, _, user string) (string, error) {
					userPrompt = user
					return `{"title": "T", "summary": "S"}`, nil
				},
			},
			Embedder: &mock.Embedder{
				EmbedFn: func(_ context.Context, _ string) ([]float32, error) {
					return []float32{1}, nil
				},
			},
			Logger: discardLogger(),
		}

		e.Enrich(context.Background(), &ultravox.Chunk{
			URL:     "https://docs.example.com/a",
			Content: strings.Repeat("x", 4000),
		})

		assert.Equal(t, ingest.BuildEnrichmentPrompt("https://docs.example.com/a", strings.Repeat("x", 4000)), userPrompt)
	})
}

func TestBuildEnrichmentPrompt(t *testing.T) {
	t.Parallel()

	t.Run("includes URL and content", func(t *testing.T) {
		t.Parallel()

		prompt := ingest.BuildEnrichmentPrompt("https://docs.example.com/a", "hello")

		assert.Equal(t, "URL: https://docs.example.com/a\n\nContent:\nhello...", prompt)
	})

	t.Run("truncates content to 1000 characters", func(t *testing.T) {
		t.Parallel()

		prompt := ingest.BuildEnrichmentPrompt("https://e.com", strings.Repeat("é", 1500))

		assert.Equal(t, "URL: https://e.com\n\nContent:\n"+strings.Repeat("é", 1000)+"...", prompt)
	})
}
