package sqlite_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	ultravox "github.com/BollineniRohith123/Ultravox"
	"github.com/BollineniRohith123/Ultravox/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkChunkInserts compares write performance between WAL and rollback
// journal modes for the insert-heavy ingestion workload.
func BenchmarkChunkInserts(b *testing.B) {
	b.Run("rollback_journal", func(b *testing.B) {
		benchmarkChunkInserts(b, false)
	})

	b.Run("wal_mode", func(b *testing.B) {
		benchmarkChunkInserts(b, true)
	})
}

func benchmarkChunkInserts(b *testing.B, useWAL bool) {
	b.Helper()

	tmpDir := b.TempDir()
	dbPath := filepath.Join(tmpDir, "bench.db")

	db := sqlite.NewDB(dbPath)
	require.NoError(b, db.Open())

	// Open enables WAL for file-based databases, so the rollback journal
	// branch has to switch back explicitly.
	if !useWAL {
		ctx := context.Background()
		var mode string
		require.NoError(b, db.QueryRowContext(ctx, "PRAGMA journal_mode = DELETE").Scan(&mode))
	}

	defer func() {
		db.Close()
		// Clean up WAL files if they exist
		os.Remove(dbPath + "-wal")
		os.Remove(dbPath + "-shm")
	}()

	ctx := context.Background()
	writer := sqlite.NewChunkWriter(db)

	embedding := make([]float32, ultravox.DefaultEmbeddingDimensions)
	for i := range embedding {
		embedding[i] = float32(i) / float32(len(embedding))
	}

	// Reset timer to exclude setup time
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		chunk := &ultravox.ProcessedChunk{
			URL:     fmt.Sprintf("https://example.com/docs/page%d", i),
			Number:  i % 8,
			Title:   fmt.Sprintf("Page %d", i),
			Summary: "A short summary of the page contents.",
			Content: fmt.Sprintf("# Page %d\n\nThis is the content of page %d with some additional text to make it more realistic. Lorem ipsum dolor sit amet, consectetur adipiscing elit.", i, i),
			Metadata: ultravox.ChunkMetadata{
				Source:    ultravox.DefaultSource,
				ChunkSize: 150,
				CrawledAt: time.Now().UTC(),
				URLPath:   fmt.Sprintf("/docs/page%d", i),
			},
			Embedding: embedding,
		}
		if err := writer.CreateChunk(ctx, chunk); err != nil {
			b.Fatal(err)
		}
	}
}
