// Package postgres provides a pgvector-backed chunk store.
package postgres

import (
	"context"
	"fmt"

	ultravox "github.com/BollineniRohith123/Ultravox"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgxvec "github.com/pgvector/pgvector-go/pgx"
)

// DB represents a PostgreSQL connection pool.
type DB struct {
	pool       *pgxpool.Pool
	dsn        string
	dimensions int
}

// Option configures a DB.
type Option func(*DB)

// WithDimensions sets the embedding vector size declared in the schema.
func WithDimensions(dimensions int) Option {
	return func(db *DB) {
		if dimensions > 0 {
			db.dimensions = dimensions
		}
	}
}

// NewDB creates a new DB instance with the given connection string.
func NewDB(dsn string, opts ...Option) *DB {
	db := &DB{dsn: dsn, dimensions: ultravox.DefaultEmbeddingDimensions}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

// Open connects to the database and creates the schema if needed.
func (db *DB) Open(ctx context.Context) error {
	// The vector extension must exist before RegisterTypes can load the
	// type, so create it on a bootstrap connection before the pool opens.
	boot, err := pgx.Connect(ctx, db.dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := boot.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector"); err != nil {
		boot.Close(ctx)
		return fmt.Errorf("failed to create vector extension: %w", err)
	}
	if err := boot.Close(ctx); err != nil {
		return fmt.Errorf("failed to close bootstrap connection: %w", err)
	}

	cfg, err := pgxpool.ParseConfig(db.dsn)
	if err != nil {
		return fmt.Errorf("failed to parse database URL: %w", err)
	}

	// Register the vector type on every new connection.
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvec.RegisterTypes(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	db.pool = pool

	if err := db.createSchema(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the connection pool.
func (db *DB) Close() error {
	if db.pool != nil {
		db.pool.Close()
	}
	return nil
}

// QueryRow executes a query that returns a single row.
func (db *DB) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	return db.pool.QueryRow(ctx, query, args...)
}

// Exec executes a statement that doesn't return rows.
func (db *DB) Exec(ctx context.Context, query string, args ...any) error {
	_, err := db.pool.Exec(ctx, query, args...)
	return err
}

// createSchema creates the table, indexes and the match_site_pages
// retrieval function if they don't exist.
func (db *DB) createSchema(ctx context.Context) error {
	_, err := db.pool.Exec(ctx, BuildSchema(db.dimensions))
	return err
}

// BuildSchema returns the DDL for the site_pages store with the given
// embedding vector size.
//
// There is deliberately no unique constraint on (url, chunk_number):
// chunk rows are append-only and repeated crawls store duplicate rows.
func BuildSchema(dimensions int) string {
	return fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS site_pages (
			id UUID PRIMARY KEY,
			url TEXT NOT NULL,
			chunk_number INTEGER NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			summary TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL DEFAULT '',
			content_hash TEXT NOT NULL DEFAULT '',
			metadata JSONB NOT NULL DEFAULT '{}'::jsonb,
			embedding VECTOR(%d),
			created_at TIMESTAMPTZ NOT NULL DEFAULT timezone('utc', now())
		);

		CREATE INDEX IF NOT EXISTS idx_site_pages_url ON site_pages (url);
		CREATE INDEX IF NOT EXISTS idx_site_pages_metadata ON site_pages USING gin (metadata);
		CREATE INDEX IF NOT EXISTS idx_site_pages_embedding ON site_pages USING ivfflat (embedding vector_cosine_ops);

		CREATE OR REPLACE FUNCTION match_site_pages(
			query_embedding VECTOR(%d),
			match_count INT DEFAULT 10,
			filter JSONB DEFAULT '{}'::jsonb
		) RETURNS TABLE (
			id UUID,
			url TEXT,
			chunk_number INTEGER,
			title TEXT,
			summary TEXT,
			content TEXT,
			metadata JSONB,
			similarity FLOAT
		)
		LANGUAGE plpgsql
		AS $$
		BEGIN
			RETURN QUERY
			SELECT
				site_pages.id,
				site_pages.url,
				site_pages.chunk_number,
				site_pages.title,
				site_pages.summary,
				site_pages.content,
				site_pages.metadata,
				1 - (site_pages.embedding <=> query_embedding) AS similarity
			FROM site_pages
			WHERE site_pages.metadata @> filter
			ORDER BY site_pages.embedding <=> query_embedding
			LIMIT match_count;
		END;
		$$;
	`, dimensions, dimensions)
}
