package main

import (
	"context"
	"io"
	"time"

	ultravox "github.com/BollineniRohith123/Ultravox"
	"github.com/BollineniRohith123/Ultravox/ingest"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	Source   ultravox.URLSource
	Pipeline *ingest.Pipeline
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool     `short:"v" help:"Enable debug logging"`
	Crawl   CrawlCmd `cmd:"" help:"Crawl a documentation site into enriched, embedded chunks"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URL string `arg:"" optional:"" default:"https://docs.ultravox.ai/introduction" help:"Documentation URL to crawl"`

	Preview     bool          `short:"p" help:"Show discovered URLs without crawling"`
	Concurrency int           `short:"c" default:"5" help:"Concurrent page limit"`
	Timeout     time.Duration `short:"t" default:"10s" help:"Fetch timeout per page"`
	ChunkSize   int           `name:"chunk-size" default:"5000" help:"Maximum chunk length in characters"`
	Dimensions  int           `default:"1536" help:"Embedding vector length"`
	Source      string        `default:"ultravox_docs" help:"Source tag stored in chunk metadata"`

	Static    bool   `help:"Fetch pages with plain HTTP instead of a headless browser"`
	Extractor string `default:"trafilatura" enum:"trafilatura,readability" help:"Content extraction engine"`
	Provider  string `default:"openai" enum:"openai,gemini" help:"LLM provider for enrichment and embeddings"`

	SitemapOnly bool `xor:"discovery" help:"Discover URLs from the sitemap only"`
	NavOnly     bool `xor:"discovery" help:"Discover URLs from the seed page's links only"`
	Recursive   bool `xor:"discovery" help:"Discover URLs by recursively crawling same-site links"`

	JSONL string `name:"jsonl" help:"Append chunks to a JSON Lines file at this path"`
	DB    string `name:"db" help:"Store chunks in a SQLite database at this path"`

	DatabaseURL    string `name:"database-url" env:"DATABASE_URL" help:"Postgres connection string"`
	OpenAIKey      string `name:"openai-key" env:"OPENAI_API_KEY" help:"OpenAI API key"`
	GeminiKey      string `name:"gemini-key" env:"GEMINI_API_KEY" help:"Gemini API key"`
	LLMModel       string `name:"llm-model" env:"LLM_MODEL" help:"Override the provider's chat completion model"`
	EmbeddingModel string `name:"embedding-model" env:"EMBEDDING_MODEL" help:"Override the provider's embedding model"`
}
