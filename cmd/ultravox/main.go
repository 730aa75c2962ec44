package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	ultravox "github.com/BollineniRohith123/Ultravox"
	"github.com/BollineniRohith123/Ultravox/discover"
	"github.com/BollineniRohith123/Ultravox/fs"
	"github.com/BollineniRohith123/Ultravox/gemini"
	"github.com/BollineniRohith123/Ultravox/goquery"
	"github.com/BollineniRohith123/Ultravox/htmltomarkdown"
	ultravoxhttp "github.com/BollineniRohith123/Ultravox/http"
	"github.com/BollineniRohith123/Ultravox/ingest"
	ultravoxopenai "github.com/BollineniRohith123/Ultravox/openai"
	"github.com/BollineniRohith123/Ultravox/postgres"
	"github.com/BollineniRohith123/Ultravox/readability"
	"github.com/BollineniRohith123/Ultravox/rod"
	ultravoxslog "github.com/BollineniRohith123/Ultravox/slog"
	"github.com/BollineniRohith123/Ultravox/sqlite"
	"github.com/BollineniRohith123/Ultravox/trafilatura"
	"github.com/alecthomas/kong"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// tokenizerModel is the model whose local tokenizer approximates corpus
// token counts for the crawl summary.
const tokenizerModel = "gemini-2.5-flash"

// Main represents the program.
type Main struct {
	// Chunk storage resources. Run wires exactly one of these based on
	// flags; Close releases whichever was opened.
	JSONL    *fs.ChunkWriter
	Postgres *postgres.DB
	SQLite   *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.JSONL != nil {
		return m.JSONL.Close()
	}
	if m.Postgres != nil {
		return m.Postgres.Close()
	}
	if m.SQLite != nil {
		return m.SQLite.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("ultravox"),
		kong.Description("Crawl documentation sites into enriched, embedded chunks"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'ultravox --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	crawl := &cli.Crawl

	// Wire the chunk store, enrichment providers, and token counter only
	// for a full crawl. Preview mode stops at URL discovery.
	var pipeline ingest.Pipeline
	if !crawl.Preview {
		chunks, err := m.openChunkStore(ctx, crawl, stderr)
		if err != nil {
			return err
		}
		defer m.Close()
		pipeline.Chunks = ultravoxslog.NewLoggingChunkWriter(chunks, logger)

		completer, embedder, err := buildProvider(ctx, crawl, stderr)
		if err != nil {
			return err
		}

		tokenCounter, err := gemini.NewTokenCounter(tokenizerModel)
		if err != nil {
			return fmt.Errorf("failed to create token counter: %w", err)
		}
		pipeline.TokenCounter = tokenCounter

		pipeline.Enricher = &ingest.Enricher{
			Completer:  completer,
			Embedder:   embedder,
			Dimensions: crawl.Dimensions,
			Source:     crawl.Source,
			Logger:     logger,
		}
	}

	// The page fetcher serves the crawl itself and recursive discovery;
	// preview mode without recursion never fetches a page.
	if !crawl.Preview || crawl.Recursive {
		fetcher, err := openFetcher(crawl, stderr)
		if err != nil {
			return err
		}
		defer fetcher.Close()
		pipeline.Fetcher = rod.NewLoggingFetcher(fetcher, logger)
	}

	links := goquery.NewLinkExtractor()
	sitemaps := ultravoxhttp.NewSitemapSource(nil)
	nav := ultravoxhttp.NewNavSource(nil, links)

	var source ultravox.URLSource
	switch {
	case crawl.SitemapOnly:
		source = sitemaps
	case crawl.NavOnly:
		source = nav
	case crawl.Recursive:
		source = discover.NewRecursiveSource(pipeline.Fetcher, links,
			discover.WithConcurrency(crawl.Concurrency))
	default:
		source = discover.NewCompositeSource(sitemaps, nav)
	}
	deps.Source = ultravoxslog.NewLoggingURLSource(source, logger)

	if !crawl.Preview {
		var extractor ultravox.Extractor = trafilatura.NewExtractor()
		if crawl.Extractor == "readability" {
			extractor = readability.NewExtractor()
		}

		pipeline.Extractor = extractor
		pipeline.Converter = htmltomarkdown.NewConverter()
		pipeline.ChunkSize = crawl.ChunkSize
		pipeline.Concurrency = crawl.Concurrency
		pipeline.Logger = logger
		deps.Pipeline = &pipeline
	}

	return kongCtx.Run(deps)
}

// openChunkStore resolves the configured chunk store. An explicit JSONL
// path wins, then a Postgres connection string, then a SQLite path.
func (m *Main) openChunkStore(ctx context.Context, crawl *CrawlCmd, stderr io.Writer) (ultravox.ChunkWriter, error) {
	switch {
	case crawl.JSONL != "":
		writer := fs.NewChunkWriter(crawl.JSONL)
		if err := writer.Open(); err != nil {
			return nil, fmt.Errorf("failed to open %q: %w", crawl.JSONL, err)
		}
		m.JSONL = writer
		return writer, nil

	case crawl.DatabaseURL != "":
		db := postgres.NewDB(crawl.DatabaseURL, postgres.WithDimensions(crawl.Dimensions))
		if err := db.Open(ctx); err != nil {
			fmt.Fprintln(stderr, "Hint: Check the DATABASE_URL connection string")
			return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
		}
		m.Postgres = db
		return postgres.NewChunkWriter(db), nil

	case crawl.DB != "":
		db := sqlite.NewDB(crawl.DB)
		if err := db.Open(); err != nil {
			return nil, fmt.Errorf("failed to open database at %q: %w", crawl.DB, err)
		}
		m.SQLite = db
		return sqlite.NewChunkWriter(db), nil
	}

	return nil, fmt.Errorf("no chunk store configured: pass --jsonl or --db, or set DATABASE_URL")
}

// buildProvider constructs the configured completion and embedding provider.
func buildProvider(ctx context.Context, crawl *CrawlCmd, stderr io.Writer) (ultravox.Completer, ultravox.Embedder, error) {
	if crawl.Provider == "gemini" {
		if crawl.GeminiKey == "" {
			fmt.Fprintln(stderr, "Hint: Get an API key at https://aistudio.google.com/apikey")
			return nil, nil, fmt.Errorf("GEMINI_API_KEY not set")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  crawl.GeminiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return nil, nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		provider := gemini.NewProvider(client,
			gemini.WithCompletionModel(crawl.LLMModel),
			gemini.WithEmbeddingModel(crawl.EmbeddingModel),
			gemini.WithDimensions(crawl.Dimensions),
		)
		return provider, provider, nil
	}

	if err := ultravoxopenai.ValidateAPIKey(crawl.OpenAIKey); err != nil {
		fmt.Fprintln(stderr, "Hint: Set OPENAI_API_KEY, or choose --provider gemini")
		return nil, nil, err
	}

	provider := ultravoxopenai.NewProvider(openai.NewClient(crawl.OpenAIKey),
		ultravoxopenai.WithCompletionModel(crawl.LLMModel),
		ultravoxopenai.WithEmbeddingModel(crawl.EmbeddingModel),
		ultravoxopenai.WithDimensions(crawl.Dimensions),
	)
	return provider, provider, nil
}

// openFetcher constructs the page fetcher: a headless browser by default,
// plain HTTP with --static.
func openFetcher(crawl *CrawlCmd, stderr io.Writer) (ultravox.Fetcher, error) {
	if crawl.Static {
		return ultravoxhttp.NewFetcher(ultravoxhttp.WithTimeout(crawl.Timeout)), nil
	}

	fetcher, err := rod.NewFetcher(rod.WithFetchTimeout(crawl.Timeout))
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}
	return fetcher, nil
}
