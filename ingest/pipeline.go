package ingest

import (
	"context"
	"log/slog"
	"sync/atomic"

	ultravox "github.com/BollineniRohith123/Ultravox"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds concurrent page fetches and document pipelines.
const DefaultConcurrency = 5

// Pipeline orchestrates the ingestion of documentation pages.
type Pipeline struct {
	Fetcher      ultravox.Fetcher
	Extractor    ultravox.Extractor
	Converter    ultravox.Converter
	Enricher     *Enricher
	Chunks       ultravox.ChunkWriter
	TokenCounter ultravox.TokenCounter // optional, for Result.Tokens
	ChunkSize    int                   // maximum chunk length, DefaultChunkSize if zero
	Concurrency  int                   // maximum in-flight URL tasks, DefaultConcurrency if zero
	Logger       *slog.Logger
}

// Result holds the outcome of an ingestion run.
type Result struct {
	Documents int
	Chunks    int
	Failed    int
	Bytes     int
	Tokens    int
}

// ProgressEvent reports progress during an ingestion run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting ingestion progress.
type ProgressFunc func(event ProgressEvent)

// pipelineResult holds the outcome of processing a single URL.
type pipelineResult struct {
	url    string
	chunks int
	bytes  int
	tokens int
	err    error
}

// Run ingests all URLs, bounding the number of in-flight tasks by
// Concurrency. A task covers the whole of one page: fetch, extract,
// convert, and the document pipeline. Failed pages are skipped and
// reported through the progress callback; they never abort the run.
// Run returns once every task has finished.
func (p *Pipeline) Run(ctx context.Context, urls []string, progress ProgressFunc) *Result {
	total := len(urls)
	if total == 0 {
		return &Result{}
	}

	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	resultCh := make(chan pipelineResult, total)

	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, u := range urls {
			g.Go(func() error {
				resultCh <- p.processURL(gctx, u)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var result Result
	for res := range resultCh {
		completed.Add(1)

		if res.err != nil {
			result.Failed++
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: int(completed.Load()),
					Total:     total,
					URL:       res.url,
					Error:     res.err,
				})
			}
			continue
		}

		result.Documents++
		result.Chunks += res.chunks
		result.Bytes += res.bytes
		result.Tokens += res.tokens
		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: int(completed.Load()),
				Total:     total,
				URL:       res.url,
			})
		}
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: total,
			Total:     total,
		})
	}

	return &result
}

// processURL fetches and ingests a single URL.
func (p *Pipeline) processURL(ctx context.Context, pageURL string) pipelineResult {
	res := pipelineResult{url: pageURL}

	html, err := p.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		res.err = err
		return res
	}

	extracted, err := p.Extractor.Extract(html)
	if err != nil {
		res.err = err
		return res
	}

	markdown, err := p.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		res.err = err
		return res
	}

	res.chunks = p.ProcessDocument(ctx, pageURL, markdown)
	res.bytes = len(markdown)
	if p.TokenCounter != nil {
		if tokens, err := p.TokenCounter.CountTokens(ctx, markdown); err == nil {
			res.tokens = tokens
		}
	}
	return res
}

// ProcessDocument splits a page's markdown into chunks, enriches every
// chunk concurrently, waits for all enrichment to finish, then stores all
// processed chunks concurrently. Store failures are logged and the rest
// of the document is stored regardless. Returns the number of chunks
// stored.
func (p *Pipeline) ProcessDocument(ctx context.Context, pageURL, markdown string) int {
	contents := ultravox.ChunkText(markdown, p.ChunkSize)
	if len(contents) == 0 {
		return 0
	}

	processed := make([]*ultravox.ProcessedChunk, len(contents))

	var enrich errgroup.Group
	for i, content := range contents {
		enrich.Go(func() error {
			processed[i] = p.Enricher.Enrich(ctx, &ultravox.Chunk{
				URL:     pageURL,
				Number:  i,
				Content: content,
			})
			return nil
		})
	}
	_ = enrich.Wait()

	var stored atomic.Int64
	var store errgroup.Group
	for _, chunk := range processed {
		store.Go(func() error {
			if err := p.Chunks.CreateChunk(ctx, chunk); err != nil {
				p.logger().Error("store chunk failed",
					"url", chunk.URL, "chunk", chunk.Number, "err", err)
				return nil
			}
			stored.Add(1)
			return nil
		})
	}
	_ = store.Wait()

	return int(stored.Load())
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}
