package main

import (
	"fmt"

	ultravox "github.com/BollineniRohith123/Ultravox"
	"github.com/BollineniRohith123/Ultravox/ingest"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	// Preview mode: show URLs without fetching or storing anything
	if c.Preview {
		return c.runPreview(deps)
	}

	// Full crawl mode
	return c.runCrawl(deps)
}

func (c *CrawlCmd) runPreview(deps *Dependencies) error {
	urls, err := deps.Source.Discover(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ultravox.ErrorMessage(err))
		return err
	}

	for _, u := range urls {
		fmt.Fprintln(deps.Stdout, u)
	}

	return nil
}

func (c *CrawlCmd) runCrawl(deps *Dependencies) error {
	// Discover URLs
	urls, err := deps.Source.Discover(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ultravox.ErrorMessage(err))
		return err
	}

	if len(urls) == 0 {
		fmt.Fprintln(deps.Stdout, "No URLs found to crawl")
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Found %d URLs\n", len(urls))

	// Process pages with progress reporting
	progress := func(event ingest.ProgressEvent) {
		switch event.Type {
		case ingest.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "[%d/%d] %s\n",
				event.Completed, event.Total, ingest.TruncateURL(event.URL, 60))
		case ingest.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "skip %s: %v\n", event.URL, event.Error)
		}
	}

	result := deps.Pipeline.Run(deps.Ctx, urls, progress)

	fmt.Fprintf(deps.Stdout, "Stored %d chunks from %d pages (%s, %s)\n",
		result.Chunks, result.Documents,
		ingest.FormatBytes(result.Bytes), ingest.FormatTokens(result.Tokens))

	if result.Failed > 0 {
		fmt.Fprintf(deps.Stdout, "Skipped %d pages due to errors\n", result.Failed)
	}

	return nil
}
