package discover

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	ultravox "github.com/BollineniRohith123/Ultravox"
)

// Frontier sizing and crawl bounds.
const (
	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 10000
	// frontierFalsePositiveRate is the acceptable false positive rate for deduplication.
	frontierFalsePositiveRate = 0.01

	// DefaultMaxURLs limits the number of URLs processed to prevent runaway crawls.
	DefaultMaxURLs = 1000
	// DefaultConcurrency is the number of concurrent fetches during discovery.
	DefaultConcurrency = 3
)

// Compile-time interface verification.
var _ ultravox.URLSource = (*RecursiveSource)(nil)

// RecursiveSource discovers URLs by crawling a site recursively.
// Starting from the base URL, it follows same-host links within the base
// path prefix. A priority frontier visits navigation and TOC links before
// content links, and Bloom filter deduplication keeps each page to one fetch.
type RecursiveSource struct {
	fetcher     ultravox.Fetcher
	links       ultravox.LinkExtractor
	limiter     ultravox.DomainLimiter
	concurrency int
	maxURLs     int
}

// RecursiveOption configures a RecursiveSource.
type RecursiveOption func(*RecursiveSource)

// WithConcurrency sets the number of concurrent fetch workers.
func WithConcurrency(n int) RecursiveOption {
	return func(s *RecursiveSource) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithMaxURLs sets the maximum number of URLs to process.
func WithMaxURLs(n int) RecursiveOption {
	return func(s *RecursiveSource) {
		if n > 0 {
			s.maxURLs = n
		}
	}
}

// WithLimiter sets the per-domain rate limiter.
func WithLimiter(limiter ultravox.DomainLimiter) RecursiveOption {
	return func(s *RecursiveSource) {
		if limiter != nil {
			s.limiter = limiter
		}
	}
}

// NewRecursiveSource creates a RecursiveSource that fetches pages with the
// given fetcher and extracts links with the given extractor.
// By default requests are limited to DefaultRequestsPerSecond per domain.
func NewRecursiveSource(fetcher ultravox.Fetcher, links ultravox.LinkExtractor, opts ...RecursiveOption) *RecursiveSource {
	s := &RecursiveSource{
		fetcher:     fetcher,
		links:       links,
		limiter:     NewDomainLimiter(DefaultRequestsPerSecond),
		concurrency: DefaultConcurrency,
		maxURLs:     DefaultMaxURLs,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// walkResult holds the outcome of probing a single URL.
type walkResult struct {
	url        string
	discovered []ultravox.DiscoveredLink
	err        error
}

// Discover crawls the site starting from baseURL and returns the URLs that
// were successfully fetched, in completion order. Discovery stops once
// the configured URL limit is reached or the frontier drains.
func (s *RecursiveSource) Discover(ctx context.Context, baseURL string) ([]string, error) {
	// Parse base URL to get the path prefix for scope limiting
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	pathPrefix := base.Path

	// Create frontier and seed with the base URL
	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(ultravox.DiscoveredLink{
		URL:      baseURL,
		Priority: ultravox.PriorityNavigation,
	})

	// Channels for worker coordination
	workCh := make(chan ultravox.DiscoveredLink, s.concurrency)
	resultCh := make(chan walkResult)

	// Start worker pool
	var wg sync.WaitGroup
	for i := 0; i < s.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for link := range workCh {
				result := s.processURL(ctx, link)
				select {
				case resultCh <- result:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	// Close result channel when all workers are done
	go func() {
		wg.Wait()
		close(resultCh)
	}()

	urls := []string{}

	// handleResult adds in-scope links to the frontier and collects
	// successfully fetched URLs.
	handleResult := func(result walkResult) {
		for _, discovered := range result.discovered {
			discoveredURL, err := url.Parse(discovered.URL)
			if err != nil {
				continue
			}
			if discoveredURL.Host != base.Host {
				continue
			}
			if !strings.HasPrefix(discoveredURL.Path, pathPrefix) {
				continue
			}
			frontier.Push(discovered)
		}

		if result.err == nil {
			urls = append(urls, result.url)
		}
	}

	// Coordinator loop
	dispatched := 0 // URLs handed to workers
	pending := 0    // URLs currently being processed
	var nextLink *ultravox.DiscoveredLink

	// Get first link
	if link, ok := frontier.Pop(); ok {
		nextLink = &link
	}

coordinatorLoop:
	for {
		// Check termination conditions
		if nextLink == nil && pending == 0 {
			break coordinatorLoop
		}

		// Check context cancellation
		if ctx.Err() != nil {
			break coordinatorLoop
		}

		// Try to dispatch work or receive results
		if nextLink != nil && dispatched < s.maxURLs {
			select {
			case <-ctx.Done():
				break coordinatorLoop
			case workCh <- *nextLink:
				dispatched++
				pending++
				nextLink = nil
			case result := <-resultCh:
				pending--
				handleResult(result)
			}
		} else {
			// No more work to dispatch, just receive results
			select {
			case <-ctx.Done():
				break coordinatorLoop
			case result, ok := <-resultCh:
				if !ok {
					break coordinatorLoop
				}
				pending--
				handleResult(result)
			}
		}

		// Try to get next link if we don't have one
		if nextLink == nil && dispatched < s.maxURLs {
			if link, ok := frontier.Pop(); ok {
				nextLink = &link
			}
		}
	}

	// Signal workers to stop and drain remaining results
	close(workCh)

	// Drain any remaining results with timeout
	drainTimeout := time.After(5 * time.Second)
drainLoop:
	for {
		select {
		case result, ok := <-resultCh:
			if !ok {
				break drainLoop
			}
			handleResult(result)
		case <-drainTimeout:
			break drainLoop
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return urls, nil
}

// processURL fetches a single URL and extracts its links.
// The coordinator filters the extracted links for scope.
func (s *RecursiveSource) processURL(ctx context.Context, link ultravox.DiscoveredLink) walkResult {
	result := walkResult{url: link.URL}

	// Parse URL for rate limiting
	linkURL, err := url.Parse(link.URL)
	if err != nil {
		result.err = err
		return result
	}

	// Rate limit
	if err := s.limiter.Wait(ctx, linkURL.Host); err != nil {
		result.err = err
		return result
	}

	html, err := s.fetcher.Fetch(ctx, link.URL)
	if err != nil {
		result.err = err
		return result
	}

	links, err := s.links.ExtractLinks(html, link.URL)
	if err == nil {
		result.discovered = links
	}

	return result
}
