package ultravox

import "context"

// URLSource discovers the set of page URLs to crawl for a site.
// Implementations may read sitemaps, follow navigation links, or walk
// the site recursively.
type URLSource interface {
	// Discover returns the crawlable URLs for the given base URL.
	// The result contains no duplicates; order is implementation-defined.
	// An empty result is not an error: the site exposed nothing to crawl.
	Discover(ctx context.Context, baseURL string) ([]string, error)
}
