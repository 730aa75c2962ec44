package http

import (
	"context"
	"fmt"
	"io"
	"net/http"

	ultravox "github.com/BollineniRohith123/Ultravox"
)

// Ensure NavSource implements ultravox.URLSource.
var _ ultravox.URLSource = (*NavSource)(nil)

// NavSource discovers URLs by reading the navigation links of a single
// seed page. Documentation sites without sitemaps usually link every
// page from the landing page's sidebar, so one fetch is enough.
type NavSource struct {
	client *http.Client
	links  ultravox.LinkExtractor
}

// NewNavSource creates a NavSource that fetches pages with the given
// HTTP client and extracts links with the given extractor.
// If client is nil, http.DefaultClient is used.
func NewNavSource(client *http.Client, links ultravox.LinkExtractor) *NavSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &NavSource{client: client, links: links}
}

// Discover fetches baseURL and returns the same-site URLs linked from it,
// deduplicated in first-seen order. Returns an empty slice (not nil) when
// the page links to nothing.
func (s *NavSource) Discover(ctx context.Context, baseURL string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, baseURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", baseURL, err)
	}

	links, err := s.links.ExtractLinks(string(body), baseURL)
	if err != nil {
		return nil, err
	}

	urls := []string{}
	seen := make(map[string]bool)
	for _, link := range links {
		if link.Priority == ultravox.PriorityIgnore {
			continue
		}
		if !seen[link.URL] {
			seen[link.URL] = true
			urls = append(urls, link.URL)
		}
	}

	return urls, nil
}
