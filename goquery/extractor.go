// Package goquery implements link extraction from documentation pages
// using CSS selectors.
package goquery

import (
	"net/url"
	"strings"

	ultravox "github.com/BollineniRohith123/Ultravox"
	"github.com/PuerkitoBio/goquery"
)

// Ensure LinkExtractor implements ultravox.LinkExtractor.
var _ ultravox.LinkExtractor = (*LinkExtractor)(nil)

// selectorGroup defines a CSS selector with its priority and source label.
type selectorGroup struct {
	selector string
	priority ultravox.LinkPriority
	source   string
}

// selectorGroups orders the selector groups from most to least
// authoritative. Deduplication keeps the highest-priority occurrence,
// so a link found in both the TOC and the footer counts as a TOC link.
var selectorGroups = []selectorGroup{
	{".toc a[href], .table-of-contents a[href], .sidebar a[href], aside a[href]", ultravox.PriorityTOC, "toc"},
	{`nav a[href], [role="navigation"] a[href], .nav a[href], .menu a[href], .navbar a[href]`, ultravox.PriorityNavigation, "nav"},
	{"main a[href], article a[href], .content a[href], .doc-content a[href]", ultravox.PriorityContent, "content"},
	{"footer a[href], .footer a[href]", ultravox.PriorityFooter, "footer"},
}

// LinkExtractor extracts prioritized same-site links from HTML using
// universal CSS selectors that work across documentation frameworks.
// Links outside any recognized container are still reported with
// PriorityFallback, so sites with non-semantic markup lose nothing.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ExtractLinks parses HTML and returns discovered links with priority.
// Links are deduplicated by URL, keeping the highest priority version.
// External links (different host than baseURL) are filtered out.
//
// Priority order (highest to lowest):
//   - TOC: .toc, .sidebar, .table-of-contents, aside
//   - Navigation: nav, [role="navigation"], .nav, .menu, .navbar
//   - Content: main, article, .content, .doc-content
//   - Footer: footer, .footer
//   - Fallback: any other same-site anchor
func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]ultravox.DiscoveredLink, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, ultravox.Errorf(ultravox.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, ultravox.Errorf(ultravox.EINVALID, "failed to parse HTML: %v", err)
	}

	// Track seen URLs with their index in the result slice for O(1) updates
	seen := make(map[string]int)
	var links []ultravox.DiscoveredLink

	add := func(sel *goquery.Selection, priority ultravox.LinkPriority, source string) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}

		// Skip non-HTTP links (javascript:, mailto:, etc.)
		if isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}

		// Filter external links (exact host match, subdomains are filtered)
		if !isSameHost(base, resolved) {
			return
		}

		link := ultravox.DiscoveredLink{
			URL:      resolved,
			Priority: priority,
			Text:     strings.TrimSpace(sel.Text()),
			Source:   source,
		}

		if idx, ok := seen[resolved]; ok {
			// Update if this has higher priority
			if priority > links[idx].Priority {
				links[idx] = link
			}
		} else {
			// First occurrence - add to slice and track index
			seen[resolved] = len(links)
			links = append(links, link)
		}
	}

	for _, group := range selectorGroups {
		doc.Find(group.selector).Each(func(_ int, sel *goquery.Selection) {
			add(sel, group.priority, group.source)
		})
	}

	// Fallback: pick up same-site anchors that live outside any recognized
	// container. Links already found keep their higher priority due to the
	// deduplication logic.
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		add(sel, ultravox.PriorityFallback, "fallback")
	})

	return links, nil
}
