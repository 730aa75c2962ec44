package mock

import (
	ultravox "github.com/BollineniRohith123/Ultravox"
)

var _ ultravox.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of ultravox.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html string, baseURL string) ([]ultravox.DiscoveredLink, error)
}

func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]ultravox.DiscoveredLink, error) {
	return e.ExtractLinksFn(html, baseURL)
}
