package readability

import (
	"strings"

	ultravox "github.com/BollineniRohith123/Ultravox"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements ultravox.Extractor at compile time.
var _ ultravox.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*ultravox.ExtractResult, error) {
	if rawHTML == "" {
		return nil, ultravox.Errorf(ultravox.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &ultravox.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
