package discover

import (
	"context"

	ultravox "github.com/BollineniRohith123/Ultravox"
)

// Compile-time interface verification.
var _ ultravox.URLSource = (*CompositeSource)(nil)

// CompositeSource implements ultravox.URLSource by trying each source in
// order and returning the first non-empty result. A source that returns
// an error stops the chain; only an empty result falls through.
type CompositeSource struct {
	sources []ultravox.URLSource
}

// NewCompositeSource creates a CompositeSource that consults the given
// sources in order.
func NewCompositeSource(sources ...ultravox.URLSource) *CompositeSource {
	return &CompositeSource{sources: sources}
}

// Discover returns the first non-empty URL list produced by the sources.
// Returns an empty slice (not nil) if every source comes up empty.
func (s *CompositeSource) Discover(ctx context.Context, baseURL string) ([]string, error) {
	for _, source := range s.sources {
		urls, err := source.Discover(ctx, baseURL)
		if err != nil {
			return nil, err
		}
		if len(urls) > 0 {
			return urls, nil
		}
	}
	return []string{}, nil
}
