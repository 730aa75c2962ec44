package mock

import (
	"context"

	ultravox "github.com/BollineniRohith123/Ultravox"
)

var _ ultravox.URLSource = (*URLSource)(nil)

// URLSource is a mock implementation of ultravox.URLSource.
type URLSource struct {
	DiscoverFn func(ctx context.Context, baseURL string) ([]string, error)
}

func (s *URLSource) Discover(ctx context.Context, baseURL string) ([]string, error) {
	return s.DiscoverFn(ctx, baseURL)
}
