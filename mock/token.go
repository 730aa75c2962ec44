package mock

import (
	"context"

	ultravox "github.com/BollineniRohith123/Ultravox"
)

var _ ultravox.TokenCounter = (*TokenCounter)(nil)

// TokenCounter is a mock implementation of ultravox.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return tc.CountTokensFn(ctx, text)
}
