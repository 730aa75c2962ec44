package mock

import (
	"context"

	ultravox "github.com/BollineniRohith123/Ultravox"
)

var _ ultravox.Completer = (*Completer)(nil)

// Completer is a mock implementation of ultravox.Completer.
type Completer struct {
	CompleteFn func(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

func (c *Completer) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return c.CompleteFn(ctx, systemPrompt, userPrompt)
}

var _ ultravox.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of ultravox.Embedder.
type Embedder struct {
	EmbedFn func(ctx context.Context, text string) ([]float32, error)
}

func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return e.EmbedFn(ctx, text)
}
