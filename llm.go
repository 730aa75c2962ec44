package ultravox

import "context"

// DefaultEmbeddingDimensions is the embedding vector length.
const DefaultEmbeddingDimensions = 1536

// Completer generates chat completions from an LLM.
type Completer interface {
	// Complete sends a system prompt and a user prompt to the model and
	// returns the raw response text.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Embedder computes embedding vectors for text.
type Embedder interface {
	// Embed returns the embedding vector for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)
}
